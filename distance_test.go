package flrw

import (
	"math"
	"strings"
	"testing"

	"github.com/phil-mansfield/flrw/math/calc"
	"github.com/phil-mansfield/flrw/math/nd"
	"github.com/phil-mansfield/flrw/units"
)

func TestFlatModelAtZ1(t *testing.T) {
	c := FlatLambdaCDM(70, 0.27)
	z := nd.Scalar(1)

	dc := c.ComovingDistance(z)
	if sym := dc.Unit().Symbol(); sym != units.Megaparsec.Symbol() {
		t.Errorf("ComovingDistance() unit = %q instead of %q.",
			sym, units.Megaparsec.Symbol())
	}
	if got := dc.Float(); !withinTol(got, 3364.5, 1e-4, 0) {
		t.Errorf("dc(1) = %g instead of 3364.5.", got)
	}
	if got := c.ComovingTransverseDistance(z).Float(); !withinTol(got, dc.Float(), 1e-12, 0) {
		t.Errorf("flat dm(1) = %g but dc(1) = %g.", got, dc.Float())
	}
	if got := c.AngularDiameterDistance(z).Float(); !withinTol(got, 1682.3, 1e-4, 0) {
		t.Errorf("da(1) = %g instead of 1682.3.", got)
	}
	if got := c.LuminosityDistance(z).Float(); !withinTol(got, 6729.2, 1e-4, 0) {
		t.Errorf("dl(1) = %g instead of 6729.2.", got)
	}
}

// checkICosmoTable compares transverse comoving, angular diameter, and
// luminosity distances against a table generated with icosmo.org. Rows are
// {z, dm, da, dl} in Mpc.
func checkICosmoTable(t *testing.T, name string, c *FLRW, table [][4]float64) {
	zs := make([]float64, len(table))
	for i := range table {
		zs[i] = table[i][0]
	}
	z := nd.FromSlice(zs)

	dm := c.ComovingTransverseDistance(z).Values()
	da := c.AngularDiameterDistance(z).Values()
	dl := c.LuminosityDistance(z).Values()

	for i := range table {
		if !withinTol(dm[i], table[i][1], 1e-5, 1e-8) {
			t.Errorf("%s: %d) dm(%g) = %g instead of %g.",
				name, i+1, table[i][0], dm[i], table[i][1])
		}
		if !withinTol(da[i], table[i][2], 1e-5, 1e-8) {
			t.Errorf("%s: %d) da(%g) = %g instead of %g.",
				name, i+1, table[i][0], da[i], table[i][2])
		}
		if !withinTol(dl[i], table[i][3], 1e-5, 1e-8) {
			t.Errorf("%s: %d) dl(%g) = %g instead of %g.",
				name, i+1, table[i][0], dl[i], table[i][3])
		}
	}
}

func TestICosmoDistances(t *testing.T) {
	flat := [][4]float64{
		{0.0000000, 0.0000000, 0.0000000, 0.0000000},
		{0.16250000, 669.77536, 576.15085, 778.61386},
		{0.32500000, 1285.5964, 970.26143, 1703.4152},
		{0.50000000, 1888.6254, 1259.0836, 2832.9381},
		{0.66250000, 2395.5489, 1440.9317, 3982.6000},
		{0.82500000, 2855.5732, 1564.6976, 5211.4210},
		{1.0000000, 3303.8288, 1651.9144, 6607.6577},
		{1.1625000, 3681.1867, 1702.2829, 7960.5663},
		{1.3250000, 4025.5229, 1731.4077, 9359.3408},
		{1.5000000, 4363.8558, 1745.5423, 10909.640},
		{1.6625000, 4651.4830, 1747.0359, 12384.573},
		{1.8250000, 4916.5970, 1740.3883, 13889.387},
		{2.0000000, 5179.8621, 1726.6207, 15539.586},
		{2.1625000, 5406.0204, 1709.4136, 17096.540},
		{2.3250000, 5616.5075, 1689.1752, 18674.888},
		{2.5000000, 5827.5418, 1665.0120, 20396.396},
		{2.6625000, 6010.4886, 1641.0890, 22013.414},
		{2.8250000, 6182.1688, 1616.2533, 23646.796},
		{3.0000000, 6355.6855, 1588.9214, 25422.742},
		{3.1625000, 6507.2491, 1563.3031, 27086.425},
		{3.3250000, 6650.4520, 1537.6768, 28763.205},
		{3.5000000, 6796.1499, 1510.2555, 30582.674},
		{3.6625000, 6924.2096, 1485.0852, 32284.127},
		{3.8250000, 7045.8876, 1460.2876, 33996.408},
		{4.0000000, 7170.3664, 1434.0733, 35851.832},
		{4.1625000, 7280.3423, 1410.2358, 37584.767},
		{4.3250000, 7385.3277, 1386.9160, 39326.870},
		{4.5000000, 7493.2222, 1362.4040, 41212.722},
		{4.6625000, 7588.9589, 1340.2135, 42972.480},
	}
	open := [][4]float64{
		{0.0000000, 0.0000000, 0.0000000, 0.0000000},
		{0.16250000, 643.08185, 553.18868, 747.58265},
		{0.32500000, 1200.9858, 906.40441, 1591.3062},
		{0.50000000, 1731.6262, 1154.4175, 2597.4393},
		{0.66250000, 2174.3252, 1307.8648, 3614.8157},
		{0.82500000, 2578.7616, 1413.0201, 4706.2399},
		{1.0000000, 2979.3460, 1489.6730, 5958.6920},
		{1.1625000, 3324.2002, 1537.2024, 7188.5829},
		{1.3250000, 3646.8432, 1568.5347, 8478.9104},
		{1.5000000, 3972.8407, 1589.1363, 9932.1017},
		{1.6625000, 4258.1131, 1599.2913, 11337.226},
		{1.8250000, 4528.5346, 1603.0211, 12793.110},
		{2.0000000, 4804.9314, 1601.6438, 14414.794},
		{2.1625000, 5049.2007, 1596.5852, 15968.097},
		{2.3250000, 5282.6693, 1588.7727, 17564.875},
		{2.5000000, 5523.0914, 1578.0261, 19330.820},
		{2.6625000, 5736.9813, 1566.4113, 21011.694},
		{2.8250000, 5942.5803, 1553.6158, 22730.370},
		{3.0000000, 6155.4289, 1538.8572, 24621.716},
		{3.1625000, 6345.6997, 1524.4924, 26413.975},
		{3.3250000, 6529.3655, 1509.6799, 28239.506},
		{3.5000000, 6720.2676, 1493.3928, 30241.204},
		{3.6625000, 6891.5474, 1478.0799, 32131.840},
		{3.8250000, 7057.4213, 1462.6780, 34052.058},
		{4.0000000, 7230.3723, 1446.0745, 36151.862},
		{4.1625000, 7385.9998, 1430.7021, 38130.224},
		{4.3250000, 7537.1112, 1415.4199, 40135.117},
		{4.5000000, 7695.0718, 1399.1040, 42322.895},
		{4.6625000, 7837.5510, 1384.1150, 44380.133},
	}
	closed := [][4]float64{
		{0.0000000, 0.0000000, 0.0000000, 0.0000000},
		{0.16250000, 601.80160, 517.67879, 699.59436},
		{0.32500000, 1057.9502, 798.45297, 1401.7840},
		{0.50000000, 1438.2161, 958.81076, 2157.3242},
		{0.66250000, 1718.6778, 1033.7912, 2857.3019},
		{0.82500000, 1948.2400, 1067.5288, 3555.5381},
		{1.0000000, 2152.7954, 1076.3977, 4305.5908},
		{1.1625000, 2312.3427, 1069.2914, 5000.4410},
		{1.3250000, 2448.9755, 1053.3228, 5693.8681},
		{1.5000000, 2575.6795, 1030.2718, 6439.1988},
		{1.6625000, 2677.9671, 1005.8092, 7130.0873},
		{1.8250000, 2768.1157, 979.86398, 7819.9270},
		{2.0000000, 2853.9222, 951.30739, 8561.7665},
		{2.1625000, 2924.8116, 924.84161, 9249.7167},
		{2.3250000, 2988.5333, 898.80701, 9936.8732},
		{2.5000000, 3050.3065, 871.51614, 10676.073},
		{2.6625000, 3102.1909, 847.01459, 11361.774},
		{2.8250000, 3149.5043, 823.39982, 12046.854},
		{3.0000000, 3195.9966, 798.99915, 12783.986},
		{3.1625000, 3235.5334, 777.30533, 13467.908},
		{3.3250000, 3271.9832, 756.52790, 14151.327},
		{3.5000000, 3308.1758, 735.15017, 14886.791},
		{3.6625000, 3339.2521, 716.19347, 15569.263},
		{3.8250000, 3368.1489, 698.06195, 16251.319},
		{4.0000000, 3397.0803, 679.41605, 16985.401},
		{4.1625000, 3422.1142, 662.87926, 17666.664},
		{4.3250000, 3445.5542, 647.05243, 18347.576},
		{4.5000000, 3469.1805, 630.76008, 19080.493},
		{4.6625000, 3489.7534, 616.29199, 19760.729},
	}

	checkICosmoTable(t, "flat", LambdaCDM(70, 0.3, 0.70), flat)
	checkICosmoTable(t, "open", LambdaCDM(70, 0.3, 0.1), open)
	checkICosmoTable(t, "closed", LambdaCDM(70, 2, 0.1), closed)
}

func TestComovingDistanceZ1Z2(t *testing.T) {
	c := LambdaCDM(100, 0.3, 0.8)

	d12, err := c.ComovingDistanceZ1Z2(nd.Scalar(1), nd.Scalar(2))
	if err != nil {
		t.Fatalf("ComovingDistanceZ1Z2() -> %v.", err)
	}
	d21, err := c.ComovingDistanceZ1Z2(nd.Scalar(2), nd.Scalar(1))
	if err != nil {
		t.Fatalf("ComovingDistanceZ1Z2() -> %v.", err)
	}
	if !withinTol(d12.Float(), -d21.Float(), 1e-12, 0) {
		t.Errorf("dc(1, 2) = %g but dc(2, 1) = %g.", d12.Float(), d21.Float())
	}

	z1 := nd.Of(0, 0, 2, 0.5, 1)
	z2 := nd.Of(2, 1, 1, 2.5, 1.1)
	got, err := c.ComovingDistanceZ1Z2(z1, z2)
	if err != nil {
		t.Fatalf("ComovingDistanceZ1Z2() -> %v.", err)
	}
	want := []float64{3767.90579253, 2386.25591391, -1381.64987862,
		2893.11776663, 174.1524683}
	if !sliceWithinTol(got.Values(), want, 1e-6, 0) {
		t.Errorf("dc(z1, z2) = %v instead of %v.", got.Values(), want)
	}
}

func TestComovingTransverseDistanceZ1Z2(t *testing.T) {
	z1 := nd.Of(0, 0, 2, 0.5, 1)
	z2 := nd.Of(2, 1, 1, 2.5, 1.1)

	// In a flat universe the transverse distance is the line of sight one.
	c := FlatLambdaCDM(100, 0.3)
	dm, err := c.ComovingTransverseDistanceZ1Z2(nd.Scalar(1), nd.Scalar(2))
	if err != nil {
		t.Fatalf("ComovingTransverseDistanceZ1Z2() -> %v.", err)
	}
	if !withinTol(dm.Float(), 1313.2232194828466, 1e-6, 0) {
		t.Errorf("dm(1, 2) = %g instead of 1313.2232194828466.", dm.Float())
	}
	dmArr, err := c.ComovingTransverseDistanceZ1Z2(z1, z2)
	if err != nil {
		t.Fatalf("ComovingTransverseDistanceZ1Z2() -> %v.", err)
	}
	dcArr, err := c.ComovingDistanceZ1Z2(z1, z2)
	if err != nil {
		t.Fatalf("ComovingDistanceZ1Z2() -> %v.", err)
	}
	if !sliceWithinTol(dmArr.Values(), dcArr.Values(), 1e-12, 0) {
		t.Errorf("flat dm(z1, z2) = %v but dc(z1, z2) = %v.",
			dmArr.Values(), dcArr.Values())
	}

	cases := []struct {
		c    *FLRW
		want []float64
	}{
		{FlatLambdaCDM(100, 1.5), []float64{2202.72682564, 1559.51679971,
			-643.21002593, 1408.36365679, 85.09286258}},
		{LambdaCDM(100, 0.3, 0.5), []float64{3535.931375645655,
			2226.430046551708, -1208.6817970036532, 2595.567367601969,
			151.36592003406884}},
	}
	for i, test := range cases {
		got, err := test.c.ComovingTransverseDistanceZ1Z2(z1, z2)
		if err != nil {
			t.Fatalf("%d) ComovingTransverseDistanceZ1Z2() -> %v.", i+1, err)
		}
		if !sliceWithinTol(got.Values(), test.want, 1e-6, 0) {
			t.Errorf("%d) dm(z1, z2) = %v instead of %v.",
				i+1, got.Values(), test.want)
		}
	}

	// A scalar z1 broadcasts against an array z2.
	c = LambdaCDM(100, 1.0, 0.2)
	got, err := c.ComovingTransverseDistanceZ1Z2(
		nd.Scalar(0.1), nd.Of(0, 0.1, 0.2, 0.5, 1.1, 2))
	if err != nil {
		t.Fatalf("ComovingTransverseDistanceZ1Z2() -> %v.", err)
	}
	want := []float64{-281.31602666724865, 0, 248.58093707820436,
		843.9331377460543, 1618.6104987686672, 2287.5626543279927}
	if !sliceWithinTol(got.Values(), want, 1e-6, 1e-9) {
		t.Errorf("dm(0.1, z2) = %v instead of %v.", got.Values(), want)
	}
}

func TestAngularDiameterDistanceZ1Z2(t *testing.T) {
	var warnings []string
	c := FlatLambdaCDM(70.4, 0.272,
		WarningHandler(func(msg string) { warnings = append(warnings, msg) }))

	got, err := c.AngularDiameterDistanceZ1Z2(nd.Scalar(1), nd.Scalar(2))
	if err != nil {
		t.Fatalf("AngularDiameterDistanceZ1Z2() -> %v.", err)
	}
	if !withinTol(got.Float(), 646.22968662822018, 1e-6, 0) {
		t.Errorf("ad(1, 2) = %g instead of 646.22968662822018.", got.Float())
	}
	if len(warnings) != 0 {
		t.Errorf("ad(1, 2) warned: %q.", warnings)
	}

	// Reversed redshifts are allowed, but warn.
	got, err = c.AngularDiameterDistanceZ1Z2(nd.Scalar(2), nd.Scalar(1))
	if err != nil {
		t.Fatalf("AngularDiameterDistanceZ1Z2() -> %v.", err)
	}
	if !withinTol(got.Float(), -969.34452994, 1e-6, 0) {
		t.Errorf("ad(2, 1) = %g instead of -969.34452994.", got.Float())
	}
	if len(warnings) != 1 ||
		!strings.Contains(warnings[0], "less than first redshift") {
		t.Errorf("ad(2, 1) warnings = %q.", warnings)
	}

	arr, err := c.AngularDiameterDistanceZ1Z2(
		nd.Of(0, 0, 0.5, 1), nd.Of(2, 1, 2.5, 1.1))
	if err != nil {
		t.Fatalf("AngularDiameterDistanceZ1Z2() -> %v.", err)
	}
	want := []float64{1760.0628637762106, 1670.7497657219858,
		1159.0970895962193, 115.72768186186921}
	if !sliceWithinTol(arr.Values(), want, 1e-6, 0) {
		t.Errorf("ad(z1, z2) = %v instead of %v.", arr.Values(), want)
	}

	arr, err = c.AngularDiameterDistanceZ1Z2(
		nd.Scalar(0.1), nd.Of(0.1, 0.2, 0.5, 1.1, 2))
	if err != nil {
		t.Fatalf("AngularDiameterDistanceZ1Z2() -> %v.", err)
	}
	want = []float64{0, 332.09893173, 986.35635069, 1508.37010062,
		1621.07937976}
	if !sliceWithinTol(arr.Values(), want, 1e-6, 1e-9) {
		t.Errorf("ad(0.1, z2) = %v instead of %v.", arr.Values(), want)
	}

	curved := []struct {
		c    *FLRW
		want float64
	}{
		{LambdaCDM(70.4, 0.2, 0.5), 620.1175337852428},
		{LambdaCDM(100, 2, 1), 228.42914659246014},
	}
	for i, test := range curved {
		got, err := test.c.AngularDiameterDistanceZ1Z2(
			nd.Scalar(1), nd.Scalar(2))
		if err != nil {
			t.Fatalf("%d) AngularDiameterDistanceZ1Z2() -> %v.", i+1, err)
		}
		if !withinTol(got.Float(), test.want, 1e-6, 0) {
			t.Errorf("%d) ad(1, 2) = %g instead of %g.",
				i+1, got.Float(), test.want)
		}
	}
}

func TestDistancesInSpecialCosmologies(t *testing.T) {
	deSitter := []*FLRW{FlatLambdaCDM(100, 0), LambdaCDM(100, 0, 1)}
	for i, c := range deSitter {
		got := c.ComovingDistance(nd.Scalar(1)).Float()
		if !withinTol(got, 2997.92458, 1e-8, 0) {
			t.Errorf("%d) de Sitter dc(1) = %g instead of 2997.92458.",
				i+1, got)
		}
	}

	einsteinDeSitter := []*FLRW{FlatLambdaCDM(100, 1), LambdaCDM(100, 1, 0)}
	for i, c := range einsteinDeSitter {
		got := c.ComovingDistance(nd.Scalar(1)).Float()
		if !withinTol(got, 1756.1435599923348, 1e-8, 0) {
			t.Errorf("%d) EdS dc(1) = %g instead of 1756.1435599923348.",
				i+1, got)
		}
	}
}

// TestClosedFormsMatchIntegral checks every specialized comoving distance
// solver against direct quadrature of 1/E.
func TestClosedFormsMatchIntegral(t *testing.T) {
	// de Sitter, Einstein-de Sitter, hypergeometric, an open and a closed
	// one-root elliptic model, and a three-root elliptic model.
	models := []*FLRW{
		FlatLambdaCDM(70, 0),
		FlatLambdaCDM(70, 1),
		FlatLambdaCDM(70, 0.3),
		LambdaCDM(70, 0.3, 0.6),
		LambdaCDM(70, 0.2, 1.3),
		LambdaCDM(70, 2.3, 0.05),
	}
	zs := []float64{0.2, 0.5, 1, 2, 4}
	quad := calc.GaussKronrod{}

	for i, c := range models {
		dh := c.HubbleDistance().Float()
		for _, z := range zs {
			want := dh * quad.Integrate(func(zz float64) float64 {
				return c.InvEFunc(nd.Scalar(zz)).Float()
			}, 0, z)
			got := c.ComovingDistance(nd.Scalar(z)).Float()
			if !withinTol(got, want, 1e-8, 0) {
				t.Errorf("%d) dc(%g) = %g instead of %g.", i+1, z, got, want)
			}
		}
	}
}

// A universe with no matter has an analytic comoving distance even when it
// is curved, which checks the quadrature fallback of the curved solver.
func TestCurvedNoMatterDistance(t *testing.T) {
	c := LambdaCDM(70, 0, 0.5)
	dh := c.HubbleDistance().Float()

	for _, z := range []float64{0.2, 0.5, 1, 2, 4} {
		want := dh * math.Sqrt2 * (math.Asinh(1+z) - math.Asinh(1))
		got := c.ComovingDistance(nd.Scalar(z)).Float()
		if !withinTol(got, want, 1e-8, 0) {
			t.Errorf("dc(%g) = %g instead of %g.", z, got, want)
		}
	}
}

func TestComovingDistanceAcrossModels(t *testing.T) {
	z := nd.Of(1, 2, 3, 4)
	cases := []struct {
		c    *FLRW
		want []float64
	}{
		{LambdaCDM(75.0, 0.25, 0.5),
			[]float64{2953.93001902, 4616.7134253, 5685.07765971,
				6440.80611897}},
		{LambdaCDM(75.0, 0.25, 0.6, Tcmb0(3.0), Neff(3), MNu(0)),
			[]float64{3037.12620424, 4776.86236327, 5889.55164479,
				6671.85418235}},
		{LambdaCDM(75.0, 0.3, 0.4, Tcmb0(3.0), Neff(3), MNu(10)),
			[]float64{2471.80626824, 3567.1902565, 4207.15995626,
				4638.20476018}},
		{FlatLambdaCDM(75.0, 0.25),
			[]float64{3180.83488552, 5060.82054204, 6253.6721173,
				7083.5374303}},
		{FlatLambdaCDM(75.0, 0.25, Tcmb0(3.0), Neff(3), MNu(0)),
			[]float64{3180.42662867, 5059.60529655, 6251.62766102,
				7080.71698117}},
		{FlatLambdaCDM(75.0, 0.25, Tcmb0(3.0), Neff(3), MNu(10)),
			[]float64{2337.54183142, 3371.91131264, 3988.40711188,
				4409.09346922}},
		{FlatWCDM(75.0, 0.25, -1.05),
			[]float64{3216.8296894, 5117.2097601, 6317.05995437,
				7149.68648536}},
		{FlatWCDM(75.0, 0.25, -0.95, Tcmb0(3.0), Neff(3), MNu(0)),
			[]float64{3143.56537758, 5000.32196494, 6184.11444601,
				7009.80166062}},
		{FlatWCDM(75.0, 0.25, -0.9, Tcmb0(3.0), Neff(3), MNu(10)),
			[]float64{2337.76035371, 3372.1971387, 3988.71362289,
				4409.40817174}},
		{WCDM(75.0, 0.25, 0.4, -0.9),
			[]float64{2849.6163356, 4428.71661565, 5450.97862778,
				6179.37072324}},
		{WCDM(75.0, 0.25, 0.4, -1.1, Tcmb0(3.0), Neff(3), MNu(0)),
			[]float64{2904.35580229, 4511.11471267, 5543.43643353,
				6275.9206788}},
		{WCDM(75.0, 0.25, 0.4, -0.9, Tcmb0(3.0), Neff(3), MNu(10)),
			[]float64{2473.32522734, 3581.54519631, 4232.41674426,
				4671.83818117}},
		{W0WaCDM(75.0, 0.3, 0.6, -0.9, 0.1),
			[]float64{2937.7807638, 4572.59950903, 5611.52821924,
				6339.8549956}},
		{W0WaCDM(75.0, 0.25, 0.5, -0.9, 0.1, Tcmb0(3.0), Neff(3), MNu(0)),
			[]float64{2907.34722624, 4539.01723198, 5593.51611281,
				6342.3228444}},
		{W0WaCDM(75.0, 0.25, 0.5, -0.9, 0.1, Tcmb0(3.0), Neff(3), MNu(10)),
			[]float64{2507.18336722, 3633.33231695, 4292.44746919,
				4736.35404638}},
		{FlatW0WaCDM(75.0, 0.25, -0.95, 0.15),
			[]float64{3123.29892781, 4956.15204302, 6128.15563818,
				6948.26480378}},
		{FlatW0WaCDM(75.0, 0.25, -0.95, 0.15, Tcmb0(3.0), Neff(3), MNu(0)),
			[]float64{3122.92671907, 4955.03768936, 6126.25719576,
				6945.61856513}},
		{FlatW0WaCDM(75.0, 0.25, -0.95, 0.15, Tcmb0(3.0), Neff(3), MNu(10)),
			[]float64{2337.70072701, 3372.13719963, 3988.6571093,
				4409.35399673}},
		{WpWaCDM(75.0, 0.3, 0.6, -0.9, 0.1, 0.5),
			[]float64{2954.68975298, 4599.83254834, 5643.04013201,
				6373.36147627}},
		{WpWaCDM(75.0, 0.25, 0.5, -0.9, 0.1, 0.4, Tcmb0(3.0), Neff(3), MNu(0)),
			[]float64{2919.00656215, 4558.0218123, 5615.73412391,
				6366.10224229}},
		{WpWaCDM(75.0, 0.25, 0.5, -0.9, 0.1, 1.0, Tcmb0(3.0), Neff(4), MNu(5)),
			[]float64{2629.48489827, 3874.13392319, 4614.31562397,
				5116.51184842}},
		{FlatLambdaCDM(75.0, 0.25, Tcmb0(3.0), MNu(10, 0, 0)),
			[]float64{2777.71589173, 4186.91111666, 5046.0300719,
				5636.10397302}},
		{FlatLambdaCDM(75.0, 0.25, Tcmb0(3.0), MNu(10, 5, 0)),
			[]float64{2636.48149391, 3913.14102091, 4684.59108974,
				5213.07557084}},
		{FlatLambdaCDM(75.0, 0.25, Tcmb0(3.0), MNu(4, 5, 9)),
			[]float64{2563.5093049, 3776.63362071, 4506.83448243,
				5006.50158829}},
		{FlatLambdaCDM(75.0, 0.25, Tcmb0(3.0), Neff(4.2), MNu(1, 4, 5, 9)),
			[]float64{2525.58017482, 3706.87633298, 4416.58398847,
				4901.96669755}},
	}

	for i, test := range cases {
		got := test.c.ComovingDistance(z).Values()
		if !sliceWithinTol(got, test.want, 1e-4, 0) {
			t.Errorf("%d) %s: dc(z) = %v instead of %v.",
				i+1, test.c.String(), got, test.want)
		}
	}
}

func TestPhotonTemperatureDistances(t *testing.T) {
	z := nd.Of(1.0, 10.0, 500.0, 1000.0)
	cases := []struct {
		c    *FLRW
		want []float64
	}{
		{FlatLambdaCDM(70, 0.3, Neff(3.04)),
			[]float64{1651.91, 858.205, 26.8586, 13.6469}},
		{FlatLambdaCDM(70, 0.3, Neff(3.04), Tcmb0(2.725)),
			[]float64{1651.76, 857.817, 26.7688, 13.5841}},
		{FlatLambdaCDM(70, 0.3, Neff(3.04), Tcmb0(4.0)),
			[]float64{1651.21, 856.411, 26.4845, 13.4028}},
	}

	for i, test := range cases {
		got := test.c.AngularDiameterDistance(z).Values()
		if !sliceWithinTol(got, test.want, 1e-5, 0) {
			t.Errorf("%d) da(z) = %v instead of %v.", i+1, got, test.want)
		}
	}
}

// A flat universe with only matter and radiation has the analytic comoving
// distance 2 dh (Sqrt((1 + Or0 z)/(1 + z)) - 1) / (Or0 - 1).
func TestRadiationDominatedDistance(t *testing.T) {
	probe := FlatLambdaCDM(70, 0.3, Tcmb0(2.725), Neff(3.04))
	or0 := probe.Ogamma0() + probe.Onu0()

	c := FlatLambdaCDM(70, 1-or0, Tcmb0(2.725), Neff(3.04))
	if ode := c.Ode0(); math.Abs(ode) > 1e-12 {
		t.Fatalf("matter + radiation model has Ode0 = %g.", ode)
	}

	dh := c.HubbleDistance().Float()
	for _, z := range []float64{1, 10, 500, 1000} {
		want := 2 * dh * (math.Sqrt((1+or0*z)/(1+z)) - 1) / (or0 - 1)
		got := c.ComovingDistance(nd.Scalar(z)).Float()
		if !withinTol(got, want, 1e-5, 0) {
			t.Errorf("dc(%g) = %g instead of %g.", z, got, want)
		}
	}
}

func TestConstantWLuminosityDistance(t *testing.T) {
	// Ned Wright's advanced cosmology calculator.
	c := WCDM(70, 0.27, 0.73, -0.9)
	got := c.LuminosityDistance(nd.Of(0.2, 0.4, 0.6, 0.9)).Values()
	want := []float64{975.5, 2158.2, 3507.3, 5773.1}
	if !sliceWithinTol(got, want, 1e-3, 0) {
		t.Errorf("dl(z) = %v instead of %v.", got, want)
	}
}

func TestVaryingDarkEnergyLuminosityDistance(t *testing.T) {
	// Computed with Mathematica.
	z := nd.Of(0.2, 0.4, 0.9, 1.2)
	cases := []struct {
		c    *FLRW
		want []float64
	}{
		{W0WaCDM(70, 0.2, 0.8, -1.1, 0.2),
			[]float64{1004.0, 2268.62, 6265.76, 9061.84}},
		{W0WaCDM(70, 0.3, 0.7, -0.9, 0.0),
			[]float64{971.667, 2141.67, 5685.96, 8107.41}},
		{W0WaCDM(70, 0.3, 0.7, -0.9, -0.5),
			[]float64{974.087, 2157.08, 5783.92, 8274.08}},
		{WpWaCDM(70, 0.2, 0.8, -1.1, 0.2, 0.5),
			[]float64{1010.81, 2294.45, 6369.45, 9218.95}},
		{WpWaCDM(70, 0.2, 0.8, -1.1, 0.2, 0.9),
			[]float64{1013.68, 2305.3, 6412.37, 9283.33}},
	}

	for i, test := range cases {
		got := test.c.LuminosityDistance(z).Values()
		if !sliceWithinTol(got, test.want, 1e-4, 0) {
			t.Errorf("%d) %s: dl(z) = %v instead of %v.",
				i+1, test.c.String(), got, test.want)
		}
	}
}

// Volumes are compared against Ned Wright's calculator, which reports them
// in Gpc^3 to five figures.
func TestComovingVolume(t *testing.T) {
	z := nd.Of(0.5, 1, 2, 3, 5, 9)
	cases := []struct {
		c    *FLRW
		want []float64
	}{
		{LambdaCDM(70, 0.27, 0.73), []float64{29.123, 159.529, 630.427,
			1178.531, 2181.485, 3654.802}},
		{LambdaCDM(70, 0.27, 0), []float64{20.501, 99.019, 380.278,
			747.049, 1558.363, 3123.814}},
		{LambdaCDM(70, 2, 0), []float64{12.619, 44.708, 114.904,
			173.709, 258.82, 358.992}},
	}

	for i, test := range cases {
		vol := test.c.ComovingVolume(z)
		if sym := vol.Unit().Symbol(); sym != units.CubicMegaparsec.Symbol() {
			t.Errorf("%d) ComovingVolume() unit = %q instead of %q.",
				i+1, sym, units.CubicMegaparsec.Symbol())
		}
		for j, got := range vol.Values() {
			if !withinTol(got, test.want[j]*1e9, 1e-2, 0) {
				t.Errorf("%d) V(%g) = %g instead of %g.",
					i+1, z.At(j), got, test.want[j]*1e9)
			}
		}
	}
}

func TestDifferentialComovingVolume(t *testing.T) {
	z := []float64{0.5, 1, 2, 3, 5, 9}
	cases := []struct {
		c    *FLRW
		want []float64
	}{
		{LambdaCDM(70, 0.27, 0.73), []float64{29.123, 159.529, 630.427,
			1178.531, 2181.485, 3654.802}},
		{LambdaCDM(70, 0.27, 0), []float64{20.501, 99.019, 380.278,
			747.049, 1558.363, 3123.814}},
		{LambdaCDM(70, 2, 0), []float64{12.619, 44.708, 114.904,
			173.709, 258.82, 358.992}},
	}
	quad := calc.GaussKronrod{}

	// Integrating dV/dz over the whole sky should recover the enclosed
	// volume.
	for i, test := range cases {
		dvdz := func(zz float64) float64 {
			return test.c.DifferentialComovingVolume(nd.Scalar(zz)).Float()
		}
		for j := range z {
			got := 4 * math.Pi * quad.Integrate(dvdz, 0, z[j])
			if !withinTol(got, test.want[j]*1e9, 1e-2, 0) {
				t.Errorf("%d) integrated V(%g) = %g instead of %g.",
					i+1, z[j], got, test.want[j]*1e9)
			}
		}
	}
}

// Nearly flat models should give nearly flat volumes from the curved
// formula.
func TestComovingVolumeFlatLimit(t *testing.T) {
	flat := FlatLambdaCDM(70, 0.3)
	open := LambdaCDM(70, 0.3, 0.69999)
	closed := LambdaCDM(70, 0.3, 0.70001)

	z := nd.Of(0.5, 1, 2)
	want := flat.ComovingVolume(z).Values()
	if got := open.ComovingVolume(z).Values(); !sliceWithinTol(got, want, 1e-4, 0) {
		t.Errorf("barely open V(z) = %v instead of %v.", got, want)
	}
	if got := closed.ComovingVolume(z).Values(); !sliceWithinTol(got, want, 1e-4, 0) {
		t.Errorf("barely closed V(z) = %v instead of %v.", got, want)
	}
}

func TestKpcMethods(t *testing.T) {
	c := FlatLambdaCDM(70.4, 0.272)
	z := nd.Scalar(3)

	got := c.ArcsecPerKpcComoving(z)
	if sym := got.Unit().Symbol(); sym != units.ArcsecPerKiloparsec.Symbol() {
		t.Errorf("ArcsecPerKpcComoving() unit = %q instead of %q.",
			sym, units.ArcsecPerKiloparsec.Symbol())
	}
	if !withinTol(got.Float(), 0.0317179167, 1e-5, 0) {
		t.Errorf("arcsec per comoving kpc = %g instead of 0.0317179167.",
			got.Float())
	}

	if got := c.ArcsecPerKpcProper(z).Float(); !withinTol(got, 0.1268716668, 1e-5, 0) {
		t.Errorf("arcsec per proper kpc = %g instead of 0.1268716668.", got)
	}

	got = c.KpcComovingPerArcmin(z)
	if sym := got.Unit().Symbol(); sym != units.KiloparsecPerArcminute.Symbol() {
		t.Errorf("KpcComovingPerArcmin() unit = %q instead of %q.",
			sym, units.KiloparsecPerArcminute.Symbol())
	}
	if !withinTol(got.Float(), 1891.6753126, 1e-5, 0) {
		t.Errorf("comoving kpc per arcmin = %g instead of 1891.6753126.",
			got.Float())
	}

	if got := c.KpcProperPerArcmin(z).Float(); !withinTol(got, 472.918828, 1e-5, 0) {
		t.Errorf("proper kpc per arcmin = %g instead of 472.918828.", got)
	}
}

func TestDistMod(t *testing.T) {
	c := FlatLambdaCDM(70.4, 0.272)

	mu := c.DistMod(nd.Of(1, 5))
	if sym := mu.Unit().Symbol(); sym != units.Magnitude.Symbol() {
		t.Errorf("DistMod() unit = %q instead of %q.",
			sym, units.Magnitude.Symbol())
	}
	want := []float64{44.124857, 48.40167258}
	if !sliceWithinTol(mu.Values(), want, 1e-6, 0) {
		t.Errorf("distmod(z) = %v instead of %v.", mu.Values(), want)
	}
}

// In a closed universe the transverse distance wraps around the sky and
// can come back negative. The distance modulus uses its magnitude.
func TestNegativeLuminosityDistance(t *testing.T) {
	c := LambdaCDM(70, 0.2, 1.3)
	z := nd.Of(50, 100)

	dl := c.LuminosityDistance(z).Values()
	wantDl := []float64{16612.44047622, -46890.79092244}
	if !sliceWithinTol(dl, wantDl, 1e-5, 0) {
		t.Errorf("dl(z) = %v instead of %v.", dl, wantDl)
	}

	mu := c.DistMod(z).Values()
	wantMu := []float64{46.102167189, 48.355437790944}
	if !sliceWithinTol(mu, wantMu, 1e-6, 0) {
		t.Errorf("distmod(z) = %v instead of %v.", mu, wantMu)
	}
}

func TestAbsorptionDistance(t *testing.T) {
	c := FlatLambdaCDM(70.4, 0.272)
	got := c.AbsorptionDistance(nd.Of(1, 3)).Data()
	want := []float64{1.72576635, 7.98685853}
	if !sliceWithinTol(got, want, 1e-6, 0) {
		t.Errorf("X(z) = %v instead of %v.", got, want)
	}
}

func TestAbsDistanceIntegrand(t *testing.T) {
	c := LambdaCDM(70, 0.3, 0.5, Tcmb0(2.725))

	got := c.AbsDistanceIntegrand(nd.Scalar(3)).Float()
	if !withinTol(got, 3.3420145059180402, 1e-4, 0) {
		t.Errorf("dX/dz(3) = %g instead of 3.3420145059180402.", got)
	}

	arr := c.AbsDistanceIntegrand(nd.Of(2.0, 3.2)).Data()
	want := []float64{2.7899584, 3.44104758}
	if !sliceWithinTol(arr, want, 1e-4, 0) {
		t.Errorf("dX/dz(z) = %v instead of %v.", arr, want)
	}
}
