package flrw

import (
	"fmt"

	"github.com/phil-mansfield/flrw/math/interpolate"
)

// A DistanceTable is a precomputed comoving distance curve that trades a
// little accuracy for much faster lookups. The exact distance methods on
// FLRW cost an integral or a special function call per redshift, which is
// too slow for the inner loops of mock catalogs and likelihood scans. A
// table built once amortizes that cost: lookups are a cubic spline
// evaluation, and the interpolation error falls off as the fourth power
// of the knot spacing.
//
// Like the model it wraps, a DistanceTable is immutable and safe to share
// between goroutines.
type DistanceTable struct {
	c    *FLRW
	zmax float64
	sp   *interpolate.Spline
}

// NewDistanceTable tabulates the comoving distance of c at n evenly
// spaced redshifts in [0, zmax]. It panics if zmax is not positive or if
// n < 3.
func NewDistanceTable(c *FLRW, zmax float64, n int) *DistanceTable {
	if zmax <= 0 {
		panic(fmt.Sprintf(
			"flrw: NewDistanceTable() given non-positive zmax = %g.", zmax,
		))
	}
	if n < 3 {
		panic(fmt.Sprintf(
			"flrw: NewDistanceTable() given n = %d, but a table needs at "+
				"least 3 knots.", n,
		))
	}

	zs := make([]float64, n)
	ds := make([]float64, n)
	dz := zmax / float64(n-1)
	for i := range zs {
		zs[i] = float64(i) * dz
		ds[i] = c.dcZ1Z2Kernel(0, zs[i])
	}
	zs[n-1] = zmax

	return &DistanceTable{c: c, zmax: zmax, sp: interpolate.NewSpline(zs, ds)}
}

// Model returns the cosmology the table was built from.
func (t *DistanceTable) Model() *FLRW { return t.c }

// ZMax returns the upper edge of the tabulated redshift range.
func (t *DistanceTable) ZMax() float64 { return t.zmax }

func (t *DistanceTable) checkRange(z float64) {
	if z < 0 || z > t.zmax {
		panic(fmt.Sprintf("flrw: DistanceTable given z = %g, outside its "+
			"range [0, %g].", z, t.zmax))
	}
}

// ComovingDistance returns the interpolated line of sight comoving
// distance to z, in Mpc. It panics if z is outside [0, ZMax()].
func (t *DistanceTable) ComovingDistance(z float64) float64 {
	t.checkRange(z)
	return t.sp.Eval(z)
}

// ComovingDistanceAll interpolates the comoving distance at every z in
// zs, in Mpc. As with Spline.EvalAll, an optional output buffer of the
// same length may be supplied to avoid an allocation.
func (t *DistanceTable) ComovingDistanceAll(zs []float64, out ...[]float64) []float64 {
	for _, z := range zs {
		t.checkRange(z)
	}
	return t.sp.EvalAll(zs, out...)
}

// ComovingTransverseDistance returns the interpolated transverse comoving
// distance to z, in Mpc.
func (t *DistanceTable) ComovingTransverseDistance(z float64) float64 {
	t.checkRange(z)
	return t.c.transverseFromComoving(t.sp.Eval(z))
}

// AngularDiameterDistance returns the interpolated angular diameter
// distance to z, in Mpc.
func (t *DistanceTable) AngularDiameterDistance(z float64) float64 {
	return t.ComovingTransverseDistance(z) / (1 + z)
}

// LuminosityDistance returns the interpolated luminosity distance to z,
// in Mpc.
func (t *DistanceTable) LuminosityDistance(z float64) float64 {
	return t.ComovingTransverseDistance(z) * (1 + z)
}
