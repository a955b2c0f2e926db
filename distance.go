package flrw

import (
	"math"

	"github.com/phil-mansfield/flrw/math/nd"
	"github.com/phil-mansfield/flrw/math/special"
	"github.com/phil-mansfield/flrw/units"
)

// integralComovingDistance is the quadrature fallback for the line of
// sight comoving distance between two redshifts, in Mpc.
func (c *FLRW) integralComovingDistance(z1, z2 float64) float64 {
	return c.hubbleDistance * c.quad.Integrate(c.invEfunc, z1, z2)
}

// deSitterComovingDistance is the comoving distance in a de Sitter
// universe, where 1/E = 1.
func (c *FLRW) deSitterComovingDistance(z1, z2 float64) float64 {
	return c.hubbleDistance * (z2 - z1)
}

// einsteinDeSitterComovingDistance is the comoving distance in an
// Einstein-de Sitter universe, where 1/E = (1 + z)^(-3/2).
func (c *FLRW) einsteinDeSitterComovingDistance(z1, z2 float64) float64 {
	return 2 * c.hubbleDistance *
		(1/math.Sqrt(1+z1) - 1/math.Sqrt(1+z2))
}

// hypergeometricComovingDistance is the closed form for flat matter +
// lambda universes with 0 < Om0 < 1, from Baes, Camps & Van De Putte
// 2017, MNRAS 468, 927.
func (c *FLRW) hypergeometricComovingDistance(z1, z2 float64) float64 {
	s := math.Cbrt((1 - c.om0) / c.om0)
	prefactor := c.hubbleDistance / math.Sqrt(s*c.om0)
	return prefactor * (tHypergeometric(s/(1+z1)) - tHypergeometric(s/(1+z2)))
}

// tHypergeometric is T(x) = 2 Sqrt(x) 2F1(1/6, 1/2; 7/6; -x^3).
func tHypergeometric(x float64) float64 {
	return 2 * math.Sqrt(x) * special.Hyp2F1(1.0/6, 0.5, 7.0/6, -x*x*x)
}

// ellipticComovingDistance is the closed form for curved matter + lambda
// universes, from Kantowski, Kao & Thomas 2000, ApJ 545, 549. The integral
// of 1/E reduces to incomplete Legendre elliptic integrals whose arguments
// depend on the roots of a cubic; the root structure is classified by
// b = -27/2 Om0^2 Ode0 / Ok0^3.
//
// The reduction is not valid when Om0 or Ode0 vanish, or on the branch
// where the universe has no big bang, so those fall back to quadrature.
func (c *FLRW) ellipticComovingDistance(z1, z2 float64) float64 {
	if c.om0 == 0 || c.ode0 == 0 {
		return c.integralComovingDistance(z1, z2)
	}

	absOk := math.Abs(c.ok0)
	b := -27.0 / 2 * c.om0 * c.om0 * c.ode0 / (c.ok0 * c.ok0 * c.ok0)

	var g, k2, phi1, phi2 float64
	switch {
	case b < 0 || b > 2:
		// One real root.
		kappa := 1.0
		if b < 0 {
			kappa = -1
		}
		vk := math.Cbrt(kappa*(b-1) + math.Sqrt(b*(b-2)))
		y1 := (-1 + kappa*(vk+1/vk)) / 3
		a := math.Sqrt(y1 * (3*y1 + 2))

		g = 1 / math.Sqrt(a)
		k2 = (2*a + kappa*(1+3*y1)) / (4 * a)
		phi1 = ellipticPhiOneRoot(c.om0, absOk, kappa, y1, a, z1)
		phi2 = ellipticPhiOneRoot(c.om0, absOk, kappa, y1, a, z2)
	case b > 0 && b < 2 && c.om0 > c.ode0:
		// Three real roots, on the branch with a big bang.
		yb := math.Cos(math.Acos(1-b) / 3)
		yc := math.Sqrt(3) * math.Sin(math.Acos(1-b)/3)
		y1 := (-1 + yb + yc) / 3
		y2 := (-1 - 2*yb) / 3
		y3 := (-1 + yb - yc) / 3

		g = 2 / math.Sqrt(y1-y2)
		k2 = (y1 - y3) / (y1 - y2)
		phi1 = ellipticPhiThreeRoots(c.om0, absOk, y1, y2, z1)
		phi2 = ellipticPhiThreeRoots(c.om0, absOk, y1, y2, z2)
	default:
		return c.integralComovingDistance(z1, z2)
	}

	prefactor := c.hubbleDistance / math.Sqrt(absOk)
	return prefactor * g *
		(special.EllipticF(phi1, k2) - special.EllipticF(phi2, k2))
}

func ellipticPhiOneRoot(om0, absOk, kappa, y1, a, z float64) float64 {
	x := (1 + z) * om0 / absOk
	return math.Acos((x + kappa*y1 - a) / (x + kappa*y1 + a))
}

func ellipticPhiThreeRoots(om0, absOk, y1, y2, z float64) float64 {
	x := (1 + z) * om0 / absOk
	return math.Asin(math.Sqrt((y1 - y2) / (x + y1)))
}

// transverseFromComoving converts a line of sight comoving distance into a
// transverse one by wrapping it around the spatial curvature.
func (c *FLRW) transverseFromComoving(dc float64) float64 {
	switch {
	case c.ok0 == 0:
		return dc
	case c.ok0 > 0:
		sqrtOk := math.Sqrt(c.ok0)
		return c.hubbleDistance / sqrtOk *
			math.Sinh(sqrtOk*dc/c.hubbleDistance)
	}
	sqrtOk := math.Sqrt(-c.ok0)
	return c.hubbleDistance / sqrtOk * math.Sin(sqrtOk*dc/c.hubbleDistance)
}

func (c *FLRW) comovingTransverse(z float64) float64 {
	return c.transverseFromComoving(c.dcZ1Z2Kernel(0, z))
}

// ComovingDistance computes the line of sight comoving distance from z = 0
// to each z, in Mpc.
func (c *FLRW) ComovingDistance(z *nd.Array) Quantity {
	return mapQ(func(z float64) float64 {
		return c.dcZ1Z2Kernel(0, z)
	}, z, units.Megaparsec)
}

// ComovingDistanceZ1Z2 computes the line of sight comoving distance
// between pairs of redshifts, in Mpc. z1 and z2 must have
// broadcast-compatible shapes. Pairs with z2 < z1 give negative distances.
func (c *FLRW) ComovingDistanceZ1Z2(z1, z2 *nd.Array) (Quantity, error) {
	return map2Q(c.dcZ1Z2Kernel, z1, z2, units.Megaparsec)
}

// ComovingTransverseDistance computes the transverse comoving distance
// from z = 0 to each z, in Mpc: the comoving size of an object at z per
// unit angle on the sky.
func (c *FLRW) ComovingTransverseDistance(z *nd.Array) Quantity {
	return mapQ(c.comovingTransverse, z, units.Megaparsec)
}

// ComovingTransverseDistanceZ1Z2 computes the transverse comoving distance
// between pairs of redshifts, in Mpc.
func (c *FLRW) ComovingTransverseDistanceZ1Z2(z1, z2 *nd.Array) (Quantity, error) {
	return map2Q(func(z1, z2 float64) float64 {
		return c.transverseFromComoving(c.dcZ1Z2Kernel(z1, z2))
	}, z1, z2, units.Megaparsec)
}

// AngularDiameterDistance computes the angular diameter distance to each
// z, in Mpc.
func (c *FLRW) AngularDiameterDistance(z *nd.Array) Quantity {
	return mapQ(func(z float64) float64 {
		return c.comovingTransverse(z) / (1 + z)
	}, z, units.Megaparsec)
}

// AngularDiameterDistanceZ1Z2 computes the angular diameter distance
// between pairs of redshifts, in Mpc: the proper size of an object at z2
// per unit angle seen by an observer at z1.
//
// Pairs with z2 < z1 are allowed, since some gravitational lensing
// formulas depend on them, but the resulting negative distances are
// usually a sign of swapped arguments, so the model's warning handler is
// notified.
func (c *FLRW) AngularDiameterDistanceZ1Z2(z1, z2 *nd.Array) (Quantity, error) {
	swapped := false
	out, err := map2Q(func(z1, z2 float64) float64 {
		if z2 < z1 {
			swapped = true
		}
		return c.transverseFromComoving(c.dcZ1Z2Kernel(z1, z2)) / (1 + z2)
	}, z1, z2, units.Megaparsec)
	if err != nil {
		return Quantity{}, err
	}
	if swapped {
		c.warn("second redshift z2 is less than first redshift z1 for " +
			"at least one pair, so the angular diameter distance is negative")
	}
	return out, nil
}

// LuminosityDistance computes the luminosity distance to each z, in Mpc.
func (c *FLRW) LuminosityDistance(z *nd.Array) Quantity {
	return mapQ(func(z float64) float64 {
		return (1 + z) * c.comovingTransverse(z)
	}, z, units.Megaparsec)
}

// DistMod computes the distance modulus, 5 Log10(d_L / 10 pc), in mag.
func (c *FLRW) DistMod(z *nd.Array) Quantity {
	return mapQ(func(z float64) float64 {
		dl := (1 + z) * c.comovingTransverse(z)
		return 5*math.Log10(math.Abs(dl)) + 25
	}, z, units.Magnitude)
}

// absDistanceIntegrand is dX/dz = (1 + z)^2 / E(z).
func (c *FLRW) absDistanceIntegrand(z float64) float64 {
	zp1 := 1 + z
	return zp1 * zp1 / c.efunc(z)
}

// AbsDistanceIntegrand computes dX/dz = (1 + z)^2 / E(z), the integrand of
// the dimensionless absorption distance.
func (c *FLRW) AbsDistanceIntegrand(z *nd.Array) *nd.Array {
	return mapArray(c.absDistanceIntegrand, z)
}

// AbsorptionDistance computes the dimensionless absorption distance X(z)
// used to normalize quasar absorption line statistics.
func (c *FLRW) AbsorptionDistance(z *nd.Array) *nd.Array {
	return mapArray(func(z float64) float64 {
		return c.quad.Integrate(c.absDistanceIntegrand, 0, z)
	}, z)
}

// ComovingVolume computes the comoving volume of a sphere out to each z,
// in Mpc^3.
func (c *FLRW) ComovingVolume(z *nd.Array) Quantity {
	if c.ok0 == 0 {
		return mapQ(func(z float64) float64 {
			dc := c.dcZ1Z2Kernel(0, z)
			return 4 * math.Pi / 3 * dc * dc * dc
		}, z, units.CubicMegaparsec)
	}

	dh := c.hubbleDistance
	sqrtAbsOk := math.Sqrt(math.Abs(c.ok0))
	term1 := 4 * math.Pi * dh * dh * dh / (2 * c.ok0)

	return mapQ(func(z float64) float64 {
		x := c.comovingTransverse(z) / dh
		term2 := x * math.Sqrt(1+c.ok0*x*x)
		term3 := sqrtAbsOk * x

		if c.ok0 > 0 {
			return term1 / sqrtAbsOk * (term2 - math.Asinh(term3))
		}
		return term1 / sqrtAbsOk * (term2 - math.Asin(term3))
	}, z, units.CubicMegaparsec)
}

// DifferentialComovingVolume computes dV_C/dz per unit solid angle at each
// z, in Mpc^3/sr.
func (c *FLRW) DifferentialComovingVolume(z *nd.Array) Quantity {
	return mapQ(func(z float64) float64 {
		dm := c.comovingTransverse(z)
		return c.hubbleDistance * dm * dm / c.efunc(z)
	}, z, units.CubicMegaparsecPerSteradian)
}

// ArcsecPerKpcComoving computes the angle subtended by one comoving kpc at
// each z, in arcsec/kpc.
func (c *FLRW) ArcsecPerKpcComoving(z *nd.Array) Quantity {
	return mapQ(func(z float64) float64 {
		dmKpc := c.comovingTransverse(z) * 1e3
		return 1 / (dmKpc * arcsecRad)
	}, z, units.ArcsecPerKiloparsec)
}

// ArcsecPerKpcProper computes the angle subtended by one proper kpc at
// each z, in arcsec/kpc.
func (c *FLRW) ArcsecPerKpcProper(z *nd.Array) Quantity {
	return mapQ(func(z float64) float64 {
		daKpc := c.comovingTransverse(z) / (1 + z) * 1e3
		return 1 / (daKpc * arcsecRad)
	}, z, units.ArcsecPerKiloparsec)
}

// KpcComovingPerArcmin computes the comoving kpc corresponding to one
// arcmin at each z, in kpc/arcmin.
func (c *FLRW) KpcComovingPerArcmin(z *nd.Array) Quantity {
	return mapQ(func(z float64) float64 {
		return c.comovingTransverse(z) * 1e3 * arcminRad
	}, z, units.KiloparsecPerArcminute)
}

// KpcProperPerArcmin computes the proper kpc corresponding to one arcmin
// at each z, in kpc/arcmin.
func (c *FLRW) KpcProperPerArcmin(z *nd.Array) Quantity {
	return mapQ(func(z float64) float64 {
		return c.comovingTransverse(z) / (1 + z) * 1e3 * arcminRad
	}, z, units.KiloparsecPerArcminute)
}
