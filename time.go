package flrw

import (
	"math"

	"github.com/phil-mansfield/flrw/math/nd"
	"github.com/phil-mansfield/flrw/units"
)

// lookbackTimeIntegrand is 1/((1 + z) E(z)), d(t_lookback)/dz in units of
// the Hubble time.
func (c *FLRW) lookbackTimeIntegrand(z float64) float64 {
	return 1 / ((1 + z) * c.efunc(z))
}

// LookbackTimeIntegrand computes d(t_lookback)/dz in units of the Hubble
// time.
func (c *FLRW) LookbackTimeIntegrand(z *nd.Array) *nd.Array {
	return mapArray(c.lookbackTimeIntegrand, z)
}

// integralLookbackTime is the quadrature fallback for the lookback time.
func (c *FLRW) integralLookbackTime(z float64) float64 {
	return c.hubbleTime * c.quad.Integrate(c.lookbackTimeIntegrand, 0, z)
}

// integralAge is the quadrature fallback for the age. Substituting
// u = 1/(1 + z') maps the infinite redshift range onto (0, 1/(1 + z)] and
// keeps the integrand integrable at u = 0.
func (c *FLRW) integralAge(z float64) float64 {
	return c.hubbleTime * c.quad.Integrate(func(u float64) float64 {
		return 1 / (u * c.efunc(1/u-1))
	}, 0, 1/(1+z))
}

// Closed forms for a de Sitter universe, which has no beginning.

func (c *FLRW) deSitterAge(z float64) float64 {
	return math.Inf(1)
}

func (c *FLRW) deSitterLookbackTime(z float64) float64 {
	return c.hubbleTime * math.Log1p(z)
}

// Closed forms for an Einstein-de Sitter universe.

func (c *FLRW) einsteinDeSitterAge(z float64) float64 {
	return 2.0 / 3 * c.hubbleTime * math.Pow(1+z, -1.5)
}

func (c *FLRW) einsteinDeSitterLookbackTime(z float64) float64 {
	return c.einsteinDeSitterAge(0) - c.einsteinDeSitterAge(z)
}

// flatAge is the closed-form age of a flat matter + lambda universe. For
// Om0 < 1 it is an inverse hyperbolic sine; above the critical matter
// density the argument crosses into the circular branch.
func (c *FLRW) flatAge(z float64) float64 {
	prefactor := 2.0 / 3 * c.hubbleTime
	zp1 := 1 + z
	zp13 := zp1 * zp1 * zp1

	if c.om0 < 1 {
		arg := math.Asinh(math.Sqrt((1/c.om0 - 1) / zp13))
		return prefactor * arg / math.Sqrt(1-c.om0)
	}
	arg := math.Asin(math.Sqrt((1 - 1/c.om0) / zp13))
	return prefactor * arg / math.Sqrt(c.om0-1)
}

func (c *FLRW) flatLookbackTime(z float64) float64 {
	return c.flatAge(0) - c.flatAge(z)
}

// Age computes the age of the universe at redshift z in Gyr.
func (c *FLRW) Age(z *nd.Array) Quantity {
	return mapQ(c.ageKernel, z, units.Gigayear)
}

// LookbackTime computes the time in Gyr between redshift z and today.
func (c *FLRW) LookbackTime(z *nd.Array) Quantity {
	return mapQ(c.lookbackKernel, z, units.Gigayear)
}

// LookbackDistance computes c times the lookback time: the light travel
// distance to redshift z, in Mpc.
func (c *FLRW) LookbackDistance(z *nd.Array) Quantity {
	return mapQ(func(z float64) float64 {
		return c.lookbackKernel(z) * cLightMpcGyr
	}, z, units.Megaparsec)
}
