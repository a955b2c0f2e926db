package flrw

import (
	"errors"
	"math"

	"github.com/phil-mansfield/flrw/math/nd"
	"github.com/phil-mansfield/flrw/units"
)

// ErrBaryonDensityNotSet is returned by Ob and Odm when the model was
// constructed without the Ob0 option.
var ErrBaryonDensityNotSet = errors.New(
	"flrw: baryon density was not set when this model was created")

// nuRelativeDensity returns the neutrino energy density relative to the
// photon energy density. For massless species this is the constant
// (7/8)(4/11)^(4/3) Neff. Massive species use the fitting formula of
// Komatsu et al. 2011, accurate to better than one percent through the
// relativistic to non-relativistic transition.
func (c *FLRW) nuRelativeDensity(z float64) float64 {
	if !c.massiveNu {
		return nuDensityPrefac * c.neff
	}

	sum := float64(c.nMassless)
	for _, y := range c.nuY {
		cy := nuFitK * y / (1 + z)
		sum += math.Pow(1+math.Pow(cy, nuFitP), nuFitInvP)
	}
	return nuDensityPrefac * c.neffPerNu * sum
}

// efunc is E(z) = H(z)/H0.
func (c *FLRW) efunc(z float64) float64 {
	or := c.ogamma0 + c.onu0
	if c.massiveNu {
		or = c.ogamma0 * (1 + c.nuRelativeDensity(z))
	}
	zp1 := 1 + z
	return math.Sqrt(zp1*zp1*((or*zp1+c.om0)*zp1+c.ok0) +
		c.ode0*c.de.DensityScale(z))
}

func (c *FLRW) invEfunc(z float64) float64 { return 1 / c.efunc(z) }

// EFunc computes the dimensionless expansion function E(z) = H(z)/H0.
func (c *FLRW) EFunc(z *nd.Array) *nd.Array {
	return mapArray(c.efunc, z)
}

// InvEFunc computes 1/E(z), the integrand of the comoving distance.
func (c *FLRW) InvEFunc(z *nd.Array) *nd.Array {
	return mapArray(c.invEfunc, z)
}

// H computes the Hubble parameter H(z) in km/s/Mpc.
func (c *FLRW) H(z *nd.Array) Quantity {
	return mapQ(func(z float64) float64 {
		return c.h0 * c.efunc(z)
	}, z, units.KmPerSecPerMpc)
}

// ScaleFactor computes a = 1/(1 + z), normalized to 1 today.
func (c *FLRW) ScaleFactor(z *nd.Array) *nd.Array {
	return mapArray(func(z float64) float64 { return 1 / (1 + z) }, z)
}

// W computes the dark energy equation of state w(z).
func (c *FLRW) W(z *nd.Array) *nd.Array {
	return mapArray(c.de.W, z)
}

// DeDensityScale computes rho_de(z)/rho_de(0).
func (c *FLRW) DeDensityScale(z *nd.Array) *nd.Array {
	return mapArray(c.de.DensityScale, z)
}

// NuRelativeDensity computes the neutrino energy density relative to the
// photon energy density at z.
func (c *FLRW) NuRelativeDensity(z *nd.Array) *nd.Array {
	return mapArray(c.nuRelativeDensity, z)
}

// Om computes the matter density parameter at z, including any massive
// neutrinos.
func (c *FLRW) Om(z *nd.Array) *nd.Array {
	return mapArray(func(z float64) float64 {
		zp1 := 1 + z
		e := c.efunc(z)
		return c.om0 * zp1 * zp1 * zp1 / (e * e)
	}, z)
}

// Ob computes the baryon density parameter at z. It fails if the model was
// created without a baryon density.
func (c *FLRW) Ob(z *nd.Array) (*nd.Array, error) {
	if math.IsNaN(c.ob0) {
		return nil, ErrBaryonDensityNotSet
	}
	return mapArray(func(z float64) float64 {
		zp1 := 1 + z
		e := c.efunc(z)
		return c.ob0 * zp1 * zp1 * zp1 / (e * e)
	}, z), nil
}

// Odm computes the dark matter density parameter at z. It fails if the
// model was created without a baryon density.
func (c *FLRW) Odm(z *nd.Array) (*nd.Array, error) {
	if math.IsNaN(c.ob0) {
		return nil, ErrBaryonDensityNotSet
	}
	odm0 := c.om0 - c.ob0
	return mapArray(func(z float64) float64 {
		zp1 := 1 + z
		e := c.efunc(z)
		return odm0 * zp1 * zp1 * zp1 / (e * e)
	}, z), nil
}

// Ok computes the curvature density parameter at z.
func (c *FLRW) Ok(z *nd.Array) *nd.Array {
	return mapArray(func(z float64) float64 {
		zp1 := 1 + z
		e := c.efunc(z)
		return c.ok0 * zp1 * zp1 / (e * e)
	}, z)
}

// Ode computes the dark energy density parameter at z.
func (c *FLRW) Ode(z *nd.Array) *nd.Array {
	return mapArray(func(z float64) float64 {
		e := c.efunc(z)
		return c.ode0 * c.de.DensityScale(z) / (e * e)
	}, z)
}

// Ogamma computes the photon density parameter at z.
func (c *FLRW) Ogamma(z *nd.Array) *nd.Array {
	return mapArray(c.ogamma, z)
}

func (c *FLRW) ogamma(z float64) float64 {
	zp1 := 1 + z
	e := c.efunc(z)
	return c.ogamma0 * zp1 * zp1 * zp1 * zp1 / (e * e)
}

// Onu computes the neutrino density parameter at z. With massive species
// this tracks the full relativistic to non-relativistic transition.
func (c *FLRW) Onu(z *nd.Array) *nd.Array {
	if c.massiveNu {
		return mapArray(func(z float64) float64 {
			return c.ogamma(z) * c.nuRelativeDensity(z)
		}, z)
	}
	return mapArray(func(z float64) float64 {
		zp1 := 1 + z
		e := c.efunc(z)
		return c.onu0 * zp1 * zp1 * zp1 * zp1 / (e * e)
	}, z)
}

// Otot computes the total density parameter at z.
func (c *FLRW) Otot(z *nd.Array) *nd.Array {
	om := c.Om(z)
	ok := c.Ok(z)
	ode := c.Ode(z)
	ogamma := c.Ogamma(z)
	onu := c.Onu(z)

	out := nd.Zeros(z.Shape()...)
	data := out.Data()
	for i := range data {
		data[i] = om.Data()[i] + ok.Data()[i] + ode.Data()[i] +
			ogamma.Data()[i] + onu.Data()[i]
	}
	return out
}

// Tcmb computes the CMB temperature at z in K.
func (c *FLRW) Tcmb(z *nd.Array) Quantity {
	return mapQ(func(z float64) float64 {
		return c.tcmb0 * (1 + z)
	}, z, units.Kelvin)
}

// Tnu computes the neutrino background temperature at z in K.
func (c *FLRW) Tnu(z *nd.Array) Quantity {
	return mapQ(func(z float64) float64 {
		return c.tnu0 * (1 + z)
	}, z, units.Kelvin)
}

// CriticalDensity computes the critical density at z in g/cm^3.
func (c *FLRW) CriticalDensity(z *nd.Array) Quantity {
	return mapQ(func(z float64) float64 {
		e := c.efunc(z)
		return c.critDens0 * e * e
	}, z, units.GramPerCubicCentimeter)
}
