package flrw

import (
	"errors"
	"math"

	"github.com/phil-mansfield/flrw/math/calc"
)

// ErrWNotDefined is the panic value raised when a WFunc with no F field is
// asked to evaluate its equation of state.
var ErrWNotDefined = errors.New("flrw: equation of state w(z) is not defined")

// DarkEnergy describes a dark energy component through its equation of
// state w(z) = p/rho (in units where c = 1) and the density history that
// the equation of state implies,
//
//	DensityScale(z) = rho_de(z)/rho_de(0)
//	               = Exp(3 Integral 0 to z of (1 + w(z'))/(1 + z') dz').
//
// Implementations with closed-form density histories should use them: the
// density scale sits inside every Friedmann integrand, so it is the
// hottest function in the package.
type DarkEnergy interface {
	W(z float64) float64
	DensityScale(z float64) float64
}

// Lambda is a cosmological constant, w(z) = -1.
type Lambda struct{}

func (Lambda) W(z float64) float64 { return -1 }

func (Lambda) DensityScale(z float64) float64 { return 1 }

// ConstantW is a dark energy fluid with a constant equation of state w0.
type ConstantW struct {
	W0 float64
}

func (d ConstantW) W(z float64) float64 { return d.W0 }

func (d ConstantW) DensityScale(z float64) float64 {
	return math.Pow(1+z, 3*(1+d.W0))
}

// W0Wa is the CPL parameterization of Chevallier & Polarski 2001 and
// Linder 2003, w(a) = w0 + wa (1 - a).
type W0Wa struct {
	W0, Wa float64
}

func (d W0Wa) W(z float64) float64 { return d.W0 + d.Wa*z/(1+z) }

func (d W0Wa) DensityScale(z float64) float64 {
	zp1 := 1 + z
	return math.Pow(zp1, 3*(1+d.W0+d.Wa)) * math.Exp(-3*d.Wa*z/zp1)
}

// WpWa is the CPL parameterization pinned at a pivot redshift Zp rather
// than at z = 0, w(a) = wp + wa (ap - a).
type WpWa struct {
	Wp, Wa, Zp float64
}

func (d WpWa) W(z float64) float64 {
	ap := 1 / (1 + d.Zp)
	return d.Wp + d.Wa*(ap-1/(1+z))
}

func (d WpWa) DensityScale(z float64) float64 {
	ap := 1 / (1 + d.Zp)
	zp1 := 1 + z
	return math.Pow(zp1, 3*(1+d.Wp+ap*d.Wa)) * math.Exp(-3*d.Wa*z/zp1)
}

// W0Wz is the linear-redshift parameterization w(z) = w0 + wz z. It grows
// without bound, so it is only sensible over limited redshift ranges.
//
// The density history is evaluated by quadrature using Quad, or the
// package default integrator when Quad is nil. Models built through the
// W0WzCDM constructor have their configured integrator filled in here.
type W0Wz struct {
	W0, Wz float64
	Quad   calc.Integrator
}

func (d W0Wz) W(z float64) float64 { return d.W0 + d.Wz*z }

func (d W0Wz) DensityScale(z float64) float64 {
	return integrateDensityScale(d.W, z, d.Quad)
}

// WFunc adapts an arbitrary equation of state to the DarkEnergy interface.
// W and DensityScale panic with ErrWNotDefined when F is nil.
//
// The density history is evaluated by quadrature using Quad, or the
// package default integrator when Quad is nil.
type WFunc struct {
	F    func(z float64) float64
	Quad calc.Integrator
}

func (d WFunc) W(z float64) float64 {
	if d.F == nil {
		panic(ErrWNotDefined)
	}
	return d.F(z)
}

func (d WFunc) DensityScale(z float64) float64 {
	if d.F == nil {
		panic(ErrWNotDefined)
	}
	return integrateDensityScale(d.F, z, d.Quad)
}

// integrateDensityScale evaluates the defining integral of DensityScale on
// the substitution u = Log(1 + z'), which keeps the integrand finite all
// the way down to z' = 0.
func integrateDensityScale(w func(float64) float64, z float64, quad calc.Integrator) float64 {
	if quad == nil {
		quad = calc.Default()
	}
	ival := quad.Integrate(func(u float64) float64 {
		return 1 + w(math.Expm1(u))
	}, 0, math.Log1p(z))
	return math.Exp(3 * ival)
}
