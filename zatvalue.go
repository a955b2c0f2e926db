package flrw

import (
	"errors"
	"fmt"
	"math"
)

// ErrBracket is returned by ZAtValue when no redshift inside the bracket
// produces the target value.
var ErrBracket = errors.New(
	"flrw: the target value is not attained inside the bracket")

const (
	zAtValueTol     = 1e-8
	zAtValueMaxEval = 500
)

// ZAtValue inverts a cosmological function numerically: it searches
// [zmin, zmax] for the redshift where f(z) equals target.
//
//	age := func(z float64) float64 {
//	    return flrw.Planck18().Age(nd.Scalar(z)).Float()
//	}
//	z, err := flrw.ZAtValue(age, 8.0, 1e-8, 1000)
//
// f does not need to be monotonic, but the bracket must contain exactly
// one solution. Functions like the angular diameter distance, which rise
// and then fall, attain most values twice, so each solution needs its own
// bracket on one side of the turnover. Leave some margin around the
// expected solution: a solution within tolerance of a bracket edge is
// reported as ErrBracket, since it usually means the true solution lies
// outside.
//
// ZAtValue panics if zmax <= zmin.
func ZAtValue(f func(z float64) float64, target, zmin, zmax float64) (float64, error) {
	if zmax <= zmin {
		panic(fmt.Sprintf("flrw: ZAtValue() given zmin = %g and zmax = %g, "+
			"but zmin must be smaller than zmax.", zmin, zmax))
	}

	resid := func(z float64) float64 {
		d := f(z) - target
		return d * d
	}
	z := minimizeBounded(resid, zmin, zmax, zAtValueTol, zAtValueMaxEval)

	if z-zmin <= 2*zAtValueTol || zmax-z <= 2*zAtValueTol {
		return z, fmt.Errorf("%w: the best redshift, z = %g, is at the edge "+
			"of [%g, %g], so the solution probably lies outside the bracket",
			ErrBracket, z, zmin, zmax)
	}
	fz := f(z)
	if math.Abs(fz-target) > 1e-6*(math.Abs(fz)+math.Abs(target))+1e-12 {
		return z, fmt.Errorf("%w: the closest value inside [%g, %g] is "+
			"f(%g) = %g, not %g", ErrBracket, zmin, zmax, z, fz, target)
	}
	return z, nil
}

// minimizeBounded finds a local minimum of f inside [a, b] using golden
// section steps with parabolic interpolation wherever the fit is
// trustworthy, after the classic fmin routine of Forsythe, Malcolm &
// Moler 1977. It stops once the minimum is located to within xatol or
// after maxEval evaluations of f.
func minimizeBounded(f func(float64) float64, a, b, xatol float64, maxEval int) float64 {
	const golden = 0.3819660112501051 // (3 - Sqrt(5)) / 2
	sqrtEps := math.Sqrt(2.220446049250313e-16)

	// xf is the best point so far, nfc the second best, and fulc the one
	// before that.
	xf := a + golden*(b-a)
	nfc, fulc := xf, xf
	fx := f(xf)
	fnfc, ffulc := fx, fx
	n := 1
	rat, e := 0.0, 0.0

	xm := 0.5 * (a + b)
	tol1 := sqrtEps*math.Abs(xf) + xatol/3
	tol2 := 2 * tol1

	for math.Abs(xf-xm) > tol2-0.5*(b-a) {
		goldenStep := true
		if math.Abs(e) > tol1 {
			// Fit a parabola through the three best points and step to
			// its minimum if that lands well inside the interval.
			r := (xf - nfc) * (fx - ffulc)
			q := (xf - fulc) * (fx - fnfc)
			p := (xf-fulc)*q - (xf-nfc)*r
			q = 2 * (q - r)
			if q > 0 {
				p = -p
			}
			q = math.Abs(q)
			r = e
			e = rat

			if math.Abs(p) < math.Abs(0.5*q*r) &&
				p > q*(a-xf) && p < q*(b-xf) {
				goldenStep = false
				rat = p / q
				if xf+rat-a < tol2 || b-(xf+rat) < tol2 {
					rat = math.Copysign(tol1, xm-xf)
				}
			}
		}
		if goldenStep {
			if xf >= xm {
				e = a - xf
			} else {
				e = b - xf
			}
			rat = golden * e
		}

		// Never step by less than tol1.
		step := math.Max(math.Abs(rat), tol1)
		if rat < 0 {
			step = -step
		}
		x := xf + step
		fu := f(x)
		n++

		if fu <= fx {
			if x >= xf {
				a = xf
			} else {
				b = xf
			}
			fulc, ffulc = nfc, fnfc
			nfc, fnfc = xf, fx
			xf, fx = x, fu
		} else {
			if x < xf {
				a = x
			} else {
				b = x
			}
			switch {
			case fu <= fnfc || nfc == xf:
				fulc, ffulc = nfc, fnfc
				nfc, fnfc = x, fu
			case fu <= ffulc || fulc == xf || fulc == nfc:
				fulc, ffulc = x, fu
			}
		}

		xm = 0.5 * (a + b)
		tol1 = sqrtEps*math.Abs(xf) + xatol/3
		tol2 = 2 * tol1

		if n >= maxEval {
			break
		}
	}

	return xf
}
