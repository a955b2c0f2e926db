/*Package special supplies the two special functions needed by the
closed-form cosmological distance solvers that gonum's mathext package does
not cover directly: the Gauss hypergeometric function on the real axis and
Legendre's incomplete elliptic integral of the first kind on an extended
amplitude range.
*/
package special

import (
	"fmt"
	"math"
)

const (
	hyp2f1Eps     = 1e-15
	hyp2f1MaxIter = 2000
)

// Hyp2F1 computes the Gauss hypergeometric function 2F1(a, b; c; x) for
// real x < 1 and panics for x >= 1, where the function is singular or
// complex-valued.
//
// The series converges fastest for |x| <= 1/2, so arguments in (-1, 0) are
// routed through the Pfaff transformation and arguments at or below -1
// through the 1/x inversion formula, DLMF 15.8.2. The inversion formula
// has poles when b - a is an integer, and c must not be a non-positive
// integer; callers with such parameters get a panic rather than a wrong
// answer.
func Hyp2F1(a, b, c, x float64) float64 {
	switch {
	case x >= 1:
		panic(fmt.Sprintf("special: Hyp2F1 is not defined for x = %g >= 1.", x))
	case x >= 0:
		return hyp2f1Series(a, b, c, x)
	case x > -1:
		return hyp2f1Pfaff(a, b, c, x)
	}
	return hyp2f1Inverted(a, b, c, x)
}

// hyp2f1Series sums the defining series. It converges for |x| < 1, but is
// only used on [0, 1) and on the post-transformation range (0, 1/2].
func hyp2f1Series(a, b, c, x float64) float64 {
	if isNonPositiveInt(c) {
		panic(fmt.Sprintf("special: Hyp2F1 has a pole at c = %g.", c))
	}

	sum, term := 1.0, 1.0
	for n := 0; n < hyp2f1MaxIter; n++ {
		fn := float64(n)
		term *= (a + fn) * (b + fn) / ((c + fn) * (fn + 1)) * x
		sum += term
		if math.Abs(term) <= hyp2f1Eps*math.Abs(sum) {
			return sum
		}
	}
	return sum
}

// hyp2f1Pfaff applies the Pfaff transformation, which maps x in (-1, 0]
// onto the quickly-converging range [0, 1/2) of the series.
func hyp2f1Pfaff(a, b, c, x float64) float64 {
	return math.Pow(1-x, -a) * hyp2f1Series(a, c-b, c, x/(x-1))
}

// hyp2f1Inverted applies DLMF 15.8.2 to map x <= -1 onto 1/x in [-1, 0),
// which the Pfaff transformation then handles.
func hyp2f1Inverted(a, b, c, x float64) float64 {
	if isInt(b - a) {
		panic(fmt.Sprintf(
			"special: Hyp2F1 inversion is singular for integer b - a = %g.",
			b-a))
	}

	w := 1 / x
	ga, gb, gc := math.Gamma(a), math.Gamma(b), math.Gamma(c)

	t1 := gc * math.Gamma(b-a) / (gb * math.Gamma(c-a)) *
		math.Pow(-x, -a) * hyp2f1Pfaff(a, a-c+1, a-b+1, w)
	t2 := gc * math.Gamma(a-b) / (ga * math.Gamma(c-b)) *
		math.Pow(-x, -b) * hyp2f1Pfaff(b, b-c+1, b-a+1, w)
	return t1 + t2
}

func isInt(x float64) bool { return x == math.Trunc(x) }

func isNonPositiveInt(x float64) bool { return x <= 0 && isInt(x) }
