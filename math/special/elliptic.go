package special

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mathext"
)

// EllipticF computes Legendre's incomplete elliptic integral of the first
// kind,
//
//	F(phi|m) = Integral 0 to phi of dt / Sqrt(1 - m Sin^2(t)),
//
// for amplitudes phi in [-pi, pi] and parameter m in [0, 1). gonum's
// mathext.EllipticF only accepts the quarter period [0, pi/2], which is
// not enough for the distance solvers here: their amplitudes run over the
// full half period. The rest of the range follows from oddness in phi and
// the reflection F(pi - phi|m) = 2K(m) - F(phi|m), where K is the complete
// integral.
func EllipticF(phi, m float64) float64 {
	if m < 0 || m >= 1 {
		panic(fmt.Sprintf("special: EllipticF parameter m = %g is outside [0, 1).", m))
	}
	switch {
	case phi < -math.Pi || phi > math.Pi:
		panic(fmt.Sprintf("special: EllipticF amplitude phi = %g is outside [-pi, pi].", phi))
	case phi < 0:
		return -EllipticF(-phi, m)
	case phi <= math.Pi/2:
		return mathext.EllipticF(phi, m)
	}
	return 2*mathext.CompleteK(m) - mathext.EllipticF(math.Pi-phi, m)
}
