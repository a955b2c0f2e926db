package flrw

import (
	"math"
)

// Physical constants. The CODATA 2014 values and the IAU 2015 parsec are
// used so that derived quantities like critical densities agree with the
// standard literature values to every printed digit.
const (
	// CLightKmS is the speed of light in km/s.
	CLightKmS = 299792.458

	// GMks is Newton's constant in m^3 / (kg s^2).
	GMks = 6.67408e-11

	// SigmaSBMks is the Stefan-Boltzmann constant in W / (m^2 K^4).
	SigmaSBMks = 5.670367e-8

	// KBoltzEvK is Boltzmann's constant in eV / K.
	KBoltzEvK = 8.6173303e-5

	// MpcMks is one megaparsec in m.
	MpcMks = 3.0856775814671916e22

	// GyrS is one gigayear (1e9 Julian years) in s.
	GyrS = 3.15576e16
)

const (
	// h0ToInvS converts a Hubble constant in km/s/Mpc to 1/s.
	h0ToInvS = 1000.0 / MpcMks

	// nuTempRatio is Tnu0/Tcmb0 = (4/11)^(1/3) for instantaneously
	// decoupled neutrinos.
	nuTempRatio = 0.7137658555036082

	// nuDensityPrefac is (7/8) (4/11)^(4/3), the energy density of a
	// single massless neutrino species relative to the photons.
	nuDensityPrefac = 0.22710731766

	// Fitting constants for the density of massive neutrinos, from
	// Komatsu et al. 2011, eq. 26.
	nuFitP    = 1.83
	nuFitInvP = 0.54644808743
	nuFitK    = 0.3173

	// cLightMpcGyr is the speed of light in Mpc/Gyr, the conversion
	// between lookback times and lookback distances.
	cLightMpcGyr = CLightKmS * GyrS / (MpcMks / 1000)

	arcsecRad = math.Pi / 180 / 3600
	arcminRad = math.Pi / 180 / 60
)

// critDensCgs returns the critical density 3 H^2/(8 pi G) in g/cm^3 for a
// Hubble parameter given in km/s/Mpc.
func critDensCgs(h float64) float64 {
	hInvS := h * h0ToInvS
	rhoMks := 3 * hInvS * hInvS / (8 * math.Pi * GMks)
	return rhoMks * 1e-3
}

// aBc2Cgs is the radiation constant over c^2 in g / (cm^3 K^4): multiplying
// by Tcmb0^4 gives the photon mass density.
var aBc2Cgs = 4 * (SigmaSBMks * 1e3) / math.Pow(2.99792458e10, 3)
