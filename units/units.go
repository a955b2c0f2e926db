/*Package units defines the catalog of physical units used by the cosmology
routines, along with conversions between compatible units. Dimension
bookkeeping is delegated to gonum's unit package, so conversions that cross
physical dimensions are rejected instead of silently producing garbage.
*/
package units

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/unit"
)

// ErrDimensionMismatch is returned by Convert when the source and target
// units measure different physical dimensions.
var ErrDimensionMismatch = errors.New("units: dimension mismatch")

// A Unit is a named scale factor with physical dimensions. A value
// "x in u" means x*u.SI() in SI base units.
type Unit struct {
	symbol string
	toSI   float64
	dims   unit.Dimensions

	// Logarithmic units, like astronomical magnitudes, don't live on a
	// linear scale and never convert to anything but themselves.
	log bool
}

// Symbol returns the printable name of the unit, e.g. "Mpc".
func (u Unit) Symbol() string { return u.symbol }

// SI returns the factor that converts one u into SI base units.
func (u Unit) SI() float64 { return u.toSI }

func (u Unit) String() string { return u.symbol }

func (u Unit) describe() string {
	if u.symbol == "" {
		return "a dimensionless value"
	}
	return u.symbol
}

const (
	parsecM = 3.0856775814671916e16 // IAU 2015
	gyrS    = 3.15576e16            // 1e9 Julian years
	evJ     = 1.6021766208e-19      // CODATA 2014

	arcsecRad = math.Pi / 180 / 3600
	arcminRad = math.Pi / 180 / 60
)

var (
	lengthDims  = unit.Dimensions{unit.LengthDim: 1}
	volumeDims  = unit.Dimensions{unit.LengthDim: 3}
	timeDims    = unit.Dimensions{unit.TimeDim: 1}
	tempDims    = unit.Dimensions{unit.TemperatureDim: 1}
	energyDims  = unit.Dimensions{unit.MassDim: 1, unit.LengthDim: 2, unit.TimeDim: -2}
	rateDims    = unit.Dimensions{unit.TimeDim: -1}
	densityDims = unit.Dimensions{unit.MassDim: 1, unit.LengthDim: -3}

	volumePerSolidAngleDims = unit.Dimensions{unit.LengthDim: 3, unit.AngleDim: -2}
	anglePerLengthDims      = unit.Dimensions{unit.AngleDim: 1, unit.LengthDim: -1}
	lengthPerAngleDims      = unit.Dimensions{unit.LengthDim: 1, unit.AngleDim: -1}
)

// The unit catalog. Redshifts and density ratios are Dimensionless,
// distances come back from the cosmology routines in Megaparsec, times in
// Gigayear, and distance moduli in Magnitude.
var (
	Dimensionless = Unit{symbol: "", toSI: 1}

	Kiloparsec = Unit{symbol: "kpc", toSI: 1e3 * parsecM, dims: lengthDims}
	Megaparsec = Unit{symbol: "Mpc", toSI: 1e6 * parsecM, dims: lengthDims}
	Gigaparsec = Unit{symbol: "Gpc", toSI: 1e9 * parsecM, dims: lengthDims}

	CubicMegaparsec = Unit{
		symbol: "Mpc^3",
		toSI:   1e18 * parsecM * parsecM * parsecM,
		dims:   volumeDims,
	}
	CubicGigaparsec = Unit{
		symbol: "Gpc^3",
		toSI:   1e27 * parsecM * parsecM * parsecM,
		dims:   volumeDims,
	}
	CubicMegaparsecPerSteradian = Unit{
		symbol: "Mpc^3/sr",
		toSI:   1e18 * parsecM * parsecM * parsecM,
		dims:   volumePerSolidAngleDims,
	}

	Second   = Unit{symbol: "s", toSI: 1, dims: timeDims}
	Gigayear = Unit{symbol: "Gyr", toSI: gyrS, dims: timeDims}

	Kelvin = Unit{symbol: "K", toSI: 1, dims: tempDims}

	ElectronVolt = Unit{symbol: "eV", toSI: evJ, dims: energyDims}

	KmPerSecPerMpc = Unit{
		symbol: "km/s/Mpc",
		toSI:   1e3 / (1e6 * parsecM),
		dims:   rateDims,
	}

	GramPerCubicCentimeter = Unit{
		symbol: "g/cm^3",
		toSI:   1e3,
		dims:   densityDims,
	}

	Magnitude = Unit{symbol: "mag", toSI: 1, log: true}

	ArcsecPerKiloparsec = Unit{
		symbol: "arcsec/kpc",
		toSI:   arcsecRad / (1e3 * parsecM),
		dims:   anglePerLengthDims,
	}
	KiloparsecPerArcminute = Unit{
		symbol: "kpc/arcmin",
		toSI:   1e3 * parsecM / arcminRad,
		dims:   lengthPerAngleDims,
	}
)

// Convert re-expresses x, measured in from, as a value measured in to.
func Convert(x float64, from, to Unit) (float64, error) {
	if from.log || to.log {
		if from.symbol == to.symbol {
			return x, nil
		}
		return 0, fmt.Errorf("%w: cannot convert %s to %s",
			ErrDimensionMismatch, from.describe(), to.describe())
	}
	if !sameDims(from.dims, to.dims) {
		return 0, fmt.Errorf("%w: cannot convert %s to %s",
			ErrDimensionMismatch, from.describe(), to.describe())
	}
	return x * (from.toSI / to.toSI), nil
}

func sameDims(a, b unit.Dimensions) bool {
	for d, p := range a {
		if p != 0 && b[d] != p {
			return false
		}
	}
	for d, p := range b {
		if p != 0 && a[d] != p {
			return false
		}
	}
	return true
}
