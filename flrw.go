/*Package flrw computes distances, ages, volumes, and density histories in
homogeneous, isotropic Friedmann-Lemaitre-Robertson-Walker cosmologies.

A model is specified by its Hubble constant, its matter and dark energy
densities, and optionally a CMB temperature, a neutrino sector, and a
baryon density. Dark energy can follow any of the standard equation of
state families or a user-supplied w(z). Models are immutable once
constructed and may be shared freely between goroutines.

Redshift arguments are nd Arrays so that scalars, vectors, and broadcast
grids all flow through the same methods. Dimensioned results come back as
Quantity values carrying the unit catalog from the units package.

Models with a cosmological constant and no radiation route their distances
and times through closed-form solvers: de Sitter and Einstein-de Sitter
expressions, the hypergeometric form of Baes, Camps & Van De Putte 2017
for flat models, and the Legendre elliptic form of Kantowski, Kao & Thomas
2000 for curved ones. Everything else falls back to adaptive quadrature.
*/
package flrw

import (
	"fmt"
	"log"
	"math"
	"strings"

	"github.com/phil-mansfield/flrw/math/calc"
	"github.com/phil-mansfield/flrw/math/nd"
	"github.com/phil-mansfield/flrw/units"
)

// FLRW is an immutable FLRW cosmology. Construct one with New, NewFlat, or
// one of the named family constructors like FlatLambdaCDM.
type FLRW struct {
	name   string
	family string

	h0   float64 // [km/s/Mpc]
	om0  float64
	ode0 float64
	ok0  float64

	tcmb0 float64 // [K]
	tnu0  float64 // [K]
	neff  float64
	ob0   float64 // NaN when unset

	ogamma0 float64
	onu0    float64

	// Massive neutrino bookkeeping. nuY holds m c^2 / (kB Tnu0) for each
	// massive species.
	mnu       []float64 // [eV], one entry per species
	nNu       int
	nMassless int
	neffPerNu float64
	nuY       []float64
	massiveNu bool

	hubbleDistance float64 // [Mpc]
	hubbleTime     float64 // [Gyr]
	critDens0      float64 // [g/cm^3]

	de   DarkEnergy
	quad calc.Integrator
	warn func(msg string)

	// Distance and time kernels, chosen at construction. Closed forms are
	// installed when the model supports them.
	dcZ1Z2Kernel   func(z1, z2 float64) float64 // [Mpc]
	ageKernel      func(z float64) float64      // [Gyr]
	lookbackKernel func(z float64) float64      // [Gyr]
}

type modelParams struct {
	tcmb0 float64
	neff  float64
	mnu   []float64
	ob0   float64
	name  string
	quad  calc.Integrator
	warn  func(msg string)
}

type internalOption func(*modelParams)

// An Option customizes the optional parameters of a cosmology. The zero
// configuration is a CMB-less model: Tcmb0 = 0 K, Neff = 3.04, no
// neutrino masses, and no baryon density.
type Option internalOption

// Tcmb0 sets the CMB temperature at z = 0 in K. Setting it to a positive
// value turns on the photon and neutrino components.
func Tcmb0(t float64) Option {
	return func(p *modelParams) { p.tcmb0 = t }
}

// Neff sets the effective number of neutrino species.
func Neff(n float64) Option {
	return func(p *modelParams) { p.neff = n }
}

// MNu sets neutrino masses in eV. A single mass is shared by every
// species; otherwise one mass per species must be given, and the species
// count is Floor(Neff). Masses are ignored when Tcmb0 = 0, since the
// model then has no neutrino sector at all.
func MNu(massesEv ...float64) Option {
	return func(p *modelParams) { p.mnu = massesEv }
}

// Ob0 sets the baryon density parameter at z = 0. Models without it
// refuse to split matter into baryonic and dark components.
func Ob0(ob0 float64) Option {
	return func(p *modelParams) { p.ob0 = ob0 }
}

// Name attaches a label to the model, e.g. "Planck18".
func Name(name string) Option {
	return func(p *modelParams) { p.name = name }
}

// Quadrature sets the integrator used whenever the model has to fall back
// to numerical integration.
func Quadrature(quad calc.Integrator) Option {
	return func(p *modelParams) { p.quad = quad }
}

// WarningHandler routes non-fatal warnings, like angular diameter
// distances evaluated on reversed redshift pairs, to the given function.
// The default handler writes to the standard logger.
func WarningHandler(warn func(msg string)) Option {
	return func(p *modelParams) { p.warn = warn }
}

func (p *modelParams) loadOptions(opts []Option) {
	for _, opt := range opts {
		opt(p)
	}
}

// New creates a cosmology with Hubble constant h0 in km/s/Mpc, matter
// density om0, dark energy density ode0, and dark energy equation of
// state de. Curvature is whatever is left over, so the model is closed,
// flat, or open depending on the total density.
func New(h0, om0, ode0 float64, de DarkEnergy, opts ...Option) *FLRW {
	return newModel("FLRW", h0, om0, ode0, false, de, opts)
}

// NewFlat creates a spatially flat cosmology: the dark energy density is
// set to whatever makes the total density exactly critical.
func NewFlat(h0, om0 float64, de DarkEnergy, opts ...Option) *FLRW {
	return newModel("FLRW", h0, om0, 0, true, de, opts)
}

// LambdaCDM creates a cosmology with a cosmological constant.
func LambdaCDM(h0, om0, ode0 float64, opts ...Option) *FLRW {
	return newModel("LambdaCDM", h0, om0, ode0, false, Lambda{}, opts)
}

// FlatLambdaCDM creates a flat cosmology with a cosmological constant.
func FlatLambdaCDM(h0, om0 float64, opts ...Option) *FLRW {
	return newModel("FlatLambdaCDM", h0, om0, 0, true, Lambda{}, opts)
}

// WCDM creates a cosmology whose dark energy has the constant equation of
// state w0.
func WCDM(h0, om0, ode0, w0 float64, opts ...Option) *FLRW {
	return newModel("WCDM", h0, om0, ode0, false, ConstantW{w0}, opts)
}

// FlatWCDM creates a flat cosmology whose dark energy has the constant
// equation of state w0.
func FlatWCDM(h0, om0, w0 float64, opts ...Option) *FLRW {
	return newModel("FlatWCDM", h0, om0, 0, true, ConstantW{w0}, opts)
}

// W0WaCDM creates a cosmology with the CPL equation of state
// w(a) = w0 + wa (1 - a).
func W0WaCDM(h0, om0, ode0, w0, wa float64, opts ...Option) *FLRW {
	return newModel("W0WaCDM", h0, om0, ode0, false, W0Wa{w0, wa}, opts)
}

// FlatW0WaCDM creates a flat cosmology with the CPL equation of state.
func FlatW0WaCDM(h0, om0, w0, wa float64, opts ...Option) *FLRW {
	return newModel("FlatW0WaCDM", h0, om0, 0, true, W0Wa{w0, wa}, opts)
}

// WpWaCDM creates a cosmology with the pivoted CPL equation of state
// w(a) = wp + wa (ap - a), pinned at the pivot redshift zp.
func WpWaCDM(h0, om0, ode0, wp, wa, zp float64, opts ...Option) *FLRW {
	return newModel("WpWaCDM", h0, om0, ode0, false, WpWa{wp, wa, zp}, opts)
}

// W0WzCDM creates a cosmology with the linear-redshift equation of state
// w(z) = w0 + wz z.
func W0WzCDM(h0, om0, ode0, w0, wz float64, opts ...Option) *FLRW {
	return newModel("W0WzCDM", h0, om0, ode0, false, W0Wz{W0: w0, Wz: wz}, opts)
}

func defaultWarningHandler(msg string) {
	log.Printf("flrw: %s", msg)
}

func newModel(
	family string, h0, om0, ode0 float64, flat bool,
	de DarkEnergy, opts []Option,
) *FLRW {
	if de == nil {
		panic("flrw: model created with a nil DarkEnergy.")
	}

	p := &modelParams{neff: 3.04, ob0: math.NaN()}
	p.loadOptions(opts)
	if p.quad == nil {
		p.quad = calc.Default()
	}
	if p.warn == nil {
		p.warn = defaultWarningHandler
	}

	c := &FLRW{
		name:   p.name,
		family: family,
		h0:     h0,
		om0:    om0,
		tcmb0:  p.tcmb0,
		neff:   p.neff,
		ob0:    p.ob0,
		de:     de,
		quad:   p.quad,
		warn:   p.warn,
	}

	c.hubbleDistance = CLightKmS / h0
	c.hubbleTime = 1 / (h0 * h0ToInvS) / GyrS
	c.critDens0 = critDensCgs(h0)
	c.tnu0 = nuTempRatio * p.tcmb0

	c.initNeutrinos(p.mnu)

	if c.tcmb0 > 0 {
		c.ogamma0 = aBc2Cgs * math.Pow(c.tcmb0, 4) / c.critDens0
		c.onu0 = nuDensityPrefac * c.neff * c.ogamma0
		if c.massiveNu {
			c.onu0 = c.ogamma0 * c.nuRelativeDensity(0)
		}
	}

	if flat {
		c.ode0 = 1 - c.om0 - c.ogamma0 - c.onu0
		c.ok0 = 0
	} else {
		c.ode0 = ode0
		c.ok0 = 1 - c.om0 - c.ode0 - c.ogamma0 - c.onu0
	}

	// Route quadrature-based equations of state through the model's
	// integrator unless the caller supplied their own.
	switch d := de.(type) {
	case W0Wz:
		if d.Quad == nil {
			d.Quad = c.quad
			c.de = d
		}
	case WFunc:
		if d.Quad == nil {
			d.Quad = c.quad
			c.de = d
		}
	}

	c.selectKernels()
	return c
}

// initNeutrinos splits the requested neutrino masses into massless and
// massive species and precomputes the constants the density fit needs.
// Models with Tcmb0 = 0 have no neutrino sector: nNu = 0 and any requested
// masses are dropped.
func (c *FLRW) initNeutrinos(massesEv []float64) {
	if c.tcmb0 <= 0 {
		return
	}

	c.nNu = int(math.Floor(c.neff))
	if c.nNu <= 0 {
		return
	}
	c.neffPerNu = c.neff / float64(c.nNu)

	switch len(massesEv) {
	case 0:
		c.mnu = make([]float64, c.nNu)
	case 1:
		c.mnu = make([]float64, c.nNu)
		for i := range c.mnu {
			c.mnu[i] = massesEv[0]
		}
	case c.nNu:
		c.mnu = make([]float64, c.nNu)
		copy(c.mnu, massesEv)
	default:
		panic(fmt.Sprintf("flrw: %d neutrino masses given to MNu(), but "+
			"the model has %d neutrino species.", len(massesEv), c.nNu))
	}

	for _, m := range c.mnu {
		if m > 0 {
			c.nuY = append(c.nuY, m/(KBoltzEvK*c.tnu0))
		} else {
			c.nMassless++
		}
	}
	c.massiveNu = len(c.nuY) > 0
}

// selectKernels installs the distance and time solvers the model's
// parameters allow. Only cosmological-constant models without radiation
// have closed forms; everything else integrates.
func (c *FLRW) selectKernels() {
	c.dcZ1Z2Kernel = c.integralComovingDistance
	c.ageKernel = c.integralAge
	c.lookbackKernel = c.integralLookbackTime

	_, isLambda := c.de.(Lambda)
	noRad := c.ogamma0 == 0 && c.onu0 == 0
	if !isLambda || !noRad {
		return
	}

	switch {
	case c.ok0 == 0 && c.om0 == 0:
		c.dcZ1Z2Kernel = c.deSitterComovingDistance
		c.ageKernel = c.deSitterAge
		c.lookbackKernel = c.deSitterLookbackTime
	case c.ok0 == 0 && c.om0 == 1:
		c.dcZ1Z2Kernel = c.einsteinDeSitterComovingDistance
		c.ageKernel = c.einsteinDeSitterAge
		c.lookbackKernel = c.einsteinDeSitterLookbackTime
	case c.ok0 == 0 && c.om0 > 0:
		// The hypergeometric solver needs 0 < Om0 < 1: above critical
		// density its argument leaves the real domain.
		if c.om0 < 1 {
			c.dcZ1Z2Kernel = c.hypergeometricComovingDistance
		}
		c.ageKernel = c.flatAge
		c.lookbackKernel = c.flatLookbackTime
	case c.ok0 != 0:
		c.dcZ1Z2Kernel = c.ellipticComovingDistance
	}
}

// Accessors for the z = 0 parameters.

// H0 returns the Hubble constant in km/s/Mpc.
func (c *FLRW) H0() Quantity { return scalarQ(c.h0, units.KmPerSecPerMpc) }

// Om0 returns the matter density parameter at z = 0, including any massive
// neutrinos.
func (c *FLRW) Om0() float64 { return c.om0 }

// Ode0 returns the dark energy density parameter at z = 0.
func (c *FLRW) Ode0() float64 { return c.ode0 }

// Ok0 returns the curvature density parameter at z = 0.
func (c *FLRW) Ok0() float64 { return c.ok0 }

// Ogamma0 returns the photon density parameter at z = 0.
func (c *FLRW) Ogamma0() float64 { return c.ogamma0 }

// Onu0 returns the neutrino density parameter at z = 0.
func (c *FLRW) Onu0() float64 { return c.onu0 }

// Ob0 returns the baryon density parameter at z = 0, or NaN when the model
// was built without one.
func (c *FLRW) Ob0() float64 { return c.ob0 }

// Odm0 returns the dark matter density parameter at z = 0, or NaN when the
// model has no baryon density to subtract.
func (c *FLRW) Odm0() float64 { return c.om0 - c.ob0 }

// Otot0 returns the total density parameter at z = 0.
func (c *FLRW) Otot0() float64 {
	return c.om0 + c.ogamma0 + c.onu0 + c.ode0 + c.ok0
}

// Tcmb0 returns the CMB temperature at z = 0 in K.
func (c *FLRW) Tcmb0() Quantity { return scalarQ(c.tcmb0, units.Kelvin) }

// Tnu0 returns the neutrino background temperature at z = 0 in K.
func (c *FLRW) Tnu0() Quantity { return scalarQ(c.tnu0, units.Kelvin) }

// Neff returns the effective number of neutrino species.
func (c *FLRW) Neff() float64 { return c.neff }

// MNu returns the neutrino masses in eV, one entry per species, or nil
// when the model has no neutrino sector.
func (c *FLRW) MNu() []float64 {
	if c.mnu == nil {
		return nil
	}
	out := make([]float64, len(c.mnu))
	copy(out, c.mnu)
	return out
}

// HasMassiveNu reports whether any neutrino species is massive.
func (c *FLRW) HasMassiveNu() bool { return c.massiveNu }

// DarkEnergy returns the model's dark energy component.
func (c *FLRW) DarkEnergy() DarkEnergy { return c.de }

// HubbleDistance returns c/H0 in Mpc.
func (c *FLRW) HubbleDistance() Quantity {
	return scalarQ(c.hubbleDistance, units.Megaparsec)
}

// HubbleTime returns 1/H0 in Gyr.
func (c *FLRW) HubbleTime() Quantity {
	return scalarQ(c.hubbleTime, units.Gigayear)
}

// CriticalDensity0 returns the critical density at z = 0 in g/cm^3.
func (c *FLRW) CriticalDensity0() Quantity {
	return scalarQ(c.critDens0, units.GramPerCubicCentimeter)
}

// Name returns the model's label, e.g. "Planck18". Unnamed models return
// the empty string.
func (c *FLRW) Name() string { return c.name }

// IsFlat reports whether the model has exactly zero spatial curvature.
func (c *FLRW) IsFlat() bool { return c.ok0 == 0 }

func (c *FLRW) String() string {
	b := &strings.Builder{}
	fmt.Fprintf(b, "%s(", c.family)
	if c.name != "" {
		fmt.Fprintf(b, "name=%q, ", c.name)
	}
	fmt.Fprintf(b, "H0=%g km/s/Mpc, Om0=%g, Ode0=%g", c.h0, c.om0, c.ode0)
	if c.tcmb0 > 0 {
		fmt.Fprintf(b, ", Tcmb0=%g K, Neff=%g, m_nu=%v eV",
			c.tcmb0, c.neff, c.mnu)
	}
	if !math.IsNaN(c.ob0) {
		fmt.Fprintf(b, ", Ob0=%g", c.ob0)
	}
	fmt.Fprintf(b, ")")
	return b.String()
}

// mapArray broadcasts a scalar kernel over z.
func mapArray(f func(float64) float64, z *nd.Array) *nd.Array {
	return nd.Map(f, z)
}

// mapQ broadcasts a scalar kernel over z and attaches a unit.
func mapQ(f func(float64) float64, z *nd.Array, u units.Unit) Quantity {
	return Quantity{arr: nd.Map(f, z), unit: u}
}

// map2Q broadcasts a two-redshift kernel over z1 and z2, which must have
// broadcast-compatible shapes.
func map2Q(f func(z1, z2 float64) float64, z1, z2 *nd.Array, u units.Unit) (Quantity, error) {
	arr, err := nd.Map2(f, z1, z2)
	if err != nil {
		return Quantity{}, fmt.Errorf("flrw: z1 and z2 have different shapes: %w", err)
	}
	return Quantity{arr: arr, unit: u}, nil
}
