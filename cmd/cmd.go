/*package cmd contains code for running flrwcalc in its various command
line modes */
package cmd

import (
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/phil-mansfield/flrw"
	"github.com/phil-mansfield/flrw/math/nd"
	"github.com/phil-mansfield/flrw/parse"
	"github.com/phil-mansfield/flrw/version"
)

var ModeNames map[string]Mode = map[string]Mode{
	"eos":  &EOSConfig{},
	"dist": &DistConfig{},
	"age":  &AgeConfig{},
	"vol":  &VolConfig{},
}

// Mode represents the interface used by the main binary when interacting with
// a given command line mode.
type Mode interface {
	// ReadConfig reads a mode-specific config file and stores its contents
	// within the Mode. An empty fname skips the file and only applies
	// command line flags.
	ReadConfig(fname string, flags []string) error
	// ExampleConfig returns the text of an example config file of this mode.
	ExampleConfig() string
	// Run executes the mode. It takes an initialized GlobalConfig struct, a
	// logger for diagnostics, and the contents of stdin. It will return a
	// slice of lines that should be written to stdout along with an error if
	// one occurs.
	Run(gConfig *GlobalConfig, log *zap.Logger, stdin []byte) ([]string, error)
}

// GlobalConfig is a config file used by every mode. It describes the
// cosmology that the mode evaluates, either as the name of a built-in
// realization or as an explicit set of parameters.
type GlobalConfig struct {
	version string

	realization string

	family             string
	h0, om0, ode0      float64
	w0, wa, wp, zp, wz float64

	tcmb0, neff float64
	mNu         []float64
	ob0         float64
	name        string
}

var _ Mode = &GlobalConfig{}

// RealizationConfig returns a GlobalConfig pinned to the named built-in
// cosmology. It backs the -r command line shortcut.
func RealizationConfig(name string) (*GlobalConfig, error) {
	config := &GlobalConfig{}
	err := config.ReadConfig("", []string{"--Realization", name})
	if err != nil {
		return nil, err
	}
	return config, nil
}

// ReadConfig reads a cosmology config file into config and applies any
// command line flags on top of it.
func (config *GlobalConfig) ReadConfig(fname string, flags []string) error {
	vars := parse.NewConfigVars("cosmology")
	vars.String(&config.version, "Version", version.SourceVersion)
	vars.String(&config.realization, "Realization", "")
	vars.String(&config.family, "Family", "lambda")
	vars.Float(&config.h0, "H0", math.NaN())
	vars.Float(&config.om0, "Om0", math.NaN())
	vars.Float(&config.ode0, "Ode0", math.NaN())
	vars.Float(&config.w0, "W0", -1)
	vars.Float(&config.wa, "Wa", 0)
	vars.Float(&config.wp, "Wp", -1)
	vars.Float(&config.zp, "Zp", 0)
	vars.Float(&config.wz, "Wz", 0)
	vars.Float(&config.tcmb0, "Tcmb0", 0)
	vars.Float(&config.neff, "Neff", 3.04)
	vars.Floats(&config.mNu, "MNu", []float64{})
	vars.Float(&config.ob0, "Ob0", math.NaN())
	vars.String(&config.name, "Name", "")

	if fname == "" {
		if len(flags) == 0 {
			return nil
		}
		if err := parse.ReadFlags(flags, vars); err != nil {
			return err
		}
		return config.validate()
	}
	if err := parse.ReadConfig(fname, vars); err != nil {
		return err
	}
	if err := parse.ReadFlags(flags, vars); err != nil {
		return err
	}

	return config.validate()
}

// validate checks that the variables of config describe a usable cosmology.
func (config *GlobalConfig) validate() error {
	major, minor, patch, err := version.Parse(config.version)
	if err != nil {
		return fmt.Errorf("I couldn't parse the 'Version' variable: %s",
			err.Error())
	}
	smajor, sminor, spatch, _ := version.Parse(version.SourceVersion)
	if major != smajor || minor != sminor || patch != spatch {
		return fmt.Errorf("The 'Version' variable is set to %s, but the "+
			"version of the source is %s.", config.version,
			version.SourceVersion)
	}

	if config.realization != "" {
		return config.validateRealization()
	}

	switch config.family {
	case "lambda", "wcdm", "w0wa", "wpwa", "w0wz":
	default:
		return fmt.Errorf("The 'Family' variable is set to '%s', which I "+
			"don't recognize. The valid families are lambda, wcdm, w0wa, "+
			"wpwa, and w0wz.", config.family)
	}

	switch {
	case math.IsNaN(config.h0):
		return fmt.Errorf("The 'H0' variable isn't set.")
	case config.h0 <= 0:
		return fmt.Errorf("The 'H0' variable is set to %g, but it needs to "+
			"be positive.", config.h0)
	}

	switch {
	case math.IsNaN(config.om0):
		return fmt.Errorf("The 'Om0' variable isn't set.")
	case config.om0 < 0:
		return fmt.Errorf("The 'Om0' variable is set to %g, but it can't "+
			"be negative.", config.om0)
	}

	switch config.family {
	case "wpwa", "w0wz":
		if math.IsNaN(config.ode0) {
			return fmt.Errorf("The '%s' family doesn't have a flat form, "+
				"so the 'Ode0' variable needs to be set.", config.family)
		}
	}
	if config.family == "wpwa" && config.zp <= -1 {
		return fmt.Errorf("The 'Zp' variable is set to %g, but the pivot "+
			"redshift needs to be larger than -1.", config.zp)
	}

	if config.tcmb0 < 0 {
		return fmt.Errorf("The 'Tcmb0' variable is set to %g, but it can't "+
			"be negative.", config.tcmb0)
	}
	if config.neff < 0 {
		return fmt.Errorf("The 'Neff' variable is set to %g, but it can't "+
			"be negative.", config.neff)
	}

	for _, m := range config.mNu {
		if m < 0 {
			return fmt.Errorf("The 'MNu' variable contains the mass %g, "+
				"but neutrino masses can't be negative.", m)
		}
	}
	nNu := int(math.Floor(config.neff))
	if n := len(config.mNu); n > 1 && n != nNu {
		return fmt.Errorf("The 'MNu' variable has %d masses, but 'Neff' = "+
			"%g gives %d neutrino species. Set one mass per species or a "+
			"single shared mass.", n, config.neff, nNu)
	}
	if len(config.mNu) > 0 && config.tcmb0 <= 0 {
		return fmt.Errorf("The 'MNu' variable is set, but 'Tcmb0' is 0, so " +
			"the model has no neutrinos to give mass to. Set 'Tcmb0' " +
			"(2.7255 is the standard value).")
	}

	if !math.IsNaN(config.ob0) {
		switch {
		case config.ob0 < 0:
			return fmt.Errorf("The 'Ob0' variable is set to %g, but it "+
				"can't be negative.", config.ob0)
		case config.ob0 > config.om0:
			return fmt.Errorf("The 'Ob0' variable is set to %g, but it "+
				"can't be larger than 'Om0' = %g.", config.ob0, config.om0)
		}
	}

	return nil
}

// validateRealization checks that the 'Realization' variable names a
// built-in cosmology and that no explicit parameters fight with it.
func (config *GlobalConfig) validateRealization() error {
	found := false
	for _, name := range flrw.Realizations() {
		if strings.EqualFold(name, config.realization) {
			config.realization = name
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("The 'Realization' variable is set to '%s', "+
			"which I don't recognize. The built-in realizations are %s.",
			config.realization, strings.Join(flrw.Realizations(), ", "))
	}

	if set := config.setVariables(); len(set) > 0 {
		return fmt.Errorf("The 'Realization' variable is set to '%s', but "+
			"'%s' is also set. A realization fixes the full cosmology, so "+
			"the other cosmological variables must be left at their "+
			"defaults.", config.realization, set[0])
	}

	return nil
}

// setVariables returns the names of the cosmological variables that no
// longer have their default values. 'Name' isn't included because
// relabeling a realization is harmless.
func (config *GlobalConfig) setVariables() []string {
	set := []string{}
	if config.family != "lambda" {
		set = append(set, "Family")
	}
	if !math.IsNaN(config.h0) {
		set = append(set, "H0")
	}
	if !math.IsNaN(config.om0) {
		set = append(set, "Om0")
	}
	if !math.IsNaN(config.ode0) {
		set = append(set, "Ode0")
	}
	if config.w0 != -1 {
		set = append(set, "W0")
	}
	if config.wa != 0 {
		set = append(set, "Wa")
	}
	if config.wp != -1 {
		set = append(set, "Wp")
	}
	if config.zp != 0 {
		set = append(set, "Zp")
	}
	if config.wz != 0 {
		set = append(set, "Wz")
	}
	if config.tcmb0 != 0 {
		set = append(set, "Tcmb0")
	}
	if config.neff != 3.04 {
		set = append(set, "Neff")
	}
	if len(config.mNu) > 0 {
		set = append(set, "MNu")
	}
	if !math.IsNaN(config.ob0) {
		set = append(set, "Ob0")
	}
	return set
}

// Model builds the cosmology that config describes. Warnings from the model
// are routed into log.
func (config *GlobalConfig) Model(log *zap.Logger) (*flrw.FLRW, error) {
	warn := flrw.WarningHandler(func(msg string) { log.Warn(msg) })

	if config.realization != "" {
		base, err := flrw.Realization(config.realization)
		if err != nil {
			return nil, err
		}
		name := base.Name()
		if config.name != "" {
			name = config.name
		}
		// Realization models are shared, so rebuild from the published
		// parameters to attach the warning handler.
		return flrw.FlatLambdaCDM(base.H0().Float(), base.Om0(),
			flrw.Tcmb0(base.Tcmb0().Float()), flrw.Neff(base.Neff()),
			flrw.MNu(base.MNu()...), flrw.Ob0(base.Ob0()),
			flrw.Name(name), warn,
		), nil
	}

	opts := []flrw.Option{warn,
		flrw.Tcmb0(config.tcmb0), flrw.Neff(config.neff)}
	if len(config.mNu) > 0 {
		opts = append(opts, flrw.MNu(config.mNu...))
	}
	if !math.IsNaN(config.ob0) {
		opts = append(opts, flrw.Ob0(config.ob0))
	}
	if config.name != "" {
		opts = append(opts, flrw.Name(config.name))
	}

	flat := math.IsNaN(config.ode0)
	switch config.family {
	case "lambda":
		if flat {
			return flrw.FlatLambdaCDM(config.h0, config.om0, opts...), nil
		}
		return flrw.LambdaCDM(config.h0, config.om0, config.ode0,
			opts...), nil
	case "wcdm":
		if flat {
			return flrw.FlatWCDM(config.h0, config.om0, config.w0,
				opts...), nil
		}
		return flrw.WCDM(config.h0, config.om0, config.ode0, config.w0,
			opts...), nil
	case "w0wa":
		if flat {
			return flrw.FlatW0WaCDM(config.h0, config.om0, config.w0,
				config.wa, opts...), nil
		}
		return flrw.W0WaCDM(config.h0, config.om0, config.ode0, config.w0,
			config.wa, opts...), nil
	case "wpwa":
		return flrw.WpWaCDM(config.h0, config.om0, config.ode0, config.wp,
			config.wa, config.zp, opts...), nil
	case "w0wz":
		return flrw.W0WzCDM(config.h0, config.om0, config.ode0, config.w0,
			config.wz, opts...), nil
	}
	panic("Impossible")
}

// ExampleConfig returns an example cosmology configuration file.
func (config *GlobalConfig) ExampleConfig() string {
	return fmt.Sprintf(`[cosmology]
# Target version of flrwcalc. This variable only lets flrwcalc notice when a
# config file and the compiled tool are from different versions. It defaults
# to the source version if not included.
Version = %s

# The simplest way to pick a cosmology is to name a built-in realization.
# 'flrwcalc ls' lists them. When Realization is set, none of the variables
# below it may be.
Realization = Planck18

# Alternatively, spell the model out. Family selects the dark energy
# equation of state:
# lambda - cosmological constant, w = -1
# wcdm   - constant w = W0
# w0wa   - w(a) = W0 + Wa (1 - a)
# wpwa   - w(a) = Wp + Wa (ap - a), with the pivot ap set by Zp
# w0wz   - w(z) = W0 + Wz z
#
# Family defaults to lambda. H0 is in km/s/Mpc. Leaving Ode0 unset makes the
# model flat. The wpwa and w0wz families have no flat form, so they always
# need Ode0.
#
# Family = lambda
# H0 = 67.66
# Om0 = 0.30966
# Ode0 = 0.69034
# W0 = -1
# Wa = 0
# Wp = -1
# Zp = 0
# Wz = 0

# Optional sector variables. The default Tcmb0 of 0 turns photons and
# neutrinos off, which is accurate enough for most low-redshift work and
# makes many quantities exact. MNu gives neutrino masses in eV, either one
# shared mass or one per species. Ob0 is only needed by the baryon columns
# of the eos mode.
#
# Tcmb0 = 2.7255
# Neff = 3.046
# MNu = 0, 0, 0.06
# Ob0 = 0.04897

# An optional label used in diagnostic output.
#
# Name = my-cosmology`, version.SourceVersion)
}

// Run is a dummy method which allows GlobalConfig to conform to the Mode
// interface for testing purposes.
func (config *GlobalConfig) Run(
	gConfig *GlobalConfig, log *zap.Logger, stdin []byte,
) ([]string, error) {
	panic("GlobalConfig.Run() should never be executed.")
}

// ListRealizations formats the table of built-in cosmologies that the 'ls'
// mode prints.
func ListRealizations() []string {
	lines := []string{
		"# Column contents: Name(0) H0/(km/s/Mpc)(1) Om0(2) Ob0(3) " +
			"Tcmb0/K(4) Neff(5) Sum MNu/eV(6) Age/Gyr(7)",
	}
	for _, name := range flrw.Realizations() {
		c, err := flrw.Realization(name)
		if err != nil {
			panic(err.Error())
		}

		mNuSum := 0.0
		for _, m := range c.MNu() {
			mNuSum += m
		}
		age := c.Age(nd.Scalar(0)).Float()

		lines = append(lines, fmt.Sprintf(
			"%-8s %6.2f %8.5f %8.5f %7.4f %6.3f %5.3f %7.3f",
			name, c.H0().Float(), c.Om0(), c.Ob0(), c.Tcmb0().Float(),
			c.Neff(), mNuSum, age,
		))
	}
	return lines
}
