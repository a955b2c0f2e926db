package cmd

import (
	"time"

	"go.uber.org/zap"

	"github.com/phil-mansfield/flrw"
	"github.com/phil-mansfield/flrw/logging"
	"github.com/phil-mansfield/flrw/math/nd"
	"github.com/phil-mansfield/flrw/parse"
)

// eosColumns are the quantities the 'eos' mode can print.
var eosColumns = map[string]column{
	"e": {"E",
		func(c *flrw.FLRW, z *nd.Array) ([]float64, error) {
			return c.EFunc(z).Data(), nil
		}},
	"h": {"H/(km/s/Mpc)",
		func(c *flrw.FLRW, z *nd.Array) ([]float64, error) {
			return c.H(z).Values(), nil
		}},
	"w": {"w",
		func(c *flrw.FLRW, z *nd.Array) ([]float64, error) {
			return c.W(z).Data(), nil
		}},
	"de": {"DEDensity",
		func(c *flrw.FLRW, z *nd.Array) ([]float64, error) {
			return c.DeDensityScale(z).Data(), nil
		}},
	"om": {"Om",
		func(c *flrw.FLRW, z *nd.Array) ([]float64, error) {
			return c.Om(z).Data(), nil
		}},
	"ob": {"Ob",
		func(c *flrw.FLRW, z *nd.Array) ([]float64, error) {
			a, err := c.Ob(z)
			if err != nil {
				return nil, err
			}
			return a.Data(), nil
		}},
	"odm": {"Odm",
		func(c *flrw.FLRW, z *nd.Array) ([]float64, error) {
			a, err := c.Odm(z)
			if err != nil {
				return nil, err
			}
			return a.Data(), nil
		}},
	"ode": {"Ode",
		func(c *flrw.FLRW, z *nd.Array) ([]float64, error) {
			return c.Ode(z).Data(), nil
		}},
	"ok": {"Ok",
		func(c *flrw.FLRW, z *nd.Array) ([]float64, error) {
			return c.Ok(z).Data(), nil
		}},
	"ogamma": {"Ogamma",
		func(c *flrw.FLRW, z *nd.Array) ([]float64, error) {
			return c.Ogamma(z).Data(), nil
		}},
	"onu": {"Onu",
		func(c *flrw.FLRW, z *nd.Array) ([]float64, error) {
			return c.Onu(z).Data(), nil
		}},
	"otot": {"Otot",
		func(c *flrw.FLRW, z *nd.Array) ([]float64, error) {
			return c.Otot(z).Data(), nil
		}},
	"tcmb": {"Tcmb/K",
		func(c *flrw.FLRW, z *nd.Array) ([]float64, error) {
			return c.Tcmb(z).Values(), nil
		}},
	"tnu": {"Tnu/K",
		func(c *flrw.FLRW, z *nd.Array) ([]float64, error) {
			return c.Tnu(z).Values(), nil
		}},
}

// EOSConfig contains the configuration fields for the 'eos' mode of the
// flrwcalc tool.
type EOSConfig struct {
	zs      []float64
	columns []string
	digits  int64
}

var _ Mode = &EOSConfig{}

// ExampleConfig creates an example eos.config file.
func (config *EOSConfig) ExampleConfig() string {
	return `[eos.config]
# Redshifts to evaluate. If Z isn't set, redshifts are read from the first
# column of stdin instead.
Z = 0, 0.5, 1, 2, 10

# Columns to print, in order. The valid columns are:
# e      - the dimensionless Hubble parameter E(z) = H(z)/H0
# h      - the Hubble parameter, in km/s/Mpc
# w      - the dark energy equation of state w(z)
# de     - the dark energy density relative to its present value
# om     - the matter density parameter at z
# ob     - the baryon density parameter at z (needs the Ob0 variable)
# odm    - the dark matter density parameter at z (needs the Ob0 variable)
# ode    - the dark energy density parameter at z
# ok     - the curvature density parameter at z
# ogamma - the photon density parameter at z
# onu    - the neutrino density parameter at z
# otot   - the sum of the density parameters at z
# tcmb   - the CMB temperature at z, in K
# tnu    - the neutrino background temperature at z, in K
#
# Columns defaults to e, w, om, ode if not set.
#
# Columns = e, w, om, ode

# Number of significant digits to print. Defaults to 8 if not set.
#
# Digits = 8`
}

// ReadConfig reads an eos.config file into config.
func (config *EOSConfig) ReadConfig(fname string, flags []string) error {
	vars := parse.NewConfigVars("eos.config")
	vars.Floats(&config.zs, "Z", []float64{})
	vars.Strings(&config.columns, "Columns",
		[]string{"e", "w", "om", "ode"})
	vars.Int(&config.digits, "Digits", 8)

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

// validate checks whether all the fields of config are valid.
func (config *EOSConfig) validate() error {
	if err := checkColumns("eos", config.columns, eosColumns); err != nil {
		return err
	}
	return checkDigits(config.digits)
}

// Run executes the eos mode of the flrwcalc tool.
func (config *EOSConfig) Run(
	gConfig *GlobalConfig, log *zap.Logger, stdin []byte,
) ([]string, error) {
	t := time.Now()

	c, err := gConfig.Model(log)
	if err != nil {
		return nil, err
	}
	log.Info("running the eos mode", zap.String("model", c.String()))

	zs, err := getRedshifts(config.zs, stdin)
	if err != nil {
		return nil, err
	}
	if err := checkRedshifts(zs); err != nil {
		return nil, err
	}

	headers, table, err := evalColumns(c, eosColumns, config.columns, zs)
	if err != nil {
		return nil, err
	}

	lines := formatTable(headers, table, config.digits)

	log.Debug("eos mode finished", append([]zap.Field{
		zap.Duration("time", time.Since(t))}, logging.MemStats()...)...)
	return lines, nil
}
