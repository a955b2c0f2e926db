package cmd

import (
	"time"

	"go.uber.org/zap"

	"github.com/phil-mansfield/flrw"
	"github.com/phil-mansfield/flrw/logging"
	"github.com/phil-mansfield/flrw/math/nd"
	"github.com/phil-mansfield/flrw/parse"
)

// volColumns are the quantities the 'vol' mode can print.
var volColumns = map[string]column{
	"vc": {"VC/Mpc^3",
		func(c *flrw.FLRW, z *nd.Array) ([]float64, error) {
			return c.ComovingVolume(z).Values(), nil
		}},
	"dvc": {"dVC/(Mpc^3/sr)",
		func(c *flrw.FLRW, z *nd.Array) ([]float64, error) {
			return c.DifferentialComovingVolume(z).Values(), nil
		}},
}

// VolConfig contains the configuration fields for the 'vol' mode of the
// flrwcalc tool.
type VolConfig struct {
	zs      []float64
	columns []string
	digits  int64
}

var _ Mode = &VolConfig{}

// ExampleConfig creates an example vol.config file.
func (config *VolConfig) ExampleConfig() string {
	return `[vol.config]
# Redshifts to evaluate. If Z isn't set, redshifts are read from the first
# column of stdin instead.
Z = 0.1, 0.5, 1, 2

# Columns to print, in order. The valid columns are:
# vc  - comoving volume inside z, in Mpc^3
# dvc - differential comoving volume at z, in Mpc^3 per steradian
#
# Columns defaults to vc, dvc if not set.
#
# Columns = vc, dvc

# Number of significant digits to print. Defaults to 8 if not set.
#
# Digits = 8`
}

// ReadConfig reads a vol.config file into config.
func (config *VolConfig) ReadConfig(fname string, flags []string) error {
	vars := parse.NewConfigVars("vol.config")
	vars.Floats(&config.zs, "Z", []float64{})
	vars.Strings(&config.columns, "Columns", []string{"vc", "dvc"})
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
func (config *VolConfig) validate() error {
	if err := checkColumns("vol", config.columns, volColumns); err != nil {
		return err
	}
	return checkDigits(config.digits)
}

// Run executes the vol mode of the flrwcalc tool.
func (config *VolConfig) Run(
	gConfig *GlobalConfig, log *zap.Logger, stdin []byte,
) ([]string, error) {
	t := time.Now()

	c, err := gConfig.Model(log)
	if err != nil {
		return nil, err
	}
	log.Info("running the vol mode", zap.String("model", c.String()))

	zs, err := getRedshifts(config.zs, stdin)
	if err != nil {
		return nil, err
	}
	if err := checkRedshifts(zs); err != nil {
		return nil, err
	}

	headers, table, err := evalColumns(c, volColumns, config.columns, zs)
	if err != nil {
		return nil, err
	}

	lines := formatTable(headers, table, config.digits)

	log.Debug("vol mode finished", append([]zap.Field{
		zap.Duration("time", time.Since(t))}, logging.MemStats()...)...)
	return lines, nil
}
