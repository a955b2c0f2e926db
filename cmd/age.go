package cmd

import (
	"time"

	"go.uber.org/zap"

	"github.com/phil-mansfield/flrw"
	"github.com/phil-mansfield/flrw/logging"
	"github.com/phil-mansfield/flrw/math/nd"
	"github.com/phil-mansfield/flrw/parse"
)

// ageColumns are the quantities the 'age' mode can print.
var ageColumns = map[string]column{
	"age": {"Age/Gyr",
		func(c *flrw.FLRW, z *nd.Array) ([]float64, error) {
			return c.Age(z).Values(), nil
		}},
	"lookback": {"LookbackTime/Gyr",
		func(c *flrw.FLRW, z *nd.Array) ([]float64, error) {
			return c.LookbackTime(z).Values(), nil
		}},
	"ltd": {"LookbackDistance/Mpc",
		func(c *flrw.FLRW, z *nd.Array) ([]float64, error) {
			return c.LookbackDistance(z).Values(), nil
		}},
}

// AgeConfig contains the configuration fields for the 'age' mode of the
// flrwcalc tool.
type AgeConfig struct {
	zs      []float64
	columns []string
	digits  int64
}

var _ Mode = &AgeConfig{}

// ExampleConfig creates an example age.config file.
func (config *AgeConfig) ExampleConfig() string {
	return `[age.config]
# Redshifts to evaluate. If Z isn't set, redshifts are read from the first
# column of stdin instead.
Z = 0.1, 0.5, 1, 2

# Columns to print, in order. The valid columns are:
# age      - age of the universe at z, in Gyr
# lookback - lookback time to z, in Gyr
# ltd      - lookback distance to z, in Mpc
#
# Columns defaults to age, lookback if not set.
#
# Columns = age, lookback

# Number of significant digits to print. Defaults to 8 if not set.
#
# Digits = 8`
}

// ReadConfig reads an age.config file into config.
func (config *AgeConfig) ReadConfig(fname string, flags []string) error {
	vars := parse.NewConfigVars("age.config")
	vars.Floats(&config.zs, "Z", []float64{})
	vars.Strings(&config.columns, "Columns", []string{"age", "lookback"})
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
func (config *AgeConfig) validate() error {
	if err := checkColumns("age", config.columns, ageColumns); err != nil {
		return err
	}
	return checkDigits(config.digits)
}

// Run executes the age mode of the flrwcalc tool.
func (config *AgeConfig) Run(
	gConfig *GlobalConfig, log *zap.Logger, stdin []byte,
) ([]string, error) {
	t := time.Now()

	c, err := gConfig.Model(log)
	if err != nil {
		return nil, err
	}
	log.Info("running the age mode", zap.String("model", c.String()))

	zs, err := getRedshifts(config.zs, stdin)
	if err != nil {
		return nil, err
	}
	if err := checkRedshifts(zs); err != nil {
		return nil, err
	}

	headers, table, err := evalColumns(c, ageColumns, config.columns, zs)
	if err != nil {
		return nil, err
	}

	lines := formatTable(headers, table, config.digits)

	log.Debug("age mode finished", append([]zap.Field{
		zap.Duration("time", time.Since(t))}, logging.MemStats()...)...)
	return lines, nil
}
