package cmd

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/phil-mansfield/flrw"
	"github.com/phil-mansfield/flrw/logging"
	"github.com/phil-mansfield/flrw/math/nd"
	"github.com/phil-mansfield/flrw/parse"
)

// distColumns are the quantities the 'dist' mode can print.
var distColumns = map[string]column{
	"dc": {"DC/Mpc",
		func(c *flrw.FLRW, z *nd.Array) ([]float64, error) {
			return c.ComovingDistance(z).Values(), nil
		}},
	"dm": {"DM/Mpc",
		func(c *flrw.FLRW, z *nd.Array) ([]float64, error) {
			return c.ComovingTransverseDistance(z).Values(), nil
		}},
	"da": {"DA/Mpc",
		func(c *flrw.FLRW, z *nd.Array) ([]float64, error) {
			return c.AngularDiameterDistance(z).Values(), nil
		}},
	"dl": {"DL/Mpc",
		func(c *flrw.FLRW, z *nd.Array) ([]float64, error) {
			return c.LuminosityDistance(z).Values(), nil
		}},
	"distmod": {"DistMod/mag",
		func(c *flrw.FLRW, z *nd.Array) ([]float64, error) {
			return c.DistMod(z).Values(), nil
		}},
	"adist": {"AbsorptionDistance",
		func(c *flrw.FLRW, z *nd.Array) ([]float64, error) {
			return c.AbsorptionDistance(z).Data(), nil
		}},
	"scale": {"Scale/(arcsec/kpc)",
		func(c *flrw.FLRW, z *nd.Array) ([]float64, error) {
			return c.ArcsecPerKpcProper(z).Values(), nil
		}},
}

// distTableColumns are the distance columns that a DistanceTable can
// evaluate without integrating, used by the 'Interpolate' option.
var distTableColumns = map[string]struct {
	header string
	eval   func(t *flrw.DistanceTable, zs []float64) []float64
}{
	"dc": {"DC/Mpc",
		func(t *flrw.DistanceTable, zs []float64) []float64 {
			return t.ComovingDistanceAll(zs)
		}},
	"dm": {"DM/Mpc",
		func(t *flrw.DistanceTable, zs []float64) []float64 {
			out := make([]float64, len(zs))
			for i, z := range zs {
				out[i] = t.ComovingTransverseDistance(z)
			}
			return out
		}},
	"da": {"DA/Mpc",
		func(t *flrw.DistanceTable, zs []float64) []float64 {
			out := make([]float64, len(zs))
			for i, z := range zs {
				out[i] = t.AngularDiameterDistance(z)
			}
			return out
		}},
	"dl": {"DL/Mpc",
		func(t *flrw.DistanceTable, zs []float64) []float64 {
			out := make([]float64, len(zs))
			for i, z := range zs {
				out[i] = t.LuminosityDistance(z)
			}
			return out
		}},
}

// DistConfig contains the configuration fields for the 'dist' mode of the
// flrwcalc tool.
type DistConfig struct {
	zs      []float64
	columns []string
	digits  int64

	interpolate  bool
	tableSamples int64
}

var _ Mode = &DistConfig{}

// ExampleConfig creates an example dist.config file.
func (config *DistConfig) ExampleConfig() string {
	return `[dist.config]
# Redshifts to evaluate. If Z isn't set, redshifts are read from the first
# column of stdin instead, which makes it easy to chain flrwcalc with other
# tools.
Z = 0.1, 0.5, 1, 2

# Columns to print, in order. The valid columns are:
# dc      - line of sight comoving distance, in Mpc
# dm      - transverse comoving distance, in Mpc
# da      - angular diameter distance, in Mpc
# dl      - luminosity distance, in Mpc
# distmod - distance modulus, in mag
# adist   - dimensionless absorption distance
# scale   - proper transverse scale, in arcsec/kpc
#
# Columns defaults to dc, dm, da, dl if not set.
#
# Columns = dc, dm, da, dl

# Number of significant digits to print. Defaults to 8 if not set.
#
# Digits = 8

# Interpolate speeds up large inputs by evaluating distances on a spline
# table instead of integrating at every redshift. It only supports the dc,
# dm, da, and dl columns and needs every redshift to be >= 0. TableSamples
# sets the number of table points.
#
# Interpolate = false
# TableSamples = 1024`
}

// ReadConfig reads a dist.config file into config.
func (config *DistConfig) ReadConfig(fname string, flags []string) error {
	vars := parse.NewConfigVars("dist.config")
	vars.Floats(&config.zs, "Z", []float64{})
	vars.Strings(&config.columns, "Columns",
		[]string{"dc", "dm", "da", "dl"})
	vars.Int(&config.digits, "Digits", 8)
	vars.Bool(&config.interpolate, "Interpolate", false)
	vars.Int(&config.tableSamples, "TableSamples", 1024)

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
func (config *DistConfig) validate() error {
	if err := checkColumns("dist", config.columns, distColumns); err != nil {
		return err
	}
	if err := checkDigits(config.digits); err != nil {
		return err
	}

	if config.interpolate {
		for _, name := range config.columns {
			if _, ok := distTableColumns[name]; !ok {
				return fmt.Errorf("The 'Interpolate' option only supports "+
					"the dc, dm, da, and dl columns, but 'Columns' "+
					"contains '%s'.", name)
			}
		}
		if config.tableSamples < 16 {
			return fmt.Errorf("The 'TableSamples' variable is set to %d, "+
				"but the interpolation table needs at least 16 samples.",
				config.tableSamples)
		}
	}

	return nil
}

// Run executes the dist mode of the flrwcalc tool.
func (config *DistConfig) Run(
	gConfig *GlobalConfig, log *zap.Logger, stdin []byte,
) ([]string, error) {
	t := time.Now()

	c, err := gConfig.Model(log)
	if err != nil {
		return nil, err
	}
	log.Info("running the dist mode", zap.String("model", c.String()))

	zs, err := getRedshifts(config.zs, stdin)
	if err != nil {
		return nil, err
	}
	if err := checkRedshifts(zs); err != nil {
		return nil, err
	}

	var (
		headers []string
		table   [][]float64
	)
	if config.interpolate {
		headers, table, err = config.runInterpolated(c, zs, log)
	} else {
		headers, table, err = evalColumns(c, distColumns, config.columns, zs)
	}
	if err != nil {
		return nil, err
	}

	lines := formatTable(headers, table, config.digits)

	log.Debug("dist mode finished", append([]zap.Field{
		zap.Duration("time", time.Since(t))}, logging.MemStats()...)...)
	return lines, nil
}

// runInterpolated evaluates the distance columns on a shared spline table
// instead of integrating at every redshift.
func (config *DistConfig) runInterpolated(
	c *flrw.FLRW, zs []float64, log *zap.Logger,
) ([]string, [][]float64, error) {
	zmax := 0.0
	for _, z := range zs {
		if z < 0 {
			return nil, nil, fmt.Errorf("The 'Interpolate' option only "+
				"supports redshifts >= 0, but I was given %g.", z)
		}
		if z > zmax {
			zmax = z
		}
	}
	if zmax == 0 {
		return nil, nil, fmt.Errorf("The 'Interpolate' option needs a " +
			"positive maximum redshift to build its table, but every " +
			"input redshift is 0.")
	}

	table := flrw.NewDistanceTable(c, zmax, int(config.tableSamples))
	log.Info("built a distance interpolation table",
		zap.Float64("zmax", zmax),
		zap.Int("samples", int(config.tableSamples)))

	headers := []string{"z"}
	out := [][]float64{zs}
	for _, name := range config.columns {
		col := distTableColumns[name]
		headers = append(headers, col.header)
		out = append(out, col.eval(table, zs))
	}
	return headers, out, nil
}
