package cmd

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/phil-mansfield/flrw"
	"github.com/phil-mansfield/flrw/cmd/cols"
	"github.com/phil-mansfield/flrw/math/nd"
)

// A column is a single quantity that a mode knows how to print. The header
// carries the unit, e.g. "DC/Mpc".
type column struct {
	header string
	eval   func(c *flrw.FLRW, z *nd.Array) ([]float64, error)
}

// columnNames returns the names in registry in alphabetical order.
func columnNames(registry map[string]column) []string {
	names := []string{}
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// checkColumns validates a mode's 'Columns' variable against the columns
// that the mode supports.
func checkColumns(
	mode string, names []string, registry map[string]column,
) error {
	if len(names) == 0 {
		return fmt.Errorf("The 'Columns' variable of the %s mode is empty.",
			mode)
	}
	for _, name := range names {
		if _, ok := registry[name]; !ok {
			return fmt.Errorf("The 'Columns' variable of the %s mode "+
				"contains '%s', which I don't recognize. The valid columns "+
				"are %s.", mode, name,
				strings.Join(columnNames(registry), ", "))
		}
	}
	return nil
}

// checkDigits validates a mode's 'Digits' variable.
func checkDigits(digits int64) error {
	if digits < 1 || digits > 17 {
		return fmt.Errorf("The 'Digits' variable is set to %d, but it "+
			"needs to be between 1 and 17.", digits)
	}
	return nil
}

// getRedshifts returns the redshifts a mode evaluates. They come from the
// 'Z' config variable if it is set and from the first column of stdin
// otherwise.
func getRedshifts(zs []float64, stdin []byte) ([]float64, error) {
	if len(zs) > 0 {
		return zs, nil
	}

	parsed, err := cols.Parse(stdin, []int{0})
	if err != nil {
		return nil, err
	}
	if len(parsed[0]) == 0 {
		return nil, fmt.Errorf("I wasn't given any redshifts. Either set " +
			"the 'Z' variable or pipe redshifts to stdin, one per line.")
	}
	return parsed[0], nil
}

// checkRedshifts returns an error if any redshift is at or below -1, where
// the scale factor stops being positive.
func checkRedshifts(zs []float64) error {
	for _, z := range zs {
		if math.IsNaN(z) || z <= -1 {
			return fmt.Errorf("I was given the redshift %g, but redshifts "+
				"need to be larger than -1.", z)
		}
	}
	return nil
}

// evalColumns evaluates the named columns of registry at the given
// redshifts. The redshifts themselves come back as the first column.
func evalColumns(
	c *flrw.FLRW, registry map[string]column, names []string, zs []float64,
) ([]string, [][]float64, error) {
	z := nd.FromSlice(zs)
	headers := []string{"z"}
	table := [][]float64{zs}

	for _, name := range names {
		col := registry[name]
		vals, err := col.eval(c, z)
		if err != nil {
			return nil, nil, fmt.Errorf("I couldn't compute the '%s' "+
				"column: %s", name, err.Error())
		}
		headers = append(headers, col.header)
		table = append(table, vals)
	}
	return headers, table, nil
}

// formatTable renders headers and columns as the lines a mode returns.
func formatTable(headers []string, table [][]float64, digits int64) []string {
	lines := []string{cols.CommentString(headers)}
	return append(lines, cols.Format(table, int(digits))...)
}
