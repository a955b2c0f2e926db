/*package parse reads the "[header]" config files and the "--Name value"
command line flags used by the flrwcalc tool. Variable names are case
insensitive, '#' starts a comment, and list values are comma separated.*/
package parse

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

/////////////////////
// Conversion Code //
/////////////////////

type varType int

const (
	intVar varType = iota
	floatVar
	floatsVar
	stringVar
	stringsVar
	boolVar
)

func (v varType) String() string {
	switch v {
	case intVar:
		return "int"
	case floatVar:
		return "float"
	case floatsVar:
		return "float list"
	case stringVar:
		return "string"
	case stringsVar:
		return "string list"
	case boolVar:
		return "bool"
	}
	panic("Impossible")
}

type conversionFunc func(string) bool

// ConfigVars is a set of typed variables which config files and command
// line flags may assign to. Registering a variable sets its default
// value immediately, so a ConfigVars can be used even when no config
// file is ever read.
type ConfigVars struct {
	name            string
	varNames        []string
	varTypes        []varType
	conversionFuncs []conversionFunc
}

// NewConfigVars creates an empty variable set for config files of the
// given type. A config file of type "cosmology" must start with the
// line "[cosmology]".
func NewConfigVars(name string) *ConfigVars {
	return &ConfigVars{name: name}
}

func intConv(ptr *int64) conversionFunc {
	return func(s string) bool {
		i, err := strconv.Atoi(s)
		if err != nil {
			return false
		}
		*ptr = int64(i)
		return true
	}
}

func floatConv(ptr *float64) conversionFunc {
	return func(s string) bool {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return false
		}
		*ptr = f
		return true
	}
}

func stringConv(ptr *string) conversionFunc {
	return func(s string) bool {
		*ptr = strings.Trim(s, " ")
		return true
	}
}

func boolConv(ptr *bool) conversionFunc {
	return func(s string) bool {
		b, err := strconv.ParseBool(s)
		if err != nil {
			return false
		}
		*ptr = b
		return true
	}
}

func strToList(a string) []string {
	strs := strings.Split(a, ",")
	for i := range strs {
		strs[i] = strings.Trim(strs[i], " ")
	}
	return strs
}

func floatsConv(ptr *[]float64) conversionFunc {
	return func(s string) bool {
		toks := strToList(s)
		*ptr = (*ptr)[:0]
		for j := range toks {
			f, err := strconv.ParseFloat(toks[j], 64)
			if err != nil {
				return false
			}
			*ptr = append(*ptr, f)
		}
		return true
	}
}

func stringsConv(ptr *[]string) conversionFunc {
	return func(s string) bool {
		toks := strToList(s)
		*ptr = (*ptr)[:0]
		for j := range toks {
			*ptr = append(*ptr, toks[j])
		}
		return true
	}
}

// Int registers an int64 variable with the given name and default value.
func (vars *ConfigVars) Int(ptr *int64, name string, value int64) {
	*ptr = value
	vars.varNames = append(vars.varNames, name)
	vars.conversionFuncs = append(vars.conversionFuncs, intConv(ptr))
	vars.varTypes = append(vars.varTypes, intVar)
}

// Float registers a float64 variable with the given name and default value.
func (vars *ConfigVars) Float(ptr *float64, name string, value float64) {
	*ptr = value
	vars.varNames = append(vars.varNames, name)
	vars.conversionFuncs = append(vars.conversionFuncs, floatConv(ptr))
	vars.varTypes = append(vars.varTypes, floatVar)
}

// Floats registers a []float64 variable with the given name and default
// value. Assigning to it replaces the default instead of appending.
func (vars *ConfigVars) Floats(ptr *[]float64, name string, value []float64) {
	*ptr = value
	vars.varNames = append(vars.varNames, name)
	vars.conversionFuncs = append(vars.conversionFuncs, floatsConv(ptr))
	vars.varTypes = append(vars.varTypes, floatsVar)
}

// String registers a string variable with the given name and default value.
func (vars *ConfigVars) String(ptr *string, name string, value string) {
	*ptr = value
	vars.varNames = append(vars.varNames, name)
	vars.conversionFuncs = append(vars.conversionFuncs, stringConv(ptr))
	vars.varTypes = append(vars.varTypes, stringVar)
}

// Strings registers a []string variable with the given name and default
// value. Assigning to it replaces the default instead of appending.
func (vars *ConfigVars) Strings(ptr *[]string, name string, value []string) {
	*ptr = value
	vars.varNames = append(vars.varNames, name)
	vars.conversionFuncs = append(vars.conversionFuncs, stringsConv(ptr))
	vars.varTypes = append(vars.varTypes, stringsVar)
}

// Bool registers a bool variable with the given name and default value.
func (vars *ConfigVars) Bool(ptr *bool, name string, value bool) {
	*ptr = value
	vars.varNames = append(vars.varNames, name)
	vars.conversionFuncs = append(vars.conversionFuncs, boolConv(ptr))
	vars.varTypes = append(vars.varTypes, boolVar)
}

//////////////////
// Parsing Code //
//////////////////

// ReadConfig reads the config file fname and assigns its variables to
// vars. The file must start with the header line "[name]" for the name
// vars was created with.
func ReadConfig(fname string, vars *ConfigVars) error {
	for i := range vars.varNames {
		vars.varNames[i] = strings.ToLower(vars.varNames[i])
	}

	bs, err := os.ReadFile(fname)
	if err != nil {
		return err
	}
	lines := strings.Split(string(bs), "\n")
	lines, lineNums := removeComments(lines)
	for i := range lineNums {
		lineNums[i]++
	}

	if len(lines) == 0 || lines[0] != fmt.Sprintf("[%s]", vars.name) {
		return fmt.Errorf(
			"I expected the config file %s to have the header "+
				"[%s] at the top, but didn't find it.", fname, vars.name,
		)
	}
	lines = lines[1:]

	names, vals, errLine := associationList(lines)
	if errLine != -1 {
		return fmt.Errorf(
			"I could not parse line %d of the config file %s because it "+
				"did not take the form of a variable assignment.",
			lineNums[errLine+1], fname,
		)
	}

	if errLine = checkValidNames(names, vars); errLine != -1 {
		return fmt.Errorf(
			"Line %d of the config file %s assigns a value to the "+
				"variable '%s', but config files of type %s don't have that "+
				"variable.", lineNums[errLine+1], fname, names[errLine], vars.name,
		)
	}

	if errLine1, errLine2 := checkDuplicateNames(names); errLine1 != -1 {
		return fmt.Errorf(
			"Lines %d and %d of the config file %s both assign a value to "+
				"the variable '%s'.", lineNums[errLine1+1], lineNums[errLine2+1],
			fname, names[errLine1],
		)
	}

	if errLine = convertAssoc(names, vals, vars); errLine != -1 {
		j := varIndex(names[errLine], vars)
		typeName := vars.varTypes[j].String()
		a := "a"
		if typeName[0] == 'i' {
			a = "an"
		}
		return fmt.Errorf(
			"I could not parse line %d of the config file %s because '%s' "+
				"expects values of type %s and '%s' cannot be converted to "+
				"%s %s.", lineNums[errLine+1], fname, vars.varNames[j], typeName,
			vals[errLine], a, typeName,
		)
	}

	return nil
}

// ReadFlags assigns command line flags of the form "--Name value" to
// vars. A value may be split across several tokens, which are joined
// with commas before conversion, so "--MNu 0, 0, 0.06" and
// "--MNu 0,0,0.06" parse the same way. Flags are applied after config
// files, so they override file assignments.
func ReadFlags(flags []string, vars *ConfigVars) error {
	for i := range vars.varNames {
		vars.varNames[i] = strings.ToLower(vars.varNames[i])
	}

	names, vals, errIdx := flagAssociationList(flags)
	if errIdx != -1 {
		return fmt.Errorf(
			"I could not parse the command line flags because '%s' is "+
				"not part of a flag. Flags take the form '--Name value'.",
			flags[errIdx],
		)
	}

	if errIdx = checkValidNames(names, vars); errIdx != -1 {
		return fmt.Errorf(
			"The flag '--%s' assigns a value to a variable that config "+
				"files of type %s don't have.", names[errIdx], vars.name,
		)
	}

	if errIdx1, _ := checkDuplicateNames(names); errIdx1 != -1 {
		return fmt.Errorf(
			"The flag '--%s' was given more than once.", names[errIdx1],
		)
	}

	if errIdx = convertAssoc(names, vals, vars); errIdx != -1 {
		j := varIndex(names[errIdx], vars)
		typeName := vars.varTypes[j].String()
		a := "a"
		if typeName[0] == 'i' {
			a = "an"
		}
		return fmt.Errorf(
			"I could not parse the flag '--%s' because it expects values "+
				"of type %s and '%s' cannot be converted to %s %s.",
			vars.varNames[j], typeName, vals[errIdx], a, typeName,
		)
	}

	return nil
}

// removeComments strips '#' comments and blank lines. It returns the
// surviving lines along with their zero-indexed positions in the input.
func removeComments(lines []string) ([]string, []int) {
	tmp := make([]string, len(lines))
	copy(tmp, lines)
	lines = tmp

	for i := range lines {
		comment := strings.Index(lines[i], "#")
		if comment == -1 {
			continue
		}
		lines[i] = lines[i][:comment]
	}

	out, lineNums := []string{}, []int{}
	for i := range lines {
		line := strings.Trim(lines[i], " ")
		if len(line) == 0 {
			continue
		}
		out = append(out, line)
		lineNums = append(lineNums, i)
	}

	return out, lineNums
}

// associationList splits "name = value" lines into parallel name and
// value slices. Names are lowercased and both sides are space-trimmed.
// The index of the first malformed line is returned, or -1.
func associationList(lines []string) ([]string, []string, int) {
	names, vals := []string{}, []string{}
	for i := range lines {
		eq := strings.Index(lines[i], "=")
		if eq == -1 {
			return nil, nil, i
		}
		name := lines[i][:eq]
		val := ""
		if len(lines[i])-1 > eq {
			val = lines[i][eq+1:]
		}
		names = append(names, strings.ToLower(strings.Trim(name, " ")))
		if len(names[len(names)-1]) == 0 {
			return nil, nil, i
		}
		vals = append(vals, strings.Trim(val, " "))
	}
	return names, vals, -1
}

// flagAssociationList splits a token list into parallel name and value
// slices. A token starting with "--" opens a flag and every following
// token up to the next flag belongs to its value. The index of the
// first token that can't be part of a flag is returned, or -1.
func flagAssociationList(flags []string) ([]string, []string, int) {
	names, vals := []string{}, []string{}
	for i := 0; i < len(flags); i++ {
		if !strings.HasPrefix(flags[i], "--") {
			return nil, nil, i
		}
		name := strings.ToLower(strings.TrimLeft(flags[i], "-"))
		if len(name) == 0 {
			return nil, nil, i
		}

		valToks := []string{}
		for i++; i < len(flags) && !strings.HasPrefix(flags[i], "--"); i++ {
			valToks = append(valToks, strings.Trim(flags[i], " "))
		}
		i--

		names = append(names, name)
		vals = append(vals, strings.Join(valToks, ","))
	}
	return names, vals, -1
}

func varIndex(name string, vars *ConfigVars) int {
	for j := range vars.varNames {
		if vars.varNames[j] == name {
			return j
		}
	}
	panic("Impossible")
}

func checkValidNames(names []string, vars *ConfigVars) int {
	for i := range names {
		found := false
		for j := range vars.varNames {
			if vars.varNames[j] == names[i] {
				found = true
				break
			}
		}
		if !found {
			return i
		}
	}
	return -1
}

func checkDuplicateNames(names []string) (int, int) {
	for i := range names {
		for j := i + 1; j < len(names); j++ {
			if names[i] == names[j] {
				return i, j
			}
		}
	}
	return -1, -1
}

func convertAssoc(names, vals []string, vars *ConfigVars) int {
	for i := range names {
		ok := vars.conversionFuncs[varIndex(names[i], vars)](vals[i])
		if !ok {
			return i
		}
	}
	return -1
}
