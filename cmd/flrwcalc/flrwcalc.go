/*flrwcalc prints distance, age, volume, and expansion history tables for
FLRW cosmologies.*/
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/phil-mansfield/flrw/cmd"
	"github.com/phil-mansfield/flrw/logging"
	"github.com/phil-mansfield/flrw/version"
)

var helpStrings = map[string]string{
	"eos": `The eos mode prints the expansion and density history of the
cosmology: E(z) = H(z)/H0, the Hubble parameter, the dark energy equation
of state, and the density parameter of each component. For its variables,
type 'flrwcalc help eos.config'.`,
	"dist": `The dist mode prints cosmological distances: comoving,
transverse comoving, angular diameter, and luminosity distances, the
distance modulus, the absorption distance, and the angular scale. For its
variables, type 'flrwcalc help dist.config'.`,
	"age": `The age mode prints the age of the universe, the lookback time,
and the lookback distance at the requested redshifts. For its variables,
type 'flrwcalc help age.config'.`,
	"vol": `The vol mode prints the comoving volume inside each redshift
and the differential comoving volume at it. For its variables, type
'flrwcalc help vol.config'.`,
	"ls": `The ls mode prints the built-in cosmological realizations along
with their parameters. Pass a name from the first column to the -r flag or
to the 'Realization' config variable.`,

	"cosmology":   new(cmd.GlobalConfig).ExampleConfig(),
	"eos.config":  cmd.ModeNames["eos"].ExampleConfig(),
	"dist.config": cmd.ModeNames["dist"].ExampleConfig(),
	"age.config":  cmd.ModeNames["age"].ExampleConfig(),
	"vol.config":  cmd.ModeNames["vol"].ExampleConfig(),
}

var modeDescriptions = `My help modes are:
flrwcalc help
flrwcalc help [ eos | dist | age | vol | ls ]
flrwcalc help [ cosmology | eos.config | dist.config | age.config |
                vol.config ]

My table modes are:
flrwcalc eos  [-r NAME] [flags] [____.config] [____.eos.config]
flrwcalc dist [-r NAME] [flags] [____.config] [____.dist.config]
flrwcalc age  [-r NAME] [flags] [____.config] [____.age.config]
flrwcalc vol  [-r NAME] [flags] [____.config] [____.vol.config]

My other modes are:
flrwcalc ls
flrwcalc version

The first config file sets the cosmology ('flrwcalc help cosmology'
describes it), and the optional second one sets mode variables. The -r
flag picks a built-in cosmology by name instead, and 'flrwcalc ls' lists
the valid names. Flags take the form '--Name value' and override the
variables of the mode config file. Redshifts come from the 'Z' variable
or, if it isn't set, from the first column of stdin.

Diagnostics go to stderr and can be tuned with the FLRWCALC_LOG
environment variable (debug, info, warn, or error). The cosmology file
can also be set once in $FLRWCALC_GLOBAL_CONFIG instead of being passed
to every call.`

func main() {
	args := os.Args
	if len(args) <= 1 {
		fmt.Fprintf(
			os.Stderr, "I wasn't given a mode.\nFor help, type "+
				"'flrwcalc help'.\n",
		)
		os.Exit(1)
	}

	switch args[1] {
	case "help":
		switch len(args) - 2 {
		case 0:
			fmt.Println(modeDescriptions)
		case 1:
			text, ok := helpStrings[args[2]]
			if !ok {
				fmt.Printf("I don't recognize the help target '%s'.\n",
					args[2])
			} else {
				fmt.Println(text)
			}
		default:
			fmt.Println("The help mode can only take a single argument.")
		}
		os.Exit(0)
	case "version":
		fmt.Printf("flrwcalc version %s\n", version.SourceVersion)
		os.Exit(0)
	case "ls":
		for _, line := range cmd.ListRealizations() {
			fmt.Println(line)
		}
		os.Exit(0)
	}

	mode, ok := cmd.ModeNames[args[1]]
	if !ok {
		fmt.Fprintf(
			os.Stderr, "You passed me the mode '%s', which I don't "+
				"recognize.\nFor help, type 'flrwcalc help'.\n", args[1],
		)
		os.Exit(1)
	}

	log, err := logging.New(logLevel())
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err.Error())
		os.Exit(1)
	}
	defer log.Sync()

	realization, flags, configs, err := splitArgs(args[2:])
	if err != nil {
		fatal(log, args[1], err)
	}

	gConfig, modeConfig, err := resolveConfigs(realization, configs)
	if err != nil {
		fatal(log, args[1], err)
	}

	if err = mode.ReadConfig(modeConfig, flags); err != nil {
		fatal(log, args[1], err)
	}

	stdin, err := stdinBytes()
	if err != nil {
		fatal(log, args[1], err)
	}

	out, err := mode.Run(gConfig, log, stdin)
	if err != nil {
		fatal(log, args[1], err)
	}

	for i := range out {
		fmt.Println(out[i])
	}
}

// fatal reports err through the logger and exits.
func fatal(log *zap.Logger, mode string, err error) {
	log.Fatal("error running the mode",
		zap.String("mode", mode), zap.Error(err))
}

// logLevel returns the level flrwcalc logs at, from the FLRWCALC_LOG
// environment variable if it is set.
func logLevel() string {
	if level := os.Getenv("FLRWCALC_LOG"); level != "" {
		return level
	}
	return "info"
}

// splitArgs separates the arguments after the mode name into the -r
// realization name, the '--Name value' flag tokens, and the trailing
// config files.
func splitArgs(args []string) (
	realization string, flags, configs []string, err error,
) {
	configs = []string{}
	for len(args) > 0 && isConfig(args[len(args)-1]) {
		configs = append([]string{args[len(args)-1]}, configs...)
		args = args[:len(args)-1]
	}

	flags = []string{}
	for i := 0; i < len(args); i++ {
		if args[i] != "-r" {
			flags = append(flags, args[i])
			continue
		}
		if realization != "" {
			return "", nil, nil, fmt.Errorf("The -r flag was given twice.")
		}
		if i+1 >= len(args) || strings.HasPrefix(args[i+1], "-") {
			return "", nil, nil, fmt.Errorf("The -r flag needs the name " +
				"of a built-in cosmology after it. 'flrwcalc ls' lists " +
				"the valid names.")
		}
		realization = args[i+1]
		i++
	}

	return realization, flags, configs, nil
}

// isConfig returns true if the given string is a config file name.
func isConfig(s string) bool {
	return strings.HasSuffix(s, ".config")
}

// resolveConfigs builds the GlobalConfig and picks out the mode config
// file name from the -r flag, the config file arguments, and the
// FLRWCALC_GLOBAL_CONFIG environment variable.
func resolveConfigs(
	realization string, configs []string,
) (*cmd.GlobalConfig, string, error) {
	if realization != "" {
		if len(configs) > 1 {
			return nil, "", fmt.Errorf("The -r flag fixes the cosmology, "+
				"so I can take at most one config file, but I was given "+
				"%d.", len(configs))
		}
		gConfig, err := cmd.RealizationConfig(realization)
		if err != nil {
			return nil, "", err
		}
		modeConfig := ""
		if len(configs) == 1 {
			modeConfig = configs[0]
		}
		return gConfig, modeConfig, nil
	}

	if name := os.Getenv("FLRWCALC_GLOBAL_CONFIG"); name != "" {
		if len(configs) > 1 {
			return nil, "", fmt.Errorf("$FLRWCALC_GLOBAL_CONFIG is set, "+
				"so I can take at most one config file, but I was given "+
				"%d.", len(configs))
		}
		gConfig := &cmd.GlobalConfig{}
		if err := gConfig.ReadConfig(name, nil); err != nil {
			return nil, "", err
		}
		modeConfig := ""
		if len(configs) == 1 {
			modeConfig = configs[0]
		}
		return gConfig, modeConfig, nil
	}

	switch len(configs) {
	case 0:
		return nil, "", fmt.Errorf("I wasn't given a cosmology. Either " +
			"pass a cosmology config file, select a built-in one with " +
			"the -r flag, or set $FLRWCALC_GLOBAL_CONFIG.")
	case 1:
		gConfig := &cmd.GlobalConfig{}
		if err := gConfig.ReadConfig(configs[0], nil); err != nil {
			return nil, "", err
		}
		return gConfig, "", nil
	case 2:
		gConfig := &cmd.GlobalConfig{}
		if err := gConfig.ReadConfig(configs[0], nil); err != nil {
			return nil, "", err
		}
		return gConfig, configs[1], nil
	}
	return nil, "", fmt.Errorf("I was given %d config files, but I can "+
		"take at most two: the cosmology file and then the mode file.",
		len(configs))
}

// stdinBytes reads stdin when something is piped in. It returns nil when
// stdin is an interactive terminal, so modes that got their redshifts
// from the 'Z' variable don't block waiting for input.
func stdinBytes() ([]byte, error) {
	info, err := os.Stdin.Stat()
	if err != nil {
		return nil, fmt.Errorf("Error reading stdin: %s.", err.Error())
	}
	if info.Mode()&os.ModeCharDevice != 0 {
		return nil, nil
	}

	bs, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, fmt.Errorf("Error reading stdin: %s.", err.Error())
	}
	return bs, nil
}
