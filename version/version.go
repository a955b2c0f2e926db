/*package version tracks the semantic version of the flrw source tree and
parses the version strings that config files pin themselves to.*/
package version

import (
	"fmt"
	"strconv"
	"strings"
)

// SourceVersion is the semantic version number of the source code.
const SourceVersion = "0.1.0"

// Parse splits a semantic version string of the form "major.minor.patch"
// into its three components. An error is returned if the string is
// malformed.
func Parse(s string) (major, minor, patch int, err error) {
	toks := strings.Split(s, ".")
	if len(toks) != 3 {
		return -1, -1, -1, parseError(s)
	}

	ns := [3]int{}
	for i := range toks {
		ns[i], err = strconv.Atoi(toks[i])
		if err != nil || ns[i] < 0 {
			return -1, -1, -1, parseError(s)
		}
	}

	return ns[0], ns[1], ns[2], nil
}

func parseError(s string) error {
	return fmt.Errorf("The version string '%s' does not take the form of "+
		"three period-separated non-negative numbers.", s)
}

// Later returns true if s1 represents a later version of the source than
// s2. An error is returned if either string is invalid.
func Later(s1, s2 string) (bool, error) {
	major1, minor1, patch1, err := Parse(s1)
	if err != nil {
		return false, err
	}
	major2, minor2, patch2, err := Parse(s2)
	if err != nil {
		return false, err
	}

	if major1 != major2 {
		return major1 > major2, nil
	}
	if minor1 != minor2 {
		return minor1 > minor2, nil
	}
	return patch1 > patch2, nil
}
