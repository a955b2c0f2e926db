package flrw

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/goccy/go-yaml"
)

//go:embed realizations.yaml
var realizationsYaml []byte

type realizationParams struct {
	Name      string    `yaml:"name"`
	Reference string    `yaml:"reference"`
	H0        float64   `yaml:"H0"`
	Om0       float64   `yaml:"Om0"`
	Tcmb0     float64   `yaml:"Tcmb0"`
	Neff      float64   `yaml:"Neff"`
	MNu       []float64 `yaml:"m_nu"`
	Ob0       float64   `yaml:"Ob0"`
}

type realizationCatalog struct {
	names  []string
	models map[string]*FLRW
}

var (
	realizationsOnce sync.Once
	realizations     realizationCatalog
)

// loadRealizations parses the embedded catalog on first use. The catalog
// ships with the package, so a parse failure is a packaging bug and
// panics.
func loadRealizations() *realizationCatalog {
	realizationsOnce.Do(func() {
		var file struct {
			Realizations []realizationParams `yaml:"realizations"`
		}
		if err := yaml.Unmarshal(realizationsYaml, &file); err != nil {
			panic(fmt.Sprintf(
				"flrw: cannot parse the embedded realization catalog: %v", err,
			))
		}

		realizations.models = map[string]*FLRW{}
		for _, p := range file.Realizations {
			realizations.names = append(realizations.names, p.Name)
			realizations.models[p.Name] = FlatLambdaCDM(p.H0, p.Om0,
				Tcmb0(p.Tcmb0), Neff(p.Neff), MNu(p.MNu...), Ob0(p.Ob0),
				Name(p.Name),
			)
		}
	})
	return &realizations
}

// Realization returns the built-in cosmology with the given name, e.g.
// "Planck18". The returned model is shared, which is safe because models
// are immutable. Realizations lists the valid names.
func Realization(name string) (*FLRW, error) {
	cat := loadRealizations()
	if c, ok := cat.models[name]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("flrw: there is no realization named %q. The "+
		"known realizations are %s.",
		name, strings.Join(cat.names, ", "))
}

// Realizations lists the names of the built-in cosmologies in catalog
// order, oldest first.
func Realizations() []string {
	cat := loadRealizations()
	out := make([]string, len(cat.names))
	copy(out, cat.names)
	return out
}

func mustRealization(name string) *FLRW {
	c, err := Realization(name)
	if err != nil {
		panic(err.Error())
	}
	return c
}

// WMAP5 returns the flat LambdaCDM cosmology of Komatsu et al. 2009
// (WMAP five-year + BAO + SN).
func WMAP5() *FLRW { return mustRealization("WMAP5") }

// WMAP7 returns the flat LambdaCDM cosmology of Komatsu et al. 2011
// (WMAP seven-year + BAO + H0).
func WMAP7() *FLRW { return mustRealization("WMAP7") }

// WMAP9 returns the flat LambdaCDM cosmology of Hinshaw et al. 2013
// (WMAP nine-year + eCMB + BAO + H0).
func WMAP9() *FLRW { return mustRealization("WMAP9") }

// Planck13 returns the flat LambdaCDM cosmology of the Planck 2013
// results (Planck + WP + highL + BAO).
func Planck13() *FLRW { return mustRealization("Planck13") }

// Planck15 returns the flat LambdaCDM cosmology of the Planck 2015
// results (TT, TE, EE + lowP + lensing + ext).
func Planck15() *FLRW { return mustRealization("Planck15") }

// Planck18 returns the flat LambdaCDM cosmology of the Planck 2018
// results (TT, TE, EE + lowE + lensing + BAO).
func Planck18() *FLRW { return mustRealization("Planck18") }
