package geo

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/emissions-cli/internal/model"
)

// overridesFile is the YAML layout of an extra overrides file:
//
//	overrides:
//	  "Kuwaiti Oil Fires": Asia
//	  "Somaliland": Africa
type overridesFile struct {
	Overrides map[string]string `yaml:"overrides"`
}

// LoadOverrides reads extra name → continent overrides from a YAML file.
// Every value must be one of the seven continent labels.
func LoadOverrides(path string) (map[string]model.Continent, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "geo: read overrides %s", path)
	}

	var f overridesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, eris.Wrap(err, "geo: parse overrides")
	}

	out := make(map[string]model.Continent, len(f.Overrides))
	for name, label := range f.Overrides {
		cont, ok := model.ParseContinent(label)
		if !ok {
			return nil, eris.Errorf("geo: override %q has unknown continent %q", name, label)
		}
		out[name] = cont
	}
	return out, nil
}
