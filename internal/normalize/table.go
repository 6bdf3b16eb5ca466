package normalize

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// tableFile is the on-disk shape of a correction table override:
//
//	corrections:
//	  - from: "l"
//	    to: "1"
//	    standalone: true
//	  - from: "×"
//	    to: "*"
type tableFile struct {
	Corrections []Correction `yaml:"corrections"`
}

// LoadTable reads an ordered correction table from a YAML file. Entries keep
// file order; the facade places them ahead of the default table, so a loaded
// entry overrides a stock one for the same source text.
func LoadTable(path string) ([]Correction, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read correction table: %w", err)
	}
	var f tableFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse correction table %s: %w", path, err)
	}
	if len(f.Corrections) == 0 {
		return nil, fmt.Errorf("correction table %s has no entries", path)
	}
	for i, c := range f.Corrections {
		if c.From == "" {
			return nil, fmt.Errorf("correction table %s: entry %d has empty 'from'", path, i)
		}
	}
	return f.Corrections, nil
}
