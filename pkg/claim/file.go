package claim

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// File is the on-disk claim description used by `analyze --file` and
// `watch`. Numbers are kept as text so that bad values surface as
// validation errors rather than YAML errors.
type File struct {
	PolicyID string `yaml:"policy_id"`
	Form     `yaml:",inline"`
}

// LoadFile reads a claim description from a YAML file.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "claim: read %s", path)
	}
	return ParseFile(data)
}

// ParseFile decodes a claim description.
func ParseFile(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, eris.Wrap(err, "claim: decode yaml")
	}
	return &f, nil
}
