package options

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadYAML reads a recordstore.yaml-shaped file at path and decodes it onto
// the given Options. Callers apply this before functional options so that
// flags/OptionFuncs still take precedence over file-based configuration.
func LoadYAML(path string, o *Options) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, o); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return nil
}
