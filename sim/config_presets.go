package sim

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadPresets reads a YAML file of named RunConfig presets, in the style
// of the teacher's defaults.yaml mechanism: CLI flags may name a preset
// to start from and override individual fields on top of it.
func LoadPresets(path string) (Presets, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("sim: reading config %q: %w", path, err)
	}
	var presets Presets
	if err := yaml.Unmarshal(data, &presets); err != nil {
		return nil, fmt.Errorf("sim: parsing config %q: %w", path, err)
	}
	return presets, nil
}

// Lookup returns the named preset, erroring if it is not defined.
func (p Presets) Lookup(name string) (RunConfig, error) {
	cfg, ok := p[name]
	if !ok {
		return RunConfig{}, fmt.Errorf("sim: no preset named %q", name)
	}
	return cfg, nil
}
