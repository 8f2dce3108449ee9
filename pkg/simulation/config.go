package simulation

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Parameter types understood by the prompt and params-file layers
const (
	TypeInteger  = "integer"
	TypeFloat    = "float"
	TypeString   = "string"
	TypeDuration = "duration"
	TypeBoolean  = "boolean"
)

// SimulationConfig describes a simulation and its parameters,
// loaded from the simulation.yaml embedded next to it
type SimulationConfig struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description"`
	Version     string      `yaml:"version"`
	Category    string      `yaml:"category"`
	Parameters  []Parameter `yaml:"parameters"`
}

// Parameter defines a configurable parameter for a simulation
type Parameter struct {
	Name        string      `yaml:"name"`
	Type        string      `yaml:"type"` // integer, float, string, duration, boolean
	Description string      `yaml:"description"`
	Default     interface{} `yaml:"default"`
	Required    bool        `yaml:"required"`
	Min         interface{} `yaml:"min,omitempty"`
	Max         interface{} `yaml:"max,omitempty"`
	Options     []string    `yaml:"options,omitempty"` // For string enums
}

// ParseConfig decodes a simulation descriptor
func ParseConfig(data []byte) (SimulationConfig, error) {
	var cfg SimulationConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return SimulationConfig{}, fmt.Errorf("failed to parse simulation config: %w", err)
	}
	if cfg.Name == "" {
		return SimulationConfig{}, fmt.Errorf("simulation config has no name")
	}

	seen := make(map[string]bool, len(cfg.Parameters))
	for _, p := range cfg.Parameters {
		if p.Name == "" {
			return SimulationConfig{}, fmt.Errorf("simulation %s has a parameter without a name", cfg.Name)
		}
		if seen[p.Name] {
			return SimulationConfig{}, fmt.Errorf("simulation %s declares parameter %s twice", cfg.Name, p.Name)
		}
		seen[p.Name] = true

		switch p.Type {
		case TypeInteger, TypeFloat, TypeString, TypeDuration, TypeBoolean:
		default:
			return SimulationConfig{}, fmt.Errorf("parameter %s has unsupported type: %s", p.Name, p.Type)
		}
	}
	return cfg, nil
}

// Defaults returns every parameter's default value keyed by name
func (c SimulationConfig) Defaults() map[string]interface{} {
	defaults := make(map[string]interface{}, len(c.Parameters))
	for _, p := range c.Parameters {
		if p.Default != nil {
			defaults[p.Name] = p.Default
		}
	}
	return defaults
}

// Parameter looks up a parameter by name
func (c SimulationConfig) Parameter(name string) (Parameter, bool) {
	for _, p := range c.Parameters {
		if p.Name == name {
			return p, true
		}
	}
	return Parameter{}, false
}
