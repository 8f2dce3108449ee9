package simulation

import (
	"fmt"
	"sort"
	"sync"
)

// Factory creates a fresh simulation instance
type Factory func() Simulation

type entry struct {
	factory Factory
	config  SimulationConfig
}

// Registry manages available simulations
type Registry struct {
	mu          sync.RWMutex
	simulations map[string]entry
}

// NewRegistry creates a new simulation registry
func NewRegistry() *Registry {
	return &Registry{
		simulations: make(map[string]entry),
	}
}

// Register adds a simulation and its parameter descriptor to the registry.
// The descriptor's name is the registry key.
func (r *Registry) Register(config SimulationConfig, factory Factory) error {
	if config.Name == "" {
		return fmt.Errorf("simulation name must not be empty")
	}
	if factory == nil {
		return fmt.Errorf("simulation %s has no factory", config.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.simulations[config.Name]; exists {
		return fmt.Errorf("simulation %s already registered", config.Name)
	}

	r.simulations[config.Name] = entry{factory: factory, config: config}
	return nil
}

// Get returns a new instance of the requested simulation
func (r *Registry) Get(name string) (Simulation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, exists := r.simulations[name]
	if !exists {
		return nil, fmt.Errorf("simulation %s not found", name)
	}

	return e.factory(), nil
}

// Config returns the parameter descriptor of a registered simulation
func (r *Registry) Config(name string) (SimulationConfig, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, exists := r.simulations[name]
	if !exists {
		return SimulationConfig{}, fmt.Errorf("simulation %s not found", name)
	}
	return e.config, nil
}

// List returns all registered simulation names, sorted
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.simulations))
	for name := range r.simulations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Configs returns all descriptors ordered by name
func (r *Registry) Configs() []SimulationConfig {
	names := r.List()

	r.mu.RLock()
	defer r.mu.RUnlock()

	configs := make([]SimulationConfig, 0, len(names))
	for _, name := range names {
		if e, ok := r.simulations[name]; ok {
			configs = append(configs, e.config)
		}
	}
	return configs
}

// DefaultRegistry is the global simulation registry
var DefaultRegistry = NewRegistry()
