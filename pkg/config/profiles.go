package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

const (
	dirName      = ".sitmon"
	profilesFile = "profiles.yaml"
)

// Profile is a named set of parameter overrides for one simulation
type Profile struct {
	Name       string                 `yaml:"name"`
	Simulation string                 `yaml:"simulation"`
	Parameters map[string]interface{} `yaml:"parameters"`
}

// Profiles holds the saved profiles
type Profiles struct {
	Profiles []Profile `yaml:"profiles"`
	Selected string    `yaml:"selected,omitempty"`
}

// Dir returns the per-user configuration directory
func Dir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, dirName), nil
}

// ProfilesPath returns the default profiles file location
func ProfilesPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, profilesFile), nil
}

// LoadProfiles loads profiles from the default location
func LoadProfiles() (*Profiles, error) {
	path, err := ProfilesPath()
	if err != nil {
		return nil, err
	}
	return LoadProfilesFromFile(path)
}

// LoadProfilesFromFile loads profiles from a specific file.
// A missing file yields the built-in profiles.
func LoadProfilesFromFile(path string) (*Profiles, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return getDefaultProfiles(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profiles file: %w", err)
	}

	var profiles Profiles
	if err := yaml.Unmarshal(data, &profiles); err != nil {
		return nil, fmt.Errorf("failed to parse profiles file: %w", err)
	}

	return &profiles, nil
}

// SaveProfiles saves profiles to the default location
func SaveProfiles(profiles *Profiles) error {
	path, err := ProfilesPath()
	if err != nil {
		return err
	}
	return SaveProfilesToFile(profiles, path)
}

// SaveProfilesToFile writes profiles to path, creating its directory
func SaveProfilesToFile(profiles *Profiles, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(profiles)
	if err != nil {
		return fmt.Errorf("failed to marshal profiles: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write profiles file: %w", err)
	}

	return nil
}

// Find returns the profile with the given name
func (p *Profiles) Find(name string) (Profile, bool) {
	for _, profile := range p.Profiles {
		if profile.Name == name {
			return profile, true
		}
	}
	return Profile{}, false
}

// Add appends a profile; names are unique
func (p *Profiles) Add(profile Profile) error {
	if profile.Name == "" {
		return fmt.Errorf("profile name must not be empty")
	}
	if _, exists := p.Find(profile.Name); exists {
		return fmt.Errorf("profile %s already exists", profile.Name)
	}
	p.Profiles = append(p.Profiles, profile)
	return nil
}

// Remove deletes a profile and clears the selection if it pointed at it
func (p *Profiles) Remove(name string) error {
	kept := make([]Profile, 0, len(p.Profiles))
	for _, profile := range p.Profiles {
		if profile.Name != name {
			kept = append(kept, profile)
		}
	}
	if len(kept) == len(p.Profiles) {
		return fmt.Errorf("profile %s not found", name)
	}
	p.Profiles = kept
	if p.Selected == name {
		p.Selected = ""
	}
	return nil
}

// Names returns the profile names in file order
func (p *Profiles) Names() []string {
	names := make([]string, len(p.Profiles))
	for i, profile := range p.Profiles {
		names[i] = profile.Name
	}
	return names
}

// ForSimulation returns the profiles that apply to a simulation
func (p *Profiles) ForSimulation(simulation string) []Profile {
	var matched []Profile
	for _, profile := range p.Profiles {
		if profile.Simulation == "" || profile.Simulation == simulation {
			matched = append(matched, profile)
		}
	}
	return matched
}

// SortedKeys returns a profile's parameter names in a stable order
func (p Profile) SortedKeys() []string {
	keys := make([]string, 0, len(p.Parameters))
	for k := range p.Parameters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func getDefaultProfiles() *Profiles {
	return &Profiles{
		Profiles: []Profile{
			{
				Name:       "Quiet",
				Simulation: "Situation Monitor",
				Parameters: map[string]interface{}{
					"launch_interval":  "5s",
					"message_interval": "3s",
					"max_launches":     10,
				},
			},
			{
				Name:       "Saturation",
				Simulation: "Situation Monitor",
				Parameters: map[string]interface{}{
					"launch_interval":       "500ms",
					"intercept_probability": 0.1,
					"max_launches":          35,
				},
			},
		},
	}
}
