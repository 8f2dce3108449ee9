package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/picogrid/situation-monitor/pkg/config"
	"github.com/picogrid/situation-monitor/pkg/logger"
	"github.com/picogrid/situation-monitor/pkg/simulation"
	"github.com/picogrid/situation-monitor/pkg/utils"

	// Import simulations to register them
	_ "github.com/picogrid/situation-monitor/cmd/situation"
)

const noProfile = "(none)"

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a simulation",
	Long: `Run a simulation interactively or with specified parameters.

Parameters are resolved in layers, later layers winning:
descriptor defaults, saved profile, parameters file, config file and
SITMON_<PARAMETER> environment variables, then the interactive prompt.`,
	RunE: runSimulation,
}

func init() {
	runCmd.Flags().StringP("simulation", "s", "", "simulation name to run")
	runCmd.Flags().StringP("params", "p", "", "parameters file (YAML)")
	runCmd.Flags().String("profile", "", "saved parameter profile to apply")
	runCmd.Flags().BoolP("yes", "y", false, "accept resolved parameters without prompting")
}

func runSimulation(cmd *cobra.Command, _ []string) error {
	interactive := promptsEnabled(cmd)

	simName, err := selectSimulation(cmd, interactive)
	if err != nil {
		return fmt.Errorf("failed to select simulation: %w", err)
	}

	sim, err := simulation.DefaultRegistry.Get(simName)
	if err != nil {
		return fmt.Errorf("failed to get simulation: %w", err)
	}

	desc, err := simulation.DefaultRegistry.Config(simName)
	if err != nil {
		return fmt.Errorf("simulation configuration not found for %s: %w", simName, err)
	}

	profile, err := selectProfile(cmd, simName, interactive)
	if err != nil {
		return fmt.Errorf("failed to select profile: %w", err)
	}

	paramsFile, _ := cmd.Flags().GetString("params")
	resolved, err := resolveParameters(desc, profile, paramsFile, viper.GetViper())
	if err != nil {
		return err
	}

	params, err := utils.PromptForParameters(desc.Parameters, resolved, interactive)
	if err != nil {
		return fmt.Errorf("failed to get parameters: %w", err)
	}

	if err := sim.Configure(params); err != nil {
		return fmt.Errorf("failed to configure simulation: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case <-sigChan:
		case <-ctx.Done():
			return
		}
		logger.Warn("Received interrupt signal, stopping simulation...")
		if err := sim.Stop(); err != nil {
			logger.Errorf("Failed to stop simulation: %v", err)
		}
		cancel()
	}()

	logger.LogSection(fmt.Sprintf("Starting %s", sim.Name()))
	if profile != nil {
		logger.LogKeyValue("Profile", profile.Name)
	}
	if err := sim.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("simulation failed: %w", err)
	}

	logger.Success("Simulation completed successfully")
	return nil
}

// promptsEnabled is false with --yes, SITMON_SKIP_PROMPTS=true, or when stdin is not a terminal
func promptsEnabled(cmd *cobra.Command) bool {
	if yes, _ := cmd.Flags().GetBool("yes"); yes {
		return false
	}
	if viper.GetBool("skip_prompts") {
		return false
	}
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// resolveParameters layers descriptor defaults, the profile, the params file
// and viper (config file and environment) into one parameter map
func resolveParameters(desc simulation.SimulationConfig, profile *config.Profile, paramsFile string, v *viper.Viper) (map[string]interface{}, error) {
	layers := []map[string]interface{}{desc.Defaults()}

	if profile != nil {
		if profile.Simulation != "" && profile.Simulation != desc.Name {
			return nil, fmt.Errorf("profile %s is for simulation %s", profile.Name, profile.Simulation)
		}
		layers = append(layers, profile.Parameters)
	}

	if paramsFile != "" {
		fileParams, err := loadParamsFile(paramsFile)
		if err != nil {
			return nil, err
		}
		layers = append(layers, fileParams)
	}

	overrides := make(map[string]interface{})
	for _, p := range desc.Parameters {
		if v.IsSet(p.Name) {
			overrides[p.Name] = v.Get(p.Name)
		}
	}
	layers = append(layers, overrides)

	merged := utils.MergeParameters(layers...)
	for name := range merged {
		if _, ok := desc.Parameter(name); !ok {
			logger.Warnf("Ignoring unknown parameter %s for %s", name, desc.Name)
			delete(merged, name)
		}
	}
	return merged, nil
}

// loadParamsFile reads a flat YAML map of parameters, optionally nested under "parameters"
func loadParamsFile(path string) (map[string]interface{}, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read parameters file: %w", err)
	}

	var params map[string]interface{}
	if err := yaml.Unmarshal(data, &params); err != nil {
		return nil, fmt.Errorf("failed to parse parameters file: %w", err)
	}

	if nested, ok := params["parameters"].(map[string]interface{}); ok {
		return nested, nil
	}
	return params, nil
}

func envKey(param string) string {
	return EnvPrefix + "_" + strings.ToUpper(param)
}

func selectSimulation(cmd *cobra.Command, interactive bool) (string, error) {
	// Check if simulation is specified via flag
	simName, _ := cmd.Flags().GetString("simulation")
	if simName != "" {
		return simName, nil
	}

	configs := simulation.DefaultRegistry.Configs()
	if len(configs) == 0 {
		return "", fmt.Errorf("no simulations found")
	}
	if len(configs) == 1 || !interactive {
		return configs[0].Name, nil
	}

	// Build options for selection
	options := make([]string, len(configs))
	descriptions := make(map[string]string)

	for i, cfg := range configs {
		options[i] = cfg.Name
		descriptions[cfg.Name] = cfg.Description
	}

	// Interactive selection
	var selected string
	prompt := &survey.Select{
		Message: "Select simulation:",
		Options: options,
		Description: func(value string, index int) string {
			return descriptions[value]
		},
	}

	if err := survey.AskOne(prompt, &selected); err != nil {
		return "", err
	}

	return selected, nil
}

func selectProfile(cmd *cobra.Command, simName string, interactive bool) (*config.Profile, error) {
	name, _ := cmd.Flags().GetString("profile")

	profiles, err := config.LoadProfiles()
	if err != nil {
		return nil, fmt.Errorf("failed to load profiles: %w", err)
	}

	if name == "" {
		name = profiles.Selected
	}
	if name != "" {
		profile, ok := profiles.Find(name)
		if !ok {
			return nil, fmt.Errorf("profile %s not found", name)
		}
		return &profile, nil
	}

	candidates := profiles.ForSimulation(simName)
	if !interactive || len(candidates) == 0 {
		return nil, nil
	}

	options := []string{noProfile}
	for _, p := range candidates {
		options = append(options, p.Name)
	}

	var selected string
	prompt := &survey.Select{
		Message: "Apply a saved profile:",
		Options: options,
		Default: noProfile,
	}
	if err := survey.AskOne(prompt, &selected); err != nil {
		return nil, err
	}
	if selected == noProfile {
		return nil, nil
	}

	profile, _ := profiles.Find(selected)
	return &profile, nil
}
