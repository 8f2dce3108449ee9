package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/picogrid/situation-monitor/pkg/config"
	"github.com/picogrid/situation-monitor/pkg/logger"
	"github.com/picogrid/situation-monitor/pkg/simulation"
	"github.com/picogrid/situation-monitor/pkg/utils"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage parameter profiles",
	Long:  `Manage saved simulation parameter profiles`,
}

var profileListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved profiles",
	RunE:  listProfiles,
}

var profileAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new profile",
	RunE:  addProfile,
}

var profileRemoveCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove a profile",
	RunE:  removeProfile,
}

func init() {
	profileCmd.AddCommand(profileListCmd)
	profileCmd.AddCommand(profileAddCmd)
	profileCmd.AddCommand(profileRemoveCmd)
}

func listProfiles(cmd *cobra.Command, args []string) error {
	profiles, err := config.LoadProfiles()
	if err != nil {
		return fmt.Errorf("failed to load profiles: %w", err)
	}

	if len(profiles.Profiles) == 0 {
		fmt.Println("No profiles configured")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tSIMULATION\tPARAMETERS")
	_, _ = fmt.Fprintln(w, "----\t----------\t----------")

	for _, p := range profiles.Profiles {
		name := p.Name
		if p.Name == profiles.Selected {
			name += " *"
		}
		sim := p.Simulation
		if sim == "" {
			sim = "(any)"
		}
		pairs := make([]string, 0, len(p.Parameters))
		for _, k := range p.SortedKeys() {
			pairs = append(pairs, fmt.Sprintf("%s=%v", k, p.Parameters[k]))
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", name, sim, strings.Join(pairs, " "))
	}

	return w.Flush()
}

func addProfile(cmd *cobra.Command, args []string) error {
	profiles, err := config.LoadProfiles()
	if err != nil {
		return fmt.Errorf("failed to load profiles: %w", err)
	}

	var profile config.Profile

	// Prompt for name
	namePrompt := &survey.Input{
		Message: "Profile name:",
	}
	if err := survey.AskOne(namePrompt, &profile.Name, survey.WithValidator(survey.Required)); err != nil {
		return err
	}

	// Check if name already exists
	if _, exists := profiles.Find(profile.Name); exists {
		return fmt.Errorf("profile %s already exists", profile.Name)
	}

	simName, err := selectSimulation(cmd, true)
	if err != nil {
		return fmt.Errorf("failed to select simulation: %w", err)
	}
	desc, err := simulation.DefaultRegistry.Config(simName)
	if err != nil {
		return err
	}
	profile.Simulation = simName

	// Prompt for which parameters to override
	options := make([]string, len(desc.Parameters))
	for i, p := range desc.Parameters {
		options[i] = p.Name
	}
	var chosen []string
	selectPrompt := &survey.MultiSelect{
		Message: "Parameters to override:",
		Options: options,
	}
	if err := survey.AskOne(selectPrompt, &chosen); err != nil {
		return err
	}

	var params []simulation.Parameter
	for _, name := range chosen {
		if p, ok := desc.Parameter(name); ok {
			params = append(params, p)
		}
	}

	values, err := utils.PromptForParameters(params, nil, true)
	if err != nil {
		return fmt.Errorf("failed to get parameters: %w", err)
	}

	profile.Parameters = make(map[string]interface{}, len(values))
	for k, v := range values {
		// durations are stored in their text form so the file stays readable
		profile.Parameters[k] = storable(v)
	}

	if err := profiles.Add(profile); err != nil {
		return err
	}

	if err := config.SaveProfiles(profiles); err != nil {
		return fmt.Errorf("failed to save profiles: %w", err)
	}

	logger.Successf("Profile %s added successfully", profile.Name)
	return nil
}

func removeProfile(cmd *cobra.Command, args []string) error {
	profiles, err := config.LoadProfiles()
	if err != nil {
		return fmt.Errorf("failed to load profiles: %w", err)
	}

	if len(profiles.Profiles) == 0 {
		fmt.Println("No profiles to remove")
		return nil
	}

	// Prompt for selection
	var selected string
	prompt := &survey.Select{
		Message: "Select profile to remove:",
		Options: profiles.Names(),
	}
	if err := survey.AskOne(prompt, &selected); err != nil {
		return err
	}

	// Confirm removal
	var confirm bool
	confirmPrompt := &survey.Confirm{
		Message: fmt.Sprintf("Are you sure you want to remove %s?", selected),
		Default: false,
	}
	if err := survey.AskOne(confirmPrompt, &confirm); err != nil {
		return err
	}

	if !confirm {
		fmt.Println("Removal cancelled")
		return nil
	}

	if err := profiles.Remove(selected); err != nil {
		return err
	}

	if err := config.SaveProfiles(profiles); err != nil {
		return fmt.Errorf("failed to save profiles: %w", err)
	}

	logger.Successf("Profile %s removed successfully", selected)
	return nil
}

func storable(v interface{}) interface{} {
	if s, ok := v.(fmt.Stringer); ok {
		return s.String()
	}
	return v
}
