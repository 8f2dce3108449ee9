package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/picogrid/situation-monitor/pkg/simulation"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available simulations",
	Long:  `List all available simulations with their descriptions`,
	RunE:  listSimulations,
}

func init() {
	listCmd.Flags().BoolP("verbose", "v", false, "show each simulation's parameters")
}

func listSimulations(cmd *cobra.Command, args []string) error {
	configs := simulation.DefaultRegistry.Configs()
	if len(configs) == 0 {
		fmt.Println("No simulations found")
		return nil
	}

	verbose, _ := cmd.Flags().GetBool("verbose")

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tVERSION\tCATEGORY\tDESCRIPTION")
	_, _ = fmt.Fprintln(w, "----\t-------\t--------\t-----------")

	for _, cfg := range configs {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			cfg.Name,
			cfg.Version,
			cfg.Category,
			cfg.Description,
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if !verbose {
		return nil
	}

	for _, cfg := range configs {
		fmt.Printf("\n%s parameters:\n", cfg.Name)
		pw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		_, _ = fmt.Fprintln(pw, "  PARAMETER\tTYPE\tDEFAULT\tENV\tDESCRIPTION")
		for _, p := range cfg.Parameters {
			_, _ = fmt.Fprintf(pw, "  %s\t%s\t%v\t%s\t%s\n", p.Name, p.Type, p.Default, envKey(p.Name), p.Description)
		}
		if err := pw.Flush(); err != nil {
			return err
		}
	}
	return nil
}
