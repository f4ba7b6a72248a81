package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/armlab/manip-simulations/pkg/envconfig"
	"github.com/armlab/manip-simulations/pkg/utils"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available simulations",
	Long:  `List available simulations and the environment variants they can run against`,
	RunE:  listSimulations,
}

func listSimulations(cmd *cobra.Command, args []string) error {
	simInfos, err := utils.DiscoverSimulations()
	if err != nil {
		return fmt.Errorf("failed to discover simulations: %w", err)
	}

	if len(simInfos) == 0 {
		fmt.Println("No simulations found")
		return nil
	}

	// Every simulation runs against one of the registered variants.
	registry, err := envconfig.LoadOrBuiltin(envsFile)
	if err != nil {
		return fmt.Errorf("failed to load environments: %w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tCATEGORY\tPARAMETERS\tDESCRIPTION")
	_, _ = fmt.Fprintln(w, "----\t--------\t----------\t-----------")

	for _, info := range simInfos {
		names := make([]string, 0, len(info.Config.Parameters))
		for _, p := range info.Config.Parameters {
			names = append(names, p.Name)
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			info.Config.Name,
			info.Config.Category,
			strings.Join(names, ", "),
			info.Config.Description,
		)
	}

	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\nEnvironment variants: %s\n", strings.Join(registry.List(), ", "))
	return nil
}
