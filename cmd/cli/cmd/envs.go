package cmd

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/AlecAivazis/survey/v2"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/armlab/manip-simulations/pkg/envconfig"
	"github.com/armlab/manip-simulations/pkg/logger"
)

var envsCmd = &cobra.Command{
	Use:   "envs",
	Short: "Inspect environment configurations",
	Long:  `Inspect and validate the named environment variants simulations run against`,
}

var envsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List environment variants",
	RunE:  listEnvVariants,
}

var envsShowCmd = &cobra.Command{
	Use:   "show [variant]",
	Short: "Show one environment variant",
	Args:  cobra.MaximumNArgs(1),
	RunE:  showEnvVariant,
}

var envsValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate an environments file, reporting every violation",
	Args:  cobra.ExactArgs(1),
	RunE:  validateEnvFile,
}

func init() {
	envsCmd.AddCommand(envsListCmd)
	envsCmd.AddCommand(envsShowCmd)
	envsCmd.AddCommand(envsValidateCmd)
}

func listEnvVariants(cmd *cobra.Command, args []string) error {
	registry, err := envconfig.LoadOrBuiltin(envsFile)
	if err != nil {
		return fmt.Errorf("failed to load environments: %w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "VARIANT\tOBJECTS\tFRAME SKIP\tCOST\tDONE\tRANDOMIZED CONSTRAINTS")
	_, _ = fmt.Fprintln(w, "-------\t-------\t----------\t----\t----\t----------------------")

	for _, name := range registry.List() {
		cfg, err := registry.Get(name)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%s\t%t\n",
			name,
			cfg.Scene.NumRelevantObjects,
			cfg.Episode.FrameSkip,
			cfg.Episode.CostType,
			cfg.Episode.DoneType,
			cfg.Constraints.Randomize,
		)
	}

	return w.Flush()
}

func showEnvVariant(cmd *cobra.Command, args []string) error {
	registry, err := envconfig.LoadOrBuiltin(envsFile)
	if err != nil {
		return fmt.Errorf("failed to load environments: %w", err)
	}

	var name string
	if len(args) == 1 {
		name = args[0]
	} else {
		prompt := &survey.Select{
			Message: "Select environment variant:",
			Options: registry.List(),
		}
		if err := survey.AskOne(prompt, &name); err != nil {
			return err
		}
	}

	cfg, err := registry.Get(name)
	if err != nil {
		return err
	}

	fmt.Println(cfg)
	return nil
}

func validateEnvFile(cmd *cobra.Command, args []string) error {
	path := args[0]

	logger.Progressf("Validating %s...", path)
	registry, err := envconfig.LoadFile(path)
	if err == nil {
		color.Green("%s: %d variant(s) valid: %v", path, registry.Len(), registry.List())
		return nil
	}

	var violations envconfig.ValidationErrors
	if !errors.As(err, &violations) {
		return err
	}

	color.Red("%s: %d violation(s)", path, len(violations))
	for _, v := range violations {
		fmt.Printf("  %s %s\n", color.YellowString("[%s]", v.Kind), v.Error())
	}
	return fmt.Errorf("validation failed")
}
