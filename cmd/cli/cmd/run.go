package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/armlab/manip-simulations/pkg/envconfig"
	"github.com/armlab/manip-simulations/pkg/logger"
	"github.com/armlab/manip-simulations/pkg/simulation"
	"github.com/armlab/manip-simulations/pkg/utils"

	// Import simulations to register them
	_ "github.com/armlab/manip-simulations/cmd/slide-pickup"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a simulation",
	Long:  `Run a simulation interactively or with specified parameters`,
	RunE:  runSimulation,
}

func init() {
	runCmd.Flags().StringP("simulation", "s", "", "simulation name to run")
	runCmd.Flags().StringP("variant", "e", "", "environment variant to run against")
}

func runSimulation(cmd *cobra.Command, _ []string) error {
	registry, err := envconfig.LoadOrBuiltin(envsFile)
	if err != nil {
		return fmt.Errorf("failed to load environments: %w", err)
	}

	envCfg, err := selectVariant(cmd, registry)
	if err != nil {
		return fmt.Errorf("failed to select environment variant: %w", err)
	}

	simName, err := selectSimulation(cmd)
	if err != nil {
		return fmt.Errorf("failed to select simulation: %w", err)
	}

	sim, err := simulation.DefaultRegistry.Get(simName)
	if err != nil {
		return fmt.Errorf("failed to get simulation: %w", err)
	}

	logger.Progress("Discovering simulation manifests...")
	simInfos, err := utils.DiscoverSimulations()
	if err != nil {
		return fmt.Errorf("failed to discover simulations: %w", err)
	}

	var simConfig *simulation.SimulationConfig
	for _, info := range simInfos {
		if info.Config.Name == simName {
			simConfig = &info.Config
			break
		}
	}

	if simConfig == nil {
		return fmt.Errorf("simulation manifest not found for %s", simName)
	}

	params, err := utils.PromptForParameters(simConfig.Parameters)
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

	go func() {
		<-sigChan
		logger.Warn("\nReceived interrupt signal, stopping simulation...")
		if err := sim.Stop(); err != nil {
			logger.Errorf("Failed to stop simulation: %v", err)
			return
		}
		cancel()
	}()

	logger.LogSection("Simulation Run")
	logger.LogKeyValue("Simulation", sim.Name())
	logger.LogKeyValue("Environment", envCfg.Name)
	if err := sim.Run(ctx, envCfg); err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}

	logger.Success("Simulation completed successfully")
	return nil
}

// selectVariant resolves the environment variant from the flag, the
// MANIP_SIM_VARIANT environment variable, or an interactive prompt.
func selectVariant(cmd *cobra.Command, registry *envconfig.Registry) (*envconfig.EnvironmentConfig, error) {
	name, _ := cmd.Flags().GetString("variant")
	if name == "" {
		name = os.Getenv("MANIP_SIM_VARIANT")
	}

	if name == "" {
		prompt := &survey.Select{
			Message: "Select environment variant:",
			Options: registry.List(),
		}
		if err := survey.AskOne(prompt, &name); err != nil {
			return nil, err
		}
	}

	return registry.Get(name)
}

// selectSimulation resolves the simulation from the flag or a prompt.
func selectSimulation(cmd *cobra.Command) (string, error) {
	name, _ := cmd.Flags().GetString("simulation")
	if name != "" {
		return name, nil
	}

	options := simulation.DefaultRegistry.List()
	if len(options) == 0 {
		return "", fmt.Errorf("no simulations registered")
	}
	if len(options) == 1 {
		return options[0], nil
	}

	prompt := &survey.Select{
		Message: "Select simulation:",
		Options: options,
	}
	if err := survey.AskOne(prompt, &name); err != nil {
		return "", err
	}
	return name, nil
}
