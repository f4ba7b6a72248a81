package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/armlab/manip-simulations/pkg/logger"
)

var (
	cfgFile  string
	envsFile string
	logLevel string
	noColor  bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "manip-sim",
	Short: "Manipulation simulation CLI",
	Long: `Manipulation Simulation CLI runs table-top manipulation simulations
against named environment configurations: scene clutter, per-object
contact constraints, robot bounds, block geometry, and episode
termination settings.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.manip-sim/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&envsFile, "envs", "", "environments file (default is configs/environments.yaml, falling back to the built-in variants)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	// Add commands
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(envsCmd)
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// initConfig reads in config file and ENV variables if set
func initConfig() {
	// Configure logger based on flags
	logger.SetLevel(logger.ParseLevel(logLevel))
	if noColor {
		logger.SetNoColor(true)
	}

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Search for config in home directory
		viper.AddConfigPath("$HOME/.manip-sim")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("MANIP_SIM")
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in
	_ = viper.ReadInConfig()

	// The environments file may come from config or environment too
	if envsFile == "" {
		envsFile = viper.GetString("environments_file")
	}
}
