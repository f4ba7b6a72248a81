package simulation

import (
	"context"

	"github.com/armlab/manip-simulations/pkg/envconfig"
)

// Simulation defines the interface that all simulations must implement
type Simulation interface {
	// Name returns the name of the simulation
	Name() string

	// Description returns a brief description of what the simulation does
	Description() string

	// Configure sets up the simulation with the provided parameters
	Configure(params map[string]interface{}) error

	// Run executes the simulation against an environment configuration.
	// The configuration is shared and must not be mutated.
	Run(ctx context.Context, env *envconfig.EnvironmentConfig) error

	// Stop gracefully shuts down the simulation
	Stop() error
}
