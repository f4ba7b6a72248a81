package slidepickup

import (
	"fmt"
)

// Config holds the run parameters for the slide-pickup simulation.
// Environment parameters come from the envconfig variant, these only
// control the rollout itself.
type Config struct {
	Episodes int
	MaxSteps int
	Seed     int64
}

// ValidateAndParse validates and parses the raw parameters into a Config
func ValidateAndParse(params map[string]interface{}) (*Config, error) {
	config := &Config{
		Episodes: 10,
		MaxSteps: 100,
	}

	if v, ok := params["episodes"]; ok {
		switch val := v.(type) {
		case int:
			config.Episodes = val
		case float64:
			config.Episodes = int(val)
		default:
			return nil, fmt.Errorf("episodes must be an integer")
		}
	}
	if config.Episodes < 1 || config.Episodes > 10000 {
		return nil, fmt.Errorf("episodes must be between 1 and 10000")
	}

	if v, ok := params["max_steps"]; ok {
		switch val := v.(type) {
		case int:
			config.MaxSteps = val
		case float64:
			config.MaxSteps = int(val)
		default:
			return nil, fmt.Errorf("max_steps must be an integer")
		}
	}
	if config.MaxSteps < 1 || config.MaxSteps > 100000 {
		return nil, fmt.Errorf("max_steps must be between 1 and 100000")
	}

	if v, ok := params["seed"]; ok {
		switch val := v.(type) {
		case int:
			config.Seed = int64(val)
		case float64:
			config.Seed = int64(val)
		default:
			return nil, fmt.Errorf("seed must be an integer")
		}
	}

	return config, nil
}
