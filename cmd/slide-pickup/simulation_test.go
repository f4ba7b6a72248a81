package slidepickup

import (
	"context"
	"math"
	"math/rand"
	"testing"

	"github.com/armlab/manip-simulations/pkg/envconfig"
	"github.com/armlab/manip-simulations/pkg/geometry"
)

func TestValidateAndParse(t *testing.T) {
	tests := []struct {
		name   string
		params map[string]interface{}
		hasErr bool
	}{
		{
			name:   "defaults",
			params: map[string]interface{}{},
			hasErr: false,
		},
		{
			name: "explicit values",
			params: map[string]interface{}{
				"episodes":  5,
				"max_steps": 50,
				"seed":      42,
			},
			hasErr: false,
		},
		{
			name:   "float values from prompts",
			params: map[string]interface{}{"episodes": 5.0},
			hasErr: false,
		},
		{
			name:   "zero episodes",
			params: map[string]interface{}{"episodes": 0},
			hasErr: true,
		},
		{
			name:   "non-numeric episodes",
			params: map[string]interface{}{"episodes": "lots"},
			hasErr: true,
		},
		{
			name:   "max_steps out of range",
			params: map[string]interface{}{"max_steps": 1000000},
			hasErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, err := ValidateAndParse(tt.params)
			if tt.hasErr && err == nil {
				t.Errorf("expected an error for %s", tt.name)
			}
			if !tt.hasErr && err != nil {
				t.Errorf("unexpected error for %s: %v", tt.name, err)
			}
			if err == nil && config.Episodes < 1 {
				t.Errorf("parsed config has no episodes")
			}
		})
	}
}

// obstacleFreeEnv returns a variant where nothing blocks the straight
// path to the goal and the top block cannot tip.
func obstacleFreeEnv() *envconfig.EnvironmentConfig {
	env := envconfig.DefaultSlidePickupClutter()
	env.Constraints.Randomize = false
	for name := range env.Constraints.ObjectDefaults {
		env.Constraints.ObjectDefaults[name] = envconfig.AnyContact
	}
	env.Task.Goal = []float64{0.3, 0.2, 0.06}
	env.Episode.TipAngleThreshold = 1000
	return env
}

func TestRunEpisodeReachesGoal(t *testing.T) {
	env := obstacleFreeEnv()

	sim := &SlidePickupSimulation{config: &Config{Episodes: 1, MaxSteps: 100}}
	result := sim.runEpisode(env, rand.New(rand.NewSource(1)))

	if result.Outcome != OutcomeSuccess {
		t.Fatalf("expected success, got %s after %d steps", result.Outcome, result.Steps)
	}
	if result.ID == "" {
		t.Error("expected a run id")
	}
}

func TestRunEpisodeDenseCostNoObstacles(t *testing.T) {
	// All objects allow contact, so the scene yields no keep-out regions
	// and the safety margin must not blow up the dense cost.
	env := obstacleFreeEnv()
	env.Episode.CostType = envconfig.CostDense
	env.Episode.ShapeReward = false

	sim := &SlidePickupSimulation{config: &Config{Episodes: 1, MaxSteps: 100}}
	result := sim.runEpisode(env, rand.New(rand.NewSource(1)))

	if math.IsInf(result.Return, 0) || math.IsNaN(result.Return) {
		t.Fatalf("expected a finite return without keep-out regions, got %g", result.Return)
	}
	if result.Outcome != OutcomeSuccess {
		t.Errorf("expected success, got %s", result.Outcome)
	}
}

func TestTipOverFailsOnlyInRealMode(t *testing.T) {
	// Tip-over belongs to the hardware-grade failure check: the "real"
	// done mode stops on it, the simulated modes do not.
	env := obstacleFreeEnv()
	env.Episode.TipAngleThreshold = 0

	sim := &SlidePickupSimulation{config: &Config{Episodes: 1, MaxSteps: 100}}

	result := sim.runEpisode(env, rand.New(rand.NewSource(1)))
	if result.Outcome != OutcomeSuccess {
		t.Fatalf("done mode all should ignore tip-over, got %s", result.Outcome)
	}

	env.Episode.DoneType = envconfig.DoneReal
	result = sim.runEpisode(env, rand.New(rand.NewSource(1)))
	if result.Outcome != OutcomeFailure {
		t.Fatalf("done mode real should stop on tip-over, got %s", result.Outcome)
	}
}

func TestRunEpisodeFailsInsideObstacle(t *testing.T) {
	env := obstacleFreeEnv()
	env.Constraints.ObjectDefaults["cup"] = envconfig.NoContact
	// Pin the cup exactly on the goal; the end-effector arrives inside
	// the keep-out region while still moving too fast to count as done.
	env.Scene.NumRelevantObjects = 1
	env.Scene.ObjectNames = []string{"cup"}
	env.Scene.ObjectRangeLow = []float64{0.1, 0.1, 0.06}
	env.Scene.ObjectRangeHigh = []float64{0.1, 0.1, 0.06}
	env.Task.Goal = []float64{0.1, 0.1, 0.06}

	sim := &SlidePickupSimulation{config: &Config{Episodes: 1, MaxSteps: 10}}
	result := sim.runEpisode(env, rand.New(rand.NewSource(1)))

	if result.Outcome != OutcomeFailure {
		t.Fatalf("expected failure inside the keep-out region, got %s", result.Outcome)
	}
}

func TestRunEpisodeTimesOut(t *testing.T) {
	env := obstacleFreeEnv()
	// An unreachable goal outside the mocap bounds never satisfies the
	// position threshold, and done_type fail never stops on its own.
	env.Episode.DoneType = envconfig.DoneFail
	env.Task.Goal = []float64{5, 5, 5}
	env.Task.SafetySet = geometry.Box{
		Low:  []float64{-10, -10, -10},
		High: []float64{10, 10, 10},
	}

	sim := &SlidePickupSimulation{config: &Config{Episodes: 1, MaxSteps: 5}}
	result := sim.runEpisode(env, rand.New(rand.NewSource(1)))

	if result.Outcome != OutcomeTimeout {
		t.Fatalf("expected timeout, got %s", result.Outcome)
	}
	if result.Steps != 5 {
		t.Errorf("expected 5 steps, got %d", result.Steps)
	}
}

func TestRunHonorsContextCancellation(t *testing.T) {
	sim := NewSimulation()
	if err := sim.Configure(map[string]interface{}{"episodes": 10000}); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := sim.Run(ctx, obstacleFreeEnv())
	if err != context.Canceled {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
