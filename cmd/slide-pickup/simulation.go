package slidepickup

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/armlab/manip-simulations/pkg/envconfig"
	"github.com/armlab/manip-simulations/pkg/geometry"
	"github.com/armlab/manip-simulations/pkg/logger"
	"github.com/armlab/manip-simulations/pkg/simulation"
)

// SimulationName is the registry key and manifest name.
const SimulationName = "Slide Pickup Clutter"

func init() {
	_ = simulation.DefaultRegistry.Register(SimulationName, NewSimulation)
}

// SlidePickupSimulation runs synthetic end-effector rollouts against an
// environment configuration: per-episode clutter sampling, constraint
// assignment, goal seeking within the mocap bounds, and the configured
// cost and termination modes.
type SlidePickupSimulation struct {
	config   *Config
	stopChan chan struct{}
}

// NewSimulation creates a new instance of the slide-pickup simulation
func NewSimulation() simulation.Simulation {
	return &SlidePickupSimulation{
		stopChan: make(chan struct{}),
	}
}

// Name returns the simulation name
func (s *SlidePickupSimulation) Name() string {
	return SimulationName
}

// Description returns the simulation description
func (s *SlidePickupSimulation) Description() string {
	return "Slide a block through clutter to a target region under per-object contact constraints"
}

// Configure sets up the simulation with provided parameters
func (s *SlidePickupSimulation) Configure(params map[string]interface{}) error {
	config, err := ValidateAndParse(params)
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	s.config = config
	return nil
}

// Run executes the configured number of episodes.
func (s *SlidePickupSimulation) Run(ctx context.Context, env *envconfig.EnvironmentConfig) error {
	if s.config == nil {
		return fmt.Errorf("simulation not configured")
	}

	seed := s.config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	log := logger.WithField("env", env.Name)
	log.Infof("Starting %s: %d episode(s), seed %d", s.Name(), s.config.Episodes, seed)

	outcomes := map[string]int{}
	for i := 0; i < s.config.Episodes; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.stopChan:
			logger.Info("Simulation stopped by user")
			return nil
		default:
		}

		result := s.runEpisode(env, rng)
		outcomes[result.Outcome]++
		log.Infof("episode %d/%d [%s]: %s after %d steps, return %.3f",
			i+1, s.config.Episodes, result.ID, result.Outcome, result.Steps, result.Return)
	}

	logger.Successf("Finished: %d success, %d failure, %d out_of_env, %d timeout",
		outcomes[OutcomeSuccess], outcomes[OutcomeFailure],
		outcomes[OutcomeOutOfEnv], outcomes[OutcomeTimeout])
	return nil
}

// Stop gracefully shuts down the simulation
func (s *SlidePickupSimulation) Stop() error {
	close(s.stopChan)
	return nil
}

// EpisodeResult summarizes one rollout.
type EpisodeResult struct {
	ID      string
	Steps   int
	Outcome string
	Return  float64
}

func (s *SlidePickupSimulation) runEpisode(env *envconfig.EnvironmentConfig, rng *rand.Rand) EpisodeResult {
	result := EpisodeResult{ID: uuid.NewString()[:8], Outcome: OutcomeTimeout}

	sc := sampleScene(env, rng)

	pos := append([]float64(nil), env.Robot.InitEEFPos...)
	goal := env.Task.Goal
	// Per control step the commanded displacement covers frame_skip
	// physics steps.
	stride := env.Robot.ActionScale * float64(env.Episode.FrameSkip)
	tilt := 0.0

	for step := 0; step < s.config.MaxSteps; step++ {
		result.Steps = step + 1

		speed := stepToward(pos, goal, stride, env.Robot.MocapLow, env.Robot.MocapHigh)

		// The top block wobbles more the faster the bottom block moves.
		tilt += speed * 0.1 * rng.Float64()

		lx := env.Episode.ScalingTarget * geometry.MinSignedDistance(pos, env.Task.TargetSets)
		// With no keep-out regions the safety margin never binds.
		gx := 0.0
		if len(sc.obstacles) > 0 {
			gx = env.Episode.ScalingSafety * geometry.MaxObstacleSignedDistance(pos, sc.obstacles)
		}
		if env.Episode.ReturnType == envconfig.ReturnReward {
			lx, gx = -lx, -gx
		}

		success := reached(pos, goal, env.Episode.PosThreshold) &&
			speed <= env.Episode.VelThreshold
		fail := violated(gx, env.Episode.ReturnType)
		tipped := tilt > env.Episode.TipAngleThreshold
		outOfEnv := !env.Task.SafetySet.Contains(pos)

		result.Return += costFor(&env.Episode, lx, gx, success, fail)

		done, outcome := doneFor(&env.Episode, success, fail, fail || tipped, outOfEnv)
		if done {
			if outcome != "" {
				result.Outcome = outcome
			}
			return result
		}
	}

	return result
}

// stepToward advances pos toward goal by at most stride, clipped to the
// mocap bounds, and returns the realized speed.
func stepToward(pos, goal []float64, stride float64, low, high []float64) float64 {
	dist := 0.0
	for i := range pos {
		d := goal[i] - pos[i]
		dist += d * d
	}
	dist = math.Sqrt(dist)
	if dist == 0 {
		return 0
	}

	scale := stride / dist
	if scale > 1 {
		scale = 1
	}

	moved := 0.0
	for i := range pos {
		next := pos[i] + (goal[i]-pos[i])*scale
		if i < len(low) && next < low[i] {
			next = low[i]
		}
		if i < len(high) && next > high[i] {
			next = high[i]
		}
		d := next - pos[i]
		moved += d * d
		pos[i] = next
	}
	return math.Sqrt(moved)
}

// reached reports whether pos is within the positional threshold of goal.
func reached(pos, goal []float64, threshold float64) bool {
	dist := 0.0
	for i := range pos {
		d := goal[i] - pos[i]
		dist += d * d
	}
	return math.Sqrt(dist) <= threshold
}

// violated reports whether the safety margin indicates an obstacle
// violation under the configured return convention.
func violated(gx float64, returnType string) bool {
	if returnType == envconfig.ReturnReward {
		return gx < 0
	}
	return gx > 0
}
