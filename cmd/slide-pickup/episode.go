package slidepickup

import (
	"math"
	"math/rand"

	"github.com/armlab/manip-simulations/pkg/envconfig"
	"github.com/armlab/manip-simulations/pkg/geometry"
)

// Episode outcomes.
const (
	OutcomeSuccess  = "success"
	OutcomeFailure  = "failure"
	OutcomeOutOfEnv = "out_of_env"
	OutcomeTimeout  = "timeout"
)

// Clearance added around a constrained object when turning it into a
// keep-out region for the end-effector.
var obstacleClearance = []float64{0.05, 0.05, 0.08}

// costFor aggregates the per-step target margin lx and safety margin gx
// according to the configured cost mode. With shape_reward set, terminal
// steps are overridden with the configured reward/penalty; the sign
// depends on whether margins are reported as rewards or costs.
func costFor(e *envconfig.EpisodeConfig, lx, gx float64, success, fail bool) float64 {
	var cost float64
	switch e.CostType {
	case envconfig.CostDenseEll:
		cost = lx
	case envconfig.CostDense:
		cost = lx + gx
	case envconfig.CostSparse:
		cost = 0
	case envconfig.CostMaxEllG:
		if e.ReturnType == envconfig.ReturnReward {
			cost = math.Min(lx, gx)
		} else {
			cost = math.Max(lx, gx)
		}
	}

	if e.ShapeReward {
		if e.ReturnType == envconfig.ReturnReward {
			if success {
				cost = -e.Reward
			} else if fail {
				cost = -e.Penalty
			}
		} else {
			if success {
				cost = e.Reward
			} else if fail {
				cost = e.Penalty
			}
		}
	}

	return cost
}

// doneFor decides episode termination for the configured done mode.
// realFail is the hardware-grade failure check used by the "real" mode;
// in simulation it folds in the tip-over check.
func doneFor(e *envconfig.EpisodeConfig, success, fail, realFail, outOfEnv bool) (bool, string) {
	switch e.DoneType {
	case envconfig.DoneToEnd:
		return outOfEnv, outcomeOf(false, false, outOfEnv)
	case envconfig.DoneFail:
		return fail, outcomeOf(false, fail, false)
	case envconfig.DoneTF:
		return fail || success, outcomeOf(success, fail, false)
	case envconfig.DoneAll:
		return fail || success || outOfEnv, outcomeOf(success, fail, outOfEnv)
	case envconfig.DoneReal:
		return realFail || success || outOfEnv, outcomeOf(success, realFail, outOfEnv)
	}
	return false, ""
}

func outcomeOf(success, fail, outOfEnv bool) string {
	switch {
	case success:
		return OutcomeSuccess
	case fail:
		return OutcomeFailure
	case outOfEnv:
		return OutcomeOutOfEnv
	default:
		return ""
	}
}

// scene is one episode's sampled world: clutter poses, the constraint
// assignment, and the keep-out regions derived from it.
type scene struct {
	objects     []string
	poses       [][]float64
	constraints map[string]envconfig.ConstraintType
	obstacles   []geometry.Box
}

// sampleScene instantiates the first n_rel_objs objects, drawing poses
// uniformly within the placement range and, when configured, drawing
// constraint types per episode instead of using the defaults.
func sampleScene(env *envconfig.EnvironmentConfig, rng *rand.Rand) *scene {
	n := env.Scene.NumRelevantObjects
	if n > len(env.Scene.ObjectNames) {
		n = len(env.Scene.ObjectNames)
	}

	s := &scene{
		objects:     env.Scene.ObjectNames[:n],
		constraints: make(map[string]envconfig.ConstraintType, n),
	}

	low, high := env.Scene.ObjectRangeLow, env.Scene.ObjectRangeHigh
	for i := 0; i < n; i++ {
		pose := make([]float64, len(low))
		for d := range pose {
			pose[d] = low[d] + rng.Float64()*(high[d]-low[d])
		}
		s.poses = append(s.poses, pose)
	}

	for i, name := range s.objects {
		t := env.Constraints.ConstraintFor(name)
		if env.Constraints.Randomize && len(env.Constraints.Types) > 0 {
			t = env.Constraints.Types[rng.Intn(len(env.Constraints.Types))]
		}
		s.constraints[name] = t

		switch t {
		case envconfig.NoContact:
			s.obstacles = append(s.obstacles, geometry.HalfSizeBox(s.poses[i], obstacleClearance))
		case envconfig.NoOver:
			// A column from the object up to the top of the workspace.
			b := geometry.HalfSizeBox(s.poses[i], obstacleClearance)
			if dim := len(b.High); dim > 0 && len(env.Task.SafetySet.High) == dim {
				b.High[dim-1] = env.Task.SafetySet.High[dim-1]
			}
			s.obstacles = append(s.obstacles, b)
		}
	}

	return s
}
