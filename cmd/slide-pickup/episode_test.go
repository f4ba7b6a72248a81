package slidepickup

import (
	"math/rand"
	"testing"

	"github.com/armlab/manip-simulations/pkg/envconfig"
)

func episodeConfig(costType, doneType, returnType string) *envconfig.EpisodeConfig {
	return &envconfig.EpisodeConfig{
		Reward:        1.0,
		Penalty:       2.0,
		CostType:      costType,
		DoneType:      doneType,
		ReturnType:    returnType,
		ScalingTarget: 1.0,
		ScalingSafety: 1.0,
	}
}

func TestCostFor(t *testing.T) {
	tests := []struct {
		name       string
		costType   string
		returnType string
		lx, gx     float64
		want       float64
	}{
		{"dense_ell uses target margin", envconfig.CostDenseEll, envconfig.ReturnCost, 0.3, 0.7, 0.3},
		{"dense sums margins", envconfig.CostDense, envconfig.ReturnCost, 0.3, 0.7, 1.0},
		{"sparse is zero", envconfig.CostSparse, envconfig.ReturnCost, 0.3, 0.7, 0},
		{"max_ell_g takes worst in cost mode", envconfig.CostMaxEllG, envconfig.ReturnCost, 0.3, 0.7, 0.7},
		{"max_ell_g takes best in reward mode", envconfig.CostMaxEllG, envconfig.ReturnReward, 0.3, 0.7, 0.3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := episodeConfig(tt.costType, envconfig.DoneAll, tt.returnType)
			if got := costFor(e, tt.lx, tt.gx, false, false); got != tt.want {
				t.Errorf("costFor = %g, want %g", got, tt.want)
			}
		})
	}
}

func TestCostForTerminalShaping(t *testing.T) {
	e := episodeConfig(envconfig.CostMaxEllG, envconfig.DoneAll, envconfig.ReturnCost)
	e.ShapeReward = true

	if got := costFor(e, 0.3, 0.7, true, false); got != e.Reward {
		t.Errorf("success cost = %g, want %g", got, e.Reward)
	}
	if got := costFor(e, 0.3, 0.7, false, true); got != e.Penalty {
		t.Errorf("failure cost = %g, want %g", got, e.Penalty)
	}

	// In reward mode the terminal values flip sign.
	e.ReturnType = envconfig.ReturnReward
	if got := costFor(e, 0.3, 0.7, true, false); got != -e.Reward {
		t.Errorf("success reward = %g, want %g", got, -e.Reward)
	}

	// Without shaping the aggregated margin stands.
	e.ShapeReward = false
	e.ReturnType = envconfig.ReturnCost
	if got := costFor(e, 0.3, 0.7, true, false); got != 0.7 {
		t.Errorf("unshaped cost = %g, want 0.7", got)
	}
}

func TestDoneFor(t *testing.T) {
	tests := []struct {
		name                             string
		doneType                         string
		success, fail, realFail, outOfEnv bool
		wantDone                         bool
		wantOutcome                      string
	}{
		{"toEnd ignores failure", envconfig.DoneToEnd, false, true, true, false, false, ""},
		{"toEnd stops out of env", envconfig.DoneToEnd, false, false, false, true, true, OutcomeOutOfEnv},
		{"fail ignores success", envconfig.DoneFail, true, false, false, false, false, ""},
		{"fail stops on failure", envconfig.DoneFail, false, true, true, false, true, OutcomeFailure},
		{"TF stops on success", envconfig.DoneTF, true, false, false, false, true, OutcomeSuccess},
		{"TF ignores workspace exit", envconfig.DoneTF, false, false, false, true, false, ""},
		{"all stops on any condition", envconfig.DoneAll, false, false, false, true, true, OutcomeOutOfEnv},
		{"real uses the real failure check", envconfig.DoneReal, false, true, false, false, false, ""},
		{"real stops on real failure", envconfig.DoneReal, false, false, true, false, true, OutcomeFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := episodeConfig(envconfig.CostMaxEllG, tt.doneType, envconfig.ReturnCost)
			done, outcome := doneFor(e, tt.success, tt.fail, tt.realFail, tt.outOfEnv)
			if done != tt.wantDone {
				t.Errorf("done = %t, want %t", done, tt.wantDone)
			}
			if outcome != tt.wantOutcome {
				t.Errorf("outcome = %q, want %q", outcome, tt.wantOutcome)
			}
		})
	}
}

func TestSampleScene(t *testing.T) {
	env := envconfig.DefaultSlidePickupClutter()
	rng := rand.New(rand.NewSource(7))

	sc := sampleScene(env, rng)

	if len(sc.objects) != env.Scene.NumRelevantObjects {
		t.Fatalf("expected %d objects, got %d", env.Scene.NumRelevantObjects, len(sc.objects))
	}

	low, high := env.Scene.ObjectRangeLow, env.Scene.ObjectRangeHigh
	for i, pose := range sc.poses {
		for d := range pose {
			if pose[d] < low[d] || pose[d] > high[d] {
				t.Errorf("pose %d axis %d = %g outside placement range", i, d, pose[d])
			}
		}
	}

	declared := map[envconfig.ConstraintType]bool{}
	for _, ct := range env.Constraints.Types {
		declared[ct] = true
	}
	for name, ct := range sc.constraints {
		if !declared[ct] {
			t.Errorf("object %s assigned undeclared constraint %s", name, ct)
		}
	}
}

func TestSampleSceneFixedConstraints(t *testing.T) {
	env := envconfig.DefaultSlidePickupClutterReal()
	rng := rand.New(rand.NewSource(7))

	sc := sampleScene(env, rng)

	// Without randomization the default mapping is used verbatim.
	for name, ct := range sc.constraints {
		if want := env.Constraints.ConstraintFor(name); ct != want {
			t.Errorf("object %s got %s, want default %s", name, ct, want)
		}
	}

	// no_contact objects become keep-out regions.
	if len(sc.obstacles) == 0 {
		t.Error("expected at least one obstacle from the no_contact cup")
	}
}
