package envconfig

import (
	"fmt"
	"strings"

	"github.com/armlab/manip-simulations/pkg/geometry"
)

// ConstraintType labels the permitted interaction between the
// end-effector and a clutter object.
type ConstraintType string

const (
	// NoContact forbids any contact with the object.
	NoContact ConstraintType = "no_contact"
	// SoftContact allows gentle pushes that do not topple the object.
	SoftContact ConstraintType = "soft_contact"
	// AnyContact allows any interaction, including aggressive impact.
	AnyContact ConstraintType = "any_contact"
	// NoOver forbids moving over (on top of) the object.
	NoOver ConstraintType = "no_over"
)

// ConstraintVocabulary lists every constraint type an environment may
// declare.
var ConstraintVocabulary = []ConstraintType{NoContact, SoftContact, AnyContact, NoOver}

// Cost aggregation modes for the per-step safety/target margins.
const (
	CostDenseEll = "dense_ell" // target margin only
	CostDense    = "dense"     // target margin + safety margin
	CostSparse   = "sparse"    // zero except terminal shaping
	CostMaxEllG  = "max_ell_g" // worst (or best, in reward mode) of the two
)

// CostTypes enumerates the supported cost aggregation modes.
var CostTypes = []string{CostDenseEll, CostDense, CostSparse, CostMaxEllG}

// Episode termination modes.
const (
	DoneToEnd = "toEnd" // only when the state leaves the workspace
	DoneFail  = "fail"  // on safety failure
	DoneTF    = "TF"    // on failure or success
	DoneAll   = "all"   // failure, success, or out of workspace
	DoneReal  = "real"  // like all, but failure comes from the real check
)

// DoneTypes enumerates the supported termination modes.
var DoneTypes = []string{DoneToEnd, DoneFail, DoneTF, DoneAll, DoneReal}

// Return conventions: whether margins are reported as rewards
// (higher is better) or costs (lower is better).
const (
	ReturnReward = "reward"
	ReturnCost   = "cost"
)

// ReturnTypes enumerates the supported return conventions.
var ReturnTypes = []string{ReturnReward, ReturnCost}

// EnvironmentConfig is one named, complete parameter set for a
// manipulation environment. Records are built once, validated, and
// shared read-only by any number of simulation instances.
type EnvironmentConfig struct {
	// Name is the variant key in the source document, set by the loader.
	Name string `yaml:"-"`

	Scene        SceneConfig       `yaml:"scene"`
	Constraints  ConstraintConfig  `yaml:"constraints"`
	Robot        RobotConfig       `yaml:"robot"`
	Blocks       BlocksConfig      `yaml:"blocks"`
	Task         TaskConfig        `yaml:"task"`
	Episode      EpisodeConfig     `yaml:"episode"`
	Observations ObservationConfig `yaml:"observations"`
}

// SceneConfig describes the clutter present on the table.
type SceneConfig struct {
	// NumRelevantObjects is how many clutter objects are instantiated per
	// episode; InitialPoses must provide at least that many poses.
	NumRelevantObjects int         `yaml:"n_rel_objs"`
	ObjectNames        []string    `yaml:"obj_names"`
	InitialPoses       [][]float64 `yaml:"initial_poses"`
	ObjectRangeLow     []float64   `yaml:"obj_range_low"`
	ObjectRangeHigh    []float64   `yaml:"obj_range_high"`
}

// ConstraintConfig maps clutter objects to their default interaction
// constraints.
type ConstraintConfig struct {
	Types []ConstraintType `yaml:"constraint_types"`
	// ObjectDefaults assigns each object its constraint when Randomize is
	// false. Values must come from Types.
	ObjectDefaults map[string]ConstraintType `yaml:"obj_to_constraint_map"`
	// Randomize draws each object's constraint uniformly from Types at
	// episode start instead of using ObjectDefaults.
	Randomize bool `yaml:"randomize_constraints"`
}

// RobotConfig holds actuator initialization and control bounds.
type RobotConfig struct {
	InitJointPos []float64 `yaml:"init_joint_pos"`
	InitEEFPos   []float64 `yaml:"init_eef_pos"`
	// MocapLow/MocapHigh bound the commanded end-effector position.
	MocapLow            []float64 `yaml:"mocap_low"`
	MocapHigh           []float64 `yaml:"mocap_high"`
	ActionScale         float64   `yaml:"action_scale"`
	GravityCompensation bool      `yaml:"gravity_compensation"`
}

// BlockConfig describes one of the two manipulated blocks.
type BlockConfig struct {
	Mass float64 `yaml:"mass"`
	// HalfSize holds half-dimensions per axis.
	HalfSize    []float64 `yaml:"size"`
	Color       []float64 `yaml:"color"`
	Friction    []float64 `yaml:"friction"`
	Restitution float64   `yaml:"restitution"`
}

// BlocksConfig holds the bottom (slid) and top (balanced) blocks.
type BlocksConfig struct {
	Bottom BlockConfig `yaml:"bottom"`
	Top    BlockConfig `yaml:"top"`
}

// TaskConfig defines where the bottom block must end up and which region
// the episode must stay clear of.
type TaskConfig struct {
	Goal []float64 `yaml:"goal"`
	// TargetSets lists one or more goal regions; reaching any one counts.
	TargetSets []geometry.Box `yaml:"target_sets"`
	SafetySet  geometry.Box   `yaml:"safety_set"`
}

// EpisodeConfig holds termination thresholds and reward shaping.
type EpisodeConfig struct {
	// FrameSkip is the number of physics steps per control step.
	FrameSkip    int     `yaml:"frame_skip"`
	VelThreshold float64 `yaml:"vel_threshold"`
	PosThreshold float64 `yaml:"pos_threshold"`
	// TipAngleThreshold feeds the hardware-grade failure check, which
	// only the "real" done mode consults; the simulated modes fail on
	// safety-margin violations alone.
	TipAngleThreshold float64 `yaml:"tip_angle_threshold"`
	Reward            float64 `yaml:"reward"`
	Penalty           float64 `yaml:"penalty"`

	// ShapeReward overrides the terminal cost with Reward/Penalty on
	// success/failure.
	ShapeReward   bool    `yaml:"shape_reward"`
	CostType      string  `yaml:"cost_type"`
	DoneType      string  `yaml:"done_type"`
	ReturnType    string  `yaml:"return_type"`
	ScalingTarget float64 `yaml:"scaling_target"`
	ScalingSafety float64 `yaml:"scaling_safety"`
}

// ObservationConfig selects which state and image channels the consumer
// sees.
type ObservationConfig struct {
	StateKeys []string `yaml:"state_keys"`
	ImageKeys []string `yaml:"image_keys"`
	ImageSize []int    `yaml:"img_size"`
}

// ConstraintFor returns the default constraint for an object, falling
// back to AnyContact for objects without an entry.
func (c *ConstraintConfig) ConstraintFor(object string) ConstraintType {
	if t, ok := c.ObjectDefaults[object]; ok {
		return t
	}
	return AnyContact
}

// String returns a human-readable summary of the configuration.
func (c *EnvironmentConfig) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Environment: %s\n", c.Name)
	fmt.Fprintf(&b, "  Scene: %d of %d objects, placement range %v - %v\n",
		c.Scene.NumRelevantObjects, len(c.Scene.ObjectNames),
		c.Scene.ObjectRangeLow, c.Scene.ObjectRangeHigh)
	fmt.Fprintf(&b, "  Constraints: randomize=%t\n", c.Constraints.Randomize)
	for _, name := range c.Scene.ObjectNames {
		fmt.Fprintf(&b, "    %s: %s\n", name, c.Constraints.ConstraintFor(name))
	}
	fmt.Fprintf(&b, "  Robot: eef %v, mocap bounds %v - %v, action scale %g\n",
		c.Robot.InitEEFPos, c.Robot.MocapLow, c.Robot.MocapHigh, c.Robot.ActionScale)
	fmt.Fprintf(&b, "  Blocks: bottom mass %g half-size %v, top mass %g half-size %v\n",
		c.Blocks.Bottom.Mass, c.Blocks.Bottom.HalfSize,
		c.Blocks.Top.Mass, c.Blocks.Top.HalfSize)
	fmt.Fprintf(&b, "  Task: goal %v, %d target set(s), safety set %s\n",
		c.Task.Goal, len(c.Task.TargetSets), c.Task.SafetySet)
	fmt.Fprintf(&b, "  Episode: frame skip %d, cost %s, done %s, return %s\n",
		c.Episode.FrameSkip, c.Episode.CostType, c.Episode.DoneType, c.Episode.ReturnType)
	fmt.Fprintf(&b, "  Observations: state %v, images %v at %v",
		c.Observations.StateKeys, c.Observations.ImageKeys, c.Observations.ImageSize)
	return b.String()
}
