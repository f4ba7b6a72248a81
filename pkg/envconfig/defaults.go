package envconfig

import "github.com/armlab/manip-simulations/pkg/geometry"

// VariantSlidePickupClutter is the simulated slide-and-pick-up task with
// six clutter objects.
const VariantSlidePickupClutter = "slide_pickup_clutter"

// VariantSlidePickupClutterReal is the real-robot variant with a reduced
// scene and workspace.
const VariantSlidePickupClutterReal = "slide_pickup_clutter_real"

// DefaultSlidePickupClutter returns the built-in simulated variant.
func DefaultSlidePickupClutter() *EnvironmentConfig {
	return &EnvironmentConfig{
		Name: VariantSlidePickupClutter,

		Scene: SceneConfig{
			NumRelevantObjects: 6,
			ObjectNames:        []string{"cup", "bottle", "laptop", "toy", "bowl", "can"},
			InitialPoses: [][]float64{
				{0.10, -0.20, 0.025},
				{0.20, 0.15, 0.025},
				{0.30, -0.10, 0.025},
				{0.35, 0.25, 0.025},
				{0.45, -0.25, 0.025},
				{0.50, 0.05, 0.025},
			},
			ObjectRangeLow:  []float64{0.0, -0.30, 0.025},
			ObjectRangeHigh: []float64{0.55, 0.30, 0.025},
		},

		Constraints: ConstraintConfig{
			Types: []ConstraintType{NoContact, SoftContact, AnyContact, NoOver},
			ObjectDefaults: map[string]ConstraintType{
				"cup":    NoContact,
				"bottle": SoftContact,
				"laptop": NoOver,
				"toy":    AnyContact,
				"bowl":   NoContact,
				"can":    SoftContact,
			},
			Randomize: true,
		},

		Robot: RobotConfig{
			InitJointPos:        []float64{0, 0.41, 0, -1.85, 0, 2.26, 0.79},
			InitEEFPos:          []float64{-0.10, 0.0, 0.06},
			MocapLow:            []float64{-0.60, -0.45, 0.06},
			MocapHigh:           []float64{0.70, 0.65, 0.60},
			ActionScale:         0.05,
			GravityCompensation: true,
		},

		Blocks: BlocksConfig{
			Bottom: BlockConfig{
				Mass:        0.10,
				HalfSize:    []float64{0.025, 0.025, 0.025},
				Color:       []float64{0, 0, 1, 1},
				Friction:    []float64{0.5, 0.005, 0.0001},
				Restitution: 0.1,
			},
			Top: BlockConfig{
				Mass:        0.05,
				HalfSize:    []float64{0.02, 0.02, 0.02},
				Color:       []float64{1, 0, 0, 1},
				Friction:    []float64{0.8, 0.005, 0.0001},
				Restitution: 0.1,
			},
		},

		Task: TaskConfig{
			Goal: []float64{0.6, 0.6, 0.5},
			TargetSets: []geometry.Box{
				// bottom_goal
				{Low: []float64{0.50, -0.40, 0.0}, High: []float64{0.70, -0.20, 0.10}},
				// top_goal
				{Low: []float64{0.50, 0.40, 0.0}, High: []float64{0.70, 0.60, 0.10}},
			},
			SafetySet: geometry.Box{
				Low:  []float64{-0.70, -0.55, 0.0},
				High: []float64{0.80, 0.75, 0.70},
			},
		},

		Episode: EpisodeConfig{
			FrameSkip:         5,
			VelThreshold:      0.05,
			PosThreshold:      0.05,
			TipAngleThreshold: 0.52,
			Reward:            1.0,
			Penalty:           1.0,
			ShapeReward:       true,
			CostType:          CostMaxEllG,
			DoneType:          DoneAll,
			ReturnType:        ReturnCost,
			ScalingTarget:     1.0,
			ScalingSafety:     1.0,
		},

		Observations: ObservationConfig{
			StateKeys: []string{"eef_pos", "eef_vel", "bottom_block_pos", "top_block_pos", "obj_pos"},
			ImageKeys: []string{"front_rgb", "wrist_rgb"},
			ImageSize: []int{128, 128},
		},
	}
}

// DefaultSlidePickupClutterReal returns the built-in real-world variant.
// The scene is smaller and the workspace sits in front of the robot only.
func DefaultSlidePickupClutterReal() *EnvironmentConfig {
	cfg := DefaultSlidePickupClutter()
	cfg.Name = VariantSlidePickupClutterReal

	cfg.Scene = SceneConfig{
		NumRelevantObjects: 3,
		ObjectNames:        []string{"cup", "bottle", "toy"},
		InitialPoses: [][]float64{
			{0.10, 0.40, 0.025},
			{0.25, 0.55, 0.025},
			{0.40, 0.45, 0.025},
		},
		ObjectRangeLow:  []float64{0.0, 0.30, 0.025},
		ObjectRangeHigh: []float64{0.50, 0.70, 0.025},
	}

	cfg.Constraints.ObjectDefaults = map[string]ConstraintType{
		"cup":    NoContact,
		"bottle": SoftContact,
		"toy":    AnyContact,
	}
	// Real episodes keep the constraint assignment fixed.
	cfg.Constraints.Randomize = false

	cfg.Robot.InitEEFPos = []float64{-0.10, 0.50, 0.06}
	cfg.Robot.MocapLow = []float64{-0.6, 0.25, 0.06}
	cfg.Robot.MocapHigh = []float64{0.6, 0.75, 0.6}

	cfg.Task = TaskConfig{
		Goal: []float64{0.55, 0.50, 0.05},
		TargetSets: []geometry.Box{
			{Low: []float64{0.45, 0.40, 0.0}, High: []float64{0.65, 0.60, 0.10}},
		},
		SafetySet: geometry.Box{
			Low:  []float64{-0.70, 0.20, 0.0},
			High: []float64{0.70, 0.80, 0.70},
		},
	}

	cfg.Episode.DoneType = DoneReal
	cfg.Episode.TipAngleThreshold = 0.35

	cfg.Observations.ImageSize = []int{224, 224}

	return cfg
}

// Builtin returns a registry populated with the built-in variants.
func Builtin() *Registry {
	r := NewRegistry()
	// Register cannot fail here, the names are distinct.
	_ = r.Register(DefaultSlidePickupClutter())
	_ = r.Register(DefaultSlidePickupClutterReal())
	return r
}
