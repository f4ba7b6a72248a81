package envconfig

import (
	"errors"
	"testing"
)

// mutate returns a valid config altered by fn.
func mutate(fn func(*EnvironmentConfig)) *EnvironmentConfig {
	cfg := DefaultSlidePickupClutter()
	fn(cfg)
	return cfg
}

func asValidationErrors(t *testing.T, err error) ValidationErrors {
	t.Helper()
	if err == nil {
		t.Fatal("expected a validation error")
	}
	var ve ValidationErrors
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationErrors, got %T: %v", err, err)
	}
	return ve
}

func TestValidateInvariants(t *testing.T) {
	tests := []struct {
		name   string
		config *EnvironmentConfig
		kind   ErrorKind
		field  string
	}{
		{
			name: "object range low above high",
			config: mutate(func(c *EnvironmentConfig) {
				c.Scene.ObjectRangeLow[1] = c.Scene.ObjectRangeHigh[1] + 0.1
			}),
			kind:  RangeInvariantViolation,
			field: "scene.obj_range[1]",
		},
		{
			name: "mocap bounds dimensionality mismatch",
			config: mutate(func(c *EnvironmentConfig) {
				c.Robot.MocapLow = c.Robot.MocapLow[:2]
			}),
			kind:  RangeInvariantViolation,
			field: "robot.mocap",
		},
		{
			name: "too few initial poses",
			config: mutate(func(c *EnvironmentConfig) {
				c.Scene.InitialPoses = c.Scene.InitialPoses[:3]
			}),
			kind:  RangeInvariantViolation,
			field: "scene.initial_poses",
		},
		{
			name: "constraint not in declared types",
			config: mutate(func(c *EnvironmentConfig) {
				c.Constraints.Types = []ConstraintType{SoftContact, AnyContact}
			}),
			kind: UnknownEnumValue,
		},
		{
			name: "constraint type outside vocabulary",
			config: mutate(func(c *EnvironmentConfig) {
				c.Constraints.Types = append(c.Constraints.Types, "gentle_nudge")
			}),
			kind:  UnknownEnumValue,
			field: "constraints.constraint_types[4]",
		},
		{
			name: "constraint mapped for undeclared object",
			config: mutate(func(c *EnvironmentConfig) {
				c.Constraints.ObjectDefaults["vase"] = NoContact
			}),
			kind:  UnknownEnumValue,
			field: "constraints.obj_to_constraint_map.vase",
		},
		{
			name: "negative mass",
			config: mutate(func(c *EnvironmentConfig) {
				c.Blocks.Bottom.Mass = -0.1
			}),
			kind:  RangeInvariantViolation,
			field: "blocks.bottom.mass",
		},
		{
			name: "negative half dimension",
			config: mutate(func(c *EnvironmentConfig) {
				c.Blocks.Top.HalfSize[2] = -0.02
			}),
			kind:  RangeInvariantViolation,
			field: "blocks.top.size[2]",
		},
		{
			name: "restitution above one",
			config: mutate(func(c *EnvironmentConfig) {
				c.Blocks.Bottom.Restitution = 1.5
			}),
			kind:  RangeInvariantViolation,
			field: "blocks.bottom.restitution",
		},
		{
			name: "target set low above high",
			config: mutate(func(c *EnvironmentConfig) {
				c.Task.TargetSets[0].Low[0] = c.Task.TargetSets[0].High[0] + 1
			}),
			kind:  RangeInvariantViolation,
			field: "task.target_sets[0][0]",
		},
		{
			name: "missing goal",
			config: mutate(func(c *EnvironmentConfig) {
				c.Task.Goal = nil
			}),
			kind:  MissingField,
			field: "task.goal",
		},
		{
			name: "zero frame skip",
			config: mutate(func(c *EnvironmentConfig) {
				c.Episode.FrameSkip = 0
			}),
			kind:  RangeInvariantViolation,
			field: "episode.frame_skip",
		},
		{
			name: "unknown cost type",
			config: mutate(func(c *EnvironmentConfig) {
				c.Episode.CostType = "quadratic"
			}),
			kind:  UnknownEnumValue,
			field: "episode.cost_type",
		},
		{
			name: "unknown done type",
			config: mutate(func(c *EnvironmentConfig) {
				c.Episode.DoneType = "never"
			}),
			kind:  UnknownEnumValue,
			field: "episode.done_type",
		},
		{
			name: "missing return type",
			config: mutate(func(c *EnvironmentConfig) {
				c.Episode.ReturnType = ""
			}),
			kind:  MissingField,
			field: "episode.return_type",
		},
		{
			name: "image size not a 2-tuple",
			config: mutate(func(c *EnvironmentConfig) {
				c.Observations.ImageSize = []int{128}
			}),
			kind:  RangeInvariantViolation,
			field: "observations.img_size",
		},
		{
			name: "non-positive image size",
			config: mutate(func(c *EnvironmentConfig) {
				c.Observations.ImageSize = []int{128, 0}
			}),
			kind:  RangeInvariantViolation,
			field: "observations.img_size[1]",
		},
		{
			name: "initial eef outside mocap bounds",
			config: mutate(func(c *EnvironmentConfig) {
				c.Robot.InitEEFPos[2] = c.Robot.MocapHigh[2] + 0.1
			}),
			kind:  RangeInvariantViolation,
			field: "robot.init_eef_pos[2]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ve := asValidationErrors(t, tt.config.Validate())
			if !ve.HasKind(tt.kind) {
				t.Errorf("expected an error of kind %s, got %v", tt.kind, ve)
			}
			if tt.field != "" && ve.ByField(tt.field) == nil {
				t.Errorf("expected an error for field %s, got %v", tt.field, ve)
			}
		})
	}
}

func TestValidateCollectsAllViolations(t *testing.T) {
	cfg := mutate(func(c *EnvironmentConfig) {
		c.Scene.NumRelevantObjects = -1
		c.Blocks.Bottom.Mass = -1
		c.Episode.CostType = "quadratic"
		c.Observations.ImageSize = nil
	})

	ve := asValidationErrors(t, cfg.Validate())
	if len(ve) < 4 {
		t.Fatalf("expected at least 4 collected violations, got %d: %v", len(ve), ve)
	}

	// Every error carries the variant for context.
	for _, e := range ve {
		if e.Variant != cfg.Name {
			t.Errorf("error %v missing variant context", e)
		}
	}
}

func TestValidateHandBuiltRecord(t *testing.T) {
	// The validator must work without going through the loader.
	cfg := &EnvironmentConfig{Name: "hand_built"}
	ve := asValidationErrors(t, cfg.Validate())

	if !ve.HasKind(MissingField) {
		t.Errorf("expected missing field errors for an empty record, got %v", ve)
	}
}
