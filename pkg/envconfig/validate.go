package envconfig

import "fmt"

// violations collects every invariant failure for one variant so a
// document author can fix them all in a single pass.
type violations struct {
	variant string
	errs    ValidationErrors
}

func (v *violations) add(kind ErrorKind, field string, value interface{}, reason string) {
	v.errs = append(v.errs, &FieldError{
		Kind:    kind,
		Variant: v.variant,
		Field:   field,
		Value:   value,
		Reason:  reason,
	})
}

// rangePair checks that low and high have the same dimensionality and are
// component-wise ordered.
func (v *violations) rangePair(field string, low, high []float64) {
	if len(low) == 0 || len(high) == 0 {
		v.add(MissingField, field, nil, "low/high pair is required")
		return
	}
	if len(low) != len(high) {
		v.add(RangeInvariantViolation, field,
			fmt.Sprintf("low has %d components, high has %d", len(low), len(high)),
			"low and high must have the same dimensionality")
		return
	}
	for i := range low {
		if low[i] > high[i] {
			v.add(RangeInvariantViolation, fmt.Sprintf("%s[%d]", field, i),
				fmt.Sprintf("low=%g high=%g", low[i], high[i]),
				"low must not exceed high")
		}
	}
}

func (v *violations) nonNegative(field string, value float64) {
	if value < 0 {
		v.add(RangeInvariantViolation, field, value, "must be non-negative")
	}
}

func (v *violations) positive(field string, value float64) {
	if value <= 0 {
		v.add(RangeInvariantViolation, field, value, "must be positive")
	}
}

func (v *violations) unit(field string, value float64) {
	if value < 0 || value > 1 {
		v.add(RangeInvariantViolation, field, value, "must be within [0, 1]")
	}
}

// Validate checks every invariant and reports all violations at once.
// It is independent of the loader so hand-built records can be checked
// directly. Returns nil or a ValidationErrors.
func (c *EnvironmentConfig) Validate() error {
	v := &violations{variant: c.Name}

	c.validateScene(v)
	c.validateConstraints(v)
	c.validateRobot(v)
	c.validateBlocks(v)
	c.validateTask(v)
	c.validateEpisode(v)
	c.validateObservations(v)

	return v.errs.OrNil()
}

func (c *EnvironmentConfig) validateScene(v *violations) {
	s := &c.Scene
	if s.NumRelevantObjects <= 0 {
		v.add(RangeInvariantViolation, "scene.n_rel_objs", s.NumRelevantObjects, "must be positive")
	}
	if len(s.ObjectNames) == 0 {
		v.add(MissingField, "scene.obj_names", nil, "at least one object name is required")
	}
	if len(s.InitialPoses) < s.NumRelevantObjects {
		v.add(RangeInvariantViolation, "scene.initial_poses", len(s.InitialPoses),
			fmt.Sprintf("need at least n_rel_objs=%d poses", s.NumRelevantObjects))
	}
	v.rangePair("scene.obj_range", s.ObjectRangeLow, s.ObjectRangeHigh)
	for i, pose := range s.InitialPoses {
		if len(s.ObjectRangeLow) > 0 && len(pose) != len(s.ObjectRangeLow) {
			v.add(RangeInvariantViolation, fmt.Sprintf("scene.initial_poses[%d]", i), pose,
				fmt.Sprintf("pose must have %d components to match obj_range", len(s.ObjectRangeLow)))
		}
	}
}

func (c *EnvironmentConfig) validateConstraints(v *violations) {
	cc := &c.Constraints
	if len(cc.Types) == 0 {
		v.add(MissingField, "constraints.constraint_types", nil, "at least one constraint type is required")
	}

	known := make(map[ConstraintType]bool, len(ConstraintVocabulary))
	for _, t := range ConstraintVocabulary {
		known[t] = true
	}
	declared := make(map[ConstraintType]bool, len(cc.Types))
	for i, t := range cc.Types {
		if !known[t] {
			v.add(UnknownEnumValue, fmt.Sprintf("constraints.constraint_types[%d]", i), t,
				fmt.Sprintf("must be one of %v", ConstraintVocabulary))
		}
		declared[t] = true
	}

	objects := make(map[string]bool, len(c.Scene.ObjectNames))
	for _, name := range c.Scene.ObjectNames {
		objects[name] = true
	}
	for name, t := range cc.ObjectDefaults {
		field := "constraints.obj_to_constraint_map." + name
		if !objects[name] {
			v.add(UnknownEnumValue, field, name, "object is not declared in scene.obj_names")
		}
		if !declared[t] {
			v.add(UnknownEnumValue, field, t, "constraint is not in the declared constraint_types")
		}
	}
}

func (c *EnvironmentConfig) validateRobot(v *violations) {
	r := &c.Robot
	if len(r.InitEEFPos) == 0 {
		v.add(MissingField, "robot.init_eef_pos", nil, "initial end-effector position is required")
	}
	v.rangePair("robot.mocap", r.MocapLow, r.MocapHigh)
	v.positive("robot.action_scale", r.ActionScale)

	// The initial end-effector position must be commandable.
	if len(r.InitEEFPos) == len(r.MocapLow) && len(r.MocapLow) == len(r.MocapHigh) {
		for i := range r.InitEEFPos {
			if r.InitEEFPos[i] < r.MocapLow[i] || r.InitEEFPos[i] > r.MocapHigh[i] {
				v.add(RangeInvariantViolation, fmt.Sprintf("robot.init_eef_pos[%d]", i),
					r.InitEEFPos[i], "must lie within the mocap bounds")
			}
		}
	}
}

func (c *EnvironmentConfig) validateBlocks(v *violations) {
	c.Blocks.Bottom.validate(v, "blocks.bottom")
	c.Blocks.Top.validate(v, "blocks.top")
}

func (b *BlockConfig) validate(v *violations, field string) {
	v.nonNegative(field+".mass", b.Mass)
	if len(b.HalfSize) == 0 {
		v.add(MissingField, field+".size", nil, "half-dimensions are required")
	}
	for i, h := range b.HalfSize {
		v.nonNegative(fmt.Sprintf("%s.size[%d]", field, i), h)
	}
	for i, f := range b.Friction {
		v.nonNegative(fmt.Sprintf("%s.friction[%d]", field, i), f)
	}
	v.unit(field+".restitution", b.Restitution)
	for i, ch := range b.Color {
		v.unit(fmt.Sprintf("%s.color[%d]", field, i), ch)
	}
}

func (c *EnvironmentConfig) validateTask(v *violations) {
	t := &c.Task
	if len(t.Goal) == 0 {
		v.add(MissingField, "task.goal", nil, "goal position is required")
	}
	if len(t.TargetSets) == 0 {
		v.add(MissingField, "task.target_sets", nil, "at least one target set is required")
	}
	for i, box := range t.TargetSets {
		v.rangePair(fmt.Sprintf("task.target_sets[%d]", i), box.Low, box.High)
	}
	v.rangePair("task.safety_set", t.SafetySet.Low, t.SafetySet.High)
}

func (c *EnvironmentConfig) validateEpisode(v *violations) {
	e := &c.Episode
	if e.FrameSkip < 1 {
		v.add(RangeInvariantViolation, "episode.frame_skip", e.FrameSkip, "must be at least 1")
	}
	v.nonNegative("episode.vel_threshold", e.VelThreshold)
	v.nonNegative("episode.pos_threshold", e.PosThreshold)
	v.nonNegative("episode.tip_angle_threshold", e.TipAngleThreshold)
	v.positive("episode.scaling_target", e.ScalingTarget)
	v.positive("episode.scaling_safety", e.ScalingSafety)

	v.enum("episode.cost_type", e.CostType, CostTypes)
	v.enum("episode.done_type", e.DoneType, DoneTypes)
	v.enum("episode.return_type", e.ReturnType, ReturnTypes)
}

func (v *violations) enum(field, value string, allowed []string) {
	if value == "" {
		v.add(MissingField, field, nil, fmt.Sprintf("must be one of %v", allowed))
		return
	}
	for _, a := range allowed {
		if value == a {
			return
		}
	}
	v.add(UnknownEnumValue, field, value, fmt.Sprintf("must be one of %v", allowed))
}

func (c *EnvironmentConfig) validateObservations(v *violations) {
	o := &c.Observations
	if len(o.ImageSize) != 2 {
		v.add(RangeInvariantViolation, "observations.img_size", o.ImageSize, "must be a 2-tuple")
		return
	}
	for i, s := range o.ImageSize {
		if s <= 0 {
			v.add(RangeInvariantViolation, fmt.Sprintf("observations.img_size[%d]", i), s, "must be positive")
		}
	}
}
