package envconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// The source document carries one top-level key per variant:
//
//	slide_pickup_clutter:
//	  scene: {...}
//	  constraints: {...}
//	  ...
//
// Unknown keys anywhere in a variant are rejected, not silently ignored,
// to catch drift between schema and data.

// LoadFile reads a document and returns a registry with every variant
// parsed and validated. All violations across all variants are collected
// before reporting.
func LoadFile(path string) (*Registry, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("environments file not found: %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading environments file: %w", err)
	}
	return Load(data)
}

// Load parses and validates every variant in the document.
func Load(data []byte) (*Registry, error) {
	doc := map[string]yaml.Node{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("error parsing environments document: %w", err)
	}

	names := make([]string, 0, len(doc))
	for name := range doc {
		names = append(names, name)
	}
	sort.Strings(names)

	registry := NewRegistry()
	var all ValidationErrors
	for _, name := range names {
		node := doc[name]
		cfg, errs := decodeVariant(name, &node)
		if len(errs) > 0 {
			all = append(all, errs...)
			continue
		}
		if err := registry.Register(cfg); err != nil {
			return nil, err
		}
	}

	if err := all.OrNil(); err != nil {
		return nil, err
	}
	return registry, nil
}

// LoadVariant returns one validated variant from a document, or
// MissingVariant when the name is absent.
func LoadVariant(path, name string) (*EnvironmentConfig, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("environments file not found: %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading environments file: %w", err)
	}

	doc := map[string]yaml.Node{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("error parsing environments document: %w", err)
	}

	node, ok := doc[name]
	if !ok {
		names := make([]string, 0, len(doc))
		for n := range doc {
			names = append(names, n)
		}
		sort.Strings(names)
		return nil, &FieldError{
			Kind:    MissingVariant,
			Variant: name,
			Reason:  fmt.Sprintf("document declares %v", names),
		}
	}

	cfg, errs := decodeVariant(name, &node)
	if err := errs.OrNil(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrBuiltin loads a document when a path is given, searches the
// default locations otherwise, and falls back to the built-in variants.
func LoadOrBuiltin(path string) (*Registry, error) {
	if path != "" {
		return LoadFile(path)
	}
	defaultPaths := []string{
		filepath.Join("configs", "environments.yaml"),
		"environments.yaml",
	}
	for _, p := range defaultPaths {
		if _, err := os.Stat(p); err == nil {
			return LoadFile(p)
		}
	}
	return Builtin(), nil
}

// SaveFile serializes a registry back to the document format. A saved
// and reloaded registry yields equal records.
func SaveFile(r *Registry, path string) error {
	doc := make(map[string]*EnvironmentConfig, r.Len())
	for _, name := range r.List() {
		cfg, err := r.Get(name)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		doc[name] = cfg
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("error marshaling environments: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("error creating directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("error writing environments file: %w", err)
	}
	return nil
}

// decodeVariant decodes one variant node, rejects unknown keys, and runs
// the validator. Violations from all three stages are merged.
func decodeVariant(name string, node *yaml.Node) (*EnvironmentConfig, ValidationErrors) {
	v := &violations{variant: name}

	var cfg EnvironmentConfig
	if err := node.Decode(&cfg); err != nil {
		v.add(TypeMismatch, "", nil, err.Error())
		return nil, v.errs
	}
	cfg.Name = name

	checkUnknownKeys(v, node)

	if err := cfg.Validate(); err != nil {
		if ve, ok := err.(ValidationErrors); ok {
			v.errs = append(v.errs, ve...)
		}
	}

	if len(v.errs) > 0 {
		return nil, v.errs
	}
	return &cfg, nil
}

// Allowed keys per document section. obj_to_constraint_map is free-form
// and not listed here; its keys are object names.
var (
	sectionKeys = map[string][]string{
		"scene":        {"n_rel_objs", "obj_names", "initial_poses", "obj_range_low", "obj_range_high"},
		"constraints":  {"constraint_types", "obj_to_constraint_map", "randomize_constraints"},
		"robot":        {"init_joint_pos", "init_eef_pos", "mocap_low", "mocap_high", "action_scale", "gravity_compensation"},
		"blocks":       {"bottom", "top"},
		"task":         {"goal", "target_sets", "safety_set"},
		"episode":      {"frame_skip", "vel_threshold", "pos_threshold", "tip_angle_threshold", "reward", "penalty", "shape_reward", "cost_type", "done_type", "return_type", "scaling_target", "scaling_safety"},
		"observations": {"state_keys", "image_keys", "img_size"},
	}
	blockKeys = []string{"mass", "size", "color", "friction", "restitution"}
	boxKeys   = []string{"low", "high"}
)

func checkUnknownKeys(v *violations, variant *yaml.Node) {
	forEachKey(variant, func(section string, node *yaml.Node) {
		allowed, ok := sectionKeys[section]
		if !ok {
			v.add(UnknownField, section, nil, "unknown section")
			return
		}
		forEachKey(node, func(key string, child *yaml.Node) {
			if !contains(allowed, key) {
				v.add(UnknownField, section+"."+key, nil, "unknown key")
				return
			}
			switch {
			case section == "blocks":
				checkKeys(v, section+"."+key, child, blockKeys)
			case section == "task" && key == "safety_set":
				checkKeys(v, "task.safety_set", child, boxKeys)
			case section == "task" && key == "target_sets":
				for i, item := range child.Content {
					checkKeys(v, fmt.Sprintf("task.target_sets[%d]", i), item, boxKeys)
				}
			}
		})
	})
}

func checkKeys(v *violations, path string, node *yaml.Node, allowed []string) {
	forEachKey(node, func(key string, _ *yaml.Node) {
		if !contains(allowed, key) {
			v.add(UnknownField, path+"."+key, nil, "unknown key")
		}
	})
}

// forEachKey visits the entries of a mapping node. Non-mapping nodes are
// skipped; the decoder already reported those as type mismatches.
func forEachKey(node *yaml.Node, fn func(key string, value *yaml.Node)) {
	if node == nil || node.Kind != yaml.MappingNode {
		return
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		fn(node.Content[i].Value, node.Content[i+1])
	}
}

func contains(list []string, key string) bool {
	for _, k := range list {
		if k == key {
			return true
		}
	}
	return false
}
