package envconfig

import (
	"fmt"
	"sort"
	"sync"
)

// Registry holds validated environment configurations by variant name.
// Records are read-only once registered, so any number of simulation
// instances may share them concurrently.
type Registry struct {
	mu       sync.RWMutex
	variants map[string]*EnvironmentConfig
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		variants: make(map[string]*EnvironmentConfig),
	}
}

// Register adds a configuration under its variant name.
func (r *Registry) Register(cfg *EnvironmentConfig) error {
	if cfg.Name == "" {
		return &FieldError{Kind: MissingField, Field: "name", Reason: "variant name is required"}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.variants[cfg.Name]; exists {
		return fmt.Errorf("variant %s already registered", cfg.Name)
	}

	r.variants[cfg.Name] = cfg
	return nil
}

// Get returns the configuration for the requested variant. The returned
// record is shared, never copied; callers must treat it as immutable.
func (r *Registry) Get(name string) (*EnvironmentConfig, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cfg, exists := r.variants[name]
	if !exists {
		return nil, &FieldError{
			Kind:    MissingVariant,
			Variant: name,
			Reason:  fmt.Sprintf("known variants: %v", r.names()),
		}
	}
	return cfg, nil
}

// List returns all registered variant names, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.names()
}

// Len returns the number of registered variants.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.variants)
}

func (r *Registry) names() []string {
	names := make([]string, 0, len(r.variants))
	for name := range r.variants {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
