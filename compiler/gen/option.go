package gen

import (
	"errors"
)

// Option configures a generation run.
type Option func(*Config) error

// WithHeader sets the file header comment.
// The header is added at the top of each generated unit.
func WithHeader(header string) Option {
	return func(c *Config) error {
		c.Header = header
		return nil
	}
}

// WithTarget sets the output directory.
// The directory where generated units will be written.
func WithTarget(dir string) Option {
	return func(c *Config) error {
		if dir == "" {
			return NewConfigError("Target", nil, "target directory cannot be empty")
		}
		c.Target = dir
		return nil
	}
}

// WithTargets selects the render targets by registered name.
// For example: "python", "typescript", "go".
func WithTargets(names ...string) Option {
	return func(c *Config) error {
		for _, name := range names {
			if !Registered(name) {
				return NewConfigError("Targets", name, "no such target registered")
			}
		}
		c.Targets = append(c.Targets, names...)
		return nil
	}
}

// WithDeclareUnions enables standalone declarations for multi-member
// unions. By default such unions render inline wherever referenced.
func WithDeclareUnions() Option {
	return func(c *Config) error {
		c.DeclareUnions = true
		return nil
	}
}

// WithWorkers bounds the number of parallel workers.
func WithWorkers(n int) Option {
	return func(c *Config) error {
		if n < 0 {
			return NewConfigError("Workers", n, "workers cannot be negative")
		}
		c.Workers = n
		return nil
	}
}

// WithFeatures enables specific features.
// Features control optional generation capabilities.
func WithFeatures(features ...Feature) Option {
	return func(c *Config) error {
		c.Features = append(c.Features, features...)
		return nil
	}
}

// WithHooks adds generation hooks.
// Hooks are called with the graph before generation.
func WithHooks(hooks ...Hook) Option {
	return func(c *Config) error {
		c.Hooks = append(c.Hooks, hooks...)
		return nil
	}
}

// Apply applies options to the config.
// It returns the first error encountered.
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// ApplyAll applies options and collects all errors.
// Returns a joined error if any options failed.
func (c *Config) ApplyAll(opts ...Option) error {
	var errs []error
	for _, opt := range opts {
		if err := opt(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewConfig creates a new Config with the given options.
func NewConfig(opts ...Option) (*Config, error) {
	c := &Config{}
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	if c.FeatureEnabled(FeatureDeclareUnions.Name) {
		c.DeclareUnions = true
	}
	return c, nil
}

// MustNewConfig creates a new Config with the given options.
// It panics if any option fails.
func MustNewConfig(opts ...Option) *Config {
	c, err := NewConfig(opts...)
	if err != nil {
		panic(err)
	}
	return c
}
