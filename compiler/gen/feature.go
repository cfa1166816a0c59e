package gen

import (
	"os"
	"path/filepath"
)

var (
	// FeatureManifest writes a manifest.json next to the generated
	// units, listing every written file with its byte count and a
	// unique invocation id.
	FeatureManifest = Feature{
		Name:        "manifest",
		Stage:       Beta,
		Default:     false,
		Description: "Writes a manifest of all generated files with a unique invocation id",
		cleanup: func(c *Config) error {
			return remove(c.Target, "manifest.json")
		},
	}

	// FeatureSnapshot stores a msgpack snapshot of the compiled graph
	// next to the output, so later runs can diff or skip regeneration.
	FeatureSnapshot = Feature{
		Name:        "snapshot",
		Stage:       Experimental,
		Default:     false,
		Description: "Stores a snapshot of the compiled type graph alongside the generated units",
		cleanup: func(c *Config) error {
			return remove(c.Target, "graph.snapshot")
		},
	}

	// FeatureDeclareUnions mirrors the WithDeclareUnions option as a
	// feature flag, so callers driving generation through a feature
	// list (the CLI -features flag) can toggle it the same way.
	FeatureDeclareUnions = Feature{
		Name:        "declare-unions",
		Stage:       Stable,
		Default:     false,
		Description: "Declares multi-member unions as standalone named types",
	}

	// AllFeatures holds a list of all feature-flags.
	AllFeatures = []Feature{
		FeatureManifest,
		FeatureSnapshot,
		FeatureDeclareUnions,
	}
)

// FeatureStage describes the stage of a codegen feature.
type FeatureStage int

const (
	_ FeatureStage = iota

	// Experimental features are in development and actively being tested.
	Experimental

	// Alpha features are finished but may still see breaking API changes.
	Alpha

	// Beta features are documented and no breaking changes are expected.
	Beta

	// Stable features are Beta features that have been exercised for a while.
	Stable
)

// A Feature of the codegen.
type Feature struct {
	// Name of the feature.
	Name string

	// Stage of the feature.
	Stage FeatureStage

	// Default indicates if this feature is enabled by default.
	Default bool

	// A Description of this feature.
	Description string

	// cleanup removes a feature's artifacts when its flag is dropped,
	// e.g. files left by previous codegen runs.
	cleanup func(*Config) error
}

// FeatureByName resolves a feature flag by its name.
func FeatureByName(name string) (Feature, bool) {
	for _, f := range AllFeatures {
		if f.Name == name {
			return f, true
		}
	}
	return Feature{}, false
}

// CleanupFeatures removes the artifacts of all known features that are
// not enabled in the config.
func CleanupFeatures(c *Config) error {
	for _, f := range AllFeatures {
		if f.cleanup == nil || c.FeatureEnabled(f.Name) {
			continue
		}
		if err := f.cleanup(c); err != nil {
			return err
		}
	}
	return nil
}

// remove file (if exists) and its dir if it's empty.
func remove(dir, file string) error {
	if err := os.Remove(filepath.Join(dir, file)); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	infos, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	if len(infos) == 0 {
		return os.Remove(dir)
	}
	return nil
}
