package gen

// Config holds the global settings of one generation run. A Config is
// assembled through the functional options in option.go and treated as
// read-only afterwards.
type Config struct {
	// Target is the output directory generated units are written to.
	Target string

	// Targets are the names of the registered render targets to run.
	Targets []string

	// Header is an extra comment line added at the top of each unit,
	// after the graph's own leading comments.
	Header string

	// DeclareUnions controls multi-member union rendering. When false
	// (the default), such unions render inline wherever referenced.
	// When true, each gets one standalone named declaration, emitted
	// after classes and enums, and is referenced by name elsewhere.
	DeclareUnions bool

	// Workers bounds parallel target generation. Zero means GOMAXPROCS.
	Workers int

	// Features are the enabled optional capabilities.
	Features []Feature

	// Hooks run against the graph before generation starts.
	Hooks []Hook
}

// Hook is called with the graph before generation. Returning an error
// aborts the run.
type Hook func(*Graph) error

// FeatureEnabled reports if the feature with the given name is enabled.
func (c *Config) FeatureEnabled(name string) bool {
	for _, f := range c.Features {
		if f.Name == name {
			return true
		}
	}
	return false
}

// OutputConfig groups the output-related settings.
type OutputConfig struct {
	Target string
	Header string
}

// Output returns the grouped output settings.
func (c *Config) Output() OutputConfig {
	return OutputConfig{
		Target: c.Target,
		Header: c.Header,
	}
}
