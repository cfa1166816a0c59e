// Package typeset renders language-independent type graphs into source
// code for multiple target languages. A graph of classes, enums, unions
// and structural types goes in; one complete, deterministic source unit
// per target comes out.
//
// The root package is a thin facade over compiler/gen and typegraph.
// Programs build a graph (by hand or through compiler/load), then
// generate:
//
//	point := typegraph.ClassOf("point",
//	    typegraph.Property{Name: "x", Type: typegraph.Prim(typegraph.KindDouble)},
//	    typegraph.Property{Name: "y", Type: typegraph.Prim(typegraph.KindDouble)},
//	)
//	g, err := typeset.NewGraph([]typeset.Binding{{Name: "point", Type: point}})
//	if err != nil {
//	    return err
//	}
//	err = typeset.Generate(ctx, g,
//	    typeset.WithTarget("./gen"),
//	    typeset.WithTargets("python", "typescript"),
//	)
//
// Importing a target package (e.g. compiler/gen/python) registers it,
// mirroring database/sql drivers.
package typeset

import (
	"context"

	"github.com/syssam/typeset/compiler/gen"
)

// Aliases for the core generation types, so simple programs only import
// this package and the target packages.
type (
	// Graph is the input of a generation run.
	Graph = gen.Graph
	// Binding pairs a root type with its upstream name.
	Binding = gen.Binding
	// Config holds the settings of one generation run.
	Config = gen.Config
	// Option configures a generation run.
	Option = gen.Option
	// Feature is an optional generation capability.
	Feature = gen.Feature
)

// Re-exported configuration options.
var (
	WithTarget        = gen.WithTarget
	WithTargets       = gen.WithTargets
	WithHeader        = gen.WithHeader
	WithDeclareUnions = gen.WithDeclareUnions
	WithWorkers       = gen.WithWorkers
	WithFeatures      = gen.WithFeatures
	WithHooks         = gen.WithHooks
)

// NewGraph validates the bindings and builds a generation-ready graph.
func NewGraph(bindings []Binding, comments ...string) (*Graph, error) {
	return gen.NewGraph(bindings, comments...)
}

// Generate renders the graph for every configured target and writes the
// units to the output directory.
func Generate(ctx context.Context, g *Graph, opts ...Option) error {
	return gen.Generate(ctx, g, opts...)
}

// Targets returns the names of all registered render targets.
func Targets() []string {
	return gen.Targets()
}
