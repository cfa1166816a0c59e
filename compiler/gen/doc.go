// Package gen is the rendering engine for typeset graphs.
//
// It turns a validated type graph into complete source units, one per
// render target, through a fixed pipeline.
//
// # Architecture
//
// The generation pipeline follows this flow:
//
//	Type graph (typegraph package, built by compiler/load or by hand)
//	        ↓
//	   Graph (validated closure of named types, canonical order)
//	        ↓
//	   NameTable (all identifiers assigned up front, per target)
//	        ↓
//	   Target (per-language rendering rules)
//	        ↓
//	   Generated units ({out}/types.py, types.ts, types.go, ...)
//
// # Key Types
//
//   - Graph: root bindings plus the closure of named types
//   - NameTable: every assigned identifier of one render invocation
//   - Naming: a target's stylers and forbidden words per scope
//   - Target: the per-language rendering interface
//   - Config: global configuration for a generation run
//
// # Rendering Model
//
// Rendering is a single forward pass and is pure: targets read the
// graph and the name table, and produce text. All filesystem work
// happens afterwards in the generator, so a failed render never leaves
// partial output. Targets run in parallel, each with its own target
// instance and name table.
//
// # Error Handling
//
// The package uses structured error types:
//
//   - GraphError: type-graph contract violations
//   - ConfigError: configuration errors
//   - KindError: a type kind a renderer cannot handle
//   - RenderError: rendering and unit-writing failures
//
// Example error handling:
//
//	g, err := gen.NewGraph(bindings)
//	if err != nil {
//	    if gen.IsGraphError(err) {
//	        // Handle producer-side contract violation
//	    }
//	    return err
//	}
//
// # Configuration
//
// Configuration is done via the functional options pattern:
//
//	cfg, err := gen.NewConfig(
//	    gen.WithTarget("./gen"),
//	    gen.WithTargets("python", "typescript"),
//	    gen.WithDeclareUnions(),
//	)
//
// # Targets
//
// Target packages register themselves by name on import, mirroring
// database/sql drivers:
//
//	import (
//	    _ "github.com/syssam/typeset/compiler/gen/python"
//	    _ "github.com/syssam/typeset/compiler/gen/typescript"
//	)
//
// # Code Organization
//
//   - graph.go: Graph, canonical order, declaration order policies
//   - ident.go: legalizing, word splitting, identifier styles
//   - namer.go: scopes, collision resolution, NameTable
//   - target.go: Target interface and registry
//   - render.go: the single-pass unit renderer
//   - config.go, option.go: configuration
//   - generate.go, writer.go: parallel generation and unit writing
//   - feature.go: optional feature flags
//   - snapshot.go: graph snapshot codec
package gen
