// testgen is a simple test program to demonstrate the rendering engine.
// Run: go run ./compiler/gen/cmd/testgen
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/syssam/typeset/compiler/gen"
	_ "github.com/syssam/typeset/compiler/gen/golang"
	_ "github.com/syssam/typeset/compiler/gen/python"
	_ "github.com/syssam/typeset/compiler/gen/typescript"
	"github.com/syssam/typeset/typegraph"
)

func main() {
	// Create a temp directory for output
	outDir, err := os.MkdirTemp("", "typeset-testgen-*")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create temp dir: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Output directory: %s\n", outDir)

	// A small shop-like graph with every interesting shape: nested
	// classes, an enum, a nullable and a multi-member union.
	status := typegraph.EnumOf("status", "pending", "shipped", "delivered")
	item := typegraph.ClassOf("order_item",
		typegraph.Property{Name: "sku", Type: typegraph.Prim(typegraph.KindString)},
		typegraph.Property{Name: "quantity", Type: typegraph.Prim(typegraph.KindInteger)},
		typegraph.Property{Name: "price", Type: typegraph.Prim(typegraph.KindDouble)},
	)
	order := typegraph.ClassOf("order",
		typegraph.Property{Name: "id", Type: typegraph.Prim(typegraph.KindString)},
		typegraph.Property{Name: "status", Type: status},
		typegraph.Property{Name: "items", Type: typegraph.ArrayOf(item)},
		typegraph.Property{Name: "placed_at", Type: typegraph.Prim(typegraph.KindDateTime)},
		typegraph.Property{
			Name:     "note",
			Type:     typegraph.UnionOf("", typegraph.Prim(typegraph.KindString), typegraph.Prim(typegraph.KindNull)),
			Optional: true,
		},
		typegraph.Property{
			Name: "reference",
			Type: typegraph.UnionOf("reference", typegraph.Prim(typegraph.KindInteger), typegraph.Prim(typegraph.KindString)),
		},
	)

	graph, err := gen.NewGraph([]gen.Binding{{Name: "order", Type: order}}, "demo schema")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create graph: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Generating units for all targets...")
	err = gen.Generate(context.Background(), graph,
		gen.WithTarget(outDir),
		gen.WithTargets(gen.Targets()...),
		gen.WithDeclareUnions(),
		gen.WithHeader("generated by testgen, do not edit"),
		gen.WithFeatures(gen.FeatureManifest),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "generation failed: %v\n", err)
		os.Exit(1)
	}

	// List generated files
	fmt.Println("\nGenerated files:")
	entries, err := os.ReadDir(outDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to list files: %v\n", err)
		os.Exit(1)
	}
	for _, e := range entries {
		info, err := e.Info()
		if err != nil {
			continue
		}
		fmt.Printf("  %s (%d bytes)\n", e.Name(), info.Size())
	}

	// Show sample output
	fmt.Println("\n--- Sample: types.py ---")
	content, err := os.ReadFile(filepath.Join(outDir, "types.py"))
	if err == nil {
		fmt.Println(string(content))
	}

	fmt.Printf("To inspect generated code: ls -la %s\n", outDir)
	fmt.Println("Done!")
}
