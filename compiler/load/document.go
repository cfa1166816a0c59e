// Package load builds type graphs from external schema sources: JSON or
// YAML schema documents, GraphQL SDL, and live SQL databases. Loaders
// produce graphs only; they never infer types from sample data.
package load

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/syssam/typeset/compiler/gen"
	"github.com/syssam/typeset/typegraph"
)

// Document is the schema document format. Definitions hold the named
// types; roots bind definition references (or anonymous types) to the
// top-level names of the unit. Property lists are ordered and their
// order is preserved end to end.
type Document struct {
	Comments    []string             `yaml:"comments" json:"comments"`
	Definitions map[string]*TypeSpec `yaml:"definitions" json:"definitions"`
	Roots       []RootSpec           `yaml:"roots" json:"roots"`
}

// RootSpec binds one root type to its upstream name.
type RootSpec struct {
	Name string    `yaml:"name" json:"name"`
	Type *TypeSpec `yaml:"type" json:"type"`
}

// TypeSpec is one type expression. Either Ref names a definition, or
// Kind selects a variant with its payload. Nullable wraps the result in
// an optional at this reference site.
type TypeSpec struct {
	Ref        string      `yaml:"$ref" json:"$ref"`
	Kind       string      `yaml:"kind" json:"kind"`
	Label      string      `yaml:"label" json:"label"`
	Items      *TypeSpec   `yaml:"items" json:"items"`
	Values     *TypeSpec   `yaml:"values" json:"values"`
	Properties []PropSpec  `yaml:"properties" json:"properties"`
	Cases      []string    `yaml:"cases" json:"cases"`
	Members    []*TypeSpec `yaml:"members" json:"members"`
	Nullable   bool        `yaml:"nullable" json:"nullable"`
}

// PropSpec is one ordered class member.
type PropSpec struct {
	Name     string    `yaml:"name" json:"name"`
	Type     *TypeSpec `yaml:"type" json:"type"`
	Optional bool      `yaml:"optional" json:"optional"`
}

// FromDocument parses a schema document. YAML is a superset of JSON, so
// both formats go through the same decoder.
func FromDocument(data []byte) (*gen.Graph, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, failed(fmt.Errorf("load: parsing document: %w", err))
	}
	return doc.Graph()
}

// Graph resolves the document into a type graph.
func (d *Document) Graph() (*gen.Graph, error) {
	g, err := d.graph()
	return g, failed(err)
}

func (d *Document) graph() (*gen.Graph, error) {
	r := &resolver{
		defs:     d.Definitions,
		resolved: make(map[string]*typegraph.Type, len(d.Definitions)),
		visiting: make(map[string]bool),
	}
	if len(d.Roots) == 0 {
		return nil, fmt.Errorf("load: document has no roots")
	}
	bindings := make([]gen.Binding, 0, len(d.Roots))
	for _, root := range d.Roots {
		if root.Name == "" {
			return nil, fmt.Errorf("load: root without a name")
		}
		t, err := r.resolve(root.Type, "root "+root.Name)
		if err != nil {
			return nil, err
		}
		bindings = append(bindings, gen.Binding{Name: root.Name, Type: t})
	}
	return gen.NewGraph(bindings, d.Comments...)
}

type resolver struct {
	defs     map[string]*TypeSpec
	resolved map[string]*typegraph.Type
	visiting map[string]bool
}

// resolveRef resolves a named definition once; later references share
// the node, preserving named-type identity.
func (r *resolver) resolveRef(name string) (*typegraph.Type, error) {
	if t, ok := r.resolved[name]; ok {
		return t, nil
	}
	spec, ok := r.defs[name]
	if !ok {
		return nil, fmt.Errorf("load: unresolved $ref %q", name)
	}
	if r.visiting[name] {
		return nil, fmt.Errorf("load: definition cycle through %q", name)
	}
	r.visiting[name] = true
	defer delete(r.visiting, name)

	// The definition name doubles as the label unless the spec carries
	// its own.
	if spec.Label == "" && spec.Ref == "" {
		clone := *spec
		clone.Label = name
		spec = &clone
	}
	t, err := r.resolve(spec, "definition "+name)
	if err != nil {
		return nil, err
	}
	r.resolved[name] = t
	return t, nil
}

func (r *resolver) resolve(spec *TypeSpec, at string) (*typegraph.Type, error) {
	if spec == nil {
		return nil, fmt.Errorf("load: missing type at %s", at)
	}
	t, err := r.resolveBase(spec, at)
	if err != nil {
		return nil, err
	}
	if spec.Nullable {
		t = typegraph.UnionOf("", t, typegraph.Prim(typegraph.KindNull))
	}
	return t, nil
}

func (r *resolver) resolveBase(spec *TypeSpec, at string) (*typegraph.Type, error) {
	if spec.Ref != "" {
		return r.resolveRef(spec.Ref)
	}
	kind, ok := typegraph.KindFromString(spec.Kind)
	if !ok {
		return nil, fmt.Errorf("load: unknown kind %q at %s", spec.Kind, at)
	}
	switch kind {
	case typegraph.KindArray:
		items, err := r.resolve(spec.Items, at+" items")
		if err != nil {
			return nil, err
		}
		return typegraph.ArrayOf(items), nil
	case typegraph.KindMap:
		values, err := r.resolve(spec.Values, at+" values")
		if err != nil {
			return nil, err
		}
		return typegraph.MapOf(values), nil
	case typegraph.KindClass:
		props := make([]typegraph.Property, 0, len(spec.Properties))
		for _, p := range spec.Properties {
			pt, err := r.resolve(p.Type, fmt.Sprintf("%s property %q", at, p.Name))
			if err != nil {
				return nil, err
			}
			props = append(props, typegraph.Property{Name: p.Name, Type: pt, Optional: p.Optional})
		}
		return typegraph.ClassOf(spec.Label, props...), nil
	case typegraph.KindEnum:
		return typegraph.EnumOf(spec.Label, spec.Cases...), nil
	case typegraph.KindUnion:
		members := make([]*typegraph.Type, 0, len(spec.Members))
		for i, m := range spec.Members {
			mt, err := r.resolve(m, fmt.Sprintf("%s member %d", at, i))
			if err != nil {
				return nil, err
			}
			members = append(members, mt)
		}
		return typegraph.UnionOf(spec.Label, members...), nil
	default:
		return typegraph.Prim(kind), nil
	}
}

// FromFile loads a graph from a schema file, dispatching on the file
// extension: .json, .yaml and .yml are documents, .graphql and .gql are
// GraphQL SDL.
func FromFile(path string) (*gen.Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, failed(fmt.Errorf("load: reading %s: %w", path, err))
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json", ".yaml", ".yml":
		return FromDocument(data)
	case ".graphql", ".gql":
		return FromSDL(path, string(data))
	default:
		return nil, failed(fmt.Errorf("load: unsupported schema extension %q", ext))
	}
}
