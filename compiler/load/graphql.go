package load

import (
	"fmt"
	"sort"

	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/syssam/typeset/compiler/gen"
	"github.com/syssam/typeset/typegraph"
)

// FromSDL loads a graph from a GraphQL schema definition. Object,
// interface and input types become classes, GraphQL enums and unions map
// directly, and list/non-null wrappers translate to arrays and
// nullables. Operation root types (Query, Mutation, Subscription) are
// skipped; they describe an API surface, not data shapes.
func FromSDL(name, input string) (*gen.Graph, error) {
	g, err := fromSDL(name, input)
	return g, failed(err)
}

func fromSDL(name, input string) (*gen.Graph, error) {
	schema, err := gqlparser.LoadSchema(&ast.Source{Name: name, Input: input})
	if err != nil {
		return nil, fmt.Errorf("load: parsing graphql schema: %w", err)
	}

	defs := make([]*ast.Definition, 0, len(schema.Types))
	for _, def := range schema.Types {
		if def.BuiltIn || isOperationType(schema, def) {
			continue
		}
		switch def.Kind {
		case ast.Object, ast.Interface, ast.InputObject, ast.Enum, ast.Union:
			defs = append(defs, def)
		}
	}
	// Map iteration is random; source position restores the author's
	// declaration order.
	sort.Slice(defs, func(i, j int) bool {
		return defs[i].Position.Line < defs[j].Position.Line
	})

	c := &sdlConverter{
		schema: schema,
		nodes:  make(map[string]*typegraph.Type, len(defs)),
	}
	// Shell nodes first, so self and mutual references resolve without
	// recursion limits.
	for _, def := range defs {
		c.nodes[def.Name] = &typegraph.Type{Label: def.Name}
	}
	for _, def := range defs {
		if err := c.fill(def); err != nil {
			return nil, err
		}
	}

	bindings := make([]gen.Binding, 0, len(defs))
	for _, def := range defs {
		bindings = append(bindings, gen.Binding{Name: def.Name, Type: c.nodes[def.Name]})
	}
	if len(bindings) == 0 {
		return nil, fmt.Errorf("load: graphql schema %s declares no data types", name)
	}
	return gen.NewGraph(bindings)
}

func isOperationType(schema *ast.Schema, def *ast.Definition) bool {
	for _, op := range []*ast.Definition{schema.Query, schema.Mutation, schema.Subscription} {
		if op != nil && op.Name == def.Name {
			return true
		}
	}
	return false
}

type sdlConverter struct {
	schema *ast.Schema
	nodes  map[string]*typegraph.Type
}

func (c *sdlConverter) fill(def *ast.Definition) error {
	node := c.nodes[def.Name]
	switch def.Kind {
	case ast.Object, ast.Interface, ast.InputObject:
		node.Kind = typegraph.KindClass
		for _, f := range def.Fields {
			if len(f.Arguments) > 0 {
				// Parameterized fields are resolvers, not data.
				continue
			}
			ft, err := c.convert(f.Type, def.Name+"."+f.Name)
			if err != nil {
				return err
			}
			node.Properties = append(node.Properties, typegraph.Property{
				Name:     f.Name,
				Type:     ft,
				Optional: !f.Type.NonNull,
			})
		}
	case ast.Enum:
		node.Kind = typegraph.KindEnum
		for _, v := range def.EnumValues {
			node.Cases = append(node.Cases, v.Name)
		}
	case ast.Union:
		node.Kind = typegraph.KindUnion
		for _, member := range def.Types {
			mt, ok := c.nodes[member]
			if !ok {
				return fmt.Errorf("load: union %s references unknown type %s", def.Name, member)
			}
			node.Members = append(node.Members, mt)
		}
	}
	return nil
}

// convert maps one field type. GraphQL types are nullable unless marked
// non-null, the inverse of the graph model, so every nullable reference
// wraps its base type.
func (c *sdlConverter) convert(t *ast.Type, at string) (*typegraph.Type, error) {
	base, err := c.convertBase(t, at)
	if err != nil {
		return nil, err
	}
	if !t.NonNull {
		base = typegraph.UnionOf("", base, typegraph.Prim(typegraph.KindNull))
	}
	return base, nil
}

func (c *sdlConverter) convertBase(t *ast.Type, at string) (*typegraph.Type, error) {
	if t.Elem != nil {
		items, err := c.convert(t.Elem, at+"[]")
		if err != nil {
			return nil, err
		}
		return typegraph.ArrayOf(items), nil
	}
	switch t.NamedType {
	case "Int":
		return typegraph.Prim(typegraph.KindInteger), nil
	case "Float":
		return typegraph.Prim(typegraph.KindDouble), nil
	case "String", "ID":
		return typegraph.Prim(typegraph.KindString), nil
	case "Boolean":
		return typegraph.Prim(typegraph.KindBool), nil
	case "Date":
		return typegraph.Prim(typegraph.KindDate), nil
	case "Time":
		return typegraph.Prim(typegraph.KindTime), nil
	case "DateTime":
		return typegraph.Prim(typegraph.KindDateTime), nil
	}
	if node, ok := c.nodes[t.NamedType]; ok {
		return node, nil
	}
	if def, ok := c.schema.Types[t.NamedType]; ok && def.Kind == ast.Scalar {
		// Custom scalars carry no structure.
		return typegraph.Prim(typegraph.KindAny), nil
	}
	return nil, fmt.Errorf("load: unknown graphql type %s at %s", t.NamedType, at)
}
