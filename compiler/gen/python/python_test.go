package python

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/typeset/compiler/gen"
	"github.com/syssam/typeset/typegraph"
)

func render(t *testing.T, g *gen.Graph, opts ...gen.Option) string {
	t.Helper()
	cfg, err := gen.NewConfig(opts...)
	require.NoError(t, err)
	lines, err := gen.Render(New(cfg), g, cfg)
	require.NoError(t, err)
	return strings.Join(lines, "\n")
}

func graphOf(t *testing.T, root *typegraph.Type) *gen.Graph {
	t.Helper()
	g, err := gen.NewGraph([]gen.Binding{{Name: "root", Type: root}})
	require.NoError(t, err)
	return g
}

func TestSourceFor(t *testing.T) {
	str := typegraph.Prim(typegraph.KindString)
	null := typegraph.Prim(typegraph.KindNull)
	tests := []struct {
		typ  *typegraph.Type
		want string
	}{
		{typegraph.Prim(typegraph.KindAny), "Any"},
		{typegraph.Prim(typegraph.KindBool), "bool"},
		{typegraph.Prim(typegraph.KindInteger), "int"},
		{typegraph.Prim(typegraph.KindDouble), "float"},
		{str, "str"},
		{typegraph.Prim(typegraph.KindDate), "date"},
		{typegraph.Prim(typegraph.KindTime), "time"},
		{typegraph.Prim(typegraph.KindDateTime), "datetime"},
		{typegraph.ArrayOf(str), "List[str]"},
		{typegraph.MapOf(typegraph.Prim(typegraph.KindDouble)), "Dict[str, float]"},
		{typegraph.UnionOf("", str, null), "Optional[str]"},
		{typegraph.UnionOf("", null, typegraph.ArrayOf(str)), "Optional[List[str]]"},
		{typegraph.UnionOf("", typegraph.Prim(typegraph.KindInteger), str), "Union[int, str]"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			g := graphOf(t, typegraph.ClassOf("wrapper", typegraph.Property{Name: "v", Type: tt.typ}))
			cfg := gen.MustNewConfig()
			target := New(cfg)
			names := gen.BuildNameTable(g, target.Naming())
			got, err := target.SourceFor(tt.typ, names)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSourceForSentinel(t *testing.T) {
	target := New(gen.MustNewConfig())
	_, err := target.SourceFor(typegraph.Prim(typegraph.KindNone), &gen.NameTable{})
	require.Error(t, err)
	assert.True(t, gen.IsKindError(err))
}

func TestRenderPoint(t *testing.T) {
	point := typegraph.ClassOf("point",
		typegraph.Property{Name: "x", Type: typegraph.Prim(typegraph.KindDouble)},
		typegraph.Property{Name: "y", Type: typegraph.Prim(typegraph.KindDouble)},
		typegraph.Property{
			Name:     "label",
			Type:     typegraph.UnionOf("", typegraph.Prim(typegraph.KindString), typegraph.Prim(typegraph.KindNull)),
			Optional: true,
		},
	)
	g, err := gen.NewGraph([]gen.Binding{{Name: "point", Type: point}})
	require.NoError(t, err)

	want := strings.Join([]string{
		"from typing import Optional",
		"",
		"class Point:",
		"    x: float",
		"    y: float",
		"    label: Optional[str]",
		"",
		"    def __init__(self, x: float, y: float, label: Optional[str]) -> None:",
		"        self.x = x",
		"        self.y = y",
		"        self.label = label",
	}, "\n")
	assert.Equal(t, want, render(t, g))
}

func TestEnumOrdinalsStartAtZero(t *testing.T) {
	color := typegraph.EnumOf("color", "red", "green", "blue")
	size := typegraph.EnumOf("size", "small", "large")
	root := typegraph.ClassOf("shirt",
		typegraph.Property{Name: "color", Type: color},
		typegraph.Property{Name: "size", Type: size},
	)
	out := render(t, graphOf(t, root))
	assert.Contains(t, out, "class Color(IntEnum):")
	assert.Contains(t, out, "    RED = 0")
	assert.Contains(t, out, "    GREEN = 1")
	assert.Contains(t, out, "    BLUE = 2")
	// Each enum counts from zero; the counter never carries over.
	assert.Contains(t, out, "    SMALL = 0")
	assert.Contains(t, out, "    LARGE = 1")
	assert.Contains(t, out, "from enum import IntEnum")
}

func TestDeclarationOrderDependencyFirst(t *testing.T) {
	inner := typegraph.ClassOf("inner", typegraph.Property{Name: "n", Type: typegraph.Prim(typegraph.KindInteger)})
	outer := typegraph.ClassOf("outer", typegraph.Property{Name: "inner", Type: inner})
	out := render(t, graphOf(t, outer))
	require.Contains(t, out, "class Inner:")
	require.Contains(t, out, "class Outer:")
	assert.Less(t, strings.Index(out, "class Inner:"), strings.Index(out, "class Outer:"))
}

func TestDeclarationOrderSiblingDependency(t *testing.T) {
	// B and C are both reached from the root, and C's annotation
	// references B. B must be bound before C's class body executes.
	b := typegraph.ClassOf("b", typegraph.Property{Name: "n", Type: typegraph.Prim(typegraph.KindInteger)})
	c := typegraph.ClassOf("c", typegraph.Property{Name: "ref", Type: b})
	root := typegraph.ClassOf("root",
		typegraph.Property{Name: "b", Type: b},
		typegraph.Property{Name: "c", Type: c},
	)
	out := render(t, graphOf(t, root))
	require.Contains(t, out, "class B:")
	require.Contains(t, out, "class C:")
	assert.Less(t, strings.Index(out, "class B:"), strings.Index(out, "class C:"))
	assert.Less(t, strings.Index(out, "class C:"), strings.Index(out, "class Root:"))
}

func TestKeywordProperties(t *testing.T) {
	root := typegraph.ClassOf("record",
		typegraph.Property{Name: "class", Type: typegraph.Prim(typegraph.KindString)},
		typegraph.Property{Name: "from", Type: typegraph.Prim(typegraph.KindString)},
	)
	out := render(t, graphOf(t, root))
	assert.Contains(t, out, "    class1: str")
	assert.Contains(t, out, "    from1: str")
	assert.Contains(t, out, "        self.class1 = class1")
	assert.NotContains(t, out, "self.class =")
}

func TestGlobalReservedNames(t *testing.T) {
	root := typegraph.ClassOf("list", typegraph.Property{Name: "items", Type: typegraph.Prim(typegraph.KindString)})
	out := render(t, graphOf(t, root))
	// The declaration must not shadow typing.List.
	assert.Contains(t, out, "class List1:")
}

func TestDeclareUnions(t *testing.T) {
	value := typegraph.UnionOf("value", typegraph.Prim(typegraph.KindInteger), typegraph.Prim(typegraph.KindString))
	root := typegraph.ClassOf("record", typegraph.Property{Name: "value", Type: value})

	t.Run("inline", func(t *testing.T) {
		out := render(t, graphOf(t, root))
		assert.Contains(t, out, "    value: Union[int, str]")
		assert.NotContains(t, out, "Value = Union")
	})
	t.Run("declared", func(t *testing.T) {
		out := render(t, graphOf(t, root), gen.WithDeclareUnions())
		assert.Contains(t, out, "    value: Value")
		assert.Contains(t, out, "Value = Union[int, str]")
		// Unions follow classes and enums.
		assert.Less(t, strings.Index(out, "class Record:"), strings.Index(out, "Value = Union[int, str]"))
	})
}

func TestRootAlias(t *testing.T) {
	points := typegraph.ArrayOf(typegraph.ClassOf("point",
		typegraph.Property{Name: "x", Type: typegraph.Prim(typegraph.KindDouble)},
	))
	g, err := gen.NewGraph([]gen.Binding{{Name: "point_list", Type: points}})
	require.NoError(t, err)
	out := render(t, g)
	assert.Contains(t, out, "PointList = List[Point]")
}

func TestRootAliasCollidesWithDeclaration(t *testing.T) {
	item := typegraph.ClassOf("item",
		typegraph.Property{Name: "id", Type: typegraph.Prim(typegraph.KindString)},
	)
	g, err := gen.NewGraph([]gen.Binding{{Name: "item", Type: typegraph.ArrayOf(item)}})
	require.NoError(t, err)
	out := render(t, g)
	// The alias must not rebind the class it refers to.
	assert.Contains(t, out, "class Item:")
	assert.Contains(t, out, "Item1 = List[Item]")
	assert.NotContains(t, out, "\nItem = List[Item]")
}

func TestRootAliasAvoidsReservedNames(t *testing.T) {
	g, err := gen.NewGraph([]gen.Binding{{Name: "list", Type: typegraph.ArrayOf(typegraph.Prim(typegraph.KindString))}})
	require.NoError(t, err)
	out := render(t, g)
	// The alias must not shadow typing.List.
	assert.Contains(t, out, "List1 = List[str]")
	assert.NotContains(t, out, "\nList = List[str]")
}

func TestHeaderComments(t *testing.T) {
	root := typegraph.ClassOf("empty")
	out := render(t, graphOf(t, root), gen.WithHeader("generated file, do not edit"))
	assert.True(t, strings.HasPrefix(out, "# generated file, do not edit"))
	assert.Contains(t, out, "class Empty:\n    pass")
}

// TestKindCoverage guards the renderer against new kinds being added to
// the model without a rendering rule: every non-sentinel kind must
// produce source without error.
func TestKindCoverage(t *testing.T) {
	str := typegraph.Prim(typegraph.KindString)
	samples := map[typegraph.Kind]*typegraph.Type{
		typegraph.KindArray: typegraph.ArrayOf(str),
		typegraph.KindMap:   typegraph.MapOf(str),
		typegraph.KindClass: typegraph.ClassOf("c"),
		typegraph.KindEnum:  typegraph.EnumOf("e", "a"),
		typegraph.KindUnion: typegraph.UnionOf("u", str, typegraph.Prim(typegraph.KindInteger)),
	}
	for k := typegraph.KindNone + 1; int(k) < typegraph.KindCount(); k++ {
		sample, ok := samples[k]
		if !ok {
			sample = typegraph.Prim(k)
		}
		g := graphOf(t, typegraph.ClassOf("wrapper", typegraph.Property{Name: "v", Type: sample}))
		cfg := gen.MustNewConfig()
		target := New(cfg)
		names := gen.BuildNameTable(g, target.Naming())
		_, err := target.SourceFor(sample, names)
		assert.NoError(t, err, "kind %s", k)
	}
}
