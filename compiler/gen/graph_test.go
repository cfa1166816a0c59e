package gen

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/typeset/typegraph"
)

func TestNewGraphCanonicalOrder(t *testing.T) {
	inner := typegraph.ClassOf("inner", typegraph.Property{Name: "n", Type: typegraph.Prim(typegraph.KindInteger)})
	color := typegraph.EnumOf("color", "red")
	outer := typegraph.ClassOf("outer",
		typegraph.Property{Name: "inner", Type: inner},
		typegraph.Property{Name: "color", Type: color},
	)
	g, err := NewGraph([]Binding{{Name: "outer", Type: outer}})
	require.NoError(t, err)

	named := g.NamedTypes()
	require.Len(t, named, 3)
	// Preorder: the referrer comes before everything it refers to.
	assert.Same(t, outer, named[0])
	assert.Same(t, inner, named[1])
	assert.Same(t, color, named[2])
}

func TestNewGraphSharedNodesOnce(t *testing.T) {
	shared := typegraph.ClassOf("shared", typegraph.Property{Name: "n", Type: typegraph.Prim(typegraph.KindInteger)})
	a := typegraph.ClassOf("a", typegraph.Property{Name: "s", Type: shared})
	b := typegraph.ClassOf("b", typegraph.Property{Name: "s", Type: shared})
	g, err := NewGraph([]Binding{{Name: "a", Type: a}, {Name: "b", Type: b}})
	require.NoError(t, err)
	assert.Len(t, g.NamedTypes(), 3)
}

func TestNewGraphNullableUnionsNotNamed(t *testing.T) {
	nullable := typegraph.UnionOf("maybe", typegraph.Prim(typegraph.KindString), typegraph.Prim(typegraph.KindNull))
	root := typegraph.ClassOf("root", typegraph.Property{Name: "v", Type: nullable})
	g, err := NewGraph([]Binding{{Name: "root", Type: root}})
	require.NoError(t, err)
	// Only the class; the nullable collapses at every reference site.
	require.Len(t, g.NamedTypes(), 1)
	assert.Same(t, root, g.NamedTypes()[0])
}

func TestNewGraphRejectsSentinel(t *testing.T) {
	root := typegraph.ClassOf("root", typegraph.Property{Name: "bad", Type: typegraph.Prim(typegraph.KindNone)})
	_, err := NewGraph([]Binding{{Name: "root", Type: root}})
	require.Error(t, err)
	assert.True(t, IsGraphError(err))
	assert.True(t, errors.Is(err, ErrInvalidGraph))
	var gerr *GraphError
	require.True(t, errors.As(err, &gerr))
	assert.Equal(t, "root", gerr.Binding)
}

func TestNewGraphRejectsNilBinding(t *testing.T) {
	_, err := NewGraph([]Binding{{Name: "empty"}})
	require.Error(t, err)
	assert.True(t, IsGraphError(err))
}

func TestOrderReverse(t *testing.T) {
	a := typegraph.ClassOf("a")
	b := typegraph.ClassOf("b")
	c := typegraph.ClassOf("c")
	in := []*typegraph.Type{a, b, c}
	got := OrderReverse(in)
	assert.Equal(t, []*typegraph.Type{c, b, a}, got)
	// The input slice is untouched.
	assert.Equal(t, []*typegraph.Type{a, b, c}, in)
}

func TestOrderTopo(t *testing.T) {
	d := typegraph.ClassOf("d", typegraph.Property{Name: "n", Type: typegraph.Prim(typegraph.KindInteger)})
	b := typegraph.ClassOf("b", typegraph.Property{Name: "d", Type: d})
	c := typegraph.ClassOf("c", typegraph.Property{Name: "d", Type: d})
	a := typegraph.ClassOf("a",
		typegraph.Property{Name: "b", Type: b},
		typegraph.Property{Name: "c", Type: c},
	)
	g, err := NewGraph([]Binding{{Name: "a", Type: a}})
	require.NoError(t, err)

	got := OrderTopo(g.NamedTypes())
	require.Len(t, got, 4)
	pos := make(map[*typegraph.Type]int, len(got))
	for i, n := range got {
		pos[n] = i
	}
	// Every referee precedes its referrer.
	assert.Less(t, pos[d], pos[b])
	assert.Less(t, pos[d], pos[c])
	assert.Less(t, pos[b], pos[a])
	assert.Less(t, pos[c], pos[a])
}

func TestNamedRefsThroughStructural(t *testing.T) {
	leaf := typegraph.ClassOf("leaf")
	root := typegraph.ClassOf("root",
		typegraph.Property{Name: "direct", Type: leaf},
		typegraph.Property{Name: "list", Type: typegraph.ArrayOf(leaf)},
		typegraph.Property{Name: "lookup", Type: typegraph.MapOf(leaf)},
		typegraph.Property{Name: "maybe", Type: typegraph.UnionOf("", leaf, typegraph.Prim(typegraph.KindNull))},
	)
	refs := namedRefs(root)
	for _, r := range refs {
		assert.Same(t, leaf, r)
	}
	assert.Len(t, refs, 4)
}
