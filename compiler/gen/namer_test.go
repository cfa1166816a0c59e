package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/typeset/typegraph"
)

func TestScopeAssign(t *testing.T) {
	s := NewScope()
	assert.Equal(t, "Foo", s.Assign("Foo"))
	assert.Equal(t, "Foo1", s.Assign("Foo"))
	assert.Equal(t, "Foo2", s.Assign("Foo"))
}

func TestScopeForbidden(t *testing.T) {
	s := NewScope("class", "def")
	assert.Equal(t, "class1", s.Assign("class"))
	assert.Equal(t, "other", s.Assign("other"))
}

func TestScopeSuffixChain(t *testing.T) {
	s := NewScope()
	// An explicit Foo1 claims the first suffix; the next collision on
	// Foo skips over it.
	assert.Equal(t, "Foo1", s.Assign("Foo1"))
	assert.Equal(t, "Foo", s.Assign("Foo"))
	assert.Equal(t, "Foo2", s.Assign("Foo"))
}

func testNaming() Naming {
	return Naming{
		Global:   PascalCase.Apply,
		Property: SnakeCase.Apply,
		EnumCase: ScreamingSnakeCase.Apply,
		Forbidden: func(scope ScopeKind) []string {
			if scope == ScopeProperty {
				return []string{"class"}
			}
			return nil
		},
	}
}

func TestBuildNameTable(t *testing.T) {
	color := typegraph.EnumOf("color", "light red", "dark red")
	person := typegraph.ClassOf("person",
		typegraph.Property{Name: "first name", Type: typegraph.Prim(typegraph.KindString)},
		typegraph.Property{Name: "favorite", Type: color},
	)
	g, err := NewGraph([]Binding{{Name: "person", Type: person}})
	require.NoError(t, err)

	names := BuildNameTable(g, testNaming())
	assert.Equal(t, "Person", names.NameFor(person))
	assert.Equal(t, "Color", names.NameFor(color))
	assert.Equal(t, []string{"first_name", "favorite"}, names.PropertyNames(person))
	assert.Equal(t, []string{"LIGHT_RED", "DARK_RED"}, names.CaseNames(color))
}

func TestBuildNameTableCollidingLabels(t *testing.T) {
	// Two distinct classes with the same upstream label keep their
	// identity and get distinct declaration names.
	a := typegraph.ClassOf("item", typegraph.Property{Name: "a", Type: typegraph.Prim(typegraph.KindString)})
	b := typegraph.ClassOf("item", typegraph.Property{Name: "b", Type: typegraph.Prim(typegraph.KindString)})
	root := typegraph.ClassOf("root",
		typegraph.Property{Name: "x", Type: a},
		typegraph.Property{Name: "y", Type: b},
	)
	g, err := NewGraph([]Binding{{Name: "root", Type: root}})
	require.NoError(t, err)

	names := BuildNameTable(g, testNaming())
	assert.Equal(t, "Item", names.NameFor(a))
	assert.Equal(t, "Item1", names.NameFor(b))
}

func TestBuildNameTableSuggestedLabels(t *testing.T) {
	// Unlabeled named types borrow the name of the property that first
	// refers to them; array and map references singularize it.
	tag := typegraph.ClassOf("", typegraph.Property{Name: "n", Type: typegraph.Prim(typegraph.KindInteger)})
	owner := typegraph.ClassOf("", typegraph.Property{Name: "m", Type: typegraph.Prim(typegraph.KindInteger)})
	root := typegraph.ClassOf("root",
		typegraph.Property{Name: "tags", Type: typegraph.ArrayOf(tag)},
		typegraph.Property{Name: "owner", Type: owner},
	)
	g, err := NewGraph([]Binding{{Name: "root", Type: root}})
	require.NoError(t, err)

	names := BuildNameTable(g, testNaming())
	assert.Equal(t, "Tag", names.NameFor(tag))
	assert.Equal(t, "Owner", names.NameFor(owner))
}

func TestBuildNameTableFallbackLabel(t *testing.T) {
	// Unlabeled named types with no lending property fall back to the
	// target's fallback label and disambiguate numerically.
	anon := typegraph.ClassOf("", typegraph.Property{Name: "n", Type: typegraph.Prim(typegraph.KindInteger)})
	anon2 := typegraph.ClassOf("", typegraph.Property{Name: "m", Type: typegraph.Prim(typegraph.KindInteger)})
	choice := typegraph.UnionOf("choice", anon, anon2)
	root := typegraph.ClassOf("root",
		typegraph.Property{Name: "choice", Type: choice},
	)
	g, err := NewGraph([]Binding{{Name: "root", Type: root}})
	require.NoError(t, err)

	names := BuildNameTable(g, testNaming())
	assert.Equal(t, "Type", names.NameFor(anon))
	assert.Equal(t, "Type1", names.NameFor(anon2))
}

func TestBuildNameTableRootAliases(t *testing.T) {
	item := typegraph.ClassOf("item", typegraph.Property{Name: "id", Type: typegraph.Prim(typegraph.KindString)})
	g, err := NewGraph([]Binding{
		{Name: "item", Type: typegraph.ArrayOf(item)},
		{Name: "point", Type: item},
	})
	require.NoError(t, err)

	names := BuildNameTable(g, testNaming())
	// The alias shares the global scope, so it cannot rebind the class.
	assert.Equal(t, "Item", names.NameFor(item))
	assert.Equal(t, "Item1", names.AliasFor("item"))
	assert.Equal(t, "Point", names.AliasFor("point"))
}

func TestBuildNameTableRedundantAlias(t *testing.T) {
	// A root bound directly to a like-named type gets the type's own
	// name back, without burning a suffix in the global scope.
	item := typegraph.ClassOf("item")
	other := typegraph.ClassOf("other")
	g, err := NewGraph([]Binding{
		{Name: "item", Type: item},
		{Name: "other_list", Type: typegraph.ArrayOf(other)},
	})
	require.NoError(t, err)

	names := BuildNameTable(g, testNaming())
	assert.Equal(t, "Item", names.AliasFor("item"))
	assert.Equal(t, "OtherList", names.AliasFor("other_list"))
}

func TestBuildNameTableForbiddenProperty(t *testing.T) {
	root := typegraph.ClassOf("root",
		typegraph.Property{Name: "class", Type: typegraph.Prim(typegraph.KindString)},
	)
	g, err := NewGraph([]Binding{{Name: "root", Type: root}})
	require.NoError(t, err)

	names := BuildNameTable(g, testNaming())
	assert.Equal(t, []string{"class1"}, names.PropertyNames(root))
}

func TestBuildNameTableFreshPropertyScopes(t *testing.T) {
	// The same member label in two classes gets the same name; member
	// scopes are independent.
	a := typegraph.ClassOf("a", typegraph.Property{Name: "value", Type: typegraph.Prim(typegraph.KindString)})
	b := typegraph.ClassOf("b", typegraph.Property{Name: "value", Type: typegraph.Prim(typegraph.KindString)})
	root := typegraph.ClassOf("root",
		typegraph.Property{Name: "a", Type: a},
		typegraph.Property{Name: "b", Type: b},
	)
	g, err := NewGraph([]Binding{{Name: "root", Type: root}})
	require.NoError(t, err)

	names := BuildNameTable(g, testNaming())
	assert.Equal(t, []string{"value"}, names.PropertyNames(a))
	assert.Equal(t, []string{"value"}, names.PropertyNames(b))
}
