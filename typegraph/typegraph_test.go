package typegraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNullable(t *testing.T) {
	t.Run("detects null-second unions", func(t *testing.T) {
		u := UnionOf("", Prim(KindString), Prim(KindNull))
		inner, ok := u.Nullable()
		require.True(t, ok)
		assert.Equal(t, KindString, inner.Kind)
	})

	t.Run("detects null-first unions", func(t *testing.T) {
		u := UnionOf("", Prim(KindNull), Prim(KindInteger))
		inner, ok := u.Nullable()
		require.True(t, ok)
		assert.Equal(t, KindInteger, inner.Kind)
	})

	t.Run("rejects wider unions", func(t *testing.T) {
		u := UnionOf("", Prim(KindString), Prim(KindInteger), Prim(KindNull))
		_, ok := u.Nullable()
		assert.False(t, ok)
	})

	t.Run("rejects null-null unions", func(t *testing.T) {
		u := UnionOf("", Prim(KindNull), Prim(KindNull))
		_, ok := u.Nullable()
		assert.False(t, ok)
	})
}

func TestIsNamed(t *testing.T) {
	t.Run("classes and enums are named", func(t *testing.T) {
		assert.True(t, ClassOf("Person").IsNamed())
		assert.True(t, EnumOf("Color", "Red").IsNamed())
	})

	t.Run("nullable unions are not named", func(t *testing.T) {
		u := UnionOf("", Prim(KindString), Prim(KindNull))
		assert.False(t, u.IsNamed())
	})

	t.Run("wider unions are named", func(t *testing.T) {
		u := UnionOf("Value", Prim(KindString), Prim(KindInteger))
		assert.True(t, u.IsNamed())
	})

	t.Run("primitives are not named", func(t *testing.T) {
		assert.False(t, Prim(KindString).IsNamed())
		assert.False(t, ArrayOf(Prim(KindBool)).IsNamed())
	})
}

func TestValidate(t *testing.T) {
	t.Run("accepts a well-formed graph", func(t *testing.T) {
		person := ClassOf("Person",
			Property{Name: "name", Type: Prim(KindString)},
			Property{Name: "age", Type: Prim(KindInteger)},
		)
		assert.NoError(t, person.Validate())
	})

	t.Run("rejects embedded sentinel", func(t *testing.T) {
		bad := ClassOf("Bad", Property{Name: "x", Type: Prim(KindNone)})
		err := bad.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sentinel")
		assert.Contains(t, err.Error(), "$.x")
	})

	t.Run("rejects single-member union", func(t *testing.T) {
		bad := &Type{Kind: KindUnion, Members: []*Type{Prim(KindString)}}
		err := bad.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "union")
	})

	t.Run("rejects duplicate properties", func(t *testing.T) {
		bad := ClassOf("Bad",
			Property{Name: "x", Type: Prim(KindString)},
			Property{Name: "x", Type: Prim(KindInteger)},
		)
		err := bad.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate")
	})

	t.Run("handles shared named nodes without revisits", func(t *testing.T) {
		shared := ClassOf("Shared", Property{Name: "v", Type: Prim(KindBool)})
		root := ClassOf("Root",
			Property{Name: "a", Type: shared},
			Property{Name: "b", Type: shared},
		)
		assert.NoError(t, root.Validate())
	})
}

func TestWalkOrder(t *testing.T) {
	inner := ClassOf("Inner", Property{Name: "v", Type: Prim(KindString)})
	outer := ClassOf("Outer",
		Property{Name: "first", Type: inner},
		Property{Name: "second", Type: ArrayOf(Prim(KindInteger))},
	)

	var kinds []Kind
	outer.Walk(func(_ string, node *Type) bool {
		kinds = append(kinds, node.Kind)
		return true
	})
	// Preorder: outer, inner, inner.v, array, array items.
	assert.Equal(t, []Kind{KindClass, KindClass, KindString, KindArray, KindInteger}, kinds)
}

func TestKindRoundTrip(t *testing.T) {
	for k := KindAny; k < Kind(KindCount()); k++ {
		got, ok := KindFromString(k.String())
		require.True(t, ok, "kind %s", k)
		assert.Equal(t, k, got)
	}
	_, ok := KindFromString("none")
	assert.False(t, ok, "sentinel is not addressable by name")
}
