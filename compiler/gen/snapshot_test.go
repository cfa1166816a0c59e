package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/syssam/typeset/typegraph"
)

func TestSnapshotRoundTrip(t *testing.T) {
	color := typegraph.EnumOf("color", "red", "green")
	shared := typegraph.ClassOf("shared",
		typegraph.Property{Name: "color", Type: color},
	)
	root := typegraph.ClassOf("root",
		typegraph.Property{Name: "a", Type: shared},
		typegraph.Property{Name: "b", Type: shared},
		typegraph.Property{Name: "maybe", Type: typegraph.UnionOf("", shared, typegraph.Prim(typegraph.KindNull)), Optional: true},
		typegraph.Property{Name: "tags", Type: typegraph.ArrayOf(typegraph.Prim(typegraph.KindString))},
	)
	g, err := NewGraph([]Binding{{Name: "root", Type: root}}, "snapshot comment")
	require.NoError(t, err)

	buf, err := EncodeSnapshot(g)
	require.NoError(t, err)
	decoded, err := DecodeSnapshot(buf)
	require.NoError(t, err)

	assert.Equal(t, g.Comments, decoded.Comments)
	require.Len(t, decoded.Bindings, 1)
	assert.Equal(t, "root", decoded.Bindings[0].Name)

	named := decoded.NamedTypes()
	require.Len(t, named, 3)
	assert.Equal(t, "root", named[0].Label)
	assert.Equal(t, "shared", named[1].Label)
	assert.Equal(t, []string{"red", "green"}, named[2].Cases)

	// Shared identity survives: both properties point at the same node,
	// and the nullable member is that node too.
	droot := named[0]
	assert.Same(t, droot.Properties[0].Type, droot.Properties[1].Type)
	inner, ok := droot.Properties[2].Type.Nullable()
	require.True(t, ok)
	assert.Same(t, droot.Properties[0].Type, inner)
	assert.True(t, droot.Properties[2].Optional)
}

func TestDecodeSnapshotCorrupt(t *testing.T) {
	_, err := DecodeSnapshot([]byte("not msgpack"))
	assert.Error(t, err)
}

func TestDecodeSnapshotUnknownKind(t *testing.T) {
	buf, err := msgpack.Marshal(snapshot{
		Nodes: []snapshotNode{{Kind: "frobnicator", Items: -1, Values: -1}},
		Roots: []snapshotRoot{{Name: "root", Type: 0}},
	})
	require.NoError(t, err)
	_, err = DecodeSnapshot(buf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown kind")
}

func TestDecodeSnapshotIndexOutOfRange(t *testing.T) {
	buf, err := msgpack.Marshal(snapshot{
		Nodes: []snapshotNode{{Kind: "array", Items: 7, Values: -1}},
		Roots: []snapshotRoot{{Name: "root", Type: 0}},
	})
	require.NoError(t, err)
	_, err = DecodeSnapshot(buf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
}

func TestDecodeSnapshotRevalidates(t *testing.T) {
	// A structurally broken graph (union of one member) fails decoding
	// even though the snapshot itself is well formed.
	buf, err := msgpack.Marshal(snapshot{
		Nodes: []snapshotNode{
			{Kind: "union", Items: -1, Values: -1, Members: []int32{1}},
			{Kind: "string", Items: -1, Values: -1},
		},
		Roots: []snapshotRoot{{Name: "root", Type: 0}},
	})
	require.NoError(t, err)
	_, err = DecodeSnapshot(buf)
	require.Error(t, err)
	assert.True(t, IsGraphError(err))
}
