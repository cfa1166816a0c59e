package gen

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/syssam/typeset/typegraph"
)

// Snapshots flatten a compiled graph into an index-based form so shared
// nodes and named-type identity survive a round trip. The wire format is
// msgpack; it is a cache format, not a public interchange format.

type snapshotProperty struct {
	Name     string `msgpack:"name"`
	Type     int32  `msgpack:"type"`
	Optional bool   `msgpack:"optional,omitempty"`
}

type snapshotNode struct {
	Kind       string             `msgpack:"kind"`
	Label      string             `msgpack:"label,omitempty"`
	Items      int32              `msgpack:"items"`
	Values     int32              `msgpack:"values"`
	Properties []snapshotProperty `msgpack:"properties,omitempty"`
	Cases      []string           `msgpack:"cases,omitempty"`
	Members    []int32            `msgpack:"members,omitempty"`
}

type snapshotRoot struct {
	Name string `msgpack:"name"`
	Type int32  `msgpack:"type"`
}

type snapshot struct {
	Comments []string       `msgpack:"comments,omitempty"`
	Nodes    []snapshotNode `msgpack:"nodes"`
	Roots    []snapshotRoot `msgpack:"roots"`
}

// EncodeSnapshot serializes the graph.
func EncodeSnapshot(g *Graph) ([]byte, error) {
	index := make(map[*typegraph.Type]int32)
	var nodes []*typegraph.Type
	var collect func(t *typegraph.Type)
	collect = func(t *typegraph.Type) {
		if t == nil {
			return
		}
		if _, ok := index[t]; ok {
			return
		}
		index[t] = int32(len(nodes))
		nodes = append(nodes, t)
		collect(t.Items)
		collect(t.Values)
		for _, p := range t.Properties {
			collect(p.Type)
		}
		for _, m := range t.Members {
			collect(m)
		}
	}
	for _, b := range g.Bindings {
		collect(b.Type)
	}

	s := snapshot{Comments: g.Comments}
	for _, t := range nodes {
		n := snapshotNode{Kind: t.Kind.String(), Label: t.Label, Items: -1, Values: -1}
		if t.Items != nil {
			n.Items = index[t.Items]
		}
		if t.Values != nil {
			n.Values = index[t.Values]
		}
		for _, p := range t.Properties {
			n.Properties = append(n.Properties, snapshotProperty{Name: p.Name, Type: index[p.Type], Optional: p.Optional})
		}
		n.Cases = t.Cases
		for _, m := range t.Members {
			n.Members = append(n.Members, index[m])
		}
		s.Nodes = append(s.Nodes, n)
	}
	for _, b := range g.Bindings {
		s.Roots = append(s.Roots, snapshotRoot{Name: b.Name, Type: index[b.Type]})
	}
	return msgpack.Marshal(s)
}

// DecodeSnapshot rebuilds a graph from its serialized form. The result
// goes through NewGraph, so a corrupted snapshot cannot smuggle a
// contract-violating graph past validation.
func DecodeSnapshot(buf []byte) (*Graph, error) {
	var s snapshot
	if err := msgpack.Unmarshal(buf, &s); err != nil {
		return nil, err
	}
	types := make([]*typegraph.Type, len(s.Nodes))
	for i := range s.Nodes {
		types[i] = &typegraph.Type{}
	}
	at := func(i int32) (*typegraph.Type, error) {
		if i < 0 || int(i) >= len(types) {
			return nil, fmt.Errorf("typeset: snapshot node index %d out of range", i)
		}
		return types[i], nil
	}
	for i, n := range s.Nodes {
		kind, ok := typegraph.KindFromString(n.Kind)
		if !ok {
			return nil, fmt.Errorf("typeset: snapshot node %d has unknown kind %q", i, n.Kind)
		}
		t := types[i]
		t.Kind = kind
		t.Label = n.Label
		t.Cases = n.Cases
		if n.Items >= 0 {
			items, err := at(n.Items)
			if err != nil {
				return nil, err
			}
			t.Items = items
		}
		if n.Values >= 0 {
			values, err := at(n.Values)
			if err != nil {
				return nil, err
			}
			t.Values = values
		}
		for _, p := range n.Properties {
			pt, err := at(p.Type)
			if err != nil {
				return nil, err
			}
			t.Properties = append(t.Properties, typegraph.Property{Name: p.Name, Type: pt, Optional: p.Optional})
		}
		for _, m := range n.Members {
			mt, err := at(m)
			if err != nil {
				return nil, err
			}
			t.Members = append(t.Members, mt)
		}
	}
	bindings := make([]Binding, 0, len(s.Roots))
	for _, r := range s.Roots {
		rt, err := at(r.Type)
		if err != nil {
			return nil, err
		}
		bindings = append(bindings, Binding{Name: r.Name, Type: rt})
	}
	return NewGraph(bindings, s.Comments...)
}
