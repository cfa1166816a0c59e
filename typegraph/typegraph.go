// Package typegraph defines the language-independent type model consumed
// by the code generators. A graph is a DAG of primitive, structural and
// named type nodes produced by an upstream loader; the model itself never
// infers or validates semantics beyond its own structural contract.
package typegraph

import (
	"fmt"
	"strings"
)

// Kind discriminates the closed set of type variants.
// KindNone is a sentinel for "no type" and must never reach a generator;
// its presence in a graph is a contract violation by the producer.
type Kind int

const (
	KindNone Kind = iota
	KindAny
	KindNull
	KindBool
	KindInteger
	KindDouble
	KindString
	KindDate
	KindTime
	KindDateTime
	KindArray
	KindMap
	KindClass
	KindEnum
	KindUnion

	// kindCount is used by exhaustiveness guards in the generator
	// packages. It must stay last.
	kindCount
)

// KindCount reports the number of valid kinds, including the sentinel.
func KindCount() int { return int(kindCount) }

var kindNames = [...]string{
	KindNone:     "none",
	KindAny:      "any",
	KindNull:     "null",
	KindBool:     "bool",
	KindInteger:  "integer",
	KindDouble:   "double",
	KindString:   "string",
	KindDate:     "date",
	KindTime:     "time",
	KindDateTime: "datetime",
	KindArray:    "array",
	KindMap:      "map",
	KindClass:    "class",
	KindEnum:     "enum",
	KindUnion:    "union",
}

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// KindFromString resolves a kind by its lowercase name.
// It reports false for unknown names and for the sentinel alias "".
func KindFromString(s string) (Kind, bool) {
	for k, name := range kindNames {
		if name == s && Kind(k) != KindNone {
			return Kind(k), true
		}
	}
	return KindNone, false
}

// Property is a single class member. Order of properties is significant
// and preserved exactly as supplied by the producer.
type Property struct {
	// Name is the raw upstream label, before any legalization or styling.
	Name string
	// Type of the property value.
	Type *Type
	// Optional indicates the property may be absent.
	Optional bool
}

// Type is one node in the graph. Exactly the payload fields matching
// Kind are populated; all others are zero. Named types (class, enum,
// union) have identity: two structurally identical classes are distinct
// nodes and are never merged.
type Type struct {
	// Kind discriminates the payload.
	Kind Kind
	// Label is the suggested upstream name for named types. It is a
	// hint for the namer, not a final identifier, and may be empty.
	Label string
	// Items is the element type of an array.
	Items *Type
	// Values is the value type of a string-keyed map.
	Values *Type
	// Properties are the ordered members of a class.
	Properties []Property
	// Cases are the ordered labels of an enum.
	Cases []string
	// Members are the members of a union, two or more.
	Members []*Type
}

// Prim returns a new node for a primitive (payload-free) kind.
func Prim(k Kind) *Type { return &Type{Kind: k} }

// ArrayOf returns a new array node over items.
func ArrayOf(items *Type) *Type { return &Type{Kind: KindArray, Items: items} }

// MapOf returns a new string-keyed map node over values.
func MapOf(values *Type) *Type { return &Type{Kind: KindMap, Values: values} }

// ClassOf returns a new class node with the given suggested label and
// ordered properties.
func ClassOf(label string, props ...Property) *Type {
	return &Type{Kind: KindClass, Label: label, Properties: props}
}

// EnumOf returns a new enum node with the given suggested label and
// ordered case labels.
func EnumOf(label string, cases ...string) *Type {
	return &Type{Kind: KindEnum, Label: label, Cases: cases}
}

// UnionOf returns a new union node over the given members.
func UnionOf(label string, members ...*Type) *Type {
	return &Type{Kind: KindUnion, Label: label, Members: members}
}

// IsNamed reports whether the node requires a top-level declaration.
// A union that collapses to a nullable is not named: it renders as the
// target's optional wrapper wherever referenced.
func (t *Type) IsNamed() bool {
	switch t.Kind {
	case KindClass, KindEnum:
		return true
	case KindUnion:
		_, nullable := t.Nullable()
		return !nullable
	default:
		return false
	}
}

// Nullable reports whether the node is a union of exactly {T, null} and
// returns T when it is. Such unions are first-class nullables and are
// never rendered as explicit unions.
func (t *Type) Nullable() (*Type, bool) {
	if t.Kind != KindUnion || len(t.Members) != 2 {
		return nil, false
	}
	if t.Members[0].Kind == KindNull && t.Members[1].Kind != KindNull {
		return t.Members[1], true
	}
	if t.Members[1].Kind == KindNull && t.Members[0].Kind != KindNull {
		return t.Members[0], true
	}
	return nil, false
}

// Walk visits t and every node reachable from it in preorder, calling fn
// for each node with the path of labels leading to it. Visiting stops at
// already-seen named nodes, so shared subgraphs and diamond references
// are visited once. fn returning false prunes the subtree.
func (t *Type) Walk(fn func(path string, node *Type) bool) {
	seen := make(map[*Type]bool)
	walk(t, "$", seen, fn)
}

func walk(t *Type, path string, seen map[*Type]bool, fn func(string, *Type) bool) {
	if t == nil {
		return
	}
	if t.IsNamed() {
		if seen[t] {
			return
		}
		seen[t] = true
	}
	if !fn(path, t) {
		return
	}
	switch t.Kind {
	case KindArray:
		walk(t.Items, path+"[]", seen, fn)
	case KindMap:
		walk(t.Values, path+"{}", seen, fn)
	case KindClass:
		for _, p := range t.Properties {
			walk(p.Type, path+"."+p.Name, seen, fn)
		}
	case KindUnion:
		for i, m := range t.Members {
			walk(m, fmt.Sprintf("%s|%d", path, i), seen, fn)
		}
	}
}

// Validate checks the structural contract of the subgraph rooted at t:
// no embedded sentinel nodes, unions of at least two members, non-nil
// payloads, and unique property names within each class. It returns the
// first violation found, with the path to the offending node.
func (t *Type) Validate() error {
	var err error
	t.Walk(func(path string, node *Type) bool {
		switch node.Kind {
		case KindNone:
			err = fmt.Errorf("typegraph: sentinel type at %s", path)
		case KindArray:
			if node.Items == nil {
				err = fmt.Errorf("typegraph: array without items at %s", path)
			}
		case KindMap:
			if node.Values == nil {
				err = fmt.Errorf("typegraph: map without values at %s", path)
			}
		case KindUnion:
			if len(node.Members) < 2 {
				err = fmt.Errorf("typegraph: union with %d member(s) at %s", len(node.Members), path)
			}
			for _, m := range node.Members {
				if m == nil {
					err = fmt.Errorf("typegraph: nil union member at %s", path)
				}
			}
		case KindClass:
			seen := make(map[string]bool, len(node.Properties))
			for _, p := range node.Properties {
				if p.Type == nil {
					err = fmt.Errorf("typegraph: property %q without type at %s", p.Name, path)
					break
				}
				if seen[p.Name] {
					err = fmt.Errorf("typegraph: duplicate property %q at %s", p.Name, path)
					break
				}
				seen[p.Name] = true
			}
		}
		return err == nil
	})
	return err
}

// debugString renders a compact single-line form, used by error paths
// and tests.
func (t *Type) debugString() string {
	if t == nil {
		return "<nil>"
	}
	switch t.Kind {
	case KindArray:
		return "array<" + t.Items.debugString() + ">"
	case KindMap:
		return "map<" + t.Values.debugString() + ">"
	case KindClass, KindEnum, KindUnion:
		if t.Label != "" {
			return t.Kind.String() + ":" + t.Label
		}
		return t.Kind.String()
	default:
		return t.Kind.String()
	}
}

// String implements fmt.Stringer.
func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}
	var b strings.Builder
	b.WriteString(t.debugString())
	return b.String()
}
