package gen

import (
	"github.com/syssam/typeset/typegraph"
)

// Binding pairs a top-level root with its raw upstream label.
type Binding struct {
	// Name is the raw label of the root, styled by each target.
	Name string
	// Type is the root type.
	Type *typegraph.Type
}

// Graph is the input of one render invocation: the ordered top-level
// bindings, optional leading comment lines, and the computed closure of
// named types reachable from the roots. The graph is read-only once
// built; renders borrow it and never mutate it.
type Graph struct {
	// Bindings are the root types in upstream order.
	Bindings []Binding
	// Comments are emitted verbatim at the top of every unit.
	Comments []string

	named []*typegraph.Type
}

// NewGraph validates the bindings and computes the named-type closure in
// canonical (first-seen preorder) order. A sentinel type anywhere in the
// graph is a contract violation by the producer and fails construction
// with the path of the offending node; generation never sees it.
func NewGraph(bindings []Binding, comments ...string) (*Graph, error) {
	g := &Graph{Bindings: bindings, Comments: comments}
	seen := make(map[*typegraph.Type]bool)
	for _, b := range bindings {
		if b.Type == nil {
			return nil, NewGraphError(b.Name, "", "binding has no type", nil)
		}
		if err := b.Type.Validate(); err != nil {
			return nil, NewGraphError(b.Name, "", "invalid type graph", err)
		}
		b.Type.Walk(func(_ string, node *typegraph.Type) bool {
			if node.IsNamed() && !seen[node] {
				seen[node] = true
				g.named = append(g.named, node)
			}
			return true
		})
	}
	return g, nil
}

// NamedTypes returns the closure of named types reachable from the
// roots, in canonical order: the order in which a preorder walk of the
// bindings first reaches each type. Referrers precede their referees.
func (g *Graph) NamedTypes() []*typegraph.Type {
	return g.named
}

// OrderPolicy computes the declaration emission order for a target from
// the canonical closure order. Targets that allow forward references
// keep the canonical order; targets that require declare-before-use
// reverse it or sort topologically.
type OrderPolicy func(named []*typegraph.Type) []*typegraph.Type

// OrderKeep emits declarations in canonical order.
func OrderKeep(named []*typegraph.Type) []*typegraph.Type {
	return named
}

// OrderReverse emits declarations in reverse canonical order. The
// canonical order lists referrers before referees along first-seen
// walk paths only, so the reversal satisfies declare-before-use just
// for graphs without cross-sibling references. Targets that need the
// strict guarantee use OrderTopo.
func OrderReverse(named []*typegraph.Type) []*typegraph.Type {
	out := make([]*typegraph.Type, len(named))
	for i, t := range named {
		out[len(named)-1-i] = t
	}
	return out
}

// OrderTopo emits declarations dependency-first via a depth-first
// postorder over named-type references. It is the general policy for
// declare-before-use targets whose canonical order is not the exact
// inverse of the required order. Ties keep canonical relative order.
func OrderTopo(named []*typegraph.Type) []*typegraph.Type {
	index := make(map[*typegraph.Type]bool, len(named))
	for _, t := range named {
		index[t] = true
	}
	var (
		out  []*typegraph.Type
		done = make(map[*typegraph.Type]bool, len(named))
		visit func(*typegraph.Type)
	)
	visit = func(t *typegraph.Type) {
		if done[t] {
			return
		}
		done[t] = true
		for _, dep := range namedRefs(t) {
			if index[dep] {
				visit(dep)
			}
		}
		out = append(out, t)
	}
	for _, t := range named {
		visit(t)
	}
	return out
}

// namedRefs returns the named types a declaration refers to directly,
// looking through arrays, maps, nullables and anonymous unions.
func namedRefs(t *typegraph.Type) []*typegraph.Type {
	var refs []*typegraph.Type
	var descend func(*typegraph.Type)
	descend = func(n *typegraph.Type) {
		if n == nil {
			return
		}
		if n != t && n.IsNamed() {
			refs = append(refs, n)
			return
		}
		switch n.Kind {
		case typegraph.KindArray:
			descend(n.Items)
		case typegraph.KindMap:
			descend(n.Values)
		case typegraph.KindClass:
			for _, p := range n.Properties {
				descend(p.Type)
			}
		case typegraph.KindUnion:
			for _, m := range n.Members {
				descend(m)
			}
		}
	}
	descend(t)
	return refs
}
