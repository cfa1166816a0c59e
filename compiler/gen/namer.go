package gen

import (
	"strconv"

	"github.com/go-openapi/inflect"

	"github.com/syssam/typeset/typegraph"
)

// ScopeKind identifies one of the three naming scopes.
type ScopeKind int

const (
	// ScopeGlobal is the top-level declaration namespace of a unit.
	ScopeGlobal ScopeKind = iota
	// ScopeProperty is a single class's member namespace.
	ScopeProperty
	// ScopeEnumCase is a single enum's case namespace.
	ScopeEnumCase
)

// Scope assigns unique names within one namespace. A scope carries a
// forbidden-word set (target keywords, reserved members) that assigned
// names never collide with. Assigned names are unique for the lifetime
// of the scope.
type Scope struct {
	forbidden map[string]struct{}
	assigned  map[string]struct{}
}

// NewScope creates a scope with the given forbidden words.
func NewScope(forbidden ...string) *Scope {
	s := &Scope{
		forbidden: make(map[string]struct{}, len(forbidden)),
		assigned:  make(map[string]struct{}),
	}
	for _, w := range forbidden {
		s.forbidden[w] = struct{}{}
	}
	return s
}

func (s *Scope) taken(name string) bool {
	if _, ok := s.forbidden[name]; ok {
		return true
	}
	_, ok := s.assigned[name]
	return ok
}

// Assign claims a unique name derived from the styled candidate. When
// the candidate is forbidden or already assigned, a numeric suffix is
// appended and incremented until the name is free.
func (s *Scope) Assign(styled string) string {
	name := styled
	for n := 1; s.taken(name); n++ {
		name = styled + strconv.Itoa(n)
	}
	s.assigned[name] = struct{}{}
	return name
}

// NameTable holds every name assigned for one render invocation: the
// global name of each named type, the alias name of each root binding,
// the member names of each class, and the case names of each enum. It
// is created fresh per invocation and discarded afterwards; the type
// graph itself is never mutated.
type NameTable struct {
	types      map[*typegraph.Type]string
	aliases    map[string]string
	properties map[*typegraph.Type][]string
	cases      map[*typegraph.Type][]string
}

// NameFor returns the assigned top-level name of a named type.
func (nt *NameTable) NameFor(t *typegraph.Type) string { return nt.types[t] }

// AliasFor returns the assigned alias name of a root binding. The alias
// shares the global scope with the type declarations, so it never
// collides with them or with a forbidden word.
func (nt *NameTable) AliasFor(binding string) string { return nt.aliases[binding] }

// PropertyNames returns the assigned member names of a class, in
// property order.
func (nt *NameTable) PropertyNames(t *typegraph.Type) []string { return nt.properties[t] }

// CaseNames returns the assigned case names of an enum, in case order.
func (nt *NameTable) CaseNames(t *typegraph.Type) []string { return nt.cases[t] }

// Styler converts a raw upstream label into a styled candidate for one
// scope. Targets supply one styler per scope kind.
type Styler func(label string) string

// Naming describes how a target names things: one styler and one
// forbidden-word set per scope kind. Forbidden words are matched against
// the styled form.
type Naming struct {
	Global       Styler
	Property     Styler
	EnumCase     Styler
	Forbidden    func(ScopeKind) []string
	TypeFallback string
}

func (n Naming) fallback() string {
	if n.TypeFallback != "" {
		return n.TypeFallback
	}
	return "Type"
}

// suggestLabels derives labels for unlabeled named types from the
// context of their first reference. A property holding the type lends
// its name; a reference through an array or map lends the singular form
// of the property name, so a "tags" list of anonymous classes yields
// "Tag". Root bindings lend their own name.
func suggestLabels(g *Graph) map[*typegraph.Type]string {
	suggestions := make(map[*typegraph.Type]string)
	suggest := func(t *typegraph.Type, label string) {
		if t != nil && t.IsNamed() && t.Label == "" && label != "" {
			if _, ok := suggestions[t]; !ok {
				suggestions[t] = label
			}
		}
	}
	for _, b := range g.Bindings {
		suggest(b.Type, b.Name)
		b.Type.Walk(func(_ string, node *typegraph.Type) bool {
			if node.Kind != typegraph.KindClass {
				return true
			}
			for _, p := range node.Properties {
				switch p.Type.Kind {
				case typegraph.KindArray:
					suggest(p.Type.Items, inflect.Singularize(p.Name))
				case typegraph.KindMap:
					suggest(p.Type.Values, inflect.Singularize(p.Name))
				default:
					suggest(p.Type, p.Name)
				}
			}
			return true
		})
	}
	return suggestions
}

// BuildNameTable walks the graph's named types and assigns every name up
// front: global declaration names first (in canonical closure order, so
// assignment is deterministic), then per-class member and per-enum case
// names, each in a fresh scope. Collisions are resolved here once; the
// renderers consume the table without re-checking.
func BuildNameTable(g *Graph, naming Naming) *NameTable {
	nt := &NameTable{
		types:      make(map[*typegraph.Type]string),
		aliases:    make(map[string]string),
		properties: make(map[*typegraph.Type][]string),
		cases:      make(map[*typegraph.Type][]string),
	}
	suggested := suggestLabels(g)
	global := NewScope(naming.Forbidden(ScopeGlobal)...)
	for _, t := range g.NamedTypes() {
		label := t.Label
		if label == "" {
			label = suggested[t]
		}
		if label == "" {
			label = naming.fallback()
		}
		nt.types[t] = global.Assign(naming.Global(label))
	}
	for _, b := range g.Bindings {
		if _, ok := nt.aliases[b.Name]; ok {
			continue
		}
		styled := naming.Global(b.Name)
		if b.Type.IsNamed() && nt.types[b.Type] == styled {
			// The root's declaration already binds this exact name;
			// no separate alias is emitted for it.
			nt.aliases[b.Name] = styled
			continue
		}
		nt.aliases[b.Name] = global.Assign(styled)
	}
	for _, t := range g.NamedTypes() {
		switch t.Kind {
		case typegraph.KindClass:
			scope := NewScope(naming.Forbidden(ScopeProperty)...)
			names := make([]string, len(t.Properties))
			for i, p := range t.Properties {
				names[i] = scope.Assign(naming.Property(p.Name))
			}
			nt.properties[t] = names
		case typegraph.KindEnum:
			scope := NewScope(naming.Forbidden(ScopeEnumCase)...)
			names := make([]string, len(t.Cases))
			for i, c := range t.Cases {
				names[i] = scope.Assign(naming.EnumCase(c))
			}
			nt.cases[t] = names
		}
	}
	return nt
}
