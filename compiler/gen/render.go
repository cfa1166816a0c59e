package gen

import (
	"github.com/syssam/typeset/typegraph"
)

// Render produces the complete source unit of one target for one graph:
// a single forward pass that emits one declaration per named type in the
// target's declaration order, followed by the root aliases, prefixed by
// the target's prologue. The pass never revisits a declaration; the
// graph is a DAG of named-type dependencies after nullable collapsing.
//
// Any fatal condition aborts the whole render: no partial unit is ever
// returned alongside an error.
func Render(t Target, g *Graph, cfg *Config) ([]string, error) {
	names := BuildNameTable(g, t.Naming())

	var classes, unions []*typegraph.Type
	for _, n := range g.NamedTypes() {
		if n.Kind == typegraph.KindUnion {
			unions = append(unions, n)
		} else {
			classes = append(classes, n)
		}
	}

	order := t.DeclarationOrder()
	var body []string
	emit := func(decl *typegraph.Type) error {
		lines, err := t.EmitDeclaration(decl, names)
		if err != nil {
			return NewRenderError(t.Name(), "declarations", "", "emit "+names.NameFor(decl), err)
		}
		if len(body) > 0 {
			body = append(body, "")
		}
		body = append(body, lines...)
		return nil
	}

	for _, decl := range order(classes) {
		if err := emit(decl); err != nil {
			return nil, err
		}
	}
	// Standalone union declarations come after classes and enums, so
	// that every member reference is already declared.
	if cfg.DeclareUnions {
		for _, decl := range order(unions) {
			if err := emit(decl); err != nil {
				return nil, err
			}
		}
	}

	var aliases []string
	for _, b := range g.Bindings {
		lines, err := t.EmitRootAlias(b.Name, b.Type, names)
		if err != nil {
			return nil, NewRenderError(t.Name(), "aliases", "", "alias "+b.Name, err)
		}
		aliases = append(aliases, lines...)
	}
	if len(aliases) > 0 {
		if len(body) > 0 {
			body = append(body, "")
		}
		body = append(body, aliases...)
	}

	comments := g.Comments
	if cfg.Header != "" {
		comments = append(append([]string{}, comments...), cfg.Header)
	}
	// The prologue is computed last: targets accumulate their import
	// needs while declarations render.
	unit := t.Prologue(comments)
	if len(unit) > 0 && len(body) > 0 {
		unit = append(unit, "")
	}
	unit = append(unit, body...)
	return unit, nil
}
