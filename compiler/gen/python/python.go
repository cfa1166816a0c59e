// Package python renders type graphs as Python source: annotated
// classes with __init__ constructors, IntEnum declarations, and
// typing-module generics with bracketed syntax.
package python

import (
	"fmt"
	"sort"
	"strings"

	"github.com/syssam/typeset/compiler/gen"
	"github.com/syssam/typeset/typegraph"
)

// sourceKinds mirrors the switch in SourceFor.
var sourceKinds = []typegraph.Kind{
	typegraph.KindAny, typegraph.KindNull, typegraph.KindBool,
	typegraph.KindInteger, typegraph.KindDouble, typegraph.KindString,
	typegraph.KindDate, typegraph.KindTime, typegraph.KindDateTime,
	typegraph.KindArray, typegraph.KindMap, typegraph.KindClass,
	typegraph.KindEnum, typegraph.KindUnion,
}

func init() {
	gen.VerifyKinds("python", sourceKinds...)
	gen.Register("python", func(cfg *gen.Config) gen.Target {
		return New(cfg)
	})
}

// keywords are forbidden bare in every scope.
var keywords = []string{
	"False", "None", "True", "and", "as", "assert", "async", "await",
	"break", "class", "continue", "def", "del", "elif", "else", "except",
	"finally", "for", "from", "global", "if", "import", "in", "is",
	"lambda", "nonlocal", "not", "or", "pass", "raise", "return", "try",
	"while", "with", "yield",
}

// globalReserved are module-level names the generated unit itself binds.
// Declarations must never shadow them.
var globalReserved = []string{
	"Any", "Dict", "IntEnum", "List", "Optional", "Union",
	"date", "datetime", "time",
}

// Target renders Python source. One instance serves one render
// invocation; it accumulates the typing/datetime imports used by the
// declarations it rendered.
type Target struct {
	cfg *gen.Config

	typing   map[string]bool
	datetime map[string]bool
	intEnum  bool
}

// New creates a fresh target instance for one render invocation.
func New(cfg *gen.Config) *Target {
	return &Target{
		cfg:      cfg,
		typing:   make(map[string]bool),
		datetime: make(map[string]bool),
	}
}

// Name implements gen.Target.
func (t *Target) Name() string { return "python" }

// Naming implements gen.Target: PascalCase globals, snake_case
// properties, SCREAMING_SNAKE enum cases.
func (t *Target) Naming() gen.Naming {
	return gen.Naming{
		Global:   gen.PascalCase.Apply,
		Property: gen.SnakeCase.Apply,
		EnumCase: gen.ScreamingSnakeCase.Apply,
		Forbidden: func(scope gen.ScopeKind) []string {
			if scope == gen.ScopeGlobal {
				return append(append([]string{}, keywords...), globalReserved...)
			}
			return keywords
		},
	}
}

// DeclarationOrder implements gen.Target. Python executes class bodies
// at import time, so every name an annotation references must already
// be bound. Topological order declares dependencies first even when
// sibling declarations reference each other.
func (t *Target) DeclarationOrder() gen.OrderPolicy { return gen.OrderTopo }

// CommentPrefix implements gen.Target.
func (t *Target) CommentPrefix() string { return "#" }

// FileName implements gen.Target.
func (t *Target) FileName(unit string) string { return unit + ".py" }

// Postprocess implements gen.Target. Python units are written as
// rendered.
func (t *Target) Postprocess(src []byte) ([]byte, error) { return src, nil }

// SourceFor implements gen.Target. It is total over every kind except
// the sentinel, which is a contract violation and fails the render.
func (t *Target) SourceFor(ty *typegraph.Type, names *gen.NameTable) (string, error) {
	switch ty.Kind {
	case typegraph.KindAny:
		t.typing["Any"] = true
		return "Any", nil
	case typegraph.KindNull:
		return "None", nil
	case typegraph.KindBool:
		return "bool", nil
	case typegraph.KindInteger:
		return "int", nil
	case typegraph.KindDouble:
		return "float", nil
	case typegraph.KindString:
		return "str", nil
	case typegraph.KindDate:
		t.datetime["date"] = true
		return "date", nil
	case typegraph.KindTime:
		t.datetime["time"] = true
		return "time", nil
	case typegraph.KindDateTime:
		t.datetime["datetime"] = true
		return "datetime", nil
	case typegraph.KindArray:
		items, err := t.SourceFor(ty.Items, names)
		if err != nil {
			return "", err
		}
		t.typing["List"] = true
		return fmt.Sprintf("List[%s]", items), nil
	case typegraph.KindMap:
		values, err := t.SourceFor(ty.Values, names)
		if err != nil {
			return "", err
		}
		t.typing["Dict"] = true
		return fmt.Sprintf("Dict[str, %s]", values), nil
	case typegraph.KindClass, typegraph.KindEnum:
		return names.NameFor(ty), nil
	case typegraph.KindUnion:
		if inner, ok := ty.Nullable(); ok {
			src, err := t.SourceFor(inner, names)
			if err != nil {
				return "", err
			}
			t.typing["Optional"] = true
			return fmt.Sprintf("Optional[%s]", src), nil
		}
		if t.cfg.DeclareUnions {
			return names.NameFor(ty), nil
		}
		return t.inlineUnion(ty, names)
	default:
		return "", gen.NewKindError(t.Name(), ty.Kind.String(), "")
	}
}

func (t *Target) inlineUnion(ty *typegraph.Type, names *gen.NameTable) (string, error) {
	members := make([]string, len(ty.Members))
	for i, m := range ty.Members {
		src, err := t.SourceFor(m, names)
		if err != nil {
			return "", err
		}
		members[i] = src
	}
	t.typing["Union"] = true
	return fmt.Sprintf("Union[%s]", strings.Join(members, ", ")), nil
}

// EmitDeclaration implements gen.Target.
func (t *Target) EmitDeclaration(ty *typegraph.Type, names *gen.NameTable) ([]string, error) {
	switch ty.Kind {
	case typegraph.KindClass:
		return t.emitClass(ty, names)
	case typegraph.KindEnum:
		return t.emitEnum(ty, names)
	case typegraph.KindUnion:
		return t.emitUnion(ty, names)
	default:
		return nil, gen.NewKindError(t.Name(), ty.Kind.String(), "")
	}
}

// emitClass emits annotated fields followed by an __init__ assigning
// every field from a like-named parameter, in property order.
func (t *Target) emitClass(ty *typegraph.Type, names *gen.NameTable) ([]string, error) {
	props := names.PropertyNames(ty)
	lines := []string{fmt.Sprintf("class %s:", names.NameFor(ty))}
	if len(ty.Properties) == 0 {
		return append(lines, "    pass"), nil
	}
	sources := make([]string, len(ty.Properties))
	for i, p := range ty.Properties {
		src, err := t.SourceFor(p.Type, names)
		if err != nil {
			return nil, err
		}
		sources[i] = src
		lines = append(lines, fmt.Sprintf("    %s: %s", props[i], src))
	}
	params := make([]string, len(ty.Properties))
	for i := range ty.Properties {
		params[i] = fmt.Sprintf("%s: %s", props[i], sources[i])
	}
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("    def __init__(self, %s) -> None:", strings.Join(params, ", ")))
	for i := range ty.Properties {
		lines = append(lines, fmt.Sprintf("        self.%s = %s", props[i], props[i]))
	}
	return lines, nil
}

// emitEnum emits one case per label in original order, with ordinals
// counted from zero. The counter is local to this declaration.
func (t *Target) emitEnum(ty *typegraph.Type, names *gen.NameTable) ([]string, error) {
	t.intEnum = true
	cases := names.CaseNames(ty)
	lines := []string{fmt.Sprintf("class %s(IntEnum):", names.NameFor(ty))}
	if len(ty.Cases) == 0 {
		return append(lines, "    pass"), nil
	}
	for ordinal, name := range cases {
		lines = append(lines, fmt.Sprintf("    %s = %d", name, ordinal))
	}
	return lines, nil
}

func (t *Target) emitUnion(ty *typegraph.Type, names *gen.NameTable) ([]string, error) {
	inline, err := t.inlineUnion(ty, names)
	if err != nil {
		return nil, err
	}
	return []string{fmt.Sprintf("%s = %s", names.NameFor(ty), inline)}, nil
}

// EmitRootAlias implements gen.Target: a module-level alias assignment,
// skipped when the root is a named type already declared under the same
// name.
func (t *Target) EmitRootAlias(name string, ty *typegraph.Type, names *gen.NameTable) ([]string, error) {
	src, err := t.SourceFor(ty, names)
	if err != nil {
		return nil, err
	}
	alias := names.AliasFor(name)
	if alias == src {
		return nil, nil
	}
	return []string{fmt.Sprintf("%s = %s", alias, src)}, nil
}

// Prologue implements gen.Target: comment lines followed by the imports
// the rendered declarations actually use.
func (t *Target) Prologue(comments []string) []string {
	var lines []string
	for _, c := range comments {
		lines = append(lines, "# "+c)
	}
	var imports []string
	if len(t.datetime) > 0 {
		imports = append(imports, "from datetime import "+joinSorted(t.datetime))
	}
	if t.intEnum {
		imports = append(imports, "from enum import IntEnum")
	}
	if len(t.typing) > 0 {
		imports = append(imports, "from typing import "+joinSorted(t.typing))
	}
	if len(lines) > 0 && len(imports) > 0 {
		lines = append(lines, "")
	}
	return append(lines, imports...)
}

func joinSorted(set map[string]bool) string {
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
