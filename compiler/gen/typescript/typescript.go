// Package typescript renders type graphs as TypeScript source: exported
// classes with field-assigning constructors, numeric enums, and inline
// union types written with the pipe syntax.
package typescript

import (
	"fmt"
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
	gen.VerifyKinds("typescript", sourceKinds...)
	gen.Register("typescript", func(cfg *gen.Config) gen.Target {
		return New(cfg)
	})
}

var keywords = []string{
	"any", "as", "boolean", "break", "case", "catch", "class", "const",
	"continue", "debugger", "declare", "default", "delete", "do", "else",
	"enum", "export", "extends", "false", "finally", "for", "from",
	"function", "get", "if", "implements", "import", "in", "instanceof",
	"interface", "is", "let", "module", "namespace", "new", "null",
	"number", "of", "package", "private", "protected", "public",
	"require", "return", "set", "static", "string", "super", "switch",
	"symbol", "this", "throw", "true", "try", "type", "typeof", "var",
	"void", "while", "with", "yield",
}

// globalReserved are ambient identifiers the generated unit relies on.
var globalReserved = []string{"Array", "Date", "Object", "Record"}

// Target renders TypeScript source. Declarations are hoisted in type
// positions, so the canonical order is kept as-is.
type Target struct {
	cfg *gen.Config
}

func New(cfg *gen.Config) *Target { return &Target{cfg: cfg} }

func (t *Target) Name() string { return "typescript" }

func (t *Target) Naming() gen.Naming {
	return gen.Naming{
		Global:   gen.PascalCase.Apply,
		Property: gen.CamelCase.Apply,
		EnumCase: gen.PascalCase.Apply,
		Forbidden: func(scope gen.ScopeKind) []string {
			if scope == gen.ScopeGlobal {
				return append(append([]string{}, keywords...), globalReserved...)
			}
			return keywords
		},
	}
}

func (t *Target) DeclarationOrder() gen.OrderPolicy { return gen.OrderKeep }

func (t *Target) CommentPrefix() string { return "//" }

func (t *Target) FileName(unit string) string { return unit + ".ts" }

func (t *Target) Postprocess(src []byte) ([]byte, error) { return src, nil }

// SourceFor implements gen.Target.
func (t *Target) SourceFor(ty *typegraph.Type, names *gen.NameTable) (string, error) {
	switch ty.Kind {
	case typegraph.KindAny:
		return "any", nil
	case typegraph.KindNull:
		return "null", nil
	case typegraph.KindBool:
		return "boolean", nil
	case typegraph.KindInteger, typegraph.KindDouble:
		return "number", nil
	case typegraph.KindString:
		return "string", nil
	case typegraph.KindDate, typegraph.KindTime, typegraph.KindDateTime:
		return "Date", nil
	case typegraph.KindArray:
		items, err := t.SourceFor(ty.Items, names)
		if err != nil {
			return "", err
		}
		// Union elements need grouping: `a | b[]` binds the wrong way.
		if strings.Contains(items, " | ") {
			return fmt.Sprintf("(%s)[]", items), nil
		}
		return items + "[]", nil
	case typegraph.KindMap:
		values, err := t.SourceFor(ty.Values, names)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("{ [key: string]: %s }", values), nil
	case typegraph.KindClass, typegraph.KindEnum:
		return names.NameFor(ty), nil
	case typegraph.KindUnion:
		if inner, ok := ty.Nullable(); ok {
			src, err := t.SourceFor(inner, names)
			if err != nil {
				return "", err
			}
			return src + " | null", nil
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
	return strings.Join(members, " | "), nil
}

// EmitDeclaration implements gen.Target.
func (t *Target) EmitDeclaration(ty *typegraph.Type, names *gen.NameTable) ([]string, error) {
	switch ty.Kind {
	case typegraph.KindClass:
		return t.emitClass(ty, names)
	case typegraph.KindEnum:
		return t.emitEnum(ty, names)
	case typegraph.KindUnion:
		inline, err := t.inlineUnion(ty, names)
		if err != nil {
			return nil, err
		}
		return []string{fmt.Sprintf("export type %s = %s;", names.NameFor(ty), inline)}, nil
	default:
		return nil, gen.NewKindError(t.Name(), ty.Kind.String(), "")
	}
}

func (t *Target) emitClass(ty *typegraph.Type, names *gen.NameTable) ([]string, error) {
	props := names.PropertyNames(ty)
	lines := []string{fmt.Sprintf("export class %s {", names.NameFor(ty))}
	if len(ty.Properties) == 0 {
		return append(lines, "}"), nil
	}
	sources := make([]string, len(ty.Properties))
	for i, p := range ty.Properties {
		src, err := t.SourceFor(p.Type, names)
		if err != nil {
			return nil, err
		}
		sources[i] = src
		lines = append(lines, fmt.Sprintf("    %s: %s;", props[i], src))
	}
	params := make([]string, len(ty.Properties))
	for i := range ty.Properties {
		params[i] = fmt.Sprintf("%s: %s", props[i], sources[i])
	}
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("    constructor(%s) {", strings.Join(params, ", ")))
	for i := range ty.Properties {
		lines = append(lines, fmt.Sprintf("        this.%s = %s;", props[i], props[i]))
	}
	lines = append(lines, "    }", "}")
	return lines, nil
}

// emitEnum writes explicit ordinals so the numbering is visible in the
// output. Each declaration counts from zero.
func (t *Target) emitEnum(ty *typegraph.Type, names *gen.NameTable) ([]string, error) {
	cases := names.CaseNames(ty)
	lines := []string{fmt.Sprintf("export enum %s {", names.NameFor(ty))}
	for ordinal, name := range cases {
		lines = append(lines, fmt.Sprintf("    %s = %d,", name, ordinal))
	}
	return append(lines, "}"), nil
}

// EmitRootAlias implements gen.Target.
func (t *Target) EmitRootAlias(name string, ty *typegraph.Type, names *gen.NameTable) ([]string, error) {
	src, err := t.SourceFor(ty, names)
	if err != nil {
		return nil, err
	}
	alias := names.AliasFor(name)
	if alias == src {
		return nil, nil
	}
	return []string{fmt.Sprintf("export type %s = %s;", alias, src)}, nil
}

// Prologue implements gen.Target. TypeScript units import nothing; the
// prologue is comments only.
func (t *Target) Prologue(comments []string) []string {
	var lines []string
	for _, c := range comments {
		lines = append(lines, "// "+c)
	}
	return lines
}
