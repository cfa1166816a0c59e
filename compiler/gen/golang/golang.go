// Package golang renders type graphs as Go source: struct declarations
// with json tags, constructor functions, and iota-numbered enum
// constants. Declarations are built with jennifer and the final unit is
// run through goimports, which also resolves the import block.
package golang

import (
	"fmt"
	"strings"

	"github.com/dave/jennifer/jen"
	"golang.org/x/tools/imports"

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
	gen.VerifyKinds("go", sourceKinds...)
	gen.Register("go", func(cfg *gen.Config) gen.Target {
		return New(cfg)
	})
}

var keywords = []string{
	"break", "case", "chan", "const", "continue", "default", "defer",
	"else", "fallthrough", "for", "func", "go", "goto", "if", "import",
	"interface", "map", "package", "range", "return", "select", "struct",
	"switch", "type", "var",
}

// Target renders Go source. Go declarations are order-independent, so
// the canonical order is kept as-is.
type Target struct {
	cfg *gen.Config
}

func New(cfg *gen.Config) *Target { return &Target{cfg: cfg} }

func (t *Target) Name() string { return "go" }

// Naming implements gen.Target. Every generated identifier is exported,
// so styled names never collide with the lowercase keywords; the
// keyword set still guards constructor parameters, which are camelCase.
func (t *Target) Naming() gen.Naming {
	return gen.Naming{
		Global:   gen.PascalCase.Apply,
		Property: gen.PascalCase.Apply,
		EnumCase: gen.PascalCase.Apply,
		Forbidden: func(gen.ScopeKind) []string {
			return keywords
		},
	}
}

func (t *Target) DeclarationOrder() gen.OrderPolicy { return gen.OrderKeep }

func (t *Target) CommentPrefix() string { return "//" }

func (t *Target) FileName(unit string) string { return unit + ".go" }

// Postprocess implements gen.Target: gofmt plus import resolution. The
// rendered unit carries no import block of its own; goimports derives
// one from the qualified names in use.
func (t *Target) Postprocess(src []byte) ([]byte, error) {
	return imports.Process(t.FileName(unitPackage), src, nil)
}

// unitPackage is the package clause of every generated unit.
const unitPackage = "types"

// SourceFor implements gen.Target.
func (t *Target) SourceFor(ty *typegraph.Type, names *gen.NameTable) (string, error) {
	switch ty.Kind {
	case typegraph.KindAny, typegraph.KindNull:
		return "any", nil
	case typegraph.KindBool:
		return "bool", nil
	case typegraph.KindInteger:
		return "int64", nil
	case typegraph.KindDouble:
		return "float64", nil
	case typegraph.KindString:
		return "string", nil
	case typegraph.KindDate, typegraph.KindTime, typegraph.KindDateTime:
		return "time.Time", nil
	case typegraph.KindArray:
		items, err := t.SourceFor(ty.Items, names)
		if err != nil {
			return "", err
		}
		return "[]" + items, nil
	case typegraph.KindMap:
		values, err := t.SourceFor(ty.Values, names)
		if err != nil {
			return "", err
		}
		return "map[string]" + values, nil
	case typegraph.KindClass, typegraph.KindEnum:
		return names.NameFor(ty), nil
	case typegraph.KindUnion:
		if inner, ok := ty.Nullable(); ok {
			src, err := t.SourceFor(inner, names)
			if err != nil {
				return "", err
			}
			return "*" + src, nil
		}
		if t.cfg.DeclareUnions {
			return names.NameFor(ty), nil
		}
		// Go has no inline union syntax; undeclared unions widen to any.
		return "any", nil
	default:
		return "", gen.NewKindError(t.Name(), ty.Kind.String(), "")
	}
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

// emitClass emits a struct with json-tagged fields and a constructor
// taking one like-named parameter per field, in property order.
func (t *Target) emitClass(ty *typegraph.Type, names *gen.NameTable) ([]string, error) {
	name := names.NameFor(ty)
	fieldNames := names.PropertyNames(ty)

	sources := make([]string, len(ty.Properties))
	fields := make([]jen.Code, len(ty.Properties))
	for i, p := range ty.Properties {
		src, err := t.SourceFor(p.Type, names)
		if err != nil {
			return nil, err
		}
		sources[i] = src
		tag := p.Name
		if p.Optional {
			tag += ",omitempty"
		}
		fields[i] = jen.Id(fieldNames[i]).Id(src).Tag(map[string]string{"json": tag})
	}
	lines := renderStmt(jen.Type().Id(name).Struct(fields...))

	// Constructor parameters are camelCase forms of the field names,
	// deduplicated against the keywords in their own scope.
	paramScope := gen.NewScope(keywords...)
	params := make([]jen.Code, len(ty.Properties))
	values := jen.Dict{}
	for i := range ty.Properties {
		param := paramScope.Assign(gen.CamelCase.Apply(ty.Properties[i].Name))
		params[i] = jen.Id(param).Id(sources[i])
		values[jen.Id(fieldNames[i])] = jen.Id(param)
	}
	ctor := jen.Func().Id("New" + name).Params(params...).Op("*").Id(name).Block(
		jen.Return(jen.Op("&").Id(name).Values(values)),
	)
	lines = append(lines, "")
	return append(lines, renderStmt(ctor)...), nil
}

// emitEnum emits a defined integer type and an iota-numbered constant
// block. Constants are prefixed with the enum name, so two enums never
// collide in the package scope. Each block counts from zero.
func (t *Target) emitEnum(ty *typegraph.Type, names *gen.NameTable) ([]string, error) {
	name := names.NameFor(ty)
	lines := renderStmt(jen.Type().Id(name).Int())
	if len(ty.Cases) == 0 {
		return lines, nil
	}
	cases := names.CaseNames(ty)
	defs := make([]jen.Code, len(cases))
	for i, c := range cases {
		if i == 0 {
			defs[i] = jen.Id(name + c).Id(name).Op("=").Iota()
		} else {
			defs[i] = jen.Id(name + c)
		}
	}
	lines = append(lines, "")
	return append(lines, renderStmt(jen.Const().Defs(defs...))...), nil
}

// emitUnion emits a struct with one pointer field per member; exactly
// one of them is set at a time.
func (t *Target) emitUnion(ty *typegraph.Type, names *gen.NameTable) ([]string, error) {
	scope := gen.NewScope(keywords...)
	fields := make([]jen.Code, len(ty.Members))
	for i, m := range ty.Members {
		src, err := t.SourceFor(m, names)
		if err != nil {
			return nil, err
		}
		fields[i] = jen.Id(scope.Assign(memberField(m, names))).Op("*").Id(src)
	}
	return renderStmt(jen.Type().Id(names.NameFor(ty)).Struct(fields...)), nil
}

// memberField derives a field name for one union member from its shape.
func memberField(m *typegraph.Type, names *gen.NameTable) string {
	switch m.Kind {
	case typegraph.KindClass, typegraph.KindEnum, typegraph.KindUnion:
		return names.NameFor(m)
	case typegraph.KindArray:
		return "Array"
	case typegraph.KindMap:
		return "Map"
	default:
		return gen.PascalCase.Apply(m.Kind.String())
	}
}

// EmitRootAlias implements gen.Target: a type alias, skipped when the
// root already declares the same name.
func (t *Target) EmitRootAlias(name string, ty *typegraph.Type, names *gen.NameTable) ([]string, error) {
	src, err := t.SourceFor(ty, names)
	if err != nil {
		return nil, err
	}
	alias := names.AliasFor(name)
	if alias == src {
		return nil, nil
	}
	return renderStmt(jen.Type().Id(alias).Op("=").Id(src)), nil
}

// Prologue implements gen.Target: comments above the package clause.
// Imports are left to Postprocess.
func (t *Target) Prologue(comments []string) []string {
	var lines []string
	for _, c := range comments {
		lines = append(lines, "// "+c)
	}
	if len(lines) > 0 {
		lines = append(lines, "")
	}
	return append(lines, "package "+unitPackage)
}

func renderStmt(s *jen.Statement) []string {
	return strings.Split(fmt.Sprintf("%#v", s), "\n")
}
