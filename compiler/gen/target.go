package gen

import (
	"fmt"
	"sort"
	"sync"

	"github.com/syssam/typeset/typegraph"
)

// Target renders a graph for one output language. A target instance is
// created fresh per render invocation and owns its transient state for
// the duration of that invocation, so concurrent renders of independent
// graphs never share mutable state.
//
// SourceFor must be total over every type kind except the sentinel:
// a kind it cannot render is reported through a KindError, never dropped
// silently. Each bundled target lists its handled kinds in a package
// table verified by VerifyKinds at init, so adding a kind to typegraph
// fails fast instead of falling through at render time.
type Target interface {
	// Name returns the target name (e.g., "python", "typescript").
	Name() string

	// Naming returns the stylers and forbidden words of the target.
	Naming() Naming

	// DeclarationOrder returns the declaration order policy.
	DeclarationOrder() OrderPolicy

	// SourceFor returns the syntax fragment referring to a type: a
	// built-in for primitives, generic syntax for arrays and maps, the
	// assigned name for named types, and the optional wrapper for
	// nullable unions.
	SourceFor(t *typegraph.Type, names *NameTable) (string, error)

	// EmitDeclaration emits the lines of one named-type declaration.
	EmitDeclaration(t *typegraph.Type, names *NameTable) ([]string, error)

	// Prologue emits the lines preceding all declarations: comment
	// lines, imports, and whatever else the unit needs. It is called
	// after all declarations were rendered, so targets can base their
	// imports on what was actually used.
	Prologue(comments []string) []string

	// EmitRootAlias emits the alias declaration for one root binding,
	// or nil if the target needs none for it.
	EmitRootAlias(name string, t *typegraph.Type, names *NameTable) ([]string, error)

	// CommentPrefix returns the single-line comment leader.
	CommentPrefix() string

	// FileName returns the output file name for a unit name.
	FileName(unit string) string

	// Postprocess runs over the fully rendered unit before writing,
	// e.g. source formatting. Most targets return the input unchanged.
	Postprocess(src []byte) ([]byte, error)
}

// Factory creates one target instance for a render invocation.
type Factory func(*Config) Target

var (
	targetsMu sync.RWMutex
	targets   = make(map[string]Factory)
)

// Register makes a target factory available by name. It panics when the
// name is already taken, mirroring database/sql driver registration.
func Register(name string, f Factory) {
	targetsMu.Lock()
	defer targetsMu.Unlock()
	if f == nil {
		panic("gen: Register target factory is nil")
	}
	if _, dup := targets[name]; dup {
		panic(fmt.Sprintf("gen: Register called twice for target %q", name))
	}
	targets[name] = f
}

// Registered reports whether a target with the given name exists.
func Registered(name string) bool {
	targetsMu.RLock()
	defer targetsMu.RUnlock()
	_, ok := targets[name]
	return ok
}

// Targets returns the sorted names of all registered targets.
func Targets() []string {
	targetsMu.RLock()
	defer targetsMu.RUnlock()
	names := make([]string, 0, len(targets))
	for name := range targets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// VerifyKinds panics unless the given kind table covers every kind
// except the sentinel. Target packages call it from init with the kinds
// their SourceFor switch handles.
func VerifyKinds(target string, kinds ...typegraph.Kind) {
	seen := make(map[typegraph.Kind]bool, len(kinds))
	for _, k := range kinds {
		seen[k] = true
	}
	for k := typegraph.KindNone + 1; int(k) < typegraph.KindCount(); k++ {
		if !seen[k] {
			panic(fmt.Sprintf("gen: target %q handles no rendering for kind %s", target, k))
		}
	}
}

// NewTarget instantiates a registered target for one render invocation.
func NewTarget(name string, c *Config) (Target, error) {
	targetsMu.RLock()
	f, ok := targets[name]
	targetsMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q (registered: %v)", ErrUnknownTarget, name, Targets())
	}
	return f(c), nil
}
