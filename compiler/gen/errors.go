package gen

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure cases.
var (
	// ErrInvalidGraph indicates a malformed or contract-violating type graph.
	ErrInvalidGraph = errors.New("typeset: invalid type graph")
	// ErrMissingConfig indicates a configuration error.
	ErrMissingConfig = errors.New("typeset: missing configuration")
	// ErrUnsupportedKind indicates a type kind no renderer handles.
	ErrUnsupportedKind = errors.New("typeset: unsupported type kind")
	// ErrRenderFailed indicates a rendering failure.
	ErrRenderFailed = errors.New("typeset: render failed")
	// ErrUnknownTarget indicates a target name with no registered factory.
	ErrUnknownTarget = errors.New("typeset: unknown target")
)

// GraphError represents a type-graph contract violation.
type GraphError struct {
	Binding string // Root binding name
	Path    string // Path to the offending node (if applicable)
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *GraphError) Error() string {
	var b strings.Builder
	b.WriteString("typeset: graph error")
	if e.Binding != "" {
		b.WriteString(" on binding ")
		b.WriteString(e.Binding)
	}
	if e.Path != "" {
		b.WriteString(" at ")
		b.WriteString(e.Path)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *GraphError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for GraphError.
func (e *GraphError) Is(target error) bool {
	return target == ErrInvalidGraph
}

// NewGraphError creates a new GraphError.
func NewGraphError(binding, path, message string, cause error) *GraphError {
	return &GraphError{
		Binding: binding,
		Path:    path,
		Message: message,
		Cause:   cause,
	}
}

// ConfigError represents a configuration error.
type ConfigError struct {
	Option  string
	Value   any
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("typeset: config error for %q (value: %v): %s", e.Option, e.Value, e.Message)
	}
	return fmt.Sprintf("typeset: config error for %q: %s", e.Option, e.Message)
}

// Is reports whether the target matches the sentinel error for ConfigError.
func (e *ConfigError) Is(target error) bool {
	return target == ErrMissingConfig
}

// NewConfigError creates a new ConfigError.
func NewConfigError(option string, value any, message string) *ConfigError {
	return &ConfigError{
		Option:  option,
		Value:   value,
		Message: message,
	}
}

// KindError represents a type kind that reached a renderer without a
// handler. The sentinel "none" kind always produces one; any other kind
// producing one means a renderer was not extended for a new variant.
type KindError struct {
	Target string
	Kind   string
	Path   string
}

// Error implements the error interface.
func (e *KindError) Error() string {
	var b strings.Builder
	b.WriteString("typeset: kind error")
	if e.Target != "" {
		b.WriteString(" in target ")
		b.WriteString(e.Target)
	}
	if e.Kind != "" {
		b.WriteString(": no rendering for kind ")
		b.WriteString(e.Kind)
	}
	if e.Path != "" {
		b.WriteString(" (at ")
		b.WriteString(e.Path)
		b.WriteString(")")
	}
	return b.String()
}

// Is reports whether the target matches the sentinel error for KindError.
func (e *KindError) Is(target error) bool {
	return target == ErrUnsupportedKind
}

// NewKindError creates a new KindError.
func NewKindError(target, kind, path string) *KindError {
	return &KindError{
		Target: target,
		Kind:   kind,
		Path:   path,
	}
}

// RenderError represents a failure while rendering or writing a unit.
type RenderError struct {
	Target  string
	Phase   string // "names", "declarations", "write", etc.
	File    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *RenderError) Error() string {
	var b strings.Builder
	b.WriteString("typeset: render error")
	if e.Target != "" {
		b.WriteString(" in target ")
		b.WriteString(e.Target)
	}
	if e.Phase != "" {
		b.WriteString(" in phase ")
		b.WriteString(e.Phase)
	}
	if e.File != "" {
		b.WriteString(" (file: ")
		b.WriteString(e.File)
		b.WriteString(")")
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *RenderError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for RenderError.
func (e *RenderError) Is(target error) bool {
	return target == ErrRenderFailed
}

// NewRenderError creates a new RenderError.
func NewRenderError(target, phase, file, message string, cause error) *RenderError {
	return &RenderError{
		Target:  target,
		Phase:   phase,
		File:    file,
		Message: message,
		Cause:   cause,
	}
}

// IsGraphError reports whether the error is a GraphError.
func IsGraphError(err error) bool {
	var graphErr *GraphError
	return errors.As(err, &graphErr)
}

// IsConfigError reports whether the error is a ConfigError.
func IsConfigError(err error) bool {
	var configErr *ConfigError
	return errors.As(err, &configErr)
}

// IsKindError reports whether the error is a KindError.
func IsKindError(err error) bool {
	var kindErr *KindError
	return errors.As(err, &kindErr)
}

// IsRenderError reports whether the error is a RenderError.
func IsRenderError(err error) bool {
	var renderErr *RenderError
	return errors.As(err, &renderErr)
}
