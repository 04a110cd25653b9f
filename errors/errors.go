package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseParse   Phase = "parse"   // text to engine value
	PhaseDump    Phase = "dump"    // engine value to text
	PhaseAccess  Phase = "access"  // container and scalar reads
	PhaseMutate  Phase = "mutate"  // container writes
	PhaseConvert Phase = "convert" // native to wrapped and back
	PhaseCompare Phase = "compare" // ordering and equality
	PhaseIterate Phase = "iterate" // cursor operations
	PhaseEngine  Phase = "engine"  // raw engine calls
)

// Kind categorizes the error
type Kind string

const (
	KindValue         Kind = "value_error"     // malformed text, absent value
	KindRecursion     Kind = "recursion_error" // nesting exceeds max depth
	KindType          Kind = "type_error"      // wrong argument kind
	KindKey           Kind = "key_error"       // missing mapping key
	KindIndex         Kind = "index_error"     // out-of-range sequence position
	KindOverflow      Kind = "overflow_error"  // outside signed 64-bit range
	KindZeroDivision  Kind = "zero_division"   // division or modulo by zero
	KindStopIteration Kind = "stop_iteration"  // cursor exhausted
	KindInternal      Kind = "internal_error"  // engine code with no specific mapping
)

// Error is the structured error type used throughout the library
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Detail string
	Path   []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// ErrStopIteration marks cursor exhaustion. Dereferencing an exhausted
// cursor returns an error matching this one without touching the engine.
var ErrStopIteration = &Error{Phase: PhaseIterate, Kind: KindStopIteration, Detail: "cursor exhausted"}

// IsStopIteration reports whether err marks cursor exhaustion.
func IsStopIteration(err error) bool {
	if t, ok := err.(*Error); ok {
		return t.Kind == KindStopIteration
	}
	return false
}

// IsKind reports whether err is an *Error of the given kind, any phase.
func IsKind(err error, kind Kind) bool {
	if t, ok := err.(*Error); ok {
		return t.Kind == kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// ValueError creates a malformed-value error
func ValueError(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindValue,
		Detail: detail,
	}
}

// TypeError creates a wrong-argument-kind error
func TypeError(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindType,
		Detail: detail,
	}
}

// KeyError creates a missing-key error
func KeyError(phase Phase, key string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindKey,
		Detail: fmt.Sprintf("key %q not found", key),
		Value:  key,
	}
}

// IndexError creates an out-of-range error
func IndexError(phase Phase, index, length int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindIndex,
		Detail: fmt.Sprintf("index %d out of range (length %d)", index, length),
		Value:  index,
	}
}

// Overflow creates an out-of-int64-range error
func Overflow(phase Phase, detail string, value any) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOverflow,
		Detail: detail,
		Value:  value,
	}
}

// ZeroDivision creates a division-by-zero error
func ZeroDivision(phase Phase) *Error {
	return &Error{
		Phase: phase,
		Kind:  KindZeroDivision,
	}
}

// Recursion creates a max-depth-exceeded error
func Recursion(phase Phase, maxDepth int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindRecursion,
		Detail: fmt.Sprintf("nesting exceeds max depth %d", maxDepth),
	}
}

// Internal creates an unmapped engine failure error
func Internal(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInternal,
		Detail: detail,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
