package value

import (
	"github.com/cycraft-corp/hakka-json/engine"
)

// Kind identifies which variant a Value is. The set is closed: every engine
// tag maps to exactly one kind, and an unmapped tag is an internal error.
type Kind int32

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindArray
	KindObject
	KindInvalid
)

// String returns the symbolic name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	case KindInvalid:
		return "invalid"
	}
	return "unknown"
}

func kindOf(t engine.Tag) (Kind, bool) {
	switch t {
	case engine.TagNull:
		return KindNull, true
	case engine.TagBool:
		return KindBool, true
	case engine.TagInt:
		return KindInt, true
	case engine.TagFloat:
		return KindFloat, true
	case engine.TagString:
		return KindString, true
	case engine.TagArray:
		return KindArray, true
	case engine.TagObject:
		return KindObject, true
	case engine.TagInvalid:
		return KindInvalid, true
	}
	return 0, false
}

// Value is the closed variant over the eight JSON kinds. Only types in this
// package implement it.
type Value interface {
	// Kind reports the variant without an engine call.
	Kind() Kind

	// Release frees the underlying handle. Idempotent; a no-op on pinned
	// singletons and on already released wrappers.
	Release()

	// Dumps serializes the value with the default depth bound.
	Dumps() (string, error)

	// DumpsDepth serializes the value with nesting bounded by maxDepth.
	DumpsDepth(maxDepth uint32) (string, error)

	// Equal reports content equality. Kinds with no common order compare
	// unequal rather than failing.
	Equal(other Value) bool

	// Less, LessEq, Greater, and GreaterEq order two values. Kinds with no
	// common order fail; unordered pairs (NaN operands, incomparable
	// objects) report false for every inequality.
	Less(other Value) (bool, error)
	LessEq(other Value) (bool, error)
	Greater(other Value) (bool, error)
	GreaterEq(other Value) (bool, error)

	// Hash returns a content hash for immutable kinds and fails with a
	// type error for containers.
	Hash() (uint64, error)

	// Native converts the value to its host representation: nil, bool,
	// int64, float64, string, []any, or map[string]any.
	Native() (any, error)

	// Truthy reports the value's truth: containers and strings by
	// non-emptiness, numbers by non-zeroness, Null and Invalid never.
	Truthy() bool

	// Copy returns an independent value with equal content. Immutable
	// kinds return the receiver itself.
	Copy() (Value, error)

	// String renders the value for diagnostics, best effort.
	String() string

	ref() *owner
}

// IsValid reports whether v is a usable value: non-nil and not the Invalid
// sentinel.
func IsValid(v Value) bool {
	return v != nil && v.Kind() != KindInvalid
}
