package engine

// Handle is an opaque reference to a value or cursor owned by an engine.
// Handle 0 is reserved and always invalid.
type Handle uint64

// Result is the uniform result-code enumeration returned by every engine
// call. Callers inspect nothing beyond this code and declared out-values.
type Result int32

const (
	ResultOK               Result = 0
	ResultParseError       Result = 1
	ResultTypeError        Result = 2
	ResultNotEnoughMemory  Result = 3
	ResultKeyNotFound      Result = 4
	ResultIndexOutOfBounds Result = 5
	ResultInvalidArgument  Result = 6
	ResultOverflow         Result = 7
	ResultDepthExceeded    Result = 8
	ResultIteratorEnd      Result = 9
	ResultInternalError    Result = -1
)

// String returns the symbolic name of the result code.
func (r Result) String() string {
	switch r {
	case ResultOK:
		return "ok"
	case ResultParseError:
		return "parse_error"
	case ResultTypeError:
		return "type_error"
	case ResultNotEnoughMemory:
		return "not_enough_memory"
	case ResultKeyNotFound:
		return "key_not_found"
	case ResultIndexOutOfBounds:
		return "index_out_of_bounds"
	case ResultInvalidArgument:
		return "invalid_argument"
	case ResultOverflow:
		return "overflow"
	case ResultDepthExceeded:
		return "depth_exceeded"
	case ResultIteratorEnd:
		return "iterator_end"
	case ResultInternalError:
		return "internal_error"
	}
	return "unknown"
}

// Tag identifies the kind of value behind a handle.
type Tag int32

const (
	TagNull    Tag = 0
	TagString  Tag = 1
	TagInt     Tag = 2
	TagFloat   Tag = 3
	TagBool    Tag = 4
	TagObject  Tag = 5
	TagArray   Tag = 6
	TagInvalid Tag = -1
)

// String returns the symbolic name of the tag.
func (t Tag) String() string {
	switch t {
	case TagNull:
		return "null"
	case TagString:
		return "string"
	case TagInt:
		return "int"
	case TagFloat:
		return "float"
	case TagBool:
		return "bool"
	case TagObject:
		return "object"
	case TagArray:
		return "array"
	case TagInvalid:
		return "invalid"
	}
	return "unknown"
}

// Tri-state comparison out-values. CmpUnordered is reported for pairs with
// no defined order (NaN operands, incomparable objects) while the call
// itself still succeeds.
const (
	CmpLess      int32 = -1
	CmpEqual     int32 = 0
	CmpGreater   int32 = 1
	CmpUnordered int32 = 2
)

// StringPredicate selects a string classification query.
type StringPredicate int32

const (
	PredIsAlnum StringPredicate = iota
	PredIsAlpha
	PredIsASCII
	PredIsDecimal
	PredIsDigit
	PredIsIdentifier
	PredIsLower
	PredIsNumeric
	PredIsPrintable
	PredIsSpace
	PredIsTitle
	PredIsUpper
)

// Core covers value creation, release, and whole-value queries.
type Core interface {
	CreateNull() (Handle, Result)
	CreateBool(b bool) (Handle, Result)
	CreateInt(v int64) (Handle, Result)
	CreateFloat(v float64) (Handle, Result)
	CreateString(s string) (Handle, Result)
	CreateArray() (Handle, Result)
	CreateObject() (Handle, Result)
	CreateInvalid() (Handle, Result)

	// Type reports the tag of the value behind h.
	Type(h Handle) (Tag, Result)

	// Compare orders two values. The out-value is one of CmpLess, CmpEqual,
	// CmpGreater, or CmpUnordered; kinds with no common order fail with
	// ResultTypeError.
	Compare(a, b Handle) (int32, Result)

	// Hash returns a 64-bit content hash. Mutable containers fail with
	// ResultTypeError.
	Hash(h Handle) (uint64, Result)

	// DumpSize reports the byte length Dump will produce for h.
	DumpSize(h Handle) (uint64, Result)

	// Dump serializes h into buf, bounding nesting by maxDepth, and reports
	// the number of bytes written.
	Dump(h Handle, maxDepth uint32, buf []byte) (uint64, Result)

	// Release frees the handle. Unconditional and idempotent: releasing an
	// unknown or already released handle is a no-op.
	Release(h Handle)

	GetInt(h Handle) (int64, Result)
	GetFloat(h Handle) (float64, Result)
	GetBool(h Handle) (bool, Result)
	GetString(h Handle) (string, Result)
}

// Loader parses top-level JSON documents.
type Loader interface {
	// LoadsArray parses data whose root must be an array.
	LoadsArray(data []byte, maxDepth uint32) (Handle, Result)

	// LoadsObject parses data whose root must be an object.
	LoadsObject(data []byte, maxDepth uint32) (Handle, Result)
}

// Strings covers the string-algebra surface. Transforming calls return a
// handle to a new string value; the receiver is never mutated. Positions
// and lengths are in Unicode codepoints.
type Strings interface {
	StringLength(h Handle) (uint32, Result)
	StringUTF8Length(h Handle) (uint64, Result)
	StringSlice(h Handle, start, stop, step int64) (Handle, Result)
	StringConcat(h Handle, other string) (Handle, Result)
	StringRepeat(h Handle, n int64) (Handle, Result)
	StringCount(h Handle, sub string) (int64, Result)
	StringFind(h Handle, sub string) (int64, Result)
	StringRFind(h Handle, sub string) (int64, Result)
	StringStartsWith(h Handle, prefix string) (bool, Result)
	StringEndsWith(h Handle, suffix string) (bool, Result)
	StringReplace(h Handle, old, new string) (Handle, Result)
	StringRemovePrefix(h Handle, prefix string) (Handle, Result)
	StringRemoveSuffix(h Handle, suffix string) (Handle, Result)
	StringLower(h Handle) (Handle, Result)
	StringUpper(h Handle) (Handle, Result)
	StringTitle(h Handle) (Handle, Result)
	StringSwapcase(h Handle) (Handle, Result)
	StringCapitalize(h Handle) (Handle, Result)
	StringCasefold(h Handle) (Handle, Result)
	StringZfill(h Handle, width int64) (Handle, Result)
	StringLjust(h Handle, width int64, fill rune) (Handle, Result)
	StringCenter(h Handle, width int64, fill rune) (Handle, Result)

	// StringSplit splits around sep, at most maxSplit times (negative means
	// unbounded). An empty sep splits on whitespace runs.
	StringSplit(h Handle, sep string, maxSplit int64) (Handle, Result)
	StringRSplit(h Handle, sep string, maxSplit int64) (Handle, Result)
	StringSplitlines(h Handle, keepEnds bool) (Handle, Result)

	StringIs(h Handle, pred StringPredicate) (bool, Result)

	// Codepoint cursor. Deref past the end reports ResultIteratorEnd.
	StringIterBegin(h Handle) (Handle, Result)
	StringIterNext(it Handle) Result
	StringIterDeref(it Handle) (rune, Result)
	StringIterRelease(it Handle)
}

// Arrays covers ordered-sequence storage. Indices for scalar operations are
// engine positions (already normalized by the caller); slice bounds follow
// half-open possibly-negative-step sequence rules and arrive normalized.
type Arrays interface {
	ArraySize(h Handle) (uint32, Result)
	ArrayGet(h Handle, idx uint32) (Handle, Result)
	ArraySet(h Handle, idx uint32, v Handle) Result
	ArraySlice(h Handle, start, stop, step int64) (Handle, Result)
	ArraySetSlice(h Handle, start, stop, step int64, v Handle) Result
	ArrayRemoveIndex(h Handle, idx uint32) Result
	ArrayClear(h Handle) Result
	ArrayInsert(h Handle, idx uint32, v Handle) Result
	ArrayRepeat(h Handle, n int64) Result
	ArrayCount(h Handle, v Handle) (uint32, Result)
	ArrayExtend(h Handle, other Handle) Result
	ArrayFindFirst(h Handle, v Handle, start, stop uint32) (uint32, Result)
	ArrayPushBack(h Handle, v Handle) Result
	ArrayPop(h Handle, idx uint32) (Handle, Result)
	ArrayRemoveValue(h Handle, v Handle) Result
	ArrayReverse(h Handle) Result

	// Position cursors, forward and reverse. Deref past the end reports
	// ResultIteratorEnd; mutating the array under a live cursor has
	// engine-defined behavior.
	ArrayIterBegin(h Handle) (Handle, Result)
	ArrayIterRBegin(h Handle) (Handle, Result)
	ArrayIterNext(it Handle) Result
	ArrayIterPrev(it Handle) Result
	ArrayIterDeref(it Handle) (Handle, Result)
	ArrayIterRelease(it Handle)
}

// Objects covers insertion-ordered string-keyed mapping storage.
type Objects interface {
	ObjectSize(h Handle) (uint32, Result)
	ObjectGet(h Handle, key string) (Handle, Result)
	ObjectSet(h Handle, key string, v Handle) Result
	ObjectRemove(h Handle, key string) Result
	ObjectContains(h Handle, key string) (bool, Result)

	// ObjectKeys and ObjectValues snapshot live order into a new array.
	ObjectKeys(h Handle) (Handle, Result)
	ObjectValues(h Handle) (Handle, Result)

	// ObjectFromKeys builds an object mapping every key in the keys array
	// to the one shared value.
	ObjectFromKeys(keys Handle, value Handle) (Handle, Result)

	ObjectPop(h Handle, key string) (Handle, Result)

	// ObjectPopItem removes and returns the most recently inserted pair.
	// Empty objects report ResultKeyNotFound.
	ObjectPopItem(h Handle) (Handle, Handle, Result)

	ObjectClear(h Handle) Result
	ObjectUpdate(h Handle, other Handle) Result

	// Pair cursor in insertion order.
	ObjectIterBegin(h Handle) (Handle, Result)
	ObjectIterNext(it Handle) Result
	ObjectIterDeref(it Handle) (Handle, Handle, Result)
	ObjectIterRelease(it Handle)
}

// Engine is the full call contract a value engine must expose. The wrapping
// layer issues every operation through this interface and never inspects
// engine state beyond result codes and declared out-values.
type Engine interface {
	Core
	Loader
	Strings
	Arrays
	Objects
}
