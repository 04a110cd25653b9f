package value

import (
	"github.com/cycraft-corp/hakka-json/engine"
	"github.com/cycraft-corp/hakka-json/errors"
)

// DefaultMaxDepth bounds nesting for parse and dump when the caller does
// not choose a depth explicitly.
const DefaultMaxDepth uint32 = 512

// owner holds at most one engine handle and the exclusive right to release
// it. Zero handle means empty: released, moved away, or never filled.
type owner struct {
	rt *Runtime
	h  engine.Handle

	// pinned values are the interned singletons. They ignore Release and
	// refuse to be moved.
	pinned bool
}

func (o *owner) ref() *owner { return o }

func (o *owner) empty() bool { return o.h == 0 }

// handle returns the owned handle, failing when the wrapper is empty.
func (o *owner) handle() (engine.Handle, error) {
	if o.h == 0 {
		return 0, errEmpty(errors.PhaseAccess)
	}
	return o.h, nil
}

// take transfers the handle out, leaving the wrapper empty. Pinned values
// cannot be moved from.
func (o *owner) take() (engine.Handle, error) {
	if o.pinned {
		return 0, errors.TypeError(errors.PhaseAccess, "cannot move from an interned singleton")
	}
	if o.h == 0 {
		return 0, errEmpty(errors.PhaseAccess)
	}
	h := o.h
	o.h = 0
	return h, nil
}

// Release frees the handle. Releasing an empty wrapper or a pinned
// singleton is a no-op; a second release is a no-op.
func (o *owner) Release() {
	if o.pinned || o.h == 0 {
		return
	}
	o.rt.eng.Release(o.h)
	o.h = 0
}

// engineTag queries the engine for the tag behind the handle. An
// unrecognized tag is an internal error.
func (o *owner) engineTag() (engine.Tag, error) {
	h, err := o.handle()
	if err != nil {
		return 0, err
	}
	tag, res := o.rt.eng.Type(h)
	if res != engine.ResultOK {
		return 0, engErr(errors.PhaseAccess, res, "type query failed")
	}
	if _, ok := kindOf(tag); !ok {
		return 0, errors.Internal(errors.PhaseAccess, "engine returned an unrecognized tag")
	}
	return tag, nil
}

// Dumps serializes with the default depth bound.
func (o *owner) Dumps() (string, error) {
	return o.DumpsDepth(DefaultMaxDepth)
}

// DumpsDepth serializes in two phases: size the output, then fill it.
// Depth exhaustion maps to a recursion error; any other failure is
// internal.
func (o *owner) DumpsDepth(maxDepth uint32) (string, error) {
	h, err := o.handle()
	if err != nil {
		return "", err
	}
	size, res := o.rt.eng.DumpSize(h)
	if res != engine.ResultOK {
		return "", dumpErr(res, maxDepth)
	}
	buf := make([]byte, size)
	n, res := o.rt.eng.Dump(h, maxDepth, buf)
	if res != engine.ResultOK {
		return "", dumpErr(res, maxDepth)
	}
	return string(buf[:n]), nil
}

func dumpErr(res engine.Result, maxDepth uint32) error {
	if res == engine.ResultDepthExceeded {
		return errors.Recursion(errors.PhaseDump, int(maxDepth))
	}
	return errors.New(errors.PhaseDump, errors.KindInternal).Value(res).Detail("dump failed: %s", res).Build()
}

// Hash returns the engine content hash. Containers are not hashable.
func (o *owner) Hash() (uint64, error) {
	h, err := o.handle()
	if err != nil {
		return 0, err
	}
	v, res := o.rt.eng.Hash(h)
	if res != engine.ResultOK {
		return 0, engErr(errors.PhaseAccess, res, "hash failed")
	}
	return v, nil
}

// String renders the value for diagnostics. Failures render as a
// placeholder rather than propagating.
func (o *owner) String() string {
	s, err := o.Dumps()
	if err != nil {
		return "<unprintable value>"
	}
	return s
}

// Equal reports content equality through the engine. Cross-kind pairs with
// no common order are unequal, not an error.
func (o *owner) Equal(other Value) bool {
	cmp, err := o.compare(other)
	return err == nil && cmp == engine.CmpEqual
}

// The ordering operators use set semantics for pairs with no defined
// order: NaN operands and objects where neither contains the other answer
// false for every inequality, never an error.

func (o *owner) Less(other Value) (bool, error) {
	cmp, err := o.compare(other)
	return err == nil && cmp == engine.CmpLess, err
}

func (o *owner) LessEq(other Value) (bool, error) {
	cmp, err := o.compare(other)
	return err == nil && (cmp == engine.CmpLess || cmp == engine.CmpEqual), err
}

func (o *owner) Greater(other Value) (bool, error) {
	cmp, err := o.compare(other)
	return err == nil && cmp == engine.CmpGreater, err
}

func (o *owner) GreaterEq(other Value) (bool, error) {
	cmp, err := o.compare(other)
	return err == nil && (cmp == engine.CmpGreater || cmp == engine.CmpEqual), err
}

func (o *owner) compare(other Value) (int32, error) {
	if other == nil {
		return 0, errors.TypeError(errors.PhaseCompare, "cannot compare with nil")
	}
	a, err := o.handle()
	if err != nil {
		return 0, err
	}
	b, err := other.ref().handle()
	if err != nil {
		return 0, err
	}
	cmp, res := o.rt.eng.Compare(a, b)
	if res != engine.ResultOK {
		return 0, engErr(errors.PhaseCompare, res, "comparison failed")
	}
	return cmp, nil
}
