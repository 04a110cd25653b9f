package value

import (
	"github.com/cycraft-corp/hakka-json/engine"
	"github.com/cycraft-corp/hakka-json/errors"
)

// Iterators own an engine-side cursor resource released exactly once: on
// exhaustion, on a failed step, or on Close, whichever comes first.
// Dereferencing an exhausted iterator fails with ErrStopIteration without
// touching the engine. Mutating a container under a live cursor has
// engine-defined behavior.

// ArrayIter walks an array's elements. The caller owns each value returned
// by Value and releases it independently.
type ArrayIter struct {
	rt      *Runtime
	it      engine.Handle
	cur     Value
	err     error
	started bool
	done    bool
	reverse bool
}

// Next advances to the next element, reporting whether one is available.
func (i *ArrayIter) Next() bool {
	if i.done || i.err != nil {
		return false
	}
	if i.started {
		var res engine.Result
		if i.reverse {
			res = i.rt.eng.ArrayIterPrev(i.it)
		} else {
			res = i.rt.eng.ArrayIterNext(i.it)
		}
		if res == engine.ResultIteratorEnd {
			i.finish()
			return false
		}
		if res != engine.ResultOK {
			i.fail(engErr(errors.PhaseIterate, res, "cursor step failed"))
			return false
		}
	}
	i.started = true

	h, res := i.rt.eng.ArrayIterDeref(i.it)
	if res == engine.ResultIteratorEnd {
		i.finish()
		return false
	}
	if res != engine.ResultOK {
		i.fail(engErr(errors.PhaseIterate, res, "cursor read failed"))
		return false
	}
	v, err := i.rt.adopt(h)
	if err != nil {
		i.fail(err)
		return false
	}
	i.cur = v
	return true
}

// Value returns the current element. After exhaustion it fails with
// ErrStopIteration without an engine call.
func (i *ArrayIter) Value() (Value, error) {
	if i.err != nil {
		return nil, i.err
	}
	if i.done || i.cur == nil {
		return nil, errors.ErrStopIteration
	}
	return i.cur, nil
}

// Err returns the first failure encountered while iterating, nil after a
// normal exhaustion.
func (i *ArrayIter) Err() error {
	return i.err
}

// Close releases the cursor. Idempotent.
func (i *ArrayIter) Close() error {
	i.finish()
	return nil
}

func (i *ArrayIter) finish() {
	if !i.done {
		i.rt.eng.ArrayIterRelease(i.it)
		i.done = true
	}
	i.cur = nil
}

func (i *ArrayIter) fail(err error) {
	i.err = err
	i.finish()
}

// ObjectIter walks an object's pairs in insertion order. The caller owns
// each value returned by Entry and releases it independently.
type ObjectIter struct {
	rt      *Runtime
	it      engine.Handle
	curKey  string
	curVal  Value
	err     error
	started bool
	done    bool
}

// Next advances to the next pair, reporting whether one is available.
func (i *ObjectIter) Next() bool {
	if i.done || i.err != nil {
		return false
	}
	if i.started {
		res := i.rt.eng.ObjectIterNext(i.it)
		if res == engine.ResultIteratorEnd {
			i.finish()
			return false
		}
		if res != engine.ResultOK {
			i.fail(engErr(errors.PhaseIterate, res, "cursor step failed"))
			return false
		}
	}
	i.started = true

	kh, vh, res := i.rt.eng.ObjectIterDeref(i.it)
	if res == engine.ResultIteratorEnd {
		i.finish()
		return false
	}
	if res != engine.ResultOK {
		i.fail(engErr(errors.PhaseIterate, res, "cursor read failed"))
		return false
	}
	key, kres := i.rt.eng.GetString(kh)
	i.rt.eng.Release(kh)
	if kres != engine.ResultOK {
		i.rt.eng.Release(vh)
		i.fail(engErr(errors.PhaseIterate, kres, "cursor key read failed"))
		return false
	}
	v, err := i.rt.adopt(vh)
	if err != nil {
		i.fail(err)
		return false
	}
	i.curKey = key
	i.curVal = v
	return true
}

// Entry returns the current pair. After exhaustion it fails with
// ErrStopIteration without an engine call.
func (i *ObjectIter) Entry() (string, Value, error) {
	if i.err != nil {
		return "", nil, i.err
	}
	if i.done || i.curVal == nil {
		return "", nil, errors.ErrStopIteration
	}
	return i.curKey, i.curVal, nil
}

// Err returns the first failure encountered while iterating, nil after a
// normal exhaustion.
func (i *ObjectIter) Err() error {
	return i.err
}

// Close releases the cursor. Idempotent.
func (i *ObjectIter) Close() error {
	i.finish()
	return nil
}

func (i *ObjectIter) finish() {
	if !i.done {
		i.rt.eng.ObjectIterRelease(i.it)
		i.done = true
	}
	i.curKey = ""
	i.curVal = nil
}

func (i *ObjectIter) fail(err error) {
	i.err = err
	i.finish()
}

// StringIter walks a string's codepoints.
type StringIter struct {
	rt      *Runtime
	it      engine.Handle
	cur     rune
	err     error
	started bool
	done    bool
}

// Next advances to the next codepoint, reporting whether one is available.
func (i *StringIter) Next() bool {
	if i.done || i.err != nil {
		return false
	}
	if i.started {
		res := i.rt.eng.StringIterNext(i.it)
		if res == engine.ResultIteratorEnd {
			i.finish()
			return false
		}
		if res != engine.ResultOK {
			i.fail(engErr(errors.PhaseIterate, res, "cursor step failed"))
			return false
		}
	}
	i.started = true

	r, res := i.rt.eng.StringIterDeref(i.it)
	if res == engine.ResultIteratorEnd {
		i.finish()
		return false
	}
	if res != engine.ResultOK {
		i.fail(engErr(errors.PhaseIterate, res, "cursor read failed"))
		return false
	}
	i.cur = r
	return true
}

// Rune returns the current codepoint. After exhaustion it fails with
// ErrStopIteration without an engine call.
func (i *StringIter) Rune() (rune, error) {
	if i.err != nil {
		return 0, i.err
	}
	if i.done || !i.started {
		return 0, errors.ErrStopIteration
	}
	return i.cur, nil
}

// Err returns the first failure encountered while iterating, nil after a
// normal exhaustion.
func (i *StringIter) Err() error {
	return i.err
}

// Close releases the cursor. Idempotent.
func (i *StringIter) Close() error {
	i.finish()
	return nil
}

func (i *StringIter) finish() {
	if !i.done {
		i.rt.eng.StringIterRelease(i.it)
		i.done = true
	}
}

func (i *StringIter) fail(err error) {
	i.err = err
	i.finish()
}
