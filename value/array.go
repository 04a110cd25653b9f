package value

import (
	"sort"

	"github.com/cycraft-corp/hakka-json/engine"
	"github.com/cycraft-corp/hakka-json/errors"
)

// Array is a mutable, ordered, duplicate-permitting sequence. Reads alias
// the stored elements: mutating a container obtained from Get is visible
// through the parent.
type Array struct {
	owner
}

// NewArray creates an array holding the given elements in order.
func (rt *Runtime) NewArray(elems ...Value) (*Array, error) {
	h, res := rt.eng.CreateArray()
	if res != engine.ResultOK {
		return nil, engErr(errors.PhaseConvert, res, "array creation failed")
	}
	a := &Array{owner{rt: rt, h: h}}
	for _, el := range elems {
		if err := a.Append(el); err != nil {
			a.Release()
			return nil, err
		}
	}
	return a, nil
}

func (*Array) Kind() Kind { return KindArray }

// Len returns the element count.
func (a *Array) Len() (int, error) {
	h, err := a.handle()
	if err != nil {
		return 0, err
	}
	n, res := a.rt.eng.ArraySize(h)
	if res != engine.ResultOK {
		return 0, engErr(errors.PhaseAccess, res, "size query failed")
	}
	return int(n), nil
}

func (a *Array) Truthy() bool {
	n, err := a.Len()
	return err == nil && n > 0
}

// Native converts the array to a host slice, recursively.
func (a *Array) Native() (any, error) {
	n, err := a.Len()
	if err != nil {
		return nil, err
	}
	out := make([]any, 0, n)
	for i := 0; i < n; i++ {
		el, err := a.Get(i)
		if err != nil {
			return nil, err
		}
		nat, err := el.Native()
		el.Release()
		if err != nil {
			return nil, err
		}
		out = append(out, nat)
	}
	return out, nil
}

// Copy returns a new array with the same elements.
func (a *Array) Copy() (Value, error) {
	out, err := a.rt.NewArray()
	if err != nil {
		return nil, err
	}
	if err := out.Extend(a); err != nil {
		out.Release()
		return nil, err
	}
	return out, nil
}

// Get returns the element at position i. Negative positions count from the
// end; out-of-range fails with an index error.
func (a *Array) Get(i int) (Value, error) {
	n, err := a.Len()
	if err != nil {
		return nil, err
	}
	idx, err := normIndex(i, n)
	if err != nil {
		return nil, err
	}
	h, err := a.handle()
	if err != nil {
		return nil, err
	}
	el, res := a.rt.eng.ArrayGet(h, idx)
	if res != engine.ResultOK {
		return nil, engErr(errors.PhaseAccess, res, "element read failed")
	}
	return a.rt.adopt(el)
}

// Set replaces the element at position i.
func (a *Array) Set(i int, v Value) error {
	n, err := a.Len()
	if err != nil {
		return err
	}
	idx, err := normIndex(i, n)
	if err != nil {
		return err
	}
	h, err := a.handle()
	if err != nil {
		return err
	}
	vh, err := v.ref().handle()
	if err != nil {
		return err
	}
	if res := a.rt.eng.ArraySet(h, idx, vh); res != engine.ResultOK {
		return engErr(errors.PhaseMutate, res, "element write failed")
	}
	return nil
}

// Slice returns a new array holding the elements addressed by
// (start, stop, step).
func (a *Array) Slice(start, stop, step int) (*Array, error) {
	n, err := a.Len()
	if err != nil {
		return nil, err
	}
	i, j, k, err := normSlice(start, stop, step, n)
	if err != nil {
		return nil, err
	}
	h, err := a.handle()
	if err != nil {
		return nil, err
	}
	out, res := a.rt.eng.ArraySlice(h, i, j, k)
	if res != engine.ResultOK {
		return nil, engErr(errors.PhaseAccess, res, "slice failed")
	}
	return &Array{owner{rt: a.rt, h: out}}, nil
}

// SetSlice replaces the addressed span with the elements of src. A unit
// step accepts any replacement length (an empty addressed span inserts, an
// empty replacement deletes); extended steps require matching lengths.
func (a *Array) SetSlice(start, stop, step int, src *Array) error {
	n, err := a.Len()
	if err != nil {
		return err
	}
	i, j, k, err := normSlice(start, stop, step, n)
	if err != nil {
		return err
	}
	if k != 1 {
		srcLen, err := src.Len()
		if err != nil {
			return err
		}
		if want := sliceLen(i, j, k); srcLen != want {
			return errors.New(errors.PhaseMutate, errors.KindValue).
				Detail("cannot assign %d elements to extended slice of length %d", srcLen, want).
				Build()
		}
	}
	h, err := a.handle()
	if err != nil {
		return err
	}
	sh, err := src.handle()
	if err != nil {
		return err
	}
	if res := a.rt.eng.ArraySetSlice(h, i, j, k, sh); res != engine.ResultOK {
		return engErr(errors.PhaseMutate, res, "slice write failed")
	}
	return nil
}

// SetSliceNative is SetSlice with a host slice as the replacement.
func (a *Array) SetSliceNative(start, stop, step int, src []any) error {
	repl, err := a.rt.NewArray()
	if err != nil {
		return err
	}
	defer repl.Release()
	for _, x := range src {
		el := a.rt.FromNative(x)
		err := repl.Append(el)
		releaseIfOwned(el, x)
		if err != nil {
			return err
		}
	}
	return a.SetSlice(start, stop, step, repl)
}

// DelSlice removes every element the slice addresses.
func (a *Array) DelSlice(start, stop, step int) error {
	n, err := a.Len()
	if err != nil {
		return err
	}
	i, j, k, err := normSlice(start, stop, step, n)
	if err != nil {
		return err
	}
	if k == 1 {
		empty, err := a.rt.NewArray()
		if err != nil {
			return err
		}
		defer empty.Release()
		return a.SetSlice(int(i), int(j), 1, empty)
	}

	// Extended steps remove the addressed positions highest first so the
	// remaining positions stay valid.
	var idx []uint32
	if k > 0 {
		for p := i; p < j; p += k {
			idx = append(idx, uint32(p))
		}
	} else {
		for p := i; p > j; p += k {
			idx = append(idx, uint32(p))
		}
	}
	sort.Slice(idx, func(x, y int) bool { return idx[x] > idx[y] })
	h, err := a.handle()
	if err != nil {
		return err
	}
	for _, p := range idx {
		if res := a.rt.eng.ArrayRemoveIndex(h, p); res != engine.ResultOK {
			return engErr(errors.PhaseMutate, res, "slice delete failed")
		}
	}
	return nil
}

// Del removes the element at position i.
func (a *Array) Del(i int) error {
	n, err := a.Len()
	if err != nil {
		return err
	}
	idx, err := normIndex(i, n)
	if err != nil {
		return err
	}
	h, err := a.handle()
	if err != nil {
		return err
	}
	if res := a.rt.eng.ArrayRemoveIndex(h, idx); res != engine.ResultOK {
		return engErr(errors.PhaseMutate, res, "element delete failed")
	}
	return nil
}

// Append adds v at the end.
func (a *Array) Append(v Value) error {
	h, err := a.handle()
	if err != nil {
		return err
	}
	vh, err := v.ref().handle()
	if err != nil {
		return err
	}
	if res := a.rt.eng.ArrayPushBack(h, vh); res != engine.ResultOK {
		return engErr(errors.PhaseMutate, res, "append failed")
	}
	return nil
}

// Extend appends every element of other.
func (a *Array) Extend(other *Array) error {
	h, err := a.handle()
	if err != nil {
		return err
	}
	oh, err := other.handle()
	if err != nil {
		return err
	}
	if res := a.rt.eng.ArrayExtend(h, oh); res != engine.ResultOK {
		return engErr(errors.PhaseMutate, res, "extend failed")
	}
	return nil
}

// Insert places v at position i, shifting the tail. The position may be
// negative but must land inside [0, length]; there is no clamping.
func (a *Array) Insert(i int, v Value) error {
	n, err := a.Len()
	if err != nil {
		return err
	}
	idx := i
	if idx < 0 {
		idx += n
	}
	if idx < 0 || idx > n {
		return errors.IndexError(errors.PhaseMutate, i, n)
	}
	h, err := a.handle()
	if err != nil {
		return err
	}
	vh, err := v.ref().handle()
	if err != nil {
		return err
	}
	if res := a.rt.eng.ArrayInsert(h, uint32(idx), vh); res != engine.ResultOK {
		return engErr(errors.PhaseMutate, res, "insert failed")
	}
	return nil
}

// Pop removes and returns the element at position i.
func (a *Array) Pop(i int) (Value, error) {
	n, err := a.Len()
	if err != nil {
		return nil, err
	}
	idx, err := normIndex(i, n)
	if err != nil {
		return nil, err
	}
	h, err := a.handle()
	if err != nil {
		return nil, err
	}
	el, res := a.rt.eng.ArrayPop(h, idx)
	if res != engine.ResultOK {
		return nil, engErr(errors.PhaseMutate, res, "pop failed")
	}
	return a.rt.adopt(el)
}

// PopLast removes and returns the final element.
func (a *Array) PopLast() (Value, error) {
	return a.Pop(-1)
}

// Remove deletes the first element equal to v, failing with a value error
// when no element matches.
func (a *Array) Remove(v Value) error {
	h, err := a.handle()
	if err != nil {
		return err
	}
	vh, err := v.ref().handle()
	if err != nil {
		return err
	}
	res := a.rt.eng.ArrayRemoveValue(h, vh)
	if res == engine.ResultKeyNotFound {
		return errors.ValueError(errors.PhaseMutate, "value not in array")
	}
	if res != engine.ResultOK {
		return engErr(errors.PhaseMutate, res, "remove failed")
	}
	return nil
}

// Clear removes every element.
func (a *Array) Clear() error {
	h, err := a.handle()
	if err != nil {
		return err
	}
	if res := a.rt.eng.ArrayClear(h); res != engine.ResultOK {
		return engErr(errors.PhaseMutate, res, "clear failed")
	}
	return nil
}

// Reverse flips the element order in place.
func (a *Array) Reverse() error {
	h, err := a.handle()
	if err != nil {
		return err
	}
	if res := a.rt.eng.ArrayReverse(h); res != engine.ResultOK {
		return engErr(errors.PhaseMutate, res, "reverse failed")
	}
	return nil
}

// Count returns the number of elements equal to v.
func (a *Array) Count(v Value) (int, error) {
	h, err := a.handle()
	if err != nil {
		return 0, err
	}
	vh, err := v.ref().handle()
	if err != nil {
		return 0, err
	}
	n, res := a.rt.eng.ArrayCount(h, vh)
	if res != engine.ResultOK {
		return 0, engErr(errors.PhaseAccess, res, "count failed")
	}
	return int(n), nil
}

// Index returns the position of the first element equal to v, failing with
// a value error when no element matches.
func (a *Array) Index(v Value) (int, error) {
	n, err := a.Len()
	if err != nil {
		return 0, err
	}
	h, err := a.handle()
	if err != nil {
		return 0, err
	}
	vh, err := v.ref().handle()
	if err != nil {
		return 0, err
	}
	idx, res := a.rt.eng.ArrayFindFirst(h, vh, 0, uint32(n))
	if res == engine.ResultKeyNotFound {
		return 0, errors.ValueError(errors.PhaseAccess, "value not in array")
	}
	if res != engine.ResultOK {
		return 0, engErr(errors.PhaseAccess, res, "search failed")
	}
	return int(idx), nil
}

// Contains reports whether some element equals v.
func (a *Array) Contains(v Value) (bool, error) {
	n, err := a.Count(v)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Concat returns a new array holding the elements of a followed by the
// elements of other.
func (a *Array) Concat(other *Array) (*Array, error) {
	out, err := a.Copy()
	if err != nil {
		return nil, err
	}
	res := out.(*Array)
	if err := res.Extend(other); err != nil {
		res.Release()
		return nil, err
	}
	return res, nil
}

// Repeat returns a new array holding count concatenated copies.
func (a *Array) Repeat(count int) (*Array, error) {
	out, err := a.Copy()
	if err != nil {
		return nil, err
	}
	res := out.(*Array)
	if err := res.RepeatInPlace(count); err != nil {
		res.Release()
		return nil, err
	}
	return res, nil
}

// RepeatInPlace replaces the contents with count concatenated copies. A
// non-positive count empties the array.
func (a *Array) RepeatInPlace(count int) error {
	h, err := a.handle()
	if err != nil {
		return err
	}
	if res := a.rt.eng.ArrayRepeat(h, int64(count)); res != engine.ResultOK {
		return engErr(errors.PhaseMutate, res, "repeat failed")
	}
	return nil
}

// Sort orders the elements in place, stably. A nil key sorts by element;
// otherwise elements are ordered by key(element). A cross-kind comparison
// fails with a type error and leaves the array unchanged.
func (a *Array) Sort(key func(Value) (Value, error), reverse bool) error {
	n, err := a.Len()
	if err != nil {
		return err
	}
	elems := make([]Value, 0, n)
	keys := make([]Value, 0, n)
	release := func() {
		for i, el := range elems {
			if keys[i] != el {
				keys[i].Release()
			}
			el.Release()
		}
	}
	for i := 0; i < n; i++ {
		el, err := a.Get(i)
		if err != nil {
			release()
			return err
		}
		k := el
		if key != nil {
			k, err = key(el)
			if err != nil {
				el.Release()
				release()
				return err
			}
		}
		elems = append(elems, el)
		keys = append(keys, k)
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	var sortErr error
	sort.SliceStable(order, func(x, y int) bool {
		if sortErr != nil {
			return false
		}
		cmp, err := keys[order[x]].ref().compare(keys[order[y]])
		if err != nil {
			sortErr = err
			return false
		}
		if reverse {
			return cmp == engine.CmpGreater
		}
		return cmp == engine.CmpLess
	})
	if sortErr != nil {
		release()
		return sortErr
	}

	// All comparisons succeeded; now commit. Clear and refill so a failed
	// sort never leaves a half-ordered array behind.
	if err := a.Clear(); err != nil {
		release()
		return err
	}
	for _, i := range order {
		if err := a.Append(elems[i]); err != nil {
			release()
			return err
		}
	}
	release()
	return nil
}

// Iter returns a forward cursor over the elements.
func (a *Array) Iter() (*ArrayIter, error) {
	h, err := a.handle()
	if err != nil {
		return nil, err
	}
	it, res := a.rt.eng.ArrayIterBegin(h)
	if res != engine.ResultOK {
		return nil, engErr(errors.PhaseIterate, res, "cursor creation failed")
	}
	return &ArrayIter{rt: a.rt, it: it}, nil
}

// ReverseIter returns a cursor walking the elements last to first.
func (a *Array) ReverseIter() (*ArrayIter, error) {
	h, err := a.handle()
	if err != nil {
		return nil, err
	}
	it, res := a.rt.eng.ArrayIterRBegin(h)
	if res != engine.ResultOK {
		return nil, engErr(errors.PhaseIterate, res, "cursor creation failed")
	}
	return &ArrayIter{rt: a.rt, it: it, reverse: true}, nil
}
