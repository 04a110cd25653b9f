package engine

func (e *Local) arr(h Handle) (*node, Result) {
	return e.typed(h, TagArray)
}

func (e *Local) ArraySize(h Handle) (uint32, Result) {
	n, res := e.arr(h)
	if res != ResultOK {
		return 0, res
	}
	return uint32(len(n.arr)), ResultOK
}

// ArrayGet returns a fresh handle to the stored element. The element itself
// is shared, not copied.
func (e *Local) ArrayGet(h Handle, idx uint32) (Handle, Result) {
	n, res := e.arr(h)
	if res != ResultOK {
		return 0, res
	}
	if int(idx) >= len(n.arr) {
		return 0, ResultIndexOutOfBounds
	}
	return e.put(n.arr[idx])
}

func (e *Local) ArraySet(h Handle, idx uint32, v Handle) Result {
	n, res := e.arr(h)
	if res != ResultOK {
		return res
	}
	elem, res := e.ref(v)
	if res != ResultOK {
		return res
	}
	if int(idx) >= len(n.arr) {
		return ResultIndexOutOfBounds
	}
	n.arr[idx] = elem
	return ResultOK
}

func (e *Local) ArraySlice(h Handle, start, stop, step int64) (Handle, Result) {
	n, res := e.arr(h)
	if res != ResultOK {
		return 0, res
	}
	if step == 0 {
		return 0, ResultInvalidArgument
	}
	out := arrayNode()
	size := int64(len(n.arr))
	if step > 0 {
		for i := start; i < stop && i < size; i += step {
			if i >= 0 {
				out.arr = append(out.arr, n.arr[i])
			}
		}
	} else {
		for i := start; i > stop; i += step {
			if i >= 0 && i < size {
				out.arr = append(out.arr, n.arr[i])
			}
		}
	}
	return e.put(out)
}

// ArraySetSlice replaces the selected positions with the elements of v. A
// unit step accepts any replacement length; extended steps require the
// lengths to match exactly.
func (e *Local) ArraySetSlice(h Handle, start, stop, step int64, v Handle) Result {
	n, res := e.arr(h)
	if res != ResultOK {
		return res
	}
	src, res := e.typed(v, TagArray)
	if res != ResultOK {
		return res
	}
	if step == 0 {
		return ResultInvalidArgument
	}
	// Snapshot so assigning an array into a slice of itself is safe.
	repl := make([]*node, len(src.arr))
	copy(repl, src.arr)

	size := int64(len(n.arr))
	if step == 1 {
		if start < 0 {
			start = 0
		}
		if start > size {
			start = size
		}
		if stop < start {
			stop = start
		}
		if stop > size {
			stop = size
		}
		out := make([]*node, 0, size-(stop-start)+int64(len(repl)))
		out = append(out, n.arr[:start]...)
		out = append(out, repl...)
		out = append(out, n.arr[stop:]...)
		n.arr = out
		return ResultOK
	}

	var idx []int64
	if step > 0 {
		for i := start; i < stop && i < size; i += step {
			if i >= 0 {
				idx = append(idx, i)
			}
		}
	} else {
		for i := start; i > stop; i += step {
			if i >= 0 && i < size {
				idx = append(idx, i)
			}
		}
	}
	if len(idx) != len(repl) {
		return ResultInvalidArgument
	}
	for j, i := range idx {
		n.arr[i] = repl[j]
	}
	return ResultOK
}

func (e *Local) ArrayRemoveIndex(h Handle, idx uint32) Result {
	n, res := e.arr(h)
	if res != ResultOK {
		return res
	}
	if int(idx) >= len(n.arr) {
		return ResultIndexOutOfBounds
	}
	n.arr = append(n.arr[:idx], n.arr[idx+1:]...)
	return ResultOK
}

func (e *Local) ArrayClear(h Handle) Result {
	n, res := e.arr(h)
	if res != ResultOK {
		return res
	}
	n.arr = n.arr[:0]
	return ResultOK
}

// ArrayInsert places v at idx, shifting the tail. idx may equal the current
// size; anything larger is out of bounds.
func (e *Local) ArrayInsert(h Handle, idx uint32, v Handle) Result {
	n, res := e.arr(h)
	if res != ResultOK {
		return res
	}
	elem, res := e.ref(v)
	if res != ResultOK {
		return res
	}
	if int(idx) > len(n.arr) {
		return ResultIndexOutOfBounds
	}
	n.arr = append(n.arr, nil)
	copy(n.arr[idx+1:], n.arr[idx:])
	n.arr[idx] = elem
	return ResultOK
}

// ArrayRepeat replaces the contents with count concatenated copies, in
// place. Zero or negative counts empty the array.
func (e *Local) ArrayRepeat(h Handle, count int64) Result {
	n, res := e.arr(h)
	if res != ResultOK {
		return res
	}
	if count <= 0 {
		n.arr = n.arr[:0]
		return ResultOK
	}
	if int64(len(n.arr))*count > repeatLimit {
		return ResultNotEnoughMemory
	}
	base := make([]*node, len(n.arr))
	copy(base, n.arr)
	out := make([]*node, 0, int64(len(base))*count)
	for i := int64(0); i < count; i++ {
		out = append(out, base...)
	}
	n.arr = out
	return ResultOK
}

func (e *Local) ArrayCount(h Handle, v Handle) (uint32, Result) {
	n, res := e.arr(h)
	if res != ResultOK {
		return 0, res
	}
	target, res := e.ref(v)
	if res != ResultOK {
		return 0, res
	}
	var count uint32
	for _, el := range n.arr {
		if nodesEqual(el, target) {
			count++
		}
	}
	return count, ResultOK
}

// ArrayExtend appends every element of other. Extending an array with
// itself appends a snapshot of its prior contents.
func (e *Local) ArrayExtend(h Handle, other Handle) Result {
	n, res := e.arr(h)
	if res != ResultOK {
		return res
	}
	src, res := e.typed(other, TagArray)
	if res != ResultOK {
		return res
	}
	add := make([]*node, len(src.arr))
	copy(add, src.arr)
	n.arr = append(n.arr, add...)
	return ResultOK
}

// ArrayFindFirst scans [start, stop) for the first element equal to v and
// reports its position. Absence is ResultKeyNotFound.
func (e *Local) ArrayFindFirst(h Handle, v Handle, start, stop uint32) (uint32, Result) {
	n, res := e.arr(h)
	if res != ResultOK {
		return 0, res
	}
	target, res := e.ref(v)
	if res != ResultOK {
		return 0, res
	}
	if int(stop) > len(n.arr) {
		stop = uint32(len(n.arr))
	}
	for i := start; i < stop; i++ {
		if nodesEqual(n.arr[i], target) {
			return i, ResultOK
		}
	}
	return 0, ResultKeyNotFound
}

func (e *Local) ArrayPushBack(h Handle, v Handle) Result {
	n, res := e.arr(h)
	if res != ResultOK {
		return res
	}
	elem, res := e.ref(v)
	if res != ResultOK {
		return res
	}
	n.arr = append(n.arr, elem)
	return ResultOK
}

func (e *Local) ArrayPop(h Handle, idx uint32) (Handle, Result) {
	n, res := e.arr(h)
	if res != ResultOK {
		return 0, res
	}
	if int(idx) >= len(n.arr) {
		return 0, ResultIndexOutOfBounds
	}
	popped := n.arr[idx]
	n.arr = append(n.arr[:idx], n.arr[idx+1:]...)
	return e.put(popped)
}

func (e *Local) ArrayRemoveValue(h Handle, v Handle) Result {
	n, res := e.arr(h)
	if res != ResultOK {
		return res
	}
	target, res := e.ref(v)
	if res != ResultOK {
		return res
	}
	for i, el := range n.arr {
		if nodesEqual(el, target) {
			n.arr = append(n.arr[:i], n.arr[i+1:]...)
			return ResultOK
		}
	}
	return ResultKeyNotFound
}

func (e *Local) ArrayReverse(h Handle) Result {
	n, res := e.arr(h)
	if res != ResultOK {
		return res
	}
	for i, j := 0, len(n.arr)-1; i < j; i, j = i+1, j-1 {
		n.arr[i], n.arr[j] = n.arr[j], n.arr[i]
	}
	return ResultOK
}

// Array position cursors.

type arrayCursor struct {
	src *node
	pos int
}

func (e *Local) ArrayIterBegin(h Handle) (Handle, Result) {
	n, res := e.arr(h)
	if res != ResultOK {
		return 0, res
	}
	return e.tab.insert(slotArrayIter, &arrayCursor{src: n}), ResultOK
}

func (e *Local) ArrayIterRBegin(h Handle) (Handle, Result) {
	n, res := e.arr(h)
	if res != ResultOK {
		return 0, res
	}
	return e.tab.insert(slotArrayIter, &arrayCursor{src: n, pos: len(n.arr) - 1}), ResultOK
}

func (e *Local) arrayCur(it Handle) (*arrayCursor, Result) {
	v, ok := e.tab.get(it, slotArrayIter)
	if !ok {
		return nil, ResultInvalidArgument
	}
	return v.(*arrayCursor), ResultOK
}

func (e *Local) ArrayIterNext(it Handle) Result {
	c, res := e.arrayCur(it)
	if res != ResultOK {
		return res
	}
	c.pos++
	if c.pos >= len(c.src.arr) {
		return ResultIteratorEnd
	}
	return ResultOK
}

func (e *Local) ArrayIterPrev(it Handle) Result {
	c, res := e.arrayCur(it)
	if res != ResultOK {
		return res
	}
	c.pos--
	if c.pos < 0 {
		return ResultIteratorEnd
	}
	return ResultOK
}

func (e *Local) ArrayIterDeref(it Handle) (Handle, Result) {
	c, res := e.arrayCur(it)
	if res != ResultOK {
		return 0, res
	}
	if c.pos < 0 || c.pos >= len(c.src.arr) {
		return 0, ResultIteratorEnd
	}
	return e.put(c.src.arr[c.pos])
}

func (e *Local) ArrayIterRelease(it Handle) {
	e.tab.drop(it)
}
