package engine

func (e *Local) obj(h Handle) (*node, Result) {
	return e.typed(h, TagObject)
}

func (e *Local) ObjectSize(h Handle) (uint32, Result) {
	n, res := e.obj(h)
	if res != ResultOK {
		return 0, res
	}
	return uint32(n.obj.len()), ResultOK
}

// ObjectGet returns a fresh handle to the stored value. The value itself is
// shared, not copied.
func (e *Local) ObjectGet(h Handle, key string) (Handle, Result) {
	n, res := e.obj(h)
	if res != ResultOK {
		return 0, res
	}
	v, ok := n.obj.get(key)
	if !ok {
		return 0, ResultKeyNotFound
	}
	return e.put(v)
}

// ObjectSet binds key to v. An existing key keeps its insertion position.
func (e *Local) ObjectSet(h Handle, key string, v Handle) Result {
	n, res := e.obj(h)
	if res != ResultOK {
		return res
	}
	val, res := e.ref(v)
	if res != ResultOK {
		return res
	}
	n.obj.set(key, val)
	return ResultOK
}

func (e *Local) ObjectRemove(h Handle, key string) Result {
	n, res := e.obj(h)
	if res != ResultOK {
		return res
	}
	if _, ok := n.obj.delete(key); !ok {
		return ResultKeyNotFound
	}
	return ResultOK
}

func (e *Local) ObjectContains(h Handle, key string) (bool, Result) {
	n, res := e.obj(h)
	if res != ResultOK {
		return false, res
	}
	_, ok := n.obj.get(key)
	return ok, ResultOK
}

func (e *Local) ObjectKeys(h Handle) (Handle, Result) {
	n, res := e.obj(h)
	if res != ResultOK {
		return 0, res
	}
	out := arrayNode()
	for _, ent := range n.obj.entries {
		out.arr = append(out.arr, stringNode(ent.key))
	}
	return e.put(out)
}

func (e *Local) ObjectValues(h Handle) (Handle, Result) {
	n, res := e.obj(h)
	if res != ResultOK {
		return 0, res
	}
	out := arrayNode()
	for _, ent := range n.obj.entries {
		out.arr = append(out.arr, ent.val)
	}
	return e.put(out)
}

// ObjectFromKeys builds a new object mapping each element of keys to the one
// shared value. Every element of keys must be a string.
func (e *Local) ObjectFromKeys(keys Handle, value Handle) (Handle, Result) {
	src, res := e.typed(keys, TagArray)
	if res != ResultOK {
		return 0, res
	}
	val, res := e.ref(value)
	if res != ResultOK {
		return 0, res
	}
	out := objectNode()
	for _, el := range src.arr {
		if el.kind != TagString {
			return 0, ResultTypeError
		}
		out.obj.set(el.s, val)
	}
	return e.put(out)
}

func (e *Local) ObjectPop(h Handle, key string) (Handle, Result) {
	n, res := e.obj(h)
	if res != ResultOK {
		return 0, res
	}
	v, ok := n.obj.get(key)
	if !ok {
		return 0, ResultKeyNotFound
	}
	n.obj.delete(key)
	return e.put(v)
}

func (e *Local) ObjectPopItem(h Handle) (Handle, Handle, Result) {
	n, res := e.obj(h)
	if res != ResultOK {
		return 0, 0, res
	}
	key, val, ok := n.obj.popLast()
	if !ok {
		return 0, 0, ResultKeyNotFound
	}
	kh, res := e.put(stringNode(key))
	if res != ResultOK {
		return 0, 0, res
	}
	vh, res := e.put(val)
	if res != ResultOK {
		e.Release(kh)
		return 0, 0, res
	}
	return kh, vh, ResultOK
}

func (e *Local) ObjectClear(h Handle) Result {
	n, res := e.obj(h)
	if res != ResultOK {
		return res
	}
	n.obj.clear()
	return ResultOK
}

// ObjectUpdate merges the pairs of other, overwriting on key collision.
func (e *Local) ObjectUpdate(h Handle, other Handle) Result {
	n, res := e.obj(h)
	if res != ResultOK {
		return res
	}
	src, res := e.typed(other, TagObject)
	if res != ResultOK {
		return res
	}
	if n == src {
		return ResultOK
	}
	for _, ent := range src.obj.entries {
		n.obj.set(ent.key, ent.val)
	}
	return ResultOK
}

// Object pair cursor in insertion order.

type objectCursor struct {
	src *node
	pos int
}

func (e *Local) ObjectIterBegin(h Handle) (Handle, Result) {
	n, res := e.obj(h)
	if res != ResultOK {
		return 0, res
	}
	return e.tab.insert(slotObjectIter, &objectCursor{src: n}), ResultOK
}

func (e *Local) objectCur(it Handle) (*objectCursor, Result) {
	v, ok := e.tab.get(it, slotObjectIter)
	if !ok {
		return nil, ResultInvalidArgument
	}
	return v.(*objectCursor), ResultOK
}

func (e *Local) ObjectIterNext(it Handle) Result {
	c, res := e.objectCur(it)
	if res != ResultOK {
		return res
	}
	c.pos++
	if c.pos >= c.src.obj.len() {
		return ResultIteratorEnd
	}
	return ResultOK
}

func (e *Local) ObjectIterDeref(it Handle) (Handle, Handle, Result) {
	c, res := e.objectCur(it)
	if res != ResultOK {
		return 0, 0, res
	}
	if c.pos < 0 || c.pos >= c.src.obj.len() {
		return 0, 0, ResultIteratorEnd
	}
	ent := c.src.obj.entries[c.pos]
	kh, res := e.put(stringNode(ent.key))
	if res != ResultOK {
		return 0, 0, res
	}
	vh, res := e.put(ent.val)
	if res != ResultOK {
		e.Release(kh)
		return 0, 0, res
	}
	return kh, vh, ResultOK
}

func (e *Local) ObjectIterRelease(it Handle) {
	e.tab.drop(it)
}
