package engine

import (
	"testing"
)

func setInt(t *testing.T, e *Local, obj Handle, key string, v int64) {
	t.Helper()
	el := mustHandle(t)(e.CreateInt(v))
	if res := e.ObjectSet(obj, key, el); res != ResultOK {
		t.Fatalf("set %q: %v", key, res)
	}
	e.Release(el)
}

func TestObjectSetGetRemove(t *testing.T) {
	e := NewLocal()

	h := mustHandle(t)(e.CreateObject())
	setInt(t, e, h, "a", 1)
	setInt(t, e, h, "b", 2)

	if size, _ := e.ObjectSize(h); size != 2 {
		t.Errorf("size = %d", size)
	}

	v := mustHandle(t)(e.ObjectGet(h, "a"))
	if got, _ := e.GetInt(v); got != 1 {
		t.Errorf("get a = %d", got)
	}
	if _, res := e.ObjectGet(h, "zzz"); res != ResultKeyNotFound {
		t.Errorf("get missing = %v", res)
	}

	if ok, _ := e.ObjectContains(h, "b"); !ok {
		t.Error("contains b")
	}
	if res := e.ObjectRemove(h, "b"); res != ResultOK {
		t.Fatalf("remove: %v", res)
	}
	if ok, _ := e.ObjectContains(h, "b"); ok {
		t.Error("b still present")
	}
	if res := e.ObjectRemove(h, "b"); res != ResultKeyNotFound {
		t.Errorf("remove missing = %v", res)
	}
}

func TestObjectInsertionOrder(t *testing.T) {
	e := NewLocal()

	h := mustHandle(t)(e.CreateObject())
	setInt(t, e, h, "c", 3)
	setInt(t, e, h, "a", 1)
	setInt(t, e, h, "b", 2)

	keys := mustHandle(t)(e.ObjectKeys(h))
	if got := strsOf(t, e, keys); !eqStrs(got, []string{"c", "a", "b"}) {
		t.Errorf("keys = %q", got)
	}

	// Overwriting keeps the original position.
	setInt(t, e, h, "c", 30)
	keys = mustHandle(t)(e.ObjectKeys(h))
	if got := strsOf(t, e, keys); !eqStrs(got, []string{"c", "a", "b"}) {
		t.Errorf("keys after overwrite = %q", got)
	}
	v := mustHandle(t)(e.ObjectGet(h, "c"))
	if got, _ := e.GetInt(v); got != 30 {
		t.Errorf("overwritten value = %d", got)
	}

	// Remove then reinsert moves the key to the end.
	if res := e.ObjectRemove(h, "c"); res != ResultOK {
		t.Fatalf("remove: %v", res)
	}
	setInt(t, e, h, "c", 3)
	keys = mustHandle(t)(e.ObjectKeys(h))
	if got := strsOf(t, e, keys); !eqStrs(got, []string{"a", "b", "c"}) {
		t.Errorf("keys after reinsert = %q", got)
	}
}

func TestObjectValuesSnapshot(t *testing.T) {
	e := NewLocal()

	h := mustHandle(t)(e.CreateObject())
	setInt(t, e, h, "x", 1)
	setInt(t, e, h, "y", 2)

	vals := mustHandle(t)(e.ObjectValues(h))
	if got := intsOf(t, e, vals); !eqInts(got, []int64{1, 2}) {
		t.Errorf("values = %v", got)
	}
}

func TestObjectPop(t *testing.T) {
	e := NewLocal()

	h := mustHandle(t)(e.CreateObject())
	setInt(t, e, h, "a", 1)

	v, res := e.ObjectPop(h, "a")
	if res != ResultOK {
		t.Fatalf("pop: %v", res)
	}
	if got, _ := e.GetInt(v); got != 1 {
		t.Errorf("popped = %d", got)
	}
	if size, _ := e.ObjectSize(h); size != 0 {
		t.Errorf("size after pop = %d", size)
	}
	if _, res := e.ObjectPop(h, "a"); res != ResultKeyNotFound {
		t.Errorf("pop missing = %v", res)
	}
}

func TestObjectPopItemLIFO(t *testing.T) {
	e := NewLocal()

	h := mustHandle(t)(e.CreateObject())
	setInt(t, e, h, "first", 1)
	setInt(t, e, h, "second", 2)

	k, v, res := e.ObjectPopItem(h)
	if res != ResultOK {
		t.Fatalf("popitem: %v", res)
	}
	if key, _ := e.GetString(k); key != "second" {
		t.Errorf("popped key = %q", key)
	}
	if val, _ := e.GetInt(v); val != 2 {
		t.Errorf("popped value = %d", val)
	}

	if _, _, res := e.ObjectPopItem(h); res != ResultOK {
		t.Fatalf("second popitem: %v", res)
	}
	if _, _, res := e.ObjectPopItem(h); res != ResultKeyNotFound {
		t.Errorf("popitem empty = %v", res)
	}
}

func TestObjectUpdate(t *testing.T) {
	e := NewLocal()

	h := mustHandle(t)(e.CreateObject())
	setInt(t, e, h, "a", 1)
	setInt(t, e, h, "b", 2)

	other := mustHandle(t)(e.CreateObject())
	setInt(t, e, other, "b", 20)
	setInt(t, e, other, "c", 30)

	if res := e.ObjectUpdate(h, other); res != ResultOK {
		t.Fatalf("update: %v", res)
	}
	keys := mustHandle(t)(e.ObjectKeys(h))
	if got := strsOf(t, e, keys); !eqStrs(got, []string{"a", "b", "c"}) {
		t.Errorf("keys after update = %q", got)
	}
	v := mustHandle(t)(e.ObjectGet(h, "b"))
	if got, _ := e.GetInt(v); got != 20 {
		t.Errorf("b after update = %d", got)
	}

	// Self update is a no-op.
	if res := e.ObjectUpdate(h, h); res != ResultOK {
		t.Fatalf("self update: %v", res)
	}
	if size, _ := e.ObjectSize(h); size != 3 {
		t.Errorf("size after self update = %d", size)
	}
}

func TestObjectFromKeys(t *testing.T) {
	e := NewLocal()

	keys := mustHandle(t)(e.CreateArray())
	for _, k := range []string{"x", "y", "x"} {
		el := mustHandle(t)(e.CreateString(k))
		if res := e.ArrayPushBack(keys, el); res != ResultOK {
			t.Fatalf("push: %v", res)
		}
		e.Release(el)
	}
	zero := mustHandle(t)(e.CreateInt(0))

	obj, res := e.ObjectFromKeys(keys, zero)
	if res != ResultOK {
		t.Fatalf("fromkeys: %v", res)
	}
	if size, _ := e.ObjectSize(obj); size != 2 {
		t.Errorf("size = %d", size)
	}
	got := mustHandle(t)(e.ObjectKeys(obj))
	if ks := strsOf(t, e, got); !eqStrs(ks, []string{"x", "y"}) {
		t.Errorf("keys = %q", ks)
	}

	// Non-string elements are rejected.
	bad := intArray(t, e, 1)
	if _, res := e.ObjectFromKeys(bad, zero); res != ResultTypeError {
		t.Errorf("fromkeys non-string = %v", res)
	}
}

func TestObjectCursor(t *testing.T) {
	e := NewLocal()

	h := mustHandle(t)(e.CreateObject())
	setInt(t, e, h, "a", 1)
	setInt(t, e, h, "b", 2)

	it := mustHandle(t)(e.ObjectIterBegin(h))
	var keys []string
	var vals []int64
	for {
		k, v, res := e.ObjectIterDeref(it)
		if res == ResultIteratorEnd {
			break
		}
		if res != ResultOK {
			t.Fatalf("deref: %v", res)
		}
		key, _ := e.GetString(k)
		val, _ := e.GetInt(v)
		keys = append(keys, key)
		vals = append(vals, val)
		if res := e.ObjectIterNext(it); res == ResultIteratorEnd {
			break
		}
	}
	if !eqStrs(keys, []string{"a", "b"}) || !eqInts(vals, []int64{1, 2}) {
		t.Errorf("cursor pairs = %q %v", keys, vals)
	}
	e.ObjectIterRelease(it)
}

func TestObjectValueAliasing(t *testing.T) {
	e := NewLocal()

	h := mustHandle(t)(e.CreateObject())
	inner := mustHandle(t)(e.CreateArray())
	if res := e.ObjectSet(h, "list", inner); res != ResultOK {
		t.Fatalf("set: %v", res)
	}

	el := mustHandle(t)(e.CreateInt(1))
	if res := e.ArrayPushBack(inner, el); res != ResultOK {
		t.Fatalf("push: %v", res)
	}

	got := mustHandle(t)(e.ObjectGet(h, "list"))
	if size, _ := e.ArraySize(got); size != 1 {
		t.Errorf("aliased size = %d", size)
	}
}
