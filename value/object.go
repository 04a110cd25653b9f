package value

import (
	"sort"

	"github.com/cycraft-corp/hakka-json/engine"
	"github.com/cycraft-corp/hakka-json/errors"
)

// Object is a mutable, insertion-ordered, string-keyed mapping with unique
// keys. Reads alias the stored values. Objects are not hashable.
type Object struct {
	owner
}

// Pair is one key/value entry for object construction and bulk update.
// The key is typed loosely so that a non-string key can be rejected with a
// type error instead of being coerced.
type Pair struct {
	Key   any
	Value any
}

// NewObject creates an empty object.
func (rt *Runtime) NewObject() (*Object, error) {
	h, res := rt.eng.CreateObject()
	if res != engine.ResultOK {
		return nil, engErr(errors.PhaseConvert, res, "object creation failed")
	}
	return &Object{owner{rt: rt, h: h}}, nil
}

// NewObjectFromPairs creates an object from pairs in order, last writer
// winning on duplicate keys. A non-string key fails with a type error
// before any engine call.
func (rt *Runtime) NewObjectFromPairs(pairs []Pair) (*Object, error) {
	for _, p := range pairs {
		if _, ok := p.Key.(string); !ok {
			return nil, errors.New(errors.PhaseConvert, errors.KindType).
				Value(p.Key).
				Detail("object keys must be strings, got %T", p.Key).
				Build()
		}
	}
	obj, err := rt.NewObject()
	if err != nil {
		return nil, err
	}
	for _, p := range pairs {
		v := rt.FromNative(p.Value)
		err := obj.Set(p.Key.(string), v)
		releaseIfOwned(v, p.Value)
		if err != nil {
			obj.Release()
			return nil, err
		}
	}
	return obj, nil
}

// NewObjectFromKeys creates an object mapping every key in keys to the one
// shared value. Every element of keys must be a String.
func (rt *Runtime) NewObjectFromKeys(keys *Array, value Value) (*Object, error) {
	kh, err := keys.handle()
	if err != nil {
		return nil, err
	}
	vh, err := value.ref().handle()
	if err != nil {
		return nil, err
	}
	h, res := rt.eng.ObjectFromKeys(kh, vh)
	if res != engine.ResultOK {
		return nil, engErr(errors.PhaseConvert, res, "fromkeys failed")
	}
	return &Object{owner{rt: rt, h: h}}, nil
}

func (*Object) Kind() Kind { return KindObject }

// Len returns the pair count.
func (o *Object) Len() (int, error) {
	h, err := o.handle()
	if err != nil {
		return 0, err
	}
	n, res := o.rt.eng.ObjectSize(h)
	if res != engine.ResultOK {
		return 0, engErr(errors.PhaseAccess, res, "size query failed")
	}
	return int(n), nil
}

func (o *Object) Truthy() bool {
	n, err := o.Len()
	return err == nil && n > 0
}

// Native converts the object to a host map, recursively. Insertion order
// is not representable in a host map and is dropped.
func (o *Object) Native() (any, error) {
	out := map[string]any{}
	it, err := o.Items()
	if err != nil {
		return nil, err
	}
	defer it.Close()
	for it.Next() {
		k, v, err := it.Entry()
		if err != nil {
			return nil, err
		}
		nat, err := v.Native()
		v.Release()
		if err != nil {
			return nil, err
		}
		out[k] = nat
	}
	if err := it.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Copy returns a new object with the same pairs in the same order.
func (o *Object) Copy() (Value, error) {
	out, err := o.rt.NewObject()
	if err != nil {
		return nil, err
	}
	if err := out.Update(o); err != nil {
		out.Release()
		return nil, err
	}
	return out, nil
}

// Get returns the value bound to key, failing with a key error when
// absent.
func (o *Object) Get(key string) (Value, error) {
	h, err := o.handle()
	if err != nil {
		return nil, err
	}
	v, res := o.rt.eng.ObjectGet(h, key)
	if res == engine.ResultKeyNotFound {
		return nil, errors.KeyError(errors.PhaseAccess, key)
	}
	if res != engine.ResultOK {
		return nil, engErr(errors.PhaseAccess, res, "value read failed")
	}
	return o.rt.adopt(v)
}

// GetDefault returns the value bound to key, or def when absent.
func (o *Object) GetDefault(key string, def Value) (Value, error) {
	v, err := o.Get(key)
	if errors.IsKind(err, errors.KindKey) {
		return def, nil
	}
	return v, err
}

// Set binds key to v. An existing key keeps its insertion position.
func (o *Object) Set(key string, v Value) error {
	h, err := o.handle()
	if err != nil {
		return err
	}
	vh, err := v.ref().handle()
	if err != nil {
		return err
	}
	if res := o.rt.eng.ObjectSet(h, key, vh); res != engine.ResultOK {
		return engErr(errors.PhaseMutate, res, "value write failed")
	}
	return nil
}

// Del removes key, failing with a key error when absent.
func (o *Object) Del(key string) error {
	h, err := o.handle()
	if err != nil {
		return err
	}
	res := o.rt.eng.ObjectRemove(h, key)
	if res == engine.ResultKeyNotFound {
		return errors.KeyError(errors.PhaseMutate, key)
	}
	if res != engine.ResultOK {
		return engErr(errors.PhaseMutate, res, "key delete failed")
	}
	return nil
}

// Contains reports whether key is present.
func (o *Object) Contains(key string) (bool, error) {
	h, err := o.handle()
	if err != nil {
		return false, err
	}
	ok, res := o.rt.eng.ObjectContains(h, key)
	if res != engine.ResultOK {
		return false, engErr(errors.PhaseAccess, res, "containment check failed")
	}
	return ok, nil
}

// Pop removes key and returns its value, failing with a key error when
// absent.
func (o *Object) Pop(key string) (Value, error) {
	h, err := o.handle()
	if err != nil {
		return nil, err
	}
	v, res := o.rt.eng.ObjectPop(h, key)
	if res == engine.ResultKeyNotFound {
		return nil, errors.KeyError(errors.PhaseMutate, key)
	}
	if res != engine.ResultOK {
		return nil, engErr(errors.PhaseMutate, res, "pop failed")
	}
	return o.rt.adopt(v)
}

// PopDefault removes key and returns its value, or def when absent.
func (o *Object) PopDefault(key string, def Value) (Value, error) {
	v, err := o.Pop(key)
	if errors.IsKind(err, errors.KindKey) {
		return def, nil
	}
	return v, err
}

// SetDefault returns the value bound to key, binding and returning def
// when absent.
func (o *Object) SetDefault(key string, def Value) (Value, error) {
	v, err := o.Get(key)
	if err == nil {
		return v, nil
	}
	if !errors.IsKind(err, errors.KindKey) {
		return nil, err
	}
	if err := o.Set(key, def); err != nil {
		return nil, err
	}
	return o.Get(key)
}

// PopItem removes and returns the most recently inserted pair, failing
// with a key error on an empty object.
func (o *Object) PopItem() (string, Value, error) {
	h, err := o.handle()
	if err != nil {
		return "", nil, err
	}
	kh, vh, res := o.rt.eng.ObjectPopItem(h)
	if res == engine.ResultKeyNotFound {
		return "", nil, errors.New(errors.PhaseMutate, errors.KindKey).Detail("popitem on empty object").Build()
	}
	if res != engine.ResultOK {
		return "", nil, engErr(errors.PhaseMutate, res, "popitem failed")
	}
	key, kres := o.rt.eng.GetString(kh)
	o.rt.eng.Release(kh)
	if kres != engine.ResultOK {
		o.rt.eng.Release(vh)
		return "", nil, engErr(errors.PhaseMutate, kres, "popitem key read failed")
	}
	v, err := o.rt.adopt(vh)
	if err != nil {
		return "", nil, err
	}
	return key, v, nil
}

// Clear removes every pair.
func (o *Object) Clear() error {
	h, err := o.handle()
	if err != nil {
		return err
	}
	if res := o.rt.eng.ObjectClear(h); res != engine.ResultOK {
		return engErr(errors.PhaseMutate, res, "clear failed")
	}
	return nil
}

// Update merges the pairs of other, last writer winning on collision.
func (o *Object) Update(other *Object) error {
	h, err := o.handle()
	if err != nil {
		return err
	}
	oh, err := other.handle()
	if err != nil {
		return err
	}
	if res := o.rt.eng.ObjectUpdate(h, oh); res != engine.ResultOK {
		return engErr(errors.PhaseMutate, res, "update failed")
	}
	return nil
}

// UpdateNative merges a host map, keys in sorted order for determinism.
func (o *Object) UpdateNative(m map[string]any) error {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v := o.rt.FromNative(m[k])
		err := o.Set(k, v)
		releaseIfOwned(v, m[k])
		if err != nil {
			return err
		}
	}
	return nil
}

// UpdatePairs merges pairs in order, last writer winning. A non-string key
// fails with a type error before any entry is written.
func (o *Object) UpdatePairs(pairs []Pair) error {
	for _, p := range pairs {
		if _, ok := p.Key.(string); !ok {
			return errors.New(errors.PhaseMutate, errors.KindType).
				Value(p.Key).
				Detail("object keys must be strings, got %T", p.Key).
				Build()
		}
	}
	for _, p := range pairs {
		v := o.rt.FromNative(p.Value)
		err := o.Set(p.Key.(string), v)
		releaseIfOwned(v, p.Value)
		if err != nil {
			return err
		}
	}
	return nil
}

// Merge returns a new object holding the pairs of o overlaid with the
// pairs of other.
func (o *Object) Merge(other *Object) (*Object, error) {
	out, err := o.Copy()
	if err != nil {
		return nil, err
	}
	res := out.(*Object)
	if err := res.Update(other); err != nil {
		res.Release()
		return nil, err
	}
	return res, nil
}

// Keys returns a snapshot array of the keys in insertion order. Later
// mutations of the object do not show through; use Items for a live view.
func (o *Object) Keys() (*Array, error) {
	h, err := o.handle()
	if err != nil {
		return nil, err
	}
	out, res := o.rt.eng.ObjectKeys(h)
	if res != engine.ResultOK {
		return nil, engErr(errors.PhaseAccess, res, "keys snapshot failed")
	}
	return &Array{owner{rt: o.rt, h: out}}, nil
}

// Values returns a snapshot array of the values in insertion order. Later
// mutations of the object do not show through; use Items for a live view.
func (o *Object) Values() (*Array, error) {
	h, err := o.handle()
	if err != nil {
		return nil, err
	}
	out, res := o.rt.eng.ObjectValues(h)
	if res != engine.ResultOK {
		return nil, engErr(errors.PhaseAccess, res, "values snapshot failed")
	}
	return &Array{owner{rt: o.rt, h: out}}, nil
}

// Items returns a cursor over the pairs in insertion order.
func (o *Object) Items() (*ObjectIter, error) {
	h, err := o.handle()
	if err != nil {
		return nil, err
	}
	it, res := o.rt.eng.ObjectIterBegin(h)
	if res != engine.ResultOK {
		return nil, engErr(errors.PhaseIterate, res, "cursor creation failed")
	}
	return &ObjectIter{rt: o.rt, it: it}, nil
}
