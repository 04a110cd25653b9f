package value

import (
	"math"
	"sort"
)

// FromNative wraps a host value: nil becomes Null, booleans the interned
// Bools, integers Int, floats Float, strings String, slices Array, and
// string-keyed maps Object, recursively. Anything else, including an
// unsigned value above the signed 64-bit range, becomes the Invalid
// sentinel. FromNative never fails.
func (rt *Runtime) FromNative(x any) Value {
	switch v := x.(type) {
	case nil:
		return rt.null
	case Value:
		return v
	case bool:
		return rt.Bool(v)
	case int:
		return rt.fromInt(int64(v))
	case int8:
		return rt.fromInt(int64(v))
	case int16:
		return rt.fromInt(int64(v))
	case int32:
		return rt.fromInt(int64(v))
	case int64:
		return rt.fromInt(v)
	case uint:
		return rt.fromUint(uint64(v))
	case uint8:
		return rt.fromInt(int64(v))
	case uint16:
		return rt.fromInt(int64(v))
	case uint32:
		return rt.fromInt(int64(v))
	case uint64:
		return rt.fromUint(v)
	case float32:
		return rt.fromFloat(float64(v))
	case float64:
		return rt.fromFloat(v)
	case string:
		return rt.fromString(v)
	case []any:
		return rt.fromSlice(v)
	case []Value:
		arr, err := rt.NewArray(v...)
		if err != nil {
			return rt.invalid
		}
		return arr
	case map[string]any:
		return rt.fromMap(v)
	}
	return rt.invalid
}

// releaseIfOwned releases el unless it is the caller's value passed
// through FromNative unchanged.
func releaseIfOwned(el Value, src any) {
	if v, ok := src.(Value); ok && v == el {
		return
	}
	el.Release()
}

func (rt *Runtime) fromInt(v int64) Value {
	i, err := rt.NewInt(v)
	if err != nil {
		return rt.invalid
	}
	return i
}

func (rt *Runtime) fromUint(v uint64) Value {
	if v > math.MaxInt64 {
		return rt.invalid
	}
	return rt.fromInt(int64(v))
}

func (rt *Runtime) fromFloat(v float64) Value {
	f, err := rt.NewFloat(v)
	if err != nil {
		return rt.invalid
	}
	return f
}

func (rt *Runtime) fromString(v string) Value {
	s, err := rt.NewString(v)
	if err != nil {
		return rt.invalid
	}
	return s
}

func (rt *Runtime) fromSlice(xs []any) Value {
	arr, err := rt.NewArray()
	if err != nil {
		return rt.invalid
	}
	for _, x := range xs {
		el := rt.FromNative(x)
		err := arr.Append(el)
		releaseIfOwned(el, x)
		if err != nil {
			arr.Release()
			return rt.invalid
		}
	}
	return arr
}

// fromMap wraps a host map with keys in sorted order, the only
// deterministic order a host map offers.
func (rt *Runtime) fromMap(m map[string]any) Value {
	obj, err := rt.NewObject()
	if err != nil {
		return rt.invalid
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		el := rt.FromNative(m[k])
		err := obj.Set(k, el)
		releaseIfOwned(el, m[k])
		if err != nil {
			obj.Release()
			return rt.invalid
		}
	}
	return obj
}
