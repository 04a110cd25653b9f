package engine

import (
	"math"
	"testing"
)

// mustHandle fails the test on a non-OK result. Curried so a (Handle,
// Result) return pair can be forwarded as the inner call's arguments.
func mustHandle(t *testing.T) func(Handle, Result) Handle {
	return func(h Handle, res Result) Handle {
		t.Helper()
		if res != ResultOK {
			t.Fatalf("unexpected result: %v", res)
		}
		return h
	}
}

func TestCreateAndType(t *testing.T) {
	e := NewLocal()

	cases := []struct {
		name string
		make func() (Handle, Result)
		want Tag
	}{
		{"null", e.CreateNull, TagNull},
		{"bool", func() (Handle, Result) { return e.CreateBool(true) }, TagBool},
		{"int", func() (Handle, Result) { return e.CreateInt(42) }, TagInt},
		{"float", func() (Handle, Result) { return e.CreateFloat(1.5) }, TagFloat},
		{"string", func() (Handle, Result) { return e.CreateString("hi") }, TagString},
		{"array", e.CreateArray, TagArray},
		{"object", e.CreateObject, TagObject},
		{"invalid", e.CreateInvalid, TagInvalid},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := mustHandle(t)(tc.make())
			tag, res := e.Type(h)
			if res != ResultOK {
				t.Fatalf("Type: %v", res)
			}
			if tag != tc.want {
				t.Errorf("tag = %v, want %v", tag, tc.want)
			}
			e.Release(h)
		})
	}

	if live := e.Live(); live != 0 {
		t.Errorf("live handles after release: %d", live)
	}
}

func TestScalarRoundTrip(t *testing.T) {
	e := NewLocal()

	hi := mustHandle(t)(e.CreateInt(-7))
	if v, res := e.GetInt(hi); res != ResultOK || v != -7 {
		t.Errorf("GetInt = %d, %v", v, res)
	}

	hf := mustHandle(t)(e.CreateFloat(2.25))
	if v, res := e.GetFloat(hf); res != ResultOK || v != 2.25 {
		t.Errorf("GetFloat = %g, %v", v, res)
	}

	hb := mustHandle(t)(e.CreateBool(true))
	if v, res := e.GetBool(hb); res != ResultOK || !v {
		t.Errorf("GetBool = %v, %v", v, res)
	}

	hs := mustHandle(t)(e.CreateString("héllo"))
	if v, res := e.GetString(hs); res != ResultOK || v != "héllo" {
		t.Errorf("GetString = %q, %v", v, res)
	}

	// Accessors demand the matching kind.
	if _, res := e.GetInt(hs); res != ResultTypeError {
		t.Errorf("GetInt on string = %v, want type_error", res)
	}
}

func TestReleaseIdempotent(t *testing.T) {
	e := NewLocal()

	h := mustHandle(t)(e.CreateInt(1))
	e.Release(h)
	e.Release(h)
	e.Release(0)
	e.Release(Handle(9999))

	if _, res := e.GetInt(h); res != ResultInvalidArgument {
		t.Errorf("GetInt after release = %v, want invalid_argument", res)
	}
}

func TestCompareNumericAcrossKinds(t *testing.T) {
	e := NewLocal()

	cases := []struct {
		name string
		a, b Handle
		want int32
	}{
		{"int-int", mustHandle(t)(e.CreateInt(1)), mustHandle(t)(e.CreateInt(2)), CmpLess},
		{"int-float", mustHandle(t)(e.CreateInt(2)), mustHandle(t)(e.CreateFloat(2.0)), CmpEqual},
		{"bool-int", mustHandle(t)(e.CreateBool(true)), mustHandle(t)(e.CreateInt(1)), CmpEqual},
		{"float-bool", mustHandle(t)(e.CreateFloat(0.5)), mustHandle(t)(e.CreateBool(false)), CmpGreater},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cmp, res := e.Compare(tc.a, tc.b)
			if res != ResultOK {
				t.Fatalf("Compare: %v", res)
			}
			if cmp != tc.want {
				t.Errorf("cmp = %d, want %d", cmp, tc.want)
			}
		})
	}
}

func TestCompareNaNUnordered(t *testing.T) {
	e := NewLocal()

	nan := mustHandle(t)(e.CreateFloat(math.NaN()))
	one := mustHandle(t)(e.CreateInt(1))

	cmp, res := e.Compare(nan, one)
	if res != ResultOK || cmp != CmpUnordered {
		t.Errorf("Compare(nan, 1) = %d, %v", cmp, res)
	}
	cmp, res = e.Compare(nan, nan)
	if res != ResultOK || cmp != CmpUnordered {
		t.Errorf("Compare(nan, nan) = %d, %v", cmp, res)
	}
}

func TestCompareCrossKindFails(t *testing.T) {
	e := NewLocal()

	s := mustHandle(t)(e.CreateString("1"))
	i := mustHandle(t)(e.CreateInt(1))

	if _, res := e.Compare(s, i); res != ResultTypeError {
		t.Errorf("Compare(string, int) = %v, want type_error", res)
	}
}

func TestCompareArraysLexicographic(t *testing.T) {
	e := NewLocal()

	build := func(vals ...int64) Handle {
		h := mustHandle(t)(e.CreateArray())
		for _, v := range vals {
			el := mustHandle(t)(e.CreateInt(v))
			if res := e.ArrayPushBack(h, el); res != ResultOK {
				t.Fatalf("push: %v", res)
			}
			e.Release(el)
		}
		return h
	}

	a := build(1, 2)
	b := build(1, 2, 3)
	c := build(1, 3)

	if cmp, _ := e.Compare(a, b); cmp != CmpLess {
		t.Errorf("[1,2] vs [1,2,3] = %d", cmp)
	}
	if cmp, _ := e.Compare(c, b); cmp != CmpGreater {
		t.Errorf("[1,3] vs [1,2,3] = %d", cmp)
	}
	if cmp, _ := e.Compare(a, build(1, 2)); cmp != CmpEqual {
		t.Errorf("[1,2] vs [1,2] = %d", cmp)
	}
}

func TestCompareObjectsSubsetOrder(t *testing.T) {
	e := NewLocal()

	build := func(pairs map[string]int64) Handle {
		h := mustHandle(t)(e.CreateObject())
		for k, v := range pairs {
			el := mustHandle(t)(e.CreateInt(v))
			if res := e.ObjectSet(h, k, el); res != ResultOK {
				t.Fatalf("set: %v", res)
			}
			e.Release(el)
		}
		return h
	}

	small := build(map[string]int64{"a": 1})
	big := build(map[string]int64{"a": 1, "b": 2})
	other := build(map[string]int64{"a": 9})

	if cmp, res := e.Compare(small, big); res != ResultOK || cmp != CmpLess {
		t.Errorf("subset = %d, %v", cmp, res)
	}
	if cmp, res := e.Compare(big, small); res != ResultOK || cmp != CmpGreater {
		t.Errorf("superset = %d, %v", cmp, res)
	}
	if cmp, res := e.Compare(small, other); res != ResultOK || cmp != CmpUnordered {
		t.Errorf("mismatched values = %d, %v", cmp, res)
	}
	if cmp, res := e.Compare(big, build(map[string]int64{"b": 2, "a": 1})); res != ResultOK || cmp != CmpEqual {
		t.Errorf("order-insensitive equality = %d, %v", cmp, res)
	}
}

func TestHash(t *testing.T) {
	e := NewLocal()

	a := mustHandle(t)(e.CreateString("key"))
	b := mustHandle(t)(e.CreateString("key"))

	ha, res := e.Hash(a)
	if res != ResultOK {
		t.Fatalf("Hash: %v", res)
	}
	hb, _ := e.Hash(b)
	if ha != hb {
		t.Errorf("equal strings hash differently: %x vs %x", ha, hb)
	}

	arr := mustHandle(t)(e.CreateArray())
	if _, res := e.Hash(arr); res != ResultTypeError {
		t.Errorf("Hash(array) = %v, want type_error", res)
	}
}

func TestContainerAliasing(t *testing.T) {
	e := NewLocal()

	arr := mustHandle(t)(e.CreateArray())
	inner := mustHandle(t)(e.CreateArray())
	if res := e.ArrayPushBack(arr, inner); res != ResultOK {
		t.Fatalf("push: %v", res)
	}

	// Mutating through the original handle is visible through the stored
	// reference.
	el := mustHandle(t)(e.CreateInt(7))
	if res := e.ArrayPushBack(inner, el); res != ResultOK {
		t.Fatalf("push inner: %v", res)
	}

	got := mustHandle(t)(e.ArrayGet(arr, 0))
	size, res := e.ArraySize(got)
	if res != ResultOK || size != 1 {
		t.Errorf("aliased size = %d, %v", size, res)
	}
}
