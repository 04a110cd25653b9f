package engine

import (
	"testing"
)

func newStr(t *testing.T, e *Local, s string) Handle {
	t.Helper()
	return mustHandle(t)(e.CreateString(s))
}

func strOf(t *testing.T, e *Local, h Handle) string {
	t.Helper()
	s, res := e.GetString(h)
	if res != ResultOK {
		t.Fatalf("GetString: %v", res)
	}
	return s
}

func strsOf(t *testing.T, e *Local, arr Handle) []string {
	t.Helper()
	size, res := e.ArraySize(arr)
	if res != ResultOK {
		t.Fatalf("ArraySize: %v", res)
	}
	out := make([]string, 0, size)
	for i := uint32(0); i < size; i++ {
		el := mustHandle(t)(e.ArrayGet(arr, i))
		out = append(out, strOf(t, e, el))
	}
	return out
}

func eqStrs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestStringLengthCodepoints(t *testing.T) {
	e := NewLocal()

	h := newStr(t, e, "héllo")
	if n, res := e.StringLength(h); res != ResultOK || n != 5 {
		t.Errorf("StringLength = %d, %v", n, res)
	}
	if n, res := e.StringUTF8Length(h); res != ResultOK || n != 6 {
		t.Errorf("StringUTF8Length = %d, %v", n, res)
	}
}

func TestStringSlice(t *testing.T) {
	e := NewLocal()

	h := newStr(t, e, "abcdef")

	cases := []struct {
		start, stop, step int64
		want              string
	}{
		{0, 6, 1, "abcdef"},
		{1, 4, 1, "bcd"},
		{0, 6, 2, "ace"},
		{5, -1, -1, "fedcba"},
		{4, 1, -2, "ec"},
		{3, 3, 1, ""},
	}
	for _, tc := range cases {
		out := mustHandle(t)(e.StringSlice(h, tc.start, tc.stop, tc.step))
		if got := strOf(t, e, out); got != tc.want {
			t.Errorf("slice(%d,%d,%d) = %q, want %q", tc.start, tc.stop, tc.step, got, tc.want)
		}
	}

	if _, res := e.StringSlice(h, 0, 6, 0); res != ResultInvalidArgument {
		t.Errorf("zero step = %v", res)
	}
}

func TestStringSearch(t *testing.T) {
	e := NewLocal()

	h := newStr(t, e, "héllo héllo")
	if idx, _ := e.StringFind(h, "llo"); idx != 2 {
		t.Errorf("Find = %d, want 2", idx)
	}
	if idx, _ := e.StringRFind(h, "llo"); idx != 8 {
		t.Errorf("RFind = %d, want 8", idx)
	}
	if idx, _ := e.StringFind(h, "zzz"); idx != -1 {
		t.Errorf("Find absent = %d, want -1", idx)
	}
	if n, _ := e.StringCount(h, "l"); n != 4 {
		t.Errorf("Count = %d, want 4", n)
	}
	if ok, _ := e.StringStartsWith(h, "hé"); !ok {
		t.Error("StartsWith")
	}
	if ok, _ := e.StringEndsWith(h, "llo"); !ok {
		t.Error("EndsWith")
	}
}

func TestStringTransforms(t *testing.T) {
	e := NewLocal()

	cases := []struct {
		name string
		fn   func(Handle) (Handle, Result)
		in   string
		want string
	}{
		{"lower", e.StringLower, "HeLLo", "hello"},
		{"upper", e.StringUpper, "HeLLo", "HELLO"},
		{"title", e.StringTitle, "hello world", "Hello World"},
		{"swapcase", e.StringSwapcase, "HeLLo", "hEllO"},
		{"capitalize", e.StringCapitalize, "hELLO wORLD", "Hello world"},
		{"casefold", e.StringCasefold, "Straße", "strasse"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := newStr(t, e, tc.in)
			out := mustHandle(t)(tc.fn(h))
			if got := strOf(t, e, out); got != tc.want {
				t.Errorf("%s(%q) = %q, want %q", tc.name, tc.in, got, tc.want)
			}
			// The receiver is untouched.
			if got := strOf(t, e, h); got != tc.in {
				t.Errorf("receiver mutated to %q", got)
			}
		})
	}
}

func TestStringReplaceTrim(t *testing.T) {
	e := NewLocal()

	h := newStr(t, e, "a-b-c")
	out := mustHandle(t)(e.StringReplace(h, "-", "+"))
	if got := strOf(t, e, out); got != "a+b+c" {
		t.Errorf("Replace = %q", got)
	}

	p := newStr(t, e, "prefix.rest")
	out = mustHandle(t)(e.StringRemovePrefix(p, "prefix."))
	if got := strOf(t, e, out); got != "rest" {
		t.Errorf("RemovePrefix = %q", got)
	}
	out = mustHandle(t)(e.StringRemovePrefix(p, "zzz"))
	if got := strOf(t, e, out); got != "prefix.rest" {
		t.Errorf("RemovePrefix miss = %q", got)
	}
	out = mustHandle(t)(e.StringRemoveSuffix(p, ".rest"))
	if got := strOf(t, e, out); got != "prefix" {
		t.Errorf("RemoveSuffix = %q", got)
	}
}

func TestStringPadding(t *testing.T) {
	e := NewLocal()

	h := newStr(t, e, "-42")
	out := mustHandle(t)(e.StringZfill(h, 6))
	if got := strOf(t, e, out); got != "-00042" {
		t.Errorf("Zfill = %q", got)
	}

	s := newStr(t, e, "ab")
	out = mustHandle(t)(e.StringLjust(s, 5, '*'))
	if got := strOf(t, e, out); got != "ab***" {
		t.Errorf("Ljust = %q", got)
	}

	out = mustHandle(t)(e.StringCenter(s, 5, '*'))
	if got := strOf(t, e, out); got != "**ab*" {
		t.Errorf("Center odd = %q", got)
	}
	out = mustHandle(t)(e.StringCenter(s, 6, '*'))
	if got := strOf(t, e, out); got != "**ab**" {
		t.Errorf("Center even = %q", got)
	}
	out = mustHandle(t)(e.StringCenter(s, 1, '*'))
	if got := strOf(t, e, out); got != "ab" {
		t.Errorf("Center short width = %q", got)
	}
}

func TestStringConcatRepeat(t *testing.T) {
	e := NewLocal()

	h := newStr(t, e, "ab")
	out := mustHandle(t)(e.StringConcat(h, "cd"))
	if got := strOf(t, e, out); got != "abcd" {
		t.Errorf("Concat = %q", got)
	}
	out = mustHandle(t)(e.StringRepeat(h, 3))
	if got := strOf(t, e, out); got != "ababab" {
		t.Errorf("Repeat = %q", got)
	}
	out = mustHandle(t)(e.StringRepeat(h, -1))
	if got := strOf(t, e, out); got != "" {
		t.Errorf("Repeat negative = %q", got)
	}
}

func TestStringSplit(t *testing.T) {
	e := NewLocal()

	cases := []struct {
		in       string
		sep      string
		maxSplit int64
		want     []string
	}{
		{"a,b,c", ",", -1, []string{"a", "b", "c"}},
		{"a,b,c", ",", 1, []string{"a", "b,c"}},
		{"a,,c", ",", -1, []string{"a", "", "c"}},
		{"", ",", -1, []string{""}},
		{"  a  b  c  ", "", -1, []string{"a", "b", "c"}},
		// The remainder keeps its trailing whitespace; only consumed
		// delimiter runs are stripped.
		{"  a  b  c  ", "", 1, []string{"a", "b  c  "}},
		{" a b  c  ", "", 1, []string{"a", "b  c  "}},
		{"  a  ", "", 0, []string{"a  "}},
		{"   ", "", -1, nil},
	}
	for _, tc := range cases {
		h := newStr(t, e, tc.in)
		out := mustHandle(t)(e.StringSplit(h, tc.sep, tc.maxSplit))
		if got := strsOf(t, e, out); !eqStrs(got, tc.want) {
			t.Errorf("Split(%q, %q, %d) = %q, want %q", tc.in, tc.sep, tc.maxSplit, got, tc.want)
		}
	}
}

func TestStringRSplit(t *testing.T) {
	e := NewLocal()

	cases := []struct {
		in       string
		sep      string
		maxSplit int64
		want     []string
	}{
		{"a,b,c", ",", -1, []string{"a", "b", "c"}},
		{"a,b,c", ",", 1, []string{"a,b", "c"}},
		// Mirror image of the bounded split: the remainder keeps its
		// leading whitespace.
		{"  a  b  c  ", "", 1, []string{"  a  b", "c"}},
		{"  a  ", "", 0, []string{"  a"}},
	}
	for _, tc := range cases {
		h := newStr(t, e, tc.in)
		out := mustHandle(t)(e.StringRSplit(h, tc.sep, tc.maxSplit))
		if got := strsOf(t, e, out); !eqStrs(got, tc.want) {
			t.Errorf("RSplit(%q, %q, %d) = %q, want %q", tc.in, tc.sep, tc.maxSplit, got, tc.want)
		}
	}
}

func TestStringSplitlines(t *testing.T) {
	e := NewLocal()

	h := newStr(t, e, "one\ntwo\r\nthree\rfour")
	out := mustHandle(t)(e.StringSplitlines(h, false))
	if got := strsOf(t, e, out); !eqStrs(got, []string{"one", "two", "three", "four"}) {
		t.Errorf("Splitlines = %q", got)
	}
	out = mustHandle(t)(e.StringSplitlines(h, true))
	if got := strsOf(t, e, out); !eqStrs(got, []string{"one\n", "two\r\n", "three\r", "four"}) {
		t.Errorf("Splitlines keepends = %q", got)
	}

	empty := newStr(t, e, "")
	out = mustHandle(t)(e.StringSplitlines(empty, false))
	if got := strsOf(t, e, out); len(got) != 0 {
		t.Errorf("Splitlines empty = %q", got)
	}
}

func TestStringPredicates(t *testing.T) {
	e := NewLocal()

	cases := []struct {
		s    string
		pred StringPredicate
		want bool
	}{
		{"abc123", PredIsAlnum, true},
		{"abc 123", PredIsAlnum, false},
		{"", PredIsAlnum, false},
		{"abc", PredIsAlpha, true},
		{"abc1", PredIsAlpha, false},
		{"ascii only", PredIsASCII, true},
		{"héllo", PredIsASCII, false},
		{"", PredIsASCII, true},
		{"123", PredIsDecimal, true},
		{"½", PredIsDecimal, false},
		{"½", PredIsNumeric, true},
		{"_name1", PredIsIdentifier, true},
		{"1name", PredIsIdentifier, false},
		{"abc", PredIsLower, true},
		{"aBc", PredIsLower, false},
		{"123", PredIsLower, false},
		{"ABC", PredIsUpper, true},
		{"AB12", PredIsUpper, true},
		{" \t\n", PredIsSpace, true},
		{"", PredIsSpace, false},
		{"Hello World", PredIsTitle, true},
		{"Hello world", PredIsTitle, false},
		{"hello", PredIsPrintable, true},
		{"he\x01llo", PredIsPrintable, false},
	}
	for _, tc := range cases {
		h := newStr(t, e, tc.s)
		got, res := e.StringIs(h, tc.pred)
		if res != ResultOK {
			t.Fatalf("StringIs(%q, %d): %v", tc.s, tc.pred, res)
		}
		if got != tc.want {
			t.Errorf("StringIs(%q, %d) = %v, want %v", tc.s, tc.pred, got, tc.want)
		}
	}
}

func TestStringCursor(t *testing.T) {
	e := NewLocal()

	h := newStr(t, e, "héy")
	it := mustHandle(t)(e.StringIterBegin(h))

	var got []rune
	for {
		r, res := e.StringIterDeref(it)
		if res == ResultIteratorEnd {
			break
		}
		if res != ResultOK {
			t.Fatalf("deref: %v", res)
		}
		got = append(got, r)
		if res := e.StringIterNext(it); res == ResultIteratorEnd {
			break
		} else if res != ResultOK {
			t.Fatalf("next: %v", res)
		}
	}
	if string(got) != "héy" {
		t.Errorf("cursor runes = %q", string(got))
	}

	if _, res := e.StringIterDeref(it); res != ResultIteratorEnd {
		t.Errorf("deref past end = %v", res)
	}
	e.StringIterRelease(it)
	if _, res := e.StringIterDeref(it); res != ResultInvalidArgument {
		t.Errorf("deref after release = %v", res)
	}
}

func TestCursorHandleKindsDistinct(t *testing.T) {
	e := NewLocal()

	h := newStr(t, e, "ab")
	it := mustHandle(t)(e.StringIterBegin(h))

	// A cursor handle is not a value handle and vice versa.
	if _, res := e.GetString(it); res != ResultInvalidArgument {
		t.Errorf("GetString on cursor = %v", res)
	}
	if _, res := e.StringIterDeref(h); res != ResultInvalidArgument {
		t.Errorf("deref on value = %v", res)
	}
}
