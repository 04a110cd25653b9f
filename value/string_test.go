package value

import (
	"testing"

	"github.com/cycraft-corp/hakka-json/errors"
)

func strValue(t *testing.T, s *String) string {
	t.Helper()
	v, err := s.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	return v
}

func TestStringLengthsAreCodepoints(t *testing.T) {
	rt, _ := newTestRuntime(t)

	s := mustString(t, rt, "héllo")
	defer s.Release()

	if n, err := s.Len(); err != nil || n != 5 {
		t.Errorf("Len() = %d, %v, want 5", n, err)
	}
	if n, err := s.ByteLen(); err != nil || n != 6 {
		t.Errorf("ByteLen() = %d, %v, want 6", n, err)
	}
}

func TestStringAtAndSlice(t *testing.T) {
	rt, _ := newTestRuntime(t)

	s := mustString(t, rt, "héllo")
	defer s.Release()

	at, err := s.At(1)
	if err != nil {
		t.Fatalf("At(1): %v", err)
	}
	if got := strValue(t, at); got != "é" {
		t.Errorf("At(1) = %q", got)
	}
	at.Release()

	last, err := s.At(-1)
	if err != nil {
		t.Fatalf("At(-1): %v", err)
	}
	if got := strValue(t, last); got != "o" {
		t.Errorf("At(-1) = %q", got)
	}
	last.Release()

	if _, err := s.At(5); !errors.IsKind(err, errors.KindIndex) {
		t.Errorf("At(5) = %v, want index_error", err)
	}

	cases := []struct {
		start, stop, step int
		want              string
	}{
		{1, 4, 1, "éll"},
		{Auto, Auto, -1, "olléh"},
		{Auto, Auto, 2, "hlo"},
		{-2, Auto, 1, "lo"},
		{10, 20, 1, ""},
		{3, 1, 1, ""},
	}
	for _, c := range cases {
		got, err := s.Slice(c.start, c.stop, c.step)
		if err != nil {
			t.Fatalf("Slice(%d, %d, %d): %v", c.start, c.stop, c.step, err)
		}
		if v := strValue(t, got); v != c.want {
			t.Errorf("Slice(%d, %d, %d) = %q, want %q", c.start, c.stop, c.step, v, c.want)
		}
		got.Release()
	}

	if _, err := s.Slice(0, 5, 0); !errors.IsKind(err, errors.KindValue) {
		t.Errorf("zero step = %v, want value_error", err)
	}
}

func TestStringSliceIdentityLaw(t *testing.T) {
	rt, _ := newTestRuntime(t)

	s := mustString(t, rt, "abcdef")
	defer s.Release()

	// Reversing twice restores the original.
	rev, err := s.Slice(Auto, Auto, -1)
	if err != nil {
		t.Fatalf("reverse: %v", err)
	}
	defer rev.Release()
	back, err := rev.Slice(Auto, Auto, -1)
	if err != nil {
		t.Fatalf("reverse again: %v", err)
	}
	defer back.Release()
	if !s.Equal(back) {
		t.Errorf("double reversal yielded %q", strValue(t, back))
	}
}

func TestStringSearch(t *testing.T) {
	rt, _ := newTestRuntime(t)

	s := mustString(t, rt, "héllo héllo")
	defer s.Release()

	if i, err := s.Find("llo"); err != nil || i != 2 {
		t.Errorf("Find = %d, %v, want 2", i, err)
	}
	if i, err := s.RFind("llo"); err != nil || i != 8 {
		t.Errorf("RFind = %d, %v, want 8", i, err)
	}
	if i, err := s.Find("zzz"); err != nil || i != -1 {
		t.Errorf("Find absent = %d, %v, want -1", i, err)
	}
	if n, err := s.Count("llo"); err != nil || n != 2 {
		t.Errorf("Count = %d, %v, want 2", n, err)
	}
	if ok, err := s.Contains("é"); err != nil || !ok {
		t.Errorf("Contains = %v, %v", ok, err)
	}
	if ok, err := s.StartsWith("hé"); err != nil || !ok {
		t.Errorf("StartsWith = %v, %v", ok, err)
	}
	if ok, err := s.EndsWith("llo"); err != nil || !ok {
		t.Errorf("EndsWith = %v, %v", ok, err)
	}
}

func TestStringBoundedSearch(t *testing.T) {
	rt, _ := newTestRuntime(t)

	s := mustString(t, rt, "héllo héllo")
	defer s.Release()

	if i, err := s.FindRange("llo", 3, Auto); err != nil || i != 8 {
		t.Errorf("FindRange(3:) = %d, %v, want 8", i, err)
	}
	if i, err := s.FindRange("llo", 0, 4); err != nil || i != -1 {
		t.Errorf("FindRange(:4) = %d, %v, want -1", i, err)
	}
	if i, err := s.RFindRange("llo", 0, 8); err != nil || i != 2 {
		t.Errorf("RFindRange(:8) = %d, %v, want 2", i, err)
	}
	if i, err := s.FindRange("llo", -5, Auto); err != nil || i != 8 {
		t.Errorf("FindRange(-5:) = %d, %v, want 8", i, err)
	}
	if n, err := s.CountRange("llo", 3, Auto); err != nil || n != 1 {
		t.Errorf("CountRange(3:) = %d, %v, want 1", n, err)
	}
	// Out-of-range bounds clamp like slicing does.
	if n, err := s.CountRange("llo", -100, 100); err != nil || n != 2 {
		t.Errorf("CountRange(-100:100) = %d, %v, want 2", n, err)
	}
}

func TestStringReplaceN(t *testing.T) {
	rt, _ := newTestRuntime(t)

	s := mustString(t, rt, "a.b.c.d")
	defer s.Release()

	cases := []struct {
		count int
		want  string
	}{
		{0, "a.b.c.d"},
		{1, "a-b.c.d"},
		{2, "a-b-c.d"},
		{-1, "a-b-c-d"},
	}
	for _, c := range cases {
		out, err := s.ReplaceN(".", "-", c.count)
		if err != nil {
			t.Fatalf("ReplaceN(count=%d): %v", c.count, err)
		}
		if got := strValue(t, out); got != c.want {
			t.Errorf("ReplaceN(count=%d) = %q, want %q", c.count, got, c.want)
		}
		out.Release()
	}
}

func TestStringJoin(t *testing.T) {
	rt, _ := newTestRuntime(t)

	sep := mustString(t, rt, ", ")
	defer sep.Release()

	parts := mustArray(t, rt)
	defer parts.Release()
	for _, p := range []string{"a", "b", "c"} {
		el := mustString(t, rt, p)
		if err := parts.Append(el); err != nil {
			t.Fatalf("Append: %v", err)
		}
		el.Release()
	}

	out, err := sep.Join(parts)
	if err != nil {
		t.Fatalf("Join: %v", err)
	}
	if got := strValue(t, out); got != "a, b, c" {
		t.Errorf("Join = %q", got)
	}
	out.Release()

	empty := mustArray(t, rt)
	defer empty.Release()
	out, err = sep.Join(empty)
	if err != nil {
		t.Fatalf("Join(empty): %v", err)
	}
	if got := strValue(t, out); got != "" {
		t.Errorf("Join(empty) = %q", got)
	}
	out.Release()

	mixed := intArrayOf(t, rt, 1, 2)
	defer mixed.Release()
	if _, err := sep.Join(mixed); !errors.IsKind(err, errors.KindType) {
		t.Errorf("Join(ints) = %v, want type_error", err)
	}
}

func TestStringTransforms(t *testing.T) {
	rt, _ := newTestRuntime(t)

	check := func(name string, got *String, err error, want string) {
		t.Helper()
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if v := strValue(t, got); v != want {
			t.Errorf("%s = %q, want %q", name, v, want)
		}
		got.Release()
	}

	s := mustString(t, rt, "hello World")
	defer s.Release()

	up, err := s.Upper()
	check("Upper", up, err, "HELLO WORLD")
	lo, err := s.Lower()
	check("Lower", lo, err, "hello world")
	ti, err := s.Title()
	check("Title", ti, err, "Hello World")
	sw, err := s.Swapcase()
	check("Swapcase", sw, err, "HELLO wORLD")
	ca, err := s.Capitalize()
	check("Capitalize", ca, err, "Hello world")

	sz := mustString(t, rt, "Straße")
	defer sz.Release()
	cf, err := sz.Casefold()
	check("Casefold", cf, err, "strasse")

	re, err := s.Replace("l", "L")
	check("Replace", re, err, "heLLo WorLd")

	pre := mustString(t, rt, "value=42")
	defer pre.Release()
	np, err := pre.RemovePrefix("value=")
	check("RemovePrefix", np, err, "42")
	ns, err := pre.RemoveSuffix("=42")
	check("RemoveSuffix", ns, err, "value")
}

func TestStringPadding(t *testing.T) {
	rt, _ := newTestRuntime(t)

	check := func(name string, got *String, err error, want string) {
		t.Helper()
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if v := strValue(t, got); v != want {
			t.Errorf("%s = %q, want %q", name, v, want)
		}
		got.Release()
	}

	n := mustString(t, rt, "-42")
	defer n.Release()
	z, err := n.Zfill(6)
	check("Zfill", z, err, "-00042")

	ab := mustString(t, rt, "ab")
	defer ab.Release()
	lj, err := ab.Ljust(5, '.')
	check("Ljust", lj, err, "ab...")
	// Odd margin shifts the extra fill right.
	ce, err := ab.Center(5, '*')
	check("Center odd", ce, err, "**ab*")
	ce2, err := ab.Center(6, '*')
	check("Center even", ce2, err, "**ab**")
}

func TestStringConcatRepeat(t *testing.T) {
	rt, _ := newTestRuntime(t)

	a := mustString(t, rt, "ab")
	defer a.Release()
	b := mustString(t, rt, "cd")
	defer b.Release()

	cat, err := a.Concat(b)
	if err != nil {
		t.Fatalf("Concat: %v", err)
	}
	if got := strValue(t, cat); got != "abcd" {
		t.Errorf("Concat = %q", got)
	}
	cat.Release()

	rep, err := a.Repeat(3)
	if err != nil {
		t.Fatalf("Repeat: %v", err)
	}
	if got := strValue(t, rep); got != "ababab" {
		t.Errorf("Repeat = %q", got)
	}
	rep.Release()

	none, err := a.Repeat(-1)
	if err != nil {
		t.Fatalf("Repeat(-1): %v", err)
	}
	if got := strValue(t, none); got != "" {
		t.Errorf("Repeat(-1) = %q", got)
	}
	none.Release()
}

func stringParts(t *testing.T, a *Array) []string {
	t.Helper()
	n, err := a.Len()
	if err != nil {
		t.Fatalf("Len: %v", err)
	}
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		v, err := a.Get(i)
		if err != nil {
			t.Fatalf("Get(%d): %v", i, err)
		}
		sv, ok := v.(*String)
		if !ok {
			t.Fatalf("Get(%d) = %T, want *String", i, v)
		}
		out = append(out, strValue(t, sv))
		v.Release()
	}
	return out
}

func eqStrings(a, b []string) bool {
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

func TestStringSplit(t *testing.T) {
	rt, _ := newTestRuntime(t)

	csv := mustString(t, rt, "a,b,,c")
	defer csv.Release()

	parts, err := csv.Split(",", -1)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if got := stringParts(t, parts); !eqStrings(got, []string{"a", "b", "", "c"}) {
		t.Errorf("Split = %q", got)
	}
	parts.Release()

	bounded, err := csv.Split(",", 1)
	if err != nil {
		t.Fatalf("Split bounded: %v", err)
	}
	if got := stringParts(t, bounded); !eqStrings(got, []string{"a", "b,,c"}) {
		t.Errorf("Split bounded = %q", got)
	}
	bounded.Release()

	rbounded, err := csv.RSplit(",", 1)
	if err != nil {
		t.Fatalf("RSplit bounded: %v", err)
	}
	if got := stringParts(t, rbounded); !eqStrings(got, []string{"a,b,", "c"}) {
		t.Errorf("RSplit bounded = %q", got)
	}
	rbounded.Release()

	// An empty separator splits on runs of whitespace and drops empties.
	ws := mustString(t, rt, "  a  b  c  ")
	defer ws.Release()
	fields, err := ws.Split("", -1)
	if err != nil {
		t.Fatalf("Split whitespace: %v", err)
	}
	if got := stringParts(t, fields); !eqStrings(got, []string{"a", "b", "c"}) {
		t.Errorf("Split whitespace = %q", got)
	}
	fields.Release()
}

func TestStringSplitlines(t *testing.T) {
	rt, _ := newTestRuntime(t)

	s := mustString(t, rt, "one\ntwo\r\nthree")
	defer s.Release()

	lines, err := s.Splitlines(false)
	if err != nil {
		t.Fatalf("Splitlines: %v", err)
	}
	if got := stringParts(t, lines); !eqStrings(got, []string{"one", "two", "three"}) {
		t.Errorf("Splitlines = %q", got)
	}
	lines.Release()

	kept, err := s.Splitlines(true)
	if err != nil {
		t.Fatalf("Splitlines keepEnds: %v", err)
	}
	if got := stringParts(t, kept); !eqStrings(got, []string{"one\n", "two\r\n", "three"}) {
		t.Errorf("Splitlines keepEnds = %q", got)
	}
	kept.Release()
}

func TestStringPredicates(t *testing.T) {
	rt, _ := newTestRuntime(t)

	digits := mustString(t, rt, "12345")
	defer digits.Release()
	ident := mustString(t, rt, "snake_case_1")
	defer ident.Release()

	if ok, err := digits.IsDecimal(); err != nil || !ok {
		t.Errorf("IsDecimal = %v, %v", ok, err)
	}
	if ok, err := digits.IsAlpha(); err != nil || ok {
		t.Errorf("IsAlpha on digits = %v, %v", ok, err)
	}
	if ok, err := ident.IsIdentifier(); err != nil || !ok {
		t.Errorf("IsIdentifier = %v, %v", ok, err)
	}
	if ok, err := digits.IsIdentifier(); err != nil || ok {
		t.Errorf("IsIdentifier on digits = %v, %v", ok, err)
	}
}

func TestStringRunes(t *testing.T) {
	rt, eng := newTestRuntime(t)
	base := eng.Live()

	s := mustString(t, rt, "héllo")
	it, err := s.Runes()
	if err != nil {
		t.Fatalf("Runes: %v", err)
	}

	var got []rune
	for it.Next() {
		r, err := it.Rune()
		if err != nil {
			t.Fatalf("Rune: %v", err)
		}
		got = append(got, r)
	}
	if err := it.Err(); err != nil {
		t.Fatalf("Err: %v", err)
	}
	if string(got) != "héllo" {
		t.Errorf("collected %q", string(got))
	}

	if _, err := it.Rune(); !errors.IsStopIteration(err) {
		t.Errorf("Rune after exhaustion = %v, want stop_iteration", err)
	}
	if err := it.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	s.Release()
	if eng.Live() != base {
		t.Errorf("iteration leaked handles")
	}
}
