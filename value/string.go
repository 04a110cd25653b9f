package value

import (
	"strings"

	"github.com/cycraft-corp/hakka-json/engine"
	"github.com/cycraft-corp/hakka-json/errors"
)

// String is an immutable text value addressed by Unicode codepoint. Every
// transforming method returns a new String; the receiver never changes.
//
// Length and positions count codepoints, not bytes and not UTF-16 code
// units: an astral-plane character is one position.
type String struct {
	owner
}

// NewString wraps s.
func (rt *Runtime) NewString(s string) (*String, error) {
	h, res := rt.eng.CreateString(s)
	if res != engine.ResultOK {
		return nil, engErr(errors.PhaseConvert, res, "string creation failed")
	}
	return &String{owner{rt: rt, h: h}}, nil
}

func (*String) Kind() Kind { return KindString }

// Value reads the text from the engine.
func (s *String) Value() (string, error) {
	h, err := s.handle()
	if err != nil {
		return "", err
	}
	v, res := s.rt.eng.GetString(h)
	if res != engine.ResultOK {
		return "", engErr(errors.PhaseAccess, res, "string read failed")
	}
	return v, nil
}

func (s *String) Native() (any, error) {
	return s.Value()
}

func (s *String) Truthy() bool {
	n, err := s.Len()
	return err == nil && n > 0
}

func (s *String) Copy() (Value, error) { return s, nil }

// Len returns the length in codepoints.
func (s *String) Len() (int, error) {
	h, err := s.handle()
	if err != nil {
		return 0, err
	}
	n, res := s.rt.eng.StringLength(h)
	if res != engine.ResultOK {
		return 0, engErr(errors.PhaseAccess, res, "length query failed")
	}
	return int(n), nil
}

// ByteLen returns the length in UTF-8 bytes.
func (s *String) ByteLen() (int, error) {
	h, err := s.handle()
	if err != nil {
		return 0, err
	}
	n, res := s.rt.eng.StringUTF8Length(h)
	if res != engine.ResultOK {
		return 0, engErr(errors.PhaseAccess, res, "length query failed")
	}
	return int(n), nil
}

// At returns the one-codepoint String at position i. Negative positions
// count from the end.
func (s *String) At(i int) (*String, error) {
	n, err := s.Len()
	if err != nil {
		return nil, err
	}
	idx, err := normIndex(i, n)
	if err != nil {
		return nil, err
	}
	return s.Slice(int(idx), int(idx)+1, 1)
}

// Slice returns the substring addressed by (start, stop, step). Bounds may
// be negative or Auto and clamp like standard sequence slicing.
func (s *String) Slice(start, stop, step int) (*String, error) {
	n, err := s.Len()
	if err != nil {
		return nil, err
	}
	i, j, k, err := normSlice(start, stop, step, n)
	if err != nil {
		return nil, err
	}
	h, err := s.handle()
	if err != nil {
		return nil, err
	}
	out, res := s.rt.eng.StringSlice(h, i, j, k)
	if res != engine.ResultOK {
		return nil, engErr(errors.PhaseAccess, res, "slice failed")
	}
	return &String{owner{rt: s.rt, h: out}}, nil
}

// Concat returns the concatenation of s and other.
func (s *String) Concat(other *String) (*String, error) {
	tail, err := other.Value()
	if err != nil {
		return nil, err
	}
	return s.derive(func(h engine.Handle) (engine.Handle, engine.Result) {
		return s.rt.eng.StringConcat(h, tail)
	})
}

// Repeat returns s repeated count times; a non-positive count yields the
// empty string.
func (s *String) Repeat(count int) (*String, error) {
	return s.derive(func(h engine.Handle) (engine.Handle, engine.Result) {
		return s.rt.eng.StringRepeat(h, int64(count))
	})
}

// Contains reports whether sub occurs in s.
func (s *String) Contains(sub string) (bool, error) {
	idx, err := s.Find(sub)
	if err != nil {
		return false, err
	}
	return idx >= 0, nil
}

// Find returns the codepoint position of the first occurrence of sub, or
// -1 when absent.
func (s *String) Find(sub string) (int, error) {
	h, err := s.handle()
	if err != nil {
		return 0, err
	}
	idx, res := s.rt.eng.StringFind(h, sub)
	if res != engine.ResultOK {
		return 0, engErr(errors.PhaseAccess, res, "search failed")
	}
	return int(idx), nil
}

// RFind returns the codepoint position of the last occurrence of sub, or
// -1 when absent.
func (s *String) RFind(sub string) (int, error) {
	h, err := s.handle()
	if err != nil {
		return 0, err
	}
	idx, res := s.rt.eng.StringRFind(h, sub)
	if res != engine.ResultOK {
		return 0, engErr(errors.PhaseAccess, res, "search failed")
	}
	return int(idx), nil
}

// FindRange is Find restricted to the codepoint range [start, stop), with
// slice clamping. The returned position is relative to the whole string.
func (s *String) FindRange(sub string, start, stop int) (int, error) {
	view, off, err := s.rangeView(start, stop)
	if err != nil {
		return 0, err
	}
	defer view.Release()
	idx, err := view.Find(sub)
	if err != nil || idx < 0 {
		return idx, err
	}
	return off + idx, nil
}

// RFindRange is RFind restricted to the codepoint range [start, stop).
func (s *String) RFindRange(sub string, start, stop int) (int, error) {
	view, off, err := s.rangeView(start, stop)
	if err != nil {
		return 0, err
	}
	defer view.Release()
	idx, err := view.RFind(sub)
	if err != nil || idx < 0 {
		return idx, err
	}
	return off + idx, nil
}

// CountRange is Count restricted to the codepoint range [start, stop).
func (s *String) CountRange(sub string, start, stop int) (int, error) {
	view, _, err := s.rangeView(start, stop)
	if err != nil {
		return 0, err
	}
	defer view.Release()
	return view.Count(sub)
}

// rangeView materializes the clamped [start, stop) window and reports the
// normalized start for translating window positions back.
func (s *String) rangeView(start, stop int) (*String, int, error) {
	n, err := s.Len()
	if err != nil {
		return nil, 0, err
	}
	lo, _, _, err := normSlice(start, stop, 1, n)
	if err != nil {
		return nil, 0, err
	}
	view, err := s.Slice(start, stop, 1)
	if err != nil {
		return nil, 0, err
	}
	return view, int(lo), nil
}

// Count returns the number of non-overlapping occurrences of sub.
func (s *String) Count(sub string) (int, error) {
	h, err := s.handle()
	if err != nil {
		return 0, err
	}
	n, res := s.rt.eng.StringCount(h, sub)
	if res != engine.ResultOK {
		return 0, engErr(errors.PhaseAccess, res, "count failed")
	}
	return int(n), nil
}

// StartsWith reports whether s begins with prefix.
func (s *String) StartsWith(prefix string) (bool, error) {
	h, err := s.handle()
	if err != nil {
		return false, err
	}
	ok, res := s.rt.eng.StringStartsWith(h, prefix)
	if res != engine.ResultOK {
		return false, engErr(errors.PhaseAccess, res, "prefix check failed")
	}
	return ok, nil
}

// EndsWith reports whether s ends with suffix.
func (s *String) EndsWith(suffix string) (bool, error) {
	h, err := s.handle()
	if err != nil {
		return false, err
	}
	ok, res := s.rt.eng.StringEndsWith(h, suffix)
	if res != engine.ResultOK {
		return false, engErr(errors.PhaseAccess, res, "suffix check failed")
	}
	return ok, nil
}

// Replace returns s with every occurrence of old replaced by new.
func (s *String) Replace(old, new string) (*String, error) {
	return s.derive(func(h engine.Handle) (engine.Handle, engine.Result) {
		return s.rt.eng.StringReplace(h, old, new)
	})
}

// ReplaceN returns s with at most count occurrences of old replaced by
// new, leftmost first. A negative count replaces every occurrence and a
// zero count returns an unchanged copy.
func (s *String) ReplaceN(old, new string, count int) (*String, error) {
	v, err := s.Value()
	if err != nil {
		return nil, err
	}
	return s.rt.NewString(strings.Replace(v, old, new, count))
}

// Join concatenates the elements of parts with s between consecutive
// elements. Every element must be a string.
func (s *String) Join(parts *Array) (*String, error) {
	sep, err := s.Value()
	if err != nil {
		return nil, err
	}
	n, err := parts.Len()
	if err != nil {
		return nil, err
	}
	elems := make([]string, 0, n)
	for i := 0; i < n; i++ {
		el, err := parts.Get(i)
		if err != nil {
			return nil, err
		}
		sv, ok := el.(*String)
		if !ok {
			kind := el.Kind()
			el.Release()
			return nil, errors.New(errors.PhaseConvert, errors.KindType).
				Detail("join expects string elements, got %s", kind).Build()
		}
		v, err := sv.Value()
		sv.Release()
		if err != nil {
			return nil, err
		}
		elems = append(elems, v)
	}
	return s.rt.NewString(strings.Join(elems, sep))
}

// RemovePrefix returns s without prefix when present, otherwise s itself.
func (s *String) RemovePrefix(prefix string) (*String, error) {
	return s.derive(func(h engine.Handle) (engine.Handle, engine.Result) {
		return s.rt.eng.StringRemovePrefix(h, prefix)
	})
}

// RemoveSuffix returns s without suffix when present, otherwise s itself.
func (s *String) RemoveSuffix(suffix string) (*String, error) {
	return s.derive(func(h engine.Handle) (engine.Handle, engine.Result) {
		return s.rt.eng.StringRemoveSuffix(h, suffix)
	})
}

// Lower returns s lowercased.
func (s *String) Lower() (*String, error) { return s.derive(s.rt.eng.StringLower) }

// Upper returns s uppercased.
func (s *String) Upper() (*String, error) { return s.derive(s.rt.eng.StringUpper) }

// Title returns s with each word's first letter uppercased.
func (s *String) Title() (*String, error) { return s.derive(s.rt.eng.StringTitle) }

// Swapcase returns s with the case of every cased letter flipped.
func (s *String) Swapcase() (*String, error) { return s.derive(s.rt.eng.StringSwapcase) }

// Capitalize returns s with the first letter uppercased and the rest
// lowercased.
func (s *String) Capitalize() (*String, error) { return s.derive(s.rt.eng.StringCapitalize) }

// Casefold returns s aggressively lowercased for caseless matching.
func (s *String) Casefold() (*String, error) { return s.derive(s.rt.eng.StringCasefold) }

// Zfill returns s left-padded with zeros to width codepoints, keeping any
// leading sign ahead of the padding.
func (s *String) Zfill(width int) (*String, error) {
	return s.derive(func(h engine.Handle) (engine.Handle, engine.Result) {
		return s.rt.eng.StringZfill(h, int64(width))
	})
}

// Ljust returns s right-padded with fill to width codepoints.
func (s *String) Ljust(width int, fill rune) (*String, error) {
	return s.derive(func(h engine.Handle) (engine.Handle, engine.Result) {
		return s.rt.eng.StringLjust(h, int64(width), fill)
	})
}

// Center returns s centered in fill to width codepoints.
func (s *String) Center(width int, fill rune) (*String, error) {
	return s.derive(func(h engine.Handle) (engine.Handle, engine.Result) {
		return s.rt.eng.StringCenter(h, int64(width), fill)
	})
}

// Split splits around sep into an Array of Strings, at most maxSplit times
// (negative means unbounded). An empty sep splits on whitespace runs.
func (s *String) Split(sep string, maxSplit int) (*Array, error) {
	return s.splitWith(func(h engine.Handle) (engine.Handle, engine.Result) {
		return s.rt.eng.StringSplit(h, sep, int64(maxSplit))
	})
}

// RSplit splits like Split but applies the bound from the right end.
func (s *String) RSplit(sep string, maxSplit int) (*Array, error) {
	return s.splitWith(func(h engine.Handle) (engine.Handle, engine.Result) {
		return s.rt.eng.StringRSplit(h, sep, int64(maxSplit))
	})
}

// Splitlines splits at Unicode line boundaries, keeping the terminators
// when keepEnds is set.
func (s *String) Splitlines(keepEnds bool) (*Array, error) {
	return s.splitWith(func(h engine.Handle) (engine.Handle, engine.Result) {
		return s.rt.eng.StringSplitlines(h, keepEnds)
	})
}

// Classification predicates. Each mirrors the like-named text predicate
// over the whole string; most are false for the empty string.

func (s *String) IsAlnum() (bool, error)      { return s.is(engine.PredIsAlnum) }
func (s *String) IsAlpha() (bool, error)      { return s.is(engine.PredIsAlpha) }
func (s *String) IsASCII() (bool, error)      { return s.is(engine.PredIsASCII) }
func (s *String) IsDecimal() (bool, error)    { return s.is(engine.PredIsDecimal) }
func (s *String) IsDigit() (bool, error)      { return s.is(engine.PredIsDigit) }
func (s *String) IsIdentifier() (bool, error) { return s.is(engine.PredIsIdentifier) }
func (s *String) IsLower() (bool, error)      { return s.is(engine.PredIsLower) }
func (s *String) IsNumeric() (bool, error)    { return s.is(engine.PredIsNumeric) }
func (s *String) IsPrintable() (bool, error)  { return s.is(engine.PredIsPrintable) }
func (s *String) IsSpace() (bool, error)      { return s.is(engine.PredIsSpace) }
func (s *String) IsTitle() (bool, error)      { return s.is(engine.PredIsTitle) }
func (s *String) IsUpper() (bool, error)      { return s.is(engine.PredIsUpper) }

func (s *String) is(pred engine.StringPredicate) (bool, error) {
	h, err := s.handle()
	if err != nil {
		return false, err
	}
	ok, res := s.rt.eng.StringIs(h, pred)
	if res != engine.ResultOK {
		return false, engErr(errors.PhaseAccess, res, "classification failed")
	}
	return ok, nil
}

// Runes returns a cursor over the codepoints of s.
func (s *String) Runes() (*StringIter, error) {
	h, err := s.handle()
	if err != nil {
		return nil, err
	}
	it, res := s.rt.eng.StringIterBegin(h)
	if res != engine.ResultOK {
		return nil, engErr(errors.PhaseIterate, res, "cursor creation failed")
	}
	return &StringIter{rt: s.rt, it: it}, nil
}

func (s *String) derive(op func(engine.Handle) (engine.Handle, engine.Result)) (*String, error) {
	h, err := s.handle()
	if err != nil {
		return nil, err
	}
	out, res := op(h)
	if res != engine.ResultOK {
		return nil, engErr(errors.PhaseAccess, res, "string operation failed")
	}
	return &String{owner{rt: s.rt, h: out}}, nil
}

func (s *String) splitWith(op func(engine.Handle) (engine.Handle, engine.Result)) (*Array, error) {
	h, err := s.handle()
	if err != nil {
		return nil, err
	}
	out, res := op(h)
	if res != engine.ResultOK {
		return nil, engErr(errors.PhaseAccess, res, "split failed")
	}
	return &Array{owner{rt: s.rt, h: out}}, nil
}
