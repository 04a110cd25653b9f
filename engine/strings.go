package engine

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// repeatLimit guards StringRepeat and ArrayRepeat against absurd counts
// before any allocation happens.
const repeatLimit = 1 << 31

func (e *Local) str(h Handle) (*node, Result) {
	return e.typed(h, TagString)
}

func (e *Local) StringLength(h Handle) (uint32, Result) {
	n, res := e.str(h)
	if res != ResultOK {
		return 0, res
	}
	return uint32(utf8.RuneCountInString(n.s)), ResultOK
}

func (e *Local) StringUTF8Length(h Handle) (uint64, Result) {
	n, res := e.str(h)
	if res != ResultOK {
		return 0, res
	}
	return uint64(len(n.s)), ResultOK
}

// StringSlice extracts runes [start, stop) with the given step. Bounds
// arrive already normalized by the caller; they are clamped defensively.
func (e *Local) StringSlice(h Handle, start, stop, step int64) (Handle, Result) {
	n, res := e.str(h)
	if res != ResultOK {
		return 0, res
	}
	if step == 0 {
		return 0, ResultInvalidArgument
	}
	runes := []rune(n.s)
	var out []rune
	if step > 0 {
		for i := start; i < stop && i < int64(len(runes)); i += step {
			if i >= 0 {
				out = append(out, runes[i])
			}
		}
	} else {
		for i := start; i > stop; i += step {
			if i >= 0 && i < int64(len(runes)) {
				out = append(out, runes[i])
			}
		}
	}
	return e.put(stringNode(string(out)))
}

func (e *Local) StringConcat(h Handle, other string) (Handle, Result) {
	n, res := e.str(h)
	if res != ResultOK {
		return 0, res
	}
	return e.put(stringNode(n.s + other))
}

func (e *Local) StringRepeat(h Handle, count int64) (Handle, Result) {
	n, res := e.str(h)
	if res != ResultOK {
		return 0, res
	}
	if count <= 0 {
		return e.put(stringNode(""))
	}
	if count > repeatLimit || int64(len(n.s))*count > repeatLimit {
		return 0, ResultNotEnoughMemory
	}
	return e.put(stringNode(strings.Repeat(n.s, int(count))))
}

func (e *Local) StringCount(h Handle, sub string) (int64, Result) {
	n, res := e.str(h)
	if res != ResultOK {
		return 0, res
	}
	return int64(strings.Count(n.s, sub)), ResultOK
}

// StringFind reports the codepoint position of the first occurrence of sub,
// or -1 when absent.
func (e *Local) StringFind(h Handle, sub string) (int64, Result) {
	n, res := e.str(h)
	if res != ResultOK {
		return 0, res
	}
	idx := strings.Index(n.s, sub)
	if idx < 0 {
		return -1, ResultOK
	}
	return int64(utf8.RuneCountInString(n.s[:idx])), ResultOK
}

func (e *Local) StringRFind(h Handle, sub string) (int64, Result) {
	n, res := e.str(h)
	if res != ResultOK {
		return 0, res
	}
	idx := strings.LastIndex(n.s, sub)
	if idx < 0 {
		return -1, ResultOK
	}
	return int64(utf8.RuneCountInString(n.s[:idx])), ResultOK
}

func (e *Local) StringStartsWith(h Handle, prefix string) (bool, Result) {
	n, res := e.str(h)
	if res != ResultOK {
		return false, res
	}
	return strings.HasPrefix(n.s, prefix), ResultOK
}

func (e *Local) StringEndsWith(h Handle, suffix string) (bool, Result) {
	n, res := e.str(h)
	if res != ResultOK {
		return false, res
	}
	return strings.HasSuffix(n.s, suffix), ResultOK
}

func (e *Local) StringReplace(h Handle, old, new string) (Handle, Result) {
	n, res := e.str(h)
	if res != ResultOK {
		return 0, res
	}
	return e.put(stringNode(strings.ReplaceAll(n.s, old, new)))
}

func (e *Local) StringRemovePrefix(h Handle, prefix string) (Handle, Result) {
	n, res := e.str(h)
	if res != ResultOK {
		return 0, res
	}
	return e.put(stringNode(strings.TrimPrefix(n.s, prefix)))
}

func (e *Local) StringRemoveSuffix(h Handle, suffix string) (Handle, Result) {
	n, res := e.str(h)
	if res != ResultOK {
		return 0, res
	}
	return e.put(stringNode(strings.TrimSuffix(n.s, suffix)))
}

func (e *Local) StringLower(h Handle) (Handle, Result) {
	return e.transform(h, cases.Lower(language.Und).String)
}

func (e *Local) StringUpper(h Handle) (Handle, Result) {
	return e.transform(h, cases.Upper(language.Und).String)
}

func (e *Local) StringTitle(h Handle) (Handle, Result) {
	return e.transform(h, cases.Title(language.Und).String)
}

func (e *Local) StringCasefold(h Handle) (Handle, Result) {
	return e.transform(h, cases.Fold().String)
}

func (e *Local) StringSwapcase(h Handle) (Handle, Result) {
	return e.transform(h, func(s string) string {
		return strings.Map(func(r rune) rune {
			switch {
			case unicode.IsUpper(r):
				return unicode.ToLower(r)
			case unicode.IsLower(r):
				return unicode.ToUpper(r)
			}
			return r
		}, s)
	})
}

func (e *Local) StringCapitalize(h Handle) (Handle, Result) {
	return e.transform(h, func(s string) string {
		if s == "" {
			return s
		}
		first, size := utf8.DecodeRuneInString(s)
		return string(unicode.ToUpper(first)) + cases.Lower(language.Und).String(s[size:])
	})
}

func (e *Local) transform(h Handle, fn func(string) string) (Handle, Result) {
	n, res := e.str(h)
	if res != ResultOK {
		return 0, res
	}
	return e.put(stringNode(fn(n.s)))
}

// StringZfill left-pads with zeros to width codepoints, keeping any sign
// ahead of the padding.
func (e *Local) StringZfill(h Handle, width int64) (Handle, Result) {
	n, res := e.str(h)
	if res != ResultOK {
		return 0, res
	}
	runes := []rune(n.s)
	if int64(len(runes)) >= width {
		return e.put(stringNode(n.s))
	}
	pad := int(width) - len(runes)
	sign := ""
	body := n.s
	if len(body) > 0 && (body[0] == '+' || body[0] == '-') {
		sign = body[:1]
		body = body[1:]
	}
	return e.put(stringNode(sign + strings.Repeat("0", pad) + body))
}

func (e *Local) StringLjust(h Handle, width int64, fill rune) (Handle, Result) {
	n, res := e.str(h)
	if res != ResultOK {
		return 0, res
	}
	runes := []rune(n.s)
	if int64(len(runes)) >= width {
		return e.put(stringNode(n.s))
	}
	pad := int(width) - len(runes)
	return e.put(stringNode(n.s + strings.Repeat(string(fill), pad)))
}

func (e *Local) StringCenter(h Handle, width int64, fill rune) (Handle, Result) {
	n, res := e.str(h)
	if res != ResultOK {
		return 0, res
	}
	runes := []rune(n.s)
	if int64(len(runes)) >= width {
		return e.put(stringNode(n.s))
	}
	margin := int(width) - len(runes)
	left := margin/2 + (margin & int(width) & 1)
	right := margin - left
	return e.put(stringNode(strings.Repeat(string(fill), left) + n.s + strings.Repeat(string(fill), right)))
}

func (e *Local) StringSplit(h Handle, sep string, maxSplit int64) (Handle, Result) {
	n, res := e.str(h)
	if res != ResultOK {
		return 0, res
	}
	var parts []string
	if sep == "" {
		parts = splitWhitespace(n.s, maxSplit, false)
	} else {
		parts = splitSep(n.s, sep, maxSplit)
	}
	return e.putStringArray(parts)
}

func (e *Local) StringRSplit(h Handle, sep string, maxSplit int64) (Handle, Result) {
	n, res := e.str(h)
	if res != ResultOK {
		return 0, res
	}
	var parts []string
	if sep == "" {
		parts = splitWhitespace(n.s, maxSplit, true)
	} else {
		parts = rsplitSep(n.s, sep, maxSplit)
	}
	return e.putStringArray(parts)
}

func (e *Local) StringSplitlines(h Handle, keepEnds bool) (Handle, Result) {
	n, res := e.str(h)
	if res != ResultOK {
		return 0, res
	}
	return e.putStringArray(splitLines(n.s, keepEnds))
}

func (e *Local) putStringArray(parts []string) (Handle, Result) {
	arr := arrayNode()
	for _, p := range parts {
		arr.arr = append(arr.arr, stringNode(p))
	}
	return e.put(arr)
}

func splitSep(s, sep string, maxSplit int64) []string {
	if maxSplit < 0 {
		return strings.Split(s, sep)
	}
	return strings.SplitN(s, sep, int(maxSplit)+1)
}

func rsplitSep(s, sep string, maxSplit int64) []string {
	if maxSplit < 0 {
		return strings.Split(s, sep)
	}
	var tail []string
	for int64(len(tail)) < maxSplit {
		idx := strings.LastIndex(s, sep)
		if idx < 0 {
			break
		}
		tail = append(tail, s[idx+len(sep):])
		s = s[:idx]
	}
	parts := []string{s}
	for i := len(tail) - 1; i >= 0; i-- {
		parts = append(parts, tail[i])
	}
	return parts
}

// splitWhitespace splits on runs of whitespace, discarding leading and
// trailing runs. fromRight applies the split bound from the right end.
func splitWhitespace(s string, maxSplit int64, fromRight bool) []string {
	fields := strings.FieldsFunc(s, unicode.IsSpace)
	if maxSplit < 0 || int64(len(fields)) <= maxSplit {
		return fields
	}
	// Bounded whitespace split keeps the remainder as a single field. Only
	// the delimiter runs actually consumed by splits are stripped, so the
	// remainder keeps its far-edge whitespace.
	if fromRight {
		var tail []string
		rest := strings.TrimRightFunc(s, unicode.IsSpace)
		for i := int64(0); i < maxSplit; i++ {
			cut := strings.LastIndexFunc(rest, unicode.IsSpace)
			if cut < 0 {
				break
			}
			_, size := utf8.DecodeRuneInString(rest[cut:])
			tail = append(tail, rest[cut+size:])
			rest = strings.TrimRightFunc(rest[:cut], unicode.IsSpace)
		}
		out := []string{rest}
		for i := len(tail) - 1; i >= 0; i-- {
			out = append(out, tail[i])
		}
		return out
	}
	rest := strings.TrimLeftFunc(s, unicode.IsSpace)
	out := make([]string, 0, maxSplit+1)
	for i := int64(0); i < maxSplit; i++ {
		cut := strings.IndexFunc(rest, unicode.IsSpace)
		if cut < 0 {
			break
		}
		out = append(out, rest[:cut])
		rest = strings.TrimLeftFunc(rest[cut:], unicode.IsSpace)
	}
	return append(out, rest)
}

// splitLines splits on the Unicode line-boundary set, treating CRLF as one
// terminator.
func splitLines(s string, keepEnds bool) []string {
	var out []string
	start := 0
	i := 0
	for i < len(s) {
		r, size := utf8.DecodeRuneInString(s[i:])
		if !isLineBreak(r) {
			i += size
			continue
		}
		end := i + size
		if r == '\r' && end < len(s) && s[end] == '\n' {
			end++
		}
		if keepEnds {
			out = append(out, s[start:end])
		} else {
			out = append(out, s[start:i])
		}
		i = end
		start = end
	}
	if start < len(s) {
		out = append(out, s[start:])
	}
	return out
}

func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', 0x1c, 0x1d, 0x1e, 0x85, 0x2028, 0x2029:
		return true
	}
	return false
}

func (e *Local) StringIs(h Handle, pred StringPredicate) (bool, Result) {
	n, res := e.str(h)
	if res != ResultOK {
		return false, res
	}
	return classify(n.s, pred), ResultOK
}

func classify(s string, pred StringPredicate) bool {
	switch pred {
	case PredIsASCII:
		for i := 0; i < len(s); i++ {
			if s[i] >= utf8.RuneSelf {
				return false
			}
		}
		return true
	case PredIsPrintable:
		for _, r := range s {
			if !unicode.IsPrint(r) {
				return false
			}
		}
		return true
	case PredIsIdentifier:
		return isIdentifier(s)
	case PredIsTitle:
		return isTitle(s)
	case PredIsLower, PredIsUpper:
		return isCased(s, pred == PredIsLower)
	}

	if s == "" {
		return false
	}
	for _, r := range s {
		switch pred {
		case PredIsAlnum:
			if !unicode.IsLetter(r) && !unicode.IsDigit(r) && !unicode.IsNumber(r) {
				return false
			}
		case PredIsAlpha:
			if !unicode.IsLetter(r) {
				return false
			}
		case PredIsDecimal:
			if !unicode.Is(unicode.Nd, r) {
				return false
			}
		case PredIsDigit:
			if !unicode.IsDigit(r) && !unicode.Is(unicode.No, r) {
				return false
			}
		case PredIsNumeric:
			if !unicode.IsNumber(r) {
				return false
			}
		case PredIsSpace:
			if !unicode.IsSpace(r) {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '_' || unicode.IsLetter(r) {
			continue
		}
		if i > 0 && (unicode.IsDigit(r) || unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Mc, r) || unicode.Is(unicode.Pc, r)) {
			continue
		}
		return false
	}
	return true
}

// isCased reports all-lower or all-upper over cased runes, requiring at
// least one cased rune.
func isCased(s string, wantLower bool) bool {
	seen := false
	for _, r := range s {
		upper := unicode.IsUpper(r) || unicode.IsTitle(r)
		lower := unicode.IsLower(r)
		if !upper && !lower {
			continue
		}
		seen = true
		if wantLower && upper {
			return false
		}
		if !wantLower && lower {
			return false
		}
	}
	return seen
}

func isTitle(s string) bool {
	seen := false
	prevCased := false
	for _, r := range s {
		switch {
		case unicode.IsUpper(r) || unicode.IsTitle(r):
			if prevCased {
				return false
			}
			seen = true
			prevCased = true
		case unicode.IsLower(r):
			if !prevCased {
				return false
			}
			seen = true
			prevCased = true
		default:
			prevCased = false
		}
	}
	return seen
}

// String codepoint cursor.

type stringCursor struct {
	runes []rune
	pos   int
}

func (e *Local) StringIterBegin(h Handle) (Handle, Result) {
	n, res := e.str(h)
	if res != ResultOK {
		return 0, res
	}
	return e.tab.insert(slotStringIter, &stringCursor{runes: []rune(n.s)}), ResultOK
}

func (e *Local) stringCur(it Handle) (*stringCursor, Result) {
	v, ok := e.tab.get(it, slotStringIter)
	if !ok {
		return nil, ResultInvalidArgument
	}
	return v.(*stringCursor), ResultOK
}

func (e *Local) StringIterNext(it Handle) Result {
	c, res := e.stringCur(it)
	if res != ResultOK {
		return res
	}
	c.pos++
	if c.pos >= len(c.runes) {
		return ResultIteratorEnd
	}
	return ResultOK
}

func (e *Local) StringIterDeref(it Handle) (rune, Result) {
	c, res := e.stringCur(it)
	if res != ResultOK {
		return 0, res
	}
	if c.pos < 0 || c.pos >= len(c.runes) {
		return 0, ResultIteratorEnd
	}
	return c.runes[c.pos], ResultOK
}

func (e *Local) StringIterRelease(it Handle) {
	e.tab.drop(it)
}
