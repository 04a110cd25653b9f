package engine

import (
	"math"
	"strconv"
	"strings"

	"github.com/go-json-experiment/json/jsontext"
	"go.uber.org/zap"
)

// DumpSize reports the byte length Dump will produce for h, disregarding
// the caller's depth bound. Sizing and filling are the two phases of the
// dump contract: the wrapper sizes first, then fills.
func (e *Local) DumpSize(h Handle) (uint64, Result) {
	n, ok := e.val(h)
	if !ok {
		return 0, ResultInvalidArgument
	}
	out, res := appendDump(nil, n, math.MaxUint32, 0)
	if res != ResultOK {
		return 0, res
	}
	return uint64(len(out)), ResultOK
}

// Dump serializes h into buf with nesting bounded by maxDepth and reports
// the number of bytes written.
func (e *Local) Dump(h Handle, maxDepth uint32, buf []byte) (uint64, Result) {
	n, ok := e.val(h)
	if !ok {
		return 0, ResultInvalidArgument
	}
	out, res := appendDump(nil, n, maxDepth, 0)
	if res != ResultOK {
		e.rejected("dump", res, zap.Uint32("max_depth", maxDepth))
		return 0, res
	}
	if len(out) > len(buf) {
		e.rejected("dump", ResultNotEnoughMemory,
			zap.Int("need", len(out)), zap.Int("have", len(buf)))
		return 0, ResultNotEnoughMemory
	}
	copy(buf, out)
	return uint64(len(out)), ResultOK
}

func appendDump(dst []byte, n *node, maxDepth, depth uint32) ([]byte, Result) {
	switch n.kind {
	case TagNull:
		return append(dst, "null"...), ResultOK
	case TagBool:
		if n.i != 0 {
			return append(dst, "true"...), ResultOK
		}
		return append(dst, "false"...), ResultOK
	case TagInt:
		return strconv.AppendInt(dst, n.i, 10), ResultOK
	case TagFloat:
		return appendFloat(dst, n.f), ResultOK
	case TagString:
		out, err := jsontext.AppendQuote(dst, n.s)
		if err != nil {
			return dst, ResultInternalError
		}
		return out, ResultOK
	case TagArray:
		if depth+1 > maxDepth {
			return dst, ResultDepthExceeded
		}
		dst = append(dst, '[')
		for i, el := range n.arr {
			if i > 0 {
				dst = append(dst, ", "...)
			}
			var res Result
			dst, res = appendDump(dst, el, maxDepth, depth+1)
			if res != ResultOK {
				return dst, res
			}
		}
		return append(dst, ']'), ResultOK
	case TagObject:
		if depth+1 > maxDepth {
			return dst, ResultDepthExceeded
		}
		dst = append(dst, '{')
		for i, ent := range n.obj.entries {
			if i > 0 {
				dst = append(dst, ", "...)
			}
			out, err := jsontext.AppendQuote(dst, ent.key)
			if err != nil {
				return dst, ResultInternalError
			}
			dst = append(out, ": "...)
			var res Result
			dst, res = appendDump(dst, ent.val, maxDepth, depth+1)
			if res != ResultOK {
				return dst, res
			}
		}
		return append(dst, '}'), ResultOK
	}
	// Invalid has no JSON representation.
	return dst, ResultTypeError
}

// appendFloat writes non-finite values as the bare nan/inf/-inf tokens the
// original wire format uses. The parser deliberately rejects these same
// tokens; the asymmetry is part of the contract.
func appendFloat(dst []byte, f float64) []byte {
	switch {
	case math.IsNaN(f):
		return append(dst, "nan"...)
	case math.IsInf(f, 1):
		return append(dst, "inf"...)
	case math.IsInf(f, -1):
		return append(dst, "-inf"...)
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return append(dst, s...)
}
