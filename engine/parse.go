package engine

import (
	"bytes"
	"io"
	"strconv"

	"github.com/go-json-experiment/json/jsontext"
	"go.uber.org/zap"
)

// LoadsArray parses data whose root must be an array.
func (e *Local) LoadsArray(data []byte, maxDepth uint32) (Handle, Result) {
	return e.loads(data, maxDepth, TagArray)
}

// LoadsObject parses data whose root must be an object.
func (e *Local) LoadsObject(data []byte, maxDepth uint32) (Handle, Result) {
	return e.loads(data, maxDepth, TagObject)
}

func (e *Local) loads(data []byte, maxDepth uint32, want Tag) (Handle, Result) {
	// Duplicate names are legal here: parsing keeps the last writer, which
	// the token loop implements by plain map overwrite.
	dec := jsontext.NewDecoder(bytes.NewReader(data), jsontext.AllowDuplicateNames(true))

	n, res := parseValue(dec, maxDepth, 0)
	if res != ResultOK {
		e.rejected("loads", res, zap.Int("input_bytes", len(data)))
		return 0, res
	}
	if n.kind != want {
		e.rejected("loads", ResultParseError,
			zap.Stringer("root", n.kind), zap.Stringer("want", want))
		return 0, ResultParseError
	}

	// Anything after the root value, other than whitespace, is garbage.
	if _, err := dec.ReadToken(); err != io.EOF {
		e.rejected("loads", ResultParseError, zap.Int64("trailing_at", dec.InputOffset()))
		return 0, ResultParseError
	}
	return e.put(n)
}

func parseValue(dec *jsontext.Decoder, maxDepth, depth uint32) (*node, Result) {
	if dec.PeekKind() == '0' {
		raw, err := dec.ReadValue()
		if err != nil {
			return nil, ResultParseError
		}
		return parseNumber(raw)
	}

	tok, err := dec.ReadToken()
	if err != nil {
		return nil, ResultParseError
	}

	switch tok.Kind() {
	case 'n':
		return nullNode(), ResultOK
	case 't':
		return boolNode(true), ResultOK
	case 'f':
		return boolNode(false), ResultOK
	case '"':
		return stringNode(tok.String()), ResultOK
	case '[':
		if depth+1 > maxDepth {
			return nil, ResultDepthExceeded
		}
		arr := arrayNode()
		for dec.PeekKind() != ']' {
			child, res := parseValue(dec, maxDepth, depth+1)
			if res != ResultOK {
				return nil, res
			}
			arr.arr = append(arr.arr, child)
		}
		if _, err := dec.ReadToken(); err != nil {
			return nil, ResultParseError
		}
		return arr, ResultOK
	case '{':
		if depth+1 > maxDepth {
			return nil, ResultDepthExceeded
		}
		obj := objectNode()
		for dec.PeekKind() != '}' {
			name, err := dec.ReadToken()
			if err != nil || name.Kind() != '"' {
				return nil, ResultParseError
			}
			// The token's text is only valid until the next decoder
			// call; copy it out before descending into the value.
			key := name.String()
			child, res := parseValue(dec, maxDepth, depth+1)
			if res != ResultOK {
				return nil, res
			}
			obj.obj.set(key, child)
		}
		if _, err := dec.ReadToken(); err != nil {
			return nil, ResultParseError
		}
		return obj, ResultOK
	}
	return nil, ResultParseError
}

// parseNumber keeps integer literals as 64-bit ints when they fit and falls
// back to float64 otherwise. Bare nan/inf tokens never reach here: the
// decoder already rejects them as malformed JSON.
func parseNumber(raw []byte) (*node, Result) {
	s := string(raw)
	if !bytes.ContainsAny(raw, ".eE") {
		if v, err := strconv.ParseInt(s, 10, 64); err == nil {
			return intNode(v), ResultOK
		}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, ResultParseError
	}
	return floatNode(v), ResultOK
}
