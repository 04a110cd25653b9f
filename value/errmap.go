package value

import (
	"github.com/cycraft-corp/hakka-json/engine"
	"github.com/cycraft-corp/hakka-json/errors"
)

// engErr maps an engine result code to the specific error kind at the call
// site. The mapping is 1:1; codes with no specific meaning surface as
// internal errors, never swallowed.
func engErr(phase errors.Phase, res engine.Result, detail string) error {
	var kind errors.Kind
	switch res {
	case engine.ResultParseError:
		kind = errors.KindValue
	case engine.ResultTypeError:
		kind = errors.KindType
	case engine.ResultKeyNotFound:
		kind = errors.KindKey
	case engine.ResultIndexOutOfBounds:
		kind = errors.KindIndex
	case engine.ResultInvalidArgument:
		kind = errors.KindValue
	case engine.ResultOverflow:
		kind = errors.KindOverflow
	case engine.ResultDepthExceeded:
		kind = errors.KindRecursion
	case engine.ResultIteratorEnd:
		kind = errors.KindStopIteration
	default:
		kind = errors.KindInternal
	}
	return errors.New(phase, kind).Value(res).Detail("%s: %s", detail, res).Build()
}

func errEmpty(phase errors.Phase) error {
	return errors.ValueError(phase, "value is empty: handle released or moved away")
}
