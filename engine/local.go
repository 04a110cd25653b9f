package engine

import (
	"sync"

	"go.uber.org/zap"
)

// Local is the in-process reference engine. Values live in a handle table;
// callers only ever see handles and result codes.
//
// Local is not safe for unsynchronized concurrent mutation of the same
// value. Callers that share containers across goroutines must synchronize
// externally.
type Local struct {
	tab *table
	log *zap.Logger
}

// Option configures a Local engine.
type Option func(*Local)

// WithLogger sets the engine logger. The default is a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Local) {
		e.log = l
	}
}

// WithCapacity sets the initial handle table capacity.
func WithCapacity(n int) Option {
	return func(e *Local) {
		e.tab = newTable(n)
	}
}

// NewLocal creates an in-process engine.
func NewLocal(opts ...Option) *Local {
	e := &Local{
		tab: newTable(0),
		log: Logger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var (
	defaultEngine *Local
	defaultOnce   sync.Once
)

// Default returns the process-wide engine shared by all values that are not
// explicitly bound to another engine.
func Default() *Local {
	defaultOnce.Do(func() {
		defaultEngine = NewLocal()
	})
	return defaultEngine
}

// Live returns the number of live handles, values and cursors together.
// Tests use it to assert release discipline.
func (e *Local) Live() int {
	return e.tab.len()
}

func (e *Local) val(h Handle) (*node, bool) {
	v, ok := e.tab.get(h, slotValue)
	if !ok {
		return nil, false
	}
	return v.(*node), true
}

func (e *Local) ref(h Handle) (*node, Result) {
	n, ok := e.val(h)
	if !ok {
		return nil, ResultInvalidArgument
	}
	return n, ResultOK
}

func (e *Local) put(n *node) (Handle, Result) {
	return e.tab.insert(slotValue, n), ResultOK
}

func (e *Local) typed(h Handle, want Tag) (*node, Result) {
	n, ok := e.val(h)
	if !ok {
		return nil, ResultInvalidArgument
	}
	if n.kind != want {
		return nil, ResultTypeError
	}
	return n, ResultOK
}

// Core

func (e *Local) CreateNull() (Handle, Result)           { return e.put(nullNode()) }
func (e *Local) CreateBool(b bool) (Handle, Result)     { return e.put(boolNode(b)) }
func (e *Local) CreateInt(v int64) (Handle, Result)     { return e.put(intNode(v)) }
func (e *Local) CreateFloat(v float64) (Handle, Result) { return e.put(floatNode(v)) }
func (e *Local) CreateString(s string) (Handle, Result) { return e.put(stringNode(s)) }
func (e *Local) CreateArray() (Handle, Result)          { return e.put(arrayNode()) }
func (e *Local) CreateObject() (Handle, Result)         { return e.put(objectNode()) }
func (e *Local) CreateInvalid() (Handle, Result)        { return e.put(invalidNode()) }

func (e *Local) Type(h Handle) (Tag, Result) {
	n, ok := e.val(h)
	if !ok {
		return TagInvalid, ResultInvalidArgument
	}
	return n.kind, ResultOK
}

func (e *Local) Compare(a, b Handle) (int32, Result) {
	na, ok := e.val(a)
	if !ok {
		return 0, ResultInvalidArgument
	}
	nb, ok := e.val(b)
	if !ok {
		return 0, ResultInvalidArgument
	}
	return compareNodes(na, nb)
}

func (e *Local) Hash(h Handle) (uint64, Result) {
	n, ok := e.val(h)
	if !ok {
		return 0, ResultInvalidArgument
	}
	return hashNode(n)
}

func (e *Local) Release(h Handle) {
	e.tab.drop(h)
}

func (e *Local) GetInt(h Handle) (int64, Result) {
	n, res := e.typed(h, TagInt)
	if res != ResultOK {
		return 0, res
	}
	return n.i, ResultOK
}

func (e *Local) GetFloat(h Handle) (float64, Result) {
	n, res := e.typed(h, TagFloat)
	if res != ResultOK {
		return 0, res
	}
	return n.f, ResultOK
}

func (e *Local) GetBool(h Handle) (bool, Result) {
	n, res := e.typed(h, TagBool)
	if res != ResultOK {
		return false, res
	}
	return n.i != 0, ResultOK
}

func (e *Local) GetString(h Handle) (string, Result) {
	n, res := e.typed(h, TagString)
	if res != ResultOK {
		return "", res
	}
	return n.s, ResultOK
}
