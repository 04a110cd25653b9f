package value

import (
	"sync"

	"go.uber.org/zap"

	"github.com/cycraft-corp/hakka-json/engine"
	"github.com/cycraft-corp/hakka-json/errors"
)

// Runtime binds the wrapper layer to one engine and interns the singleton
// values. All values created through one Runtime share its engine; values
// from different Runtimes must not be mixed.
type Runtime struct {
	eng engine.Engine
	log *zap.Logger

	null      *Null
	invalid   *Invalid
	truth     *Bool
	falsehood *Bool
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithLogger sets the runtime logger.
func WithLogger(l *zap.Logger) Option {
	return func(rt *Runtime) {
		rt.log = l
	}
}

// NewRuntime creates a Runtime over eng, interning the Null, Invalid, and
// Bool singletons up front.
func NewRuntime(eng engine.Engine, opts ...Option) (*Runtime, error) {
	rt := &Runtime{
		eng: eng,
		log: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(rt)
	}

	hNull, res := eng.CreateNull()
	if res != engine.ResultOK {
		return nil, engErr(errors.PhaseEngine, res, "interning null failed")
	}
	hInvalid, res := eng.CreateInvalid()
	if res != engine.ResultOK {
		return nil, engErr(errors.PhaseEngine, res, "interning invalid failed")
	}
	hTrue, res := eng.CreateBool(true)
	if res != engine.ResultOK {
		return nil, engErr(errors.PhaseEngine, res, "interning true failed")
	}
	hFalse, res := eng.CreateBool(false)
	if res != engine.ResultOK {
		return nil, engErr(errors.PhaseEngine, res, "interning false failed")
	}

	rt.null = &Null{owner{rt: rt, h: hNull, pinned: true}}
	rt.invalid = &Invalid{owner{rt: rt, h: hInvalid, pinned: true}}
	rt.truth = &Bool{owner{rt: rt, h: hTrue, pinned: true}, true}
	rt.falsehood = &Bool{owner{rt: rt, h: hFalse, pinned: true}, false}
	return rt, nil
}

var (
	defaultOnce    sync.Once
	defaultRuntime *Runtime
)

// Default returns the process-wide Runtime over the default local engine.
func Default() *Runtime {
	defaultOnce.Do(func() {
		rt, err := NewRuntime(engine.Default())
		if err != nil {
			// The local engine cannot fail to intern four scalars.
			panic(err)
		}
		defaultRuntime = rt
	})
	return defaultRuntime
}

// Engine returns the engine this runtime is bound to.
func (rt *Runtime) Engine() engine.Engine {
	return rt.eng
}

// Null returns the interned null singleton.
func (rt *Runtime) Null() *Null { return rt.null }

// Invalid returns the interned invalid singleton.
func (rt *Runtime) Invalid() *Invalid { return rt.invalid }

// Bool returns the interned singleton for b.
func (rt *Runtime) Bool(b bool) *Bool {
	if b {
		return rt.truth
	}
	return rt.falsehood
}

// Move transfers the handle out of v into a fresh wrapper of the same
// kind, leaving v empty. Singletons cannot be moved from.
func (rt *Runtime) Move(v Value) (Value, error) {
	o := v.ref()
	h, err := o.take()
	if err != nil {
		return nil, err
	}
	out, err := rt.adoptAs(h, v.Kind())
	if err != nil {
		// Adoption cannot be completed; the handle must not leak.
		rt.eng.Release(h)
		return nil, err
	}
	return out, nil
}

// Adopt turns an engine-produced handle into the correctly typed wrapper.
// Singleton kinds return the interned instance and release the transient
// handle; the remaining kinds take ownership of it. On failure the handle
// is released, never leaked.
func (rt *Runtime) Adopt(h engine.Handle) (Value, error) {
	return rt.adopt(h)
}

func (rt *Runtime) adopt(h engine.Handle) (Value, error) {
	tag, res := rt.eng.Type(h)
	if res != engine.ResultOK {
		rt.eng.Release(h)
		return nil, engErr(errors.PhaseAccess, res, "type query failed")
	}
	kind, ok := kindOf(tag)
	if !ok {
		rt.eng.Release(h)
		return nil, errors.Internal(errors.PhaseAccess, "engine returned an unrecognized tag")
	}
	return rt.adoptAs(h, kind)
}

func (rt *Runtime) adoptAs(h engine.Handle, kind Kind) (Value, error) {
	switch kind {
	case KindNull:
		rt.eng.Release(h)
		return rt.null, nil
	case KindInvalid:
		rt.eng.Release(h)
		return rt.invalid, nil
	case KindBool:
		b, res := rt.eng.GetBool(h)
		rt.eng.Release(h)
		if res != engine.ResultOK {
			return nil, engErr(errors.PhaseAccess, res, "bool read failed")
		}
		return rt.Bool(b), nil
	case KindInt:
		return &Int{owner{rt: rt, h: h}}, nil
	case KindFloat:
		return &Float{owner{rt: rt, h: h}}, nil
	case KindString:
		return &String{owner{rt: rt, h: h}}, nil
	case KindArray:
		return &Array{owner{rt: rt, h: h}}, nil
	case KindObject:
		return &Object{owner{rt: rt, h: h}}, nil
	}
	rt.eng.Release(h)
	return nil, errors.Internal(errors.PhaseAccess, "unreachable kind")
}
