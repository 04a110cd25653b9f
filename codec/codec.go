package codec

import (
	"io"
	"os"

	"github.com/cycraft-corp/hakka-json/engine"
	"github.com/cycraft-corp/hakka-json/errors"
	"github.com/cycraft-corp/hakka-json/value"
)

// DefaultMaxDepth bounds nesting for both parse and dump when no explicit
// depth is chosen.
const DefaultMaxDepth = value.DefaultMaxDepth

type config struct {
	rt       *value.Runtime
	maxDepth uint32
}

// Option configures a codec call.
type Option func(*config)

// WithRuntime routes the call through rt instead of the default runtime.
func WithRuntime(rt *value.Runtime) Option {
	return func(c *config) {
		c.rt = rt
	}
}

// WithMaxDepth bounds nesting at maxDepth instead of DefaultMaxDepth.
func WithMaxDepth(maxDepth uint32) Option {
	return func(c *config) {
		c.maxDepth = maxDepth
	}
}

func newConfig(opts []Option) config {
	c := config{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(&c)
	}
	if c.rt == nil {
		c.rt = value.Default()
	}
	return c
}

// Loads parses data into a value. The root must be an array or an object,
// never a bare scalar: a leading '[' routes to array parsing and anything
// else to object parsing, so scalar roots fail as malformed objects.
func Loads(data []byte, opts ...Option) (value.Value, error) {
	c := newConfig(opts)
	eng := c.rt.Engine()

	var h engine.Handle
	var res engine.Result
	if firstSignificant(data) == '[' {
		h, res = eng.LoadsArray(data, c.maxDepth)
	} else {
		h, res = eng.LoadsObject(data, c.maxDepth)
	}
	if res != engine.ResultOK {
		return nil, parseErr(res, c.maxDepth)
	}
	return c.rt.Adopt(h)
}

// LoadsString parses s into a value.
func LoadsString(s string, opts ...Option) (value.Value, error) {
	return Loads([]byte(s), opts...)
}

// Load reads r to the end and parses the contents.
func Load(r io.Reader, opts ...Option) (value.Value, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseParse, errors.KindValue, err, "reading input failed")
	}
	return Loads(data, opts...)
}

// LoadFile parses the contents of the file at path.
func LoadFile(path string, opts ...Option) (value.Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseParse, errors.KindValue, err, "reading file failed")
	}
	return Loads(data, opts...)
}

// Dumps serializes v. A nil or Invalid value fails with a type error
// before any engine call.
func Dumps(v value.Value, opts ...Option) (string, error) {
	c := newConfig(opts)
	if err := checkDumpable(v); err != nil {
		return "", err
	}
	return v.DumpsDepth(c.maxDepth)
}

// Dump serializes v into w.
func Dump(w io.Writer, v value.Value, opts ...Option) error {
	s, err := Dumps(v, opts...)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, s); err != nil {
		return errors.Wrap(errors.PhaseDump, errors.KindValue, err, "writing output failed")
	}
	return nil
}

// DumpFile serializes v into the file at path, replacing it.
func DumpFile(path string, v value.Value, opts ...Option) error {
	s, err := Dumps(v, opts...)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(s), 0o644); err != nil {
		return errors.Wrap(errors.PhaseDump, errors.KindValue, err, "writing file failed")
	}
	return nil
}

func checkDumpable(v value.Value) error {
	if v == nil {
		return errors.TypeError(errors.PhaseDump, "cannot dump nil")
	}
	if v.Kind() == value.KindInvalid {
		return errors.TypeError(errors.PhaseDump, "invalid value has no JSON representation")
	}
	return nil
}

// firstSignificant returns the first byte outside JSON whitespace, or zero
// when there is none.
func firstSignificant(data []byte) byte {
	for _, b := range data {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		}
		return b
	}
	return 0
}

func parseErr(res engine.Result, maxDepth uint32) error {
	switch res {
	case engine.ResultDepthExceeded:
		return errors.Recursion(errors.PhaseParse, int(maxDepth))
	case engine.ResultParseError:
		return errors.ValueError(errors.PhaseParse, "malformed document")
	}
	return errors.New(errors.PhaseParse, errors.KindInternal).Value(res).Detail("parse failed: %s", res).Build()
}
