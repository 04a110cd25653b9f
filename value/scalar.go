package value

import (
	"math"
	"math/big"

	"github.com/cycraft-corp/hakka-json/engine"
	"github.com/cycraft-corp/hakka-json/errors"
)

// Null is the interned null singleton. It is equal only to itself and its
// hash is a fixed constant.
type Null struct {
	owner
}

func (*Null) Kind() Kind             { return KindNull }
func (*Null) Native() (any, error)   { return nil, nil }
func (*Null) Truthy() bool           { return false }
func (n *Null) Copy() (Value, error) { return n, nil }

// Invalid is the interned sentinel for values with no JSON representation.
// It is produced only by native conversion, never by parsing.
type Invalid struct {
	owner
}

func (*Invalid) Kind() Kind   { return KindInvalid }
func (*Invalid) Truthy() bool { return false }

func (*Invalid) Native() (any, error) {
	return nil, errors.TypeError(errors.PhaseConvert, "invalid value has no native representation")
}

func (i *Invalid) Copy() (Value, error) { return i, nil }

// Bool is one of the two interned booleans. Arithmetic treats it as 1 or 0
// and yields host-native numbers, not new Bool instances.
type Bool struct {
	owner
	b bool
}

func (*Bool) Kind() Kind             { return KindBool }
func (b *Bool) Value() bool          { return b.b }
func (b *Bool) Native() (any, error) { return b.b, nil }
func (b *Bool) Truthy() bool         { return b.b }
func (b *Bool) Copy() (Value, error) { return b, nil }

// Int64 returns 1 for true and 0 for false.
func (b *Bool) Int64() int64 {
	if b.b {
		return 1
	}
	return 0
}

// Add returns the numeric sum as a host integer.
func (b *Bool) Add(other Value) (int64, error) {
	v, err := asInt64(other)
	if err != nil {
		return 0, err
	}
	return b.Int64() + v, nil
}

// Sub returns the numeric difference as a host integer.
func (b *Bool) Sub(other Value) (int64, error) {
	v, err := asInt64(other)
	if err != nil {
		return 0, err
	}
	return b.Int64() - v, nil
}

// Mul returns the numeric product as a host integer.
func (b *Bool) Mul(other Value) (int64, error) {
	v, err := asInt64(other)
	if err != nil {
		return 0, err
	}
	return b.Int64() * v, nil
}

// TrueDiv returns the quotient as a host float, failing on a zero divisor.
func (b *Bool) TrueDiv(other Value) (float64, error) {
	v, err := asFloat64(other)
	if err != nil {
		return 0, err
	}
	if v == 0 {
		return 0, errors.ZeroDivision(errors.PhaseConvert)
	}
	return float64(b.Int64()) / v, nil
}

// ToBytes encodes the boolean as a single 0 or 1 byte.
func (b *Bool) ToBytes() []byte {
	return []byte{byte(b.Int64())}
}

// BoolFromBytes decodes a single 0 or 1 byte into the interned boolean.
func (rt *Runtime) BoolFromBytes(data []byte) (*Bool, error) {
	if len(data) != 1 || data[0] > 1 {
		return nil, errors.ValueError(errors.PhaseConvert, "bool encoding must be a single 0 or 1 byte")
	}
	return rt.Bool(data[0] == 1), nil
}

// Int wraps an immutable signed 64-bit integer.
type Int struct {
	owner
}

// NewInt wraps v.
func (rt *Runtime) NewInt(v int64) (*Int, error) {
	h, res := rt.eng.CreateInt(v)
	if res != engine.ResultOK {
		return nil, engErr(errors.PhaseConvert, res, "int creation failed")
	}
	return &Int{owner{rt: rt, h: h}}, nil
}

// NewIntFromBig wraps v, failing with an overflow error before any engine
// call when v does not fit a signed 64-bit integer.
func (rt *Runtime) NewIntFromBig(v *big.Int) (*Int, error) {
	if !v.IsInt64() {
		return nil, errors.Overflow(errors.PhaseConvert, "integer outside signed 64-bit range", v.String())
	}
	return rt.NewInt(v.Int64())
}

func (*Int) Kind() Kind { return KindInt }

// Value reads the wrapped integer from the engine.
func (i *Int) Value() (int64, error) {
	h, err := i.handle()
	if err != nil {
		return 0, err
	}
	v, res := i.rt.eng.GetInt(h)
	if res != engine.ResultOK {
		return 0, engErr(errors.PhaseAccess, res, "int read failed")
	}
	return v, nil
}

func (i *Int) Native() (any, error) {
	return i.Value()
}

func (i *Int) Truthy() bool {
	v, err := i.Value()
	return err == nil && v != 0
}

func (i *Int) Copy() (Value, error) { return i, nil }

// Add returns a new Int holding the checked sum.
func (i *Int) Add(other Value) (*Int, error) {
	return i.arith(other, func(a, b int64) (int64, bool) {
		s := a + b
		return s, (s > a) == (b > 0)
	})
}

// Sub returns a new Int holding the checked difference.
func (i *Int) Sub(other Value) (*Int, error) {
	return i.arith(other, func(a, b int64) (int64, bool) {
		d := a - b
		return d, (d < a) == (b > 0)
	})
}

// Mul returns a new Int holding the checked product.
func (i *Int) Mul(other Value) (*Int, error) {
	return i.arith(other, func(a, b int64) (int64, bool) {
		if a == 0 || b == 0 {
			return 0, true
		}
		if a == math.MinInt64 && b == -1 {
			return 0, false
		}
		p := a * b
		return p, p/b == a
	})
}

// FloorDiv returns a new Int holding the floored quotient, failing on a
// zero divisor.
func (i *Int) FloorDiv(other Value) (*Int, error) {
	if err := checkDivisor(other); err != nil {
		return nil, err
	}
	return i.arith(other, floorDiv)
}

// Mod returns a new Int holding the floored remainder: the result carries
// the divisor's sign. Fails on a zero divisor.
func (i *Int) Mod(other Value) (*Int, error) {
	if err := checkDivisor(other); err != nil {
		return nil, err
	}
	return i.arith(other, floorMod)
}

func checkDivisor(other Value) error {
	b, err := asInt64(other)
	if err != nil {
		return err
	}
	if b == 0 {
		return errors.ZeroDivision(errors.PhaseConvert)
	}
	return nil
}

// TrueDiv returns the quotient as a host float, failing on a zero divisor.
func (i *Int) TrueDiv(other Value) (float64, error) {
	a, err := i.Value()
	if err != nil {
		return 0, err
	}
	b, err := asFloat64(other)
	if err != nil {
		return 0, err
	}
	if b == 0 {
		return 0, errors.ZeroDivision(errors.PhaseConvert)
	}
	return float64(a) / b, nil
}

// Abs returns a new Int holding the checked absolute value.
func (i *Int) Abs() (*Int, error) {
	v, err := i.Value()
	if err != nil {
		return nil, err
	}
	if v == math.MinInt64 {
		return nil, errors.Overflow(errors.PhaseConvert, "absolute value overflows int64", v)
	}
	if v < 0 {
		v = -v
	}
	return i.rt.NewInt(v)
}

// Pow returns a new Int holding the checked power. A negative exponent
// fails with a value error, the result would not be integral.
func (i *Int) Pow(other Value) (*Int, error) {
	base, err := i.Value()
	if err != nil {
		return nil, err
	}
	exp, err := asInt64(other)
	if err != nil {
		return nil, err
	}
	if exp < 0 {
		return nil, errors.ValueError(errors.PhaseConvert, "negative exponent has no integer result")
	}
	out := int64(1)
	for ; exp > 0; exp-- {
		if base == 0 {
			out = 0
			break
		}
		if out == math.MinInt64 && base == -1 {
			return nil, errors.Overflow(errors.PhaseConvert, "integer power overflows int64", nil)
		}
		p := out * base
		if p/base != out {
			return nil, errors.Overflow(errors.PhaseConvert, "integer power overflows int64", nil)
		}
		out = p
	}
	return i.rt.NewInt(out)
}

// Neg returns a new Int holding the checked negation.
func (i *Int) Neg() (*Int, error) {
	v, err := i.Value()
	if err != nil {
		return nil, err
	}
	if v == math.MinInt64 {
		return nil, errors.Overflow(errors.PhaseConvert, "negation overflows int64", v)
	}
	return i.rt.NewInt(-v)
}

func (i *Int) arith(other Value, op func(a, b int64) (int64, bool)) (*Int, error) {
	a, err := i.Value()
	if err != nil {
		return nil, err
	}
	b, err := asInt64(other)
	if err != nil {
		return nil, err
	}
	out, ok := op(a, b)
	if !ok {
		return nil, errors.Overflow(errors.PhaseConvert, "integer arithmetic overflows int64", nil)
	}
	return i.rt.NewInt(out)
}

func floorDiv(a, b int64) (int64, bool) {
	if b == 0 {
		return 0, false
	}
	if a == math.MinInt64 && b == -1 {
		return 0, false
	}
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q, true
}

func floorMod(a, b int64) (int64, bool) {
	if b == 0 {
		return 0, false
	}
	if a == math.MinInt64 && b == -1 {
		return 0, true
	}
	r := a % b
	if r != 0 && (r < 0) != (b < 0) {
		r += b
	}
	return r, true
}

// Float wraps an immutable IEEE-754 double. NaN and the infinities are
// representable and dump as bare nan/inf/-inf tokens.
type Float struct {
	owner
}

// NewFloat wraps f.
func (rt *Runtime) NewFloat(f float64) (*Float, error) {
	h, res := rt.eng.CreateFloat(f)
	if res != engine.ResultOK {
		return nil, engErr(errors.PhaseConvert, res, "float creation failed")
	}
	return &Float{owner{rt: rt, h: h}}, nil
}

func (*Float) Kind() Kind { return KindFloat }

// Value reads the wrapped float from the engine.
func (f *Float) Value() (float64, error) {
	h, err := f.handle()
	if err != nil {
		return 0, err
	}
	v, res := f.rt.eng.GetFloat(h)
	if res != engine.ResultOK {
		return 0, engErr(errors.PhaseAccess, res, "float read failed")
	}
	return v, nil
}

func (f *Float) Native() (any, error) {
	return f.Value()
}

func (f *Float) Truthy() bool {
	v, err := f.Value()
	return err == nil && v != 0
}

func (f *Float) Copy() (Value, error) { return f, nil }

// IsNaN reports whether the wrapped float is NaN.
func (f *Float) IsNaN() (bool, error) {
	v, err := f.Value()
	if err != nil {
		return false, err
	}
	return math.IsNaN(v), nil
}

// Add returns a new Float holding the sum.
func (f *Float) Add(other Value) (*Float, error) {
	return f.arith(other, func(a, b float64) float64 { return a + b })
}

// Sub returns a new Float holding the difference.
func (f *Float) Sub(other Value) (*Float, error) {
	return f.arith(other, func(a, b float64) float64 { return a - b })
}

// Mul returns a new Float holding the product.
func (f *Float) Mul(other Value) (*Float, error) {
	return f.arith(other, func(a, b float64) float64 { return a * b })
}

// Div returns a new Float holding the quotient, failing on an exactly zero
// divisor.
func (f *Float) Div(other Value) (*Float, error) {
	b, err := asFloat64(other)
	if err != nil {
		return nil, err
	}
	if b == 0 {
		return nil, errors.ZeroDivision(errors.PhaseConvert)
	}
	return f.arith(other, func(a, b float64) float64 { return a / b })
}

// Neg returns a new Float holding the negation.
func (f *Float) Neg() (*Float, error) {
	v, err := f.Value()
	if err != nil {
		return nil, err
	}
	return f.rt.NewFloat(-v)
}

func (f *Float) arith(other Value, op func(a, b float64) float64) (*Float, error) {
	a, err := f.Value()
	if err != nil {
		return nil, err
	}
	b, err := asFloat64(other)
	if err != nil {
		return nil, err
	}
	return f.rt.NewFloat(op(a, b))
}

// asInt64 extracts a host integer from an Int or Bool operand.
func asInt64(v Value) (int64, error) {
	switch t := v.(type) {
	case *Int:
		return t.Value()
	case *Bool:
		return t.Int64(), nil
	case nil:
		return 0, errors.TypeError(errors.PhaseConvert, "operand is nil")
	}
	return 0, errors.TypeError(errors.PhaseConvert, "operand must be an integer or boolean")
}

// asFloat64 extracts a host float from a numeric operand.
func asFloat64(v Value) (float64, error) {
	switch t := v.(type) {
	case *Float:
		return t.Value()
	case *Int:
		i, err := t.Value()
		return float64(i), err
	case *Bool:
		return float64(t.Int64()), nil
	case nil:
		return 0, errors.TypeError(errors.PhaseConvert, "operand is nil")
	}
	return 0, errors.TypeError(errors.PhaseConvert, "operand must be numeric")
}
