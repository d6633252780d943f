package rational

import (
	"fmt"
	"math"
)

// Operand is the right-hand side of an arithmetic operation: a Rational or an
// Int. Rat promotes the operand to a Rational.
type Operand interface {
	Rat() Rational
}

// Int is an integer operand, promoted to n/1.
type Int int64

func (i Int) Rat() Rational { return FromInt(int64(i)) }

// Promote converts v to a Rational. Rationals pass through, Go integer types
// become n/1 and anything else fails with ErrTypeMismatch.
func Promote(v any) (Rational, error) {
	switch x := v.(type) {
	case Rational:
		return x.Copy(), nil
	case *Rational:
		if x == nil {
			return Rational{}, fmt.Errorf("%w: got nil *Rational", ErrTypeMismatch)
		}
		return x.Copy(), nil
	case Int:
		return x.Rat(), nil
	case int:
		return FromInt(int64(x)), nil
	case int8:
		return FromInt(int64(x)), nil
	case int16:
		return FromInt(int64(x)), nil
	case int32:
		return FromInt(int64(x)), nil
	case int64:
		return FromInt(x), nil
	case uint:
		return fromUint64(uint64(x))
	case uint8:
		return FromInt(int64(x)), nil
	case uint16:
		return FromInt(int64(x)), nil
	case uint32:
		return FromInt(int64(x)), nil
	case uint64:
		return fromUint64(x)
	}
	return Rational{}, fmt.Errorf("%w: got %T", ErrTypeMismatch, v)
}

func fromUint64(u uint64) (Rational, error) {
	if u > math.MaxInt64 {
		return Rational{}, fmt.Errorf("%w: %d", ErrOverflow, u)
	}
	return FromInt(int64(u)), nil
}

// Selector names one field of a Rational.
type Selector int

const (
	Numerator Selector = iota
	Denominator
)

// ParseSelector maps the keys "n" and "d" to a Selector.
func ParseSelector(key string) (Selector, error) {
	switch key {
	case "n":
		return Numerator, nil
	case "d":
		return Denominator, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidKey, key)
}

func (s Selector) String() string {
	switch s {
	case Numerator:
		return "n"
	case Denominator:
		return "d"
	}
	return fmt.Sprintf("Selector(%d)", int(s))
}
