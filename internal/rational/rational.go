// Package rational implements exact fractions over int64 and an ordered
// container of them.
//
// A Rational is always kept in canonical form: numerator and denominator are
// coprime, the denominator is strictly positive and zero is 0/1. The zero
// value of Rational is 0/1.
package rational

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// Rational is an exact fraction n/d in canonical form. Values are immutable
// through the arithmetic methods and safe to copy; only Set mutates.
//
// The zero value is 0/1 but its stored denominator is 0, so Rational{} and
// FromInt(0) differ under ==. Compare with Equal or Cmp.
type Rational struct {
	n int64
	// d is stored as-is; the zero value reads as 1 through den().
	d int64
}

// New returns n/d in canonical form. It fails with ErrInvalidArgument when d
// is zero.
func New(n, d int64) (Rational, error) {
	return normalize(n, d)
}

// FromInt returns n/1.
func FromInt(n int64) Rational {
	return Rational{n: n, d: 1}
}

// MustNew is like New but panics on error. Intended for constants and tests.
func MustNew(n, d int64) Rational {
	r, err := New(n, d)
	if err != nil {
		panic(err)
	}
	return r
}

// Parse reads a literal of the form "n/d" or a plain integer "n". The parts
// of a fraction literal may carry surrounding whitespace.
func Parse(s string) (Rational, error) {
	num, den, ok := strings.Cut(s, "/")
	if !ok {
		n, err := ParseInt(s)
		if err != nil {
			return Rational{}, err
		}
		return FromInt(n), nil
	}
	if strings.Contains(den, "/") {
		return Rational{}, fmt.Errorf("%w %q: too many '/'", ErrParse, s)
	}

	n, err := ParseInt(num)
	if err != nil {
		return Rational{}, err
	}
	d, err := ParseInt(den)
	if err != nil {
		return Rational{}, err
	}
	return New(n, d)
}

// ParseInt reads a base-10 integer literal, allowing surrounding whitespace
// and a leading sign.
func ParseInt(s string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, fmt.Errorf("%w: %q", ErrOverflow, s)
		}
		return 0, fmt.Errorf("%w %q", ErrParse, s)
	}
	return v, nil
}

// normalize reduces n/d by their gcd and moves the sign to the numerator.
// A zero numerator always yields 0/1, so gcd is never asked for gcd(0, 0).
func normalize(n, d int64) (Rational, error) {
	if d == 0 {
		return Rational{}, ErrInvalidArgument
	}
	if n == 0 {
		return Rational{n: 0, d: 1}, nil
	}

	g := gcd(absUint64(n), absUint64(d))
	if g > 1 {
		n /= int64(g)
		d /= int64(g)
	}
	if d < 0 {
		if n == math.MinInt64 || d == math.MinInt64 {
			return Rational{}, ErrOverflow
		}
		n, d = -n, -d
	}
	return Rational{n: n, d: d}, nil
}

func (r Rational) den() int64 {
	if r.d == 0 {
		return 1
	}
	return r.d
}

// Num returns the numerator.
func (r Rational) Num() int64 { return r.n }

// Den returns the denominator, always positive.
func (r Rational) Den() int64 { return r.den() }

// Rat makes Rational an Operand.
func (r Rational) Rat() Rational { return r }

func (r Rational) IsZero() bool { return r.n == 0 }

// Add returns r + o.
func (r Rational) Add(o Operand) (Rational, error) {
	b := o.Rat()
	left, right, err := crossTerms(r, b)
	if err != nil {
		return Rational{}, err
	}
	n, err := addInt64(left, right)
	if err != nil {
		return Rational{}, err
	}
	d, err := mulInt64(r.den(), b.den())
	if err != nil {
		return Rational{}, err
	}
	return normalize(n, d)
}

// Sub returns r - o.
func (r Rational) Sub(o Operand) (Rational, error) {
	b := o.Rat()
	left, right, err := crossTerms(r, b)
	if err != nil {
		return Rational{}, err
	}
	n, err := subInt64(left, right)
	if err != nil {
		return Rational{}, err
	}
	d, err := mulInt64(r.den(), b.den())
	if err != nil {
		return Rational{}, err
	}
	return normalize(n, d)
}

// Mul returns r * o.
func (r Rational) Mul(o Operand) (Rational, error) {
	b := o.Rat()
	n, err := mulInt64(r.n, b.n)
	if err != nil {
		return Rational{}, err
	}
	d, err := mulInt64(r.den(), b.den())
	if err != nil {
		return Rational{}, err
	}
	return normalize(n, d)
}

// Div returns r / o. It fails with ErrDivisionByZero when o is zero.
func (r Rational) Div(o Operand) (Rational, error) {
	b := o.Rat()
	if b.IsZero() {
		return Rational{}, ErrDivisionByZero
	}
	n, err := mulInt64(r.n, b.den())
	if err != nil {
		return Rational{}, err
	}
	d, err := mulInt64(r.den(), b.n)
	if err != nil {
		return Rational{}, err
	}
	return normalize(n, d)
}

// Neg returns -r.
func (r Rational) Neg() (Rational, error) {
	if r.n == math.MinInt64 {
		return Rational{}, ErrOverflow
	}
	return Rational{n: -r.n, d: r.den()}, nil
}

// Float64 returns the nearest float64 to n/d. The conversion is lossy and
// only meant for display.
func (r Rational) Float64() float64 {
	return float64(r.n) / float64(r.den())
}

// String returns "n/d". Parse accepts the result.
func (r Rational) String() string {
	return strconv.FormatInt(r.n, 10) + "/" + strconv.FormatInt(r.den(), 10)
}

// Copy returns an independent Rational with the same value.
func (r Rational) Copy() Rational {
	return Rational{n: r.n, d: r.den()}
}

// Equal reports whether r and o denote the same number. Canonical form makes
// this a field comparison.
func (r Rational) Equal(o Rational) bool {
	return r.n == o.n && r.den() == o.den()
}

// Cmp returns -1, 0 or +1 depending on whether r is less than, equal to or
// greater than o.
func (r Rational) Cmp(o Rational) int {
	if r.Equal(o) {
		return 0
	}
	left := new(big.Int).Mul(big.NewInt(r.n), big.NewInt(o.den()))
	right := new(big.Int).Mul(big.NewInt(o.n), big.NewInt(r.den()))
	return left.Cmp(right)
}

// Get returns the field named by sel.
func (r Rational) Get(sel Selector) (int64, error) {
	switch sel {
	case Numerator:
		return r.n, nil
	case Denominator:
		return r.den(), nil
	}
	return 0, fmt.Errorf("%w: %v", ErrInvalidKey, sel)
}

// Set replaces the field named by sel and renormalizes both fields. On error
// r is left unchanged.
func (r *Rational) Set(sel Selector, v int64) error {
	var (
		next Rational
		err  error
	)
	switch sel {
	case Numerator:
		next, err = normalize(v, r.den())
	case Denominator:
		if v == 0 {
			return ErrInvalidArgument
		}
		next, err = normalize(r.n, v)
	default:
		return fmt.Errorf("%w: %v", ErrInvalidKey, sel)
	}
	if err != nil {
		return err
	}
	*r = next
	return nil
}
