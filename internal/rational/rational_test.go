package rational

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		n, d    int64
		wantN   int64
		wantD   int64
		wantErr error
	}{
		{name: "Already reduced", n: 1, d: 2, wantN: 1, wantD: 2},
		{name: "Reduces by gcd", n: 6, d: 8, wantN: 3, wantD: 4},
		{name: "Negative denominator moves sign", n: 3, d: -4, wantN: -3, wantD: 4},
		{name: "Both negative", n: -6, d: -8, wantN: 3, wantD: 4},
		{name: "Zero numerator is 0/1", n: 0, d: -7, wantN: 0, wantD: 1},
		{name: "Whole number", n: 10, d: 5, wantN: 2, wantD: 1},
		{name: "MinInt64 over itself", n: math.MinInt64, d: math.MinInt64, wantN: 1, wantD: 1},
		{name: "Zero denominator", n: 5, d: 0, wantErr: ErrInvalidArgument},
		{name: "Unrepresentable sign flip", n: 1, d: math.MinInt64, wantErr: ErrOverflow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := New(tt.n, tt.d)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantN, r.Num())
			assert.Equal(t, tt.wantD, r.Den())
		})
	}
}

func TestNewIgnoresSignPlacement(t *testing.T) {
	pairs := [][2]int64{{1, 2}, {-3, 9}, {0, 4}, {12, -18}, {7, 1}, {-100, -75}}
	for _, p := range pairs {
		a, err := New(p[0], p[1])
		require.NoError(t, err)
		b, err := New(-p[0], -p[1])
		require.NoError(t, err)
		assert.True(t, a.Equal(b), "%v vs %v", a, b)
	}
}

func TestZeroValueIsZero(t *testing.T) {
	var r Rational
	assert.Equal(t, "0/1", r.String())
	assert.True(t, r.Equal(FromInt(0)))
	assert.NotEqual(t, FromInt(0), r)
	assert.Equal(t, 0, r.Cmp(FromInt(0)))
	assert.Equal(t, int64(1), r.Den())

	sum, err := r.Add(Int(3))
	require.NoError(t, err)
	assert.Equal(t, "3/1", sum.String())
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{name: "Fraction", input: "1/2", want: "1/2"},
		{name: "Fraction reduces", input: "4/-8", want: "-1/2"},
		{name: "Integer", input: "-7", want: "-7/1"},
		{name: "Explicit plus sign", input: "+3", want: "3/1"},
		{name: "Spaces around parts", input: " 3 / 4 ", want: "3/4"},
		{name: "Zero denominator", input: "5/0", wantErr: ErrInvalidArgument},
		{name: "Not a number", input: "abc", wantErr: ErrParse},
		{name: "Missing denominator", input: "3/", wantErr: ErrParse},
		{name: "Too many slashes", input: "1/2/3", wantErr: ErrParse},
		{name: "Decimal", input: "1.5", wantErr: ErrParse},
		{name: "Out of range", input: "99999999999999999999", wantErr: ErrOverflow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Parse(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, r.String())
		})
	}
}

func TestStringRoundTrip(t *testing.T) {
	values := []Rational{
		MustNew(1, 2),
		MustNew(-22, 7),
		MustNew(0, 3),
		FromInt(42),
		MustNew(math.MaxInt64, 3),
		FromInt(math.MinInt64),
	}
	for _, v := range values {
		back, err := Parse(v.String())
		require.NoError(t, err)
		assert.True(t, v.Equal(back), "%v round-tripped to %v", v, back)
	}
}

func TestArithmetic(t *testing.T) {
	half := MustNew(1, 2)
	third := MustNew(1, 3)

	tests := []struct {
		name string
		op   func(Rational, Operand) (Rational, error)
		a    Rational
		b    Operand
		want string
	}{
		{name: "Add fractions", op: Rational.Add, a: half, b: third, want: "5/6"},
		{name: "Add int", op: Rational.Add, a: half, b: Int(1), want: "3/2"},
		{name: "Sub fractions", op: Rational.Sub, a: half, b: third, want: "1/6"},
		{name: "Sub to negative", op: Rational.Sub, a: third, b: half, want: "-1/6"},
		{name: "Sub int", op: Rational.Sub, a: half, b: Int(2), want: "-3/2"},
		{name: "Mul fractions", op: Rational.Mul, a: half, b: third, want: "1/6"},
		{name: "Mul by int reduces", op: Rational.Mul, a: MustNew(7, 2), b: Int(2), want: "7/1"},
		{name: "Div fractions", op: Rational.Div, a: half, b: third, want: "3/2"},
		{name: "Div by negative", op: Rational.Div, a: half, b: MustNew(-1, 4), want: "-2/1"},
		{name: "Div by int", op: Rational.Div, a: FromInt(3), b: Int(6), want: "1/2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.op(tt.a, tt.b)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestAddThenSubRestores(t *testing.T) {
	values := []Rational{MustNew(1, 2), MustNew(-5, 3), FromInt(0), FromInt(9), MustNew(13, 21)}
	for _, a := range values {
		for _, b := range values {
			sum, err := a.Add(b)
			require.NoError(t, err)
			back, err := sum.Sub(b)
			require.NoError(t, err)
			assert.True(t, a.Equal(back), "(%v + %v) - %v = %v", a, b, b, back)
		}
	}
}

func TestDivByZero(t *testing.T) {
	zeros := []Operand{FromInt(0), MustNew(0, 5), Int(0), Rational{}}
	for _, z := range zeros {
		_, err := FromInt(10).Div(z)
		assert.ErrorIs(t, err, ErrDivisionByZero)
	}
}

func TestOverflow(t *testing.T) {
	big := FromInt(math.MaxInt64)

	_, err := big.Add(Int(1))
	assert.ErrorIs(t, err, ErrOverflow)

	_, err = FromInt(math.MinInt64).Sub(Int(1))
	assert.ErrorIs(t, err, ErrOverflow)

	_, err = big.Mul(Int(2))
	assert.ErrorIs(t, err, ErrOverflow)

	_, err = MustNew(1, math.MaxInt64).Add(MustNew(1, 2))
	assert.ErrorIs(t, err, ErrOverflow)

	_, err = FromInt(math.MinInt64).Neg()
	assert.ErrorIs(t, err, ErrOverflow)
}

func TestFloat64(t *testing.T) {
	assert.InDelta(t, 0.5, MustNew(1, 2).Float64(), 1e-12)
	assert.InDelta(t, -0.33333, MustNew(-1, 3).Float64(), 1e-5)
	assert.Equal(t, 7.0, FromInt(7).Float64())
}

func TestCopyIsIndependent(t *testing.T) {
	orig := MustNew(2, 3)
	cp := orig.Copy()
	require.NoError(t, cp.Set(Numerator, 5))

	assert.Equal(t, "2/3", orig.String())
	assert.Equal(t, "5/3", cp.String())
}

func TestCmp(t *testing.T) {
	assert.Equal(t, -1, MustNew(1, 3).Cmp(MustNew(1, 2)))
	assert.Equal(t, 1, MustNew(-1, 3).Cmp(MustNew(-1, 2)))
	assert.Equal(t, 0, MustNew(2, 4).Cmp(MustNew(1, 2)))
	assert.Equal(t, 1, FromInt(math.MaxInt64).Cmp(MustNew(math.MaxInt64-1, 1)))
}

func TestGetSet(t *testing.T) {
	r := MustNew(3, 4)

	n, err := r.Get(Numerator)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	d, err := r.Get(Denominator)
	require.NoError(t, err)
	assert.Equal(t, int64(4), d)

	require.NoError(t, r.Set(Numerator, 2))
	assert.Equal(t, "1/2", r.String(), "set renormalizes")

	require.NoError(t, r.Set(Denominator, -6))
	assert.Equal(t, "-1/6", r.String())

	err = r.Set(Denominator, 0)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Equal(t, "-1/6", r.String(), "failed set leaves value unchanged")

	_, err = r.Get(Selector(9))
	assert.ErrorIs(t, err, ErrInvalidKey)
	assert.ErrorIs(t, r.Set(Selector(9), 1), ErrInvalidKey)
}

func TestParseSelector(t *testing.T) {
	sel, err := ParseSelector("n")
	require.NoError(t, err)
	assert.Equal(t, Numerator, sel)

	sel, err = ParseSelector("d")
	require.NoError(t, err)
	assert.Equal(t, Denominator, sel)

	_, err = ParseSelector("x")
	assert.ErrorIs(t, err, ErrInvalidKey)
}

func TestPromote(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		want    string
		wantErr error
	}{
		{name: "Rational", value: MustNew(1, 3), want: "1/3"},
		{name: "Pointer to Rational", value: func() *Rational { r := MustNew(2, 5); return &r }(), want: "2/5"},
		{name: "Int", value: Int(-4), want: "-4/1"},
		{name: "int", value: 7, want: "7/1"},
		{name: "uint8", value: uint8(200), want: "200/1"},
		{name: "uint64 too large", value: uint64(math.MaxUint64), wantErr: ErrOverflow},
		{name: "string", value: "1/2", wantErr: ErrTypeMismatch},
		{name: "float", value: 0.5, wantErr: ErrTypeMismatch},
		{name: "nil pointer", value: (*Rational)(nil), wantErr: ErrTypeMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Promote(tt.value)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestIsKind(t *testing.T) {
	_, err := Parse("x/1")
	assert.True(t, IsKind(err))
	assert.False(t, IsKind(assert.AnError))
}
