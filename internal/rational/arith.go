package rational

import "math"

// Checked int64 helpers. Every intermediate product and sum of the
// cross-multiplication formulas goes through these so a result that does not
// fit in an int64 surfaces as ErrOverflow instead of wrapping around.

func mulInt64(a, b int64) (int64, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	if (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return 0, ErrOverflow
	}
	c := a * b
	if c/b != a {
		return 0, ErrOverflow
	}
	return c, nil
}

func addInt64(a, b int64) (int64, error) {
	c := a + b
	if (c > a) != (b > 0) {
		return 0, ErrOverflow
	}
	return c, nil
}

func subInt64(a, b int64) (int64, error) {
	c := a - b
	if (c < a) != (b > 0) {
		return 0, ErrOverflow
	}
	return c, nil
}

// absUint64 returns |x| without overflowing on math.MinInt64.
func absUint64(x int64) uint64 {
	u := uint64(x)
	if x < 0 {
		u = -u
	}
	return u
}

func gcd(a, b uint64) uint64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// crossTerms computes a.n*b.d and b.n*a.d, the numerator terms shared by
// addition and subtraction.
func crossTerms(a, b Rational) (int64, int64, error) {
	left, err := mulInt64(a.n, b.den())
	if err != nil {
		return 0, 0, err
	}
	right, err := mulInt64(b.n, a.den())
	if err != nil {
		return 0, 0, err
	}
	return left, right, nil
}
