package evaluate

import (
	"fmt"

	"github.com/robottwo/ratbatch/internal/rational"
)

// Operator is one of the four arithmetic operator tokens.
type Operator byte

const (
	OpAdd Operator = '+'
	OpSub Operator = '-'
	OpMul Operator = '*'
	OpDiv Operator = '/'
)

// ParseOperator reports whether tok is exactly one operator symbol.
func ParseOperator(tok string) (Operator, bool) {
	if len(tok) != 1 {
		return 0, false
	}
	switch op := Operator(tok[0]); op {
	case OpAdd, OpSub, OpMul, OpDiv:
		return op, true
	}
	return 0, false
}

func (op Operator) String() string {
	return string(rune(op))
}

// Apply combines lhs and rhs with op.
func (op Operator) Apply(lhs, rhs rational.Rational) (rational.Rational, error) {
	switch op {
	case OpAdd:
		return lhs.Add(rhs)
	case OpSub:
		return lhs.Sub(rhs)
	case OpMul:
		return lhs.Mul(rhs)
	case OpDiv:
		return lhs.Div(rhs)
	}
	return rational.Rational{}, fmt.Errorf("unknown operator %q", byte(op))
}
