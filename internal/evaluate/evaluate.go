// Package evaluate folds whitespace-separated arithmetic lines into a single
// Rational.
//
// There is no precedence and there are no parentheses: operands are combined
// strictly left to right with whichever operator was seen last, so
// "3 + 1/2 * 2" is (3 + 1/2) * 2 = 7/1.
package evaluate

import (
	"strings"

	"github.com/robottwo/ratbatch/internal/rational"
	"go.uber.org/zap"
)

// Result is the outcome of evaluating one line. Valid is false when the line
// held no operand tokens.
type Result struct {
	Value rational.Rational
	Valid bool
}

type Evaluator struct {
	logger *zap.Logger
}

// NewEvaluator returns an Evaluator that logs each fold step at debug level.
// A nil logger disables logging.
func NewEvaluator(logger *zap.Logger) *Evaluator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Evaluator{logger: logger}
}

// Tokenize splits a line on runs of whitespace.
func Tokenize(line string) []string {
	return strings.Fields(line)
}

// ParseOperand parses a fraction literal when tok contains '/' and an integer
// literal otherwise.
func ParseOperand(tok string) (rational.Rational, error) {
	if strings.Contains(tok, "/") {
		return rational.Parse(tok)
	}
	n, err := rational.ParseInt(tok)
	if err != nil {
		return rational.Rational{}, err
	}
	return rational.FromInt(n), nil
}

// Evaluate folds the tokens of line into one value. The current operator
// starts as '+'; an operator token only replaces it. The first operand becomes
// the running result as-is, so an operator before it has no effect. Every
// later operand is combined with the running result using the current
// operator. The first error aborts the fold.
func (e *Evaluator) Evaluate(line string) (Result, error) {
	var (
		result Result
		op     = OpAdd
	)

	for _, tok := range Tokenize(line) {
		if next, ok := ParseOperator(tok); ok {
			op = next
			continue
		}

		val, err := ParseOperand(tok)
		if err != nil {
			return Result{}, err
		}

		if !result.Valid {
			result = Result{Value: val, Valid: true}
			continue
		}

		folded, err := op.Apply(result.Value, val)
		if err != nil {
			e.logger.Debug("fold failed",
				zap.Stringer("lhs", result.Value),
				zap.Stringer("op", op),
				zap.Stringer("rhs", val),
				zap.Error(err))
			return Result{}, err
		}
		e.logger.Debug("fold",
			zap.Stringer("lhs", result.Value),
			zap.Stringer("op", op),
			zap.Stringer("rhs", val),
			zap.Stringer("result", folded))
		result.Value = folded
	}

	return result, nil
}

var defaultEvaluator = NewEvaluator(nil)

// Evaluate evaluates line without logging.
func Evaluate(line string) (Result, error) {
	return defaultEvaluator.Evaluate(line)
}
