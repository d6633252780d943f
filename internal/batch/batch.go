// Package batch drives the evaluator and the list summer over whole inputs.
//
// It is the only place where errors from the arithmetic packages are
// recovered: a failing line or file is written to the output as an error
// entry and processing continues with the next one.
package batch

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/robottwo/ratbatch/internal/evaluate"
	"github.com/robottwo/ratbatch/internal/rational"
	"go.uber.org/zap"
)

// Mode identifies which batch produced a Unit.
type Mode string

const (
	ModeExpression Mode = "expr"
	ModeSum        Mode = "sum"
)

const DefaultPrecision = 5

// Unit is one processed line or file.
type Unit struct {
	Mode  Mode
	Input string
	// Value is the "n/d" result; empty when Err is set.
	Value string
	Err   error
}

// Journal receives every processed Unit. A failing Journal is logged and
// never stops the batch.
type Journal interface {
	Record(u Unit) error
}

// Summary counts the units of one batch.
type Summary struct {
	Units  int
	Failed int
}

func (s Summary) Succeeded() int {
	return s.Units - s.Failed
}

type Runner struct {
	logger    *zap.Logger
	journal   Journal
	precision int
	evaluator *evaluate.Evaluator
}

type Option func(*Runner)

func WithLogger(logger *zap.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

func WithJournal(journal Journal) Option {
	return func(r *Runner) {
		r.journal = journal
	}
}

// WithPrecision sets the number of decimals of the float column.
func WithPrecision(precision int) Option {
	return func(r *Runner) {
		if precision >= 0 {
			r.precision = precision
		}
	}
}

func New(opts ...Option) *Runner {
	r := &Runner{
		logger:    zap.NewNop(),
		precision: DefaultPrecision,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.evaluator = evaluate.NewEvaluator(r.logger)
	return r
}

// errEmptyExpression is reported for lines without any operand.
var errEmptyExpression = errors.New("empty expression")

func (r *Runner) formatValue(v rational.Rational) string {
	return fmt.Sprintf("%s = %.*f", v, r.precision, v.Float64())
}

func (r *Runner) record(u Unit) {
	if u.Err != nil {
		r.logger.Info("unit failed", zap.String("mode", string(u.Mode)), zap.String("input", u.Input), zap.Error(u.Err))
	} else {
		r.logger.Debug("unit done", zap.String("mode", string(u.Mode)), zap.String("input", u.Input), zap.String("value", u.Value))
	}

	if r.journal == nil {
		return
	}
	if err := r.journal.Record(u); err != nil {
		r.logger.Warn("failed to record unit", zap.String("input", u.Input), zap.Error(err))
	}
}

// describe renders err for the output file. Arithmetic errors start with an
// upper-case letter there, e.g. "Division by zero".
func describe(err error) string {
	msg := err.Error()
	if !rational.IsKind(err) && !errors.Is(err, errEmptyExpression) {
		return msg
	}
	first, size := utf8.DecodeRuneInString(msg)
	if first == utf8.RuneError {
		return msg
	}
	return string(unicode.ToUpper(first)) + msg[size:]
}

func trimLine(line string) string {
	return strings.TrimSpace(line)
}
