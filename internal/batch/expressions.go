package batch

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
)

// EvaluateLine evaluates one input line and returns the output line for it.
func (r *Runner) EvaluateLine(line string) (string, Unit) {
	trimmed := trimLine(line)
	u := Unit{Mode: ModeExpression, Input: trimmed}

	res, err := r.evaluator.Evaluate(line)
	switch {
	case err != nil:
		u.Err = err
	case !res.Valid:
		u.Err = errEmptyExpression
	default:
		u.Value = res.Value.String()
		return fmt.Sprintf("%s = %s", trimmed, r.formatValue(res.Value)), u
	}
	return fmt.Sprintf("%s = Error: %s", trimmed, describe(u.Err)), u
}

// RunExpressions writes one output line to w for every line read from in.
// Evaluation errors are written as error lines; only read and write errors
// are returned.
func (r *Runner) RunExpressions(in io.Reader, w io.Writer) (Summary, error) {
	var summary Summary
	out := bufio.NewWriter(w)

	var writeErr error
	readErr := eachLine(in, func(text string) error {
		line, u := r.EvaluateLine(text)
		if _, writeErr = fmt.Fprintln(out, line); writeErr != nil {
			return writeErr
		}

		summary.Units++
		if u.Err != nil {
			summary.Failed++
		}
		r.record(u)
		return nil
	})
	if writeErr != nil {
		return summary, fmt.Errorf("failed to write result: %w", writeErr)
	}

	// Results already computed are written even when reading fails midway.
	if err := out.Flush(); err != nil {
		return summary, fmt.Errorf("failed to write result: %w", err)
	}
	if readErr != nil {
		return summary, fmt.Errorf("failed to read input: %w", readErr)
	}
	return summary, nil
}

// RunExpressionFile evaluates every line of inPath into outPath, replacing
// outPath if it exists.
func (r *Runner) RunExpressionFile(inPath, outPath string) (Summary, error) {
	in, err := os.Open(inPath)
	if err != nil {
		return Summary{}, err
	}
	defer func() {
		_ = in.Close()
	}()

	r.logger.Info("evaluating expressions", zap.String("input", inPath), zap.String("output", outPath))
	return r.RunExpressionsTo(in, outPath)
}

// RunExpressionsTo evaluates every line read from in into outPath. The output
// file is held under an exclusive lock while it is written.
func (r *Runner) RunExpressionsTo(in io.Reader, outPath string) (summary Summary, err error) {
	out, err := createOutput(outPath)
	if err != nil {
		return Summary{}, err
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	return r.RunExpressions(in, out)
}
