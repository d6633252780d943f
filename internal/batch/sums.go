package batch

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/robottwo/ratbatch/internal/evaluate"
	"github.com/robottwo/ratbatch/internal/rational"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// ReadRationalList parses every whitespace-separated token of every line of
// in as a rational literal, in order.
func ReadRationalList(in io.Reader) (*rational.List, error) {
	list := rational.NewList()

	err := eachLine(in, func(line string) error {
		for _, tok := range evaluate.Tokenize(line) {
			val, err := evaluate.ParseOperand(tok)
			if err != nil {
				return err
			}
			if err := list.Append(val); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

// ReadRationalListFile is ReadRationalList over the file at path.
func ReadRationalListFile(path string) (*rational.List, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()
	return ReadRationalList(f)
}

// SumFile returns the output line for one input file.
func (r *Runner) SumFile(path string) (string, Unit) {
	u := Unit{Mode: ModeSum, Input: path}

	list, err := ReadRationalListFile(path)
	if err == nil {
		var sum rational.Rational
		sum, err = list.Sum()
		if err == nil {
			u.Value = sum.String()
			return fmt.Sprintf("%s: %s", path, r.formatValue(sum)), u
		}
	}

	u.Err = err
	return fmt.Sprintf("%s: Error - %s", path, describe(err)), u
}

// RunListSums writes one line to w per file in files with the sum of the
// file's rational literals. A file that cannot be read or summed yields an
// error line; only write errors are returned.
func (r *Runner) RunListSums(files []string, w io.Writer) (Summary, error) {
	out := bufio.NewWriter(w)

	units := make([]Unit, 0, len(files))
	for _, path := range files {
		line, u := r.SumFile(path)
		if _, err := fmt.Fprintln(out, line); err != nil {
			return summarize(units), fmt.Errorf("failed to write result: %w", err)
		}
		units = append(units, u)
		r.record(u)
	}

	if err := out.Flush(); err != nil {
		return summarize(units), fmt.Errorf("failed to write result: %w", err)
	}
	return summarize(units), nil
}

// RunListSumFile runs RunListSums into outPath, replacing it if it exists.
func (r *Runner) RunListSumFile(files []string, outPath string) (summary Summary, err error) {
	out, err := createOutput(outPath)
	if err != nil {
		return Summary{}, err
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	r.logger.Info("summing rational lists", zap.Strings("files", files), zap.String("output", outPath))
	return r.RunListSums(files, out)
}

func summarize(units []Unit) Summary {
	return Summary{
		Units:  len(units),
		Failed: lo.CountBy(units, func(u Unit) bool { return u.Err != nil }),
	}
}
