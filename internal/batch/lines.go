package batch

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// eachLine calls fn for every line of in, without the line terminator. Lines
// may be of any length. A final line without a newline is still delivered.
func eachLine(in io.Reader, fn func(line string) error) error {
	reader := bufio.NewReader(in)
	for {
		line, err := reader.ReadString('\n')
		if len(line) > 0 {
			if fnErr := fn(strings.TrimSuffix(line, "\n")); fnErr != nil {
				return fnErr
			}
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}
