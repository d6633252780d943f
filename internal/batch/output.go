package batch

import (
	"fmt"
	"os"
)

// lockedOutput is an output file held under an exclusive lock, so two runs
// writing the same file cannot interleave their lines.
type lockedOutput struct {
	*os.File
}

// createOutput opens path for writing, waits for the exclusive lock and only
// then truncates it.
func createOutput(path string) (*lockedOutput, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}

	if err := flockExclusive(f.Fd()); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to acquire lock on %s: %w", path, err)
	}
	if err := f.Truncate(0); err != nil {
		_ = flockUnlock(f.Fd())
		_ = f.Close()
		return nil, err
	}

	return &lockedOutput{File: f}, nil
}

// Close releases the lock and closes the file.
func (o *lockedOutput) Close() error {
	_ = flockUnlock(o.Fd())
	return o.File.Close()
}
