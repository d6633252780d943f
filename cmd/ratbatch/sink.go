package main

import (
	"bytes"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"go.uber.org/zap"
)

// pidLogPath inserts the process ID before the extension of path, so
// concurrent runs write separate files: ratbatch.zst becomes ratbatch.<pid>.zst.
func pidLogPath(path string) string {
	ext := filepath.Ext(path)
	return fmt.Sprintf("%s.%d%s", strings.TrimSuffix(path, ext), os.Getpid(), ext)
}

// newCompressedSink opens the log file named by a zstd:// URL for the
// current process. Earlier compressed output of the same pid is kept and new
// frames follow it; a file that does not hold zstd data is overwritten.
func newCompressedSink(u *url.URL) (zap.Sink, error) {
	filePath := pidLogPath(u.Path)

	flags := os.O_CREATE | os.O_WRONLY

	fileInfo, err := os.Stat(filePath)
	if err == nil && fileInfo.Size() > 0 {
		if hasZstdMagic(filePath) {
			flags |= os.O_APPEND
		} else {
			flags |= os.O_TRUNC
		}
	}

	file, err := os.OpenFile(filePath, flags, 0644)
	if err != nil {
		return nil, err
	}

	encoder, err := zstd.NewWriter(file, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		_ = file.Close()
		return nil, err
	}

	return &compressedSink{
		file:    file,
		encoder: encoder,
	}, nil
}

// zstdMagic opens every zstd frame.
var zstdMagic = []byte{0x28, 0xB5, 0x2F, 0xFD}

// hasZstdMagic reports whether the log file at filePath begins with a zstd frame.
func hasZstdMagic(filePath string) bool {
	file, err := os.Open(filePath)
	if err != nil {
		return false
	}
	defer func() {
		_ = file.Close()
	}()

	head := make([]byte, len(zstdMagic))
	if _, err := io.ReadFull(file, head); err != nil {
		return false
	}
	return bytes.Equal(head, zstdMagic)
}

// compressedSink is the zap.Sink behind the zstd:// scheme: log lines are
// compressed into one stream per ratbatch process.
type compressedSink struct {
	file    *os.File
	encoder *zstd.Encoder
}

// Write reports the uncompressed length of p, which is what zap counts.
func (s *compressedSink) Write(p []byte) (int, error) {
	_, err := s.encoder.Write(p)
	if err != nil {
		return 0, err
	}
	return len(p), nil
}

// Sync pushes pending log lines through the encoder and onto disk.
func (s *compressedSink) Sync() error {
	if err := s.encoder.Flush(); err != nil {
		return err
	}
	return s.file.Sync()
}

// Close finishes the zstd stream and releases the log file. The file is
// closed on every path; the encoder error wins when both fail.
func (s *compressedSink) Close() error {
	encErr := s.encoder.Close()
	fileErr := s.file.Close()

	if encErr != nil {
		return encErr
	}
	return fileErr
}
