// Package security provides input validation and resource limits for acoconv.
package security

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrSizeLimitExceeded is returned by LimitedReader once its limit is used up.
var ErrSizeLimitExceeded = errors.New("decompression size limit exceeded")

// ValidateInputPath checks that path names an existing regular file.
// The underlying fs error is wrapped so callers can test for fs.ErrNotExist or fs.ErrPermission.
func ValidateInputPath(path string) error {
	if path == "" {
		return fmt.Errorf("swatch path cannot be empty")
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot access swatch file: %w", err)
	}

	if info.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", path)
	}

	return nil
}

// ValidateOutputPath ensures an output path stays within baseDir.
func ValidateOutputPath(outputPath, baseDir string) error {
	if outputPath == "" {
		return fmt.Errorf("empty output path")
	}

	absOutput, err := filepath.Abs(filepath.Clean(outputPath))
	if err != nil {
		return fmt.Errorf("invalid output path: %w", err)
	}

	absBase, err := filepath.Abs(filepath.Clean(baseDir))
	if err != nil {
		return fmt.Errorf("invalid base directory: %w", err)
	}

	if !strings.HasPrefix(absOutput, absBase+string(filepath.Separator)) && absOutput != absBase {
		return fmt.Errorf("output path must be within %s (attempted path traversal)", baseDir)
	}

	return nil
}

// LimitedReader wraps an io.Reader and limits the total bytes that can be read.
// This prevents decompression bomb attacks when opening compressed swatch files.
type LimitedReader struct {
	R         io.Reader
	Remaining int64
}

// Read implements io.Reader with size limits.
func (l *LimitedReader) Read(p []byte) (int, error) {
	if l.Remaining <= 0 {
		// Allow a clean EOF when the source ends exactly at the limit.
		var probe [1]byte
		if n, err := l.R.Read(probe[:]); n == 0 && errors.Is(err, io.EOF) {
			return 0, io.EOF
		}
		return 0, ErrSizeLimitExceeded
	}
	if int64(len(p)) > l.Remaining {
		p = p[:l.Remaining]
	}
	n, err := l.R.Read(p)
	l.Remaining -= int64(n)
	return n, err
}

// NewLimitedReader creates a new LimitedReader with the specified size limit.
func NewLimitedReader(r io.Reader, maxBytes int64) *LimitedReader {
	return &LimitedReader{
		R:         r,
		Remaining: maxBytes,
	}
}
