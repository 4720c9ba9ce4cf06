// Package compression opens swatch files stored plain, compressed, or inside archives.
package compression

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jmylchreest/acoconv/internal/security"
)

// MaxDecompressedSize caps the size of a decompressed swatch file.
const MaxDecompressedSize = 16 * 1024 * 1024

// Format identifies how a swatch file is stored.
type Format int

// Supported storage formats.
const (
	FormatPlain Format = iota
	FormatGzip
	FormatBzip2
	FormatXz
	FormatZip
	FormatTarGz
	FormatTarBz2
	FormatTarXz
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatGzip:
		return "gzip"
	case FormatBzip2:
		return "bzip2"
	case FormatXz:
		return "xz"
	case FormatZip:
		return "zip"
	case FormatTarGz:
		return "tar.gz"
	case FormatTarBz2:
		return "tar.bz2"
	case FormatTarXz:
		return "tar.xz"
	default:
		return "plain"
	}
}

// IsArchive reports whether the format can hold more than one file.
func (f Format) IsArchive() bool {
	switch f {
	case FormatZip, FormatTarGz, FormatTarBz2, FormatTarXz:
		return true
	default:
		return false
	}
}

// DetectFormat determines the storage format from a file name.
func DetectFormat(name string) Format {
	lower := strings.ToLower(name)

	// Check for tar archives first, they share suffixes with single-stream formats.
	switch {
	case strings.HasSuffix(lower, ".tar.gz"), strings.HasSuffix(lower, ".tgz"):
		return FormatTarGz
	case strings.HasSuffix(lower, ".tar.xz"), strings.HasSuffix(lower, ".txz"):
		return FormatTarXz
	case strings.HasSuffix(lower, ".tar.bz2"), strings.HasSuffix(lower, ".tbz"), strings.HasSuffix(lower, ".tbz2"):
		return FormatTarBz2
	case strings.HasSuffix(lower, ".zip"):
		return FormatZip
	case strings.HasSuffix(lower, ".gz"):
		return FormatGzip
	case strings.HasSuffix(lower, ".xz"):
		return FormatXz
	case strings.HasSuffix(lower, ".bz2"):
		return FormatBzip2
	}

	return FormatPlain
}

// Source is an opened swatch file. It must be closed by the caller.
type Source interface {
	io.ReadSeekCloser
}

// memSource is a decompressed file held in memory.
type memSource struct {
	*bytes.Reader
}

func (memSource) Close() error { return nil }

// Open opens a swatch file for decoding. Compressed files are decompressed into memory.
// For archives, member selects the entry to open; if empty, the single .aco entry is used.
func Open(path, member string) (Source, error) {
	if err := security.ValidateInputPath(path); err != nil {
		return nil, err
	}

	format := DetectFormat(path)
	if format == FormatPlain {
		f, err := os.Open(path) // #nosec G304 - User-specified swatch path, intended to be read
		if err != nil {
			return nil, err
		}
		return f, nil
	}

	data, err := os.ReadFile(path) // #nosec G304 - User-specified swatch path, intended to be read
	if err != nil {
		return nil, err
	}

	var out []byte
	if format.IsArchive() {
		out, err = extractMember(data, format, member)
	} else {
		out, err = decompress(data, format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s file %s: %w", format, filepath.Base(path), err)
	}

	return memSource{bytes.NewReader(out)}, nil
}

// readLimited reads r fully, failing once MaxDecompressedSize is exceeded.
func readLimited(r io.Reader) ([]byte, error) {
	return io.ReadAll(security.NewLimitedReader(r, MaxDecompressedSize))
}
