package compression

import (
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"

	"github.com/ulikunitz/xz"
)

// newStreamReader wraps data in a decompressor for a single-stream format.
// The caller must close the returned reader.
func newStreamReader(data []byte, format Format) (io.ReadCloser, error) {
	switch format {
	case FormatGzip, FormatTarGz:
		gzr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		return gzr, nil
	case FormatXz, FormatTarXz:
		xzr, err := xz.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to create xz reader: %w", err)
		}
		return io.NopCloser(xzr), nil
	case FormatBzip2, FormatTarBz2:
		return io.NopCloser(bzip2.NewReader(bytes.NewReader(data))), nil
	default:
		return io.NopCloser(bytes.NewReader(data)), nil
	}
}

// decompress decompresses a single compressed file.
func decompress(data []byte, format Format) ([]byte, error) {
	r, err := newStreamReader(data, format)
	if err != nil {
		return nil, err
	}

	out, err := readLimited(r)
	if err != nil {
		_ = r.Close()
		return nil, fmt.Errorf("failed to decompress: %w", err)
	}
	if err := r.Close(); err != nil {
		return nil, fmt.Errorf("failed to close %s stream: %w", format, err)
	}
	return out, nil
}
