package swatch

import (
	"github.com/jmylchreest/acoconv/internal/compression"
)

// DecodeFile decodes the swatch file at path using a default Decoder.
func DecodeFile(path string) (*Collection, error) {
	return NewDecoder().DecodeFile(path, "")
}

// DecodeFile opens and decodes a swatch file. Compressed files and archives are
// handled by the compression package; member selects an archive entry.
// The file is closed before DecodeFile returns.
func (d *Decoder) DecodeFile(path, member string) (collection *Collection, err error) {
	src, err := compression.Open(path, member)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := src.Close(); closeErr != nil && err == nil {
			collection, err = nil, closeErr
		}
	}()

	d.logger.Debug("decoding swatch file", "path", path, "format", compression.DetectFormat(path).String())
	return d.Decode(src)
}
