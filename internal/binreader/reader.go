// Package binreader provides a seekable big-endian reader for binary file formats.
package binreader

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"golang.org/x/text/encoding/unicode"
)

var (
	// ErrUnexpectedEndOfData is returned when a read would go past the end of the source.
	ErrUnexpectedEndOfData = errors.New("unexpected end of data")

	// ErrNegativePosition is returned when the cursor would move before the start of the source.
	ErrNegativePosition = errors.New("negative position")

	// ErrInvalidLength is returned when a length prefix is negative.
	ErrInvalidLength = errors.New("invalid length")
)

// utf16BE decodes big-endian UTF-16. Byte order marks are kept as characters.
var utf16BE = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)

// Reader reads big-endian values from a seekable source.
// The cursor may be moved freely; a Reader must not be shared between goroutines.
type Reader struct {
	src    io.ReadSeeker
	pos    int64
	srcPos int64
	length int64
	buf    [8]byte
}

// NewReader creates a Reader over src. The cursor starts at the source's current offset.
func NewReader(src io.ReadSeeker) (*Reader, error) {
	start, err := src.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, fmt.Errorf("failed to get source offset: %w", err)
	}

	length, err := src.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to get source length: %w", err)
	}

	if _, err := src.Seek(start, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to rewind source: %w", err)
	}

	return &Reader{
		src:    src,
		pos:    start,
		srcPos: start,
		length: length,
	}, nil
}

// NewBytesReader creates a Reader over an in-memory buffer.
func NewBytesReader(data []byte) *Reader {
	return &Reader{
		src:    bytes.NewReader(data),
		length: int64(len(data)),
	}
}

// Position returns the cursor position in bytes.
func (r *Reader) Position() int64 {
	return r.pos
}

// SetPosition moves the cursor. Positions past the end are allowed; the next read fails.
func (r *Reader) SetPosition(pos int64) error {
	if pos < 0 {
		return fmt.Errorf("%w: %d", ErrNegativePosition, pos)
	}
	r.pos = pos
	return nil
}

// Skip moves the cursor n bytes relative to the current position.
func (r *Reader) Skip(n int64) error {
	return r.SetPosition(r.pos + n)
}

// Len returns the total length of the source in bytes.
func (r *Reader) Len() int64 {
	return r.length
}

// available fails unless n bytes remain at the cursor.
func (r *Reader) available(n int64) error {
	if r.pos > r.length || n > r.length-r.pos {
		return fmt.Errorf("%w: need %d bytes at offset %d, source has %d", ErrUnexpectedEndOfData, n, r.pos, r.length)
	}
	return nil
}

// fill reads exactly len(p) bytes at the cursor and advances it.
func (r *Reader) fill(p []byte) error {
	n := int64(len(p))
	if err := r.available(n); err != nil {
		return err
	}

	if r.srcPos != r.pos {
		if _, err := r.src.Seek(r.pos, io.SeekStart); err != nil {
			return fmt.Errorf("failed to seek to offset %d: %w", r.pos, err)
		}
		r.srcPos = r.pos
	}

	read, err := io.ReadFull(r.src, p)
	r.srcPos += int64(read)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return fmt.Errorf("%w: need %d bytes at offset %d", ErrUnexpectedEndOfData, n, r.pos)
		}
		return fmt.Errorf("failed to read at offset %d: %w", r.pos, err)
	}

	r.pos += n
	return nil
}

// ReadInt16 reads a big-endian int16.
func (r *Reader) ReadInt16() (int16, error) {
	v, err := r.ReadUint16()
	return int16(v), err
}

// ReadUint16 reads a big-endian uint16.
func (r *Reader) ReadUint16() (uint16, error) {
	if err := r.fill(r.buf[:2]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(r.buf[:2]), nil
}

// ReadInt32 reads a big-endian int32.
func (r *Reader) ReadInt32() (int32, error) {
	v, err := r.ReadUint32()
	return int32(v), err
}

// ReadUint32 reads a big-endian uint32.
func (r *Reader) ReadUint32() (uint32, error) {
	if err := r.fill(r.buf[:4]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(r.buf[:4]), nil
}

// ReadInt64 reads a big-endian int64.
func (r *Reader) ReadInt64() (int64, error) {
	v, err := r.ReadUint64()
	return int64(v), err
}

// ReadUint64 reads a big-endian uint64.
func (r *Reader) ReadUint64() (uint64, error) {
	if err := r.fill(r.buf[:8]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(r.buf[:8]), nil
}

// ReadFloat64 reads a big-endian IEEE-754 double.
func (r *Reader) ReadFloat64() (float64, error) {
	v, err := r.ReadUint64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(v), nil
}

// ReadBytes reads n bytes.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: %d bytes", ErrInvalidLength, n)
	}
	if err := r.available(int64(n)); err != nil {
		return nil, err
	}
	p := make([]byte, n)
	if err := r.fill(p); err != nil {
		return nil, err
	}
	return p, nil
}

// ReadUnicodeString reads a string stored as an int32 count of UTF-16 code units
// followed by the big-endian code units. Trailing NUL characters are removed.
func (r *Reader) ReadUnicodeString() (string, error) {
	start := r.pos

	units, err := r.ReadInt32()
	if err != nil {
		return "", err
	}
	if units < 0 {
		r.pos = start
		return "", fmt.Errorf("%w: string of %d code units at offset %d", ErrInvalidLength, units, start)
	}

	size := int64(units) * 2
	if err := r.available(size); err != nil {
		r.pos = start
		return "", err
	}

	raw, err := r.ReadBytes(int(size))
	if err != nil {
		r.pos = start
		return "", err
	}

	decoded, err := utf16BE.NewDecoder().Bytes(raw)
	if err != nil {
		r.pos = start
		return "", fmt.Errorf("failed to decode UTF-16 string at offset %d: %w", start, err)
	}

	return strings.TrimRight(string(decoded), "\x00"), nil
}

// SkipUnicodeString skips a string in the ReadUnicodeString layout without decoding it.
func (r *Reader) SkipUnicodeString() error {
	units, err := r.ReadInt32()
	if err != nil {
		return err
	}
	if units < 0 {
		return fmt.Errorf("%w: string of %d code units at offset %d", ErrInvalidLength, units, r.pos-4)
	}
	return r.Skip(int64(units) * 2)
}
