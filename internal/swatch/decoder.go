package swatch

import (
	"fmt"
	"io"
	"math"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/acoconv/internal/binreader"
	"github.com/jmylchreest/acoconv/internal/colour"
)

// The Color Swatch file format specification is available at
// https://www.adobe.com/devnet-apps/photoshop/fileformatashtml/PhotoshopFileFormats.htm#50577411_pgfId-1055819

const (
	// payloadSize is the size of a record's colour data, regardless of mode.
	payloadSize = 8
	// v1RecordSize is a version 1 record: mode tag plus payload.
	v1RecordSize = 2 + payloadSize
	// headerSize is the version and count fields.
	headerSize = 4
)

// Decoder decodes swatch files. A Decoder holds no per-file state and may be
// used from several goroutines at once.
type Decoder struct {
	logger hclog.Logger
}

// Option configures a Decoder.
type Option func(*Decoder)

// WithLogger sets the logger used for decode tracing.
func WithLogger(logger hclog.Logger) Option {
	return func(d *Decoder) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// NewDecoder creates a Decoder.
func NewDecoder(opts ...Option) *Decoder {
	d := &Decoder{logger: hclog.NewNullLogger()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Decode decodes a swatch file from src using a default Decoder.
func Decode(src io.ReadSeeker) (*Collection, error) {
	return NewDecoder().Decode(src)
}

// Decode reads a swatch file from src, starting at its current offset.
// Either the whole file decodes into a non-empty collection or an error is returned.
func (d *Decoder) Decode(src io.ReadSeeker) (*Collection, error) {
	r, err := binreader.NewReader(src)
	if err != nil {
		return nil, err
	}
	return d.decode(r)
}

// DecodeBytes decodes a swatch file held in memory.
func (d *Decoder) DecodeBytes(data []byte) (*Collection, error) {
	return d.decode(binreader.NewBytesReader(data))
}

func (d *Decoder) decode(r *binreader.Reader) (*Collection, error) {
	fileVersion, err := r.ReadInt16()
	if err != nil {
		return nil, fmt.Errorf("failed to read file version: %w", err)
	}
	if fileVersion != 1 && fileVersion != 2 {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, fileVersion)
	}

	count, err := r.ReadUint16()
	if err != nil {
		return nil, fmt.Errorf("failed to read colour count: %w", err)
	}
	if count == 0 {
		return nil, ErrEmptyFile
	}

	d.logger.Debug("read swatch header", "version", fileVersion, "count", count, "length", r.Len())

	// Some files only carry names in a version 2 block after the version 1 data.
	version2 := fileVersion == 2 || d.hasVersion2Block(r, count)

	found, err := d.checkSupportedModes(r, count, version2)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrUnsupportedColorMode
	}

	swatches, err := d.readSwatches(r, count, version2)
	if err != nil {
		return nil, err
	}

	collection := NewCollection(swatches)
	if collection.Len() == 0 {
		return nil, ErrEmptyFile
	}

	d.logger.Debug("decoded swatches", "records", count, "unique", collection.Len(), "named", version2)
	return collection, nil
}

// hasVersion2Block probes for a version 2 header after count version 1 records.
// On success the cursor is left at the first version 2 record; otherwise it is restored.
func (d *Decoder) hasVersion2Block(r *binreader.Reader, count uint16) bool {
	start := r.Position()
	v2Offset := start + int64(count)*v1RecordSize

	if v2Offset+headerSize > r.Len() {
		d.logger.Trace("no room for version 2 block", "offset", v2Offset)
		return false
	}

	restore := func() bool {
		// start was a valid position, so this cannot fail.
		_ = r.SetPosition(start)
		return false
	}

	if err := r.SetPosition(v2Offset); err != nil {
		return restore()
	}
	newVersion, err := r.ReadInt16()
	if err != nil {
		return restore()
	}
	newCount, err := r.ReadUint16()
	if err != nil {
		return restore()
	}

	if newVersion == 2 && newCount == count && r.Position() < r.Len() {
		d.logger.Debug("found version 2 block", "offset", v2Offset)
		return true
	}

	d.logger.Trace("version 2 probe rejected", "offset", v2Offset, "version", newVersion, "count", newCount)
	return restore()
}

// checkSupportedModes scans the records for a convertible colour mode without decoding them.
// The cursor is restored to where the scan started when one is found.
func (d *Decoder) checkSupportedModes(r *binreader.Reader, count uint16, version2 bool) (bool, error) {
	start := r.Position()

	for i := range int(count) {
		mode, err := readMode(r, i)
		if err != nil {
			return false, err
		}

		if mode.Supported() {
			if err := r.SetPosition(start); err != nil {
				return false, err
			}
			return true, nil
		}

		if err := skipRecord(r, i, version2); err != nil {
			return false, err
		}
	}

	return false, nil
}

func (d *Decoder) readSwatches(r *binreader.Reader, count uint16, version2 bool) ([]Swatch, error) {
	swatches := make([]Swatch, 0, count)

	for i := range int(count) {
		mode, err := readMode(r, i)
		if err != nil {
			return nil, err
		}

		d.logger.Trace("swatch record", "index", i, "mode", mode.String())

		if !mode.Supported() {
			if err := skipRecord(r, i, version2); err != nil {
				return nil, err
			}
			continue
		}

		c, err := readColor(r, mode)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s colour for swatch %d: %w", mode, i, err)
		}

		if !version2 {
			swatches = append(swatches, New(c))
			continue
		}

		name, err := r.ReadUnicodeString()
		if err != nil {
			return nil, fmt.Errorf("failed to read name for swatch %d: %w", i, err)
		}
		swatches = append(swatches, NewNamed(c, name))
	}

	return swatches, nil
}

func readMode(r *binreader.Reader, index int) (ColorMode, error) {
	mode, err := r.ReadInt16()
	if err != nil {
		return 0, fmt.Errorf("failed to read colour mode for swatch %d: %w", index, err)
	}
	return ColorMode(mode), nil
}

// skipRecord skips the payload and, for version 2, the name of the current record.
func skipRecord(r *binreader.Reader, index int, version2 bool) error {
	if err := r.Skip(payloadSize); err != nil {
		return fmt.Errorf("failed to skip swatch %d: %w", index, err)
	}
	if version2 {
		if err := r.SkipUnicodeString(); err != nil {
			return fmt.Errorf("failed to skip name for swatch %d: %w", index, err)
		}
	}
	return nil
}

// readColor decodes the 8-byte payload of a supported mode.
func readColor(r *binreader.Reader, mode ColorMode) (colour.RGBA, error) {
	var fields [4]uint16
	for i := range fields {
		v, err := r.ReadUint16()
		if err != nil {
			return colour.RGBA{}, err
		}
		fields[i] = v
	}

	switch mode {
	case ModeRGB:
		return colour.Opaque(rgbChannel(fields[0]), rgbChannel(fields[1]), rgbChannel(fields[2])), nil

	case ModeHSB:
		hue := float64(fields[0]) / 65535.0 * 360.0
		// Saturation and brightness are passed as percentages; HSBToRGB clamps the result.
		saturation := float64(fields[1]) / 65535.0 * 100.0
		brightness := float64(fields[2]) / 65535.0 * 100.0
		return colour.HSBToRGB(hue, saturation, brightness), nil

	case ModeGray:
		g := grayChannel(fields[0])
		return colour.Opaque(g, g, g), nil

	case ModeCMYK:
		// Stored inverted: 65535 is no ink.
		return colour.StoredCMYKToRGB(
			cmykFraction(fields[0]),
			cmykFraction(fields[1]),
			cmykFraction(fields[2]),
			cmykFraction(fields[3]),
		), nil

	case ModeLab:
		l := float64(int16(fields[0])) / 100.0
		a := float64(int16(fields[1])) / 100.0
		b := float64(int16(fields[2])) / 100.0
		return colour.LabToRGB(l, a, b), nil
	}

	return colour.RGBA{}, fmt.Errorf("colour mode %s cannot be converted", mode)
}

func rgbChannel(v uint16) uint8 {
	return uint8(math.Round(float64(v) / 257.0))
}

// grayChannel scales a gray value in 1/10000ths to a byte.
func grayChannel(v uint16) uint8 {
	g := math.Round(float64(v) / 10000.0 * 255.0)
	return uint8(math.Min(g, 255))
}

func cmykFraction(v uint16) float64 {
	return float64(v) / 65535.0
}
