package swatch

import (
	"bytes"
	"encoding/binary"
	"unicode/utf16"
)

// record is one swatch record used to build test files.
type record struct {
	mode    ColorMode
	payload [4]uint16
	name    string
}

func rgbRecord(r, g, b uint16, name string) record {
	return record{mode: ModeRGB, payload: [4]uint16{r, g, b, 0}, name: name}
}

func pantoneRecord(name string) record {
	return record{mode: ModePantone, payload: [4]uint16{1, 2, 3, 4}, name: name}
}

// acoBuilder writes big-endian swatch files.
type acoBuilder struct {
	buf bytes.Buffer
}

func (b *acoBuilder) put(v any) *acoBuilder {
	if err := binary.Write(&b.buf, binary.BigEndian, v); err != nil {
		panic(err)
	}
	return b
}

// header writes a version and colour count.
func (b *acoBuilder) header(version int16, count uint16) *acoBuilder {
	return b.put(version).put(count)
}

// records writes records, including names when named is set.
func (b *acoBuilder) records(recs []record, named bool) *acoBuilder {
	for _, rec := range recs {
		b.put(int16(rec.mode)).put(rec.payload)
		if named {
			units := utf16.Encode([]rune(rec.name))
			// Photoshop writes a trailing NUL and counts it.
			units = append(units, 0)
			b.put(int32(len(units))).put(units)
		}
	}
	return b
}

func (b *acoBuilder) bytes() []byte {
	return bytes.Clone(b.buf.Bytes())
}

// v1File builds a version 1 file without names.
func v1File(recs ...record) []byte {
	return new(acoBuilder).header(1, uint16(len(recs))).records(recs, false).bytes()
}

// v2File builds a version 2 only file.
func v2File(recs ...record) []byte {
	return new(acoBuilder).header(2, uint16(len(recs))).records(recs, true).bytes()
}

// combinedFile builds the usual Photoshop layout: a version 1 block followed by a version 2 block.
func combinedFile(recs ...record) []byte {
	b := new(acoBuilder)
	b.header(1, uint16(len(recs))).records(recs, false)
	b.header(2, uint16(len(recs))).records(recs, true)
	return b.bytes()
}
