package swatch

import "fmt"

// ColorMode is the colour space tag stored with each swatch record.
type ColorMode int16

// Colour space tags defined by the Photoshop file format.
const (
	ModeRGB       ColorMode = 0
	ModeHSB       ColorMode = 1
	ModeCMYK      ColorMode = 2
	ModePantone   ColorMode = 3
	ModeFocoltone ColorMode = 4
	ModeTrumatch  ColorMode = 5
	ModeToyo88    ColorMode = 6
	ModeLab       ColorMode = 7
	ModeGray      ColorMode = 8
	ModeReserved  ColorMode = 9
	ModeHKS       ColorMode = 10
)

var modeNames = map[ColorMode]string{
	ModeRGB:       "RGB",
	ModeHSB:       "HSB",
	ModeCMYK:      "CMYK",
	ModePantone:   "Pantone",
	ModeFocoltone: "Focoltone",
	ModeTrumatch:  "Trumatch",
	ModeToyo88:    "Toyo88",
	ModeLab:       "Lab",
	ModeGray:      "Gray",
	ModeReserved:  "Reserved",
	ModeHKS:       "HKS",
}

// String returns the mode name, or "Mode(n)" for tags outside the format.
func (m ColorMode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Mode(%d)", int16(m))
}

// Supported reports whether records in this mode can be converted to RGB.
// Colour-book modes are recognised but skipped.
func (m ColorMode) Supported() bool {
	switch m {
	case ModeRGB, ModeHSB, ModeCMYK, ModeGray, ModeLab:
		return true
	default:
		return false
	}
}
