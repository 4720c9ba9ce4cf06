package swatch

import (
	"errors"

	"github.com/jmylchreest/acoconv/internal/binreader"
)

var (
	// ErrUnsupportedVersion is returned when the header version is not 1 or 2.
	ErrUnsupportedVersion = errors.New("unsupported swatch file version")

	// ErrEmptyFile is returned when a file declares no colours or none could be decoded.
	ErrEmptyFile = errors.New("swatch file contains no colours")

	// ErrUnsupportedColorMode is returned when no record uses a convertible colour mode.
	ErrUnsupportedColorMode = errors.New("swatch file contains no supported colour modes")

	// ErrUnexpectedEndOfData is returned when the file ends inside a record.
	ErrUnexpectedEndOfData = binreader.ErrUnexpectedEndOfData
)
