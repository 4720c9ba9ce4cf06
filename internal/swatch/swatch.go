// Package swatch decodes Adobe Photoshop Color Swatch (.aco) files.
package swatch

import (
	"fmt"

	"github.com/jmylchreest/acoconv/internal/colour"
)

// Swatch is one decoded colour with an optional name.
// Swatches are comparable; two swatches are the same when colour and name match exactly.
type Swatch struct {
	Color colour.RGBA `json:"color"`
	// Name is only meaningful when HasName is set. Version 1 files carry no names.
	Name    string `json:"name,omitempty"`
	HasName bool   `json:"-"`
}

// New creates an unnamed swatch.
func New(c colour.RGBA) Swatch {
	return Swatch{Color: c}
}

// NewNamed creates a named swatch. An empty name is still a name.
func NewNamed(c colour.RGBA, name string) Swatch {
	return Swatch{Color: c, Name: name, HasName: true}
}

// String returns a debug representation of the swatch.
func (s Swatch) String() string {
	if !s.HasName {
		return fmt.Sprintf("Color: R: %d, G: %d, B: %d, A: %d", s.Color.R, s.Color.G, s.Color.B, s.Color.A)
	}
	return fmt.Sprintf("Color: R: %d, G: %d, B: %d, A: %d, Name: %s", s.Color.R, s.Color.G, s.Color.B, s.Color.A, s.Name)
}
