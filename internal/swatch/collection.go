package swatch

import (
	"fmt"

	"github.com/jmylchreest/acoconv/internal/colour"
)

// Collection is an ordered, read-only set of unique swatches.
type Collection struct {
	swatches []Swatch
}

// NewCollection creates a collection from items. Duplicates are dropped,
// keeping the first occurrence.
func NewCollection(items []Swatch) *Collection {
	seen := make(map[Swatch]struct{}, len(items))
	unique := make([]Swatch, 0, len(items))

	for _, s := range items {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		unique = append(unique, s)
	}

	return &Collection{swatches: unique}
}

// Len returns the number of swatches.
func (c *Collection) Len() int {
	return len(c.swatches)
}

// At returns the swatch at index i. It panics if i is out of range, like slice indexing.
func (c *Collection) At(i int) Swatch {
	return c.swatches[i]
}

// Get returns the swatch at the specified index.
// Returns an error if the index is out of bounds.
func (c *Collection) Get(i int) (Swatch, error) {
	if i < 0 || i >= len(c.swatches) {
		return Swatch{}, fmt.Errorf("index out of bounds: %d (collection has %d swatches)", i, len(c.swatches))
	}
	return c.swatches[i], nil
}

// Swatches returns a copy of the swatches in order.
func (c *Collection) Swatches() []Swatch {
	out := make([]Swatch, len(c.swatches))
	copy(out, c.swatches)
	return out
}

// Colors returns the swatch colours in collection order.
func (c *Collection) Colors() []colour.RGBA {
	colors := make([]colour.RGBA, len(c.swatches))
	for i, s := range c.swatches {
		colors[i] = s.Color
	}
	return colors
}

// Named returns the number of swatches with a non-empty name.
func (c *Collection) Named() int {
	n := 0
	for _, s := range c.swatches {
		if s.HasName && s.Name != "" {
			n++
		}
	}
	return n
}

// All returns an iterator over all swatches in the collection.
func (c *Collection) All() func(func(int, Swatch) bool) {
	return func(yield func(int, Swatch) bool) {
		for i, s := range c.swatches {
			if !yield(i, s) {
				return
			}
		}
	}
}
