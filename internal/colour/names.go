package colour

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// namedColour is a reference colour used to describe unnamed swatches.
type namedColour struct {
	Name    string
	R, G, B uint8
}

// Reference colours: the 16 xterm basics plus common web names.
var namedColours = []namedColour{
	{Name: "black", R: 0, G: 0, B: 0},
	{Name: "red", R: 205, G: 49, B: 49},
	{Name: "green", R: 13, G: 188, B: 121},
	{Name: "yellow", R: 229, G: 229, B: 16},
	{Name: "blue", R: 36, G: 114, B: 200},
	{Name: "magenta", R: 188, G: 63, B: 188},
	{Name: "cyan", R: 17, G: 168, B: 205},
	{Name: "white", R: 229, G: 229, B: 229},
	{Name: "grey", R: 128, G: 128, B: 128},
	{Name: "darkgrey", R: 102, G: 102, B: 102},
	{Name: "brightred", R: 241, G: 76, B: 76},
	{Name: "brightgreen", R: 35, G: 209, B: 139},
	{Name: "brightyellow", R: 245, G: 245, B: 67},
	{Name: "brightblue", R: 59, G: 142, B: 234},
	{Name: "brightmagenta", R: 214, G: 112, B: 214},
	{Name: "brightcyan", R: 41, G: 184, B: 219},
	{Name: "brightwhite", R: 255, G: 255, B: 255},
	{Name: "orange", R: 255, G: 165, B: 0},
	{Name: "pink", R: 255, G: 192, B: 203},
	{Name: "brown", R: 165, G: 42, B: 42},
	{Name: "lime", R: 0, G: 255, B: 0},
	{Name: "navy", R: 0, G: 0, B: 128},
	{Name: "teal", R: 0, G: 128, B: 128},
	{Name: "maroon", R: 128, G: 0, B: 0},
	{Name: "olive", R: 128, G: 128, B: 0},
	{Name: "violet", R: 238, G: 130, B: 238},
	{Name: "indigo", R: 75, G: 0, B: 130},
}

// NearestName returns the reference colour name perceptually closest to c (CIEDE2000).
func NearestName(c RGBA) string {
	target := toColorful(c)

	best := ""
	minDistance := math.MaxFloat64
	for _, nc := range namedColours {
		d := target.DistanceCIEDE2000(toColorful(Opaque(nc.R, nc.G, nc.B)))
		if d < minDistance {
			minDistance = d
			best = nc.Name
		}
	}
	return best
}

// toColorful converts to go-colorful's float representation. Alpha is ignored.
func toColorful(c RGBA) colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}
