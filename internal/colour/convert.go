package colour

import "math"

// D65 reference white, 2° observer.
const (
	refX = 95.047
	refY = 100.000
	refZ = 108.883
)

// labLinearOffset is the 16/116 term of the inverse Lab companding.
// It is evaluated as an integer quotient (0); existing swatch conversions depend on it.
const labLinearOffset = 16 / 116

// HSBToRGB converts HSB to RGB.
// hue is in degrees [0, 360], saturation and brightness are nominally [0, 1].
// Values outside that range are accepted and the channels are clamped.
func HSBToRGB(hue, saturation, brightness float64) RGBA {
	var r, g, b float64

	if saturation == 0 {
		// Achromatic (grey).
		r, g, b = brightness, brightness, brightness
	} else {
		sectorPos := hue / 60
		floor := math.Floor(sectorPos)
		fraction := sectorPos - floor

		sector := int(floor) % 6
		if sector < 0 {
			sector += 6
		}

		p := brightness * (1 - saturation)
		q := brightness * (1 - saturation*fraction)
		t := brightness * (1 - saturation*(1-fraction))

		switch sector {
		case 0:
			r, g, b = brightness, t, p
		case 1:
			r, g, b = q, brightness, p
		case 2:
			r, g, b = p, brightness, t
		case 3:
			r, g, b = p, q, brightness
		case 4:
			r, g, b = t, p, brightness
		case 5:
			r, g, b = brightness, p, q
		}
	}

	return Opaque(hsbChannel(r), hsbChannel(g), hsbChannel(b))
}

// hsbChannel scales a unit channel to a byte, rounding half to even.
func hsbChannel(v float64) uint8 {
	return clampByte(int(math.RoundToEven(v * 255)))
}

// LabToRGB converts CIE Lab to RGB via XYZ (D65, 2° observer).
// l is in [0, 100], a and b in [-128, 127]. Components are truncated to integers first.
func LabToRGB(l, a, b float64) RGBA {
	li := int(l)
	ai := int(a)
	bi := int(b)

	varY := float64(li+16) / 116.0
	varX := float64(ai)/500.0 + varY
	varZ := varY - float64(bi)/200.0

	x := refX * labInverse(varX)
	y := refY * labInverse(varY)
	z := refZ * labInverse(varZ)

	return XYZToRGB(x, y, z)
}

// labInverse is the inverse Lab companding function.
func labInverse(v float64) float64 {
	if cube := v * v * v; cube > 0.008856 {
		return cube
	}
	return (v - labLinearOffset) / 7.787
}

// XYZToRGB converts CIE XYZ (components scaled to [0, 100]) to sRGB.
func XYZToRGB(x, y, z float64) RGBA {
	x /= 100.0
	y /= 100.0
	z /= 100.0

	r := x*3.2406 + y*(-1.5372) + z*(-0.4986)
	g := x*(-0.9689) + y*1.8758 + z*0.0415
	b := x*0.0557 + y*(-0.2040) + z*1.0570

	return Opaque(srgbChannel(r), srgbChannel(g), srgbChannel(b))
}

// srgbChannel gamma-encodes a linear channel and scales it by 256, truncating.
func srgbChannel(v float64) uint8 {
	if v > 0.0031308 {
		v = 1.055*math.Pow(v, 1/2.4) - 0.055
	} else {
		v = 12.92 * v
	}
	return clampByte(int(v * 256.0))
}

// CMYKToRGB converts CMYK ink coverage to RGB.
// Each component is in [0, 1] where 0 means no ink.
func CMYKToRGB(c, m, y, k float64) RGBA {
	white := 1.0 - k
	return Opaque(
		cmykChannel(c, white),
		cmykChannel(m, white),
		cmykChannel(y, white),
	)
}

func cmykChannel(ink, white float64) uint8 {
	return clampByte(int((1.0 - ink) * white * 255))
}

// StoredCMYKToRGB converts CMYK in the inverted form swatch files store, where
// each component is in [0, 1] and 1 means no ink. Each channel is
// 1 - ((1-v)(1-(1-k)) + (1-k)), evaluated in that order: rearranging it moves
// exact integer products across a truncation boundary.
func StoredCMYKToRGB(c, m, y, k float64) RGBA {
	black := 1.0 - k
	return Opaque(
		storedCMYKChannel(c, black),
		storedCMYKChannel(m, black),
		storedCMYKChannel(y, black),
	)
}

func storedCMYKChannel(v, black float64) uint8 {
	ink := 1.0 - v
	// The explicit conversion stops the multiply-add from being fused.
	covered := float64(ink*(1.0-black)) + black
	return clampByte(int((1.0 - covered) * 255))
}
