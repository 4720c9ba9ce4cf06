package colour

import (
	"cmp"
	"fmt"
	"strings"
)

// SortKey selects how colours are ordered for display.
type SortKey string

// Supported sort keys.
const (
	SortNone      SortKey = "none"
	SortHue       SortKey = "hue"
	SortLightness SortKey = "lightness"
)

// ParseSortKey validates a sort key name.
func ParseSortKey(s string) (SortKey, error) {
	switch key := SortKey(strings.ToLower(strings.TrimSpace(s))); key {
	case SortNone, SortHue, SortLightness:
		return key, nil
	case "":
		return SortNone, nil
	default:
		return "", fmt.Errorf("invalid sort key: %s (valid: none, hue, lightness)", s)
	}
}

// Compare orders two colours by key. SortNone treats all colours as equal,
// so stable sorts keep the original order.
func (k SortKey) Compare(a, b RGBA) int {
	switch k {
	case SortHue:
		ha, ca, la := toColorful(a).Hcl()
		hb, cb, lb := toColorful(b).Hcl()
		// Near-neutral colours have no meaningful hue; they go last, dark to light.
		na, nb := ca < achromaticChroma, cb < achromaticChroma
		if na != nb {
			if na {
				return 1
			}
			return -1
		}
		if na {
			return cmp.Compare(la, lb)
		}
		return cmp.Or(cmp.Compare(ha, hb), cmp.Compare(la, lb))
	case SortLightness:
		la, _, _ := toColorful(a).Lab()
		lb, _, _ := toColorful(b).Lab()
		return cmp.Compare(la, lb)
	default:
		return 0
	}
}

// achromaticChroma is the HCL chroma below which a colour is treated as grey.
const achromaticChroma = 0.02
