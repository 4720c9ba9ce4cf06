package colour

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseSortKey(t *testing.T) {
	tests := []struct {
		in      string
		want    SortKey
		wantErr bool
	}{
		{in: "", want: SortNone},
		{in: "none", want: SortNone},
		{in: "Hue", want: SortHue},
		{in: " lightness ", want: SortLightness},
		{in: "rainbow", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSortKey(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSortKey(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseSortKey(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSortKeyCompare(t *testing.T) {
	white := Opaque(255, 255, 255)
	black := Opaque(0, 0, 0)
	red := Opaque(255, 0, 0)
	blue := Opaque(0, 0, 255)
	green := Opaque(0, 200, 0)

	colours := []RGBA{white, blue, black, green, red}

	byLightness := slices.Clone(colours)
	slices.SortStableFunc(byLightness, SortLightness.Compare)
	if diff := cmp.Diff([]RGBA{black, blue, red, green, white}, byLightness); diff != "" {
		t.Errorf("lightness order mismatch (-want +got):\n%s", diff)
	}

	byHue := slices.Clone(colours)
	slices.SortStableFunc(byHue, SortHue.Compare)
	if diff := cmp.Diff([]RGBA{red, green, blue, black, white}, byHue); diff != "" {
		t.Errorf("hue order mismatch (-want +got):\n%s", diff)
	}

	unsorted := slices.Clone(colours)
	slices.SortStableFunc(unsorted, SortNone.Compare)
	if diff := cmp.Diff(colours, unsorted); diff != "" {
		t.Errorf("SortNone changed order (-want +got):\n%s", diff)
	}
}

func TestNearestName(t *testing.T) {
	tests := []struct {
		c    RGBA
		want string
	}{
		{Opaque(0, 0, 0), "black"},
		{Opaque(255, 255, 255), "brightwhite"},
		{Opaque(255, 160, 10), "orange"},
		{Opaque(0, 0, 120), "navy"},
	}

	for _, tt := range tests {
		if got := NearestName(tt.c); got != tt.want {
			t.Errorf("NearestName(%s) = %q, want %q", tt.c.Hex(), got, tt.want)
		}
	}
}
