// internal/background/palette.go
//
// Greyscale palette and luminance math.
//
// Context
// -------
// Section backgrounds are drawn from a small fixed grey palette, ordered
// light → dark.  Candidate filtering works on W3C relative luminance:
// adjacent sections must differ, and a section's background must differ
// from its own button tone by at least MinButtonContrast so the button
// stays visible.
//
// Notes
// -----
// • All colors are lowercase #rrggbb strings.
// • Luminance values are cached at init; the palette never changes at
//   runtime.
package background

import (
	"math"
	"strconv"
)

// Color is a lowercase #rrggbb hex string.
type Color string

// Palette, light → dark.
const (
	White   Color = "#ffffff"
	Gray50  Color = "#fafafa"
	Gray100 Color = "#f5f5f5"
	Gray150 Color = "#ececec"
	Gray200 Color = "#ebebeb"
	Gray300 Color = "#e0e0e0"
)

// Assignable is the candidate order for dynamic assignment.  Filtering
// preserves this order, so "first satisfying entry" is well defined.
var Assignable = []Color{White, Gray50, Gray100, Gray150, Gray200, Gray300}

// Contrast thresholds, as absolute relative-luminance differences.
const (
	// MinButtonContrast keeps a section's button distinct from its own
	// background.
	MinButtonContrast = 0.05
	// MinNeighborContrast applies to the thumbnail gallery against both
	// neighbors; plain inequality allows two greys the eye cannot tell
	// apart.
	MinNeighborContrast = 0.08
)

// Luminance returns the W3C relative luminance of a #rrggbb color in
// [0, 1].  Malformed input yields 0, which is harmless: it only makes the
// color fail contrast filters.
func Luminance(c Color) float64 {
	s := string(c)
	if len(s) != 7 || s[0] != '#' {
		return 0
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return 0
	}

	lin := func(ch uint64) float64 {
		f := float64(ch) / 255
		if f <= 0.03928 {
			return f / 12.92
		}
		return math.Pow((f+0.055)/1.055, 2.4)
	}

	r := lin((v >> 16) & 0xff)
	g := lin((v >> 8) & 0xff)
	b := lin(v & 0xff)
	return 0.2126*r + 0.7152*g + 0.0722*b
}

// Contrast is the absolute luminance difference between two colors.
func Contrast(a, b Color) float64 {
	return math.Abs(Luminance(a) - Luminance(b))
}

// ButtonColorFor derives a button tone from an assigned background.  It
// is a step function over the background's luminance: each band maps to
// one fixed tone, so buttons stay distinct on very light, light, mid, and
// dark backgrounds alike.
func ButtonColorFor(bg Color) Color {
	l := Luminance(bg)
	switch {
	case l >= 0.95: // white, gray-50
		return Gray300
	case l >= 0.88: // gray-100
		return "#d6d6d6"
	case l >= 0.80: // gray-150, gray-200
		return "#c9c9c9"
	default: // gray-300 and darker
		return "#aeaeae"
	}
}
