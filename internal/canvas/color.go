package canvas

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is a non-premultiplied RGBA color with 8-bit channels.
//
// Colors are compared with ==; equality is an exact per-channel match.
type Color struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
	A uint8 `json:"a"` // Alpha/opacity component (0-255)
}

// Commonly used colors.
var (
	Transparent = Color{0, 0, 0, 0}
	White       = Color{255, 255, 255, 255}
	Black       = Color{0, 0, 0, 255}
)

// NRGBA converts c to the standard library's non-premultiplied color type.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// Hex returns c as "#RRGGBB", or "#RRGGBBAA" when c is not fully opaque.
func (c Color) Hex() string {
	if c.A == 255 {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}

// String implements fmt.Stringer.
func (c Color) String() string {
	return c.Hex()
}

// ParseHexColor parses "#RGB", "#RRGGBB" or "#RRGGBBAA". The leading '#' is
// optional. Colors without an alpha component are fully opaque.
func ParseHexColor(s string) (Color, error) {
	hex := strings.TrimSpace(s)
	if hex == "" {
		return Color{}, fmt.Errorf("%w: empty color string", ErrInvalidColor)
	}
	if hex[0] != '#' {
		hex = "#" + hex
	}

	var alpha uint8 = 255
	switch len(hex) {
	case 4, 7:
	case 9:
		a, err := strconv.ParseUint(hex[7:], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("%w: %q: %v", ErrInvalidColor, s, err)
		}
		alpha = uint8(a)
		hex = hex[:7]
	default:
		return Color{}, fmt.Errorf("%w: %q has invalid length", ErrInvalidColor, s)
	}

	parsed, err := colorful.Hex(hex)
	if err != nil {
		return Color{}, fmt.Errorf("%w: %q: %v", ErrInvalidColor, s, err)
	}
	r, g, b := parsed.RGB255()
	return Color{R: r, G: g, B: b, A: alpha}, nil
}

// HSLColor represents a color in HSL (Hue, Saturation, Lightness) color space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent (0=gray, 100=vivid)
	L int `json:"l"` // Lightness: 0-100 percent (0=black, 50=normal, 100=white)
}

// ColorResult contains a color value in multiple representations.
//
// This struct provides the same color in three formats:
//   - Hex: Compact string format; alpha is appended only when not opaque
//   - RGBA: 8-bit components with alpha
//   - HSL: Perceptual color space, alpha excluded
type ColorResult struct {
	Hex  string   `json:"hex"`
	RGBA Color    `json:"rgba"`
	HSL  HSLColor `json:"hsl"`
}

// Describe returns c in every representation of ColorResult.
//
// The HSL values are computed by go-colorful and rounded to whole degrees and
// percentages.
func Describe(c Color) ColorResult {
	cf := colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
	h, s, l := cf.Hsl()
	if math.IsNaN(h) {
		h = 0
	}

	return ColorResult{
		Hex:  c.Hex(),
		RGBA: c,
		HSL: HSLColor{
			H: int(math.Round(h)) % 360,
			S: int(math.Round(s * 100)),
			L: int(math.Round(l * 100)),
		},
	}
}
