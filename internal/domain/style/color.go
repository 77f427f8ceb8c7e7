package style

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an 8-bit RGBA colour.
type Color struct{ R, G, B, A uint8 }

var (
	Black       = Color{0, 0, 0, 255}
	White       = Color{255, 255, 255, 255}
	Transparent = Color{0, 0, 0, 0}
)

var namedColors = map[string]Color{
	"black":       Black,
	"white":       White,
	"transparent": Transparent,
	"none":        Transparent,
	"red":         {255, 0, 0, 255},
	"green":       {0, 128, 0, 255},
	"blue":        {0, 0, 255, 255},
	"yellow":      {255, 255, 0, 255},
	"gray":        {128, 128, 128, 255},
	"grey":        {128, 128, 128, 255},
}

// ParseColor accepts a colour name or a hex string in #rgb, #rrggbb or
// #rrggbbaa form.
func ParseColor(s string) (Color, error) {
	spec := strings.ToLower(strings.TrimSpace(s))
	if spec == "" {
		return Color{}, fmt.Errorf("empty color")
	}
	if c, ok := namedColors[spec]; ok {
		return c, nil
	}
	if !strings.HasPrefix(spec, "#") {
		spec = "#" + spec
	}

	alpha := uint8(255)
	if len(spec) == 9 {
		a, err := strconv.ParseUint(spec[7:], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("invalid alpha in color %q: %w", s, err)
		}
		alpha = uint8(a)
		spec = spec[:7]
	}

	parsed, err := colorful.Hex(spec)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	r, g, b := parsed.RGB255()
	return Color{R: r, G: g, B: b, A: alpha}, nil
}

// MustParseColor is like ParseColor but panics on error. Intended for
// package-level defaults and tests.
func MustParseColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex returns #rrggbb, or #rrggbbaa when the colour is not fully opaque.
func (c Color) Hex() string {
	hex := c.toColorful().Hex()
	if c.A != 255 {
		hex += fmt.Sprintf("%02x", c.A)
	}
	return hex
}

// String implements fmt.Stringer.
func (c Color) String() string { return c.Hex() }

// Blend mixes c towards other by t in [0,1], interpolating in RGB space.
// Alpha is interpolated linearly.
func (c Color) Blend(other Color, t float64) Color {
	t = max(0, min(1, t))
	r, g, b := c.toColorful().BlendRgb(other.toColorful(), t).Clamped().RGB255()
	a := float64(c.A) + (float64(other.A)-float64(c.A))*t
	return Color{R: r, G: g, B: b, A: uint8(a + 0.5)}
}

// IsOpaque reports whether the colour has full alpha.
func (c Color) IsOpaque() bool { return c.A == 255 }

func (c Color) toColorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}
