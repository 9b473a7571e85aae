package core

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// RGB is a 24-bit terminal color. The zero value means "terminal default"
// only when paired with a Cell that has no explicit style.
type RGB struct {
	R, G, B uint8
}

// Palette colors shared by the HUD and the scene cue primitives.
var (
	ColorInk      = RGB{0xE9, 0xFF, 0xFC}
	ColorMint     = RGB{0xAD, 0xEF, 0xE7}
	ColorTeal     = RGB{0x78, 0xEF, 0xE3}
	ColorMuted    = RGB{0x8F, 0xC9, 0xC3}
	ColorDeepSea  = RGB{0x04, 0x10, 0x18}
	ColorWarning  = RGB{0xF2, 0xC1, 0x4E}
	ColorDefaultB = RGB{0x04, 0x10, 0x18}
)

// ParseHex parses "#rrggbb" into an RGB value.
func ParseHex(s string) (RGB, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return RGB{}, fmt.Errorf("core: invalid color %q: %w", s, err)
	}
	return FromColorful(c), nil
}

// MustHex is ParseHex for package-level literals.
func MustHex(s string) RGB {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// FromColorful converts a colorful.Color, clamping out-of-gamut channels.
func FromColorful(c colorful.Color) RGB {
	r, g, b := c.Clamped().RGB255()
	return RGB{R: r, G: g, B: b}
}

// Colorful returns the value as a colorful.Color.
func (c RGB) Colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}

// Hex returns the "#rrggbb" form used by lipgloss.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// LerpRGB interpolates two colors in RGB space. t is clamped to [0, 1].
func LerpRGB(a, b RGB, t float64) RGB {
	t = ClampF(t, 0, 1)
	return FromColorful(a.Colorful().BlendRgb(b.Colorful(), t))
}

// Scale multiplies every channel by f, clamped to [0, 1].
func (c RGB) Scale(f float64) RGB {
	return LerpRGB(RGB{}, c, f)
}

// UnmarshalYAML lets descriptor tables spell colors as hex strings.
func (c *RGB) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := ParseHex(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
