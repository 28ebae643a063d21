package material

import (
	"fmt"
	gomath "math"
	"strconv"
	"strings"
)

// Color is an sRGB-encoded RGB triple in [0, 1], as written in hex.
type Color struct {
	R, G, B float32
}

// White is full intensity on every channel.
var White = Color{1, 1, 1}

var named = map[string]string{
	"white":       "#ffffff",
	"black":       "#000000",
	"lightyellow": "#ffffe0",
	"aqua":        "#00ffff",
	"red":         "#ff0000",
	"green":       "#008000",
	"blue":        "#0000ff",
}

// ParseColor accepts "#rrggbb", "#rgb" or a CSS colour name.
func ParseColor(s string) (Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if hex, ok := named[s]; ok {
		s = hex
	}
	if !strings.HasPrefix(s, "#") {
		return Color{}, fmt.Errorf("unknown color %q", s)
	}
	hex := s[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return Color{}, fmt.Errorf("malformed color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("malformed color %q: %w", s, err)
	}
	return Hex(uint32(v)), nil
}

// MustColor is ParseColor for literals known to be valid.
func MustColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex converts 0xRRGGBB to a Color.
func Hex(v uint32) Color {
	return Color{
		R: float32((v>>16)&0xff) / 255,
		G: float32((v>>8)&0xff) / 255,
		B: float32(v&0xff) / 255,
	}
}

// Array returns the components in uniform order.
func (c Color) Array() [3]float32 {
	return [3]float32{c.R, c.G, c.B}
}

// Scale multiplies each channel by s.
func (c Color) Scale(s float32) Color {
	return Color{c.R * s, c.G * s, c.B * s}
}

// Linear converts the sRGB-encoded colour to linear space for lighting.
func (c Color) Linear() Color {
	return Color{srgbToLinear(c.R), srgbToLinear(c.G), srgbToLinear(c.B)}
}

func srgbToLinear(v float32) float32 {
	if v <= 0.04045 {
		return v / 12.92
	}
	return float32(gomath.Pow((float64(v)+0.055)/1.055, 2.4))
}

// FromLinear encodes a linear-space colour, as stored in glTF factors.
func FromLinear(r, g, b float32) Color {
	return Color{linearToSRGB(r), linearToSRGB(g), linearToSRGB(b)}
}

func linearToSRGB(v float32) float32 {
	if v <= 0.0031308 {
		return v * 12.92
	}
	return float32(1.055*gomath.Pow(float64(v), 1/2.4) - 0.055)
}
