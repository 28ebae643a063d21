// Package material describes how a mesh surface is shaded: base colour,
// physically based parameters and the texture maps feeding them.
package material

import (
	"github.com/Faultbox/hauntedhouse/pkg/math"
)

// Wrap is a texture coordinate wrapping mode.
type Wrap int

// Wrapping modes.
const (
	ClampToEdge Wrap = iota
	Repeat
	MirroredRepeat
)

// TextureRef points at an image file and the sampling parameters it is
// drawn with. Several materials may reference the same path with different
// parameters; the decoded image is shared.
type TextureRef struct {
	Path     string
	Repeat   math.Vec2
	Offset   math.Vec2
	Center   math.Vec2
	Rotation float32
	WrapS    Wrap
	WrapT    Wrap
	SRGB     bool // colour data, decoded to linear before lighting
}

// Texture returns a reference with unit repeat and edge clamping.
func Texture(path string) *TextureRef {
	return &TextureRef{
		Path:   path,
		Repeat: math.Vec2{X: 1, Y: 1},
		WrapS:  ClampToEdge,
		WrapT:  ClampToEdge,
	}
}

// ColorTexture returns a reference to an sRGB encoded colour map.
func ColorTexture(path string) *TextureRef {
	t := Texture(path)
	t.SRGB = true
	return t
}

// Tiled sets repeat wrapping with the given repeat counts.
func (t *TextureRef) Tiled(x, y float32) *TextureRef {
	t.Repeat = math.Vec2{X: x, Y: y}
	t.WrapS = Repeat
	t.WrapT = Repeat
	return t
}

// Rotated sets the UV rotation in radians.
func (t *TextureRef) Rotated(rad float32) *TextureRef {
	t.Rotation = rad
	return t
}

// UVTransform returns the matrix applied to texture coordinates.
func (t *TextureRef) UVTransform() math.Mat3 {
	if t == nil {
		return math.Identity3()
	}
	return math.UVTransform(t.Offset, t.Repeat, t.Rotation, t.Center)
}

// Standard is a metallic-roughness material.
type Standard struct {
	Name  string
	Color Color

	Map             *TextureRef
	AlphaMap        *TextureRef
	AOMap           *TextureRef
	NormalMap       *TextureRef
	RoughnessMap    *TextureRef
	MetalnessMap    *TextureRef
	DisplacementMap *TextureRef

	AOMapIntensity    float32
	DisplacementScale float32
	Roughness         float32
	Metalness         float32
	Opacity           float32
	Transparent       bool
	DepthWrite        bool
	DoubleSided       bool
}

// NewStandard returns a white, fully rough, non-metallic opaque material.
func NewStandard() *Standard {
	return &Standard{
		Color:          White,
		AOMapIntensity: 1,
		Roughness:      1,
		Metalness:      0,
		Opacity:        1,
		DepthWrite:     true,
	}
}

// Clone returns a shallow copy. Texture references are shared.
func (m *Standard) Clone() *Standard {
	c := *m
	return &c
}

// Blended reports whether the material is drawn in the sorted transparent pass.
func (m *Standard) Blended() bool {
	return m.Transparent
}

// Textures lists every non-nil map, in a stable order.
func (m *Standard) Textures() []*TextureRef {
	var out []*TextureRef
	for _, t := range []*TextureRef{m.Map, m.AlphaMap, m.AOMap, m.NormalMap, m.RoughnessMap, m.MetalnessMap, m.DisplacementMap} {
		if t != nil {
			out = append(out, t)
		}
	}
	return out
}
