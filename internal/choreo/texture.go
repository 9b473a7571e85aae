package choreo

import (
	"errors"
	"math"
)

// TextureKind distinguishes procedural textures.
type TextureKind int

const (
	TextureTopographic TextureKind = iota
	TextureLabel
)

// ErrTextureUnavailable is returned when a texture cannot be allocated.
var ErrTextureUnavailable = errors.New("choreo: texture unavailable")

// Texture is a procedural coverage map or a text label.
// Coverage values are in [0, 1].
type Texture struct {
	Kind   TextureKind
	Text   string
	Repeat float64

	size     int
	data     []float64
	released bool
}

// Released reports whether the texture has been freed.
func (t *Texture) Released() bool { return t.released }

// NewTopographicTexture draws two families of rotated contour ellipses
// onto a size x size coverage map.
func NewTopographicTexture(size int) (*Texture, error) {
	if size <= 0 {
		return nil, ErrTextureUnavailable
	}
	t := &Texture{Kind: TextureTopographic, Repeat: 1.8, size: size, data: make([]float64, size*size)}

	k := float64(size) / 1024
	for i := 0; i < 24; i++ {
		r := (26 + float64(i)*25) * k
		t.ellipse(300*k, 330*k, r, r*0.56, math.Pi/11)
	}
	for i := 0; i < 20; i++ {
		r := (38 + float64(i)*23) * k
		t.ellipse(760*k, 720*k, r, r*0.48, -math.Pi/8)
	}
	return t, nil
}

// NewLabelTexture wraps text for label plates.
func NewLabelTexture(text string) (*Texture, error) {
	if text == "" {
		return nil, ErrTextureUnavailable
	}
	return &Texture{Kind: TextureLabel, Text: text}, nil
}

func (t *Texture) ellipse(cx, cy, rx, ry, rot float64) {
	n := max(32, int(2*math.Pi*max(rx, ry)))
	sr, cr := math.Sincos(rot)
	for i := 0; i < n; i++ {
		a := float64(i) / float64(n) * 2 * math.Pi
		ex, ey := rx*math.Cos(a), ry*math.Sin(a)
		x := int(cx + ex*cr - ey*sr)
		y := int(cy + ex*sr + ey*cr)
		t.mark(x, y)
		t.mark(x+1, y)
		t.mark(x, y+1)
	}
}

func (t *Texture) mark(x, y int) {
	if x < 0 || y < 0 || x >= t.size || y >= t.size {
		return
	}
	t.data[y*t.size+x] = 1
}

// Sample returns coverage at (u, v) with repeat wrapping.
func (t *Texture) Sample(u, v float64) float64 {
	if t == nil || t.released || len(t.data) == 0 {
		return 0
	}
	rep := t.Repeat
	if rep <= 0 {
		rep = 1
	}
	u, v = u*rep, v*rep
	u -= math.Floor(u)
	v -= math.Floor(v)
	x := min(int(u*float64(t.size)), t.size-1)
	y := min(int(v*float64(t.size)), t.size-1)
	return t.data[y*t.size+x]
}
