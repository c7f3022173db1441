package viz

import (
	"fmt"
	"math"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Colormap is a continuous gradient defined by evenly spaced anchor colors.
type Colormap struct {
	Name    string
	Anchors []drawing.Color
}

// Palette is a fixed cyclic list of discrete colors for categorical keys.
type Palette struct {
	Name   string
	Colors []drawing.Color
}

var colormaps = map[string]Colormap{
	"bwr": {Name: "bwr", Anchors: []drawing.Color{
		rgb(0, 0, 255), rgb(255, 255, 255), rgb(255, 0, 0),
	}},
	"coolwarm": {Name: "coolwarm", Anchors: []drawing.Color{
		rgb(59, 76, 192), rgb(221, 221, 221), rgb(180, 4, 38),
	}},
	"seismic": {Name: "seismic", Anchors: []drawing.Color{
		rgb(0, 0, 77), rgb(0, 0, 255), rgb(255, 255, 255), rgb(255, 0, 0), rgb(128, 0, 0),
	}},
	"viridis": {Name: "viridis", Anchors: []drawing.Color{
		rgb(68, 1, 84), rgb(72, 40, 120), rgb(62, 73, 137), rgb(49, 104, 142),
		rgb(38, 130, 142), rgb(31, 158, 137), rgb(53, 183, 121), rgb(110, 206, 88),
		rgb(181, 222, 43), rgb(253, 231, 37),
	}},
}

var palettes = map[string]Palette{
	"tab10": {Name: "tab10", Colors: []drawing.Color{
		hex(0x1f77b4), hex(0xff7f0e), hex(0x2ca02c), hex(0xd62728), hex(0x9467bd),
		hex(0x8c564b), hex(0xe377c2), hex(0x7f7f7f), hex(0xbcbd22), hex(0x17becf),
	}},
	"tab20": {Name: "tab20", Colors: []drawing.Color{
		hex(0x1f77b4), hex(0xaec7e8), hex(0xff7f0e), hex(0xffbb78), hex(0x2ca02c),
		hex(0x98df8a), hex(0xd62728), hex(0xff9896), hex(0x9467bd), hex(0xc5b0d5),
		hex(0x8c564b), hex(0xc49c94), hex(0xe377c2), hex(0xf7b6d2), hex(0x7f7f7f),
		hex(0xc7c7c7), hex(0xbcbd22), hex(0xdbdb8d), hex(0x17becf), hex(0x9edae5),
	}},
}

// ColormapByName looks up a built-in gradient (bwr, coolwarm, seismic, viridis).
func ColormapByName(name string) (Colormap, error) {
	m, ok := colormaps[name]
	if !ok {
		return Colormap{}, fmt.Errorf("unknown colormap %q", name)
	}
	return m, nil
}

// PaletteByName looks up a built-in categorical palette (tab10, tab20).
func PaletteByName(name string) (Palette, error) {
	p, ok := palettes[name]
	if !ok {
		return Palette{}, fmt.Errorf("unknown palette %q", name)
	}
	return p, nil
}

// Sample interpolates the gradient at t. Values outside [0,1] are clamped.
func (m Colormap) Sample(t float64) drawing.Color {
	n := len(m.Anchors)
	if n == 0 {
		return drawing.ColorBlack
	}
	if n == 1 {
		return m.Anchors[0]
	}
	t = clamp01(t)
	pos := t * float64(n-1)
	lo := int(math.Floor(pos))
	if lo >= n-1 {
		return m.Anchors[n-1]
	}
	frac := pos - float64(lo)
	a, b := m.Anchors[lo], m.Anchors[lo+1]
	return drawing.Color{
		R: lerpByte(a.R, b.R, frac),
		G: lerpByte(a.G, b.G, frac),
		B: lerpByte(a.B, b.B, frac),
		A: 255,
	}
}

// AtRelevance maps a relevance in [-1,1] onto the gradient, -1 at one
// extreme, 0 at the midpoint and +1 at the other extreme.
func (m Colormap) AtRelevance(relevance float64) drawing.Color {
	return m.Sample((relevance + 1) / 2)
}

// At returns the palette color for the i-th distinct value, cycling when the
// palette is exhausted.
func (p Palette) At(i int) drawing.Color {
	if len(p.Colors) == 0 {
		return drawing.ColorBlack
	}
	if i < 0 {
		i = -i
	}
	return p.Colors[i%len(p.Colors)]
}

// Luminance returns the perceived brightness of a color in [0,1] using the
// Rec. 601 weights 0.299/0.587/0.114.
func Luminance(c drawing.Color) float64 {
	return (0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)) / 255
}

// TextColorFor picks white text for dark backgrounds and black text for
// light ones, switching at luminance 0.5.
func TextColorFor(background drawing.Color) drawing.Color {
	if Luminance(background) < 0.5 {
		return drawing.ColorWhite
	}
	return drawing.ColorBlack
}

func rgb(r, g, b uint8) drawing.Color {
	return drawing.Color{R: r, G: g, B: b, A: 255}
}

func hex(v uint32) drawing.Color {
	return drawing.Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}
}

func hexString(c drawing.Color) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

func lerpByte(a, b uint8, t float64) uint8 {
	return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t))
}
