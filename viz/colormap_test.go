package viz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

func TestColormapAtRelevanceExtremes(t *testing.T) {
	cmap, err := ColormapByName("bwr")
	require.NoError(t, err)

	neg := cmap.AtRelevance(-1)
	assert.Equal(t, rgb(0, 0, 255), neg, "relevance -1 should hit the blue extreme")

	mid := cmap.AtRelevance(0)
	assert.Equal(t, rgb(255, 255, 255), mid, "relevance 0 should hit the white midpoint")

	pos := cmap.AtRelevance(1)
	assert.Equal(t, rgb(255, 0, 0), pos, "relevance +1 should hit the red extreme")
}

func TestColormapSampleClamps(t *testing.T) {
	cmap := colormaps["bwr"]
	assert.Equal(t, cmap.Sample(0), cmap.Sample(-3))
	assert.Equal(t, cmap.Sample(1), cmap.Sample(7))
}

func TestColormapSampleInterpolates(t *testing.T) {
	cmap := colormaps["bwr"]
	c := cmap.Sample(0.25)
	// Halfway between blue and white.
	assert.Equal(t, uint8(128), c.R)
	assert.Equal(t, uint8(128), c.G)
	assert.Equal(t, uint8(255), c.B)
}

func TestColormapByNameUnknown(t *testing.T) {
	_, err := ColormapByName("plasma-nope")
	assert.Error(t, err)
	_, err = PaletteByName("rainbow")
	assert.Error(t, err)
}

func TestLuminanceThreshold(t *testing.T) {
	cases := []struct {
		name string
		c    drawing.Color
		want drawing.Color
	}{
		// Gray 127 has luminance 127/255 ≈ 0.498, just below the threshold.
		{"just below threshold", rgb(127, 127, 127), drawing.ColorWhite},
		// Gray 128 has luminance 128/255 ≈ 0.502, just above.
		{"just above threshold", rgb(128, 128, 128), drawing.ColorBlack},
		{"pure blue is dark", rgb(0, 0, 255), drawing.ColorWhite},
		{"pure green is light", rgb(0, 255, 0), drawing.ColorBlack},
		{"white", rgb(255, 255, 255), drawing.ColorBlack},
		{"black", rgb(0, 0, 0), drawing.ColorWhite},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, TextColorFor(tc.c))
		})
	}
}

func TestPaletteCycles(t *testing.T) {
	p, err := PaletteByName("tab10")
	require.NoError(t, err)
	require.Len(t, p.Colors, 10)
	assert.Equal(t, p.Colors[3], p.At(3))
	assert.Equal(t, p.Colors[0], p.At(10), "index 10 should wrap to the first color")
	assert.Equal(t, p.Colors[1], p.At(21))
}
