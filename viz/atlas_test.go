package viz

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func specializationTable(t *testing.T) *Table {
	t.Helper()
	tbl := NewTable("head", "layer", "score", "cluster")
	rows := []struct {
		head, layer float64
		score       float64
		cluster     string
	}{
		{0, 0, 0.4, "syntax"},
		{2, 1, -0.6, "syntax"},
		{5, 2, 0.2, "semantic"},
		{7, 3, 0.9, "semantic"},
		{4, 5, -0.1, "positional"},
		{6, 4, 0.3, "positional"},
	}
	for _, r := range rows {
		require.NoError(t, tbl.AppendRow(Number(r.head), Number(r.layer), Number(r.score), Text(r.cluster)))
	}
	return tbl
}

func decodePNG(t *testing.T, data []byte) {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err, "atlas output should be a valid PNG")
	assert.False(t, img.Bounds().Empty())
}

func TestRenderAtlasCategorical(t *testing.T) {
	data, err := RenderAtlas(specializationTable(t), AtlasOptions{})
	require.NoError(t, err)
	decodePNG(t, data)
}

func TestRenderAtlasWithTopK(t *testing.T) {
	data, err := RenderAtlas(specializationTable(t), AtlasOptions{TopK: 1})
	require.NoError(t, err)
	decodePNG(t, data)
}

func TestRenderAtlasContinuous(t *testing.T) {
	tbl := NewTable("head", "layer", "score", "cluster")
	for i := 0; i < 24; i++ {
		require.NoError(t, tbl.AppendRow(
			Number(float64(i%8)), Number(float64(i/8)),
			Number(float64(i)/24-0.5), Number(float64(i)),
		))
	}
	data, err := RenderAtlas(tbl, AtlasOptions{TopK: 5})
	require.NoError(t, err)
	decodePNG(t, data)
}

func TestRenderAtlasEmptyTable(t *testing.T) {
	tbl := NewTable("head", "layer", "score", "cluster")
	data, err := RenderAtlas(tbl, AtlasOptions{})
	require.NoError(t, err, "an empty table should render an empty plot")
	decodePNG(t, data)
}

func TestRenderAtlasMissingColorColumn(t *testing.T) {
	tbl := NewTable("head", "layer", "score")
	require.NoError(t, tbl.AppendRow(Number(0), Number(0), Number(0.5)))
	_, err := RenderAtlas(tbl, AtlasOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `no column "cluster"`)
}

func TestAtlasTicksFromUnfilteredData(t *testing.T) {
	tbl := specializationTable(t) // max head 7, max layer 5

	xTicks, yTicks, xRange, yRange, err := atlasTicks(tbl)
	require.NoError(t, err)

	// Head axis steps by 2: 0, 2, 4, 6.
	require.Len(t, xTicks, 4)
	assert.Equal(t, 0.0, xTicks[0].Value)
	assert.Equal(t, 6.0, xTicks[3].Value)
	assert.Equal(t, "6", xTicks[3].Label)

	// Layer axis steps by 1, negated so layer 0 sits at the top.
	require.Len(t, yTicks, 6)
	assert.Equal(t, -5.0, yTicks[0].Value)
	assert.Equal(t, "5", yTicks[0].Label)
	assert.Equal(t, 0.0, yTicks[5].Value)
	assert.Equal(t, "0", yTicks[5].Label)

	assert.Equal(t, -0.5, xRange.Min)
	assert.Equal(t, 7.5, xRange.Max)
	assert.Equal(t, -5.5, yRange.Min)
	assert.Equal(t, 0.5, yRange.Max)
}

func TestAtlasOptionsDefaults(t *testing.T) {
	var opts AtlasOptions
	opts.ApplyDefaults()
	assert.Equal(t, "score", opts.ScoreColumn)
	assert.Equal(t, "cluster", opts.ColorColumn)
	assert.Equal(t, 1000.0, opts.ScaleFactor)
	assert.Equal(t, 600, opts.Width)
	assert.Equal(t, 500, opts.Height)
	assert.Equal(t, "tab10", opts.CmapName)
	assert.Zero(t, opts.TopK)
}

func TestDotWidthFloor(t *testing.T) {
	assert.Equal(t, 1.0, dotWidth(0))
	assert.Greater(t, dotWidth(400), dotWidth(100))
}
