package viz

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"unicode"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// AtlasOptions configures the head/layer specialization bubble chart.
type AtlasOptions struct {
	// ScoreColumn names the signed score column driving bubble sizes.
	ScoreColumn string `json:"scoreColumn"`
	// ColorColumn names the categorical or continuous color key.
	ColorColumn string `json:"colorColumn"`
	// TopK caps the number of rows kept for display; zero keeps everything.
	TopK int `json:"topK"`
	// ScaleFactor multiplies |score| before the size mapping.
	ScaleFactor float64 `json:"scaleFactor"`
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	// CmapName selects the categorical palette.
	CmapName string `json:"cmapName"`
}

// ApplyDefaults populates zero values with sensible defaults.
func (o *AtlasOptions) ApplyDefaults() {
	if o.ScoreColumn == "" {
		o.ScoreColumn = "score"
	}
	if o.ColorColumn == "" {
		o.ColorColumn = "cluster"
	}
	if o.ScaleFactor == 0 {
		o.ScaleFactor = 1000
	}
	if o.Width == 0 {
		o.Width = 600
	}
	if o.Height == 0 {
		o.Height = 500
	}
	if o.CmapName == "" {
		o.CmapName = "tab10"
	}
}

const bubbleAlpha = 153 // 0.6 opacity so overlapping bubbles stay readable

// RenderAtlas draws a bubble chart of head vs layer specialization and
// returns it as PNG bytes. Head id goes on the X axis, layer id on the Y
// axis with layer 0 at the top. Bubble size is proportional to |score|
// scaled by ScaleFactor, bubble color follows the color-key classification.
// Axis ticks come from the unfiltered table so top-k filtering does not
// shrink the apparent coordinate range; an empty table renders an empty plot
// with tick computation skipped.
func RenderAtlas(t *Table, opts AtlasOptions) ([]byte, error) {
	opts.ApplyDefaults()

	colorVals, err := t.Column(opts.ColorColumn)
	if err != nil {
		return nil, err
	}
	class := ClassifyColorKey(colorVals)

	filtered, err := FilterTopK(t, opts.ScoreColumn, opts.ColorColumn, opts.TopK, class)
	if err != nil {
		return nil, err
	}

	title := "Head Specialization"
	if opts.TopK > 0 {
		if class.Mode == ModeCategorical {
			title = fmt.Sprintf("%s (Top %d per %s)", title, opts.TopK, opts.ColorColumn)
		} else {
			title = fmt.Sprintf("%s (Top %d Global)", title, opts.TopK)
		}
	}

	ch := chart.Chart{
		Title:      title,
		Width:      opts.Width,
		Height:     opts.Height,
		Background: chart.Style{Padding: chart.Box{Top: 20, Left: 20, Right: 20, Bottom: 20}},
		XAxis: chart.XAxis{
			Name:           "Head ID",
			GridMajorStyle: gridStyle(),
			GridMinorStyle: gridStyle(),
		},
		YAxis: chart.YAxis{
			Name:           "Layer ID",
			GridMajorStyle: gridStyle(),
			GridMinorStyle: gridStyle(),
		},
	}

	if t.Len() == 0 {
		// Nothing to plot and no coordinate range to derive ticks from;
		// render bare axes over a placeholder range.
		ch.Series = []chart.Series{placeholderSeries()}
		return renderPNG(ch)
	}

	xTicks, yTicks, xRange, yRange, err := atlasTicks(t)
	if err != nil {
		return nil, err
	}
	ch.XAxis.Ticks = xTicks
	ch.XAxis.Range = xRange
	ch.YAxis.Ticks = yTicks
	ch.YAxis.Range = yRange

	series, err := atlasSeries(filtered, class, opts)
	if err != nil {
		return nil, err
	}
	ch.Series = series
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	return renderPNG(ch)
}

// atlasSeries builds the bubble series plus the legend-only entries.
func atlasSeries(filtered *Table, class ColorKeyClass, opts AtlasOptions) ([]chart.Series, error) {
	heads, err := filtered.Floats("head")
	if err != nil {
		return nil, err
	}
	layers, err := filtered.Floats("layer")
	if err != nil {
		return nil, err
	}
	scores, err := filtered.Floats(opts.ScoreColumn)
	if err != nil {
		return nil, err
	}
	keys, err := filtered.Column(opts.ColorColumn)
	if err != nil {
		return nil, err
	}

	xs := heads
	ys := make([]float64, len(layers))
	for i, l := range layers {
		ys[i] = -l // layer 0 at the top
	}
	sizes := make([]float64, len(scores))
	for i, s := range scores {
		sizes[i] = dotWidth(math.Abs(s) * opts.ScaleFactor)
	}

	colors := make([]drawing.Color, len(keys))
	var legend []chart.Series
	legendTitle := capitalize(opts.ColorColumn)

	switch class.Mode {
	case ModeCategorical:
		palette, err := PaletteByName(opts.CmapName)
		if err != nil {
			return nil, err
		}
		colorByKey := make(map[string]drawing.Color, len(class.Values))
		for i, v := range class.Values {
			colorByKey[v.Key()] = palette.At(i)
		}
		for i, k := range keys {
			colors[i] = withAlpha(colorByKey[k.Key()], bubbleAlpha)
		}
		legend = append(legend, legendEntry(legendTitle, drawing.ColorTransparent, xs[0], ys[0]))
		for _, v := range class.Values {
			legend = append(legend, legendEntry(v.String(), colorByKey[v.Key()], xs[0], ys[0]))
		}
	case ModeContinuous:
		cmap := colormaps["viridis"]
		vals, err := filtered.Floats(opts.ColorColumn)
		if err != nil {
			return nil, err
		}
		lo, hi := minMax(vals)
		for i, v := range vals {
			colors[i] = withAlpha(cmap.Sample(normalize(v, lo, hi)), bubbleAlpha)
		}
		legend = append(legend, legendEntry(legendTitle, drawing.ColorTransparent, xs[0], ys[0]))
		for _, stop := range []float64{0, 0.25, 0.5, 0.75, 1} {
			label := strconv.FormatFloat(lo+(hi-lo)*stop, 'g', 3, 64)
			legend = append(legend, legendEntry(label, cmap.Sample(stop), xs[0], ys[0]))
		}
	}

	bubbles := chart.ContinuousSeries{
		XValues: xs,
		YValues: ys,
		Style: chart.Style{
			StrokeWidth: chart.Disabled,
			DotWidth:    5,
			DotWidthProvider: func(_, _ chart.Range, index int, _, _ float64) float64 {
				return sizes[index]
			},
			DotColorProvider: func(_, _ chart.Range, index int, _, _ float64) drawing.Color {
				return colors[index]
			},
		},
	}
	return append([]chart.Series{bubbles}, legend...), nil
}

// atlasTicks derives axis ticks and ranges from the unfiltered data: head
// ids 0..max in steps of 2, layer ids 0..max in steps of 1 (negated so the
// layer axis reads top-down).
func atlasTicks(t *Table) ([]chart.Tick, []chart.Tick, *chart.ContinuousRange, *chart.ContinuousRange, error) {
	heads, err := t.Ints("head")
	if err != nil {
		return nil, nil, nil, nil, err
	}
	layers, err := t.Ints("layer")
	if err != nil {
		return nil, nil, nil, nil, err
	}
	maxHead, maxLayer := 0, 0
	for _, h := range heads {
		if h > maxHead {
			maxHead = h
		}
	}
	for _, l := range layers {
		if l > maxLayer {
			maxLayer = l
		}
	}
	var xTicks []chart.Tick
	for h := 0; h <= maxHead; h += 2 {
		xTicks = append(xTicks, chart.Tick{Value: float64(h), Label: strconv.Itoa(h)})
	}
	var yTicks []chart.Tick
	for l := maxLayer; l >= 0; l-- {
		yTicks = append(yTicks, chart.Tick{Value: -float64(l), Label: strconv.Itoa(l)})
	}
	xRange := &chart.ContinuousRange{Min: -0.5, Max: float64(maxHead) + 0.5}
	yRange := &chart.ContinuousRange{Min: -(float64(maxLayer) + 0.5), Max: 0.5}
	return xTicks, yTicks, xRange, yRange, nil
}

// legendEntry is a zero-length stroke so the series shows up in the legend
// without adding anything visible to the plot.
func legendEntry(name string, col drawing.Color, x, y float64) chart.Series {
	return chart.ContinuousSeries{
		Name:    name,
		XValues: []float64{x, x},
		YValues: []float64{y, y},
		Style: chart.Style{
			StrokeWidth: 6,
			StrokeColor: col,
		},
	}
}

func placeholderSeries() chart.Series {
	return chart.ContinuousSeries{
		XValues: []float64{0, 1},
		YValues: []float64{-1, 0},
		Style:   chart.Style{StrokeWidth: chart.Disabled},
	}
}

func renderPNG(ch chart.Chart) ([]byte, error) {
	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render atlas: %w", err)
	}
	return buf.Bytes(), nil
}

func gridStyle() chart.Style {
	return chart.Style{
		StrokeWidth: 1,
		StrokeColor: drawing.Color{R: 0, G: 0, B: 0, A: 30},
	}
}

// dotWidth converts a scaled score magnitude, treated as an area, into a
// dot radius in pixels.
func dotWidth(area float64) float64 {
	w := math.Sqrt(area) / 2
	if w < 1 {
		return 1
	}
	return w
}

func withAlpha(c drawing.Color, a uint8) drawing.Color {
	c.A = a
	return c
}

func normalize(v, lo, hi float64) float64 {
	if hi <= lo {
		return 0.5
	}
	return (v - lo) / (hi - lo)
}

func minMax(vals []float64) (float64, float64) {
	if len(vals) == 0 {
		return 0, 0
	}
	lo, hi := vals[0], vals[0]
	for _, v := range vals[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
