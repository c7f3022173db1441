package viz

import (
	"fmt"
	"html/template"
	"io"
	"os"
	"strings"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

// HeatmapOptions configures the relevance heatmap rendering.
type HeatmapOptions struct {
	// Colormap names the diverging gradient used for backgrounds.
	Colormap string `json:"colormap"`
	// Title is used by the standalone HTML document.
	Title string `json:"title"`
}

// ApplyDefaults populates zero values with sensible defaults.
func (o *HeatmapOptions) ApplyDefaults() {
	if o.Colormap == "" {
		o.Colormap = "bwr"
	}
	if o.Title == "" {
		o.Title = "Token Relevance"
	}
}

// HeatmapCell is one rendered token with its resolved colors.
type HeatmapCell struct {
	Token      string
	Relevance  float64
	Background drawing.Color
	Text       drawing.Color
}

// Heatmap is the rendered token-relevance artifact. It carries no display
// state; callers embed the fragment, write the document or print the ANSI
// form themselves.
type Heatmap struct {
	Cells []HeatmapCell
	Title string
}

var heatmapFragmentTmpl = template.Must(template.New("heatmap-fragment").Parse(
	`<div style="line-height: 1.8; font-size: 16px; font-family: Arial, sans-serif; padding: 10px; border: 2px solid #333;">` +
		`{{range .}}<span style="{{.Style}}">{{.Token}}</span>{{end}}</div>`))

var heatmapDocumentTmpl = template.Must(template.New("heatmap-document").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<title>{{.Title}}</title>
</head>
<body>
<h1>{{.Title}}</h1>
{{.Fragment}}
</body>
</html>
`))

type heatmapCellView struct {
	Token string
	Style template.CSS
}

// RenderHeatmap maps each token to an inline-styled cell whose background
// encodes its relevance on a diverging colormap. Tokens and relevances must
// have the same length and every relevance must lie in [-1,1]; both are
// checked before anything is rendered.
func RenderHeatmap(tokens []string, relevances []float64, opts HeatmapOptions) (*Heatmap, error) {
	if len(tokens) != len(relevances) {
		return nil, fmt.Errorf("heatmap: %d tokens but %d relevances", len(tokens), len(relevances))
	}
	for i, r := range relevances {
		if r < -1 || r > 1 {
			return nil, fmt.Errorf("heatmap: relevance %g at index %d outside [-1,1]", r, i)
		}
	}
	opts.ApplyDefaults()
	cmap, err := ColormapByName(opts.Colormap)
	if err != nil {
		return nil, fmt.Errorf("heatmap: %w", err)
	}
	cells := make([]HeatmapCell, len(tokens))
	for i, tok := range tokens {
		bg := cmap.AtRelevance(relevances[i])
		cells[i] = HeatmapCell{
			Token:      tok,
			Relevance:  relevances[i],
			Background: bg,
			Text:       TextColorFor(bg),
		}
	}
	return &Heatmap{Cells: cells, Title: opts.Title}, nil
}

// Fragment returns the embeddable HTML markup, one styled span per token in
// input order. Token text is escaped by the template engine.
func (h *Heatmap) Fragment() (template.HTML, error) {
	views := make([]heatmapCellView, len(h.Cells))
	for i, c := range h.Cells {
		views[i] = heatmapCellView{Token: c.Token, Style: c.css()}
	}
	var sb strings.Builder
	if err := heatmapFragmentTmpl.Execute(&sb, views); err != nil {
		return "", fmt.Errorf("render heatmap fragment: %w", err)
	}
	return template.HTML(sb.String()), nil
}

// WriteDocument writes a self-contained HTML page wrapping the fragment.
func (h *Heatmap) WriteDocument(w io.Writer) error {
	frag, err := h.Fragment()
	if err != nil {
		return err
	}
	data := struct {
		Title    string
		Fragment template.HTML
	}{Title: h.Title, Fragment: frag}
	if err := heatmapDocumentTmpl.Execute(w, data); err != nil {
		return fmt.Errorf("render heatmap document: %w", err)
	}
	return nil
}

// SaveDocument writes the standalone HTML page to path.
func (h *Heatmap) SaveDocument(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create heatmap file: %w", err)
	}
	defer f.Close()
	return h.WriteDocument(f)
}

func (c HeatmapCell) css() template.CSS {
	text := "black"
	if c.Text == drawing.ColorWhite {
		text = "white"
	}
	style := fmt.Sprintf(
		"background-color: rgb(%d,%d,%d); color: %s; padding: 2px 4px; margin: 1px; display: inline-block; border-radius: 2px;",
		c.Background.R, c.Background.G, c.Background.B, text)
	return template.CSS(style)
}
