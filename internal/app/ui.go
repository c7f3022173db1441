package app

import (
	"bytes"
	"fmt"
	"image/color"
	"image/png"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/messierandromeda/xai-workshop/viz"
)

type uiState struct {
	service *Service
	w       fyne.Window

	status *widget.Label

	atlasImg      *canvas.Image
	topKEntry     *widget.Entry
	scaleEntry    *widget.Entry
	paletteSelect *widget.Select

	heatmapBox     *fyne.Container
	relevanceInput *widget.Entry
	cmapSelect     *widget.Select
}

func buildUI(a fyne.App, svc *Service) *uiState {
	u := &uiState{service: svc}
	u.w = a.NewWindow("XAI Workshop")
	u.w.Resize(fyne.NewSize(1024, 768))

	u.status = widget.NewLabel("Ready")

	tabs := container.NewAppTabs(
		container.NewTabItem("Head Atlas", u.buildAtlasTab()),
		container.NewTabItem("Token Relevance", u.buildRelevanceTab()),
	)
	u.w.SetContent(container.NewBorder(nil, u.status, nil, nil, tabs))

	u.refreshAtlas()
	u.refreshHeatmap()
	return u
}

func (u *uiState) buildAtlasTab() fyne.CanvasObject {
	cfg := u.service.Config()

	u.atlasImg = canvas.NewImageFromImage(nil)
	u.atlasImg.FillMode = canvas.ImageFillContain
	u.atlasImg.SetMinSize(fyne.NewSize(600, 500))

	u.topKEntry = widget.NewEntry()
	u.topKEntry.SetText(strconv.Itoa(cfg.Atlas.TopK))
	u.topKEntry.SetPlaceHolder("0 = all")

	u.scaleEntry = widget.NewEntry()
	u.scaleEntry.SetText(strconv.FormatFloat(cfg.Atlas.ScaleFactor, 'g', -1, 64))

	u.paletteSelect = widget.NewSelect([]string{"tab10", "tab20"}, nil)
	u.paletteSelect.SetSelected(cfg.Atlas.CmapName)

	loadBtn := widget.NewButton("Load scores CSV…", u.openScoresDialog)
	renderBtn := widget.NewButton("Render", func() {
		u.applyAtlasOptions()
		u.refreshAtlas()
	})
	exportBtn := widget.NewButton("Export PNG…", u.exportAtlasDialog)

	controls := container.NewVBox(
		loadBtn,
		widget.NewForm(
			widget.NewFormItem("Top K", u.topKEntry),
			widget.NewFormItem("Scale", u.scaleEntry),
			widget.NewFormItem("Palette", u.paletteSelect),
		),
		renderBtn,
		exportBtn,
	)
	return container.NewBorder(nil, nil, controls, nil, u.atlasImg)
}

func (u *uiState) buildRelevanceTab() fyne.CanvasObject {
	cfg := u.service.Config()

	u.heatmapBox = container.NewGridWrap(fyne.NewSize(110, 34))

	u.relevanceInput = widget.NewMultiLineEntry()
	u.relevanceInput.SetPlaceHolder("token,relevance per line (relevance in [-1,1])")

	u.cmapSelect = widget.NewSelect([]string{"bwr", "coolwarm", "seismic"}, nil)
	u.cmapSelect.SetSelected(cfg.Heatmap.Colormap)

	loadBtn := widget.NewButton("Load relevance CSV…", u.openRelevanceDialog)
	applyBtn := widget.NewButton("Render", func() {
		if text := strings.TrimSpace(u.relevanceInput.Text); text != "" {
			tokens, relevances, err := parseRelevanceText(text)
			if err != nil {
				u.showError(err)
				return
			}
			u.service.SetRelevance(tokens, relevances)
		}
		u.applyHeatmapOptions()
		u.refreshHeatmap()
	})
	exportBtn := widget.NewButton("Export HTML…", u.exportHeatmapDialog)

	controls := container.NewVBox(
		loadBtn,
		widget.NewForm(widget.NewFormItem("Colormap", u.cmapSelect)),
		u.relevanceInput,
		applyBtn,
		exportBtn,
	)
	return container.NewBorder(nil, nil, controls, nil, container.NewVScroll(u.heatmapBox))
}

func (u *uiState) applyAtlasOptions() {
	cfg := u.service.Config()
	if v, err := strconv.Atoi(strings.TrimSpace(u.topKEntry.Text)); err == nil && v >= 0 {
		cfg.Atlas.TopK = v
	}
	if v, err := strconv.ParseFloat(strings.TrimSpace(u.scaleEntry.Text), 64); err == nil && v > 0 {
		cfg.Atlas.ScaleFactor = v
	}
	if u.paletteSelect.Selected != "" {
		cfg.Atlas.CmapName = u.paletteSelect.Selected
	}
	u.service.UpdateConfig(cfg)
}

func (u *uiState) applyHeatmapOptions() {
	cfg := u.service.Config()
	if u.cmapSelect.Selected != "" {
		cfg.Heatmap.Colormap = u.cmapSelect.Selected
	}
	u.service.UpdateConfig(cfg)
}

func (u *uiState) refreshAtlas() {
	data, err := u.service.RenderAtlasPNG()
	if err != nil {
		u.showError(err)
		return
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		u.showError(fmt.Errorf("decode atlas png: %w", err))
		return
	}
	u.atlasImg.Image = img
	u.atlasImg.Refresh()
	u.status.SetText("Atlas rendered")
}

func (u *uiState) refreshHeatmap() {
	h, err := u.service.Heatmap()
	if err != nil {
		u.showError(err)
		return
	}
	u.heatmapBox.RemoveAll()
	for _, cell := range h.Cells {
		u.heatmapBox.Add(tokenChip(cell))
	}
	u.heatmapBox.Refresh()
	u.status.SetText(fmt.Sprintf("Heatmap rendered (%d tokens)", len(h.Cells)))
}

// tokenChip renders one heatmap cell as a colored rectangle with contrast
// text, mirroring the HTML fragment's styling.
func tokenChip(cell viz.HeatmapCell) fyne.CanvasObject {
	rect := canvas.NewRectangle(toNRGBA(cell.Background))
	rect.CornerRadius = 2
	text := canvas.NewText(cell.Token, toNRGBA(cell.Text))
	text.TextSize = 14
	return container.NewStack(rect, container.NewCenter(text))
}

func (u *uiState) openScoresDialog() {
	fd := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil {
			u.showError(err)
			return
		}
		if rc == nil {
			return
		}
		path := rc.URI().Path()
		_ = rc.Close()
		n, err := u.service.LoadScores(path, viz.TableParseOptions{})
		if err != nil {
			u.showError(err)
			return
		}
		u.status.SetText(fmt.Sprintf("Loaded %d rows", n))
		u.refreshAtlas()
	}, u.w)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".csv", ".tsv"}))
	fd.Show()
}

func (u *uiState) openRelevanceDialog() {
	fd := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil {
			u.showError(err)
			return
		}
		if rc == nil {
			return
		}
		path := rc.URI().Path()
		_ = rc.Close()
		n, err := u.service.LoadRelevance(path)
		if err != nil {
			u.showError(err)
			return
		}
		u.status.SetText(fmt.Sprintf("Loaded %d tokens", n))
		u.refreshHeatmap()
	}, u.w)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".csv", ".tsv"}))
	fd.Show()
}

func (u *uiState) exportAtlasDialog() {
	dialog.ShowFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil {
			u.showError(err)
			return
		}
		if wc == nil {
			return
		}
		defer wc.Close()
		data, err := u.service.RenderAtlasPNG()
		if err != nil {
			u.showError(err)
			return
		}
		if _, err := wc.Write(data); err != nil {
			u.showError(fmt.Errorf("write png: %w", err))
			return
		}
		u.status.SetText("Atlas exported")
	}, u.w)
}

func (u *uiState) exportHeatmapDialog() {
	dialog.ShowFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil {
			u.showError(err)
			return
		}
		if wc == nil {
			return
		}
		defer wc.Close()
		h, err := u.service.Heatmap()
		if err != nil {
			u.showError(err)
			return
		}
		if err := h.WriteDocument(wc); err != nil {
			u.showError(err)
			return
		}
		u.status.SetText("Heatmap exported")
	}, u.w)
}

func (u *uiState) showError(err error) {
	u.status.SetText(err.Error())
	dialog.ShowError(err, u.w)
}

func toNRGBA(c drawing.Color) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}
