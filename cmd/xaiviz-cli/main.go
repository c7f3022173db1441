package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/messierandromeda/xai-workshop/viz"
)

type cliOptions struct {
	configPath string

	scoresPath string
	atlasOut   string
	tableOpts  viz.TableParseOptions
	topK       int
	scale      float64
	palette    string

	relevancePath string
	heatmapOut    string
	colormap      string
	ansiStdout    bool

	idsSpec       string
	tokenizerPath string
}

func main() {
	opts, err := parseFlags()
	if err != nil {
		log.Fatalf("xaiviz-cli: %v", err)
	}
	if err := run(opts); err != nil {
		log.Fatalf("xaiviz-cli: %v", err)
	}
}

func parseFlags() (cliOptions, error) {
	var opts cliOptions
	flag.StringVar(&opts.configPath, "config", "", "Path to config.json (default: ./config.json)")
	flag.StringVar(&opts.scoresPath, "scores", "", "CSV/TSV file with head/layer specialization scores")
	flag.StringVar(&opts.atlasOut, "atlas-out", "atlas.png", "PNG file for the rendered atlas")
	flag.StringVar(&opts.tableOpts.HeadColumn, "head-column", "", "Column name or #index for head ids")
	flag.StringVar(&opts.tableOpts.LayerColumn, "layer-column", "", "Column name or #index for layer ids")
	flag.StringVar(&opts.tableOpts.ScoreColumn, "score-column", "", "Column name or #index for the score column")
	flag.StringVar(&opts.tableOpts.ColorColumn, "color-column", "", "Column name or #index for the color key column")
	flag.IntVar(&opts.topK, "top-k", 0, "Keep only the k largest-|score| rows (per category when categorical)")
	flag.Float64Var(&opts.scale, "scale", 0, "Bubble size multiplier (default from config)")
	flag.StringVar(&opts.palette, "palette", "", "Categorical palette: tab10 or tab20")
	flag.StringVar(&opts.relevancePath, "relevance", "", "CSV/TSV file with token,relevance rows")
	flag.StringVar(&opts.heatmapOut, "heatmap-out", "heatmap.html", "HTML file for the rendered heatmap")
	flag.StringVar(&opts.colormap, "colormap", "", "Diverging colormap: bwr, coolwarm or seismic")
	flag.BoolVar(&opts.ansiStdout, "stdout", false, "Print the heatmap to STDOUT with ANSI colors")
	flag.StringVar(&opts.idsSpec, "ids", "", "Comma separated token ids to decode (requires --tokenizer)")
	flag.StringVar(&opts.tokenizerPath, "tokenizer", "", "Path to a HuggingFace tokenizer.json")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(),
			"Usage: %s [--scores FILE] [--relevance FILE] [--ids LIST --tokenizer FILE] [options]\n\n",
			filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	opts.scoresPath = strings.TrimSpace(opts.scoresPath)
	opts.relevancePath = strings.TrimSpace(opts.relevancePath)
	opts.idsSpec = strings.TrimSpace(opts.idsSpec)
	if opts.scoresPath == "" && opts.relevancePath == "" && opts.idsSpec == "" {
		flag.Usage()
		return opts, errors.New("nothing to do: pass --scores, --relevance or --ids")
	}
	if opts.idsSpec != "" && opts.tokenizerPath == "" {
		return opts, errors.New("--ids requires --tokenizer")
	}
	return opts, nil
}

func run(opts cliOptions) error {
	cfg, err := viz.LoadConfig(opts.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.topK > 0 {
		cfg.Atlas.TopK = opts.topK
	}
	if opts.scale > 0 {
		cfg.Atlas.ScaleFactor = opts.scale
	}
	if opts.palette != "" {
		cfg.Atlas.CmapName = opts.palette
	}
	if opts.colormap != "" {
		cfg.Heatmap.Colormap = opts.colormap
	}

	if opts.idsSpec != "" {
		if err := decodeIDs(opts); err != nil {
			return err
		}
	}
	if opts.scoresPath != "" {
		if err := renderAtlas(opts, cfg); err != nil {
			return err
		}
	}
	if opts.relevancePath != "" {
		if err := renderHeatmap(opts, cfg); err != nil {
			return err
		}
	}
	return nil
}

func decodeIDs(opts cliOptions) error {
	dec, err := viz.NewHFDecoderFromFile(opts.tokenizerPath)
	if err != nil {
		return err
	}
	ids, err := parseIDs(opts.idsSpec)
	if err != nil {
		return err
	}
	tokens, err := viz.DecodeTokens(ids, dec)
	if err != nil {
		return err
	}
	for i, tok := range tokens {
		fmt.Printf("%d\t%s\n", ids[i], tok)
	}
	return nil
}

func renderAtlas(opts cliOptions, cfg viz.Config) error {
	table, cols, err := viz.LoadScoreTable(opts.scoresPath, opts.tableOpts)
	if err != nil {
		return err
	}
	cfg.Atlas.ScoreColumn = cols.Score
	cfg.Atlas.ColorColumn = cols.Color
	data, err := viz.RenderAtlas(table, cfg.Atlas)
	if err != nil {
		return err
	}
	if err := os.WriteFile(opts.atlasOut, data, 0o644); err != nil {
		return fmt.Errorf("write atlas: %w", err)
	}
	fmt.Printf("wrote %s (%d rows)\n", opts.atlasOut, table.Len())
	return nil
}

func renderHeatmap(opts cliOptions, cfg viz.Config) error {
	tokens, relevances, err := viz.LoadRelevanceCSV(opts.relevancePath)
	if err != nil {
		return err
	}
	h, err := viz.RenderHeatmap(tokens, relevances, cfg.Heatmap)
	if err != nil {
		return err
	}
	if opts.ansiStdout {
		fmt.Println(h.ANSI())
		return nil
	}
	if err := h.SaveDocument(opts.heatmapOut); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%d tokens)\n", opts.heatmapOut, len(tokens))
	return nil
}

func parseIDs(spec string) ([]int, error) {
	parts := strings.FieldsFunc(spec, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	ids := make([]int, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid token id %q", p)
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil, errors.New("no token ids given")
	}
	return ids, nil
}
