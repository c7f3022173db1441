package viz

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// TableParseOptions lets callers choose which CSV/TSV columns map to the
// score-table fields. Values may be header names or 1-based "#N" indices;
// empty fields are auto-detected from the header.
type TableParseOptions struct {
	HeadColumn  string
	LayerColumn string
	ScoreColumn string
	ColorColumn string
}

// ScoreTableColumns reports the resolved column names of a loaded artifact.
// Head and layer are canonicalized; score and color keep the source header
// name so legends and options reference what the artifact calls them.
type ScoreTableColumns struct {
	Score string
	Color string
}

// LoadScoreTable reads a head/layer score artifact. The returned table has
// columns "head", "layer" plus the resolved score and color columns.
func LoadScoreTable(path string, opts TableParseOptions) (*Table, ScoreTableColumns, error) {
	var meta ScoreTableColumns
	rows, err := readDelimited(path)
	if err != nil {
		return nil, meta, err
	}
	header := make([]string, len(rows[0]))
	for i, cell := range rows[0] {
		header[i] = cleanCell(cell)
	}
	candidates := getColumnCandidates()
	headIdx, err := pickColumn(header, opts.HeadColumn, candidates.Head)
	if err != nil {
		return nil, meta, err
	}
	layerIdx, err := pickColumn(header, opts.LayerColumn, candidates.Layer)
	if err != nil {
		return nil, meta, err
	}
	scoreIdx, err := pickColumn(header, opts.ScoreColumn, candidates.Score)
	if err != nil {
		return nil, meta, err
	}
	colorIdx, err := pickColumn(header, opts.ColorColumn, candidates.Color)
	if err != nil {
		return nil, meta, err
	}
	if headIdx < 0 || layerIdx < 0 || scoreIdx < 0 || colorIdx < 0 {
		return nil, meta, fmt.Errorf("%s: could not detect head/layer/score/color columns in header %v",
			filepath.Base(path), header)
	}

	meta.Score = headerNameOr(header, scoreIdx, "score")
	meta.Color = headerNameOr(header, colorIdx, "cluster")
	table := NewTable("head", "layer", meta.Score, meta.Color)

	for r, row := range rows[1:] {
		line := r + 2
		head, err := numericCell(row, headIdx, "head", line)
		if err != nil {
			return nil, meta, err
		}
		layer, err := numericCell(row, layerIdx, "layer", line)
		if err != nil {
			return nil, meta, err
		}
		score, err := numericCell(row, scoreIdx, meta.Score, line)
		if err != nil {
			return nil, meta, err
		}
		var color Value
		if colorIdx < len(row) {
			color = ParseValue(row[colorIdx])
		}
		if err := table.AppendRow(Number(head), Number(layer), Number(score), color); err != nil {
			return nil, meta, err
		}
	}
	return table, meta, nil
}

// LoadRelevanceCSV reads a token/relevance artifact, returning same-length
// token and relevance slices in file order.
func LoadRelevanceCSV(path string) ([]string, []float64, error) {
	rows, err := readDelimited(path)
	if err != nil {
		return nil, nil, err
	}
	header := make([]string, len(rows[0]))
	for i, cell := range rows[0] {
		header[i] = cleanCell(cell)
	}
	tokenIdx := findColumn(header, []string{"token", "text", "word"})
	relIdx := findColumn(header, []string{"relevance", "score", "value"})
	start := 1
	if tokenIdx < 0 || relIdx < 0 {
		// Headerless two-column file: token, relevance.
		if len(header) < 2 {
			return nil, nil, fmt.Errorf("%s: could not detect token/relevance columns", filepath.Base(path))
		}
		tokenIdx, relIdx, start = 0, 1, 0
	}
	var tokens []string
	var relevances []float64
	for r, row := range rows[start:] {
		if tokenIdx >= len(row) || relIdx >= len(row) {
			continue
		}
		rel, err := strconv.ParseFloat(cleanCell(row[relIdx]), 64)
		if err != nil {
			return nil, nil, fmt.Errorf("%s line %d: relevance %q: %w", filepath.Base(path), r+start+1, row[relIdx], err)
		}
		tokens = append(tokens, row[tokenIdx])
		relevances = append(relevances, rel)
	}
	return tokens, relevances, nil
}

func readDelimited(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", filepath.Base(path), err)
	}
	defer f.Close()
	reader := csv.NewReader(f)
	if strings.EqualFold(filepath.Ext(path), ".tsv") {
		reader.Comma = '\t'
	}
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	if len(rows) == 0 {
		return nil, errors.New("empty file")
	}
	return rows, nil
}

func numericCell(row []string, idx int, name string, line int) (float64, error) {
	if idx >= len(row) {
		return 0, fmt.Errorf("line %d: missing %s cell", line, name)
	}
	v, err := strconv.ParseFloat(cleanCell(row[idx]), 64)
	if err != nil {
		return 0, fmt.Errorf("line %d: %s %q: %w", line, name, row[idx], err)
	}
	return v, nil
}

func cleanCell(v string) string {
	v = strings.TrimSpace(v)
	v = strings.TrimPrefix(v, "\uFEFF")
	return v
}

func findColumn(header []string, candidates []string) int {
	for i, col := range header {
		for _, cand := range candidates {
			if strings.EqualFold(col, cand) {
				return i
			}
		}
	}
	return -1
}

// pickColumn resolves an explicit selector (header name or 1-based "#N")
// or falls back to candidate auto-detection.
func pickColumn(header []string, explicit string, candidates []string) (int, error) {
	trimmed := strings.TrimSpace(explicit)
	if trimmed == "" {
		return findColumn(header, candidates), nil
	}
	for i, col := range header {
		if strings.EqualFold(col, trimmed) {
			return i, nil
		}
	}
	if strings.HasPrefix(trimmed, "#") {
		idx, err := parseColumnIndex(trimmed)
		if err != nil {
			return -1, err
		}
		if idx >= len(header) {
			return -1, fmt.Errorf("column index %s is out of range", trimmed)
		}
		return idx, nil
	}
	return -1, fmt.Errorf("column %q not found", explicit)
}

func parseColumnIndex(token string) (int, error) {
	trimmed := strings.TrimSpace(strings.TrimPrefix(token, "#"))
	idx, err := strconv.Atoi(trimmed)
	if err != nil {
		return -1, fmt.Errorf("invalid column index %q", token)
	}
	if idx <= 0 {
		return -1, fmt.Errorf("column indices are 1-based: %q", token)
	}
	return idx - 1, nil
}

func headerNameOr(header []string, idx int, fallback string) string {
	if idx >= 0 && idx < len(header) && header[idx] != "" {
		return header[idx]
	}
	return fallback
}
