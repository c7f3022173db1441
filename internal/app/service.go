package app

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/messierandromeda/xai-workshop/viz"
)

// Service mediates between the UI and the viz package: it owns the loaded
// artifacts, the active options and a cache of rendered charts, and it
// serializes renders so option changes from the UI stay consistent.
type Service struct {
	mu     sync.Mutex
	cfg    viz.Config
	logger *log.Logger
	cache  *renderCache

	scores     *viz.Table
	scoreCols  viz.ScoreTableColumns
	tokens     []string
	relevances []float64
}

// NewService starts with the built-in demo artifacts so the viewer has
// something to render before any file is loaded.
func NewService(cfg viz.Config, logger *log.Logger) *Service {
	cfg.ApplyDefaults()
	s := &Service{
		cfg:    cfg,
		logger: logger,
		cache:  newRenderCache(),
	}
	s.scores, s.scoreCols = demoScores()
	s.cfg.Atlas.ScoreColumn = s.scoreCols.Score
	s.cfg.Atlas.ColorColumn = s.scoreCols.Color
	s.tokens, s.relevances = demoRelevance()
	return s
}

// Config returns a copy of the current configuration.
func (s *Service) Config() viz.Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg.Clone()
}

// UpdateConfig replaces the configuration.
func (s *Service) UpdateConfig(cfg viz.Config) {
	cfg.ApplyDefaults()
	s.mu.Lock()
	s.cfg = cfg
	s.mu.Unlock()
}

// LoadScores reads a head/layer score artifact and points the atlas options
// at its resolved score/color columns.
func (s *Service) LoadScores(path string, opts viz.TableParseOptions) (int, error) {
	table, cols, err := viz.LoadScoreTable(path, opts)
	if err != nil {
		return 0, fmt.Errorf("load scores: %w", err)
	}
	s.mu.Lock()
	s.scores = table
	s.scoreCols = cols
	s.cfg.Atlas.ScoreColumn = cols.Score
	s.cfg.Atlas.ColorColumn = cols.Color
	s.cfg.ScoresPath = path
	s.mu.Unlock()
	s.logger.Printf("loaded %d score rows from %s (score=%q color=%q)", table.Len(), path, cols.Score, cols.Color)
	return table.Len(), nil
}

// LoadRelevance reads a token/relevance artifact.
func (s *Service) LoadRelevance(path string) (int, error) {
	tokens, relevances, err := viz.LoadRelevanceCSV(path)
	if err != nil {
		return 0, fmt.Errorf("load relevance: %w", err)
	}
	s.SetRelevance(tokens, relevances)
	s.mu.Lock()
	s.cfg.RelevancePath = path
	s.mu.Unlock()
	s.logger.Printf("loaded %d tokens from %s", len(tokens), path)
	return len(tokens), nil
}

// SetRelevance replaces the token/relevance pair, e.g. from pasted text.
// Tokens are normalized so odd whitespace or control characters from an
// artifact do not leak into the rendered labels.
func (s *Service) SetRelevance(tokens []string, relevances []float64) {
	s.mu.Lock()
	s.tokens = viz.NormalizeTokens(tokens)
	s.relevances = append([]float64(nil), relevances...)
	s.mu.Unlock()
}

// RenderAtlasPNG renders the score table with the current options, serving
// repeated renders of the same inputs from the cache.
func (s *Service) RenderAtlasPNG() ([]byte, error) {
	s.mu.Lock()
	table := s.scores
	opts := s.cfg.Atlas
	s.mu.Unlock()
	if table == nil {
		return nil, errors.New("no score table loaded")
	}
	key := renderKey(table, opts)
	if png, ok := s.cache.get(key); ok {
		return png, nil
	}
	png, err := viz.RenderAtlas(table, opts)
	if err != nil {
		return nil, err
	}
	s.cache.put(key, png)
	return png, nil
}

// Heatmap renders the current token/relevance pair.
func (s *Service) Heatmap() (*viz.Heatmap, error) {
	s.mu.Lock()
	tokens := s.tokens
	relevances := s.relevances
	opts := s.cfg.Heatmap
	s.mu.Unlock()
	return viz.RenderHeatmap(tokens, relevances, opts)
}

// ExportHeatmap writes the standalone HTML document.
func (s *Service) ExportHeatmap(path string) error {
	h, err := s.Heatmap()
	if err != nil {
		return err
	}
	if err := h.SaveDocument(path); err != nil {
		return err
	}
	s.logger.Printf("wrote heatmap document to %s", path)
	return nil
}

// renderKey digests the table contents and options so identical renders hit
// the cache.
func renderKey(table *viz.Table, opts viz.AtlasOptions) string {
	h := sha1.New()
	enc, _ := json.Marshal(opts)
	h.Write(enc)
	h.Write([]byte(strings.Join(table.Columns(), ",")))
	for i := 0; i < table.Len(); i++ {
		for _, cell := range table.Row(i) {
			h.Write([]byte(cell.Key()))
			h.Write([]byte{'|'})
		}
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))
}
