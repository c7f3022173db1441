package viz

import "sync"

// ColumnCandidates defines possible header names for auto-detecting the
// columns of a head/layer score CSV/TSV artifact.
type ColumnCandidates struct {
	Head  []string `json:"head"`
	Layer []string `json:"layer"`
	Score []string `json:"score"`
	Color []string `json:"color"`
}

var (
	columnCandidatesMu  sync.RWMutex
	activeColumnOptions = defaultColumnCandidates()
)

func defaultColumnCandidates() ColumnCandidates {
	return ColumnCandidates{
		Head:  []string{"head", "head_id", "headid", "attention_head"},
		Layer: []string{"layer", "layer_id", "layerid"},
		Score: []string{"score", "specialization", "relevance", "value"},
		Color: []string{"cluster", "category", "group", "label"},
	}
}

// DefaultColumnCandidates returns the built-in column detection candidates.
func DefaultColumnCandidates() ColumnCandidates {
	return defaultColumnCandidates().clone()
}

// SetColumnCandidates updates the candidates used during auto-detection.
// Fields left nil fall back to the built-in defaults, allowing callers to
// override only the parts they need.
func SetColumnCandidates(candidates ColumnCandidates) {
	columnCandidatesMu.Lock()
	defer columnCandidatesMu.Unlock()
	activeColumnOptions = candidates.withDefaults()
}

func getColumnCandidates() ColumnCandidates {
	columnCandidatesMu.RLock()
	defer columnCandidatesMu.RUnlock()
	return activeColumnOptions.clone()
}

func (c ColumnCandidates) withDefaults() ColumnCandidates {
	defaults := defaultColumnCandidates()
	return ColumnCandidates{
		Head:  pickStrings(c.Head, defaults.Head),
		Layer: pickStrings(c.Layer, defaults.Layer),
		Score: pickStrings(c.Score, defaults.Score),
		Color: pickStrings(c.Color, defaults.Color),
	}
}

func (c ColumnCandidates) clone() ColumnCandidates {
	return ColumnCandidates{
		Head:  cloneStrings(c.Head),
		Layer: cloneStrings(c.Layer),
		Score: cloneStrings(c.Score),
		Color: cloneStrings(c.Color),
	}
}

func pickStrings(custom, fallback []string) []string {
	if custom == nil {
		return cloneStrings(fallback)
	}
	return cloneStrings(custom)
}

func cloneStrings(values []string) []string {
	if values == nil {
		return nil
	}
	out := make([]string, len(values))
	copy(out, values)
	return out
}
