package app

import "github.com/messierandromeda/xai-workshop/viz"

// demoScores is a small built-in specialization table shown before the user
// loads an artifact, covering three clusters across a 6-layer, 8-head model.
func demoScores() (*viz.Table, viz.ScoreTableColumns) {
	cols := viz.ScoreTableColumns{Score: "score", Color: "cluster"}
	t := viz.NewTable("head", "layer", "score", "cluster")
	rows := []struct {
		head, layer int
		score       float64
		cluster     string
	}{
		{0, 0, 0.42, "syntax"},
		{2, 0, -0.18, "syntax"},
		{5, 0, 0.09, "positional"},
		{1, 1, 0.33, "syntax"},
		{4, 1, -0.51, "semantic"},
		{7, 1, 0.12, "positional"},
		{0, 2, 0.27, "semantic"},
		{3, 2, 0.64, "semantic"},
		{6, 2, -0.08, "positional"},
		{2, 3, 0.15, "syntax"},
		{5, 3, -0.37, "semantic"},
		{7, 3, 0.22, "positional"},
		{1, 4, 0.48, "semantic"},
		{4, 4, -0.11, "syntax"},
		{6, 4, 0.30, "positional"},
		{0, 5, -0.25, "semantic"},
		{3, 5, 0.55, "syntax"},
		{7, 5, 0.19, "positional"},
	}
	for _, r := range rows {
		_ = t.AppendRow(
			viz.Number(float64(r.head)),
			viz.Number(float64(r.layer)),
			viz.Number(r.score),
			viz.Text(r.cluster),
		)
	}
	return t, cols
}

// demoRelevance is a short attributed sentence for the relevance tab.
func demoRelevance() ([]string, []float64) {
	tokens := []string{"The", "movie", "was", "not", "bad", "at", "all", "."}
	relevances := []float64{0.02, 0.31, 0.05, -0.78, -0.42, 0.12, 0.25, 0.0}
	return tokens, relevances
}
