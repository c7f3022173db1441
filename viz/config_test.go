package viz

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)
	assert.Equal(t, "bwr", cfg.Heatmap.Colormap)
	assert.Equal(t, "tab10", cfg.Atlas.CmapName)
	assert.Equal(t, 1000.0, cfg.Atlas.ScaleFactor)
}

func TestConfigSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	cfg := Config{
		ScoresPath:    "/tmp/scores.csv",
		TokenizerPath: "/tmp/tokenizer.json",
	}
	cfg.ApplyDefaults()
	cfg.Atlas.TopK = 12
	cfg.Heatmap.Colormap = "seismic"

	require.NoError(t, SaveConfig(path, cfg))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadConfigRejectsMalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{nope"), 0o644))
	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode config")
}

func TestConfigCloneIsIndependent(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	clone := cfg.Clone()
	clone.Atlas.TopK = 99
	clone.ScoresPath = "changed"
	assert.Zero(t, cfg.Atlas.TopK)
	assert.Empty(t, cfg.ScoresPath)
}
