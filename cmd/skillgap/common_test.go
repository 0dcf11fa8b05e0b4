package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitCSV(t *testing.T) {
	assert.Equal(t, []string{"go", "rust"}, splitCSV(" go, ,rust,"))
	assert.Nil(t, splitCSV(""))
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeJSON(&buf, "", map[string]int{"weeks": 12}))
	assert.Equal(t, "{\n  \"weeks\": 12\n}\n", buf.String())

	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, writeJSON(&buf, path, []string{"go"}))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[\n  \"go\"\n]\n", string(data))
}

func TestLoadConfig(t *testing.T) {
	isolateEnv(t)
	resetFlags()

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"weekly_hours": 3, "clusters": 2}`), 0644))
	rootConfigPath = path
	t.Cleanup(resetFlags)

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, 3.0, cfg.WeeklyHours)
	assert.Equal(t, 2, cfg.Clusters)
	assert.Equal(t, "Beginner", cfg.Level)
	assert.Equal(t, "none", cfg.LLMProvider)

	t.Setenv("WEEKLY_HOURS", "7.5")
	cfg, err = loadConfig()
	require.NoError(t, err)
	assert.Equal(t, 7.5, cfg.WeeklyHours)
}

func TestLoadConfig_Invalid(t *testing.T) {
	isolateEnv(t)
	resetFlags()
	t.Cleanup(resetFlags)

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"clusters": -1}`), 0644))
	rootConfigPath = path

	_, err := loadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "clusters")

	rootConfigPath = filepath.Join(t.TempDir(), "missing.json")
	_, err = loadConfig()
	assert.Error(t, err)
}
