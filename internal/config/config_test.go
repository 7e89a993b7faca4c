package config

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), ".cut-it", "config.json"), nil)
}

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	s := tempStore(t)
	assert.Equal(t, Default(), s.Load())
}

func TestLoad_CorruptFileGivesDefaults(t *testing.T) {
	s := tempStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(s.Path()), 0o755))
	require.NoError(t, os.WriteFile(s.Path(), []byte("{not json"), 0o644))

	assert.Equal(t, Default(), s.Load())
}

func TestLoad_PartialFileFillsDefaults(t *testing.T) {
	s := tempStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(s.Path()), 0o755))
	require.NoError(t, os.WriteFile(s.Path(), []byte(`{"pt_br": true, "unknown": 1}`), 0o644))

	cfg := s.Load()
	assert.True(t, cfg.PtBR)
	assert.Equal(t, 300, cfg.ChunkSizeMin)
	assert.Equal(t, 500, cfg.ChunkSizeMax)
	assert.Equal(t, "gpt-4", cfg.Model)
	assert.True(t, cfg.CLIMode)
}

func TestSave_WritesIndentedJSON(t *testing.T) {
	s := tempStore(t)
	cfg := Default()
	cfg.Model = "gpt-3.5-turbo"

	require.NoError(t, s.Save(cfg))

	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  \"model\": \"gpt-3.5-turbo\"")

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.ElementsMatch(t, Keys(), keysOf(raw))

	assert.Equal(t, cfg, s.Load())
}

func TestUpdate_AppliesValidKeysOnly(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "config.json"), slog.New(slog.NewTextHandler(io.Discard, nil)))

	cfg, err := s.Update(map[string]any{
		"chunk_size_min": 100,
		"chunk_size_max": "800",
		"pt_br":          "true",
		"bogus":          "ignored",
	})
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.ChunkSizeMin)
	assert.Equal(t, 800, cfg.ChunkSizeMax)
	assert.True(t, cfg.PtBR)
	assert.Equal(t, "gpt-4", cfg.Model)

	assert.Equal(t, cfg, s.Load())

	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.NotContains(t, string(data), "bogus")
}

func TestUpdate_BadValue(t *testing.T) {
	s := tempStore(t)
	_, err := s.Update(map[string]any{"chunk_size_min": "lots"})
	require.ErrorIs(t, err, ErrInvalid)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		min     int
		max     int
		wantErr bool
	}{
		{"defaults", 300, 500, false},
		{"equal", 400, 400, false},
		{"zero min", 0, 500, true},
		{"negative max", 10, -1, true},
		{"inverted", 600, 500, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.ChunkSizeMin, cfg.ChunkSizeMax = tt.min, tt.max
			err := cfg.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalid)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("CUTIT_CONFIG", "/tmp/elsewhere.json")
	t.Setenv("CUTIT_LOG_LEVEL", "error")
	t.Setenv("CUTIT_LOG_FORMAT", "yaml")
	t.Setenv("CUTIT_DEBUG", "")

	env := LoadEnv()
	assert.Equal(t, "/tmp/elsewhere.json", env.ConfigPath)
	assert.Equal(t, slog.LevelError, env.LogLevel)
	assert.Equal(t, "text", env.LogFormat)

	t.Setenv("CUTIT_DEBUG", "1")
	t.Setenv("CUTIT_LOG_FORMAT", "json")
	env = LoadEnv()
	assert.Equal(t, slog.LevelDebug, env.LogLevel)
	assert.Equal(t, "json", env.LogFormat)
}

func keysOf(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}
