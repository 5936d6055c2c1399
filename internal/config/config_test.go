package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	// An empty file keeps every default
	path := filepath.Join(t.TempDir(), "wadex.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{}\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "doom1.wad", cfg.Wad)
	assert.Equal(t, "doom.toml", cfg.Metadata)
	assert.Equal(t, "wadex.db", cfg.Database)
	assert.Equal(t, "lumps", cfg.Output)
	assert.Empty(t, cfg.Names)
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestLoadFile(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	path := filepath.Join(t.TempDir(), "wadex.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
wad: /games/doom2.wad
metadata: /games/doom2.yaml
names: [PLAYPAL, COLORMAP]
log_level: debug
log_format: json
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/games/doom2.wad", cfg.Wad)
	assert.Equal(t, "/games/doom2.yaml", cfg.Metadata)
	assert.Equal(t, []string{"PLAYPAL", "COLORMAP"}, cfg.Names)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoadInvalid(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	path := filepath.Join(t.TempDir(), "wadex.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: loud\n"), 0o644))

	_, err := Load(path)
	require.ErrorContains(t, err, "unsupported log level")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"ok", Config{Wad: "doom.wad", Names: []string{"E1M1", "SW1BRN1", "VILE[1", "DS\\"}}, ""},
		{"empty wad", Config{}, "wad path"},
		{"long name", Config{Wad: "doom.wad", Names: []string{"TOOLONGNAME"}}, "longer than 8"},
		{"bad char", Config{Wad: "doom.wad", Names: []string{"E1 M1"}}, "invalid character"},
		{"empty name", Config{Wad: "doom.wad", Names: []string{""}}, "cannot be empty"},
		{"bad format", Config{Wad: "doom.wad", LogFormat: "xml"}, "unsupported log format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}
