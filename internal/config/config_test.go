package config

import (
	"errors"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	assert.Equal(t, Config{
		Format:    "text",
		RenderISO: true,
		LogLevel:  "info",
	}, Default())
}

func TestLoad_EveryFormat(t *testing.T) {
	want := Config{
		Format:    "json",
		RenderISO: false,
		LogLevel:  "debug",
		Journal:   "/var/lib/dayshift/journal.db",
	}

	for _, name := range []string{"dayshift.yaml", "dayshift.toml", "dayshift.cue", "dayshift.json"} {
		t.Run(name, func(t *testing.T) {
			cfg, err := Load(filepath.Join("testdata", name))
			require.NoError(t, err)
			assert.Equal(t, want, cfg)
		})
	}
}

func TestParse_PartialFileKeepsDefaults(t *testing.T) {
	tests := []struct {
		ext  string
		data string
	}{
		{"yaml", "journal: j.db\n"},
		{".yml", "journal: j.db\n"},
		{"toml", "journal = \"j.db\"\n"},
		{"cue", "journal: \"j.db\"\n"},
		{"JSON", `{"journal":"j.db"}`},
	}

	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			cfg, err := Parse([]byte(tt.data), tt.ext, "partial")
			require.NoError(t, err)
			assert.Equal(t, Config{Format: "text", RenderISO: true, LogLevel: "info", Journal: "j.db"}, cfg)
		})
	}
}

func TestParse_EmptyFile(t *testing.T) {
	for _, ext := range []string{"yaml", "toml", "cue"} {
		cfg, err := Parse(nil, ext, "empty")
		require.NoError(t, err, ext)
		assert.Equal(t, Default(), cfg, ext)
	}
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		ext    string
		data   string
		errMsg string
	}{
		{"unknown field yaml", "yaml", "colour: red\n", "colour"},
		{"unknown field toml", "toml", "colour = \"red\"\n", "colour"},
		{"bad format", "yaml", "format: xml\n", "format"},
		{"bad log level", "toml", "log_level = \"loud\"\n", "log_level"},
		{"wrong type", "json", `{"render_iso":"yes"}`, "render_iso"},
		{"malformed yaml", "yaml", "format: [\n", "yaml"},
		{"malformed toml", "toml", "format = \n", "partial"},
		{"malformed cue", "cue", "format: {\n", "partial"},
		{"unknown extension", "ini", "format=json", "unsupported config format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), tt.ext, "partial")
			require.Error(t, err)

			var cfgErr *Error
			require.True(t, errors.As(err, &cfgErr))
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestParse_CUEErrorHasPosition(t *testing.T) {
	_, err := Parse([]byte("journal: \"\"\nformat: \"xml\"\n"), "cue", "bad.cue")
	require.Error(t, err)

	var cfgErr *Error
	require.True(t, errors.As(err, &cfgErr))
	require.True(t, cfgErr.Pos.IsValid())
	assert.Equal(t, "bad.cue", cfgErr.Pos.Filename())
	assert.Equal(t, 2, cfgErr.Pos.Line())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestSlogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
		"":      slog.LevelInfo,
	}
	for level, want := range tests {
		assert.Equal(t, want, Config{LogLevel: level}.SlogLevel(), level)
	}
}

func TestErrorFormatting(t *testing.T) {
	assert.Equal(t, "f.toml: boom", (&Error{Path: "f.toml", Message: "boom"}).Error())
	assert.Equal(t, "boom", (&Error{Message: "boom"}).Error())
}
