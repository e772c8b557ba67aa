// Package config loads dayshift settings from CUE, JSON, YAML, or TOML.
//
// Every form is unified with one embedded CUE schema (schema.cue), which
// supplies defaults and rejects unknown fields and out-of-range values. A
// file only needs to name the settings it changes.
package config

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

//go:embed schema.cue
var schemaSource []byte

// Config holds the settings a config file may set.
type Config struct {
	Format      string `json:"format"`
	RenderISO   bool   `json:"render_iso"`
	LogLevel    string `json:"log_level"`
	Journal     string `json:"journal"`
	MetricsFile string `json:"metrics_file"`
}

// SlogLevel maps LogLevel to a slog level. Unknown values map to Info.
func (c Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Error reports an invalid config file, with the CUE position when known.
type Error struct {
	Path    string
	Message string
	Pos     token.Pos
}

func (e *Error) Error() string {
	if e.Pos.IsValid() && e.Pos.Filename() != "" {
		return fmt.Sprintf("%s:%d:%d: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Message)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	return e.Message
}

// Default returns the schema defaults.
func Default() Config {
	cfg, err := decode(cuecontext.New(), nil, "")
	if err != nil {
		// The embedded schema is compiled into the binary; failing here
		// is a build defect.
		panic(fmt.Sprintf("config: invalid embedded schema: %v", err))
	}
	return cfg
}

// Load reads path and decodes it according to its extension: .cue, .json,
// .yaml, .yml, or .toml.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data, filepath.Ext(path), path)
}

// Parse decodes data in the format named by ext (with or without the
// leading dot). filename is used in error messages.
func Parse(data []byte, ext, filename string) (Config, error) {
	ctx := cuecontext.New()

	var v cue.Value
	switch strings.TrimPrefix(strings.ToLower(ext), ".") {
	case "cue", "json":
		// JSON is valid CUE.
		v = ctx.CompileBytes(data, cue.Filename(filename))
	case "yaml", "yml":
		var m map[string]any
		if err := yaml.Unmarshal(data, &m); err != nil {
			return Config{}, &Error{Path: filename, Message: err.Error()}
		}
		v = ctx.Encode(nonNil(m))
	case "toml":
		var m map[string]any
		if _, err := toml.Decode(string(data), &m); err != nil {
			return Config{}, &Error{Path: filename, Message: err.Error()}
		}
		v = ctx.Encode(nonNil(m))
	default:
		return Config{}, &Error{
			Path:    filename,
			Message: fmt.Sprintf("unsupported config format %q (want .cue, .json, .yaml, .yml, or .toml)", ext),
		}
	}
	if err := v.Err(); err != nil {
		return Config{}, formatCUEError(err, filename)
	}
	return decode(ctx, &v, filename)
}

// decode unifies v (nil for none) with the schema, validates, and decodes.
func decode(ctx *cue.Context, v *cue.Value, filename string) (Config, error) {
	schema := ctx.CompileBytes(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return Config{}, formatCUEError(err, "schema.cue")
	}
	unified := schema.LookupPath(cue.ParsePath("#Config"))
	if v != nil {
		unified = unified.Unify(*v)
	}

	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return Config{}, formatCUEError(err, filename)
	}

	var cfg Config
	if err := unified.Decode(&cfg); err != nil {
		return Config{}, formatCUEError(err, filename)
	}
	return cfg, nil
}

func nonNil(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	return m
}

// formatCUEError keeps the first error, with its position when it has one.
func formatCUEError(err error, filename string) error {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return &Error{Path: filename, Message: err.Error()}
	}

	first := errs[0]
	out := &Error{Path: filename, Message: first.Error()}
	for _, pos := range cueerrors.Positions(first) {
		if pos.Filename() == filename {
			out.Pos = pos
			break
		}
	}
	return out
}
