package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/roach88/dayshift/internal/config"
	"github.com/roach88/dayshift/internal/engine"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose     bool
	Format      string // "json" | "text"
	ConfigPath  string
	Database    string // journal path; empty disables journaling
	MetricsFile string
	RenderISO   bool // from config; add-days --iso overrides

	// Logger receives engine logs. Set by the root command; nil discards.
	Logger *slog.Logger

	// RunTokens mints the run token for evaluators. Nil means UUIDv7.
	RunTokens engine.RunTokenGenerator

	registry *prometheus.Registry
	metrics  *engine.Metrics
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the dayshift CLI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	defaults := config.Default()
	opts.registry = prometheus.NewRegistry()
	opts.metrics = engine.NewMetrics(opts.registry)
	opts.RenderISO = defaults.RenderISO

	cmd := &cobra.Command{
		Use:   "dayshift",
		Short: "dayshift - exact calendar-day arithmetic and list tokenizing",
		Long: `Add whole days to timestamps and split quoted, comma-separated lists.

Every evaluation is stamped with a run token and sequence number, and can be
journaled to SQLite (--db) for later inspection and determinism replay.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", defaults.Format, "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "config file (.cue, .json, .yaml, .yml, .toml)")
	cmd.PersistentFlags().StringVar(&opts.Database, "db", defaults.Journal, "SQLite journal path")
	cmd.PersistentFlags().StringVar(&opts.MetricsFile, "metrics-file", defaults.MetricsFile, "write Prometheus metrics to this file on exit")

	// Add subcommands
	cmd.AddCommand(NewAddDaysCommand(opts))
	cmd.AddCommand(NewSplitCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))
	cmd.AddCommand(NewReplayCommand(opts))
	cmd.AddCommand(NewHistoryCommand(opts))

	return cmd
}

// setup applies the config file under any flags set on the command line,
// validates the result, and installs the logger.
func (o *RootOptions) setup(cmd *cobra.Command) error {
	cfg := config.Default()
	if o.ConfigPath != "" {
		loaded, err := config.Load(o.ConfigPath)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to load config", err)
		}
		cfg = loaded

		flags := cmd.Flags()
		if !flags.Changed("format") {
			o.Format = cfg.Format
		}
		if !flags.Changed("db") {
			o.Database = cfg.Journal
		}
		if !flags.Changed("metrics-file") {
			o.MetricsFile = cfg.MetricsFile
		}
		o.RenderISO = cfg.RenderISO
	}

	if !isValidFormat(o.Format) {
		return NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be one of %v", o.Format, ValidFormats))
	}

	level := cfg.SlogLevel()
	if o.Verbose {
		level = slog.LevelDebug
	}
	o.Logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	return nil
}

func (o *RootOptions) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o.Logger
}

// writeMetrics exports the evaluation metrics to MetricsFile, if set.
func (o *RootOptions) writeMetrics() error {
	if o.MetricsFile == "" || o.registry == nil {
		return nil
	}
	return prometheus.WriteToTextfile(o.MetricsFile, o.registry)
}

// Execute runs the command tree with args and returns the process exit
// code. Metrics are written even when the command fails.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	return execute(ctx, &RootOptions{}, args, stdout, stderr)
}

func execute(ctx context.Context, opts *RootOptions, args []string, stdout, stderr io.Writer) int {
	cmd := newRootCommand(opts)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if werr := opts.writeMetrics(); werr != nil && err == nil {
		err = WrapExitError(ExitCommandError, "failed to write metrics", werr)
	}
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if !errors.As(err, &exitErr) || !exitErr.Reported {
		fmt.Fprintf(stderr, "Error: %v\n", err)
	}
	return GetExitCode(err)
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
