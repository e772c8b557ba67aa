package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/dayshift/internal/engine"
)

// ReplayOptions holds flags for the replay command.
type ReplayOptions struct {
	*RootOptions
	RunToken string // optional - specific run only
}

// ReplayResult holds the replay result.
type ReplayResult struct {
	RunToken string `json:"run_token,omitempty"`
	engine.ReplayReport
	Deterministic bool `json:"deterministic"`
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Replay the journal and verify determinism",
		Long: `Re-evaluate every journaled request and compare each outcome hash with
the one recorded in the journal.

The engines are pure, so any difference means their behavior changed since
the journal was written. Replay never writes to the journal.

Exit codes:
  0 - Every outcome matched
  1 - Determinism verification failed (differences detected)
  2 - Command error (journal not found, etc.)

Examples:
  dayshift replay --db ./dayshift.db
  dayshift replay --db ./dayshift.db --run 01927a1c-...
  dayshift replay --db ./dayshift.db --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.RunToken, "run", "", "replay one run only")

	return cmd
}

func runReplay(opts *ReplayOptions, cmd *cobra.Command) error {
	ctx := cmd.Context()

	st, err := opts.openJournal()
	if err != nil {
		return err
	}
	defer st.Close()

	evaluations, err := st.ReadEvaluations(ctx, opts.RunToken)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read journal", err)
	}

	if len(evaluations) == 0 && opts.Format != "json" {
		fmt.Fprintln(cmd.OutOrStdout(), "No evaluations found.")
		return nil
	}

	opts.formatter(cmd).VerboseLog("Replaying %d evaluation(s)", len(evaluations))
	report, err := engine.Replay(ctx, evaluations,
		engine.WithLogger(opts.logger()),
		engine.WithMetrics(opts.metrics),
	)
	if err != nil {
		return WrapExitError(ExitCommandError, "replay failed", err)
	}

	result := ReplayResult{
		RunToken:      opts.RunToken,
		ReplayReport:  report,
		Deterministic: report.OK(),
	}

	if opts.Format == "json" {
		return outputReplayJSON(cmd, result)
	}
	return outputReplayText(cmd, result, opts.Verbose)
}

// outputReplayJSON outputs the replay result as JSON.
func outputReplayJSON(cmd *cobra.Command, result ReplayResult) error {
	response := CLIResponse{
		Status: "ok",
		Data:   result,
	}

	if !result.Deterministic {
		response.Status = "error"
		response.Error = &CLIError{
			Code:    ErrCodeDeterminism,
			Message: result.Err().Error(),
		}
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(response); err != nil {
		return err
	}

	if !result.Deterministic {
		return reportedFailure("determinism verification failed")
	}
	return nil
}

// outputReplayText outputs the replay result as text.
func outputReplayText(cmd *cobra.Command, result ReplayResult, verbose bool) error {
	w := cmd.OutOrStdout()

	scope := "journal"
	if result.RunToken != "" {
		scope = "run " + result.RunToken
	}
	fmt.Fprintf(w, "Replay Summary: %d evaluation(s) in %s\n", result.Evaluations, scope)
	fmt.Fprintf(w, "  Matched: %d\n", result.Matched)
	fmt.Fprintln(w)

	for _, d := range result.Divergences {
		fmt.Fprintf(w, "✗ seq %d %s (%s)\n", d.Journaled.Seq, d.Journaled.Operation, truncateID(d.Journaled.ID))
		if verbose {
			fmt.Fprintf(w, "  Journaled: %s\n", d.Journaled.OutcomeHash)
			fmt.Fprintf(w, "  Replayed:  %s\n", d.Replayed.OutcomeHash)
		} else {
			fmt.Fprintf(w, "  Journaled: %s\n", truncateID(d.Journaled.OutcomeHash))
			fmt.Fprintf(w, "  Replayed:  %s\n", truncateID(d.Replayed.OutcomeHash))
		}
	}
	if len(result.Divergences) > 0 {
		fmt.Fprintln(w)
	}

	if result.Deterministic {
		fmt.Fprintln(w, "✓ All evaluations verified deterministic")
		return nil
	}

	fmt.Fprintln(w, "✗ Determinism verification failed")
	return reportedFailure("determinism verification failed")
}
