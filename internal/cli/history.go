package cli

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/dayshift/internal/ir"
	"github.com/roach88/dayshift/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	RunToken  string
	Operation string
	ID        string
}

// runsView lists journaled runs.
type runsView []ir.RunSummary

func (v runsView) String() string {
	if len(v) == 0 {
		return "No runs found."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%-36s  %5s  %6s  %s", "RUN", "EVALS", "ERRORS", "SEQ")
	for _, r := range v {
		fmt.Fprintf(&b, "\n%-36s  %5d  %6d  %d-%d", r.RunToken, r.Evaluations, r.Errors, r.FirstSeq, r.LastSeq)
	}
	return b.String()
}

// evaluationsView lists the evaluations of one run.
type evaluationsView []ir.Evaluation

func (v evaluationsView) String() string {
	if len(v) == 0 {
		return "No evaluations found."
	}
	var b strings.Builder
	for i, ev := range v {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%6d  %-10s  %s", ev.Seq, ev.Operation, truncateID(ev.ID))
		if ev.Outcome == ir.OutcomeError {
			fmt.Fprintf(&b, "  %s", ev.ErrorCode)
		}
	}
	return b.String()
}

// evaluationView shows one evaluation in full.
type evaluationView ir.Evaluation

func (v evaluationView) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "id:        %s\n", v.ID)
	fmt.Fprintf(&b, "run:       %s\n", v.RunToken)
	fmt.Fprintf(&b, "seq:       %d\n", v.Seq)
	fmt.Fprintf(&b, "operation: %s\n", v.Operation)
	fmt.Fprintf(&b, "request:   %s\n", canonicalText(v.Request))
	if v.Outcome == ir.OutcomeError {
		fmt.Fprintf(&b, "error:     %s: %s\n", v.ErrorCode, v.ErrorMessage)
	} else {
		fmt.Fprintf(&b, "result:    %s\n", canonicalText(v.Result))
	}
	fmt.Fprintf(&b, "hash:      %s", v.OutcomeHash)
	return b.String()
}

func canonicalText(obj ir.IRObject) string {
	data, err := ir.MarshalCanonical(obj)
	if err != nil {
		return fmt.Sprintf("<%v>", err)
	}
	return string(data)
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect the evaluation journal",
		Long: `List journaled runs, the evaluations of one run, or a single evaluation.

Examples:
  dayshift history --db ./dayshift.db
  dayshift history --db ./dayshift.db --run 01927a1c-...
  dayshift history --db ./dayshift.db --op split_list
  dayshift history --db ./dayshift.db --id 3f2a... --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.RunToken, "run", "", "list the evaluations of one run")
	cmd.Flags().StringVar(&opts.Operation, "op", "", "only list evaluations of this operation (add_days, split_list)")
	cmd.Flags().StringVar(&opts.ID, "id", "", "show one evaluation")
	cmd.MarkFlagsMutuallyExclusive("run", "id")
	cmd.MarkFlagsMutuallyExclusive("op", "id")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	ctx := cmd.Context()
	f := opts.formatter(cmd)

	op := ir.Operation(opts.Operation)
	if op != "" && !op.Valid() {
		return NewExitError(ExitCommandError, fmt.Sprintf("unknown operation %q: expected add_days or split_list", opts.Operation))
	}

	st, err := opts.openJournal()
	if err != nil {
		return err
	}
	defer st.Close()

	switch {
	case opts.ID != "":
		ev, err := st.ReadEvaluation(ctx, opts.ID)
		if errors.Is(err, sql.ErrNoRows) {
			msg := fmt.Sprintf("evaluation not found: %s", opts.ID)
			if ferr := f.Error(ErrCodeNotFound, msg, nil); ferr != nil {
				return ferr
			}
			return reportedFailure(msg)
		}
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to read journal", err)
		}
		return f.SuccessWithTrace(evaluationView(ev), ev.ID)

	case opts.RunToken != "" || op != "":
		evaluations, err := st.FindEvaluations(ctx, store.Filter{RunToken: opts.RunToken, Operation: op})
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to read journal", err)
		}
		return f.Success(evaluationsView(evaluations))

	default:
		runs, err := st.ListRuns(ctx)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to read journal", err)
		}
		return f.Success(runsView(runs))
	}
}
