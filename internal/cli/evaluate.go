package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/dayshift/internal/engine"
	"github.com/roach88/dayshift/internal/inputerr"
	"github.com/roach88/dayshift/internal/ir"
	"github.com/roach88/dayshift/internal/store"
)

func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   o.Verbose,
	}
}

// openJournal opens the --db journal. It fails if no path was given.
func (o *RootOptions) openJournal() (*store.Store, error) {
	if o.Database == "" {
		return nil, NewExitError(ExitCommandError, "--db is required")
	}
	if _, err := os.Stat(o.Database); err != nil {
		return nil, WrapExitError(ExitCommandError, fmt.Sprintf("journal not found: %s", o.Database), err)
	}
	st, err := store.Open(o.Database)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open journal", err)
	}
	return st, nil
}

// newEvaluator builds an evaluator that journals to --db when set, resuming
// the journal's sequence. The returned close function is never nil.
func (o *RootOptions) newEvaluator(ctx context.Context) (*engine.Evaluator, func(), error) {
	gen := o.RunTokens
	if gen == nil {
		gen = engine.UUIDv7Generator{}
	}
	evalOpts := []engine.Option{
		engine.WithLogger(o.logger()),
		engine.WithMetrics(o.metrics),
	}

	closeFn := func() {}
	if o.Database != "" {
		st, err := store.Open(o.Database)
		if err != nil {
			return nil, nil, WrapExitError(ExitCommandError, "failed to open journal", err)
		}
		last, err := st.LastSeq(ctx)
		if err != nil {
			st.Close()
			return nil, nil, WrapExitError(ExitCommandError, "failed to read journal", err)
		}
		evalOpts = append(evalOpts, engine.WithJournal(st), engine.WithClock(engine.NewClockAt(last)))
		closeFn = func() { st.Close() }
	}

	return engine.New(gen, evalOpts...), closeFn, nil
}

// report writes an evaluation's outcome. Rejected input is written in the
// output format and exits 1; engine failures exit 2.
func (o *RootOptions) report(cmd *cobra.Command, data any, ev ir.Evaluation, err error) error {
	f := o.formatter(cmd)
	if err == nil {
		return f.SuccessWithTrace(data, ev.ID)
	}
	if code := inputerr.CodeOf(err); code != "" {
		return o.reject(cmd, err, ev.ID)
	}
	if engine.IsJournalError(err) {
		return WrapExitError(ExitCommandError, "evaluation not journaled", err)
	}
	return WrapExitError(ExitCommandError, "evaluation failed", err)
}

// decodeResult reads a successful evaluation's result into v.
func decodeResult(ev ir.Evaluation, v any) error {
	data, err := ir.MarshalCanonical(ev.Result)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// reject reports an input error.
func (o *RootOptions) reject(cmd *cobra.Command, err error, traceID string) error {
	code := string(inputerr.CodeOf(err))
	if ferr := o.formatter(cmd).ErrorWithTrace(code, err.Error(), nil, traceID); ferr != nil {
		return ferr
	}
	return reportedFailure(err.Error())
}

// readBody returns arg, or the contents of the named file for "@path", or
// stdin for "@-".
func readBody(cmd *cobra.Command, arg string) ([]byte, error) {
	if !strings.HasPrefix(arg, "@") {
		return []byte(arg), nil
	}
	path := strings.TrimPrefix(arg, "@")
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "failed to read body from stdin", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, fmt.Sprintf("failed to read body file %s", path), err)
	}
	return data, nil
}

// truncateID shortens a content hash for display.
func truncateID(id string) string {
	if len(id) <= 16 {
		return id
	}
	return id[:8] + "..." + id[len(id)-8:]
}
