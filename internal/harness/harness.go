package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/dayshift/internal/engine"
	"github.com/roach88/dayshift/internal/inputerr"
	"github.com/roach88/dayshift/internal/ir"
	"github.com/roach88/dayshift/internal/request"
	"github.com/roach88/dayshift/internal/store"
	"github.com/roach88/dayshift/internal/testutil"
)

// Run executes a scenario and returns the result.
//
// Each scenario runs against a fresh in-memory journal with a fixed run
// token. The returned error is for failures of the harness itself; case
// mismatches are reported in Result.Errors.
func Run(ctx context.Context, scenario *Scenario) (*Result, error) {
	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	eval := engine.New(
		testutil.NewFixedRunGenerator(scenario.RunToken),
		engine.WithJournal(st),
		engine.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)

	result := NewResult()
	names := make(map[int64]string, len(scenario.Cases))
	for i, c := range scenario.Cases {
		got, ev, err := runCase(ctx, eval, c)
		if err != nil {
			return nil, fmt.Errorf("case %d (%s): %w", i, c.Name, err)
		}
		if ev.ID != "" {
			names[ev.Seq] = c.Name
		}
		result.Cases++

		if err := checkExpect(c, got); err != nil {
			result.AddError(err.Error())
		}
	}

	evs, err := st.ReadEvaluations(ctx, eval.RunToken())
	if err != nil {
		return nil, fmt.Errorf("failed to read trace: %w", err)
	}
	for _, ev := range evs {
		result.Trace = append(result.Trace, TraceEvent{
			Case:      names[ev.Seq],
			Seq:       ev.Seq,
			Operation: string(ev.Operation),
			Request:   ev.Request,
			Outcome:   ev.OutcomeIR(),
		})
	}
	return result, nil
}

// runCase evaluates one case. A text body is converted to the request
// object it stands for, so a blank body is journaled as MISSING_INPUT.
func runCase(ctx context.Context, eval *engine.Evaluator, c Case) (outcome, ir.Evaluation, error) {
	var obj ir.IRObject
	if c.Body != nil {
		obj = request.TextObject(*c.Body)
	} else {
		obj, _ = c.Request.Object()
	}
	ev, err := eval.Evaluate(ctx, c.Op, obj)
	return fromEvaluation(ev, err)
}

func fromEvaluation(ev ir.Evaluation, err error) (outcome, ir.Evaluation, error) {
	if err != nil && inputerr.CodeOf(err) == "" {
		return outcome{}, ev, err
	}
	if ev.Outcome == ir.OutcomeError {
		return outcome{code: ev.ErrorCode, message: ev.ErrorMessage}, ev, nil
	}
	return outcome{result: ev.Result}, ev, nil
}
