package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/roach88/dayshift/internal/inputerr"
	"github.com/roach88/dayshift/internal/instant"
	"github.com/roach88/dayshift/internal/ir"
	"github.com/roach88/dayshift/internal/request"
	"github.com/roach88/dayshift/internal/tokenlist"
)

// Journal is where evaluations are appended. *store.Store implements it.
type Journal interface {
	WriteEvaluation(ctx context.Context, ev ir.Evaluation) error
}

// Evaluator runs the timestamp and list pipelines for one run.
//
// Every call is stamped with the run token and the next seq from the
// logical clock, logged, counted, and (with WithJournal) appended to the
// journal. Input failures are outcomes like any other: they are journaled
// and returned unchanged so callers can relay the message verbatim.
//
// Safe for concurrent use. The pipelines share no state; the clock is
// atomic and the journal serializes its own writes.
type Evaluator struct {
	clock    *Clock
	runToken string
	journal  Journal
	metrics  *Metrics
	logger   *slog.Logger
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithJournal appends every evaluation to j.
func WithJournal(j Journal) Option {
	return func(e *Evaluator) { e.journal = j }
}

// WithMetrics records evaluation counts and latency in m.
func WithMetrics(m *Metrics) Option {
	return func(e *Evaluator) { e.metrics = m }
}

// WithLogger replaces slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(e *Evaluator) { e.logger = l }
}

// WithClock sets the logical clock, e.g. NewClockAt(lastSeq) to append to
// an existing journal.
func WithClock(c *Clock) Option {
	return func(e *Evaluator) { e.clock = c }
}

// New creates an Evaluator whose run token is drawn from gen.
func New(gen RunTokenGenerator, opts ...Option) *Evaluator {
	e := &Evaluator{
		clock:    NewClock(),
		runToken: gen.Generate(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// RunToken returns the token stamped on this evaluator's evaluations.
func (e *Evaluator) RunToken() string {
	return e.runToken
}

// AddDays parses the date and day delta of req, adds the days, and renders
// the result.
func (e *Evaluator) AddDays(ctx context.Context, req request.AddDays) (instant.Result, ir.Evaluation, error) {
	var res instant.Result
	ev, err := e.evaluate(ctx, ir.OpAddDays, req.IR(), func() (ir.IRObject, error) {
		var err error
		res, err = addDays(req)
		if err != nil {
			return nil, err
		}
		return res.IR(), nil
	})
	if err != nil {
		return instant.Result{}, ev, err
	}
	return res, ev, nil
}

// SplitList tokenizes the input of req.
func (e *Evaluator) SplitList(ctx context.Context, req request.List) (tokenlist.TokenList, ir.Evaluation, error) {
	var list tokenlist.TokenList
	ev, err := e.evaluate(ctx, ir.OpSplitList, req.IR(), func() (ir.IRObject, error) {
		var err error
		list, err = splitList(req)
		if err != nil {
			return nil, err
		}
		return listIR(list), nil
	})
	if err != nil {
		return tokenlist.TokenList{}, ev, err
	}
	return list, ev, nil
}

// Evaluate runs op on a request object in the form the journal records it.
// Extraction failures (a missing date, say) are evaluated outcomes too.
func (e *Evaluator) Evaluate(ctx context.Context, op ir.Operation, req ir.IRObject) (ir.Evaluation, error) {
	switch op {
	case ir.OpAddDays:
		return e.evaluate(ctx, op, req, func() (ir.IRObject, error) {
			r, err := request.AddDaysFromObject(req)
			if err != nil {
				return nil, err
			}
			res, err := addDays(r)
			if err != nil {
				return nil, err
			}
			return res.IR(), nil
		})
	case ir.OpSplitList:
		return e.evaluate(ctx, op, req, func() (ir.IRObject, error) {
			r, err := request.ListFromObject(req)
			if err != nil {
				return nil, err
			}
			list, err := splitList(r)
			if err != nil {
				return nil, err
			}
			return listIR(list), nil
		})
	default:
		return ir.Evaluation{}, &RuntimeError{
			Code:     ErrCodeUnknownOperation,
			Message:  fmt.Sprintf("unknown operation %q", op),
			RunToken: e.runToken,
		}
	}
}

func addDays(req request.AddDays) (instant.Result, error) {
	date, err := instant.DateInputFrom(req.Date)
	if err != nil {
		return instant.Result{}, err
	}
	return instant.Pipeline(date, req.Days, req.WithISO)
}

func splitList(req request.List) (tokenlist.TokenList, error) {
	in, err := tokenlist.InputFrom(req.Input)
	if err != nil {
		return tokenlist.TokenList{}, err
	}
	return tokenlist.Parse(in)
}

func listIR(list tokenlist.TokenList) ir.IRObject {
	items := make(ir.IRArray, len(list.Items))
	for i, item := range list.Items {
		items[i] = ir.IRString(item)
	}
	return ir.IRObject{"items": items}
}

// evaluate stamps, runs, fingerprints, records, and journals one
// evaluation. The error returned is run's error, unless journaling failed.
func (e *Evaluator) evaluate(
	ctx context.Context,
	op ir.Operation,
	req ir.IRObject,
	run func() (ir.IRObject, error),
) (ir.Evaluation, error) {
	seq := e.clock.Next()
	logger := e.logger.With("op", string(op), "seq", seq, "run", e.runToken)
	logger.Debug("evaluation started")

	start := time.Now()
	result, runErr := run()
	elapsed := time.Since(start)

	ev := ir.Evaluation{
		RunToken:      e.runToken,
		Seq:           seq,
		Operation:     op,
		Request:       req,
		EngineVersion: ir.EngineVersion,
		IRVersion:     ir.IRVersion,
	}

	outcome := "ok"
	if runErr != nil {
		code := inputerr.CodeOf(runErr)
		if code == "" {
			// Not an input failure; nothing meaningful to journal.
			logger.Error("evaluation failed", "error", runErr)
			return ir.Evaluation{}, fmt.Errorf("%s: %w", op, runErr)
		}
		ev.Outcome = ir.OutcomeError
		ev.ErrorCode = string(code)
		ev.ErrorMessage = runErr.Error()
		outcome = "parse_error"
		if inputerr.IsValidationError(runErr) {
			outcome = "validation_error"
		}
	} else {
		ev.Outcome = ir.OutcomeOK
		ev.Result = result
	}

	var err error
	if ev.ID, err = ir.EvaluationID(e.runToken, string(op), req, seq); err != nil {
		return ir.Evaluation{}, fmt.Errorf("%s: %w", op, err)
	}
	if ev.OutcomeHash, err = ir.OutcomeHash(ev.OutcomeIR()); err != nil {
		return ir.Evaluation{}, fmt.Errorf("%s: %w", op, err)
	}

	e.metrics.record(string(op), outcome, elapsed)
	if runErr != nil {
		logger.Warn("evaluation rejected", "code", ev.ErrorCode, "error", runErr)
	} else {
		logger.Info("evaluation completed", "id", ev.ID)
	}

	if e.journal != nil {
		if err := e.journal.WriteEvaluation(ctx, ev); err != nil {
			logger.Error("journal write failed", "error", err)
			return ev, NewJournalError(e.runToken, err)
		}
	}
	return ev, runErr
}
