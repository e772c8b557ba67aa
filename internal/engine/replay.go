package engine

import (
	"context"
	"fmt"

	"github.com/roach88/dayshift/internal/ir"
)

// Divergence pairs a journaled evaluation with its replay when the two
// outcomes differ.
type Divergence struct {
	Journaled ir.Evaluation `json:"journaled"`
	Replayed  ir.Evaluation `json:"replayed"`
}

// ReplayReport summarizes a determinism check.
type ReplayReport struct {
	Evaluations int          `json:"evaluations"`
	Matched     int          `json:"matched"`
	Divergences []Divergence `json:"divergences"`
}

// OK reports whether every replayed outcome matched the journal.
func (r ReplayReport) OK() bool {
	return len(r.Divergences) == 0
}

// Err returns a divergence error for the first mismatch, or nil.
func (r ReplayReport) Err() error {
	if r.OK() {
		return nil
	}
	d := r.Divergences[0]
	return NewDivergenceError(d.Journaled.ID, d.Journaled.OutcomeHash, d.Replayed.OutcomeHash)
}

// Replay re-evaluates journaled evaluations in the order given (callers
// pass them in seq order, as the store returns them) and compares each
// outcome hash with the journaled one.
//
// The engines are pure, so every outcome must match byte for byte; a
// divergence means the engine's behavior changed since the journal was
// written. Replay never writes to a journal, whatever opts say.
func Replay(ctx context.Context, evaluations []ir.Evaluation, opts ...Option) (ReplayReport, error) {
	replayer := New(NewFixedGenerator("replay"), opts...)
	replayer.journal = nil

	report := ReplayReport{Divergences: []Divergence{}}
	for _, ev := range evaluations {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		replayed, err := replayer.Evaluate(ctx, ev.Operation, ev.Request)
		if err != nil && replayed.ID == "" {
			return report, fmt.Errorf("replay evaluation %s: %w", ev.ID, err)
		}

		report.Evaluations++
		if replayed.OutcomeHash == ev.OutcomeHash {
			report.Matched++
			continue
		}
		report.Divergences = append(report.Divergences, Divergence{Journaled: ev, Replayed: replayed})
	}
	return report, nil
}
