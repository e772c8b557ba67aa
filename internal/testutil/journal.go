package testutil

import (
	"context"
	"sync"

	"github.com/roach88/dayshift/internal/ir"
)

// MemoryJournal collects evaluations in memory in the order they were
// written. It satisfies engine.Journal.
//
// Safe for concurrent use.
type MemoryJournal struct {
	mu          sync.Mutex
	evaluations []ir.Evaluation

	// Err, when set, is returned by every write and nothing is recorded.
	Err error
}

// WriteEvaluation records ev, or returns j.Err.
func (j *MemoryJournal) WriteEvaluation(_ context.Context, ev ir.Evaluation) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.Err != nil {
		return j.Err
	}
	j.evaluations = append(j.evaluations, ev)
	return nil
}

// Evaluations returns a copy of everything written so far.
func (j *MemoryJournal) Evaluations() []ir.Evaluation {
	j.mu.Lock()
	defer j.mu.Unlock()
	out := make([]ir.Evaluation, len(j.evaluations))
	copy(out, j.evaluations)
	return out
}

// Reset discards every recorded evaluation.
func (j *MemoryJournal) Reset() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.evaluations = nil
}
