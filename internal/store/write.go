package store

import (
	"context"
	"fmt"

	"github.com/roach88/dayshift/internal/ir"
)

// WriteEvaluation appends an evaluation to the journal. The run row is
// created on first use.
//
// Uses ON CONFLICT DO NOTHING for idempotency: writing the same ID twice is
// silently ignored. A different evaluation reusing an existing (run_token,
// seq) pair is also ignored; callers stamp seq from a monotonic clock so
// this only happens on a replayed write.
func (s *Store) WriteEvaluation(ctx context.Context, ev ir.Evaluation) error {
	if !ev.Operation.Valid() {
		return fmt.Errorf("write evaluation: unknown operation %q", ev.Operation)
	}

	request, err := marshalObject(ev.Request)
	if err != nil {
		return fmt.Errorf("write evaluation: marshal request: %w", err)
	}
	result, err := nullableObject(ev.Result)
	if err != nil {
		return fmt.Errorf("write evaluation: marshal result: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("write evaluation: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (run_token, engine_version, ir_version)
		VALUES (?, ?, ?)
		ON CONFLICT(run_token) DO NOTHING
	`, ev.RunToken, ev.EngineVersion, ev.IRVersion)
	if err != nil {
		return fmt.Errorf("write evaluation: insert run: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO evaluations
		(id, run_token, seq, operation, request, outcome, result, error_code, error_message,
		 outcome_hash, engine_version, ir_version)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT DO NOTHING
	`,
		ev.ID,
		ev.RunToken,
		ev.Seq,
		string(ev.Operation),
		request,
		string(ev.Outcome),
		result,
		nullString(ev.ErrorCode),
		nullString(ev.ErrorMessage),
		ev.OutcomeHash,
		ev.EngineVersion,
		ev.IRVersion,
	)
	if err != nil {
		return fmt.Errorf("write evaluation: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("write evaluation: commit: %w", err)
	}
	return nil
}
