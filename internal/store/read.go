package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/roach88/dayshift/internal/ir"
)

const evaluationColumns = `
	id, run_token, seq, operation, request, outcome, result, error_code, error_message,
	outcome_hash, engine_version, ir_version`

// Filter narrows FindEvaluations. Zero fields match everything.
type Filter struct {
	RunToken  string
	Operation ir.Operation
}

// ReadEvaluations returns the evaluations of one run, or of every run when
// runToken is empty.
func (s *Store) ReadEvaluations(ctx context.Context, runToken string) ([]ir.Evaluation, error) {
	return s.FindEvaluations(ctx, Filter{RunToken: runToken})
}

// FindEvaluations returns the evaluations matching f, ordered by
// seq ASC, id ASC COLLATE BINARY. Returns an empty slice (not nil) if
// nothing matches.
func (s *Store) FindEvaluations(ctx context.Context, f Filter) ([]ir.Evaluation, error) {
	query := `SELECT ` + evaluationColumns + ` FROM evaluations`
	var (
		where []string
		args  []any
	)
	if f.RunToken != "" {
		where = append(where, `run_token = ?`)
		args = append(args, f.RunToken)
	}
	if f.Operation != "" {
		where = append(where, `operation = ?`)
		args = append(args, string(f.Operation))
	}
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, ` AND `)
	}
	query += ` ORDER BY seq ASC, id COLLATE BINARY ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query evaluations: %w", err)
	}
	defer rows.Close()

	evaluations := []ir.Evaluation{}
	for rows.Next() {
		ev, err := scanEvaluation(rows)
		if err != nil {
			return nil, err
		}
		evaluations = append(evaluations, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate evaluations: %w", err)
	}
	return evaluations, nil
}

// ReadEvaluation retrieves a single evaluation by ID.
// Returns sql.ErrNoRows if not found.
func (s *Store) ReadEvaluation(ctx context.Context, id string) (ir.Evaluation, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+evaluationColumns+` FROM evaluations WHERE id = ?`, id)
	return scanEvaluation(row)
}

// ListRuns summarizes every run in the journal, ordered by the first
// sequence number each run used.
func (s *Store) ListRuns(ctx context.Context) ([]ir.RunSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT run_token,
		       COUNT(*),
		       SUM(CASE WHEN outcome = 'error' THEN 1 ELSE 0 END),
		       MIN(seq),
		       MAX(seq)
		FROM evaluations
		GROUP BY run_token
		ORDER BY MIN(seq) ASC, run_token COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []ir.RunSummary{}
	for rows.Next() {
		var r ir.RunSummary
		if err := rows.Scan(&r.RunToken, &r.Evaluations, &r.Errors, &r.FirstSeq, &r.LastSeq); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// LastSeq returns the highest sequence number in the journal, or 0 if it is
// empty. A clock resumed from LastSeq never reuses a seq.
func (s *Store) LastSeq(ctx context.Context) (int64, error) {
	var seq sql.NullInt64
	if err := s.db.QueryRowContext(ctx, `SELECT MAX(seq) FROM evaluations`).Scan(&seq); err != nil {
		return 0, fmt.Errorf("query last seq: %w", err)
	}
	return seq.Int64, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvaluation(row rowScanner) (ir.Evaluation, error) {
	var (
		ev           ir.Evaluation
		operation    string
		outcome      string
		request      string
		result       sql.NullString
		errorCode    sql.NullString
		errorMessage sql.NullString
	)
	err := row.Scan(
		&ev.ID,
		&ev.RunToken,
		&ev.Seq,
		&operation,
		&request,
		&outcome,
		&result,
		&errorCode,
		&errorMessage,
		&ev.OutcomeHash,
		&ev.EngineVersion,
		&ev.IRVersion,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return ir.Evaluation{}, err
		}
		return ir.Evaluation{}, fmt.Errorf("scan evaluation: %w", err)
	}

	ev.Operation = ir.Operation(operation)
	ev.Outcome = ir.Outcome(outcome)
	ev.ErrorCode = errorCode.String
	ev.ErrorMessage = errorMessage.String

	if ev.Request, err = unmarshalObject(request); err != nil {
		return ir.Evaluation{}, fmt.Errorf("evaluation %s: unmarshal request: %w", ev.ID, err)
	}
	if result.Valid {
		if ev.Result, err = unmarshalObject(result.String); err != nil {
			return ir.Evaluation{}, fmt.Errorf("evaluation %s: unmarshal result: %w", ev.ID, err)
		}
	}
	return ev, nil
}
