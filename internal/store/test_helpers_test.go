package store

import (
	"path/filepath"
	"testing"

	"github.com/roach88/dayshift/internal/ir"
)

// createTestStore creates a new temp-dir store for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestEvaluation creates a successful add_days evaluation with its ID
// and outcome hash filled in.
func createTestEvaluation(t *testing.T, runToken string, seq int64, days int64) ir.Evaluation {
	t.Helper()
	ev := ir.Evaluation{
		RunToken:  runToken,
		Seq:       seq,
		Operation: ir.OpAddDays,
		Request: ir.IRObject{
			"date": ir.IRString("2025-08-17T00:00:00Z"),
			"days": ir.IRInt(days),
		},
		Outcome: ir.OutcomeOK,
		Result: ir.IRObject{
			"date_ymd":  ir.IRString("2025-08-22"),
			"timestamp": ir.IRObject{"seconds": ir.IRString("1755820800"), "nanos": ir.IRInt(0)},
		},
		EngineVersion: ir.EngineVersion,
		IRVersion:     ir.IRVersion,
	}
	return withIdentity(t, ev)
}

// createTestFailure creates a failed split_list evaluation.
func createTestFailure(t *testing.T, runToken string, seq int64) ir.Evaluation {
	t.Helper()
	ev := ir.Evaluation{
		RunToken:      runToken,
		Seq:           seq,
		Operation:     ir.OpSplitList,
		Request:       ir.IRObject{"input": ir.IRInt(42)},
		Outcome:       ir.OutcomeError,
		ErrorCode:     "INVALID_LIST_INPUT",
		ErrorMessage:  "input must be a string or an array of strings, got number",
		EngineVersion: ir.EngineVersion,
		IRVersion:     ir.IRVersion,
	}
	return withIdentity(t, ev)
}

func withIdentity(t *testing.T, ev ir.Evaluation) ir.Evaluation {
	t.Helper()
	ev.ID = ir.MustEvaluationID(ev.RunToken, string(ev.Operation), ev.Request, ev.Seq)
	hash, err := ir.OutcomeHash(ev.OutcomeIR())
	if err != nil {
		t.Fatalf("OutcomeHash() failed: %v", err)
	}
	ev.OutcomeHash = hash
	return ev
}
