package engine

import (
	"errors"
	"fmt"
)

// RuntimeError reports a failure of the engine itself, as opposed to a
// rejected input. Input failures surface as inputerr.ParseError or
// inputerr.ValidationError and are journaled like any other outcome;
// RuntimeErrors are not.
type RuntimeError struct {
	// Code identifies the error category.
	Code RuntimeErrorCode

	// Message is a human-readable description.
	Message string

	// RunToken identifies the affected run.
	RunToken string

	// EvaluationID identifies the affected evaluation, if any.
	EvaluationID string

	// Details contains additional context.
	Details map[string]string

	// Err is the underlying cause, if any.
	Err error
}

// RuntimeErrorCode categorizes runtime errors.
type RuntimeErrorCode string

const (
	// ErrCodeJournalWrite indicates an evaluation could not be journaled.
	ErrCodeJournalWrite RuntimeErrorCode = "JOURNAL_WRITE_FAILED"

	// ErrCodeReplayDiverged indicates a replayed evaluation produced a
	// different outcome than the journal recorded.
	ErrCodeReplayDiverged RuntimeErrorCode = "REPLAY_DIVERGED"

	// ErrCodeUnknownOperation indicates a journaled operation this engine
	// does not implement.
	ErrCodeUnknownOperation RuntimeErrorCode = "UNKNOWN_OPERATION"
)

// Error implements the error interface.
func (e *RuntimeError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Message)
	if e.EvaluationID != "" {
		msg += fmt.Sprintf(" (evaluation=%s)", e.EvaluationID)
	} else if e.RunToken != "" {
		msg += fmt.Sprintf(" (run=%s)", e.RunToken)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *RuntimeError) Unwrap() error {
	return e.Err
}

// IsJournalError returns true if err is or wraps a journal write failure.
func IsJournalError(err error) bool {
	var re *RuntimeError
	if errors.As(err, &re) {
		return re.Code == ErrCodeJournalWrite
	}
	return false
}

// IsDivergence returns true if err is or wraps a replay divergence.
func IsDivergence(err error) bool {
	var re *RuntimeError
	if errors.As(err, &re) {
		return re.Code == ErrCodeReplayDiverged
	}
	return false
}

// NewJournalError wraps a store failure for the given run.
func NewJournalError(runToken string, cause error) *RuntimeError {
	return &RuntimeError{
		Code:     ErrCodeJournalWrite,
		Message:  "failed to journal evaluation",
		RunToken: runToken,
		Err:      cause,
	}
}

// NewDivergenceError reports that a replayed evaluation's outcome hash no
// longer matches the journal.
func NewDivergenceError(evaluationID, wantHash, gotHash string) *RuntimeError {
	return &RuntimeError{
		Code:         ErrCodeReplayDiverged,
		Message:      "replayed outcome differs from journal",
		EvaluationID: evaluationID,
		Details: map[string]string{
			"want_hash": wantHash,
			"got_hash":  gotHash,
		},
	}
}
