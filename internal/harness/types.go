package harness

import "github.com/roach88/dayshift/internal/ir"

// TraceEvent is one journaled evaluation as it appears in a trace.
type TraceEvent struct {
	Case      string      `json:"case"`
	Seq       int64       `json:"seq"`
	Operation string      `json:"op"`
	Request   ir.IRObject `json:"request"`
	Outcome   ir.IRObject `json:"outcome"`
}

// IR returns the event as the object written to golden snapshots.
func (e TraceEvent) IR() ir.IRObject {
	return ir.IRObject{
		"case":    ir.IRString(e.Case),
		"seq":     ir.IRInt(e.Seq),
		"op":      ir.IRString(e.Operation),
		"request": e.Request,
		"outcome": e.Outcome,
	}
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true when every case matched its expectation.
	Pass bool `json:"pass"`

	// Cases is the number of cases executed.
	Cases int `json:"cases"`

	// Trace holds the journaled evaluations in seq order. Cases rejected
	// before reaching the evaluator (an empty text body) do not appear.
	Trace []TraceEvent `json:"trace"`

	// Errors contains one message per failed case. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError adds a failure message and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
