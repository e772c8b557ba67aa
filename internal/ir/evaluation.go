package ir

// Operation names an engine entry point.
type Operation string

const (
	// OpAddDays runs the timestamp pipeline: parse, add days, render.
	OpAddDays Operation = "add_days"

	// OpSplitList runs the list tokenizer.
	OpSplitList Operation = "split_list"
)

// Valid reports whether op is a known operation.
func (op Operation) Valid() bool {
	return op == OpAddDays || op == OpSplitList
}

// Outcome is the terminal state of an evaluation.
type Outcome string

const (
	OutcomeOK    Outcome = "ok"
	OutcomeError Outcome = "error"
)

// Evaluation is one journaled engine call.
//
// ID is content-addressed (see EvaluationID). Ordering is by Seq, the
// logical clock, never by wall time. Exactly one of Result and ErrorCode is
// set, matching Outcome.
type Evaluation struct {
	ID            string    `json:"id"`
	RunToken      string    `json:"run_token"`
	Seq           int64     `json:"seq"`
	Operation     Operation `json:"operation"`
	Request       IRObject  `json:"request"`
	Outcome       Outcome   `json:"outcome"`
	Result        IRObject  `json:"result,omitempty"`
	ErrorCode     string    `json:"error_code,omitempty"`
	ErrorMessage  string    `json:"error_message,omitempty"`
	OutcomeHash   string    `json:"outcome_hash"`
	EngineVersion string    `json:"engine_version"`
	IRVersion     string    `json:"ir_version"`
}

// OutcomeIR is the object OutcomeHash fingerprints.
func (e Evaluation) OutcomeIR() IRObject {
	if e.Outcome == OutcomeError {
		return IRObject{
			"outcome": IRString(e.Outcome),
			"error": IRObject{
				"code":    IRString(e.ErrorCode),
				"message": IRString(e.ErrorMessage),
			},
		}
	}
	result := e.Result
	if result == nil {
		result = IRObject{}
	}
	return IRObject{"outcome": IRString(e.Outcome), "result": result}
}

// RunSummary aggregates the evaluations journaled under one run token.
type RunSummary struct {
	RunToken    string `json:"run_token"`
	Evaluations int    `json:"evaluations"`
	Errors      int    `json:"errors"`
	FirstSeq    int64  `json:"first_seq"`
	LastSeq     int64  `json:"last_seq"`
}
