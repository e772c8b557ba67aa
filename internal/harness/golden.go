package harness

import (
	"context"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/dayshift/internal/ir"
	"github.com/roach88/dayshift/internal/testutil"
)

// Snapshot is the golden form of a scenario run.
type Snapshot struct {
	ScenarioName string       `json:"scenario_name"`
	RunToken     string       `json:"run_token"`
	Trace        []TraceEvent `json:"trace"`
}

// Canonical returns the snapshot as canonical JSON.
//
// Evaluation IDs and outcome hashes are left out: they are derived from the
// fields that are present, and leaving them out keeps the golden files
// readable.
func (s Snapshot) Canonical() ([]byte, error) {
	trace := make(ir.IRArray, len(s.Trace))
	for i, event := range s.Trace {
		trace[i] = event.IR()
	}
	return ir.MarshalCanonical(ir.IRObject{
		"scenario_name": ir.IRString(s.ScenarioName),
		"run_token":     ir.IRString(s.RunToken),
		"trace":         trace,
	})
}

// RunWithGolden executes a scenario, fails t for every mismatched case, and
// compares the trace against testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	result, err := Run(context.Background(), scenario)
	if err != nil {
		return err
	}
	for _, msg := range result.Errors {
		t.Error(msg)
	}

	token := scenario.RunToken
	if token == "" {
		token = testutil.DefaultRunToken
	}
	return AssertGolden(t, scenario.Name, token, result)
}

// AssertGolden compares an existing result's trace against a golden file
// without re-running the scenario.
func AssertGolden(t *testing.T, scenarioName, runToken string, result *Result) error {
	t.Helper()

	snapshot := Snapshot{
		ScenarioName: scenarioName,
		RunToken:     runToken,
		Trace:        result.Trace,
	}
	data, err := snapshot.Canonical()
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, data)
	return nil
}
