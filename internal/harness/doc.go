// Package harness runs conformance scenarios against the evaluator.
//
// # Scenario Format
//
// Scenarios are YAML files with the following structure:
//
//	name: add_days_basics
//	description: "Adding days to each accepted date form"
//	run_token: scenario-add-days
//	cases:
//	  - name: iso date plus five days
//	    op: add_days
//	    request:
//	      date: "2025-08-17T00:00:00Z"
//	      days: 5
//	    expect:
//	      result:
//	        date_ymd: "2025-08-22"
//	        timestamp: { seconds: "1755820800", nanos: 0 }
//	  - name: keyed text body
//	    op: split_list
//	    body: |
//	      input: "id1", "id2", 'id 3'
//	    expect:
//	      result: { items: [id1, id2, id 3] }
//	  - name: missing days
//	    op: add_days
//	    request: { date: "2025-08-17" }
//	    expect:
//	      error: MISSING_DAYS
//	      message: days is required
//
// A request is the object the journal records for the operation. A
// split_list case may give a raw text body instead, which goes through the
// same input-key extraction as a text request.
//
// Each case expects either a result, compared exactly against the rendered
// result, or an error code with an optional message.
//
// # Exact Values
//
// Request and result values are read from the YAML node tree, not through
// interface{} decoding, so numbers keep their literal text: 1.50 stays
// 1.50 and integers wider than int64 are not rounded. Plain scalars that
// YAML would read as timestamps stay strings.
//
// # Deterministic Runs
//
// Every scenario runs with a fixed run token and a fresh logical clock,
// journaling into an in-memory SQLite store. The journaled trace is
// therefore byte-identical across runs and suitable for golden comparison
// (see RunWithGolden).
//
// # Usage
//
//	scenario, err := harness.LoadScenario("testdata/scenarios/add_days.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := harness.Run(ctx, scenario)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !result.Pass {
//	    for _, msg := range result.Errors {
//	        log.Println(msg)
//	    }
//	}
package harness
