// Package engine runs dayshift evaluations.
//
// The timestamp and list engines (packages instant and tokenlist) are pure
// functions. This package wraps them with the concerns of a running
// process:
//
//   - a run token (UUIDv7) shared by every evaluation a process makes;
//   - a logical clock stamping each evaluation with a strictly increasing
//     seq, so the journal orders by seq and never by wall time;
//   - content-addressed evaluation IDs and outcome hashes computed over
//     RFC 8785 canonical JSON (see package ir);
//   - structured logs, Prometheus metrics, and an optional journal.
//
// Replay re-evaluates journaled requests and checks that each outcome hash
// is unchanged. Because the engines are deterministic this holds across
// processes and machines; a divergence means engine behavior changed.
package engine
