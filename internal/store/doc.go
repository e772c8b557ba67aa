// Package store provides the SQLite-backed evaluation journal.
//
// Every evaluation the engine runs with a journal attached is appended as
// one row: the run token and sequence number that ordered it, the request
// as sent, and either the rendered result or the error code and message.
//
// # Invariants
//
//   - Rows are never updated. Writes use ON CONFLICT DO NOTHING so that
//     re-journaling the same evaluation is a no-op.
//   - All ordering uses seq, the logical clock. Queries end in
//     ORDER BY seq ASC, id COLLATE BINARY ASC so results are identical across
//     reads.
//   - request and result columns hold RFC 8785 canonical JSON, so exact
//     numbers survive the round trip and replay compares bytes.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
