package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/dayshift/internal/store"
)

// journalFixture journals a few evaluations under run-cli and returns the
// journal path.
func journalFixture(t *testing.T) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "dayshift.db")

	for _, args := range [][]string{
		{"add-days", "--date", "2025-08-17", "--days", "5"},
		{"add-days", "--date", "2025-08-17", "--days", "3.5"},
		{"split", `"a", 'b'`},
	} {
		_, stderr, code := runCLI(t, append([]string{"--db", dbPath}, args...)...)
		require.NotEqual(t, ExitCommandError, code, stderr)
	}
	return dbPath
}

func TestReplayMissingDatabaseFlag(t *testing.T) {
	_, stderr, code := runCLI(t, "replay")
	assert.Equal(t, ExitCommandError, code)
	assert.Contains(t, stderr, "--db is required")
}

func TestReplayMissingDatabaseFile(t *testing.T) {
	_, stderr, code := runCLI(t, "replay", "--db", filepath.Join(t.TempDir(), "absent.db"))
	assert.Equal(t, ExitCommandError, code)
	assert.Contains(t, stderr, "journal not found")
}

func TestReplayEmptyDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	st, err := store.Open(dbPath)
	require.NoError(t, err)
	st.Close()

	stdout, _, code := runCLI(t, "replay", "--db", dbPath)
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, stdout, "No evaluations found")

	stdout, _, code = runCLI(t, "--format", "json", "replay", "--db", dbPath)
	require.Equal(t, ExitSuccess, code)
	resp := decodeResponse(t, stdout)
	assert.Equal(t, "ok", resp.Status)
}

func TestReplayDeterministic(t *testing.T) {
	dbPath := journalFixture(t)

	stdout, _, code := runCLI(t, "replay", "--db", dbPath)
	require.Equal(t, ExitSuccess, code, stdout)
	assert.Contains(t, stdout, "Replay Summary: 3 evaluation(s) in journal")
	assert.Contains(t, stdout, "Matched: 3")
	assert.Contains(t, stdout, "✓ All evaluations verified deterministic")
}

func TestReplaySingleRun(t *testing.T) {
	dbPath := journalFixture(t)

	stdout, _, code := runCLI(t, "replay", "--db", dbPath, "--run", "run-cli")
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, stdout, "in run run-cli")

	stdout, _, code = runCLI(t, "replay", "--db", dbPath, "--run", "other")
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, stdout, "No evaluations found")
}

func TestReplayDetectsDivergence(t *testing.T) {
	dbPath := journalFixture(t)

	st, err := store.Open(dbPath)
	require.NoError(t, err)
	_, err = st.DB().ExecContext(context.Background(),
		`UPDATE evaluations SET outcome_hash = 'tampered' WHERE seq = 1`)
	require.NoError(t, err)
	st.Close()

	stdout, _, code := runCLI(t, "replay", "--db", dbPath)
	assert.Equal(t, ExitFailure, code)
	assert.Contains(t, stdout, "✗ seq 1 add_days")
	assert.Contains(t, stdout, "Matched: 2")
	assert.Contains(t, stdout, "✗ Determinism verification failed")

	stdout, _, code = runCLI(t, "--format", "json", "replay", "--db", dbPath)
	assert.Equal(t, ExitFailure, code)

	var response struct {
		Status string       `json:"status"`
		Data   ReplayResult `json:"data"`
		Error  *CLIError    `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &response))
	assert.Equal(t, "error", response.Status)
	require.NotNil(t, response.Error)
	assert.Equal(t, ErrCodeDeterminism, response.Error.Code)
	assert.False(t, response.Data.Deterministic)
	require.Len(t, response.Data.Divergences, 1)
	assert.Equal(t, "tampered", response.Data.Divergences[0].Journaled.OutcomeHash)
}

func TestReplayHelpText(t *testing.T) {
	buf := &bytes.Buffer{}
	cmd := NewReplayCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--help"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "determinism")
	assert.Contains(t, buf.String(), "--run")
}
