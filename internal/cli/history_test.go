package cli

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/dayshift/internal/ir"
)

func TestHistoryRuns(t *testing.T) {
	dbPath := journalFixture(t)

	stdout, _, code := runCLI(t, "history", "--db", dbPath)
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, stdout, "RUN")
	assert.Regexp(t, `run-cli\s+3\s+1\s+1-3`, stdout)

	stdout, _, code = runCLI(t, "--format", "json", "history", "--db", dbPath)
	require.Equal(t, ExitSuccess, code)

	var response struct {
		Data []ir.RunSummary `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &response))
	assert.Equal(t, []ir.RunSummary{
		{RunToken: "run-cli", Evaluations: 3, Errors: 1, FirstSeq: 1, LastSeq: 3},
	}, response.Data)
}

func TestHistoryRunEvaluations(t *testing.T) {
	dbPath := journalFixture(t)

	stdout, _, code := runCLI(t, "--format", "json", "history", "--db", dbPath, "--run", "run-cli")
	require.Equal(t, ExitSuccess, code)

	var response struct {
		Data []ir.Evaluation `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &response))
	require.Len(t, response.Data, 3)
	assert.Equal(t, ir.Operation("add_days"), response.Data[0].Operation)
	assert.Equal(t, "INVALID_DAYS", response.Data[1].ErrorCode)
	assert.Equal(t, ir.Operation("split_list"), response.Data[2].Operation)

	stdout, _, code = runCLI(t, "history", "--db", dbPath, "--run", "run-cli")
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, stdout, "INVALID_DAYS")
}

func TestHistoryEvaluation(t *testing.T) {
	dbPath := journalFixture(t)

	stdout, _, code := runCLI(t, "--format", "json", "history", "--db", dbPath, "--run", "run-cli")
	require.Equal(t, ExitSuccess, code)
	var listing struct {
		Data []ir.Evaluation `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &listing))
	require.NotEmpty(t, listing.Data)
	id := listing.Data[0].ID

	stdout, _, code = runCLI(t, "history", "--db", dbPath, "--id", id)
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, stdout, "id:        "+id)
	assert.Contains(t, stdout, `"date_ymd":"2025-08-22"`)

	stdout, _, code = runCLI(t, "--format", "json", "history", "--db", dbPath, "--id", id)
	require.Equal(t, ExitSuccess, code)
	resp := decodeResponse(t, stdout)
	assert.Equal(t, id, resp.TraceID)
}

func TestHistoryEvaluationNotFound(t *testing.T) {
	dbPath := journalFixture(t)

	stdout, _, code := runCLI(t, "history", "--db", dbPath, "--id", "missing")
	assert.Equal(t, ExitFailure, code)
	assert.Contains(t, stdout, "Error [E005]: evaluation not found: missing")
}

func TestHistoryRequiresDatabase(t *testing.T) {
	_, stderr, code := runCLI(t, "history")
	assert.Equal(t, ExitCommandError, code)
	assert.Contains(t, stderr, "--db is required")
}

func TestHistoryByOperation(t *testing.T) {
	dbPath := journalFixture(t)

	stdout, _, code := runCLI(t, "--format", "json", "history", "--db", dbPath, "--op", "split_list")
	require.Equal(t, ExitSuccess, code)

	var response struct {
		Data []ir.Evaluation `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &response))
	require.Len(t, response.Data, 1)
	assert.Equal(t, ir.OpSplitList, response.Data[0].Operation)
	assert.Equal(t, int64(3), response.Data[0].Seq)

	stdout, _, code = runCLI(t, "history", "--db", dbPath, "--run", "run-cli", "--op", "add_days")
	require.Equal(t, ExitSuccess, code)
	assert.Equal(t, 2, strings.Count(stdout, "add_days"))

	_, stderr, code := runCLI(t, "history", "--db", dbPath, "--op", "multiply")
	assert.Equal(t, ExitCommandError, code)
	assert.Contains(t, stderr, `unknown operation "multiply"`)
}
