package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/dayshift/internal/ir"
)

func decodeResponse(t *testing.T, stdout string) CLIResponse {
	t.Helper()
	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp), stdout)
	return resp
}

func TestAddDays_Text(t *testing.T) {
	stdout, stderr, code := runCLI(t, "add-days", "--date", "2025-08-17T00:00:00Z", "--days", "5")
	require.Equal(t, ExitSuccess, code, stderr)

	want := strings.Join([]string{
		"date_ymd:  2025-08-22",
		"date_iso:  2025-08-22T00:00:00Z",
		"seconds:   1755820800",
		"nanos:     0",
	}, "\n") + "\n"
	assert.Equal(t, want, stdout)
}

func TestAddDays_JSON(t *testing.T) {
	stdout, _, code := runCLI(t, "--format", "json", "add-days",
		"--seconds", "1608826790", "--nanos", "0", "--days", "-10", "--iso=false")
	require.Equal(t, ExitSuccess, code)

	resp := decodeResponse(t, stdout)
	assert.Equal(t, "ok", resp.Status)
	assert.NotEmpty(t, resp.TraceID)

	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	assert.JSONEq(t, `{"date_ymd":"2020-12-14","timestamp":{"seconds":"1607962790","nanos":0}}`, string(data))
}

func TestAddDays_Body(t *testing.T) {
	stdout, _, code := runCLI(t, "--format", "json", "add-days", "--iso=false",
		"--body", `{"date":{"seconds":"1608826790","nanos":42},"days":"1"}`)
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, stdout, `"seconds":"1608913190"`)
	assert.Contains(t, stdout, `"nanos":42`)

	// The request's own iso flag is honored even when rendering is off.
	stdout, _, code = runCLI(t, "--format", "json", "add-days", "--iso=false",
		"--body", `{"date":"2025-08-17","days":5,"iso":true}`)
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, stdout, `"date_iso":"2025-08-22T00:00:00Z"`)
}

func TestAddDays_BodyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "request.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"date":"2025-08-17","days":5}`), 0644))

	stdout, _, code := runCLI(t, "add-days", "--body", "@"+path)
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, stdout, "date_ymd:  2025-08-22")

	_, stderr, code := runCLI(t, "add-days", "--body", "@"+filepath.Join(t.TempDir(), "missing.json"))
	assert.Equal(t, ExitCommandError, code)
	assert.Contains(t, stderr, "failed to read body file")
}

func TestAddDays_Query(t *testing.T) {
	stdout, _, code := runCLI(t, "add-days", "--query", "?date=2025-08-17&days=-1")
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, stdout, "date_ymd:  2025-08-16")

	_, stderr, code := runCLI(t, "add-days", "--query", "date=%zz")
	assert.Equal(t, ExitCommandError, code)
	assert.Contains(t, stderr, "invalid --query")
}

func TestAddDays_Rejected(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code string
	}{
		{"missing date", []string{"--days", "5"}, "MISSING_DATE"},
		{"missing days", []string{"--date", "2025-08-17"}, "MISSING_DAYS"},
		{"invalid date", []string{"--date", "not-a-date", "--days", "5"}, "INVALID_DATE"},
		{"fractional days", []string{"--date", "2025-08-17", "--days", "3.5"}, "INVALID_DAYS"},
		{"invalid body", []string{"--body", "{"}, "INVALID_BODY"},
		{"unrenderable", []string{"--seconds", "100000000000000000000000", "--days", "0"}, "UNRENDERABLE_DATE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"--format", "json", "add-days"}, tt.args...)
			stdout, stderr, code := runCLI(t, args...)
			assert.Equal(t, ExitFailure, code)
			assert.NotContains(t, stderr, "Error:", "rejections are reported once, on stdout")

			resp := decodeResponse(t, stdout)
			assert.Equal(t, "error", resp.Status)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.code, resp.Error.Code)
		})
	}
}

func TestAddDays_RejectedText(t *testing.T) {
	stdout, _, code := runCLI(t, "add-days", "--date", "2025-08-17", "--days", "five")
	assert.Equal(t, ExitFailure, code)
	assert.Equal(t, "Error [INVALID_DAYS]: days must be an integer\n", stdout)
}

func TestAddDays_ExclusiveFlags(t *testing.T) {
	_, stderr, code := runCLI(t, "add-days", "--body", "{}", "--date", "2025-08-17")
	assert.Equal(t, ExitFailure, code)
	assert.Contains(t, stderr, "none of the others can be")
}

// journaledEvaluations lists every evaluation in the journal at dbPath.
func journaledEvaluations(t *testing.T, dbPath string) []ir.Evaluation {
	t.Helper()
	stdout, stderr, code := runCLI(t, "--format", "json", "history", "--db", dbPath, "--run", "run-cli")
	require.Equal(t, ExitSuccess, code, stderr)

	var response struct {
		Data []ir.Evaluation `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &response))
	return response.Data
}

func TestAddDays_MissingFieldJournaled(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "dayshift.db")
	metricsPath := filepath.Join(dir, "metrics.prom")

	stdout, _, code := runCLI(t, "--format", "json", "--db", dbPath, "--metrics-file", metricsPath,
		"add-days", "--body", `{"date":"2025-08-17"}`)
	require.Equal(t, ExitFailure, code)

	resp := decodeResponse(t, stdout)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "MISSING_DAYS", resp.Error.Code)
	assert.NotEmpty(t, resp.TraceID)

	evs := journaledEvaluations(t, dbPath)
	require.Len(t, evs, 1)
	assert.Equal(t, resp.TraceID, evs[0].ID)
	assert.Equal(t, ir.OutcomeError, evs[0].Outcome)
	assert.Equal(t, "MISSING_DAYS", evs[0].ErrorCode)
	assert.Equal(t, ir.IRObject{"date": ir.IRString("2025-08-17")}, evs[0].Request)

	data, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `dayshift_evaluations_total{op="add_days",outcome="validation_error"} 1`)

	// The journaled rejection replays to the same outcome.
	stdout, _, code = runCLI(t, "replay", "--db", dbPath)
	assert.Equal(t, ExitSuccess, code)
	assert.Contains(t, stdout, "All evaluations verified deterministic")
}

func TestAddDays_FlagRequestJournaled(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "dayshift.db")

	_, _, code := runCLI(t, "--db", dbPath, "add-days", "--days", "5")
	require.Equal(t, ExitFailure, code)
	_, _, code = runCLI(t, "--db", dbPath, "add-days", "--query", "seconds=12&days=1&iso=1")
	require.Equal(t, ExitSuccess, code)

	evs := journaledEvaluations(t, dbPath)
	require.Len(t, evs, 2)
	assert.Equal(t, "MISSING_DATE", evs[0].ErrorCode)
	assert.Equal(t, ir.IRObject{"days": ir.IRString("5")}, evs[0].Request)
	assert.Equal(t, ir.OutcomeOK, evs[1].Outcome)
	assert.Equal(t, ir.IRString("1"), evs[1].Request["iso"])
}

func TestAddDays_InvalidISO(t *testing.T) {
	stdout, _, code := runCLI(t, "add-days", "--body", `{"date":"2025-08-17","days":5,"iso":"yes"}`)
	assert.Equal(t, ExitFailure, code)
	assert.Equal(t, "Error [INVALID_BODY]: iso must be true or false, got \"yes\"\n", stdout)

	stdout, _, code = runCLI(t, "--format", "json", "add-days", "--iso=false",
		"--body", `{"date":"2025-08-17","days":5,"iso":"true"}`)
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, stdout, `"date_iso":"2025-08-22T00:00:00Z"`)
}
