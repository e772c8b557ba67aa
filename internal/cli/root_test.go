package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/dayshift/internal/testutil"
)

// runCLI executes the command tree with a fixed run token.
func runCLI(t *testing.T, args ...string) (stdout, stderr string, code int) {
	t.Helper()
	var out, errOut bytes.Buffer
	opts := &RootOptions{RunTokens: testutil.NewFixedRunGenerator("run-cli")}
	code = execute(context.Background(), opts, args, &out, &errOut)
	return out.String(), errOut.String(), code
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "dayshift", cmd.Use)
	assert.Contains(t, cmd.Long, "journaled")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"add-days", "split", "test", "replay", "history"}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)

	for _, name := range []string{"config", "db", "metrics-file"} {
		flag := cmd.PersistentFlags().Lookup(name)
		require.NotNil(t, flag, name)
		assert.Equal(t, "", flag.DefValue, name)
	}
}

func TestAddDaysCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	addCmd, _, err := cmd.Find([]string{"add-days"})
	require.NoError(t, err)

	for _, name := range []string{"date", "days", "seconds", "nanos", "body", "query", "iso"} {
		assert.NotNil(t, addCmd.Flags().Lookup(name), name)
	}
}

func TestFormatValidation(t *testing.T) {
	assert.True(t, isValidFormat("text"))
	assert.True(t, isValidFormat("json"))

	assert.False(t, isValidFormat("xml"))
	assert.False(t, isValidFormat(""))
	assert.False(t, isValidFormat("TEXT"))
}

func TestFormatValidationIntegration(t *testing.T) {
	_, stderr, code := runCLI(t, "--format", "invalid", "split", "a,b")
	assert.Equal(t, ExitCommandError, code)
	assert.Contains(t, stderr, "invalid format")
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dayshift.yaml")
	require.NoError(t, os.WriteFile(path, []byte("format: json\nrender_iso: false\n"), 0644))

	stdout, _, code := runCLI(t, "--config", path, "add-days", "--date", "2025-08-17", "--days", "5")
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, stdout, `"date_ymd":"2025-08-22"`)
	assert.NotContains(t, stdout, "date_iso")

	// Flags set on the command line win over the file.
	stdout, _, code = runCLI(t, "--config", path, "--format", "text", "add-days", "--date", "2025-08-17", "--days", "5")
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, stdout, "date_ymd:  2025-08-22")
}

func TestConfigFileInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dayshift.yaml")
	require.NoError(t, os.WriteFile(path, []byte("format: xml\n"), 0644))

	_, stderr, code := runCLI(t, "--config", path, "split", "a")
	assert.Equal(t, ExitCommandError, code)
	assert.Contains(t, stderr, "failed to load config")
}

func TestMetricsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metrics.prom")

	_, _, code := runCLI(t, "--metrics-file", path, "split", "a,b")
	require.Equal(t, ExitSuccess, code)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "dayshift_evaluations_total")
}

func TestMetricsFileWrittenOnFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metrics.prom")

	_, _, code := runCLI(t, "--metrics-file", path, "add-days", "--date", "nope", "--days", "1")
	require.Equal(t, ExitFailure, code)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `outcome="parse_error"`)
}
