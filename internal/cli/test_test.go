package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const passingScenario = `name: pass
description: "TUMBLE over Bid appends window columns"
specs:
  - ../specs
cases:
  - query: tumble_bid
    expect:
      function: TUMBLE
      fields:
        - bidtime:TIMESTAMP
        - price:DECIMAL
        - item:VARCHAR
        - window_start:TIMESTAMP
        - window_end:TIMESTAMP
  - query: missing_column
    expect:
      error: E201
      identifier: missing_col
`

const failingScenario = `name: fail
description: "Expects the wrong function"
specs:
  - ../specs
cases:
  - query: tumble_bid
    expect:
      function: HOP
`

// writeScenarios lays out <tmp>/specs and <tmp>/scenarios and returns the
// scenarios directory.
func writeScenarios(t *testing.T, scenarios map[string]string) string {
	t.Helper()
	root := t.TempDir()
	specsDir := filepath.Join(root, "specs")
	scenariosDir := filepath.Join(root, "scenarios")
	require.NoError(t, os.MkdirAll(specsDir, 0755))
	require.NoError(t, os.MkdirAll(scenariosDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(specsDir, "bid.cue"), []byte(bidSpec), 0644))
	for name, content := range scenarios {
		require.NoError(t, os.WriteFile(filepath.Join(scenariosDir, name), []byte(content), 0644))
	}
	return scenariosDir
}

func executeTest(t *testing.T, format string, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := NewTestCommand(&RootOptions{Format: format})
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestTestCommandMissingArgs(t *testing.T) {
	_, err := executeTest(t, "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg")
}

func TestTestCommandNonExistentScenariosDir(t *testing.T) {
	_, err := executeTest(t, "text", "/nonexistent/scenarios")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "scenarios directory not found")
}

func TestTestCommandEmptyScenariosDir(t *testing.T) {
	dir := writeScenarios(t, nil)

	out, err := executeTest(t, "text", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "No scenarios found")

	out, err = executeTest(t, "json", dir)
	require.NoError(t, err)
	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestTestCommandPassing(t *testing.T) {
	dir := writeScenarios(t, map[string]string{"pass.yaml": passingScenario})

	out, err := executeTest(t, "text", dir)

	require.NoError(t, err)
	assert.Contains(t, out, "✓ pass")
	assert.Contains(t, out, "Test Summary: 1 passed, 0 failed, 1 total")
	assert.Contains(t, out, "✓ All scenarios passed")
}

func TestTestCommandFailing(t *testing.T) {
	dir := writeScenarios(t, map[string]string{
		"pass.yaml": passingScenario,
		"fail.yaml": failingScenario,
	})

	out, err := executeTest(t, "text", dir)

	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "✗ fail")
	assert.Contains(t, out, "Expected: HOP")
	assert.Contains(t, out, "Test Summary: 1 passed, 1 failed, 2 total")
}

func TestTestCommandFilter(t *testing.T) {
	dir := writeScenarios(t, map[string]string{
		"pass.yaml": passingScenario,
		"fail.yaml": failingScenario,
	})

	out, err := executeTest(t, "text", dir, "--filter", "pa*")

	require.NoError(t, err)
	assert.Contains(t, out, "Test Summary: 1 passed, 0 failed, 1 total")

	_, err = executeTest(t, "text", dir, "--filter", "[")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestTestCommandJSON(t *testing.T) {
	dir := writeScenarios(t, map[string]string{
		"pass.yaml": passingScenario,
		"fail.yaml": failingScenario,
	})

	out, err := executeTest(t, "json", dir)
	require.Error(t, err)

	var resp struct {
		Status  string     `json:"status"`
		TraceID string     `json:"trace_id"`
		Error   *CLIError  `json:"error"`
		Data    TestResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.NotEmpty(t, resp.TraceID)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "E_TEST_FAILED", resp.Error.Code)
	assert.Equal(t, 1, resp.Data.Passed)
	assert.Equal(t, 1, resp.Data.Failed)

	for _, s := range resp.Data.Scenarios {
		if s.Name == "fail" {
			assert.False(t, s.Pass)
			assert.NotEmpty(t, s.Errors)
		}
	}
}

func TestTestCommandBadScenarioFile(t *testing.T) {
	dir := writeScenarios(t, map[string]string{"broken.yaml": "name: broken\nunknown_key: true\n"})

	out, err := executeTest(t, "text", dir)

	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "✗ broken.yaml")
	assert.Contains(t, out, "failed to load scenario")
}

func TestTestCommandGolden(t *testing.T) {
	dir := writeScenarios(t, map[string]string{"pass.yaml": passingScenario})
	goldenPath := filepath.Join(dir, "golden", "pass.golden")

	out, err := executeTest(t, "text", dir, "--update")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ pass (golden updated)")

	data, err := os.ReadFile(goldenPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"scenario_name": "pass"`)
	assert.Contains(t, string(data), `"error_code": "E201"`)

	// Golden matches
	_, err = executeTest(t, "text", dir)
	require.NoError(t, err)

	// Golden drifts
	require.NoError(t, os.WriteFile(goldenPath, []byte("{}\n"), 0644))
	out, err = executeTest(t, "text", dir)
	require.Error(t, err)
	assert.Contains(t, out, "do not match golden file")
}
