package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_ValidRules(t *testing.T) {
	stdout, _, err := executeCommand(t, "validate", writeTestRules(t))
	require.NoError(t, err)
	assert.Contains(t, stdout, "Rule set is valid.")
}

func TestValidate_InvalidFallback(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"actions_order": ["Create Record"],
		"rules": {"Create Record": ["new"]},
		"fallback_action": "Nonexistent"
	}`), 0o644))

	stdout, _, err := executeCommand(t, "validate", path)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, stdout, "INVALID")
	assert.Contains(t, stdout, "E103")
}

func TestValidate_WarningsDoNotFail(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"actions_order": ["Create Record"],
		"rules": {"Create Record": ["(unclosed", "new"]},
		"fallback_action": "Create Record"
	}`), 0o644))

	stdout, _, err := executeCommand(t, "validate", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "warning")
	assert.Contains(t, stdout, "E104")
}

func TestValidate_MissingFile(t *testing.T) {
	_, _, err := executeCommand(t, "validate", filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestValidate_JSONFormat(t *testing.T) {
	stdout, _, err := executeCommand(t, "--format", "json", "validate", writeTestRules(t))
	require.NoError(t, err)

	var resp Response
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "ok", resp.Status)
}
