package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// executeCommand runs the root command with args and captures output.
func executeCommand(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

// writeTestRules writes the standard three-category rule set as JSON and
// returns its path.
func writeTestRules(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rules.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"actions_order": ["Create Record", "Update Record", "Search/Query"],
		"rules": {
			"Create Record": ["new", "add", "create", "insert"],
			"Update Record": ["change", "update", "modify", "edit"],
			"Search/Query": ["find", "search", "get", "lookup"]
		},
		"fallback_action": "Search/Query"
	}`), 0o644))
	return path
}

// writeTestWorkbook writes a single-sheet intake workbook and returns its
// path. Rows are (trigger, action) pairs under a standard header.
func writeTestWorkbook(t *testing.T, sheet string, rows [][]string) string {
	t.Helper()

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", sheet))
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"Trigger Phrase", "Action"}))
	for i, row := range rows {
		addr, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		cells := []any{row[0], row[1]}
		require.NoError(t, f.SetSheetRow(sheet, addr, &cells))
	}

	path := filepath.Join(t.TempDir(), "intake.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())
	return path
}
