package rules

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tannerhall/intentaudit/internal/intent"
)

// writeCUEDir creates a temp directory containing the given CUE files.
func writeCUEDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func TestLoadCUE(t *testing.T) {
	dir := writeCUEDir(t, map[string]string{
		"rules.cue": `package rules

ruleset: {
	actions_order: ["Create Record", "Search/Query"]
	rules: {
		"Create Record": ["new", "add"]
		"Search/Query":  ["find"]
	}
	fallback_action: "Search/Query"
}
`,
	})

	rs, err := LoadCUE(dir)
	require.NoError(t, err)

	assert.Equal(t, []intent.ActionName{"Create Record", "Search/Query"}, rs.ActionsOrder)
	assert.Equal(t, []intent.Pattern{"new", "add"}, rs.Rules["Create Record"])
	assert.Equal(t, intent.ActionName("Search/Query"), rs.FallbackAction)
}

func TestLoadCUE_UnifiesAcrossFiles(t *testing.T) {
	// The pack can split order and rules across files; CUE unification
	// resolves them into one ruleset before decoding.
	dir := writeCUEDir(t, map[string]string{
		"order.cue": `package rules

ruleset: actions_order: ["Create Record", "Search/Query"]
ruleset: fallback_action: "Search/Query"
`,
		"patterns.cue": `package rules

ruleset: rules: "Create Record": ["new"]
ruleset: rules: "Search/Query": ["find"]
`,
	})

	rs, err := LoadCUE(dir)
	require.NoError(t, err)

	assert.Len(t, rs.ActionsOrder, 2)
	assert.Equal(t, []intent.Pattern{"find"}, rs.Rules["Search/Query"])
}

func TestLoadCUE_Errors(t *testing.T) {
	testCases := []struct {
		name     string
		files    map[string]string
		wantCode string
	}{
		{
			"empty directory",
			map[string]string{},
			ErrCodeNoFiles,
		},
		{
			"missing ruleset struct",
			map[string]string{"other.cue": "package rules\n\nsomething: 1\n"},
			ErrCodeCUEDecode,
		},
		{
			"wrong field type",
			map[string]string{"bad.cue": "package rules\n\nruleset: actions_order: \"not a list\"\n"},
			ErrCodeCUEDecode,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dir := writeCUEDir(t, tc.files)
			_, err := LoadCUE(dir)
			require.Error(t, err)

			var loadErr *LoadError
			require.True(t, errors.As(err, &loadErr))
			assert.Equal(t, tc.wantCode, loadErr.Code)
		})
	}
}

func TestLoad_DirectoryDispatchesToCUE(t *testing.T) {
	dir := writeCUEDir(t, map[string]string{
		"rules.cue": `package rules

ruleset: {
	actions_order: ["Search/Query"]
	rules: "Search/Query": ["find"]
}
`,
	})

	rs, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, intent.ActionName("Search/Query"), rs.FallbackAction)
}
