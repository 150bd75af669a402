package header

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeKey(t *testing.T) {
	testCases := []struct {
		name string
		raw  string
		want string
	}{
		{"punctuated header", "Action Type (Intent)", "actiontypeintent"},
		{"internal whitespace", "  Spaced   Input  ", "spacedinput"},
		{"digits survive", "123 Testing!", "123testing"},
		{"uppercase folded", "TRIGGER Phrase", "triggerphrase"},
		{"emoji stripped", "Status 🚦", "status"},
		{"accents stripped", "Résumé", "rsum"},
		{"slashes and parens", "Trigger/Phrase (v2)", "triggerphrasev2"},
		{"empty", "", ""},
		{"whitespace only", "   \t ", ""},
		{"pure punctuation", "***", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NormalizeKey(tc.raw))
		})
	}
}

func TestNormalizeKey_Idempotent(t *testing.T) {
	inputs := []string{
		"Action Type (Intent)", "  Spaced   Input  ", "123 Testing!",
		"Résumé 🎉", "", "already normal", "MiXeD CaSe 42",
	}
	for _, in := range inputs {
		once := NormalizeKey(in)
		assert.Equal(t, once, NormalizeKey(once), "NormalizeKey must be idempotent for %q", in)
	}
}

func TestBuildHeaderMap(t *testing.T) {
	m := BuildHeaderMap([]string{"Trigger Phrase", "Action", "Notes"})
	assert.Equal(t, HeaderMap{"triggerphrase": 0, "action": 1, "notes": 2}, m)
}

func TestBuildHeaderMap_SkipsEmptyCells(t *testing.T) {
	m := BuildHeaderMap([]string{"Header 1", "", "Header 3"})
	assert.Len(t, m, 2)
	assert.Equal(t, 0, m["header1"])
	assert.Equal(t, 2, m["header3"])
}

func TestBuildHeaderMap_DropsUnnormalizableHeaders(t *testing.T) {
	// Pure-decoration headers normalize to "" and are dropped silently.
	m := BuildHeaderMap([]string{"🎉", "Action", "---"})
	assert.Equal(t, HeaderMap{"action": 1}, m)
}

func TestBuildHeaderMap_DuplicateKeysLastWins(t *testing.T) {
	// "Action" and "ACTION!" collide on the normalized key. The later
	// column wins; this is the pinned collision policy.
	m := BuildHeaderMap([]string{"Action", "Trigger Phrase", "ACTION!"})
	assert.Equal(t, 2, m["action"])
	assert.Len(t, m, 2)
}

func TestHeaderMapKeys_ColumnOrder(t *testing.T) {
	m := BuildHeaderMap([]string{"Zebra", "Apple", "Mango"})
	assert.Equal(t, []string{"zebra", "apple", "mango"}, m.Keys())
}
