package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test helper producing the canonical four-category rule set used across
// the classifier tests.
func makeTestRuleSet() RuleSet {
	return RuleSet{
		ActionsOrder: []ActionName{
			"Create Record",
			"Update Record",
			"Delete Record",
			"Search/Query",
		},
		Rules: map[ActionName][]Pattern{
			"Create Record": {"new", "add", "create", "insert"},
			"Update Record": {"change", "update", "modify", "edit"},
			"Delete Record": {"remove", "delete", "clear"},
			"Search/Query":  {"find", "search", "get", "lookup"},
		},
		FallbackAction: "Search/Query",
	}
}

func TestClassify_FirstMatchWins(t *testing.T) {
	c := NewClassifier(makeTestRuleSet())

	testCases := []struct {
		name        string
		trigger     string
		wantAction  ActionName
		wantPattern Pattern
	}{
		{"create intent", "I want to create a new user", "Create Record", "new"},
		{"update intent", "update the details", "Update Record", "update"},
		{"delete intent", "please remove this entry", "Delete Record", "remove"},
		{"search intent", "lookup the order status", "Search/Query", "lookup"},
		{"case insensitive", "CREATE A REPORT", "Create Record", "create"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := c.Classify(tc.trigger, "")
			assert.Equal(t, tc.wantAction, result.Action)
			assert.Equal(t, tc.wantPattern, result.Pattern)
		})
	}
}

func TestClassify_PriorityOrderBeatsLaterActions(t *testing.T) {
	c := NewClassifier(makeTestRuleSet())

	// Subject contains both a Search pattern ("find") and a Create pattern
	// ("create"/"new"). Create precedes Search in ActionsOrder, so Create
	// wins regardless of which field the matching text appears in.
	result := c.Classify("find user", "create new one")
	assert.Equal(t, ActionName("Create Record"), result.Action)
}

func TestClassify_PatternOrderWithinAction(t *testing.T) {
	c := NewClassifier(makeTestRuleSet())

	// "add a new task" matches both "new" and "add"; "new" is declared
	// first, so it is the reported pattern.
	result := c.Classify("add a new task", "")
	assert.Equal(t, ActionName("Create Record"), result.Action)
	assert.Equal(t, Pattern("new"), result.Pattern)
}

func TestClassify_MatchSpansTriggerRecommendedBoundary(t *testing.T) {
	rs := RuleSet{
		ActionsOrder:   []ActionName{"Create Record"},
		Rules:          map[ActionName][]Pattern{"Create Record": {`new\s+entry`}},
		FallbackAction: "Create Record",
	}
	c := NewClassifier(rs)

	// The single joining space between trigger and recommended satisfies \s+.
	result := c.Classify("submit a new", "entry form")
	assert.Equal(t, Pattern(`new\s+entry`), result.Pattern)
}

func TestClassify_Fallback(t *testing.T) {
	c := NewClassifier(makeTestRuleSet())

	result := c.Classify("nothing matches here", "")
	assert.Equal(t, ActionName("Search/Query"), result.Action)
	assert.Equal(t, DefaultFallbackPattern, result.Pattern)
}

func TestClassify_EmptyInputsFallThrough(t *testing.T) {
	c := NewClassifier(makeTestRuleSet())

	result := c.Classify("", "")
	assert.Equal(t, ActionName("Search/Query"), result.Action)
	assert.Equal(t, DefaultFallbackPattern, result.Pattern)
}

func TestClassify_MalformedPatternSkipped(t *testing.T) {
	rs := makeTestRuleSet()
	// Unbalanced parenthesis at the head of the top-priority action. The
	// bad pattern must be skipped, not abort classification, and later
	// patterns of the same action must still be consulted.
	rs.Rules["Create Record"] = append([]Pattern{"(unclosed"}, rs.Rules["Create Record"]...)

	var c *Classifier
	require.NotPanics(t, func() {
		c = NewClassifier(rs)
	})
	assert.Equal(t, 1, c.SkippedPatterns())

	result := c.Classify("create a record", "")
	assert.Equal(t, ActionName("Create Record"), result.Action)
	assert.Equal(t, Pattern("create"), result.Pattern)
}

func TestClassify_MalformedRuleSetDegradesToFallback(t *testing.T) {
	testCases := []struct {
		name string
		rs   RuleSet
	}{
		{"zero value", RuleSet{}},
		{"nil rules map", RuleSet{ActionsOrder: []ActionName{"Create Record"}, FallbackAction: "Search/Query"}},
		{"order without rules entries", RuleSet{
			ActionsOrder:   []ActionName{"Create Record", "Update Record"},
			Rules:          map[ActionName][]Pattern{},
			FallbackAction: "Search/Query",
		}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := NewClassifier(tc.rs)
			result := c.Classify("anything at all", "")
			assert.Equal(t, tc.rs.FallbackAction, result.Action)
			assert.Equal(t, DefaultFallbackPattern, result.Pattern)
		})
	}
}

func TestClassify_TotalOverArbitraryInputs(t *testing.T) {
	rs := makeTestRuleSet()
	c := NewClassifier(rs)

	members := map[ActionName]bool{rs.FallbackAction: true}
	for _, a := range rs.ActionsOrder {
		members[a] = true
	}

	inputs := []string{
		"", " ", "\t\n", "ünïcödé 🎉", "((((", "a very long phrase about nothing in particular",
		"update AND delete AND create", "NEW", "x",
	}
	for _, in := range inputs {
		result := c.Classify(in, in)
		assert.True(t, members[result.Action], "action %q not a rule set member for input %q", result.Action, in)
	}
}

func TestClassify_ActionsOrderCopiedAtConstruction(t *testing.T) {
	rs := makeTestRuleSet()
	c := NewClassifier(rs)

	// Mutating the caller's slice after construction must not change
	// priority order.
	rs.ActionsOrder[0], rs.ActionsOrder[3] = rs.ActionsOrder[3], rs.ActionsOrder[0]

	result := c.Classify("find user", "create new one")
	assert.Equal(t, ActionName("Create Record"), result.Action)
}
