package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRuleSetHash_Deterministic(t *testing.T) {
	a := makeTestRuleSet()
	b := makeTestRuleSet()

	assert.Equal(t, a.Hash(), b.Hash(), "identical rule sets must hash equal")
	assert.Len(t, a.Hash(), 64, "hex-encoded sha256")
}

func TestRuleSetHash_SensitiveToOrder(t *testing.T) {
	a := makeTestRuleSet()

	b := makeTestRuleSet()
	b.ActionsOrder[0], b.ActionsOrder[1] = b.ActionsOrder[1], b.ActionsOrder[0]
	assert.NotEqual(t, a.Hash(), b.Hash(), "action priority order is semantic")

	c := makeTestRuleSet()
	c.Rules["Create Record"] = []Pattern{"add", "new", "create", "insert"}
	assert.NotEqual(t, a.Hash(), c.Hash(), "pattern order within an action is semantic")
}

func TestRuleSetHash_SensitiveToFallback(t *testing.T) {
	a := makeTestRuleSet()
	b := makeTestRuleSet()
	b.FallbackAction = "Create Record"

	assert.NotEqual(t, a.Hash(), b.Hash())
}

func TestRuleSetHash_EmptyRuleSet(t *testing.T) {
	// Zero-value rule sets still hash (provenance for degenerate configs).
	assert.Len(t, RuleSet{}.Hash(), 64)
}
