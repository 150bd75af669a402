package intent

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
)

// DomainRuleSet is the domain prefix for rule-set content hashes.
// Version suffix enables future algorithm migration.
const DomainRuleSet = "intentaudit/ruleset/v1"

// Hash computes a content-addressed identity for the rule set.
//
// The encoding is canonical and order-preserving: actions are emitted in
// ActionsOrder, each followed by its patterns in declared order, with
// length-prefixed fields so no two distinct rule sets collide on boundary
// ambiguity. Two RuleSets hash equal iff they classify identically.
//
// Used for run provenance - a persisted audit run records the hash of the
// rule set that produced it.
func (rs RuleSet) Hash() string {
	h := sha256.New()
	h.Write([]byte(DomainRuleSet))
	h.Write([]byte{0x00})

	writeField := func(s string) {
		h.Write([]byte(strconv.Itoa(len(s))))
		h.Write([]byte{0x00})
		h.Write([]byte(s))
	}

	writeField(string(rs.FallbackAction))
	for _, action := range rs.ActionsOrder {
		writeField(string(action))
		patterns := rs.Patterns(action)
		h.Write([]byte(strconv.Itoa(len(patterns))))
		h.Write([]byte{0x00})
		for _, p := range patterns {
			writeField(string(p))
		}
	}

	return hex.EncodeToString(h.Sum(nil))
}
