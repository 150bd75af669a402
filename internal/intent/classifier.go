package intent

import (
	"log/slog"
	"regexp"
	"strings"
)

// compiledRule pairs an action's pattern with its compiled matcher.
// Only successfully compiled patterns become compiledRules.
type compiledRule struct {
	pattern Pattern
	re      *regexp.Regexp
}

// Classifier performs ordered first-match-wins intent classification.
//
// Patterns are compiled once at construction; Classify itself never compiles
// and never fails. Safe for concurrent use.
type Classifier struct {
	order    []ActionName
	fallback ActionName
	rules    map[ActionName][]compiledRule
	skipped  int
}

// NewClassifier compiles a RuleSet into a Classifier.
//
// Each pattern is compiled as a case-insensitive unanchored regular
// expression. Patterns that fail to compile are excluded and counted,
// never fatal: a single bad pattern must not take down the whole rule set.
//
// The ActionsOrder slice is copied to protect the priority order from
// external mutation.
func NewClassifier(rs RuleSet) *Classifier {
	c := &Classifier{
		order:    make([]ActionName, len(rs.ActionsOrder)),
		fallback: rs.FallbackAction,
		rules:    make(map[ActionName][]compiledRule, len(rs.ActionsOrder)),
	}
	copy(c.order, rs.ActionsOrder)

	for _, action := range c.order {
		patterns := rs.Patterns(action)
		compiled := make([]compiledRule, 0, len(patterns))
		for _, p := range patterns {
			re, err := compilePattern(p)
			if err != nil {
				c.skipped++
				slog.Debug("skipping malformed pattern",
					"action", string(action),
					"pattern", string(p),
					"error", err)
				continue
			}
			compiled = append(compiled, compiledRule{pattern: p, re: re})
		}
		c.rules[action] = compiled
	}

	return c
}

// Classify determines the intent category for a trigger phrase.
//
// The match subject is trigger and recommended joined by a single space and
// trimmed, so a pattern may match text that spans the boundary between the
// two fields. Matching is unanchored substring search.
//
// Priority is strictly lexical: the outer loop walks ActionsOrder, the inner
// loop walks each action's patterns in declared order, and the first match
// returns immediately. An earlier action always beats a later one even if
// the later action's pattern would be a longer match.
//
// Classify is total - it returns the fallback result rather than failing,
// including for empty subjects and rule sets with no usable patterns.
func (c *Classifier) Classify(trigger, recommended string) Result {
	subject := strings.TrimSpace(trigger + " " + recommended)

	for _, action := range c.order {
		for _, rule := range c.rules[action] {
			if rule.re.MatchString(subject) {
				return Result{Action: action, Pattern: rule.pattern}
			}
		}
	}

	return Result{Action: c.fallback, Pattern: DefaultFallbackPattern}
}

// SkippedPatterns reports how many patterns failed to compile and were
// excluded at construction. Exposed for diagnostics only; a non-zero count
// does not affect classification semantics.
func (c *Classifier) SkippedPatterns() int {
	return c.skipped
}

// compilePattern compiles a pattern as a case-insensitive regular expression.
// Modeled as a fallible operation so callers iterate only over matchers that
// actually compiled.
func compilePattern(p Pattern) (*regexp.Regexp, error) {
	return regexp.Compile("(?i)" + string(p))
}
