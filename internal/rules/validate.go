package rules

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/tannerhall/intentaudit/internal/intent"
)

// Severity of a validation finding.
const (
	SeverityError   = "error"   // rule set should not be used for an audit
	SeverityWarning = "warning" // degraded but usable; classifier will cope
)

// Validation error codes.
const (
	ErrCodeDuplicateAction = "E101" // actions_order lists an action twice
	ErrCodeUnknownRuleKey  = "E102" // rules entry not present in actions_order
	ErrCodeBadFallback     = "E103" // fallback_action not a member of actions_order
	ErrCodeBadPattern      = "E104" // pattern fails to compile (warning)
	ErrCodeNoActions       = "E105" // actions_order is empty (warning)
)

// ValidationError describes one structural problem in a rule set.
type ValidationError struct {
	Code     string `json:"code"`
	Severity string `json:"severity"`
	Field    string `json:"field"`
	Message  string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Code, e.Field, e.Message)
}

// Validate checks a rule set for structural problems.
//
// Error-severity findings mean the configuration is wrong (duplicates,
// dangling references, bad fallback). Warning-severity findings mirror the
// classifier's own degradation behavior: an uncompilable pattern is skipped
// at classification time, so here it warns rather than blocks - but it is
// almost always a typo worth surfacing before a run.
func Validate(rs intent.RuleSet) []ValidationError {
	var errs []ValidationError

	seen := make(map[intent.ActionName]bool, len(rs.ActionsOrder))
	for _, action := range rs.ActionsOrder {
		if seen[action] {
			errs = append(errs, ValidationError{
				Code:     ErrCodeDuplicateAction,
				Severity: SeverityError,
				Field:    "actions_order",
				Message:  fmt.Sprintf("action %q listed more than once", action),
			})
			continue
		}
		seen[action] = true
	}

	// Walk actions_order first, then any dangling rules keys in sorted
	// order, so findings come out deterministically.
	for _, action := range rs.ActionsOrder {
		errs = append(errs, checkPatterns(action, rs.Patterns(action))...)
	}

	var dangling []intent.ActionName
	for action := range rs.Rules {
		if !seen[action] {
			dangling = append(dangling, action)
		}
	}
	sort.Slice(dangling, func(i, j int) bool { return dangling[i] < dangling[j] })
	for _, action := range dangling {
		errs = append(errs, ValidationError{
			Code:     ErrCodeUnknownRuleKey,
			Severity: SeverityError,
			Field:    "rules",
			Message:  fmt.Sprintf("rules entry %q is not in actions_order and will never be evaluated", action),
		})
		errs = append(errs, checkPatterns(action, rs.Rules[action])...)
	}

	if len(rs.ActionsOrder) == 0 {
		errs = append(errs, ValidationError{
			Code:     ErrCodeNoActions,
			Severity: SeverityWarning,
			Field:    "actions_order",
			Message:  "no actions configured; every row will classify as the fallback",
		})
	} else if !seen[rs.FallbackAction] {
		errs = append(errs, ValidationError{
			Code:     ErrCodeBadFallback,
			Severity: SeverityError,
			Field:    "fallback_action",
			Message:  fmt.Sprintf("fallback action %q is not a member of actions_order", rs.FallbackAction),
		})
	}

	return errs
}

// checkPatterns warns for every pattern of an action that fails to compile.
func checkPatterns(action intent.ActionName, patterns []intent.Pattern) []ValidationError {
	var errs []ValidationError
	for i, p := range patterns {
		if _, err := regexp.Compile("(?i)" + string(p)); err != nil {
			errs = append(errs, ValidationError{
				Code:     ErrCodeBadPattern,
				Severity: SeverityWarning,
				Field:    fmt.Sprintf("rules.%s[%d]", action, i),
				Message:  fmt.Sprintf("pattern %q does not compile and will be skipped: %v", p, err),
			})
		}
	}
	return errs
}

// HasErrors reports whether any finding is error severity.
func HasErrors(errs []ValidationError) bool {
	for _, e := range errs {
		if e.Severity == SeverityError {
			return true
		}
	}
	return false
}
