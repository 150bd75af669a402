package intent

// ActionName is an opaque intent category label (e.g. "Create Record").
type ActionName string

// Pattern is a rule pattern string, interpreted as a case-insensitive
// regular expression matched anywhere within the subject text.
type Pattern string

// DefaultFallbackPattern is the sentinel pattern reported when no rule
// matched and the fallback action was assigned.
const DefaultFallbackPattern Pattern = "Default Fallback"

// RuleSet is an ordered intent rule configuration.
//
// ActionsOrder defines the priority order - earlier actions always win over
// later ones. Every entry referenced by ActionsOrder should have an entry in
// Rules; absent entries are treated as empty pattern lists.
//
// FallbackAction is the action assigned when nothing matches. It is an
// explicit configuration decision, NOT derived from ActionsOrder position:
// appending a new action to ActionsOrder must never silently change which
// action absorbs unmatched rows.
//
// A RuleSet is treated as immutable for the duration of an audit run.
type RuleSet struct {
	ActionsOrder   []ActionName             `json:"actions_order"`
	Rules          map[ActionName][]Pattern `json:"rules"`
	FallbackAction ActionName               `json:"fallback_action"`
}

// Result is the outcome of a single classification call.
//
// Pattern is the rule pattern that matched, or DefaultFallbackPattern when
// the fallback action was assigned.
type Result struct {
	Action  ActionName `json:"action"`
	Pattern Pattern    `json:"pattern"`
}

// Patterns returns the pattern list for an action, treating absent entries
// and a nil Rules map as empty lists.
func (rs RuleSet) Patterns(action ActionName) []Pattern {
	if rs.Rules == nil {
		return nil
	}
	return rs.Rules[action]
}
