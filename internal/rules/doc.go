// Package rules loads and validates intent rule sets.
//
// Three source formats are supported:
//
//   - JSON: the canonical interchange shape
//     {"actions_order": [...], "rules": {...}, "fallback_action": "..."}
//   - YAML: the same shape, selected by file extension
//   - CUE: a directory of .cue files defining a top-level "ruleset" struct,
//     for configurations that want schema constraints and composition
//
// Loading is deliberately forgiving where the classifier is forgiving:
// absent actions_order or rules default to empty, and a missing explicit
// fallback_action is resolved to the last entry of actions_order AT LOAD
// TIME, so the classifier itself never infers a fallback. Validate reports
// structural problems (duplicates, unknown rule keys, uncompilable
// patterns) without blocking classification - only Validate's
// error-severity findings should stop an audit.
package rules
