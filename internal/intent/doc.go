// Package intent implements the deterministic intent classification engine.
//
// The classifier maps a free-text trigger phrase (plus an optional
// recommended phrase) to exactly one action category using ordered pattern
// matching over a RuleSet.
//
// CRITICAL PATTERNS:
//
// Strict lexical priority:
// Actions are evaluated in RuleSet.ActionsOrder declaration order, and each
// action's patterns in their declared order. The FIRST match wins - there is
// no scoring, no "best match", no tie-breaking. Reordering either sequence
// changes observable results, so both orders are preserved exactly as loaded.
//
// Totality:
// Classify always returns a result for any string inputs and any RuleSet,
// well-formed or not. Patterns that fail to compile are excluded up front
// and counted for diagnostics; a RuleSet with no usable patterns simply
// classifies everything as the fallback action.
//
// The engine is pure computation: no I/O, no shared mutable state. A
// Classifier is safe for concurrent use once constructed.
package intent
