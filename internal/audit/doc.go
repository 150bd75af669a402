// Package audit drives batch re-classification over tabular sources.
//
// The runner walks every table a Source provides, qualifies each against
// the header configuration, re-classifies each qualifying row's trigger
// phrase, and records a finding per row comparing the recorded action to
// the prediction. Skipped tables are reported with their structured
// rejection reason, never as errors.
//
// Determinism: tables are processed in source order and rows in sheet
// order, so two runs over the same source with the same rule set produce
// identical reports (modulo the run ID, which is injectable for tests).
// The per-row work is pure; any parallelism belongs to callers, not here.
package audit
