package audit

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/tannerhall/intentaudit/internal/header"
	"github.com/tannerhall/intentaudit/internal/intent"
)

// RunIDGenerator generates unique run identifiers.
// Implemented by UUIDGenerator (production) and FixedGenerator (tests).
type RunIDGenerator interface {
	Generate() string
}

// UUIDGenerator produces random UUID run IDs.
type UUIDGenerator struct{}

func (UUIDGenerator) Generate() string {
	return uuid.NewString()
}

// FixedGenerator always returns the same ID. For deterministic tests and
// golden files.
type FixedGenerator struct {
	ID string
}

func (g FixedGenerator) Generate() string {
	return g.ID
}

// Runner audits tabular sources against one rule set and one header
// configuration. Construct once, run against any number of sources.
type Runner struct {
	cfg        header.Config
	rulesHash  string
	classifier *intent.Classifier
	idGen      RunIDGenerator
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithRunIDGenerator overrides the run ID generator.
func WithRunIDGenerator(g RunIDGenerator) RunnerOption {
	return func(r *Runner) {
		r.idGen = g
	}
}

// NewRunner builds a Runner. The rule set is compiled once here; the
// classifier (and so the Runner) is safe for concurrent use.
func NewRunner(rs intent.RuleSet, cfg header.Config, opts ...RunnerOption) *Runner {
	r := &Runner{
		cfg:        cfg,
		rulesHash:  rs.Hash(),
		classifier: intent.NewClassifier(rs),
		idGen:      UUIDGenerator{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run audits every table of the source and assembles the report.
//
// Tables are processed in source order; qualification rejections become
// Skipped entries, not errors. The only error path is the source itself
// failing to enumerate tables.
func (r *Runner) Run(src Source) (*Report, error) {
	tables, err := src.Tables()
	if err != nil {
		return nil, fmt.Errorf("reading tables: %w", err)
	}

	report := &Report{
		RunID:     r.idGen.Generate(),
		RulesHash: r.rulesHash,
	}

	for _, table := range tables {
		check := header.QualifyTable(table.Name, table.Header, r.cfg)
		if !check.Valid {
			slog.Debug("skipping table", "table", table.Name, "reason", check.Reason)
			report.Skipped = append(report.Skipped, SkippedTable{Name: table.Name, Reason: check.Reason})
			report.Totals.Skipped++
			continue
		}

		tr := r.auditTable(table, check.Columns)
		report.Tables = append(report.Tables, tr)
		report.Totals.Tables++
		report.Totals.Rows += tr.Rows
		report.Totals.Mismatches += tr.Mismatches
	}

	slog.Info("audit complete",
		"run_id", report.RunID,
		"tables", report.Totals.Tables,
		"skipped", report.Totals.Skipped,
		"rows", report.Totals.Rows,
		"mismatches", report.Totals.Mismatches)

	return report, nil
}

// auditTable classifies every data row of one qualifying table.
func (r *Runner) auditTable(table Table, columns header.HeaderMap) TableReport {
	triggerCol := columns[r.cfg.TriggerKey]
	actionCol := columns[r.cfg.ActionKey]

	// Optional columns resolve to -1 when unconfigured or absent from
	// this table's schema.
	recommendedCol := optionalColumn(columns, r.cfg.RecommendedKey)
	overrideCol := optionalColumn(columns, r.cfg.OverrideKey)

	tr := TableReport{Name: table.Name}
	for i, row := range table.Rows {
		trigger := cell(row, triggerCol)
		recommended := cell(row, recommendedCol)

		// The recorded action, with a non-empty override taking
		// precedence when the table carries an override column.
		current := cell(row, actionCol)
		if override := cell(row, overrideCol); override != "" {
			current = override
		}

		predicted := r.classifier.Classify(trigger, recommended)

		f := Finding{
			Table:       table.Name,
			Row:         i + 1,
			Trigger:     trigger,
			Recommended: recommended,
			Current:     current,
			Predicted:   predicted,
			Mismatch:    !actionsEqual(current, predicted.Action),
		}
		if f.Mismatch {
			tr.Mismatches++
		}
		tr.Findings = append(tr.Findings, f)
	}
	tr.Rows = len(tr.Findings)
	return tr
}

// optionalColumn resolves an optional column key to its index, or -1 when
// the key is unconfigured or not present in this table.
func optionalColumn(columns header.HeaderMap, key string) int {
	if key == "" {
		return -1
	}
	idx, ok := columns[key]
	if !ok {
		return -1
	}
	return idx
}

// cell returns the row's value at idx, tolerating ragged rows (sheets
// commonly omit trailing empty cells) and the -1 "no column" sentinel.
func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// actionsEqual compares a recorded action against a predicted one:
// whitespace-trimmed, case-insensitive. Raw values stay on the finding
// for display.
func actionsEqual(current string, predicted intent.ActionName) bool {
	return strings.EqualFold(strings.TrimSpace(current), strings.TrimSpace(string(predicted)))
}
