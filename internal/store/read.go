package store

import (
	"context"
	"fmt"
	"time"

	"github.com/tannerhall/intentaudit/internal/audit"
	"github.com/tannerhall/intentaudit/internal/intent"
)

// RunSummary is one persisted audit run's header row.
type RunSummary struct {
	ID         string    `json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	RulesHash  string    `json:"rules_hash"`
	Tables     int       `json:"tables"`
	Skipped    int       `json:"skipped"`
	Rows       int       `json:"rows"`
	Mismatches int       `json:"mismatches"`
}

// ListRuns returns persisted run summaries, newest first. Runs created in
// the same second order by ID for a stable listing.
func (s *Store) ListRuns(ctx context.Context) ([]RunSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, rules_hash, tables, skipped, rows, mismatches
		FROM runs
		ORDER BY created_at DESC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var r RunSummary
		var createdAt int64
		if err := rows.Scan(&r.ID, &createdAt, &r.RulesHash, &r.Tables, &r.Skipped, &r.Rows, &r.Mismatches); err != nil {
			return nil, fmt.Errorf("list runs: %w", err)
		}
		r.CreatedAt = time.Unix(createdAt, 0).UTC()
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// ReadFindings returns a run's findings in their original report order
// (insert order). With mismatchOnly set, agreeing rows are filtered out.
func (s *Store) ReadFindings(ctx context.Context, runID string, mismatchOnly bool) ([]audit.Finding, error) {
	query := `
		SELECT sheet, row_idx, trigger_phrase, recommended,
		       current_action, predicted_action, predicted_pattern, mismatch
		FROM findings
		WHERE run_id = ?
	`
	if mismatchOnly {
		query += " AND mismatch = 1"
	}
	query += " ORDER BY rowid"

	rows, err := s.db.QueryContext(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("read findings: %w", err)
	}
	defer rows.Close()

	var findings []audit.Finding
	for rows.Next() {
		var f audit.Finding
		var action, pattern string
		if err := rows.Scan(&f.Table, &f.Row, &f.Trigger, &f.Recommended,
			&f.Current, &action, &pattern, &f.Mismatch); err != nil {
			return nil, fmt.Errorf("read findings: %w", err)
		}
		f.Predicted = intent.Result{
			Action:  intent.ActionName(action),
			Pattern: intent.Pattern(pattern),
		}
		findings = append(findings, f)
	}
	return findings, rows.Err()
}
