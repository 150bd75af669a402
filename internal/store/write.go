package store

import (
	"context"
	"fmt"
	"time"

	"github.com/tannerhall/intentaudit/internal/audit"
)

// WriteReport persists an audit report: one runs row plus one findings row
// per audited data row, in report order, in a single transaction.
//
// Idempotent on run ID: writing a report whose run ID already exists is a
// silent no-op, so retrying a partially-reported run never duplicates
// findings.
func (s *Store) WriteReport(ctx context.Context, report *audit.Report) error {
	return s.writeReportAt(ctx, report, time.Now())
}

func (s *Store) writeReportAt(ctx context.Context, report *audit.Report, at time.Time) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO runs
		(id, created_at, rules_hash, tables, skipped, rows, mismatches)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		report.RunID,
		at.Unix(),
		report.RulesHash,
		report.Totals.Tables,
		report.Totals.Skipped,
		report.Totals.Rows,
		report.Totals.Mismatches,
	)
	if err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	inserted, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	if inserted == 0 {
		// Run already recorded; keep the original findings.
		return nil
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO findings
		(run_id, sheet, row_idx, trigger_phrase, recommended,
		 current_action, predicted_action, predicted_pattern, mismatch)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	defer stmt.Close()

	for _, table := range report.Tables {
		for _, f := range table.Findings {
			if _, err := stmt.ExecContext(ctx,
				report.RunID,
				f.Table,
				f.Row,
				f.Trigger,
				f.Recommended,
				f.Current,
				string(f.Predicted.Action),
				string(f.Predicted.Pattern),
				f.Mismatch,
			); err != nil {
				return fmt.Errorf("write finding %s/%d: %w", f.Table, f.Row, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
