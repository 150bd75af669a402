package audit

import (
	"github.com/tannerhall/intentaudit/internal/intent"
)

// Table is one tabular data source: a named sheet with a header row and
// data rows. All cells are already coerced to strings; absent cells are
// empty strings.
type Table struct {
	Name   string
	Header []string
	Rows   [][]string
}

// Source provides the tables of one workbook or equivalent container.
// Implemented by workbook.File (xlsx) and by in-memory fixtures in tests.
type Source interface {
	Tables() ([]Table, error)
}

// Finding is the audit verdict for a single data row.
//
// Row is the 1-based data row index within its table, header excluded -
// matching how a reviewer counts rows when they open the sheet.
type Finding struct {
	Table       string        `json:"table"`
	Row         int           `json:"row"`
	Trigger     string        `json:"trigger"`
	Recommended string        `json:"recommended,omitempty"`
	Current     string        `json:"current"`
	Predicted   intent.Result `json:"predicted"`
	Mismatch    bool          `json:"mismatch"`
}

// TableReport aggregates findings for one qualifying table.
type TableReport struct {
	Name       string    `json:"name"`
	Rows       int       `json:"rows"`
	Mismatches int       `json:"mismatches"`
	Findings   []Finding `json:"findings"`
}

// SkippedTable records a table rejected by qualification, with the
// structured reason for the report reader.
type SkippedTable struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// Totals summarizes a whole run.
type Totals struct {
	Tables     int `json:"tables"`
	Skipped    int `json:"skipped"`
	Rows       int `json:"rows"`
	Mismatches int `json:"mismatches"`
}

// Report is the complete output of one audit run.
type Report struct {
	RunID     string         `json:"run_id"`
	RulesHash string         `json:"rules_hash"`
	Tables    []TableReport  `json:"tables"`
	Skipped   []SkippedTable `json:"skipped,omitempty"`
	Totals    Totals         `json:"totals"`
}

// MismatchFindings returns every mismatch finding across all tables, in
// report order.
func (r *Report) MismatchFindings() []Finding {
	var out []Finding
	for _, t := range r.Tables {
		for _, f := range t.Findings {
			if f.Mismatch {
				out = append(out, f)
			}
		}
	}
	return out
}
