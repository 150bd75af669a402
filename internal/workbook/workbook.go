// Package workbook adapts xlsx workbooks to the audit.Source interface.
//
// Each sheet becomes one audit.Table: the first non-empty row is taken as
// the header, everything after it as data. Cell values are read raw (the
// stored value, not the display format) so numeric cells coerce to stable
// strings.
package workbook

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/tannerhall/intentaudit/internal/audit"
)

// File is an open xlsx workbook.
type File struct {
	f    *excelize.File
	path string
}

// Open opens the workbook at path.
func Open(path string) (*File, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook %s: %w", path, err)
	}
	return &File{f: f, path: path}, nil
}

// Close releases the underlying workbook.
func (w *File) Close() error {
	return w.f.Close()
}

// Tables returns one audit.Table per sheet, in workbook sheet order.
//
// Sheets with no non-empty rows yield a table with a nil header; the audit
// qualification step rejects those with a missing-columns reason rather
// than this layer inventing an error for them.
func (w *File) Tables() ([]audit.Table, error) {
	sheets := w.f.GetSheetList()
	tables := make([]audit.Table, 0, len(sheets))

	for _, sheet := range sheets {
		rows, err := w.f.GetRows(sheet, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
		}

		header, data := splitHeader(rows)
		tables = append(tables, audit.Table{
			Name:   sheet,
			Header: header,
			Rows:   data,
		})
	}

	return tables, nil
}

// splitHeader finds the first non-empty row and returns it plus the rows
// after it. Leading blank rows above the header are common in hand-made
// sheets and are ignored.
func splitHeader(rows [][]string) (header []string, data [][]string) {
	for i, row := range rows {
		if !rowEmpty(row) {
			return row, rows[i+1:]
		}
	}
	return nil, nil
}

func rowEmpty(row []string) bool {
	for _, cell := range row {
		if cell != "" {
			return false
		}
	}
	return true
}
