// Package models contains the record, star-schema and summary types shared by the pipeline stages
package models

import "strings"

// Table is a raw tabular source: a header row and string cells.
// Rows are padded to len(Columns) by the loaders.
type Table struct {
	Name    string
	Columns []string
	Rows    [][]string
}

// ColumnIndex returns the position of the named column or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Column returns a copy of the named column's cells. ok is false when the column is absent.
func (t *Table) Column(name string) ([]string, bool) {
	idx := t.ColumnIndex(name)
	if idx < 0 {
		return nil, false
	}
	out := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		if idx < len(row) {
			out[i] = row[idx]
		}
	}
	return out, true
}

// NormalizeColumns returns a copy of the table with trimmed, lower-cased column names.
func (t *Table) NormalizeColumns() *Table {
	cols := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		cols[i] = strings.ToLower(strings.TrimSpace(c))
	}
	rows := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		rows[i] = append([]string(nil), row...)
	}
	return &Table{Name: t.Name, Columns: cols, Rows: rows}
}

// Len returns the number of data rows.
func (t *Table) Len() int { return len(t.Rows) }
