package core

import "strings"

// Column is an ordered sequence of string cells under a source header name.
type Column struct {
	Name  string
	Cells []string
}

// Table is an ordered set of named columns parsed from a CSV. Every column
// holds exactly one cell per row; absent values are empty strings, never a
// sentinel.
type Table struct {
	Columns []Column
}

// RowCount returns the number of data rows.
func (t *Table) RowCount() int {
	if len(t.Columns) == 0 {
		return 0
	}
	return len(t.Columns[0].Cells)
}

// Resolve returns the column with the given name, preferring an exact match
// and falling back to the first case-insensitive match. It returns nil when
// nothing matches; callers treat a nil column as producing an empty string
// for every row.
func (t *Table) Resolve(name string) *Column {
	for i := range t.Columns {
		if t.Columns[i].Name == name {
			return &t.Columns[i]
		}
	}
	for i := range t.Columns {
		if strings.EqualFold(t.Columns[i].Name, name) {
			return &t.Columns[i]
		}
	}
	return nil
}

// cellAt returns the trimmed cell at row i, or "" when the column is nil.
func cellAt(c *Column, i int) string {
	if c == nil {
		return ""
	}
	return strings.TrimSpace(c.Cells[i])
}
