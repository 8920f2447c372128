package core

import "testing"

func TestResolve(t *testing.T) {
	tbl := &Table{Columns: []Column{
		{Name: "Handle", Cells: []string{"a"}},
		{Name: "Title", Cells: []string{"b"}},
		{Name: "title", Cells: []string{"c"}},
	}}

	tests := []struct {
		name     string
		lookup   string
		wantCell string
		wantNil  bool
	}{
		{name: "exact match", lookup: "Handle", wantCell: "a"},
		{name: "exact beats case-insensitive", lookup: "title", wantCell: "c"},
		{name: "case-insensitive fallback", lookup: "TITLE", wantCell: "b"},
		{name: "missing column", lookup: "Vendor", wantNil: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			col := tbl.Resolve(tt.lookup)
			if tt.wantNil {
				if col != nil {
					t.Fatalf("Resolve(%q) = %q, want nil", tt.lookup, col.Name)
				}
				return
			}
			if col == nil {
				t.Fatalf("Resolve(%q) = nil, want column", tt.lookup)
			}
			if col.Cells[0] != tt.wantCell {
				t.Errorf("Resolve(%q) cell = %q, want %q", tt.lookup, col.Cells[0], tt.wantCell)
			}
		})
	}
}

func TestCellAt(t *testing.T) {
	col := &Column{Name: "Title", Cells: []string{"  padded  ", ""}}

	if got := cellAt(col, 0); got != "padded" {
		t.Errorf("cellAt trimmed = %q, want %q", got, "padded")
	}
	if got := cellAt(col, 1); got != "" {
		t.Errorf("cellAt empty = %q, want empty", got)
	}
	if got := cellAt(nil, 0); got != "" {
		t.Errorf("cellAt(nil) = %q, want empty", got)
	}
}

func TestRowCount(t *testing.T) {
	if got := (&Table{}).RowCount(); got != 0 {
		t.Errorf("empty table RowCount = %d, want 0", got)
	}

	tbl := &Table{Columns: []Column{{Name: "A", Cells: []string{"1", "2"}}}}
	if got := tbl.RowCount(); got != 2 {
		t.Errorf("RowCount = %d, want 2", got)
	}
}
