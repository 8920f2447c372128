package core

import (
	"bytes"
	"slices"
	"strings"
	"testing"
)

func TestParseTable(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantCols []string
		wantRows int
		wantErr  string
	}{
		{
			name:     "plain csv",
			input:    "Handle,Title\na,Shirt\n",
			wantCols: []string{"Handle", "Title"},
			wantRows: 1,
		},
		{
			name:     "leading BOM stripped",
			input:    "\xef\xbb\xbfHandle,Title\na,Shirt\n",
			wantCols: []string{"Handle", "Title"},
			wantRows: 1,
		},
		{
			name:     "header names trimmed",
			input:    " Handle , Title \na,Shirt\n",
			wantCols: []string{"Handle", "Title"},
			wantRows: 1,
		},
		{
			name:     "ragged rows padded and truncated",
			input:    "A,B,C\n1\n1,2,3,4\n",
			wantCols: []string{"A", "B", "C"},
			wantRows: 2,
		},
		{
			name:    "empty input",
			input:   "",
			wantErr: "empty file",
		},
		{
			name:    "whitespace only",
			input:   "   \n  ",
			wantErr: "empty file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl, err := ParseTable([]byte(tt.input))
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("ParseTable error = %v, want containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseTable error = %v", err)
			}

			var cols []string
			for _, c := range tbl.Columns {
				cols = append(cols, c.Name)
			}
			if !slices.Equal(cols, tt.wantCols) {
				t.Errorf("columns = %v, want %v", cols, tt.wantCols)
			}
			if tbl.RowCount() != tt.wantRows {
				t.Errorf("rows = %d, want %d", tbl.RowCount(), tt.wantRows)
			}
		})
	}
}

func TestParseTableScrubsNaN(t *testing.T) {
	tbl, err := ParseTable([]byte("A,B\nnan,kept\n"))
	if err != nil {
		t.Fatalf("ParseTable error = %v", err)
	}
	if got := tbl.Columns[0].Cells[0]; got != "" {
		t.Errorf("nan cell = %q, want empty", got)
	}
	if got := tbl.Columns[1].Cells[0]; got != "kept" {
		t.Errorf("cell = %q, want %q", got, "kept")
	}
}

func TestParseTableRecoversFromInvalidUTF8(t *testing.T) {
	// 0xFF is never valid UTF-8; the decoder retry replaces it instead of
	// failing the upload.
	input := []byte("Handle,Title\na,Sh\xffirt\n")
	tbl, err := ParseTable(input)
	if err != nil {
		t.Fatalf("ParseTable error = %v", err)
	}
	if tbl.RowCount() != 1 {
		t.Fatalf("rows = %d, want 1", tbl.RowCount())
	}
	if got := tbl.Columns[1].Cells[0]; !strings.Contains(got, "Sh") {
		t.Errorf("cell = %q, want replacement-decoded title", got)
	}
}

func TestWriteCSV(t *testing.T) {
	rows := func(yield func([]string) bool) {
		yield([]string{"S1", "http://x/1.jpg"})
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, []string{"SKU", "Image 1"}, rows); err != nil {
		t.Fatalf("WriteCSV error = %v", err)
	}

	want := "\xef\xbb\xbfSKU,Image 1\r\nS1,http://x/1.jpg\r\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestWriteCSVEmptyRows(t *testing.T) {
	rows := func(yield func([]string) bool) {}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, []string{"SKU"}, rows); err != nil {
		t.Fatalf("WriteCSV error = %v", err)
	}
	want := "\xef\xbb\xbfSKU\r\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}
