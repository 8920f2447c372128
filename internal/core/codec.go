package core

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"iter"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// utf8BOM is prepended to serialized output so spreadsheet applications
// detect the encoding.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ParseTable decodes raw CSV bytes into a column-oriented Table. The bytes
// are read as UTF-8 first; if that fails, one retry runs the input through a
// BOM-aware UTF-8 decoder that replaces invalid sequences. A leading BOM is
// always stripped so the first header resolves by name.
//
// All cells are plain strings with no type inference. The literal cell "nan"
// is scrubbed to an empty string; it is an artifact of stringified missing
// values in upstream exports, not data.
func ParseTable(data []byte) (*Table, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("empty file")
	}

	records, err := readRecords(data)
	if err != nil {
		decoded, decErr := io.ReadAll(transform.NewReader(bytes.NewReader(data), unicode.UTF8BOM.NewDecoder()))
		if decErr != nil {
			return nil, fmt.Errorf("invalid csv: %w", err)
		}
		records, err = readRecords(decoded)
		if err != nil {
			return nil, fmt.Errorf("invalid csv: %w", err)
		}
	}

	return tableFromRecords(records), nil
}

// readRecords parses CSV records from valid UTF-8 bytes. Shopify exports are
// sometimes malformed, so quoting is lenient and ragged rows are accepted.
func readRecords(data []byte) ([][]string, error) {
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("encoding error: input is not valid UTF-8")
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty file")
	}
	return records, nil
}

// tableFromRecords builds the column-oriented table from header + data rows.
// Short rows are padded with empty cells so every column ends up with the
// same row count; cells beyond the header width are dropped.
func tableFromRecords(records [][]string) *Table {
	header := records[0]
	cols := make([]Column, len(header))
	for j, name := range header {
		cols[j] = Column{
			Name:  strings.TrimSpace(name),
			Cells: make([]string, 0, len(records)-1),
		}
	}

	for _, rec := range records[1:] {
		for j := range cols {
			v := ""
			if j < len(rec) {
				v = rec[j]
			}
			if v == "nan" {
				v = ""
			}
			cols[j].Cells = append(cols[j].Cells, v)
		}
	}

	return &Table{Columns: cols}
}

// WriteCSV serializes the header and row sequence to w as a BOM-prefixed,
// CRLF-terminated CSV stream. Each row is flushed as it is produced so the
// writer receives output incrementally rather than one giant buffer.
//
// The row sequence is single-pass; WriteCSV consumes it.
func WriteCSV(w io.Writer, header []string, rows iter.Seq[[]string]) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	cw.UseCRLF = true

	if err := cw.Write(header); err != nil {
		return err
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}

	for row := range rows {
		if err := cw.Write(row); err != nil {
			return err
		}
		cw.Flush()
		if err := cw.Error(); err != nil {
			return err
		}
	}

	return nil
}
