package core

import (
	"fmt"
	"iter"
	"strconv"
	"strings"
)

// parseAutoMapPosition extracts the gallery position from an autoMap value
// like "position=3". The text after the last "=" must parse as a non-zero
// integer; anything else disqualifies the field from auto-mapping.
func parseAutoMapPosition(autoMap string) (int, bool) {
	raw := autoMap
	if i := strings.LastIndex(autoMap, "="); i >= 0 {
		raw = autoMap[i+1:]
	}
	pos, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || pos == 0 {
		return 0, false
	}
	return pos, true
}

// partitionFields splits template fields into the auto-image fields (image
// type with a parsable autoMap position) and the user-mapped fields (a
// non-empty mapping entry). Fields in neither group are left out of the
// output entirely.
func partitionFields(tpl Template, mapping Mapping) ([]AutoImageField, []MappedField) {
	var auto []AutoImageField
	var mapped []MappedField
	for _, f := range tpl.Fields {
		if f.AutoMap != "" && f.Type == FieldTypeImage {
			if pos, ok := parseAutoMapPosition(f.AutoMap); ok {
				auto = append(auto, AutoImageField{Key: f.Key, Position: pos, Label: f.Label})
			}
			continue
		}
		if src := mapping[f.Key]; src != "" {
			mapped = append(mapped, MappedField{Key: f.Key, Source: src, Label: f.Label})
		}
	}
	return auto, mapped
}

// emitter produces one output cell for a given row index.
type emitter func(row int, handle string) string

// Reshape turns a parsed source table into the output header and a lazy row
// sequence for a template and user mapping. All indexing work happens before
// the first row is yielded; iterating the sequence only reads from the
// already-built indexes, so the input table must not be mutated while the
// sequence is being consumed.
//
// The sequence is single-pass. The returned error is a *ValidationError when
// the template's required field is missing from the mapping.
func Reshape(t *Table, tpl Template, mapping Mapping) ([]string, iter.Seq[[]string], error) {
	auto, mapped := partitionFields(tpl, mapping)

	required := tpl.ExportRules.RequiredFieldKey
	var requiredCol *Column
	if required != "" {
		found := false
		for _, m := range mapped {
			if m.Key == required {
				requiredCol = t.Resolve(m.Source)
				found = true
				break
			}
		}
		if !found {
			return nil, nil, &ValidationError{
				Message: fmt.Sprintf("required field %q must be mapped", required),
			}
		}
	}

	dropOnBlank := false
	for _, k := range tpl.ExportRules.DropRowIfBlankKeys {
		if k == required {
			dropOnBlank = true
			break
		}
	}

	handles := resolveHandles(t)
	images := BuildImageIndex(t)
	products := BuildProductValues(t, mapped, handles)

	autoByKey := make(map[string]AutoImageField, len(auto))
	for _, a := range auto {
		autoByKey[a.Key] = a
	}
	mappedByKey := make(map[string]MappedField, len(mapped))
	for _, m := range mapped {
		mappedByKey[m.Key] = m
	}

	// Emission plan in template order. Source columns resolve once here, not
	// per row.
	var header []string
	var emitters []emitter
	for _, f := range tpl.Fields {
		if m, ok := mappedByKey[f.Key]; ok {
			header = append(header, f.Label)
			emitters = append(emitters, mappedEmitter(t, m, products))
			continue
		}
		if a, ok := autoByKey[f.Key]; ok {
			header = append(header, f.Label)
			pos := a.Position
			emitters = append(emitters, func(_ int, handle string) string {
				return images.URL(handle, pos)
			})
		}
	}

	rows := func(yield func([]string) bool) {
		for i := 0; i < t.RowCount(); i++ {
			if dropOnBlank && cellAt(requiredCol, i) == "" {
				continue
			}
			handle := handles[i]
			row := make([]string, len(emitters))
			for j, emit := range emitters {
				row[j] = emit(i, handle)
			}
			if !yield(row) {
				return
			}
		}
	}

	return header, rows, nil
}

// mappedEmitter builds the cell producer for one user-mapped field. Variant
// level sources read straight from the row; product-level sources prefer the
// aggregated per-handle value and fall back to the row's own cell.
func mappedEmitter(t *Table, m MappedField, products ProductValueIndex) emitter {
	col := t.Resolve(m.Source)
	if col != nil && isVariantLevel(m.Source) {
		return func(row int, _ string) string {
			return cellAt(col, row)
		}
	}
	key := m.Key
	return func(row int, handle string) string {
		if v, ok := products.Value(handle, key); ok {
			return v
		}
		return cellAt(col, row)
	}
}

// resolveHandles returns the trimmed per-row product handle. Tables without a
// Handle column get a synthetic unique handle per row so grouping degrades to
// row-level instead of collapsing everything into one product.
func resolveHandles(t *Table) []string {
	n := t.RowCount()
	handles := make([]string, n)
	col := t.Resolve(handleColumn)
	for i := 0; i < n; i++ {
		if col != nil {
			handles[i] = cellAt(col, i)
		}
		if handles[i] == "" {
			handles[i] = "__row__" + strconv.Itoa(i)
		}
	}
	return handles
}
