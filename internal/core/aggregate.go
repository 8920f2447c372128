package core

// ProductValueIndex holds, per product handle, the first non-blank value seen
// for each mapped field whose source column is product-level. Shopify exports
// fill product columns on one of a product's rows and leave the rest blank,
// so every variant row consults the index instead of its own possibly-blank
// cell.
type ProductValueIndex map[string]map[string]string

// Value returns the aggregated value for a handle and field key. The second
// return reports whether the index holds an entry at all, so callers can fall
// back to the row's own cell when aggregation found nothing.
func (ix ProductValueIndex) Value(handle, fieldKey string) (string, bool) {
	v, ok := ix[handle][fieldKey]
	return v, ok
}

// BuildProductValues scans the table once and aggregates product-level values
// per handle. Fields whose source column is variant-level are skipped (they
// are read from the row directly), as are fields whose source column does not
// exist in the input. handles carries the per-row handle, already resolved by
// the caller, and must be RowCount long.
func BuildProductValues(t *Table, fields []MappedField, handles []string) ProductValueIndex {
	type target struct {
		key string
		col *Column
	}
	var targets []target
	for _, f := range fields {
		if isVariantLevel(f.Source) {
			continue
		}
		col := t.Resolve(f.Source)
		if col == nil {
			continue
		}
		targets = append(targets, target{key: f.Key, col: col})
	}

	ix := make(ProductValueIndex)
	if len(targets) == 0 {
		return ix
	}

	for i := 0; i < t.RowCount(); i++ {
		handle := handles[i]
		if handle == "" {
			continue
		}
		for _, tg := range targets {
			v := cellAt(tg.col, i)
			if v == "" {
				continue
			}
			values := ix[handle]
			if values == nil {
				values = make(map[string]string)
				ix[handle] = values
			}
			if _, seen := values[tg.key]; !seen {
				values[tg.key] = v
			}
		}
	}
	return ix
}
