package core

// VariantLevelHeaders lists the Shopify export columns whose values vary per
// variant row (per SKU) rather than being constant across the rows that share
// a product handle. Mapped fields sourced from these columns are emitted from
// the row itself; everything else is aggregated per handle first.
//
// This set is domain knowledge about the Shopify export format. Swap it out
// to adapt the reshaper to another vendor's dialect without touching the
// reshaping algorithm.
var VariantLevelHeaders = map[string]struct{}{
	"Variant SKU":                 {},
	"Variant Price":               {},
	"Variant Compare At Price":    {},
	"Variant Barcode":             {},
	"Variant Inventory Qty":       {},
	"Variant Grams":               {},
	"Variant Weight":              {},
	"Variant Weight Unit":         {},
	"Variant Tax Code":            {},
	"Variant Fulfillment Service": {},
	"Variant Requires Shipping":   {},
	"Variant Taxable":             {},
	"Variant Title":               {},
	"Variant Image":               {},
	"Option1 Value":               {},
	"Option2 Value":               {},
	"Option3 Value":               {},
	"Cost per item":               {},
	"Inventory Policy":            {},
	"Inventory Qty":               {},
	"Inventory Item ID":           {},
	"Inventory Tracker":           {},
}

// isVariantLevel reports whether a source column varies per variant row.
func isVariantLevel(name string) bool {
	_, ok := VariantLevelHeaders[name]
	return ok
}
