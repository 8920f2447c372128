package core

// Field types for template fields. The reshaper only gives image fields
// special treatment; everything else is emitted as text.
const (
	FieldTypeText  = "text"
	FieldTypeImage = "image"
)

// DefaultExportFileName is used when a transform request does not name the
// download.
const DefaultExportFileName = "zilo_export.csv"

// Field is one output column of an export template.
type Field struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Type  string `json:"type"`

	// AutoMap binds an image field to a fixed source position instead of a
	// user mapping, e.g. "position=1".
	AutoMap string `json:"autoMap,omitempty"`
}

// ExportRules controls row-level validation during a transform.
type ExportRules struct {
	// RequiredFieldKey names the one field that must be mapped for the
	// transform to run at all.
	RequiredFieldKey string `json:"requiredFieldKey"`

	// DropRowIfBlankKeys lists field keys whose blank source value causes the
	// row to be dropped from the output.
	DropRowIfBlankKeys []string `json:"dropRowIfBlankKeys"`
}

// Template describes one export target: the ordered output fields and the
// rules applied while emitting rows. Templates are loaded from the template
// store and never mutated by a transform.
type Template struct {
	TemplateKey string      `json:"templateKey"`
	Fields      []Field     `json:"fields"`
	ExportRules ExportRules `json:"exportRules"`
}

// Mapping maps template field keys to source column names in the uploaded
// CSV. It does not have to cover every field, and mapped names are allowed
// to be absent from the input.
type Mapping map[string]string

// TextCleanup names the source columns to run through CleanText before the
// transform indexes the table.
type TextCleanup struct {
	Columns []string `json:"columns"`
}

// MappingPrefs is a saved mapping together with its cleanup column list,
// keyed by template in the mapping-preferences store.
type MappingPrefs struct {
	Mapping     Mapping     `json:"mapping"`
	TextCleanup TextCleanup `json:"textCleanup"`
}

// MappedField is a template field bound to a source column by the user
// mapping.
type MappedField struct {
	Key    string
	Source string
	Label  string
}

// AutoImageField is an image field filled from the image index at a fixed
// position rather than through the user mapping.
type AutoImageField struct {
	Key      string
	Position int
	Label    string
}

// ValidationError reports a configuration problem the caller must fix before
// a transform can run: an unknown template, a malformed mapping, or a missing
// required-field mapping. Data problems inside the CSV never produce one;
// those resolve to empty values or skipped rows.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
