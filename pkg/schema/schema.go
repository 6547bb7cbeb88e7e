package schema

// FieldType is the simplified enum for form-friendly field kinds.
type FieldType string

const (
	FieldTypeString  FieldType = "string"
	FieldTypeInteger FieldType = "integer"
	FieldTypeBoolean FieldType = "boolean"
)

const (
	ValidationRuleFormat    = "format"
	ValidationRulePattern   = "pattern"
	ValidationRuleMinLength = "minLength"
	ValidationRuleMaxLength = "maxLength"
)

// FormatEmail marks a string field validated against the email address
// grammar (local part, "@", dotted domain).
const FormatEmail = "email"

// ValidationRule represents a single validation constraint applied to a field.
// Use the ValidationRule* constants to reference canonical constraints
// (format, pattern, minLength/maxLength). Length limits encode their threshold
// in Params["value"]; pattern rules keep the expression in Params["pattern"];
// format rules name the format in Params["format"]. Values stay strings so
// JSON snapshots remain stable.
type ValidationRule struct {
	Kind   string            `json:"kind"`
	Params map[string]string `json:"params,omitempty"`
}

// Field models an individual input inside a form. Struct fields are annotated
// so renderers can serialise them directly when needed.
type Field struct {
	Name        string            `json:"name"`
	Type        FieldType         `json:"type"`
	Format      string            `json:"format,omitempty"`
	Required    bool              `json:"required"`
	Label       string            `json:"label,omitempty"`
	Placeholder string            `json:"placeholder,omitempty"`
	Description string            `json:"description,omitempty"`
	Default     string            `json:"default,omitempty"`
	Validations []ValidationRule  `json:"validations,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// IsEmail reports whether the field carries the email format, either directly
// or through a format validation rule.
func (f Field) IsEmail() bool {
	if f.Format == FormatEmail {
		return true
	}
	for _, rule := range f.Validations {
		if rule.Kind == ValidationRuleFormat && rule.Params["format"] == FormatEmail {
			return true
		}
	}
	return false
}

// Form is the top-level descriptor renderers and controllers consume.
type Form struct {
	ID          string            `json:"id"`
	Title       string            `json:"title,omitempty"`
	Endpoint    string            `json:"endpoint"`
	Method      string            `json:"method"`
	Summary     string            `json:"summary,omitempty"`
	SubmitLabel string            `json:"submitLabel,omitempty"`
	Fields      []Field           `json:"fields"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// Field returns the named field descriptor when present.
func (f Form) Field(name string) (Field, bool) {
	for _, field := range f.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}
