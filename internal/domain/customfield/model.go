package customfield

import (
	"errors"
	"slices"
	"strings"
)

// Field types understood by the host signup form.
const (
	TypeText        = "text"
	TypeEmail       = "email"
	TypeURL         = "url"
	TypeTel         = "tel"
	TypeDate        = "date"
	TypeTextarea    = "textarea"
	TypeCheckbox    = "checkbox"
	TypeDropdown    = "dropdown"
	TypeMultiselect = "multiselect"
	TypeRadios      = "radios"
	TypeCheckboxes  = "checkboxes"
	TypeFile        = "file"
)

// ValidTypes contains all valid field types.
var ValidTypes = []string{
	TypeText, TypeEmail, TypeURL, TypeTel, TypeDate, TypeTextarea,
	TypeCheckbox, TypeDropdown, TypeMultiselect, TypeRadios, TypeCheckboxes, TypeFile,
}

// Domain errors
var (
	ErrMissingKey  = errors.New("custom field key is required")
	ErrInvalidType = errors.New("custom field type is not recognised")
)

// Field mirrors an admin-defined custom field of the host signup form.
//
// Keys are not unique in the host registry. Order matters: lookups take the
// first field with a given key.
type Field struct {
	Key          string
	Name         string
	Type         string
	ShowOnSignup bool
}

// Validate checks required fields for a Field.
// PRE: Field struct is initialized
// POST: Returns error if validation fails, nil otherwise
func (f *Field) Validate() error {
	if strings.TrimSpace(f.Key) == "" {
		return ErrMissingKey
	}
	if !slices.Contains(ValidTypes, f.Type) {
		return ErrInvalidType
	}
	return nil
}

// IsDate reports whether the field collects a date.
func (f Field) IsDate() bool {
	return f.Type == TypeDate
}

// First returns the first field in fields with the given key.
// INVARIANT: later fields sharing the key are never consulted
func First(fields []Field, key string) (Field, bool) {
	for _, f := range fields {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}
