package store

import "strings"

// Field attribute characters accepted by ParseFieldSpec
const (
	attrHidden    = 'h'
	attrMandatory = 'm'
)

// Field is a named schema slot of a store. Hidden and Mandatory only instruct
// callers how to collect and display the value; the store itself never redacts
// values or enforces non-emptiness.
type Field struct {
	Name      string `json:"name"`
	Hidden    bool   `json:"hidden"`
	Mandatory bool   `json:"mandatory"`
}

// String returns the field name, marking hidden fields.
func (f Field) String() string {
	if f.Hidden {
		return f.Name + " (hidden)"
	}
	return f.Name
}

// ParseFieldSpec parses a field specification of the form "name[+attrs]",
// where attrs is drawn from {h, m} (hidden, mandatory). Unknown attribute
// characters are silently ignored; the permissiveness is part of the contract.
func ParseFieldSpec(spec string) Field {
	name, attrs, _ := strings.Cut(spec, "+")
	return Field{
		Name:      name,
		Hidden:    strings.ContainsRune(attrs, attrHidden),
		Mandatory: strings.ContainsRune(attrs, attrMandatory),
	}
}

// AddFields appends fields to the schema. There is no uniqueness check and no
// reordering; on duplicate names the first schema entry wins during lookups.
func (s *Store) AddFields(fields ...Field) {
	s.fields = append(s.fields, fields...)
}

// Fields returns the ordered schema.
func (s *Store) Fields() []Field {
	return s.fields
}

// FieldNames returns the ordered schema field names, used for display column
// order and for matching incoming secret data.
func (s *Store) FieldNames() []string {
	names := make([]string, 0, len(s.fields))
	for _, f := range s.fields {
		names = append(names, f.Name)
	}
	return names
}
