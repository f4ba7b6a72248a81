package envconfig

import (
	"fmt"
	"strings"
)

// ErrorKind classifies what went wrong while loading or validating an
// environment configuration.
type ErrorKind string

const (
	// MissingVariant means the requested variant name is not present in
	// the document or registry.
	MissingVariant ErrorKind = "missing_variant"
	// MissingField means a required field was absent or empty.
	MissingField ErrorKind = "missing_field"
	// TypeMismatch means the document value could not be decoded into the
	// field's type.
	TypeMismatch ErrorKind = "type_mismatch"
	// RangeInvariantViolation means a numeric constraint was broken, e.g.
	// a low/high pair out of order or a negative mass.
	RangeInvariantViolation ErrorKind = "range_invariant_violation"
	// UnknownEnumValue means a value is not part of its declared
	// enumeration.
	UnknownEnumValue ErrorKind = "unknown_enum_value"
	// UnknownField means the document carries a key the schema does not
	// define. Rejected rather than ignored to catch drift between schema
	// and data.
	UnknownField ErrorKind = "unknown_field"
)

// FieldError describes one violation with enough context to fix the
// source document: the variant, the field path, and the offending value.
type FieldError struct {
	Kind    ErrorKind
	Variant string
	Field   string
	Value   interface{}
	Reason  string
}

func (e *FieldError) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Kind))
	if e.Variant != "" {
		fmt.Fprintf(&b, " [%s]", e.Variant)
	}
	if e.Field != "" {
		fmt.Fprintf(&b, " %s", e.Field)
	}
	if e.Value != nil {
		fmt.Fprintf(&b, " = %v", e.Value)
	}
	if e.Reason != "" {
		fmt.Fprintf(&b, ": %s", e.Reason)
	}
	return b.String()
}

// ValidationErrors aggregates every violation found in one pass so a
// document author can fix them all at once.
type ValidationErrors []*FieldError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, len(ve))
	for i, e := range ve {
		msgs[i] = e.Error()
	}
	return fmt.Sprintf("%d validation error(s):\n  %s", len(ve), strings.Join(msgs, "\n  "))
}

// OrNil returns the collected errors as an error, or nil when empty.
func (ve ValidationErrors) OrNil() error {
	if len(ve) == 0 {
		return nil
	}
	return ve
}

// HasKind reports whether any collected error is of the given kind.
func (ve ValidationErrors) HasKind(kind ErrorKind) bool {
	for _, e := range ve {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

// ByField returns the first error recorded for the given field path.
func (ve ValidationErrors) ByField(field string) *FieldError {
	for _, e := range ve {
		if e.Field == field {
			return e
		}
	}
	return nil
}
