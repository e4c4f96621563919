package billing

import "fmt"

// FieldValidationError reports a single invalid fee field. The Field name
// matches the JSON/form name so the presentation layer can attach the
// message to the right input.
type FieldValidationError struct {
	Field   string
	Message string
}

func (e *FieldValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// InvariantViolation reports a cross-field failure, such as a negative
// grand total. It is surfaced as a top-level error rather than against a
// single field.
type InvariantViolation struct {
	Message string
}

func (e *InvariantViolation) Error() string {
	return e.Message
}
