package model

// ValidationError is returned when local input is malformed, such as a
// story record missing a required field or an empty submission draft.
// It carries the offending field name so callers can point the user at
// exactly what is wrong.
//
// Design decision: We use a typed error rather than a package-level
// sentinel because the field name is dynamic. Callers that only care
// about the kind can still match with errors.As.
type ValidationError struct {
	// Field is the name of the missing or invalid field.
	Field string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return "validation failed: missing or empty field " + e.Field
}
