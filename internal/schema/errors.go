package schema

import "errors"

// FormKey holds errors that belong to the submission as a whole rather than
// to a single field.
const FormKey = "_form"

var (
	// ErrMalformedOutput means the model reply does not match the output schema.
	ErrMalformedOutput = errors.New("AI response did not match the expected format")

	// ErrEmptyResult means the reply is well formed but carries no usable advice.
	ErrEmptyResult = errors.New("AI returned an empty result")
)

// FieldErrors maps a field name to its human-readable violations.
type FieldErrors map[string][]string

// Add appends a message for field.
func (fe FieldErrors) Add(field, message string) {
	fe[field] = append(fe[field], message)
}

// Empty reports whether there are no violations at all.
func (fe FieldErrors) Empty() bool {
	return len(fe) == 0
}
