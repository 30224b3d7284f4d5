package model

import "strings"

// FieldError reports an invalid or missing input field.  Handlers turn
// it into a 400 response; the profile view shows it next to the section.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string { return e.Field + " " + e.Reason }

func required(field string) error { return &FieldError{Field: field, Reason: "is required"} }

func isBlank(s string) bool { return strings.TrimSpace(s) == "" }
