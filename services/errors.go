package services

import "errors"

// Closed error set for the attendance core. Controllers map these to HTTP
// responses; nothing else crosses the boundary.
var (
	ErrTeacherNotFound = errors.New("teacher profile not found")
	ErrStudentNotFound = errors.New("student profile not found")

	// ErrStudentOutOfScope covers both a missing student and one enrolled
	// under another subject. Callers must answer it exactly like a true
	// absence so existence under other subjects never leaks.
	ErrStudentOutOfScope = errors.New("student not found or not in your subject")

	ErrEmailTaken   = errors.New("student with this email already exists")
	ErrRollNumTaken = errors.New("student with this roll number already exists")
	ErrUserExists   = errors.New("user with this email already exists")
)

// ValidationError rejects a request before any database interaction.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func newValidationError(msg string) error {
	return &ValidationError{Msg: msg}
}

// IsValidation reports whether err is a pre-database validation rejection.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNotFound reports whether err is a profile/scope resolution failure that
// should surface as a 404-shaped response.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrTeacherNotFound) ||
		errors.Is(err, ErrStudentNotFound) ||
		errors.Is(err, ErrStudentOutOfScope)
}
