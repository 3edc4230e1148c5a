package services

import "errors"

// ValidationError marks rejected input. Handlers translate it into an HTTP
// 400 response.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

func invalid(msg string) error { return &ValidationError{msg: msg} }

// IsValidation reports whether err originated from input validation
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
