package form

import "errors"

var (
	// ErrValidationFailed signals the submit gate stayed closed; the field
	// messages are available on the controller for the next render.
	ErrValidationFailed = errors.New("form: validation failed")
)
