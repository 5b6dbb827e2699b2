package services

import "errors"

var (
	// ErrValidation marks a rejected input; handlers map it to 400. Wrap it
	// with the field-specific message.
	ErrValidation = errors.New("validation failed")
	// ErrInvalidCredentials is returned on a failed password check.
	ErrInvalidCredentials = errors.New("email or password is incorrect")
	// ErrForbidden is returned when the caller is authenticated but not
	// allowed to act on the target record.
	ErrForbidden = errors.New("not authorized")
)
