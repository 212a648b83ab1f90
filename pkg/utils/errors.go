package utils

import "errors"

// Sentinel errors shared between services and handlers. Services wrap these
// with fmt.Errorf("...: %w", ...), handlers match them with errors.Is.
var (
	// ErrInvalidID marks a malformed document identifier.
	ErrInvalidID = errors.New("id format not valid")

	// ErrNotFound marks a well-formed identifier with no matching document.
	ErrNotFound = errors.New("not found")

	// ErrMissingParameter marks an absent required request parameter.
	ErrMissingParameter = errors.New("missing required parameter")

	// ErrValidation marks a request body that failed schema validation.
	ErrValidation = errors.New("validation failed")
)
