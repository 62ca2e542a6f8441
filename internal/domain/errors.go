package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// visit does not exist, or when a checkout targets a visit that is no longer
// active. Handlers map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field, malformed email, unknown
// status filter). Handlers map this to HTTP 400 Bad Request.
var ErrValidation = errors.New("validation error")
