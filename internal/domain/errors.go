package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// record does not exist for its kind.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned when input fails a presence check (empty name,
// missing latitude/longitude, empty search query).
// Handlers should map this to HTTP 400.
var ErrValidation = errors.New("validation error")

// ErrUpstream is returned by the geocoding client when the third-party
// lookup service cannot be reached, times out, or answers with a
// non-success status. No retry is attempted; the caller decides.
var ErrUpstream = errors.New("upstream error")

// ErrParse is returned by the geocoding client when the upstream response
// body is not well-formed JSON.
var ErrParse = errors.New("parse error")
