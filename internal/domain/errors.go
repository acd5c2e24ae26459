package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing destination, non-positive days).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrNotInitialized is returned when a trip actor is asked to read or run a
// chat turn before init has ever persisted a definition for it. A chat turn
// hitting this means the caller holds an identifier whose actor has no state,
// which is a data-integrity fault rather than bad input.
// Handlers should map this to HTTP 404.
var ErrNotInitialized = errors.New("trip not initialized")

// ErrGeneration is returned when the text-generation backend fails or
// produces an empty reply. The flows never retry; handlers should map this
// to HTTP 502.
var ErrGeneration = errors.New("generation error")
