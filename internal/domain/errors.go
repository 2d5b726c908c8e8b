package domain

import "errors"

// ErrNotFound is returned by store and service functions when the requested
// trip, day, or item does not exist.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field, unknown expense category).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrImportFormat is returned by the importer when none of the parsers
// recognize the uploaded content. The import is all-or-nothing: nothing is
// persisted when this error is returned.
var ErrImportFormat = errors.New("unrecognized import format")

// ErrStoreWrite is returned by mutating service operations when persisting
// the trip collection fails. The in-memory mutation is kept — memory remains
// the source of truth for the rest of the session — so callers should surface
// "failed to save" rather than retry the mutation itself.
var ErrStoreWrite = errors.New("failed to save")

// ErrAssistantBusy is returned when a chat message arrives while a previous
// assistant request is still in flight. Only one request is allowed at a time.
// Handlers should map this to HTTP 429.
var ErrAssistantBusy = errors.New("assistant request already in flight")
