package services

import "errors"

// ErrNotFound marks pipeline stages that produced an empty result. Callers
// wrap it with a stage-specific message; the API layer resolves it to 404.
var ErrNotFound = errors.New("not found")
