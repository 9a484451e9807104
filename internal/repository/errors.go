package repository

import "errors"

// ErrNotFound is returned when a row lookup matches nothing. Callers
// distinguish entity kinds via the wrapping message.
var ErrNotFound = errors.New("not found")
