package store

import "errors"

// ErrNotFound is returned by Get when no record has the requested id.
var ErrNotFound = errors.New("record not found")
