package domain

import "errors"

// ErrNotFound is returned by repositories when a record does not exist.
// Repositories translate their driver-level not-found errors into this one
// so callers never depend on the storage layer directly.
var ErrNotFound = errors.New("record not found")
