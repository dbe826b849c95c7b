package store

import "errors"

// Sentinel errors for the store package.
var (
	// ErrEmptyKey is returned when a record key is empty.
	ErrEmptyKey = errors.New("empty record key")
)
