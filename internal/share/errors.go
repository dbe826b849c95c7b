package share

import "errors"

// Sentinel errors for the share package.
var (
	// ErrInvalidShare is returned when a package cannot be decoded.
	ErrInvalidShare = errors.New("invalid share package")
)
