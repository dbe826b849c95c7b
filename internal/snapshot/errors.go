package snapshot

import "errors"

// Sentinel errors for the snapshot package.
var (
	// ErrNotFound is returned when no location holds the named snapshot.
	ErrNotFound = errors.New("snapshot not found")

	// ErrNoLocations is returned when a Store has no configured locations.
	ErrNoLocations = errors.New("no snapshot locations configured")

	// ErrUnknownLocation is returned when a location label is not configured.
	ErrUnknownLocation = errors.New("unknown snapshot location")
)
