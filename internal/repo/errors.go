package repo

import "errors"

// Sentinel errors for the repo package.
var (
	// ErrNoActiveGame is returned when an operation requires an active
	// session and none is present.
	ErrNoActiveGame = errors.New("no active game")

	// ErrGameNotFound is returned when a history entry id does not exist.
	ErrGameNotFound = errors.New("game not found")
)
