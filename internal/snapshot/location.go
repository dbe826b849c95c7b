// Package snapshot implements redundant multi-location snapshot storage.
//
// A snapshot is a named blob mirrored across an ordered set of backup
// locations (internal storage, a user-linked folder, the app-private sync
// folder, and the public downloads folder). Writes fan out to every location
// best-effort; reads follow a fixed location-priority order, not the freshest
// timestamp.
package snapshot

import "time"

// Well-known location labels, in read-priority order.
const (
	LabelInternal  = "internal"
	LabelLinked    = "linked"
	LabelSync      = "sync"
	LabelDownloads = "downloads"
)

// Entry describes a stored snapshot at some location.
type Entry struct {
	Name    string
	ModTime time.Time
}

// Location is a single backup backend. Implementations are interchangeable
// strategies held in an ordered list by Store.
type Location interface {
	// Label identifies the location (e.g. "internal", "downloads").
	Label() string

	// Write stores blob under the given snapshot name, replacing any
	// previous blob with that name.
	Write(name string, blob []byte) error

	// List enumerates the snapshots present at this location.
	List() ([]Entry, error)

	// Read returns the blob stored under name, or ErrNotFound.
	Read(name string) ([]byte, error)

	// Delete removes the blob stored under name, or ErrNotFound.
	Delete(name string) error
}
