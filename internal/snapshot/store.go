package snapshot

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
)

// Store fans snapshot operations out across an ordered list of locations.
// The first location is the primary (internal storage): a write only fails
// when the primary fails, and reads try locations strictly in list order.
//
// Reads deliberately do NOT prefer the freshest copy: a stale primary copy
// shadows a newer mirror. List, by contrast, reports the maximum observed
// timestamp per name, which is used purely for display and sorting.
type Store struct {
	locations []Location
	logger    *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger for the Store.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a snapshot store over locations, ordered by read priority.
func New(locations []Location, opts ...Option) *Store {
	s := &Store{
		locations: locations,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Write stores blob under name at every location. Mirror failures are logged
// and swallowed; only a primary-location failure is reported, so a snapshot
// attempt is never lost wholesale because one of the mirrors was unwritable.
func (s *Store) Write(name string, blob []byte) error {
	if len(s.locations) == 0 {
		return ErrNoLocations
	}

	var primaryErr error
	for i, loc := range s.locations {
		err := loc.Write(name, blob)
		if err == nil {
			continue
		}
		if i == 0 {
			primaryErr = err
			continue
		}
		s.logger.Warn("snapshot mirror write failed",
			"location", loc.Label(),
			"name", name,
			"error", err,
		)
	}
	if primaryErr != nil {
		return fmt.Errorf("primary location: %w", primaryErr)
	}
	return nil
}

// List merges distinct snapshot names across all locations, keeping the
// maximum observed timestamp for each name. Results are sorted newest first.
// Per-location failures are logged, not escalated.
func (s *Store) List() []Entry {
	byName := make(map[string]Entry)
	for _, loc := range s.locations {
		entries, err := loc.List()
		if err != nil {
			s.logger.Warn("snapshot list failed",
				"location", loc.Label(),
				"error", err,
			)
			continue
		}
		for _, e := range entries {
			if cur, ok := byName[e.Name]; !ok || e.ModTime.After(cur.ModTime) {
				byName[e.Name] = e
			}
		}
	}

	merged := make([]Entry, 0, len(byName))
	for _, e := range byName {
		merged = append(merged, e)
	}
	sort.Slice(merged, func(i, j int) bool {
		if !merged[i].ModTime.Equal(merged[j].ModTime) {
			return merged[i].ModTime.After(merged[j].ModTime)
		}
		return merged[i].Name < merged[j].Name
	})
	return merged
}

// Read returns the named snapshot from the first location that has it,
// walking locations in priority order. Location errors other than not-found
// are logged and the walk continues. Returns ErrNotFound when every location
// has been exhausted.
func (s *Store) Read(name string) ([]byte, error) {
	for _, loc := range s.locations {
		blob, err := loc.Read(name)
		if err == nil {
			return blob, nil
		}
		if !errors.Is(err, ErrNotFound) {
			s.logger.Warn("snapshot read failed",
				"location", loc.Label(),
				"name", name,
				"error", err,
			)
		}
	}
	return nil, ErrNotFound
}

// Delete removes the named snapshot from every location it can be found in.
// Per-location failures are logged, not escalated. Returns ErrNotFound when
// no location had the snapshot.
func (s *Store) Delete(name string) error {
	found := false
	for _, loc := range s.locations {
		err := loc.Delete(name)
		if err == nil {
			found = true
			continue
		}
		if !errors.Is(err, ErrNotFound) {
			s.logger.Warn("snapshot delete failed",
				"location", loc.Label(),
				"name", name,
				"error", err,
			)
		}
	}
	if !found {
		return ErrNotFound
	}
	return nil
}

// Export re-publishes the named snapshot to the location with the given
// label, reading it by the usual priority order first.
func (s *Store) Export(name, label string) error {
	blob, err := s.Read(name)
	if err != nil {
		return err
	}
	for _, loc := range s.locations {
		if loc.Label() == label {
			return loc.Write(name, blob)
		}
	}
	return fmt.Errorf("%w: %s", ErrUnknownLocation, label)
}
