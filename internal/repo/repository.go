// Package repo exposes the application's primary read/write surface: the
// active game, the archived history, and settings as reactive streams, plus
// the imperative operations around them (archive, merge, rename, snapshot
// lifecycle).
//
// The persisted key-value store serializes writes per key; read-modify-write
// sequences that span keys (archive, merge, rename) are serialized behind a
// repository mutex and re-read the latest value immediately before writing to
// minimize lost-update windows. There is no transactional isolation across
// keys, only atomicity of each individual key's write.
package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/pocketscore/pocketscore/internal/merge"
	"github.com/pocketscore/pocketscore/internal/model"
	"github.com/pocketscore/pocketscore/internal/share"
	"github.com/pocketscore/pocketscore/internal/snapshot"
	"github.com/pocketscore/pocketscore/internal/store"
)

// autoSnapshotPrefix names daily automatic snapshots.
const autoSnapshotPrefix = "Auto-Snapshot "

// autoSnapshotDateFormat is a date-only format: the auto snapshot is
// idempotent per calendar day, not per timestamp.
const autoSnapshotDateFormat = "2006-01-02"

// Repository orchestrates the record store, the snapshot store, and the
// merge engine.
type Repository struct {
	store  *store.Store
	snaps  *snapshot.Store
	logger *slog.Logger
	now    func() time.Time
	device string

	// mu serializes multi-key read-modify-write sequences.
	mu sync.Mutex

	active   *Stream[model.GameState]
	history  *Stream[model.GameHistory]
	settings *Stream[model.AppSettings]
}

// Option configures a Repository.
type Option func(*Repository)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Repository) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithClock sets the time source (for testing).
func WithClock(now func() time.Time) Option {
	return func(r *Repository) {
		if now != nil {
			r.now = now
		}
	}
}

// WithDevice sets the device label stamped on exported share packages.
func WithDevice(device string) Option {
	return func(r *Repository) {
		r.device = device
	}
}

// New creates a Repository and loads the three top-level records. A record
// that fails to decode falls back to its empty value with a logged warning
// rather than failing startup.
func New(ctx context.Context, st *store.Store, snaps *snapshot.Store, opts ...Option) (*Repository, error) {
	r := &Repository{
		store:  st,
		snaps:  snaps,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}

	var active model.GameState
	if err := r.loadRecord(ctx, store.KeyActiveGame, &active); err != nil {
		return nil, err
	}

	var history model.GameHistory
	if err := r.loadRecord(ctx, store.KeyHistory, &history); err != nil {
		return nil, err
	}

	settings := model.DefaultSettings()
	found, err := r.loadRecordFound(ctx, store.KeySettings, &settings)
	if err != nil {
		return nil, err
	}
	if !found {
		settings = model.DefaultSettings()
	}
	settings = model.ValidateSettings(settings)

	r.active = newStream("active_game", active, r.logger)
	r.history = newStream("game_history", history, r.logger)
	r.settings = newStream("settings", settings, r.logger)

	return r, nil
}

// ActiveGame returns the active game stream.
func (r *Repository) ActiveGame() *Stream[model.GameState] { return r.active }

// History returns the game history stream.
func (r *Repository) History() *Stream[model.GameHistory] { return r.history }

// Settings returns the settings stream.
func (r *Repository) Settings() *Stream[model.AppSettings] { return r.settings }

// loadRecord decodes the record under key into v. Missing records and decode
// failures leave v untouched; decode failures are logged, never propagated,
// so a corrupted record resets to empty instead of blocking startup.
func (r *Repository) loadRecord(ctx context.Context, key string, v any) error {
	_, err := r.loadRecordFound(ctx, key, v)
	return err
}

func (r *Repository) loadRecordFound(ctx context.Context, key string, v any) (bool, error) {
	raw, ok, err := r.store.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("load %s: %w", key, err)
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		r.logger.Warn("record corrupt, falling back to empty value",
			"key", key,
			"error", err,
		)
		return false, nil
	}
	return true, nil
}

// putRecord persists v under key as JSON.
func (r *Repository) putRecord(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := r.store.Put(ctx, key, string(raw)); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// --- Active game ---

// SaveActiveGame persists the active game and publishes it.
func (r *Repository) SaveActiveGame(ctx context.Context, g model.GameState) error {
	if err := r.putRecord(ctx, store.KeyActiveGame, g); err != nil {
		return err
	}
	r.active.publish(g)
	return nil
}

// ClearActiveGame removes the active game record.
func (r *Repository) ClearActiveGame(ctx context.Context) error {
	if err := r.store.Delete(ctx, store.KeyActiveGame); err != nil {
		return fmt.Errorf("clear active game: %w", err)
	}
	r.active.publish(model.GameState{})
	return nil
}

// ArchiveActiveGame finalizes the active game and prepends it to history,
// then clears the active record.
//
// Guest policy: a guest session is not archived unless the save-guest-games
// setting allows it or force is true; the session still ends and the active
// record is cleared.
func (r *Repository) ArchiveActiveGame(ctx context.Context, force bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	g := r.active.Current()
	if g.IsZero() {
		return ErrNoActiveGame
	}

	settings := r.settings.Current()
	if g.Guest && !settings.SaveGuestGames && !force {
		r.logger.Info("guest session not archived", "game_id", g.ID)
		return r.ClearActiveGame(ctx)
	}

	g = g.Clone()
	g.Finalized = true
	g.EndedAt = r.now().UnixMilli()

	var history model.GameHistory
	if err := r.loadRecord(ctx, store.KeyHistory, &history); err != nil {
		return err
	}
	history = history.Prepend(g).Truncate(model.HistoryCap)
	if err := r.putRecord(ctx, store.KeyHistory, history); err != nil {
		return err
	}
	r.history.publish(history)

	// Player names from an archived game join the saved roster.
	names := make([]string, 0, len(g.Players))
	for _, p := range g.Players {
		if p.Name != "" {
			names = append(names, p.Name)
		}
	}
	if len(names) > 0 {
		if err := r.mergeRosterLocked(ctx, names); err != nil {
			return err
		}
	}

	return r.ClearActiveGame(ctx)
}

// --- History ---

// DeleteHistoryEntry removes the history entry with the given id.
func (r *Repository) DeleteHistoryEntry(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var history model.GameHistory
	if err := r.loadRecord(ctx, store.KeyHistory, &history); err != nil {
		return err
	}

	games := make([]model.GameState, 0, len(history.Games))
	found := false
	for _, g := range history.Games {
		if g.ID == id {
			found = true
			continue
		}
		games = append(games, g)
	}
	if !found {
		return ErrGameNotFound
	}

	history = model.GameHistory{Games: games}
	if err := r.putRecord(ctx, store.KeyHistory, history); err != nil {
		return err
	}
	r.history.publish(history)
	return nil
}

// UpdateHistoryEntry replaces the history entry with the same id as g.
func (r *Repository) UpdateHistoryEntry(ctx context.Context, g model.GameState) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var history model.GameHistory
	if err := r.loadRecord(ctx, store.KeyHistory, &history); err != nil {
		return err
	}

	found := false
	games := make([]model.GameState, len(history.Games))
	for i, existing := range history.Games {
		if existing.ID == g.ID {
			games[i] = g
			found = true
		} else {
			games[i] = existing
		}
	}
	if !found {
		return ErrGameNotFound
	}

	history = model.GameHistory{Games: games}
	if err := r.putRecord(ctx, store.KeyHistory, history); err != nil {
		return err
	}
	r.history.publish(history)
	return nil
}

// --- Settings ---

// UpdateSettings validates, persists, and publishes the settings record.
// Invalid values are clamped, not rejected.
func (r *Repository) UpdateSettings(ctx context.Context, s model.AppSettings) error {
	s = model.ValidateSettings(s)
	if err := r.putRecord(ctx, store.KeySettings, s); err != nil {
		return err
	}
	r.settings.publish(s)
	return nil
}

// --- Roster ---

// Roster returns the saved player roster.
func (r *Repository) Roster(ctx context.Context) ([]string, error) {
	var roster []string
	if err := r.loadRecord(ctx, store.KeyRoster, &roster); err != nil {
		return nil, err
	}
	return roster, nil
}

// mergeRosterLocked folds names into the saved roster. Caller holds r.mu.
func (r *Repository) mergeRosterLocked(ctx context.Context, names []string) error {
	var roster []string
	if err := r.loadRecord(ctx, store.KeyRoster, &roster); err != nil {
		return err
	}
	merged := merge.Names(roster, names)
	if len(merged) == len(roster) {
		return nil
	}
	return r.putRecord(ctx, store.KeyRoster, merged)
}

// --- Share export / import ---

// ExportShare builds a share package from the roster and history. With no
// ids, all archived games are included; otherwise the package is scoped to
// the given game ids.
func (r *Repository) ExportShare(ctx context.Context, ids ...string) (model.Share, error) {
	roster, err := r.Roster(ctx)
	if err != nil {
		return model.Share{}, err
	}

	history := r.history.Current()
	games := history.Games
	if len(ids) > 0 {
		want := make(map[string]struct{}, len(ids))
		for _, id := range ids {
			want[id] = struct{}{}
		}
		games = nil
		for _, g := range history.Games {
			if _, ok := want[g.ID]; ok {
				games = append(games, g)
			}
		}
	}

	return model.Share{
		SchemaVersion: share.SchemaVersion,
		SourceDevice:  r.device,
		Friends:       roster,
		Games:         games,
	}, nil
}

// MergeShare folds an imported share package into local state, applying the
// imported-name to local-name mapping before dedup.
func (r *Repository) MergeShare(ctx context.Context, imported model.Share, mapping map[string]string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var history model.GameHistory
	if err := r.loadRecord(ctx, store.KeyHistory, &history); err != nil {
		return err
	}
	var roster []string
	if err := r.loadRecord(ctx, store.KeyRoster, &roster); err != nil {
		return err
	}

	mergedHistory, mergedRoster := merge.Merge(history, roster, imported, mapping)

	if err := r.putRecord(ctx, store.KeyHistory, mergedHistory); err != nil {
		return err
	}
	if err := r.putRecord(ctx, store.KeyRoster, mergedRoster); err != nil {
		return err
	}
	r.history.publish(mergedHistory)
	return nil
}

// --- Rename ---

// RenamePlayer renames a player across the saved roster, every historical
// game, and the active game if one exists. A blank or unchanged new name is a
// no-op. Renaming onto a name already in the roster merges the two identities:
// the roster keeps a single entry and history records both players under the
// surviving name. The three records are written back-to-back from freshly read
// values; per-key writes are atomic but there is no cross-key transaction.
func (r *Repository) RenamePlayer(ctx context.Context, oldName, newName string) error {
	newName = strings.TrimSpace(newName)
	if newName == "" || newName == oldName {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var roster []string
	if err := r.loadRecord(ctx, store.KeyRoster, &roster); err != nil {
		return err
	}
	for i, name := range roster {
		if name == oldName {
			roster[i] = newName
		}
	}
	roster = merge.Names(nil, roster)
	if err := r.putRecord(ctx, store.KeyRoster, roster); err != nil {
		return err
	}

	var history model.GameHistory
	if err := r.loadRecord(ctx, store.KeyHistory, &history); err != nil {
		return err
	}
	history = history.RenamePlayer(oldName, newName)
	if err := r.putRecord(ctx, store.KeyHistory, history); err != nil {
		return err
	}
	r.history.publish(history)

	if active := r.active.Current(); !active.IsZero() {
		active = active.RenamePlayer(oldName, newName)
		if err := r.putRecord(ctx, store.KeyActiveGame, active); err != nil {
			return err
		}
		r.active.publish(active)
	}

	return nil
}

// --- Snapshot lifecycle ---

// CreateSnapshot writes a full backup (roster + history) under name to every
// snapshot location.
func (r *Repository) CreateSnapshot(ctx context.Context, name string) error {
	pkg, err := r.ExportShare(ctx)
	if err != nil {
		return err
	}
	blob, err := share.Encode(pkg)
	if err != nil {
		return err
	}
	if err := r.snaps.Write(name, blob); err != nil {
		return fmt.Errorf("write snapshot %q: %w", name, err)
	}
	r.logger.Info("snapshot created", "name", name, "games", len(pkg.Games))
	return nil
}

// ListSnapshots returns all known snapshots across locations, newest first.
func (r *Repository) ListSnapshots() []snapshot.Entry {
	return r.snaps.List()
}

// RawSnapshot returns the raw bytes of the named snapshot.
func (r *Repository) RawSnapshot(name string) ([]byte, error) {
	return r.snaps.Read(name)
}

// RestoreSnapshot merges the named snapshot back into local state. Restore is
// additive: games recorded after the snapshot survive, and snapshot games
// already present are deduplicated by id.
func (r *Repository) RestoreSnapshot(ctx context.Context, name string) error {
	blob, err := r.snaps.Read(name)
	if err != nil {
		return err
	}
	pkg, err := share.Decode(blob)
	if err != nil {
		return fmt.Errorf("restore snapshot %q: %w", name, err)
	}
	return r.MergeShare(ctx, pkg, nil)
}

// DeleteSnapshot removes the named snapshot from every location.
func (r *Repository) DeleteSnapshot(name string) error {
	return r.snaps.Delete(name)
}

// ExportSnapshot re-publishes the named snapshot to the public downloads
// location.
func (r *Repository) ExportSnapshot(name string) error {
	return r.snaps.Export(name, snapshot.LabelDownloads)
}

// AutoSnapshot creates the daily automatic snapshot. It is idempotent per
// calendar day: the second call on the same date is a no-op.
func (r *Repository) AutoSnapshot(ctx context.Context) error {
	day := r.now().UTC().Format(autoSnapshotDateFormat)

	last, ok, err := r.store.Get(ctx, store.KeyLastAutoSnapshot)
	if err != nil {
		return fmt.Errorf("load auto-snapshot marker: %w", err)
	}
	if ok && last == day {
		r.logger.Debug("auto snapshot already taken", "date", day)
		return nil
	}

	if err := r.CreateSnapshot(ctx, autoSnapshotPrefix+day); err != nil {
		return err
	}
	if err := r.store.Put(ctx, store.KeyLastAutoSnapshot, day); err != nil {
		return fmt.Errorf("save auto-snapshot marker: %w", err)
	}
	return nil
}
