// Package model defines the PocketScore data model: players, game sessions,
// the event log, archived history, settings, and the portable share package.
//
// All types are plain values serialized as JSON. Mutating operations return
// evolved copies; persisted records are always written back whole.
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// History caps. Organic growth is bounded at HistoryCap; a merge may
// temporarily hold up to MergeHistoryCap entries until the next archival
// re-applies the lower cap.
const (
	HistoryCap      = 50
	MergeHistoryCap = 100
)

// EventKind classifies a GameEvent.
type EventKind string

const (
	EventScore        EventKind = "SCORE"
	EventUndo         EventKind = "UNDO"
	EventCorrection   EventKind = "CORRECTION"
	EventStatusChange EventKind = "STATUS_CHANGE"
)

// Player is a participant in a game session.
type Player struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Score  int    `json:"score"`
	Active bool   `json:"active"`
}

// GameEvent is an immutable log entry. Events are append-only per game and
// never mutated after creation, only filtered for display.
// Timestamps are Unix milliseconds.
type GameEvent struct {
	Kind          EventKind `json:"kind"`
	PlayerName    string    `json:"player_name,omitempty"`
	Delta         int       `json:"delta,omitempty"`
	PreviousScore int       `json:"previous_score,omitempty"`
	NewScore      int       `json:"new_score,omitempty"`
	Message       string    `json:"message,omitempty"`
	Timestamp     int64     `json:"timestamp"`
}

// GameState is a single scoring session.
type GameState struct {
	ID           string      `json:"id"`
	Players      []Player    `json:"players"`
	GlobalEvents []GameEvent `json:"global_events"`
	// TurnPlayer holds the id of the player whose turn it is.
	TurnPlayer string `json:"turn_player,omitempty"`
	Finalized  bool   `json:"finalized"`
	// Guest marks a throwaway session that is not archived unless the
	// save-guest-games setting or an explicit override allows it.
	Guest     bool   `json:"guest"`
	StartedAt int64  `json:"started_at"`
	EndedAt   int64  `json:"ended_at,omitempty"`
	Device    string `json:"device,omitempty"`
}

// NewGameState creates an empty session tagged with the originating device.
func NewGameState(device string) GameState {
	return GameState{
		ID:        uuid.NewString(),
		StartedAt: time.Now().UnixMilli(),
		Device:    device,
	}
}

// IsZero reports whether no session is present.
func (g GameState) IsZero() bool {
	return g.ID == ""
}

// Clone returns a deep copy of the game state.
func (g GameState) Clone() GameState {
	out := g
	if g.Players != nil {
		out.Players = make([]Player, len(g.Players))
		copy(out.Players, g.Players)
	}
	if g.GlobalEvents != nil {
		out.GlobalEvents = make([]GameEvent, len(g.GlobalEvents))
		copy(out.GlobalEvents, g.GlobalEvents)
	}
	return out
}

// RenamePlayer returns a copy with every exact occurrence of oldName replaced
// by newName, in both the player list and the event log.
func (g GameState) RenamePlayer(oldName, newName string) GameState {
	out := g.Clone()
	for i := range out.Players {
		if out.Players[i].Name == oldName {
			out.Players[i].Name = newName
		}
	}
	for i := range out.GlobalEvents {
		if out.GlobalEvents[i].PlayerName == oldName {
			out.GlobalEvents[i].PlayerName = newName
		}
	}
	return out
}

// GameHistory is a bounded, most-recent-first list of archived sessions.
type GameHistory struct {
	Games []GameState `json:"games"`
}

// Contains reports whether a game with the given id is present.
func (h GameHistory) Contains(id string) bool {
	for _, g := range h.Games {
		if g.ID == id {
			return true
		}
	}
	return false
}

// Prepend returns a copy with g inserted at the front.
func (h GameHistory) Prepend(g GameState) GameHistory {
	games := make([]GameState, 0, len(h.Games)+1)
	games = append(games, g)
	games = append(games, h.Games...)
	return GameHistory{Games: games}
}

// Truncate returns a copy bounded to at most n entries (front-biased).
func (h GameHistory) Truncate(n int) GameHistory {
	if n < 0 || len(h.Games) <= n {
		return h
	}
	games := make([]GameState, n)
	copy(games, h.Games[:n])
	return GameHistory{Games: games}
}

// RenamePlayer returns a copy with the rename applied to every entry.
func (h GameHistory) RenamePlayer(oldName, newName string) GameHistory {
	games := make([]GameState, len(h.Games))
	for i, g := range h.Games {
		games[i] = g.RenamePlayer(oldName, newName)
	}
	return GameHistory{Games: games}
}

// Share is the portable data package used for snapshots and explicit
// export/import. It is never the system of record itself.
type Share struct {
	SchemaVersion int         `json:"schema_version"`
	SourceDevice  string      `json:"source_device"`
	Friends       []string    `json:"friends"`
	Games         []GameState `json:"games"`
}

// AppSettings is the single long-lived configuration record. It is read and
// written as a whole; callers pass it through ValidateSettings before
// persisting.
type AppSettings struct {
	SchemaVersion  int    `json:"schema_version"`
	SaveGuestGames bool   `json:"save_guest_games"`
	SoundEnabled   bool   `json:"sound_enabled"`
	KeepScreenOn   bool   `json:"keep_screen_on"`
	TargetScore    int    `json:"target_score"`
	MaxPlayers     int    `json:"max_players"`
	Theme          string `json:"theme"`
}

// Settings clamp bounds.
const (
	MinTargetScore = 1
	MaxTargetScore = 10000
	MinPlayers     = 2
	MaxPlayersCap  = 16
)

// DefaultSettings returns settings with sensible defaults.
func DefaultSettings() AppSettings {
	return AppSettings{
		SchemaVersion:  1,
		SaveGuestGames: false,
		SoundEnabled:   true,
		KeepScreenOn:   true,
		TargetScore:    100,
		MaxPlayers:     8,
		Theme:          "system",
	}
}

// ValidateSettings normalizes a settings record. Invalid values are clamped
// into their allowed ranges rather than rejected; there is no user-visible
// validation error surface.
func ValidateSettings(s AppSettings) AppSettings {
	defaults := DefaultSettings()

	s.SchemaVersion = defaults.SchemaVersion

	if s.TargetScore < MinTargetScore {
		s.TargetScore = MinTargetScore
	} else if s.TargetScore > MaxTargetScore {
		s.TargetScore = MaxTargetScore
	}

	if s.MaxPlayers < MinPlayers {
		s.MaxPlayers = MinPlayers
	} else if s.MaxPlayers > MaxPlayersCap {
		s.MaxPlayers = MaxPlayersCap
	}

	if strings.TrimSpace(s.Theme) == "" {
		s.Theme = defaults.Theme
	}

	return s
}
