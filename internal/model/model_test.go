package model

import (
	"testing"
)

func TestNewGameState(t *testing.T) {
	g := NewGameState("Pixel 8")

	if g.ID == "" {
		t.Error("ID is empty")
	}
	if g.StartedAt == 0 {
		t.Error("StartedAt is zero")
	}
	if g.Device != "Pixel 8" {
		t.Errorf("Device = %q", g.Device)
	}
	if g.IsZero() {
		t.Error("new game reports IsZero")
	}
	if (GameState{}).IsZero() != true {
		t.Error("empty game does not report IsZero")
	}
}

func TestGameState_CloneIsDeep(t *testing.T) {
	g := GameState{
		ID:           "g-1",
		Players:      []Player{{ID: "p-1", Name: "Alice", Score: 10}},
		GlobalEvents: []GameEvent{{Kind: EventScore, PlayerName: "Alice", Delta: 5}},
	}

	c := g.Clone()
	c.Players[0].Score = 99
	c.GlobalEvents[0].Delta = 99

	if g.Players[0].Score != 10 {
		t.Error("Clone shares the players slice")
	}
	if g.GlobalEvents[0].Delta != 5 {
		t.Error("Clone shares the events slice")
	}
}

func TestGameState_RenamePlayer(t *testing.T) {
	g := GameState{
		ID: "g-1",
		Players: []Player{
			{ID: "p-1", Name: "Sasha"},
			{ID: "p-2", Name: "Bob"},
		},
		GlobalEvents: []GameEvent{
			{Kind: EventScore, PlayerName: "Sasha"},
			{Kind: EventScore, PlayerName: "Bob"},
			{Kind: EventStatusChange}, // no player name
		},
	}

	renamed := g.RenamePlayer("Sasha", "Alex")

	if renamed.Players[0].Name != "Alex" || renamed.Players[1].Name != "Bob" {
		t.Errorf("players = %+v", renamed.Players)
	}
	if renamed.GlobalEvents[0].PlayerName != "Alex" {
		t.Errorf("event name = %q", renamed.GlobalEvents[0].PlayerName)
	}
	if g.Players[0].Name != "Sasha" {
		t.Error("rename mutated the receiver")
	}
}

func TestGameHistory_Prepend(t *testing.T) {
	h := GameHistory{Games: []GameState{{ID: "g-1"}}}

	h2 := h.Prepend(GameState{ID: "g-2"})

	if len(h2.Games) != 2 || h2.Games[0].ID != "g-2" || h2.Games[1].ID != "g-1" {
		t.Errorf("games = %+v", h2.Games)
	}
	if len(h.Games) != 1 {
		t.Error("Prepend mutated the receiver")
	}
}

func TestGameHistory_Truncate(t *testing.T) {
	h := GameHistory{Games: []GameState{{ID: "a"}, {ID: "b"}, {ID: "c"}}}

	if got := h.Truncate(2); len(got.Games) != 2 || got.Games[0].ID != "a" {
		t.Errorf("Truncate(2) = %+v", got.Games)
	}
	if got := h.Truncate(5); len(got.Games) != 3 {
		t.Errorf("Truncate(5) = %+v", got.Games)
	}
	if got := h.Truncate(0); len(got.Games) != 0 {
		t.Errorf("Truncate(0) = %+v", got.Games)
	}
}

func TestGameHistory_Contains(t *testing.T) {
	h := GameHistory{Games: []GameState{{ID: "g-1"}}}

	if !h.Contains("g-1") {
		t.Error("Contains(g-1) = false")
	}
	if h.Contains("g-2") {
		t.Error("Contains(g-2) = true")
	}
}

func TestValidateSettings_Clamps(t *testing.T) {
	tests := []struct {
		name string
		in   AppSettings
		want AppSettings
	}{
		{
			name: "target score below minimum",
			in:   AppSettings{TargetScore: 0, MaxPlayers: 4, Theme: "dark"},
			want: AppSettings{SchemaVersion: 1, TargetScore: MinTargetScore, MaxPlayers: 4, Theme: "dark"},
		},
		{
			name: "target score above maximum",
			in:   AppSettings{TargetScore: 99999, MaxPlayers: 4, Theme: "dark"},
			want: AppSettings{SchemaVersion: 1, TargetScore: MaxTargetScore, MaxPlayers: 4, Theme: "dark"},
		},
		{
			name: "max players below minimum",
			in:   AppSettings{TargetScore: 100, MaxPlayers: 0, Theme: "dark"},
			want: AppSettings{SchemaVersion: 1, TargetScore: 100, MaxPlayers: MinPlayers, Theme: "dark"},
		},
		{
			name: "max players above cap",
			in:   AppSettings{TargetScore: 100, MaxPlayers: 100, Theme: "dark"},
			want: AppSettings{SchemaVersion: 1, TargetScore: 100, MaxPlayers: MaxPlayersCap, Theme: "dark"},
		},
		{
			name: "blank theme falls back",
			in:   AppSettings{TargetScore: 100, MaxPlayers: 4, Theme: "   "},
			want: AppSettings{SchemaVersion: 1, TargetScore: 100, MaxPlayers: 4, Theme: "system"},
		},
		{
			name: "valid settings pass through",
			in:   AppSettings{SchemaVersion: 7, SoundEnabled: true, TargetScore: 300, MaxPlayers: 6, Theme: "light"},
			want: AppSettings{SchemaVersion: 1, SoundEnabled: true, TargetScore: 300, MaxPlayers: 6, Theme: "light"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateSettings(tt.in); got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDefaultSettings_AreValid(t *testing.T) {
	d := DefaultSettings()
	if ValidateSettings(d) != d {
		t.Error("defaults are changed by validation")
	}
}
