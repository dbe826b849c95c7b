package share

import (
	"errors"
	"reflect"
	"testing"

	"github.com/pocketscore/pocketscore/internal/model"
)

func testShare() model.Share {
	return model.Share{
		SchemaVersion: SchemaVersion,
		SourceDevice:  "Pixel 8",
		Friends:       []string{"Alice", "Бо", "雪"},
		Games: []model.GameState{
			{
				ID: "g-1",
				Players: []model.Player{
					{ID: "p-1", Name: "Alice", Score: 42, Active: true},
					{ID: "p-2", Name: "Бо", Score: 17},
				},
				GlobalEvents: []model.GameEvent{
					{Kind: model.EventScore, PlayerName: "Alice", Delta: 5, PreviousScore: 37, NewScore: 42, Timestamp: 1700000000000},
					{Kind: model.EventStatusChange, Message: "rack reset", Timestamp: 1700000001000},
				},
				TurnPlayer: "p-2",
				Finalized:  true,
				StartedAt:  1699999000000,
				EndedAt:    1700000002000,
				Device:     "Pixel 8",
			},
		},
	}
}

func TestRoundTrip(t *testing.T) {
	original := testShare()

	data, err := Encode(original)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	decoded, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if !reflect.DeepEqual(decoded, original) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", decoded, original)
	}
}

func TestRoundTrip_EmptyLists(t *testing.T) {
	original := model.Share{
		SchemaVersion: SchemaVersion,
		SourceDevice:  "test",
		Friends:       []string{},
		Games:         []model.GameState{},
	}

	data, err := Encode(original)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	decoded, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !reflect.DeepEqual(decoded, original) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", decoded, original)
	}
}

func TestEncode_Stable(t *testing.T) {
	s := testShare()

	a, err := Encode(s)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	b, err := Encode(s)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if string(a) != string(b) {
		t.Error("encoding the same share twice produced different bytes")
	}
}

func TestDecode_UnknownFieldsIgnored(t *testing.T) {
	// Forward compatibility: newer writers may add fields.
	data := []byte(`{
		"schema_version": 1,
		"source_device": "future-phone",
		"friends": ["Alice"],
		"games": [],
		"some_future_field": {"nested": true}
	}`)

	s, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if s.SourceDevice != "future-phone" {
		t.Errorf("SourceDevice = %q, want %q", s.SourceDevice, "future-phone")
	}
	if len(s.Friends) != 1 || s.Friends[0] != "Alice" {
		t.Errorf("Friends = %v, want [Alice]", s.Friends)
	}
}

func TestDecode_MissingFieldsDefault(t *testing.T) {
	s, err := Decode([]byte(`{"source_device": "minimal"}`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if s.Friends != nil {
		t.Errorf("Friends = %v, want nil", s.Friends)
	}
	if s.Games != nil {
		t.Errorf("Games = %v, want nil", s.Games)
	}
}

func TestDecode_Malformed(t *testing.T) {
	_, err := Decode([]byte("not a share package{{{"))
	if err == nil {
		t.Fatal("expected error for malformed input")
	}
	if !errors.Is(err, ErrInvalidShare) {
		t.Errorf("error should wrap ErrInvalidShare, got %v", err)
	}
}
