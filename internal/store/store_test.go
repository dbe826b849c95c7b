package store

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "test.sqlite"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func TestOpen_EnablesWAL(t *testing.T) {
	st := openTestStore(t)

	mode, err := st.journalMode()
	if err != nil {
		t.Fatalf("journalMode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q, want wal", mode)
	}
}

func TestOpen_PathWithSpecialCharacters(t *testing.T) {
	st, err := Open(filepath.Join(t.TempDir(), "odd name #1?.sqlite"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer st.Close()

	ctx := context.Background()
	if err := st.Put(ctx, "k", "v"); err != nil {
		t.Fatalf("Put: %v", err)
	}
}

func TestPutGet(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	if err := st.Put(ctx, KeySettings, `{"theme":"dark"}`); err != nil {
		t.Fatalf("Put: %v", err)
	}

	value, ok, err := st.Get(ctx, KeySettings)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatal("Get reported key missing")
	}
	if value != `{"theme":"dark"}` {
		t.Errorf("value = %q", value)
	}
}

func TestGet_Missing(t *testing.T) {
	st := openTestStore(t)

	_, ok, err := st.Get(context.Background(), KeyActiveGame)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Error("Get reported a missing key as present")
	}
}

func TestPut_Overwrites(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	if err := st.Put(ctx, KeyRoster, `["Alice"]`); err != nil {
		t.Fatal(err)
	}
	if err := st.Put(ctx, KeyRoster, `["Alice","Bob"]`); err != nil {
		t.Fatal(err)
	}

	value, _, err := st.Get(ctx, KeyRoster)
	if err != nil {
		t.Fatal(err)
	}
	if value != `["Alice","Bob"]` {
		t.Errorf("value = %q, want the second write", value)
	}
}

func TestDelete(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	if err := st.Put(ctx, KeyActiveGame, `{}`); err != nil {
		t.Fatal(err)
	}
	if err := st.Delete(ctx, KeyActiveGame); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	_, ok, err := st.Get(ctx, KeyActiveGame)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("key still present after Delete")
	}

	// Deleting again is a no-op.
	if err := st.Delete(ctx, KeyActiveGame); err != nil {
		t.Errorf("second Delete: %v", err)
	}
}

func TestKeys(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	for _, k := range []string{KeySettings, KeyActiveGame, KeyHistory} {
		if err := st.Put(ctx, k, "{}"); err != nil {
			t.Fatal(err)
		}
	}

	keys, err := st.Keys(ctx)
	if err != nil {
		t.Fatalf("Keys: %v", err)
	}
	want := []string{KeyActiveGame, KeyHistory, KeySettings}
	if !reflect.DeepEqual(keys, want) {
		t.Errorf("keys = %v, want %v", keys, want)
	}
}

func TestEmptyKeyRejected(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	if _, _, err := st.Get(ctx, ""); !errors.Is(err, ErrEmptyKey) {
		t.Errorf("Get: err = %v, want ErrEmptyKey", err)
	}
	if err := st.Put(ctx, "", "v"); !errors.Is(err, ErrEmptyKey) {
		t.Errorf("Put: err = %v, want ErrEmptyKey", err)
	}
	if err := st.Delete(ctx, ""); !errors.Is(err, ErrEmptyKey) {
		t.Errorf("Delete: err = %v, want ErrEmptyKey", err)
	}
}

func TestReopen_PersistsRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.sqlite")
	ctx := context.Background()

	st, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := st.Put(ctx, KeyHistory, `{"games":[]}`); err != nil {
		t.Fatal(err)
	}
	if err := st.Close(); err != nil {
		t.Fatal(err)
	}

	st2, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer st2.Close()

	value, ok, err := st2.Get(ctx, KeyHistory)
	if err != nil {
		t.Fatal(err)
	}
	if !ok || value != `{"games":[]}` {
		t.Errorf("value = %q, ok = %v after reopen", value, ok)
	}
}
