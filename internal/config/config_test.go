package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigFrom_NotExist(t *testing.T) {
	cfg, err := LoadConfigFrom(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("LoadConfigFrom: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
}

func TestLoadConfigFrom_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfigFrom(path)
	if err != nil {
		t.Fatalf("LoadConfigFrom: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
}

func TestLoadConfigFrom_SchemaVersionMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	data := `{"schema_version": 99, "linked_folder": "/mnt/backup"}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfigFrom(path)
	if err != nil {
		t.Fatalf("LoadConfigFrom: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("cfg = %+v, want defaults on version mismatch", cfg)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	want := Config{
		SchemaVersion:       CurrentSchemaVersion,
		LinkedFolder:        "/mnt/backup",
		DownloadsDir:        "/home/user/Downloads",
		DeviceLabel:         "kitchen-tablet",
		AutoSnapshotEnabled: false,
		WatchLinkedFolder:   true,
	}
	if err := SaveConfigTo(want, path); err != nil {
		t.Fatalf("SaveConfigTo: %v", err)
	}

	got, err := LoadConfigFrom(path)
	if err != nil {
		t.Fatalf("LoadConfigFrom: %v", err)
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestLoadConfigFrom_TrimsWhitespace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	data := `{"schema_version": 1, "linked_folder": "  /mnt/backup  ", "device_label": " tab "}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfigFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.LinkedFolder != "/mnt/backup" {
		t.Errorf("LinkedFolder = %q", cfg.LinkedFolder)
	}
	if cfg.DeviceLabel != "tab" {
		t.Errorf("DeviceLabel = %q", cfg.DeviceLabel)
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv(EnvLinkedFolder, "/env/backup")
	t.Setenv(EnvDevice, "env-device")
	t.Setenv(EnvAutoSnapshot, "off")
	t.Setenv(EnvWatchLinked, "yes")

	cfg := ApplyEnvOverrides(DefaultConfig())

	if cfg.LinkedFolder != "/env/backup" {
		t.Errorf("LinkedFolder = %q", cfg.LinkedFolder)
	}
	if cfg.DeviceLabel != "env-device" {
		t.Errorf("DeviceLabel = %q", cfg.DeviceLabel)
	}
	if cfg.AutoSnapshotEnabled {
		t.Error("AutoSnapshotEnabled should be overridden to false")
	}
	if !cfg.WatchLinkedFolder {
		t.Error("WatchLinkedFolder should be overridden to true")
	}
}

func TestApplyEnvOverrides_UnsetLeavesValues(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LinkedFolder = "/from/file"

	got := ApplyEnvOverrides(cfg)
	if got.LinkedFolder != "/from/file" {
		t.Errorf("LinkedFolder = %q, want the file value", got.LinkedFolder)
	}
}

func TestParseBool(t *testing.T) {
	truthy := []string{"true", "TRUE", "1", "yes", "Yes", "on", " on "}
	for _, s := range truthy {
		if !parseBool(s) {
			t.Errorf("parseBool(%q) = false, want true", s)
		}
	}
	falsy := []string{"false", "0", "no", "off", "", "banana"}
	for _, s := range falsy {
		if parseBool(s) {
			t.Errorf("parseBool(%q) = true, want false", s)
		}
	}
}
