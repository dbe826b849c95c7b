// Package config provides process configuration for PocketScore: storage
// paths, the linked backup folder, and snapshot toggles.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"log"
	"os"
	"strings"

	"github.com/pocketscore/pocketscore/internal/fsatomic"
)

// CurrentSchemaVersion is the current config schema version.
const CurrentSchemaVersion = 1

// Environment variable names for config overrides.
// Priority: Environment > Config File > Default
const (
	EnvLinkedFolder = "POCKETSCORE_LINKED_FOLDER"
	EnvDownloadsDir = "POCKETSCORE_DOWNLOADS_DIR"
	EnvDevice       = "POCKETSCORE_DEVICE"
	EnvAutoSnapshot = "POCKETSCORE_AUTO_SNAPSHOT"
	EnvWatchLinked  = "POCKETSCORE_WATCH_LINKED"
)

// Config holds non-sensitive application configuration.
type Config struct {
	SchemaVersion int `json:"schema_version"`

	// LinkedFolder is the user-linked external backup folder. Empty means
	// no folder is linked and the location is skipped.
	LinkedFolder string `json:"linked_folder"`

	// DownloadsDir overrides the public downloads folder. Empty means
	// auto-detect.
	DownloadsDir string `json:"downloads_dir"`

	// DeviceLabel tags exported share packages. Empty means use the
	// hostname.
	DeviceLabel string `json:"device_label"`

	AutoSnapshotEnabled bool `json:"auto_snapshot_enabled"`
	WatchLinkedFolder   bool `json:"watch_linked_folder"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		SchemaVersion:       CurrentSchemaVersion,
		LinkedFolder:        "",
		DownloadsDir:        "", // auto-detect
		DeviceLabel:         "", // hostname
		AutoSnapshotEnabled: true,
		WatchLinkedFolder:   false,
	}
}

// LoadConfig reads config from disk. If the file doesn't exist or is corrupt,
// it returns DefaultConfig with a warning logged (non-fatal).
func LoadConfig() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), err
	}

	return LoadConfigFrom(path)
}

// LoadConfigFrom reads config from the specified path.
func LoadConfigFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			// File doesn't exist, use defaults (not an error)
			return cfg, nil
		}
		log.Printf("Warning: failed to read config file: %v, using defaults", err)
		return cfg, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&cfg); err != nil {
		log.Printf("Warning: config file is corrupt: %v, using defaults", err)
		return DefaultConfig(), nil
	}

	if cfg.SchemaVersion != CurrentSchemaVersion {
		log.Printf("Warning: config schema version mismatch (got %d, expected %d), using defaults",
			cfg.SchemaVersion, CurrentSchemaVersion)
		return DefaultConfig(), nil
	}

	return normalizeConfig(cfg), nil
}

// normalizeConfig validates and normalizes config values.
func normalizeConfig(cfg Config) Config {
	cfg.SchemaVersion = CurrentSchemaVersion
	cfg.LinkedFolder = strings.TrimSpace(cfg.LinkedFolder)
	cfg.DownloadsDir = strings.TrimSpace(cfg.DownloadsDir)
	cfg.DeviceLabel = strings.TrimSpace(cfg.DeviceLabel)
	return cfg
}

// SaveConfig writes config to disk atomically.
func SaveConfig(cfg Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}

	return SaveConfigTo(cfg, path)
}

// SaveConfigTo writes config to the specified path atomically.
func SaveConfigTo(cfg Config, path string) error {
	cfg.SchemaVersion = CurrentSchemaVersion

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return fsatomic.WriteFile(path, append(data, '\n'))
}

// ApplyEnvOverrides applies environment variable overrides to the config.
// Environment variables take highest priority over config file values.
func ApplyEnvOverrides(cfg Config) Config {
	if v := os.Getenv(EnvLinkedFolder); v != "" {
		cfg.LinkedFolder = v
	}
	if v := os.Getenv(EnvDownloadsDir); v != "" {
		cfg.DownloadsDir = v
	}
	if v := os.Getenv(EnvDevice); v != "" {
		cfg.DeviceLabel = v
	}
	if v := os.Getenv(EnvAutoSnapshot); v != "" {
		cfg.AutoSnapshotEnabled = parseBool(v)
	}
	if v := os.Getenv(EnvWatchLinked); v != "" {
		cfg.WatchLinkedFolder = parseBool(v)
	}
	return cfg
}

// parseBool parses a boolean from various string representations.
// Accepts: "true", "1", "yes", "on" (case-insensitive) as true.
// All other values are treated as false.
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "1" || s == "yes" || s == "on"
}
