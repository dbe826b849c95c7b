package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pocketscore/pocketscore/internal/appinfo"
	"github.com/pocketscore/pocketscore/internal/config"
	"github.com/pocketscore/pocketscore/internal/repo"
	"github.com/pocketscore/pocketscore/internal/snapshot"
	"github.com/pocketscore/pocketscore/internal/store"
)

// engine wires config, the record store, the snapshot locations, and the
// repository together for a single command invocation.
type engine struct {
	cfg  config.Config
	st   *store.Store
	repo *repo.Repository
}

// openEngine builds the full stack. Callers must Close it.
func openEngine(ctx context.Context) (*engine, error) {
	cfg, _ := config.LoadConfig()
	cfg = config.ApplyEnvOverrides(cfg)

	dataDir, err := config.EnsureDataDir()
	if err != nil {
		return nil, err
	}

	st, err := store.Open(filepath.Join(dataDir, appinfo.DatabaseFileName))
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	locations, err := buildLocations(cfg)
	if err != nil {
		st.Close()
		return nil, err
	}
	snaps := snapshot.New(locations, snapshot.WithLogger(slog.Default()))

	device := cfg.DeviceLabel
	if device == "" {
		device, _ = os.Hostname()
	}

	r, err := repo.New(ctx, st, snaps,
		repo.WithLogger(slog.Default()),
		repo.WithDevice(device),
	)
	if err != nil {
		st.Close()
		return nil, err
	}

	return &engine{cfg: cfg, st: st, repo: r}, nil
}

// buildLocations assembles the snapshot locations in read-priority order:
// internal first, then the linked folder when one is configured, then the
// app-private sync mirror, then public downloads.
func buildLocations(cfg config.Config) ([]snapshot.Location, error) {
	internalDir, err := config.SnapshotDir()
	if err != nil {
		return nil, err
	}
	syncDir, err := config.SyncDir()
	if err != nil {
		return nil, err
	}
	downloadsDir, err := config.DownloadsDir(cfg)
	if err != nil {
		return nil, err
	}

	locations := []snapshot.Location{
		snapshot.NewDirLocation(snapshot.LabelInternal, internalDir),
	}
	if cfg.LinkedFolder != "" {
		locations = append(locations, snapshot.NewDirLocation(snapshot.LabelLinked, cfg.LinkedFolder))
	}
	locations = append(locations,
		snapshot.NewDirLocation(snapshot.LabelSync, syncDir),
		snapshot.NewDirLocation(snapshot.LabelDownloads, downloadsDir),
	)
	return locations, nil
}

// Close releases the engine's resources.
func (e *engine) Close() {
	if err := e.st.Close(); err != nil {
		slog.Warn("close store", "error", err)
	}
}
