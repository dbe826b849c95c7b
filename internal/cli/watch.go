package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pocketscore/pocketscore/internal/config"
	"github.com/pocketscore/pocketscore/internal/share"
	"github.com/pocketscore/pocketscore/internal/snapshot"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the linked folder and auto-import arriving packages",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := openEngine(cmd.Context())
		if err != nil {
			return err
		}
		defer eng.Close()

		if eng.cfg.LinkedFolder == "" {
			return fmt.Errorf("no linked folder configured (set %s)", config.EnvLinkedFolder)
		}

		ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		watcher := snapshot.NewWatcher(eng.cfg.LinkedFolder, func(path string) {
			if err := importPackage(ctx, eng, path); err != nil {
				slog.Warn("auto-import failed", "path", path, "error", err)
			}
		}, snapshot.WithWatcherLogger(slog.Default()))

		if err := watcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}

// importPackage merges an arriving package with no name mapping. Existing
// games win on id collision, so re-delivered packages are harmless.
func importPackage(ctx context.Context, eng *engine, path string) error {
	blob, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	pkg, err := share.Decode(blob)
	if err != nil {
		return err
	}
	if err := eng.repo.MergeShare(ctx, pkg, nil); err != nil {
		return err
	}
	slog.Info("package imported", "path", path, "games", len(pkg.Games))
	return nil
}
