// Package cli implements the pocketscore command-line interface.
package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/pocketscore/pocketscore/internal/version"
)

var (
	// Global flags
	verbose bool
)

// rootCmd is the base command for pocketscore.
var rootCmd = &cobra.Command{
	Use:   "pocketscore",
	Short: "Scorekeeping data engine with multi-location backup",
	Long: `pocketscore manages scorekeeping data: the active game, the archived
history, the player roster, and settings, backed by redundant snapshots
mirrored across internal storage, a linked folder, the app-private sync
folder, and the public downloads folder.`,
	Version:       version.String(),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	rootCmd.AddCommand(snapshotCmd)
	rootCmd.AddCommand(shareCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(playerCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(evalCmd)
	rootCmd.AddCommand(watchCmd)
}
