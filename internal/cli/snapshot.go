package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Manage multi-location backups",
}

var snapshotCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Write a named backup to all locations",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := openEngine(cmd.Context())
		if err != nil {
			return err
		}
		defer eng.Close()

		return eng.repo.CreateSnapshot(cmd.Context(), args[0])
	},
}

var snapshotListCmd = &cobra.Command{
	Use:   "list",
	Short: "List backups across all locations, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := openEngine(cmd.Context())
		if err != nil {
			return err
		}
		defer eng.Close()

		for _, e := range eng.repo.ListSnapshots() {
			fmt.Printf("%s\t%s\n", e.ModTime.Format("2006-01-02 15:04:05"), e.Name)
		}
		return nil
	},
}

var snapshotRestoreCmd = &cobra.Command{
	Use:   "restore <name>",
	Short: "Merge a backup back into local data",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := openEngine(cmd.Context())
		if err != nil {
			return err
		}
		defer eng.Close()

		return eng.repo.RestoreSnapshot(cmd.Context(), args[0])
	},
}

var snapshotDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Remove a backup from every location",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := openEngine(cmd.Context())
		if err != nil {
			return err
		}
		defer eng.Close()

		return eng.repo.DeleteSnapshot(args[0])
	},
}

var snapshotExportCmd = &cobra.Command{
	Use:   "export <name>",
	Short: "Re-publish a backup to the downloads folder",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := openEngine(cmd.Context())
		if err != nil {
			return err
		}
		defer eng.Close()

		return eng.repo.ExportSnapshot(args[0])
	},
}

var snapshotCatCmd = &cobra.Command{
	Use:   "cat <name>",
	Short: "Print the raw backup package",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := openEngine(cmd.Context())
		if err != nil {
			return err
		}
		defer eng.Close()

		blob, err := eng.repo.RawSnapshot(args[0])
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(blob)
		return err
	},
}

var snapshotAutoCmd = &cobra.Command{
	Use:   "auto",
	Short: "Take the daily automatic backup (no-op if already taken today)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := openEngine(cmd.Context())
		if err != nil {
			return err
		}
		defer eng.Close()

		if !eng.cfg.AutoSnapshotEnabled {
			slog.Debug("auto snapshots disabled")
			return nil
		}
		return eng.repo.AutoSnapshot(cmd.Context())
	},
}

func init() {
	snapshotCmd.AddCommand(snapshotCreateCmd)
	snapshotCmd.AddCommand(snapshotListCmd)
	snapshotCmd.AddCommand(snapshotRestoreCmd)
	snapshotCmd.AddCommand(snapshotDeleteCmd)
	snapshotCmd.AddCommand(snapshotExportCmd)
	snapshotCmd.AddCommand(snapshotCatCmd)
	snapshotCmd.AddCommand(snapshotAutoCmd)
}
