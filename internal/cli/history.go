package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect and edit archived games",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived games, most recent first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := openEngine(cmd.Context())
		if err != nil {
			return err
		}
		defer eng.Close()

		history := eng.repo.History().Current()
		for _, g := range history.Games {
			started := time.UnixMilli(g.StartedAt).Format("2006-01-02 15:04")
			fmt.Printf("%s\t%s\t%d players\t%d events\n", g.ID, started, len(g.Players), len(g.GlobalEvents))
		}
		return nil
	},
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <game-id>",
	Short: "Delete an archived game",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := openEngine(cmd.Context())
		if err != nil {
			return err
		}
		defer eng.Close()

		return eng.repo.DeleteHistoryEntry(cmd.Context(), args[0])
	},
}

var historyArchiveForce bool

var historyArchiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Archive the active game into history",
	Long: `Archive the active game into history.

Guest sessions are skipped unless the save-guest-games setting is on or
--force is given.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := openEngine(cmd.Context())
		if err != nil {
			return err
		}
		defer eng.Close()

		return eng.repo.ArchiveActiveGame(cmd.Context(), historyArchiveForce)
	},
}

func init() {
	historyArchiveCmd.Flags().BoolVar(&historyArchiveForce, "force", false, "Archive even a guest session")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyDeleteCmd)
	historyCmd.AddCommand(historyArchiveCmd)
}
