package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var playerCmd = &cobra.Command{
	Use:   "player",
	Short: "Manage the saved player roster",
}

var playerListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved player names",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := openEngine(cmd.Context())
		if err != nil {
			return err
		}
		defer eng.Close()

		roster, err := eng.repo.Roster(cmd.Context())
		if err != nil {
			return err
		}
		for _, name := range roster {
			fmt.Println(name)
		}
		return nil
	},
}

var playerRenameCmd = &cobra.Command{
	Use:   "rename <old> <new>",
	Short: "Rename a player everywhere: roster, history, and the active game",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := openEngine(cmd.Context())
		if err != nil {
			return err
		}
		defer eng.Close()

		return eng.repo.RenamePlayer(cmd.Context(), args[0], args[1])
	},
}

func init() {
	playerCmd.AddCommand(playerListCmd)
	playerCmd.AddCommand(playerRenameCmd)
}
