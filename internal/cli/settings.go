package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or update app settings",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current settings record",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := openEngine(cmd.Context())
		if err != nil {
			return err
		}
		defer eng.Close()

		out, err := json.MarshalIndent(eng.repo.Settings().Current(), "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}

var (
	setSaveGuestGames bool
	setSoundEnabled   bool
	setKeepScreenOn   bool
	setTargetScore    int
	setMaxPlayers     int
	setTheme          string
)

var settingsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update settings (out-of-range values are clamped, not rejected)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := openEngine(cmd.Context())
		if err != nil {
			return err
		}
		defer eng.Close()

		s := eng.repo.Settings().Current()
		if cmd.Flags().Changed("save-guest-games") {
			s.SaveGuestGames = setSaveGuestGames
		}
		if cmd.Flags().Changed("sound") {
			s.SoundEnabled = setSoundEnabled
		}
		if cmd.Flags().Changed("keep-screen-on") {
			s.KeepScreenOn = setKeepScreenOn
		}
		if cmd.Flags().Changed("target-score") {
			s.TargetScore = setTargetScore
		}
		if cmd.Flags().Changed("max-players") {
			s.MaxPlayers = setMaxPlayers
		}
		if cmd.Flags().Changed("theme") {
			s.Theme = setTheme
		}

		return eng.repo.UpdateSettings(cmd.Context(), s)
	},
}

func init() {
	settingsSetCmd.Flags().BoolVar(&setSaveGuestGames, "save-guest-games", false, "Archive guest sessions")
	settingsSetCmd.Flags().BoolVar(&setSoundEnabled, "sound", true, "Enable sounds")
	settingsSetCmd.Flags().BoolVar(&setKeepScreenOn, "keep-screen-on", true, "Keep the screen on during games")
	settingsSetCmd.Flags().IntVar(&setTargetScore, "target-score", 100, "Default target score")
	settingsSetCmd.Flags().IntVar(&setMaxPlayers, "max-players", 8, "Maximum players per game")
	settingsSetCmd.Flags().StringVar(&setTheme, "theme", "system", "UI theme")

	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
}
