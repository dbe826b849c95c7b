package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pocketscore/pocketscore/internal/share"
)

var shareCmd = &cobra.Command{
	Use:   "share",
	Short: "Export and import portable .pscore packages",
}

var shareExportGames []string

var shareExportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Write a share package (all data, or scoped with --game)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := openEngine(cmd.Context())
		if err != nil {
			return err
		}
		defer eng.Close()

		pkg, err := eng.repo.ExportShare(cmd.Context(), shareExportGames...)
		if err != nil {
			return err
		}
		blob, err := share.Encode(pkg)
		if err != nil {
			return err
		}

		path := args[0]
		if !strings.HasSuffix(path, share.FileExt) {
			path += share.FileExt
		}
		if err := os.WriteFile(path, blob, 0600); err != nil {
			return fmt.Errorf("write package: %w", err)
		}
		fmt.Printf("exported %d games to %s\n", len(pkg.Games), path)
		return nil
	},
}

var shareImportMappings []string

var shareImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Merge a share package into local data",
	Long: `Merge a share package into local data.

Player names can be remapped before the merge with repeated
--map imported=local flags.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mapping, err := parseMappings(shareImportMappings)
		if err != nil {
			return err
		}

		blob, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read package: %w", err)
		}
		pkg, err := share.Decode(blob)
		if err != nil {
			return err
		}

		eng, err := openEngine(cmd.Context())
		if err != nil {
			return err
		}
		defer eng.Close()

		return eng.repo.MergeShare(cmd.Context(), pkg, mapping)
	},
}

// parseMappings converts "imported=local" pairs into a name mapping.
func parseMappings(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	mapping := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		imported, local, ok := strings.Cut(pair, "=")
		if !ok || imported == "" || local == "" {
			return nil, fmt.Errorf("invalid mapping %q, want imported=local", pair)
		}
		mapping[imported] = local
	}
	return mapping, nil
}

func init() {
	shareExportCmd.Flags().StringArrayVar(&shareExportGames, "game", nil, "Game id to include (repeatable; default all)")
	shareImportCmd.Flags().StringArrayVar(&shareImportMappings, "map", nil, "Player name mapping imported=local (repeatable)")

	shareCmd.AddCommand(shareExportCmd)
	shareCmd.AddCommand(shareImportCmd)
}
