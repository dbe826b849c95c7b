package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pocketscore/pocketscore/internal/expr"
)

var evalCmd = &cobra.Command{
	Use:   "eval <expression>",
	Short: "Evaluate a calculator expression",
	Long: `Evaluate a calculator expression.

Supports digits, '.', parentheses, and + - * /. Malformed input prints
"..." rather than failing.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(expr.Evaluate(strings.Join(args, " ")))
	},
}
