package cmd

import (
	"fmt"

	"github.com/arnavsurve/spi/internal/pascal"
	"github.com/spf13/cobra"
)

// ast: dump the parse tree
var ASTCmd = &cobra.Command{
	Use:   "ast <source.pas>",
	Short: "Print the parsed tree of a program",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := loadSource(args[0])
		if err != nil {
			return err
		}
		prog, err := pascal.Parse(src.text)
		if err != nil {
			return src.wrap(err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), prog)
		return nil
	},
}
