package cmd

import (
	"fmt"

	"github.com/arnavsurve/spi/internal/pascal"
	"github.com/spf13/cobra"
)

// tokens: dump the lexer output
var TokensCmd = &cobra.Command{
	Use:   "tokens <source.pas>",
	Short: "Print the token stream of a program",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := loadSource(args[0])
		if err != nil {
			return err
		}
		toks, err := pascal.Tokens(src.text)
		for _, tok := range toks {
			fmt.Fprintln(cmd.OutOrStdout(), tok)
		}
		if err != nil {
			return src.wrap(err)
		}
		return nil
	},
}
