package cmd

import (
	"fmt"

	"github.com/arnavsurve/spi/internal/pascal"
	"github.com/arnavsurve/spi/internal/pascal/scope"
	"github.com/arnavsurve/spi/internal/pascal/semantic"
	"github.com/spf13/cobra"
)

var showScopes bool

// check: parse + semantic analysis only
var CheckCmd = &cobra.Command{
	Use:   "check <source.pas>",
	Short: "Parse and semantically check a program without running it",
	Args:  cobra.ExactArgs(1),
	RunE:  checkRun,
}

func init() {
	CheckCmd.Flags().BoolVar(&showScopes, "scopes", false, "print every scope's symbol table")
}

func checkRun(cmd *cobra.Command, args []string) error {
	src, err := loadSource(args[0])
	if err != nil {
		return err
	}

	var opts []semantic.Option
	if showScopes {
		opts = append(opts, semantic.WithScopeHook(func(sc *scope.Scope) {
			fmt.Fprintln(cmd.OutOrStdout(), sc)
		}))
	}

	prog, err := pascal.Check(src.text, opts...)
	if err != nil {
		return src.wrap(err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✔︎ %s: program %s is well formed\n", src.path, prog.Name)
	return nil
}
