package cmd

import (
	"log/slog"
	"os"

	"github.com/arnavsurve/spi/internal/config"
	"github.com/arnavsurve/spi/internal/pascal/interpreter"
	"github.com/spf13/cobra"
)

var (
	configPath string
	maxDepth   int
	trace      bool
	noColor    bool

	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:   "spi",
	Short: "A small Pascal interpreter",
	Long: `spi lexes, parses, checks and runs programs written in a Pascal subset.

Commands:
  init    Scaffold a new program and config file
  run     Check and execute a (.pas) program, printing its final bindings
  check   Parse and semantically check a program without running it
  tokens  Print the token stream of a program
  ast     Print the parsed tree of a program
  test    Run a directory of good/ and bad/ example programs
`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
}

func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		printError(err)
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default "+config.DefaultFile+")")
	rootCmd.PersistentFlags().IntVar(&maxDepth, "max-depth", 0, "maximum number of live activation records")
	rootCmd.PersistentFlags().BoolVar(&trace, "trace", false, "log activation record entry and exit to stderr")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored diagnostics")

	rootCmd.AddCommand(InitCmd, RunCmd, CheckCmd, TokensCmd, ASTCmd, TestCmd)
}

// loadConfig merges the config file with command-line overrides.
func loadConfig(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("max-depth") {
		loaded.MaxCallDepth = maxDepth
	}
	if trace {
		loaded.Trace = true
	}
	if noColor {
		loaded.Color = false
	}
	if err := loaded.Validate(); err != nil {
		return err
	}
	cfg = loaded
	return nil
}

// interpreterOptions turns the active config into interpreter options.
func interpreterOptions() []interpreter.Option {
	opts := []interpreter.Option{interpreter.WithMaxDepth(cfg.MaxCallDepth)}
	if cfg.Trace {
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
		opts = append(opts, interpreter.WithLogger(logger))
	}
	return opts
}
