package cmd

import (
	"fmt"

	"github.com/arnavsurve/spi/internal/pascal"
	"github.com/arnavsurve/spi/internal/pascal/golden"
	"github.com/arnavsurve/spi/internal/pascal/interpreter"
	"github.com/arnavsurve/spi/internal/pascal/lexer"
	"github.com/arnavsurve/spi/internal/pascal/parser"
	"github.com/arnavsurve/spi/internal/pascal/runtime"
	"github.com/arnavsurve/spi/internal/pascal/semantic"
	"github.com/spf13/cobra"
)

var showStack bool

// run: check and execute a program
var RunCmd = &cobra.Command{
	Use:   "run <source.pas>",
	Short: "Check and execute a program, printing its final bindings",
	Args:  cobra.ExactArgs(1),
	RunE:  runRun,
}

func init() {
	RunCmd.Flags().BoolVar(&showStack, "stack", false, "print the call stack each time a frame is left")
}

func runRun(cmd *cobra.Command, args []string) error {
	src, err := loadSource(args[0])
	if err != nil {
		return err
	}

	p := parser.NewParser(lexer.NewLexer(src.text))
	prog, err := p.Parse()
	if err != nil {
		return src.wrap(err)
	}
	if err := semantic.NewAnalyzer().Analyze(prog); err != nil {
		return src.wrap(err)
	}

	opts := interpreterOptions()
	if showStack {
		opts = append(opts, interpreter.WithFrameHook(func(stack *runtime.CallStack) {
			fmt.Fprintln(cmd.OutOrStdout(), stack)
		}))
	}

	result, err := interpreter.New(p, opts...).Execute()
	if err != nil {
		return src.wrap(err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✔︎ program %s finished\n", result.Program)
	fmt.Fprint(cmd.OutOrStdout(), golden.FormatBindings(result.Bindings))
	return nil
}

// source is a loaded program file, kept so errors can quote it.
type source struct {
	path string
	text string
}

func loadSource(path string) (*source, error) {
	text, err := pascal.ReadSource(path, cfg.Extension)
	if err != nil {
		return nil, err
	}
	return &source{path: path, text: text}, nil
}

func (s *source) wrap(err error) error {
	return &sourceError{src: s, err: err}
}
