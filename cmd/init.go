package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/arnavsurve/spi/internal/config"
	"github.com/arnavsurve/spi/internal/pascal"
	"github.com/arnavsurve/spi/internal/pascal/token"
	"github.com/spf13/cobra"
)

const programTemplate = `program %s;
var
   x, y : integer;

procedure show(a : integer);
var
   doubled : integer;
begin
   doubled := a * 2
end;

begin { %s }
   x := 2;
   y := 10 * x + 10 * x div 4;
   show(y)
end.
`

const configTemplate = `# spi configuration
max_call_depth: 1024
trace: false
color: true
extension: .pas
`

// init: scaffold a new program
var InitCmd = &cobra.Command{
	Use:   "init <program-name>",
	Short: "Scaffold a new program and config file",
	Args:  cobra.ExactArgs(1),
	RunE:  initRun,
}

func initRun(cmd *cobra.Command, args []string) error {
	name := args[0]
	if !isIdentifier(filepath.Base(name)) {
		return fmt.Errorf("program name %q is not a valid identifier", filepath.Base(name))
	}
	file := name + cfg.Extension
	fmt.Printf("↪ scaffolding new program %q ...\n", name)

	if err := writeNew(file, fmt.Sprintf(programTemplate, filepath.Base(name), name)); err != nil {
		return err
	}
	fmt.Printf("✔︎ wrote %s\n", file)

	if err := writeNew(config.DefaultFile, configTemplate); err != nil {
		if errors.Is(err, os.ErrExist) {
			fmt.Printf("↪ keeping existing %s\n", config.DefaultFile)
			return nil
		}
		return err
	}
	fmt.Printf("✔︎ wrote %s\n", config.DefaultFile)
	return nil
}

func isIdentifier(name string) bool {
	toks, err := pascal.Tokens(name)
	return err == nil && len(toks) == 2 && toks[0].Type == token.TokenIdent
}

// writeNew creates path with content, refusing to overwrite.
func writeNew(path, content string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(content); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
