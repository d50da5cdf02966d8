package pascal

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/arnavsurve/spi/internal/pascal/ast"
	"github.com/arnavsurve/spi/internal/pascal/interpreter"
	"github.com/arnavsurve/spi/internal/pascal/lexer"
	"github.com/arnavsurve/spi/internal/pascal/parser"
	"github.com/arnavsurve/spi/internal/pascal/semantic"
	"github.com/arnavsurve/spi/internal/pascal/token"
)

// ReadSource loads a program file after checking its extension.
func ReadSource(path, ext string) (string, error) {
	if err := validateExtension(path, ext); err != nil {
		return "", err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func validateExtension(path, ext string) error {
	if ext != "" && filepath.Ext(path) != ext {
		return fmt.Errorf("source must have %s extension", ext)
	}
	return nil
}

// Tokens lexes src to the end and returns every token including the final EOF.
func Tokens(src string) ([]token.Token, error) {
	l := lexer.NewLexer(src)
	var toks []token.Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return toks, err
		}
		toks = append(toks, tok)
		if tok.Type == token.TokenEOF {
			return toks, nil
		}
	}
}

// Parse lexes and parses src.
func Parse(src string) (*ast.Program, error) {
	p := parser.NewParser(lexer.NewLexer(src))
	return p.Parse()
}

// Check parses src and runs the semantic analyzer over it.
func Check(src string, opts ...semantic.Option) (*ast.Program, error) {
	prog, err := Parse(src)
	if err != nil {
		return nil, err
	}
	if err := semantic.NewAnalyzer(opts...).Analyze(prog); err != nil {
		return nil, err
	}
	return prog, nil
}

// Run is the whole pipeline: parse, analyze, then execute.
func Run(src string, opts ...interpreter.Option) (*interpreter.Result, error) {
	p := parser.NewParser(lexer.NewLexer(src))
	prog, err := p.Parse()
	if err != nil {
		return nil, err
	}
	if err := semantic.NewAnalyzer().Analyze(prog); err != nil {
		return nil, err
	}
	return interpreter.New(p, opts...).Execute()
}
