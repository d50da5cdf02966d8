package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/arnavsurve/spi/internal/pascal/lexer"
	"github.com/arnavsurve/spi/internal/pascal/parser"
	"github.com/arnavsurve/spi/internal/pascal/runtime"
	"github.com/arnavsurve/spi/internal/pascal/semantic"
	"github.com/charmbracelet/lipgloss"
)

var (
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	posStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	caretStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

// sourceError ties a pipeline error to the file it came from.
type sourceError struct {
	src *source
	err error
}

func (e *sourceError) Error() string { return e.src.path + ": " + e.err.Error() }
func (e *sourceError) Unwrap() error { return e.err }

// position extracts the line and column carried by a pipeline error.
func position(err error) (line, col int, ok bool) {
	var lexErr *lexer.LexError
	var parseErr *parser.ParseError
	var semErr *semantic.SemanticError
	var rtErr *runtime.RuntimeError
	switch {
	case errors.As(err, &lexErr):
		return lexErr.Line, lexErr.Column, true
	case errors.As(err, &parseErr):
		return parseErr.Got.Line, parseErr.Got.Column, true
	case errors.As(err, &semErr):
		return semErr.Token.Line, semErr.Token.Column, true
	case errors.As(err, &rtErr):
		return rtErr.Token.Line, rtErr.Token.Column, true
	}
	return 0, 0, false
}

// renderError formats err with a source excerpt and caret when it carries a
// position inside a loaded file.
func renderError(err error, color bool) string {
	style := func(s lipgloss.Style, text string) string {
		if !color {
			return text
		}
		return s.Render(text)
	}

	var srcErr *sourceError
	line, col, hasPos := position(err)
	if !errors.As(err, &srcErr) || !hasPos || line <= 0 {
		return style(errStyle, "error: ") + err.Error()
	}

	var b strings.Builder
	b.WriteString(style(errStyle, "error: "))
	b.WriteString(srcErr.err.Error())
	b.WriteString("\n")
	b.WriteString(style(posStyle, fmt.Sprintf("  --> %s:%d:%d", srcErr.src.path, line, col)))

	lines := strings.Split(srcErr.src.text, "\n")
	if line <= len(lines) {
		text := strings.TrimRight(lines[line-1], "\r")
		gutter := fmt.Sprintf("%4d | ", line)
		b.WriteString("\n")
		b.WriteString(style(posStyle, gutter))
		b.WriteString(text)
		b.WriteString("\n")
		b.WriteString(strings.Repeat(" ", len(gutter)+max(col-1, 0)))
		b.WriteString(style(caretStyle, "^"))
	}
	return b.String()
}

func printError(err error) {
	fmt.Fprintln(os.Stderr, renderError(err, cfg.Color))
}
