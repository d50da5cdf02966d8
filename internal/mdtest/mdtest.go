// Package mdtest extracts program test cases from Markdown documents.
//
// Every heading of the form "Test: <name>" starts a case. The case holds one
// ```pascal fence with the program and one expectation fence: ```bindings
// lists `name = value` lines expected in the final program frame, ```error
// holds a substring of the expected error message.
package mdtest

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

const (
	FenceProgram  = "pascal"
	FenceBindings = "bindings"
	FenceError    = "error"
)

// Binding is one expected `name = value` line.
type Binding struct {
	Name  string
	Value string
}

type TestCase struct {
	Name     string
	Line     int
	Program  string
	Bindings []Binding
	Error    string // empty when the program must succeed
}

// Extract parses a Markdown document and returns its test cases in order.
func Extract(markdown string) ([]TestCase, error) {
	source := []byte(markdown)
	doc := goldmark.New().Parser().Parse(text.NewReader(source))

	var cases []TestCase
	var current *TestCase

	flush := func() error {
		if current == nil {
			return nil
		}
		if err := validate(current); err != nil {
			return err
		}
		cases = append(cases, *current)
		return nil
	}

	err := ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch n := node.(type) {
		case *ast.Heading:
			heading := nodeText(n, source)
			if !strings.HasPrefix(heading, "Test: ") {
				return ast.WalkContinue, nil
			}
			if err := flush(); err != nil {
				return ast.WalkStop, err
			}
			current = &TestCase{
				Name: strings.TrimSpace(strings.TrimPrefix(heading, "Test: ")),
				Line: lineOf(n, source),
			}

		case *ast.FencedCodeBlock:
			language := string(n.Language(source))
			line := lineOf(n, source)
			if language == "" {
				return ast.WalkContinue, nil
			}
			if current == nil {
				return ast.WalkStop, fmt.Errorf("line %d: %s fence found outside of test case", line, language)
			}
			content := strings.TrimRight(codeBlockText(n, source), "\n")

			switch language {
			case FenceProgram:
				if current.Program != "" {
					return ast.WalkStop, fmt.Errorf("line %d: multiple program fences in test '%s'", line, current.Name)
				}
				current.Program = content
			case FenceBindings:
				bindings, err := parseBindings(content)
				if err != nil {
					return ast.WalkStop, fmt.Errorf("line %d: test '%s': %w", line, current.Name, err)
				}
				current.Bindings = append(current.Bindings, bindings...)
			case FenceError:
				current.Error = strings.TrimSpace(content)
			default:
				return ast.WalkStop, fmt.Errorf("line %d: unknown fence language '%s' in test '%s'", line, language, current.Name)
			}
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking markdown AST: %w", err)
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return cases, nil
}

func parseBindings(content string) ([]Binding, error) {
	var out []Binding
	for _, raw := range strings.Split(content, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		name, value, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("binding %q is not of the form name = value", line)
		}
		out = append(out, Binding{Name: strings.TrimSpace(name), Value: strings.TrimSpace(value)})
	}
	return out, nil
}

func validate(tc *TestCase) error {
	if tc.Program == "" {
		return fmt.Errorf("test '%s' has no program fence", tc.Name)
	}
	if len(tc.Bindings) == 0 && tc.Error == "" {
		return fmt.Errorf("test '%s' has no bindings or error fence", tc.Name)
	}
	if len(tc.Bindings) > 0 && tc.Error != "" {
		return fmt.Errorf("test '%s' expects both bindings and an error", tc.Name)
	}
	return nil
}

// nodeText concatenates the text segments under node.
func nodeText(node ast.Node, source []byte) string {
	var buf bytes.Buffer
	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering {
			if t, ok := n.(*ast.Text); ok {
				buf.Write(t.Segment.Value(source))
			}
		}
		return ast.WalkContinue, nil
	})
	return buf.String()
}

func codeBlockText(block *ast.FencedCodeBlock, source []byte) string {
	var buf bytes.Buffer
	for i := 0; i < block.Lines().Len(); i++ {
		line := block.Lines().At(i)
		buf.Write(line.Value(source))
	}
	return buf.String()
}

// lineOf returns the 1-based source line where node's content starts.
func lineOf(node ast.Node, source []byte) int {
	if node.Lines().Len() == 0 {
		return 1
	}
	start := node.Lines().At(0).Start
	return bytes.Count(source[:min(start, len(source))], []byte("\n")) + 1
}
