package lexer

import (
	"errors"
	"testing"

	"github.com/arnavsurve/spi/internal/pascal/token"
	"github.com/nalgeon/be"
)

// lexAll collects every token up to and including EOF.
func lexAll(t *testing.T, input string) []token.Token {
	t.Helper()
	l := NewLexer(input)
	var toks []token.Token
	for {
		tok, err := l.NextToken()
		be.Err(t, err, nil)
		toks = append(toks, tok)
		if tok.Type == token.TokenEOF {
			return toks
		}
	}
}

func types(toks []token.Token) []token.TokenType {
	out := make([]token.TokenType, len(toks))
	for i, tok := range toks {
		out[i] = tok.Type
	}
	return out
}

func TestSingleCharTokens(t *testing.T) {
	tests := []struct {
		input string
		typ   token.TokenType
	}{
		{"+", token.TokenPlus},
		{"-", token.TokenMinus},
		{"*", token.TokenAsterisk},
		{"/", token.TokenSlash},
		{"(", token.TokenLParen},
		{")", token.TokenRParen},
		{";", token.TokenSemi},
		{":", token.TokenColon},
		{",", token.TokenComma},
		{".", token.TokenDot},
		{":=", token.TokenAssign},
	}

	for _, tt := range tests {
		tok, err := NewLexer(tt.input).NextToken()
		be.Err(t, err, nil)
		be.Equal(t, tok.Type, tt.typ)
		be.Equal(t, tok.Literal, tt.input)
	}
}

func TestAssignVersusColon(t *testing.T) {
	toks := lexAll(t, "a : integer; b := 1")
	be.Equal(t, types(toks), []token.TokenType{
		token.TokenIdent, token.TokenColon, token.TokenInteger, token.TokenSemi,
		token.TokenIdent, token.TokenAssign, token.TokenIntLit, token.TokenEOF,
	})
}

func TestNumberLiterals(t *testing.T) {
	tests := []struct {
		input   string
		typ     token.TokenType
		literal string
	}{
		{"42", token.TokenIntLit, "42"},
		{"007", token.TokenIntLit, "007"},
		{"3.14", token.TokenRealLit, "3.14"},
		{"10.0", token.TokenRealLit, "10.0"},
	}

	for _, tt := range tests {
		tok, err := NewLexer(tt.input).NextToken()
		be.Err(t, err, nil)
		be.Equal(t, tok.Type, tt.typ)
		be.Equal(t, tok.Literal, tt.literal)
	}
}

func TestIntegerFollowedByDot(t *testing.T) {
	// "2." ends a program; the dot is not part of the literal.
	toks := lexAll(t, "x := 2.")
	be.Equal(t, types(toks), []token.TokenType{
		token.TokenIdent, token.TokenAssign, token.TokenIntLit, token.TokenDot, token.TokenEOF,
	})
	be.Equal(t, toks[2].Literal, "2")
}

func TestKeywordsAreCaseInsensitive(t *testing.T) {
	for _, input := range []string{"BEGIN", "begin", "BeGiN"} {
		tok, err := NewLexer(input).NextToken()
		be.Err(t, err, nil)
		be.Equal(t, tok.Type, token.TokenBegin)
		be.Equal(t, tok.Literal, "begin")
	}
}

func TestAllKeywords(t *testing.T) {
	toks := lexAll(t, "PROGRAM Procedure var begin END div Integer REAL")
	be.Equal(t, types(toks), []token.TokenType{
		token.TokenProgram, token.TokenProcedure, token.TokenVar, token.TokenBegin,
		token.TokenEnd, token.TokenDiv, token.TokenInteger, token.TokenReal, token.TokenEOF,
	})
}

func TestIdentifiersAreCaseFolded(t *testing.T) {
	toks := lexAll(t, "Number _x_ a1_B2")
	be.Equal(t, toks[0].Type, token.TokenIdent)
	be.Equal(t, toks[0].Literal, "number")
	be.Equal(t, toks[1].Literal, "_x_")
	be.Equal(t, toks[2].Literal, "a1_b2")
}

func TestCommentsAreSkipped(t *testing.T) {
	toks := lexAll(t, "{ leading } x { one } { two }\n  := { mid } 1 {trailing")
	be.Equal(t, types(toks), []token.TokenType{
		token.TokenIdent, token.TokenAssign, token.TokenIntLit, token.TokenEOF,
	})
}

func TestLineAndColumn(t *testing.T) {
	toks := lexAll(t, "begin\n  x := 10\nend.")

	want := []struct {
		line, col int
	}{
		{1, 1}, // begin
		{2, 3}, // x
		{2, 5}, // :=
		{2, 8}, // 10
		{3, 1}, // end
		{3, 4}, // .
	}
	for i, w := range want {
		be.Equal(t, toks[i].Line, w.line)
		be.Equal(t, toks[i].Column, w.col)
	}
}

func TestEOFIsRepeated(t *testing.T) {
	l := NewLexer("x")
	_, err := l.NextToken()
	be.Err(t, err, nil)
	for i := 0; i < 3; i++ {
		tok, err := l.NextToken()
		be.Err(t, err, nil)
		be.Equal(t, tok.Type, token.TokenEOF)
	}
}

func TestEmptyInput(t *testing.T) {
	toks := lexAll(t, "   \n\t ")
	be.Equal(t, types(toks), []token.TokenType{token.TokenEOF})
}

func TestIllegalCharacter(t *testing.T) {
	l := NewLexer("x := 1 ?")
	for i := 0; i < 3; i++ {
		_, err := l.NextToken()
		be.Err(t, err, nil)
	}
	_, err := l.NextToken()

	var lexErr *LexError
	be.True(t, errors.As(err, &lexErr))
	be.Equal(t, lexErr.Char, byte('?'))
	be.Equal(t, lexErr.Line, 1)
	be.Equal(t, lexErr.Column, 8)
	be.Err(t, err, "unexpected character")
}

func TestCurrentCharAfterIdentifier(t *testing.T) {
	l := NewLexer("foo(1) bar (2)")

	tok, err := l.NextToken()
	be.Err(t, err, nil)
	be.Equal(t, tok.Literal, "foo")
	be.Equal(t, l.CurrentChar(), byte('('))

	for tok.Literal != "bar" {
		tok, err = l.NextToken()
		be.Err(t, err, nil)
	}
	be.Equal(t, l.CurrentChar(), byte(' '))
}
