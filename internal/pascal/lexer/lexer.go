package lexer

import (
	"fmt"
	"strings"

	"github.com/arnavsurve/spi/internal/pascal/token"
)

// LexError reports a character that starts no token.
type LexError struct {
	Char   byte
	Line   int
	Column int
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%d:%d: Lexer Error: unexpected character %q", e.Line, e.Column, e.Char)
}

type Lexer struct {
	input        string
	position     int  // current char index
	readPosition int  // next char index
	ch           byte // current char

	line   int // line of ch (1-indexed)
	column int // column of ch (1-indexed)
}

func NewLexer(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0}
	l.readChar()
	return l
}

// readChar advances to the next character. Stepping past a newline moves to
// column 1 of the following line.
func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}

	if l.readPosition >= len(l.input) {
		l.ch = 0 // ASCII NULL (EOF)
	} else {
		l.ch = l.input[l.readPosition]
	}

	l.position = l.readPosition
	if l.readPosition <= len(l.input) {
		l.readPosition++
		l.column++
	}
}

// Returns the next character without consuming it
func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

// CurrentChar returns the raw character right after the last token produced,
// or 0 at end of input. The parser uses it to tell `name(` calls apart from
// assignments without buffering a second token.
func (l *Lexer) CurrentChar() byte {
	return l.ch
}

func (l *Lexer) atEOF() bool {
	return l.position >= len(l.input)
}

// NextToken scans one token. Once input is exhausted it keeps returning EOF.
func (l *Lexer) NextToken() (token.Token, error) {
	l.skipWhitespaceAndComments()

	startLine := l.line
	startCol := l.column

	if l.atEOF() {
		return l.newToken(token.TokenEOF, "", startLine, startCol), nil
	}

	var tok token.Token

	switch l.ch {
	case ':':
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return l.newToken(token.TokenAssign, ":=", startLine, startCol), nil
		}
		tok = l.newToken(token.TokenColon, ":", startLine, startCol)
	case '+':
		tok = l.newToken(token.TokenPlus, "+", startLine, startCol)
	case '-':
		tok = l.newToken(token.TokenMinus, "-", startLine, startCol)
	case '*':
		tok = l.newToken(token.TokenAsterisk, "*", startLine, startCol)
	case '/':
		tok = l.newToken(token.TokenSlash, "/", startLine, startCol)
	case '(':
		tok = l.newToken(token.TokenLParen, "(", startLine, startCol)
	case ')':
		tok = l.newToken(token.TokenRParen, ")", startLine, startCol)
	case ';':
		tok = l.newToken(token.TokenSemi, ";", startLine, startCol)
	case ',':
		tok = l.newToken(token.TokenComma, ",", startLine, startCol)
	case '.':
		tok = l.newToken(token.TokenDot, ".", startLine, startCol)
	default:
		if isLetter(l.ch) {
			ident := strings.ToLower(l.readIdentifier())
			return l.newToken(token.LookupIdent(ident), ident, startLine, startCol), nil
		} else if isDigit(l.ch) {
			return l.readNumber(startLine, startCol), nil
		}
		return token.Token{}, &LexError{Char: l.ch, Line: startLine, Column: startCol}
	}

	l.readChar()
	return tok, nil
}

// newToken is a helper to create a token.Token struct
func (l *Lexer) newToken(tokenType token.TokenType, literal string, line, col int) token.Token {
	return token.Token{Type: tokenType, Literal: literal, Line: line, Column: col}
}

func (l *Lexer) skipWhitespaceAndComments() {
	for !l.atEOF() {
		switch {
		case isSpace(l.ch):
			l.readChar()
		case l.ch == '{':
			l.skipComment()
		default:
			return
		}
	}
}

// skipComment consumes a `{ ... }` comment. Comments do not nest; an
// unterminated one runs to end of input.
func (l *Lexer) skipComment() {
	for !l.atEOF() && l.ch != '}' {
		l.readChar()
	}
	if !l.atEOF() {
		l.readChar() // Consume '}'
	}
}

func (l *Lexer) readIdentifier() string {
	start := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[start:l.position]
}

// readNumber reads an integer literal, or a real literal when the digits are
// followed by '.' and at least one more digit.
func (l *Lexer) readNumber(startLine, startCol int) token.Token {
	start := l.position
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch != '.' || !isDigit(l.peekChar()) {
		return l.newToken(token.TokenIntLit, l.input[start:l.position], startLine, startCol)
	}

	l.readChar() // Consume '.'
	for isDigit(l.ch) {
		l.readChar()
	}
	return l.newToken(token.TokenRealLit, l.input[start:l.position], startLine, startCol)
}

func isLetter(ch byte) bool {
	return ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z') || ch == '_'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\n' || ch == '\t' || ch == '\r' || ch == '\f' || ch == '\v'
}
