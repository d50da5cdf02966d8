package token

import "fmt"

type TokenType string

const (
	// Single character tokens
	TokenLParen   TokenType = "LPAREN"   // (
	TokenRParen   TokenType = "RPAREN"   // )
	TokenPlus     TokenType = "PLUS"     // +
	TokenMinus    TokenType = "MINUS"    // -
	TokenAsterisk TokenType = "ASTERISK" // *
	TokenSlash    TokenType = "SLASH"    // / (real division)
	TokenColon    TokenType = "COLON"    // :
	TokenSemi     TokenType = "SEMI"     // ;
	TokenComma    TokenType = "COMMA"    // ,
	TokenDot      TokenType = "DOT"      // .

	// Assignment
	TokenAssign TokenType = "ASSIGN" // :=

	// Keywords
	TokenProgram   TokenType = "PROGRAM"   // program
	TokenProcedure TokenType = "PROCEDURE" // procedure
	TokenVar       TokenType = "VAR"       // var
	TokenBegin     TokenType = "BEGIN"     // begin
	TokenEnd       TokenType = "END"       // end
	TokenDiv       TokenType = "DIV"       // div (integer division)
	TokenInteger   TokenType = "INTEGER"   // integer (type name)
	TokenReal      TokenType = "REAL"      // real (type name)

	// Literals & Identifiers
	TokenIntLit  TokenType = "INTEGER_LITERAL" // 42
	TokenRealLit TokenType = "REAL_LITERAL"    // 3.14
	TokenIdent   TokenType = "ID"              // Identifier (e.g. variable name)

	// Special
	TokenEOF TokenType = "EOF"
)

// Token is a single lexical unit. Literal holds the case-folded text for
// identifiers and keywords, and the raw digits for number literals.
type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Column  int
}

func (t Token) String() string {
	return fmt.Sprintf("Token(%s, %q, position=%d:%d)", t.Type, t.Literal, t.Line, t.Column)
}

// IsTypeKeyword reports whether the token names one of the built-in types.
func (t Token) IsTypeKeyword() bool {
	return t.Type == TokenInteger || t.Type == TokenReal
}

// keywords maps canonical (lowercase) words to their token types.
var keywords = map[string]TokenType{
	"program":   TokenProgram,
	"procedure": TokenProcedure,
	"var":       TokenVar,
	"begin":     TokenBegin,
	"end":       TokenEnd,
	"div":       TokenDiv,
	"integer":   TokenInteger,
	"real":      TokenReal,
}

// LookupIdent returns the keyword type for a case-folded word, or TokenIdent.
func LookupIdent(ident string) TokenType {
	if tokType, ok := keywords[ident]; ok {
		return tokType
	}
	return TokenIdent
}
