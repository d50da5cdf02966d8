package parser

import (
	"fmt"
	"strconv"

	"github.com/arnavsurve/spi/internal/pascal/ast"
	"github.com/arnavsurve/spi/internal/pascal/lexer"
	"github.com/arnavsurve/spi/internal/pascal/token"
)

// ParseError reports a token that does not fit the grammar at its position.
type ParseError struct {
	Expected token.TokenType // empty when no single type was expected
	Got      token.Token
	Msg      string
}

func (e *ParseError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("%d:%d: Syntax Error: %s", e.Got.Line, e.Got.Column, e.Msg)
	}
	return fmt.Sprintf("%d:%d: Syntax Error: expected %s, got %s (%q)",
		e.Got.Line, e.Got.Column, e.Expected, e.Got.Type, e.Got.Literal)
}

// Parser is a recursive-descent parser with a single token of lookahead.
type Parser struct {
	l      *lexer.Lexer
	curTok token.Token

	// Parse result, written once by the first call to Parse.
	parsed  bool
	program *ast.Program
	err     error
}

func NewParser(l *lexer.Lexer) *Parser {
	return &Parser{l: l}
}

// Parse derives the program on the first call and caches the result; later
// calls return the same tree (or the same error) without touching the lexer.
func (p *Parser) Parse() (*ast.Program, error) {
	if p.parsed {
		return p.program, p.err
	}
	p.parsed = true
	p.program, p.err = p.parseProgram()
	if p.err != nil {
		p.program = nil
	}
	return p.program, p.err
}

// --- Token Handling ---
func (p *Parser) nextToken() error {
	tok, err := p.l.NextToken()
	if err != nil {
		return err
	}
	p.curTok = tok
	return nil
}

// eat consumes the current token if it has the expected type.
func (p *Parser) eat(expected token.TokenType) error {
	if p.curTok.Type != expected {
		return &ParseError{Expected: expected, Got: p.curTok}
	}
	return p.nextToken()
}

// ident consumes an identifier and returns its token.
func (p *Parser) ident() (token.Token, error) {
	tok := p.curTok
	if err := p.eat(token.TokenIdent); err != nil {
		return tok, err
	}
	return tok, nil
}

func (p *Parser) errorf(format string, args ...any) error {
	return &ParseError{Got: p.curTok, Msg: fmt.Sprintf(format, args...)}
}

// --- Program Parsing ---

// program := "program" ID ";" block "." EOF
func (p *Parser) parseProgram() (*ast.Program, error) {
	if err := p.nextToken(); err != nil {
		return nil, err
	}

	progTok := p.curTok
	if err := p.eat(token.TokenProgram); err != nil {
		return nil, err
	}
	nameTok, err := p.ident()
	if err != nil {
		return nil, err
	}
	if err := p.eat(token.TokenSemi); err != nil {
		return nil, err
	}
	block, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	if err := p.eat(token.TokenDot); err != nil {
		return nil, err
	}
	if p.curTok.Type != token.TokenEOF {
		return nil, &ParseError{Expected: token.TokenEOF, Got: p.curTok}
	}

	return &ast.Program{Token: progTok, Name: nameTok.Literal, Block: block}, nil
}

// block := declarations compound
func (p *Parser) parseBlock() (*ast.Block, error) {
	decls, err := p.parseDeclarations()
	if err != nil {
		return nil, err
	}
	body, err := p.parseCompound()
	if err != nil {
		return nil, err
	}
	return &ast.Block{Declarations: decls, Body: body}, nil
}

// declarations := ("var" (vardecl ";")+)* procdecl*
func (p *Parser) parseDeclarations() ([]ast.Declaration, error) {
	decls := []ast.Declaration{}

	for p.curTok.Type == token.TokenVar {
		if err := p.nextToken(); err != nil {
			return nil, err
		}
		// At least one declaration must follow 'var'.
		for first := true; first || p.curTok.Type == token.TokenIdent; first = false {
			vars, err := p.parseVarDeclaration()
			if err != nil {
				return nil, err
			}
			for _, v := range vars {
				decls = append(decls, v)
			}
			if err := p.eat(token.TokenSemi); err != nil {
				return nil, err
			}
		}
	}

	for p.curTok.Type == token.TokenProcedure {
		proc, err := p.parseProcedureDeclaration()
		if err != nil {
			return nil, err
		}
		decls = append(decls, proc)
	}

	return decls, nil
}

// vardecl := ID ("," ID)* ":" type
func (p *Parser) parseVarDeclaration() ([]*ast.VarDeclaration, error) {
	names, typeName, err := p.parseNameListWithType()
	if err != nil {
		return nil, err
	}
	decls := make([]*ast.VarDeclaration, 0, len(names))
	for _, n := range names {
		decls = append(decls, &ast.VarDeclaration{Token: n, Name: n.Literal, TypeName: typeName})
	}
	return decls, nil
}

// parseNameListWithType parses `ID ("," ID)* ":" type`, shared by variable
// declarations and formal parameter groups.
func (p *Parser) parseNameListWithType() ([]token.Token, string, error) {
	first, err := p.ident()
	if err != nil {
		return nil, "", err
	}
	names := []token.Token{first}

	for p.curTok.Type == token.TokenComma {
		if err := p.nextToken(); err != nil {
			return nil, "", err
		}
		name, err := p.ident()
		if err != nil {
			return nil, "", err
		}
		names = append(names, name)
	}

	if err := p.eat(token.TokenColon); err != nil {
		return nil, "", err
	}
	typeName, err := p.parseType()
	if err != nil {
		return nil, "", err
	}
	return names, typeName, nil
}

// type := "integer" | "real"
func (p *Parser) parseType() (string, error) {
	tok := p.curTok
	if !tok.IsTypeKeyword() {
		return "", p.errorf("expected type name (integer or real), got %s (%q)", tok.Type, tok.Literal)
	}
	if err := p.nextToken(); err != nil {
		return "", err
	}
	return tok.Literal, nil
}

// procdecl := "procedure" ID ("(" paramlist ")")? ";" block ";"
func (p *Parser) parseProcedureDeclaration() (*ast.ProcedureDeclaration, error) {
	procTok := p.curTok
	if err := p.eat(token.TokenProcedure); err != nil {
		return nil, err
	}
	nameTok, err := p.ident()
	if err != nil {
		return nil, err
	}

	params := []*ast.Param{}
	if p.curTok.Type == token.TokenLParen {
		if err := p.nextToken(); err != nil {
			return nil, err
		}
		params, err = p.parseParameterList()
		if err != nil {
			return nil, err
		}
		if err := p.eat(token.TokenRParen); err != nil {
			return nil, err
		}
	}

	if err := p.eat(token.TokenSemi); err != nil {
		return nil, err
	}
	block, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	if err := p.eat(token.TokenSemi); err != nil {
		return nil, err
	}

	return &ast.ProcedureDeclaration{
		Token:  procTok,
		Name:   nameTok.Literal,
		Params: params,
		Block:  block,
	}, nil
}

// paramlist := params (";" params)*
func (p *Parser) parseParameterList() ([]*ast.Param, error) {
	params := []*ast.Param{}
	for {
		names, typeName, err := p.parseNameListWithType()
		if err != nil {
			return nil, err
		}
		for _, n := range names {
			params = append(params, &ast.Param{Token: n, Name: n.Literal, TypeName: typeName})
		}
		if p.curTok.Type != token.TokenSemi {
			return params, nil
		}
		if err := p.nextToken(); err != nil {
			return nil, err
		}
	}
}

// --- Statements ---

// compound := "begin" stmtlist "end"
func (p *Parser) parseCompound() (*ast.Compound, error) {
	beginTok := p.curTok
	if err := p.eat(token.TokenBegin); err != nil {
		return nil, err
	}
	stmts, err := p.parseStatementList()
	if err != nil {
		return nil, err
	}
	if err := p.eat(token.TokenEnd); err != nil {
		return nil, err
	}
	return &ast.Compound{Token: beginTok, Statements: stmts}, nil
}

// stmtlist := stmt (";" stmt)*
func (p *Parser) parseStatementList() ([]ast.Statement, error) {
	stmt, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	stmts := []ast.Statement{stmt}

	for p.curTok.Type == token.TokenSemi {
		if err := p.nextToken(); err != nil {
			return nil, err
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}

	// Two statements with no ';' between them.
	if p.curTok.Type == token.TokenIdent {
		return nil, &ParseError{Expected: token.TokenSemi, Got: p.curTok}
	}
	return stmts, nil
}

// stmt := compound | proccall | assign | empty
func (p *Parser) parseStatement() (ast.Statement, error) {
	switch p.curTok.Type {
	case token.TokenBegin:
		return p.parseCompound()
	case token.TokenIdent:
		// One token of lookahead is all we keep; the raw character after the
		// identifier decides between a call and an assignment.
		if p.l.CurrentChar() == '(' {
			return p.parseProcedureCall()
		}
		return p.parseAssign()
	default:
		return &ast.NoOp{Token: p.curTok}, nil
	}
}

// assign := ID ":=" expr
func (p *Parser) parseAssign() (*ast.Assign, error) {
	target, err := p.ident()
	if err != nil {
		return nil, err
	}
	if err := p.eat(token.TokenAssign); err != nil {
		return nil, err
	}
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.Assign{Token: target, Target: target.Literal, Value: value}, nil
}

// proccall := ID "(" (expr ("," expr)*)? ")"
func (p *Parser) parseProcedureCall() (*ast.ProcedureCall, error) {
	nameTok, err := p.ident()
	if err != nil {
		return nil, err
	}
	if err := p.eat(token.TokenLParen); err != nil {
		return nil, err
	}

	args := []ast.Expression{}
	if p.curTok.Type != token.TokenRParen {
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)

		for p.curTok.Type == token.TokenComma {
			if err := p.nextToken(); err != nil {
				return nil, err
			}
			arg, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
		}
	}

	if err := p.eat(token.TokenRParen); err != nil {
		return nil, err
	}
	return &ast.ProcedureCall{Token: nameTok, Name: nameTok.Literal, Arguments: args}, nil
}

// --- Expressions ---

// expr := term (("+"|"-") term)*
func (p *Parser) parseExpr() (ast.Expression, error) {
	node, err := p.parseTerm()
	if err != nil {
		return nil, err
	}

	for p.curTok.Type == token.TokenPlus || p.curTok.Type == token.TokenMinus {
		opTok := p.curTok
		if err := p.nextToken(); err != nil {
			return nil, err
		}
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		node = &ast.BinaryOp{Token: opTok, Left: node, Operator: opTok.Type, Right: right}
	}
	return node, nil
}

// term := factor (("*"|"div"|"/") factor)*
func (p *Parser) parseTerm() (ast.Expression, error) {
	node, err := p.parseFactor()
	if err != nil {
		return nil, err
	}

	for isMulOp(p.curTok.Type) {
		opTok := p.curTok
		if err := p.nextToken(); err != nil {
			return nil, err
		}
		right, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		node = &ast.BinaryOp{Token: opTok, Left: node, Operator: opTok.Type, Right: right}
	}
	return node, nil
}

func isMulOp(t token.TokenType) bool {
	return t == token.TokenAsterisk || t == token.TokenDiv || t == token.TokenSlash
}

// factor := ("+"|"-") factor | INT | REAL | "(" expr ")" | ID
func (p *Parser) parseFactor() (ast.Expression, error) {
	tok := p.curTok

	switch tok.Type {
	case token.TokenPlus, token.TokenMinus:
		if err := p.nextToken(); err != nil {
			return nil, err
		}
		operand, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryOp{Token: tok, Operator: tok.Type, Operand: operand}, nil

	case token.TokenIntLit:
		value, err := strconv.ParseInt(tok.Literal, 10, 64)
		if err != nil {
			return nil, p.errorf("integer literal %s out of range", tok.Literal)
		}
		if err := p.nextToken(); err != nil {
			return nil, err
		}
		return &ast.NumberLiteral{Token: tok, Int: value}, nil

	case token.TokenRealLit:
		value, err := strconv.ParseFloat(tok.Literal, 64)
		if err != nil {
			return nil, p.errorf("invalid real literal %s", tok.Literal)
		}
		if err := p.nextToken(); err != nil {
			return nil, err
		}
		return &ast.NumberLiteral{Token: tok, IsReal: true, Real: value}, nil

	case token.TokenLParen:
		if err := p.nextToken(); err != nil {
			return nil, err
		}
		node, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.eat(token.TokenRParen); err != nil {
			return nil, err
		}
		return node, nil

	case token.TokenIdent:
		if err := p.nextToken(); err != nil {
			return nil, err
		}
		return &ast.VarRef{Token: tok, Name: tok.Literal}, nil
	}

	return nil, p.errorf("unexpected %s (%q) in expression", tok.Type, tok.Literal)
}
