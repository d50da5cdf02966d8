package semantic

import (
	"errors"
	"fmt"

	"github.com/arnavsurve/spi/internal/pascal/ast"
	"github.com/arnavsurve/spi/internal/pascal/scope"
	"github.com/arnavsurve/spi/internal/pascal/symbols"
	"github.com/arnavsurve/spi/internal/pascal/token"
)

type ErrorKind int

const (
	NameNotFound ErrorKind = iota + 1
	DuplicateIdentifier
	ArgumentMismatch
)

func (k ErrorKind) String() string {
	switch k {
	case NameNotFound:
		return "Identifier not found"
	case DuplicateIdentifier:
		return "Duplicate identifier"
	case ArgumentMismatch:
		return "Procedure formal and actual parameters mismatch"
	}
	return "Semantic error"
}

// Sentinels for errors.Is matching on SemanticError.Kind.
var (
	ErrNameNotFound        = errors.New("name not found")
	ErrDuplicateIdentifier = errors.New("duplicate identifier")
	ErrArgumentMismatch    = errors.New("argument mismatch")
)

type SemanticError struct {
	Kind  ErrorKind
	Name  string
	Token token.Token
	Msg   string
}

func (e *SemanticError) Error() string {
	return fmt.Sprintf("%d:%d: Semantic Error: %s: %s", e.Token.Line, e.Token.Column, e.Kind, e.Msg)
}

func (e *SemanticError) Is(target error) bool {
	switch target {
	case ErrNameNotFound:
		return e.Kind == NameNotFound
	case ErrDuplicateIdentifier:
		return e.Kind == DuplicateIdentifier
	case ErrArgumentMismatch:
		return e.Kind == ArgumentMismatch
	}
	return false
}

func newError(kind ErrorKind, tok token.Token, name, format string, args ...any) *SemanticError {
	return &SemanticError{Kind: kind, Name: name, Token: tok, Msg: fmt.Sprintf(format, args...)}
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithScopeHook registers fn to be called with every scope just before the
// analyzer leaves it.
func WithScopeHook(fn func(*scope.Scope)) Option {
	return func(a *Analyzer) { a.onScope = fn }
}

// Analyzer checks a program for undeclared names, duplicate declarations and
// call arity. It keeps no state between runs, so one Analyzer can check any
// number of programs.
type Analyzer struct {
	onScope func(*scope.Scope)
}

func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze walks the program once and returns the first violation found.
func (a *Analyzer) Analyze(prog *ast.Program) error {
	if prog == nil {
		return errors.New("semantic: nil program")
	}
	global := scope.NewGlobalScope(prog.Name)
	if err := a.visitBlock(prog.Block, global); err != nil {
		return err
	}
	a.leave(global)
	return nil
}

func (a *Analyzer) leave(sc *scope.Scope) {
	if a.onScope != nil {
		a.onScope(sc)
	}
}

func (a *Analyzer) visitBlock(block *ast.Block, sc *scope.Scope) error {
	for _, decl := range block.Declarations {
		var err error
		switch d := decl.(type) {
		case *ast.VarDeclaration:
			err = a.visitVarDeclaration(d, sc)
		case *ast.ProcedureDeclaration:
			err = a.visitProcedureDeclaration(d, sc)
		default:
			err = fmt.Errorf("semantic: unexpected declaration %T", decl)
		}
		if err != nil {
			return err
		}
	}
	return a.visitStatement(block.Body, sc)
}

// resolveType finds the built-in type symbol named by typeName.
func (a *Analyzer) resolveType(tok token.Token, typeName string, sc *scope.Scope) (*symbols.Symbol, error) {
	typ, ok := sc.Lookup(typeName)
	if !ok || typ.Kind != symbols.BuiltinType {
		return nil, newError(NameNotFound, tok, typeName, "unknown type '%s'", typeName)
	}
	return typ, nil
}

func (a *Analyzer) visitVarDeclaration(d *ast.VarDeclaration, sc *scope.Scope) error {
	typ, err := a.resolveType(d.Token, d.TypeName, sc)
	if err != nil {
		return err
	}
	if _, exists := sc.LookupCurrentScope(d.Name); exists {
		return newError(DuplicateIdentifier, d.Token, d.Name, "'%s' is already declared in '%s'", d.Name, sc.Name)
	}
	return sc.Define(symbols.NewVariable(d.Name, typ))
}

func (a *Analyzer) visitProcedureDeclaration(d *ast.ProcedureDeclaration, sc *scope.Scope) error {
	if _, exists := sc.LookupCurrentScope(d.Name); exists {
		return newError(DuplicateIdentifier, d.Token, d.Name, "'%s' is already declared in '%s'", d.Name, sc.Name)
	}
	// Defined before the body is opened so the procedure can call itself.
	proc := symbols.NewProcedure(d.Name)
	if err := sc.Define(proc); err != nil {
		return err
	}

	procScope := scope.NewScope(sc, d.Name)
	for _, param := range d.Params {
		typ, err := a.resolveType(param.Token, param.TypeName, procScope)
		if err != nil {
			return err
		}
		if _, exists := procScope.LookupCurrentScope(param.Name); exists {
			return newError(DuplicateIdentifier, param.Token, param.Name, "parameter '%s' is declared twice in '%s'", param.Name, d.Name)
		}
		v := symbols.NewVariable(param.Name, typ)
		if err := procScope.Define(v); err != nil {
			return err
		}
		proc.Params = append(proc.Params, v)
	}

	if err := a.visitBlock(d.Block, procScope); err != nil {
		return err
	}
	a.leave(procScope)
	return nil
}

func (a *Analyzer) visitStatement(stmt ast.Statement, sc *scope.Scope) error {
	switch s := stmt.(type) {
	case *ast.Compound:
		for _, child := range s.Statements {
			if err := a.visitStatement(child, sc); err != nil {
				return err
			}
		}
		return nil

	case *ast.Assign:
		if err := a.lookupVariable(s.Token, s.Target, sc); err != nil {
			return err
		}
		return a.visitExpression(s.Value, sc)

	case *ast.ProcedureCall:
		sym, ok := sc.Lookup(s.Name)
		if !ok {
			return newError(NameNotFound, s.Token, s.Name, "procedure '%s' is not declared", s.Name)
		}
		if sym.Kind != symbols.Procedure {
			return newError(NameNotFound, s.Token, s.Name, "'%s' is a %s, not a procedure", s.Name, sym.Kind)
		}
		if len(s.Arguments) != sym.Arity() {
			return newError(ArgumentMismatch, s.Token, s.Name, "'%s' takes %d argument(s), got %d", s.Name, sym.Arity(), len(s.Arguments))
		}
		for _, arg := range s.Arguments {
			if err := a.visitExpression(arg, sc); err != nil {
				return err
			}
		}
		return nil

	case *ast.NoOp:
		return nil
	}
	return fmt.Errorf("semantic: unexpected statement %T", stmt)
}

func (a *Analyzer) visitExpression(expr ast.Expression, sc *scope.Scope) error {
	switch e := expr.(type) {
	case *ast.BinaryOp:
		if err := a.visitExpression(e.Left, sc); err != nil {
			return err
		}
		return a.visitExpression(e.Right, sc)
	case *ast.UnaryOp:
		return a.visitExpression(e.Operand, sc)
	case *ast.NumberLiteral:
		return nil
	case *ast.VarRef:
		return a.lookupVariable(e.Token, e.Name, sc)
	}
	return fmt.Errorf("semantic: unexpected expression %T", expr)
}

// lookupVariable resolves name through the whole scope chain and requires it
// to be a variable.
func (a *Analyzer) lookupVariable(tok token.Token, name string, sc *scope.Scope) error {
	sym, ok := sc.Lookup(name)
	if !ok {
		return newError(NameNotFound, tok, name, "'%s' is not declared", name)
	}
	if sym.Kind != symbols.Variable {
		return newError(NameNotFound, tok, name, "'%s' is a %s, not a variable", name, sym.Kind)
	}
	return nil
}
