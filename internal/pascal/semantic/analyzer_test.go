package semantic

import (
	"errors"
	"testing"

	"github.com/arnavsurve/spi/internal/pascal/ast"
	"github.com/arnavsurve/spi/internal/pascal/lexer"
	"github.com/arnavsurve/spi/internal/pascal/parser"
	"github.com/arnavsurve/spi/internal/pascal/scope"
	"github.com/arnavsurve/spi/internal/pascal/symbols"
	"github.com/nalgeon/be"
)

func parse(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, err := parser.NewParser(lexer.NewLexer(src)).Parse()
	be.Err(t, err, nil)
	return prog
}

func analyze(t *testing.T, src string) error {
	t.Helper()
	return NewAnalyzer().Analyze(parse(t, src))
}

func semanticErr(t *testing.T, err error) *SemanticError {
	t.Helper()
	var semErr *SemanticError
	if !errors.As(err, &semErr) {
		t.Fatalf("expected *SemanticError, got %T (%v)", err, err)
	}
	return semErr
}

func TestValidPrograms(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"expression", `program p; var x, y : integer; begin x := 2; y := 10 * x + 10 * x / 4 end.`},
		{"shadowing", `
program p;
var x : integer;
procedure q;
var x : real;
begin
   x := 1.5
end;
begin
   x := 1;
   q()
end.`},
		{"outer variable from nested procedure", `
program p;
var a : integer;
procedure outer(b : integer);
   procedure inner(c : integer);
   begin
      a := b + c
   end;
begin
   inner(b)
end;
begin
   outer(1)
end.`},
		{"recursion", `
program p;
procedure r(n : integer);
begin
   r(n - 1)
end;
begin
end.`},
		{"empty program", `program p; begin end.`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			be.Err(t, analyze(t, tt.src), nil)
		})
	}
}

func TestDuplicateIdentifier(t *testing.T) {
	err := analyze(t, `
program p;
var
   x : integer;
   x : integer;
begin
end.`)

	be.Err(t, err, ErrDuplicateIdentifier)
	semErr := semanticErr(t, err)
	be.Equal(t, semErr.Kind, DuplicateIdentifier)
	be.Equal(t, semErr.Name, "x")
	be.Equal(t, semErr.Token.Line, 5)
	be.Equal(t, semErr.Token.Column, 4)
}

func TestDuplicateAcrossTypes(t *testing.T) {
	err := analyze(t, `program p; var a : integer; a : real; begin end.`)
	be.Err(t, err, ErrDuplicateIdentifier)
}

func TestDuplicateProcedure(t *testing.T) {
	err := analyze(t, `
program p;
procedure q; begin end;
procedure q; begin end;
begin end.`)
	be.Err(t, err, ErrDuplicateIdentifier)
}

func TestDuplicateParameter(t *testing.T) {
	err := analyze(t, `program p; procedure q(a : integer; a : real); begin end; begin end.`)
	be.Err(t, err, ErrDuplicateIdentifier)
}

func TestLocalCollidesWithParameter(t *testing.T) {
	err := analyze(t, `program p; procedure q(a : integer); var a : real; begin end; begin end.`)
	be.Err(t, err, ErrDuplicateIdentifier)
}

func TestNameNotFound(t *testing.T) {
	tests := []struct {
		name string
		src  string
		id   string
	}{
		{"undeclared read", `program p; var y : integer; begin y := x end.`, "x"},
		{"undeclared target", `program p; begin y := 1 end.`, "y"},
		{"undeclared procedure", `program p; begin q() end.`, "q"},
		{"procedure local not visible outside", `
program p;
var y : integer;
procedure q;
var z : integer;
begin
   z := 1
end;
begin
   y := z
end.`, "z"},
		{"undeclared argument", `program p; procedure q(a : integer); begin end; begin q(b) end.`, "b"},
		{"procedure used as variable", `program p; var y : integer; procedure q; begin end; begin y := q end.`, "q"},
		{"variable called as procedure", `program p; var y : integer; begin y() end.`, "y"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := analyze(t, tt.src)
			be.Err(t, err, ErrNameNotFound)
			be.Equal(t, semanticErr(t, err).Name, tt.id)
		})
	}
}

func TestArgumentMismatch(t *testing.T) {
	decl := `program p; procedure q(a : integer); begin end; begin `
	for _, call := range []string{"q()", "q(1, 2)"} {
		err := analyze(t, decl+call+" end.")
		be.Err(t, err, ErrArgumentMismatch)
		semErr := semanticErr(t, err)
		be.Equal(t, semErr.Kind, ArgumentMismatch)
		be.Equal(t, semErr.Name, "q")
	}
	be.Err(t, analyze(t, decl+"q(1) end."), nil)
}

func TestFailFastReportsFirstError(t *testing.T) {
	err := analyze(t, `program p; var a : integer; a : integer; begin b := c end.`)
	be.Err(t, err, ErrDuplicateIdentifier)
}

func TestScopeHook(t *testing.T) {
	var seen []*scope.Scope
	a := NewAnalyzer(WithScopeHook(func(sc *scope.Scope) { seen = append(seen, sc) }))

	err := a.Analyze(parse(t, `
program main;
var x : integer;
procedure alpha(a : real);
   var y : integer;
   procedure beta;
   begin
   end;
begin
end;
begin
end.`))
	be.Err(t, err, nil)

	// Scopes are reported innermost first.
	if len(seen) != 3 {
		t.Fatalf("expected 3 scopes, got=%d", len(seen))
	}
	beta, alpha, global := seen[0], seen[1], seen[2]

	be.Equal(t, global.Name, "main")
	be.Equal(t, global.Level, 1)
	be.True(t, global.Outer == nil)
	be.Equal(t, alpha.Level, 2)
	be.True(t, alpha.Outer == global)
	be.Equal(t, beta.Level, 3)
	be.True(t, beta.Outer == alpha)

	proc, ok := global.LookupCurrentScope("alpha")
	be.True(t, ok)
	be.Equal(t, proc.Kind, symbols.Procedure)
	be.Equal(t, proc.Arity(), 1)
	be.Equal(t, proc.Params[0].Type.Name, "real")

	_, ok = alpha.LookupCurrentScope("a")
	be.True(t, ok)
	_, ok = beta.LookupCurrentScope("y")
	be.Equal(t, ok, false)
	y, ok := beta.Lookup("y")
	be.True(t, ok)
	be.Equal(t, y.Type.Name, "integer")
}

func TestAnalyzerIsReusable(t *testing.T) {
	a := NewAnalyzer()
	prog := parse(t, `program p; var x : integer; begin x := 1 end.`)
	be.Err(t, a.Analyze(prog), nil)
	be.Err(t, a.Analyze(prog), nil)
}
