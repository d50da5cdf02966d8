package scope

import (
	"strings"
	"testing"

	"github.com/arnavsurve/spi/internal/pascal/symbols"
	"github.com/nalgeon/be"
)

func TestGlobalScopeHasBuiltinTypes(t *testing.T) {
	global := NewGlobalScope("main")
	be.Equal(t, global.Level, 1)
	be.True(t, global.Outer == nil)

	for _, name := range BuiltinTypes {
		sym, ok := global.LookupCurrentScope(name)
		be.True(t, ok)
		be.Equal(t, sym.Kind, symbols.BuiltinType)
	}
}

func TestDefineRejectsDuplicatesAtSameLevel(t *testing.T) {
	global := NewGlobalScope("main")
	integer, _ := global.Lookup("integer")

	be.Err(t, global.Define(symbols.NewVariable("x", integer)), nil)
	be.Err(t, global.Define(symbols.NewVariable("x", integer)), "already declared")

	// Shadowing in a nested scope is allowed.
	inner := NewScope(global, "p")
	be.Err(t, inner.Define(symbols.NewVariable("x", integer)), nil)
}

func TestLookupWalksOutward(t *testing.T) {
	global := NewGlobalScope("main")
	realType, _ := global.Lookup("real")
	integer, _ := global.Lookup("integer")
	be.Err(t, global.Define(symbols.NewVariable("x", integer)), nil)
	be.Err(t, global.Define(symbols.NewVariable("g", integer)), nil)

	outer := NewScope(global, "outer")
	inner := NewScope(outer, "inner")
	be.Equal(t, outer.Level, 2)
	be.Equal(t, inner.Level, 3)
	be.Err(t, inner.Define(symbols.NewVariable("x", realType)), nil)

	x, ok := inner.Lookup("x")
	be.True(t, ok)
	be.Equal(t, x.Type.Name, "real")

	x, ok = outer.Lookup("x")
	be.True(t, ok)
	be.Equal(t, x.Type.Name, "integer")

	_, ok = inner.Lookup("g")
	be.True(t, ok)
	_, ok = inner.LookupCurrentScope("g")
	be.Equal(t, ok, false)
	_, ok = global.Lookup("missing")
	be.Equal(t, ok, false)
}

func TestScopeString(t *testing.T) {
	global := NewGlobalScope("main")
	integer, _ := global.Lookup("integer")
	inner := NewScope(global, "alpha")

	proc := symbols.NewProcedure("alpha")
	proc.Params = []*symbols.Symbol{symbols.NewVariable("a", integer)}
	be.Err(t, global.Define(proc), nil)
	be.Err(t, inner.Define(symbols.NewVariable("a", integer)), nil)

	out := global.String()
	be.True(t, strings.HasPrefix(out, "scope main (level 1)\n"))
	be.True(t, strings.Contains(out, "<procedure alpha(<a:integer>)>"))

	be.True(t, strings.HasPrefix(inner.String(), "scope alpha (level 2) in main\n"))
	be.True(t, strings.Contains(inner.String(), "<a:integer>"))
}
