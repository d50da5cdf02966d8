package scope

import (
	"fmt"
	"sort"
	"strings"

	"github.com/arnavsurve/spi/internal/pascal/symbols"
)

// BuiltinTypes are seeded into every global scope.
var BuiltinTypes = []string{"integer", "real"}

// --- Scope ---

// Scope is one level of the nested symbol table. Outer is a non-owning link
// to the lexically enclosing scope and is fixed at construction.
type Scope struct {
	Symbols map[string]*symbols.Symbol
	Outer   *Scope
	Name    string
	Level   int
}

// NewGlobalScope creates a level-1 scope holding the built-in types.
func NewGlobalScope(name string) *Scope {
	s := &Scope{
		Symbols: make(map[string]*symbols.Symbol),
		Name:    name,
		Level:   1,
	}
	for _, t := range BuiltinTypes {
		s.Symbols[t] = symbols.NewBuiltinType(t)
	}
	return s
}

// NewScope creates a scope nested one level inside outer.
func NewScope(outer *Scope, name string) *Scope {
	level := 1
	if outer != nil {
		level = outer.Level + 1
	}
	return &Scope{
		Symbols: make(map[string]*symbols.Symbol),
		Outer:   outer,
		Name:    name,
		Level:   level,
	}
}

// Define adds a symbol ONLY to the current scope level.
// It returns an error if the symbol already exists at this level.
func (s *Scope) Define(sym *symbols.Symbol) error {
	if _, exists := s.Symbols[sym.Name]; exists {
		return fmt.Errorf("symbol '%s' already declared in scope '%s'", sym.Name, s.Name)
	}
	s.Symbols[sym.Name] = sym
	return nil
}

// Lookup searches for a symbol starting from the current scope and traversing outwards.
func (s *Scope) Lookup(name string) (*symbols.Symbol, bool) {
	for scope := s; scope != nil; scope = scope.Outer {
		if sym, ok := scope.Symbols[name]; ok {
			return sym, true
		}
	}
	return nil, false
}

// LookupCurrentScope checks ONLY the current scope level.
func (s *Scope) LookupCurrentScope(name string) (*symbols.Symbol, bool) {
	sym, ok := s.Symbols[name]
	return sym, ok
}

func (s *Scope) String() string {
	names := make([]string, 0, len(s.Symbols))
	for name := range s.Symbols {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	fmt.Fprintf(&b, "scope %s (level %d)", s.Name, s.Level)
	if s.Outer != nil {
		fmt.Fprintf(&b, " in %s", s.Outer.Name)
	}
	for _, name := range names {
		fmt.Fprintf(&b, "\n  %-12s: %s", name, s.Symbols[name])
	}
	return b.String()
}
