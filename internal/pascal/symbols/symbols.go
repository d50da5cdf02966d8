package symbols

import (
	"fmt"
	"strings"
)

type SymbolKind int

const (
	BuiltinType SymbolKind = iota
	Variable
	Procedure
)

func (k SymbolKind) String() string {
	switch k {
	case BuiltinType:
		return "type"
	case Variable:
		return "variable"
	case Procedure:
		return "procedure"
	}
	return "unknown"
}

// Symbol is a compile-time fact about a declared name.
type Symbol struct {
	Name string
	Kind SymbolKind
	Type *Symbol // declared type for variables; nil otherwise

	// --- Procedure specific info ---
	Params []*Symbol
}

func NewBuiltinType(name string) *Symbol {
	return &Symbol{Name: name, Kind: BuiltinType}
}

func NewVariable(name string, typ *Symbol) *Symbol {
	return &Symbol{Name: name, Kind: Variable, Type: typ}
}

func NewProcedure(name string) *Symbol {
	return &Symbol{Name: name, Kind: Procedure}
}

// Arity is the number of declared parameters of a procedure symbol.
func (s *Symbol) Arity() int {
	return len(s.Params)
}

func (s *Symbol) String() string {
	switch s.Kind {
	case Variable:
		if s.Type != nil {
			return fmt.Sprintf("<%s:%s>", s.Name, s.Type.Name)
		}
		return fmt.Sprintf("<%s:?>", s.Name)
	case Procedure:
		params := make([]string, 0, len(s.Params))
		for _, p := range s.Params {
			params = append(params, p.String())
		}
		return fmt.Sprintf("<procedure %s(%s)>", s.Name, strings.Join(params, ", "))
	}
	return s.Name
}
