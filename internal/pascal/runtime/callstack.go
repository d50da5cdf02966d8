package runtime

import (
	"fmt"
	"sort"
	"strings"

	"github.com/arnavsurve/spi/internal/pascal/ast"
)

type RecordKind int

const (
	KindProgram RecordKind = iota
	KindProcedure
)

func (k RecordKind) String() string {
	if k == KindProcedure {
		return "PROCEDURE"
	}
	return "PROGRAM"
}

// ActivationRecord holds the bindings of one program or procedure
// invocation. Enclosing is the frame of the lexically enclosing routine (the
// static link); it is nil for the program frame.
type ActivationRecord struct {
	Name         string
	Kind         RecordKind
	NestingLevel int
	Enclosing    *ActivationRecord

	members map[string]Value
	procs   map[string]*ast.ProcedureDeclaration
}

func NewActivationRecord(name string, kind RecordKind, level int, enclosing *ActivationRecord) *ActivationRecord {
	return &ActivationRecord{
		Name:         name,
		Kind:         kind,
		NestingLevel: level,
		Enclosing:    enclosing,
		members:      make(map[string]Value),
		procs:        make(map[string]*ast.ProcedureDeclaration),
	}
}

func (ar *ActivationRecord) Set(name string, v Value) {
	ar.members[name] = v
}

// Get reads a binding of this frame only.
func (ar *ActivationRecord) Get(name string) (Value, bool) {
	v, ok := ar.members[name]
	return v, ok
}

// DeclareProcedure registers a procedure declared in this frame's block.
func (ar *ActivationRecord) DeclareProcedure(decl *ast.ProcedureDeclaration) {
	ar.procs[decl.Name] = decl
}

// Resolve finds the frame that binds name, following static links outwards.
func (ar *ActivationRecord) Resolve(name string) (*ActivationRecord, bool) {
	for f := ar; f != nil; f = f.Enclosing {
		if _, ok := f.members[name]; ok {
			return f, true
		}
	}
	return nil, false
}

// ResolveProcedure finds a procedure declaration and the frame it was
// declared in, following static links outwards.
func (ar *ActivationRecord) ResolveProcedure(name string) (*ast.ProcedureDeclaration, *ActivationRecord, bool) {
	for f := ar; f != nil; f = f.Enclosing {
		if decl, ok := f.procs[name]; ok {
			return decl, f, true
		}
	}
	return nil, nil, false
}

// Members returns a copy of this frame's bindings.
func (ar *ActivationRecord) Members() map[string]Value {
	out := make(map[string]Value, len(ar.members))
	for k, v := range ar.members {
		out[k] = v
	}
	return out
}

func (ar *ActivationRecord) String() string {
	names := make([]string, 0, len(ar.members))
	for name := range ar.members {
		names = append(names, name)
	}
	sort.Strings(names)

	lines := []string{fmt.Sprintf("%d: %s %s", ar.NestingLevel, ar.Kind, ar.Name)}
	for _, name := range names {
		lines = append(lines, fmt.Sprintf("    %-20s: %s", name, ar.members[name]))
	}
	return strings.Join(lines, "\n")
}

// CallStack is a LIFO stack of activation records; the last element is the
// frame currently executing.
type CallStack struct {
	records []*ActivationRecord
}

func NewCallStack() *CallStack {
	return &CallStack{}
}

func (cs *CallStack) Push(ar *ActivationRecord) {
	cs.records = append(cs.records, ar)
}

// Pop removes and returns the top frame, or nil if the stack is empty.
func (cs *CallStack) Pop() *ActivationRecord {
	if len(cs.records) == 0 {
		return nil
	}
	top := cs.records[len(cs.records)-1]
	cs.records[len(cs.records)-1] = nil
	cs.records = cs.records[:len(cs.records)-1]
	return top
}

// Peek returns the top frame, or nil if the stack is empty.
func (cs *CallStack) Peek() *ActivationRecord {
	if len(cs.records) == 0 {
		return nil
	}
	return cs.records[len(cs.records)-1]
}

// Bottom returns the outermost (program) frame, or nil if the stack is empty.
func (cs *CallStack) Bottom() *ActivationRecord {
	if len(cs.records) == 0 {
		return nil
	}
	return cs.records[0]
}

func (cs *CallStack) Len() int {
	return len(cs.records)
}

func (cs *CallStack) String() string {
	var b strings.Builder
	b.WriteString("CALL STACK")
	for i := len(cs.records) - 1; i >= 0; i-- {
		b.WriteString("\n")
		b.WriteString(cs.records[i].String())
	}
	return b.String()
}
