package runtime

import (
	"strings"
	"testing"

	"github.com/arnavsurve/spi/internal/pascal/ast"
	"github.com/nalgeon/be"
)

func TestCallStackLIFO(t *testing.T) {
	cs := NewCallStack()
	be.Equal(t, cs.Len(), 0)
	be.True(t, cs.Peek() == nil)
	be.True(t, cs.Pop() == nil)

	prog := NewActivationRecord("main", KindProgram, 1, nil)
	proc := NewActivationRecord("alpha", KindProcedure, 2, prog)
	cs.Push(prog)
	cs.Push(proc)

	be.Equal(t, cs.Len(), 2)
	be.True(t, cs.Peek() == proc)
	be.True(t, cs.Bottom() == prog)
	be.True(t, cs.Pop() == proc)
	be.True(t, cs.Pop() == prog)
	be.Equal(t, cs.Len(), 0)
}

func TestResolveFollowsStaticLinks(t *testing.T) {
	prog := NewActivationRecord("main", KindProgram, 1, nil)
	prog.Set("x", Int(1))
	prog.Set("g", Int(7))
	outer := NewActivationRecord("outer", KindProcedure, 2, prog)
	outer.Set("x", Real(2.5))
	inner := NewActivationRecord("inner", KindProcedure, 3, outer)

	owner, ok := inner.Resolve("x")
	be.True(t, ok)
	be.True(t, owner == outer)

	owner, ok = inner.Resolve("g")
	be.True(t, ok)
	be.True(t, owner == prog)

	_, ok = inner.Resolve("missing")
	be.Equal(t, ok, false)

	v, ok := prog.Get("x")
	be.True(t, ok)
	be.Equal(t, v, Int(1))
}

func TestResolveProcedure(t *testing.T) {
	prog := NewActivationRecord("main", KindProgram, 1, nil)
	decl := &ast.ProcedureDeclaration{Name: "alpha"}
	prog.DeclareProcedure(decl)
	frame := NewActivationRecord("alpha", KindProcedure, 2, prog)

	got, declFrame, ok := frame.ResolveProcedure("alpha")
	be.True(t, ok)
	be.True(t, got == decl)
	be.True(t, declFrame == prog)

	_, _, ok = frame.ResolveProcedure("beta")
	be.Equal(t, ok, false)
}

func TestMembersIsACopy(t *testing.T) {
	ar := NewActivationRecord("main", KindProgram, 1, nil)
	ar.Set("a", Int(1))
	m := ar.Members()
	m["a"] = Int(2)
	v, _ := ar.Get("a")
	be.Equal(t, v, Int(1))
}

func TestCallStackString(t *testing.T) {
	cs := NewCallStack()
	prog := NewActivationRecord("main", KindProgram, 1, nil)
	prog.Set("y", Real(25))
	prog.Set("x", Int(2))
	cs.Push(prog)
	cs.Push(NewActivationRecord("alpha", KindProcedure, 2, prog))

	lines := strings.Split(cs.String(), "\n")
	be.Equal(t, lines[0], "CALL STACK")
	be.Equal(t, lines[1], "2: PROCEDURE alpha")
	be.Equal(t, lines[2], "1: PROGRAM main")
	be.True(t, strings.HasPrefix(lines[3], "    x "))
	be.True(t, strings.HasSuffix(lines[3], ": 2"))
	be.True(t, strings.HasSuffix(lines[4], ": 25.0"))
}
