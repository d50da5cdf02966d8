package interpreter

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/arnavsurve/spi/internal/pascal/ast"
	"github.com/arnavsurve/spi/internal/pascal/parser"
	"github.com/arnavsurve/spi/internal/pascal/runtime"
	"github.com/arnavsurve/spi/internal/pascal/token"
)

// DefaultMaxDepth bounds the number of live activation records.
const DefaultMaxDepth = 1024

// InternalError means the tree reached the interpreter in a shape the
// semantic analyzer should have rejected.
type InternalError struct {
	Node ast.Node
	Msg  string
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("Internal Error: %s", e.Msg)
}

func internalf(node ast.Node, format string, args ...any) *InternalError {
	return &InternalError{Node: node, Msg: fmt.Sprintf(format, args...)}
}

// Result is the state left behind by a successful run.
type Result struct {
	Program  string
	Bindings map[string]runtime.Value // final bindings of the program frame
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithMaxDepth limits how many activation records may be live at once.
func WithMaxDepth(n int) Option {
	return func(in *Interpreter) {
		if n > 0 {
			in.maxDepth = n
		}
	}
}

// WithLogger traces frame entry and exit at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(in *Interpreter) { in.logger = logger }
}

// WithFrameHook registers fn to be called with the call stack right before
// each frame is popped; the exiting frame is stack.Peek().
func WithFrameHook(fn func(stack *runtime.CallStack)) Option {
	return func(in *Interpreter) { in.onFrameExit = fn }
}

// Interpreter executes a parsed program by walking its tree. An Interpreter
// owns its call stack and must not run concurrently with itself.
type Interpreter struct {
	parser      *parser.Parser
	stack       *runtime.CallStack
	last        *runtime.ActivationRecord
	maxDepth    int
	logger      *slog.Logger
	onFrameExit func(*runtime.CallStack)
}

func New(p *parser.Parser, opts ...Option) *Interpreter {
	in := &Interpreter{
		parser:   p,
		stack:    runtime.NewCallStack(),
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// CallStack exposes the interpreter's stack for diagnostics.
func (in *Interpreter) CallStack() *runtime.CallStack {
	return in.stack
}

// LastFrame returns the most recently popped activation record. After a
// successful Execute this is the program frame.
func (in *Interpreter) LastFrame() *runtime.ActivationRecord {
	return in.last
}

// Execute parses (idempotently) and runs the program. The call stack is empty
// again when Execute returns, whether or not the run succeeded.
func (in *Interpreter) Execute() (*Result, error) {
	prog, err := in.parser.Parse()
	if err != nil {
		return nil, err
	}
	return in.Run(prog)
}

// Run executes an already-parsed program.
func (in *Interpreter) Run(prog *ast.Program) (*Result, error) {
	if prog == nil {
		return nil, errors.New("interpreter: nil program")
	}
	if in.stack.Len() != 0 {
		in.stack = runtime.NewCallStack()
	}

	frame := runtime.NewActivationRecord(prog.Name, runtime.KindProgram, 1, nil)
	if err := in.enter(frame, prog.Token); err != nil {
		return nil, err
	}
	err := in.execBlock(prog.Block, frame)
	in.exit()
	if err != nil {
		return nil, err
	}

	return &Result{Program: prog.Name, Bindings: frame.Members()}, nil
}

func (in *Interpreter) enter(frame *runtime.ActivationRecord, tok token.Token) error {
	if in.stack.Len() >= in.maxDepth {
		return runtime.NewError(runtime.CallDepthExceeded, tok, "more than %d active frames entering '%s'", in.maxDepth, frame.Name)
	}
	in.stack.Push(frame)
	if in.logger != nil {
		in.logger.Debug("enter", "frame", frame.Name, "kind", frame.Kind.String(), "level", frame.NestingLevel)
	}
	return nil
}

func (in *Interpreter) exit() {
	if in.onFrameExit != nil {
		in.onFrameExit(in.stack)
	}
	frame := in.stack.Pop()
	if in.logger != nil && frame != nil {
		in.logger.Debug("leave", "frame", frame.Name, "kind", frame.Kind.String(), "level", frame.NestingLevel)
	}
	in.last = frame
}

// --- Statements ---

func (in *Interpreter) execBlock(block *ast.Block, frame *runtime.ActivationRecord) error {
	for _, decl := range block.Declarations {
		switch d := decl.(type) {
		case *ast.ProcedureDeclaration:
			frame.DeclareProcedure(d)
		case *ast.VarDeclaration:
			// Types were checked by the analyzer; nothing to bind yet.
		default:
			return internalf(decl, "unexpected declaration %T", decl)
		}
	}
	return in.execStatement(block.Body, frame)
}

func (in *Interpreter) execStatement(stmt ast.Statement, frame *runtime.ActivationRecord) error {
	switch s := stmt.(type) {
	case *ast.Compound:
		for _, child := range s.Statements {
			if err := in.execStatement(child, frame); err != nil {
				return err
			}
		}
		return nil

	case *ast.Assign:
		v, err := in.eval(s.Value, frame)
		if err != nil {
			return err
		}
		frame.Set(s.Target, v)
		return nil

	case *ast.ProcedureCall:
		return in.call(s, frame)

	case *ast.NoOp:
		return nil
	}
	return internalf(stmt, "unexpected statement %T", stmt)
}

func (in *Interpreter) call(s *ast.ProcedureCall, caller *runtime.ActivationRecord) error {
	decl, declFrame, ok := caller.ResolveProcedure(s.Name)
	if !ok {
		return internalf(s, "procedure '%s' has no declaration in scope", s.Name)
	}
	if len(decl.Params) != len(s.Arguments) {
		return internalf(s, "'%s' takes %d argument(s), got %d", s.Name, len(decl.Params), len(s.Arguments))
	}

	// Arguments are evaluated in the caller's frame before the callee exists.
	args := make([]runtime.Value, len(s.Arguments))
	for i, arg := range s.Arguments {
		v, err := in.eval(arg, caller)
		if err != nil {
			return err
		}
		args[i] = v
	}

	frame := runtime.NewActivationRecord(decl.Name, runtime.KindProcedure, caller.NestingLevel+1, declFrame)
	for i, param := range decl.Params {
		frame.Set(param.Name, args[i])
	}

	if err := in.enter(frame, s.Token); err != nil {
		return err
	}
	err := in.execBlock(decl.Block, frame)
	in.exit()
	return err
}

// --- Expressions ---

func (in *Interpreter) eval(expr ast.Expression, frame *runtime.ActivationRecord) (runtime.Value, error) {
	switch e := expr.(type) {
	case *ast.NumberLiteral:
		if e.IsReal {
			return runtime.Real(e.Real), nil
		}
		return runtime.Int(e.Int), nil

	case *ast.VarRef:
		owner, ok := frame.Resolve(e.Name)
		if !ok {
			return runtime.Value{}, runtime.NewError(runtime.UnassignedVariable, e.Token, "'%s' is read before it is assigned", e.Name)
		}
		v, _ := owner.Get(e.Name)
		return v, nil

	case *ast.UnaryOp:
		v, err := in.eval(e.Operand, frame)
		if err != nil {
			return runtime.Value{}, err
		}
		out, err := runtime.Negate(e.Operator, v)
		if err != nil {
			return runtime.Value{}, internalf(e, "%v", err)
		}
		return out, nil

	case *ast.BinaryOp:
		left, err := in.eval(e.Left, frame)
		if err != nil {
			return runtime.Value{}, err
		}
		right, err := in.eval(e.Right, frame)
		if err != nil {
			return runtime.Value{}, err
		}
		out, err := runtime.Arith(e.Operator, left, right)
		if errors.Is(err, runtime.ErrDivisionByZero) {
			return runtime.Value{}, runtime.NewError(runtime.DivisionByZero, e.Token, "%s %s %s", left, e.Token.Literal, right)
		}
		if err != nil {
			return runtime.Value{}, internalf(e, "%v", err)
		}
		return out, nil
	}
	return runtime.Value{}, internalf(expr, "unexpected expression %T", expr)
}
