package runtime

import (
	"errors"
	"fmt"

	"github.com/arnavsurve/spi/internal/pascal/token"
)

type ErrorKind int

const (
	DivisionByZero ErrorKind = iota + 1
	UnassignedVariable
	CallDepthExceeded
)

func (k ErrorKind) String() string {
	switch k {
	case DivisionByZero:
		return "division by zero"
	case UnassignedVariable:
		return "unassigned variable"
	case CallDepthExceeded:
		return "call depth exceeded"
	}
	return "runtime error"
}

var ErrDivisionByZero = errors.New("division by zero")

// RuntimeError is a failure of a well-formed program while it runs.
type RuntimeError struct {
	Kind  ErrorKind
	Token token.Token
	Msg   string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%d:%d: Runtime Error: %s: %s", e.Token.Line, e.Token.Column, e.Kind, e.Msg)
}

func (e *RuntimeError) Is(target error) bool {
	return target == ErrDivisionByZero && e.Kind == DivisionByZero
}

func NewError(kind ErrorKind, tok token.Token, format string, args ...any) *RuntimeError {
	return &RuntimeError{Kind: kind, Token: tok, Msg: fmt.Sprintf(format, args...)}
}
