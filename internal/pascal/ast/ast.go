package ast

import (
	"bytes"
	"strings"

	"github.com/arnavsurve/spi/internal/pascal/token"
)

// --- Interfaces ---
type Node interface {
	TokenLiteral() string
	String() string
}

type Statement interface {
	Node
	statementNode()
}

type Expression interface {
	Node
	expressionNode()
	GetToken() token.Token
}

// Declaration is a VarDeclaration or a ProcedureDeclaration.
type Declaration interface {
	Node
	declarationNode()
}

// --- Program ---

// Program -> program name; block.
type Program struct {
	Token token.Token // program
	Name  string
	Block *Block
}

func (p *Program) TokenLiteral() string { return p.Token.Literal }
func (p *Program) String() string {
	var out bytes.Buffer
	out.WriteString("program " + p.Name + ";\n")
	if p.Block != nil {
		out.WriteString(p.Block.String())
	}
	out.WriteString(".")
	return out.String()
}

// Block -> declarations followed by a compound body
type Block struct {
	Declarations []Declaration
	Body         *Compound
}

func (b *Block) TokenLiteral() string {
	if b.Body != nil {
		return b.Body.TokenLiteral()
	}
	return ""
}
func (b *Block) String() string {
	var out bytes.Buffer
	for _, d := range b.Declarations {
		out.WriteString(d.String())
		out.WriteString("\n")
	}
	if b.Body != nil {
		out.WriteString(b.Body.String())
	}
	return out.String()
}

// --- Declarations ---

// VarDeclaration -> var x : integer
type VarDeclaration struct {
	Token    token.Token // the variable's identifier
	Name     string
	TypeName string // "integer" or "real"
}

func (vd *VarDeclaration) declarationNode()     {}
func (vd *VarDeclaration) TokenLiteral() string { return vd.Token.Literal }
func (vd *VarDeclaration) String() string {
	return "var " + vd.Name + " : " + vd.TypeName + ";"
}

// Param -> a : real (one formal parameter)
type Param struct {
	Token    token.Token // the parameter's identifier
	Name     string
	TypeName string
}

func (p *Param) TokenLiteral() string { return p.Token.Literal }
func (p *Param) String() string       { return p.Name + " : " + p.TypeName }

// ProcedureDeclaration -> procedure name(params); block;
type ProcedureDeclaration struct {
	Token  token.Token // The 'procedure' token
	Name   string
	Params []*Param
	Block  *Block
}

func (pd *ProcedureDeclaration) declarationNode()     {}
func (pd *ProcedureDeclaration) TokenLiteral() string { return pd.Token.Literal }
func (pd *ProcedureDeclaration) String() string {
	var out bytes.Buffer
	out.WriteString("procedure " + pd.Name)
	if len(pd.Params) > 0 {
		params := make([]string, 0, len(pd.Params))
		for _, p := range pd.Params {
			params = append(params, p.String())
		}
		out.WriteString("(" + strings.Join(params, "; ") + ")")
	}
	out.WriteString(";\n")
	if pd.Block != nil {
		out.WriteString(pd.Block.String())
	}
	out.WriteString(";")
	return out.String()
}

// --- Statements ---

// Compound -> begin stmt; stmt end
type Compound struct {
	Token      token.Token // begin
	Statements []Statement
}

func (c *Compound) statementNode()       {}
func (c *Compound) TokenLiteral() string { return c.Token.Literal }
func (c *Compound) String() string {
	var out bytes.Buffer
	out.WriteString("begin\n")
	for i, s := range c.Statements {
		str := s.String()
		if str != "" {
			out.WriteString("\t" + strings.ReplaceAll(str, "\n", "\n\t"))
		}
		if i < len(c.Statements)-1 {
			out.WriteString(";")
		}
		out.WriteString("\n")
	}
	out.WriteString("end")
	return out.String()
}

// Assign -> x := expr
type Assign struct {
	Token  token.Token // the target identifier
	Target string
	Value  Expression
}

func (a *Assign) statementNode()       {}
func (a *Assign) TokenLiteral() string { return a.Token.Literal }
func (a *Assign) String() string {
	var out bytes.Buffer
	out.WriteString(a.Target + " := ")
	if a.Value != nil {
		out.WriteString(a.Value.String())
	}
	return out.String()
}

// ProcedureCall -> name(arg, arg)
type ProcedureCall struct {
	Token     token.Token // the procedure identifier
	Name      string
	Arguments []Expression
}

func (pc *ProcedureCall) statementNode()       {}
func (pc *ProcedureCall) TokenLiteral() string { return pc.Token.Literal }
func (pc *ProcedureCall) String() string {
	args := make([]string, 0, len(pc.Arguments))
	for _, a := range pc.Arguments {
		args = append(args, a.String())
	}
	return pc.Name + "(" + strings.Join(args, ", ") + ")"
}

// NoOp is the empty statement.
type NoOp struct {
	Token token.Token // the token that followed the empty statement
}

func (n *NoOp) statementNode()       {}
func (n *NoOp) TokenLiteral() string { return "" }
func (n *NoOp) String() string       { return "" }

// --- Expressions ---

// BinaryOp -> (left op right)
type BinaryOp struct {
	Token    token.Token // +, -, *, div, /
	Left     Expression
	Operator token.TokenType
	Right    Expression
}

func (bo *BinaryOp) expressionNode()       {}
func (bo *BinaryOp) TokenLiteral() string  { return bo.Token.Literal }
func (bo *BinaryOp) GetToken() token.Token { return bo.Token }
func (bo *BinaryOp) String() string {
	var out bytes.Buffer
	out.WriteString("(")
	if bo.Left != nil {
		out.WriteString(bo.Left.String())
	}
	out.WriteString(" " + bo.Token.Literal + " ")
	if bo.Right != nil {
		out.WriteString(bo.Right.String())
	}
	out.WriteString(")")
	return out.String()
}

// UnaryOp -> -x or +x
type UnaryOp struct {
	Token    token.Token // + or -
	Operator token.TokenType
	Operand  Expression
}

func (uo *UnaryOp) expressionNode()       {}
func (uo *UnaryOp) TokenLiteral() string  { return uo.Token.Literal }
func (uo *UnaryOp) GetToken() token.Token { return uo.Token }
func (uo *UnaryOp) String() string {
	if uo.Operand == nil {
		return "(" + uo.Token.Literal + ")"
	}
	return "(" + uo.Token.Literal + uo.Operand.String() + ")"
}

// NumberLiteral -> 42 or 3.14. IsReal selects which of Int and Real is set.
type NumberLiteral struct {
	Token  token.Token
	IsReal bool
	Int    int64
	Real   float64
}

func (nl *NumberLiteral) expressionNode()       {}
func (nl *NumberLiteral) TokenLiteral() string  { return nl.Token.Literal }
func (nl *NumberLiteral) GetToken() token.Token { return nl.Token }
func (nl *NumberLiteral) String() string        { return nl.Token.Literal }

// VarRef -> varName
type VarRef struct {
	Token token.Token // ID
	Name  string
}

func (vr *VarRef) expressionNode()       {}
func (vr *VarRef) TokenLiteral() string  { return vr.Token.Literal }
func (vr *VarRef) GetToken() token.Token { return vr.Token }
func (vr *VarRef) String() string        { return vr.Name }
