// Package ast defines the Abstract Syntax Tree node types for Brewin.
package ast

import (
	"bytes"
	"strings"

	"github.com/ariyin/go-brewin/pkg/token"
)

// Node is the base interface for all AST nodes.
type Node interface {
	// TokenLiteral returns the literal value of the token this node is
	// associated with.
	TokenLiteral() string

	// String returns a source-like representation of the node for
	// debugging and AST dumps.
	String() string

	// Pos returns the position of the node in the source code.
	Pos() token.Position
}

// Expression represents any node that produces a value.
type Expression interface {
	Node
	expressionNode()
}

// Statement represents a node that performs an action.
type Statement interface {
	Node
	statementNode()
}

// Program is the root node of a Brewin AST. Struct and function
// declarations keep their source order; lookup by name is the
// interpreter's concern.
type Program struct {
	Structs   []*StructDecl
	Functions []*FuncDecl
}

func (p *Program) TokenLiteral() string {
	if len(p.Functions) > 0 {
		return p.Functions[0].TokenLiteral()
	}
	return ""
}

func (p *Program) String() string {
	var out bytes.Buffer
	for _, s := range p.Structs {
		out.WriteString(s.String())
		out.WriteString("\n")
	}
	for _, f := range p.Functions {
		out.WriteString(f.String())
		out.WriteString("\n")
	}
	return out.String()
}

func (p *Program) Pos() token.Position {
	if len(p.Structs) > 0 {
		return p.Structs[0].Pos()
	}
	if len(p.Functions) > 0 {
		return p.Functions[0].Pos()
	}
	return token.Position{Line: 1, Column: 1}
}

// StructDecl declares a struct type with its ordered fields.
type StructDecl struct {
	Token  token.Token // the 'struct' token
	Name   string
	Fields []*Field
}

func (s *StructDecl) TokenLiteral() string { return s.Token.Literal }
func (s *StructDecl) Pos() token.Position  { return s.Token.Pos }

func (s *StructDecl) String() string {
	var out bytes.Buffer
	out.WriteString("struct ")
	out.WriteString(s.Name)
	out.WriteString(" {\n")
	for _, f := range s.Fields {
		out.WriteString("  ")
		out.WriteString(f.String())
		out.WriteString(";\n")
	}
	out.WriteString("}")
	return out.String()
}

// Field is a single struct field declaration.
type Field struct {
	Token   token.Token // the field name token
	Name    string
	VarType string
}

func (f *Field) TokenLiteral() string { return f.Token.Literal }
func (f *Field) Pos() token.Position  { return f.Token.Pos }
func (f *Field) String() string       { return f.Name + ": " + f.VarType }

// FuncDecl declares a function. ReturnType and parameter types are empty
// strings in untyped dialects.
type FuncDecl struct {
	Token      token.Token // the 'func' token
	Name       string
	Params     []*Param
	ReturnType string
	Body       []Statement
}

func (f *FuncDecl) TokenLiteral() string { return f.Token.Literal }
func (f *FuncDecl) Pos() token.Position  { return f.Token.Pos }

func (f *FuncDecl) String() string {
	var out bytes.Buffer
	out.WriteString("func ")
	out.WriteString(f.Name)
	out.WriteString("(")
	params := make([]string, 0, len(f.Params))
	for _, p := range f.Params {
		params = append(params, p.String())
	}
	out.WriteString(strings.Join(params, ", "))
	out.WriteString(")")
	if f.ReturnType != "" {
		out.WriteString(" : ")
		out.WriteString(f.ReturnType)
	}
	out.WriteString(" ")
	out.WriteString(blockString(f.Body))
	return out.String()
}

// Param is a single function parameter, optionally typed.
type Param struct {
	Token   token.Token // the parameter name token
	Name    string
	VarType string
}

func (p *Param) TokenLiteral() string { return p.Token.Literal }
func (p *Param) Pos() token.Position  { return p.Token.Pos }

func (p *Param) String() string {
	if p.VarType != "" {
		return p.Name + ": " + p.VarType
	}
	return p.Name
}

func blockString(stmts []Statement) string {
	var out bytes.Buffer
	out.WriteString("{\n")
	for _, s := range stmts {
		out.WriteString("  ")
		out.WriteString(s.String())
		out.WriteString("\n")
	}
	out.WriteString("}")
	return out.String()
}
