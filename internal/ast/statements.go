package ast

import (
	"bytes"

	"github.com/ariyin/go-brewin/pkg/token"
)

// VarStatement declares a variable: var x; or var x: T;
type VarStatement struct {
	Token   token.Token // the 'var' token
	Name    string
	VarType string // empty in untyped dialects
}

func (vs *VarStatement) statementNode()       {}
func (vs *VarStatement) TokenLiteral() string { return vs.Token.Literal }
func (vs *VarStatement) Pos() token.Position  { return vs.Token.Pos }

func (vs *VarStatement) String() string {
	if vs.VarType != "" {
		return "var " + vs.Name + ": " + vs.VarType + ";"
	}
	return "var " + vs.Name + ";"
}

// AssignStatement assigns an expression to a name. Name may be a dotted
// field path in the struct dialect.
type AssignStatement struct {
	Token token.Token // the name token
	Name  string
	Value Expression
}

func (as *AssignStatement) statementNode()       {}
func (as *AssignStatement) TokenLiteral() string { return as.Token.Literal }
func (as *AssignStatement) Pos() token.Position  { return as.Token.Pos }

func (as *AssignStatement) String() string {
	return as.Name + " = " + as.Value.String() + ";"
}

// CallStatement is a function call executed for its side effects.
type CallStatement struct {
	Call *CallExpression
}

func (cs *CallStatement) statementNode()       {}
func (cs *CallStatement) TokenLiteral() string { return cs.Call.TokenLiteral() }
func (cs *CallStatement) String() string       { return cs.Call.String() + ";" }
func (cs *CallStatement) Pos() token.Position  { return cs.Call.Pos() }

// IfStatement executes Consequence when the condition holds, otherwise
// Alternative (which may be nil).
type IfStatement struct {
	Token       token.Token // the 'if' token
	Condition   Expression
	Consequence []Statement
	Alternative []Statement
}

func (is *IfStatement) statementNode()       {}
func (is *IfStatement) TokenLiteral() string { return is.Token.Literal }
func (is *IfStatement) Pos() token.Position  { return is.Token.Pos }

func (is *IfStatement) String() string {
	var out bytes.Buffer
	out.WriteString("if (")
	out.WriteString(is.Condition.String())
	out.WriteString(") ")
	out.WriteString(blockString(is.Consequence))
	if is.Alternative != nil {
		out.WriteString(" else ")
		out.WriteString(blockString(is.Alternative))
	}
	return out.String()
}

// ForStatement is a C-style loop. Init and Update are assignments; the
// grammar has no empty-clause form.
type ForStatement struct {
	Token     token.Token // the 'for' token
	Init      *AssignStatement
	Condition Expression
	Update    *AssignStatement
	Body      []Statement
}

func (fs *ForStatement) statementNode()       {}
func (fs *ForStatement) TokenLiteral() string { return fs.Token.Literal }
func (fs *ForStatement) Pos() token.Position  { return fs.Token.Pos }

func (fs *ForStatement) String() string {
	var out bytes.Buffer
	out.WriteString("for (")
	out.WriteString(fs.Init.Name + " = " + fs.Init.Value.String())
	out.WriteString("; ")
	out.WriteString(fs.Condition.String())
	out.WriteString("; ")
	out.WriteString(fs.Update.Name + " = " + fs.Update.Value.String())
	out.WriteString(") ")
	out.WriteString(blockString(fs.Body))
	return out.String()
}

// ReturnStatement returns from the enclosing function. Value is nil for a
// bare return.
type ReturnStatement struct {
	Token token.Token // the 'return' token
	Value Expression
}

func (rs *ReturnStatement) statementNode()       {}
func (rs *ReturnStatement) TokenLiteral() string { return rs.Token.Literal }
func (rs *ReturnStatement) Pos() token.Position  { return rs.Token.Pos }

func (rs *ReturnStatement) String() string {
	if rs.Value != nil {
		return "return " + rs.Value.String() + ";"
	}
	return "return;"
}

// TryStatement guards its body with one or more catch clauses.
type TryStatement struct {
	Token    token.Token // the 'try' token
	Body     []Statement
	Catchers []*CatchClause
}

func (ts *TryStatement) statementNode()       {}
func (ts *TryStatement) TokenLiteral() string { return ts.Token.Literal }
func (ts *TryStatement) Pos() token.Position  { return ts.Token.Pos }

func (ts *TryStatement) String() string {
	var out bytes.Buffer
	out.WriteString("try ")
	out.WriteString(blockString(ts.Body))
	for _, c := range ts.Catchers {
		out.WriteString(" ")
		out.WriteString(c.String())
	}
	return out.String()
}

// CatchClause handles raises whose tag equals ExceptionType.
type CatchClause struct {
	Token         token.Token // the 'catch' token
	ExceptionType string
	Body          []Statement
}

func (cc *CatchClause) TokenLiteral() string { return cc.Token.Literal }
func (cc *CatchClause) Pos() token.Position  { return cc.Token.Pos }

func (cc *CatchClause) String() string {
	return `catch "` + cc.ExceptionType + `" ` + blockString(cc.Body)
}

// RaiseStatement raises an exception; the expression must evaluate to a
// string tag.
type RaiseStatement struct {
	Token     token.Token // the 'raise' token
	Exception Expression
}

func (rs *RaiseStatement) statementNode()       {}
func (rs *RaiseStatement) TokenLiteral() string { return rs.Token.Literal }
func (rs *RaiseStatement) Pos() token.Position  { return rs.Token.Pos }

func (rs *RaiseStatement) String() string {
	return "raise " + rs.Exception.String() + ";"
}
