package ast

import (
	"strings"
	"testing"

	"github.com/ariyin/go-brewin/pkg/token"
)

func TestProgramString(t *testing.T) {
	program := &Program{
		Structs: []*StructDecl{
			{
				Token: token.Token{Type: token.STRUCT, Literal: "struct"},
				Name:  "node",
				Fields: []*Field{
					{Name: "v", VarType: "int"},
					{Name: "next", VarType: "node"},
				},
			},
		},
		Functions: []*FuncDecl{
			{
				Token:      token.Token{Type: token.FUNC, Literal: "func"},
				Name:       "main",
				ReturnType: "void",
				Body: []Statement{
					&VarStatement{Name: "x", VarType: "int"},
					&AssignStatement{
						Name: "x",
						Value: &InfixExpression{
							Operator: "+",
							Left:     &IntegerLiteral{Token: token.Token{Literal: "1"}, Value: 1},
							Right:    &IntegerLiteral{Token: token.Token{Literal: "2"}, Value: 2},
						},
					},
				},
			},
		},
	}

	out := program.String()
	for _, want := range []string{
		"struct node {",
		"v: int;",
		"next: node;",
		"func main() : void {",
		"var x: int;",
		"x = (1 + 2);",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestExpressionStrings(t *testing.T) {
	tests := []struct {
		expr     Expression
		expected string
	}{
		{&StringLiteral{Value: "hi"}, `"hi"`},
		{&NilLiteral{}, "nil"},
		{&Identifier{Value: "a.b.c"}, "a.b.c"},
		{&PrefixExpression{Operator: "neg", Right: &Identifier{Value: "x"}}, "(-x)"},
		{&PrefixExpression{Operator: "!", Right: &Identifier{Value: "b"}}, "(!b)"},
		{&NewExpression{TypeName: "node"}, "new node"},
		{
			&CallExpression{
				Function: "f",
				Arguments: []Expression{
					&Identifier{Value: "x"},
					&IntegerLiteral{Token: token.Token{Literal: "3"}, Value: 3},
				},
			},
			"f(x, 3)",
		},
	}
	for _, tt := range tests {
		if got := tt.expr.String(); got != tt.expected {
			t.Errorf("expected %q, got %q", tt.expected, got)
		}
	}
}

func TestStatementStrings(t *testing.T) {
	ret := &ReturnStatement{}
	if ret.String() != "return;" {
		t.Errorf("bare return: got %q", ret.String())
	}

	try := &TryStatement{
		Body: []Statement{
			&RaiseStatement{Exception: &StringLiteral{Value: "x"}},
		},
		Catchers: []*CatchClause{
			{ExceptionType: "x", Body: []Statement{}},
		},
	}
	out := try.String()
	for _, want := range []string{"try {", `raise "x";`, `catch "x"`} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in %q", want, out)
		}
	}
}
