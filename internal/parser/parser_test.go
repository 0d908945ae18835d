package parser

import (
	"testing"

	"github.com/ariyin/go-brewin/internal/ast"
	"github.com/ariyin/go-brewin/internal/lexer"
)

func parseProgram(t *testing.T, input string) *ast.Program {
	t.Helper()
	p := New(lexer.New(input))
	program := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		t.Fatalf("parser errors: %s", errs.Error())
	}
	return program
}

func parseErrors(t *testing.T, input string) ErrorList {
	t.Helper()
	p := New(lexer.New(input))
	p.ParseProgram()
	errs := p.Errors()
	if len(errs) == 0 {
		t.Fatalf("expected parse errors for %q", input)
	}
	return errs
}

func firstStatement(t *testing.T, body string) ast.Statement {
	t.Helper()
	program := parseProgram(t, "func main() { "+body+" }")
	if len(program.Functions) != 1 {
		t.Fatalf("expected one function, got %d", len(program.Functions))
	}
	stmts := program.Functions[0].Body
	if len(stmts) == 0 {
		t.Fatalf("expected at least one statement")
	}
	return stmts[0]
}

func TestParseEmptyMain(t *testing.T) {
	program := parseProgram(t, "func main() { }")
	if len(program.Functions) != 1 {
		t.Fatalf("expected 1 function, got %d", len(program.Functions))
	}
	fn := program.Functions[0]
	if fn.Name != "main" || len(fn.Params) != 0 || fn.ReturnType != "" {
		t.Errorf("unexpected function: %+v", fn)
	}
}

func TestParseFunctionWithParams(t *testing.T) {
	program := parseProgram(t, "func add(a, b) { return a + b; }")
	fn := program.Functions[0]
	if len(fn.Params) != 2 || fn.Params[0].Name != "a" || fn.Params[1].Name != "b" {
		t.Fatalf("unexpected params: %+v", fn.Params)
	}
}

func TestParseTypedFunction(t *testing.T) {
	program := parseProgram(t, "func add(a: int, b: int) : int { return a + b; }")
	fn := program.Functions[0]
	if fn.ReturnType != "int" {
		t.Errorf("expected return type int, got %q", fn.ReturnType)
	}
	for _, p := range fn.Params {
		if p.VarType != "int" {
			t.Errorf("expected param type int, got %q", p.VarType)
		}
	}
}

func TestParseVoidReturnType(t *testing.T) {
	program := parseProgram(t, "func main() : void { }")
	if got := program.Functions[0].ReturnType; got != "void" {
		t.Errorf("expected void, got %q", got)
	}
}

func TestParseStructDecl(t *testing.T) {
	program := parseProgram(t, `struct node {
		v: int;
		next: node;
	}
	func main() : void { }`)

	if len(program.Structs) != 1 {
		t.Fatalf("expected 1 struct, got %d", len(program.Structs))
	}
	s := program.Structs[0]
	if s.Name != "node" || len(s.Fields) != 2 {
		t.Fatalf("unexpected struct: %+v", s)
	}
	if s.Fields[0].Name != "v" || s.Fields[0].VarType != "int" {
		t.Errorf("unexpected field: %+v", s.Fields[0])
	}
	if s.Fields[1].Name != "next" || s.Fields[1].VarType != "node" {
		t.Errorf("unexpected field: %+v", s.Fields[1])
	}
}

func TestParseVarStatement(t *testing.T) {
	stmt, ok := firstStatement(t, "var x;").(*ast.VarStatement)
	if !ok {
		t.Fatalf("expected VarStatement")
	}
	if stmt.Name != "x" || stmt.VarType != "" {
		t.Errorf("unexpected statement: %+v", stmt)
	}

	typed, ok := firstStatement(t, "var n: node;").(*ast.VarStatement)
	if !ok {
		t.Fatalf("expected VarStatement")
	}
	if typed.Name != "n" || typed.VarType != "node" {
		t.Errorf("unexpected statement: %+v", typed)
	}
}

func TestParseAssignStatement(t *testing.T) {
	stmt, ok := firstStatement(t, "x = 1 + 2;").(*ast.AssignStatement)
	if !ok {
		t.Fatalf("expected AssignStatement")
	}
	if stmt.Name != "x" {
		t.Errorf("expected name x, got %q", stmt.Name)
	}
	if _, ok := stmt.Value.(*ast.InfixExpression); !ok {
		t.Errorf("expected infix value, got %T", stmt.Value)
	}
}

func TestParseDottedAssignment(t *testing.T) {
	stmt, ok := firstStatement(t, "a.b.c = 1;").(*ast.AssignStatement)
	if !ok {
		t.Fatalf("expected AssignStatement")
	}
	if stmt.Name != "a.b.c" {
		t.Errorf("expected dotted name a.b.c, got %q", stmt.Name)
	}
}

func TestParseDottedReference(t *testing.T) {
	stmt, ok := firstStatement(t, "x = a.b;").(*ast.AssignStatement)
	if !ok {
		t.Fatalf("expected AssignStatement")
	}
	ident, ok := stmt.Value.(*ast.Identifier)
	if !ok {
		t.Fatalf("expected identifier, got %T", stmt.Value)
	}
	if ident.Value != "a.b" {
		t.Errorf("expected a.b, got %q", ident.Value)
	}
}

func TestParseCallStatement(t *testing.T) {
	stmt, ok := firstStatement(t, `print("x", 1, y);`).(*ast.CallStatement)
	if !ok {
		t.Fatalf("expected CallStatement")
	}
	if stmt.Call.Function != "print" || len(stmt.Call.Arguments) != 3 {
		t.Errorf("unexpected call: %+v", stmt.Call)
	}
}

func TestParseIfElse(t *testing.T) {
	stmt, ok := firstStatement(t, "if (x < 1) { print(1); } else { print(2); }").(*ast.IfStatement)
	if !ok {
		t.Fatalf("expected IfStatement")
	}
	if stmt.Alternative == nil {
		t.Error("expected else branch")
	}

	bare, ok := firstStatement(t, "if (x) { print(1); }").(*ast.IfStatement)
	if !ok {
		t.Fatalf("expected IfStatement")
	}
	if bare.Alternative != nil {
		t.Error("expected no else branch")
	}
}

func TestParseForStatement(t *testing.T) {
	stmt, ok := firstStatement(t, "for (i = 0; i < 10; i = i + 1) { print(i); }").(*ast.ForStatement)
	if !ok {
		t.Fatalf("expected ForStatement")
	}
	if stmt.Init.Name != "i" || stmt.Update.Name != "i" {
		t.Errorf("unexpected clauses: init=%+v update=%+v", stmt.Init, stmt.Update)
	}
}

func TestParseReturn(t *testing.T) {
	bare, ok := firstStatement(t, "return;").(*ast.ReturnStatement)
	if !ok {
		t.Fatalf("expected ReturnStatement")
	}
	if bare.Value != nil {
		t.Error("expected bare return")
	}

	valued, ok := firstStatement(t, "return x * 2;").(*ast.ReturnStatement)
	if !ok {
		t.Fatalf("expected ReturnStatement")
	}
	if valued.Value == nil {
		t.Error("expected return expression")
	}
}

func TestParseTryCatch(t *testing.T) {
	stmt, ok := firstStatement(t, `try { raise "a"; } catch "a" { print(1); } catch "b" { print(2); }`).(*ast.TryStatement)
	if !ok {
		t.Fatalf("expected TryStatement")
	}
	if len(stmt.Catchers) != 2 {
		t.Fatalf("expected 2 catchers, got %d", len(stmt.Catchers))
	}
	if stmt.Catchers[0].ExceptionType != "a" || stmt.Catchers[1].ExceptionType != "b" {
		t.Errorf("unexpected catch tags: %+v", stmt.Catchers)
	}
}

func TestParseTryWithoutCatchIsError(t *testing.T) {
	parseErrors(t, "func main() { try { print(1); } }")
}

func TestParseRaise(t *testing.T) {
	stmt, ok := firstStatement(t, `raise "oops";`).(*ast.RaiseStatement)
	if !ok {
		t.Fatalf("expected RaiseStatement")
	}
	if _, ok := stmt.Exception.(*ast.StringLiteral); !ok {
		t.Errorf("expected string literal, got %T", stmt.Exception)
	}
}

func TestParseNewExpression(t *testing.T) {
	stmt := firstStatement(t, "x = new node;").(*ast.AssignStatement)
	n, ok := stmt.Value.(*ast.NewExpression)
	if !ok {
		t.Fatalf("expected NewExpression, got %T", stmt.Value)
	}
	if n.TypeName != "node" {
		t.Errorf("expected node, got %q", n.TypeName)
	}
}

func TestOperatorPrecedence(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"x = 1 + 2 * 3;", "(1 + (2 * 3))"},
		{"x = (1 + 2) * 3;", "((1 + 2) * 3)"},
		{"x = 1 < 2 == true;", "((1 < 2) == true)"},
		{"x = a && b || c;", "((a && b) || c)"},
		{"x = !a && b;", "((!a) && b)"},
		{"x = -1 + 2;", "((-1) + 2)"},
		{"x = -(1 + 2);", "(-(1 + 2))"},
		{"x = 1 + 2 == 4 - 1;", "((1 + 2) == (4 - 1))"},
		{"x = a == b != c;", "((a == b) != c)"},
		{"x = 10 / 2 - 3;", "((10 / 2) - 3)"},
	}

	for _, tt := range tests {
		stmt := firstStatement(t, tt.input).(*ast.AssignStatement)
		if got := stmt.Value.String(); got != tt.expected {
			t.Errorf("%s: expected %s, got %s", tt.input, tt.expected, got)
		}
	}
}

func TestParseNestedCalls(t *testing.T) {
	stmt := firstStatement(t, "x = f(g(1), h(2, 3));").(*ast.AssignStatement)
	call, ok := stmt.Value.(*ast.CallExpression)
	if !ok {
		t.Fatalf("expected CallExpression, got %T", stmt.Value)
	}
	if call.Function != "f" || len(call.Arguments) != 2 {
		t.Fatalf("unexpected call: %+v", call)
	}
}

func TestParseErrorsHavePositions(t *testing.T) {
	errs := parseErrors(t, "func main() { var ; }")
	if errs[0].Pos.Line == 0 {
		t.Error("expected a line number on the error")
	}
}

func TestParseMissingSemicolon(t *testing.T) {
	parseErrors(t, "func main() { var x }")
}

func TestParseTopLevelGarbage(t *testing.T) {
	parseErrors(t, "42")
}

func TestParseRecoversAcrossDeclarations(t *testing.T) {
	// One bad declaration should not hide the next one.
	p := New(lexer.New("garbage func main() { }"))
	program := p.ParseProgram()
	if len(p.Errors()) == 0 {
		t.Fatal("expected errors")
	}
	if len(program.Functions) != 1 || program.Functions[0].Name != "main" {
		t.Fatalf("expected main to survive recovery, got %+v", program.Functions)
	}
}
