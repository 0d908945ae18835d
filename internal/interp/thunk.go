package interp

import "github.com/ariyin/go-brewin/internal/ast"

// Thunk is a deferred expression: the unevaluated AST node plus the
// environment snapshot captured where the thunk was created. The memo slot
// makes forcing idempotent - a thunk resolves (or raises) exactly once and
// every later force observes the same outcome.
//
// Thunks are opaque to the language. They implement Value only so the
// environment can store them; any operation that inspects a value must go
// through the interpreter's force first.
type Thunk struct {
	expr ast.Expression
	env  *Environment

	resolved Value  // non-nil once forced successfully
	raised   string // exception tag once forcing raised
	didRaise bool
}

// NewThunk suspends expr over the captured environment snapshot.
func NewThunk(expr ast.Expression, env *Environment) *Thunk {
	return &Thunk{expr: expr, env: env}
}

// Type identifies the thunk for diagnostics. No language-level operation
// ever observes it.
func (t *Thunk) Type() string { return "lazy" }

func (t *Thunk) String() string {
	if t.didRaise {
		return "<thunk raise " + t.raised + ">"
	}
	if t.resolved != nil {
		return "<thunk " + t.resolved.String() + ">"
	}
	return "<thunk " + t.expr.String() + ">"
}

// Expr returns the suspended expression.
func (t *Thunk) Expr() ast.Expression { return t.expr }

// Env returns the captured environment snapshot.
func (t *Thunk) Env() *Environment { return t.env }

// Memo returns the memoized outcome: the resolved value, or the raised
// tag. Both zero values mean the thunk has not been forced yet.
func (t *Thunk) Memo() (Value, string, bool) {
	return t.resolved, t.raised, t.didRaise
}

// resolve memoizes a successful force. The expression and environment are
// released; the thunk can never be evaluated again.
func (t *Thunk) resolve(v Value) {
	t.resolved = v
	t.expr = nil
	t.env = nil
}

// raise memoizes a raising force. Re-forcing re-raises the same tag
// without re-evaluating the expression.
func (t *Thunk) raise(tag string) {
	t.didRaise = true
	t.raised = tag
	t.expr = nil
	t.env = nil
}
