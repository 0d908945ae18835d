package interp

import (
	"errors"
	"strings"

	"github.com/ariyin/go-brewin/internal/ast"
)

// ctlKind is the statement-level control status. Raises travel as errors
// (*RaiseSignal), so the only non-default status is a return.
type ctlKind int

const (
	ctlNone ctlKind = iota
	ctlReturn
)

// control carries a return value (a plain value, or a thunk in the lazy
// dialect) up to the enclosing function call.
type control struct {
	kind  ctlKind
	value Value
}

// execBlock executes statements in order, stopping at the first return or
// error.
func (i *Interpreter) execBlock(stmts []ast.Statement) (control, error) {
	for _, stmt := range stmts {
		ctl, err := i.execStatement(stmt)
		if err != nil {
			return control{}, err
		}
		if ctl.kind != ctlNone {
			return ctl, nil
		}
	}
	return control{}, nil
}

// execStatement executes one statement against the live environment.
func (i *Interpreter) execStatement(stmt ast.Statement) (control, error) {
	switch s := stmt.(type) {
	case *ast.VarStatement:
		return control{}, i.execVarStatement(s)
	case *ast.AssignStatement:
		return control{}, i.execAssignStatement(s)
	case *ast.CallStatement:
		// Evaluated for side effects; the result is discarded, but raises
		// and host errors propagate.
		_, err := i.evalCall(s.Call, i.env)
		return control{}, err
	case *ast.IfStatement:
		return i.execIfStatement(s)
	case *ast.ForStatement:
		return i.execForStatement(s)
	case *ast.ReturnStatement:
		return i.execReturnStatement(s)
	case *ast.TryStatement:
		return i.execTryStatement(s)
	case *ast.RaiseStatement:
		return i.execRaiseStatement(s)
	default:
		return control{}, typeErrorf("unsupported statement %T", stmt)
	}
}

func (i *Interpreter) execVarStatement(s *ast.VarStatement) error {
	var initial Value
	if i.dialect.typed() {
		if s.VarType == "" {
			return typeErrorf("missing type for variable %s", s.Name)
		}
		if !i.isValidVarType(s.VarType) {
			return typeErrorf("Not a valid type for a variable")
		}
		initial = i.defaultValue(s.VarType)
	} else {
		if s.VarType != "" {
			return typeErrorf("variable types require dialect v3")
		}
		initial = &NilValue{}
	}

	if !i.env.Create(s.Name, initial) {
		return nameErrorf("Variable %s defined more than once", s.Name)
	}
	return nil
}

func (i *Interpreter) execAssignStatement(s *ast.AssignStatement) error {
	if i.dialect.lazy() {
		// The value is not computed here: the expression is suspended
		// over a snapshot taken at the assignment site.
		thunk := NewThunk(s.Value, i.env.Snapshot())
		if !i.env.Set(s.Name, thunk) {
			return nameErrorf("Variable %s has not been defined", s.Name)
		}
		return nil
	}

	value, err := i.evalExpression(s.Value, i.env)
	if err != nil {
		return err
	}

	if i.dialect.typed() {
		if strings.Contains(s.Name, ".") {
			return i.setNestedVariable(s.Name, value)
		}
		current, ok := i.env.Get(s.Name)
		if !ok {
			return nameErrorf("Variable %s has not been defined", s.Name)
		}
		declared := current.Type()
		value, err = i.checkCompat(declared, value)
		if err != nil {
			return err
		}
		if i.isStructType(declared) {
			if _, isNil := value.(*NilValue); isNil {
				value = TypedNil(declared)
			}
		}
		i.env.Set(s.Name, value)
		return nil
	}

	if !i.env.Set(s.Name, value) {
		return nameErrorf("Variable %s has not been defined", s.Name)
	}
	return nil
}

func (i *Interpreter) execIfStatement(s *ast.IfStatement) (control, error) {
	if i.dialect < V2 {
		return control{}, typeErrorf("if statements require dialect v2")
	}

	cond, err := i.evalCondition(s.Condition, "if")
	if err != nil {
		return control{}, err
	}

	i.env.Push(FrameIf)
	var ctl control
	if cond {
		ctl, err = i.execBlock(s.Consequence)
	} else if s.Alternative != nil {
		ctl, err = i.execBlock(s.Alternative)
	}
	i.env.Pop()
	return ctl, err
}

func (i *Interpreter) execForStatement(s *ast.ForStatement) (control, error) {
	if i.dialect < V2 {
		return control{}, typeErrorf("for loops require dialect v2")
	}

	if err := i.execAssignStatement(s.Init); err != nil {
		return control{}, err
	}

	cond, err := i.evalCondition(s.Condition, "for")
	if err != nil {
		return control{}, err
	}

	for cond {
		i.env.Push(FrameFor)
		ctl, err := i.execBlock(s.Body)
		i.env.Pop()
		if err != nil {
			return control{}, err
		}
		if ctl.kind != ctlNone {
			return ctl, nil
		}

		if err := i.execAssignStatement(s.Update); err != nil {
			return control{}, err
		}
		cond, err = i.evalCondition(s.Condition, "for")
		if err != nil {
			return control{}, err
		}
	}
	return control{}, nil
}

// evalCondition evaluates a loop or branch condition: forced, coerced
// from int in the typed dialect, and required to be a boolean.
func (i *Interpreter) evalCondition(expr ast.Expression, construct string) (bool, error) {
	v, err := i.evalForced(expr, i.env)
	if err != nil {
		return false, err
	}
	if i.dialect.typed() {
		v = coerceBool(v)
	}
	b, ok := v.(*BooleanValue)
	if !ok {
		return false, typeErrorf("Invalid %s condition", construct)
	}
	return b.Value, nil
}

func (i *Interpreter) execReturnStatement(s *ast.ReturnStatement) (control, error) {
	if i.dialect < V2 {
		return control{}, typeErrorf("return statements require dialect v2")
	}

	if s.Value == nil {
		if i.dialect.typed() {
			return control{kind: ctlReturn, value: &VoidValue{}}, nil
		}
		return control{kind: ctlReturn, value: &NilValue{}}, nil
	}

	if i.dialect.lazy() {
		// Deferred to the caller's use site: the caller receives the
		// thunk and forces it when (and if) the value is used.
		thunk := NewThunk(s.Value, i.env.Snapshot())
		return control{kind: ctlReturn, value: thunk}, nil
	}

	value, err := i.evalExpression(s.Value, i.env)
	if err != nil {
		return control{}, err
	}
	return control{kind: ctlReturn, value: value}, nil
}

func (i *Interpreter) execTryStatement(s *ast.TryStatement) (control, error) {
	if !i.dialect.lazy() {
		return control{}, typeErrorf("try statements require dialect v4")
	}

	i.env.Push(FrameTry)
	ctl, err := i.execBlock(s.Body)
	i.env.Pop()

	var raise *RaiseSignal
	if err == nil || !errors.As(err, &raise) {
		return ctl, err
	}

	for _, catcher := range s.Catchers {
		if catcher.ExceptionType != raise.Tag {
			continue
		}
		i.tracef("catch %q", raise.Tag)
		i.env.Push(FrameCatch)
		ctl, err := i.execBlock(catcher.Body)
		i.env.Pop()
		return ctl, err
	}

	// No matching catcher; keep propagating outward.
	return control{}, err
}

func (i *Interpreter) execRaiseStatement(s *ast.RaiseStatement) (control, error) {
	if !i.dialect.lazy() {
		return control{}, typeErrorf("raise statements require dialect v4")
	}

	value, err := i.evalForced(s.Exception, i.env)
	if err != nil {
		return control{}, err
	}
	str, ok := value.(*StringValue)
	if !ok {
		return control{}, typeErrorf("Raise type not a string")
	}
	i.tracef("raise %q", str.Value)
	return control{}, &RaiseSignal{Tag: str.Value}
}
