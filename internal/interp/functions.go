package interp

import (
	"strconv"
	"strings"

	"github.com/ariyin/go-brewin/internal/ast"
)

// evalCall dispatches a call expression. Builtins shadow user functions;
// user functions resolve by name and arity.
func (i *Interpreter) evalCall(call *ast.CallExpression, env *Environment) (Value, error) {
	switch call.Function {
	case "print":
		return i.builtinPrint(call.Arguments, env)
	case "inputi":
		return i.builtinInput(call, env, true)
	case "inputs":
		if i.dialect >= V2 {
			return i.builtinInput(call, env, false)
		}
	}

	fn := i.lookupFunction(call.Function, len(call.Arguments))
	if fn == nil {
		return nil, nameErrorf("Function %s has not been defined", call.Function)
	}
	return i.callUserFunction(fn, call.Arguments, env)
}

// callUserFunction binds arguments, runs the body in a fresh function
// frame, and applies the dialect's return discipline. env is the
// environment the argument expressions belong to.
func (i *Interpreter) callUserFunction(fn *ast.FuncDecl, argExprs []ast.Expression, env *Environment) (Value, error) {
	i.tracef("call %s/%d", fn.Name, len(fn.Params))

	bindings, err := i.bindArguments(fn, argExprs, env)
	if err != nil {
		return nil, err
	}

	i.env.Push(FrameFunction)
	for idx, param := range fn.Params {
		if !i.env.Create(param.Name, bindings[idx]) {
			i.env.Pop()
			return nil, nameErrorf("Parameter %s defined more than once", param.Name)
		}
	}

	ctl, err := i.execBlock(fn.Body)
	i.env.Pop()
	if err != nil {
		return nil, err
	}

	if ctl.kind == ctlReturn {
		return i.applyReturn(fn, ctl.value)
	}

	// Fall-through without a return.
	if i.dialect.typed() {
		return i.defaultValue(fn.ReturnType), nil
	}
	return &NilValue{}, nil
}

// bindArguments produces one binding per parameter: eager values checked
// against the parameter types in the typed dialect, thunks over a shared
// caller-environment snapshot in the lazy one.
func (i *Interpreter) bindArguments(fn *ast.FuncDecl, argExprs []ast.Expression, env *Environment) ([]Value, error) {
	bindings := make([]Value, len(argExprs))

	if i.dialect.lazy() {
		snapshot := env.Snapshot()
		for idx, arg := range argExprs {
			bindings[idx] = NewThunk(arg, snapshot)
		}
		return bindings, nil
	}

	for idx, arg := range argExprs {
		value, err := i.evalExpression(arg, env)
		if err != nil {
			return nil, err
		}
		if i.dialect.typed() {
			declared := fn.Params[idx].VarType
			value, err = i.checkCompat(declared, value)
			if err != nil {
				return nil, err
			}
			if i.isStructType(declared) {
				if _, isNil := value.(*NilValue); isNil {
					value = TypedNil(declared)
				}
			}
		}
		bindings[idx] = value
	}
	return bindings, nil
}

// applyReturn enforces the declared return type in the typed dialect. The
// lazy dialect hands the returned thunk (or value) to the caller as-is.
func (i *Interpreter) applyReturn(fn *ast.FuncDecl, value Value) (Value, error) {
	if !i.dialect.typed() {
		return value, nil
	}

	// A bare return (or a void call's result) yields the declared
	// default, not void itself.
	if _, isVoid := value.(*VoidValue); isVoid {
		return i.defaultValue(fn.ReturnType), nil
	}

	checked, err := i.checkCompat(fn.ReturnType, value)
	if err != nil {
		return nil, err
	}
	return checked, nil
}

// builtinPrint forces every argument left to right, concatenates the
// printable forms, and emits exactly one output line.
func (i *Interpreter) builtinPrint(args []ast.Expression, env *Environment) (Value, error) {
	var sb strings.Builder
	for _, arg := range args {
		value, err := i.evalForced(arg, env)
		if err != nil {
			return nil, err
		}
		if i.dialect.typed() {
			if _, isVoid := value.(*VoidValue); isVoid {
				return nil, typeErrorf("Using void in print")
			}
		}
		sb.WriteString(Printable(value))
	}
	i.io.Output(sb.String())

	if i.dialect.typed() {
		return &VoidValue{}, nil
	}
	return &NilValue{}, nil
}

// builtinInput implements inputi and inputs: an optional prompt argument
// is evaluated and echoed, then one line is read.
func (i *Interpreter) builtinInput(call *ast.CallExpression, env *Environment, wantInt bool) (Value, error) {
	if len(call.Arguments) > 1 {
		return nil, nameErrorf("No %s() function found that takes > 1 parameter", call.Function)
	}
	if len(call.Arguments) == 1 {
		prompt, err := i.evalForced(call.Arguments[0], env)
		if err != nil {
			return nil, err
		}
		i.io.Output(Printable(prompt))
	}

	line, err := i.io.GetInput()
	if err != nil {
		return nil, faultErrorf("no input available for %s", call.Function)
	}
	if !wantInt {
		return &StringValue{Value: line}, nil
	}

	n, err := strconv.ParseInt(line, 10, 64)
	if err != nil {
		return nil, typeErrorf("inputi expected an integer, got %q", line)
	}
	return &IntegerValue{Value: n}, nil
}
