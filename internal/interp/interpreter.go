package interp

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ariyin/go-brewin/internal/ast"
)

// Interpreter executes Brewin programs. One interpreter runs one program
// at a time; the struct and function tables are populated at load and
// read-only afterwards.
type Interpreter struct {
	dialect Dialect
	io      IO
	stdin   io.Reader
	stdout  io.Writer
	trace   io.Writer

	env       *Environment
	functions []*ast.FuncDecl            // callable functions, source order, main excluded
	structs   map[string]*ast.StructDecl // struct table (typed dialect)
}

// New creates an interpreter writing program output to out. The default
// dialect is V4; inputi/inputs read from os.Stdin unless WithInput or
// WithIO overrides that.
func New(out io.Writer, opts ...Option) *Interpreter {
	i := &Interpreter{
		dialect: V4,
		stdout:  out,
		stdin:   os.Stdin,
		structs: map[string]*ast.StructDecl{},
	}
	for _, opt := range opts {
		opt(i)
	}
	if i.io == nil {
		i.io = NewConsoleIO(i.stdout, i.stdin)
	}
	return i
}

// Dialect returns the dialect the interpreter was configured with.
func (i *Interpreter) Dialect() Dialect { return i.dialect }

// Run loads and executes a parsed program. It returns nil on normal
// completion and a *RuntimeError on any host error, including an uncaught
// raise surfacing from main.
func (i *Interpreter) Run(program *ast.Program) error {
	i.env = NewEnvironment()
	i.functions = nil
	i.structs = map[string]*ast.StructDecl{}

	mainFunc, err := i.loadProgram(program)
	if err != nil {
		return err
	}

	_, err = i.callUserFunction(mainFunc, nil, i.env)
	if err != nil {
		var raise *RaiseSignal
		if errors.As(err, &raise) {
			return faultErrorf("Uncaught raise")
		}
		return err
	}
	return nil
}

// loadProgram populates the struct and function tables and returns main.
func (i *Interpreter) loadProgram(program *ast.Program) (*ast.FuncDecl, error) {
	if len(program.Structs) > 0 && !i.dialect.typed() {
		return nil, typeErrorf("struct declarations require dialect v3")
	}
	for _, s := range program.Structs {
		if _, exists := i.structs[s.Name]; exists {
			return nil, nameErrorf("struct %s defined more than once", s.Name)
		}
		i.structs[s.Name] = s
	}
	if i.dialect.typed() {
		for _, s := range program.Structs {
			for _, f := range s.Fields {
				if !i.isValidVarType(f.VarType) {
					return nil, typeErrorf("invalid type %s for field %s of struct %s", f.VarType, f.Name, s.Name)
				}
			}
		}
	}

	var mainFunc *ast.FuncDecl
	for _, fn := range program.Functions {
		if err := i.checkFunctionTypes(fn); err != nil {
			return nil, err
		}
		if fn.Name == "main" {
			mainFunc = fn
			continue
		}
		if i.dialect >= V2 {
			i.functions = append(i.functions, fn)
		}
	}

	if mainFunc == nil {
		return nil, nameErrorf("No main() function was found")
	}
	return mainFunc, nil
}

// checkFunctionTypes validates declared parameter and return types at
// load, before anything runs.
func (i *Interpreter) checkFunctionTypes(fn *ast.FuncDecl) error {
	if i.dialect.typed() {
		for _, p := range fn.Params {
			if p.VarType == "" {
				return typeErrorf("missing type for parameter %s of %s", p.Name, fn.Name)
			}
			if !i.isValidVarType(p.VarType) {
				return typeErrorf("invalid argument type %s for %s", p.VarType, fn.Name)
			}
		}
		if fn.ReturnType == "" {
			return typeErrorf("missing return type for %s", fn.Name)
		}
		if !i.isValidReturnType(fn.ReturnType) {
			return typeErrorf("invalid return type %s for %s", fn.ReturnType, fn.Name)
		}
		return nil
	}

	for _, p := range fn.Params {
		if p.VarType != "" {
			return typeErrorf("parameter types require dialect v3")
		}
	}
	if fn.ReturnType != "" {
		return typeErrorf("return types require dialect v3")
	}
	return nil
}

// lookupFunction resolves a callable by name and arity. Among several
// same-name functions the first defined wins; main is never callable.
func (i *Interpreter) lookupFunction(name string, arity int) *ast.FuncDecl {
	for _, fn := range i.functions {
		if fn.Name == name && len(fn.Params) == arity {
			return fn
		}
	}
	return nil
}

// isValidVarType reports whether a name is usable for variables, fields
// and parameters: a primitive (void excluded) or a known struct.
func (i *Interpreter) isValidVarType(name string) bool {
	switch name {
	case IntType, BoolType, StringType:
		return true
	}
	_, ok := i.structs[name]
	return ok
}

// isValidReturnType additionally admits void.
func (i *Interpreter) isValidReturnType(name string) bool {
	return name == VoidType || i.isValidVarType(name)
}

func (i *Interpreter) isStructType(name string) bool {
	_, ok := i.structs[name]
	return ok
}

// force reduces a thunk to a plain value, memoizing the outcome. Forcing
// a thunk that already resolved returns the cached value; forcing one
// that raised re-raises the same tag without re-evaluating. Host errors
// are not memoized - they abort the run regardless.
func (i *Interpreter) force(v Value) (Value, error) {
	t, ok := v.(*Thunk)
	if !ok {
		return v, nil
	}

	if resolved, tag, didRaise := t.Memo(); didRaise {
		return nil, &RaiseSignal{Tag: tag}
	} else if resolved != nil {
		return resolved, nil
	}

	i.tracef("force %s", t.Expr().String())
	result, err := i.evalExpression(t.Expr(), t.Env())
	if err == nil {
		// The expression may reduce to another thunk (a variable bound
		// lazily, a returned thunk); force through to a plain value.
		result, err = i.force(result)
	}
	if err != nil {
		var raise *RaiseSignal
		if errors.As(err, &raise) {
			t.raise(raise.Tag)
		}
		return nil, err
	}
	t.resolve(result)
	return result, nil
}

// evalForced evaluates an expression and forces the result.
func (i *Interpreter) evalForced(expr ast.Expression, env *Environment) (Value, error) {
	v, err := i.evalExpression(expr, env)
	if err != nil {
		return nil, err
	}
	return i.force(v)
}

func (i *Interpreter) tracef(format string, args ...any) {
	if i.trace == nil {
		return
	}
	fmt.Fprintf(i.trace, "trace: "+format+"\n", args...)
}
