package interp

import (
	"strings"

	"github.com/ariyin/go-brewin/internal/ast"
)

// evalExpression reduces an expression node to a value. env is the
// environment identifiers resolve against: the live environment in the
// common case, or a thunk's captured snapshot while forcing. The result
// may itself be a thunk in the lazy dialect; callers that inspect the
// value force first.
func (i *Interpreter) evalExpression(expr ast.Expression, env *Environment) (Value, error) {
	switch node := expr.(type) {
	case *ast.IntegerLiteral:
		return &IntegerValue{Value: node.Value}, nil

	case *ast.StringLiteral:
		return &StringValue{Value: node.Value}, nil

	case *ast.BooleanLiteral:
		if i.dialect < V2 {
			return nil, typeErrorf("booleans require dialect v2")
		}
		return &BooleanValue{Value: node.Value}, nil

	case *ast.NilLiteral:
		if i.dialect < V2 {
			return nil, typeErrorf("nil requires dialect v2")
		}
		return &NilValue{}, nil

	case *ast.Identifier:
		return i.evalIdentifier(node, env)

	case *ast.PrefixExpression:
		return i.evalPrefix(node, env)

	case *ast.InfixExpression:
		return i.evalInfix(node, env)

	case *ast.CallExpression:
		return i.evalCall(node, env)

	case *ast.NewExpression:
		if !i.dialect.typed() {
			return nil, typeErrorf("new requires dialect v3")
		}
		return i.newStruct(node.TypeName)

	default:
		return nil, typeErrorf("unsupported expression %T", expr)
	}
}

func (i *Interpreter) evalIdentifier(node *ast.Identifier, env *Environment) (Value, error) {
	if i.dialect.typed() && strings.Contains(node.Value, ".") {
		return i.getNestedVariable(node.Value, env)
	}

	value, ok := env.Get(node.Value)
	if !ok {
		return nil, nameErrorf("Variable %s has not been defined", node.Value)
	}
	return value, nil
}

func (i *Interpreter) evalPrefix(node *ast.PrefixExpression, env *Environment) (Value, error) {
	operand, err := i.evalForced(node.Right, env)
	if err != nil {
		return nil, err
	}

	switch node.Operator {
	case "neg":
		iv, ok := operand.(*IntegerValue)
		if !ok {
			return nil, typeErrorf("Invalid negation type")
		}
		return &IntegerValue{Value: -iv.Value}, nil

	case "!":
		if i.dialect < V2 {
			return nil, typeErrorf("logical not requires dialect v2")
		}
		if i.dialect.typed() {
			operand = coerceBool(operand)
		}
		bv, ok := operand.(*BooleanValue)
		if !ok {
			return nil, typeErrorf("Illegal usage of not operation on non-boolean type")
		}
		return &BooleanValue{Value: !bv.Value}, nil

	default:
		return nil, typeErrorf("unsupported unary operator %s", node.Operator)
	}
}

func (i *Interpreter) evalInfix(node *ast.InfixExpression, env *Environment) (Value, error) {
	if node.Operator == "&&" || node.Operator == "||" {
		return i.evalLogical(node, env)
	}

	left, err := i.evalForced(node.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := i.evalForced(node.Right, env)
	if err != nil {
		return nil, err
	}

	switch node.Operator {
	case "+":
		return i.evalPlus(left, right)
	case "-", "*", "/":
		return i.evalArithmetic(node.Operator, left, right)
	case "<", "<=", ">", ">=":
		return i.evalComparison(node.Operator, left, right)
	case "==", "!=":
		return i.evalEquality(node.Operator, left, right)
	default:
		return nil, typeErrorf("unsupported operator %s", node.Operator)
	}
}

// evalPlus handles the overloaded +: integer addition or string
// concatenation.
func (i *Interpreter) evalPlus(left, right Value) (Value, error) {
	if l, ok := left.(*IntegerValue); ok {
		if r, ok := right.(*IntegerValue); ok {
			return &IntegerValue{Value: l.Value + r.Value}, nil
		}
	}
	if l, ok := left.(*StringValue); ok {
		if r, ok := right.(*StringValue); ok {
			return &StringValue{Value: l.Value + r.Value}, nil
		}
	}
	return nil, typeErrorf("Illegal usage of arithmetic operation on non-integer types")
}

func (i *Interpreter) evalArithmetic(op string, left, right Value) (Value, error) {
	l, lok := left.(*IntegerValue)
	r, rok := right.(*IntegerValue)
	if !lok || !rok {
		return nil, typeErrorf("Illegal usage of arithmetic operation on non-integer types")
	}

	switch op {
	case "-":
		return &IntegerValue{Value: l.Value - r.Value}, nil
	case "*":
		return &IntegerValue{Value: l.Value * r.Value}, nil
	default: // "/"
		if r.Value == 0 {
			if i.dialect.lazy() {
				return nil, &RaiseSignal{Tag: "div0"}
			}
			return nil, faultErrorf("division by zero")
		}
		// Go's integer division already truncates toward zero.
		return &IntegerValue{Value: l.Value / r.Value}, nil
	}
}

func (i *Interpreter) evalComparison(op string, left, right Value) (Value, error) {
	if i.dialect < V2 {
		return nil, typeErrorf("comparisons require dialect v2")
	}
	l, lok := left.(*IntegerValue)
	r, rok := right.(*IntegerValue)
	if !lok || !rok {
		return nil, typeErrorf("Incompatible types for comparison %s", op)
	}

	var result bool
	switch op {
	case "<":
		result = l.Value < r.Value
	case "<=":
		result = l.Value <= r.Value
	case ">":
		result = l.Value > r.Value
	default: // ">="
		result = l.Value >= r.Value
	}
	return &BooleanValue{Value: result}, nil
}

func (i *Interpreter) evalEquality(op string, left, right Value) (Value, error) {
	if i.dialect < V2 {
		return nil, typeErrorf("comparisons require dialect v2")
	}
	if i.dialect.typed() {
		return i.evalEqualityTyped(op, left, right)
	}

	// Untyped dialects: values of different types are simply unequal.
	if left.Type() != right.Type() {
		return &BooleanValue{Value: op == "!="}, nil
	}
	eq := equalPayload(left, right)
	return &BooleanValue{Value: eq == (op == "==")}, nil
}

// evalEqualityTyped applies the typed dialect's comparison matrix: void
// never compares, struct types only compare with themselves or nil,
// booleans pull ints over via coercion, and remaining primitive
// mismatches are errors rather than false.
func (i *Interpreter) evalEqualityTyped(op string, left, right Value) (Value, error) {
	if left.Type() == VoidType || right.Type() == VoidType {
		return nil, typeErrorf("Comparing with a void value")
	}

	lStruct := i.isStructType(left.Type())
	rStruct := i.isStructType(right.Type())
	if (lStruct || rStruct) &&
		!(left.Type() == right.Type() || left.Type() == NilType || right.Type() == NilType) {
		return nil, typeErrorf("Comparing a struct type to a different type")
	}

	if isValueNil(left) && isValueNil(right) {
		return &BooleanValue{Value: op == "=="}, nil
	}

	if left.Type() == BoolType || right.Type() == BoolType {
		left = coerceBool(left)
		right = coerceBool(right)
	}

	if (isPrimitiveTypeName(left.Type()) || isPrimitiveTypeName(right.Type())) &&
		left.Type() != right.Type() {
		return nil, typeErrorf("Comparing different primitive types")
	}

	eq := equalPayload(left, right)
	return &BooleanValue{Value: eq == (op == "==")}, nil
}

// equalPayload compares two values whose types have already been
// reconciled. Structs compare by allocation identity, never structurally,
// so cyclic graphs terminate.
func equalPayload(left, right Value) bool {
	switch l := left.(type) {
	case *IntegerValue:
		r, ok := right.(*IntegerValue)
		return ok && l.Value == r.Value
	case *StringValue:
		r, ok := right.(*StringValue)
		return ok && l.Value == r.Value
	case *BooleanValue:
		r, ok := right.(*BooleanValue)
		return ok && l.Value == r.Value
	case *NilValue:
		_, ok := right.(*NilValue)
		return ok
	case *StructValue:
		r, ok := right.(*StructValue)
		return ok && l == r
	default:
		return false
	}
}

func (i *Interpreter) evalLogical(node *ast.InfixExpression, env *Environment) (Value, error) {
	if i.dialect < V2 {
		return nil, typeErrorf("logical operators require dialect v2")
	}

	if i.dialect.lazy() {
		return i.evalLogicalShortCircuit(node, env)
	}

	// Strict evaluation: both operands always run, in order.
	left, err := i.evalForced(node.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := i.evalForced(node.Right, env)
	if err != nil {
		return nil, err
	}
	if i.dialect.typed() {
		left = coerceBool(left)
		right = coerceBool(right)
	}
	l, lok := left.(*BooleanValue)
	r, rok := right.(*BooleanValue)
	if !lok || !rok {
		return nil, typeErrorf("Incompatible types for comparison %s", node.Operator)
	}

	if node.Operator == "&&" {
		return &BooleanValue{Value: l.Value && r.Value}, nil
	}
	return &BooleanValue{Value: l.Value || r.Value}, nil
}

// evalLogicalShortCircuit forces the left operand and skips the right
// entirely when the left decides the outcome - including any raise the
// right would have produced.
func (i *Interpreter) evalLogicalShortCircuit(node *ast.InfixExpression, env *Environment) (Value, error) {
	left, err := i.evalForced(node.Left, env)
	if err != nil {
		return nil, err
	}
	l, ok := left.(*BooleanValue)
	if !ok {
		return nil, typeErrorf("Incompatible types for comparison %s", node.Operator)
	}

	if node.Operator == "&&" && !l.Value {
		return &BooleanValue{Value: false}, nil
	}
	if node.Operator == "||" && l.Value {
		return &BooleanValue{Value: true}, nil
	}

	right, err := i.evalForced(node.Right, env)
	if err != nil {
		return nil, err
	}
	r, ok := right.(*BooleanValue)
	if !ok {
		return nil, typeErrorf("Incompatible types for comparison %s", node.Operator)
	}
	return &BooleanValue{Value: r.Value}, nil
}

// coerceBool converts an int to the boolean it coerces to in the typed
// dialect (zero is false, anything else true); other values pass through.
func coerceBool(v Value) Value {
	if iv, ok := v.(*IntegerValue); ok {
		return &BooleanValue{Value: iv.Value != 0}
	}
	return v
}

// isPrimitiveTypeName reports whether the name is one of the primitive
// declared types.
func isPrimitiveTypeName(name string) bool {
	switch name {
	case IntType, BoolType, StringType, VoidType:
		return true
	default:
		return false
	}
}
