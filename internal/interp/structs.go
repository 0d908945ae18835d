package interp

import "strings"

// Struct subsystem for the typed dialect: allocation, dotted field paths,
// and the declared-type compatibility matrix shared by assignments,
// parameter binding, field writes, and returns.

// newStruct allocates an instance of the named struct with every field at
// its declared-type default.
func (i *Interpreter) newStruct(typeName string) (Value, error) {
	decl, ok := i.structs[typeName]
	if !ok {
		return nil, typeErrorf("Invalid struct type")
	}

	fields := make(map[string]Value, len(decl.Fields))
	for _, field := range decl.Fields {
		fields[field.Name] = i.defaultValue(field.VarType)
	}
	value := NewStructValue(typeName, fields)
	i.tracef("new %s %s", typeName, value.ID)
	return value, nil
}

// defaultValue returns the default for a declared type. Declared types
// are validated before this runs.
func (i *Interpreter) defaultValue(typeName string) Value {
	switch typeName {
	case IntType:
		return &IntegerValue{Value: 0}
	case BoolType:
		return &BooleanValue{Value: false}
	case StringType:
		return &StringValue{Value: ""}
	case VoidType:
		return &VoidValue{}
	default:
		if i.isStructType(typeName) {
			return TypedNil(typeName)
		}
		return &NilValue{}
	}
}

// getNestedVariable resolves a dotted path, walking field by field. Every
// non-terminal component must be a non-nil struct.
func (i *Interpreter) getNestedVariable(name string, env *Environment) (Value, error) {
	parts := strings.Split(name, ".")
	current, ok := env.Get(parts[0])
	if !ok {
		return nil, nameErrorf("Variable %s has not been defined", name)
	}

	for _, part := range parts[1:] {
		field, err := structField(current, part)
		if err != nil {
			return nil, err
		}
		current = field
	}
	return current, nil
}

// setNestedVariable assigns through a dotted path. The terminal field is
// checked against its declared type.
func (i *Interpreter) setNestedVariable(name string, value Value) error {
	parts := strings.Split(name, ".")
	current, ok := i.env.Get(parts[0])
	if !ok {
		return nameErrorf("Variable %s has not been defined", name)
	}

	for _, part := range parts[1 : len(parts)-1] {
		field, err := structField(current, part)
		if err != nil {
			return err
		}
		current = field
	}

	target, err := derefStruct(current)
	if err != nil {
		return err
	}
	last := parts[len(parts)-1]
	if _, exists := target.Fields[last]; !exists {
		return nameErrorf("%s does not exist", last)
	}

	declared := i.fieldType(target.TypeName, last)
	value, err = i.checkCompat(declared, value)
	if err != nil {
		return err
	}
	if i.isStructType(declared) {
		if _, isNil := value.(*NilValue); isNil {
			value = TypedNil(declared)
		}
	}
	target.Fields[last] = value
	return nil
}

// fieldType returns the declared type of a field from the struct table.
func (i *Interpreter) fieldType(structName, fieldName string) string {
	decl := i.structs[structName]
	for _, f := range decl.Fields {
		if f.Name == fieldName {
			return f.VarType
		}
	}
	return ""
}

// structField reads one field off a value that must be a non-nil struct.
func structField(v Value, fieldName string) (Value, error) {
	target, err := derefStruct(v)
	if err != nil {
		return nil, err
	}
	field, exists := target.Fields[fieldName]
	if !exists {
		return nil, nameErrorf("%s does not exist", fieldName)
	}
	return field, nil
}

// derefStruct validates the value to the left of a dot: nil is a fault,
// anything that is not a struct is a type error.
func derefStruct(v Value) (*StructValue, error) {
	if isValueNil(v) {
		return nil, faultErrorf("Variable to the left of a dot is nil")
	}
	sv, ok := v.(*StructValue)
	if !ok {
		return nil, typeErrorf("Variable to the left of a dot is not a struct")
	}
	return sv, nil
}

// checkCompat enforces the declared-type compatibility matrix between a
// declared type and a value. Int coerces to a declared bool; nil is
// acceptable for struct-typed slots; everything else must match exactly.
// The returned value is the (possibly coerced) value to store.
func (i *Interpreter) checkCompat(declared string, v Value) (Value, error) {
	if declared == VoidType && truthy(v) {
		return nil, typeErrorf("Returning a value from a void function")
	}

	if !i.isStructType(declared) && declared != NilType {
		if _, isNil := v.(*NilValue); isNil {
			return nil, typeErrorf("nil cannot be assigned to a %s", declared)
		}
	}

	if i.isStructType(declared) {
		if _, isNil := v.(*NilValue); !isNil && v.Type() != declared {
			return nil, typeErrorf("Struct type %s cannot be assigned to struct type %s", v.Type(), declared)
		}
	}

	if declared == BoolType {
		v = coerceBool(v)
	}

	if isPrimitiveTypeName(declared) && declared != v.Type() {
		return nil, typeErrorf("%s cannot be assigned to a %s", v.Type(), declared)
	}
	return v, nil
}
