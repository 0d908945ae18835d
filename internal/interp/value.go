// Package interp implements the Brewin tree-walking interpreter: runtime
// values, the scoped environment, lazy thunks, and the evaluator itself.
package interp

import (
	"strconv"

	"github.com/google/uuid"
)

// Type name constants for runtime values. These double as the primitive
// type names accepted in declarations; struct values report their struct
// type name instead.
const (
	IntType    = "int"
	StringType = "string"
	BoolType   = "bool"
	NilType    = "nil"
	VoidType   = "void"
)

// Value represents a runtime value. All runtime values implement this
// interface, including thunks; code that needs an inspectable value must
// force first.
type Value interface {
	// Type returns the type name of the value ("int", "string", a struct
	// name, ...).
	Type() string
	// String returns the printable form of the value.
	String() string
}

// IntegerValue is a 64-bit signed integer.
type IntegerValue struct {
	Value int64
}

func (i *IntegerValue) Type() string { return IntType }

func (i *IntegerValue) String() string {
	return strconv.FormatInt(i.Value, 10)
}

// StringValue is an immutable string.
type StringValue struct {
	Value string
}

func (s *StringValue) Type() string   { return StringType }
func (s *StringValue) String() string { return s.Value }

// BooleanValue is a boolean.
type BooleanValue struct {
	Value bool
}

func (b *BooleanValue) Type() string { return BoolType }

func (b *BooleanValue) String() string {
	if b.Value {
		return "true"
	}
	return "false"
}

// NilValue is the untyped nil produced by the nil literal and by untyped
// variable declarations.
type NilValue struct{}

func (n *NilValue) Type() string   { return NilType }
func (n *NilValue) String() string { return "nil" }

// VoidValue is the absence of a value in the typed dialect: the result of
// calling a void function and the carrier of bare returns.
type VoidValue struct{}

func (v *VoidValue) Type() string   { return VoidType }
func (v *VoidValue) String() string { return "void" }

// StructValue is a struct instance, or a typed nil when Fields is nil
// (a declared-but-unassigned struct variable, or nil assigned into a
// struct-typed slot). Field maps are shared by reference: aliases observe
// each other's mutations, and equality is allocation identity.
//
// ID is a short allocation id used in trace output and the struct's
// String() form so aliased instances are tellable apart from
// equal-valued ones. print never shows it (see Printable).
type StructValue struct {
	TypeName string
	Fields   map[string]Value
	ID       string
}

// NewStructValue allocates a struct instance of the given type with the
// given field map.
func NewStructValue(typeName string, fields map[string]Value) *StructValue {
	return &StructValue{
		TypeName: typeName,
		Fields:   fields,
		ID:       uuid.NewString()[:8],
	}
}

// TypedNil returns the typed nil for a struct type.
func TypedNil(typeName string) *StructValue {
	return &StructValue{TypeName: typeName}
}

func (s *StructValue) Type() string { return s.TypeName }

// IsNil reports whether this is a typed nil rather than an allocation.
func (s *StructValue) IsNil() bool { return s.Fields == nil }

func (s *StructValue) String() string {
	if s.IsNil() {
		return "nil"
	}
	return s.TypeName + "@" + s.ID
}

// Printable returns the form print uses for a value. Struct values have
// no printable form in the language and render as "nil" whether or not
// they hold an allocation; the diagnostic form with the allocation id is
// reserved for trace output.
func Printable(v Value) string {
	if _, ok := v.(*StructValue); ok {
		return "nil"
	}
	return v.String()
}

// isValueNil reports whether v is any flavor of nil: the untyped nil or a
// typed nil struct slot.
func isValueNil(v Value) bool {
	switch val := v.(type) {
	case *NilValue:
		return true
	case *StructValue:
		return val.IsNil()
	default:
		return false
	}
}

// truthy reports whether a value carries a non-zero payload. checkCompat
// uses it for its first void-return check; a payload-free value such as 0
// or "" returned from a void function is still a type error, caught by
// checkCompat's later primitive-type check.
func truthy(v Value) bool {
	switch val := v.(type) {
	case *IntegerValue:
		return val.Value != 0
	case *StringValue:
		return val.Value != ""
	case *BooleanValue:
		return val.Value
	case *StructValue:
		return !val.IsNil()
	default:
		return false
	}
}
