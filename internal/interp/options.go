package interp

import "io"

// Dialect selects which Brewin generation the interpreter implements. The
// dialects are cumulative configurations of one code base, not separate
// interpreters.
type Dialect int

const (
	// V1: integers, strings, variables, arithmetic, print/inputi.
	V1 Dialect = iota + 1
	// V2: booleans, nil, comparisons, strict logic, control flow,
	// user-defined functions, inputs.
	V2
	// V3: nominal static types, structs, field access, int-to-bool
	// coercion, void returns.
	V3
	// V4: V2 surface plus call-by-need, try/catch/raise, and
	// short-circuit logic.
	V4
)

func (d Dialect) String() string {
	switch d {
	case V1:
		return "v1"
	case V2:
		return "v2"
	case V3:
		return "v3"
	case V4:
		return "v4"
	default:
		return "unknown"
	}
}

// lazy reports whether the dialect defers evaluation through thunks.
func (d Dialect) lazy() bool { return d == V4 }

// typed reports whether the dialect enforces declared types.
func (d Dialect) typed() bool { return d == V3 }

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithDialect selects the language dialect. The default is V4.
func WithDialect(d Dialect) Option {
	return func(i *Interpreter) { i.dialect = d }
}

// WithIO replaces the I/O collaborator.
func WithIO(iocol IO) Option {
	return func(i *Interpreter) { i.io = iocol }
}

// WithInput sets the reader inputi/inputs consume, keeping the default
// writer.
func WithInput(r io.Reader) Option {
	return func(i *Interpreter) { i.stdin = r }
}

// WithTrace enables trace output to w. Trace output never goes to the
// program's own output stream.
func WithTrace(w io.Writer) Option {
	return func(i *Interpreter) { i.trace = w }
}
