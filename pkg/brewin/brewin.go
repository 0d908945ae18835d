// Package brewin is the embedding API for the Brewin interpreter. It ties
// the lexer, parser, and interpreter together behind a single Engine with
// a Run entry point.
package brewin

import (
	"fmt"
	"io"
	"os"

	"github.com/ariyin/go-brewin/internal/interp"
	"github.com/ariyin/go-brewin/internal/lexer"
	"github.com/ariyin/go-brewin/internal/parser"
)

// Engine runs Brewin programs with a fixed configuration. A single engine
// can run any number of programs in sequence; each Run gets a fresh
// interpreter.
type Engine struct {
	dialect interp.Dialect
	stdin   io.Reader
	stdout  io.Writer
	trace   io.Writer
}

// Option configures an Engine.
type Option func(*Engine) error

// WithDialect selects the language generation, 1 through 4. The default
// is 4, the most featureful dialect.
func WithDialect(n int) Option {
	return func(e *Engine) error {
		if n < int(interp.V1) || n > int(interp.V4) {
			return fmt.Errorf("unknown dialect v%d", n)
		}
		e.dialect = interp.Dialect(n)
		return nil
	}
}

// WithStdin sets the reader inputi/inputs consume.
func WithStdin(r io.Reader) Option {
	return func(e *Engine) error {
		e.stdin = r
		return nil
	}
}

// WithStdout sets the writer program output goes to.
func WithStdout(w io.Writer) Option {
	return func(e *Engine) error {
		e.stdout = w
		return nil
	}
}

// WithTrace enables interpreter trace output to w.
func WithTrace(w io.Writer) Option {
	return func(e *Engine) error {
		e.trace = w
		return nil
	}
}

// New creates an Engine. Without options it runs dialect v4 against
// os.Stdin and os.Stdout.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{
		dialect: interp.V4,
		stdin:   os.Stdin,
		stdout:  os.Stdout,
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// Run parses and executes a Brewin program. Syntax failures return a
// parser.ErrorList; host errors return an *interp.RuntimeError, including
// the FAULT_ERROR produced by an uncaught raise.
func (e *Engine) Run(source string) error {
	l := lexer.New(source)
	p := parser.New(l)
	program := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		return errs
	}

	opts := []interp.Option{
		interp.WithDialect(e.dialect),
		interp.WithInput(e.stdin),
	}
	if e.trace != nil {
		opts = append(opts, interp.WithTrace(e.trace))
	}
	return interp.New(e.stdout, opts...).Run(program)
}

// Run executes a program with the default configuration.
func Run(source string) error {
	e, err := New()
	if err != nil {
		return err
	}
	return e.Run(source)
}
