// Package script is the fragment-execution engine: it compiles marked code
// fragments with an embedded Go interpreter, runs them against an environment
// shared by every fragment of one document, validates the returned value
// against the fragment's level, and decides whether the fragment is
// substituted, removed or left unchanged.
package script

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"reflect"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"
)

// Mode selects how fragment text is compiled.
type Mode int

const (
	// ModeExpression compiles the text as a single expression whose value is
	// the fragment's result.
	ModeExpression Mode = iota
	// ModeStatements compiles the text as a statement sequence evaluated at
	// the environment's top level. The fragment's result is the value of the
	// final statement when that statement is a bare expression, nil otherwise.
	ModeStatements
)

// Callable is a compiled fragment, opaque to callers.
type Callable struct {
	prog      *interp.Program
	hasResult bool
}

// Evaluator compiles fragment text and invokes the result. Environment is the
// only implementation; the interface keeps dynamic execution behind a narrow
// seam.
type Evaluator interface {
	Compile(text string, mode Mode) (*Callable, error)
	Invoke(c *Callable) (reflect.Value, error)
}

// prelude runs once when an environment is created, so fragments can build
// replacement nodes through the doc alias without writing imports.
const prelude = `import doc "mdrun/internal/document"`

// Environment is the mutable execution context shared by all fragments of one
// document run. State written by one fragment (top-level variables, imports,
// function definitions) is visible to every later fragment; nothing is reset
// between fragments. An Environment must not be reused across runs.
type Environment struct {
	interp *interp.Interpreter
}

// NewEnvironment creates a fresh environment seeded with the interpreter's
// standard library symbols and the document node builders.
func NewEnvironment() (*Environment, error) {
	i := interp.New(interp.Options{})
	if err := i.Use(stdlib.Symbols); err != nil {
		return nil, fmt.Errorf("load stdlib symbols: %w", err)
	}
	if err := i.Use(documentSymbols()); err != nil {
		return nil, fmt.Errorf("load document symbols: %w", err)
	}
	if _, err := i.Eval(prelude); err != nil {
		return nil, fmt.Errorf("evaluate prelude: %w", err)
	}
	return &Environment{interp: i}, nil
}

// Compile compiles fragment text in the given mode. In ModeExpression the text
// must be exactly one expression; callers fall back to ModeStatements when it
// is not.
func (e *Environment) Compile(text string, mode Mode) (*Callable, error) {
	if mode == ModeExpression {
		if _, err := parser.ParseExpr(text); err != nil {
			return nil, err
		}
		prog, err := e.compile(text)
		if err != nil {
			return nil, err
		}
		return &Callable{prog: prog, hasResult: true}, nil
	}
	prog, err := e.compile(text)
	if err != nil {
		return nil, err
	}
	return &Callable{prog: prog, hasResult: endsWithExpression(text)}, nil
}

// compile guards the interpreter's compiler. yaegi panics on some malformed
// inputs, a top-level return among them, and a compile failure must stay a
// per-fragment warning, never abort the run.
func (e *Environment) compile(src string) (prog *interp.Program, err error) {
	defer func() {
		if r := recover(); r != nil {
			prog = nil
			err = fmt.Errorf("compile panicked: %v", r)
		}
	}()
	return e.interp.Compile(src)
}

// Invoke runs a compiled fragment against the environment. Runtime panics in
// fragment code are recovered and reported as errors, so one failing fragment
// cannot abort the rest of the document.
func (e *Environment) Invoke(c *Callable) (v reflect.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			v = reflect.Value{}
			err = fmt.Errorf("fragment panicked: %v", r)
		}
	}()
	v, err = e.interp.Execute(c.prog)
	if err != nil {
		return reflect.Value{}, err
	}
	if !c.hasResult {
		return reflect.Value{}, nil
	}
	return v, nil
}

// endsWithExpression reports whether the final statement of a statement
// sequence is a bare expression. Only such fragments produce a value; a
// sequence ending in an assignment or declaration evaluates to nil.
func endsWithExpression(text string) bool {
	src := "package p\nfunc _() {\n" + text + "\n}"
	file, err := parser.ParseFile(token.NewFileSet(), "", src, 0)
	if err != nil {
		// Top-level declarations (func, type) cannot appear inside a function
		// body; fragments made of declarations only never yield a value.
		return false
	}
	fn, ok := file.Decls[len(file.Decls)-1].(*ast.FuncDecl)
	if !ok || fn.Body == nil || len(fn.Body.List) == 0 {
		return false
	}
	_, ok = fn.Body.List[len(fn.Body.List)-1].(*ast.ExprStmt)
	return ok
}
