// Package numl is the public facade over the NUML interpreter core:
// construction with a configuration object, the four entry points
// (parse, evaluate, unparse, unparseMathML), clear/restart, and
// inspection accessors for the registered tables (spec §6).
package numl

import (
	"fmt"

	"github.com/numl-lang/numl/internal/ast"
	"github.com/numl-lang/numl/internal/errors"
	"github.com/numl-lang/numl/internal/eval"
	"github.com/numl-lang/numl/internal/lexer"
	"github.com/numl-lang/numl/internal/parser"
	"github.com/numl-lang/numl/internal/unparse"
	"github.com/numl-lang/numl/internal/value"
)

// ExitStatus mirrors the evaluator's exit codes, re-exported so hosts
// never need to import internal/eval directly.
type ExitStatus = eval.ExitStatus

const (
	StatusOK          = eval.StatusOK
	StatusLexError    = eval.StatusLexError
	StatusParserError = eval.StatusParserError
	StatusEvalError   = eval.StatusEvalError
	StatusWarning     = eval.StatusWarning
	StatusExternal    = eval.StatusExternal
)

// Config is the construction-time configuration (spec §6). Fields not
// named here are rejected: this struct's exported field set IS the
// set of recognized options.
type Config struct {
	// AliasTable maps a canonical base-function name to the exact
	// alias strings that should resolve to it. The spec describes this
	// as a regular expression per canonical name; this implementation
	// takes the simpler, still-conforming form of an explicit alias
	// set, built into an alias->canonical map at construction.
	AliasTable map[string][]string
	// ExternalFunctionTable is merged over the built-in Base table.
	ExternalFunctionTable map[string]*eval.BaseEntry
	// ExternalCmdWListTable is merged over the built-in Command table.
	ExternalCmdWListTable map[string]eval.CommandFn
}

func (c Config) toEvalConfig() eval.Config {
	alias := map[string]string{}
	for canon, names := range c.AliasTable {
		for _, n := range names {
			alias[n] = canon
		}
	}
	return eval.Config{
		AliasTable:            alias,
		ExternalFunctionTable: c.ExternalFunctionTable,
		ExternalCmdWListTable: c.ExternalCmdWListTable,
	}
}

// Interpreter is one independent NUML session: its own name table,
// base function table, and numeric context.
type Interpreter struct {
	ev  *eval.Evaluator
	cfg Config
}

// New constructs an Interpreter from cfg.
func New(cfg Config) *Interpreter {
	return &Interpreter{ev: eval.New(cfg.toEvalConfig()), cfg: cfg}
}

// Parse runs the bundled lexer/parser over text, returning the
// top-level statement list ready for Evaluate.
func Parse(text string) (*ast.List, []string) {
	l := lexer.New(text)
	p := parser.New(l)
	prog := p.Parse()
	return prog, p.Errors()
}

// Evaluate parses and evaluates text as a single program, returning
// the value of its last non-suppressed statement (spec §4.1's `ans`
// binding). ExitStatus() reflects the outcome afterward.
func (in *Interpreter) Evaluate(text string) (value.Value, error) {
	prog, errs := Parse(text)
	if len(errs) > 0 {
		in.ev.ExitStatus = eval.StatusParserError
		return nil, fmt.Errorf("parse error: %s", errs[0])
	}
	result, err := in.ev.Evaluate(prog)
	if err != nil {
		in.ev.ExitStatus = eval.StatusEvalError
		return nil, err
	}
	v, err := eval.Collapse(result)
	if err != nil {
		in.ev.ExitStatus = eval.StatusEvalError
		return nil, err
	}
	in.ev.ExitStatus = eval.StatusOK
	return v, nil
}

// EvaluateNode evaluates a single already-parsed statement node,
// mirroring the top-level list's display-suppression policy: a bare
// expression statement that isn't suppressed with a trailing `;`
// rebinds `ans`; an assignment never does (spec §4.1 "ans").
// suppressed reports whether the caller should skip displaying it.
func (in *Interpreter) EvaluateNode(node ast.Node, omit bool) (v value.Value, suppressed bool, err error) {
	result, err := in.ev.Evaluate(node)
	if err != nil {
		in.ev.ExitStatus = eval.StatusEvalError
		return nil, false, err
	}
	v, err = eval.Collapse(result)
	if err != nil {
		in.ev.ExitStatus = eval.StatusEvalError
		return nil, false, err
	}
	in.ev.ExitStatus = eval.StatusOK
	if _, isAssign := node.(*ast.Assign); !isAssign && !omit && v != nil {
		in.ev.Env.Vars["ans"] = &eval.NameEntry{Value: v}
	}
	return v, omit, nil
}

// Unparse renders an AST node to its canonical surface-form text
// (spec §4.5). Always total: never returns an error.
func (in *Interpreter) Unparse(node ast.Node) string {
	return unparse.Text(node)
}

// UnparseValue renders a runtime value to its canonical surface-form
// text.
func (in *Interpreter) UnparseValue(v value.Value) string {
	return unparse.Value(v)
}

// UnparseMathML renders an AST node to a MathML fragment (spec §4.5).
// display selects "inline" or "block"; debug, if true, surfaces
// rendering panics as a Go error instead of the `<mi>error</mi>`
// sentinel.
func (in *Interpreter) UnparseMathML(node ast.Node, display unparse.Display, debug bool) (string, error) {
	return unparse.MathML(node, display, debug)
}

// UnparseValueMathML renders a runtime value's MathML presentation.
func (in *Interpreter) UnparseValueMathML(v value.Value, display unparse.Display) string {
	return unparse.ValueMathML(v, display)
}

// Clear implements the `clear` host-level entry point: with no names,
// a full reset (spec §9 "clear with no arguments resets everything
// including ans"); with names, removes just those bindings.
func (in *Interpreter) Clear(names ...string) {
	in.ev.Clear(names...)
}

// Restart fully reconstructs the interpreter from its original
// construction configuration.
func (in *Interpreter) Restart() {
	in.ev.Restart()
}

// ExitStatus reports the outcome of the most recent Evaluate call.
func (in *Interpreter) ExitStatus() ExitStatus {
	return in.ev.ExitStatus
}

// BaseFunctionNames returns every registered Base-function-table name,
// the inspection accessor spec §6 requires.
func (in *Interpreter) BaseFunctionNames() []string {
	names := make([]string, 0, len(in.ev.Env.Base))
	for name := range in.ev.Env.Base {
		names = append(names, name)
	}
	return names
}

// Names returns every currently bound Name-table entry (variables and
// user-defined functions alike).
func (in *Interpreter) Names() []string {
	names := make([]string, 0, len(in.ev.Env.Vars))
	for name := range in.ev.Env.Vars {
		names = append(names, name)
	}
	return names
}

// CommandNames returns every registered Command-word-table name.
func (in *Interpreter) CommandNames() []string {
	names := make([]string, 0, len(in.ev.Env.Commands))
	for name := range in.ev.Env.Commands {
		names = append(names, name)
	}
	return names
}

// Lookup returns the current value bound to name, if any.
func (in *Interpreter) Lookup(name string) (value.Value, bool) {
	entry, ok := in.ev.Env.Vars[name]
	if !ok || entry.IsFunc {
		return nil, false
	}
	return entry.Value, true
}

// FormatError renders err with source context and a caret indicator
// when err originated from the core (a *errors.CompilerError);
// otherwise it falls back to err.Error().
func FormatError(err error, source, file string, color bool) string {
	if ce, ok := err.(*errors.CompilerError); ok {
		return ce.WithSource(source, file).Format(color)
	}
	return err.Error()
}
