// Package eval implements the tree-walking evaluator: the environment
// (name table, base function table, command-word table), the
// expression/statement dispatch, assignment and indexing semantics,
// and the built-in function and command registries.
package eval

import (
	"github.com/numl-lang/numl/internal/ast"
	"github.com/numl-lang/numl/internal/numeric"
	"github.com/numl-lang/numl/internal/value"
)

// NameEntry is the Name table's single entry shape (spec §3.3): either
// a variable holding a Value, or a user-defined function whose body is
// an unevaluated AST node.
type NameEntry struct {
	IsFunc bool
	Params []string
	Body   ast.Node
	Value  value.Value
}

// Arg is one already-positioned argument to a base-function call: the
// unevaluated AST node is always available; Val/Evaluated record
// whether the dispatcher already resolved it (masked-false positions
// stay unevaluated for the implementation to handle itself).
type Arg struct {
	Node      ast.Node
	Val       value.Value
	Evaluated bool
}

// BaseEntry is the Base function table's entry shape (spec §3.3 and
// Design Notes "Function tables"). Exactly one of ScalarImpl (mapper
// functions, lifted element-wise over a single array argument) or
// Impl (everything else) is set.
type BaseEntry struct {
	Mapper     bool
	ScalarImpl func(ctx *numeric.Context, s numeric.Scalar) (numeric.Scalar, error)
	LazyMask   []bool
	Impl       func(ev *Evaluator, pos ast.Position, args []Arg) (Result, error)
	MathML     func(args []string) string
}

// lazyAt reports whether argument position i is masked lazy (false =>
// eager). Positions beyond the mask default to eager.
func (b *BaseEntry) lazyAt(i int) bool {
	if i >= len(b.LazyMask) {
		return false
	}
	return !b.LazyMask[i]
}

// CommandFn implements one Command-word table entry: a string-vararg
// built-in invoked when a bare identifier in statement position has no
// variable or function binding.
type CommandFn func(ev *Evaluator, args []string) (value.Value, error)

// Env bundles the four mutable tables of spec §3.3 plus the alias
// resolver. The Local scope stack lives on Evaluator instead, since it
// is per-call-frame state rather than persistent table state.
type Env struct {
	Vars     map[string]*NameEntry
	Base     map[string]*BaseEntry
	Commands map[string]CommandFn
	Alias    func(name string) string
}

func newEnv() *Env {
	return &Env{
		Vars:     map[string]*NameEntry{},
		Base:     map[string]*BaseEntry{},
		Commands: map[string]CommandFn{},
		Alias:    func(name string) string { return name },
	}
}

func (e *Env) resolveBase(name string) (*BaseEntry, bool) {
	canonical := name
	if e.Alias != nil {
		canonical = e.Alias(name)
	}
	b, ok := e.Base[canonical]
	return b, ok
}
