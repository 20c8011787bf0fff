// Package ast defines the abstract syntax tree NUML's evaluator
// consumes. Any front end - the bundled recursive-descent parser or a
// replacement - is free to build this shape; the evaluator only
// requires the discriminators and fields declared here.
package ast

import (
	"github.com/numl-lang/numl/internal/errors"
)

// Position re-exports errors.Position so callers of this package don't
// need a second import for node positions.
type Position = errors.Position

// Node is the base interface every AST node implements.
//
// Parent/SetParent and Index/SetIndex back the end/: sentinel
// resolution and multi-target assignment decomposition described in
// spec §3.2 and §4.1. Design Note 9 models these as an arena of
// indices to sidestep ownership cycles in non-GC host languages; Go's
// garbage collector already traces cyclic pointer graphs correctly,
// so each node instead carries the back-link directly as a mutable
// field. The evaluator sets it lazily, the first time it descends
// into a node's children, never during parsing.
type Node interface {
	Pos() Position
	Parent() Node
	SetParent(Node)
	Index() int
	SetIndex(int)
}

// Base is embedded by every concrete node and supplies the mutable
// parent/index bookkeeping plus the source position.
type Base struct {
	position   Position
	parent     Node
	childIndex int
}

func (b *Base) Pos() Position       { return b.position }
func (b *Base) Parent() Node        { return b.parent }
func (b *Base) SetParent(p Node)    { b.parent = p }
func (b *Base) Index() int          { return b.childIndex }
func (b *Base) SetIndex(idx int)    { b.childIndex = idx }
func (b *Base) SetPos(p Position)   { b.position = p }

// NewBase constructs a Base at the given position.
func NewBase(pos Position) Base { return Base{position: pos} }

// --- Leaves ---

// ScalarLiteral is a numeric literal; the lexer/parser need only
// produce a decimal-parseable literal string, the evaluator parses it
// into a numeric.Scalar.
type ScalarLiteral struct {
	Base
	Literal    string // as written, e.g. "3.14", "2i", "1e-7"
	Imaginary  bool   // literal carried a trailing i/j suffix
}

// StringLiteral is a character-string literal, recording which quote
// style it was written with so the text unparser can round-trip it.
type StringLiteral struct {
	Base
	Value      string
	DoubleQuote bool
}

// Identifier is a bare name reference.
type Identifier struct {
	Base
	Name string
}

// EndRange is the `end` sentinel, valid only inside an enclosing
// indexing context (spec §4.1 "end and : sentinels").
type EndRange struct {
	Base
}

// Colon is the `:` sentinel used as a whole-dimension subscript or as
// a range's start:stop separator context marker.
type Colon struct {
	Base
}

// Wildcard is the `~` discard target used on the left side of `=`.
type Wildcard struct {
	Base
}

// --- Operators ---

// BinaryExpr covers every binary operator in spec §3.2's closed set:
// + - .* * ./ / .\ \ .^ ^ .** ** < <= == >= > != ~= & | && ||
type BinaryExpr struct {
	Base
	Op          string
	Left, Right Node
}

// UnaryExpr covers the prefix operators +_ -_ !_ ~_ ++_ --_.
type UnaryExpr struct {
	Base
	Op      string
	Operand Node
}

// PostfixExpr covers the postfix operators _++ _-- .' ' (transpose,
// conjugate transpose).
type PostfixExpr struct {
	Base
	Op      string
	Operand Node
}

// Paren preserves parenthesization for unparsing fidelity; it carries
// no evaluation semantics of its own beyond delegating to Inner.
type Paren struct {
	Base
	Inner Node
}

// --- Assignment ---

// Assign covers `=` and every compound form (+= -= *= /= \= ^= **=
// .*= ./= .\= .^= .**= &= |=). Op is "=" for plain assignment.
type Assign struct {
	Base
	Op    string
	Left  Node // identifier, IDX, field access, wildcard, or a single-row Matrix of such targets
	Right Node
}

// --- Range ---

// Range is start:stride:stop (Stride nil means the default +1).
type Range struct {
	Base
	Start, Stop Node
	Stride      Node
}

// --- Statement list ---

// List is a statement sequence; OmitOut[i] is true when statement i's
// source form was terminated with `;`, suppressing its display and
// its binding to `ans`.
type List struct {
	Base
	Items   []Node
	OmitOut []bool
}

// --- Index / call ---

// Idx is `head(args...)` or `head{args...}`; Brace selects the
// delimiter pair actually written, preserved for unparsing.
type Idx struct {
	Base
	Head  Node
	Args  []Node
	Brace bool // true => {}, false => ()
}

// --- Field access ---

// FieldDesignator is either a literal field name or a dynamic
// expression that must evaluate to a CharString.
type FieldDesignator struct {
	Name string
	Expr Node // non-nil for dynamic designators; Name is used when nil
}

// Field is `object.f1.f2...`; Path is non-empty.
type Field struct {
	Base
	Object Node
	Path   []FieldDesignator
}

// --- Matrix / cell literal ---

// Matrix is a matrix (Cell == false, `[]`) or cell (Cell == true, `{}`)
// literal: a sequence of rows, each a list of elements.
type Matrix struct {
	Base
	Rows [][]Node
	Cell bool
}

// --- Command word list ---

// CmdWList is a bare identifier in statement position followed by
// whitespace-separated unquoted string arguments, e.g. `clear all`.
type CmdWList struct {
	Base
	Name string
	Args []string
}

// --- If ---

// If models if/elseif/else: Conds[0] is the `if` condition, Conds[1:]
// are elseif conditions; Thens runs parallel to Conds. Else may be nil.
type If struct {
	Base
	Conds []Node
	Thens []Node
	Else  Node
}
