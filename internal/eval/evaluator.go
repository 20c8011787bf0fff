package eval

import (
	"github.com/numl-lang/numl/internal/ast"
	"github.com/numl-lang/numl/internal/errors"
	"github.com/numl-lang/numl/internal/numeric"
	"github.com/numl-lang/numl/internal/value"
)

// ExitStatus mirrors spec §6's exposed exitStatus field.
type ExitStatus int

const (
	StatusOK          ExitStatus = 0
	StatusLexError    ExitStatus = 1
	StatusParserError ExitStatus = 2
	StatusEvalError   ExitStatus = 3
	StatusWarning     ExitStatus = -1
	StatusExternal    ExitStatus = -2
)

// Frame is one Local scope stack entry: formal parameter name to its
// bound argument value, for the duration of one user-function call.
type Frame map[string]value.Value

// Config is the evaluator's construction-time configuration (spec §6
// "Construction with a configuration object"). Options not listed
// there are rejected by the facade in pkg/numl, not here.
type Config struct {
	AliasTable            map[string]string
	ExternalFunctionTable map[string]*BaseEntry
	ExternalCmdWListTable map[string]CommandFn
}

// Evaluator is the tree-walking interpreter core: it owns the
// environment, the numeric context, the local-scope stack, and the
// exit-status field.
type Evaluator struct {
	Env        *Env
	Ctx        *numeric.Context
	CallStack  []*CallFrame
	ExitStatus ExitStatus
	MathMLDebug bool
	cfg        Config

	// IndexStack backs end/: sentinel resolution (spec §4.1 "end and :
	// sentinels"). Each IDX argument position being evaluated pushes
	// one frame; since argument evaluation nests exactly like the AST
	// parent chain the sentinels are specified to walk, a stack gives
	// identical resolution without threading a runtime array reference
	// through every AST node.
	IndexStack []indexCtx
}

// indexCtx is one IDX argument-position's end/: resolution context.
type indexCtx struct {
	Dims  []int
	NArgs int
	Pos   int
}

func (ev *Evaluator) dimSize(top indexCtx) int {
	if top.NArgs == 1 {
		n := 1
		for _, d := range top.Dims {
			n *= d
		}
		return n
	}
	if top.Pos < len(top.Dims) {
		return top.Dims[top.Pos]
	}
	return 1
}

// New constructs an evaluator, seeding the native table and every
// built-in, then merging the caller's external tables over them.
func New(cfg Config) *Evaluator {
	ev := &Evaluator{Env: newEnv(), Ctx: numeric.NewContext(), cfg: cfg}
	ev.init()
	return ev
}

func (ev *Evaluator) init() {
	ev.seedNatives()
	registerMathBuiltins(ev.Env)
	registerArrayBuiltins(ev.Env)
	registerCommands(ev.Env)

	if ev.cfg.AliasTable != nil {
		table := ev.cfg.AliasTable
		ev.Env.Alias = func(name string) string {
			if canon, ok := table[name]; ok {
				return canon
			}
			return name
		}
	}
	for name, entry := range ev.cfg.ExternalFunctionTable {
		ev.Env.Base[name] = entry
	}
	for name, fn := range ev.cfg.ExternalCmdWListTable {
		ev.Env.Commands[name] = fn
	}
}

// Restart fully reconstructs the environment from the original
// construction configuration (spec §6 `restart()`).
func (ev *Evaluator) Restart() {
	ev.Env = newEnv()
	ev.Ctx = numeric.NewContext()
	ev.CallStack = nil
	ev.ExitStatus = StatusOK
	ev.init()
}

// Clear implements the `clear` command: with no names, performs a
// full reset of the Name table (natives re-seeded, every user
// variable and function dropped); with names, removes each one,
// taking both a variable and a same-named function entry with it
// since both live in the single Name table (spec §9 "clear x removes
// both a variable and a same-named function entry").
func (ev *Evaluator) Clear(names ...string) {
	if len(names) == 0 {
		ev.Env.Vars = map[string]*NameEntry{}
		ev.seedNatives()
		return
	}
	for _, n := range names {
		delete(ev.Env.Vars, n)
	}
}

func (ev *Evaluator) seedNatives() {
	set := func(name string, v value.Value) { ev.Env.Vars[name] = &NameEntry{Value: v} }
	set("false", value.NewScalar(numeric.FromBool(false)))
	set("true", value.NewScalar(numeric.FromBool(true)))
	set("i", value.NewScalar(numeric.ImagUnit()))
	set("I", value.NewScalar(numeric.ImagUnit()))
	set("j", value.NewScalar(numeric.ImagUnit()))
	set("J", value.NewScalar(numeric.ImagUnit()))
	set("e", value.NewScalar(numeric.FromDecimal(numeric.Exp(ev.Ctx, numeric.One()).Re)))
	set("pi", value.NewScalar(numeric.FromDecimal(numeric.Pi(ev.Ctx))))
	set("inf", value.NewScalar(numeric.Inf(1)))
	set("Inf", value.NewScalar(numeric.Inf(1)))
	set("nan", value.NewScalar(numeric.NaN()))
	set("NaN", value.NewScalar(numeric.NaN()))
}

// Evaluate dispatches on the AST discriminator. It catches no errors:
// assignment.go returns a failing right-hand side's error as is, leaving
// the target's prior binding untouched, and the pkg/numl facade turns
// returned errors into an exit status.
func (ev *Evaluator) Evaluate(node ast.Node) (Result, error) {
	switch n := node.(type) {
	case nil:
		return nil, nil
	case *ast.ScalarLiteral:
		return ev.evalScalarLiteral(n)
	case *ast.StringLiteral:
		return value.NewString(n.Value, n.DoubleQuote), nil
	case *ast.Identifier:
		return ev.evalIdentifier(n)
	case *ast.EndRange:
		return ev.resolveEnd(n)
	case *ast.Colon:
		return ev.resolveColon(n)
	case *ast.Wildcard:
		return nil, errors.New(errors.KindSyntax, "`~` may only appear as an assignment target").At(n.Pos())
	case *ast.BinaryExpr:
		return ev.evalBinary(n)
	case *ast.UnaryExpr:
		return ev.evalUnary(n)
	case *ast.PostfixExpr:
		return ev.evalPostfix(n)
	case *ast.Paren:
		n.Inner.SetParent(n)
		return ev.Evaluate(n.Inner)
	case *ast.Assign:
		return ev.evalAssign(n)
	case *ast.Range:
		return ev.evalRange(n)
	case *ast.List:
		return ev.evalList(n)
	case *ast.Idx:
		return ev.evalIdx(n)
	case *ast.Field:
		return ev.evalField(n)
	case *ast.Matrix:
		return ev.evalMatrix(n)
	case *ast.CmdWList:
		return ev.evalCmdWList(n)
	case *ast.If:
		return ev.evalIf(n)
	default:
		return nil, errors.New(errors.KindEvaluation, "unhandled AST node %T", node).At(node.Pos())
	}
}

// EvalValue evaluates a node and collapses any RETLIST result,
// the common case for operand evaluation (spec §4.1 "Binary and
// unary operators resolve their operands first... then passed through
// the RETLIST collapse").
func (ev *Evaluator) EvalValue(node ast.Node) (value.Value, error) {
	r, err := ev.Evaluate(node)
	if err != nil {
		return nil, err
	}
	return Collapse(r)
}

func (ev *Evaluator) evalScalarLiteral(n *ast.ScalarLiteral) (Result, error) {
	s, err := parseScalarLiteral(n.Literal, n.Imaginary)
	if err != nil {
		return nil, errors.New(errors.KindSyntax, "invalid numeric literal %q: %v", n.Literal, err).At(n.Pos())
	}
	return value.NewScalar(s), nil
}
