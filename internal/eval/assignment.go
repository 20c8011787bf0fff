package eval

import (
	"strings"

	"github.com/numl-lang/numl/internal/ast"
	"github.com/numl-lang/numl/internal/errors"
	"github.com/numl-lang/numl/internal/numeric"
	"github.com/numl-lang/numl/internal/value"
)

// assignTarget is one decomposed left-hand-side target (spec §4.1
// Assignment: "each target has an identifier, a possibly-empty
// index-argument list, and a possibly-empty field path").
type assignTarget struct {
	Wildcard bool
	Ident    string
	Index    []ast.Node
	Field    []ast.FieldDesignator
}

func errInvalidLeft(pos ast.Position) error {
	return errors.New(errors.KindEvaluation, "invalid left side of assignment").At(pos)
}

// decomposeTargets implements spec §4.1's valid-left-side list: a
// plain identifier, an IDX with an identifier head, a field access
// whose object is an identifier or such an IDX, the wildcard, or (only
// at the top level) a single-row matrix literal of such targets.
func decomposeTargets(left ast.Node) ([]assignTarget, error) {
	switch t := left.(type) {
	case *ast.Wildcard:
		return []assignTarget{{Wildcard: true}}, nil
	case *ast.Identifier:
		return []assignTarget{{Ident: t.Name}}, nil
	case *ast.Idx:
		id, ok := t.Head.(*ast.Identifier)
		if !ok {
			return nil, errInvalidLeft(t.Pos())
		}
		return []assignTarget{{Ident: id.Name, Index: t.Args}}, nil
	case *ast.Field:
		switch obj := t.Object.(type) {
		case *ast.Identifier:
			return []assignTarget{{Ident: obj.Name, Field: t.Path}}, nil
		case *ast.Idx:
			id, ok := obj.Head.(*ast.Identifier)
			if !ok {
				return nil, errInvalidLeft(t.Pos())
			}
			return []assignTarget{{Ident: id.Name, Index: obj.Args, Field: t.Path}}, nil
		default:
			return nil, errInvalidLeft(t.Pos())
		}
	case *ast.Matrix:
		if t.Cell || len(t.Rows) != 1 {
			return nil, errInvalidLeft(t.Pos())
		}
		var out []assignTarget
		for _, elem := range t.Rows[0] {
			sub, err := decomposeTargets(elem)
			if err != nil {
				return nil, err
			}
			out = append(out, sub...)
		}
		return out, nil
	default:
		return nil, errInvalidLeft(left.Pos())
	}
}

func allUnboundIdentifiers(ev *Evaluator, args []ast.Node) ([]string, bool) {
	names := make([]string, len(args))
	for i, a := range args {
		id, ok := a.(*ast.Identifier)
		if !ok || ev.isBound(id.Name) {
			return nil, false
		}
		names[i] = id.Name
	}
	return names, true
}

func coreOp(op string) string { return strings.TrimSuffix(op, "=") }

// evalAssign implements spec §4.1 "Assignment (=)" in full: the
// function-definition disambiguation, single- and multi-target
// distribution through RETLIST, and per-target storage.
func (ev *Evaluator) evalAssign(n *ast.Assign) (Result, error) {
	n.Left.SetParent(n)
	n.Right.SetParent(n)

	targets, err := decomposeTargets(n.Left)
	if err != nil {
		return nil, err
	}

	if n.Op == "=" && len(targets) == 1 && len(targets[0].Index) > 0 && len(targets[0].Field) == 0 && !ev.isBound(targets[0].Ident) {
		if params, ok := allUnboundIdentifiers(ev, targets[0].Index); ok {
			ev.Env.Vars[targets[0].Ident] = &NameEntry{IsFunc: true, Params: params, Body: n.Right}
			return nil, nil
		}
	}

	if n.Op != "=" && len(targets) > 1 {
		return nil, errors.New(errors.KindEvaluation, "computed multiple assignment not allowed").At(n.Pos())
	}

	result, err := ev.Evaluate(n.Right)
	if err != nil {
		return nil, err
	}

	if len(targets) > 1 {
		rl, ok := result.(*RetList)
		if !ok {
			v, err := Collapse(result)
			if err != nil {
				return nil, err
			}
			rl = &RetList{N: 1, Select: func(expected, index int) (value.Value, error) {
				if index == 0 {
					return v, nil
				}
				return nil, selectError(index)
			}}
		}
		for i, t := range targets {
			val, err := rl.Select(len(targets), i)
			if err != nil {
				return nil, err
			}
			if err := ev.assignTo(t, n.Op, val, n.Pos()); err != nil {
				return nil, err
			}
		}
		return nil, nil
	}

	val, err := Collapse(result)
	if err != nil {
		return nil, err
	}
	if err := ev.assignTo(targets[0], n.Op, val, n.Pos()); err != nil {
		return nil, err
	}
	return val, nil
}

func (ev *Evaluator) lookupVarRaw(name string) (value.Value, bool) {
	if frame := ev.localFrame(); frame != nil {
		if v, ok := frame[name]; ok {
			return v, true
		}
	}
	if entry, ok := ev.Env.Vars[name]; ok && !entry.IsFunc {
		return entry.Value, true
	}
	return nil, false
}

func (ev *Evaluator) storeVar(name string, v value.Value) {
	if frame := ev.localFrame(); frame != nil {
		frame[name] = v
		return
	}
	ev.Env.Vars[name] = &NameEntry{Value: v}
}

func (ev *Evaluator) assignTo(t assignTarget, op string, rhs value.Value, pos ast.Position) error {
	if t.Wildcard {
		return nil
	}
	if len(t.Field) > 0 {
		return ev.assignField(t, op, rhs, pos)
	}
	if len(t.Index) == 0 {
		return ev.assignVariable(t.Ident, op, rhs, pos)
	}
	return ev.assignIndexed(t, op, rhs, pos)
}

func (ev *Evaluator) assignVariable(name, op string, rhs value.Value, pos ast.Position) error {
	if op == "=" {
		ev.storeVar(name, rhs)
		return nil
	}
	cur, ok := ev.lookupVarRaw(name)
	if !ok {
		return errors.New(errors.KindEvaluation, "'%s' is undefined", name).At(pos)
	}
	newVal, err := ev.applyOp(coreOp(op), cur, rhs, pos)
	if err != nil {
		return err
	}
	ev.storeVar(name, newVal)
	return nil
}

// assignField implements spec §4.1 target rule 2 / §4.4 setNewField:
// ensure the named variable is a Structure (creating one if missing),
// create intermediate Structures along the path, and set the leaf.
func (ev *Evaluator) assignField(t assignTarget, op string, rhs value.Value, pos ast.Position) error {
	if len(t.Index) > 0 {
		return errors.New(errors.KindEvaluation, "indexed structure-array field assignment is not supported").At(pos)
	}
	cur, ok := ev.lookupVarRaw(t.Ident)
	var st *value.Struct
	if !ok {
		st = value.NewStruct()
		ev.storeVar(t.Ident, st)
	} else {
		s, ok2 := cur.(*value.Struct)
		if !ok2 {
			return errors.New(errors.KindEvaluation, "'%s' is not a structure", t.Ident).At(pos)
		}
		st = s
	}

	names := make([]string, len(t.Field))
	for i, d := range t.Field {
		name, err := ev.fieldName(d, pos)
		if err != nil {
			return err
		}
		names[i] = name
	}

	walker := st
	for i := 0; i < len(names)-1; i++ {
		child, ok := walker.Get(names[i])
		if !ok {
			next := value.NewStruct()
			walker.Set(names[i], next)
			walker = next
			continue
		}
		cs, ok2 := child.(*value.Struct)
		if !ok2 {
			return errors.New(errors.KindEvaluation, "field %q is not a structure", names[i]).At(pos)
		}
		walker = cs
	}
	leaf := names[len(names)-1]

	if op == "=" {
		walker.Set(leaf, rhs)
		return nil
	}
	old, ok := walker.Get(leaf)
	if !ok {
		return errors.New(errors.KindEvaluation, "structure has no field %q", leaf).At(pos)
	}
	newVal, err := ev.applyOp(coreOp(op), old, rhs, pos)
	if err != nil {
		return err
	}
	walker.Set(leaf, newVal)
	return nil
}

// assignIndexed implements spec §4.1 target rule 5: logical or
// subscripted indexed assignment into a MultiArray, creating or
// extending it as needed.
func (ev *Evaluator) assignIndexed(t assignTarget, op string, rhs value.Value, pos ast.Position) error {
	cur, ok := ev.lookupVarRaw(t.Ident)
	var arr *value.Array
	if !ok {
		arr = &value.Array{Dims: []int{0, 0}, Class: value.ElemNumeric}
	} else {
		a, ok2 := value.AsArray(cur)
		if !ok2 {
			return errors.New(errors.KindEvaluation, "'%s' is not indexable", t.Ident).At(pos)
		}
		arr = a
	}

	r, err := ev.resolveArgs(t.Index, arr.Dims)
	if err != nil {
		return err
	}

	applyRHS := rhs
	if op != "=" {
		old, err := ev.readResolved(arr, r, pos)
		if err != nil {
			return err
		}
		nv, err := ev.applyOp(coreOp(op), old, rhs, pos)
		if err != nil {
			return err
		}
		applyRHS = nv
	}

	switch {
	case r.Logical != nil:
		if err := arr.LogicalSet(r.Logical, truthyScalar, applyRHS); err != nil {
			return errors.New(errors.KindArithmetic, "%v", err).At(pos)
		}
	case r.Subs != nil:
		if err := arr.SubSet(r.Subs, applyRHS); err != nil {
			return errors.New(errors.KindArithmetic, "%v", err).At(pos)
		}
	default:
		if err := arr.LinearSet(r.LinearIdx, applyRHS); err != nil {
			return errors.New(errors.KindArithmetic, "%v", err).At(pos)
		}
	}
	ev.storeVar(t.Ident, arr)
	return nil
}

func (ev *Evaluator) readResolved(arr *value.Array, r resolved, pos ast.Position) (value.Value, error) {
	switch {
	case r.Logical != nil:
		out, err := arr.LogicalGet(r.Logical, truthyScalar)
		if err != nil {
			return nil, errors.New(errors.KindArithmetic, "%v", err).At(pos)
		}
		return value.ToValue(out), nil
	case r.Subs != nil:
		out, err := arr.SubGet(r.Subs)
		if err != nil {
			return nil, errors.New(errors.KindArithmetic, "%v", err).At(pos)
		}
		return value.ToValue(out), nil
	default:
		out, err := arr.LinearGet(r.LinearIdx, r.LinearCol)
		if err != nil {
			return nil, errors.New(errors.KindArithmetic, "%v", err).At(pos)
		}
		return value.ToValue(out), nil
	}
}

// incrDecr implements the ++/-- prefix and postfix operators as an
// in-place update of a plain variable target; indexed or field targets
// are rejected with an evaluation error.
func (ev *Evaluator) incrDecr(operand ast.Node, increment, prefix bool, pos ast.Position) (Result, error) {
	id, ok := operand.(*ast.Identifier)
	if !ok {
		return nil, errors.New(errors.KindEvaluation, "++/-- require a plain variable operand").At(pos)
	}
	cur, ok := ev.lookupVarRaw(id.Name)
	if !ok {
		return nil, errors.New(errors.KindReference, "'%s' is undefined", id.Name).At(pos)
	}
	op := "+"
	if !increment {
		op = "-"
	}
	nv, err := ev.applyOp(op, cur, value.NewScalar(numeric.One()), pos)
	if err != nil {
		return nil, err
	}
	ev.storeVar(id.Name, nv)
	if prefix {
		return nv, nil
	}
	return cur, nil
}
