package eval

import (
	"github.com/numl-lang/numl/internal/ast"
	"github.com/numl-lang/numl/internal/errors"
	"github.com/numl-lang/numl/internal/value"
)

// fieldName resolves one designator to its field-name string,
// evaluating dynamic (expression) designators and requiring they
// produce a CharString (spec §4.1 "Field access").
func (ev *Evaluator) fieldName(d ast.FieldDesignator, pos ast.Position) (string, error) {
	if d.Expr == nil {
		return d.Name, nil
	}
	v, err := ev.EvalValue(d.Expr)
	if err != nil {
		return "", err
	}
	s, ok := v.(value.String)
	if !ok {
		return "", errors.New(errors.KindEvaluation, "dynamic field designator must evaluate to a string").At(pos)
	}
	return s.Go(), nil
}

// evalField implements spec §4.1 "Field access (.)" and §4.4
// getField: traverses Path, failing when an intermediate field is
// missing on read.
func (ev *Evaluator) evalField(n *ast.Field) (Result, error) {
	n.Object.SetParent(n)
	objV, err := ev.EvalValue(n.Object)
	if err != nil {
		return nil, err
	}
	cur := objV
	for _, d := range n.Path {
		name, err := ev.fieldName(d, n.Pos())
		if err != nil {
			return nil, err
		}
		st, ok := cur.(*value.Struct)
		if !ok {
			return nil, errors.New(errors.KindEvaluation, "cannot access field %q of a non-structure value", name).At(n.Pos())
		}
		v, ok := st.Get(name)
		if !ok {
			return nil, errors.New(errors.KindEvaluation, "structure has no field %q", name).At(n.Pos())
		}
		cur = v
	}
	return cur, nil
}
