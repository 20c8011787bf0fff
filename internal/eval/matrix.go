package eval

import (
	"github.com/numl-lang/numl/internal/ast"
	"github.com/numl-lang/numl/internal/errors"
	"github.com/numl-lang/numl/internal/value"
)

// evalMatrix implements spec §4.3 "Construction": a `[]` literal
// horizontally concatenates each row's elements then vertically
// concatenates the rows; a `{}` literal keeps every element in its own
// cell without unification (spec §4.3, §3.2 "cell-literal flag").
func (ev *Evaluator) evalMatrix(n *ast.Matrix) (Result, error) {
	if n.Cell {
		rows := make([][]value.Value, len(n.Rows))
		for ri, row := range n.Rows {
			vals := make([]value.Value, len(row))
			for ci, elem := range row {
				elem.SetParent(n)
				v, err := ev.EvalValue(elem)
				if err != nil {
					return nil, err
				}
				vals[ci] = v
			}
			rows[ri] = vals
		}
		a, err := value.BuildCellLiteral(rows)
		if err != nil {
			return nil, errors.New(errors.KindEvaluation, "%v", err).At(n.Pos())
		}
		return a, nil
	}

	rowArrays := make([]*value.Array, len(n.Rows))
	for ri, row := range n.Rows {
		items := make([]value.Value, len(row))
		for ci, elem := range row {
			elem.SetParent(n)
			v, err := ev.EvalValue(elem)
			if err != nil {
				return nil, err
			}
			items[ci] = v
		}
		ra, err := value.HorzCat(items)
		if err != nil {
			return nil, errors.New(errors.KindEvaluation, "%v", err).At(n.Pos())
		}
		rowArrays[ri] = ra
	}
	out, err := value.VertCat(rowArrays)
	if err != nil {
		return nil, errors.New(errors.KindEvaluation, "%v", err).At(n.Pos())
	}
	return value.ToValue(out), nil
}
