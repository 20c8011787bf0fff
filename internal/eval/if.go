package eval

import (
	"github.com/numl-lang/numl/internal/ast"
	"github.com/numl-lang/numl/internal/value"
)

// evalIf implements spec §4.1 "if command": the first condition whose
// boolean projection is true selects the matching then-body; if none
// match, the else-body runs if present, otherwise an empty array.
func (ev *Evaluator) evalIf(n *ast.If) (Result, error) {
	for i, cond := range n.Conds {
		cond.SetParent(n)
		cond.SetIndex(i)
		cv, err := ev.EvalValue(cond)
		if err != nil {
			return nil, err
		}
		ok, err := truthy(cv)
		if err != nil {
			return nil, err
		}
		if ok {
			n.Thens[i].SetParent(n)
			return ev.Evaluate(n.Thens[i])
		}
	}
	if n.Else != nil {
		n.Else.SetParent(n)
		return ev.Evaluate(n.Else)
	}
	return &value.Array{Dims: []int{0, 0}}, nil
}
