package eval

import (
	"fmt"

	"github.com/numl-lang/numl/internal/errors"
	"github.com/numl-lang/numl/internal/value"
)

// Result is what Evaluate returns: either a plain value.Value or a
// *RetList produced by a multi-valued built-in (spec §4.1-RETLIST).
// It is an evaluator-level concept, not an AST node: RETLIST only ever
// exists between the moment a multi-valued call returns and the
// moment its consumer collapses or distributes it.
type Result interface{}

// RetList is a lazy, indexable multi-value wrapper. Select is driven
// by the consuming site: a multi-target assignment calls it once per
// target with the total target count; anything else collapses via
// Select(1, 0).
type RetList struct {
	N      int
	Select func(expected, index int) (value.Value, error)
}

// Collapse turns any Result into a single Value, the rule used
// whenever a RETLIST appears somewhere other than multi-target
// assignment (spec §4.1-RETLIST: "a RETLIST in value position...
// collapses to its first element").
func Collapse(r Result) (value.Value, error) {
	switch t := r.(type) {
	case nil:
		return nil, nil
	case *RetList:
		return t.Select(1, 0)
	case value.Value:
		return t, nil
	default:
		return nil, fmt.Errorf("internal: unexpected result type %T", r)
	}
}

// selectError formats the exact message spec §8 requires for RETLIST
// under-production.
func selectError(index int) error {
	return errors.New(errors.KindEvaluation, "element number %d undefined in return list", index+1)
}
