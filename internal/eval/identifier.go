package eval

import (
	"github.com/numl-lang/numl/internal/ast"
	"github.com/numl-lang/numl/internal/errors"
)

// localFrame returns the innermost active call frame, or nil when not
// inside a user-function call.
func (ev *Evaluator) localFrame() Frame {
	if len(ev.CallStack) == 0 {
		return nil
	}
	return ev.CallStack[len(ev.CallStack)-1].Vars
}

// evalIdentifier implements spec §4.1 "Identifier reference": local
// scope first, then the global Name table. Bare command-word rewriting
// for unbound statement-position names is handled by evalList, which
// sees the identifier before calling here.
func (ev *Evaluator) evalIdentifier(n *ast.Identifier) (Result, error) {
	if frame := ev.localFrame(); frame != nil {
		if v, ok := frame[n.Name]; ok {
			return v.Clone(), nil
		}
	}
	entry, ok := ev.Env.Vars[n.Name]
	if !ok {
		return nil, errors.New(errors.KindReference, "'%s' is undefined", n.Name).At(n.Pos())
	}
	if entry.IsFunc {
		return nil, errors.New(errors.KindEvaluation, "calling %s without arguments list", n.Name).At(n.Pos())
	}
	return entry.Value.Clone(), nil
}
