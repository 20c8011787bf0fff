package eval

import "github.com/numl-lang/numl/internal/ast"

// isBound reports whether name resolves to a local or global Name
// table entry (variable or function).
func (ev *Evaluator) isBound(name string) bool {
	if frame := ev.localFrame(); frame != nil {
		if _, ok := frame[name]; ok {
			return true
		}
	}
	_, ok := ev.Env.Vars[name]
	return ok
}

// evalList implements spec §4.1 "Top-level statement list": each
// statement runs in order; unless it was source-terminated with `;`
// (OmitOut) or is itself an assignment, its value is also recorded
// under `ans`. A bare, unbound identifier whose name matches a
// registered command word is rewritten to a zero-argument command
// invocation before evaluation.
func (ev *Evaluator) evalList(n *ast.List) (Result, error) {
	var last Result
	for i, item := range n.Items {
		item.SetParent(n)
		item.SetIndex(i)

		var res Result
		var err error
		if id, ok := item.(*ast.Identifier); ok && !ev.isBound(id.Name) {
			if cmd, hasCmd := ev.Env.Commands[id.Name]; hasCmd {
				v, cerr := cmd(ev, nil)
				res, err = v, cerr
			} else {
				res, err = ev.Evaluate(item)
			}
		} else {
			res, err = ev.Evaluate(item)
		}
		if err != nil {
			return nil, err
		}
		last = res

		omit := i < len(n.OmitOut) && n.OmitOut[i]
		if _, isAssign := item.(*ast.Assign); !isAssign && !omit {
			if v, cerr := Collapse(res); cerr == nil && v != nil {
				ev.Env.Vars["ans"] = &NameEntry{Value: v}
			}
		}
	}
	return last, nil
}

func (ev *Evaluator) evalCmdWList(n *ast.CmdWList) (Result, error) {
	cmd, ok := ev.Env.Commands[n.Name]
	if !ok {
		return nil, errorsUndefinedCommand(n)
	}
	return cmd(ev, n.Args)
}
