package eval

import "github.com/google/uuid"

// CallFrame is one entry of the local-scope stack (spec §3.3): the
// formal-parameter bindings for one in-flight user-function call. ID
// is the "unique synthetic key" the spec's IDX-resolution rule calls
// for; frames live on an explicit stack rather than a flat map keyed
// by it (Design Notes: the random-key map is not reproduced), but the
// id still rides along on each frame for recursion diagnostics.
type CallFrame struct {
	ID   uuid.UUID
	Vars Frame
}

func (ev *Evaluator) pushFrame() *CallFrame {
	f := &CallFrame{ID: uuid.New(), Vars: Frame{}}
	ev.CallStack = append(ev.CallStack, f)
	return f
}

func (ev *Evaluator) popFrame() {
	ev.CallStack = ev.CallStack[:len(ev.CallStack)-1]
}
