package value

import (
	"sort"
	"strings"
)

// Struct is the named-field structure value (spec §3.1, §4.4). Fields
// preserves insertion order so unparsing reproduces the order fields
// were first assigned, the way `struct(a = 1; b = 2)` would print.
type Struct struct {
	order  []string
	fields map[string]Value
}

// NewStruct returns an empty structure.
func NewStruct() *Struct {
	return &Struct{fields: map[string]Value{}}
}

func (st *Struct) Clone() Value {
	out := &Struct{order: append([]string(nil), st.order...), fields: make(map[string]Value, len(st.fields))}
	for k, v := range st.fields {
		out.fields[k] = v.Clone()
	}
	return out
}

// Get returns the field's value and whether it exists.
func (st *Struct) Get(name string) (Value, bool) {
	v, ok := st.fields[name]
	return v, ok
}

// Set creates or overwrites a field, recording it at the end of the
// field order on first assignment (setNewField, spec §4.4).
func (st *Struct) Set(name string, v Value) {
	if _, exists := st.fields[name]; !exists {
		st.order = append(st.order, name)
	}
	st.fields[name] = v
}

// Remove drops a field, used by `clear` on struct-local scopes.
func (st *Struct) Remove(name string) {
	if _, ok := st.fields[name]; !ok {
		return
	}
	delete(st.fields, name)
	for i, n := range st.order {
		if n == name {
			st.order = append(st.order[:i], st.order[i+1:]...)
			break
		}
	}
}

// Fields returns field names in insertion order.
func (st *Struct) Fields() []string {
	return append([]string(nil), st.order...)
}

// SortedFields returns field names alphabetically, useful for
// deterministic test output independent of assignment order.
func (st *Struct) SortedFields() []string {
	out := append([]string(nil), st.order...)
	sort.Strings(out)
	return out
}

func (st *Struct) String() string {
	var sb strings.Builder
	sb.WriteString("struct(")
	for i, name := range st.order {
		if i > 0 {
			sb.WriteString("; ")
		}
		sb.WriteString(name)
		sb.WriteString(" = ")
		sb.WriteString(st.fields[name].String())
	}
	sb.WriteString(")")
	return sb.String()
}
