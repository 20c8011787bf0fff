package value

import "errors"

// Extend grows the array to newDims (which must dominate Dims in
// every position), filling new positions with the class's default
// fill value (spec §4.1 indexed-assignment "Out-of-bounds writes
// extend the array with default fill").
func (a *Array) Extend(newDims []int) {
	rank := len(newDims)
	if len(a.Dims) > rank {
		rank = len(a.Dims)
	}
	oldDims := padDims(a.Dims, rank)
	nd := padDims(newDims, rank)
	for i := range nd {
		if oldDims[i] > nd[i] {
			nd[i] = oldDims[i]
		}
	}

	out := &Array{Dims: nd, Class: a.Class, Cell: a.Cell, Data: make([]Value, product(nd))}
	fill := defaultFill(a.Class, a.Cell)
	for i := range out.Data {
		out.Data[i] = fill
	}
	oldStrides := stridesFor(oldDims)
	newStrides := stridesFor(nd)
	total := product(oldDims)
	for lin := 0; lin < total; lin++ {
		sub := subFromOffset(lin, oldStrides, oldDims)
		offOld := offsetFor(sub, oldStrides)
		offNew := offsetFor(sub, newStrides)
		if offOld < len(a.Data) {
			out.Data[offNew] = a.Data[offOld]
		}
	}
	*a = *out
}

func padDims(dims []int, rank int) []int {
	out := make([]int, rank)
	for i := range out {
		if i < len(dims) {
			out[i] = dims[i]
		} else {
			out[i] = 1
		}
	}
	return out
}

func stridesFor(dims []int) []int {
	s := make([]int, len(dims))
	acc := 1
	for i := len(dims) - 1; i >= 0; i-- {
		s[i] = acc
		acc *= dims[i]
	}
	return s
}

func offsetFor(sub, strides []int) int {
	off := 0
	for i, v := range sub {
		off += v * strides[i]
	}
	return off
}

func subFromOffset(off int, strides, dims []int) []int {
	sub := make([]int, len(dims))
	for i, s := range strides {
		if s == 0 {
			continue
		}
		sub[i] = (off / s) % dims[i]
	}
	return sub
}

// LinearGet reads the 0-based column-major-indexed elements in idx,
// shaping the result as a column vector unless colVector is false (a
// row subscript yields a row result), per spec §4.3 "Linear" indexing.
func (a *Array) LinearGet(idx []int, colVector bool) (*Array, error) {
	data := make([]Value, len(idx))
	for i, p := range idx {
		if p < 0 || p >= a.LinearLength() {
			return nil, errors.New("index out of bounds")
		}
		data[i] = a.GetLinear(p)
	}
	dims := []int{len(idx), 1}
	if !colVector {
		dims = []int{1, len(idx)}
	}
	return &Array{Dims: dims, Class: a.Class, Cell: a.Cell, Data: data}, nil
}

// LinearSet writes v (broadcast if scalar-shaped, else element-aligned
// with idx) at the given 0-based column-major positions, extending the
// array when any position is out of bounds.
func (a *Array) LinearSet(idx []int, v Value) error {
	max := -1
	for _, p := range idx {
		if p > max {
			max = p
		}
	}
	if max >= a.LinearLength() {
		if len(a.Dims) == 2 && a.Dim(2) == 1 && a.Dim(1) > 1 {
			a.Extend([]int{max + 1, 1})
		} else {
			a.Extend([]int{1, max + 1})
		}
	}
	src, isArray := v.(*Array)
	if isArray && src.LinearLength() == len(idx) {
		for i, p := range idx {
			a.SetLinear(p, src.GetLinear(i))
		}
		return nil
	}
	for _, p := range idx {
		a.SetLinear(p, v)
	}
	return nil
}

// SubGet reads the outer product of per-dimension 0-based index lists
// (spec §4.3 "Subscripted").
func (a *Array) SubGet(subs [][]int) (*Array, error) {
	rank := len(subs)
	dims := padDims(a.Dims, rank)
	resultDims := make([]int, rank)
	for i, s := range subs {
		resultDims[i] = len(s)
	}
	total := product(resultDims)
	data := make([]Value, total)
	resStrides := stridesFor(resultDims)
	srcStrides := stridesFor(dims)
	for lin := 0; lin < total; lin++ {
		resSub := subFromOffset(lin, resStrides, resultDims)
		srcSub := make([]int, rank)
		for d := range resSub {
			idx := subs[d][resSub[d]]
			if idx < 0 || idx >= dims[d] {
				return nil, errors.New("index out of bounds")
			}
			srcSub[d] = idx
		}
		data[lin] = a.Data[offsetFor(srcSub, srcStrides)]
	}
	return &Array{Dims: resultDims, Class: a.Class, Cell: a.Cell, Data: data}, nil
}

// SubSet writes v into the outer product addressed by subs, extending
// the array when any index is out of the current bounds.
func (a *Array) SubSet(subs [][]int, v Value) error {
	rank := len(subs)
	needDims := padDims(a.Dims, rank)
	grow := false
	for i, s := range subs {
		for _, idx := range s {
			if idx >= needDims[i] {
				needDims[i] = idx + 1
				grow = true
			}
		}
	}
	if grow || rank > len(a.Dims) {
		a.Extend(needDims)
	}
	dims := padDims(a.Dims, rank)
	resultDims := make([]int, rank)
	for i, s := range subs {
		resultDims[i] = len(s)
	}
	total := product(resultDims)
	resStrides := stridesFor(resultDims)
	srcStrides := stridesFor(dims)

	src, isArray := v.(*Array)
	broadcastScalar := !isArray || src.LinearLength() == 1
	var scalarVal Value
	if broadcastScalar {
		if isArray {
			scalarVal = src.Data[0]
		} else {
			scalarVal = v
		}
	} else if src.LinearLength() != total {
		return errors.New("assignment shape mismatch")
	}

	for lin := 0; lin < total; lin++ {
		resSub := subFromOffset(lin, resStrides, resultDims)
		dstSub := make([]int, rank)
		for d := range resSub {
			dstSub[d] = subs[d][resSub[d]]
		}
		off := offsetFor(dstSub, srcStrides)
		if broadcastScalar {
			a.Data[off] = scalarVal
		} else {
			a.Data[off] = src.GetLinear(lin)
		}
	}
	return nil
}

// Reshape reinterprets the array's elements, in column-major order,
// under newDims; product(newDims) must equal LinearLength().
func (a *Array) Reshape(newDims []int) (*Array, error) {
	total := a.LinearLength()
	if product(newDims) != total {
		return nil, errors.New("reshape: element count must not change")
	}
	out := &Array{Dims: append([]int(nil), newDims...), Class: a.Class, Cell: a.Cell, Data: make([]Value, total)}
	for lin := 0; lin < total; lin++ {
		out.SetLinear(lin, a.GetLinear(lin))
	}
	return out, nil
}

// Find returns the 0-based column-major positions of every truthy
// element, used both by the `find` builtin and to implement logical
// indexing (spec §8 property 3: "A(m) equals A(find(m))").
func (a *Array) Find(truthy func(Value) bool) []int {
	var out []int
	for lin := 0; lin < a.LinearLength(); lin++ {
		if truthy(a.GetLinear(lin)) {
			out = append(out, lin)
		}
	}
	return out
}

// LogicalGet implements spec §4.3 "Logical" read: a column vector of
// elements at truthy mask positions.
func (a *Array) LogicalGet(mask *Array, truthy func(Value) bool) (*Array, error) {
	idx := mask.Find(truthy)
	return a.LinearGet(idx, true)
}

// LogicalSet implements spec §4.3 "Logical" write.
func (a *Array) LogicalSet(mask *Array, truthy func(Value) bool, v Value) error {
	idx := mask.Find(truthy)
	return a.LinearSet(idx, v)
}
