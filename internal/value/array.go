package value

import (
	"errors"
	"strings"

	"github.com/numl-lang/numl/internal/numeric"
)

// ElemClass tags the element kind of a non-cell array.
type ElemClass int

const (
	ElemNumeric ElemClass = iota
	ElemString
)

// Array is the N-dimensional array value (spec §4.3). Dims has length
// >= 2; Data is row-major and has len(Data) == product(Dims). Cell ==
// true makes this a heterogeneous `{}` container whose elements are
// arbitrary Values; Cell == false makes it a homogeneous numeric or
// string matrix whose elements are Scalar (ElemNumeric) or a 1-rune
// String (ElemString).
type Array struct {
	Dims  []int
	Class ElemClass
	Cell  bool
	Data  []Value
}

// NewArray allocates a zero-filled array of the given shape and class.
func NewArray(dims []int, class ElemClass, cell bool) *Array {
	n := product(dims)
	data := make([]Value, n)
	fill := defaultFill(class, cell)
	for i := range data {
		data[i] = fill
	}
	return &Array{Dims: append([]int(nil), dims...), Class: class, Cell: cell, Data: data}
}

func defaultFill(class ElemClass, cell bool) Value {
	if cell {
		return Scalar{N: numeric.Zero()}
	}
	if class == ElemString {
		return String{Runes: []rune{0}}
	}
	return Scalar{N: numeric.Zero()}
}

func product(dims []int) int {
	n := 1
	for _, d := range dims {
		n *= d
	}
	return n
}

func (a *Array) Clone() Value {
	data := make([]Value, len(a.Data))
	for i, v := range a.Data {
		data[i] = v.Clone()
	}
	return &Array{Dims: append([]int(nil), a.Dims...), Class: a.Class, Cell: a.Cell, Data: data}
}

// Dim returns dimension i (1-indexed); i beyond the rank yields 1
// (spec §4.3 getDimension).
func (a *Array) Dim(i int) int {
	if i < 1 || i > len(a.Dims) {
		return 1
	}
	return a.Dims[i-1]
}

// LinearLength is the product of all dimensions.
func (a *Array) LinearLength() int { return product(a.Dims) }

func (a *Array) Rank() int { return len(a.Dims) }

// --- row-major <-> column-major linear mapping ---

// strides returns row-major strides for Dims.
func (a *Array) strides() []int {
	s := make([]int, len(a.Dims))
	acc := 1
	for i := len(a.Dims) - 1; i >= 0; i-- {
		s[i] = acc
		acc *= a.Dims[i]
	}
	return s
}

func (a *Array) rowMajorOffset(sub []int) int {
	s := a.strides()
	off := 0
	for i, v := range sub {
		off += v * s[i]
	}
	return off
}

// colMajorToSub converts a 0-based column-major linear index into a
// 0-based per-dimension subscript, matching MATLAB's column-major
// linear indexing convention over NUML's row-major storage.
func (a *Array) colMajorToSub(lin int) []int {
	sub := make([]int, len(a.Dims))
	for i := 0; i < len(a.Dims); i++ {
		d := a.Dims[i]
		if d == 0 {
			continue
		}
		sub[i] = lin % d
		lin /= d
	}
	return sub
}

func (a *Array) subToColMajor(sub []int) int {
	lin := 0
	mul := 1
	for i := 0; i < len(a.Dims); i++ {
		lin += sub[i] * mul
		mul *= a.Dims[i]
	}
	return lin
}

// GetLinear returns the element at 0-based column-major linear index p.
func (a *Array) GetLinear(p int) Value {
	return a.Data[a.rowMajorOffset(a.colMajorToSub(p))]
}

// SetLinear stores v at 0-based column-major linear index p.
func (a *Array) SetLinear(p int, v Value) {
	a.Data[a.rowMajorOffset(a.colMajorToSub(p))] = v
}

// At returns the element at 0-based subscript (row, col), the shape
// callers outside this package (the unparsers) need for 2-D display.
func (a *Array) At(row, col int) Value {
	return a.Data[a.rowMajorOffset([]int{row, col})]
}

// --- construction from literals ---

// ScalarAsArray wraps a scalar as a 1x1 numeric array.
func ScalarAsArray(s Scalar) *Array {
	return &Array{Dims: []int{1, 1}, Class: ElemNumeric, Data: []Value{s}}
}

// StringAsArray views a String as a 1xN char array (MATLAB treats a
// string literal as a character row vector).
func StringAsArray(s String) *Array {
	data := make([]Value, len(s.Runes))
	for i, r := range s.Runes {
		data[i] = String{Runes: []rune{r}, Double: s.Double}
	}
	n := len(s.Runes)
	if n == 0 {
		return &Array{Dims: []int{0, 0}, Class: ElemString, Data: nil}
	}
	return &Array{Dims: []int{1, n}, Class: ElemString, Data: data}
}

// AsArray coerces any value to its Array view without copying scalar
// contents unnecessarily: arrays pass through, scalars and strings are
// wrapped.
func AsArray(v Value) (*Array, bool) {
	switch t := v.(type) {
	case *Array:
		return t, true
	case Scalar:
		return ScalarAsArray(t), true
	case String:
		return StringAsArray(t), true
	default:
		return nil, false
	}
}

// ToValue collapses a 1x1 non-cell array back to a bare scalar/string,
// mirroring how MATLAB-style languages treat 1x1 results as scalars.
func ToValue(a *Array) Value {
	if !a.Cell && a.Dim(1) == 1 && a.Dim(2) == 1 && a.Rank() == 2 {
		return a.Data[0]
	}
	return a
}

// HorzCat concatenates values left-to-right along the column
// dimension, used for elements within one matrix-literal row.
func HorzCat(items []Value) (*Array, error) {
	arrays := make([]*Array, 0, len(items))
	for _, it := range items {
		a, ok := AsArray(it)
		if !ok {
			return nil, errors.New("cannot place a structure or cell inside a [] matrix literal")
		}
		if a.LinearLength() == 0 {
			continue
		}
		arrays = append(arrays, a)
	}
	if len(arrays) == 0 {
		return &Array{Dims: []int{0, 0}, Class: ElemNumeric}, nil
	}
	class := arrays[0].Class
	rows := arrays[0].Dim(1)
	for _, a := range arrays {
		if a.Class != class {
			return nil, errors.New("cannot concatenate numeric and string values in a matrix literal")
		}
		if a.Dim(1) != rows {
			return nil, errors.New("horizontal dimensions mismatch in matrix literal")
		}
	}
	cols := 0
	for _, a := range arrays {
		cols += a.Dim(2)
	}
	out := &Array{Dims: []int{rows, cols}, Class: class, Data: make([]Value, rows*cols)}
	colOffset := 0
	for _, a := range arrays {
		for r := 0; r < rows; r++ {
			for c := 0; c < a.Dim(2); c++ {
				out.Data[out.rowMajorOffset([]int{r, colOffset + c})] = a.Data[a.rowMajorOffset([]int{r, c})]
			}
		}
		colOffset += a.Dim(2)
	}
	return out, nil
}

// VertCat concatenates row-arrays top-to-bottom, used to assemble a
// matrix literal's rows.
func VertCat(rows []*Array) (*Array, error) {
	nonEmpty := rows[:0:0]
	for _, r := range rows {
		if r.LinearLength() > 0 {
			nonEmpty = append(nonEmpty, r)
		}
	}
	if len(nonEmpty) == 0 {
		return &Array{Dims: []int{0, 0}, Class: ElemNumeric}, nil
	}
	class := nonEmpty[0].Class
	cols := nonEmpty[0].Dim(2)
	for _, r := range nonEmpty {
		if r.Class != class {
			return nil, errors.New("cannot concatenate numeric and string rows in a matrix literal")
		}
		if r.Dim(2) != cols {
			return nil, errors.New("vertical dimensions mismatch in matrix literal")
		}
	}
	totalRows := 0
	for _, r := range nonEmpty {
		totalRows += r.Dim(1)
	}
	out := &Array{Dims: []int{totalRows, cols}, Class: class, Data: make([]Value, totalRows*cols)}
	rowOffset := 0
	for _, r := range nonEmpty {
		for rr := 0; rr < r.Dim(1); rr++ {
			for c := 0; c < cols; c++ {
				out.Data[out.rowMajorOffset([]int{rowOffset + rr, c})] = r.Data[r.rowMajorOffset([]int{rr, c})]
			}
		}
		rowOffset += r.Dim(1)
	}
	return out, nil
}

// BuildCellLiteral assembles a `{}` matrix literal: every row must
// have the same width; no concatenation or unification happens.
func BuildCellLiteral(rows [][]Value) (*Array, error) {
	if len(rows) == 0 {
		return &Array{Dims: []int{0, 0}, Cell: true}, nil
	}
	width := len(rows[0])
	for _, row := range rows {
		if len(row) != width {
			return nil, errors.New("all rows of a cell literal must have the same number of columns")
		}
	}
	out := &Array{Dims: []int{len(rows), width}, Cell: true, Data: make([]Value, len(rows)*width)}
	for r, row := range rows {
		for c, v := range row {
			out.Data[out.rowMajorOffset([]int{r, c})] = v
		}
	}
	return out, nil
}

// String renders the canonical MATLAB-style literal text: rows
// comma-separated within, rows semicolon-separated, any dimensions
// beyond the first two flattened into `|`-separated pages (spec §4.5's
// text unparser does not prescribe N-D display beyond a 2-D shape).
func (a *Array) String() string {
	open, close := "[", "]"
	if a.Cell {
		open, close = "{", "}"
	}
	rank := a.Rank()
	rows, cols := a.Dim(1), a.Dim(2)
	pageDims := padDims(a.Dims, rank)[2:]
	pages := product(pageDims)

	var sb strings.Builder
	sb.WriteString(open)
	for p := 0; p < pages; p++ {
		if p > 0 {
			sb.WriteString(" | ")
		}
		pageSub := subFromOffset(p, stridesFor(pageDims), pageDims)
		for r := 0; r < rows; r++ {
			if r > 0 {
				sb.WriteString("; ")
			}
			for c := 0; c < cols; c++ {
				if c > 0 {
					sb.WriteString(",")
				}
				sub := append([]int{r, c}, pageSub...)
				sb.WriteString(a.Data[a.rowMajorOffset(sub)].String())
			}
		}
	}
	sb.WriteString(close)
	return sb.String()
}
