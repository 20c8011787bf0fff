// Package linalg is a minimal stand-in for the "separately-maintained
// linear algebra routines" the core specification names as an external
// collaborator: it supplies det, inv, and lu as a host-supplied
// function-table fragment matching the evaluator's Base function table
// entry shape (spec §4.1/§6), merged in at construction via
// Config.ExternalFunctionTable. Real-valued double precision is enough
// to demonstrate the wiring; the arbitrary-precision complex kernel
// itself lives in internal/numeric.
package linalg

import (
	"math"

	"github.com/numl-lang/numl/internal/ast"
	"github.com/numl-lang/numl/internal/errors"
	"github.com/numl-lang/numl/internal/eval"
	"github.com/numl-lang/numl/internal/numeric"
	"github.com/numl-lang/numl/internal/value"
)

// Table builds the external function-table fragment, ready to be
// merged over the evaluator's built-ins: Config{ExternalFunctionTable:
// linalg.Table()}.
func Table() map[string]*eval.BaseEntry {
	return map[string]*eval.BaseEntry{
		"det": {Impl: builtinDet},
		"inv": {Impl: builtinInv},
		"lu":  {Impl: builtinLU},
	}
}

func squareMatrix(v value.Value) ([][]float64, int, *errors.CompilerError) {
	arr, ok := value.AsArray(v)
	if !ok || arr.Rank() != 2 {
		return nil, 0, errors.New(errors.KindEvaluation, "expected a 2-D numeric matrix")
	}
	n := arr.Dim(1)
	if n != arr.Dim(2) {
		return nil, 0, errors.New(errors.KindEvaluation, "expected a square matrix")
	}
	m := make([][]float64, n)
	for r := 0; r < n; r++ {
		m[r] = make([]float64, n)
		for c := 0; c < n; c++ {
			s, ok := arr.At(r, c).(value.Scalar)
			if !ok {
				return nil, 0, errors.New(errors.KindEvaluation, "expected a numeric matrix")
			}
			f, _ := s.N.Re.Float64()
			m[r][c] = f
		}
	}
	return m, n, nil
}

func matrixToValue(m [][]float64, rows, cols int) value.Value {
	data := make([]value.Value, rows*cols)
	arr := &value.Array{Dims: []int{rows, cols}, Class: value.ElemNumeric, Data: data}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			arr.Data[r*cols+c] = value.NewScalar(numeric.FromFloat(m[r][c]))
		}
	}
	return arr
}

// luDecompose runs partial-pivot Gaussian elimination, returning the
// combined LU matrix, the row-permutation vector, and the sign of the
// permutation (for determinant).
func luDecompose(m [][]float64, n int) ([][]float64, []int, int) {
	a := make([][]float64, n)
	for i := range a {
		a[i] = append([]float64(nil), m[i]...)
	}
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	sign := 1

	for k := 0; k < n; k++ {
		pivotRow, pivotVal := k, math.Abs(a[k][k])
		for r := k + 1; r < n; r++ {
			if v := math.Abs(a[r][k]); v > pivotVal {
				pivotRow, pivotVal = r, v
			}
		}
		if pivotRow != k {
			a[k], a[pivotRow] = a[pivotRow], a[k]
			perm[k], perm[pivotRow] = perm[pivotRow], perm[k]
			sign = -sign
		}
		if a[k][k] == 0 {
			continue
		}
		for r := k + 1; r < n; r++ {
			factor := a[r][k] / a[k][k]
			a[r][k] = factor
			for c := k + 1; c < n; c++ {
				a[r][c] -= factor * a[k][c]
			}
		}
	}
	return a, perm, sign
}

func builtinDet(ev *eval.Evaluator, pos ast.Position, args []eval.Arg) (eval.Result, error) {
	if len(args) != 1 {
		return nil, errors.New(errors.KindEvaluation, "det expects 1 argument, got %d", len(args)).At(pos)
	}
	m, n, err := squareMatrix(args[0].Val)
	if err != nil {
		return nil, err.At(pos)
	}
	lu, _, sign := luDecompose(m, n)
	det := float64(sign)
	for i := 0; i < n; i++ {
		det *= lu[i][i]
	}
	return value.NewScalar(numeric.FromFloat(det)), nil
}

func builtinInv(ev *eval.Evaluator, pos ast.Position, args []eval.Arg) (eval.Result, error) {
	if len(args) != 1 {
		return nil, errors.New(errors.KindEvaluation, "inv expects 1 argument, got %d", len(args)).At(pos)
	}
	m, n, err := squareMatrix(args[0].Val)
	if err != nil {
		return nil, err.At(pos)
	}

	aug := make([][]float64, n)
	for i := 0; i < n; i++ {
		aug[i] = make([]float64, 2*n)
		copy(aug[i], m[i])
		aug[i][n+i] = 1
	}
	for k := 0; k < n; k++ {
		pivotRow, pivotVal := k, math.Abs(aug[k][k])
		for r := k + 1; r < n; r++ {
			if v := math.Abs(aug[r][k]); v > pivotVal {
				pivotRow, pivotVal = r, v
			}
		}
		if aug[pivotRow][k] == 0 {
			return nil, errors.New(errors.KindArithmetic, "matrix is singular to working precision").At(pos)
		}
		aug[k], aug[pivotRow] = aug[pivotRow], aug[k]
		pivot := aug[k][k]
		for c := 0; c < 2*n; c++ {
			aug[k][c] /= pivot
		}
		for r := 0; r < n; r++ {
			if r == k {
				continue
			}
			factor := aug[r][k]
			for c := 0; c < 2*n; c++ {
				aug[r][c] -= factor * aug[k][c]
			}
		}
	}
	out := make([][]float64, n)
	for r := 0; r < n; r++ {
		out[r] = aug[r][n:]
	}
	return matrixToValue(out, n, n), nil
}

// builtinLU returns [L, U, P] via a RETLIST so `[l,u,p] = lu(A)` binds
// all three factors and `lu(A)` alone collapses to L.
func builtinLU(ev *eval.Evaluator, pos ast.Position, args []eval.Arg) (eval.Result, error) {
	if len(args) != 1 {
		return nil, errors.New(errors.KindEvaluation, "lu expects 1 argument, got %d", len(args)).At(pos)
	}
	m, n, err := squareMatrix(args[0].Val)
	if err != nil {
		return nil, err.At(pos)
	}
	combined, perm, _ := luDecompose(m, n)

	l := make([][]float64, n)
	u := make([][]float64, n)
	p := make([][]float64, n)
	for r := 0; r < n; r++ {
		l[r] = make([]float64, n)
		u[r] = make([]float64, n)
		p[r] = make([]float64, n)
		l[r][r] = 1
		p[r][perm[r]] = 1
		for c := 0; c < n; c++ {
			switch {
			case c < r:
				l[r][c] = combined[r][c]
			case c >= r:
				u[r][c] = combined[r][c]
			}
		}
	}

	results := []value.Value{matrixToValue(l, n, n), matrixToValue(u, n, n), matrixToValue(p, n, n)}
	return &eval.RetList{N: len(results), Select: func(expected, index int) (value.Value, error) {
		if index >= len(results) {
			return nil, errors.New(errors.KindEvaluation, "element number %d undefined in return list", index+1)
		}
		return results[index], nil
	}}, nil
}
