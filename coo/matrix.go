// Copyright 2025 The randnla Authors. SPDX-License-Identifier: Apache-2.0

// Package coo holds coordinate-format sparse matrices and the SpMM kernels
// the sparse sketching routines dispatch to. A Matrix is a zero-copy view:
// it aliases caller-owned index and value slices and never reallocates.
package coo

import (
	"fmt"

	"github.com/randnla/sketch"
)

// IndexBase is the origin of the row and column indices of a Matrix.
type IndexBase int64

const (
	Zero IndexBase = 0
	One  IndexBase = 1
)

// Matrix is an nRows-by-nCols sparse matrix with nnz explicitly stored
// entries: entry t lives at (Rows[t], Cols[t]) with value Vals[t], indices
// counted from Base. Duplicate coordinates are permitted and accumulate.
type Matrix[T sketch.Floats] struct {
	NRows, NCols int64
	NNZ          int64
	Vals         []T
	Rows         []int64
	Cols         []int64
	Base         IndexBase
}

// NewMatrix wraps caller-owned COO arrays, zero-based, without copying.
func NewMatrix[T sketch.Floats](nRows, nCols, nnz int64, vals []T, rows, cols []int64) (Matrix[T], error) {
	if nRows <= 0 || nCols <= 0 {
		return Matrix[T]{}, fmt.Errorf("%w: COO matrix must have positive dimensions, got %dx%d",
			sketch.ErrInvalidArgument, nRows, nCols)
	}
	if nnz < 0 || int64(len(vals)) < nnz || int64(len(rows)) < nnz || int64(len(cols)) < nnz {
		return Matrix[T]{}, fmt.Errorf("%w: COO arrays hold %d/%d/%d entries, need %d",
			sketch.ErrDimensionMismatch, len(vals), len(rows), len(cols), nnz)
	}
	return Matrix[T]{
		NRows: nRows, NCols: nCols, NNZ: nnz,
		Vals: vals, Rows: rows, Cols: cols,
		Base: Zero,
	}, nil
}
