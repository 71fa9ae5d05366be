// Copyright 2025 The randnla Authors. SPDX-License-Identifier: Apache-2.0

// Package blas carries the storage-order and transpose vocabulary the
// sketching routines speak, plus a layout-aware GEMM front end over gonum.
package blas

// Layout selects the storage order of a matrix held in a flat slice.
// mat(A)[i,j] = A[i + j*lda] under ColMajor and A[i*lda + j] under RowMajor.
type Layout byte

const (
	RowMajor Layout = 'R'
	ColMajor Layout = 'C'
)

// Op selects whether a routine consumes a matrix or its transpose.
type Op byte

const (
	NoTrans Op = 'N'
	Trans   Op = 'T'
)

// Flipped returns the other transpose flag.
func (o Op) Flipped() Op {
	if o == NoTrans {
		return Trans
	}
	return NoTrans
}

// DimsBeforeOp returns the storage-order shape of a matrix whose post-op
// shape is rows-by-cols.
func DimsBeforeOp(rows, cols int64, op Op) (int64, int64) {
	if op == NoTrans {
		return rows, cols
	}
	return cols, rows
}

// OffsetAndLdim locates the (i, j) anchor of a submatrix inside an
// nRows-by-nCols parent stored in the given layout, returning the linear
// offset of the anchor and the parent's leading dimension.
func OffsetAndLdim(layout Layout, nRows, nCols, i, j int64) (pos, ld int64) {
	if layout == ColMajor {
		return i + nRows*j, nRows
	}
	return i*nCols + j, nCols
}
