// Copyright 2025 The randnla Authors. SPDX-License-Identifier: Apache-2.0

package dense

import (
	"fmt"

	"github.com/randnla/sketch"
	"github.com/randnla/sketch/blas"
)

// LSKGE3 sketches from the left in a GEMM-like operation:
//
//	mat(B) = alpha*op(submat(S))*op(mat(A)) + beta*mat(B)
//
// where op(submat(S)) is d-by-m, op(mat(A)) is m-by-n, and mat(B) is
// d-by-n. submat(S) is anchored at (iOff, jOff) in S. layout gives the
// storage order of mat(A) and mat(B).
//
// Every precondition is checked before anything is written. If S is
// unrealized, exactly the needed submatrix is sampled into a temporary and
// dropped on return; S itself is never mutated by this routine.
func LSKGE3[T sketch.Floats](layout blas.Layout, opS, opA blas.Op, d, n, m int64, alpha T, S *SkOp[T], iOff, jOff int64, a []T, lda int64, beta T, b []T, ldb int64) error {
	if err := checkOffsets(d, n, m, iOff, jOff); err != nil {
		return err
	}
	opposing := S.Layout != layout
	opSEff := opS
	if opposing {
		opSEff = opSEff.Flipped()
	}
	rowsA, colsA := blas.DimsBeforeOp(m, n, opA)
	rowsSubS, colsSubS := blas.DimsBeforeOp(d, m, opSEff)

	if err := checkSubmatBounds(S, rowsSubS, colsSubS, iOff, jOff, opposing); err != nil {
		return err
	}
	if err := checkLeadingDims(layout, rowsA, colsA, lda, d, n, ldb); err != nil {
		return err
	}

	if S.Buff == nil {
		nr, nc := blas.DimsBeforeOp(d, m, opS)
		tmp, err := SubmatrixAsBlackBox(S, nr, nc, iOff, jOff)
		if err != nil {
			return err
		}
		return LSKGE3(layout, opS, opA, d, n, m, alpha, tmp, 0, 0, a, lda, beta, b, ldb)
	}

	pos, lds := blas.OffsetAndLdim(S.Layout, S.Dist.NRows, S.Dist.NCols, iOff, jOff)
	blas.Gemm(layout, opSEff, opA, d, n, m, alpha, S.Buff[pos:], lds, a, lda, beta, b, ldb)
	return nil
}

// RSKGE3 sketches from the right in a GEMM-like operation:
//
//	mat(B) = alpha*op(mat(A))*op(submat(S)) + beta*mat(B)
//
// where op(mat(A)) is m-by-n, op(submat(S)) is n-by-d, and mat(B) is
// m-by-d. submat(S) is anchored at (iOff, jOff) in S. layout gives the
// storage order of mat(A) and mat(B).
//
// The precondition and lazy-realization contracts match LSKGE3: an
// unrealized S stays unrealized and unmutated.
func RSKGE3[T sketch.Floats](layout blas.Layout, opA, opS blas.Op, m, d, n int64, alpha T, a []T, lda int64, S *SkOp[T], iOff, jOff int64, beta T, b []T, ldb int64) error {
	if err := checkOffsets(m, d, n, iOff, jOff); err != nil {
		return err
	}
	opposing := S.Layout != layout
	opSEff := opS
	if opposing {
		opSEff = opSEff.Flipped()
	}
	rowsA, colsA := blas.DimsBeforeOp(m, n, opA)
	rowsSubS, colsSubS := blas.DimsBeforeOp(n, d, opSEff)

	if err := checkSubmatBounds(S, rowsSubS, colsSubS, iOff, jOff, opposing); err != nil {
		return err
	}
	if err := checkLeadingDims(layout, rowsA, colsA, lda, m, d, ldb); err != nil {
		return err
	}

	if S.Buff == nil {
		nr, nc := blas.DimsBeforeOp(n, d, opS)
		tmp, err := SubmatrixAsBlackBox(S, nr, nc, iOff, jOff)
		if err != nil {
			return err
		}
		return RSKGE3(layout, opA, opS, m, d, n, alpha, a, lda, tmp, 0, 0, beta, b, ldb)
	}

	pos, lds := blas.OffsetAndLdim(S.Layout, S.Dist.NRows, S.Dist.NCols, iOff, jOff)
	blas.Gemm(layout, opA, opSEff, m, d, n, alpha, a, lda, S.Buff[pos:], lds, beta, b, ldb)
	return nil
}

func checkOffsets(d1, d2, d3, iOff, jOff int64) error {
	if d1 < 0 || d2 < 0 || d3 < 0 {
		return fmt.Errorf("%w: negative dimension in (%d, %d, %d)",
			sketch.ErrInvalidArgument, d1, d2, d3)
	}
	if iOff < 0 || jOff < 0 {
		return fmt.Errorf("%w: negative submatrix offset (%d, %d)",
			sketch.ErrInvalidArgument, iOff, jOff)
	}
	return nil
}

// checkSubmatBounds verifies that the requested submatrix, whose shape is
// rowsSubS-by-colsSubS after any opposing-layout flip, fits inside the
// operator. When the target layout opposes the operator's, the roles of
// the two dimensions swap.
func checkSubmatBounds[T sketch.Floats](S *SkOp[T], rowsSubS, colsSubS, iOff, jOff int64, opposing bool) error {
	r, c := rowsSubS, colsSubS
	if opposing {
		r, c = colsSubS, rowsSubS
	}
	if S.Dist.NRows < r+iOff || S.Dist.NCols < c+jOff {
		return fmt.Errorf("%w: %dx%d submatrix at (%d, %d) exceeds %dx%d operator",
			sketch.ErrDimensionMismatch, r, c, iOff, jOff, S.Dist.NRows, S.Dist.NCols)
	}
	return nil
}

// checkLeadingDims validates lda against the storage-order shape of A and
// ldb against mat(B)'s rowsB-by-colsB shape under the target layout.
func checkLeadingDims(layout blas.Layout, rowsA, colsA, lda, rowsB, colsB, ldb int64) error {
	if layout == blas.ColMajor {
		if lda < rowsA {
			return fmt.Errorf("%w: lda %d < %d rows of mat(A)", sketch.ErrDimensionMismatch, lda, rowsA)
		}
		if ldb < rowsB {
			return fmt.Errorf("%w: ldb %d < %d rows of mat(B)", sketch.ErrDimensionMismatch, ldb, rowsB)
		}
		return nil
	}
	if lda < colsA {
		return fmt.Errorf("%w: lda %d < %d cols of mat(A)", sketch.ErrDimensionMismatch, lda, colsA)
	}
	if ldb < colsB {
		return fmt.Errorf("%w: ldb %d < %d cols of mat(B)", sketch.ErrDimensionMismatch, ldb, colsB)
	}
	return nil
}
