// Copyright 2025 The randnla Authors. SPDX-License-Identifier: Apache-2.0

package sparse

import (
	"fmt"

	"github.com/randnla/sketch"
	"github.com/randnla/sketch/blas"
	"github.com/randnla/sketch/coo"
	"github.com/randnla/sketch/dense"
)

// LSKSP3 sketches sparse data from the left in an SpMM-like operation:
//
//	mat(B) = alpha*op(submat(S))*op(submat(A)) + beta*mat(B)
//
// where S is a dense sketching operator, A is a sparse matrix in COO form,
// op(submat(S)) is d-by-m, op(submat(A)) is m-by-n, and mat(B) is d-by-n
// in the given layout. submat(S) and submat(A) are anchored at (roS, coS)
// and (roA, coA) in their parents.
//
// Every precondition is checked before anything is written. An unrealized
// S is sampled only for the submatrix this call touches; S itself is never
// mutated.
func LSKSP3[T sketch.Floats](layout blas.Layout, opS, opA blas.Op, d, n, m int64, alpha T, S *dense.SkOp[T], roS, coS int64, A coo.Matrix[T], roA, coA int64, beta T, b []T, ldb int64) error {
	rowsSubS, colsSubS := blas.DimsBeforeOp(d, m, opS)
	rowsSubA, colsSubA := blas.DimsBeforeOp(m, n, opA)
	if err := checkWindow("A", A.NRows, A.NCols, rowsSubA, colsSubA, roA, coA); err != nil {
		return err
	}
	if err := checkWindow("S", S.Dist.NRows, S.Dist.NCols, rowsSubS, colsSubS, roS, coS); err != nil {
		return err
	}
	if layout == blas.ColMajor {
		if ldb < d {
			return fmt.Errorf("%w: ldb %d < %d rows of mat(B)", sketch.ErrDimensionMismatch, ldb, d)
		}
	} else if ldb < n {
		return fmt.Errorf("%w: ldb %d < %d cols of mat(B)", sketch.ErrDimensionMismatch, ldb, n)
	}

	if S.Buff == nil {
		tmp, err := dense.SubmatrixAsBlackBox(S, rowsSubS, colsSubS, roS, coS)
		if err != nil {
			return err
		}
		return LSKSP3(layout, opS, opA, d, n, m, alpha, tmp, 0, 0, A, roA, coA, beta, b, ldb)
	}

	pos, lds := blas.OffsetAndLdim(S.Layout, S.Dist.NRows, S.Dist.NCols, roS, coS)
	opSEff := opS
	if S.Layout != layout {
		opSEff = opSEff.Flipped()
	}
	coo.RightSpMM(layout, opSEff, opA, d, n, m, alpha, S.Buff[pos:], lds, A, roA, coA, beta, b, ldb)
	return nil
}

// RSKSP3 sketches sparse data from the right in an SpMM-like operation:
//
//	mat(B) = alpha*op(submat(A))*op(submat(S)) + beta*mat(B)
//
// where op(submat(A)) is m-by-n, op(submat(S)) is n-by-d, and mat(B) is
// m-by-d in the given layout. The precondition and lazy-realization
// contracts match LSKSP3.
func RSKSP3[T sketch.Floats](layout blas.Layout, opA, opS blas.Op, m, d, n int64, alpha T, A coo.Matrix[T], roA, coA int64, S *dense.SkOp[T], roS, coS int64, beta T, b []T, ldb int64) error {
	rowsSubS, colsSubS := blas.DimsBeforeOp(n, d, opS)
	rowsSubA, colsSubA := blas.DimsBeforeOp(m, n, opA)
	if err := checkWindow("A", A.NRows, A.NCols, rowsSubA, colsSubA, roA, coA); err != nil {
		return err
	}
	if err := checkWindow("S", S.Dist.NRows, S.Dist.NCols, rowsSubS, colsSubS, roS, coS); err != nil {
		return err
	}
	if layout == blas.ColMajor {
		if ldb < m {
			return fmt.Errorf("%w: ldb %d < %d rows of mat(B)", sketch.ErrDimensionMismatch, ldb, m)
		}
	} else if ldb < d {
		return fmt.Errorf("%w: ldb %d < %d cols of mat(B)", sketch.ErrDimensionMismatch, ldb, d)
	}

	if S.Buff == nil {
		tmp, err := dense.SubmatrixAsBlackBox(S, rowsSubS, colsSubS, roS, coS)
		if err != nil {
			return err
		}
		return RSKSP3(layout, opA, opS, m, d, n, alpha, A, roA, coA, tmp, 0, 0, beta, b, ldb)
	}

	pos, lds := blas.OffsetAndLdim(S.Layout, S.Dist.NRows, S.Dist.NCols, roS, coS)
	opSEff := opS
	if S.Layout != layout {
		opSEff = opSEff.Flipped()
	}
	coo.LeftSpMM(layout, opA, opSEff, m, d, n, alpha, A, roA, coA, S.Buff[pos:], lds, beta, b, ldb)
	return nil
}

func checkWindow(name string, nRows, nCols, rows, cols, ro, co int64) error {
	if ro < 0 || co < 0 || nRows < rows+ro || nCols < cols+co {
		return fmt.Errorf("%w: %dx%d submatrix of %s at (%d, %d) exceeds %dx%d parent",
			sketch.ErrDimensionMismatch, rows, cols, name, ro, co, nRows, nCols)
	}
	return nil
}
