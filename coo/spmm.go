// Copyright 2025 The randnla Authors. SPDX-License-Identifier: Apache-2.0

package coo

import (
	"github.com/randnla/sketch"
	"github.com/randnla/sketch/blas"
	"github.com/randnla/sketch/workerpool"
)

// The SpMM kernels below partition the output along one axis into strips
// and hand each strip to the worker pool. Every worker scans the full COO
// entry list and applies only the entries landing in its strip, so a given
// output element always accumulates contributions in entry order and the
// result does not depend on worker count. Within a strip, beta is applied
// before any product term.
//
// Both kernels trust their callers: dimension and window validation happens
// in the sketching routines that dispatch here.

// LeftSpMM computes mat(B) = alpha*op(submat(A))*op(D) + beta*mat(B), with
// the sparse factor on the left. op(submat(A)) is m-by-n and anchored at
// (roA, coA) in A before op; op(D) is n-by-d, read from dmat with leading
// dimension ldd; mat(B) is m-by-d with leading dimension ldb. D and B share
// the given layout. A is not accessed when alpha is zero.
func LeftSpMM[T sketch.Floats](layout blas.Layout, transA, transD blas.Op, m, d, n int64, alpha T, A Matrix[T], roA, coA int64, dmat []T, ldd int64, beta T, b []T, ldb int64) {
	rowsSubA, colsSubA := blas.DimsBeforeOp(m, n, transA)
	base := int64(A.Base)

	process := func(start, end int) {
		r0, r1 := int64(start), int64(end)
		scaleWindow(layout, b, ldb, r0, r1, 0, d, beta)
		if alpha == 0 {
			return
		}
		for t := int64(0); t < A.NNZ; t++ {
			pi := A.Rows[t] - base - roA
			pj := A.Cols[t] - base - coA
			if pi < 0 || pi >= rowsSubA || pj < 0 || pj >= colsSubA {
				continue
			}
			r, c := pi, pj
			if transA == blas.Trans {
				r, c = pj, pi
			}
			if r < r0 || r >= r1 {
				continue
			}
			v := alpha * A.Vals[t]
			for jj := int64(0); jj < d; jj++ {
				var dv T
				if transD == blas.NoTrans {
					dv = dmat[index(layout, ldd, c, jj)]
				} else {
					dv = dmat[index(layout, ldd, jj, c)]
				}
				b[index(layout, ldb, r, jj)] += v * dv
			}
		}
	}

	if A.NNZ*d+m*d < minParallelWork {
		process(0, int(m))
		return
	}
	workerpool.Default().ParallelStrips(int(m), outputStrip(), process)
}

// RightSpMM computes mat(B) = alpha*op(D)*op(submat(A)) + beta*mat(B), with
// the sparse factor on the right. op(D) is d-by-m, read from dmat with
// leading dimension ldd; op(submat(A)) is m-by-n and anchored at (roA, coA)
// in A before op; mat(B) is d-by-n with leading dimension ldb. D and B
// share the given layout. A is not accessed when alpha is zero.
func RightSpMM[T sketch.Floats](layout blas.Layout, transD, transA blas.Op, d, n, m int64, alpha T, dmat []T, ldd int64, A Matrix[T], roA, coA int64, beta T, b []T, ldb int64) {
	rowsSubA, colsSubA := blas.DimsBeforeOp(m, n, transA)
	base := int64(A.Base)

	process := func(start, end int) {
		c0, c1 := int64(start), int64(end)
		scaleWindow(layout, b, ldb, 0, d, c0, c1, beta)
		if alpha == 0 {
			return
		}
		for t := int64(0); t < A.NNZ; t++ {
			pi := A.Rows[t] - base - roA
			pj := A.Cols[t] - base - coA
			if pi < 0 || pi >= rowsSubA || pj < 0 || pj >= colsSubA {
				continue
			}
			r, c := pi, pj
			if transA == blas.Trans {
				r, c = pj, pi
			}
			if c < c0 || c >= c1 {
				continue
			}
			v := alpha * A.Vals[t]
			for ii := int64(0); ii < d; ii++ {
				var dv T
				if transD == blas.NoTrans {
					dv = dmat[index(layout, ldd, ii, r)]
				} else {
					dv = dmat[index(layout, ldd, r, ii)]
				}
				b[index(layout, ldb, ii, c)] += v * dv
			}
		}
	}

	if A.NNZ*d+n*d < minParallelWork {
		process(0, int(n))
		return
	}
	workerpool.Default().ParallelStrips(int(n), outputStrip(), process)
}

// scaleWindow applies beta to the [r0, r1) x [c0, c1) window of mat(B).
// A zero beta stores zeros without reading, per BLAS convention.
func scaleWindow[T sketch.Floats](layout blas.Layout, b []T, ldb, r0, r1, c0, c1 int64, beta T) {
	if beta == 1 {
		return
	}
	for r := r0; r < r1; r++ {
		for c := c0; c < c1; c++ {
			p := index(layout, ldb, r, c)
			if beta == 0 {
				b[p] = 0
			} else {
				b[p] *= beta
			}
		}
	}
}

func index(layout blas.Layout, ld, i, j int64) int64 {
	if layout == blas.ColMajor {
		return i + j*ld
	}
	return i*ld + j
}
