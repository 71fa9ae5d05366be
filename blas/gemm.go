// Copyright 2025 The randnla Authors. SPDX-License-Identifier: Apache-2.0

package blas

import (
	gblas "gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/gonum"

	"github.com/randnla/sketch"
)

var impl gonum.Implementation

// Gemm computes mat(C) = alpha*op(A)*op(B) + beta*mat(C), where op(A) is
// m-by-k, op(B) is k-by-n, and mat(C) is m-by-n, all read in the given
// layout. It is the library's single entry point to the external dense
// kernel; gonum's implementation is row-major only, so a column-major
// product is issued as the transposed row-major product over the same
// bytes.
//
// Callers are responsible for dimension validation; out-of-bounds inputs
// panic inside the kernel.
func Gemm[T sketch.Floats](layout Layout, transA, transB Op, m, n, k int64, alpha T, a []T, lda int64, b []T, ldb int64, beta T, c []T, ldc int64) {
	if layout == ColMajor {
		Gemm(RowMajor, transB, transA, n, m, k, alpha, b, ldb, a, lda, beta, c, ldc)
		return
	}
	tA, tB := toGonum(transA), toGonum(transB)
	switch av := any(a).(type) {
	case []float64:
		impl.Dgemm(tA, tB, int(m), int(n), int(k), float64(alpha),
			av, int(lda), any(b).([]float64), int(ldb),
			float64(beta), any(c).([]float64), int(ldc))
	case []float32:
		impl.Sgemm(tA, tB, int(m), int(n), int(k), float32(alpha),
			av, int(lda), any(b).([]float32), int(ldb),
			float32(beta), any(c).([]float32), int(ldc))
	default:
		panic("blas: Gemm requires float32 or float64 elements")
	}
}

func toGonum(op Op) gblas.Transpose {
	if op == Trans {
		return gblas.Trans
	}
	return gblas.NoTrans
}
