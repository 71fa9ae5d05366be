// Copyright 2025 The randnla Authors. SPDX-License-Identifier: Apache-2.0

// Package sketch provides the shared vocabulary for the randnla sketching
// library: the floating-point type constraint, the major-axis enumeration,
// and the error kinds surfaced by every routine.
//
// The subpackages hold the working parts:
//
//   - rng: counter-based random generation (Philox4x32) and the transforms
//     that turn raw words into samples.
//   - blas: layout and transpose enumerations plus the dense GEMM adapter.
//   - dense: dense sketching operators and the LSKGE3 / RSKGE3 routines.
//   - sparse: sparse sketching operators and the LSKSP3 / RSKSP3 routines.
//   - coo: coordinate-format sparse matrices and the SpMM kernels.
//   - workerpool: parallel execution over contiguous index ranges.
//
// A sketching operator is a random matrix S whose product with a data
// matrix A compresses or lifts A along one dimension while approximately
// preserving geometric structure. Everything here is deterministic given a
// seed state: any submatrix of any operator can be reproduced in isolation,
// with output bytes independent of worker count.
package sketch
