// Copyright 2025 The randnla Authors. SPDX-License-Identifier: Apache-2.0

package sketch

import "errors"

// Error kinds shared by every routine in the library. Concrete failures
// wrap one of these with fmt.Errorf("...: %w", ...), so callers can match
// the kind with errors.Is. All checks run before any write: a routine that
// returns a non-nil error has not touched its output arguments.
var (
	// ErrInvalidDistribution indicates a distribution whose parameters
	// cannot describe an operator: non-positive dimensions or vec_nnz, a
	// BlackBox distribution without a user buffer, or a sparse vec_nnz
	// exceeding the short-axis length.
	ErrInvalidDistribution = errors.New("sketch: invalid distribution")

	// ErrInvalidArgument indicates a malformed call, such as filling a
	// BlackBox operator or passing a negative dimension or offset.
	ErrInvalidArgument = errors.New("sketch: invalid argument")

	// ErrDimensionMismatch indicates a leading dimension or submatrix
	// offset that violates the documented bounds.
	ErrDimensionMismatch = errors.New("sketch: dimension mismatch")

	// ErrUnrecognizedDistribution indicates a distribution family this
	// version does not know how to sample.
	ErrUnrecognizedDistribution = errors.New("sketch: unrecognized distribution")
)
