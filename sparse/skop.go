// Copyright 2025 The randnla Authors. SPDX-License-Identifier: Apache-2.0

package sparse

import (
	"fmt"
	"io"

	"github.com/randnla/sketch"
	"github.com/randnla/sketch/coo"
	"github.com/randnla/sketch/rng"
)

// SkOp is a sample from a distribution over sparse sketching operators,
// stored in COO form. Entry t lives at (Rows[t], Cols[t]) with value
// Vals[t]; entries are grouped by major-axis vector, vec_nnz per group.
type SkOp[T sketch.Floats] struct {
	// Dist is the distribution this operator was sampled from.
	Dist Dist

	// SeedState reproduces the operator from scratch.
	SeedState rng.State

	// NextState is the state to hand the next consumer of the stream
	// after the full operator has been sampled.
	NextState rng.State

	Rows []int64
	Cols []int64
	Vals []T

	// OwnsMemory records whether the library allocated the COO arrays.
	OwnsMemory bool

	// KnownFilled reports that Rows, Cols, and Vals already hold sampled
	// data.
	KnownFilled bool
}

// NewSkOp samples an operator description from dist with the given seed
// state, allocating the COO arrays. Entries are not sampled until
// FillSkOp.
func NewSkOp[T sketch.Floats](dist Dist, state rng.State) (*SkOp[T], error) {
	if err := dist.check(); err != nil {
		return nil, err
	}
	nnz := NNZ(dist)
	return &SkOp[T]{
		Dist:       dist,
		SeedState:  state,
		NextState:  ComputeNextState(dist, state),
		Rows:       make([]int64, nnz),
		Cols:       make([]int64, nnz),
		Vals:       make([]T, nnz),
		OwnsMemory: true,
	}, nil
}

// NewSkOpFromKey is shorthand for seeding with a bare key.
func NewSkOpFromKey[T sketch.Floats](dist Dist, key uint32) (*SkOp[T], error) {
	return NewSkOp[T](dist, rng.NewState(key))
}

// NewSkOpFromArrays wraps caller-owned COO arrays. knownFilled declares
// that the arrays already hold this operator's sampled data.
func NewSkOpFromArrays[T sketch.Floats](dist Dist, state rng.State, rows, cols []int64, vals []T, knownFilled bool) (*SkOp[T], error) {
	if err := dist.check(); err != nil {
		return nil, err
	}
	nnz := NNZ(dist)
	if int64(len(rows)) < nnz || int64(len(cols)) < nnz || int64(len(vals)) < nnz {
		return nil, fmt.Errorf("%w: COO arrays hold %d/%d/%d entries, operator needs %d",
			sketch.ErrDimensionMismatch, len(rows), len(cols), len(vals), nnz)
	}
	return &SkOp[T]{
		Dist:        dist,
		SeedState:   state,
		NextState:   ComputeNextState(dist, state),
		Rows:        rows,
		Cols:        cols,
		Vals:        vals,
		OwnsMemory:  false,
		KnownFilled: knownFilled,
	}, nil
}

// FillSkOp performs the work of sampling S from its distribution,
// populating Rows, Cols, and Vals. COOView calls this automatically for an
// operator that has not been filled.
func FillSkOp[T sketch.Floats](S *SkOp[T]) error {
	longLen, shortLen := S.Dist.longLen(), S.Dist.shortLen()
	isWide := S.Dist.NRows == shortLen

	shortIdxs, longIdxs := S.Rows, S.Cols
	if !isWide {
		shortIdxs, longIdxs = S.Cols, S.Rows
	}

	var err error
	if S.Dist.MajorAxis == sketch.Short {
		_, err = RepeatedFisherYates(S.SeedState, S.Dist.VecNNZ, shortLen, longLen, shortIdxs, longIdxs, S.Vals)
	} else {
		_, err = RepeatedFisherYates(S.SeedState, S.Dist.VecNNZ, longLen, shortLen, longIdxs, shortIdxs, S.Vals)
	}
	if err != nil {
		return err
	}
	S.KnownFilled = true
	return nil
}

// Transpose returns a shallow view of S with rows and columns exchanged.
// The view aliases S's index and value arrays; it is never a copy. S must
// already be filled, since a view over unsampled arrays could be filled
// with the wrong orientation.
func Transpose[T sketch.Floats](S *SkOp[T]) (*SkOp[T], error) {
	if !S.KnownFilled {
		return nil, fmt.Errorf("%w: transpose views require a filled operator", sketch.ErrInvalidArgument)
	}
	return &SkOp[T]{
		Dist: Dist{
			NRows:     S.Dist.NCols,
			NCols:     S.Dist.NRows,
			VecNNZ:    S.Dist.VecNNZ,
			MajorAxis: S.Dist.MajorAxis,
		},
		SeedState:   S.SeedState,
		NextState:   S.NextState,
		Rows:        S.Cols,
		Cols:        S.Rows,
		Vals:        S.Vals,
		OwnsMemory:  false,
		KnownFilled: true,
	}, nil
}

// COOView returns a zero-copy COO matrix over S's arrays, sampling S first
// if it has not been filled.
func COOView[T sketch.Floats](S *SkOp[T]) (coo.Matrix[T], error) {
	if !S.KnownFilled {
		if err := FillSkOp(S); err != nil {
			return coo.Matrix[T]{}, err
		}
	}
	return coo.NewMatrix(S.Dist.NRows, S.Dist.NCols, NNZ(S.Dist), S.Vals, S.Rows, S.Cols)
}

// HasFixedNNZPerCol reports whether every column of S carries exactly
// vec_nnz nonzeros.
func HasFixedNNZPerCol[T sketch.Floats](S *SkOp[T]) bool {
	if S.Dist.MajorAxis == sketch.Short {
		return S.Dist.NRows <= S.Dist.NCols
	}
	return S.Dist.NCols < S.Dist.NRows
}

// Describe writes a human-readable summary of S, a debugging aid.
func Describe[T sketch.Floats](S *SkOp[T], w io.Writer) {
	kind := "SASO: short-axis-sparse operator"
	if S.Dist.MajorAxis != sketch.Short {
		kind = "LASO: long-axis-sparse operator"
	}
	nnz := NNZ(S.Dist)
	fmt.Fprintf(w, "sparse sketching operator\n\t%s\n\tn_rows = %d\n\tn_cols = %d\n\tvec_nnz = %d\n",
		kind, S.Dist.NRows, S.Dist.NCols, S.Dist.VecNNZ)
	fmt.Fprintf(w, "\trows: %v\n\tcols: %v\n\tvals: %v\n", S.Rows[:nnz], S.Cols[:nnz], S.Vals[:nnz])
}
