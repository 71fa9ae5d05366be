// Copyright 2025 The randnla Authors. SPDX-License-Identifier: Apache-2.0

// Package sparse implements sparse sketching operators: distributions over
// random matrices with a fixed number of nonzeros per axis vector, their
// COO realization through a repeated Fisher-Yates sampler, and the
// LSKSP3 / RSKSP3 routines that sketch sparse data with dense operators
// through SpMM.
package sparse

import (
	"fmt"
	"math"

	"github.com/randnla/sketch"
	"github.com/randnla/sketch/rng"
)

// Dist is a distribution over sparse sketching operators.
//
// If the distribution is short-axis major, sampled matrices have exactly
// VecNNZ nonzeros per short-axis vector (per column of a wide matrix, per
// row of a tall one). If long-axis major, each long-axis vector carries
// VecNNZ nonzeros, distinct within the vector.
type Dist struct {
	// NRows, NCols are the dimensions of matrices drawn from this
	// distribution.
	NRows, NCols int64

	// VecNNZ is the number of nonzeros placed in each major-axis vector.
	// Setting this higher than, say, eight is rarely useful even when
	// sketching very high-dimensional data.
	VecNNZ int64

	// MajorAxis constrains the sparsity pattern. Short-axis major sketches
	// are more likely to retain useful geometric information without
	// assumptions about the data.
	MajorAxis sketch.MajorAxis
}

// NewDist returns the canonical sparse distribution: short-axis major.
func NewDist(nRows, nCols, vecNNZ int64) Dist {
	return Dist{NRows: nRows, NCols: nCols, VecNNZ: vecNNZ, MajorAxis: sketch.Short}
}

func (d Dist) shortLen() int64 { return min(d.NRows, d.NCols) }
func (d Dist) longLen() int64  { return max(d.NRows, d.NCols) }

func (d Dist) check() error {
	if d.NRows <= 0 || d.NCols <= 0 || d.VecNNZ <= 0 {
		return fmt.Errorf("%w: sparse distribution needs positive dimensions and vec_nnz, got %dx%d with %d",
			sketch.ErrInvalidDistribution, d.NRows, d.NCols, d.VecNNZ)
	}
	if d.VecNNZ > d.shortLen() {
		return fmt.Errorf("%w: vec_nnz %d exceeds short-axis length %d",
			sketch.ErrInvalidDistribution, d.VecNNZ, d.shortLen())
	}
	return nil
}

// NNZ returns the number of stored entries in a matrix drawn from d:
// vec_nnz entries per major-axis vector, one vector per position along the
// opposite axis.
func NNZ(d Dist) int64 {
	if d.MajorAxis == sketch.Short {
		return d.VecNNZ * d.longLen()
	}
	return d.VecNNZ * d.shortLen()
}

// IsometryScaleFactor is the scalar that makes the expected Gram matrix of
// a sample from d the identity. It is exposed for callers and never
// applied internally.
func IsometryScaleFactor(d Dist) float64 {
	if d.MajorAxis == sketch.Short {
		return math.Pow(float64(d.VecNNZ), -0.5)
	}
	return math.Sqrt(float64(d.longLen()) / (float64(d.VecNNZ) * float64(d.shortLen())))
}

// ComputeNextState returns state with its counter advanced by VecNNZ times
// the short-axis length for a short-axis-major d, and by VecNNZ times the
// long-axis length otherwise. FillSkOp consumes VecNNZ counters per
// minor-axis vector, so for a short-axis-major d with unequal dimensions
// the returned counter lies inside the range FillSkOp consumed.
func ComputeNextState(d Dist, state rng.State) rng.State {
	minorLen := d.shortLen()
	if d.MajorAxis != sketch.Short {
		minorLen = d.longLen()
	}
	return state.Incr(minorLen * d.VecNNZ)
}
