// Copyright 2025 The randnla Authors. SPDX-License-Identifier: Apache-2.0

// Package dense implements dense sketching operators: distributions over
// random matrices with i.i.d. entries, their lazy materialization from the
// counter-based sample stream, and the LSKGE3 / RSKGE3 routines that apply
// them through GEMM.
package dense

import (
	"fmt"

	"github.com/randnla/sketch"
	"github.com/randnla/sketch/blas"
)

// DistName identifies the entry distribution of a dense sketching operator.
type DistName byte

const (
	// Gaussian entries have mean 0 and standard deviation 1.
	Gaussian DistName = 'G'

	// Uniform entries are drawn from [-1, 1].
	Uniform DistName = 'U'

	// BlackBox entries are defined only by a caller-provided buffer.
	BlackBox DistName = 'B'
)

// Dist is a distribution over dense sketching operators.
type Dist struct {
	// NRows, NCols are the dimensions of matrices drawn from this
	// distribution.
	NRows, NCols int64

	// Family is the distribution of individual entries.
	Family DistName

	// MajorAxis is the order in which sampled entries populate the
	// operator's buffer: contiguous along the short or the long axis.
	MajorAxis sketch.MajorAxis
}

// NewDist returns the canonical distribution for callers with no special
// requirements: i.i.d. Gaussian entries laid out along the long axis.
func NewDist(nRows, nCols int64) Dist {
	return Dist{NRows: nRows, NCols: nCols, Family: Gaussian, MajorAxis: sketch.Long}
}

// DistToLayout picks the storage order that makes the distribution's major
// axis run contiguously in memory.
func DistToLayout(d Dist) blas.Layout {
	isWide := d.NRows < d.NCols
	faLong := d.MajorAxis == sketch.Long
	switch {
	case isWide && faLong:
		return blas.RowMajor
	case isWide:
		return blas.ColMajor
	case faLong:
		return blas.ColMajor
	default:
		return blas.RowMajor
	}
}

// MajorAxisLength returns the length of the distribution's major axis; it
// is the row length of the implicit row-major parent sample stream.
func MajorAxisLength(d Dist) int64 {
	if d.MajorAxis == sketch.Long {
		return max(d.NRows, d.NCols)
	}
	return min(d.NRows, d.NCols)
}

func (d Dist) check() error {
	if d.NRows <= 0 || d.NCols <= 0 {
		return fmt.Errorf("%w: dense distribution needs positive dimensions, got %dx%d",
			sketch.ErrInvalidDistribution, d.NRows, d.NCols)
	}
	switch d.Family {
	case Gaussian, Uniform, BlackBox:
		return nil
	default:
		return fmt.Errorf("%w: family %q", sketch.ErrUnrecognizedDistribution, d.Family)
	}
}
