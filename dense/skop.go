// Copyright 2025 The randnla Authors. SPDX-License-Identifier: Apache-2.0

package dense

import (
	"fmt"

	"github.com/randnla/sketch"
	"github.com/randnla/sketch/blas"
	"github.com/randnla/sketch/rng"
)

// SkOp is a sample from a distribution over dense sketching operators.
//
// An operator starts unrealized: Buff is nil and only the seed state pins
// down its entries. FillSkOp attaches a buffer holding every entry; until
// then, the apply routines realize just the submatrix a call touches and
// discard it on return, leaving the operator untouched.
type SkOp[T sketch.Floats] struct {
	// Dist is the distribution this operator was sampled from.
	Dist Dist

	// SeedState is the generator state that reproduces the operator from
	// scratch.
	SeedState rng.State

	// NextState is the state to hand the next consumer of the stream once
	// the full operator has been realized. Valid only after FillSkOp.
	NextState rng.State

	// Buff holds the realized entries in Layout order, or nil.
	Buff []T

	// Layout is the storage order of Buff, derived from Dist.
	Layout blas.Layout

	// OwnsBuff records whether the library allocated Buff.
	OwnsBuff bool
}

// NewSkOp samples an operator description from dist with the given seed
// state. buff may be nil except for BlackBox distributions, whose entries
// exist only in the caller's buffer.
func NewSkOp[T sketch.Floats](dist Dist, state rng.State, buff []T) (*SkOp[T], error) {
	if err := dist.check(); err != nil {
		return nil, err
	}
	if dist.Family == BlackBox && buff == nil {
		return nil, fmt.Errorf("%w: BlackBox operators need a caller-supplied buffer",
			sketch.ErrInvalidDistribution)
	}
	if buff != nil && int64(len(buff)) < dist.NRows*dist.NCols {
		return nil, fmt.Errorf("%w: buffer holds %d entries, operator needs %d",
			sketch.ErrDimensionMismatch, len(buff), dist.NRows*dist.NCols)
	}
	return &SkOp[T]{
		Dist:      dist,
		SeedState: state,
		Buff:      buff,
		Layout:    DistToLayout(dist),
	}, nil
}

// NewSkOpFromKey is shorthand for seeding with a bare key.
func NewSkOpFromKey[T sketch.Floats](dist Dist, key uint32, buff []T) (*SkOp[T], error) {
	return NewSkOp[T](dist, rng.NewState(key), buff)
}

// SubmatrixAsBlackBox realizes the nr-by-nc tile of S anchored at
// (iOff, jOff) into fresh memory and wraps it as a BlackBox operator whose
// top-left corner is the tile itself. S is not modified; the view keeps
// S's storage order, which may differ from what the tile's own dimensions
// would derive.
func SubmatrixAsBlackBox[T sketch.Floats](S *SkOp[T], nr, nc, iOff, jOff int64) (*SkOp[T], error) {
	if S.Dist.Family == BlackBox {
		return nil, fmt.Errorf("%w: cannot re-realize a BlackBox operator", sketch.ErrInvalidArgument)
	}
	buff := make([]T, nr*nc)
	layout, _, err := Fill(S.Dist, nr, nc, iOff, jOff, buff, S.SeedState)
	if err != nil {
		return nil, err
	}
	return &SkOp[T]{
		Dist:      Dist{NRows: nr, NCols: nc, Family: BlackBox, MajorAxis: S.Dist.MajorAxis},
		SeedState: S.SeedState,
		Buff:      buff,
		Layout:    layout,
		OwnsBuff:  true,
	}, nil
}
