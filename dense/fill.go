// Copyright 2025 The randnla Authors. SPDX-License-Identifier: Apache-2.0

package dense

import (
	"fmt"

	"github.com/randnla/sketch"
	"github.com/randnla/sketch/blas"
	"github.com/randnla/sketch/rng"
	"github.com/randnla/sketch/workerpool"
)

const blockLen = int64(rng.BlockSize)

// minParallelFill is the smallest tile worth fanning out to the pool.
const minParallelFill = 4096

// fillSubmat writes the nr-by-nc tile of the implicit row-major parent
// matrix whose rows are nColsParent long, starting at linear offset ptr,
// into smat with output leading dimension lda >= nc.
//
// The parent is a flat stream in which the element at linear index p
// belongs to generator block p/BlockSize. Each destination row derives its
// starting counter absolutely from its own first index, so rows can be
// dispatched to workers in any assignment and the bytes come out
// identical.
func fillSubmat[T sketch.Floats](nColsParent int64, smat []T, nr, nc, ptr, lda int64, state rng.State, tf func(rng.Block) [rng.BlockSize]T, pool *workerpool.Pool) {
	fillRows := func(start, end int) {
		for row := int64(start); row < int64(end); row++ {
			i0 := ptr + row*nColsParent
			i1 := i0 + nc - 1
			r0 := i0 / blockLen
			r1 := i1 / blockLen
			s0 := i0 % blockLen
			e1 := i1 % blockLen

			st := state.Incr(r0)
			blk := tf(rng.Random(st.Counter, st.Key))
			out := smat[row*lda : row*lda+nc]
			ind := int64(0)

			head := blockLen - 1
			if r1 == r0 {
				head = e1
			}
			for i := s0; i <= head; i++ {
				out[ind] = blk[i]
				ind++
			}
			for blkIdx := r0 + 1; blkIdx < r1; blkIdx++ {
				st = st.Incr(1)
				blk = tf(rng.Random(st.Counter, st.Key))
				for i := int64(0); i < blockLen; i++ {
					out[ind] = blk[i]
					ind++
				}
			}
			if r1 > r0 {
				st = st.Incr(1)
				blk = tf(rng.Random(st.Counter, st.Key))
				for i := int64(0); i <= e1; i++ {
					out[ind] = blk[i]
					ind++
				}
			}
		}
	}

	if pool == nil || nr*nc < minParallelFill {
		fillRows(0, int(nr))
		return
	}
	pool.ParallelFor(int(nr), fillRows)
}

// Fill materializes the nr-by-nc block of the parent sample stream
// anchored at (iOff, jOff), writing it into buff in the distribution's
// derived storage order. It returns that layout together with the state
// whose counter sits one past the last generator block the tile touched,
// so downstream consumers of the stream can chain without overlap.
//
// BlackBox distributions have no stream to sample and fail with
// ErrInvalidArgument.
func Fill[T sketch.Floats](d Dist, nr, nc, iOff, jOff int64, buff []T, seed rng.State) (blas.Layout, rng.State, error) {
	if err := d.check(); err != nil {
		return 0, rng.State{}, err
	}
	if nr <= 0 || nc <= 0 || iOff < 0 || jOff < 0 {
		return 0, rng.State{}, fmt.Errorf("%w: tile %dx%d at (%d, %d)",
			sketch.ErrInvalidArgument, nr, nc, iOff, jOff)
	}
	if int64(len(buff)) < nr*nc {
		return 0, rng.State{}, fmt.Errorf("%w: buffer holds %d entries, tile needs %d",
			sketch.ErrDimensionMismatch, len(buff), nr*nc)
	}

	var tf func(rng.Block) [rng.BlockSize]T
	switch d.Family {
	case Gaussian:
		tf = rng.Boxmul[T]
	case Uniform:
		tf = rng.Uneg11[T]
	case BlackBox:
		return 0, rng.State{}, fmt.Errorf("%w: BlackBox entries come from the caller's buffer",
			sketch.ErrInvalidArgument)
	}

	maLen := MajorAxisLength(d)
	layout := DistToLayout(d)

	// The filler only speaks row-major. A column-major result is the
	// row-major fill of the transposed view: swap the tile dimensions and
	// anchor the offset along the parent's columns.
	fnr, fnc, ptr := nr, nc, iOff*maLen+jOff
	if layout == blas.ColMajor {
		fnr, fnc, ptr = nc, nr, iOff+jOff*maLen
	}
	fillSubmat(maLen, buff, fnr, fnc, ptr, fnc, seed, tf, workerpool.Default())

	next := seed.Incr((ptr+(fnr-1)*maLen+fnc-1)/blockLen + 1)
	return layout, next, nil
}

// FillSkOp samples every entry of S, allocating and attaching the backing
// buffer and recording the stream state that follows the operator. It
// fails if a buffer is already attached.
func FillSkOp[T sketch.Floats](S *SkOp[T]) (rng.State, error) {
	if S.Buff != nil {
		return rng.State{}, fmt.Errorf("%w: operator already has a buffer attached",
			sketch.ErrInvalidArgument)
	}
	buff := make([]T, S.Dist.NRows*S.Dist.NCols)
	_, next, err := Fill(S.Dist, S.Dist.NRows, S.Dist.NCols, 0, 0, buff, S.SeedState)
	if err != nil {
		return rng.State{}, err
	}
	S.Buff = buff
	S.NextState = next
	S.OwnsBuff = true
	return next, nil
}
