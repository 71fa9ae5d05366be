// Copyright 2025 The randnla Authors. SPDX-License-Identifier: Apache-2.0

package sparse

import (
	"fmt"

	"github.com/randnla/sketch"
	"github.com/randnla/sketch/rng"
)

// RepeatedFisherYates draws dimMinor independent size-vecNNZ subsets of
// {0, ..., dimMajor-1}, without replacement within a subset. Subset i is
// written to idxsMajor[i*vecNNZ : (i+1)*vecNNZ]; when non-nil, idxsMinor
// receives the constant i for each of the subset's entries and vals
// receives signs drawn uniformly from {+1, -1}.
//
// Subset i consumes exactly the counters [i*vecNNZ, (i+1)*vecNNZ) relative
// to state, so any subset can be regenerated in isolation from its base
// counter. The returned state is the input state: callers advance it with
// ComputeNextState.
func RepeatedFisherYates[T sketch.Floats](state rng.State, vecNNZ, dimMajor, dimMinor int64, idxsMajor, idxsMinor []int64, vals []T) (rng.State, error) {
	if vecNNZ > dimMajor {
		return state, fmt.Errorf("%w: cannot draw %d distinct indices from a %d-element axis",
			sketch.ErrInvalidDistribution, vecNNZ, dimMajor)
	}
	if int64(len(idxsMajor)) < vecNNZ*dimMinor {
		return state, fmt.Errorf("%w: index buffer holds %d entries, sampler needs %d",
			sketch.ErrDimensionMismatch, len(idxsMajor), vecNNZ*dimMinor)
	}
	writeVals := vals != nil
	writeMinor := idxsMinor != nil

	work := make([]int64, dimMajor)
	for j := range work {
		work[j] = int64(j)
	}
	pivots := make([]int64, vecNNZ)

	for i := int64(0); i < dimMinor; i++ {
		offset := i * vecNNZ
		st := state.Incr(offset)
		for j := int64(0); j < vecNNZ; j++ {
			// One step of Fisher-Yates shuffling.
			rv := rng.Random(st.Counter, st.Key)
			ell := j + int64(rv[0])%(dimMajor-j)
			pivots[j] = ell
			swap := work[ell]
			work[ell] = work[j]
			work[j] = swap

			idxsMajor[offset+j] = swap
			if writeVals {
				if rv[1]%2 == 0 {
					vals[offset+j] = 1
				} else {
					vals[offset+j] = -1
				}
			}
			if writeMinor {
				idxsMinor[offset+j] = i
			}
			st = st.Incr(1)
		}
		// Undo the swaps in reverse, restoring the identity permutation.
		// Statistically unnecessary, but it keeps each subset a function
		// of its base counter alone, which submatrix extraction relies on.
		for j := vecNNZ - 1; j >= 0; j-- {
			swap := idxsMajor[offset+j]
			ell := pivots[j]
			work[j] = work[ell]
			work[ell] = swap
		}
	}
	return state, nil
}

// RepeatedFisherYatesIndices samples only the major-axis indices.
func RepeatedFisherYatesIndices(state rng.State, vecNNZ, dimMajor, dimMinor int64, idxs []int64) (rng.State, error) {
	return RepeatedFisherYates[float64](state, vecNNZ, dimMajor, dimMinor, idxs, nil, nil)
}
