// Copyright 2025 The randnla Authors. SPDX-License-Identifier: Apache-2.0

package dense

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/randnla/sketch"
	"github.com/randnla/sketch/blas"
	"github.com/randnla/sketch/rng"
	"github.com/randnla/sketch/workerpool"
)

func TestDistToLayout(t *testing.T) {
	tests := []struct {
		nRows, nCols int64
		ma           sketch.MajorAxis
		want         blas.Layout
	}{
		{3, 9, sketch.Long, blas.RowMajor},
		{3, 9, sketch.Short, blas.ColMajor},
		{9, 3, sketch.Long, blas.ColMajor},
		{9, 3, sketch.Short, blas.RowMajor},
	}
	for _, tc := range tests {
		d := Dist{NRows: tc.nRows, NCols: tc.nCols, Family: Gaussian, MajorAxis: tc.ma}
		if got := DistToLayout(d); got != tc.want {
			t.Errorf("DistToLayout(%dx%d, %c) = %c, want %c", tc.nRows, tc.nCols, tc.ma, got, tc.want)
		}
	}
}

func TestMajorAxisLength(t *testing.T) {
	d := Dist{NRows: 3, NCols: 9, Family: Gaussian, MajorAxis: sketch.Long}
	require.EqualValues(t, 9, MajorAxisLength(d))
	d.MajorAxis = sketch.Short
	require.EqualValues(t, 3, MajorAxisLength(d))
}

// Any tile of the parent stream must equal the corresponding slice of the
// full realization, byte for byte.
func TestFillSubmatrixEqualsSlice(t *testing.T) {
	type tile struct {
		nr, nc, iOff, jOff int64
	}
	dists := []Dist{
		{NRows: 8, NCols: 12, Family: Gaussian, MajorAxis: sketch.Long},
		{NRows: 8, NCols: 12, Family: Uniform, MajorAxis: sketch.Short},
		{NRows: 12, NCols: 8, Family: Gaussian, MajorAxis: sketch.Long},
		{NRows: 12, NCols: 8, Family: Uniform, MajorAxis: sketch.Short},
	}
	tiles := []tile{
		{3, 10, 3, 1},
		{1, 1, 7, 7},
		{8, 1, 0, 4},
		{2, 3, 5, 0},
	}
	seed := rng.NewState(0)
	for _, d := range dists {
		full := make([]float64, d.NRows*d.NCols)
		layout, _, err := Fill(d, d.NRows, d.NCols, 0, 0, full, seed)
		require.NoError(t, err)

		for _, tc := range tiles {
			if tc.iOff+tc.nr > d.NRows || tc.jOff+tc.nc > d.NCols {
				continue
			}
			sub := make([]float64, tc.nr*tc.nc)
			subLayout, _, err := Fill(d, tc.nr, tc.nc, tc.iOff, tc.jOff, sub, seed)
			require.NoError(t, err)
			require.Equal(t, layout, subLayout)

			for i := int64(0); i < tc.nr; i++ {
				for j := int64(0); j < tc.nc; j++ {
					var want, got float64
					if layout == blas.ColMajor {
						want = full[(tc.iOff+i)+(tc.jOff+j)*d.NRows]
						got = sub[i+j*tc.nr]
					} else {
						want = full[(tc.iOff+i)*d.NCols+(tc.jOff+j)]
						got = sub[i*tc.nc+j]
					}
					if got != want {
						t.Fatalf("dist %dx%d %c: tile %+v entry (%d, %d) = %v, want %v",
							d.NRows, d.NCols, d.MajorAxis, tc, i, j, got, want)
					}
				}
			}
		}
	}
}

// The bytes a fill produces must not depend on how many workers ran it.
func TestFillThreadInvariance(t *testing.T) {
	// Large enough to cross the parallel threshold inside fillSubmat.
	const nColsParent, nr, nc, ptr = 64, 96, 60, 13
	seed := rng.NewState(11)

	fillWith := func(workers int) []float64 {
		pool := workerpool.New(workers)
		defer pool.Close()
		out := make([]float64, nr*nc)
		fillSubmat(nColsParent, out, nr, nc, ptr, nc, seed, rng.Boxmul[float64], pool)
		return out
	}

	want := fillWith(1)
	for _, workers := range []int{2, 3, 8} {
		got := fillWith(workers)
		for i := range got {
			if got[i] != want[i] {
				t.Fatalf("workers=%d: entry %d = %v, want %v", workers, i, got[i], want[i])
			}
		}
	}
}

func TestFillStridedOutput(t *testing.T) {
	const nColsParent, nr, nc, lda = 32, 6, 7, 11
	seed := rng.NewState(4)

	tight := make([]float64, nr*nc)
	fillSubmat(nColsParent, tight, nr, nc, 0, nc, seed, rng.Uneg11[float64], nil)

	wide := make([]float64, nr*lda)
	fillSubmat(nColsParent, wide, nr, nc, 0, lda, seed, rng.Uneg11[float64], nil)

	for i := int64(0); i < nr; i++ {
		for j := int64(0); j < nc; j++ {
			if wide[i*lda+j] != tight[i*nc+j] {
				t.Fatalf("strided entry (%d, %d) = %v, want %v", i, j, wide[i*lda+j], tight[i*nc+j])
			}
		}
	}
}

// The returned state must sit one block past everything the fill consumed.
func TestFillNextState(t *testing.T) {
	d := Dist{NRows: 6, NCols: 6, Family: Gaussian, MajorAxis: sketch.Long}
	seed := rng.NewState(1)
	buff := make([]float64, 36)
	_, next, err := Fill(d, 6, 6, 0, 0, buff, seed)
	require.NoError(t, err)
	require.Equal(t, seed.Incr(9), next)
}

func TestFillRejectsBlackBox(t *testing.T) {
	d := Dist{NRows: 4, NCols: 4, Family: BlackBox, MajorAxis: sketch.Long}
	buff := make([]float64, 16)
	_, _, err := Fill(d, 4, 4, 0, 0, buff, rng.NewState(0))
	require.ErrorIs(t, err, sketch.ErrInvalidArgument)
}

func TestFillRejectsBadArguments(t *testing.T) {
	good := Dist{NRows: 4, NCols: 4, Family: Gaussian, MajorAxis: sketch.Long}
	buff := make([]float64, 16)

	_, _, err := Fill(Dist{NRows: 0, NCols: 4, Family: Gaussian}, 1, 1, 0, 0, buff, rng.NewState(0))
	require.ErrorIs(t, err, sketch.ErrInvalidDistribution)

	_, _, err = Fill(Dist{NRows: 4, NCols: 4, Family: DistName('?')}, 1, 1, 0, 0, buff, rng.NewState(0))
	require.ErrorIs(t, err, sketch.ErrUnrecognizedDistribution)

	_, _, err = Fill(good, -1, 2, 0, 0, buff, rng.NewState(0))
	require.ErrorIs(t, err, sketch.ErrInvalidArgument)

	_, _, err = Fill(good, 4, 4, 0, 0, make([]float64, 3), rng.NewState(0))
	require.ErrorIs(t, err, sketch.ErrDimensionMismatch)
}

func TestFillSkOp(t *testing.T) {
	d := Dist{NRows: 5, NCols: 7, Family: Gaussian, MajorAxis: sketch.Long}
	S, err := NewSkOpFromKey[float64](d, 9, nil)
	require.NoError(t, err)
	require.Nil(t, S.Buff)

	next, err := FillSkOp(S)
	require.NoError(t, err)
	require.Len(t, S.Buff, 35)
	require.True(t, S.OwnsBuff)
	require.Equal(t, next, S.NextState)

	_, err = FillSkOp(S)
	require.ErrorIs(t, err, sketch.ErrInvalidArgument)
}

func TestNewSkOpValidation(t *testing.T) {
	_, err := NewSkOpFromKey[float64](Dist{NRows: -2, NCols: 3, Family: Gaussian}, 0, nil)
	require.ErrorIs(t, err, sketch.ErrInvalidDistribution)

	_, err = NewSkOpFromKey[float64](Dist{NRows: 2, NCols: 3, Family: BlackBox}, 0, nil)
	require.ErrorIs(t, err, sketch.ErrInvalidDistribution)

	_, err = NewSkOpFromKey(Dist{NRows: 2, NCols: 3, Family: BlackBox}, 0, make([]float64, 2))
	require.ErrorIs(t, err, sketch.ErrDimensionMismatch)

	S, err := NewSkOpFromKey(Dist{NRows: 2, NCols: 3, Family: BlackBox, MajorAxis: sketch.Long}, 0, make([]float64, 6))
	require.NoError(t, err)
	require.NotNil(t, S.Buff)
	require.False(t, S.OwnsBuff)
}
