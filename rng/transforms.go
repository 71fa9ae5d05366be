// Copyright 2025 The randnla Authors. SPDX-License-Identifier: Apache-2.0

package rng

import (
	"math"

	"github.com/randnla/sketch"
)

// Uneg11 maps a block of raw words to i.i.d. samples uniform on [-1, 1].
func Uneg11[T sketch.Floats](b Block) [BlockSize]T {
	var out [BlockSize]T
	for i, w := range b {
		out[i] = T((float64(int32(w)) + 0.5) * 0x1p-31)
	}
	return out
}

// Boxmul maps a block of raw words to i.i.d. standard normal samples,
// running each pair of words through the Box-Muller transform.
func Boxmul[T sketch.Floats](b Block) [BlockSize]T {
	x0, y0 := boxmulPair(b[0], b[1])
	x1, y1 := boxmulPair(b[2], b[3])
	return [BlockSize]T{T(x0), T(y0), T(x1), T(y1)}
}

func boxmulPair(w0, w1 uint32) (float64, float64) {
	r := math.Sqrt(-2 * math.Log(u01(w0)))
	theta := 2 * math.Pi * u01(w1)
	return r * math.Cos(theta), r * math.Sin(theta)
}

// u01 maps a word to the open interval (0, 1); the half-offset keeps the
// endpoints unreachable so the logarithm above stays finite.
func u01(w uint32) float64 {
	return (float64(w) + 0.5) * 0x1p-32
}
