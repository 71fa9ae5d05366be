// Copyright 2025 The randnla Authors. SPDX-License-Identifier: Apache-2.0

package coo

import "golang.org/x/sys/cpu"

// minParallelWork is the smallest scalar-multiply count worth fanning out
// to the pool; below it, dispatch overhead dominates.
const minParallelWork = 1 << 15

// outputStrip picks how many output rows or columns each dispatched strip
// covers. Wider vector units retire a strip faster, so they get larger
// strips before load balancing starts to matter.
func outputStrip() int {
	switch {
	case cpu.X86.HasAVX512F:
		return 256
	case cpu.X86.HasAVX2, cpu.ARM64.HasASIMD:
		return 128
	default:
		return 64
	}
}
