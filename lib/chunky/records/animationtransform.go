// Copyright (C) 2022-2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package records

import (
	"fmt"

	"github.com/lukeshu-labs/chunky2gltf/lib/chunky/container"
)

// AffineMatrix is a 3x4 column-major affine transform, the on-disk shape
// of one animation-transform entry: columns 0-2 are the
// linear part, column 3 is translation.
type AffineMatrix struct {
	// Columns[c][r]: 4 columns of 3 rows each, signed 15.16.
	Columns [4][3]Fixed16_16
}

const affineMatrixEntryLen = 4 * 3 * 4 // 4 columns * 3 rows * 4 bytes/Fixed16_16

// AnimationTransforms is the per-cell-referenced list of rest-pose-relative
// joint matrices.
type AnimationTransforms struct {
	Matrices []AffineMatrix
}

// DecodeAnimationTransforms decodes an animation-transforms chunk, stored
// as a chunk-list of 48-byte matrix entries.
func DecodeAnimationTransforms(data []byte) (AnimationTransforms, error) {
	list, err := container.ParseList(data)
	if err != nil {
		return AnimationTransforms{}, fmt.Errorf("decoding animation transforms: %w", err)
	}
	if list.EntrySize != affineMatrixEntryLen {
		return AnimationTransforms{}, fmt.Errorf("%w: animation-transform entry size %d, want %d", ErrTruncated, list.EntrySize, affineMatrixEntryLen)
	}

	order := list.Order.ByteOrder()
	out := make([]AffineMatrix, list.Len())
	for i := 0; i < list.Len(); i++ {
		entry := list.Entry(i)
		var m AffineMatrix
		pos := 0
		for col := 0; col < 4; col++ {
			for row := 0; row < 3; row++ {
				m.Columns[col][row] = Fixed16_16(order.Uint32(entry[pos:]))
				pos += 4
			}
		}
		out[i] = m
	}
	return AnimationTransforms{Matrices: out}, nil
}
