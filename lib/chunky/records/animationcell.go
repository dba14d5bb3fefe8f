// Copyright (C) 2022-2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package records

import (
	"fmt"

	"github.com/lukeshu-labs/chunky2gltf/lib/chunky/byteorder"
)

// NoMeshPart is the sentinel model id meaning "no mesh this part" within an
// AnimationCell's (model id, matrix id) pair list.
const NoMeshPart = 0xFFFF

// CellPart is one (model, matrix) pairing within an animation cell.
type CellPart struct {
	ModelID  uint16
	MatrixID uint16
}

func (p CellPart) HasMesh() bool { return p.ModelID != NoMeshPart }

// AnimationCell is one frame of a template's animation.
// SoundID is decoded and retained (not discarded) per this repository's
// fidelity-over-pruning stance on archive data it doesn't itself consume.
type AnimationCell struct {
	SoundID uint16
	Advance Fixed16_16
	Parts   []CellPart
}

const animationCellFixedLen = 2 + 2 + 4 // mark, sound id, dwr advance

func decodeAnimationCell(order byteorder.Order, raw []byte, rest []byte) (AnimationCell, int, error) {
	c := byteorder.NewCursor(order, raw)
	c.Skip(2) // byte-order mark
	soundID, _ := c.U16()
	advance, ok := c.I32()
	if !ok {
		return AnimationCell{}, 0, byteorder.ErrTruncatedHeader
	}

	tail := rest[c.Pos:]
	if len(tail)%4 != 0 {
		return AnimationCell{}, 0, fmt.Errorf("%w: animation cell part list has length %d, not a multiple of 4", ErrTruncated, len(tail))
	}
	parts := make([]CellPart, len(tail)/4)
	pc := byteorder.NewCursor(order, tail)
	for i := range parts {
		modelID, _ := pc.U16()
		matrixID, _ := pc.U16()
		parts[i] = CellPart{ModelID: modelID, MatrixID: matrixID}
	}

	return AnimationCell{
		SoundID: soundID,
		Advance: Fixed16_16(advance),
		Parts:   parts,
	}, len(raw), nil
}

// DecodeAnimationCell decodes one animation-cell chunk.
func DecodeAnimationCell(data []byte) (AnimationCell, error) {
	cell, _, err := byteorder.Load("records.AnimationCell", data, animationCellFixedLen, leadingMark, decodeAnimationCell)
	return cell, err
}
