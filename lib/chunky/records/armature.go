// Copyright (C) 2022-2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package records

import (
	"fmt"

	"github.com/lukeshu-labs/chunky2gltf/lib/chunky/container"
)

// RootParent is the sentinel parent index meaning "parented to root"
//.
const RootParent = 0xFFFF

// Armature is the ordered sequence of joint parent indices.
type Armature struct {
	Parents []uint16
}

func (a Armature) IsRoot(parent uint16) bool { return parent == RootParent }

// DecodeArmature decodes an "ARMA" chunk, stored as a chunk-list of 2-byte parent indices.
func DecodeArmature(data []byte) (Armature, error) {
	list, err := container.ParseList(data)
	if err != nil {
		return Armature{}, fmt.Errorf("decoding armature: %w", err)
	}
	if list.EntrySize != 2 {
		return Armature{}, fmt.Errorf("%w: armature entry size %d, want 2", ErrTruncated, list.EntrySize)
	}
	parents := make([]uint16, list.Len())
	for i := 0; i < list.Len(); i++ {
		parents[i] = list.Order.ByteOrder().Uint16(list.Entry(i))
	}
	return Armature{Parents: parents}, nil
}
