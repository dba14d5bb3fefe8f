// Copyright (C) 2022-2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package records

import (
	"fmt"

	"github.com/lukeshu-labs/chunky2gltf/lib/chunky/container"
)

// BodyPartSet maps each body part, by its global ordinal, to the
// body-part-set (group) it belongs to: GroupTags[partID] is the set
// index consumed by Costumes and the atlas packer. A template's parts
// are partitioned across one or more sets; each set has its own costume
// list and its own atlas, and parts are renumbered locally (0..n) within
// their set when resolving per-part children off a costume's material
// chunk.
type BodyPartSet struct {
	GroupTags []uint16
}

// PartsInGroup returns, in ascending body-part order, the global part
// ordinals belonging to set.
func (b BodyPartSet) PartsInGroup(set uint16) []int {
	var parts []int
	for partID, tag := range b.GroupTags {
		if tag == set {
			parts = append(parts, partID)
		}
	}
	return parts
}

// DecodeBodyPartSet decodes a body-part-set chunk, stored as a chunk-list
// of 2-byte group-tag entries.
func DecodeBodyPartSet(data []byte) (BodyPartSet, error) {
	list, err := container.ParseList(data)
	if err != nil {
		return BodyPartSet{}, fmt.Errorf("decoding body-part set: %w", err)
	}
	if list.EntrySize != 2 {
		return BodyPartSet{}, fmt.Errorf("%w: body-part-set entry size %d, want 2", ErrTruncated, list.EntrySize)
	}
	tags := make([]uint16, list.Len())
	for i := 0; i < list.Len(); i++ {
		tags[i] = list.Order.ByteOrder().Uint16(list.Entry(i))
	}
	return BodyPartSet{GroupTags: tags}, nil
}
