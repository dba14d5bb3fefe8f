// Copyright (C) 2022-2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package records

import (
	"fmt"

	"github.com/lukeshu-labs/chunky2gltf/lib/chunky/container"
)

// Costumes holds, per body-part set, the list of that set's costume
// variants: MaterialIDs[s] is set s's costume list, and
// MaterialIDs[s][0] is set s's default costume. Each entry is itself a
// CMTL chunk ordinal ("material index") resolved relative to the owning
// template, not a literal material id.
type Costumes struct {
	MaterialIDs [][]uint16
}

// DecodeCostumes decodes a costumes chunk, stored as a chunk-group whose
// records carry no fixed prefix: each record is one body-part set's
// costume list, a variable-length run of 2-byte material-chunk ordinals.
func DecodeCostumes(data []byte) (Costumes, error) {
	group, err := container.ParseGroup(data)
	if err != nil {
		return Costumes{}, fmt.Errorf("decoding costumes: %w", err)
	}
	out := make([][]uint16, group.Len())
	for i := 0; i < group.Len(); i++ {
		rec := group.Record(i)
		if len(rec)%2 != 0 {
			return Costumes{}, fmt.Errorf("%w: costume %d material-id list has odd length", ErrTruncated, i)
		}
		ids := make([]uint16, len(rec)/2)
		for j := range ids {
			ids[j] = group.Order.ByteOrder().Uint16(rec[j*2:])
		}
		out[i] = ids
	}
	return Costumes{MaterialIDs: out}, nil
}
