// Copyright (C) 2022-2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package compress

import (
	"fmt"

	"github.com/lukeshu-labs/chunky2gltf/lib/chunky/bitio"
)

// offsetSentinel is the magic back-reference offset that signals the end
// of a legacy (KCDC) stream: 4673 + (1<<20) - 1.
const offsetSentinel = int64(4673 + (1 << 20) - 1)

// offsetFamily describes one of the four prefix-unary-selected offset
// encodings.
type offsetFamily struct {
	prefixBits int // how many bits of prefix-unary select this family
	rawBits    int
	base       int64
	// lengthOffset is the constant added when decoding the *length*
	// field that follows an offset of this family: 1 for the three
	// short families, 2 for the 20-bit family.
	lengthOffset int
}

var offsetFamilies = [4]offsetFamily{
	{prefixBits: 1, rawBits: 6, base: 1, lengthOffset: 1},     // "0"
	{prefixBits: 2, rawBits: 9, base: 65, lengthOffset: 1},    // "10"
	{prefixBits: 3, rawBits: 12, base: 577, lengthOffset: 1},  // "110"
	{prefixBits: 3, rawBits: 20, base: 4673, lengthOffset: 2}, // "111"
}

// readOffset decodes the shared offset grammar: a
// prefix-unary family selector ("0", "10", "110", "111") followed by a
// family-specific number of raw bits, assembled least-significant-bit
// first (the first bit read becomes the low bit of the value). It
// reports which family was used, since the length field that follows
// needs that family's length_offset.
//
// If the decoded offset equals the legacy-stream termination sentinel,
// sentinel is true and no length field should be read.
func readOffset(r *bitio.Reader) (offset int64, family int, sentinel bool, err error) {
	bit, err := r.ReadBit()
	if err != nil {
		return 0, 0, false, err
	}
	if bit == 0 {
		return readOffsetFamily(r, 0)
	}

	bit, err = r.ReadBit()
	if err != nil {
		return 0, 0, false, err
	}
	if bit == 0 {
		return readOffsetFamily(r, 1)
	}

	bit, err = r.ReadBit()
	if err != nil {
		return 0, 0, false, err
	}
	if bit == 0 {
		return readOffsetFamily(r, 2)
	}
	return readOffsetFamily(r, 3)
}

func readOffsetFamily(r *bitio.Reader, idx int) (offset int64, family int, sentinel bool, err error) {
	f := offsetFamilies[idx]
	raw, err := r.ReadBits(f.rawBits)
	if err != nil {
		return 0, 0, false, fmt.Errorf("%w: reading %d-bit offset raw field: %v", ErrCorrupt, f.rawBits, err)
	}
	offset = int64(raw) + f.base
	if idx == 3 && offset == offsetSentinel {
		return offset, idx, true, nil
	}
	return offset, idx, false, nil
}
