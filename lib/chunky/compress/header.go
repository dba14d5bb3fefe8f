// Copyright (C) 2022-2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package compress

import (
	"encoding/binary"
	"fmt"

	"github.com/lukeshu-labs/chunky2gltf/lib/chunky/bitio"
)

// readHeader parses the header shared by both decompressors: a big-endian uint32 uncompressed length, followed by one byte
// that is read but ignored (historically a flag byte), followed by the
// LSB-first bit stream.
func readHeader(data []byte) (uncompressedLen int64, bitStream *bitio.Reader, err error) {
	if len(data) < 5 {
		return 0, nil, fmt.Errorf("%w: truncated stream header (%d bytes)", ErrCorrupt, len(data))
	}
	l := binary.BigEndian.Uint32(data[0:4])
	return int64(l), bitio.NewReader(data[5:]), nil
}

// copyBackref performs the back-reference copy: a naive byte-by-byte
// loop so that length greater than offset produces run-length
// repetition of already-emitted bytes.
func copyBackref(out []byte, offset, length int64, limit int64) ([]byte, error) {
	srcStart := int64(len(out)) - offset
	if srcStart < 0 {
		return nil, fmt.Errorf("%w: back-reference offset %d exceeds output length %d", ErrCorrupt, offset, len(out))
	}
	if int64(len(out))+length > limit {
		return nil, fmt.Errorf("%w: back-reference would overflow uncompressed length %d", ErrCorrupt, limit)
	}
	for i := int64(0); i < length; i++ {
		out = append(out, out[srcStart+i])
	}
	return out, nil
}
