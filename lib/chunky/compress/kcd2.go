// Copyright (C) 2022-2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package compress

import "fmt"

// literalLengthOffset is the length_offset used for KCD2's per-step
// length field. Unlike KCDC, where length_offset is selected by the
// offset family that was just decoded, KCD2 reads its length field
// *before* knowing (or even whether there will be) an offset family, so
// a fixed short-family value is used; the family-specific length_offset
// only matters once an offset has actually been decoded, and KCD2's
// back-reference path re-reads nothing once it does (the length was
// already fixed).
const literalLengthOffset = 1

// DecodeKCD2 decodes an "extended" (KCD2) packed chunk.
//
// Each step reads a length field first; a saturated length (the
// leading-ones run reaching maxLengthOnes) terminates decoding. Otherwise
// one bit selects a literal run of `length` bytes (each byte read as the
// next 8 bits of the stream, whatever the current bit position) or a back-reference
// using the shared offset grammar, with no terminal sentinel.
func DecodeKCD2(data []byte) ([]byte, error) {
	uncompressedLen, r, err := readHeader(data)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, uncompressedLen)
	for {
		length, saturated, err := readLength(r, literalLengthOffset)
		if err != nil {
			return nil, err
		}
		if saturated {
			break
		}

		bit, err := r.ReadBit()
		if err != nil {
			return nil, fmt.Errorf("%w: reading run-kind bit: %v", ErrCorrupt, err)
		}

		if bit == 0 {
			if int64(len(out))+length > uncompressedLen {
				return nil, fmt.Errorf("%w: literal run would overflow uncompressed length %d", ErrCorrupt, uncompressedLen)
			}
			// Each output byte is the next 8 bits of the stream.
			// When the stream is byte-aligned every read is a
			// direct copy of one source byte; when it isn't, each
			// output byte combines the upper bits of one source
			// byte with the lower bits of the next. The run's head
			// and tail fragments are not gathered into a separate
			// trailing byte.
			for i := int64(0); i < length; i++ {
				b, err := r.ReadBits(8)
				if err != nil {
					return nil, fmt.Errorf("%w: reading literal run byte: %v", ErrCorrupt, err)
				}
				out = append(out, byte(b))
			}
			continue
		}

		offset, _, _, err := readOffset(r)
		if err != nil {
			return nil, err
		}
		out, err = copyBackref(out, offset, length, uncompressedLen)
		if err != nil {
			return nil, err
		}
	}

	if int64(len(out)) != uncompressedLen {
		return nil, fmt.Errorf("%w: decoded %d bytes, expected %d", ErrCorrupt, len(out), uncompressedLen)
	}
	return out, nil
}
