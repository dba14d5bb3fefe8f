// Copyright (C) 2022-2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package compress

import "fmt"

// DecodeKCDC decodes a "legacy" (KCDC) packed chunk.
//
// At each step, one bit selects literal (0: next 8 bits LSB-first become
// one output byte) or back-reference (1: an offset field, then a length
// field). The back-reference offset field's 20-bit family carries a
// sentinel value that terminates decoding
// without a length field following it.
func DecodeKCDC(data []byte) ([]byte, error) {
	uncompressedLen, r, err := readHeader(data)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, uncompressedLen)
	for {
		bit, err := r.ReadBit()
		if err != nil {
			return nil, fmt.Errorf("%w: reading token bit: %v", ErrCorrupt, err)
		}
		if bit == 0 {
			b, err := r.ReadBits(8)
			if err != nil {
				return nil, fmt.Errorf("%w: reading literal byte: %v", ErrCorrupt, err)
			}
			if int64(len(out)) >= uncompressedLen {
				return nil, fmt.Errorf("%w: literal byte would overflow uncompressed length %d", ErrCorrupt, uncompressedLen)
			}
			out = append(out, byte(b))
			continue
		}

		offset, family, sentinel, err := readOffset(r)
		if err != nil {
			return nil, err
		}
		if sentinel {
			break
		}

		length, saturated, err := readLength(r, offsetFamilies[family].lengthOffset)
		if err != nil {
			return nil, err
		}
		if saturated {
			return nil, fmt.Errorf("%w: length prefix reached %d leading ones", ErrCorrupt, maxLengthOnes)
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
