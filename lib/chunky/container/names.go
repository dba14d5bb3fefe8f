// Copyright (C) 2022-2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package container

import (
	"fmt"

	"golang.org/x/text/encoding/unicode"

	"github.com/lukeshu-labs/chunky2gltf/lib/chunky/byteorder"
)

const (
	oskASCII = 0x0303
	oskUTF16 = 0x0505
)

// decodeName decodes a chunk's display name: a leading
// 16-bit "osk" tag selects the encoding, followed by a 16-bit length and
// that many code units.
func decodeName(order byteorder.Order, data []byte) (string, error) {
	c := byteorder.NewCursor(order, data)
	osk, ok := c.U16()
	if !ok {
		return "", fmt.Errorf("%w: name osk tag", ErrTruncatedName)
	}
	length, ok := c.U16()
	if !ok {
		return "", fmt.Errorf("%w: name length", ErrTruncatedName)
	}

	switch osk {
	case oskASCII:
		raw, ok := c.Bytes(int(length))
		if !ok {
			return "", fmt.Errorf("%w: ascii name body", ErrTruncatedName)
		}
		// The on-disk charset is only specified as "ASCII-compatible",
		// so bytes pass straight through as a string.
		return string(raw), nil
	case oskUTF16:
		raw, ok := c.Bytes(int(length) * 2)
		if !ok {
			return "", fmt.Errorf("%w: utf-16 name body", ErrTruncatedName)
		}
		enc := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
		if order == byteorder.BigEndian {
			enc = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)
		}
		decoded, err := enc.NewDecoder().Bytes(raw)
		if err != nil {
			return "", fmt.Errorf("decoding utf-16 name: %w", err)
		}
		return string(decoded), nil
	default:
		return "", fmt.Errorf("%w: osk tag 0x%04x", ErrUnsupportedEncoding, osk)
	}
}
