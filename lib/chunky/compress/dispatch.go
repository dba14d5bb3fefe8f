// Copyright (C) 2022-2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

// Package compress implements the two chunky-archive decompressors
// ("legacy"/KCDC and "extended"/KCD2) and the four-byte algorithm-tag
// dispatch that selects between them.
package compress

import "fmt"

// Decode dispatches a packed chunk's payload by its four-byte algorithm
// tag: "KCDC" and "KCD2" select the two bit-level
// decompressors; "puak" is a literal passthrough of the following bytes;
// "apak" recursively decodes the following bytes (itself tagged).
func Decode(data []byte) ([]byte, error) {
	if len(data) < 4 {
		return nil, fmt.Errorf("%w: payload shorter than algorithm tag", ErrCorrupt)
	}
	tag := string(data[:4])
	rest := data[4:]
	switch tag {
	case "KCDC":
		return DecodeKCDC(rest)
	case "KCD2":
		return DecodeKCD2(rest)
	case "puak":
		out := make([]byte, len(rest))
		copy(out, rest)
		return out, nil
	case "apak":
		return Decode(rest)
	default:
		return nil, fmt.Errorf("%w: tag %q", ErrUnsupportedCodec, tag)
	}
}
