// Copyright (C) 2022-2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package compress

import "errors"

var (
	// ErrUnsupportedCodec is returned when a packed payload's four-byte
	// algorithm tag is not one Decode recognizes.
	ErrUnsupportedCodec = errors.New("unsupported codec")
	// ErrCorrupt is returned when a packed stream is malformed: a
	// truncated header or bit stream, an out-of-range back-reference, a
	// saturated KCDC length prefix, or an output length that does not
	// match the header.
	ErrCorrupt = errors.New("corrupt packed stream")
)
