// Copyright (C) 2022-2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package byteorder

import "errors"

var (
	// ErrTruncatedHeader is returned when a record does not have enough
	// bytes for its fixed-size prefix.
	ErrTruncatedHeader = errors.New("truncated header")
	// ErrUnknownByteOrder is returned when a byte-order mark is neither
	// 0x0001 nor 0x0100.
	ErrUnknownByteOrder = errors.New("unknown byte-order mark")
)
