// Copyright (C) 2022-2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package records

import "errors"

var (
	ErrTruncated           = errors.New("truncated record")
	ErrUnsupportedEncoding = errors.New("unsupported encoding")
)
