// Copyright (C) 2022-2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package container

import "errors"

var (
	ErrWrongMagic          = errors.New("wrong magic")
	ErrIncompatibleVersion = errors.New("incompatible version")
	ErrOutOfRange          = errors.New("offset or length out of range")
	ErrUnsupportedEncoding = errors.New("unsupported name encoding")
	ErrTruncatedName       = errors.New("truncated name")
	ErrChunkNotFound       = errors.New("chunk not found")
	ErrChildNotFound       = errors.New("child not found")
)
