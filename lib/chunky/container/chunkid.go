// Copyright (C) 2022-2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package container

import "fmt"

// Tag is a chunk's four-byte type tag, e.g. "TMPL", "BMDL", "MTRL". It is
// interpreted big-endian for textual display, matching the
// convention every chunky tag is written in ASCII reading order.
type Tag [4]byte

func (t Tag) String() string { return string(t[:]) }

// ChunkId identifies a chunk by (tag, number).
type ChunkId struct {
	Tag    Tag
	Number uint32
}

func (id ChunkId) String() string { return fmt.Sprintf("%s#%d", id.Tag, id.Number) }

func MakeTag(s string) Tag {
	var t Tag
	copy(t[:], s)
	return t
}
