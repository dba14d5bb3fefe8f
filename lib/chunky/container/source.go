// Copyright (C) 2022-2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

// Package container implements the chunky archive decoder: the archive
// prefix, the chunk index built from a chunk-group, random
// access to chunks by (tag, number), child-ordinal lookup, and on-demand
// decompression of packed chunks.
package container

// Source is the read-only byte source an Archive is built over. It is
// deliberately narrower than diskio.File: the archive is never written to,
// and every access pattern in this package wants the whole backing slice
// at once (for byteorder.Cursor and bitio.Reader), not a ReaderAt.
type Source interface {
	Bytes() []byte
	Size() int64
}

// bytesSource is a Source over an in-memory buffer, used by tests and by
// callers who have already read an archive into memory.
type bytesSource struct {
	data []byte
}

func NewBytesSource(data []byte) Source {
	return &bytesSource{data: data}
}

func (s *bytesSource) Bytes() []byte { return s.data }
func (s *bytesSource) Size() int64   { return int64(len(s.data)) }
