// Copyright (C) 2022-2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package container

import (
	"fmt"
	"sort"

	"github.com/lukeshu-labs/chunky2gltf/lib/chunky/byteorder"
)

// ChildLink names a child chunk and the ordinal its parent assigned it
//. A parent's child list is sorted by (Ordinal, Child.Tag)
// so GetChild can binary-search it.
type ChildLink struct {
	Child   ChunkId
	Ordinal uint32
}

func childLinkLess(a, b ChildLink) bool {
	if a.Ordinal != b.Ordinal {
		return a.Ordinal < b.Ordinal
	}
	return string(a.Child.Tag[:]) < string(b.Child.Tag[:])
}

// IndexEntry is one chunk's metadata, as recorded in the chunk index
//.
type IndexEntry struct {
	ID         ChunkId
	Offset     uint32
	Length     uint32
	Flags      Flags
	OwnerCount uint32
	Name       string
	Children   []ChildLink
}

// indexFixedLen is the fixed-prefix size of one index group record:
// 4-byte tag + 4-byte number (ChunkId), 4-byte data offset, 4-byte
// packed flags-and-length word, 4-byte child count, 4-byte owner count.
const indexFixedLen = 4 + 4 + 4 + 4 + 4 + 4

// parseIndexEntry decodes one chunk-index group record: a
// fixed prefix, then `child_count` 8-byte child-link records (each a
// 4+4-byte ChunkId plus a 4-byte ordinal), then -- if any bytes remain --
// a length-prefixed name.
func parseIndexEntry(order byteorder.Order, record []byte) (IndexEntry, error) {
	c := byteorder.NewCursor(order, record)

	tagBytes, ok := c.Bytes(4)
	if !ok {
		return IndexEntry{}, byteorder.ErrTruncatedHeader
	}
	var tag Tag
	copy(tag[:], tagBytes)
	number, ok := c.U32()
	if !ok {
		return IndexEntry{}, byteorder.ErrTruncatedHeader
	}
	offset, ok := c.U32()
	if !ok {
		return IndexEntry{}, byteorder.ErrTruncatedHeader
	}
	packed, ok := c.U32()
	if !ok {
		return IndexEntry{}, byteorder.ErrTruncatedHeader
	}
	childCount, ok := c.U32()
	if !ok {
		return IndexEntry{}, byteorder.ErrTruncatedHeader
	}
	ownerCount, ok := c.U32()
	if !ok {
		return IndexEntry{}, byteorder.ErrTruncatedHeader
	}

	flags := Flags(packed & 0xFF)
	length := packed >> 8

	children := make([]ChildLink, 0, childCount)
	for i := uint32(0); i < childCount; i++ {
		childTagBytes, ok := c.Bytes(4)
		if !ok {
			return IndexEntry{}, fmt.Errorf("%w: child link %d", byteorder.ErrTruncatedHeader, i)
		}
		var childTag Tag
		copy(childTag[:], childTagBytes)
		childNumber, ok := c.U32()
		if !ok {
			return IndexEntry{}, fmt.Errorf("%w: child link %d", byteorder.ErrTruncatedHeader, i)
		}
		ordinal, ok := c.U32()
		if !ok {
			return IndexEntry{}, fmt.Errorf("%w: child link %d", byteorder.ErrTruncatedHeader, i)
		}
		children = append(children, ChildLink{
			Child:   ChunkId{Tag: childTag, Number: childNumber},
			Ordinal: ordinal,
		})
	}
	sort.Slice(children, func(i, j int) bool { return childLinkLess(children[i], children[j]) })

	var name string
	if c.Pos < len(record) {
		n, err := decodeName(order, record[c.Pos:])
		if err != nil {
			return IndexEntry{}, err
		}
		name = n
	}

	return IndexEntry{
		ID:         ChunkId{Tag: tag, Number: number},
		Offset:     offset,
		Length:     length,
		Flags:      flags,
		OwnerCount: ownerCount,
		Name:       name,
		Children:   children,
	}, nil
}

// buildIndex parses the chunk-group index into a map keyed
// by ChunkId.
func buildIndex(order byteorder.Order, indexBytes []byte) (map[ChunkId]IndexEntry, error) {
	group, err := ParseGroup(indexBytes)
	if err != nil {
		return nil, fmt.Errorf("parsing chunk index: %w", err)
	}
	if group.FixedLen != indexFixedLen {
		// Informational only: the fixed prefix includes the child-link
		// list in its own accounting via the record's total length, not
		// FixedLen, so a mismatch here is not itself fatal.
		_ = group.FixedLen
	}

	index := make(map[ChunkId]IndexEntry, group.Len())
	for i := 0; i < group.Len(); i++ {
		entry, err := parseIndexEntry(order, group.Record(i))
		if err != nil {
			return nil, fmt.Errorf("parsing index entry %d: %w", i, err)
		}
		index[entry.ID] = entry
	}
	return index, nil
}
