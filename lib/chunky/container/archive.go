// Copyright (C) 2022-2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package container

import (
	"fmt"
	"sort"

	"github.com/lukeshu-labs/chunky2gltf/lib/chunky/compress"
)

// Archive is a parsed chunky container: the fixed prefix plus the chunk
// index built from it.
type Archive struct {
	src    Source
	Prefix Prefix
	index  map[ChunkId]IndexEntry
	cache  decompressedCache
}

// Open builds an Archive over src: it validates the magic and version,
// locates the index region, and parses it into the chunk index.
func Open(src Source) (*Archive, error) {
	data := src.Bytes()
	prefix, err := parsePrefix(data)
	if err != nil {
		return nil, err
	}

	start, end := int64(prefix.IndexOffset), int64(prefix.IndexOffset)+int64(prefix.IndexLength)
	if start < 0 || end > src.Size() || start > end {
		return nil, fmt.Errorf("%w: index region [%d, %d) outside archive of size %d", ErrOutOfRange, start, end, src.Size())
	}

	index, err := buildIndex(prefix.Order, data[start:end])
	if err != nil {
		return nil, err
	}

	return &Archive{src: src, Prefix: prefix, index: index}, nil
}

// OpenBytes is a convenience wrapper for tests and callers who already
// have the archive fully in memory.
func OpenBytes(data []byte) (*Archive, error) {
	return Open(NewBytesSource(data))
}

// Lookup returns the IndexEntry for id, if the archive has one.
func (a *Archive) Lookup(id ChunkId) (IndexEntry, bool) {
	e, ok := a.index[id]
	return e, ok
}

// Templates returns every top-level template chunk: tag "TMPL" with the
// LONER flag set.
func (a *Archive) Templates() []IndexEntry {
	tmplTag := MakeTag("TMPL")
	var out []IndexEntry
	for id, e := range a.index {
		if id.Tag == tmplTag && e.Flags.Has(FlagLoner) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.Number < out[j].ID.Number })
	return out
}

// GetChunk returns a chunk's decoded bytes: unpacked chunks
// are a borrowed view directly into the archive; PACKED chunks are
// decompressed on first access and the result is cached by ChunkId.
func (a *Archive) GetChunk(entry IndexEntry) ([]byte, error) {
	data := a.src.Bytes()
	start, end := int64(entry.Offset), int64(entry.Offset)+int64(entry.Length)
	if start < 0 || end > int64(len(data)) || start > end {
		return nil, fmt.Errorf("%w: chunk %s region [%d, %d) outside archive", ErrOutOfRange, entry.ID, start, end)
	}
	raw := data[start:end]

	if !entry.Flags.Has(FlagPacked) {
		return raw, nil
	}

	if cached, ok := a.cache.get(entry.ID); ok {
		return cached, nil
	}
	decoded, err := compress.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("decompressing chunk %s: %w", entry.ID, err)
	}
	a.cache.add(entry.ID, decoded)
	return decoded, nil
}

// GetChild resolves entry's child with the given (ordinal, tag) via
// binary search over its sorted child-link list.
func (a *Archive) GetChild(entry IndexEntry, ordinal uint32, tag Tag) (ChunkId, bool) {
	links := entry.Children
	i := sort.Search(len(links), func(i int) bool {
		return !childLinkLess(links[i], ChildLink{Ordinal: ordinal, Child: ChunkId{Tag: tag}})
	})
	if i < len(links) && links[i].Ordinal == ordinal && links[i].Child.Tag == tag {
		return links[i].Child, true
	}
	return ChunkId{}, false
}

// ChildrenByOrdinal returns every child link of entry sharing the given
// ordinal.
func (a *Archive) ChildrenByOrdinal(entry IndexEntry, ordinal uint32) []ChildLink {
	var out []ChildLink
	for _, l := range entry.Children {
		if l.Ordinal == ordinal {
			out = append(out, l)
		}
	}
	return out
}
