// Copyright (C) 2022-2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package container

import (
	"fmt"

	"github.com/lukeshu-labs/chunky2gltf/lib/chunky/byteorder"
)

// Group is a parsed chunk-group: a self-describing block
// holding a variable number of same-kind records, each `FixedLen` bytes of
// fixed prefix followed by a variable tail. The chunk index itself is
// stored as a Group, and lib/chunky/records reuses this parser for the
// costumes chunk; animation cells are decoded directly by byteorder.Load.
type Group struct {
	Order    byteorder.Order
	FixedLen int
	records  [][]byte
}

func (g Group) Len() int            { return len(g.records) }
func (g Group) Record(i int) []byte { return g.records[i] }

const groupHeaderLen = 2 + 4 + 4 + 4 // mark, count, varLen, fixedLen

func groupMark(order byteorder.Order, raw []byte) (uint16, bool) {
	c := byteorder.NewCursor(order, raw)
	return c.U16()
}

func decodeGroup(order byteorder.Order, raw []byte, _ []byte) (Group, int, error) {
	c := byteorder.NewCursor(order, raw)
	c.Skip(2) // mark
	count, ok := c.U32()
	if !ok {
		return Group{}, 0, byteorder.ErrTruncatedHeader
	}
	varLen, ok := c.U32()
	if !ok {
		return Group{}, 0, byteorder.ErrTruncatedHeader
	}
	fixedLen, ok := c.U32()
	if !ok {
		return Group{}, 0, byteorder.ErrTruncatedHeader
	}

	region, ok := c.Bytes(int(varLen))
	if !ok {
		return Group{}, 0, fmt.Errorf("%w: variable-bytes region truncated", ErrOutOfRange)
	}

	records := make([][]byte, 0, count)
	for i := uint32(0); i < count; i++ {
		offset, ok := c.U32()
		if !ok {
			return Group{}, 0, byteorder.ErrTruncatedHeader
		}
		length, ok := c.U32()
		if !ok {
			return Group{}, 0, byteorder.ErrTruncatedHeader
		}
		if int64(offset)+int64(length) > int64(len(region)) {
			return Group{}, 0, fmt.Errorf("%w: group record %d extends past variable region", ErrOutOfRange, i)
		}
		records = append(records, region[offset:offset+length])
	}

	return Group{Order: order, FixedLen: int(fixedLen), records: records}, c.Pos, nil
}

// ParseGroup parses a chunk-group from its encoded bytes.
func ParseGroup(data []byte) (Group, error) {
	g, _, err := byteorder.Load("container.Group", data, groupHeaderLen, groupMark, decodeGroup)
	return g, err
}

// List is a parsed chunk-list: a byte-order mark, a fixed
// entry size E, a count N, and N*E contiguous bytes.
type List struct {
	Order     byteorder.Order
	EntrySize int
	data      []byte
}

func (l List) Len() int            { return len(l.data) / l.EntrySize }
func (l List) Entry(i int) []byte  { return l.data[i*l.EntrySize : (i+1)*l.EntrySize] }

const listHeaderLen = 2 + 4 + 4 // mark, entrySize, count

func listMark(order byteorder.Order, raw []byte) (uint16, bool) {
	c := byteorder.NewCursor(order, raw)
	return c.U16()
}

func decodeList(order byteorder.Order, raw []byte, _ []byte) (List, int, error) {
	c := byteorder.NewCursor(order, raw)
	c.Skip(2)
	entrySize, ok := c.U32()
	if !ok {
		return List{}, 0, byteorder.ErrTruncatedHeader
	}
	count, ok := c.U32()
	if !ok {
		return List{}, 0, byteorder.ErrTruncatedHeader
	}
	body, ok := c.Bytes(int(entrySize) * int(count))
	if !ok {
		return List{}, 0, fmt.Errorf("%w: list body truncated", ErrOutOfRange)
	}
	return List{Order: order, EntrySize: int(entrySize), data: body}, c.Pos, nil
}

// ParseList parses a chunk-list from its encoded bytes.
func ParseList(data []byte) (List, error) {
	l, _, err := byteorder.Load("container.List", data, listHeaderLen, listMark, decodeList)
	return l, err
}
