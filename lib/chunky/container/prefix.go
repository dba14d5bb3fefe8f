// Copyright (C) 2022-2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package container

import (
	"fmt"

	"github.com/lukeshu-labs/chunky2gltf/lib/chunky/byteorder"
)

const (
	magic = "CHN2"

	minReadableVersion = 1
	maxSupportedVersion = 5
)

// Prefix is the archive's fixed-size header.
type Prefix struct {
	Order               byteorder.Order
	CreatorID           uint32
	CurrentVersion      uint16
	BackwardCompatVersion uint16
	EOF                 uint32
	IndexOffset         uint32
	IndexLength         uint32
	FreeMapOffset       uint32
}

// prefixLen is the byte size of the fixed prefix: 4-byte magic, u32
// creator id, u16+u16 versions, u16 byte-order mark, u32 eof, u32 index
// offset, u32 index length, u32 free-map offset, 23 reserved bytes.
const prefixLen = 4 + 4 + 2 + 2 + 2 + 4 + 4 + 4 + 4 + 23

func prefixMark(order byteorder.Order, raw []byte) (uint16, bool) {
	if len(raw) < 4+4+2+2+2 {
		return 0, false
	}
	c := byteorder.NewCursor(order, raw)
	c.Skip(4 + 4 + 2 + 2) // magic, creator id, current version, backward-compat version
	mark, ok := c.U16()
	return mark, ok
}

func decodePrefix(order byteorder.Order, raw []byte, _ []byte) (Prefix, int, error) {
	c := byteorder.NewCursor(order, raw)

	magicBytes, ok := c.Bytes(4)
	if !ok || string(magicBytes) != magic {
		return Prefix{}, 0, fmt.Errorf("%w: got %q", ErrWrongMagic, magicBytes)
	}
	creatorID, _ := c.U32()
	currentVersion, _ := c.U16()
	backCompatVersion, _ := c.U16()
	c.Skip(2) // byte-order mark, already consumed by prefixMark
	eof, _ := c.U32()
	indexOffset, _ := c.U32()
	indexLength, _ := c.U32()
	freeMapOffset, ok := c.U32()
	if !ok {
		return Prefix{}, 0, byteorder.ErrTruncatedHeader
	}
	c.Skip(23) // reserved

	if currentVersion < minReadableVersion {
		return Prefix{}, 0, fmt.Errorf("%w: current version %d below minimum readable %d", ErrIncompatibleVersion, currentVersion, minReadableVersion)
	}
	if backCompatVersion > maxSupportedVersion {
		return Prefix{}, 0, fmt.Errorf("%w: backwards-compatible version %d above maximum supported %d", ErrIncompatibleVersion, backCompatVersion, maxSupportedVersion)
	}

	return Prefix{
		Order:                 order,
		CreatorID:             creatorID,
		CurrentVersion:        currentVersion,
		BackwardCompatVersion: backCompatVersion,
		EOF:                   eof,
		IndexOffset:           indexOffset,
		IndexLength:           indexLength,
		FreeMapOffset:         freeMapOffset,
	}, c.Pos, nil
}

func parsePrefix(data []byte) (Prefix, error) {
	p, _, err := byteorder.Load("container.Prefix", data, prefixLen, prefixMark, decodePrefix)
	return p, err
}
