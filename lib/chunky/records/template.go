// Copyright (C) 2022-2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package records

import "github.com/lukeshu-labs/chunky2gltf/lib/chunky/byteorder"

// Template is the rest-pose orientation and behavior flags for a
// top-level "TMPL" chunk.
type Template struct {
	RestAngleX, RestAngleY, RestAngleZ UFrac16
	Flags                              uint32
}

func leadingMark(order byteorder.Order, raw []byte) (uint16, bool) {
	c := byteorder.NewCursor(order, raw)
	return c.U16()
}

const templateLen = 2 + 2 + 2 + 2 + 4

func decodeTemplate(order byteorder.Order, raw []byte, _ []byte) (Template, int, error) {
	c := byteorder.NewCursor(order, raw)
	c.Skip(2) // byte-order mark
	xa, _ := c.U16()
	ya, _ := c.U16()
	za, _ := c.U16()
	flags, ok := c.U32()
	if !ok {
		return Template{}, 0, byteorder.ErrTruncatedHeader
	}
	return Template{
		RestAngleX: UFrac16(xa),
		RestAngleY: UFrac16(ya),
		RestAngleZ: UFrac16(za),
		Flags:      flags,
	}, c.Pos, nil
}

// DecodeTemplate decodes a "TMPL" chunk's bytes.
func DecodeTemplate(data []byte) (Template, error) {
	t, _, err := byteorder.Load("records.Template", data, templateLen, leadingMark, decodeTemplate)
	return t, err
}
