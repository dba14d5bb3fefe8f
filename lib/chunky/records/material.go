// Copyright (C) 2022-2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package records

import "github.com/lukeshu-labs/chunky2gltf/lib/chunky/byteorder"

// Material is a part's shading description. ColorIndex is
// the base palette index; an untextured part's glTF base color is the
// palette entry it selects, so it is retained under a name describing its
// use rather than its storage ("base index").
type Material struct {
	ColorIndex       uint8
	Ambient          UFrac16
	Diffuse          UFrac16
	Specular         UFrac16
	SpecularExponent uint16
}

const materialLen = 2 + 1 + 1 + 2 + 2 + 2 + 2 // mark, color index, pad, ambient, diffuse, specular, exponent

func decodeMaterial(order byteorder.Order, raw []byte, _ []byte) (Material, int, error) {
	c := byteorder.NewCursor(order, raw)
	c.Skip(2) // byte-order mark
	colorIndex, ok := c.U8()
	if !ok {
		return Material{}, 0, byteorder.ErrTruncatedHeader
	}
	c.Skip(1) // alignment pad
	ambient, _ := c.U16()
	diffuse, _ := c.U16()
	specular, _ := c.U16()
	exponent, ok := c.U16()
	if !ok {
		return Material{}, 0, byteorder.ErrTruncatedHeader
	}
	return Material{
		ColorIndex:       colorIndex,
		Ambient:          UFrac16(ambient),
		Diffuse:          UFrac16(diffuse),
		Specular:         UFrac16(specular),
		SpecularExponent: exponent,
	}, c.Pos, nil
}

// DecodeMaterial decodes an "MTRL" chunk's bytes.
func DecodeMaterial(data []byte) (Material, error) {
	m, _, err := byteorder.Load("records.Material", data, materialLen, leadingMark, decodeMaterial)
	return m, err
}
