// Copyright (C) 2022-2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package records

import (
	"fmt"

	"github.com/lukeshu-labs/chunky2gltf/lib/chunky/byteorder"
)

// formatPalettized8 is the only texture pixel format this codebase
// supports.
const formatPalettized8 = 0

// TextureMap is a palettized 8-bit texture. Pixels is
// height*stride bytes; a row's first Width bytes are significant, the
// remainder is padding honored by Stride but otherwise ignored.
type TextureMap struct {
	Width, Height, Stride uint16
	Pixels                []byte
}

// Row returns the significant (Width) bytes of row y.
func (t TextureMap) Row(y int) []byte {
	start := y * int(t.Stride)
	return t.Pixels[start : start+int(t.Width)]
}

const textureMapFixedLen = 2 + 2 + 2 + 2 + 4 + 2 + 2 // mark, w, h, stride, flags, originX, originY

func decodeTextureMap(order byteorder.Order, raw []byte, rest []byte) (TextureMap, int, error) {
	c := byteorder.NewCursor(order, raw)
	c.Skip(2) // byte-order mark
	width, _ := c.U16()
	height, _ := c.U16()
	stride, _ := c.U16()
	flags, ok := c.U32()
	if !ok {
		return TextureMap{}, 0, byteorder.ErrTruncatedHeader
	}
	originX, _ := c.U16()
	originY, ok := c.U16()
	if !ok {
		return TextureMap{}, 0, byteorder.ErrTruncatedHeader
	}

	format := uint8(flags & 0xFF)
	if format != formatPalettized8 {
		return TextureMap{}, 0, fmt.Errorf("%w: texture format %d is not palettized 8-bit", ErrUnsupportedEncoding, format)
	}
	if originX != 0 || originY != 0 {
		return TextureMap{}, 0, fmt.Errorf("%w: texture origin (%d, %d) is nonzero", ErrUnsupportedEncoding, originX, originY)
	}

	want := int(height) * int(stride)
	pixels := rest[c.Pos:]
	if len(pixels) < want {
		return TextureMap{}, 0, fmt.Errorf("%w: texture pixel data needs %d bytes, have %d", ErrTruncated, want, len(pixels))
	}
	pixels = pixels[:want]

	return TextureMap{
		Width:  width,
		Height: height,
		Stride: stride,
		Pixels: pixels,
	}, c.Pos + want, nil
}

// DecodeTextureMap decodes a "TMAP" chunk's bytes.
func DecodeTextureMap(data []byte) (TextureMap, error) {
	t, _, err := byteorder.Load("records.TextureMap", data, textureMapFixedLen, leadingMark, decodeTextureMap)
	return t, err
}
