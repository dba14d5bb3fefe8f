// Copyright (C) 2022-2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package atlas

import (
	"bytes"
	"image"
	"image/png"

	"github.com/lukeshu-labs/chunky2gltf/lib/chunky/palette"
)

// EncodePNG wraps a size*size palette-index canvas (as produced by
// blitCostume) in an image.Paletted and emits it as an indexed PNG using
// the fixed 256-entry color table.
func EncodePNG(canvas []byte, size int) ([]byte, error) {
	tbl, err := palette.Table()
	if err != nil {
		return nil, err
	}
	img := &image.Paletted{
		Pix:     canvas,
		Stride:  size,
		Rect:    image.Rect(0, 0, size, size),
		Palette: tbl,
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
