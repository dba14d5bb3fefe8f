// Copyright (C) 2022-2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package atlas

import "github.com/lukeshu-labs/chunky2gltf/lib/chunky/records"

// blitCostume implements step 5: allocate a size*size byte canvas
// (zero-initialized, palette index 0), then for each part's texture copy
// its unioned source rectangle into the canvas at the packed location,
// clamping source coordinates to the texture bounds.
func blitCostume(set Set, costume Costume, measurements []measurement, locByTex map[string]placement, size int) ([]byte, bool) {
	canvas := make([]byte, size*size)
	wrote := false

	for _, m := range measurements {
		loc, ok := locByTex[m.texKey]
		if !ok {
			continue
		}
		var tex *records.TextureMap
		for _, partID := range m.parts {
			mat, ok := costume.PartMats[partID]
			if ok && mat.Texture != nil {
				tex = mat.Texture
				break
			}
		}
		if tex == nil {
			continue
		}
		blitRect(canvas, size, tex, m.rect, loc.Rect)
		wrote = true
	}

	if !wrote {
		return nil, false
	}
	return canvas, true
}

// blitRect copies src's pixels within srcRect into canvas at dstRect's
// origin, clamping source coordinates to the texture's own bounds and
// asserting the copied extent matches dstRect's width and height.
func blitRect(canvas []byte, size int, src *records.TextureMap, srcRect, dstRect Rect) {
	if dstRect.W != srcRect.W || dstRect.H != srcRect.H {
		panic("atlas: packed location size does not match unioned rectangle size")
	}
	for dy := 0; dy < srcRect.H; dy++ {
		sy := clampInt(srcRect.Y+dy, 0, int(src.Height)-1)
		row := src.Row(sy)
		dyCanvas := dstRect.Y + dy
		if dyCanvas < 0 || dyCanvas >= size {
			continue
		}
		for dx := 0; dx < srcRect.W; dx++ {
			sx := clampInt(srcRect.X+dx, 0, int(src.Width)-1)
			dxCanvas := dstRect.X + dx
			if dxCanvas < 0 || dxCanvas >= size {
				continue
			}
			canvas[dyCanvas*size+dxCanvas] = row[sx]
		}
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
