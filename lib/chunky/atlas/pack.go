// Copyright (C) 2022-2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package atlas

import "sort"

const maxCanvasSize = 4096

var canvasSizes = []int{8, 16, 32, 64, 128, 256, 512, 1024, 2048, 4096}

type placement struct {
	Rect
}

// collectRects gathers every unioned rectangle into a packing input,
// preserving measurement order for later lookup by texture key.
func collectRects(measurements []measurement) (rects []Rect, texKeys []string) {
	rects = make([]Rect, len(measurements))
	texKeys = make([]string, len(measurements))
	for i, m := range measurements {
		rects[i] = m.rect
		texKeys[i] = m.texKey
	}
	return rects, texKeys
}

// packRects implements step 3: binary search the ascending canvas-size
// sequence for the smallest edge length that fits every rectangle, via a
// shelf packer (sort rectangles tallest-first, pack left-to-right into
// rows, start a new row when the current one is full).
func packRects(rects []Rect) ([]placement, int, error) {
	lo, hi := 0, len(canvasSizes)
	var best []placement
	bestSize := 0
	for lo < hi {
		mid := (lo + hi) / 2
		size := canvasSizes[mid]
		if placements, ok := tryPack(rects, size); ok {
			best, bestSize = placements, size
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	if best == nil {
		return nil, 0, ErrPackingFailed
	}
	return best, bestSize, nil
}

// tryPack attempts a shelf packing of rects into a size*size canvas,
// returning placements in the original rect order.
func tryPack(rects []Rect, size int) ([]placement, bool) {
	type indexed struct {
		idx  int
		w, h int
	}
	order := make([]indexed, len(rects))
	for i, r := range rects {
		order[i] = indexed{idx: i, w: r.W, h: r.H}
	}
	sort.SliceStable(order, func(i, j int) bool { return order[i].h > order[j].h })

	placements := make([]placement, len(rects))
	x, y, shelfHeight := 0, 0, 0
	for _, o := range order {
		if o.w > size || o.h > size {
			return nil, false
		}
		if x+o.w > size {
			x = 0
			y += shelfHeight
			shelfHeight = 0
		}
		if y+o.h > size {
			return nil, false
		}
		placements[o.idx] = placement{Rect{X: x, Y: y, W: o.w, H: o.h}}
		x += o.w
		if o.h > shelfHeight {
			shelfHeight = o.h
		}
	}
	return placements, true
}
