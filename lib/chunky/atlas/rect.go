// Copyright (C) 2022-2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package atlas

// Rect is an axis-aligned pixel rectangle, [X, X+W) x [Y, Y+H).
type Rect struct {
	X, Y, W, H int
}

func (r Rect) union(o Rect) Rect {
	if r.W == 0 && r.H == 0 {
		return o
	}
	minX, minY := min(r.X, o.X), min(r.Y, o.Y)
	maxX, maxY := max(r.X+r.W, o.X+o.W), max(r.Y+r.H, o.Y+o.H)
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}
