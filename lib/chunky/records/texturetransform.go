// Copyright (C) 2022-2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package records

import "github.com/lukeshu-labs/chunky2gltf/lib/chunky/byteorder"

// TextureTransform is a 2x3 affine UV transform, decomposed at load time
// into its axis-aligned image: `Min`/`Max` are
// `transform(0,0)` and `transform(1,1)` respectively.
type TextureTransform struct {
	Min, Max [2]float64
}

// Apply implements `transform_point(p) = p ⊙ (max − min) + min`.
func (t TextureTransform) Apply(p [2]float64) [2]float64 {
	return [2]float64{
		p[0]*(t.Max[0]-t.Min[0]) + t.Min[0],
		p[1]*(t.Max[1]-t.Min[1]) + t.Min[1],
	}
}

// Identity is the no-op transform used once the atlas packer has remapped
// every UV into atlas space.
func Identity() TextureTransform {
	return TextureTransform{Min: [2]float64{0, 0}, Max: [2]float64{1, 1}}
}

const textureTransformLen = 2 + 6*4 // mark, 6 Fixed16_16 matrix entries

func decodeTextureTransform(order byteorder.Order, raw []byte, _ []byte) (TextureTransform, int, error) {
	c := byteorder.NewCursor(order, raw)
	c.Skip(2) // byte-order mark

	var m [6]Fixed16_16
	for i := range m {
		v, ok := c.I32()
		if !ok {
			return TextureTransform{}, 0, byteorder.ErrTruncatedHeader
		}
		m[i] = Fixed16_16(v)
	}
	// m = [a, b, c, d, e, f] such that x' = a*x + b*y + c, y' = d*x + e*y + f.
	transform := func(x, y float64) [2]float64 {
		a, b, c0 := m[0].Float64(), m[1].Float64(), m[2].Float64()
		d, e, f := m[3].Float64(), m[4].Float64(), m[5].Float64()
		return [2]float64{a*x + b*y + c0, d*x + e*y + f}
	}

	min := transform(0, 0)
	max := transform(1, 1)

	return TextureTransform{Min: min, Max: max}, c.Pos, nil
}

// DecodeTextureTransform decodes a "TXXF" chunk's bytes.
func DecodeTextureTransform(data []byte) (TextureTransform, error) {
	t, _, err := byteorder.Load("records.TextureTransform", data, textureTransformLen, leadingMark, decodeTextureTransform)
	return t, err
}
