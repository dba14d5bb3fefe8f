// Copyright (C) 2022-2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package atlas

import (
	"image/png"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lukeshu-labs/chunky2gltf/lib/chunky/records"
)

func squareTexture(w, h int, fill byte) *records.TextureMap {
	pixels := make([]byte, w*h)
	for i := range pixels {
		pixels[i] = fill
	}
	return &records.TextureMap{Width: uint16(w), Height: uint16(h), Stride: uint16(w), Pixels: pixels}
}

func unitQuadMesh() *records.ModelMesh {
	return &records.ModelMesh{
		Vertices: []records.Vertex{
			{U: 0, V: 0},
			{U: 1, V: 0},
			{U: 1, V: 1},
			{U: 0, V: 1},
		},
	}
}

func testSet() Set {
	part1 := Part{ID: 1, Mesh: unitQuadMesh()}
	part2 := Part{ID: 2, Mesh: unitQuadMesh()}
	tex1 := squareTexture(20, 12, 7)
	tex2 := squareTexture(9, 30, 9)
	costume := Costume{
		ID: 0,
		PartMats: map[int]PartMaterial{
			1: {TextureKey: "tex1", Texture: tex1, Transform: records.Identity()},
			2: {TextureKey: "tex2", Texture: tex2, Transform: records.Identity()},
		},
	}
	return Set{Parts: []Part{part1, part2}, Costumes: []Costume{costume}}
}

func TestPackRectsNoOverlapWithinCanvas(t *testing.T) {
	rects := []Rect{{W: 20, H: 12}, {W: 9, H: 30}, {W: 5, H: 5}}
	placements, size, err := packRects(rects)
	require.NoError(t, err)
	require.Len(t, placements, len(rects))

	for _, p := range placements {
		assert.GreaterOrEqual(t, p.X, 0)
		assert.GreaterOrEqual(t, p.Y, 0)
		assert.LessOrEqual(t, p.X+p.W, size)
		assert.LessOrEqual(t, p.Y+p.H, size)
	}
	for i := range placements {
		for j := range placements {
			if i == j {
				continue
			}
			assert.False(t, overlaps(placements[i].Rect, placements[j].Rect), "placements %d and %d overlap", i, j)
		}
	}
}

func overlaps(a, b Rect) bool {
	return a.X < b.X+b.W && b.X < a.X+a.W && a.Y < b.Y+b.H && b.Y < a.Y+a.H
}

func TestPackRectsFailsAboveMaxCanvas(t *testing.T) {
	_, _, err := packRects([]Rect{{W: maxCanvasSize + 1, H: 1}})
	assert.ErrorIs(t, err, ErrPackingFailed)
}

func TestPackProducesUVsInUnitRange(t *testing.T) {
	set := testSet()
	result, err := Pack(set)
	require.NoError(t, err)
	assert.Greater(t, result.CanvasSize, 0)

	for _, part := range set.Parts {
		for _, v := range part.Mesh.Vertices {
			assert.GreaterOrEqual(t, v.U, float32(0))
			assert.LessOrEqual(t, v.U, float32(1))
			assert.GreaterOrEqual(t, v.V, float32(0))
			assert.LessOrEqual(t, v.V, float32(1))
		}
	}
}

func TestPackClearsTransformsAfterRemap(t *testing.T) {
	set := testSet()
	_, err := Pack(set)
	require.NoError(t, err)
	for _, mat := range set.Costumes[0].PartMats {
		assert.Equal(t, records.Identity(), mat.Transform)
	}
}

func TestPackEmitsDecodablePalettizedPNG(t *testing.T) {
	set := testSet()
	result, err := Pack(set)
	require.NoError(t, err)
	require.Contains(t, result.Atlases, 0)

	canvas := result.Atlases[0]
	require.Len(t, canvas, result.CanvasSize*result.CanvasSize)
	for _, b := range canvas {
		_ = b // every byte is already a valid index 0..255 by construction (uint8)
	}

	data, err := EncodePNG(canvas, result.CanvasSize)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, result.CanvasSize, img.Bounds().Dx())
	assert.Equal(t, result.CanvasSize, img.Bounds().Dy())
}

func TestPackAccessoriesIsPerCostumeIndependent(t *testing.T) {
	a := testSet()
	b := Set{
		Parts: []Part{{ID: 1, Mesh: unitQuadMesh()}},
		Costumes: []Costume{{
			ID: 5,
			PartMats: map[int]PartMaterial{
				1: {TextureKey: "solo", Texture: squareTexture(4, 4, 1), Transform: records.Identity()},
			},
		}},
	}

	results := PackAccessories([]Set{a, b})
	require.Len(t, results, 2)
	assert.Equal(t, 0, results[0].CostumeID)
	assert.Equal(t, 5, results[1].CostumeID)
	assert.NoError(t, results[0].Err)
	assert.NoError(t, results[1].Err)
}

func TestValidateExcludesMismatchedCostumeNotFirst(t *testing.T) {
	set := testSet()
	mismatched := Costume{
		ID: 1,
		PartMats: map[int]PartMaterial{
			1: {TextureKey: "tex1", Texture: squareTexture(20, 12, 7), Transform: records.TextureTransform{Min: [2]float64{0, 0}, Max: [2]float64{0.5, 0.5}}},
			2: {TextureKey: "tex2", Texture: squareTexture(9, 30, 9), Transform: records.Identity()},
		},
	}
	set.Costumes = append(set.Costumes, mismatched)

	result, err := Pack(set)
	require.NoError(t, err)
	require.Len(t, result.Diagnostics, 1)
	assert.Equal(t, 1, result.Diagnostics[0].Costume)
	assert.NotContains(t, result.Atlases, 1)
	assert.Contains(t, result.Atlases, 0)
}
