// Copyright (C) 2022-2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package atlas

import (
	"math"

	"github.com/lukeshu-labs/chunky2gltf/lib/chunky/records"
)

// measurement is one texture's unioned pixel extent across every part of
// the first costume that references it.
type measurement struct {
	texKey              string
	texWidth, texHeight int
	rect                Rect
	parts               []int // part IDs sharing this texture
}

// pixelExtent transforms mesh's UVs by transform, scales by (w, h), and
// returns (floor(min), ceil(max)) as a Rect.
func pixelExtent(mesh *records.ModelMesh, transform records.TextureTransform, w, h int) Rect {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, v := range mesh.Vertices {
		p := transform.Apply([2]float64{float64(v.U), float64(v.V)})
		px, py := p[0]*float64(w), p[1]*float64(h)
		minX, minY = math.Min(minX, px), math.Min(minY, py)
		maxX, maxY = math.Max(maxX, px), math.Max(maxY, py)
	}
	x0, y0 := int(math.Floor(minX)), int(math.Floor(minY))
	x1, y1 := int(math.Ceil(maxX)), int(math.Ceil(maxY))
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// measure implements step 1 against the first costume.
func measure(set Set) []measurement {
	if len(set.Costumes) == 0 {
		return nil
	}
	first := set.Costumes[0]

	byTex := map[string]*measurement{}
	var order []string
	for _, part := range set.Parts {
		mat, ok := first.PartMats[part.ID]
		if !ok || mat.TextureKey == "" || mat.Texture == nil {
			continue
		}
		rect := pixelExtent(part.Mesh, mat.Transform, int(mat.Texture.Width), int(mat.Texture.Height))
		m, seen := byTex[mat.TextureKey]
		if !seen {
			m = &measurement{texKey: mat.TextureKey, texWidth: int(mat.Texture.Width), texHeight: int(mat.Texture.Height)}
			byTex[mat.TextureKey] = m
			order = append(order, mat.TextureKey)
		}
		m.rect = m.rect.union(rect)
		m.parts = append(m.parts, part.ID)
	}

	out := make([]measurement, 0, len(order))
	for _, key := range order {
		out = append(out, *byTex[key])
	}
	return out
}

// cornerSize computes ceil(transform((1,1)) . (w,h)), the per-costume
// consistency check value used to validate every costume against the
// one that was measured.
func cornerSize(transform records.TextureTransform, w, h int) (int, int) {
	p := transform.Apply([2]float64{1, 1})
	return int(math.Ceil(p[0] * float64(w))), int(math.Ceil(p[1] * float64(h)))
}

// validate implements step 2: every other costume must agree with the
// first costume's corner size for each of the first costume's textured
// parts; a mismatch, or a missing or untextured material for one of
// those parts, excludes that whole costume (diagnostic, not a hard
// failure).
func validate(set Set, measurements []measurement) []Diagnostic {
	if len(set.Costumes) == 0 {
		return nil
	}
	first := set.Costumes[0]
	firstCorner := make(map[int][2]int) // part ID -> (w, h)
	for _, part := range set.Parts {
		mat, ok := first.PartMats[part.ID]
		if !ok || mat.Texture == nil {
			continue
		}
		w, h := cornerSize(mat.Transform, int(mat.Texture.Width), int(mat.Texture.Height))
		firstCorner[part.ID] = [2]int{w, h}
	}

	var diags []Diagnostic
	for _, costume := range set.Costumes[1:] {
		for partID, want := range firstCorner {
			mat, ok := costume.PartMats[partID]
			if !ok || mat.Texture == nil {
				diags = append(diags, Diagnostic{Costume: costume.ID, Part: partID, Reason: "missing textured part present in first costume"})
				break
			}
			w, h := cornerSize(mat.Transform, int(mat.Texture.Width), int(mat.Texture.Height))
			if w != want[0] || h != want[1] {
				diags = append(diags, Diagnostic{Costume: costume.ID, Part: partID, Reason: "texture transform corner size mismatch"})
				break
			}
		}
	}
	return diags
}
