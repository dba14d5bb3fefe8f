// Copyright (C) 2022-2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package atlas

// remapUVs implements step 4: for each part's (shared) mesh, for each
// vertex, apply the texture transform then scale by the full texture size
// to get a source pixel, subtract the rectangle's origin, add the packed
// location, divide by the canvas edge.
func remapUVs(set Set, measurements []measurement, locByTex map[string]placement, size int) {
	if len(set.Costumes) == 0 {
		return
	}
	first := set.Costumes[0]

	for _, m := range measurements {
		loc, ok := locByTex[m.texKey]
		if !ok {
			continue
		}
		for _, partID := range m.parts {
			part := findPart(set, partID)
			if part == nil {
				continue
			}
			mat := first.PartMats[partID]
			for i := range part.Mesh.Vertices {
				v := &part.Mesh.Vertices[i]
				p := mat.Transform.Apply([2]float64{float64(v.U), float64(v.V)})
				px := p[0]*float64(m.texWidth) - float64(m.rect.X) + float64(loc.X)
				py := p[1]*float64(m.texHeight) - float64(m.rect.Y) + float64(loc.Y)
				v.U = float32(px / float64(size))
				v.V = float32(py / float64(size))
			}
		}
	}
}

func findPart(set Set, id int) *Part {
	for i := range set.Parts {
		if set.Parts[i].ID == id {
			return &set.Parts[i]
		}
	}
	return nil
}
