// Copyright (C) 2022-2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package export

import "github.com/lukeshu-labs/chunky2gltf/lib/chunky/atlas"

func toAtlasPartMaterial(pm PartMaterial) atlas.PartMaterial {
	return atlas.PartMaterial{
		Material:   pm.Material,
		TextureKey: pm.TextureKey,
		Texture:    pm.Texture,
		Transform:  pm.Transform,
	}
}

// BuildSharedAtlasSets builds one non-accessory atlas.Set per body-part
// set: each set packs its own parts' textures independently of every
// other set in the template.
func (t *TemplateData) BuildSharedAtlasSets() []atlas.Set {
	sets := make([]atlas.Set, 0, len(t.Groups))
	for _, g := range t.Groups {
		set := atlas.Set{}
		for _, partID := range g.PartIDs {
			if mesh, ok := t.SharedMeshes[partID]; ok {
				set.Parts = append(set.Parts, atlas.Part{ID: partID, Mesh: mesh})
			}
		}
		for _, cd := range g.Costumes {
			costume := atlas.Costume{ID: cd.ID, PartMats: map[int]atlas.PartMaterial{}}
			for partID, pm := range cd.PartMaterials {
				costume.PartMats[partID] = toAtlasPartMaterial(pm)
			}
			set.Costumes = append(set.Costumes, costume)
		}
		sets = append(sets, set)
	}
	return sets
}

// BuildAccessorySets builds one single-costume atlas.Set per (body-part
// set, costume) pair for the accessory variant: each costume owns its
// own meshes, so there is no shared Parts list across costumes, and
// different sets never share a Set.
func (t *TemplateData) BuildAccessorySets() []atlas.Set {
	var sets []atlas.Set
	for _, g := range t.Groups {
		for _, cd := range g.Costumes {
			set := atlas.Set{}
			costume := atlas.Costume{ID: cd.ID, PartMats: map[int]atlas.PartMaterial{}}
			for partID, mesh := range cd.AccessoryMeshes {
				set.Parts = append(set.Parts, atlas.Part{ID: partID, Mesh: mesh})
				if pm, ok := cd.PartMaterials[partID]; ok {
					costume.PartMats[partID] = toAtlasPartMaterial(pm)
				}
			}
			set.Costumes = []atlas.Costume{costume}
			sets = append(sets, set)
		}
	}
	return sets
}
