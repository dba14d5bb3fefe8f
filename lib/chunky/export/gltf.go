// Copyright (C) 2022-2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package export

import (
	"fmt"

	"github.com/lukeshu-labs/chunky2gltf/lib/chunky/atlas"
	"github.com/lukeshu-labs/chunky2gltf/lib/chunky/gltfdoc"
	"github.com/lukeshu-labs/chunky2gltf/lib/chunky/palette"
	"github.com/lukeshu-labs/chunky2gltf/lib/chunky/records"
)

// AssembleGLTF builds one template's scene: an "Armature"
// root, three nested nodes per skeleton joint (scale, rotate, translate),
// and a mesh attached to the joint sharing its ordinal, materials wired
// from each body-part set's default costume (that set's Costumes[0]).
// atlases and sizes are the merged per-costume canvases and canvas sizes
// produced by packing every body-part set's atlas.
//
// [OPEN QUESTION] an image, texture, and material are meant to exist per
// textured costume, plural, but a scene holds one mesh per part, and glTF
// has no native way to vary a primitive's material per costume without a
// vendor extension this format predates. This assembler wires each set's
// default costume's materials into the one scene graph; every costume
// still gets its own PNG atlas written to disk, just not a reachable
// glTF material slot for non-default costumes.
func AssembleGLTF(tmpl *TemplateData, atlases map[int][]byte, sizes map[int]int) (gltfdoc.Document, []byte, error) {
	b := gltfdoc.NewBuilder("chunky2gltf")
	root := b.AddRootNode(gltfdoc.Node{Name: "Armature"})

	tbl, err := palette.Table()
	if err != nil {
		return gltfdoc.Document{}, nil, err
	}

	textureMaterials := map[int]int{}    // body-part-set ID -> glTF material index
	untexturedMaterials := map[int]int{} // body-part ordinal -> glTF material index
	defaultCostumes := map[int]CostumeData{} // body-part ordinal -> owning set's default costume

	for _, g := range tmpl.Groups {
		if len(g.Costumes) == 0 {
			continue
		}
		costume := g.Costumes[0]
		for _, partID := range g.PartIDs {
			defaultCostumes[partID] = costume
		}

		if canvas, ok := atlases[costume.ID]; ok {
			png, err := atlas.EncodePNG(canvas, sizes[costume.ID])
			if err != nil {
				return gltfdoc.Document{}, nil, fmt.Errorf("encoding atlas PNG: %w", err)
			}
			img := b.AddImage(fmt.Sprintf("%s.%03d", tmpl.Name, costume.ID), png)
			tex := b.AddTexture(img)
			textureMaterials[g.SetID] = b.AddTexturedMaterial(fmt.Sprintf("%s.%03d", tmpl.Name, costume.ID), tex)
		}

		for partID, pm := range costume.PartMaterials {
			if pm.Texture != nil {
				continue
			}
			c := palette.Lookup(tbl, pm.Material.ColorIndex)
			baseColor := [3]float32{float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255}
			untexturedMaterials[partID] = b.AddUntexturedMaterial(
				fmt.Sprintf("%s.part%d", tmpl.Name, partID), baseColor, pm.Material.Ambient.Float32())
		}
	}

	jointCount := len(tmpl.Armature.Parents)
	outerNodes := make([]int, jointCount)
	innerNodes := make([]int, jointCount)
	for joint := 0; joint < jointCount; joint++ {
		var matrix records.AffineMatrix
		if joint < len(tmpl.Transforms.Matrices) {
			matrix = tmpl.Transforms.Matrices[joint]
		}
		outer, inner := b.AddJointChain(fmt.Sprintf("%s.joint%d", tmpl.Name, joint), matrix)
		outerNodes[joint] = outer
		innerNodes[joint] = inner

		costume := defaultCostumes[joint]
		if mesh := meshForPart(tmpl, costume, joint); mesh != nil {
			var textureMat *int
			if len(tmpl.BodyParts.GroupTags) > joint {
				if idx, ok := textureMaterials[int(tmpl.BodyParts.GroupTags[joint])]; ok {
					textureMat = &idx
				}
			}
			materialIdx := materialForPart(partTextured(costume, joint), joint, textureMat, untexturedMaterials)
			meshIdx := b.AddPartMesh(fmt.Sprintf("%s.part%d", tmpl.Name, joint), mesh, materialIdx)
			node := b.AddNode(gltfdoc.Node{Mesh: &meshIdx})
			b.AddChild(inner, node)
		}
	}

	for joint, parent := range tmpl.Armature.Parents {
		if tmpl.Armature.IsRoot(parent) {
			b.AddChild(root, outerNodes[joint])
			continue
		}
		b.AddChild(innerNodes[parent], outerNodes[joint])
	}

	doc, bin := b.Finish()
	return doc, bin, nil
}

func meshForPart(tmpl *TemplateData, costume CostumeData, partID int) *records.ModelMesh {
	if mesh, ok := tmpl.SharedMeshes[partID]; ok {
		return mesh
	}
	if costume.AccessoryMeshes != nil {
		if mesh, ok := costume.AccessoryMeshes[partID]; ok {
			return mesh
		}
	}
	return nil
}

func partTextured(costume CostumeData, partID int) bool {
	pm, ok := costume.PartMaterials[partID]
	return ok && pm.Texture != nil
}

func materialForPart(textured bool, partID int, textureMat *int, untextured map[int]int) *int {
	if textured && textureMat != nil {
		return textureMat
	}
	if idx, ok := untextured[partID]; ok {
		return &idx
	}
	return nil
}
