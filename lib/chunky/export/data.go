// Copyright (C) 2022-2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

// Package export orchestrates one template at a time: collect its
// dependent chunks, drive the atlas packer, then drive the glTF
// assembler.
package export

import "github.com/lukeshu-labs/chunky2gltf/lib/chunky/records"

// PartMaterial is one costume's resolved material for one body part: a
// base Material plus, if the part is textured, the texture map and
// transform resolved from its "MTRL" child's "TMAP"/"TXXF" children.
type PartMaterial struct {
	Material  records.Material
	Texture   *records.TextureMap
	Transform records.TextureTransform
	TextureKey string // archive-unique key for atlas rectangle union ("" if untextured)
}

// CostumeData is one costume's resolved per-part materials and, in the
// accessory variant, its own independent meshes. ID is the costume's
// custom-material-chunk ordinal off the template (one namespace shared by
// every group), i.e. the "material_index" value from its owning group's
// Costumes.MaterialIDs entry.
type CostumeData struct {
	ID              int
	PartMaterials   map[int]PartMaterial      // body-part ordinal -> material
	AccessoryMeshes map[int]*records.ModelMesh // body-part ordinal -> mesh, accessory variant only
}

// GroupData is one body-part set's parts and costume variants. PartIDs
// holds the set's global body-part ordinals in local (authoring) order;
// a part's position in PartIDs is the locally-renumbered index used to
// resolve that part's MTRL/BMDL child off a costume's material chunk.
type GroupData struct {
	SetID    int
	PartIDs  []int
	Costumes []CostumeData
}

// TemplateData is every chunk the orchestrator collected for one template,
// ready to hand to the atlas packer and glTF assembler.
type TemplateData struct {
	Name       string
	Armature   records.Armature
	BodyParts  records.BodyPartSet
	Costumes   records.Costumes
	Transforms records.AnimationTransforms
	// SharedMeshes maps body-part ordinal -> mesh, for the non-accessory
	// variant's "mesh referenced by the set's first frame".
	SharedMeshes map[int]*records.ModelMesh
	Groups       []GroupData
}

// IsAccessoryVariant reports whether this template's parts carry no
// shared meshes, meaning each costume supplies its own accessory meshes
// instead.
func (t *TemplateData) IsAccessoryVariant() bool {
	return len(t.SharedMeshes) == 0
}

