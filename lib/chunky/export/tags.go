// Copyright (C) 2022-2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package export

import "github.com/lukeshu-labs/chunky2gltf/lib/chunky/container"

// Child tags resolved off a template chunk and its descendants. "MTRL",
// "TMAP", "TXXF", "TMPL", "BMDL" are named verbatim in the original
// format; the rest (armature, body-part-set, costumes, animation cell,
// animation transforms, the per-costume custom-material chunk) are never
// given a literal tag string, only described by role, so these
// four-letter tags are this reimplementation's choice, consistent with
// every other tag's all-caps four-letter shape.
var (
	tagTemplate            = container.MakeTag("TMPL")
	tagArmature            = container.MakeTag("ARMA")
	tagBodyPartSet         = container.MakeTag("BPST")
	tagCostumes            = container.MakeTag("COST")
	tagAnimationCell       = container.MakeTag("ACEL")
	tagAnimationTransforms = container.MakeTag("ATXF")
	tagCustomMaterial      = container.MakeTag("CMTL")
	tagMaterial            = container.MakeTag("MTRL")
	tagTextureMap          = container.MakeTag("TMAP")
	tagTextureTransform    = container.MakeTag("TXXF")
	tagModelMesh           = container.MakeTag("BMDL")
)

// Fixed child ordinals off the template chunk itself.
const ordinalTemplateSingleton = 0
