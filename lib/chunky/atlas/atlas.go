// Copyright (C) 2022-2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

// Package atlas implements the texture atlas packer and UV remapper
//: usage-bounds analysis, rectangle packing by binary
// search over canvas sizes, UV remapping, and palette-indexed PNG
// emission.
package atlas

import (
	"fmt"

	"github.com/lukeshu-labs/chunky2gltf/lib/chunky/records"
)

// Part is one body-part-set position's shared mesh, referenced by the
// set's first frame.
type Part struct {
	ID   int
	Mesh *records.ModelMesh
}

// PartMaterial is one costume's material assignment for a part: Texture
// is nil for an untextured part.
type PartMaterial struct {
	Material  records.Material
	TextureKey string // identifies the underlying texture map for rectangle union; "" if untextured
	Texture   *records.TextureMap
	Transform records.TextureTransform
}

// Costume is one set of per-part material assignments.
type Costume struct {
	ID        int
	PartMats  map[int]PartMaterial // part ID -> material
}

// Set is the atlas packer's full input for one (template, body-part-set)
// pair.
type Set struct {
	Parts    []Part
	Costumes []Costume
}

// Diagnostic is a non-fatal finding surfaced during packing.
type Diagnostic struct {
	Costume int
	Part    int
	Reason  string
}

// Result is the outcome of packing one Set.
type Result struct {
	CanvasSize  int
	Atlases     map[int][]byte // costume ID -> size*size palette-index canvas, only for valid, textured costumes
	Diagnostics []Diagnostic
}

var ErrPackingFailed = fmt.Errorf("packing failed: no canvas size up to %d fits every rectangle", maxCanvasSize)

// Pack runs the atlas state machine: MEASURE(first costume) ->
// VALIDATE(others) -> PACK -> REMAP -> BLIT(per valid costume) ->
// CLEAR_TRANSFORMS. It mutates every UV on every referenced mesh in
// place. If MEASURE finds no textured parts, call PackAccessories instead.
func Pack(set Set) (Result, error) {
	measurements := measure(set)
	if len(measurements) == 0 {
		return Result{}, nil
	}

	diagnostics := validate(set, measurements)

	rects, texOrder := collectRects(measurements)
	placements, size, err := packRects(rects)
	if err != nil {
		return Result{}, err
	}

	locByTex := make(map[string]placement, len(texOrder))
	for i, key := range texOrder {
		locByTex[key] = placements[i]
	}

	remapUVs(set, measurements, locByTex, size)

	atlases := make(map[int][]byte)
	for _, costume := range set.Costumes {
		if isDiagnosed(diagnostics, costume.ID) {
			continue
		}
		canvas, ok := blitCostume(set, costume, measurements, locByTex, size)
		if ok {
			atlases[costume.ID] = canvas
		}
	}

	clearTransforms(set)

	return Result{CanvasSize: size, Atlases: atlases, Diagnostics: diagnostics}, nil
}

func isDiagnosed(diags []Diagnostic, costumeID int) bool {
	for _, d := range diags {
		if d.Costume == costumeID {
			return true
		}
	}
	return false
}

// clearTransforms implements step 4's closing note: "after remapping, all
// references henceforth use identity texture transforms".
func clearTransforms(set Set) {
	for _, costume := range set.Costumes {
		for partID, mat := range costume.PartMats {
			mat.Transform = records.Identity()
			costume.PartMats[partID] = mat
		}
	}
}
