// Copyright (C) 2022-2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package records

import (
	"fmt"

	"github.com/lukeshu-labs/chunky2gltf/lib/chunky/byteorder"
)

// Vec3 is a position/normal/direction in mesh space.
type Vec3 struct{ X, Y, Z float64 }

// Vertex is one model-mesh vertex record.
type Vertex struct {
	Position Vec3
	U, V     float32 // texture coordinates
	PaletteIndex uint8
	R, G, B  uint8
	Normal   Vec3 // zero until reconstructed, if the mesh had Radius == 0
}

// Face is one model-mesh triangle record.
type Face struct {
	VertexIndices [3]uint16
	EdgeIndices   [3]uint16
	MaterialID    uint16
	Smoothing     uint16
	Flags         uint16
	Normal        Vec3
	PlaneD        float64
}

// ModelMesh is a decoded "BMDL" chunk. Radius == 0 signals
// that Normal/PlaneD on every Face and Normal on every Vertex have not yet
// been computed, and lib/chunky/meshnorm must reconstruct them.
type ModelMesh struct {
	Radius      Fixed16_16
	BoundsMin   Vec3
	BoundsMax   Vec3
	Pivot       Vec3
	Vertices    []Vertex
	Faces       []Face
}

func readVec3Fixed(c *byteorder.Cursor) (Vec3, bool) {
	x, ok := c.I32()
	if !ok {
		return Vec3{}, false
	}
	y, ok := c.I32()
	if !ok {
		return Vec3{}, false
	}
	z, ok := c.I32()
	if !ok {
		return Vec3{}, false
	}
	return Vec3{Fixed16_16(x).Float64(), Fixed16_16(y).Float64(), Fixed16_16(z).Float64()}, true
}

func readVec3Frac(c *byteorder.Cursor) (Vec3, bool) {
	x, ok := c.I16()
	if !ok {
		return Vec3{}, false
	}
	y, ok := c.I16()
	if !ok {
		return Vec3{}, false
	}
	z, ok := c.I16()
	if !ok {
		return Vec3{}, false
	}
	return Vec3{float64(Frac15(x).Float32()), float64(Frac15(y).Float32()), float64(Frac15(z).Float32())}, true
}

const modelMeshFixedLen = 2 + 4 + 4 + 4 + 4*3 + 4*3 + 4*3 // mark, vertexCount, faceCount, radius, bounds min/max, pivot

func decodeModelMesh(order byteorder.Order, raw []byte, rest []byte) (ModelMesh, int, error) {
	c := byteorder.NewCursor(order, raw)
	c.Skip(2) // byte-order mark
	vertexCount, ok := c.U32()
	if !ok {
		return ModelMesh{}, 0, byteorder.ErrTruncatedHeader
	}
	faceCount, ok := c.U32()
	if !ok {
		return ModelMesh{}, 0, byteorder.ErrTruncatedHeader
	}
	radius, ok := c.I32()
	if !ok {
		return ModelMesh{}, 0, byteorder.ErrTruncatedHeader
	}
	boundsMin, ok := readVec3Fixed(c)
	if !ok {
		return ModelMesh{}, 0, byteorder.ErrTruncatedHeader
	}
	boundsMax, ok := readVec3Fixed(c)
	if !ok {
		return ModelMesh{}, 0, byteorder.ErrTruncatedHeader
	}
	pivot, ok := readVec3Fixed(c)
	if !ok {
		return ModelMesh{}, 0, byteorder.ErrTruncatedHeader
	}

	body := byteorder.NewCursor(order, rest[c.Pos:])

	vertices := make([]Vertex, vertexCount)
	for i := range vertices {
		pos, ok := readVec3Fixed(body)
		if !ok {
			return ModelMesh{}, 0, fmt.Errorf("%w: vertex %d position", ErrTruncated, i)
		}
		u, ok := body.U16()
		if !ok {
			return ModelMesh{}, 0, fmt.Errorf("%w: vertex %d texcoord", ErrTruncated, i)
		}
		v, ok := body.U16()
		if !ok {
			return ModelMesh{}, 0, fmt.Errorf("%w: vertex %d texcoord", ErrTruncated, i)
		}
		paletteIndex, ok := body.U8()
		if !ok {
			return ModelMesh{}, 0, fmt.Errorf("%w: vertex %d palette index", ErrTruncated, i)
		}
		r, ok := body.U8()
		if !ok {
			return ModelMesh{}, 0, fmt.Errorf("%w: vertex %d color", ErrTruncated, i)
		}
		g, ok := body.U8()
		if !ok {
			return ModelMesh{}, 0, fmt.Errorf("%w: vertex %d color", ErrTruncated, i)
		}
		b, ok := body.U8()
		if !ok {
			return ModelMesh{}, 0, fmt.Errorf("%w: vertex %d color", ErrTruncated, i)
		}
		normal, ok := readVec3Frac(body)
		if !ok {
			return ModelMesh{}, 0, fmt.Errorf("%w: vertex %d normal", ErrTruncated, i)
		}
		vertices[i] = Vertex{
			Position:     pos,
			U:            UFrac16(u).Float32(),
			V:            UFrac16(v).Float32(),
			PaletteIndex: paletteIndex,
			R:            r,
			G:            g,
			B:            b,
			Normal:       normal,
		}
	}

	faces := make([]Face, faceCount)
	for i := range faces {
		var vi [3]uint16
		for k := 0; k < 3; k++ {
			x, ok := body.U16()
			if !ok {
				return ModelMesh{}, 0, fmt.Errorf("%w: face %d vertex index", ErrTruncated, i)
			}
			vi[k] = x
		}
		var ei [3]uint16
		for k := 0; k < 3; k++ {
			x, ok := body.U16()
			if !ok {
				return ModelMesh{}, 0, fmt.Errorf("%w: face %d edge index", ErrTruncated, i)
			}
			ei[k] = x
		}
		materialID, ok := body.U16()
		if !ok {
			return ModelMesh{}, 0, fmt.Errorf("%w: face %d material id", ErrTruncated, i)
		}
		smoothing, ok := body.U16()
		if !ok {
			return ModelMesh{}, 0, fmt.Errorf("%w: face %d smoothing", ErrTruncated, i)
		}
		flags, ok := body.U16()
		if !ok {
			return ModelMesh{}, 0, fmt.Errorf("%w: face %d flags", ErrTruncated, i)
		}
		normal, ok := readVec3Frac(body)
		if !ok {
			return ModelMesh{}, 0, fmt.Errorf("%w: face %d normal", ErrTruncated, i)
		}
		planeD, ok := body.I32()
		if !ok {
			return ModelMesh{}, 0, fmt.Errorf("%w: face %d plane d", ErrTruncated, i)
		}
		faces[i] = Face{
			VertexIndices: vi,
			EdgeIndices:   ei,
			MaterialID:    materialID,
			Smoothing:     smoothing,
			Flags:         flags,
			Normal:        normal,
			PlaneD:        Fixed16_16(planeD).Float64(),
		}
	}

	return ModelMesh{
		Radius:    Fixed16_16(radius),
		BoundsMin: boundsMin,
		BoundsMax: boundsMax,
		Pivot:     pivot,
		Vertices:  vertices,
		Faces:     faces,
	}, c.Pos + body.Pos, nil
}

// DecodeModelMesh decodes a "BMDL" chunk's bytes.
func DecodeModelMesh(data []byte) (ModelMesh, error) {
	m, _, err := byteorder.Load("records.ModelMesh", data, modelMeshFixedLen, leadingMark, decodeModelMesh)
	return m, err
}
