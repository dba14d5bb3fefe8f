// Copyright (C) 2022-2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package gltfdoc

import (
	"bytes"
	"encoding/binary"
	"math"

	"github.com/lukeshu-labs/chunky2gltf/lib/chunky/records"
)

// Builder accumulates a Document and its backing binary blob. A zero
// Builder is not usable; use NewBuilder.
type Builder struct {
	doc Document
	bin bytes.Buffer
}

func NewBuilder(generator string) *Builder {
	b := &Builder{
		doc: Document{
			Asset:   Asset{Version: "2.0", Generator: generator},
			Scene:   0,
			Scenes:  []Scene{{Name: "Scene", Nodes: nil}},
			Buffers: []Buffer{{}},
		},
	}
	return b
}

// AddRootNode adds a node to the default scene's root list and returns
// its index.
func (b *Builder) AddRootNode(n Node) int {
	idx := b.addNode(n)
	b.doc.Scenes[0].Nodes = append(b.doc.Scenes[0].Nodes, idx)
	return idx
}

// AddNode adds a node without attaching it to any parent; the caller is
// responsible for appending idx to some other node's Children.
func (b *Builder) AddNode(n Node) int {
	return b.addNode(n)
}

func (b *Builder) addNode(n Node) int {
	b.doc.Nodes = append(b.doc.Nodes, n)
	return len(b.doc.Nodes) - 1
}

func (b *Builder) AddChild(parent, child int) {
	b.doc.Nodes[parent].Children = append(b.doc.Nodes[parent].Children, child)
}

// AddJointChain creates the three nested nodes needed per skeleton
// joint: a translate node (outer) containing a rotate node
// containing a scale node (inner), so their composed world transform is
// T * R * S. Attach outer as a child of the joint's parent (or of the
// scene root, for joints whose parent is 65535); attach a mesh to inner.
func (b *Builder) AddJointChain(name string, m records.AffineMatrix) (outer, inner int) {
	scale, rotation, translation := decomposeJoint(m)

	scaleNode := b.AddNode(Node{Name: name + ".scale", Scale: &scale})
	rotateNode := b.AddNode(Node{Name: name + ".rotate", Rotation: &rotation})
	b.AddChild(rotateNode, scaleNode)
	translateNode := b.AddNode(Node{Name: name + ".translate", Translation: &translation})
	b.AddChild(translateNode, rotateNode)

	return translateNode, scaleNode
}

func (b *Builder) pad4() {
	for b.bin.Len()%4 != 0 {
		b.bin.WriteByte(0)
	}
}

func (b *Builder) addBufferView(data []byte, stride, target *int) int {
	offset := b.bin.Len()
	b.bin.Write(data)
	b.pad4()
	b.doc.BufferViews = append(b.doc.BufferViews, BufferView{
		Buffer:     0,
		ByteOffset: offset,
		ByteLength: len(data),
		ByteStride: stride,
		Target:     target,
	})
	return len(b.doc.BufferViews) - 1
}

func intp(v int) *int { return &v }

// AddPartMesh writes one part's geometry: a
// single interleaved attribute buffer (position, normal, UV, each
// single-precision float) with one accessor per attribute pointing into
// it, and a separate zero-padded 16-bit index buffer.
func (b *Builder) AddPartMesh(name string, mesh *records.ModelMesh, materialIdx *int) int {
	const stride = 3*4 + 3*4 + 2*4
	vertexData := make([]byte, 0, len(mesh.Vertices)*stride)

	minPos := [3]float32{math32(mesh.Vertices[0].Position.X), math32(mesh.Vertices[0].Position.Y), math32(mesh.Vertices[0].Position.Z)}
	maxPos := minPos

	var buf [4]byte
	appendF32 := func(v float32) {
		binary.LittleEndian.PutUint32(buf[:], math.Float32bits(v))
		vertexData = append(vertexData, buf[:]...)
	}
	for _, v := range mesh.Vertices {
		px, py, pz := math32(v.Position.X), math32(v.Position.Y), math32(v.Position.Z)
		for i, x := range [3]float32{px, py, pz} {
			if x < minPos[i] {
				minPos[i] = x
			}
			if x > maxPos[i] {
				maxPos[i] = x
			}
		}
		appendF32(px)
		appendF32(py)
		appendF32(pz)
		appendF32(math32(v.Normal.X))
		appendF32(math32(v.Normal.Y))
		appendF32(math32(v.Normal.Z))
		appendF32(v.U)
		appendF32(v.V)
	}

	indexData := make([]byte, 0, len(mesh.Faces)*3*2)
	for _, f := range mesh.Faces {
		for _, vi := range f.VertexIndices {
			binary.LittleEndian.PutUint16(buf[:2], vi)
			indexData = append(indexData, buf[0], buf[1])
		}
	}

	vertexBV := b.addBufferView(vertexData, intp(stride), intp(TargetArrayBuffer))
	indexBV := b.addBufferView(indexData, nil, intp(TargetElementArrayBuffer))

	posAcc := b.addAccessor(Accessor{
		BufferView: vertexBV, ByteOffset: 0, ComponentType: ComponentTypeFloat,
		Count: len(mesh.Vertices), Type: AccessorTypeVec3,
		Min: minPos[:], Max: maxPos[:],
	})
	normAcc := b.addAccessor(Accessor{
		BufferView: vertexBV, ByteOffset: 12, ComponentType: ComponentTypeFloat,
		Count: len(mesh.Vertices), Type: AccessorTypeVec3,
	})
	uvAcc := b.addAccessor(Accessor{
		BufferView: vertexBV, ByteOffset: 24, ComponentType: ComponentTypeFloat,
		Count: len(mesh.Vertices), Type: AccessorTypeVec2,
	})
	idxAcc := b.addAccessor(Accessor{
		BufferView: indexBV, ComponentType: ComponentTypeUnsignedShort,
		Count: len(mesh.Faces) * 3, Type: AccessorTypeScalar,
	})

	prim := Primitive{
		Attributes: map[string]int{"POSITION": posAcc, "NORMAL": normAcc, "TEXCOORD_0": uvAcc},
		Indices:    &idxAcc,
		Material:   materialIdx,
		Mode:       PrimitiveModeTriangles,
	}
	b.doc.Meshes = append(b.doc.Meshes, Mesh{Name: name, Primitives: []Primitive{prim}})
	return len(b.doc.Meshes) - 1
}

func (b *Builder) addAccessor(a Accessor) int {
	b.doc.Accessors = append(b.doc.Accessors, a)
	return len(b.doc.Accessors) - 1
}

// AddImage embeds png bytes as a bufferView-backed image.
func (b *Builder) AddImage(name string, png []byte) int {
	bv := b.addBufferView(png, nil, nil)
	b.doc.Images = append(b.doc.Images, Image{Name: name, MimeType: "image/png", BufferView: intp(bv)})
	return len(b.doc.Images) - 1
}

func (b *Builder) AddTexture(imageIdx int) int {
	b.doc.Textures = append(b.doc.Textures, Texture{Source: intp(imageIdx)})
	return len(b.doc.Textures) - 1
}

// AddTexturedMaterial creates a material referring to textureIdx via the
// base-color slot, for a costume whose atlas PNG exists.
func (b *Builder) AddTexturedMaterial(name string, textureIdx int) int {
	b.doc.Materials = append(b.doc.Materials, Material{
		Name: name,
		PbrMetallicRoughness: &PbrMetallicRoughness{
			BaseColorTexture: &TextureInfo{Index: textureIdx},
		},
	})
	return len(b.doc.Materials) - 1
}

// AddUntexturedMaterial synthesizes a material for an untextured part
//.
func (b *Builder) AddUntexturedMaterial(name string, baseColor [3]float32, ambient float32) int {
	emissive := [3]float32{ambient, ambient, ambient}
	b.doc.Materials = append(b.doc.Materials, Material{
		Name: name,
		PbrMetallicRoughness: &PbrMetallicRoughness{
			BaseColorFactor: &[4]float32{baseColor[0], baseColor[1], baseColor[2], 1},
		},
		EmissiveFactor: &emissive,
	})
	return len(b.doc.Materials) - 1
}

// Finish finalizes the buffer length and returns the assembled document
// plus its binary blob.
func (b *Builder) Finish() (Document, []byte) {
	bin := b.bin.Bytes()
	b.doc.Buffers[0].ByteLength = len(bin)
	return b.doc, bin
}

func math32(f float64) float32 { return float32(f) }
