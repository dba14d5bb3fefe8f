// Copyright (C) 2022-2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package gltfdoc

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
)

const (
	glbMagic     = 0x46546C67 // "glTF"
	glbVersion   = 2
	glbChunkJSON = 0x4E4F534A // "JSON"
	glbChunkBIN  = 0x004E4942 // "BIN\0"
	glbHeaderLen = 12
	chunkHeaderLen = 8
)

// WriteGLB packages doc and bin as a single binary-container glTF file
//: 12-byte header, a JSON chunk space-padded to 4-byte
// alignment, a BIN chunk zero-padded to 4-byte alignment.
func WriteGLB(doc Document, bin []byte) ([]byte, error) {
	jsonBytes, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshaling glTF document: %w", err)
	}
	for len(jsonBytes)%4 != 0 {
		jsonBytes = append(jsonBytes, ' ')
	}
	paddedBin := append([]byte(nil), bin...)
	for len(paddedBin)%4 != 0 {
		paddedBin = append(paddedBin, 0)
	}

	total := glbHeaderLen + chunkHeaderLen + len(jsonBytes) + chunkHeaderLen + len(paddedBin)

	var out bytes.Buffer
	out.Grow(total)

	writeU32 := func(v uint32) {
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], v)
		out.Write(b[:])
	}

	writeU32(glbMagic)
	writeU32(glbVersion)
	writeU32(uint32(total))

	writeU32(uint32(len(jsonBytes)))
	writeU32(glbChunkJSON)
	out.Write(jsonBytes)

	writeU32(uint32(len(paddedBin)))
	writeU32(glbChunkBIN)
	out.Write(paddedBin)

	return out.Bytes(), nil
}
