// Copyright (C) 2022-2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package byteorder_test

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lukeshu-labs/chunky2gltf/lib/chunky/byteorder"
)

type sample struct {
	Mark  uint16
	Value uint32
}

func encode(order binary.ByteOrder, mark uint16, value uint32) []byte {
	buf := make([]byte, 6)
	order.PutUint16(buf[0:2], mark)
	order.PutUint32(buf[2:6], value)
	return buf
}

func decodeSample(order byteorder.Order, raw []byte, rest []byte) (sample, int, error) {
	c := byteorder.NewCursor(order, raw)
	mark, _ := c.U16()
	value, ok := c.U32()
	if !ok {
		return sample{}, 0, byteorder.ErrTruncatedHeader
	}
	return sample{Mark: mark, Value: value}, c.Pos, nil
}

func readMark(order byteorder.Order, raw []byte) (uint16, bool) {
	if len(raw) < 2 {
		return 0, false
	}
	return order.ByteOrder().Uint16(raw[:2]), true
}

func TestEndiannessSymmetry(t *testing.T) {
	le := encode(binary.LittleEndian, 0x0001, 0xdeadbeef)
	be := encode(binary.BigEndian, 0x0001, 0xdeadbeef)

	gotLE, nLE, err := byteorder.Load("sample", le, 6, readMark, decodeSample)
	require.NoError(t, err)
	gotBE, nBE, err := byteorder.Load("sample", be, 6, readMark, decodeSample)
	require.NoError(t, err)

	assert.Equal(t, gotLE.Value, gotBE.Value)
	assert.Equal(t, nLE, nBE)
	assert.EqualValues(t, 0xdeadbeef, gotLE.Value)
}

func TestUnknownByteOrder(t *testing.T) {
	buf := encode(binary.LittleEndian, 0x4242, 1)
	_, _, err := byteorder.Load("sample", buf, 6, readMark, decodeSample)
	require.Error(t, err)
	assert.ErrorIs(t, err, byteorder.ErrUnknownByteOrder)
}

func TestTruncatedHeader(t *testing.T) {
	_, _, err := byteorder.Load("sample", []byte{0x01}, 6, readMark, decodeSample)
	require.Error(t, err)
	assert.ErrorIs(t, err, byteorder.ErrTruncatedHeader)
}
