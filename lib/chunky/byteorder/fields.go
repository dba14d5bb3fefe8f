// Copyright (C) 2022-2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package byteorder

// Cursor is a small read cursor over a byte slice, reading fixed-width
// fields according to a chosen Order. It is the workhorse used by every
// record decoder in lib/chunky/records: rather than re-deriving endianness
// per field, a record decoder picks up the Order that Load already
// determined and reads every subsequent field through one Cursor.
type Cursor struct {
	Order Order
	Data  []byte
	Pos   int
}

func NewCursor(order Order, data []byte) *Cursor {
	return &Cursor{Order: order, Data: data}
}

func (c *Cursor) remaining() int { return len(c.Data) - c.Pos }

func (c *Cursor) need(n int) bool { return c.remaining() >= n }

func (c *Cursor) U8() (uint8, bool) {
	if !c.need(1) {
		return 0, false
	}
	v := c.Data[c.Pos]
	c.Pos++
	return v, true
}

func (c *Cursor) I8() (int8, bool) {
	v, ok := c.U8()
	return int8(v), ok
}

func (c *Cursor) U16() (uint16, bool) {
	if !c.need(2) {
		return 0, false
	}
	v := c.Order.ByteOrder().Uint16(c.Data[c.Pos:])
	c.Pos += 2
	return v, true
}

func (c *Cursor) I16() (int16, bool) {
	v, ok := c.U16()
	return int16(v), ok
}

func (c *Cursor) U32() (uint32, bool) {
	if !c.need(4) {
		return 0, false
	}
	v := c.Order.ByteOrder().Uint32(c.Data[c.Pos:])
	c.Pos += 4
	return v, true
}

func (c *Cursor) I32() (int32, bool) {
	v, ok := c.U32()
	return int32(v), ok
}

func (c *Cursor) F32() (float32, bool) {
	v, ok := c.U32()
	if !ok {
		return 0, false
	}
	return float32FromBits(v), true
}

// Bytes consumes and returns the next n raw bytes.
func (c *Cursor) Bytes(n int) ([]byte, bool) {
	if !c.need(n) {
		return nil, false
	}
	v := c.Data[c.Pos : c.Pos+n]
	c.Pos += n
	return v, true
}

// Skip advances the cursor by n bytes without reading them.
func (c *Cursor) Skip(n int) bool {
	if !c.need(n) {
		return false
	}
	c.Pos += n
	return true
}
