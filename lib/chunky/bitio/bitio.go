// Copyright (C) 2022-2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

// Package bitio implements the LSB-first bit-stream reader shared by the
// two chunk decompressors in lib/chunky/compress. It is factored out of
// the decompressors into its own small package, rather than inlining bit
// twiddling into each decoder.
package bitio

import (
	"errors"
	"fmt"
)

// ErrExhausted is returned when a read runs past the end of the
// underlying byte slice.
var ErrExhausted = errors.New("bit stream exhausted")

// Reader consumes bits from a byte slice least-significant-bit first
// within each byte, which is the legacy codec's bit order.
type Reader struct {
	data    []byte
	bytePos int
	bitPos  uint // 0..7, bit index within data[bytePos], LSB = 0
}

func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// BytePos reports the reader's current byte offset; BitPos reports the
// bit offset within that byte (0 = least significant). Neither decoder
// in lib/chunky/compress calls them.
func (r *Reader) BytePos() int { return r.bytePos }
func (r *Reader) BitPos() uint { return r.bitPos }

// AtByteBoundary reports whether the next read will start at bit 0 of a
// byte.
func (r *Reader) AtByteBoundary() bool { return r.bitPos == 0 }

// ReadBit consumes a single bit.
func (r *Reader) ReadBit() (uint32, error) {
	if r.bytePos >= len(r.data) {
		return 0, fmt.Errorf("%w: at byte %d", ErrExhausted, r.bytePos)
	}
	bit := (uint32(r.data[r.bytePos]) >> r.bitPos) & 1
	r.bitPos++
	if r.bitPos == 8 {
		r.bitPos = 0
		r.bytePos++
	}
	return bit, nil
}

// ReadBits consumes n bits (0 <= n <= 32), LSB-first, and assembles them
// into a value where the first bit read is the least-significant bit of
// the result -- this is the "raw" field convention used throughout the
// offset/length fields of the two packed chunk formats.
func (r *Reader) ReadBits(n int) (uint32, error) {
	var v uint32
	for i := 0; i < n; i++ {
		bit, err := r.ReadBit()
		if err != nil {
			return 0, err
		}
		v |= bit << uint(i)
	}
	return v, nil
}

// ReadUnary reads leading 1-bits up to and including a terminating 0-bit,
// stopping early (without consuming a terminator) if maxOnes consecutive
// 1-bits are seen. It returns the count of 1-bits read and whether the
// count reached maxOnes (in which case no terminating 0 was consumed).
func (r *Reader) ReadUnary(maxOnes int) (ones int, saturated bool, err error) {
	for ones < maxOnes {
		bit, err := r.ReadBit()
		if err != nil {
			return ones, false, err
		}
		if bit == 0 {
			return ones, false, nil
		}
		ones++
	}
	return ones, true, nil
}

// ReadByteAligned reads n whole bytes directly from the stream, which must
// currently sit at a byte boundary. The "extended" decoder's literal
// path does not call it; it reads literal bytes through ReadBits.
func (r *Reader) ReadByteAligned(n int) ([]byte, error) {
	if !r.AtByteBoundary() {
		return nil, fmt.Errorf("bitio: ReadByteAligned called off a byte boundary")
	}
	if r.bytePos+n > len(r.data) {
		return nil, fmt.Errorf("%w: need %d bytes at %d", ErrExhausted, n, r.bytePos)
	}
	out := r.data[r.bytePos : r.bytePos+n]
	r.bytePos += n
	return out, nil
}
