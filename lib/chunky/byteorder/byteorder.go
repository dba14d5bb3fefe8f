// Copyright (C) 2022-2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

// Package byteorder implements the chunky archive's endianness-polymorphic
// record loader: a record's on-disk layout is little-endian or big-endian,
// and the correct interpretation is discovered from a self-describing
// "byte-order mark" field inside the record itself, rather than from any
// out-of-band flag.
package byteorder

import (
	"encoding/binary"
	"fmt"
)

// Order names which of the two on-disk layouts a record was written with.
type Order int

const (
	LittleEndian Order = iota
	BigEndian
)

func (o Order) ByteOrder() binary.ByteOrder {
	if o == BigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

func (o Order) String() string {
	if o == BigEndian {
		return "big-endian"
	}
	return "little-endian"
}

const (
	markNative = 0x0001
	markSwap   = 0x0100
)

// LoadError wraps a failure encountered while loading a byte-order-tagged
// record, carrying the Go type name of the decoder that failed.
type LoadError struct {
	Decoder string
	Err     error
}

func (e *LoadError) Error() string { return fmt.Sprintf("%s: %v", e.Decoder, e.Err) }
func (e *LoadError) Unwrap() error { return e.Err }

// Decoder is the shape every record-specific loader implements: given the
// raw bytes already reinterpreted with the correct byte order, and the full
// remaining input (for trailing variable-length data), produce a decoded
// value and report how many bytes of `raw` the record took up: its
// fixed-size portion plus any trailing data it decoded.
type Decoder[T any] func(order Order, raw []byte, rest []byte) (val T, consumed int, err error)

// MarkReader locates the 16-bit byte-order mark within a record's raw bytes
// once they have been reinterpreted with some candidate order. It must
// read the same field regardless of candidate order, since the mark's
// position does not move -- only its value's interpretation does.
type MarkReader func(order Order, raw []byte) (mark uint16, ok bool)

// Load implements the three-step byte-order detection protocol:
//  1. Assume little-endian; fail TruncatedHeader if input is short.
//  2. Inspect the mark. 0x0001 confirms little-endian; 0x0100 means
//     re-interpret as big-endian; anything else is UnknownByteOrder.
//  3. Invoke the type-specific decoder with the correctly-oriented bytes.
func Load[T any](name string, data []byte, minLen int, readMark MarkReader, decode Decoder[T]) (T, int, error) {
	var zero T
	if len(data) < minLen {
		return zero, 0, &LoadError{Decoder: name, Err: fmt.Errorf("%w: need %d bytes, have %d", ErrTruncatedHeader, minLen, len(data))}
	}

	mark, ok := readMark(LittleEndian, data)
	if !ok {
		return zero, 0, &LoadError{Decoder: name, Err: ErrTruncatedHeader}
	}

	var order Order
	switch mark {
	case markNative:
		order = LittleEndian
	case markSwap:
		order = BigEndian
	default:
		return zero, 0, &LoadError{Decoder: name, Err: fmt.Errorf("%w: 0x%04x", ErrUnknownByteOrder, mark)}
	}

	val, consumed, err := decode(order, data, data)
	if err != nil {
		return zero, 0, &LoadError{Decoder: name, Err: err}
	}
	return val, consumed, nil
}
