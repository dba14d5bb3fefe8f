// Copyright (C) 2022-2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

// Package palette holds the fixed 256-entry RGB color table shared by
// every emitted indexed PNG.
package palette

import (
	"embed"
	"fmt"
	"image/color"
	"sync"
)

//go:embed default.pal
var paletteFS embed.FS

const (
	entryCount = 256
	entrySize  = 3 // R, G, B
)

var (
	initOnce sync.Once
	initErr  error
	table    color.Palette
)

// Table returns the process-wide color table, loading it from the
// embedded bitmap on first call.
func Table() (color.Palette, error) {
	initOnce.Do(func() {
		raw, err := paletteFS.ReadFile("default.pal")
		if err != nil {
			initErr = fmt.Errorf("palette: %w", err)
			return
		}
		if len(raw) != entryCount*entrySize {
			initErr = fmt.Errorf("palette: expected %d bytes, got %d", entryCount*entrySize, len(raw))
			return
		}
		t := make(color.Palette, entryCount)
		for i := 0; i < entryCount; i++ {
			t[i] = color.RGBA{
				R: raw[i*entrySize+0],
				G: raw[i*entrySize+1],
				B: raw[i*entrySize+2],
				A: 0xFF,
			}
		}
		table = t
	})
	return table, initErr
}

// MustTable is Table, panicking on error. The glTF assembler and the
// atlas PNG writer call Table and propagate its error; nothing in this
// module calls MustTable.
func MustTable() color.Palette {
	t, err := Table()
	if err != nil {
		panic(err)
	}
	return t
}

// Lookup returns the RGB color for a palette index, broadcasting out of
// range indices is not possible since the type is already a byte.
func Lookup(t color.Palette, index uint8) color.RGBA {
	return t[index].(color.RGBA)
}
