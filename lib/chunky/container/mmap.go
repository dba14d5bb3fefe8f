// Copyright (C) 2022-2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package container

import (
	"fmt"
	"os"

	"github.com/edsrzf/mmap-go"
)

// MappedSource is a Source backed by a read-only memory mapping of a file
// on disk, the normal way an archive is opened.
type MappedSource struct {
	file *os.File
	mm   mmap.MMap
}

// OpenMapped maps path read-only and returns a Source over its bytes. The
// caller must Close it when done.
func OpenMapped(path string) (*MappedSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening archive: %w", err)
	}
	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("mapping archive: %w", err)
	}
	return &MappedSource{file: f, mm: m}, nil
}

func (s *MappedSource) Bytes() []byte { return s.mm }
func (s *MappedSource) Size() int64   { return int64(len(s.mm)) }

// Close unmaps the archive and closes the underlying file descriptor.
func (s *MappedSource) Close() error {
	unmapErr := s.mm.Unmap()
	closeErr := s.file.Close()
	if unmapErr != nil {
		return unmapErr
	}
	return closeErr
}
