// Copyright (C) 2022-2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package compress

import (
	"fmt"

	"github.com/lukeshu-labs/chunky2gltf/lib/chunky/bitio"
)

// maxLengthOnes is the maximum leading-ones run accepted by the length
// field before either CorruptLength (KCDC) or stream termination (KCD2).
const maxLengthOnes = 12

// readLength decodes the length grammar shared by both packed chunk
// formats: leading 1-bits up to maxLengthOnes, a terminating 0, then (if the
// leading-ones count k is nonzero) k more raw bits assembled
// least-significant-bit first. lengthOffset comes from the offset family
// that was (or, for KCD2, will be) paired with this length.
//
// If the leading-ones run reaches maxLengthOnes without a terminating 0,
// saturated is true and no length value is produced; callers decide
// whether that is CorruptLength (KCDC) or a termination signal (KCD2).
func readLength(r *bitio.Reader, lengthOffset int) (length int64, saturated bool, err error) {
	ones, saturated, err := r.ReadUnary(maxLengthOnes)
	if err != nil {
		return 0, false, fmt.Errorf("%w: reading length prefix: %v", ErrCorrupt, err)
	}
	if saturated {
		return 0, true, nil
	}
	if ones == 0 {
		return int64(lengthOffset) + 1, false, nil
	}
	raw, err := r.ReadBits(ones)
	if err != nil {
		return 0, false, fmt.Errorf("%w: reading %d-bit length raw field: %v", ErrCorrupt, ones, err)
	}
	length = int64(raw) + (int64(1) << uint(ones)) + int64(lengthOffset)
	return length, false, nil
}
