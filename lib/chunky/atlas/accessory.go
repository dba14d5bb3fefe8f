// Copyright (C) 2022-2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package atlas

// AccessoryResult is one costume's independent accessory pack: each costume has its own mesh and gets its
// own pack layout, so there is no shared CanvasSize across costumes.
type AccessoryResult struct {
	CostumeID int
	Result    Result
	Err       error
}

// PackAccessories runs the MEASURE->VALIDATE->PACK->REMAP->BLIT->
// CLEAR_TRANSFORMS state machine independently for each single-costume
// set, with no cross-costume size-consistency check (VALIDATE trivially
// finds no other costumes to compare against). Callers wanting the
// concurrent fan-out described for this variant run these calls under
// their own goroutine group; this function itself is sequential so it
// stays usable standalone and in tests.
func PackAccessories(sets []Set) []AccessoryResult {
	out := make([]AccessoryResult, len(sets))
	for i, s := range sets {
		var costumeID int
		if len(s.Costumes) > 0 {
			costumeID = s.Costumes[0].ID
		}
		res, err := Pack(s)
		out[i] = AccessoryResult{CostumeID: costumeID, Result: res, Err: err}
	}
	return out
}
