// Copyright (C) 2022-2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/datawire/dlib/dgroup"
	"github.com/datawire/dlib/dlog"

	"github.com/lukeshu-labs/chunky2gltf/lib/chunky/atlas"
	"github.com/lukeshu-labs/chunky2gltf/lib/chunky/container"
	"github.com/lukeshu-labs/chunky2gltf/lib/chunky/gltfdoc"
	"github.com/lukeshu-labs/chunky2gltf/lib/util"
)

// ExportAll exports every top-level template in archive, one goroutine
// per template. If names is non-empty, only templates whose chunk name
// appears in it are exported.
func ExportAll(ctx context.Context, archive *container.Archive, outDir string, names []string) error {
	want := map[string]bool{}
	for _, n := range names {
		want[n] = true
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	grp := dgroup.NewGroup(ctx, dgroup.GroupConfig{})
	for _, entry := range archive.Templates() {
		entry := entry
		if len(want) > 0 && !want[entry.Name] {
			continue
		}
		grp.Go(entry.Name, func(ctx context.Context) error {
			ctx = dlog.WithField(ctx, "chunky.template", entry.Name)
			dlog.Infof(ctx, "exporting template")
			if err := ExportTemplate(ctx, archive, entry, outDir); err != nil {
				return fmt.Errorf("template %s: %w", entry.Name, err)
			}
			return nil
		})
	}
	return grp.Wait()
}

// ExportTemplate runs the per-template pipeline: load every dependent
// chunk, pack each body-part set's atlas concurrently, remap UVs, then
// assemble and write the .glb plus every costume's PNG. A costume's
// material-chunk ordinal is unique across the whole template (it is
// resolved off the template entry, not off its owning set), so every
// set's packed atlases and diagnostics merge into one flat
// costume-ID-keyed result with no risk of collision.
func ExportTemplate(ctx context.Context, archive *container.Archive, entry container.IndexEntry, outDir string) error {
	tmpl, err := LoadTemplate(ctx, archive, entry)
	if err != nil {
		return err
	}

	atlases := map[int][]byte{}
	sizes := map[int]int{}
	var diagnostics []atlas.Diagnostic
	var mu sync.Mutex
	merge := func(id int, canvas []byte, size int) {
		mu.Lock()
		defer mu.Unlock()
		atlases[id] = canvas
		sizes[id] = size
	}

	if tmpl.IsAccessoryVariant() {
		sets := tmpl.BuildAccessorySets()
		results := make([]atlas.AccessoryResult, len(sets))
		grp := dgroup.NewGroup(ctx, dgroup.GroupConfig{})
		for i, set := range sets {
			i, set := i, set
			grp.Go(fmt.Sprintf("pack-accessory-%d", i), func(ctx context.Context) error {
				results[i] = atlas.PackAccessories([]atlas.Set{set})[0]
				return nil
			})
		}
		if err := grp.Wait(); err != nil {
			return err
		}
		for _, r := range results {
			if r.Err != nil {
				return fmt.Errorf("packing accessory costume %d: %w", r.CostumeID, r.Err)
			}
			for id, canvas := range r.Result.Atlases {
				merge(id, canvas, r.Result.CanvasSize)
			}
			diagnostics = append(diagnostics, r.Result.Diagnostics...)
		}
	} else {
		sets := tmpl.BuildSharedAtlasSets()
		results := make([]atlas.Result, len(sets))
		grp := dgroup.NewGroup(ctx, dgroup.GroupConfig{})
		for i, set := range sets {
			i, set := i, set
			grp.Go(fmt.Sprintf("pack-set-%d", i), func(ctx context.Context) error {
				result, err := atlas.Pack(set)
				if err != nil {
					return fmt.Errorf("packing atlas for body-part set %d: %w", i, err)
				}
				results[i] = result
				return nil
			})
		}
		if err := grp.Wait(); err != nil {
			return err
		}
		for _, result := range results {
			for id, canvas := range result.Atlases {
				merge(id, canvas, result.CanvasSize)
			}
			diagnostics = append(diagnostics, result.Diagnostics...)
		}
	}

	for _, d := range diagnostics {
		dlog.Warnf(ctx, "costume %d part %d: %s", d.Costume, d.Part, d.Reason)
	}

	doc, bin, err := AssembleGLTF(tmpl, atlases, sizes)
	if err != nil {
		return fmt.Errorf("assembling glTF: %w", err)
	}
	glb, err := gltfdoc.WriteGLB(doc, bin)
	if err != nil {
		return fmt.Errorf("writing glb: %w", err)
	}

	if err := os.WriteFile(filepath.Join(outDir, tmpl.Name+".glb"), glb, 0o644); err != nil {
		return fmt.Errorf("writing %s.glb: %w", tmpl.Name, err)
	}

	for _, costumeID := range util.SortedMapKeys(atlases) {
		canvas := atlases[costumeID]
		png, err := atlas.EncodePNG(canvas, sizes[costumeID])
		if err != nil {
			return fmt.Errorf("encoding costume %d PNG: %w", costumeID, err)
		}
		name := fmt.Sprintf("%s.%03d.png", tmpl.Name, costumeID)
		if err := os.WriteFile(filepath.Join(outDir, name), png, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", name, err)
		}
	}

	return nil
}
