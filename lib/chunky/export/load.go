// Copyright (C) 2022-2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package export

import (
	"context"
	"fmt"
	"sync"

	"github.com/datawire/dlib/dgroup"
	"github.com/datawire/dlib/dlog"

	"github.com/lukeshu-labs/chunky2gltf/lib/chunky/container"
	"github.com/lukeshu-labs/chunky2gltf/lib/chunky/meshnorm"
	"github.com/lukeshu-labs/chunky2gltf/lib/chunky/records"
)

// resolveChild looks up entry's (ordinal, tag) child and its IndexEntry in
// one step.
func resolveChild(archive *container.Archive, entry container.IndexEntry, ordinal uint32, tag container.Tag) (container.IndexEntry, bool, error) {
	id, ok := archive.GetChild(entry, ordinal, tag)
	if !ok {
		return container.IndexEntry{}, false, nil
	}
	child, ok := archive.Lookup(id)
	if !ok {
		return container.IndexEntry{}, false, fmt.Errorf("%w: child %s listed but not indexed", container.ErrChildNotFound, id)
	}
	return child, true, nil
}

// LoadTemplate resolves every chunk a template depends on: the ordinal-0
// singleton records, then, for each body-part ordinal, the template's
// "BMDL" child at that ordinal as a shared mesh, then per-costume
// per-part materials and accessory meshes (one goroutine per costume).
func LoadTemplate(ctx context.Context, archive *container.Archive, entry container.IndexEntry) (*TemplateData, error) {
	data := &TemplateData{Name: entry.Name}

	if err := loadSingletons(archive, entry, data); err != nil {
		return nil, err
	}

	data.SharedMeshes = make(map[int]*records.ModelMesh)
	for partID := range data.BodyParts.GroupTags {
		child, ok, err := resolveChild(archive, entry, uint32(partID), tagModelMesh)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		mesh, err := loadMesh(archive, child)
		if err != nil {
			return nil, fmt.Errorf("template %s: shared mesh for part %d: %w", entry.Name, partID, err)
		}
		data.SharedMeshes[partID] = mesh
	}

	groups, err := loadCostumes(ctx, archive, entry, data)
	if err != nil {
		return nil, err
	}
	data.Groups = groups

	return data, nil
}

func loadSingletons(archive *container.Archive, entry container.IndexEntry, data *TemplateData) error {
	if child, ok, err := resolveChild(archive, entry, ordinalTemplateSingleton, tagArmature); err != nil {
		return err
	} else if ok {
		raw, err := archive.GetChunk(child)
		if err != nil {
			return err
		}
		data.Armature, err = records.DecodeArmature(raw)
		if err != nil {
			return fmt.Errorf("template %s: armature: %w", entry.Name, err)
		}
	}

	if child, ok, err := resolveChild(archive, entry, ordinalTemplateSingleton, tagBodyPartSet); err != nil {
		return err
	} else if ok {
		raw, err := archive.GetChunk(child)
		if err != nil {
			return err
		}
		data.BodyParts, err = records.DecodeBodyPartSet(raw)
		if err != nil {
			return fmt.Errorf("template %s: body-part set: %w", entry.Name, err)
		}
	}

	if child, ok, err := resolveChild(archive, entry, ordinalTemplateSingleton, tagCostumes); err != nil {
		return err
	} else if ok {
		raw, err := archive.GetChunk(child)
		if err != nil {
			return err
		}
		data.Costumes, err = records.DecodeCostumes(raw)
		if err != nil {
			return fmt.Errorf("template %s: costumes: %w", entry.Name, err)
		}
	}

	if child, ok, err := resolveChild(archive, entry, ordinalTemplateSingleton, tagAnimationTransforms); err != nil {
		return err
	} else if ok {
		raw, err := archive.GetChunk(child)
		if err != nil {
			return err
		}
		data.Transforms, err = records.DecodeAnimationTransforms(raw)
		if err != nil {
			return fmt.Errorf("template %s: animation transforms: %w", entry.Name, err)
		}
	}

	return nil
}

func loadMesh(archive *container.Archive, entry container.IndexEntry) (*records.ModelMesh, error) {
	raw, err := archive.GetChunk(entry)
	if err != nil {
		return nil, err
	}
	mesh, err := records.DecodeModelMesh(raw)
	if err != nil {
		return nil, err
	}
	if mesh.Radius == 0 {
		meshnorm.Reconstruct(&mesh)
	}
	return &mesh, nil
}

// loadCostumes partitions the template's body parts by group tag, then
// resolves, in one goroutine per (body-part set, costume) pair, that
// pair's custom-material chunk, per-part materials and accessory meshes;
// the parts of one costume are loaded sequentially within its goroutine.
// Costumes.MaterialIDs[s] lists set s's costumes, in order, as CMTL
// chunk ordinals ("material index"); parts belonging to set s are
// renumbered locally (0..len(partIDs)) when resolving MTRL/BMDL children
// off a costume's material chunk.
func loadCostumes(ctx context.Context, archive *container.Archive, entry container.IndexEntry, tmpl *TemplateData) ([]GroupData, error) {
	grp := dgroup.NewGroup(ctx, dgroup.GroupConfig{})
	var mu sync.Mutex
	groups := make([]GroupData, len(tmpl.Costumes.MaterialIDs))

	for setID, materialIndices := range tmpl.Costumes.MaterialIDs {
		setID, materialIndices := setID, materialIndices
		partIDs := tmpl.BodyParts.PartsInGroup(uint16(setID))
		costumes := make([]CostumeData, len(materialIndices))
		groups[setID] = GroupData{SetID: setID, PartIDs: partIDs, Costumes: costumes}

		for variant, materialIndex := range materialIndices {
			variant, costumeID := variant, int(materialIndex)
			grp.Go(fmt.Sprintf("set-%d-costume-%d", setID, costumeID), func(ctx context.Context) error {
				ctx = dlog.WithField(ctx, "chunky.set", setID)
				ctx = dlog.WithField(ctx, "chunky.costume", costumeID)
				cd, err := loadOneCostume(ctx, archive, entry, costumeID, partIDs, tmpl)
				if err != nil {
					return fmt.Errorf("template %s set %d costume %d: %w", entry.Name, setID, costumeID, err)
				}
				mu.Lock()
				costumes[variant] = cd
				mu.Unlock()
				return nil
			})
		}
	}

	if err := grp.Wait(); err != nil {
		return nil, err
	}
	return groups, nil
}

func loadOneCostume(ctx context.Context, archive *container.Archive, entry container.IndexEntry, costumeID int, partIDs []int, tmpl *TemplateData) (CostumeData, error) {
	cd := CostumeData{ID: costumeID, PartMaterials: map[int]PartMaterial{}}

	custom, hasCustom, err := resolveChild(archive, entry, uint32(costumeID), tagCustomMaterial)
	if err != nil {
		return CostumeData{}, err
	}
	materialSource := entry
	if hasCustom {
		materialSource = custom
		dlog.Debugf(ctx, "using custom-material chunk %s", custom.Name)
	}

	for local, partID := range partIDs {
		mat, ok, err := resolveChild(archive, materialSource, uint32(local), tagMaterial)
		if err != nil {
			return CostumeData{}, err
		}
		if !ok {
			continue
		}
		pm, err := loadPartMaterial(archive, mat)
		if err != nil {
			return CostumeData{}, fmt.Errorf("part %d: %w", partID, err)
		}
		cd.PartMaterials[partID] = pm
	}

	if isAccessoryVariant(archive, materialSource, partIDs, tmpl) {
		cd.AccessoryMeshes = map[int]*records.ModelMesh{}
		for local, partID := range partIDs {
			child, ok, err := resolveChild(archive, materialSource, uint32(local), tagModelMesh)
			if err != nil {
				return CostumeData{}, err
			}
			if !ok {
				continue
			}
			mesh, err := loadMesh(archive, child)
			if err != nil {
				return CostumeData{}, fmt.Errorf("accessory mesh for part %d: %w", partID, err)
			}
			cd.AccessoryMeshes[partID] = mesh
		}
	}

	return cd, nil
}

// isAccessoryVariant reports whether materialSource carries its own
// "BMDL" children (the accessory variant) rather than relying on the
// template's shared meshes. local indices, not global part ordinals,
// index materialSource's children.
func isAccessoryVariant(archive *container.Archive, materialSource container.IndexEntry, partIDs []int, tmpl *TemplateData) bool {
	if len(tmpl.SharedMeshes) > 0 {
		return false
	}
	for local := range partIDs {
		if _, ok := archive.GetChild(materialSource, uint32(local), tagModelMesh); ok {
			return true
		}
	}
	return false
}

func loadPartMaterial(archive *container.Archive, matEntry container.IndexEntry) (PartMaterial, error) {
	raw, err := archive.GetChunk(matEntry)
	if err != nil {
		return PartMaterial{}, err
	}
	material, err := records.DecodeMaterial(raw)
	if err != nil {
		return PartMaterial{}, fmt.Errorf("material: %w", err)
	}
	pm := PartMaterial{Material: material, Transform: records.Identity()}

	if texEntry, ok, err := resolveChild(archive, matEntry, ordinalTemplateSingleton, tagTextureMap); err != nil {
		return PartMaterial{}, err
	} else if ok {
		texRaw, err := archive.GetChunk(texEntry)
		if err != nil {
			return PartMaterial{}, err
		}
		tex, err := records.DecodeTextureMap(texRaw)
		if err != nil {
			return PartMaterial{}, fmt.Errorf("texture map: %w", err)
		}
		pm.Texture = &tex
		pm.TextureKey = fmt.Sprintf("%s#%d", texEntry.ID.Tag, texEntry.ID.Number)

		if xfEntry, ok, err := resolveChild(archive, matEntry, ordinalTemplateSingleton, tagTextureTransform); err != nil {
			return PartMaterial{}, err
		} else if ok {
			xfRaw, err := archive.GetChunk(xfEntry)
			if err != nil {
				return PartMaterial{}, err
			}
			pm.Transform, err = records.DecodeTextureTransform(xfRaw)
			if err != nil {
				return PartMaterial{}, fmt.Errorf("texture transform: %w", err)
			}
		}
	}

	return pm, nil
}
