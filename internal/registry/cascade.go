package registry

import (
	"maps"
	"slices"
)

// RenamePrinciple renames a principle and moves its reviews on every asset.
// It returns the sorted names of the assets whose reviews moved.
func (r *Registry) RenamePrinciple(oldName, newName string) ([]string, error) {
	if err := r.checkRenamable(KindPrinciple, oldName, newName); err != nil {
		return nil, err
	}

	ts := r.touch()
	p := r.Principles[oldName]
	delete(r.Principles, oldName)
	p.ShortName = newName
	p.LastModified = ts
	r.Principles[newName] = p

	affected := r.assetsWhere(func(ref AssetReference) bool {
		_, ok := ref.PrincipleReviews[oldName]
		return ok
	})
	for _, name := range affected {
		ref := r.AssetReferences[name]
		reviews := maps.Clone(ref.PrincipleReviews)
		reviews[newName] = reviews[oldName]
		delete(reviews, oldName)
		ref.PrincipleReviews = reviews
		ref.LastModified = ts
		r.AssetReferences[name] = ref
	}
	return affected, nil
}

// RenameEntity renames an entity and repoints the assets that belong to it.
func (r *Registry) RenameEntity(oldName, newName string) ([]string, error) {
	if err := r.checkRenamable(KindEntity, oldName, newName); err != nil {
		return nil, err
	}

	ts := r.touch()
	e := r.Entities[oldName]
	delete(r.Entities, oldName)
	e.ShortName = newName
	e.LastModified = ts
	r.Entities[newName] = e

	affected := r.assetsWhere(func(ref AssetReference) bool { return ref.Entity == oldName })
	for _, name := range affected {
		ref := r.AssetReferences[name]
		ref.Entity = newName
		ref.LastModified = ts
		r.AssetReferences[name] = ref
	}
	return affected, nil
}

// RenameAssetType renames an asset type and repoints the assets of that type.
func (r *Registry) RenameAssetType(oldName, newName string) ([]string, error) {
	if err := r.checkRenamable(KindAssetType, oldName, newName); err != nil {
		return nil, err
	}

	ts := r.touch()
	at := r.AssetTypes[oldName]
	delete(r.AssetTypes, oldName)
	at.ShortName = newName
	at.LastModified = ts
	r.AssetTypes[newName] = at

	affected := r.assetsWhere(func(ref AssetReference) bool { return ref.AssetType == oldName })
	for _, name := range affected {
		ref := r.AssetReferences[name]
		ref.AssetType = newName
		ref.LastModified = ts
		r.AssetReferences[name] = ref
	}
	return affected, nil
}

// RenameAssetReference renames an asset, keeping its reviews. The only
// affected asset is the renamed one.
func (r *Registry) RenameAssetReference(oldName, newName string) ([]string, error) {
	if err := r.checkRenamable(KindAssetReference, oldName, newName); err != nil {
		return nil, err
	}

	ref := r.AssetReferences[oldName]
	delete(r.AssetReferences, oldName)
	ref.ShortName = newName
	ref.LastModified = r.touch()
	r.AssetReferences[newName] = ref
	return []string{newName}, nil
}

// RenameCommand renames a command record. A built-in command remembers the
// name it was first registered under.
func (r *Registry) RenameCommand(oldName, newName string) error {
	cmd, ok := r.Commands[oldName]
	if !ok {
		return notFound(KindCommand, oldName, r.Names(KindCommand))
	}
	if newName == "" {
		return invalidf("command name cannot be empty")
	}
	if _, taken := r.Commands[newName]; taken {
		return &NameCollisionError{Name: newName, ExistingKind: KindCommand}
	}

	if cmd.BuiltIn && cmd.OriginalName == "" {
		cmd.OriginalName = oldName
	}
	delete(r.Commands, oldName)
	cmd.Name = newName
	cmd.LastModified = r.touch()
	r.Commands[newName] = cmd
	return nil
}

// Rename resolves oldName with FindItemType and renames it in its own
// collection.
func (r *Registry) Rename(oldName, newName string) (Kind, []string, error) {
	kind, ok := r.FindItemType(oldName)
	if !ok {
		return 0, nil, &NotFoundError{Kind: "item", Name: oldName, Available: r.AllNames()}
	}

	var affected []string
	var err error
	switch kind {
	case KindPrinciple:
		affected, err = r.RenamePrinciple(oldName, newName)
	case KindEntity:
		affected, err = r.RenameEntity(oldName, newName)
	case KindAssetType:
		affected, err = r.RenameAssetType(oldName, newName)
	case KindAssetReference:
		affected, err = r.RenameAssetReference(oldName, newName)
	}
	return kind, affected, err
}

// DeletePrinciple removes a principle and its reviews from every asset.
// It returns the sorted names of assets that lost a review.
func (r *Registry) DeletePrinciple(name string) ([]string, error) {
	if !r.Has(KindPrinciple, name) {
		return nil, notFound(KindPrinciple, name, r.Names(KindPrinciple))
	}

	ts := r.touch()
	delete(r.Principles, name)
	affected := r.assetsWhere(func(ref AssetReference) bool {
		_, ok := ref.PrincipleReviews[name]
		return ok
	})
	for _, asset := range affected {
		ref := r.AssetReferences[asset]
		reviews := maps.Clone(ref.PrincipleReviews)
		delete(reviews, name)
		ref.PrincipleReviews = reviews
		ref.LastModified = ts
		r.AssetReferences[asset] = ref
	}
	return affected, nil
}

// DeleteEntity removes an entity no asset belongs to.
func (r *Registry) DeleteEntity(name string) error {
	if !r.Has(KindEntity, name) {
		return notFound(KindEntity, name, r.Names(KindEntity))
	}
	if blocking := r.assetsWhere(func(ref AssetReference) bool { return ref.Entity == name }); len(blocking) > 0 {
		return &InUseError{Kind: KindEntity, Name: name, BlockingAssets: blocking}
	}
	delete(r.Entities, name)
	r.touch()
	return nil
}

// DeleteAssetType removes an asset type no asset uses.
func (r *Registry) DeleteAssetType(name string) error {
	if !r.Has(KindAssetType, name) {
		return notFound(KindAssetType, name, r.Names(KindAssetType))
	}
	if blocking := r.assetsWhere(func(ref AssetReference) bool { return ref.AssetType == name }); len(blocking) > 0 {
		return &InUseError{Kind: KindAssetType, Name: name, BlockingAssets: blocking}
	}
	delete(r.AssetTypes, name)
	r.touch()
	return nil
}

// DeleteAssetReference removes an asset and its reviews, returning the
// removed record.
func (r *Registry) DeleteAssetReference(name string) (AssetReference, error) {
	ref, ok := r.AssetReferences[name]
	if !ok {
		return AssetReference{}, notFound(KindAssetReference, name, r.Names(KindAssetReference))
	}
	delete(r.AssetReferences, name)
	r.touch()
	return ref, nil
}

// Deletion describes what a generic Delete removed.
type Deletion struct {
	Kind     Kind
	Name     string
	Affected []string
	// Asset is set when an asset reference was removed.
	Asset *AssetReference
}

// Delete resolves name with FindItemType and deletes it from its own
// collection.
func (r *Registry) Delete(name string) (*Deletion, error) {
	kind, ok := r.FindItemType(name)
	if !ok {
		return nil, &NotFoundError{Kind: "item", Name: name, Available: r.AllNames()}
	}

	d := &Deletion{Kind: kind, Name: name}
	switch kind {
	case KindPrinciple:
		affected, err := r.DeletePrinciple(name)
		if err != nil {
			return nil, err
		}
		d.Affected = affected
	case KindEntity:
		if err := r.DeleteEntity(name); err != nil {
			return nil, err
		}
	case KindAssetType:
		if err := r.DeleteAssetType(name); err != nil {
			return nil, err
		}
	case KindAssetReference:
		ref, err := r.DeleteAssetReference(name)
		if err != nil {
			return nil, err
		}
		d.Asset = &ref
		d.Affected = []string{name}
	}
	return d, nil
}

// ReviewedPrinciples returns the sorted principles asset has reviews for.
func (r *Registry) ReviewedPrinciples(asset string) []string {
	ref, ok := r.AssetReferences[asset]
	if !ok {
		return nil
	}
	return slices.Sorted(maps.Keys(ref.PrincipleReviews))
}
