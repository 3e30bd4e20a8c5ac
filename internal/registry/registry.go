package registry

import (
	"maps"
	"slices"
	"time"
	"unicode/utf8"

	"github.com/aidanlsb/vql/internal/commands"
)

// Registry is the whole persisted document.
type Registry struct {
	Version         string                    `json:"version"`
	Created         time.Time                 `json:"created"`
	LastModified    time.Time                 `json:"last_modified"`
	Commands        map[string]Command        `json:"commands"`
	AssetTypes      map[string]AssetType      `json:"asset_types"`
	Entities        map[string]Entity         `json:"entities"`
	Principles      map[string]Principle      `json:"principles"`
	AssetReferences map[string]AssetReference `json:"asset_references"`
}

// New returns an empty registry holding only the built-in command records.
func New() *Registry {
	ts := now()
	r := &Registry{
		Version:         DocumentVersion,
		Created:         ts,
		LastModified:    ts,
		Commands:        make(map[string]Command),
		AssetTypes:      make(map[string]AssetType),
		Entities:        make(map[string]Entity),
		Principles:      make(map[string]Principle),
		AssetReferences: make(map[string]AssetReference),
	}
	for _, meta := range commands.BuiltIns() {
		r.Commands[meta.Name] = Command{
			Name:         meta.Name,
			Description:  meta.Description,
			LastModified: ts,
			BuiltIn:      true,
		}
	}
	return r
}

// DefaultPrinciples are added to every registry created by NewDefault.
var DefaultPrinciples = []Principle{
	{ShortName: "a", LongName: "Architecture", Guidance: "Architecture evaluation guidelines"},
	{ShortName: "s", LongName: "Security", Guidance: "Security evaluation guidelines"},
	{ShortName: "p", LongName: "Performance", Guidance: "Performance evaluation guidelines"},
	{ShortName: "u", LongName: "UI/UX", Guidance: "UI/UX evaluation guidelines"},
}

// NewDefault returns New plus the default principles.
func NewDefault() *Registry {
	r := New()
	for _, p := range DefaultPrinciples {
		p.LastModified = r.Created
		r.Principles[p.ShortName] = p
	}
	return r
}

func (r *Registry) touch() time.Time {
	ts := now()
	r.LastModified = ts
	return ts
}

// Has reports whether name exists in the collection of the given kind.
func (r *Registry) Has(kind Kind, name string) bool {
	var ok bool
	switch kind {
	case KindPrinciple:
		_, ok = r.Principles[name]
	case KindEntity:
		_, ok = r.Entities[name]
	case KindAssetType:
		_, ok = r.AssetTypes[name]
	case KindAssetReference:
		_, ok = r.AssetReferences[name]
	case KindCommand:
		_, ok = r.Commands[name]
	}
	return ok
}

// FindItemType resolves a bare name to its collection, checking principles,
// entities, asset types and asset references in that order.
func (r *Registry) FindItemType(name string) (Kind, bool) {
	for _, kind := range lookupOrder {
		if r.Has(kind, name) {
			return kind, true
		}
	}
	return 0, false
}

// Names returns the sorted short names of one collection.
func (r *Registry) Names(kind Kind) []string {
	switch kind {
	case KindPrinciple:
		return sortedKeys(r.Principles)
	case KindEntity:
		return sortedKeys(r.Entities)
	case KindAssetType:
		return sortedKeys(r.AssetTypes)
	case KindAssetReference:
		return sortedKeys(r.AssetReferences)
	case KindCommand:
		return sortedKeys(r.Commands)
	}
	return nil
}

// AllNames returns every name in the shared namespace, sorted.
func (r *Registry) AllNames() []string {
	var all []string
	for _, kind := range lookupOrder {
		all = append(all, r.Names(kind)...)
	}
	slices.Sort(all)
	return all
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}

func validateShortName(kind Kind, name string) error {
	if name == "" {
		return invalidf("%s short name cannot be empty", kind)
	}
	if kind == KindPrinciple || kind == KindAssetType {
		if utf8.RuneCountInString(name) != 1 {
			return invalidf("%s short name must be exactly one character: '%s'", kind, name)
		}
	}
	return nil
}

// checkAddable rejects a name held by a kind other than the one being added.
func (r *Registry) checkAddable(kind Kind, name string) error {
	if err := validateShortName(kind, name); err != nil {
		return err
	}
	for _, other := range lookupOrder {
		if other != kind && r.Has(other, name) {
			return &NameCollisionError{Name: name, ExistingKind: other}
		}
	}
	return nil
}

// checkRenamable validates old exists in kind and new is free everywhere.
func (r *Registry) checkRenamable(kind Kind, oldName, newName string) error {
	if !r.Has(kind, oldName) {
		return notFound(kind, oldName, r.Names(kind))
	}
	if err := validateShortName(kind, newName); err != nil {
		return err
	}
	if existing, ok := r.FindItemType(newName); ok {
		return &NameCollisionError{Name: newName, ExistingKind: existing}
	}
	return nil
}

// AddPrinciple adds or replaces a principle.
func (r *Registry) AddPrinciple(shortName, longName, guidance string) error {
	if err := r.checkAddable(KindPrinciple, shortName); err != nil {
		return err
	}
	r.Principles[shortName] = Principle{
		ShortName:    shortName,
		LongName:     longName,
		Guidance:     guidance,
		LastModified: r.touch(),
	}
	return nil
}

// AddEntity adds or replaces an entity.
func (r *Registry) AddEntity(shortName, description string) error {
	if err := r.checkAddable(KindEntity, shortName); err != nil {
		return err
	}
	r.Entities[shortName] = Entity{
		ShortName:    shortName,
		Description:  description,
		LastModified: r.touch(),
	}
	return nil
}

// AddAssetType adds or replaces an asset type.
func (r *Registry) AddAssetType(shortName, description string) error {
	if err := r.checkAddable(KindAssetType, shortName); err != nil {
		return err
	}
	r.AssetTypes[shortName] = AssetType{
		ShortName:    shortName,
		Description:  description,
		LastModified: r.touch(),
	}
	return nil
}

// AddAssetReference registers an asset. The entity and asset type must
// exist. Re-adding an asset replaces it, reviews included.
func (r *Registry) AddAssetReference(shortName, entity, assetType, path string) error {
	if err := r.checkAddable(KindAssetReference, shortName); err != nil {
		return err
	}
	if _, ok := r.Entities[entity]; !ok {
		return notFound(KindEntity, entity, r.Names(KindEntity))
	}
	if _, ok := r.AssetTypes[assetType]; !ok {
		return notFound(KindAssetType, assetType, r.Names(KindAssetType))
	}
	r.AssetReferences[shortName] = AssetReference{
		ShortName:        shortName,
		Entity:           entity,
		AssetType:        assetType,
		Path:             path,
		LastModified:     r.touch(),
		PrincipleReviews: make(map[string]Review),
	}
	return nil
}

// AddCommand adds a command record or updates the description of an
// existing one.
func (r *Registry) AddCommand(name, description string) error {
	if name == "" {
		return invalidf("command name cannot be empty")
	}
	cmd := r.Commands[name]
	cmd.Name = name
	cmd.Description = description
	cmd.LastModified = r.touch()
	r.Commands[name] = cmd
	return nil
}

// SetAssetExemplar flags or unflags an asset as an exemplar.
func (r *Registry) SetAssetExemplar(asset string, exemplar bool) error {
	ref, ok := r.AssetReferences[asset]
	if !ok {
		return notFound(KindAssetReference, asset, r.Names(KindAssetReference))
	}
	ref.Exemplar = exemplar
	ref.LastModified = r.touch()
	r.AssetReferences[asset] = ref
	return nil
}

// StoreAssetReview overwrites the review of asset for principle. An empty
// rating stores an unrated review.
func (r *Registry) StoreAssetReview(asset, principle string, rating Rating, analysis string) error {
	ref, ok := r.AssetReferences[asset]
	if !ok {
		return notFound(KindAssetReference, asset, r.Names(KindAssetReference))
	}
	if _, ok := r.Principles[principle]; !ok {
		return notFound(KindPrinciple, principle, r.Names(KindPrinciple))
	}
	if rating != "" && !rating.Valid() {
		return invalidf("invalid rating: %s. Must be H, M, or L", rating)
	}

	ts := r.touch()
	reviews := maps.Clone(ref.PrincipleReviews)
	if reviews == nil {
		reviews = make(map[string]Review)
	}
	reviews[principle] = Review{Rating: rating, Analysis: analysis, LastModified: ts}
	ref.PrincipleReviews = reviews
	ref.LastModified = ts
	r.AssetReferences[asset] = ref
	return nil
}

// GetAssetReview returns the stored review, if any.
func (r *Registry) GetAssetReview(asset, principle string) (Review, bool) {
	ref, ok := r.AssetReferences[asset]
	if !ok {
		return Review{}, false
	}
	review, ok := ref.PrincipleReviews[principle]
	return review, ok
}

// GetAssetReviews returns a copy of every review stored for asset.
func (r *Registry) GetAssetReviews(asset string) (map[string]Review, error) {
	ref, ok := r.AssetReferences[asset]
	if !ok {
		return nil, notFound(KindAssetReference, asset, r.Names(KindAssetReference))
	}
	out := maps.Clone(ref.PrincipleReviews)
	if out == nil {
		out = make(map[string]Review)
	}
	return out, nil
}

// assetsWhere returns the sorted names of assets matching fn.
func (r *Registry) assetsWhere(fn func(AssetReference) bool) []string {
	var names []string
	for name, ref := range r.AssetReferences {
		if fn(ref) {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}
