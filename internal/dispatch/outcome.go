package dispatch

import (
	"github.com/aidanlsb/vql/internal/grammar"
	"github.com/aidanlsb/vql/internal/registry"
)

// Listing scopes.
const (
	ScopeAll        = "all"
	ScopePrinciples = "principles"
	ScopeEntities   = "entities"
	ScopeAssetTypes = "asset_types"
	ScopeAssets     = "assets"
	ScopeCommands   = "commands"
)

// Outcome is the structured result of one dispatched command. Message is
// a plain one-line summary; Data holds one of Listing, AssetReviews,
// Instructions, Change, ImportResult or SetupResult.
type Outcome struct {
	Kind     grammar.Kind `json:"-"`
	Command  string       `json:"command"`
	Message  string       `json:"message,omitempty"`
	Mutated  bool         `json:"mutated"`
	Affected []string     `json:"affected,omitempty"`
	Warnings []string     `json:"-"`
	Data     interface{}  `json:"data,omitempty"`

	// record writes the audit entry once the registry has been saved.
	record func() error
}

// Listing is the result of ls, pr, er, at, ar and cmd.
type Listing struct {
	Scope      string                    `json:"scope"`
	Principles []registry.Principle      `json:"principles,omitempty"`
	Entities   []registry.Entity         `json:"entities,omitempty"`
	AssetTypes []registry.AssetType      `json:"asset_types,omitempty"`
	Assets     []registry.AssetReference `json:"assets,omitempty"`
	Commands   []registry.Command        `json:"commands,omitempty"`
}

// Includes reports whether the listing covers scope.
func (l *Listing) Includes(scope string) bool {
	if l.Scope == scope {
		return true
	}
	return l.Scope == ScopeAll && scope != ScopeCommands
}

// ReviewEntry is one principle's review of an asset. Review is nil when
// the asset has no review for that principle.
type ReviewEntry struct {
	Principle string           `json:"principle"`
	LongName  string           `json:"long_name,omitempty"`
	Review    *registry.Review `json:"review,omitempty"`
}

// AssetReviews is the result of the asset query syntax.
type AssetReviews struct {
	Asset registry.AssetReference `json:"asset"`
	// Selected is true when specific principles were requested.
	Selected bool          `json:"selected"`
	Reviews  []ReviewEntry `json:"reviews"`
}

// Change describes a mutation of one registry record.
type Change struct {
	Kind           string   `json:"kind"`
	Name           string   `json:"name"`
	OldName        string   `json:"old_name,omitempty"`
	Affected       []string `json:"affected,omitempty"`
	ReviewsRemoved int      `json:"reviews_removed,omitempty"`
}

// ImportResult is the result of a bulk principle import.
type ImportResult struct {
	File       string   `json:"file"`
	Principles []string `json:"principles"`
}

// SetupResult is the result of workspace setup.
type SetupResult struct {
	Root            string `json:"root"`
	StorageDir      string `json:"storage_dir"`
	AlreadyExisted  bool   `json:"already_existed"`
	CreatedDocument bool   `json:"created_document"`
	CreatedConfig   bool   `json:"created_config"`
	Registered      bool   `json:"registered,omitempty"`
}
