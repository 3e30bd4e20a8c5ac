// Package registry holds the annotation registry: principles, entities,
// asset types, asset references and their per-principle reviews.
//
// All mutations are in-memory and validate before they change anything.
// Persistence is a separate, explicit Load/Save of one JSON document.
package registry

import (
	"strings"
	"time"
)

// DocumentVersion is written to new documents.
const DocumentVersion = "1.0.0"

// Principle is a named review dimension such as Architecture or Security.
type Principle struct {
	ShortName    string    `json:"short_name"`
	LongName     string    `json:"long_name"`
	Guidance     string    `json:"guidance,omitempty"`
	LastModified time.Time `json:"last_modified"`
}

// Entity is a logical domain concept that assets belong to.
type Entity struct {
	ShortName    string    `json:"short_name"`
	Description  string    `json:"description"`
	LastModified time.Time `json:"last_modified"`
}

// AssetType is a category of asset, e.g. Controller.
type AssetType struct {
	ShortName    string    `json:"short_name"`
	Description  string    `json:"description"`
	LastModified time.Time `json:"last_modified"`
}

// AssetReference is one tracked source file with its reviews.
type AssetReference struct {
	ShortName        string            `json:"short_name"`
	Entity           string            `json:"entity"`
	AssetType        string            `json:"asset_type"`
	Path             string            `json:"path"`
	Exemplar         bool              `json:"exemplar"`
	LastModified     time.Time         `json:"last_modified"`
	PrincipleReviews map[string]Review `json:"principle_reviews"`
}

// Review is the assessment of one asset against one principle.
type Review struct {
	Rating       Rating    `json:"rating,omitempty"`
	Analysis     string    `json:"analysis,omitempty"`
	LastModified time.Time `json:"last_modified"`
}

// Command records metadata about a command verb. Built-in commands keep
// their first name in OriginalName once renamed.
type Command struct {
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	LastModified time.Time `json:"last_modified"`
	OriginalName string    `json:"original_name,omitempty"`
	BuiltIn      bool      `json:"built_in"`
}

// Rating is a compliance level for an (asset, principle) pair.
type Rating string

const (
	RatingHigh   Rating = "H"
	RatingMedium Rating = "M"
	RatingLow    Rating = "L"
)

// Valid reports whether r is exactly one of H, M or L.
func (r Rating) Valid() bool {
	switch r {
	case RatingHigh, RatingMedium, RatingLow:
		return true
	}
	return false
}

// Label returns the long form of the rating.
func (r Rating) Label() string {
	switch r {
	case RatingHigh:
		return "High"
	case RatingMedium:
		return "Medium"
	case RatingLow:
		return "Low"
	case "":
		return "Not rated"
	}
	return string(r)
}

// ParseRating normalizes h/m/l and high/medium/low, in any case, to a Rating.
func ParseRating(raw string) (Rating, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "H", "HIGH":
		return RatingHigh, nil
	case "M", "MEDIUM":
		return RatingMedium, nil
	case "L", "LOW":
		return RatingLow, nil
	}
	return "", &InvalidArgumentError{Reason: "invalid rating: " + raw + ". Must be H, M, or L"}
}

// Kind identifies one of the four collections sharing the short-name namespace.
type Kind int

const (
	KindPrinciple Kind = iota
	KindEntity
	KindAssetType
	KindAssetReference
	// KindCommand names the command collection. Commands live outside the
	// shared short-name namespace.
	KindCommand
)

func (k Kind) String() string {
	switch k {
	case KindPrinciple:
		return "principle"
	case KindEntity:
		return "entity"
	case KindAssetType:
		return "asset type"
	case KindAssetReference:
		return "asset"
	case KindCommand:
		return "command"
	}
	return "unknown"
}

// lookupOrder is the fixed priority used when a bare name is resolved.
var lookupOrder = []Kind{KindPrinciple, KindEntity, KindAssetType, KindAssetReference}

var now = func() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}
