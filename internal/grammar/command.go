// Package grammar parses one vql command line into a typed Command.
//
// Three surface syntaxes are accepted and resolve to the same command set:
//
//	:uc.st(a, "Looks good")    functional syntax (colon prefix)
//	-st uc a "Looks good"      flag syntax (dash prefix)
//	uc ? (a, s)                bare review query
package grammar

// Kind identifies what a command does, independent of its surface syntax.
type Kind int

const (
	KindUnknown Kind = iota
	ListAll
	ListPrinciples
	ListEntities
	ListAssetTypes
	ListAssets
	ListCommands
	AddPrinciple
	AddEntity
	AddAssetType
	AddAsset
	AddCommand
	ImportPrinciples
	Rename
	Delete
	RenamePrinciple
	RenameEntity
	RenameAssetType
	RenameAsset
	RenameCommand
	DeletePrinciple
	DeleteEntity
	DeleteAssetType
	DeleteAsset
	StoreReview
	SetExemplar
	SetCompliance
	ShowReviews
	ReviewAsset
	RefactorAsset
	ReviewAll
	RefactorAll
	Setup
)

var kindNames = map[Kind]string{
	KindUnknown:      "unknown",
	ListAll:          "list_all",
	ListPrinciples:   "list_principles",
	ListEntities:     "list_entities",
	ListAssetTypes:   "list_asset_types",
	ListAssets:       "list_assets",
	ListCommands:     "list_commands",
	AddPrinciple:     "add_principle",
	AddEntity:        "add_entity",
	AddAssetType:     "add_asset_type",
	AddAsset:         "add_asset",
	AddCommand:       "add_command",
	ImportPrinciples: "import_principles",
	Rename:           "rename",
	Delete:           "delete",
	RenamePrinciple:  "rename_principle",
	RenameEntity:     "rename_entity",
	RenameAssetType:  "rename_asset_type",
	RenameAsset:      "rename_asset",
	RenameCommand:    "rename_command",
	DeletePrinciple:  "delete_principle",
	DeleteEntity:     "delete_entity",
	DeleteAssetType:  "delete_asset_type",
	DeleteAsset:      "delete_asset",
	StoreReview:      "store_review",
	SetExemplar:      "set_exemplar",
	SetCompliance:    "set_compliance",
	ShowReviews:      "show_reviews",
	ReviewAsset:      "review_asset",
	RefactorAsset:    "refactor_asset",
	ReviewAll:        "review_all",
	RefactorAll:      "refactor_all",
	Setup:            "setup",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Syntax records which surface form a command was written in.
type Syntax int

const (
	SyntaxFunctional Syntax = iota
	SyntaxFlag
	SyntaxQuery
)

func (s Syntax) String() string {
	switch s {
	case SyntaxFunctional:
		return "functional"
	case SyntaxFlag:
		return "flag"
	case SyntaxQuery:
		return "query"
	}
	return "unknown"
}

// Command is a parsed command line.
//
// Args are positional and depend on Kind:
//
//	AddPrinciple      short, long[, guidance]
//	AddEntity         short, description
//	AddAssetType      short, description
//	AddAsset          short, entity, type, path
//	AddCommand        name, description
//	ImportPrinciples  [path]
//	Rename*           old, new
//	Delete*           name
//	StoreReview       asset, principle, text
//	SetExemplar       asset, "true"|"false"
//	SetCompliance     asset, principle, rating
//	ShowReviews       asset[, principle...]
//	ReviewAsset       asset, raw principle list
//	RefactorAsset     asset, raw principle/reference list
//	ReviewAll         raw principle list
//	RefactorAll       raw principle list
//	Setup             [path]
type Command struct {
	Kind   Kind
	Syntax Syntax
	Args   []string
	Raw    string
}

// Arg returns the i-th argument or "" when absent.
func (c Command) Arg(i int) string {
	if i < 0 || i >= len(c.Args) {
		return ""
	}
	return c.Args[i]
}
