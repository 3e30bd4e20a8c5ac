// Package dispatch binds parsed commands to registry operations.
//
// Every command runs as one transaction against the on-disk document:
// load, apply, and save only when the operation succeeded and changed
// something. Review and refactor commands (rv, rf) only read the registry
// and render instructions; they never save.
package dispatch

import (
	"fmt"
	"maps"
	"os"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/aidanlsb/vql/internal/audit"
	"github.com/aidanlsb/vql/internal/config"
	"github.com/aidanlsb/vql/internal/grammar"
	"github.com/aidanlsb/vql/internal/paths"
	"github.com/aidanlsb/vql/internal/registry"
	"github.com/aidanlsb/vql/internal/ui"
)

// Options configures a Dispatcher.
type Options struct {
	// StorageDir is the VQL directory holding the registry document. It may
	// be empty for setup, which creates one.
	StorageDir string

	// WorkDir resolves relative setup and import paths. Defaults to the
	// process working directory.
	WorkDir string

	// Config is the workspace config; nil means defaults.
	Config *config.WorkspaceConfig

	// Audit receives an entry per successful mutation; nil disables it.
	Audit *audit.Logger

	// Logger receives debug diagnostics; nil uses ui.Logger.
	Logger *log.Logger

	// GlobalConfigPath, when set, is where setup registers new workspaces.
	GlobalConfigPath string
}

// Dispatcher executes parsed commands.
type Dispatcher struct {
	storageDir       string
	workDir          string
	cfg              *config.WorkspaceConfig
	audit            *audit.Logger
	log              *log.Logger
	globalConfigPath string
}

// New creates a Dispatcher.
func New(opts Options) *Dispatcher {
	d := &Dispatcher{
		storageDir:       opts.StorageDir,
		workDir:          opts.WorkDir,
		cfg:              opts.Config,
		audit:            opts.Audit,
		log:              opts.Logger,
		globalConfigPath: opts.GlobalConfigPath,
	}
	if d.cfg == nil {
		d.cfg = config.DefaultWorkspaceConfig()
	}
	if d.audit == nil {
		d.audit = audit.New("", false)
	}
	if d.log == nil {
		d.log = ui.Logger
	}
	if d.workDir == "" {
		if wd, err := os.Getwd(); err == nil {
			d.workDir = wd
		}
	}
	return d
}

// StorageDir returns the storage directory the dispatcher operates on.
func (d *Dispatcher) StorageDir() string {
	return d.storageDir
}

type handler func(d *Dispatcher, reg *registry.Registry, cmd grammar.Command) (*Outcome, error)

var handlers = map[grammar.Kind]handler{
	grammar.ListAll:          listHandler(ScopeAll),
	grammar.ListPrinciples:   listHandler(ScopePrinciples),
	grammar.ListEntities:     listHandler(ScopeEntities),
	grammar.ListAssetTypes:   listHandler(ScopeAssetTypes),
	grammar.ListAssets:       listHandler(ScopeAssets),
	grammar.ListCommands:     listHandler(ScopeCommands),
	grammar.AddPrinciple:     (*Dispatcher).addPrinciple,
	grammar.AddEntity:        (*Dispatcher).addEntity,
	grammar.AddAssetType:     (*Dispatcher).addAssetType,
	grammar.AddAsset:         (*Dispatcher).addAsset,
	grammar.AddCommand:       (*Dispatcher).addCommand,
	grammar.ImportPrinciples: (*Dispatcher).importPrinciples,
	grammar.Rename:           (*Dispatcher).rename,
	grammar.RenamePrinciple:  (*Dispatcher).rename,
	grammar.RenameEntity:     (*Dispatcher).rename,
	grammar.RenameAssetType:  (*Dispatcher).rename,
	grammar.RenameAsset:      (*Dispatcher).rename,
	grammar.RenameCommand:    (*Dispatcher).renameCommand,
	grammar.Delete:           (*Dispatcher).delete,
	grammar.DeletePrinciple:  (*Dispatcher).delete,
	grammar.DeleteEntity:     (*Dispatcher).delete,
	grammar.DeleteAssetType:  (*Dispatcher).delete,
	grammar.DeleteAsset:      (*Dispatcher).delete,
	grammar.StoreReview:      (*Dispatcher).storeReview,
	grammar.SetExemplar:      (*Dispatcher).setExemplar,
	grammar.SetCompliance:    (*Dispatcher).setCompliance,
	grammar.ShowReviews:      (*Dispatcher).showReviews,
	grammar.ReviewAsset:      (*Dispatcher).instructions,
	grammar.RefactorAsset:    (*Dispatcher).instructions,
	grammar.ReviewAll:        (*Dispatcher).instructions,
	grammar.RefactorAll:      (*Dispatcher).instructions,
}

// Dispatch runs cmd. On failure the registry document is left untouched
// and the error from the registry or grammar layer is returned unchanged.
func (d *Dispatcher) Dispatch(cmd grammar.Command) (*Outcome, error) {
	if cmd.Kind == grammar.Setup {
		return d.setup(cmd)
	}

	h, ok := handlers[cmd.Kind]
	if !ok {
		return nil, &grammar.UnknownCommandError{Raw: cmd.Raw}
	}
	if d.storageDir == "" {
		return nil, paths.ErrWorkspaceNotFound
	}

	start := time.Now()
	reg, err := registry.Load(d.storageDir)
	if err != nil {
		return nil, err
	}
	d.log.Debug("loaded registry", "path", registry.DocumentPath(d.storageDir), "elapsed", time.Since(start))

	out, err := h(d, reg, cmd)
	if err != nil {
		d.log.Debug("command failed", "command", cmd.Kind, "err", err)
		return nil, err
	}
	out.Kind = cmd.Kind
	out.Command = cmd.Kind.String()

	if !out.Mutated {
		return out, nil
	}

	if err := reg.Save(d.storageDir); err != nil {
		return nil, err
	}
	d.log.Debug("saved registry", "path", registry.DocumentPath(d.storageDir))

	if out.record != nil {
		if err := out.record(); err != nil {
			d.log.Warn("audit log write failed", "path", d.audit.Path(), "err", err)
		}
	}
	return out, nil
}

func mutated(message string, change *Change) *Outcome {
	return &Outcome{
		Message:  message,
		Mutated:  true,
		Affected: change.Affected,
		Data:     change,
	}
}

func listHandler(scope string) handler {
	return func(d *Dispatcher, reg *registry.Registry, cmd grammar.Command) (*Outcome, error) {
		l := &Listing{Scope: scope}
		if l.Includes(ScopePrinciples) {
			for _, name := range reg.Names(registry.KindPrinciple) {
				l.Principles = append(l.Principles, reg.Principles[name])
			}
		}
		if l.Includes(ScopeEntities) {
			for _, name := range reg.Names(registry.KindEntity) {
				l.Entities = append(l.Entities, reg.Entities[name])
			}
		}
		if l.Includes(ScopeAssetTypes) {
			for _, name := range reg.Names(registry.KindAssetType) {
				l.AssetTypes = append(l.AssetTypes, reg.AssetTypes[name])
			}
		}
		if l.Includes(ScopeAssets) {
			for _, name := range reg.Names(registry.KindAssetReference) {
				l.Assets = append(l.Assets, reg.AssetReferences[name])
			}
		}
		if l.Includes(ScopeCommands) {
			for _, name := range reg.Names(registry.KindCommand) {
				l.Commands = append(l.Commands, reg.Commands[name])
			}
		}
		return &Outcome{Data: l}, nil
	}
}

func (d *Dispatcher) addPrinciple(reg *registry.Registry, cmd grammar.Command) (*Outcome, error) {
	short, long, guidance := cmd.Arg(0), cmd.Arg(1), cmd.Arg(2)
	if err := reg.AddPrinciple(short, long, guidance); err != nil {
		return nil, err
	}
	out := mutated(fmt.Sprintf("Added principle: %s (%s)", short, long),
		&Change{Kind: registry.KindPrinciple.String(), Name: short})
	out.record = func() error {
		return d.audit.LogCreate(registry.KindPrinciple.String(), short, cmd.Raw,
			map[string]interface{}{"long_name": long})
	}
	return out, nil
}

func (d *Dispatcher) addEntity(reg *registry.Registry, cmd grammar.Command) (*Outcome, error) {
	short, desc := cmd.Arg(0), cmd.Arg(1)
	if err := reg.AddEntity(short, desc); err != nil {
		return nil, err
	}
	out := mutated(fmt.Sprintf("Added entity: %s (%s)", short, desc),
		&Change{Kind: registry.KindEntity.String(), Name: short})
	out.Warnings = nameWarnings(short)
	out.record = func() error {
		return d.audit.LogCreate(registry.KindEntity.String(), short, cmd.Raw, nil)
	}
	return out, nil
}

func (d *Dispatcher) addAssetType(reg *registry.Registry, cmd grammar.Command) (*Outcome, error) {
	short, desc := cmd.Arg(0), cmd.Arg(1)
	if err := reg.AddAssetType(short, desc); err != nil {
		return nil, err
	}
	out := mutated(fmt.Sprintf("Added asset type: %s (%s)", short, desc),
		&Change{Kind: registry.KindAssetType.String(), Name: short})
	out.record = func() error {
		return d.audit.LogCreate(registry.KindAssetType.String(), short, cmd.Raw, nil)
	}
	return out, nil
}

func (d *Dispatcher) addAsset(reg *registry.Registry, cmd grammar.Command) (*Outcome, error) {
	short, entity, assetType, path := cmd.Arg(0), cmd.Arg(1), cmd.Arg(2), cmd.Arg(3)

	resolved, err := paths.ResolveAssetPath(d.storageDir, path)
	if err != nil {
		return nil, &registry.InvalidArgumentError{
			Reason: err.Error() + ". The file must exist to be added as an asset reference; relative paths are resolved against the directory containing VQL/",
		}
	}
	d.log.Debug("resolved asset path", "asset", short, "path", resolved)

	stored := paths.ExpandHome(path)
	if err := reg.AddAssetReference(short, entity, assetType, stored); err != nil {
		return nil, err
	}
	out := mutated(fmt.Sprintf("Added asset reference: %s (Entity: %s, Type: %s, Path: %s)", short, entity, assetType, stored),
		&Change{Kind: registry.KindAssetReference.String(), Name: short})
	out.Warnings = nameWarnings(short)
	out.record = func() error {
		return d.audit.LogCreate(registry.KindAssetReference.String(), short, cmd.Raw,
			map[string]interface{}{"entity": entity, "asset_type": assetType, "path": stored})
	}
	return out, nil
}

func (d *Dispatcher) addCommand(reg *registry.Registry, cmd grammar.Command) (*Outcome, error) {
	name, desc := cmd.Arg(0), cmd.Arg(1)
	if err := reg.AddCommand(name, desc); err != nil {
		return nil, err
	}
	out := mutated(fmt.Sprintf("Added command: %s (%s)", name, desc),
		&Change{Kind: registry.KindCommand.String(), Name: name})
	out.record = func() error {
		return d.audit.LogCreate(registry.KindCommand.String(), name, cmd.Raw, nil)
	}
	return out, nil
}

var scopedRenames = map[grammar.Kind]func(*registry.Registry, string, string) ([]string, error){
	grammar.RenamePrinciple: (*registry.Registry).RenamePrinciple,
	grammar.RenameEntity:    (*registry.Registry).RenameEntity,
	grammar.RenameAssetType: (*registry.Registry).RenameAssetType,
	grammar.RenameAsset:     (*registry.Registry).RenameAssetReference,
}

var scopedKinds = map[grammar.Kind]registry.Kind{
	grammar.RenamePrinciple: registry.KindPrinciple,
	grammar.RenameEntity:    registry.KindEntity,
	grammar.RenameAssetType: registry.KindAssetType,
	grammar.RenameAsset:     registry.KindAssetReference,
	grammar.DeletePrinciple: registry.KindPrinciple,
	grammar.DeleteEntity:    registry.KindEntity,
	grammar.DeleteAssetType: registry.KindAssetType,
	grammar.DeleteAsset:     registry.KindAssetReference,
}

func (d *Dispatcher) rename(reg *registry.Registry, cmd grammar.Command) (*Outcome, error) {
	oldName, newName := cmd.Arg(0), cmd.Arg(1)

	var (
		kind     registry.Kind
		affected []string
		err      error
	)
	if fn, ok := scopedRenames[cmd.Kind]; ok {
		kind = scopedKinds[cmd.Kind]
		affected, err = fn(reg, oldName, newName)
	} else {
		kind, affected, err = reg.Rename(oldName, newName)
	}
	if err != nil {
		return nil, err
	}

	out := mutated(fmt.Sprintf("Renamed %s '%s' to '%s'", kind, oldName, newName),
		&Change{Kind: kind.String(), Name: newName, OldName: oldName, Affected: affected})
	if kind == registry.KindEntity || kind == registry.KindAssetReference {
		out.Warnings = nameWarnings(newName)
	}
	out.record = func() error {
		return d.audit.LogRename(kind.String(), oldName, newName, cmd.Raw, affected)
	}
	return out, nil
}

func (d *Dispatcher) renameCommand(reg *registry.Registry, cmd grammar.Command) (*Outcome, error) {
	oldName, newName := cmd.Arg(0), cmd.Arg(1)
	if err := reg.RenameCommand(oldName, newName); err != nil {
		return nil, err
	}
	out := mutated(fmt.Sprintf("Renamed command '%s' to '%s'", oldName, newName),
		&Change{Kind: registry.KindCommand.String(), Name: newName, OldName: oldName})
	out.record = func() error {
		return d.audit.LogRename(registry.KindCommand.String(), oldName, newName, cmd.Raw, nil)
	}
	return out, nil
}

func (d *Dispatcher) delete(reg *registry.Registry, cmd grammar.Command) (*Outcome, error) {
	name := cmd.Arg(0)
	change := &Change{Name: name}

	if kind, ok := scopedKinds[cmd.Kind]; ok {
		change.Kind = kind.String()
		switch kind {
		case registry.KindPrinciple:
			affected, err := reg.DeletePrinciple(name)
			if err != nil {
				return nil, err
			}
			change.Affected = affected
		case registry.KindEntity:
			if err := reg.DeleteEntity(name); err != nil {
				return nil, err
			}
		case registry.KindAssetType:
			if err := reg.DeleteAssetType(name); err != nil {
				return nil, err
			}
		case registry.KindAssetReference:
			ref, err := reg.DeleteAssetReference(name)
			if err != nil {
				return nil, err
			}
			change.ReviewsRemoved = len(ref.PrincipleReviews)
		}
	} else {
		del, err := reg.Delete(name)
		if err != nil {
			return nil, err
		}
		change.Kind = del.Kind.String()
		if del.Asset != nil {
			change.ReviewsRemoved = len(del.Asset.PrincipleReviews)
		} else {
			change.Affected = del.Affected
		}
	}

	out := mutated(fmt.Sprintf("Deleted %s '%s'", change.Kind, name), change)
	out.record = func() error {
		return d.audit.LogDelete(change.Kind, name, cmd.Raw, change.Affected)
	}
	return out, nil
}

func (d *Dispatcher) storeReview(reg *registry.Registry, cmd grammar.Command) (*Outcome, error) {
	asset, principle, text := cmd.Arg(0), cmd.Arg(1), cmd.Arg(2)

	var rating registry.Rating
	if d.cfg.IsAutoRatingEnabled() {
		rating = ExtractRating(text)
	}
	if err := reg.StoreAssetReview(asset, principle, rating, text); err != nil {
		return nil, err
	}

	msg := fmt.Sprintf("Stored review for asset %s from %s principle", asset, principle)
	if rating != "" {
		msg += fmt.Sprintf(" with %s compliance rating", rating)
	}
	out := mutated(msg, &Change{Kind: "review", Name: asset})
	out.record = func() error {
		return d.audit.LogUpdate("review", asset, cmd.Raw,
			map[string]interface{}{"principle": principle, "rating": string(rating)})
	}
	return out, nil
}

func (d *Dispatcher) setExemplar(reg *registry.Registry, cmd grammar.Command) (*Outcome, error) {
	asset := cmd.Arg(0)
	exemplar, err := grammar.ParseExemplarFlag(cmd.Arg(1))
	if err != nil {
		return nil, err
	}
	if err := reg.SetAssetExemplar(asset, exemplar); err != nil {
		return nil, err
	}
	out := mutated(fmt.Sprintf("Set exemplar status for asset %s to %t", asset, exemplar),
		&Change{Kind: registry.KindAssetReference.String(), Name: asset})
	out.record = func() error {
		return d.audit.LogUpdate(registry.KindAssetReference.String(), asset, cmd.Raw,
			map[string]interface{}{"exemplar": exemplar})
	}
	return out, nil
}

func (d *Dispatcher) setCompliance(reg *registry.Registry, cmd grammar.Command) (*Outcome, error) {
	asset, principle := cmd.Arg(0), cmd.Arg(1)
	rating, err := registry.ParseRating(cmd.Arg(2))
	if err != nil {
		return nil, err
	}
	if err := reg.StoreAssetReview(asset, principle, rating, ""); err != nil {
		return nil, err
	}
	out := mutated(fmt.Sprintf("Set %s principle compliance rating for asset %s to %s", principle, asset, rating),
		&Change{Kind: "review", Name: asset})
	out.record = func() error {
		return d.audit.LogUpdate("review", asset, cmd.Raw,
			map[string]interface{}{"principle": principle, "rating": string(rating)})
	}
	return out, nil
}

func (d *Dispatcher) showReviews(reg *registry.Registry, cmd grammar.Command) (*Outcome, error) {
	name := cmd.Arg(0)
	asset, err := lookupAsset(reg, name)
	if err != nil {
		return nil, err
	}

	result := &AssetReviews{Asset: asset}
	if requested := cmd.Args[1:]; len(requested) > 0 {
		result.Selected = true
		for _, p := range requested {
			entry := reviewEntry(reg, p)
			if review, ok := reg.GetAssetReview(name, p); ok {
				entry.Review = &review
			}
			result.Reviews = append(result.Reviews, entry)
		}
		return &Outcome{Data: result}, nil
	}

	reviews, err := reg.GetAssetReviews(name)
	if err != nil {
		return nil, err
	}
	for _, p := range slices.Sorted(maps.Keys(reviews)) {
		review := reviews[p]
		entry := reviewEntry(reg, p)
		entry.Review = &review
		result.Reviews = append(result.Reviews, entry)
	}
	return &Outcome{Data: result}, nil
}

func reviewEntry(reg *registry.Registry, principle string) ReviewEntry {
	entry := ReviewEntry{Principle: principle}
	if p, ok := reg.Principles[principle]; ok {
		entry.LongName = p.LongName
	}
	return entry
}

func (d *Dispatcher) instructions(reg *registry.Registry, cmd grammar.Command) (*Outcome, error) {
	var (
		in  *Instructions
		err error
	)
	switch cmd.Kind {
	case grammar.ReviewAsset:
		in, err = d.reviewAsset(reg, cmd.Arg(0), cmd.Arg(1))
	case grammar.RefactorAsset:
		in, err = d.refactorAsset(reg, cmd.Arg(0), cmd.Arg(1))
	case grammar.ReviewAll:
		in, err = d.reviewAll(reg, cmd.Arg(0))
	case grammar.RefactorAll:
		in, err = d.refactorAll(reg, cmd.Arg(0))
	}
	if err != nil {
		return nil, err
	}
	return &Outcome{Data: in}, nil
}
