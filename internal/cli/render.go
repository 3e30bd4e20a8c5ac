package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/aidanlsb/vql/internal/dispatch"
	"github.com/aidanlsb/vql/internal/paths"
	"github.com/aidanlsb/vql/internal/registry"
	"github.com/aidanlsb/vql/internal/ui"
)

// renderer writes outcomes as text or JSON envelopes.
type renderer struct {
	out     io.Writer
	errOut  io.Writer
	json    bool
	display *ui.DisplayContext
}

func (r *renderer) fail(err error) error {
	return reportError(r.out, r.errOut, r.json, err)
}

func (r *renderer) outcome(o *dispatch.Outcome, elapsed time.Duration) {
	if r.json {
		meta := &Meta{ElapsedMs: elapsed.Milliseconds()}
		if l, ok := o.Data.(*dispatch.Listing); ok {
			meta.Count = listingCount(l)
		}
		if len(o.Warnings) == 0 {
			outputSuccess(r.out, o, meta)
			return
		}
		warnings := make([]Warning, len(o.Warnings))
		for i, w := range o.Warnings {
			warnings[i] = Warning{Code: WarnCommand, Message: w}
		}
		outputSuccessWithWarnings(r.out, o, warnings, meta)
		return
	}

	switch data := o.Data.(type) {
	case *dispatch.Listing:
		r.listing(data)
	case *dispatch.AssetReviews:
		r.reviews(data)
	case *dispatch.Instructions:
		r.instructions(data)
	default:
		r.message(o)
	}
	for _, w := range o.Warnings {
		fmt.Fprintln(r.errOut, ui.Warning(w))
	}
}

func listingCount(l *dispatch.Listing) int {
	return len(l.Principles) + len(l.Entities) + len(l.AssetTypes) + len(l.Assets) + len(l.Commands)
}

func (r *renderer) message(o *dispatch.Outcome) {
	if o.Message != "" {
		fmt.Fprintln(r.out, ui.Success(o.Message))
	}

	switch data := o.Data.(type) {
	case *dispatch.Change:
		r.change(data)
	case *dispatch.SetupResult:
		if data.AlreadyExisted && data.CreatedDocument {
			fmt.Fprintln(r.out, ui.Success("Created new VQL storage file"))
		}
		if data.CreatedConfig {
			fmt.Fprintln(r.out, ui.Hint("  Wrote default settings to "+filepath.Join(data.StorageDir, paths.WorkspaceConfigName)))
		}
	}
}

func (r *renderer) change(c *dispatch.Change) {
	if c.ReviewsRemoved > 0 {
		fmt.Fprintln(r.out, ui.Infof("Removed %d review(s) with the asset", c.ReviewsRemoved))
	}
	if len(c.Affected) == 0 || c.Kind == registry.KindAssetReference.String() {
		return
	}

	var header string
	switch {
	case c.OldName != "" && c.Kind == registry.KindPrinciple.String():
		header = fmt.Sprintf("Updated principle key in %d asset review(s):", len(c.Affected))
	case c.OldName != "":
		header = fmt.Sprintf("Updated %s reference in %d asset(s):", c.Kind, len(c.Affected))
	default:
		header = fmt.Sprintf("Removed %s '%s' from %d asset(s):", c.Kind, c.Name, len(c.Affected))
	}
	fmt.Fprintln(r.out, ui.Info(header))

	list := ui.NewList()
	for _, name := range c.Affected {
		list.Add(ui.Name(name))
	}
	fmt.Fprint(r.out, list.String())
}

func (r *renderer) listing(l *dispatch.Listing) {
	var sections []string
	if l.Scope == dispatch.ScopeAll {
		fmt.Fprintln(r.out, ui.Header("VQL Summary:"))
	}

	if l.Includes(dispatch.ScopePrinciples) {
		sections = append(sections, principlesSection(l.Principles))
	}
	if l.Includes(dispatch.ScopeEntities) {
		sections = append(sections, describedSection("Entities:", "entities", entityRows(l.Entities)))
	}
	if l.Includes(dispatch.ScopeAssetTypes) {
		sections = append(sections, describedSection("Asset Types:", "asset types", assetTypeRows(l.AssetTypes)))
	}
	if l.Includes(dispatch.ScopeAssets) {
		sections = append(sections, assetsSection(l.Assets))
	}
	if l.Includes(dispatch.ScopeCommands) {
		sections = append(sections, commandsSection(l.Commands))
	}
	fmt.Fprint(r.out, strings.Join(sections, "\n"))
}

func principlesSection(principles []registry.Principle) string {
	if len(principles) == 0 {
		return ui.Info("No principles defined") + "\n"
	}
	var b strings.Builder
	b.WriteString(ui.Header("Principles:") + "\n")
	t := ui.NewTable(2)
	for _, p := range principles {
		guidance := p.Guidance
		if guidance == "" {
			guidance = ui.Hint("No guidance provided")
		}
		t.AddRow("  "+ui.AccentBold.Render(p.ShortName), fmt.Sprintf("(%s): %s", p.LongName, guidance))
	}
	b.WriteString(t.String())
	return b.String()
}

func entityRows(entities []registry.Entity) [][2]string {
	rows := make([][2]string, len(entities))
	for i, e := range entities {
		rows[i] = [2]string{e.ShortName, e.Description}
	}
	return rows
}

func assetTypeRows(types []registry.AssetType) [][2]string {
	rows := make([][2]string, len(types))
	for i, at := range types {
		rows[i] = [2]string{at.ShortName, at.Description}
	}
	return rows
}

func describedSection(title, plural string, rows [][2]string) string {
	if len(rows) == 0 {
		return ui.Info("No "+plural+" defined") + "\n"
	}
	var b strings.Builder
	b.WriteString(ui.Header(title) + "\n")
	t := ui.NewTable(2)
	for _, row := range rows {
		t.AddRow("  "+ui.AccentBold.Render(row[0]), "("+row[1]+")")
	}
	b.WriteString(t.String())
	return b.String()
}

func assetsSection(assets []registry.AssetReference) string {
	if len(assets) == 0 {
		return ui.Info("No asset references defined") + "\n"
	}
	var b strings.Builder
	b.WriteString(ui.Header("Asset References:") + "\n")
	t := ui.NewTable(4)
	t.AddRow("  "+ui.Bold.Render("Asset"), ui.Bold.Render("Entity"), ui.Bold.Render("Type"), ui.Bold.Render("Path"))
	for _, a := range assets {
		name := ui.AccentBold.Render(a.ShortName)
		if a.Exemplar {
			name += " " + ui.Muted.Render("(Exemplar)")
		}
		t.AddRow("  "+name, a.Entity, a.AssetType, filepath.Base(a.Path))
	}
	b.WriteString(t.String())
	return b.String()
}

func commandsSection(cmds []registry.Command) string {
	if len(cmds) == 0 {
		return ui.Info("No commands defined") + "\n"
	}
	var b strings.Builder
	b.WriteString(ui.Header("Commands:") + "\n")
	t := ui.NewTable(3)
	for _, c := range cmds {
		note := ""
		if c.OriginalName != "" {
			note = ui.Hint("(was " + c.OriginalName + ")")
		} else if !c.BuiltIn {
			note = ui.Hint("(custom)")
		}
		t.AddRow("  "+ui.AccentBold.Render(c.Name), c.Description, note)
	}
	b.WriteString(t.String())
	return b.String()
}

func (r *renderer) reviews(ar *dispatch.AssetReviews) {
	a := ar.Asset
	exemplar := "No"
	if a.Exemplar {
		exemplar = "Yes"
	}
	fmt.Fprintln(r.out, ui.Info("Asset Information: "+ui.Name(a.ShortName)))
	fmt.Fprintf(r.out, "  Entity: %s\n", a.Entity)
	fmt.Fprintf(r.out, "  Type: %s\n", a.AssetType)
	fmt.Fprintf(r.out, "  Path: %s\n", ui.FilePath(a.Path))
	fmt.Fprintf(r.out, "  Exemplar: %s\n", exemplar)
	fmt.Fprintf(r.out, "  Last modified: %s\n", a.LastModified.Format(time.RFC3339))

	if len(ar.Reviews) == 0 {
		fmt.Fprintln(r.out, "\n  "+ui.Hint("No reviews stored"))
		return
	}

	indent := "  "
	if ar.Selected {
		fmt.Fprintln(r.out, "\n  Reviews for selected principles:")
		indent = "    "
	}
	for _, entry := range ar.Reviews {
		label := ui.AccentBold.Render(entry.Principle)
		if entry.LongName != "" {
			label += " (" + entry.LongName + ")"
		}
		if entry.Review == nil {
			fmt.Fprintf(r.out, "\n%s%s Principle: %s\n", indent, label, ui.Hint("No review"))
			continue
		}
		analysis := entry.Review.Analysis
		if analysis == "" {
			analysis = ui.Hint("No analysis provided")
		}
		fmt.Fprintf(r.out, "\n%s%s Principle:\n", indent, label)
		fmt.Fprintf(r.out, "%s  Rating: %s\n", indent, entry.Review.Rating.Label())
		fmt.Fprintf(r.out, "%s  Analysis: %s\n", indent, analysis)
		fmt.Fprintf(r.out, "%s  Last modified: %s\n", indent, entry.Review.LastModified.Format(time.RFC3339))
	}
}

func (r *renderer) instructions(in *dispatch.Instructions) {
	if r.display != nil && r.display.IsTTY {
		rendered, err := ui.RenderMarkdown(in.Markdown(), r.display.AvailableWidth(ui.MarkdownRenderMargin))
		if err == nil {
			fmt.Fprint(r.out, rendered)
			return
		}
		ui.Debug("markdown render failed", "err", err)
	}
	fmt.Fprint(r.out, in.Text())
}
