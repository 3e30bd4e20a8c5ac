package dispatch

import (
	"fmt"
	"slices"
	"strings"

	"github.com/aidanlsb/vql/internal/grammar"
	"github.com/aidanlsb/vql/internal/registry"
)

// Instruction modes.
const (
	ModeReview         = "review"
	ModeRefactor       = "refactor"
	ModeGlobalReview   = "global_review"
	ModeGlobalRefactor = "global_refactor"
)

// AssetSummary names an asset and where it lives.
type AssetSummary struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// PrincipleGuidance is a principle with its guidance resolved (or the
// configured placeholder when it has none).
type PrincipleGuidance struct {
	ShortName string `json:"short_name"`
	LongName  string `json:"long_name"`
	Guidance  string `json:"guidance"`
}

func (p PrincipleGuidance) line() string {
	return fmt.Sprintf("%s (%s): %s", p.ShortName, p.LongName, p.Guidance)
}

// Step is one numbered instruction. Details are printed indented below it;
// a detail may carry extra leading spaces to nest further.
type Step struct {
	Text    string   `json:"text"`
	Details []string `json:"details,omitempty"`
}

// Instructions is the advisory output of rv and rf: an ordered script an
// LLM (or a person) follows to review or refactor assets and then store
// the results with st.
type Instructions struct {
	Mode       string              `json:"mode"`
	Title      string              `json:"title"`
	Asset      *AssetSummary       `json:"asset,omitempty"`
	Assets     []AssetSummary      `json:"assets,omitempty"`
	References []AssetSummary      `json:"references,omitempty"`
	Principles []PrincipleGuidance `json:"principles"`
	Summary    []string            `json:"summary"`
	Heading    string              `json:"heading"`
	Steps      []Step              `json:"steps"`
	Footer     string              `json:"footer,omitempty"`
	Total      int                 `json:"total,omitempty"`
}

// Text renders the instructions as plain text.
func (in *Instructions) Text() string {
	var b strings.Builder
	b.WriteString(in.Title + ":\n")
	for _, line := range in.Summary {
		b.WriteString(line + "\n")
	}
	b.WriteString("\n" + in.Heading + ":\n")
	for i, step := range in.Steps {
		fmt.Fprintf(&b, "%d. %s\n", i+1, step.Text)
		for _, d := range step.Details {
			b.WriteString("   " + d + "\n")
		}
	}
	if in.Footer != "" {
		b.WriteString("\n" + in.Footer + "\n")
	}
	return b.String()
}

// Markdown renders the instructions as a markdown document for glamour.
func (in *Instructions) Markdown() string {
	var b strings.Builder
	b.WriteString("# " + in.Title + "\n\n")
	for _, line := range in.Summary {
		if trimmed := strings.TrimSpace(line); strings.HasPrefix(trimmed, "- ") {
			b.WriteString(trimmed + "\n")
			continue
		}
		b.WriteString(line + "\n\n")
	}
	b.WriteString("\n## " + in.Heading + "\n\n")
	for i, step := range in.Steps {
		fmt.Fprintf(&b, "%d. %s\n", i+1, step.Text)
		for _, d := range step.Details {
			depth := len(d) - len(strings.TrimLeft(d, " "))
			item := strings.TrimPrefix(strings.TrimLeft(d, " "), "- ")
			b.WriteString(strings.Repeat(" ", 3+depth) + "- " + item + "\n")
		}
	}
	if in.Footer != "" {
		b.WriteString("\n" + in.Footer + "\n")
	}
	return b.String()
}

func (d *Dispatcher) guidance(reg *registry.Registry, names []string) []PrincipleGuidance {
	out := make([]PrincipleGuidance, 0, len(names))
	for _, name := range names {
		p, ok := reg.Principles[name]
		if !ok {
			continue
		}
		g := p.Guidance
		if g == "" {
			g = d.cfg.Placeholder()
		}
		out = append(out, PrincipleGuidance{ShortName: name, LongName: p.LongName, Guidance: g})
	}
	return out
}

func guidanceLines(principles []PrincipleGuidance, prefix string) []string {
	lines := make([]string, 0, len(principles))
	for _, p := range principles {
		lines = append(lines, prefix+p.line())
	}
	return lines
}

// resolvePrinciples turns a raw principle list into validated short names.
// Wildcards expand to every principle in sorted order.
func resolvePrinciples(reg *registry.Registry, raw string) ([]string, error) {
	list := grammar.ParsePrincipleList(raw)
	available := reg.Names(registry.KindPrinciple)

	var names []string
	if list.All {
		names = available
	}
	for _, name := range list.Names {
		if _, ok := reg.Principles[name]; !ok {
			return nil, &registry.NotFoundError{Kind: registry.KindPrinciple.String(), Name: name, Available: available}
		}
		if !slices.Contains(names, name) {
			names = append(names, name)
		}
	}

	if len(names) == 0 {
		return nil, &registry.InvalidArgumentError{Reason: "No valid principles specified"}
	}
	return names, nil
}

func lookupAsset(reg *registry.Registry, name string) (registry.AssetReference, error) {
	ref, ok := reg.AssetReferences[name]
	if !ok {
		return registry.AssetReference{}, &registry.NotFoundError{
			Kind:      registry.KindAssetReference.String(),
			Name:      name,
			Available: reg.Names(registry.KindAssetReference),
		}
	}
	return ref, nil
}

func (d *Dispatcher) reviewAsset(reg *registry.Registry, assetName, raw string) (*Instructions, error) {
	asset, err := lookupAsset(reg, assetName)
	if err != nil {
		return nil, err
	}
	names, err := resolvePrinciples(reg, raw)
	if err != nil {
		return nil, err
	}
	principles := d.guidance(reg, names)
	list := strings.Join(names, ", ")

	return &Instructions{
		Mode:       ModeReview,
		Title:      "LLM Review Request",
		Asset:      &AssetSummary{Name: assetName, Path: asset.Path},
		Principles: principles,
		Summary: []string{
			fmt.Sprintf("Asset: %s (%s)", assetName, asset.Path),
			"Principles to review: " + list,
		},
		Heading: "Review Instructions",
		Steps: []Step{
			{Text: "Read asset from: " + asset.Path},
			{Text: "Review for principles: " + list},
			{Text: "For each principle:", Details: guidanceLines(principles, "- ")},
			{Text: "Rate each principle (H/M/L)"},
			{Text: "Provide detailed analysis"},
			{Text: fmt.Sprintf(`Store results using :%s.st(%s, "Review with rating...")`, assetName, names[0])},
		},
	}, nil
}

// splitRefactorArgs classifies rf arguments. With commas, the leading
// principles (or "-pr") are principles and everything after the first
// non-principle is a reference asset. A single existing asset name means
// "refactor towards that asset" using the principles it was reviewed for.
// Anything else is a plain principle list.
func splitRefactorArgs(reg *registry.Registry, raw string) ([]string, []string, error) {
	raw = strings.TrimSpace(raw)

	if strings.Contains(raw, ",") {
		var principleParts, references []string
		inReferences := false
		for _, part := range strings.Split(raw, ",") {
			part = strings.Trim(strings.TrimSpace(part), `"`)
			if part == "" {
				continue
			}
			_, isPrinciple := reg.Principles[part]
			if !inReferences && (part == "-pr" || part == "*" || isPrinciple) {
				principleParts = append(principleParts, part)
				continue
			}
			inReferences = true
			references = append(references, part)
		}

		var names []string
		if len(principleParts) > 0 {
			var err error
			names, err = resolvePrinciples(reg, strings.Join(principleParts, ","))
			if err != nil {
				return nil, nil, err
			}
		}
		for _, ref := range references {
			if _, err := lookupAsset(reg, ref); err != nil {
				return nil, nil, err
			}
		}
		return names, references, nil
	}

	if !strings.Contains(raw, "*") && !strings.Contains(raw, "-pr") {
		if _, ok := reg.AssetReferences[raw]; ok {
			return reg.ReviewedPrinciples(raw), []string{raw}, nil
		}
	}

	names, err := resolvePrinciples(reg, raw)
	if err != nil {
		return nil, nil, err
	}
	return names, nil, nil
}

func (d *Dispatcher) refactorAsset(reg *registry.Registry, assetName, raw string) (*Instructions, error) {
	asset, err := lookupAsset(reg, assetName)
	if err != nil {
		return nil, err
	}
	names, references, err := splitRefactorArgs(reg, raw)
	if err != nil {
		return nil, err
	}
	principles := d.guidance(reg, names)
	list := strings.Join(names, ", ")

	in := &Instructions{
		Mode:       ModeRefactor,
		Title:      "LLM Refactor Request",
		Asset:      &AssetSummary{Name: assetName, Path: asset.Path},
		Principles: principles,
		Summary:    []string{fmt.Sprintf("Asset: %s (%s)", assetName, asset.Path)},
		Heading:    "Refactor Instructions",
		Steps:      []Step{{Text: "Read asset from: " + asset.Path}},
	}

	if len(references) > 0 {
		in.Summary = append(in.Summary, "Using reference assets: "+strings.Join(references, ", "))
		for _, name := range references {
			ref := reg.AssetReferences[name]
			in.References = append(in.References, AssetSummary{Name: name, Path: ref.Path})
			in.Summary = append(in.Summary, fmt.Sprintf("  - %s (%s)", name, ref.Path))
		}
		if len(names) > 0 {
			in.Summary = append(in.Summary, "Principles to refactor for: "+list)
		}
		in.Steps = append(in.Steps,
			Step{Text: "Read reference assets and analyze their patterns"},
			Step{Text: "Apply similar patterns to improve the target asset"},
		)
	} else {
		in.Summary = append(in.Summary, "Principles to refactor for: "+list)
		in.Steps = append(in.Steps,
			Step{Text: "Consider principles: " + list, Details: guidanceLines(principles, "- ")},
			Step{Text: "Identify improvements for each principle"},
		)
	}

	in.Steps = append(in.Steps,
		Step{Text: "Apply refactoring changes"},
		Step{Text: "MANDATORY: Review refactored code and update all reviews"},
		Step{Text: "Store updated reviews with 'After refactoring:' prefix"},
	)
	return in, nil
}

func allAssets(reg *registry.Registry) ([]AssetSummary, error) {
	names := reg.Names(registry.KindAssetReference)
	if len(names) == 0 {
		return nil, &registry.InvalidArgumentError{Reason: "No assets found in the project"}
	}
	assets := make([]AssetSummary, 0, len(names))
	for _, name := range names {
		assets = append(assets, AssetSummary{Name: name, Path: reg.AssetReferences[name].Path})
	}
	return assets, nil
}

func assetLines(assets []AssetSummary) []string {
	lines := make([]string, 0, len(assets))
	for _, a := range assets {
		lines = append(lines, fmt.Sprintf("- %s (%s)", a.Name, a.Path))
	}
	return lines
}

func (d *Dispatcher) reviewAll(reg *registry.Registry, raw string) (*Instructions, error) {
	names, err := resolvePrinciples(reg, raw)
	if err != nil {
		return nil, err
	}
	assets, err := allAssets(reg)
	if err != nil {
		return nil, err
	}
	list := strings.Join(names, ", ")
	total := len(assets) * len(names)

	return &Instructions{
		Mode:       ModeGlobalReview,
		Title:      "LLM Global Review Request",
		Assets:     assets,
		Principles: d.guidance(reg, names),
		Summary: []string{
			fmt.Sprintf("Total assets: %d", len(assets)),
			"Principles to review: " + list,
		},
		Heading: "Global Review Instructions",
		Steps: []Step{
			{Text: fmt.Sprintf("Review all %d assets:", len(assets)), Details: assetLines(assets)},
			{Text: "For each asset, review principles: " + list},
			{Text: "Rate each principle (H/M/L)"},
			{Text: "Provide detailed analysis"},
			{Text: `Store results using :[asset].st([principle], "Review with rating...")`},
		},
		Footer: fmt.Sprintf("Total reviews to perform: %d assets × %d principles = %d reviews",
			len(assets), len(names), total),
		Total: total,
	}, nil
}

func (d *Dispatcher) refactorAll(reg *registry.Registry, raw string) (*Instructions, error) {
	names, err := resolvePrinciples(reg, raw)
	if err != nil {
		return nil, err
	}
	assets, err := allAssets(reg)
	if err != nil {
		return nil, err
	}
	principles := d.guidance(reg, names)
	list := strings.Join(names, ", ")
	total := len(assets) * len(names)

	perAsset := []string{
		"a. Read the current implementation",
		"b. Consider principles: " + list,
	}
	perAsset = append(perAsset, guidanceLines(principles, "   - ")...)
	perAsset = append(perAsset,
		"c. Identify improvements for each principle",
		"d. Apply refactoring changes",
		"e. MANDATORY: Review refactored code and update all reviews",
	)

	return &Instructions{
		Mode:       ModeGlobalRefactor,
		Title:      "LLM Global Refactor Request",
		Assets:     assets,
		Principles: principles,
		Summary: []string{
			fmt.Sprintf("Total assets: %d", len(assets)),
			"Principles to refactor for: " + list,
		},
		Heading: "Global Refactor Instructions",
		Steps: []Step{
			{Text: fmt.Sprintf("Process all %d assets:", len(assets)), Details: assetLines(assets)},
			{Text: "For each asset:", Details: perAsset},
			{Text: "Store updated reviews with 'After refactoring:' prefix"},
		},
		Footer: fmt.Sprintf("Total refactorings: %d assets × %d principles = %d potential improvements",
			len(assets), len(names), total),
		Total: total,
	}, nil
}
