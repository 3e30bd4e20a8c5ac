// Package commands provides a central registry of vql command verbs.
// This registry is the single source of truth for command metadata: it
// drives the usage text and seeds the built-in command records stored in
// every registry document.
package commands

import (
	"sort"
	"strings"
)

// Meta defines metadata for one command verb.
type Meta struct {
	Name        string   // Verb as typed (e.g. "st", "pr")
	Title       string   // Human name (e.g. "Store")
	Description string   // Short description, stored on built-in command records
	Functional  []string // Colon-prefixed forms
	Flag        []string // Dash-prefixed forms
	Examples    []string // Full example invocations
	LLMOnly     bool     // Advisory commands meant for an LLM driver
	BuiltIn     bool     // Seeded into new registries

	// MutatesRegistry is set in init from mutatingVerbs.
	MutatesRegistry bool
}

// Registry holds all known verbs.
var Registry = map[string]Meta{
	"pr": {
		Name:        "pr",
		Title:       "Principle",
		Description: "Principle - Manages principles for reviewing assets",
		Functional: []string{
			`:pr`,
			`:pr.add(short, long[, "guidance"])`,
			`:pr.rn(old, new)`,
			`:pr.dl(name)`,
			`:-pr.get("path/to/principles.md")`,
		},
		Flag: []string{
			`-pr`,
			`-pr -add <short> <long> [guidance...]`,
			`-pr -get <path>`,
			`-pr -rn <old> <new>`,
			`-pr -dl <name>`,
		},
		Examples: []string{
			`vql -pr -add a Architecture "Layering and boundaries"`,
			`vql ':pr.add(s, Security, "Validate all input")'`,
			`vql -pr -get principles.md`,
		},
		BuiltIn: true,
	},
	"er": {
		Name:        "er",
		Title:       "Entity Register",
		Description: "Entity Register - Manages entity definitions",
		Functional:  []string{`:er`, `:er.add(short, description)`, `:er.rn(old, new)`, `:er.dl(name)`},
		Flag:        []string{`-er`, `-er -add <short> [description...]`, `-er -rn <old> <new>`, `-er -dl <name>`},
		Examples:    []string{`vql -er -add u User`},
		BuiltIn:     true,
	},
	"at": {
		Name:        "at",
		Title:       "Asset Type",
		Description: "Asset Type - Manages asset types",
		Functional:  []string{`:at`, `:at.add(short, description)`, `:at.rn(old, new)`, `:at.dl(name)`},
		Flag:        []string{`-at`, `-at -add <short> <description...>`, `-at -rn <old> <new>`, `-at -dl <name>`},
		Examples:    []string{`vql -at -add c Controller`},
		BuiltIn:     true,
	},
	"ar": {
		Name:        "ar",
		Title:       "Asset Register",
		Description: "Asset Register - Manages asset references",
		Functional: []string{
			`:ar`,
			`:ar.add(short, entity, type, "path")`,
			`:-ar.add(short, entity, type, "path")`,
			`:ar.rn(old, new)`,
			`:ar.dl(name)`,
		},
		Flag:     []string{`-ar`, `-ar -add <short> <entity> <type> <path>`, `-ar -rn <old> <new>`, `-ar -dl <name>`},
		Examples: []string{`vql -ar -add uc u c src/UserController.js`},
		BuiltIn:  true,
	},
	"cmd": {
		Name:        "cmd",
		Title:       "Commands",
		Description: "Command management - Lists and renames command records",
		Functional:  []string{`:cmd`, `:cmd.add(name, description)`, `:cmd.rn(old, new)`},
		Flag:        []string{`-cmd`, `-cmd -add <name> <description...>`, `-cmd -rn <old> <new>`},
	},
	"ls": {
		Name:        "ls",
		Title:       "List",
		Description: "List - Shows principles, entities, asset types and assets",
		Functional:  []string{`:ls`, `:ls()`},
	},
	"rn": {
		Name:        "rn",
		Title:       "Rename",
		Description: "Rename - Renames any principle, entity, asset type or asset",
		Functional:  []string{`:rn(old, new)`},
		Flag:        []string{`-rn <old> <new>`},
		Examples:    []string{`vql -rn u usr`},
	},
	"dl": {
		Name:        "dl",
		Title:       "Delete",
		Description: "Delete - Deletes any principle, entity, asset type or asset",
		Functional:  []string{`:dl(name)`},
		Flag:        []string{`-dl <name>`},
	},
	"st": {
		Name:        "st",
		Title:       "Store",
		Description: "Store - Stores a review for an asset",
		Functional:  []string{`:<asset>.st(principle, "review text")`},
		Flag:        []string{`-st <asset> <principle> <review text...>`},
		Examples:    []string{`vql -st uc a "High compliance, clean layering"`, `vql ':uc.st(a, "Looks good")'`},
		BuiltIn:     true,
	},
	"se": {
		Name:        "se",
		Title:       "Set Exemplar",
		Description: "Set Exemplar - Sets exemplar status for an asset",
		Functional:  []string{`:<asset>.se(t|f)`},
		Flag:        []string{`-se <asset> t|f`},
		Examples:    []string{`vql -se uc t`},
		BuiltIn:     true,
	},
	"sc": {
		Name:        "sc",
		Title:       "Set Compliance",
		Description: "Set Compliance - Sets compliance rating for an asset",
		Functional:  []string{`:<asset>.sc(principle, H|M|L)`},
		Flag:        []string{`-sc <asset> <principle> H|M|L`},
		Examples:    []string{`vql -sc uc a H`},
		BuiltIn:     true,
	},
	"su": {
		Name:        "su",
		Title:       "Setup",
		Description: "Setup - Creates the VQL directory in a project",
		Functional:  []string{`:-su("path/to/project")`},
		Flag:        []string{`-su [path...]`},
		Examples:    []string{`vql -su ~/code/shop`},
		BuiltIn:     true,
	},
	"rv": {
		Name:        "rv",
		Title:       "Review",
		Description: "Review - AI-assisted review of assets (LLM only)",
		Functional:  []string{`:<asset>.rv(*|principles)`, `:-rv(*|principles)`},
		Examples:    []string{`vql ':uc.rv(*)'`, `vql ':uc.rv(a s)'`, `vql ':-rv(a,s)'`},
		LLMOnly:     true,
		BuiltIn:     true,
	},
	"rf": {
		Name:        "rf",
		Title:       "Refactor",
		Description: "Refactor - AI-assisted refactoring of assets (LLM only)",
		Functional:  []string{`:<asset>.rf(*|principles[, reference assets])`, `:-rf(*|principles)`},
		Examples:    []string{`vql ':uc.rf(a)'`, `vql ':uc.rf(pc)'`, `vql ':-rf(*)'`},
		LLMOnly:     true,
		BuiltIn:     true,
	},
	"?": {
		Name:        "?",
		Title:       "Query",
		Description: "Query - Shows stored reviews for an asset",
		Functional:  []string{`:<asset>?`, `:<asset>?(principle)`, `:<asset> ? (p1, p2)`},
		Flag:        []string{`<asset> ?`, `<asset>?(principle)`},
		Examples:    []string{`vql uc?`, `vql 'uc ? (a,s)'`},
	},
}

// Names returns all verbs in sorted order.
func Names() []string {
	names := make([]string, 0, len(Registry))
	for name := range Registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// BuiltIns returns the metadata of verbs seeded into new registries, sorted by name.
func BuiltIns() []Meta {
	var out []Meta
	for _, name := range Names() {
		if meta := Registry[name]; meta.BuiltIn {
			out = append(out, meta)
		}
	}
	return out
}

// Usage renders the help text printed on a bare invocation.
func Usage() string {
	var b strings.Builder
	b.WriteString("VQL - Virtual Quality Language CLI\n\n")
	b.WriteString("Usage:\n")
	b.WriteString("  vql -<command> [args]          # CLI commands with dash prefix\n")
	b.WriteString("  vql :<command> [args]          # LLM commands (for AI use)\n")
	b.WriteString("  vql <asset>?[(principles)]     # Show stored reviews\n\n")

	b.WriteString("CLI commands:\n")
	for _, name := range Names() {
		for _, form := range Registry[name].Flag {
			b.WriteString("  vql " + form + "\n")
		}
	}

	b.WriteString("\nLLM commands:\n")
	for _, name := range Names() {
		for _, form := range Registry[name].Functional {
			b.WriteString("  vql " + form + "\n")
		}
	}

	var writes, reads []string
	for _, name := range Names() {
		if Registry[name].MutatesRegistry {
			writes = append(writes, name)
		} else {
			reads = append(reads, name)
		}
	}
	b.WriteString("\nCan change the registry: " + strings.Join(writes, " ") + "\n")
	b.WriteString("Read only:               " + strings.Join(reads, " ") + "\n")

	b.WriteString("\nGlobal options (before the command):\n")
	b.WriteString("  --json  --verbose  --config <file>  --workspace <name>  --workspace-path <dir>  --version\n")
	return b.String()
}
