package dispatch

import (
	"fmt"
	"path/filepath"

	"github.com/aidanlsb/vql/internal/grammar"
	"github.com/aidanlsb/vql/internal/paths"
	"github.com/aidanlsb/vql/internal/principles"
	"github.com/aidanlsb/vql/internal/registry"
)

// principlesFile picks the import file: an explicit path is taken relative
// to the working directory, the configured principles_file relative to the
// workspace root.
func (d *Dispatcher) principlesFile(arg string) (string, error) {
	if arg != "" {
		p := paths.ExpandHome(arg)
		if !filepath.IsAbs(p) {
			p = filepath.Join(d.workDir, p)
		}
		return p, nil
	}
	if d.cfg.PrinciplesFile == "" {
		return "", &registry.InvalidArgumentError{
			Reason: "no principles file given and principles_file is not set in " + paths.WorkspaceConfigName,
		}
	}
	p := paths.ExpandHome(d.cfg.PrinciplesFile)
	if !filepath.IsAbs(p) {
		p = filepath.Join(paths.WorkspaceRoot(d.storageDir), p)
	}
	return p, nil
}

func (d *Dispatcher) importPrinciples(reg *registry.Registry, cmd grammar.Command) (*Outcome, error) {
	file, err := d.principlesFile(cmd.Arg(0))
	if err != nil {
		return nil, err
	}

	sections, err := principles.ParseFile(file)
	if err != nil {
		return nil, &registry.IOError{Op: "read principles file", Path: file, Err: err}
	}
	d.log.Debug("parsed principles file", "path", file, "sections", len(sections))

	result := &ImportResult{File: file, Principles: make([]string, 0, len(sections))}
	for _, s := range sections {
		if err := reg.AddPrinciple(s.ShortName, s.LongName, s.Guidance); err != nil {
			return nil, fmt.Errorf("%s line %d: %w", file, s.Line, err)
		}
		result.Principles = append(result.Principles, s.ShortName)
	}

	out := &Outcome{
		Message: fmt.Sprintf("Loaded %d principles from %s", len(sections), file),
		Mutated: len(sections) > 0,
		Data:    result,
	}
	out.record = func() error {
		return d.audit.LogImport(file, cmd.Raw, result.Principles)
	}
	return out, nil
}
