package dispatch

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/aidanlsb/vql/internal/audit"
	"github.com/aidanlsb/vql/internal/config"
	"github.com/aidanlsb/vql/internal/grammar"
	"github.com/aidanlsb/vql/internal/paths"
	"github.com/aidanlsb/vql/internal/registry"
)

// setup creates <root>/VQL with a default registry document and vql.yaml.
// Running it again on an existing workspace only fills in missing files.
func (d *Dispatcher) setup(cmd grammar.Command) (*Outcome, error) {
	root := d.workDir
	if arg := cmd.Arg(0); arg != "" {
		root = paths.ExpandHome(arg)
		if !filepath.IsAbs(root) {
			root = filepath.Join(d.workDir, root)
		}
	}
	root = filepath.Clean(root)

	info, err := os.Stat(root)
	switch {
	case os.IsNotExist(err):
		if err := os.MkdirAll(root, 0o755); err != nil {
			return nil, &registry.IOError{Op: "create directory", Path: root, Err: err}
		}
		d.log.Debug("created workspace directory", "path", root)
	case err != nil:
		return nil, &registry.IOError{Op: "stat", Path: root, Err: err}
	case !info.IsDir():
		return nil, &registry.InvalidArgumentError{Reason: "Invalid directory path: " + root}
	}

	storageDir := paths.StorageDir(root)
	result := &SetupResult{Root: root, StorageDir: storageDir}

	if info, err := os.Stat(storageDir); err == nil && info.IsDir() {
		result.AlreadyExisted = true
	} else if err := os.MkdirAll(storageDir, 0o755); err != nil {
		return nil, &registry.IOError{Op: "create storage directory", Path: storageDir, Err: err}
	}

	if !registry.Exists(storageDir) {
		if err := registry.NewDefault().Save(storageDir); err != nil {
			return nil, err
		}
		result.CreatedDocument = true
	}

	created, err := config.CreateDefaultWorkspaceConfig(storageDir)
	if err != nil {
		return nil, &registry.IOError{Op: "write workspace config", Path: storageDir, Err: err}
	}
	result.CreatedConfig = created

	out := &Outcome{
		Kind:    cmd.Kind,
		Command: cmd.Kind.String(),
		Mutated: result.CreatedDocument,
		Data:    result,
	}
	if result.AlreadyExisted {
		out.Message = "VQL directory already exists at " + storageDir
	} else {
		out.Message = "VQL initialized successfully in: " + storageDir
	}

	if d.globalConfigPath != "" {
		registered, err := config.RegisterWorkspace(d.globalConfigPath, filepath.Base(root), root)
		if err != nil {
			out.Warnings = append(out.Warnings, fmt.Sprintf("could not register workspace in %s: %v", d.globalConfigPath, err))
		}
		result.Registered = registered
	}

	if result.CreatedDocument {
		logger := audit.New(storageDir, d.cfg.IsAuditLogEnabled())
		if err := logger.Log(audit.Entry{Operation: "setup", Kind: "workspace", Name: root, Command: cmd.Raw}); err != nil {
			d.log.Warn("audit log write failed", "path", logger.Path(), "err", err)
		}
	}

	return out, nil
}
