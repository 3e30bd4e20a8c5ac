// Package testutil provides reusable test utilities for vql workspace tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aidanlsb/vql/internal/paths"
	"github.com/aidanlsb/vql/internal/registry"
)

// TestWorkspace represents a temporary project directory holding VQL/.
type TestWorkspace struct {
	Root       string
	StorageDir string
	t          *testing.T
	registry   *registry.Registry
	config     string
	files      map[string]string
}

// NewTestWorkspace creates a new test workspace builder.
// Call Build() to create the actual directory.
func NewTestWorkspace(t *testing.T) *TestWorkspace {
	t.Helper()
	return &TestWorkspace{
		t:     t,
		files: make(map[string]string),
	}
}

// WithRegistry sets the registry document saved by Build. Without it Build
// saves registry.New().
func (w *TestWorkspace) WithRegistry(reg *registry.Registry) *TestWorkspace {
	w.registry = reg
	return w
}

// WithFile adds a file to the project.
// The path is relative to the workspace root.
func (w *TestWorkspace) WithFile(path, content string) *TestWorkspace {
	w.files[path] = content
	return w
}

// WithConfig sets the VQL/vql.yaml content.
func (w *TestWorkspace) WithConfig(yaml string) *TestWorkspace {
	w.config = yaml
	return w
}

// Build creates the project directory, VQL/ and all configured files.
// Returns the TestWorkspace for method chaining.
func (w *TestWorkspace) Build() *TestWorkspace {
	w.t.Helper()

	w.Root = w.t.TempDir()
	w.StorageDir = paths.StorageDir(w.Root)
	if err := os.MkdirAll(w.StorageDir, 0o755); err != nil {
		w.t.Fatalf("failed to create storage directory: %v", err)
	}

	reg := w.registry
	if reg == nil {
		reg = registry.New()
	}
	if err := reg.Save(w.StorageDir); err != nil {
		w.t.Fatalf("failed to save registry: %v", err)
	}

	if w.config != "" {
		w.writeFile(filepath.Join(paths.StorageDirName, paths.WorkspaceConfigName), w.config)
	}
	for path, content := range w.files {
		w.writeFile(path, content)
	}

	return w
}

// writeFile writes a file to the workspace, creating directories as needed.
func (w *TestWorkspace) writeFile(relPath, content string) {
	w.t.Helper()
	fullPath := filepath.Join(w.Root, relPath)

	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		w.t.Fatalf("failed to create directory %s: %v", dir, err)
	}
	if err := os.WriteFile(fullPath, []byte(content), 0o644); err != nil {
		w.t.Fatalf("failed to write file %s: %v", fullPath, err)
	}
}

// ReadFile reads a file from the workspace.
func (w *TestWorkspace) ReadFile(relPath string) string {
	w.t.Helper()
	content, err := os.ReadFile(filepath.Join(w.Root, relPath))
	if err != nil {
		w.t.Fatalf("failed to read file %s: %v", relPath, err)
	}
	return string(content)
}

// Document returns the raw registry document.
func (w *TestWorkspace) Document() string {
	w.t.Helper()
	return w.ReadFile(filepath.Join(paths.StorageDirName, paths.DocumentName))
}

// Registry loads the registry document as currently saved on disk.
func (w *TestWorkspace) Registry() *registry.Registry {
	w.t.Helper()
	reg, err := registry.Load(w.StorageDir)
	if err != nil {
		w.t.Fatalf("failed to load registry: %v", err)
	}
	return reg
}

// FileExists checks if a file exists in the workspace.
func (w *TestWorkspace) FileExists(relPath string) bool {
	w.t.Helper()
	_, err := os.Stat(filepath.Join(w.Root, relPath))
	return err == nil
}

// SampleRegistry returns a registry with entity u (User), asset type c
// (Controller), principles a and s, and asset uc pointing at
// src/UserController.js. Pair it with SampleFiles.
func SampleRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	reg := registry.New()
	steps := []error{
		reg.AddPrinciple("a", "Architecture", "Layering and boundaries"),
		reg.AddPrinciple("s", "Security", ""),
		reg.AddEntity("u", "User"),
		reg.AddAssetType("c", "Controller"),
		reg.AddAssetReference("uc", "u", "c", "src/UserController.js"),
	}
	for _, err := range steps {
		if err != nil {
			t.Fatalf("failed to build sample registry: %v", err)
		}
	}
	return reg
}

// SampleFiles returns the source files SampleRegistry refers to.
func SampleFiles() map[string]string {
	return map[string]string{
		"src/UserController.js":  "export class UserController {}\n",
		"src/OrderController.js": "export class OrderController {}\n",
	}
}

// WithSample configures the sample registry and its files.
func (w *TestWorkspace) WithSample() *TestWorkspace {
	w.t.Helper()
	w.registry = SampleRegistry(w.t)
	for path, content := range SampleFiles() {
		w.files[path] = content
	}
	return w
}
