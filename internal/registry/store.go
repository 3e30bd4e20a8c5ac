package registry

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/aidanlsb/vql/internal/atomicfile"
	"github.com/aidanlsb/vql/internal/paths"
)

const (
	StorageDirName = paths.StorageDirName
	DocumentName   = paths.DocumentName
)

// DocumentPath returns the path of the registry document in dir.
func DocumentPath(dir string) string {
	return filepath.Join(dir, DocumentName)
}

// Exists reports whether dir already holds a registry document.
func Exists(dir string) bool {
	info, err := os.Stat(DocumentPath(dir))
	return err == nil && info.Mode().IsRegular()
}

// Load reads the registry document from the storage directory dir. A
// directory without a document yields NewDefault.
func Load(dir string) (*Registry, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, &IOError{Op: "open storage directory", Path: dir, Err: err}
	}
	if !info.IsDir() {
		return nil, &IOError{Op: "open storage directory", Path: dir, Err: errors.New("not a directory")}
	}

	path := DocumentPath(dir)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewDefault(), nil
	}
	if err != nil {
		return nil, &IOError{Op: "read", Path: path, Err: err}
	}

	return Decode(data, path)
}

// Decode parses a registry document. path is only used in errors.
func Decode(data []byte, path string) (*Registry, error) {
	var r Registry
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, &IOError{Op: "parse", Path: path, Err: err}
	}
	r.normalize()
	return &r, nil
}

// Save writes the registry document into the storage directory dir,
// replacing any previous document atomically. Readers never see a torn
// document, but Save does not detect a document changed on disk since it
// was loaded: of two overlapping load-modify-save runs, the last save wins.
func (r *Registry) Save(dir string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return &IOError{Op: "encode", Path: dir, Err: err}
	}
	data = append(data, '\n')

	path := DocumentPath(dir)
	if err := atomicfile.WriteFile(path, data, 0); err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}
	return nil
}

// normalize fills collections that older documents omit.
func (r *Registry) normalize() {
	if r.Version == "" {
		r.Version = DocumentVersion
	}
	if r.Commands == nil {
		r.Commands = make(map[string]Command)
	}
	if r.AssetTypes == nil {
		r.AssetTypes = make(map[string]AssetType)
	}
	if r.Entities == nil {
		r.Entities = make(map[string]Entity)
	}
	if r.Principles == nil {
		r.Principles = make(map[string]Principle)
	}
	if r.AssetReferences == nil {
		r.AssetReferences = make(map[string]AssetReference)
	}
	for name, ref := range r.AssetReferences {
		if ref.PrincipleReviews == nil {
			ref.PrincipleReviews = make(map[string]Review)
			r.AssetReferences[name] = ref
		}
	}
}
