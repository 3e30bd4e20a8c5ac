package testutil

import (
	"os"
	"path/filepath"
	"strings"
)

// AssertFileExists fails the test if the file does not exist.
func (w *TestWorkspace) AssertFileExists(relPath string) {
	w.t.Helper()
	if _, err := os.Stat(filepath.Join(w.Root, relPath)); os.IsNotExist(err) {
		w.t.Errorf("expected file to exist: %s", relPath)
	}
}

// AssertFileNotExists fails the test if the file exists.
func (w *TestWorkspace) AssertFileNotExists(relPath string) {
	w.t.Helper()
	if _, err := os.Stat(filepath.Join(w.Root, relPath)); err == nil {
		w.t.Errorf("expected file to not exist: %s", relPath)
	}
}

// AssertDocumentUnchanged fails the test if the registry document differs
// from before.
func (w *TestWorkspace) AssertDocumentUnchanged(before string) {
	w.t.Helper()
	if after := w.Document(); after != before {
		w.t.Errorf("expected registry document to be unchanged\nbefore:\n%s\nafter:\n%s", before, after)
	}
}

// AssertDocumentContains fails the test if the registry document does not
// contain the substring.
func (w *TestWorkspace) AssertDocumentContains(substr string) {
	w.t.Helper()
	if doc := w.Document(); !strings.Contains(doc, substr) {
		w.t.Errorf("expected registry document to contain %q, got:\n%s", substr, doc)
	}
}
