package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadWorkspaceConfigDefaults(t *testing.T) {
	cfg, err := LoadWorkspaceConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadWorkspaceConfig: %v", err)
	}
	if !cfg.IsAutoRatingEnabled() || !cfg.IsAuditLogEnabled() {
		t.Errorf("defaults should enable auto rating and audit log: %+v", cfg)
	}
	if cfg.Placeholder() != DefaultGuidancePlaceholder {
		t.Errorf("Placeholder = %q", cfg.Placeholder())
	}
}

func TestLoadWorkspaceConfig(t *testing.T) {
	dir := t.TempDir()
	content := "auto_rating: false\nprinciples_file: docs/principles.md\n"
	if err := os.WriteFile(filepath.Join(dir, "vql.yaml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadWorkspaceConfig(dir)
	if err != nil {
		t.Fatalf("LoadWorkspaceConfig: %v", err)
	}
	if cfg.IsAutoRatingEnabled() {
		t.Error("auto_rating: false was ignored")
	}
	if !cfg.IsAuditLogEnabled() {
		t.Error("audit_log should default to true when omitted")
	}
	if cfg.PrinciplesFile != "docs/principles.md" {
		t.Errorf("PrinciplesFile = %q", cfg.PrinciplesFile)
	}
	if cfg.GuidancePlaceholder != DefaultGuidancePlaceholder {
		t.Errorf("GuidancePlaceholder = %q", cfg.GuidancePlaceholder)
	}
}

func TestLoadWorkspaceConfigInvalid(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "vql.yaml"), []byte("auto_rating: [oops"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadWorkspaceConfig(dir); err == nil {
		t.Error("expected parse error")
	}
}

func TestCreateDefaultWorkspaceConfig(t *testing.T) {
	dir := t.TempDir()

	created, err := CreateDefaultWorkspaceConfig(dir)
	if err != nil || !created {
		t.Fatalf("first create = %v, %v", created, err)
	}
	created, err = CreateDefaultWorkspaceConfig(dir)
	if err != nil || created {
		t.Fatalf("second create = %v, %v", created, err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "vql.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "auto_rating: true") {
		t.Errorf("default config missing auto_rating:\n%s", data)
	}

	cfg, err := LoadWorkspaceConfig(dir)
	if err != nil {
		t.Fatalf("default config does not parse: %v", err)
	}
	if !cfg.IsAutoRatingEnabled() {
		t.Error("default config disables auto rating")
	}
}
