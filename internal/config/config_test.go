package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfigGetWorkspacePath(t *testing.T) {
	t.Run("named workspace", func(t *testing.T) {
		cfg := &Config{
			Workspaces: map[string]string{
				"shop": "/code/shop",
				"blog": "/code/blog",
			},
		}

		path, err := cfg.GetWorkspacePath("shop")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if path != "/code/shop" {
			t.Errorf("expected '/code/shop', got %q", path)
		}
	})

	t.Run("default workspace", func(t *testing.T) {
		cfg := &Config{
			DefaultWorkspace: "blog",
			Workspaces: map[string]string{
				"shop": "/code/shop",
				"blog": "/code/blog",
			},
		}

		path, err := cfg.GetWorkspacePath("")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if path != "/code/blog" {
			t.Errorf("expected '/code/blog', got %q", path)
		}
	})

	t.Run("no default", func(t *testing.T) {
		cfg := &Config{}
		if _, err := cfg.GetWorkspacePath(""); err == nil {
			t.Error("expected error without default workspace")
		}
	})

	t.Run("unknown name", func(t *testing.T) {
		cfg := &Config{Workspaces: map[string]string{"shop": "/code/shop"}}
		if _, err := cfg.GetWorkspacePath("nope"); err == nil {
			t.Error("expected error for unknown workspace")
		}
	})
}

func TestLoadFrom(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `default_workspace = "shop"

[workspaces]
shop = "/code/shop"
blog = "/code/blog"

[ui]
accent = "39"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.DefaultWorkspace != "shop" {
		t.Errorf("DefaultWorkspace = %q", cfg.DefaultWorkspace)
	}
	if got := cfg.WorkspaceNames(); len(got) != 2 || got[0] != "blog" || got[1] != "shop" {
		t.Errorf("WorkspaceNames = %v", got)
	}
	if cfg.UI.Accent != "39" {
		t.Errorf("UI.Accent = %q", cfg.UI.Accent)
	}
}

func TestLoadFromMissingFile(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.DefaultWorkspace != "" || len(cfg.Workspaces) != 0 {
		t.Errorf("expected empty config, got %+v", cfg)
	}
}

func TestLoadFromInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("default_workspace = "), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFrom(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestResolveConfigPath(t *testing.T) {
	if got := ResolveConfigPath("/tmp/custom.toml"); got != "/tmp/custom.toml" {
		t.Errorf("explicit path = %q", got)
	}
	if got := ResolveConfigPath("  "); got != DefaultPath() {
		t.Errorf("blank path = %q, want default %q", got, DefaultPath())
	}
}
