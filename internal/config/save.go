package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/aidanlsb/vql/internal/atomicfile"
)

type persistedConfig struct {
	DefaultWorkspace *string              `toml:"default_workspace,omitempty"`
	Workspaces       map[string]string    `toml:"workspaces,omitempty"`
	UI               *persistedUISettings `toml:"ui,omitempty"`
}

type persistedUISettings struct {
	Accent    *string `toml:"accent,omitempty"`
	CodeTheme *string `toml:"code_theme,omitempty"`
}

func nonEmptyPtr(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// SaveTo writes the global config to a specific path atomically.
func SaveTo(path string, cfg *Config) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("config path is required")
	}
	if cfg == nil {
		cfg = &Config{}
	}

	out := persistedConfig{
		DefaultWorkspace: nonEmptyPtr(cfg.DefaultWorkspace),
	}
	if len(cfg.Workspaces) > 0 {
		out.Workspaces = cfg.Workspaces
	}

	accent := nonEmptyPtr(cfg.UI.Accent)
	codeTheme := nonEmptyPtr(cfg.UI.CodeTheme)
	if accent != nil || codeTheme != nil {
		out.UI = &persistedUISettings{
			Accent:    accent,
			CodeTheme: codeTheme,
		}
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(out); err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := atomicfile.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}

	return nil
}

// RegisterWorkspace records root under name in the config at path, creating
// the file if needed. An existing entry for name is left alone. The first
// registered workspace becomes the default. It reports whether the file changed.
func RegisterWorkspace(path, name, root string) (bool, error) {
	cfg, err := LoadFrom(path)
	if err != nil {
		return false, err
	}
	if _, exists := cfg.Workspaces[name]; exists {
		return false, nil
	}
	if cfg.Workspaces == nil {
		cfg.Workspaces = make(map[string]string)
	}
	cfg.Workspaces[name] = root
	if cfg.DefaultWorkspace == "" {
		cfg.DefaultWorkspace = name
	}
	if err := SaveTo(path, cfg); err != nil {
		return false, err
	}
	return true, nil
}
