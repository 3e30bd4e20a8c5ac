// Package config handles global vql configuration and per-workspace settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config represents the global vql configuration.
type Config struct {
	// DefaultWorkspace is the name of the workspace used when no workspace is
	// found by searching upward from the current directory.
	DefaultWorkspace string `toml:"default_workspace"`

	// Workspaces maps workspace names to project directories (the parent of VQL/).
	Workspaces map[string]string `toml:"workspaces"`

	// UI controls optional CLI theming preferences.
	UI UIConfig `toml:"ui"`
}

// UIConfig represents optional CLI theming preferences.
type UIConfig struct {
	// Accent is an optional accent color for CLI output.
	// Supported values are ANSI color codes ("0" to "255") or hex colors ("#RRGGBB").
	Accent string `toml:"accent"`

	// CodeTheme sets the Glamour/Chroma theme used when rendering instructions.
	CodeTheme string `toml:"code_theme"`
}

// GetWorkspacePath returns the project directory of a named workspace.
// If name is empty, the default workspace is used.
func (c *Config) GetWorkspacePath(name string) (string, error) {
	if name == "" {
		name = c.DefaultWorkspace
	}
	if name == "" {
		return "", fmt.Errorf("no default workspace configured")
	}
	if path, ok := c.Workspaces[name]; ok {
		return path, nil
	}
	return "", fmt.Errorf("workspace '%s' not found in config", name)
}

// WorkspaceNames returns configured workspace names, sorted.
func (c *Config) WorkspaceNames() []string {
	names := make([]string, 0, len(c.Workspaces))
	for name := range c.Workspaces {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Load loads the configuration from the default location.
// Returns a default config if the file doesn't exist.
func Load() (*Config, error) {
	return LoadFrom(DefaultPath())
}

// LoadFrom loads the configuration from a specific path. A missing file
// yields an empty config.
func LoadFrom(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &Config{}, nil
	}

	var config Config
	if _, err := toml.DecodeFile(path, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return &config, nil
}

// ResolveConfigPath resolves the effective config path from an optional override.
func ResolveConfigPath(explicitConfigPath string) string {
	if strings.TrimSpace(explicitConfigPath) != "" {
		return explicitConfigPath
	}
	return DefaultPath()
}

// DefaultPath returns the default config file path.
// Checks ~/.config/vql/config.toml first (XDG style),
// then falls back to OS-specific location.
func DefaultPath() string {
	if home, err := os.UserHomeDir(); err == nil {
		xdgPath := filepath.Join(home, ".config", "vql", "config.toml")
		if _, err := os.Stat(xdgPath); err == nil {
			return xdgPath
		}
	}

	if configDir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(configDir, "vql", "config.toml")
	}

	return filepath.Join(".", "config.toml")
}
