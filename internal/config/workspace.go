package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/aidanlsb/vql/internal/atomicfile"
	"github.com/aidanlsb/vql/internal/paths"
)

// DefaultGuidancePlaceholder is shown for principles without guidance.
const DefaultGuidancePlaceholder = "No guidance"

// WorkspaceConfig represents workspace-level configuration from VQL/vql.yaml.
type WorkspaceConfig struct {
	// AutoRating derives a H/M/L rating from stored review text (default: true).
	AutoRating *bool `yaml:"auto_rating,omitempty"`

	// AuditLog appends every successful mutation to VQL/audit.log (default: true).
	AuditLog *bool `yaml:"audit_log,omitempty"`

	// GuidancePlaceholder replaces missing principle guidance in review and
	// refactor instructions.
	GuidancePlaceholder string `yaml:"guidance_placeholder,omitempty"`

	// PrinciplesFile is the import file used by "-pr -get" without a path,
	// relative to the workspace root.
	PrinciplesFile string `yaml:"principles_file,omitempty"`
}

func boolPtr(b bool) *bool {
	return &b
}

// DefaultWorkspaceConfig returns the settings used when vql.yaml is absent.
func DefaultWorkspaceConfig() *WorkspaceConfig {
	return &WorkspaceConfig{
		AutoRating:          boolPtr(true),
		AuditLog:            boolPtr(true),
		GuidancePlaceholder: DefaultGuidancePlaceholder,
	}
}

// IsAutoRatingEnabled returns whether ratings are derived from review text.
func (wc *WorkspaceConfig) IsAutoRatingEnabled() bool {
	if wc == nil || wc.AutoRating == nil {
		return true
	}
	return *wc.AutoRating
}

// IsAuditLogEnabled returns whether mutations are written to the audit log.
func (wc *WorkspaceConfig) IsAuditLogEnabled() bool {
	if wc == nil || wc.AuditLog == nil {
		return true
	}
	return *wc.AuditLog
}

// Placeholder returns the configured guidance placeholder.
func (wc *WorkspaceConfig) Placeholder() string {
	if wc == nil || wc.GuidancePlaceholder == "" {
		return DefaultGuidancePlaceholder
	}
	return wc.GuidancePlaceholder
}

// LoadWorkspaceConfig loads vql.yaml from the storage directory.
func LoadWorkspaceConfig(storageDir string) (*WorkspaceConfig, error) {
	configPath := filepath.Join(storageDir, paths.WorkspaceConfigName)

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return DefaultWorkspaceConfig(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read workspace config %s: %w", configPath, err)
	}

	var config WorkspaceConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse workspace config %s: %w", configPath, err)
	}

	if config.GuidancePlaceholder == "" {
		config.GuidancePlaceholder = DefaultGuidancePlaceholder
	}

	return &config, nil
}

// CreateDefaultWorkspaceConfig writes a commented vql.yaml unless one exists.
// It reports whether the file was created.
func CreateDefaultWorkspaceConfig(storageDir string) (bool, error) {
	configPath := filepath.Join(storageDir, paths.WorkspaceConfigName)

	if _, err := os.Stat(configPath); err == nil {
		return false, nil
	}

	defaultConfig := `# VQL Workspace Configuration
# These settings control how commands behave in this workspace.

# Derive a H/M/L rating from stored review text such as "High compliance"
# or "compliance: low" (default: true).
auto_rating: true

# Append every successful change to VQL/audit.log (default: true).
audit_log: true

# Text shown in review/refactor instructions for principles without guidance.
guidance_placeholder: No guidance

# Default file for "vql -pr -get" when no path is given (relative to the project).
# principles_file: docs/principles.md
`

	if err := atomicfile.WriteFile(configPath, []byte(defaultConfig), 0o644); err != nil {
		return false, fmt.Errorf("failed to write workspace config: %w", err)
	}

	return true, nil
}
