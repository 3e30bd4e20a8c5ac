// Package audit provides an append-only audit log for registry mutations.
package audit

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// LogName is the audit log file name inside the storage directory.
const LogName = "audit.log"

// Entry represents a single audit log entry.
type Entry struct {
	Timestamp time.Time              `json:"ts"`
	Operation string                 `json:"op"`   // create, update, rename, delete, import, setup
	Kind      string                 `json:"kind"` // principle, entity, asset type, asset, command, review
	Name      string                 `json:"name,omitempty"`
	Affected  []string               `json:"affected,omitempty"` // assets touched by a cascade
	Command   string                 `json:"command,omitempty"`  // raw command line
	Changes   map[string]interface{} `json:"changes,omitempty"`  // For updates: {field: value}
	Extra     map[string]interface{} `json:"extra,omitempty"`
}

// Logger handles writing to the audit log.
type Logger struct {
	path    string
	enabled bool
	mu      sync.Mutex
}

// New creates a new audit logger writing to storageDir/audit.log.
// If enabled is false, the logger will be a no-op.
func New(storageDir string, enabled bool) *Logger {
	if !enabled {
		return &Logger{enabled: false}
	}
	return &Logger{
		path:    filepath.Join(storageDir, LogName),
		enabled: true,
	}
}

// Path returns the log file path, or "" when disabled.
func (l *Logger) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Enabled returns true if the audit logger is enabled.
func (l *Logger) Enabled() bool {
	return l != nil && l.enabled
}

// Log writes an entry to the audit log.
func (l *Logger) Log(entry Entry) error {
	if !l.Enabled() {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal audit entry: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("failed to create audit directory: %w", err)
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write audit entry: %w", err)
	}

	return nil
}

// LogCreate logs an add (or add-or-update) of a registry record.
func (l *Logger) LogCreate(kind, name, command string, extra map[string]interface{}) error {
	return l.Log(Entry{
		Operation: "create",
		Kind:      kind,
		Name:      name,
		Command:   command,
		Extra:     extra,
	})
}

// LogUpdate logs a field update such as a stored review or exemplar flag.
func (l *Logger) LogUpdate(kind, name, command string, changes map[string]interface{}) error {
	return l.Log(Entry{
		Operation: "update",
		Kind:      kind,
		Name:      name,
		Command:   command,
		Changes:   changes,
	})
}

// LogRename logs a rename together with the assets the cascade touched.
func (l *Logger) LogRename(kind, oldName, newName, command string, affected []string) error {
	return l.Log(Entry{
		Operation: "rename",
		Kind:      kind,
		Name:      newName,
		Affected:  affected,
		Command:   command,
		Changes:   map[string]interface{}{"old": oldName, "new": newName},
	})
}

// LogDelete logs a deletion together with the assets the cascade touched.
func (l *Logger) LogDelete(kind, name, command string, affected []string) error {
	return l.Log(Entry{
		Operation: "delete",
		Kind:      kind,
		Name:      name,
		Affected:  affected,
		Command:   command,
	})
}

// LogImport logs a bulk principle import.
func (l *Logger) LogImport(file, command string, imported []string) error {
	return l.Log(Entry{
		Operation: "import",
		Kind:      "principle",
		Command:   command,
		Affected:  imported,
		Extra:     map[string]interface{}{"file": file},
	})
}

// Read reads all entries from the audit log. Malformed lines are skipped.
func (l *Logger) Read() ([]Entry, error) {
	if !l.Enabled() {
		return nil, nil
	}

	data, err := os.ReadFile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read audit log: %w", err)
	}

	var entries []Entry
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var entry Entry
		if err := json.Unmarshal(line, &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan audit log: %w", err)
	}

	return entries, nil
}
