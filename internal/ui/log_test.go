package ui

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func TestNewLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, false)
	assert.Equal(t, log.InfoLevel, l.GetLevel())

	l.Debug("hidden")
	assert.Empty(t, buf.String())

	verbose := newLogger(&buf, true)
	assert.Equal(t, log.DebugLevel, verbose.GetLevel())
	verbose.Debug("saved registry", "path", "VQL/vql_storage.json")
	assert.Contains(t, buf.String(), "saved registry")
	assert.Contains(t, buf.String(), "VQL/vql_storage.json")
}

func TestNewLoggerUsesLogfmtOffTerminal(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, false)
	l.Warn("slow save", "ms", 12)
	assert.Contains(t, buf.String(), "msg=\"slow save\"")
	assert.Contains(t, buf.String(), "ms=12")
}

func TestSetupLoggingReplacesLogger(t *testing.T) {
	orig := Logger
	t.Cleanup(func() { Logger = orig })

	SetupLogging(true)
	assert.Equal(t, log.DebugLevel, Logger.GetLevel())
	SetupLogging(false)
	assert.Equal(t, log.InfoLevel, Logger.GetLevel())
}
