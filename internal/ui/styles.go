package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
// - Default (white/black): Primary text
// - Accent (configurable, soft purple by default): names, paths, headings
// - Muted (gray): Secondary info, hints, placeholders
// - No colored success/error/warning - use unicode symbols only

const defaultAccent = "#A78BFA"

var accentColor = defaultAccent

var (
	// Accent style for short names, file paths, highlights
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color(defaultAccent))

	// Muted style for secondary info, hints, placeholders
	Muted = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))

	// Bold style for emphasis
	Bold = lipgloss.NewStyle().Bold(true)

	// AccentBold combines accent color with bold
	AccentBold = lipgloss.NewStyle().Foreground(lipgloss.Color(defaultAccent)).Bold(true)
)

// ConfigureTheme applies the [ui] accent setting from the global config.
// "none", "off", "default" or an invalid value turns the accent color off.
func ConfigureTheme(accent string) {
	color, ok := normalizeAccentColor(accent)
	if !ok {
		accentColor = ""
		Accent = lipgloss.NewStyle()
		AccentBold = lipgloss.NewStyle().Bold(true)
		return
	}
	accentColor = color
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	AccentBold = lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(true)
}

// AccentColor returns the active accent color, if any.
func AccentColor() (string, bool) {
	return accentColor, accentColor != ""
}

// normalizeAccentColor accepts ANSI 256 codes ("39") and hex colors
// ("#7aa2f7" or "#abc").
func normalizeAccentColor(value string) (string, bool) {
	value = strings.TrimSpace(value)
	switch strings.ToLower(value) {
	case "", "none", "off", "default":
		return "", false
	}

	if n, err := strconv.Atoi(value); err == nil {
		if n < 0 || n > 255 {
			return "", false
		}
		return strconv.Itoa(n), true
	}

	if !strings.HasPrefix(value, "#") {
		return "", false
	}
	hex := strings.ToLower(value[1:])
	for _, r := range hex {
		if !strings.ContainsRune("0123456789abcdef", r) {
			return "", false
		}
	}
	switch len(hex) {
	case 3:
		return "#" + string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]}), true
	case 6:
		return "#" + hex, true
	}
	return "", false
}
