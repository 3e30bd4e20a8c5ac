package ui

import "fmt"

// Status symbols. Outcomes are told apart by symbol, not by color.
const (
	SymbolSuccess = "✓"
	SymbolWarning = "⚠"
	SymbolInfo    = "ℹ"
)

// Success prefixes a completed mutation message.
func Success(msg string) string {
	return SymbolSuccess + " " + msg
}

// Warning prefixes a non-fatal problem, such as a name the query syntax
// cannot address.
func Warning(msg string) string {
	return SymbolWarning + " " + msg
}

// Info prefixes neutral status lines.
func Info(msg string) string {
	return SymbolInfo + " " + msg
}

// Infof is Info with formatting.
func Infof(format string, args ...interface{}) string {
	return Info(fmt.Sprintf(format, args...))
}

// Error formats a failed command the way scripts expect to grep for it.
func Error(msg string) string {
	return "ERROR: " + msg
}

// Header renders a section title.
func Header(msg string) string {
	return Bold.Render(msg)
}

// Name renders a short name (principle, entity, asset type, asset).
func Name(name string) string {
	return Accent.Render(name)
}

// FilePath renders an asset path.
func FilePath(path string) string {
	return Accent.Render(path)
}

// Hint renders secondary text: suggestions and placeholders.
func Hint(msg string) string {
	return Muted.Render(msg)
}
