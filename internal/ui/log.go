package ui

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
)

// Logger is the process-wide diagnostic logger. It writes to stderr so that
// command output on stdout stays machine readable.
var Logger = newLogger(os.Stderr, false)

// SetupLogging configures the logger based on verbosity. Verbose mode
// enables debug messages with timestamps and caller information.
func SetupLogging(verbose bool) {
	Logger = newLogger(os.Stderr, verbose)
}

func newLogger(w io.Writer, verbose bool) *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}

	formatter := log.TextFormatter
	if !isTerminal(w) {
		formatter = log.LogfmtFormatter
	}

	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Prefix:          "vql",
		Formatter:       formatter,
		ReportTimestamp: verbose,
		ReportCaller:    verbose,
		TimeFormat:      "15:04:05",
	})
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Debug logs a debug message.
func Debug(msg string, keyvals ...interface{}) {
	Logger.Debug(msg, keyvals...)
}

// Warn logs a warning message.
func Warn(msg string, keyvals ...interface{}) {
	Logger.Warn(msg, keyvals...)
}
