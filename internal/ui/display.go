package ui

import (
	"io"
	"os"

	"github.com/charmbracelet/x/term"
)

// DefaultTermWidth is used when the output is not a terminal or its size
// cannot be read.
const DefaultTermWidth = 100

// minRenderWidth keeps instructions readable in very narrow terminals.
const minRenderWidth = 40

// DisplayContext describes where vql output is going.
type DisplayContext struct {
	TermWidth int  // detected or fallback terminal width
	IsTTY     bool // whether the output writer is a terminal
}

// NewDisplayContext inspects w. Only an *os.File attached to a terminal
// counts as a TTY; buffers and pipes get plain output at DefaultTermWidth.
func NewDisplayContext(w io.Writer) *DisplayContext {
	d := &DisplayContext{TermWidth: DefaultTermWidth}

	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(f.Fd()) {
		return d
	}
	d.IsTTY = true
	if width, _, err := term.GetSize(f.Fd()); err == nil && width > 0 {
		d.TermWidth = width
	}
	return d
}

// AvailableWidth returns the width left after leftMargin, never less than
// minRenderWidth.
func (d *DisplayContext) AvailableWidth(leftMargin int) int {
	if width := d.TermWidth - leftMargin; width > minRenderWidth {
		return width
	}
	return minRenderWidth
}
