package ui

import (
	"strings"

	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
)

// MarkdownRenderMargin is the left margin of rendered instructions.
const MarkdownRenderMargin = 2

const defaultCodeTheme = "monokai"

var markdownCodeTheme = defaultCodeTheme

// ConfigureMarkdownCodeTheme applies the [ui] code_theme setting. Names are
// matched against chroma's style registry; unknown names fall back to the
// default.
func ConfigureMarkdownCodeTheme(theme string) {
	theme = strings.ToLower(strings.TrimSpace(theme))
	if _, ok := styles.Registry[theme]; !ok {
		markdownCodeTheme = defaultCodeTheme
		return
	}
	markdownCodeTheme = theme
}

// RenderMarkdown renders review and refactor instructions for a terminal.
// The result ends with exactly one newline.
func RenderMarkdown(content string, width int) (string, error) {
	if width <= 0 {
		width = DefaultTermWidth
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(instructionStyle()),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}

	rendered, err := r.Render(content)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(rendered, "\n") + "\n", nil
}

// instructionStyle covers what instruction documents contain: a title, a
// step heading, numbered steps with nested bullets, inline commands such as
// :uc.st(a, "...") and the occasional fenced snippet in principle guidance.
func instructionStyle() ansi.StyleConfig {
	muted := strPtr("8")
	commandColor := strPtr("203")
	var accent *string
	if color, ok := AccentColor(); ok {
		accent = strPtr(color)
	}

	return ansi.StyleConfig{
		Document: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{
				BlockPrefix: "\n",
				BlockSuffix: "\n",
			},
			Margin: uintPtr(MarkdownRenderMargin),
		},
		Paragraph: ansi.StyleBlock{},
		BlockQuote: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{Color: muted},
			Indent:         uintPtr(1),
			IndentToken:    strPtr("│ "),
		},
		List: ansi.StyleList{
			LevelIndent: 3,
		},
		Heading: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{
				BlockSuffix: "\n",
				Color:       accent,
				Bold:        boolPtr(true),
			},
		},
		// Title: "LLM Review Request", "Global LLM Refactor Request".
		H1: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{Underline: boolPtr(true)},
		},
		// Step heading: "Review Process", "Refactoring Process".
		H2: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{Prefix: "» "},
		},
		H3: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{Prefix: "### "},
		},
		Emph: ansi.StylePrimitive{
			Italic: boolPtr(true),
		},
		Strong: ansi.StylePrimitive{
			Bold: boolPtr(true),
		},
		HorizontalRule: ansi.StylePrimitive{
			Color:  muted,
			Format: "\n--------\n",
		},
		Item: ansi.StylePrimitive{
			BlockPrefix: "- ",
		},
		Enumeration: ansi.StylePrimitive{
			BlockPrefix: ". ",
			Bold:        boolPtr(true),
		},
		Link: ansi.StylePrimitive{
			Color:     muted,
			Underline: boolPtr(true),
		},
		LinkText: ansi.StylePrimitive{
			Color: muted,
		},
		Code: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{
				Color: commandColor,
			},
		},
		CodeBlock: ansi.StyleCodeBlock{
			StyleBlock: ansi.StyleBlock{
				StylePrimitive: ansi.StylePrimitive{Color: commandColor},
				Margin:         uintPtr(MarkdownRenderMargin),
			},
			Theme: markdownCodeTheme,
		},
	}
}

func boolPtr(v bool) *bool { return &v }

func strPtr(v string) *string { return &v }

func uintPtr(v uint) *uint { return &v }
