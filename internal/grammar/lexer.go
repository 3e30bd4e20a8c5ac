package grammar

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// arg is one argument of a functional call.
type arg struct {
	Value  string // unquoted, trimmed value
	Quoted bool   // the whole argument was one double-quoted string
}

// lexer splits command text while respecting double-quoted runs.
type lexer struct {
	input string
	pos   int

	// danglingComma is set when nextArg consumed a comma that ends the input.
	danglingComma bool
}

func newLexer(input string) *lexer {
	return &lexer{input: input}
}

func (l *lexer) eof() bool {
	return l.pos >= len(l.input)
}

// peek decodes the rune at the current position.
func (l *lexer) peek() (rune, int) {
	return utf8.DecodeRuneInString(l.input[l.pos:])
}

func (l *lexer) skipWhitespace() {
	for !l.eof() {
		r, size := l.peek()
		if !unicode.IsSpace(r) {
			return
		}
		l.pos += size
	}
}

// nextWord scans one whitespace-delimited word. Quotes group spaces into the
// word and are dropped from the result.
func (l *lexer) nextWord() (string, bool) {
	l.skipWhitespace()
	if l.eof() {
		return "", false
	}

	var b strings.Builder
	inQuote := false
	for !l.eof() {
		r, size := l.peek()
		if r == '"' {
			inQuote = !inQuote
			l.pos += size
			continue
		}
		if !inQuote && unicode.IsSpace(r) {
			break
		}
		b.WriteString(l.input[l.pos : l.pos+size])
		l.pos += size
	}
	return b.String(), true
}

// nextArg scans up to the next comma outside quotes.
func (l *lexer) nextArg() (arg, bool) {
	if l.eof() {
		return arg{}, false
	}

	start := l.pos
	inQuote := false
	for !l.eof() {
		ch := l.input[l.pos]
		if ch == '"' {
			inQuote = !inQuote
		} else if ch == ',' && !inQuote {
			break
		}
		l.pos++
	}
	raw := l.input[start:l.pos]
	if !l.eof() {
		l.pos++ // comma
		l.danglingComma = l.eof()
	}
	return makeArg(raw), true
}

func makeArg(raw string) arg {
	trimmed := strings.TrimSpace(raw)
	if len(trimmed) >= 2 && trimmed[0] == '"' && trimmed[len(trimmed)-1] == '"' &&
		!strings.Contains(trimmed[1:len(trimmed)-1], `"`) {
		return arg{Value: trimmed[1 : len(trimmed)-1], Quoted: true}
	}
	return arg{Value: strings.Trim(trimmed, `"`)}
}

// tokenize splits flag syntax into words.
func tokenize(input string) []string {
	l := newLexer(input)
	var words []string
	for {
		w, ok := l.nextWord()
		if !ok {
			return words
		}
		words = append(words, w)
	}
}

// splitArgs splits the inside of a functional call on commas outside quotes.
// Blank input yields no arguments.
func splitArgs(inner string) []arg {
	if strings.TrimSpace(inner) == "" {
		return nil
	}
	l := newLexer(inner)
	var args []arg
	for {
		a, ok := l.nextArg()
		if !ok {
			break
		}
		args = append(args, a)
	}
	// A comma that ends the input leaves an empty final argument.
	if l.danglingComma {
		args = append(args, arg{})
	}
	return args
}

// joinRest rebuilds free text from the arguments after the fixed ones. A
// single quoted argument is kept exactly; otherwise parts are re-joined with
// ", ", which cannot tell embedded commas from separators.
func joinRest(args []arg) string {
	if len(args) == 1 {
		return args[0].Value
	}
	values := make([]string, len(args))
	for i, a := range args {
		values[i] = a.Value
	}
	return strings.Join(values, ", ")
}

func values(args []arg) []string {
	out := make([]string, len(args))
	for i, a := range args {
		out[i] = a.Value
	}
	return out
}
