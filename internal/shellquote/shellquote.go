// Package shellquote formats words for the command lines vql suggests to
// the user.
package shellquote

import "strings"

// Quote wraps s in single quotes, escaping any internal single quotes.
func Quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// QuoteIfNeeded quotes strings that a shell would split or expand.
func QuoteIfNeeded(s string) string {
	if s == "" || strings.ContainsAny(s, " \t\n#[]()|!\"'$*?&;<>`\\~{}") {
		return Quote(s)
	}
	return s
}
