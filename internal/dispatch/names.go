package dispatch

import (
	"fmt"

	"github.com/aidanlsb/vql/internal/shellquote"
	"github.com/aidanlsb/vql/internal/slugs"
)

func nameWarnings(name string) []string {
	if slugs.Addressable(name) {
		return nil
	}
	msg := fmt.Sprintf("'%s' cannot be addressed by the query syntax", name)
	if suggestion := slugs.ShortName(name); suggestion != "" {
		msg += fmt.Sprintf("; consider renaming it: vql -rn %s %s", shellquote.QuoteIfNeeded(name), suggestion)
	}
	return []string{msg}
}
