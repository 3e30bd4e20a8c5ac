// Package slugs turns free-form names into short names the query syntax
// can address, built on gosimple/slug.
package slugs

import (
	"regexp"
	"strings"

	goslug "github.com/gosimple/slug"
)

// addressable matches names that "name?" and ":name.st(...)" can refer to.
var addressable = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// Addressable reports whether name can be used in query syntax.
func Addressable(name string) bool {
	return addressable.MatchString(name)
}

// ShortName converts s into a lowercase name of letters, digits and
// underscores. Returns "" when nothing usable remains.
func ShortName(s string) string {
	return strings.ReplaceAll(goslug.Make(s), "-", "_")
}
