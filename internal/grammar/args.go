package grammar

import (
	"strings"
)

// PrincipleList is a parsed list of principle short names.
type PrincipleList struct {
	// All is set by the wildcards "*" and "-pr".
	All   bool
	Names []string
}

// SplitList splits a list on commas and whitespace, dropping quotes and
// empty items.
func SplitList(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	out := fields[:0]
	for _, f := range fields {
		if f = strings.Trim(f, `"`); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// ParsePrincipleList parses "a,s", "a s", "*" or "-pr". Duplicates are
// dropped keeping first occurrence order. Names are not validated here.
func ParsePrincipleList(raw string) PrincipleList {
	var list PrincipleList
	seen := make(map[string]bool)
	for _, item := range SplitList(raw) {
		if item == "*" || item == "-pr" {
			list.All = true
			continue
		}
		if seen[item] {
			continue
		}
		seen[item] = true
		list.Names = append(list.Names, item)
	}
	return list
}

// ParseExemplarFlag accepts t/f, true/false, yes/no and y/n in any case.
func ParseExemplarFlag(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "t", "true", "y", "yes":
		return true, nil
	case "f", "false", "n", "no":
		return false, nil
	}
	return false, &InvalidValueError{
		Reason: "invalid exemplar status: " + raw + ". Use true/t/yes/y or false/f/no/n",
	}
}

func formatBool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
