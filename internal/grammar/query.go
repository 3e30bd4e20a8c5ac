package grammar

import "regexp"

var bareQueryRe = regexp.MustCompile(`^([A-Za-z0-9_]+)(?:\s*\?\s*(?:\((.*)\))?)?$`)

// parseQuery matches "name", "name?", "name ?" and "name ? (p1, p2)".
func parseQuery(body, raw string) (Command, bool) {
	m := bareQueryRe.FindStringSubmatch(body)
	if m == nil {
		return Command{}, false
	}
	return queryCommand(m[1], m[2], SyntaxQuery, raw), true
}

// queryCommand builds a ShowReviews command. An empty or wildcard principle
// list means every review of the asset.
func queryCommand(asset, principles string, syntax Syntax, raw string) Command {
	args := []string{asset}
	if list := ParsePrincipleList(principles); !list.All {
		args = append(args, list.Names...)
	}
	return Command{Kind: ShowReviews, Syntax: syntax, Args: args, Raw: raw}
}
