package grammar

import "strings"

// flagUsage holds the usage line reported for each flag form.
var flagUsage = map[string]string{
	"rn":       "-rn old_name new_name",
	"dl":       "-dl name",
	"pr -add":  `-pr -add short_name long_name ["guidance"]`,
	"pr -get":  `-pr -get "path/to/principles.md"`,
	"pr -rn":   "-pr -rn old_name new_name",
	"pr -dl":   "-pr -dl name",
	"er -add":  "-er -add short_name [description]",
	"er -rn":   "-er -rn old_name new_name",
	"er -dl":   "-er -dl name",
	"at -add":  "-at -add short_name description",
	"at -rn":   "-at -rn old_name new_name",
	"at -dl":   "-at -dl name",
	"ar -add":  "-ar -add short_name entity asset_type path",
	"ar -rn":   "-ar -rn old_name new_name",
	"ar -dl":   "-ar -dl name",
	"cmd -add": "-cmd -add name description",
	"cmd -rn":  "-cmd -rn old_name new_name",
	"st":       `-st asset_name principle "Review Content"`,
	"se":       "-se asset t|f",
	"sc":       "-sc asset principle H|M|L",
}

func argCount(form string, got int) error {
	return &ArgumentCountError{Command: "-" + form, Got: got, Usage: flagUsage[form]}
}

// parseFlag parses dash-prefixed syntax. body starts with '-'; raw is the
// full original input for error reporting.
func parseFlag(body, raw string) (Command, error) {
	return parseFlagWords(tokenize(body), raw)
}

// parseFlagWords parses flag syntax that is already split into words.
func parseFlagWords(words []string, raw string) (Command, error) {
	if len(words) == 0 {
		return Command{}, &UnknownCommandError{Raw: raw}
	}
	verb := strings.TrimLeft(words[0], "-")
	rest := words[1:]
	cmd := func(kind Kind, args ...string) (Command, error) {
		return Command{Kind: kind, Syntax: SyntaxFlag, Args: args, Raw: raw}, nil
	}

	switch verb {
	case "rn":
		if len(rest) != 2 {
			return Command{}, argCount("rn", len(rest))
		}
		return cmd(Rename, rest...)
	case "dl":
		if len(rest) != 1 {
			return Command{}, argCount("dl", len(rest))
		}
		return cmd(Delete, rest[0])

	case "pr", "er", "at", "ar", "cmd":
		if len(rest) == 0 {
			return cmd(dashListAliases["-"+verb])
		}
		return parseScopedFlag(verb, rest[0], rest[1:], cmd)

	case "st":
		if len(rest) < 3 {
			return Command{}, argCount("st", len(rest))
		}
		return cmd(StoreReview, rest[0], rest[1], strings.Join(rest[2:], " "))
	case "se":
		if len(rest) != 2 {
			return Command{}, argCount("se", len(rest))
		}
		flag, err := ParseExemplarFlag(rest[1])
		if err != nil {
			return Command{}, err
		}
		return cmd(SetExemplar, rest[0], formatBool(flag))
	case "sc":
		if len(rest) != 3 {
			return Command{}, argCount("sc", len(rest))
		}
		return cmd(SetCompliance, rest...)
	case "su":
		if len(rest) == 0 {
			return cmd(Setup)
		}
		return cmd(Setup, strings.Join(rest, " "))
	}
	return Command{}, &UnknownCommandError{Raw: raw}
}

func parseScopedFlag(verb, sub string, args []string, cmd func(Kind, ...string) (Command, error)) (Command, error) {
	if !strings.HasPrefix(sub, "-") {
		return Command{}, &InvalidSubcommandError{Verb: verb, Subcommand: sub}
	}
	op := strings.TrimLeft(sub, "-")
	form := verb + " -" + op

	switch op {
	case "rn":
		kind, ok := scopedRenameKinds[verb]
		if !ok {
			break
		}
		if len(args) != 2 {
			return Command{}, argCount(form, len(args))
		}
		return cmd(kind, args...)

	case "dl":
		kind, ok := scopedDeleteKinds[verb]
		if !ok {
			break
		}
		if len(args) != 1 {
			return Command{}, argCount(form, len(args))
		}
		return cmd(kind, args[0])

	case "get":
		if verb != "pr" {
			break
		}
		if len(args) == 0 {
			return cmd(ImportPrinciples)
		}
		return cmd(ImportPrinciples, strings.Join(args, " "))

	case "add":
		switch verb {
		case "pr":
			if len(args) < 2 {
				return Command{}, argCount(form, len(args))
			}
			if len(args) == 2 {
				return cmd(AddPrinciple, args[0], args[1])
			}
			return cmd(AddPrinciple, args[0], args[1], strings.Join(args[2:], " "))
		case "er":
			if len(args) == 0 {
				return Command{}, argCount(form, 0)
			}
			if len(args) == 1 {
				return cmd(AddEntity, args[0], args[0])
			}
			return cmd(AddEntity, args[0], strings.Join(args[1:], " "))
		case "at":
			if len(args) < 2 {
				return Command{}, argCount(form, len(args))
			}
			return cmd(AddAssetType, args[0], strings.Join(args[1:], " "))
		case "cmd":
			if len(args) < 2 {
				return Command{}, argCount(form, len(args))
			}
			return cmd(AddCommand, args[0], strings.Join(args[1:], " "))
		case "ar":
			if len(args) < 4 {
				return Command{}, argCount(form, len(args))
			}
			return cmd(AddAsset, args[0], args[1], args[2], strings.Join(args[3:], " "))
		}
	}
	return Command{}, &InvalidSubcommandError{Verb: verb, Subcommand: sub}
}
