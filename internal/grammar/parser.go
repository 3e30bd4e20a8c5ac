package grammar

import (
	"regexp"
	"strings"
)

// Parse classifies one command line. A leading ':' selects functional
// syntax, a leading '-' flag syntax, and anything else the bare query.
func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	switch {
	case raw == "":
		return Command{}, &UnrecognizedFormatError{Raw: input}
	case strings.HasPrefix(raw, ":"):
		return parseFunctional(raw)
	case strings.HasPrefix(raw, "-"):
		return parseFlag(raw, raw)
	}
	if cmd, ok := parseQuery(raw, raw); ok {
		return cmd, nil
	}
	return Command{}, &UnrecognizedFormatError{Raw: raw}
}

// ParseWords classifies a command given as shell words. Flag syntax spread
// over several words uses the words as its arguments as they are, so quotes
// and whitespace inside a word survive. A single word, and the functional
// and query syntaxes, go through Parse on the space-joined text.
func ParseWords(words []string) (Command, error) {
	raw := strings.Join(words, " ")
	if len(words) < 2 || !strings.HasPrefix(strings.TrimSpace(words[0]), "-") {
		return Parse(raw)
	}
	flagWords := make([]string, len(words))
	copy(flagWords, words)
	flagWords[0] = strings.TrimSpace(flagWords[0])
	return parseFlagWords(flagWords, raw)
}

var (
	listKeywords = map[string]Kind{
		"ls": ListAll, "ls()": ListAll,
		"pr": ListPrinciples, "pr()": ListPrinciples,
		"er": ListEntities, "er()": ListEntities,
		"at": ListAssetTypes, "at()": ListAssetTypes,
		"ar": ListAssets, "ar()": ListAssets,
		"cmd": ListCommands, "cmd()": ListCommands,
	}
	dashListAliases = map[string]Kind{
		"-pr":  ListPrinciples,
		"-er":  ListEntities,
		"-at":  ListAssetTypes,
		"-ar":  ListAssets,
		"-cmd": ListCommands,
	}

	genericRenameRe = regexp.MustCompile(`^rn\((.*)\)$`)
	genericDeleteRe = regexp.MustCompile(`^dl\((.*)\)$`)
	scopedCallRe    = regexp.MustCompile(`^(-?)(pr|er|at|ar|cmd)\.(add|rn|dl)\((.*)\)$`)
	questionRe      = regexp.MustCompile(`^([A-Za-z0-9_]+)\s*\?\s*(?:\((.*)\))?$`)
	principleGetRe  = regexp.MustCompile(`^-pr\.get\((.*)\)$`)
	assetMethodRe   = regexp.MustCompile(`^([A-Za-z0-9_]+)\.([a-z]{2})\((.*)\)$`)
	globalCallRe    = regexp.MustCompile(`^-(rv|rf|su)\((.*)\)$`)
)

// parseFunctional applies the functional rules in a fixed order: keywords,
// generic rn/dl, scoped calls, question forms, -pr.get, asset methods,
// global calls, dash listing aliases, and finally the flag and bare parsers.
func parseFunctional(raw string) (Command, error) {
	body := strings.TrimSpace(strings.TrimPrefix(raw, ":"))
	fn := func(kind Kind, args ...string) (Command, error) {
		return Command{Kind: kind, Syntax: SyntaxFunctional, Args: args, Raw: raw}, nil
	}

	if kind, ok := listKeywords[body]; ok {
		return fn(kind)
	}

	if m := genericRenameRe.FindStringSubmatch(body); m != nil {
		args := splitArgs(m[1])
		if len(args) != 2 {
			return Command{}, &ArgumentCountError{Command: "rename", Got: len(args), Usage: ":rn(old, new)"}
		}
		return fn(Rename, values(args)...)
	}
	if m := genericDeleteRe.FindStringSubmatch(body); m != nil {
		args := splitArgs(m[1])
		if len(args) != 1 {
			return Command{}, &ArgumentCountError{Command: "delete", Got: len(args), Usage: ":dl(name)"}
		}
		return fn(Delete, args[0].Value)
	}

	if m := scopedCallRe.FindStringSubmatch(body); m != nil {
		if cmd, ok, err := parseScopedCall(m[1] == "-", m[2], m[3], splitArgs(m[4])); ok {
			if err != nil {
				return Command{}, err
			}
			cmd.Syntax, cmd.Raw = SyntaxFunctional, raw
			return cmd, nil
		}
	}

	if m := questionRe.FindStringSubmatch(body); m != nil {
		return queryCommand(m[1], m[2], SyntaxFunctional, raw), nil
	}

	if m := principleGetRe.FindStringSubmatch(body); m != nil {
		args := splitArgs(m[1])
		if len(args) > 1 {
			return Command{}, &ArgumentCountError{Command: "principle import", Got: len(args), Usage: `:-pr.get("path/to/principles.md")`}
		}
		if len(args) == 0 || args[0].Value == "" {
			return fn(ImportPrinciples)
		}
		return fn(ImportPrinciples, args[0].Value)
	}

	if m := assetMethodRe.FindStringSubmatch(body); m != nil {
		if cmd, ok, err := parseAssetMethod(m[1], m[2], m[3]); ok {
			if err != nil {
				return Command{}, err
			}
			cmd.Syntax, cmd.Raw = SyntaxFunctional, raw
			return cmd, nil
		}
	}

	if m := globalCallRe.FindStringSubmatch(body); m != nil {
		inner := strings.TrimSpace(m[2])
		switch m[1] {
		case "rv":
			return fn(ReviewAll, inner)
		case "rf":
			return fn(RefactorAll, inner)
		case "su":
			if path := strings.Trim(inner, `"`); path != "" {
				return fn(Setup, path)
			}
			return fn(Setup)
		}
	}

	if kind, ok := dashListAliases[body]; ok {
		return fn(kind)
	}

	if strings.HasPrefix(body, "-") {
		return parseFlag(body, raw)
	}
	if cmd, ok := parseQuery(body, raw); ok {
		return cmd, nil
	}
	return Command{}, &UnknownCommandError{Raw: raw}
}

// parseScopedCall handles pr/er/at/ar/cmd .add/.rn/.dl calls. ok is false
// when the combination is not a command, so the caller keeps matching.
func parseScopedCall(dashed bool, scope, op string, args []arg) (cmd Command, ok bool, err error) {
	if dashed && !(scope == "ar" && op == "add") {
		return Command{}, false, nil
	}

	switch op {
	case "rn":
		kind, known := scopedRenameKinds[scope]
		if !known {
			return Command{}, false, nil
		}
		if len(args) != 2 {
			return Command{}, true, &ArgumentCountError{Command: scope + " rename", Got: len(args), Usage: ":" + scope + ".rn(old, new)"}
		}
		return Command{Kind: kind, Args: values(args)}, true, nil

	case "dl":
		kind, known := scopedDeleteKinds[scope]
		if !known {
			return Command{}, false, nil
		}
		if len(args) != 1 {
			return Command{}, true, &ArgumentCountError{Command: scope + " delete", Got: len(args), Usage: ":" + scope + ".dl(name)"}
		}
		return Command{Kind: kind, Args: []string{args[0].Value}}, true, nil
	}

	switch scope {
	case "pr":
		if len(args) < 2 {
			return Command{}, true, &ArgumentCountError{Command: "principle add", Got: len(args), Usage: `:pr.add(short, long, "guidance")`}
		}
		out := []string{args[0].Value, args[1].Value}
		if len(args) > 2 {
			out = append(out, joinRest(args[2:]))
		}
		return Command{Kind: AddPrinciple, Args: out}, true, nil
	case "er", "at", "cmd":
		if len(args) < 2 {
			usage := map[string]string{
				"er":  ":er.add(short, description)",
				"at":  ":at.add(short, description)",
				"cmd": ":cmd.add(name, description)",
			}[scope]
			return Command{}, true, &ArgumentCountError{Command: scope + " add", Got: len(args), Usage: usage}
		}
		kind := map[string]Kind{"er": AddEntity, "at": AddAssetType, "cmd": AddCommand}[scope]
		return Command{Kind: kind, Args: []string{args[0].Value, joinRest(args[1:])}}, true, nil
	case "ar":
		if len(args) != 4 {
			return Command{}, true, &ArgumentCountError{Command: "asset add", Got: len(args), Usage: `:ar.add(short, entity, type, "path")`}
		}
		return Command{Kind: AddAsset, Args: values(args)}, true, nil
	}
	return Command{}, false, nil
}

var (
	scopedRenameKinds = map[string]Kind{
		"pr":  RenamePrinciple,
		"er":  RenameEntity,
		"at":  RenameAssetType,
		"ar":  RenameAsset,
		"cmd": RenameCommand,
	}
	scopedDeleteKinds = map[string]Kind{
		"pr": DeletePrinciple,
		"er": DeleteEntity,
		"at": DeleteAssetType,
		"ar": DeleteAsset,
	}
)

// parseAssetMethod handles name.st/rv/rf/se/sc(...). ok is false for any
// other method name.
func parseAssetMethod(asset, method, inner string) (cmd Command, ok bool, err error) {
	switch method {
	case "st":
		args := splitArgs(inner)
		if len(args) < 2 || args[0].Value == "" {
			return Command{}, true, &ArgumentCountError{Command: "store", Got: len(args), Usage: `:` + asset + `.st(principle, "review text")`}
		}
		return Command{Kind: StoreReview, Args: []string{asset, args[0].Value, joinRest(args[1:])}}, true, nil

	case "se":
		args := splitArgs(inner)
		if len(args) != 1 {
			return Command{}, true, &ArgumentCountError{Command: "set exemplar", Got: len(args), Usage: ":" + asset + ".se(t|f)"}
		}
		flag, err := ParseExemplarFlag(args[0].Value)
		if err != nil {
			return Command{}, true, err
		}
		return Command{Kind: SetExemplar, Args: []string{asset, formatBool(flag)}}, true, nil

	case "sc":
		args := splitArgs(inner)
		if len(args) != 2 {
			return Command{}, true, &ArgumentCountError{Command: "set compliance", Got: len(args), Usage: ":" + asset + ".sc(principle, H|M|L)"}
		}
		return Command{Kind: SetCompliance, Args: []string{asset, args[0].Value, args[1].Value}}, true, nil

	case "rv":
		return Command{Kind: ReviewAsset, Args: []string{asset, strings.TrimSpace(inner)}}, true, nil
	case "rf":
		return Command{Kind: RefactorAsset, Args: []string{asset, strings.TrimSpace(inner)}}, true, nil
	}
	return Command{}, false, nil
}
