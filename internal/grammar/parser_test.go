package grammar

import (
	"errors"
	"reflect"
	"testing"

	"github.com/aidanlsb/vql/internal/registry"
)

func TestParseFunctional(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  Kind
		args  []string
	}{
		{name: "list all", input: ":ls", kind: ListAll},
		{name: "list all parens", input: ":ls()", kind: ListAll},
		{name: "list principles", input: ":pr()", kind: ListPrinciples},
		{name: "list entities", input: ":er", kind: ListEntities},
		{name: "list asset types", input: ":at()", kind: ListAssetTypes},
		{name: "list assets", input: ":ar", kind: ListAssets},
		{name: "list commands", input: ":cmd", kind: ListCommands},
		{name: "dash alias", input: ":-pr", kind: ListPrinciples},
		{name: "dash alias assets", input: ":-ar", kind: ListAssets},

		{name: "generic rename", input: ":rn(u, usr)", kind: Rename, args: []string{"u", "usr"}},
		{name: "generic delete", input: ":dl( uc )", kind: Delete, args: []string{"uc"}},

		{name: "principle add", input: `:pr.add(a, Architecture, "Layering, boundaries")`, kind: AddPrinciple, args: []string{"a", "Architecture", "Layering, boundaries"}},
		{name: "principle add no guidance", input: ":pr.add(s, Security)", kind: AddPrinciple, args: []string{"s", "Security"}},
		{name: "entity add", input: ":er.add(u, User)", kind: AddEntity, args: []string{"u", "User"}},
		{name: "asset type add", input: ":at.add(c, Controller)", kind: AddAssetType, args: []string{"c", "Controller"}},
		{name: "asset add", input: `:ar.add(uc, u, c, "src/user controller.js")`, kind: AddAsset, args: []string{"uc", "u", "c", "src/user controller.js"}},
		{name: "dashed asset add", input: `:-ar.add(uc, u, c, "src/uc.js")`, kind: AddAsset, args: []string{"uc", "u", "c", "src/uc.js"}},
		{name: "dashed asset add unquoted", input: `:-ar.add(uc,u,c,src/uc.js)`, kind: AddAsset, args: []string{"uc", "u", "c", "src/uc.js"}},
		{name: "command add", input: ":cmd.add(hx, History view)", kind: AddCommand, args: []string{"hx", "History view"}},
		{name: "scoped rename principle", input: ":pr.rn(a, b)", kind: RenamePrinciple, args: []string{"a", "b"}},
		{name: "scoped rename entity", input: ":er.rn(u,usr)", kind: RenameEntity, args: []string{"u", "usr"}},
		{name: "scoped rename command", input: ":cmd.rn(st, store)", kind: RenameCommand, args: []string{"st", "store"}},
		{name: "scoped delete asset type", input: ":at.dl(c)", kind: DeleteAssetType, args: []string{"c"}},
		{name: "scoped delete asset", input: ":ar.dl(uc)", kind: DeleteAsset, args: []string{"uc"}},

		{name: "question", input: ":uc?", kind: ShowReviews, args: []string{"uc"}},
		{name: "question spaced", input: ":uc ?", kind: ShowReviews, args: []string{"uc"}},
		{name: "question one principle", input: ":uc?(a)", kind: ShowReviews, args: []string{"uc", "a"}},
		{name: "question spaced list", input: ":uc ? (a, s)", kind: ShowReviews, args: []string{"uc", "a", "s"}},
		{name: "question empty parens", input: ":uc?()", kind: ShowReviews, args: []string{"uc"}},

		{name: "principle import", input: `:-pr.get("docs/principles.md")`, kind: ImportPrinciples, args: []string{"docs/principles.md"}},
		{name: "principle import default", input: ":-pr.get()", kind: ImportPrinciples},

		{name: "store", input: `:uc.st(a, "Looks good")`, kind: StoreReview, args: []string{"uc", "a", "Looks good"}},
		{name: "store keeps quoted commas", input: `:uc.st(a, "High compliance, clean layering,  tidy")`, kind: StoreReview, args: []string{"uc", "a", "High compliance, clean layering,  tidy"}},
		{name: "store rejoins unquoted commas", input: ":uc.st(a, one,two ,three)", kind: StoreReview, args: []string{"uc", "a", "one, two, three"}},
		{name: "set exemplar", input: ":uc.se(Yes)", kind: SetExemplar, args: []string{"uc", "true"}},
		{name: "set exemplar false", input: ":uc.se(f)", kind: SetExemplar, args: []string{"uc", "false"}},
		{name: "set compliance", input: ":uc.sc(a, h)", kind: SetCompliance, args: []string{"uc", "a", "h"}},
		{name: "review", input: ":uc.rv(*)", kind: ReviewAsset, args: []string{"uc", "*"}},
		{name: "refactor", input: ":uc.rf(a, pc)", kind: RefactorAsset, args: []string{"uc", "a, pc"}},

		{name: "global review", input: ":-rv(a,s)", kind: ReviewAll, args: []string{"a,s"}},
		{name: "global refactor", input: ":-rf(*)", kind: RefactorAll, args: []string{"*"}},
		{name: "setup", input: `:-su("~/code/shop")`, kind: Setup, args: []string{"~/code/shop"}},
		{name: "setup here", input: ":-su()", kind: Setup},

		{name: "falls back to flag syntax", input: ":-st uc a fine", kind: StoreReview, args: []string{"uc", "a", "fine"}},
		{name: "falls back to bare query", input: ":uc", kind: ShowReviews, args: []string{"uc"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.input, err)
			}
			if cmd.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", cmd.Kind, tt.kind)
			}
			if !reflect.DeepEqual(cmd.Args, tt.args) {
				t.Errorf("Args = %#v, want %#v", cmd.Args, tt.args)
			}
			if cmd.Raw != tt.input {
				t.Errorf("Raw = %q, want %q", cmd.Raw, tt.input)
			}
		})
	}
}

func TestParseFlag(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  Kind
		args  []string
	}{
		{name: "list principles", input: "-pr", kind: ListPrinciples},
		{name: "list commands", input: "-cmd", kind: ListCommands},
		{name: "principle add", input: `-pr -add a Architecture "Layering and boundaries"`, kind: AddPrinciple, args: []string{"a", "Architecture", "Layering and boundaries"}},
		{name: "principle add unquoted guidance", input: "-pr -add a Architecture Layering and boundaries", kind: AddPrinciple, args: []string{"a", "Architecture", "Layering and boundaries"}},
		{name: "principle get", input: "-pr -get principles.md", kind: ImportPrinciples, args: []string{"principles.md"}},
		{name: "principle get default", input: "-pr -get", kind: ImportPrinciples},
		{name: "principle rename", input: "-pr -rn a arch", kind: RenamePrinciple, args: []string{"a", "arch"}},
		{name: "principle delete", input: "-pr -dl a", kind: DeletePrinciple, args: []string{"a"}},
		{name: "entity add", input: "-er -add u User", kind: AddEntity, args: []string{"u", "User"}},
		{name: "entity add description defaults", input: "-er -add u", kind: AddEntity, args: []string{"u", "u"}},
		{name: "entity add multiword", input: "-er -add ord Customer order", kind: AddEntity, args: []string{"ord", "Customer order"}},
		{name: "asset type add", input: "-at -add c Controller", kind: AddAssetType, args: []string{"c", "Controller"}},
		{name: "asset add", input: "-ar -add uc u c src/uc.js", kind: AddAsset, args: []string{"uc", "u", "c", "src/uc.js"}},
		{name: "asset add quoted path", input: `-ar -add uc u c "src/user controller.js"`, kind: AddAsset, args: []string{"uc", "u", "c", "src/user controller.js"}},
		{name: "asset rename", input: "-ar -rn uc userctl", kind: RenameAsset, args: []string{"uc", "userctl"}},
		{name: "command add", input: "-cmd -add hx History view", kind: AddCommand, args: []string{"hx", "History view"}},
		{name: "command rename", input: "--cmd --rn st store", kind: RenameCommand, args: []string{"st", "store"}},
		{name: "generic rename", input: "-rn u usr", kind: Rename, args: []string{"u", "usr"}},
		{name: "generic delete", input: "-dl uc", kind: Delete, args: []string{"uc"}},
		{name: "store", input: `-st uc a "Looks good"`, kind: StoreReview, args: []string{"uc", "a", "Looks good"}},
		{name: "store unquoted", input: "-st uc a High compliance overall", kind: StoreReview, args: []string{"uc", "a", "High compliance overall"}},
		{name: "set exemplar", input: "-se uc T", kind: SetExemplar, args: []string{"uc", "true"}},
		{name: "set compliance", input: "-sc uc a m", kind: SetCompliance, args: []string{"uc", "a", "m"}},
		{name: "setup", input: "-su ~/code/shop", kind: Setup, args: []string{"~/code/shop"}},
		{name: "setup path with spaces", input: "-su ~/My Projects/shop", kind: Setup, args: []string{"~/My Projects/shop"}},
		{name: "setup here", input: "-su", kind: Setup},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.input, err)
			}
			if cmd.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", cmd.Kind, tt.kind)
			}
			if cmd.Syntax != SyntaxFlag {
				t.Errorf("Syntax = %v, want flag", cmd.Syntax)
			}
			if !reflect.DeepEqual(cmd.Args, tt.args) {
				t.Errorf("Args = %#v, want %#v", cmd.Args, tt.args)
			}
		})
	}
}

func TestParseBareQuery(t *testing.T) {
	tests := []struct {
		input string
		args  []string
	}{
		{input: "uc", args: []string{"uc"}},
		{input: "uc?", args: []string{"uc"}},
		{input: "uc ?", args: []string{"uc"}},
		{input: "uc?(a)", args: []string{"uc", "a"}},
		{input: "uc ? (a,s)", args: []string{"uc", "a", "s"}},
		{input: "uc ? (a, a, s)", args: []string{"uc", "a", "s"}},
		{input: "uc?(*)", args: []string{"uc"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			cmd, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.input, err)
			}
			if cmd.Kind != ShowReviews || cmd.Syntax != SyntaxQuery {
				t.Errorf("got %v/%v, want show_reviews/query", cmd.Kind, cmd.Syntax)
			}
			if !reflect.DeepEqual(cmd.Args, tt.args) {
				t.Errorf("Args = %#v, want %#v", cmd.Args, tt.args)
			}
		})
	}
}

func TestStoreSyntaxesAreEquivalent(t *testing.T) {
	functional, err := Parse(`:uc.st(a,"text with spaces")`)
	if err != nil {
		t.Fatal(err)
	}
	flag, err := Parse(`-st uc a "text with spaces"`)
	if err != nil {
		t.Fatal(err)
	}
	if functional.Kind != flag.Kind || !reflect.DeepEqual(functional.Args, flag.Args) {
		t.Errorf("functional %v %#v != flag %v %#v", functional.Kind, functional.Args, flag.Kind, flag.Args)
	}
}

func TestNonASCIITextIsEquivalentAcrossSyntaxes(t *testing.T) {
	functional, err := Parse(`:uc.st(a, Ångström units, voilà)`)
	if err != nil {
		t.Fatal(err)
	}
	flag, err := Parse(`-st uc a Ångström units, voilà`)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"uc", "a", "Ångström units, voilà"}
	if !reflect.DeepEqual(functional.Args, want) || !reflect.DeepEqual(flag.Args, want) {
		t.Errorf("functional %#v, flag %#v, want %#v", functional.Args, flag.Args, want)
	}
}

func TestParseWords(t *testing.T) {
	tests := []struct {
		name   string
		words  []string
		kind   Kind
		syntax Syntax
		args   []string
	}{
		{
			name:   "quotes inside a word are kept",
			words:  []string{"-st", "uc", "a", `He said "hi" twice`},
			kind:   StoreReview,
			syntax: SyntaxFlag,
			args:   []string{"uc", "a", `He said "hi" twice`},
		},
		{
			name:   "whitespace inside a word is kept",
			words:  []string{"-rn", "a b", "c"},
			kind:   Rename,
			syntax: SyntaxFlag,
			args:   []string{"a b", "c"},
		},
		{
			name:   "free text spread over words",
			words:  []string{"-st", "uc", "a", "Looks", "good"},
			kind:   StoreReview,
			syntax: SyntaxFlag,
			args:   []string{"uc", "a", "Looks good"},
		},
		{
			name:   "single word is tokenized",
			words:  []string{`-st uc a "Looks good"`},
			kind:   StoreReview,
			syntax: SyntaxFlag,
			args:   []string{"uc", "a", "Looks good"},
		},
		{
			name:   "functional words are joined",
			words:  []string{":uc.st(a,", `"Looks`, `good")`},
			kind:   StoreReview,
			syntax: SyntaxFunctional,
			args:   []string{"uc", "a", "Looks good"},
		},
		{
			name:   "query words are joined",
			words:  []string{"uc", "?", "(a,", "s)"},
			kind:   ShowReviews,
			syntax: SyntaxQuery,
			args:   []string{"uc", "a", "s"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := ParseWords(tt.words)
			if err != nil {
				t.Fatalf("ParseWords(%q): %v", tt.words, err)
			}
			if cmd.Kind != tt.kind || cmd.Syntax != tt.syntax || !reflect.DeepEqual(cmd.Args, tt.args) {
				t.Errorf("ParseWords(%q) = %v %v %#v, want %v %v %#v", tt.words, cmd.Kind, cmd.Syntax, cmd.Args, tt.kind, tt.syntax, tt.args)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		target  interface{}
		invalid bool
	}{
		{name: "empty", input: "   ", target: new(*UnrecognizedFormatError)},
		{name: "unrecognized", input: "uc.st(a)", target: new(*UnrecognizedFormatError)},
		{name: "unknown functional", input: ":uc.zz(a)", target: new(*UnknownCommandError)},
		{name: "unknown flag verb", input: "-zz a b", target: new(*UnknownCommandError)},
		{name: "command delete unsupported", input: ":cmd.dl(st)", target: new(*UnknownCommandError)},
		{name: "subcommand without dash", input: "-pr add a Architecture", target: new(*InvalidSubcommandError), invalid: true},
		{name: "unknown subcommand", input: "-er -get x", target: new(*InvalidSubcommandError), invalid: true},
		{name: "rename arity", input: ":rn(a)", target: new(*ArgumentCountError), invalid: true},
		{name: "flag rename arity", input: "-rn a", target: new(*ArgumentCountError), invalid: true},
		{name: "store without text", input: "-st uc a", target: new(*ArgumentCountError), invalid: true},
		{name: "functional store without text", input: ":uc.st(a)", target: new(*ArgumentCountError), invalid: true},
		{name: "asset add arity", input: ":ar.add(uc, u, c)", target: new(*ArgumentCountError), invalid: true},
		{name: "bad exemplar", input: "-se uc maybe", target: new(*InvalidValueError), invalid: true},
		{name: "bad functional exemplar", input: ":uc.se(2)", target: new(*InvalidValueError), invalid: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			if err == nil {
				t.Fatalf("Parse(%q) succeeded, want error", tt.input)
			}
			if !errors.As(err, tt.target) {
				t.Errorf("error %T (%v) is not %T", err, err, tt.target)
			}
			if !errors.Is(err, ErrParse) {
				t.Errorf("error %v does not wrap ErrParse", err)
			}
			if got := errors.Is(err, registry.ErrInvalidArgument); got != tt.invalid {
				t.Errorf("errors.Is(err, ErrInvalidArgument) = %v, want %v", got, tt.invalid)
			}
		})
	}
}

func TestArgumentCountErrorCarriesUsage(t *testing.T) {
	_, err := Parse("-sc uc a")
	var argErr *ArgumentCountError
	if !errors.As(err, &argErr) {
		t.Fatalf("error = %v, want ArgumentCountError", err)
	}
	if argErr.Usage != "-sc asset principle H|M|L" {
		t.Errorf("Usage = %q", argErr.Usage)
	}
}
