package grammar

import (
	"reflect"
	"testing"
	"unicode/utf8"
)

func TestParsePrincipleList(t *testing.T) {
	tests := []struct {
		raw   string
		all   bool
		names []string
	}{
		{raw: "*", all: true},
		{raw: "-pr", all: true},
		{raw: " a , s ", names: []string{"a", "s"}},
		{raw: "a s p", names: []string{"a", "s", "p"}},
		{raw: "s,a,s", names: []string{"s", "a"}},
		{raw: `"a", "s"`, names: []string{"a", "s"}},
		{raw: "", names: nil},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got := ParsePrincipleList(tt.raw)
			if got.All != tt.all {
				t.Errorf("All = %v, want %v", got.All, tt.all)
			}
			if !reflect.DeepEqual(got.Names, tt.names) {
				t.Errorf("Names = %#v, want %#v", got.Names, tt.names)
			}
		})
	}
}

func TestParseExemplarFlag(t *testing.T) {
	for _, in := range []string{"t", "TRUE", "y", "Yes"} {
		if got, err := ParseExemplarFlag(in); err != nil || !got {
			t.Errorf("ParseExemplarFlag(%q) = %v, %v", in, got, err)
		}
	}
	for _, in := range []string{"f", "False", "N", "no"} {
		if got, err := ParseExemplarFlag(in); err != nil || got {
			t.Errorf("ParseExemplarFlag(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseExemplarFlag("1"); err == nil {
		t.Error("ParseExemplarFlag(\"1\") succeeded")
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{`-st uc a "two  spaces" tail`, []string{"-st", "uc", "a", "two  spaces", "tail"}},
		{"-er -add u Ångström", []string{"-er", "-add", "u", "Ångström"}},
		{"-st uc a voilà déjà vu", []string{"-st", "uc", "a", "voilà", "déjà", "vu"}},
		{"-st uc a \u00a0x\u00a0 y", []string{"-st", "uc", "a", "x", "y"}},
		{"  -pr  ", []string{"-pr"}},
	}
	for _, tt := range tests {
		got := tokenize(tt.input)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("tokenize(%q) = %#v, want %#v", tt.input, got, tt.want)
		}
		for _, w := range got {
			if !utf8.ValidString(w) {
				t.Errorf("tokenize(%q) produced invalid UTF-8 word %q", tt.input, w)
			}
		}
	}
}

func TestSplitArgs(t *testing.T) {
	tests := []struct {
		inner string
		want  []arg
	}{
		{`a, "x, y", b ,`, []arg{{Value: "a"}, {Value: "x, y", Quoted: true}, {Value: "b"}, {}}},
		{"a,", []arg{{Value: "a"}, {}}},
		{"a, ", []arg{{Value: "a"}, {}}},
		{"a,  \t", []arg{{Value: "a"}, {}}},
		{"a, b", []arg{{Value: "a"}, {Value: "b"}}},
		{"Ångström, voilà", []arg{{Value: "Ångström"}, {Value: "voilà"}}},
		{"  ", nil},
	}
	for _, tt := range tests {
		if got := splitArgs(tt.inner); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("splitArgs(%q) = %#v, want %#v", tt.inner, got, tt.want)
		}
	}
}

func TestBlankTrailingArgument(t *testing.T) {
	tests := []struct {
		input string
		kind  Kind
		args  []string
	}{
		{":uc.st(a, )", StoreReview, []string{"uc", "a", ""}},
		{":uc.st(a,)", StoreReview, []string{"uc", "a", ""}},
		{":er.add(x, )", AddEntity, []string{"x", ""}},
		{":rn(a, )", Rename, []string{"a", ""}},
	}
	for _, tt := range tests {
		cmd, err := Parse(tt.input)
		if err != nil {
			t.Errorf("Parse(%q): %v", tt.input, err)
			continue
		}
		if cmd.Kind != tt.kind || !reflect.DeepEqual(cmd.Args, tt.args) {
			t.Errorf("Parse(%q) = %v %#v, want %v %#v", tt.input, cmd.Kind, cmd.Args, tt.kind, tt.args)
		}
	}
}
