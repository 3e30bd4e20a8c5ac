package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeAccentColor(t *testing.T) {
	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{"", "", false},
		{"none", "", false},
		{"OFF", "", false},
		{"default", "", false},
		{"39", "39", true},
		{"  244 ", "244", true},
		{"256", "", false},
		{"-1", "", false},
		{"#7AA2F7", "#7aa2f7", true},
		{"#abc", "#aabbcc", true},
		{"#abcd", "", false},
		{"#zzzzzz", "", false},
		{"purple", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := normalizeAccentColor(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConfigureTheme(t *testing.T) {
	origAccent, origBold, origColor := Accent, AccentBold, accentColor
	t.Cleanup(func() {
		Accent, AccentBold, accentColor = origAccent, origBold, origColor
	})

	ConfigureTheme("#abc")
	color, ok := AccentColor()
	assert.True(t, ok)
	assert.Equal(t, "#aabbcc", color)

	ConfigureTheme("none")
	_, ok = AccentColor()
	assert.False(t, ok)
	assert.Equal(t, "uc", Name("uc"))
}
