package editorconf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		file  string
		want  string
		lexer string
	}{
		{"./index.tsx", "code", "typescript"},
		{"./test/test.ts", "code", "typescript"},
		{"app.JSX", "code", "javascript"},
		{"./index.html", "html", "html"},
		{"./style.css", "css", "css"},
		{"README.md", "markdown", "markdown"},
		{"x.definitions", "definitions", "json"},
		{"Makefile", "code", "plaintext"},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			ft := Detect(tt.file)
			assert.Equal(t, tt.want, ft.Editor)
			assert.Equal(t, tt.lexer, ft.Lexer)
		})
	}
}

func TestPlatform(t *testing.T) {
	t.Setenv("TERMUX_VERSION", "")
	t.Setenv("ANDROID_ROOT", "")
	p, err := ParsePlatform("auto")
	require.NoError(t, err)
	assert.Equal(t, Desktop, p)

	t.Setenv("TERMUX_VERSION", "0.118")
	assert.Equal(t, Mobile, DetectPlatform())

	p, err = ParsePlatform("Desktop")
	require.NoError(t, err)
	assert.Equal(t, Desktop, p)

	_, err = ParsePlatform("watch")
	assert.Error(t, err)
}

func TestDefaultOptions(t *testing.T) {
	assert.Equal(t, 14, DefaultFontSize(Desktop))
	assert.Equal(t, 16, DefaultFontSize(Mobile))

	o := DefaultOptions(Mobile)
	assert.Equal(t, "on", o.LineNumbers)
	assert.Equal(t, 4, o.LineNumbersMinChars)
	assert.Equal(t, 16, o.FontSize)
	assert.True(t, o.Folding)
	assert.Equal(t, "same", o.WrappingIndent)
}
