// Package editorconf holds editor defaults and per-file display settings.
package editorconf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Platform distinguishes touch-first terminals from desktop ones.
type Platform string

const (
	Desktop Platform = "desktop"
	Mobile  Platform = "mobile"
)

// ParsePlatform accepts "auto", "desktop" or "mobile". "auto" and the empty
// string detect the platform from the environment.
func ParsePlatform(s string) (Platform, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return DetectPlatform(), nil
	case "desktop":
		return Desktop, nil
	case "mobile":
		return Mobile, nil
	}
	return Desktop, fmt.Errorf("unknown platform %q (want auto|desktop|mobile)", s)
}

// DetectPlatform reports Mobile inside Termux or another Android shell.
func DetectPlatform() Platform {
	if os.Getenv("TERMUX_VERSION") != "" || os.Getenv("ANDROID_ROOT") != "" {
		return Mobile
	}
	return Desktop
}

// DefaultFontSize is larger on mobile.
func DefaultFontSize(p Platform) int {
	if p == Mobile {
		return 16
	}
	return 14
}

// Options are the editor settings saved with a project.
type Options struct {
	LineNumbers         string `json:"lineNumbers"`
	LineNumbersMinChars int    `json:"lineNumbersMinChars"`
	Theme               string `json:"theme"`
	FontSize            int    `json:"fontSize"`
	AutomaticLayout     bool   `json:"automaticLayout"`
	WrappingIndent      string `json:"wrappingIndent"`
	ParameterHints      bool   `json:"parameterHints"`
	TabCompletion       bool   `json:"tabCompletion"`
	Folding             bool   `json:"folding"`
	TabWidth            int    `json:"tabWidth,omitempty"`
}

// DefaultOptions returns the editor defaults for p.
func DefaultOptions(p Platform) Options {
	return Options{
		LineNumbers:         "on",
		LineNumbersMinChars: 4,
		Theme:               "vs-dark",
		FontSize:            DefaultFontSize(p),
		AutomaticLayout:     true,
		WrappingIndent:      "same",
		ParameterHints:      true,
		TabCompletion:       true,
		Folding:             true,
		TabWidth:            2,
	}
}

// FileType tells the editor how to present a file.
type FileType struct {
	// Editor is one of code, html, css, markdown, definitions, modules.
	Editor string
	Icon   string
	// Lexer names the syntax highlighter for the preview.
	Lexer string
}

// Detect maps a file name to its FileType by extension.
func Detect(filename string) FileType {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".ts", ".tsx":
		return FileType{Editor: "code", Icon: "language-typescript", Lexer: "typescript"}
	case ".js", ".jsx":
		return FileType{Editor: "code", Icon: "language-javascript", Lexer: "javascript"}
	case ".html":
		return FileType{Editor: "html", Icon: "language-html5", Lexer: "html"}
	case ".css":
		return FileType{Editor: "css", Icon: "language-css3", Lexer: "css"}
	case ".scss", ".less":
		return FileType{Editor: "css", Icon: "language-css3", Lexer: "scss"}
	case ".json":
		return FileType{Editor: "code", Icon: "code-json", Lexer: "json"}
	case ".md", ".markdown":
		return FileType{Editor: "markdown", Icon: "language-markdown", Lexer: "markdown"}
	case ".definitions":
		return FileType{Editor: "definitions", Icon: "code-tags", Lexer: "json"}
	case ".modules":
		return FileType{Editor: "modules", Icon: "code-tags", Lexer: "json"}
	}
	return FileType{Editor: "code", Icon: "code-tags", Lexer: "plaintext"}
}
