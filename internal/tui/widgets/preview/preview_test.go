package preview

import (
    "strings"
    "testing"

    "playpen/internal/editorconf"
)

func TestPlainRenderWithoutColor(t *testing.T) {
    p := NewPreview(true)
    p.SetSize(40, 5)
    out, err := p.Render("./index.tsx", "let a = 1", editorconf.Detect("./index.tsx"), false)
    if err != nil {
        t.Fatalf("render: %v", err)
    }
    if out != "let a = 1" {
        t.Fatalf("expected raw source without color, got %q", out)
    }
}

func TestHighlightKeepsText(t *testing.T) {
    p := NewPreview(false)
    p.SetSize(40, 5)
    out, err := p.Render("./index.tsx", "const answer = 42", editorconf.Detect("./index.tsx"), false)
    if err != nil {
        t.Fatalf("render: %v", err)
    }
    if !strings.Contains(out, "answer") || !strings.Contains(out, "42") {
        t.Fatalf("highlighted output lost the source: %q", out)
    }
}

func TestMarkdown(t *testing.T) {
    p := NewPreview(false)
    p.SetSize(60, 10)
    out, err := p.Render("README.md", "# Title\n\nsome *text*", editorconf.Detect("README.md"), false)
    if err != nil {
        t.Fatalf("render: %v", err)
    }
    if !strings.Contains(out, "Title") || strings.Contains(out, "# Title") {
        t.Fatalf("expected rendered heading, got %q", out)
    }
}

func TestEmptyAndScroll(t *testing.T) {
    p := NewPreview(true)
    p.SetSize(20, 2)
    out, _ := p.Render("a.ts", "", editorconf.Detect("a.ts"), false)
    if !strings.Contains(out, "empty file") {
        t.Fatalf("expected empty marker, got %q", out)
    }
    p.SetContent("1\n2\n3\n4\n5")
    p.ScrollTo(100)
    if p.Offset() != 3 {
        t.Fatalf("expected offset clamped to 3, got %d", p.Offset())
    }
    if !strings.Contains(p.View(), "5") {
        t.Fatalf("expected last line visible: %q", p.View())
    }
}
