package preview

import (
    "bytes"
    "fmt"
    "strings"

    "github.com/alecthomas/chroma/v2"
    "github.com/alecthomas/chroma/v2/formatters"
    "github.com/alecthomas/chroma/v2/lexers"
    "github.com/alecthomas/chroma/v2/styles"
    "github.com/charmbracelet/bubbles/viewport"
    "github.com/charmbracelet/glamour"
    "github.com/charmbracelet/lipgloss"

    "playpen/internal/editorconf"
)

// Preview is the scrollable second pane: highlighted source, rendered
// markdown, or whatever text the caller sets.
type Preview struct {
    vp      viewport.Model
    md      *glamour.TermRenderer
    mdWidth int
    noColor bool
    style   string
}

func NewPreview(noColor bool) *Preview {
    return &Preview{vp: viewport.New(0, 0), noColor: noColor, style: "monokai"}
}

// SetSize resizes the viewport.
func (p *Preview) SetSize(width, height int) {
    p.vp.Width = max(width, 0)
    p.vp.Height = max(height, 0)
}

// SetContent replaces the text and keeps the scroll offset in range.
func (p *Preview) SetContent(s string) { p.vp.SetContent(s) }

// ScrollTo sets the vertical offset, clamped by the viewport.
func (p *Preview) ScrollTo(offset int) { p.vp.SetYOffset(offset) }

// Offset returns the clamped vertical offset.
func (p *Preview) Offset() int { return p.vp.YOffset }

func (p *Preview) View() string { return p.vp.View() }

// Render produces the preview text for a file. Markdown goes through
// glamour; everything else is syntax highlighted. With wrap off long lines
// are left for the pane to clip.
func (p *Preview) Render(filename, content string, ft editorconf.FileType, wrap bool) (string, error) {
    if content == "" {
        return lipgloss.NewStyle().Faint(true).Render("(empty file)"), nil
    }
    if ft.Editor == "markdown" && !p.noColor {
        return p.markdown(content)
    }
    out, err := p.highlight(filename, content, ft.Lexer)
    if err != nil {
        return "", err
    }
    if wrap && p.vp.Width > 0 {
        out = lipgloss.NewStyle().Width(p.vp.Width).Render(out)
    }
    return out, nil
}

func (p *Preview) markdown(content string) (string, error) {
    width := max(p.vp.Width, 20)
    if p.md == nil || p.mdWidth != width {
        r, err := glamour.NewTermRenderer(
            glamour.WithStylePath("dark"),
            glamour.WithWordWrap(width),
            glamour.WithEmoji(),
        )
        if err != nil {
            return "", fmt.Errorf("markdown renderer: %w", err)
        }
        p.md, p.mdWidth = r, width
    }
    out, err := p.md.Render(content)
    if err != nil {
        return "", fmt.Errorf("render markdown: %w", err)
    }
    return strings.Trim(out, "\n"), nil
}

func (p *Preview) highlight(filename, content, lexerName string) (string, error) {
    if p.noColor {
        return content, nil
    }
    lexer := lexers.Get(lexerName)
    if lexer == nil {
        lexer = lexers.Match(filename)
    }
    if lexer == nil {
        lexer = lexers.Fallback
    }
    lexer = chroma.Coalesce(lexer)

    style := styles.Get(p.style)
    if style == nil {
        style = styles.Fallback
    }
    formatter := formatters.Get("terminal256")
    if formatter == nil {
        formatter = formatters.Fallback
    }

    it, err := lexer.Tokenise(nil, content)
    if err != nil {
        return "", fmt.Errorf("tokenise %s: %w", filename, err)
    }
    var buf bytes.Buffer
    if err := formatter.Format(&buf, style, it); err != nil {
        return "", fmt.Errorf("highlight %s: %w", filename, err)
    }
    return buf.String(), nil
}
