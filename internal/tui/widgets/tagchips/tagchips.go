package tagchips

import (
    "fmt"
    "os"
    "strings"

    "github.com/charmbracelet/lipgloss"

    "playpen/internal/tui/state"
    "playpen/internal/tui/util"
)

// View renders file tags in a stable order using colored chips when
// possible and ASCII fallbacks when color is disabled or not desired.
func View(tags []state.Tag, noColor bool) string {
    if len(tags) == 0 {
        return ""
    }
    // Honor NO_COLOR env var in addition to explicit param
    if !noColor && os.Getenv("NO_COLOR") != "" {
        noColor = true
    }

    parts := make([]string, 0, len(tags))
    for _, t := range tags {
        parts = append(parts, renderChip(t, noColor))
    }
    return strings.Join(parts, " ")
}

// Tab renders one file tab: the name, highlighted when active, followed by
// its chips.
func Tab(name string, active bool, tags []state.Tag, noColor bool) string {
    label := name
    switch {
    case active && noColor:
        label = "> " + name
    case active:
        label = lipgloss.NewStyle().Bold(true).Underline(true).Render(name)
    }
    if chips := View(tags, noColor); chips != "" {
        return label + " " + chips
    }
    return label
}

func renderChip(t state.Tag, noColor bool) string {
    label := chipLabel(t)
    if noColor {
        return fmt.Sprintf("[%s]", label)
    }
    style := chipStyle(t)
    return style.Render(label)
}

func chipLabel(t state.Tag) string {
    switch t.Kind {
    case state.MODIFIED:
        return "Modified"
    case state.NEW:
        return "New"
    case state.EMPTY:
        return "Empty"
    case state.LINES:
        return fmt.Sprintf("%d lines", t.Value)
    case state.CHARS:
        return fmt.Sprintf("%d chars", t.Value)
    default:
        return "Tag"
    }
}

func chipStyle(t state.Tag) lipgloss.Style {
    p := util.DefaultPalette()
    base := lipgloss.NewStyle().Padding(0, 1).Bold(true)
    switch t.Kind {
    case state.MODIFIED:
        return base.Background(p.Warning).Foreground(lipgloss.Color("#111111"))
    case state.NEW:
        return base.Background(p.Success).Foreground(lipgloss.Color("#FFFFFF"))
    case state.EMPTY:
        return base.Background(p.Danger).Foreground(lipgloss.Color("#FFFFFF"))
    case state.LINES:
        return base.Background(p.Muted).Foreground(lipgloss.Color("#FFFFFF"))
    case state.CHARS:
        return base.Background(p.MutedDark).Foreground(lipgloss.Color("#FFFFFF"))
    default:
        return base
    }
}
