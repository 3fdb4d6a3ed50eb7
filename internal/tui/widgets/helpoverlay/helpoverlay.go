package helpoverlay

import (
    "fmt"
    "strings"

    "github.com/charmbracelet/bubbles/help"

    "playpen/internal/tui/state"
)

type HelpOverlay struct {
    help help.Model
}

func NewHelpOverlay() HelpOverlay {
    h := help.New()
    h.ShowAll = true
    return HelpOverlay{help: h}
}

// View returns grouped key help with the current mode indicated.
func (o HelpOverlay) View(s state.UIState, keys help.KeyMap, width int) string {
    mode := "CMD"
    if s.Mode == state.INSERT {
        mode = "INSERT"
    }
    o.help.Width = width
    var b strings.Builder
    fmt.Fprintf(&b, "Help (Mode: %s)\n\n", mode)
    b.WriteString(o.help.View(keys))
    b.WriteString("\n\nDrag the divider with the mouse; double-click it to reset.")
    return b.String()
}

// Short renders the one-line key hint.
func (o HelpOverlay) Short(keys help.KeyMap, width int) string {
    o.help.Width = width
    o.help.ShowAll = false
    return o.help.View(keys)
}
