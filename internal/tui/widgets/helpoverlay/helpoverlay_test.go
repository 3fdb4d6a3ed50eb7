package helpoverlay

import (
    "strings"
    "testing"

    "github.com/charmbracelet/bubbles/key"

    "playpen/internal/tui/state"
)

type keys struct{ save, quit key.Binding }

func (k keys) ShortHelp() []key.Binding  { return []key.Binding{k.save} }
func (k keys) FullHelp() [][]key.Binding { return [][]key.Binding{{k.save}, {k.quit}} }

func testKeys() keys {
    return keys{
        save: key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
        quit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
    }
}

func TestFullHelp(t *testing.T) {
    out := NewHelpOverlay().View(state.UIState{Mode: state.INSERT}, testKeys(), 80)
    if !strings.HasPrefix(out, "Help (Mode: INSERT)") {
        t.Fatalf("missing header: %q", out)
    }
    if !strings.Contains(out, "save") || !strings.Contains(out, "quit") {
        t.Fatalf("missing bindings: %q", out)
    }
}

func TestShortHelp(t *testing.T) {
    out := NewHelpOverlay().Short(testKeys(), 80)
    if !strings.Contains(out, "save") || strings.Contains(out, "quit") {
        t.Fatalf("short help should list only short bindings: %q", out)
    }
}
