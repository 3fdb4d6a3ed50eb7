package tagchips

import (
    "strings"
    "testing"

    "playpen/internal/tui/state"
)

func TestASCIIChips(t *testing.T) {
    out := View([]state.Tag{{Kind: state.MODIFIED}, {Kind: state.LINES, Value: 3}}, true)
    if out != "[Modified] [3 lines]" {
        t.Fatalf("unexpected chips: %q", out)
    }
    if View(nil, true) != "" {
        t.Fatalf("expected empty output for no tags")
    }
}

func TestTab(t *testing.T) {
    out := Tab("./index.tsx", true, []state.Tag{{Kind: state.NEW}}, true)
    if out != "> ./index.tsx [New]" {
        t.Fatalf("unexpected tab: %q", out)
    }
    if !strings.HasPrefix(Tab("a.ts", false, nil, true), "a.ts") {
        t.Fatalf("inactive tab should start with the name")
    }
}
