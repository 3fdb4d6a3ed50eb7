package statusbar

import (
    "strings"
    "testing"

    "playpen/internal/tui/state"
)

func TestStatusLine(t *testing.T) {
    s := state.UIState{
        Mode: state.INSERT, Preview: state.Diff, View: state.SideBySide,
        File: 1, FileCount: 5, Split: "vertical", SplitSize: "40",
        Dirty: true, Dragging: true, Notice: "hello",
    }
    out := NewStatusBar().View(s, "./index.tsx")
    for _, want := range []string{"[INSERT]", "2/5 ./index.tsx ●", "Diff (side-by-side)", "vertical 40 ⇔", "hello"} {
        if !strings.Contains(out, want) {
            t.Fatalf("status line %q missing %q", out, want)
        }
    }
}

func TestStatusNoFiles(t *testing.T) {
    out := NewStatusBar().View(state.UIState{}, "")
    if !strings.HasPrefix(out, "[CMD]  no files") {
        t.Fatalf("unexpected status line %q", out)
    }
}
