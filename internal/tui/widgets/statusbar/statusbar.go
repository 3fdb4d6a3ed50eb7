package statusbar

import (
    "fmt"
    "strings"

    "playpen/internal/tui/state"
)

type StatusBar struct{}

func NewStatusBar() StatusBar { return StatusBar{} }

// View composes a concise status line reflecting key UI state.
func (StatusBar) View(s state.UIState, file string) string {
    mode := "[CMD]"
    if s.Mode == state.INSERT {
        mode = "[INSERT]"
    }
    preview := "Render"
    if s.Preview == state.Diff {
        preview = "Diff"
        if s.View == state.SideBySide {
            preview = "Diff (side-by-side)"
        }
    }
    pos := fmt.Sprintf("%d/%d %s", s.File+1, s.FileCount, file)
    if s.FileCount == 0 {
        pos = "no files"
    }
    if s.Dirty {
        pos += " ●"
    }
    split := fmt.Sprintf("%s %s", s.Split, s.SplitSize)
    if s.Dragging {
        split += " ⇔"
    }

    parts := []string{mode, pos, preview, split}
    if s.Busy {
        parts = append(parts, "…")
    }
    if s.Notice != "" {
        parts = append(parts, s.Notice)
    }
    return strings.Join(parts, "  ")
}
