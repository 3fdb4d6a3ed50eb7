package state

import "fmt"

// ToggleWrap flips the Wrap flag and returns a new state copy.
func ToggleWrap(s UIState) UIState {
    s.Wrap = !s.Wrap
    return s
}

// ToggleMode switches between CMD and INSERT modes and sets a brief notice.
func ToggleMode(s UIState) UIState {
    if s.Mode == CMD {
        s.Mode = INSERT
        s.Notice = "[INSERT]"
    } else {
        s.Mode = CMD
        s.Notice = "[CMD]"
    }
    return s
}

// TogglePreview switches the second pane between render and diff.
func TogglePreview(s UIState) UIState {
    if s.Preview == Render {
        s.Preview = Diff
        s.Notice = "Preview: diff vs saved"
    } else {
        s.Preview = Render
        s.Notice = "Preview: render"
    }
    s.ScrollV = 0
    return s
}

// ToggleView switches between Unified and SideBySide diff views.
func ToggleView(s UIState) UIState {
    if s.View == Unified {
        s.View = SideBySide
    } else {
        s.View = Unified
    }
    return s
}

// ToggleHelp shows or hides the help overlay.
func ToggleHelp(s UIState) UIState {
    s.Help = !s.Help
    return s
}

// Resize updates the terminal size and falls back to unified diffs when too
// narrow. Threshold heuristic: need at least 2*MinCol plus 3 chars for
// separator/gutters.
func Resize(s UIState, width, height int) UIState {
    s.Width = width
    s.Height = height
    threshold := 2*s.MinCol + 3
    if s.View == SideBySide && s.Width < threshold {
        s.View = Unified
        s.Notice = "Narrow width: using unified view"
    }
    return s
}

// ScrollUp moves the preview up, fast by a page.
func ScrollUp(s UIState, fast bool) UIState {
    delta := 1
    if fast {
        delta = 8
    }
    if s.ScrollV >= delta {
        s.ScrollV -= delta
    } else {
        s.ScrollV = 0
    }
    return s
}

// ScrollDown moves the preview down, fast by a page.
func ScrollDown(s UIState, fast bool) UIState {
    delta := 1
    if fast {
        delta = 8
    }
    s.ScrollV += delta
    return s
}

// SetFiles records the number of files and keeps the cursor in range.
func SetFiles(s UIState, count int) UIState {
    s.FileCount = count
    if count == 0 {
        s.File = 0
    } else if s.File >= count {
        s.File = count - 1
    }
    return s
}

// NextFile selects the next file, wrapping around.
func NextFile(s UIState) UIState {
    if s.FileCount == 0 {
        return s
    }
    s.File = (s.File + 1) % s.FileCount
    s.ScrollV = 0
    return s
}

// PrevFile selects the previous file, wrapping around.
func PrevFile(s UIState) UIState {
    if s.FileCount == 0 {
        return s
    }
    s.File = (s.File - 1 + s.FileCount) % s.FileCount
    s.ScrollV = 0
    return s
}

// DragStarted marks a divider drag in progress.
func DragStarted(s UIState) UIState {
    s.Dragging = true
    return s
}

// DragChanged records the live divider size.
func DragChanged(s UIState, size string) UIState {
    s.SplitSize = size
    return s
}

// DragFinished ends the drag and reports the final size.
func DragFinished(s UIState, size string) UIState {
    s.Dragging = false
    s.SplitSize = size
    s.Notice = fmt.Sprintf("Split: %s", size)
    return s
}

// SetSplit records orientation and size after a (re)configuration.
func SetSplit(s UIState, orientation, size string) UIState {
    s.Split = orientation
    s.SplitSize = size
    return s
}

// Edited marks the project as having unsaved changes.
func Edited(s UIState) UIState {
    s.Dirty = true
    return s
}

// SaveStarted marks a save in flight.
func SaveStarted(s UIState) UIState {
    s.Busy = true
    s.Notice = "Saving…"
    return s
}

// SaveFinished clears the busy flag; on success the project is clean.
func SaveFinished(s UIState, err error, notice string) UIState {
    s.Busy = false
    if err != nil {
        s.Notice = "Save failed: " + err.Error()
        return s
    }
    s.Dirty = false
    s.Notice = notice
    return s
}

// Notify sets the notice line.
func Notify(s UIState, notice string) UIState {
    s.Notice = notice
    return s
}
