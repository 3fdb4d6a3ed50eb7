package state

// EditorMode represents the editor's current input mode.
type EditorMode int

const (
    CMD EditorMode = iota
    INSERT
)

// PreviewMode selects what the second pane shows.
type PreviewMode int

const (
    Render PreviewMode = iota // highlighted source or rendered markdown
    Diff                      // current buffer vs last saved
)

// DiffMode controls how the diff is rendered.
type DiffMode int

const (
    Unified DiffMode = iota
    SideBySide
)

// UIState holds cross-widget UI state used by status bar, diff, preview and editor.
type UIState struct {
    // Mode & View
    Mode    EditorMode
    Preview PreviewMode
    View    DiffMode
    Wrap    bool
    Help    bool

    // Layout & scrolling
    Width   int
    Height  int
    MinCol  int
    ScrollV int

    // Files
    File      int // index into the sorted file list
    FileCount int

    // Split pane
    Split     string // "vertical" | "horizontal"
    SplitSize string
    Dragging  bool

    // Project flags
    Dirty bool
    Busy  bool

    // Notices and ephemeral messages
    Notice string
}
