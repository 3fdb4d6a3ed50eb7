package editor

import (
    "github.com/charmbracelet/bubbles/textarea"
    tea "github.com/charmbracelet/bubbletea"

    "playpen/internal/editorconf"
    "playpen/internal/tui/state"
)

// Editor is the source buffer of the active file. In CMD mode it is blurred
// and ignores typing; INSERT mode focuses it.
type Editor struct {
    ta textarea.Model
}

func NewEditor(opts editorconf.Options) Editor {
    ta := textarea.New()
    ta.ShowLineNumbers = opts.LineNumbers != "off"
    ta.CharLimit = 0
    ta.MaxHeight = 0
    ta.Prompt = ""
    ta.Placeholder = "empty file"
    ta.Blur()
    return Editor{ta: ta}
}

// SetSize sizes the text area to the pane.
func (e Editor) SetSize(width, height int) Editor {
    if width < 1 {
        width = 1
    }
    if height < 1 {
        height = 1
    }
    e.ta.SetWidth(width)
    e.ta.SetHeight(height)
    return e
}

// Load replaces the buffer and moves the cursor to the top.
func (e Editor) Load(content string) Editor {
    e.ta.SetValue(content)
    for e.ta.Line() > 0 {
        e.ta.CursorUp()
    }
    e.ta.CursorStart()
    return e
}

func (e Editor) Value() string { return e.ta.Value() }

func (e Editor) Focused() bool { return e.ta.Focused() }

// Focus switches the buffer to INSERT mode.
func (e Editor) Focus() (Editor, tea.Cmd) {
    cmd := e.ta.Focus()
    return e, cmd
}

// Blur switches the buffer to CMD mode.
func (e Editor) Blur() Editor {
    e.ta.Blur()
    return e
}

// Update forwards input to the text area while focused.
func (e Editor) Update(msg tea.Msg) (Editor, tea.Cmd) {
    if !e.ta.Focused() {
        return e, nil
    }
    var cmd tea.Cmd
    e.ta, cmd = e.ta.Update(msg)
    return e, cmd
}

// View renders the buffer below a header naming the file and mode.
func (e Editor) View(s state.UIState, header string) string {
    mode := "[CMD]"
    if s.Mode == state.INSERT {
        mode = "[INSERT]"
    }
    return mode + " " + header + "\n" + e.ta.View()
}
