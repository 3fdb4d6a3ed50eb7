package diff

import (
    "strings"

    "github.com/charmbracelet/lipgloss"
    dmp "github.com/sergi/go-diff/diffmatchpatch"

    "playpen/internal/tui/state"
)

var (
    diffDelLine = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "160", Dark: "203"})
    diffAddLine = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "28", Dark: "114"})
    diffDelChar = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "160", Dark: "203"}).Underline(true)
    diffAddChar = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "28", Dark: "114"}).Underline(true)
    headerStyle = lipgloss.NewStyle().Bold(true)
    faint       = lipgloss.NewStyle().Faint(true)
)

type DiffView struct{}

func NewDiffView() DiffView { return DiffView{} }

// View renders the saved content against the current buffer. Unified shows
// a line diff with intraline highlights for changed line pairs; SideBySide
// aligns two columns with a vertical separator.
func (DiffView) View(s state.UIState, saved, current string) string {
    if saved == current {
        return faint.Render("No changes since last save") + "\n"
    }
    if s.View == state.SideBySide {
        return sideBySide(saved, current, s)
    }
    return unified(saved, current)
}

// lineOp is one line of a line-level diff.
type lineOp struct {
    op   dmp.Operation
    text string
}

// lineDiff diffs a and b line by line. A missing final newline does not
// count as a change.
func lineDiff(a, b string) []lineOp {
    if !strings.HasSuffix(a, "\n") {
        a += "\n"
    }
    if !strings.HasSuffix(b, "\n") {
        b += "\n"
    }
    d := dmp.New()
    ca, cb, lines := d.DiffLinesToChars(a, b)
    diffs := d.DiffCharsToLines(d.DiffMain(ca, cb, false), lines)
    var ops []lineOp
    for _, df := range diffs {
        text := strings.TrimSuffix(df.Text, "\n")
        for _, l := range strings.Split(text, "\n") {
            ops = append(ops, lineOp{op: df.Type, text: l})
        }
    }
    return ops
}

func unified(saved, current string) string {
    var b strings.Builder
    b.WriteString(headerStyle.Render("SAVED vs BUFFER (Unified)") + "\n")
    ops := lineDiff(saved, current)
    for i := 0; i < len(ops); i++ {
        op := ops[i]
        switch op.op {
        case dmp.DiffEqual:
            b.WriteString("  " + faint.Render(op.text) + "\n")
        case dmp.DiffDelete:
            // pair a run of deletions with the insertions that follow
            j := i
            for j < len(ops) && ops[j].op == dmp.DiffDelete {
                j++
            }
            k := j
            for k < len(ops) && ops[k].op == dmp.DiffInsert {
                k++
            }
            if k-j == j-i {
                for n := 0; n < j-i; n++ {
                    writePair(&b, ops[i+n].text, ops[j+n].text)
                }
            } else {
                for _, d := range ops[i:j] {
                    b.WriteString(diffDelLine.Render("- "+d.text) + "\n")
                }
                for _, a := range ops[j:k] {
                    b.WriteString(diffAddLine.Render("+ "+a.text) + "\n")
                }
            }
            i = k - 1
        case dmp.DiffInsert:
            b.WriteString(diffAddLine.Render("+ "+op.text) + "\n")
        }
    }
    return b.String()
}

// writePair renders a changed line with char-level spans.
func writePair(b *strings.Builder, before, after string) {
    d := dmp.New()
    diffs := d.DiffMain(before, after, false)
    d.DiffCleanupSemantic(diffs)
    b.WriteString(diffDelLine.Render("- "))
    for _, df := range diffs {
        switch df.Type {
        case dmp.DiffDelete:
            b.WriteString(diffDelChar.Render(df.Text))
        case dmp.DiffEqual:
            b.WriteString(diffDelLine.Render(df.Text))
        }
    }
    b.WriteString("\n")
    b.WriteString(diffAddLine.Render("+ "))
    for _, df := range diffs {
        switch df.Type {
        case dmp.DiffInsert:
            b.WriteString(diffAddChar.Render(df.Text))
        case dmp.DiffEqual:
            b.WriteString(diffAddLine.Render(df.Text))
        }
    }
    b.WriteString("\n")
}

func sideBySide(saved, current string, s state.UIState) string {
    const sep = " │ "
    var b strings.Builder
    left := strings.Split(saved, "\n")
    right := strings.Split(current, "\n")
    rows := max(len(left), len(right))
    // Compute column width from total width if provided
    colWidth := 40
    if s.Width > 0 {
        colWidth = (s.Width - lipgloss.Width(sep)) / 2
        if colWidth < 10 {
            colWidth = 10
        }
    }
    b.WriteString(pad(headerStyle.Render("SAVED"), colWidth) + sep + headerStyle.Render("BUFFER") + "\n")
    for i := 0; i < rows; i++ {
        var l, r string
        if i < len(left) {
            l = left[i]
        }
        if i < len(right) {
            r = right[i]
        }
        l, r = clip(l, colWidth), clip(r, colWidth)
        if l == r {
            b.WriteString(pad(faint.Render(l), colWidth) + sep + faint.Render(r) + "\n")
            continue
        }
        d := dmp.New()
        diffs := d.DiffMain(l, r, false)
        d.DiffCleanupSemantic(diffs)
        var lbuf, rbuf strings.Builder
        for _, df := range diffs {
            switch df.Type {
            case dmp.DiffDelete:
                lbuf.WriteString(diffDelChar.Render(df.Text))
            case dmp.DiffInsert:
                rbuf.WriteString(diffAddChar.Render(df.Text))
            case dmp.DiffEqual:
                lbuf.WriteString(diffDelLine.Render(df.Text))
                rbuf.WriteString(diffAddLine.Render(df.Text))
            }
        }
        b.WriteString(pad(lbuf.String(), colWidth) + sep + rbuf.String() + "\n")
    }
    return b.String()
}

func clip(s string, width int) string {
    runes := []rune(s)
    if len(runes) > width {
        return string(runes[:width])
    }
    return s
}

// pad right-pads s to width cells, ignoring ANSI sequences.
func pad(s string, width int) string {
    if w := lipgloss.Width(s); w < width {
        return s + strings.Repeat(" ", width-w)
    }
    return s
}
