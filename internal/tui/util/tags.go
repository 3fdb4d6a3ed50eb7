package util

import (
    "strings"

    "playpen/internal/tui/state"
)

// ComputeTags calculates the status tags for a project file given the
// content at the last save, the current buffer, and whether the file existed
// at the last save.
//
// The returned slice preserves a stable order:
//   Modified, New, Empty, Lines, Chars
//
// Rules:
// - New marks files absent from the last save; such files are never Modified.
// - Modified compares the buffer with the saved content exactly.
// - Empty flags files that will be dropped when publishing a new gist.
// - Lines and Chars are always included (counters).
func ComputeTags(saved, current string, existed bool) []state.Tag {
    tags := make([]state.Tag, 0, 5)

    // 1) Modified / 2) New
    if !existed {
        tags = append(tags, state.Tag{Kind: state.NEW})
    } else if saved != current {
        tags = append(tags, state.Tag{Kind: state.MODIFIED})
    }

    // 3) Empty
    if current == "" {
        tags = append(tags, state.Tag{Kind: state.EMPTY})
    }

    // 4) Lines (N)
    tags = append(tags, state.Tag{Kind: state.LINES, Value: lineCount(current)})

    // 5) Chars (M)
    tags = append(tags, state.Tag{Kind: state.CHARS, Value: runeLen(current)})

    return tags
}

// lineCount returns the number of lines in s. A trailing newline does not
// start a new line; the empty string has zero lines.
func lineCount(s string) int {
    if s == "" {
        return 0
    }
    return strings.Count(strings.TrimSuffix(s, "\n"), "\n") + 1
}

// runeLen returns the length of s in runes (Unicode code points).
func runeLen(s string) int {
    return len([]rune(s))
}
