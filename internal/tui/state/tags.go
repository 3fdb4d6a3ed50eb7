package state

// TagKind enumerates the types of status tags for project files.
type TagKind int

const (
    // Stable ordering for display: Modified, New, Empty, Lines, Chars
    MODIFIED TagKind = iota
    NEW
    EMPTY
    LINES
    CHARS
)

// Tag represents a single status chip. Value is used for numeric counters
// (line and character counts). Non-numeric tags use Value = 0.
type Tag struct {
    Kind  TagKind
    Value int
}
