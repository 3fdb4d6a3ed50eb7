package util

import "testing"

func TestDividerColor(t *testing.T) {
    p := DefaultPalette()
    if got := p.DividerColor(false); got != p.Divider {
        t.Fatalf("idle divider color = %v, want %v", got, p.Divider)
    }
    if got := p.DividerColor(true); got != p.Primary {
        t.Fatalf("dragging divider color = %v, want %v", got, p.Primary)
    }
}

func TestNoColor(t *testing.T) {
    t.Setenv("NO_COLOR", "")
    if NoColor(false) {
        t.Fatalf("colors disabled without NO_COLOR or flag")
    }
    if !NoColor(true) {
        t.Fatalf("explicit flag must disable colors")
    }
    t.Setenv("NO_COLOR", "1")
    if !NoColor(false) {
        t.Fatalf("NO_COLOR must disable colors")
    }
}
