package splitpane

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Orientation selects the resize axis. Vertical splits lay the panes out
// left-to-right and follow X; horizontal splits stack them and follow Y.
type Orientation int

const (
	Vertical Orientation = iota
	Horizontal
)

func (o Orientation) String() string {
	if o == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// ParseOrientation accepts "vertical" or "horizontal" (case-insensitive).
func ParseOrientation(s string) (Orientation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "vertical":
		return Vertical, nil
	case "horizontal":
		return Horizontal, nil
	}
	return Vertical, fmt.Errorf("unknown split %q (want vertical|horizontal)", s)
}

// Primary identifies the pane that receives the explicit size.
type Primary int

const (
	First Primary = iota
	Second
)

func (p Primary) String() string {
	if p == Second {
		return "second"
	}
	return "first"
}

// ParsePrimary accepts "first" or "second" (case-insensitive).
func ParsePrimary(s string) (Primary, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "first":
		return First, nil
	case "second":
		return Second, nil
	}
	return First, fmt.Errorf("unknown primary pane %q (want first|second)", s)
}

// Size is a pane size in cells or in a relative unit ("40%").
// The zero Size is undefined: the pane fills whatever space is left.
type Size struct {
	value float64
	unit  string // "" for cells, "%" for percent
	set   bool
}

// Cells returns an absolute size.
func Cells(n int) Size { return Size{value: float64(n), set: true} }

// Percent returns a size relative to the container extent.
func Percent(p float64) Size { return Size{value: p, unit: "%", set: true} }

// ParseSize parses "40", "40px" (cells) or "40%". An empty string yields
// the undefined Size.
func ParseSize(s string) (Size, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Size{}, nil
	}
	unit := ""
	switch {
	case strings.HasSuffix(s, "%"):
		unit = "%"
		s = strings.TrimSuffix(s, "%")
	case strings.HasSuffix(s, "px"):
		s = strings.TrimSuffix(s, "px")
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return Size{}, fmt.Errorf("parse size %q: %w", s, err)
	}
	if v < 0 {
		return Size{}, fmt.Errorf("size %q must not be negative", s)
	}
	return Size{value: v, unit: unit, set: true}, nil
}

// IsSet reports whether the size is defined.
func (s Size) IsSet() bool { return s.set }

// IsRelative reports whether the size resolves against the container.
func (s Size) IsRelative() bool { return s.unit == "%" }

// Resolve converts the size to cells for a container of the given extent.
// Undefined sizes resolve to the full extent.
func (s Size) Resolve(total int) int {
	if !s.set {
		return total
	}
	if s.unit == "%" {
		return int(math.Round(float64(total) * s.value / 100))
	}
	return int(math.Round(s.value))
}

func (s Size) String() string {
	if !s.set {
		return "auto"
	}
	return strconv.FormatFloat(s.value, 'f', -1, 64) + s.unit
}

// Equal compares two sizes including their unit. Two undefined sizes are equal.
func (s Size) Equal(o Size) bool {
	if !s.set || !o.set {
		return s.set == o.set
	}
	return s.value == o.value && s.unit == o.unit
}

// Point is one pointer contact in terminal cell coordinates.
type Point struct {
	X, Y int
}

// PointerEvent is the normalized input the controller consumes. Mouse
// input is folded into a touch list of one point so mouse and touch share
// the same code path.
type PointerEvent struct {
	Touches []Point
}

// MouseEvent normalizes a single-pointer position into a PointerEvent.
func MouseEvent(x, y int) PointerEvent {
	return PointerEvent{Touches: []Point{{X: x, Y: y}}}
}

// TouchEvent builds a PointerEvent from raw contact points.
func TouchEvent(points ...Point) PointerEvent {
	return PointerEvent{Touches: append([]Point(nil), points...)}
}

// axis returns the coordinate of the first contact along the split axis.
func (e PointerEvent) axis(o Orientation) (int, bool) {
	if len(e.Touches) == 0 {
		return 0, false
	}
	if o == Vertical {
		return e.Touches[0].X, true
	}
	return e.Touches[0].Y, true
}
