package splitpane

// DragState is either Idle or Dragging. Values are immutable; every
// transition builds a new one.
type DragState interface {
	// Active reports whether a drag is in progress.
	Active() bool
	// DraggedSize is the last committed size, kept across drags.
	DraggedSize() Size
}

// Idle is the resting state. It remembers the last committed size so a
// later reconfiguration can fall back to it.
type Idle struct {
	Dragged Size
}

func (Idle) Active() bool        { return false }
func (s Idle) DraggedSize() Size { return s.Dragged }

// Dragging is the state between a drag start and a drag end.
type Dragging struct {
	Anchor  int
	Dragged Size
	Resized bool
}

func (Dragging) Active() bool        { return true }
func (s Dragging) DraggedSize() Size { return s.Dragged }

func startDrag(s DragState, anchor int) DragState {
	return Dragging{Anchor: anchor, Dragged: s.DraggedSize()}
}

func moveDrag(s Dragging, current int, size Size, clamped bool) DragState {
	next := Dragging{Anchor: s.Anchor, Dragged: size, Resized: s.Resized}
	if !clamped {
		next.Anchor = current
		next.Resized = true
	}
	return next
}

func endDrag(s DragState) DragState {
	return Idle{Dragged: s.DraggedSize()}
}

func withDraggedSize(s DragState, size Size) DragState {
	if d, ok := s.(Dragging); ok {
		d.Dragged = size
		return d
	}
	return Idle{Dragged: size}
}
