package splitpane

// Box is anything that can report its rendered dimensions. ok is false
// until the box has been laid out at least once.
type Box interface {
	Measured() (width, height int, ok bool)
}

// Pane is a sized child region: the controller reads its measured
// dimensions and writes its size.
type Pane interface {
	Box
	SetSize(Size)
}

// PaneStore holds the size of one child region and the dimensions it was
// last laid out with.
type PaneStore struct {
	size          Size
	width, height int
	measured      bool
}

// Size returns the size last pushed into the store.
func (p *PaneStore) Size() Size { return p.size }

// SetSize replaces the stored size. An undefined size means "fill".
func (p *PaneStore) SetSize(s Size) { p.size = s }

// Measure records the dimensions the pane was rendered with.
func (p *PaneStore) Measure(width, height int) {
	p.width, p.height = width, height
	p.measured = true
}

// Measured implements Box.
func (p *PaneStore) Measured() (int, int, bool) {
	return p.width, p.height, p.measured
}

func extent(b Box, o Orientation) (int, bool) {
	if b == nil {
		return 0, false
	}
	w, h, ok := b.Measured()
	if !ok {
		return 0, false
	}
	if o == Vertical {
		return w, true
	}
	return h, true
}
