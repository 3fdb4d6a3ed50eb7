package splitpane

import "time"

const (
	doubleClickWindow   = 400 * time.Millisecond
	doubleClickDistance = 1
)

// Divider is the draggable bar between the panes. It only forwards raw
// input: presses become drag starts, releases become clicks.
type Divider struct {
	OnMouseDown   func(x, y int)
	OnTouchStart  func(PointerEvent)
	OnTouchEnd    func()
	OnClick       func()
	OnDoubleClick func()

	clicks clickTracker
}

// MouseDown forwards a press on the divider.
func (d *Divider) MouseDown(x, y int) {
	if d.OnMouseDown != nil {
		d.OnMouseDown(x, y)
	}
}

// TouchStart forwards a touch beginning on the divider.
func (d *Divider) TouchStart(ev PointerEvent) {
	if d.OnTouchStart != nil {
		d.OnTouchStart(ev)
	}
}

// TouchEnd forwards a touch lifting off the divider.
func (d *Divider) TouchEnd() {
	if d.OnTouchEnd != nil {
		d.OnTouchEnd()
	}
}

// Release records a mouse release on the divider and fires the click or
// double-click hook.
func (d *Divider) Release(p Point, at time.Time) {
	if d.clicks.record(p, at) == 2 {
		if d.OnDoubleClick != nil {
			d.OnDoubleClick()
		}
		return
	}
	if d.OnClick != nil {
		d.OnClick()
	}
}

// clickTracker counts consecutive releases close in time and space.
type clickTracker struct {
	lastPos   Point
	lastTime  time.Time
	lastCount int
}

func (t *clickTracker) record(p Point, at time.Time) int {
	if at.IsZero() {
		at = time.Now()
	}
	if t.inSequence(p, at) {
		t.lastCount++
		if t.lastCount > 2 {
			t.lastCount = 1
		}
	} else {
		t.lastCount = 1
	}
	t.lastPos = p
	t.lastTime = at
	return t.lastCount
}

func (t *clickTracker) inSequence(p Point, at time.Time) bool {
	if t.lastCount == 0 || t.lastTime.IsZero() {
		return false
	}
	elapsed := at.Sub(t.lastTime)
	if elapsed < 0 || elapsed > doubleClickWindow {
		return false
	}
	return abs(p.X-t.lastPos.X)+abs(p.Y-t.lastPos.Y) <= doubleClickDistance
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
