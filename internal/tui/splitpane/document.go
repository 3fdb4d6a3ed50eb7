package splitpane

// EventKind names the document-level events the controller listens to.
type EventKind int

const (
	MouseMove EventKind = iota
	MouseUp
	TouchStart
	TouchMove
	TouchEnd
)

func (k EventKind) String() string {
	switch k {
	case MouseMove:
		return "mousemove"
	case MouseUp:
		return "mouseup"
	case TouchStart:
		return "touchstart"
	case TouchMove:
		return "touchmove"
	case TouchEnd:
		return "touchend"
	}
	return "unknown"
}

// Listener receives one dispatched event.
type Listener func(PointerEvent)

// Document is the whole-screen event scope. Listeners registered here see
// pointer events wherever they happen, so a drag survives the pointer
// leaving the divider. Everything runs on the UI goroutine; there is no
// locking.
type Document struct {
	listeners map[EventKind]map[int]Listener
	nextID    int
	onClear   func()
}

// NewDocument returns an empty event scope.
func NewDocument() *Document {
	return &Document{listeners: map[EventKind]map[int]Listener{}}
}

// AddListener subscribes l to kind. The returned func removes it and is
// safe to call more than once.
func (d *Document) AddListener(kind EventKind, l Listener) (remove func()) {
	if d.listeners[kind] == nil {
		d.listeners[kind] = map[int]Listener{}
	}
	id := d.nextID
	d.nextID++
	d.listeners[kind][id] = l
	return func() {
		delete(d.listeners[kind], id)
	}
}

// Dispatch delivers ev to every listener of kind.
func (d *Document) Dispatch(kind EventKind, ev PointerEvent) {
	for _, l := range d.listeners[kind] {
		l(ev)
	}
}

// ListenerCount returns the number of live subscriptions across all kinds.
func (d *Document) ListenerCount() int {
	n := 0
	for _, ls := range d.listeners {
		n += len(ls)
	}
	return n
}

// OnClearSelection installs the hook run whenever a drag wants any
// in-progress text selection dropped.
func (d *Document) OnClearSelection(fn func()) { d.onClear = fn }

// ClearSelection drops the current text selection, if the host has one.
func (d *Document) ClearSelection() {
	if d != nil && d.onClear != nil {
		d.onClear()
	}
}
