package splitpane

// Controller is the drag state machine behind a split pane. It owns both
// pane stores and is the only writer to them.
type Controller struct {
	cfg       Config
	pane1     Pane
	pane2     Pane
	container Box

	state DragState
	doc   *Document
	subs  []func()
}

// NewController wires a controller to its two panes and the container box
// used for container-relative MaxSize values.
func NewController(cfg Config, pane1, pane2 Pane, container Box) *Controller {
	return &Controller{
		cfg:       cfg,
		pane1:     pane1,
		pane2:     pane2,
		container: container,
		state:     Idle{},
	}
}

// Config returns the active configuration.
func (c *Controller) Config() Config { return c.cfg }

// State returns the current drag state.
func (c *Controller) State() DragState { return c.state }

// Mounted reports whether the controller holds document subscriptions.
func (c *Controller) Mounted() bool { return c.doc != nil }

// Mount resolves the initial size and subscribes to move/end events on doc
// for as long as the controller stays mounted.
func (c *Controller) Mount(doc *Document) {
	if c.doc != nil {
		c.Unmount()
	}
	c.doc = doc
	c.Configure(c.cfg)
	c.subs = append(c.subs,
		doc.AddListener(MouseUp, func(PointerEvent) { c.End() }),
		doc.AddListener(TouchEnd, func(PointerEvent) { c.End() }),
		doc.AddListener(MouseMove, c.Move),
		doc.AddListener(TouchMove, c.Move),
	)
}

// Unmount releases every document subscription and drops any drag in
// progress without reporting it as finished.
func (c *Controller) Unmount() {
	for _, remove := range c.subs {
		remove()
	}
	c.subs = nil
	c.doc = nil
	c.state = endDrag(c.state)
}

// Configure applies a new configuration and re-resolves the primary pane
// size: explicit Size, then the last dragged size, then DefaultSize, then
// MinSize. A controlled Size that differs from the drag memory replaces it.
func (c *Controller) Configure(cfg Config) {
	c.cfg = cfg
	primary, other := c.panes()
	if primary == nil {
		return
	}
	size := ResolveSize(cfg, c.state.DraggedSize())
	primary.SetSize(size)
	if other != nil {
		other.SetSize(Size{})
	}
	if !cfg.Size.Equal(c.state.DraggedSize()) {
		c.state = withDraggedSize(c.state, size)
	}
}

// MouseDown is the divider's mouse entry point.
func (c *Controller) MouseDown(x, y int) {
	c.Start(MouseEvent(x, y))
}

// Start begins a drag at the first contact of ev. It is a no-op while
// unmounted, while resizing is disabled, or while a drag is already running.
func (c *Controller) Start(ev PointerEvent) {
	if c.doc == nil || !c.cfg.AllowResize || c.state.Active() {
		return
	}
	pos, ok := ev.axis(c.cfg.Split)
	if !ok {
		return
	}
	c.doc.ClearSelection()
	if c.cfg.OnDragStarted != nil {
		c.cfg.OnDragStarted()
	}
	c.state = startDrag(c.state, pos)
}

// Move resizes the primary pane for a pointer at ev. Nothing happens unless
// a drag is active and the primary pane has been measured.
func (c *Controller) Move(ev PointerEvent) {
	d, ok := c.state.(Dragging)
	if !c.cfg.AllowResize || !ok {
		return
	}
	c.doc.ClearSelection()

	primary, _ := c.panes()
	paneExtent, ok := extent(primary, c.cfg.Split)
	if !ok {
		return
	}
	current, ok := ev.axis(c.cfg.Split)
	if !ok {
		return
	}
	containerExtent := 0
	if c.cfg.MaxSize != nil && *c.cfg.MaxSize <= 0 {
		if containerExtent, ok = extent(c.container, c.cfg.Split); !ok {
			return
		}
	}

	res := ComputeSize(ResizeInput{
		Current:         current,
		Anchor:          d.Anchor,
		PaneExtent:      paneExtent,
		ContainerExtent: containerExtent,
		PrimaryFirst:    c.cfg.primaryFirst(),
		MinSize:         c.cfg.MinSize,
		MaxSize:         c.cfg.MaxSize,
	})
	size := Cells(res.Size)
	c.state = moveDrag(d, current, size, res.Clamped)
	primary.SetSize(size)
	if c.cfg.OnChange != nil {
		c.cfg.OnChange(size)
	}
}

// End finishes the active drag and reports the last committed size.
func (c *Controller) End() {
	if !c.cfg.AllowResize || !c.state.Active() {
		return
	}
	if c.cfg.OnDragFinished != nil {
		c.cfg.OnDragFinished(c.state.DraggedSize())
	}
	c.state = endDrag(c.state)
}

func (c *Controller) panes() (primary, other Pane) {
	if c.cfg.primaryFirst() {
		return c.pane1, c.pane2
	}
	return c.pane2, c.pane1
}
