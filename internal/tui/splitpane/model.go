package splitpane

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Messages emitted by Model.Update, one per host callback.
type (
	DragStartedMsg        struct{}
	ChangeMsg             struct{ Size Size }
	DragFinishedMsg       struct{ Size Size }
	ResizerClickMsg       struct{}
	ResizerDoubleClickMsg struct{}
	// SelectionClearedMsg asks the host to drop any text selection.
	SelectionClearedMsg struct{}
)

// Theme colors the divider. NoColor also drops the colors of the
// host-supplied container, pane and resizer styles.
type Theme struct {
	Divider       lipgloss.TerminalColor
	DividerActive lipgloss.TerminalColor
	NoColor       bool
}

// DefaultTheme returns the divider colors used when the host sets none.
func DefaultTheme() Theme {
	return Theme{
		Divider:       lipgloss.AdaptiveColor{Light: "245", Dark: "240"},
		DividerActive: lipgloss.AdaptiveColor{Light: "205", Dark: "213"},
	}
}

// Model binds a Controller to terminal mouse input and renders two child
// views around a divider.
type Model struct {
	ctrl      *Controller
	doc       *Document
	divider   *Divider
	pane1     *PaneStore
	pane2     *PaneStore
	container *PaneStore
	outbox    *[]tea.Msg
	theme     Theme

	x, y          int
	width, height int
	geom          Geometry

	now func() time.Time
}

// New builds a mounted split pane. Call Close to release its document
// subscriptions.
func New(cfg Config) Model {
	outbox := new([]tea.Msg)
	m := Model{
		doc:       NewDocument(),
		pane1:     &PaneStore{},
		pane2:     &PaneStore{},
		container: &PaneStore{},
		outbox:    outbox,
		theme:     DefaultTheme(),
		now:       time.Now,
	}
	m.ctrl = NewController(wrapCallbacks(cfg, outbox), m.pane1, m.pane2, m.container)
	ctrl := m.ctrl
	m.divider = &Divider{
		OnMouseDown:  ctrl.MouseDown,
		OnTouchStart: ctrl.Start,
		OnTouchEnd:   ctrl.End,
		OnClick: func() {
			if f := ctrl.Config().OnResizerClick; f != nil {
				f()
			}
		},
		OnDoubleClick: func() {
			if f := ctrl.Config().OnResizerDoubleClick; f != nil {
				f()
			}
		},
	}
	m.doc.OnClearSelection(func() { *outbox = append(*outbox, SelectionClearedMsg{}) })
	m.ctrl.Mount(m.doc)
	return m
}

// wrapCallbacks chains the host callbacks with message posting.
func wrapCallbacks(cfg Config, outbox *[]tea.Msg) Config {
	post := func(msg tea.Msg) { *outbox = append(*outbox, msg) }
	started, change, finished := cfg.OnDragStarted, cfg.OnChange, cfg.OnDragFinished
	click, dbl := cfg.OnResizerClick, cfg.OnResizerDoubleClick

	cfg.OnDragStarted = func() {
		if started != nil {
			started()
		}
		post(DragStartedMsg{})
	}
	cfg.OnChange = func(s Size) {
		if change != nil {
			change(s)
		}
		post(ChangeMsg{Size: s})
	}
	cfg.OnDragFinished = func(s Size) {
		if finished != nil {
			finished(s)
		}
		post(DragFinishedMsg{Size: s})
	}
	cfg.OnResizerClick = func() {
		if click != nil {
			click()
		}
		post(ResizerClickMsg{})
	}
	cfg.OnResizerDoubleClick = func() {
		if dbl != nil {
			dbl()
		}
		post(ResizerDoubleClickMsg{})
	}
	return cfg
}

func (m Model) Init() tea.Cmd { return nil }

// Update routes mouse input through the divider and the document and
// returns the resulting notifications as messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if mm, ok := msg.(tea.MouseMsg); ok {
		m.handleMouse(mm)
	}
	m.relayout()
	return m, m.drain()
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	if !m.ctrl.Mounted() {
		return
	}
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft && m.OnDivider(msg.X, msg.Y) {
			m.divider.MouseDown(msg.X, msg.Y)
		}
	case tea.MouseActionMotion:
		m.doc.Dispatch(MouseMove, MouseEvent(msg.X, msg.Y))
	case tea.MouseActionRelease:
		// mouseup ends a drag before the click hooks run
		m.doc.Dispatch(MouseUp, MouseEvent(msg.X, msg.Y))
		if m.OnDivider(msg.X, msg.Y) {
			m.divider.Release(Point{X: msg.X, Y: msg.Y}, m.now())
		}
	}
}

// Touch feeds touch input from hosts that have it. Starts only count on
// the divider; moves and ends are document-wide. Terminal hosts deliver
// mouse input only, so nothing in the playground calls it today.
func (m Model) Touch(kind EventKind, ev PointerEvent, onDivider bool) (Model, tea.Cmd) {
	switch kind {
	case TouchMove, TouchEnd:
		if onDivider && kind == TouchEnd {
			m.divider.TouchEnd()
		}
		m.doc.Dispatch(kind, ev)
	case TouchStart:
		if onDivider {
			m.divider.TouchStart(ev)
		}
	}
	m.relayout()
	return m, m.drain()
}

func (m *Model) drain() tea.Cmd {
	if len(*m.outbox) == 0 {
		return nil
	}
	msgs := *m.outbox
	*m.outbox = nil
	cmds := make([]tea.Cmd, 0, len(msgs))
	for _, msg := range msgs {
		msg := msg
		cmds = append(cmds, func() tea.Msg { return msg })
	}
	return tea.Sequence(cmds...)
}

// Configure applies a new configuration, e.g. after a config reload.
func (m Model) Configure(cfg Config) Model {
	m.ctrl.Configure(wrapCallbacks(cfg, m.outbox))
	m.relayout()
	return m
}

// WithTheme sets the divider colors.
func (m Model) WithTheme(t Theme) Model {
	m.theme = t
	return m
}

// SetBounds places the split pane at (x, y) with the given dimensions.
func (m Model) SetBounds(x, y, width, height int) Model {
	m.x, m.y = x, y
	m.width, m.height = width, height
	m.relayout()
	return m
}

// Close unmounts the controller; later input is ignored.
func (m Model) Close() { m.ctrl.Unmount() }

func (m *Model) relayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	primary := m.pane1
	if m.ctrl.Config().Primary == Second {
		primary = m.pane2
	}
	m.geom = Layout(m.width, m.height, m.ctrl.Config(), primary.Size())
	w1, h1, w2, h2 := m.geom.Dims()
	m.pane1.Measure(w1, h1)
	m.pane2.Measure(w2, h2)
	m.container.Measure(m.width, m.height)
}

// OnDivider reports whether the terminal cell (x, y) is on the divider.
func (m Model) OnDivider(x, y int) bool {
	if m.geom.Divider == 0 {
		return false
	}
	along, across := x-m.x, y-m.y
	if m.geom.Split == Horizontal {
		along, across = across, along
	}
	return along == m.geom.Pane1 && across >= 0 && across < m.geom.Cross
}

// Geometry returns the last computed layout.
func (m Model) Geometry() Geometry { return m.geom }

// Controller exposes the underlying state machine.
func (m Model) Controller() *Controller { return m.ctrl }

// Document exposes the event scope the controller listens on.
func (m Model) Document() *Document { return m.doc }

// Dragging reports whether a drag is in progress.
func (m Model) Dragging() bool { return m.ctrl.State().Active() }

// PrimarySize returns the size currently held by the primary pane.
func (m Model) PrimarySize() Size {
	if m.ctrl.Config().Primary == Second {
		return m.pane2.Size()
	}
	return m.pane1.Size()
}

// PaneDims returns the current cell dimensions of both panes.
func (m Model) PaneDims() (w1, h1, w2, h2 int) { return m.geom.Dims() }

// View renders pane1 and pane2 content around the divider.
func (m Model) View(pane1, pane2 string) string {
	if m.geom.Total <= 0 {
		return ""
	}
	cfg := m.ctrl.Config()
	s1, s2 := PaneStyles(cfg)
	w1, h1, w2, h2 := m.geom.Dims()
	left := renderPane(m.termStyle(s1), pane1, w1, h1)
	right := renderPane(m.termStyle(s2), pane2, w2, h2)
	div := m.renderDivider(cfg)

	var body string
	if cfg.Split == Vertical {
		body = lipgloss.JoinHorizontal(lipgloss.Top, left, div, right)
	} else {
		body = lipgloss.JoinVertical(lipgloss.Left, left, div, right)
	}
	return m.termStyle(Prefix(ContainerStyle(cfg))).Render(body)
}

// termStyle converts a host style, dropping its colors under NoColor.
func (m Model) termStyle(s Style) lipgloss.Style {
	ls := s.Lipgloss()
	if m.theme.NoColor {
		ls = ls.UnsetForeground().UnsetBackground()
	}
	return ls
}

func (m Model) renderDivider(cfg Config) string {
	style := lipgloss.NewStyle()
	switch {
	case !cfg.AllowResize:
		style = style.Faint(true)
	case m.Dragging():
		style = style.Bold(true)
		if !m.theme.NoColor {
			style = style.Foreground(m.theme.DividerActive)
		}
	case !m.theme.NoColor:
		style = style.Foreground(m.theme.Divider)
	}
	style = m.termStyle(Prefix(cfg.ResizerStyle)).Inherit(style)
	if cfg.Split == Vertical {
		return style.Render(strings.TrimSuffix(strings.Repeat("│\n", m.geom.Cross), "\n"))
	}
	return style.Render(strings.Repeat("─", m.geom.Cross))
}

func renderPane(style lipgloss.Style, content string, w, h int) string {
	if w <= 0 || h <= 0 {
		return ""
	}
	lines := strings.Split(content, "\n")
	if len(lines) > h {
		lines = lines[:h]
	}
	return style.Width(w).MaxWidth(w).Height(h).MaxHeight(h).Render(strings.Join(lines, "\n"))
}
