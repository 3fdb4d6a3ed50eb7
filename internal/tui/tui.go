// Package tui is the interactive playground: an editor and a preview in a
// resizable split, with saving to the local store and to gists.
package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"playpen/internal/config"
	"playpen/internal/editorconf"
	"playpen/internal/gist"
	"playpen/internal/project"
	"playpen/internal/store"
	"playpen/internal/tui/splitpane"
	"playpen/internal/tui/state"
	"playpen/internal/tui/util"
	"playpen/internal/tui/widgets/diff"
	"playpen/internal/tui/widgets/editor"
	"playpen/internal/tui/widgets/helpoverlay"
	"playpen/internal/tui/widgets/preview"
	"playpen/internal/tui/widgets/statusbar"
	"playpen/internal/tui/widgets/tagchips"
)

// ProjectStore persists projects locally.
type ProjectStore interface {
	SaveProject(ctx context.Context, rec store.ProjectRecord) error
}

// Options configures a playground session.
type Options struct {
	Project *project.Project
	// Saved is the last saved state of Project; nil means Project itself.
	Saved *project.Project
	Split splitpane.Config

	// Publisher saves to gists; nil keeps saves local.
	Publisher project.Publisher
	Store     ProjectStore
	ShareURL  func(id string) string
	Clipboard func(string) error

	// ConfigUpdates delivers reloaded configuration.
	ConfigUpdates <-chan *config.Config

	Logger  zerolog.Logger
	NoColor bool
}

// Run starts the playground and blocks until the user quits or ctx ends.
func Run(ctx context.Context, opts Options) error {
	m := New(ctx, opts)
	defer m.Close()
	p := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return err
	}
	return nil
}

type savedMsg struct {
	project *project.Project
	remote  bool
	err     error
}

type configMsg struct{ cfg *config.Config }

type clipboardMsg struct {
	url string
	err error
}

// Model is the playground bubbletea model.
type Model struct {
	ctx  context.Context
	opts Options
	log  zerolog.Logger
	keys KeyMap

	ui       state.UIState
	split    splitpane.Model
	splitCfg splitpane.Config

	editor  editor.Editor
	preview *preview.Preview
	diff    diff.DiffView
	status  statusbar.StatusBar
	help    helpoverlay.HelpOverlay
	noColor bool

	project *project.Project
	saved   *project.Project
	files   []string
}

// New builds a playground model over opts.Project (a fresh project when
// nil).
func New(ctx context.Context, opts Options) *Model {
	p := opts.Project
	if p == nil {
		p = project.New("", "", "", editorconf.DefaultOptions(editorconf.DetectPlatform()))
	}
	saved := opts.Saved
	if saved == nil {
		saved = p.Clone()
	}
	if opts.ShareURL == nil {
		opts.ShareURL = func(id string) string { return config.DefaultShareBase + "?gistId=" + id }
	}
	if opts.Clipboard == nil {
		opts.Clipboard = clipboard.WriteAll
	}

	noColor := util.NoColor(opts.NoColor)
	pal := util.DefaultPalette()
	theme := splitpane.Theme{Divider: pal.DividerColor(false), DividerActive: pal.DividerColor(true), NoColor: noColor}

	m := &Model{
		ctx:      ctx,
		opts:     opts,
		log:      opts.Logger.With().Str("component", "tui").Logger(),
		keys:     DefaultKeyMap(),
		split:    splitpane.New(opts.Split).WithTheme(theme),
		splitCfg: opts.Split,
		editor:   editor.NewEditor(p.EditorOptions),
		noColor:  noColor,
		diff:     diff.NewDiffView(),
		status:   statusbar.NewStatusBar(),
		help:     helpoverlay.NewHelpOverlay(),
		project:  p,
		saved:    saved,
		files:    p.Files.Sorted(),
	}
	m.preview = preview.NewPreview(m.noColor)
	m.ui = state.UIState{MinCol: 20}
	m.ui = state.SetFiles(m.ui, len(m.files))
	for i, f := range m.files {
		if f == project.CodeFile {
			m.ui.File = i
		}
	}
	m.ui = state.SetSplit(m.ui, opts.Split.Split.String(), m.split.PrimarySize().String())
	m.ui.Dirty = m.dirty()
	m.editor = m.editor.Load(m.project.Files[m.currentPath()])
	m.logSplit("split configured", opts.Split)
	return m
}

func (m *Model) logSplit(msg string, cfg splitpane.Config) {
	m.log.Debug().
		Str("class", splitpane.ClassNames(cfg)).
		Str("resizer", splitpane.ResizerClassNames(cfg)).
		Str("size", m.split.PrimarySize().String()).
		Msg(msg)
}

// Close releases the split pane's event subscriptions.
func (m *Model) Close() { m.split.Close() }

func (m *Model) Init() tea.Cmd {
	if m.opts.ConfigUpdates == nil {
		return nil
	}
	return waitConfig(m.opts.ConfigUpdates)
}

func waitConfig(ch <-chan *config.Config) tea.Cmd {
	return func() tea.Msg {
		c, ok := <-ch
		if !ok {
			return nil
		}
		return configMsg{cfg: c}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch v := msg.(type) {
	case tea.WindowSizeMsg:
		m.ui = state.Resize(m.ui, v.Width, v.Height)
		m.split = m.split.SetBounds(0, 0, v.Width, max(v.Height-1, 0))
		m.layout()
		return m, nil

	case tea.MouseMsg:
		return m, m.handleMouse(v)

	case splitpane.DragStartedMsg:
		m.ui = state.DragStarted(m.ui)
		m.log.Debug().Str("size", m.split.PrimarySize().String()).Msg("drag started")
		return m, nil

	case splitpane.ChangeMsg:
		m.ui = state.DragChanged(m.ui, v.Size.String())
		m.layout()
		return m, nil

	case splitpane.DragFinishedMsg:
		m.ui = state.DragFinished(m.ui, v.Size.String())
		m.log.Debug().Str("size", v.Size.String()).Msg("drag finished")
		m.layout()
		return m, nil

	case splitpane.SelectionClearedMsg:
		if m.ui.Mode == state.INSERT {
			m.editor = m.editor.Blur()
			m.ui.Mode = state.CMD
		}
		return m, nil

	case splitpane.ResizerClickMsg:
		return m, nil

	case splitpane.ResizerDoubleClickMsg:
		m.resetSplit()
		return m, nil

	case configMsg:
		m.applyConfig(v.cfg)
		return m, waitConfig(m.opts.ConfigUpdates)

	case savedMsg:
		m.finishSave(v)
		return m, nil

	case clipboardMsg:
		if v.err != nil {
			m.log.Warn().Err(v.err).Msg("clipboard")
			m.ui = state.Notify(m.ui, "Share link: "+v.url)
		} else {
			m.ui = state.Notify(m.ui, "Copied share link")
		}
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(v)
	}

	if m.ui.Mode == state.INSERT {
		var cmd tea.Cmd
		m.editor, cmd = m.editor.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case msg.String() == "ctrl+c":
		return tea.Quit
	case key.Matches(msg, m.keys.Save):
		return m.save()
	case key.Matches(msg, m.keys.NextFile):
		m.switchFile(state.NextFile)
		return nil
	case key.Matches(msg, m.keys.PrevFile):
		m.switchFile(state.PrevFile)
		return nil
	case key.Matches(msg, m.keys.Preview):
		m.ui = state.TogglePreview(m.ui)
		m.refreshPreview()
		return nil
	case key.Matches(msg, m.keys.Share):
		return m.share()
	case key.Matches(msg, m.keys.Orientation):
		m.flipOrientation()
		return nil
	case key.Matches(msg, m.keys.ResetSplit):
		m.resetSplit()
		return nil
	}

	if m.ui.Mode == state.INSERT {
		if key.Matches(msg, m.keys.Command) {
			m.editor = m.editor.Blur()
			m.ui = state.ToggleMode(m.ui)
			return nil
		}
		var cmd tea.Cmd
		m.editor, cmd = m.editor.Update(msg)
		m.syncBuffer()
		return cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit), key.Matches(msg, m.keys.Command):
		return tea.Quit
	case key.Matches(msg, m.keys.Insert):
		return m.enterInsert()
	case key.Matches(msg, m.keys.Help):
		m.ui = state.ToggleHelp(m.ui)
		m.refreshPreview()
	case key.Matches(msg, m.keys.DiffView):
		m.ui = state.ToggleView(m.ui)
		m.refreshPreview()
	case key.Matches(msg, m.keys.Wrap):
		m.ui = state.ToggleWrap(m.ui)
		m.refreshPreview()
	case key.Matches(msg, m.keys.ScrollUp):
		m.scroll(state.ScrollUp(m.ui, false))
	case key.Matches(msg, m.keys.ScrollDown):
		m.scroll(state.ScrollDown(m.ui, false))
	case key.Matches(msg, m.keys.PageUp):
		m.scroll(state.ScrollUp(m.ui, true))
	case key.Matches(msg, m.keys.PageDown):
		m.scroll(state.ScrollDown(m.ui, true))
	}
	return nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	onDivider := m.split.OnDivider(msg.X, msg.Y)
	wasDragging := m.split.Dragging()
	var cmd tea.Cmd
	m.split, cmd = m.split.Update(msg)
	if onDivider || wasDragging || m.split.Dragging() {
		return cmd
	}

	pane := m.paneAt(msg.X, msg.Y)
	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonWheelUp && pane == 2:
		m.scroll(state.ScrollUp(m.ui, false))
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonWheelDown && pane == 2:
		m.scroll(state.ScrollDown(m.ui, false))
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft && pane == 1 && m.ui.Mode == state.CMD:
		return tea.Batch(cmd, m.enterInsert())
	}
	return cmd
}

// paneAt returns 1 or 2 for a cell inside a pane, 0 elsewhere.
func (m *Model) paneAt(x, y int) int {
	g := m.split.Geometry()
	along, across := x, y
	if g.Split == splitpane.Horizontal {
		along, across = y, x
	}
	if across < 0 || across >= g.Cross || along < 0 || along >= g.Total {
		return 0
	}
	switch {
	case along < g.Pane1:
		return 1
	case along >= g.Pane1+g.Divider:
		return 2
	}
	return 0
}

func (m *Model) enterInsert() tea.Cmd {
	if m.ui.Mode == state.INSERT {
		return nil
	}
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Focus()
	m.ui = state.ToggleMode(m.ui)
	return cmd
}

func (m *Model) currentPath() string {
	if len(m.files) == 0 {
		return ""
	}
	return m.files[m.ui.File]
}

// syncBuffer copies the editor buffer into the project.
func (m *Model) syncBuffer() {
	path := m.currentPath()
	if path == "" {
		return
	}
	v := m.editor.Value()
	if v == m.project.Files[path] {
		return
	}
	m.project.Files[path] = v
	m.ui = state.Edited(m.ui)
	m.refreshPreview()
}

func (m *Model) switchFile(step func(state.UIState) state.UIState) {
	m.syncBuffer()
	m.ui = step(m.ui)
	path := m.currentPath()
	m.editor = m.editor.Load(m.project.Files[path])
	m.log.Debug().Str("file", path).Msg("switched file")
	m.refreshPreview()
}

func (m *Model) scroll(s state.UIState) {
	m.ui = s
	m.preview.ScrollTo(m.ui.ScrollV)
	m.ui.ScrollV = m.preview.Offset()
}

// dirty reports whether any file differs from the saved state.
func (m *Model) dirty() bool {
	if len(m.project.Files) != len(m.saved.Files) {
		return true
	}
	for path, content := range m.project.Files {
		if saved, ok := m.saved.Files[path]; !ok || saved != content {
			return true
		}
	}
	return false
}

// layout sizes the children from the split geometry.
func (m *Model) layout() {
	w1, h1, w2, h2 := m.split.PaneDims()
	m.editor = m.editor.SetSize(w1, h1-1)
	m.preview.SetSize(w2, h2)
	m.refreshPreview()
}

func (m *Model) refreshPreview() {
	path := m.currentPath()
	content := m.project.Files[path]
	_, _, w2, _ := m.split.PaneDims()

	var out string
	switch {
	case m.ui.Help:
		out = m.help.View(m.ui, m.keys, w2)
	case m.ui.Preview == state.Diff:
		s := m.ui
		s.Width = w2
		out = m.diff.View(s, m.saved.Files[path], content)
	default:
		var err error
		out, err = m.preview.Render(path, content, editorconf.Detect(path), m.ui.Wrap)
		if err != nil {
			m.log.Warn().Err(err).Str("file", path).Msg("preview")
			out = "preview failed: " + err.Error()
		}
	}
	m.preview.SetContent(out)
	m.preview.ScrollTo(m.ui.ScrollV)
	m.ui.ScrollV = m.preview.Offset()
}

func (m *Model) flipOrientation() {
	if m.splitCfg.Split == splitpane.Vertical {
		m.splitCfg.Split = splitpane.Horizontal
	} else {
		m.splitCfg.Split = splitpane.Vertical
	}
	m.split = m.split.Configure(m.splitCfg)
	m.ui = state.SetSplit(m.ui, m.splitCfg.Split.String(), m.split.PrimarySize().String())
	m.layout()
}

// resetSplit drops the dragged size and returns to the configured one.
func (m *Model) resetSplit() {
	reset := m.splitCfg
	reset.Size = splitpane.ResolveSize(m.splitCfg, splitpane.Size{})
	m.split = m.split.Configure(reset).Configure(m.splitCfg)
	m.ui = state.SetSplit(m.ui, m.splitCfg.Split.String(), m.split.PrimarySize().String())
	m.ui = state.Notify(m.ui, "Split reset")
	m.layout()
}

func (m *Model) applyConfig(c *config.Config) {
	if c == nil {
		return
	}
	cfg, err := c.Split.SplitPane()
	if err != nil {
		m.log.Warn().Err(err).Msg("ignoring split config")
		m.ui = state.Notify(m.ui, "Config error: "+err.Error())
		return
	}
	m.splitCfg = cfg
	m.split = m.split.Configure(cfg)
	m.ui = state.SetSplit(m.ui, cfg.Split.String(), m.split.PrimarySize().String())
	m.ui = state.Notify(m.ui, "Config reloaded")
	m.log.Info().Str("split", cfg.Split.String()).Msg("config reloaded")
	m.logSplit("split configured", cfg)
	m.layout()
}

func (m *Model) save() tea.Cmd {
	if m.ui.Busy {
		return nil
	}
	m.syncBuffer()
	m.ui = state.SaveStarted(m.ui)
	ctx, pub, st, log := m.ctx, m.opts.Publisher, m.opts.Store, m.log
	snapshot := m.project.Clone()
	return func() tea.Msg {
		return saveProject(ctx, pub, st, snapshot, log)
	}
}

// saveProject publishes p when a publisher is available and records the
// result locally. Without a login the save stays local.
func saveProject(ctx context.Context, pub project.Publisher, st ProjectStore, p *project.Project, log zerolog.Logger) savedMsg {
	out, remote := p, false
	if pub != nil {
		published, err := project.Publish(ctx, pub, p)
		switch {
		case errors.Is(err, gist.ErrNotAuthenticated):
			log.Debug().Msg("not logged in, saving locally")
		case err != nil:
			return savedMsg{err: err}
		default:
			out, remote = published, true
		}
	}
	if st != nil {
		data, err := out.Marshal()
		if err != nil {
			return savedMsg{err: err}
		}
		rec := store.ProjectRecord{ID: out.StoreKey(), Description: out.Description, Data: data}
		if err := st.SaveProject(ctx, rec); err != nil {
			if !remote {
				return savedMsg{err: err}
			}
			log.Warn().Err(err).Str("id", rec.ID).Msg("local copy not saved")
		}
	}
	return savedMsg{project: out, remote: remote}
}

func (m *Model) finishSave(msg savedMsg) {
	if msg.err != nil {
		m.log.Error().Err(msg.err).Msg("save failed")
		m.ui = state.SaveFinished(m.ui, msg.err, "")
		return
	}
	m.project.Kind = msg.project.Kind
	m.project.ID = msg.project.ID
	m.project.OwnerID = msg.project.OwnerID
	m.saved = msg.project

	notice := "Saved locally"
	if msg.remote {
		notice = "Saved gist " + msg.project.ID
	} else if m.opts.Publisher != nil {
		notice = "Saved locally (run `playpen login` to share)"
	}
	m.ui = state.SaveFinished(m.ui, nil, notice)
	m.ui.Dirty = m.dirty()
	m.log.Info().Str("id", msg.project.StoreKey()).Bool("remote", msg.remote).Msg("saved")
	m.refreshPreview()
}

func (m *Model) share() tea.Cmd {
	if m.project.Kind != project.Gist || m.project.ID == "" {
		m.ui = state.Notify(m.ui, "Save to a gist first to get a share link")
		return nil
	}
	url := m.opts.ShareURL(m.project.ID)
	copyFn := m.opts.Clipboard
	return func() tea.Msg {
		return clipboardMsg{url: url, err: copyFn(url)}
	}
}

func (m *Model) fileTab() string {
	path := m.currentPath()
	if path == "" {
		return "no files"
	}
	saved, existed := m.saved.Files[path]
	tags := util.ComputeTags(saved, m.project.Files[path], existed)
	return tagchips.Tab(path, true, tags, m.noColor)
}

func (m *Model) View() string {
	if m.ui.Width == 0 {
		return ""
	}
	body := m.split.View(m.editor.View(m.ui, m.fileTab()), m.preview.View())
	status := m.status.View(m.ui, m.currentPath())
	status = lipgloss.NewStyle().MaxWidth(m.ui.Width).Render(strings.ReplaceAll(status, "\n", " "))
	if body == "" {
		return status
	}
	return body + "\n" + status
}
