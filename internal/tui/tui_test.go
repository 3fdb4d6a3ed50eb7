package tui

import (
	"bytes"
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"playpen/internal/config"
	"playpen/internal/editorconf"
	"playpen/internal/gist"
	"playpen/internal/project"
	"playpen/internal/store"
	"playpen/internal/tui/splitpane"
	"playpen/internal/tui/state"
)

type fakePublisher struct {
	user    *gist.User
	err     error
	created int
	updated []string
}

func (f *fakePublisher) User(context.Context) (*gist.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

func (f *fakePublisher) Create(context.Context, string, map[string]string, map[string]string, map[string]string, bool) (*gist.Gist, error) {
	f.created++
	return &gist.Gist{ID: "g1"}, nil
}

func (f *fakePublisher) Update(_ context.Context, id, _ string, _, _, _ map[string]string) (*gist.Gist, error) {
	f.updated = append(f.updated, id)
	return &gist.Gist{ID: id}, nil
}

type fakeStore struct {
	records map[string]store.ProjectRecord
	err     error
}

func (f *fakeStore) SaveProject(_ context.Context, rec store.ProjectRecord) error {
	if f.err != nil {
		return f.err
	}
	if f.records == nil {
		f.records = map[string]store.ProjectRecord{}
	}
	f.records[rec.ID] = rec
	return nil
}

func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	// tea.Batch and tea.Sequence both wrap a []tea.Cmd
	v := reflect.ValueOf(msg)
	if !v.IsValid() || v.Kind() != reflect.Slice || v.Type().Elem() != reflect.TypeOf(tea.Cmd(nil)) {
		return []tea.Msg{msg}
	}
	var out []tea.Msg
	for i := 0; i < v.Len(); i++ {
		out = append(out, collect(v.Index(i).Interface().(tea.Cmd))...)
	}
	return out
}

// feed delivers msg and every message its command produces.
func feed(m *Model, msg tea.Msg) {
	_, cmd := m.Update(msg)
	for _, out := range collect(cmd) {
		if out != nil {
			feed(m, out)
		}
	}
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+n":
		return tea.KeyMsg{Type: tea.KeyCtrlN}
	case "ctrl+t":
		return tea.KeyMsg{Type: tea.KeyCtrlT}
	case "ctrl+y":
		return tea.KeyMsg{Type: tea.KeyCtrlY}
	case "ctrl+o":
		return tea.KeyMsg{Type: tea.KeyCtrlO}
	case "ctrl+r":
		return tea.KeyMsg{Type: tea.KeyCtrlR}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func mouse(x, y int, action tea.MouseAction) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: action, Button: tea.MouseButtonLeft}
}

type harness struct {
	m      *Model
	pub    *fakePublisher
	store  *fakeStore
	copied []string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{pub: &fakePublisher{}, store: &fakeStore{}}
	split := splitpane.DefaultConfig()
	split.MinSize = 10
	split.DefaultSize = splitpane.Cells(30)
	p := project.New("let a = 1\n", "<p>hi</p>\n", "", editorconf.DefaultOptions(editorconf.Desktop))
	h.m = New(context.Background(), Options{
		Project:   p,
		Split:     split,
		Publisher: h.pub,
		Store:     h.store,
		ShareURL:  func(id string) string { return "https://play.test/?gistId=" + id },
		Clipboard: func(s string) error {
			h.copied = append(h.copied, s)
			return nil
		},
		Logger:  zerolog.Nop(),
		NoColor: true,
	})
	t.Cleanup(h.m.Close)
	feed(h.m, tea.WindowSizeMsg{Width: 80, Height: 21})
	return h
}

func (h *harness) save(t *testing.T) {
	t.Helper()
	_, cmd := h.m.Update(keyMsg("ctrl+s"))
	require.NotNil(t, cmd)
	require.True(t, h.m.ui.Busy)
	feed(h.m, cmd())
}

func TestInitialLayout(t *testing.T) {
	h := newHarness(t)
	g := h.m.split.Geometry()
	assert.Equal(t, 30, g.Pane1)
	assert.Equal(t, 20, g.Cross)
	assert.Equal(t, project.CodeFile, h.m.currentPath())
	assert.Equal(t, "vertical", h.m.ui.Split)

	lines := strings.Split(h.m.View(), "\n")
	assert.Len(t, lines, 21)
	assert.Contains(t, lines[0], "[CMD]")
	assert.Contains(t, lines[0], project.CodeFile)
	assert.Contains(t, lines[20], "vertical")
}

func TestDividerDrag(t *testing.T) {
	h := newHarness(t)
	feed(h.m, mouse(30, 5, tea.MouseActionPress))
	assert.True(t, h.m.ui.Dragging)

	feed(h.m, mouse(45, 5, tea.MouseActionMotion))
	assert.Equal(t, "45", h.m.ui.SplitSize)
	assert.Equal(t, 45, h.m.split.Geometry().Pane1)

	feed(h.m, mouse(45, 5, tea.MouseActionRelease))
	assert.False(t, h.m.ui.Dragging)
	assert.Equal(t, "Split: 45", h.m.ui.Notice)
}

func TestDragLeavesInsertMode(t *testing.T) {
	h := newHarness(t)
	h.m.Update(keyMsg("i"))
	require.Equal(t, state.INSERT, h.m.ui.Mode)

	feed(h.m, mouse(30, 5, tea.MouseActionPress))
	assert.Equal(t, state.CMD, h.m.ui.Mode)
	assert.False(t, h.m.editor.Focused())
}

func TestDoubleClickResetsSplit(t *testing.T) {
	h := newHarness(t)
	feed(h.m, mouse(30, 5, tea.MouseActionPress))
	feed(h.m, mouse(50, 5, tea.MouseActionMotion))
	feed(h.m, mouse(50, 5, tea.MouseActionRelease))
	require.Equal(t, 50, h.m.split.Geometry().Pane1)

	// the drag's release was the first click
	feed(h.m, mouse(50, 5, tea.MouseActionRelease))
	assert.Equal(t, 30, h.m.split.Geometry().Pane1)
	assert.Equal(t, splitpane.Cells(30), h.m.split.PrimarySize())
	assert.Equal(t, "Split reset", h.m.ui.Notice)
}

func TestDoubleClickAfterDragKeepsReset(t *testing.T) {
	h := newHarness(t)
	feed(h.m, mouse(30, 5, tea.MouseActionPress))
	feed(h.m, mouse(50, 5, tea.MouseActionMotion))
	feed(h.m, mouse(50, 5, tea.MouseActionRelease))

	// a real double-click presses the divider again, starting a drag
	feed(h.m, mouse(50, 5, tea.MouseActionPress))
	require.True(t, h.m.ui.Dragging)
	feed(h.m, mouse(50, 5, tea.MouseActionRelease))

	assert.False(t, h.m.ui.Dragging)
	assert.Equal(t, 30, h.m.split.Geometry().Pane1)
	assert.Equal(t, "30", h.m.ui.SplitSize)
	assert.Equal(t, "Split reset", h.m.ui.Notice)
}

func TestResetAndOrientationKeys(t *testing.T) {
	h := newHarness(t)
	feed(h.m, mouse(30, 5, tea.MouseActionPress))
	feed(h.m, mouse(40, 5, tea.MouseActionMotion))
	feed(h.m, mouse(40, 5, tea.MouseActionPress))
	feed(h.m, mouse(70, 5, tea.MouseActionRelease))

	feed(h.m, keyMsg("ctrl+o"))
	g := h.m.split.Geometry()
	assert.Equal(t, splitpane.Horizontal, g.Split)
	assert.Equal(t, 19, g.Pane1, "dragged size is kept and clamped to the height")
	assert.Equal(t, "horizontal", h.m.ui.Split)

	feed(h.m, keyMsg("ctrl+r"))
	assert.Equal(t, 20, h.m.split.Geometry().Total)
	assert.Equal(t, splitpane.Cells(30), h.m.split.PrimarySize())
}

func TestClickInEditorEntersInsert(t *testing.T) {
	h := newHarness(t)
	h.m.Update(mouse(5, 5, tea.MouseActionPress))
	assert.Equal(t, state.INSERT, h.m.ui.Mode)
	assert.True(t, h.m.editor.Focused())

	h.m.Update(keyMsg("esc"))
	assert.Equal(t, state.CMD, h.m.ui.Mode)
}

func TestWheelScrollsPreviewOnly(t *testing.T) {
	h := newHarness(t)
	long := strings.Repeat("x\n", 100)
	h.m.project.Files[project.CodeFile] = long
	h.m.editor = h.m.editor.Load(long)
	h.m.refreshPreview()

	h.m.Update(tea.MouseMsg{X: 60, Y: 3, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown})
	assert.Equal(t, 1, h.m.ui.ScrollV)

	h.m.Update(tea.MouseMsg{X: 5, Y: 3, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown})
	assert.Equal(t, 1, h.m.ui.ScrollV)
}

func TestTypingMarksDirty(t *testing.T) {
	h := newHarness(t)
	assert.False(t, h.m.ui.Dirty)

	h.m.Update(keyMsg("i"))
	h.m.Update(keyMsg("x"))
	assert.True(t, h.m.ui.Dirty)
	assert.Contains(t, h.m.project.Files[project.CodeFile], "x")
	assert.Contains(t, h.m.fileTab(), "[Modified]")

	// letters type in INSERT mode instead of running commands
	h.m.Update(keyMsg("q"))
	assert.Contains(t, h.m.project.Files[project.CodeFile], "q")
}

func TestSavePublishesGist(t *testing.T) {
	h := newHarness(t)
	h.pub.user = &gist.User{Login: "octo", ID: 7}
	h.m.Update(keyMsg("i"))
	h.m.Update(keyMsg("x"))

	h.save(t)
	assert.False(t, h.m.ui.Busy)
	assert.False(t, h.m.ui.Dirty)
	assert.Equal(t, "Saved gist g1", h.m.ui.Notice)
	assert.Equal(t, project.Gist, h.m.project.Kind)
	assert.Equal(t, "7", h.m.project.OwnerID)
	assert.Equal(t, 1, h.pub.created)
	require.Contains(t, h.store.records, "gist:g1")

	saved, err := project.Unmarshal(h.store.records["gist:g1"].Data)
	require.NoError(t, err)
	assert.Contains(t, saved.Files[project.CodeFile], "x")

	// the owner's next save updates the same gist
	h.save(t)
	assert.Equal(t, []string{"g1"}, h.pub.updated)
	assert.Equal(t, 1, h.pub.created)
}

func TestSaveWithoutLoginStaysLocal(t *testing.T) {
	h := newHarness(t)
	h.save(t)
	assert.Equal(t, project.Local, h.m.project.Kind)
	assert.Contains(t, h.store.records, "local:scratch")
	assert.Contains(t, h.m.ui.Notice, "Saved locally")
}

func TestSaveFailureKeepsProject(t *testing.T) {
	h := newHarness(t)
	h.pub.err = errors.New("boom")
	h.m.Update(keyMsg("i"))
	h.m.Update(keyMsg("x"))

	h.save(t)
	assert.True(t, h.m.ui.Dirty)
	assert.Equal(t, "Save failed: boom", h.m.ui.Notice)
	assert.Equal(t, project.Local, h.m.project.Kind)
	assert.Empty(t, h.store.records)
}

func TestShare(t *testing.T) {
	h := newHarness(t)
	_, cmd := h.m.Update(keyMsg("ctrl+y"))
	assert.Nil(t, cmd)
	assert.Contains(t, h.m.ui.Notice, "Save to a gist first")

	h.pub.user = &gist.User{Login: "octo", ID: 7}
	h.save(t)
	feed(h.m, keyMsg("ctrl+y"))
	assert.Equal(t, []string{"https://play.test/?gistId=g1"}, h.copied)
	assert.Equal(t, "Copied share link", h.m.ui.Notice)
}

func TestFilesAndPreviewModes(t *testing.T) {
	h := newHarness(t)
	feed(h.m, keyMsg("ctrl+n"))
	assert.Equal(t, project.StyleFile, h.m.currentPath())
	assert.Equal(t, "", h.m.editor.Value())

	feed(h.m, keyMsg("ctrl+t"))
	assert.Equal(t, state.Diff, h.m.ui.Preview)
	assert.Contains(t, h.m.View(), "No changes since last save")

	feed(h.m, keyMsg("?"))
	assert.True(t, h.m.ui.Help)
	assert.Contains(t, h.m.View(), "Help (Mode: CMD)")
}

func TestConfigReload(t *testing.T) {
	h := newHarness(t)
	cfg := &config.Config{Split: config.SplitConfig{
		Orientation: "horizontal",
		Primary:     "first",
		AllowResize: true,
		MinSize:     5,
		DefaultSize: "50%",
	}}
	h.m.Update(configMsg{cfg: cfg})
	g := h.m.split.Geometry()
	assert.Equal(t, splitpane.Horizontal, g.Split)
	assert.Equal(t, 10, g.Pane1)
	assert.Equal(t, "Config reloaded", h.m.ui.Notice)

	cfg.Split.Orientation = "diagonal"
	h.m.Update(configMsg{cfg: cfg})
	assert.Equal(t, splitpane.Horizontal, h.m.split.Geometry().Split)
	assert.Contains(t, h.m.ui.Notice, "Config error")
}

func TestSplitClassesLogged(t *testing.T) {
	var buf bytes.Buffer
	split := splitpane.DefaultConfig()
	split.ClassName = "playground"
	m := New(context.Background(), Options{
		Project: project.New("", "", "", editorconf.DefaultOptions(editorconf.Desktop)),
		Split:   split,
		Logger:  zerolog.New(&buf).Level(zerolog.DebugLevel),
		NoColor: true,
	})
	t.Cleanup(m.Close)
	assert.Contains(t, buf.String(), `"class":"SplitPane playground vertical"`)
	assert.Contains(t, buf.String(), `"resizer":"Resizer vertical"`)
}

func TestQuit(t *testing.T) {
	h := newHarness(t)
	_, cmd := h.m.Update(keyMsg("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
