package main

import (
    "bytes"
    "context"
    "path/filepath"
    "testing"
    "time"

    "github.com/spf13/cobra"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "playpen/internal/editorconf"
    "playpen/internal/gist"
    "playpen/internal/project"
    "playpen/internal/store"
)

func testApp(t *testing.T) *app {
    t.Helper()
    dir := t.TempDir()
    t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
    t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
    t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
    a, err := newApp(context.Background(), globalFlags{configDir: filepath.Join(dir, "config"), logLevel: "debug"})
    require.NoError(t, err)
    t.Cleanup(a.Close)
    return a
}

func TestNewAppWiresStoreAndLogging(t *testing.T) {
    a := testApp(t)
    c := a.cfg.Get()
    assert.Equal(t, "debug", c.Logging.Level)
    assert.FileExists(t, c.Database.Path)
    assert.FileExists(t, c.Logging.File)
}

func TestApplySplitFlags(t *testing.T) {
    a := testApp(t)
    openOpts = openOptions{}
    t.Cleanup(func() { openOpts = openOptions{} })

    cmd := &cobra.Command{}
    addOpenFlags(cmd)
    require.NoError(t, cmd.Flags().Set("split", "horizontal"))
    require.NoError(t, cmd.Flags().Set("size", "40%"))
    require.NoError(t, cmd.Flags().Set("no-resize", "true"))
    require.NoError(t, applySplitFlags(cmd, a.cfg))

    c := a.cfg.Get()
    assert.Equal(t, "horizontal", c.Split.Orientation)
    assert.Equal(t, "40%", c.Split.Size)
    assert.False(t, c.Split.AllowResize)
    assert.Equal(t, "first", c.Split.Primary, "unset flags keep the config value")

    bad := &cobra.Command{}
    addOpenFlags(bad)
    require.NoError(t, bad.Flags().Set("split", "diagonal"))
    assert.Error(t, applySplitFlags(bad, a.cfg))
}

func TestEditorOptions(t *testing.T) {
    a := testApp(t)
    require.NoError(t, a.cfg.Set("editor.platform", "mobile"))
    require.NoError(t, a.cfg.Set("editor.tab_width", 4))
    opts, err := editorOptions(a.cfg.Get())
    require.NoError(t, err)
    assert.Equal(t, editorconf.DefaultFontSize(editorconf.Mobile), opts.FontSize)
    assert.Equal(t, 4, opts.TabWidth)
}

func TestLoadProjectFromStore(t *testing.T) {
    a := testApp(t)
    ctx := context.Background()
    openOpts = openOptions{}
    opts := editorconf.DefaultOptions(editorconf.Desktop)

    p, err := loadProject(ctx, a, "", opts)
    require.NoError(t, err)
    assert.Equal(t, "local:scratch", p.StoreKey())
    assert.Equal(t, "", p.Files[project.CodeFile])

    p.Files[project.CodeFile] = "let saved = true\n"
    data, err := p.Marshal()
    require.NoError(t, err)
    require.NoError(t, a.store.SaveProject(ctx, store.ProjectRecord{ID: p.StoreKey(), Description: p.Description, Data: data}))

    again, err := loadProject(ctx, a, "", opts)
    require.NoError(t, err)
    assert.Equal(t, "let saved = true\n", again.Files[project.CodeFile])

    openOpts.fresh = true
    t.Cleanup(func() { openOpts = openOptions{} })
    fresh, err := loadProject(ctx, a, "", opts)
    require.NoError(t, err)
    assert.Equal(t, "", fresh.Files[project.CodeFile])
}

func TestPrintGistsAndProjects(t *testing.T) {
    var b bytes.Buffer
    day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
    printGists(&b, "octo", []gist.Gist{
        {ID: "abc", Description: "demo", Public: true, UpdatedAt: day},
        {ID: "def", UpdatedAt: day},
    })
    out := b.String()
    assert.Contains(t, out, "Gists of octo (2)")
    assert.Contains(t, out, "abc")
    assert.Contains(t, out, "2024-05-01")
    assert.Contains(t, out, "secret")
    assert.Contains(t, out, "(no description)")

    b.Reset()
    printProjects(&b, nil)
    assert.Contains(t, b.String(), "No saved projects")
}
