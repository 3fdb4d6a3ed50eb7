// Copyright
// SPDX-License-Identifier: MIT
// playpen: terminal TypeScript playground with a resizable editor/preview split and GitHub Gist sharing
package main

import (
    "context"
    "errors"
    "fmt"
    "os"
    "os/signal"
    "syscall"
    "time"

    "github.com/rs/zerolog"
    "github.com/spf13/cobra"

    "playpen/internal/config"
    "playpen/internal/editorconf"
    "playpen/internal/gist"
    "playpen/internal/httpx"
    "playpen/internal/logging"
    "playpen/internal/project"
    "playpen/internal/store"
    "playpen/internal/tui"
)

var Version = "0.1.0"

/* ---------- app ---------- */

// app holds what every subcommand shares once config is loaded.
type app struct {
    cfg      *config.Manager
    log      zerolog.Logger
    closeLog func()
    store    *store.Store
    gists    *gist.Client
}

type globalFlags struct {
    configDir string
    logFile   string
    logLevel  string
    noColor   bool
}

var (
    flags   globalFlags
    current *app
)

func newApp(ctx context.Context, f globalFlags) (*app, error) {
    boot := logging.New(logging.Config{Level: zerolog.WarnLevel, Format: "console"}, os.Stderr)
    mgr, err := config.NewManager(f.configDir, boot)
    if err != nil {
        return nil, err
    }
    if err := mgr.Load(); err != nil {
        return nil, err
    }
    if f.logFile != "" {
        if err := mgr.Set("logging.file", f.logFile); err != nil {
            return nil, err
        }
    }
    if f.logLevel != "" {
        if err := mgr.Set("logging.level", f.logLevel); err != nil {
            return nil, err
        }
    }
    c := mgr.Get()

    lc := logging.DefaultConfig()
    lc.Level = logging.ParseLevel(c.Logging.Level)
    lc.Format = c.Logging.Format
    lc.File = c.Logging.File
    log, closeLog, err := logging.NewWithFile(lc)
    if err != nil {
        return nil, err
    }

    st, err := store.Open(logging.WithContext(ctx, log), c.Database.Path)
    if err != nil {
        closeLog()
        return nil, err
    }
    log.Debug().Str("config", mgr.ConfigFile()).Str("db", c.Database.Path).Msg("starting")

    return &app{
        cfg:      mgr,
        log:      log,
        closeLog: closeLog,
        store:    st,
        gists: gist.New(gist.Options{
            APIBase:    c.GitHub.APIBase,
            Gatekeeper: c.GitHub.Gatekeeper,
            ShareBase:  c.GitHub.ShareBase,
            ClientID:   c.GitHub.ClientID,
            Scopes:     c.GitHub.Scopes,
            HTTP:       &httpx.Client{Timeout: 30 * time.Second},
            Storage:    st,
            Logger:     log,
        }),
    }, nil
}

func (a *app) Close() {
    if err := a.store.Close(); err != nil {
        a.log.Warn().Err(err).Msg("close store")
    }
    a.closeLog()
}

/* ---------- CLI ---------- */

var rootCmd = &cobra.Command{
    Use:   "playpen [project]",
    Short: "A TypeScript playground for the terminal",
    Long: `playpen edits a small TypeScript project (code, HTML, CSS and tests) next to a
live preview. Drag the divider with the mouse to resize the panes; double-click
it to reset. Projects save to a local database and, after 'playpen login', to
GitHub Gists that can be shared as playground links.

Without arguments the last scratch project is reopened.`,
    Args:          cobra.MaximumNArgs(1),
    SilenceUsage:  true,
    SilenceErrors: true,
    PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
        switch cmd.Name() {
        case "help", "completion", "version":
            return nil
        }
        var err error
        current, err = newApp(cmd.Context(), flags)
        if err != nil {
            return fmt.Errorf("initialize: %w", err)
        }
        return nil
    },
    PersistentPostRun: func(_ *cobra.Command, _ []string) {
        if current != nil {
            current.Close()
        }
    },
    RunE: runOpen,
}

func init() {
    pf := rootCmd.PersistentFlags()
    pf.StringVar(&flags.configDir, "config-dir", "", "directory holding config.toml (default: XDG config dir)")
    pf.StringVar(&flags.logFile, "log-file", "", "write logs to this file")
    pf.StringVar(&flags.logLevel, "log-level", "", "trace|debug|info|warn|error")
    pf.BoolVar(&flags.noColor, "no-color", false, "disable colors (also NO_COLOR)")
    addOpenFlags(rootCmd)
}

func main() {
    ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
    defer stop()
    if err := rootCmd.ExecuteContext(ctx); err != nil {
        fmt.Fprintln(os.Stderr, "playpen:", err)
        stop()
        os.Exit(1)
    }
}

/* ---------- open ---------- */

type openOptions struct {
    gistID      string
    rev         string
    fresh       bool
    split       string
    primary     string
    size        string
    defaultSize string
    minSize     int
    maxSize     int
    noResize    bool
}

var openOpts openOptions

func addOpenFlags(cmd *cobra.Command) {
    f := cmd.Flags()
    f.StringVar(&openOpts.gistID, "gist", "", "open a gist by id")
    f.StringVar(&openOpts.rev, "rev", "", "gist revision (with --gist)")
    f.BoolVar(&openOpts.fresh, "new", false, "start a new project instead of reopening")
    f.StringVar(&openOpts.split, "split", "", "vertical|horizontal")
    f.StringVar(&openOpts.primary, "primary", "", "pane holding the explicit size: first|second")
    f.StringVar(&openOpts.size, "size", "", "fixed primary pane size, cells or percent (e.g. 40 or 40%)")
    f.StringVar(&openOpts.defaultSize, "default-size", "", "initial primary pane size")
    f.IntVar(&openOpts.minSize, "min-size", 0, "smallest primary pane size in cells")
    f.IntVar(&openOpts.maxSize, "max-size", 0, "largest primary pane size; <= 0 is relative to the terminal")
    f.BoolVar(&openOpts.noResize, "no-resize", false, "lock the divider")
}

// applySplitFlags copies explicitly set split flags into the config.
func applySplitFlags(cmd *cobra.Command, mgr *config.Manager) error {
    set := map[string]any{}
    fl := cmd.Flags()
    if fl.Changed("split") {
        set["split.orientation"] = openOpts.split
    }
    if fl.Changed("primary") {
        set["split.primary"] = openOpts.primary
    }
    if fl.Changed("size") {
        set["split.size"] = openOpts.size
    }
    if fl.Changed("default-size") {
        set["split.default_size"] = openOpts.defaultSize
    }
    if fl.Changed("min-size") {
        set["split.min_size"] = openOpts.minSize
    }
    if fl.Changed("max-size") {
        set["split.max_size"] = openOpts.maxSize
    }
    if fl.Changed("no-resize") {
        set["split.allow_resize"] = !openOpts.noResize
    }
    for k, v := range set {
        if err := mgr.Set(k, v); err != nil {
            return fmt.Errorf("%s: %w", k, err)
        }
    }
    return nil
}

func editorOptions(c *config.Config) (editorconf.Options, error) {
    platform, err := editorconf.ParsePlatform(c.Editor.Platform)
    if err != nil {
        return editorconf.Options{}, err
    }
    opts := editorconf.DefaultOptions(platform)
    if c.Editor.FontSize > 0 {
        opts.FontSize = c.Editor.FontSize
    }
    if c.Editor.Theme != "" {
        opts.Theme = c.Editor.Theme
    }
    if c.Editor.TabWidth > 0 {
        opts.TabWidth = c.Editor.TabWidth
    }
    return opts, nil
}

// loadProject resolves the project to edit: a gist, a stored project or a
// new scratch project.
func loadProject(ctx context.Context, a *app, key string, opts editorconf.Options) (*project.Project, error) {
    if openOpts.gistID != "" {
        g, err := a.gists.Get(ctx, openOpts.gistID, openOpts.rev)
        if err != nil {
            return nil, fmt.Errorf("fetch gist %s: %w", openOpts.gistID, err)
        }
        return project.FromGist(g, opts)
    }
    if openOpts.fresh {
        return project.New("", "", "", opts), nil
    }
    if key == "" {
        key = project.New("", "", "", opts).StoreKey()
    }
    rec, err := a.store.LoadProject(ctx, key)
    if errors.Is(err, store.ErrNotFound) {
        a.log.Debug().Str("id", key).Msg("no stored project, starting fresh")
        return project.New("", "", "", opts), nil
    }
    if err != nil {
        return nil, err
    }
    return project.Unmarshal(rec.Data)
}

func runOpen(cmd *cobra.Command, args []string) error {
    ctx := cmd.Context()
    a := current
    if err := applySplitFlags(cmd, a.cfg); err != nil {
        return err
    }
    c := a.cfg.Get()
    split, err := c.Split.SplitPane()
    if err != nil {
        return err
    }
    opts, err := editorOptions(c)
    if err != nil {
        return err
    }
    key := ""
    if len(args) == 1 {
        key = args[0]
    }
    p, err := loadProject(ctx, a, key, opts)
    if err != nil {
        return err
    }

    updates := make(chan *config.Config, 1)
    a.cfg.OnConfigChange(func(c *config.Config) {
        select {
        case updates <- c:
        default:
            // keep only the newest
            select {
            case <-updates:
            default:
            }
            updates <- c
        }
    })
    a.cfg.Watch()

    a.log.Info().Str("project", p.StoreKey()).Int("files", len(p.Files)).Msg("opening playground")
    return tui.Run(ctx, tui.Options{
        Project:       p,
        Split:         split,
        Publisher:     a.gists,
        Store:         a.store,
        ShareURL:      a.gists.ShareURL,
        ConfigUpdates: updates,
        Logger:        a.log,
        NoColor:       flags.noColor,
    })
}
