package main

import (
    "context"
    "errors"
    "fmt"
    "io"
    "os"
    "strings"
    "time"

    "github.com/charmbracelet/lipgloss"
    "github.com/spf13/cobra"

    "playpen/internal/gist"
    "playpen/internal/oauthcb"
    "playpen/internal/store"
)

var (
    headStyle  = lipgloss.NewStyle().Bold(true)
    faintStyle = lipgloss.NewStyle().Faint(true)
)

var versionCmd = &cobra.Command{
    Use:   "version",
    Short: "Print version",
    Run: func(cmd *cobra.Command, _ []string) {
        fmt.Fprintln(cmd.OutOrStdout(), "playpen", Version)
    },
}

var loginCmd = &cobra.Command{
    Use:   "login [code]",
    Short: "Connect a GitHub account for gist saving",
    Long: `Without a code, prints the GitHub authorization URL. After approving access,
GitHub redirects to the playground page with ?code=... in the address; pass that
code to 'playpen login CODE'. The token is kept for 14 days.`,
    Args: cobra.MaximumNArgs(1),
    RunE: func(cmd *cobra.Command, args []string) error {
        ctx, a, out := cmd.Context(), current, cmd.OutOrStdout()
        code := ""
        switch {
        case len(args) == 1:
            code = args[0]
        case loginListen:
            var err error
            if code, err = waitForCode(ctx, out); err != nil {
                return fmt.Errorf("login: %w", err)
            }
        default:
            fmt.Fprintln(out, "Open this URL and approve access:")
            fmt.Fprintln(out, " ", a.gists.OAuthURL(a.cfg.Get().GitHub.ShareBase))
            fmt.Fprintln(out, "Then run: playpen login CODE")
            return nil
        }
        if err := a.gists.Authenticate(ctx, code); err != nil {
            return fmt.Errorf("login: %w", err)
        }
        u, err := a.gists.User(ctx)
        if err != nil {
            return fmt.Errorf("login: %w", err)
        }
        fmt.Fprintf(out, "Logged in as %s\n", u.Login)
        return nil
    },
}

var loginListen bool

// waitForCode runs the loopback callback and waits for GitHub's redirect.
// The OAuth app must allow the loopback redirect, so this is meant for a
// client id configured under [github].
func waitForCode(ctx context.Context, out io.Writer) (string, error) {
    srv, err := oauthcb.Listen()
    if err != nil {
        return "", err
    }
    defer srv.Close()

    url := current.gists.OAuthURL(srv.RedirectURL())
    fmt.Fprintln(out, "Waiting for GitHub to redirect to", srv.RedirectURL())
    fmt.Fprintln(out, " ", url)
    if err := oauthcb.OpenBrowser(url); err != nil {
        current.log.Debug().Err(err).Msg("open browser")
    }
    ctx, cancel := context.WithTimeout(ctx, 5*time.Minute)
    defer cancel()
    return srv.Wait(ctx)
}

var logoutCmd = &cobra.Command{
    Use:   "logout",
    Short: "Forget the stored GitHub token",
    RunE: func(cmd *cobra.Command, _ []string) error {
        if err := current.gists.Logout(cmd.Context()); err != nil {
            return err
        }
        fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
        return nil
    },
}

var gistsRefresh bool

var gistsCmd = &cobra.Command{
    Use:   "gists [user]",
    Short: "List gists (yours by default)",
    Args:  cobra.MaximumNArgs(1),
    RunE: func(cmd *cobra.Command, args []string) error {
        ctx, a := cmd.Context(), current
        username := ""
        if len(args) == 1 {
            username = args[0]
        } else {
            u, err := a.gists.User(ctx)
            if errors.Is(err, gist.ErrNotAuthenticated) {
                return errors.New("not logged in: pass a user name or run 'playpen login'")
            }
            if err != nil {
                return err
            }
            username = u.Login
        }
        if gistsRefresh {
            if err := a.gists.ClearCache(ctx, username); err != nil {
                return err
            }
        }
        list, err := a.gists.List(ctx, username)
        if err != nil {
            return err
        }
        printGists(cmd.OutOrStdout(), username, list)
        return nil
    },
}

func printGists(w io.Writer, username string, list []gist.Gist) {
    fmt.Fprintln(w, headStyle.Render(fmt.Sprintf("Gists of %s (%d)", username, len(list))))
    for _, g := range list {
        desc := g.Description
        if desc == "" {
            desc = faintStyle.Render("(no description)")
        }
        vis := "public"
        if !g.Public {
            vis = "secret"
        }
        fmt.Fprintf(w, "  %-32s  %-6s  %s  %s\n", g.ID, vis, g.UpdatedAt.Format(time.DateOnly), desc)
    }
}

var projectsCmd = &cobra.Command{
    Use:   "projects",
    Short: "List projects saved locally",
    RunE: func(cmd *cobra.Command, _ []string) error {
        recs, err := current.store.ListProjects(cmd.Context())
        if err != nil {
            return err
        }
        printProjects(cmd.OutOrStdout(), recs)
        return nil
    },
}

func printProjects(w io.Writer, recs []store.ProjectRecord) {
    if len(recs) == 0 {
        fmt.Fprintln(w, faintStyle.Render("No saved projects"))
        return
    }
    for _, r := range recs {
        fmt.Fprintf(w, "  %-40s  %s  %s\n", r.ID, r.UpdatedAt.Format(time.DateTime), r.Description)
    }
}

var projectsRmCmd = &cobra.Command{
    Use:   "rm ID...",
    Short: "Delete locally saved projects",
    Args:  cobra.MinimumNArgs(1),
    RunE: func(cmd *cobra.Command, args []string) error {
        for _, id := range args {
            if err := current.store.DeleteProject(cmd.Context(), id); err != nil {
                return fmt.Errorf("%s: %w", id, err)
            }
        }
        return nil
    },
}

var configCmd = &cobra.Command{
    Use:   "config",
    Short: "Show or write the configuration file",
}

var configPathCmd = &cobra.Command{
    Use:   "path",
    Short: "Print the config file location",
    Run: func(cmd *cobra.Command, _ []string) {
        fmt.Fprintln(cmd.OutOrStdout(), current.cfg.ConfigFile())
    },
}

var configInitCmd = &cobra.Command{
    Use:   "init",
    Short: "Write the effective configuration to the config file",
    RunE: func(cmd *cobra.Command, _ []string) error {
        path := current.cfg.ConfigFile()
        if _, err := os.Stat(path); err == nil {
            return fmt.Errorf("%s already exists", path)
        }
        if err := current.cfg.Save(); err != nil {
            return err
        }
        fmt.Fprintln(cmd.OutOrStdout(), "Wrote", path)
        return nil
    },
}

var configShowCmd = &cobra.Command{
    Use:   "show",
    Short: "Print the effective split and editor settings",
    Run: func(cmd *cobra.Command, _ []string) {
        c := current.cfg.Get()
        var b strings.Builder
        fmt.Fprintf(&b, "split.orientation  = %s\n", c.Split.Orientation)
        fmt.Fprintf(&b, "split.primary      = %s\n", c.Split.Primary)
        fmt.Fprintf(&b, "split.allow_resize = %t\n", c.Split.AllowResize)
        fmt.Fprintf(&b, "split.min_size     = %d\n", c.Split.MinSize)
        if c.Split.MaxSize != nil {
            fmt.Fprintf(&b, "split.max_size     = %d\n", *c.Split.MaxSize)
        }
        fmt.Fprintf(&b, "split.default_size = %s\n", c.Split.DefaultSize)
        fmt.Fprintf(&b, "split.size         = %s\n", c.Split.Size)
        fmt.Fprintf(&b, "editor.platform    = %s\n", c.Editor.Platform)
        fmt.Fprintf(&b, "database.path      = %s\n", c.Database.Path)
        fmt.Fprintf(&b, "logging.file       = %s\n", c.Logging.File)
        fmt.Fprint(cmd.OutOrStdout(), b.String())
    },
}

func init() {
    loginCmd.Flags().BoolVar(&loginListen, "listen", false, "receive the code on a loopback redirect")
    gistsCmd.Flags().BoolVar(&gistsRefresh, "refresh", false, "ignore the cached list")
    projectsCmd.AddCommand(projectsRmCmd)
    configCmd.AddCommand(configPathCmd, configInitCmd, configShowCmd)
    rootCmd.AddCommand(versionCmd, loginCmd, logoutCmd, gistsCmd, projectsCmd, configCmd)
}
