// Package oauthcb receives the GitHub OAuth redirect on a loopback port so
// login does not need the code pasted by hand.
package oauthcb

import (
    "context"
    "errors"
    "fmt"
    "net"
    "net/http"
    "os/exec"
    "runtime"
    "time"
)

// Path is where the redirect lands.
const Path = "/callback"

type result struct {
    code string
    err  error
}

// Server is a one-shot HTTP listener on 127.0.0.1.
type Server struct {
    ln   net.Listener
    srv  *http.Server
    done chan result
}

// Listen binds a free loopback port and starts serving.
func Listen() (*Server, error) {
    ln, err := net.Listen("tcp", "127.0.0.1:0")
    if err != nil {
        return nil, fmt.Errorf("listen: %w", err)
    }
    s := &Server{ln: ln, done: make(chan result, 1)}
    mux := http.NewServeMux()
    mux.HandleFunc("GET "+Path, s.handle)
    s.srv = &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
    go func() { _ = s.srv.Serve(ln) }()
    return s, nil
}

// Port returns the bound port.
func (s *Server) Port() int { return s.ln.Addr().(*net.TCPAddr).Port }

// RedirectURL is the redirect_uri to hand to GitHub.
func (s *Server) RedirectURL() string {
    return fmt.Sprintf("http://127.0.0.1:%d%s", s.Port(), Path)
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
    q := r.URL.Query()
    res := result{code: q.Get("code")}
    switch {
    case q.Get("error") != "":
        res.err = fmt.Errorf("github: %s %s", q.Get("error"), q.Get("error_description"))
    case res.code == "":
        res.err = errors.New("redirect carried no code")
    }
    select {
    case s.done <- res:
    default:
    }
    w.Header().Set("Content-Type", "text/plain; charset=utf-8")
    if res.err != nil {
        w.WriteHeader(http.StatusBadRequest)
        fmt.Fprintln(w, "Login failed:", res.err)
        return
    }
    fmt.Fprintln(w, "Logged in. You can close this tab and return to the terminal.")
}

// Wait blocks until the first redirect arrives or ctx ends.
func (s *Server) Wait(ctx context.Context) (string, error) {
    select {
    case res := <-s.done:
        return res.code, res.err
    case <-ctx.Done():
        return "", ctx.Err()
    }
}

// Close stops the listener.
func (s *Server) Close() error {
    ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
    defer cancel()
    return s.srv.Shutdown(ctx)
}

// OpenBrowser asks the desktop to open url. Failure is not fatal for
// callers; they print the URL as well.
func OpenBrowser(url string) error {
    var cmd *exec.Cmd
    switch runtime.GOOS {
    case "darwin":
        cmd = exec.Command("open", url)
    case "windows":
        cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
    default:
        cmd = exec.Command("xdg-open", url)
    }
    if err := cmd.Start(); err != nil {
        return err
    }
    go func() { _ = cmd.Wait() }()
    return nil
}
