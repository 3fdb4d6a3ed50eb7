package httpx

import (
    "bytes"
    "context"
    "encoding/json"
    "fmt"
    "io"
    "net/http"
    "strings"
    "time"
)

var (
    DefaultTimeout = 20 * time.Second
)

// StatusError is returned for any non-2xx response.
type StatusError struct {
    Method string
    URL    string
    Code   int
    Body   string // first 4KiB
}

func (e *StatusError) Error() string {
    return fmt.Sprintf("%s %s: %s (%d)", e.Method, e.URL, strings.TrimSpace(e.Body), e.Code)
}

// Request describes one call. A non-nil JSON value is encoded as the body.
type Request struct {
    Method string
    URL    string
    Header http.Header
    JSON   any
}

// Client wraps an *http.Client with the package defaults.
type Client struct {
    HTTP    *http.Client
    Timeout time.Duration
}

func (c *Client) httpClient() *http.Client {
    if c == nil || c.HTTP == nil {
        return http.DefaultClient
    }
    return c.HTTP
}

func (c *Client) timeout() time.Duration {
    if c == nil || c.Timeout <= 0 {
        return DefaultTimeout
    }
    return c.Timeout
}

// Do performs the request and returns the body of a 2xx response.
func (c *Client) Do(ctx context.Context, r Request) ([]byte, error) {
    ctx, cancel := context.WithTimeout(ctx, c.timeout())
    defer cancel()

    method := r.Method
    if method == "" {
        method = http.MethodGet
    }
    var body io.Reader
    if r.JSON != nil {
        data, err := json.Marshal(r.JSON)
        if err != nil {
            return nil, fmt.Errorf("encode %s body: %w", r.URL, err)
        }
        body = bytes.NewReader(data)
    }
    req, err := http.NewRequestWithContext(ctx, method, r.URL, body)
    if err != nil {
        return nil, err
    }
    for k, vs := range r.Header {
        for _, v := range vs {
            req.Header.Add(k, v)
        }
    }
    if body != nil && req.Header.Get("Content-Type") == "" {
        req.Header.Set("Content-Type", "application/json")
    }
    resp, err := c.httpClient().Do(req)
    if err != nil {
        return nil, err
    }
    defer resp.Body.Close()
    if resp.StatusCode < 200 || resp.StatusCode >= 300 {
        b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
        return nil, &StatusError{Method: method, URL: r.URL, Code: resp.StatusCode, Body: string(b)}
    }
    all, err := io.ReadAll(resp.Body)
    if err != nil {
        return nil, err
    }
    return all, nil
}

// DoJSON performs the request and decodes a JSON response into out.
func (c *Client) DoJSON(ctx context.Context, r Request, out any) error {
    b, err := c.Do(ctx, r)
    if err != nil {
        return err
    }
    if out == nil || len(b) == 0 {
        return nil
    }
    if err := json.Unmarshal(b, out); err != nil {
        return fmt.Errorf("decode %s: %w", r.URL, err)
    }
    return nil
}
