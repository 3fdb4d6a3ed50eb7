// Package gist talks to the GitHub Gists API: OAuth through a gatekeeper,
// the authenticated user, listing, fetching, creating, updating and
// commenting on gists.
package gist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
	"golang.org/x/sync/errgroup"

	"playpen/internal/httpx"
)

// ErrNotAuthenticated is returned by operations that need a token when none
// is stored.
var ErrNotAuthenticated = errors.New("not authenticated with github")

// TokenTTL is how long an OAuth token is kept.
const TokenTTL = 14 * 24 * time.Hour

const (
	tokenKey     = "github.token"
	gistsKeyBase = "github.gists:"
)

// Storage persists the token and the gist list cache.
type Storage interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Put(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Options configures a Client. Zero fields take the GitHub defaults.
type Options struct {
	APIBase    string
	Gatekeeper string
	ShareBase  string
	ClientID   string
	Scopes     []string
	HTTP       *httpx.Client
	Storage    Storage
	Logger     zerolog.Logger
}

// Client is safe for concurrent use.
type Client struct {
	opts  Options
	http  *httpx.Client
	store Storage
	log   zerolog.Logger

	mu   sync.Mutex
	user *User
}

// New returns a client. Storage is required.
func New(opts Options) *Client {
	if opts.APIBase == "" {
		opts.APIBase = "https://api.github.com"
	}
	if opts.Gatekeeper == "" {
		opts.Gatekeeper = "https://gatekeeper.abstractsequential.com"
	}
	if opts.ShareBase == "" {
		opts.ShareBase = "https://jmfirth.github.io/typescript-playground/"
	}
	if len(opts.Scopes) == 0 {
		opts.Scopes = []string{"user:email", "gist"}
	}
	opts.APIBase = strings.TrimRight(opts.APIBase, "/")
	opts.Gatekeeper = strings.TrimRight(opts.Gatekeeper, "/")
	if opts.HTTP == nil {
		opts.HTTP = &httpx.Client{}
	}
	return &Client{
		opts:  opts,
		http:  opts.HTTP,
		store: opts.Storage,
		log:   opts.Logger.With().Str("component", "gist").Logger(),
	}
}

// OAuthURL is the GitHub authorize page; GitHub redirects back to redirect
// with a code for Authenticate.
func (c *Client) OAuthURL(redirect string) string {
	q := url.Values{}
	q.Set("client_id", c.opts.ClientID)
	if redirect != "" {
		q.Set("redirect_uri", redirect)
	}
	q.Set("scope", strings.Join(c.opts.Scopes, ","))
	return "https://github.com/login/oauth/authorize?" + q.Encode()
}

// ShareURL is the playground link for a gist.
func (c *Client) ShareURL(id string) string {
	return c.opts.ShareBase + "?gistId=" + url.QueryEscape(id)
}

// Authenticate exchanges an OAuth code for a token and stores it. Any
// failure clears the stored token.
func (c *Client) Authenticate(ctx context.Context, code string) error {
	if code == "" {
		return fmt.Errorf("authenticate: empty code")
	}
	body, err := c.http.Do(ctx, httpx.Request{
		URL: c.opts.Gatekeeper + "/authenticate/" + url.PathEscape(code),
	})
	if err == nil {
		token := gjson.GetBytes(body, "token").String()
		if token == "" {
			reason := gjson.GetBytes(body, "error").String()
			if reason == "" {
				reason = "no token in response"
			}
			err = errors.New(reason)
		} else {
			c.resetUser()
			if err := c.store.Put(ctx, tokenKey, token, TokenTTL); err != nil {
				return fmt.Errorf("store token: %w", err)
			}
			c.log.Info().Msg("github authentication successful")
			return nil
		}
	}
	if derr := c.store.Delete(ctx, tokenKey); derr != nil {
		c.log.Warn().Err(derr).Msg("failed to clear token")
	}
	return fmt.Errorf("github authentication failed: %w", err)
}

// Authenticated reports whether a non-expired token is stored.
func (c *Client) Authenticated(ctx context.Context) bool {
	_, ok, err := c.store.Get(ctx, tokenKey)
	return err == nil && ok
}

// Logout forgets the token, the memoized user and the gist list cache.
func (c *Client) Logout(ctx context.Context) error {
	c.resetUser()
	if err := c.store.Delete(ctx, tokenKey); err != nil {
		return err
	}
	return c.ClearCache(ctx, "")
}

func (c *Client) resetUser() {
	c.mu.Lock()
	c.user = nil
	c.mu.Unlock()
}

func (c *Client) token(ctx context.Context) (string, error) {
	t, ok, err := c.store.Get(ctx, tokenKey)
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	if !ok {
		return "", ErrNotAuthenticated
	}
	return t, nil
}

func authHeader(token string) http.Header {
	if token == "" {
		return nil
	}
	return http.Header{"Authorization": {"token " + token}}
}

// User returns the authenticated user. The first successful result is
// memoized until Logout or Authenticate.
func (c *Client) User(ctx context.Context) (*User, error) {
	token, err := c.token(ctx)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	if u := c.user; u != nil {
		c.mu.Unlock()
		return u, nil
	}
	c.mu.Unlock()

	var u User
	if err := c.http.DoJSON(ctx, httpx.Request{URL: c.opts.APIBase + "/user", Header: authHeader(token)}, &u); err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	c.mu.Lock()
	c.user = &u
	c.mu.Unlock()
	return &u, nil
}

func gistsKey(username string) string { return gistsKeyBase + username }

// List returns the gists of username, or of the authenticated user when
// username is empty. Results are cached until ClearCache.
func (c *Client) List(ctx context.Context, username string) ([]Gist, error) {
	if cached, ok, err := c.store.Get(ctx, gistsKey(username)); err == nil && ok {
		var gists []Gist
		if err := json.Unmarshal([]byte(cached), &gists); err == nil {
			return gists, nil
		}
		c.log.Warn().Str("user", username).Msg("discarding unreadable gist cache")
	}

	token, err := c.token(ctx)
	if err != nil {
		return nil, err
	}
	u := c.opts.APIBase + "/gists"
	if username != "" {
		u = c.opts.APIBase + "/users/" + url.PathEscape(username) + "/gists"
	}
	body, err := c.http.Do(ctx, httpx.Request{URL: u, Header: authHeader(token)})
	if err != nil {
		return nil, fmt.Errorf("list gists: %w", err)
	}
	var gists []Gist
	if err := json.Unmarshal(body, &gists); err != nil {
		return nil, fmt.Errorf("decode gist list: %w", err)
	}
	if err := c.store.Put(ctx, gistsKey(username), string(body), 0); err != nil {
		c.log.Warn().Err(err).Msg("failed to cache gist list")
	}
	return gists, nil
}

// ClearCache drops the cached list for username ("" is the authenticated
// user's own list).
func (c *Client) ClearCache(ctx context.Context, username string) error {
	return c.store.Delete(ctx, gistsKey(username))
}

// Get fetches a gist, optionally at revision rev, and fills in the content
// of truncated files. No token is required for public gists.
func (c *Client) Get(ctx context.Context, id, rev string) (*Gist, error) {
	if id == "" {
		return nil, fmt.Errorf("get gist: empty id")
	}
	u := c.opts.APIBase + "/gists/" + url.PathEscape(id)
	if rev != "" {
		u += "/" + url.PathEscape(rev)
	}
	token, _ := c.token(ctx)
	var g Gist
	if err := c.http.DoJSON(ctx, httpx.Request{URL: u, Header: authHeader(token)}, &g); err != nil {
		return nil, fmt.Errorf("get gist %s: %w", id, err)
	}
	if err := c.fillTruncated(ctx, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

func (c *Client) fillTruncated(ctx context.Context, g *Gist) error {
	type result struct {
		name    string
		content string
	}
	var pending []string
	for name, f := range g.Files {
		if f.Truncated && f.RawURL != "" {
			pending = append(pending, name)
		}
	}
	if len(pending) == 0 {
		return nil
	}
	results := make([]result, len(pending))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(4)
	for i, name := range pending {
		raw := g.Files[name].RawURL
		eg.Go(func() error {
			content, err := c.File(ctx, raw)
			if err != nil {
				return fmt.Errorf("fetch %s: %w", name, err)
			}
			results[i] = result{name: name, content: content}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}
	for _, r := range results {
		f := g.Files[r.name]
		f.Content = r.content
		f.Truncated = false
		g.Files[r.name] = f
	}
	return nil
}

// File fetches the raw content behind a gist file URL.
func (c *Client) File(ctx context.Context, rawURL string) (string, error) {
	b, err := c.http.Do(ctx, httpx.Request{URL: rawURL})
	if err != nil {
		return "", err
	}
	return string(b), nil
}

type writeRequest struct {
	Description string          `json:"description"`
	Public      *bool           `json:"public,omitempty"`
	Files       map[string]File `json:"files"`
}

func reservedFiles(b *FilesBuilder, definitions, modules map[string]string) (*FilesBuilder, error) {
	defs, err := json.Marshal(nonNil(definitions))
	if err != nil {
		return nil, fmt.Errorf("encode definitions: %w", err)
	}
	mods, err := json.Marshal(nonNil(modules))
	if err != nil {
		return nil, fmt.Errorf("encode modules: %w", err)
	}
	return b.Add(DefinitionsFile, string(defs)).Add(ModulesFile, string(mods)), nil
}

func nonNil(m map[string]string) map[string]string {
	if m == nil {
		return map[string]string{}
	}
	return m
}

// Create publishes a new gist from project files keyed by relative path.
// After creation a comment with the share link is posted and the own gist
// list cache is refreshed; failures there are logged, not returned.
func (c *Client) Create(ctx context.Context, description string, files, definitions, modules map[string]string, public bool) (*Gist, error) {
	token, err := c.token(ctx)
	if err != nil {
		return nil, err
	}
	b, err := reservedFiles(NewFilesBuilder(files), definitions, modules)
	if err != nil {
		return nil, err
	}
	req := writeRequest{Description: description, Public: &public, Files: b.DropEmpty().Files()}

	var g Gist
	if err := c.http.DoJSON(ctx, httpx.Request{
		Method: http.MethodPost,
		URL:    c.opts.APIBase + "/gists",
		Header: authHeader(token),
		JSON:   req,
	}, &g); err != nil {
		return nil, fmt.Errorf("create gist: %w", err)
	}
	c.log.Info().Str("gist", g.ID).Msg("gist created")

	link := fmt.Sprintf("View this in the [TypeScript Playground](%s).", c.ShareURL(g.ID))
	if _, err := c.Comment(ctx, g.ID, link); err != nil {
		c.log.Warn().Err(err).Str("gist", g.ID).Msg("failed to add playground link comment")
		return &g, nil
	}
	if err := c.ClearCache(ctx, ""); err != nil {
		c.log.Warn().Err(err).Msg("failed to clear gist cache")
	} else if _, err := c.List(ctx, ""); err != nil {
		c.log.Warn().Err(err).Msg("failed to refresh gist list")
	}
	return &g, nil
}

// Update replaces the description and files of an existing gist.
func (c *Client) Update(ctx context.Context, id, description string, files, definitions, modules map[string]string) (*Gist, error) {
	token, err := c.token(ctx)
	if err != nil {
		return nil, err
	}
	b, err := reservedFiles(NewFilesBuilder(files), definitions, modules)
	if err != nil {
		return nil, err
	}
	var g Gist
	if err := c.http.DoJSON(ctx, httpx.Request{
		Method: http.MethodPatch,
		URL:    c.opts.APIBase + "/gists/" + url.PathEscape(id),
		Header: authHeader(token),
		JSON:   writeRequest{Description: description, Files: b.Files()},
	}, &g); err != nil {
		return nil, fmt.Errorf("update gist %s: %w", id, err)
	}
	return &g, nil
}

// Comment posts a markdown comment on a gist.
func (c *Client) Comment(ctx context.Context, id, body string) (*Comment, error) {
	token, err := c.token(ctx)
	if err != nil {
		return nil, err
	}
	var out Comment
	if err := c.http.DoJSON(ctx, httpx.Request{
		Method: http.MethodPost,
		URL:    c.opts.APIBase + "/gists/" + url.PathEscape(id) + "/comments",
		Header: authHeader(token),
		JSON:   map[string]string{"body": body},
	}, &out); err != nil {
		return nil, fmt.Errorf("comment on gist %s: %w", id, err)
	}
	return &out, nil
}
