package config

import (
	"fmt"
	"strings"

	"playpen/internal/tui/splitpane"
)

// Config is the on-disk configuration (config.toml) merged with PLAYPEN_*
// environment variables.
type Config struct {
	Split    SplitConfig    `mapstructure:"split"`
	GitHub   GitHubConfig   `mapstructure:"github"`
	Editor   EditorConfig   `mapstructure:"editor"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Database DatabaseConfig `mapstructure:"database"`
}

// SplitConfig holds the workspace divider options.
type SplitConfig struct {
	Orientation string `mapstructure:"orientation"`
	Primary     string `mapstructure:"primary"`
	AllowResize bool   `mapstructure:"allow_resize"`
	MinSize     int    `mapstructure:"min_size"`
	// MaxSize is optional; values <= 0 are relative to the terminal extent.
	MaxSize     *int   `mapstructure:"max_size"`
	DefaultSize string `mapstructure:"default_size"`
	Size        string `mapstructure:"size"`
}

type GitHubConfig struct {
	ClientID   string   `mapstructure:"client_id"`
	Gatekeeper string   `mapstructure:"gatekeeper"`
	APIBase    string   `mapstructure:"api_base"`
	ShareBase  string   `mapstructure:"share_base"`
	Scopes     []string `mapstructure:"scopes"`
}

type EditorConfig struct {
	// Platform is "auto", "desktop" or "mobile".
	Platform string `mapstructure:"platform"`
	FontSize int    `mapstructure:"font_size"`
	Theme    string `mapstructure:"theme"`
	TabWidth int    `mapstructure:"tab_width"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// SplitPane converts the divider section into a splitpane.Config. Callbacks
// are left for the caller to install.
func (c SplitConfig) SplitPane() (splitpane.Config, error) {
	out := splitpane.DefaultConfig()
	out.AllowResize = c.AllowResize
	if c.MinSize > 0 {
		out.MinSize = c.MinSize
	}
	if c.MaxSize != nil {
		out.MaxSize = splitpane.IntPtr(*c.MaxSize)
	}
	var err error
	if out.Split, err = splitpane.ParseOrientation(c.Orientation); err != nil {
		return out, err
	}
	if out.Primary, err = splitpane.ParsePrimary(c.Primary); err != nil {
		return out, err
	}
	if out.DefaultSize, err = splitpane.ParseSize(c.DefaultSize); err != nil {
		return out, fmt.Errorf("default_size: %w", err)
	}
	if out.Size, err = splitpane.ParseSize(c.Size); err != nil {
		return out, fmt.Errorf("size: %w", err)
	}
	return out, nil
}

// Clone returns a deep copy.
func Clone(c *Config) *Config {
	out := *c
	if c.Split.MaxSize != nil {
		v := *c.Split.MaxSize
		out.Split.MaxSize = &v
	}
	if c.GitHub.Scopes != nil {
		out.GitHub.Scopes = append([]string(nil), c.GitHub.Scopes...)
	}
	return &out
}

func validate(c *Config) error {
	if _, err := c.Split.SplitPane(); err != nil {
		return fmt.Errorf("split: %w", err)
	}
	if c.Split.MinSize < 0 {
		return fmt.Errorf("split.min_size must not be negative")
	}
	switch strings.ToLower(c.Editor.Platform) {
	case "", "auto", "desktop", "mobile":
	default:
		return fmt.Errorf("editor.platform %q (want auto|desktop|mobile)", c.Editor.Platform)
	}
	switch c.Logging.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("logging.format %q (want console|json)", c.Logging.Format)
	}
	return nil
}
