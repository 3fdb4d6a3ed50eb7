package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// Defaults for the GitHub integration.
const (
	DefaultClientID   = "0138dec573cf22322bb3"
	DefaultGatekeeper = "https://gatekeeper.abstractsequential.com"
	DefaultAPIBase    = "https://api.github.com"
	DefaultShareBase  = "https://jmfirth.github.io/typescript-playground/"
)

// Manager loads config.toml, applies environment overrides and notifies
// subscribers when the file changes on disk.
type Manager struct {
	config    *Config
	viper     *viper.Viper
	dir       string
	log       zerolog.Logger
	mu        sync.RWMutex
	callbacks []func(*Config)
	watching  bool
}

// NewManager creates a manager reading from dir. An empty dir means the XDG
// config directory plus the working directory.
func NewManager(dir string, log zerolog.Logger) (*Manager, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")

	if dir == "" {
		configDir, err := GetConfigDir()
		if err != nil {
			return nil, fmt.Errorf("failed to determine config directory: %w", err)
		}
		dir = configDir
		v.AddConfigPath(dir)
		v.AddConfigPath(".")
	} else {
		v.AddConfigPath(dir)
	}

	v.SetEnvPrefix("PLAYPEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.BindEnv("github.client_id", "PLAYPEN_GITHUB_CLIENT_ID", "GITHUB_CLIENT_ID"); err != nil {
		return nil, fmt.Errorf("failed to bind GITHUB_CLIENT_ID: %w", err)
	}
	if err := v.BindEnv("logging.level", "PLAYPEN_LOG_LEVEL"); err != nil {
		return nil, fmt.Errorf("failed to bind PLAYPEN_LOG_LEVEL: %w", err)
	}

	return &Manager{
		viper: v,
		dir:   dir,
		log:   log.With().Str("component", "config").Logger(),
	}, nil
}

func (m *Manager) setDefaults() {
	v := m.viper
	v.SetDefault("split.orientation", "vertical")
	v.SetDefault("split.primary", "first")
	v.SetDefault("split.allow_resize", true)
	v.SetDefault("split.min_size", 20)
	v.SetDefault("split.default_size", "50%")
	v.SetDefault("split.size", "")

	v.SetDefault("github.client_id", DefaultClientID)
	v.SetDefault("github.gatekeeper", DefaultGatekeeper)
	v.SetDefault("github.api_base", DefaultAPIBase)
	v.SetDefault("github.share_base", DefaultShareBase)
	v.SetDefault("github.scopes", []string{"user:email", "gist"})

	v.SetDefault("editor.platform", "auto")
	v.SetDefault("editor.theme", "vs-dark")
	v.SetDefault("editor.tab_width", 2)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

// Load reads the config file (a missing file is fine) and validates it.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.setDefaults()
	if err := m.viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config file: %w", err)
		}
		m.log.Debug().Str("dir", m.dir).Msg("no config file, using defaults")
	}
	return m.reload()
}

// reload must be called with m.mu held for write.
func (m *Manager) reload() error {
	c := &Config{}
	if err := m.viper.Unmarshal(c); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	if err := fillPaths(c); err != nil {
		return err
	}
	if err := validate(c); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	m.config = c
	return nil
}

func fillPaths(c *Config) error {
	if c.Database.Path == "" {
		dir, err := GetDataDir()
		if err != nil {
			return err
		}
		c.Database.Path = filepath.Join(dir, "playpen.db")
	}
	if c.Logging.File == "" {
		dir, err := GetStateDir()
		if err != nil {
			return err
		}
		c.Logging.File = filepath.Join(dir, "playpen.log")
	}
	return nil
}

// Get returns a copy of the current configuration.
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.config == nil {
		return nil
	}
	return Clone(m.config)
}

// ConfigFile returns the file in use, or where Save would write.
func (m *Manager) ConfigFile() string {
	if f := m.viper.ConfigFileUsed(); f != "" {
		return f
	}
	return filepath.Join(m.dir, "config.toml")
}

// Set overrides one key for this process (flags use it) and revalidates.
func (m *Manager) Set(key string, value any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.viper.Set(key, value)
	return m.reload()
}

// Save writes the effective configuration to the config file.
func (m *Manager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	path := m.ConfigFile()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := m.viper.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// OnConfigChange registers a callback run after every successful reload.
func (m *Manager) OnConfigChange(callback func(*Config)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callbacks = append(m.callbacks, callback)
}

// Watch starts watching the config file and reloads on change.
func (m *Manager) Watch() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.watching {
		return
	}
	m.viper.OnConfigChange(m.handleFileEvent)
	m.viper.WatchConfig()
	m.watching = true
}

func (m *Manager) handleFileEvent(e fsnotify.Event) {
	m.log.Debug().Str("op", e.Op.String()).Str("file", e.Name).Msg("config change detected")
	m.mu.Lock()
	if err := m.reload(); err != nil {
		m.log.Warn().Err(err).Msg("failed to reload config")
		m.mu.Unlock()
		return
	}
	cfg := Clone(m.config)
	callbacks := append(([]func(*Config))(nil), m.callbacks...)
	m.mu.Unlock()

	for _, cb := range callbacks {
		cb(cfg)
	}
}
