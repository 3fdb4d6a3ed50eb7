package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const appName = "playpen"

func xdgDir(env string, fallback ...string) (string, error) {
	if base := os.Getenv(env); base != "" {
		return filepath.Join(base, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(append(append([]string{home}, fallback...), appName)...), nil
}

// GetConfigDir returns $XDG_CONFIG_HOME/playpen (or ~/.config/playpen).
func GetConfigDir() (string, error) { return xdgDir("XDG_CONFIG_HOME", ".config") }

// GetDataDir returns $XDG_DATA_HOME/playpen (or ~/.local/share/playpen).
func GetDataDir() (string, error) { return xdgDir("XDG_DATA_HOME", ".local", "share") }

// GetStateDir returns $XDG_STATE_HOME/playpen (or ~/.local/state/playpen).
func GetStateDir() (string, error) { return xdgDir("XDG_STATE_HOME", ".local", "state") }
