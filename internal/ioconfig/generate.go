package ioconfig

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/mtgtools/deckconv/pkg/config"
)

// ConfigDir returns the configuration directory, ~/.config/deckconv/
// on every platform for consistency.
func ConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "deckconv"), nil
}

// DefaultConfigPath returns the full path of the default config file.
func DefaultConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// GenerateDefaultConfig writes the built-in defaults as a YAML config
// file at the default location and returns its path. An existing file
// is never overwritten.
func GenerateDefaultConfig() (string, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return "", err
	}
	if _, err = os.Stat(path); err == nil {
		return path, nil
	}

	if err = os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create config directory: %w", err)
	}

	data, err := yaml.Marshal(config.New())
	if err != nil {
		return "", fmt.Errorf("marshal default config: %w", err)
	}
	header := []byte("# deckconv configuration.\n" +
		"# Every value can be overridden with a DECKCONV_* environment\n" +
		"# variable, e.g. DECKCONV_DATABASE_PATH.\n\n")

	if err = os.WriteFile(path, append(header, data...), 0o644); err != nil {
		return "", fmt.Errorf("write default config: %w", err)
	}
	return path, nil
}
