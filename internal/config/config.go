// ABOUTME: ITB configuration management with file, .env, and environment sources.
// ABOUTME: Handles data directory, display language, listen address, and storage opening.

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/harperreed/itb/internal/i18n"
	"github.com/harperreed/itb/internal/storage"
	"github.com/joho/godotenv"
)

// Environment variables that override the config file.
const (
	EnvDataDir  = "ITB_DATA_DIR"
	EnvLanguage = "ITB_LANGUAGE"
	EnvListen   = "ITB_LISTEN"
)

// DefaultListen is the address the web form binds to by default.
const DefaultListen = "127.0.0.1:8080"

// Config stores itb configuration.
type Config struct {
	// DataDir is the root directory for data storage; itb.db lives here.
	// Supports ~ expansion for home directory. Defaults to ~/.local/share/itb.
	DataDir string `json:"data_dir,omitempty"`

	// Language is the default display language: "pt" (default) or "en".
	Language string `json:"language,omitempty"`

	// Listen is the host:port for `itb serve`.
	Listen string `json:"listen,omitempty"`
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetLanguage returns the configured language, defaulting to Portuguese.
func (c *Config) GetLanguage() i18n.Lang {
	if lang, ok := i18n.Parse(c.Language); ok {
		return lang
	}
	return i18n.Default
}

// GetListen returns the configured listen address.
func (c *Config) GetListen() string {
	if c.Listen == "" {
		return DefaultListen
	}
	return c.Listen
}

// DBPath returns the database file path inside the data directory.
func (c *Config) DBPath() string {
	if c.DataDir == "" {
		return storage.DefaultDBPath()
	}
	return filepath.Join(c.GetDataDir(), storage.DBFile)
}

// OpenStorage opens the SQLite repository in the configured data directory.
func (c *Config) OpenStorage() (*storage.DB, error) {
	return storage.Open(c.DBPath())
}

// Set assigns a config key by its JSON name.
func (c *Config) Set(key, value string) error {
	switch key {
	case "data_dir":
		c.DataDir = value
	case "language":
		if _, ok := i18n.Parse(value); !ok && value != "" {
			return fmt.Errorf("unsupported language: %q (use pt or en)", value)
		}
		c.Language = value
	case "listen":
		c.Listen = value
	default:
		return fmt.Errorf("unknown config key: %q (use data_dir, language, or listen)", key)
	}
	return nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "itb", "config.json")
}

// LoadDotEnv loads a .env file from the working directory if present.
// Variables already set in the environment win.
func LoadDotEnv() error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

// Load reads config from disk and applies environment overrides.
func Load() (*Config, error) {
	cfg, err := LoadFile(GetConfigPath())
	if err != nil {
		return nil, err
	}
	cfg.applyEnv()
	return cfg, nil
}

// LoadFile reads config from path. A missing file yields an empty Config.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvDataDir); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv(EnvLanguage); v != "" {
		c.Language = v
	}
	if v := os.Getenv(EnvListen); v != "" {
		c.Listen = v
	}
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
