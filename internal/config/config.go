package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"pathguard/internal/logging"
	"pathguard/pkg/securefile"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

const APP_NAME = "pathguard" // application name used for config directory

// Config holds user configuration for pathguard.
type Config struct {
	// AllowedExtensions is the extension allow-list applied by `pathguard cat`.
	// An empty list disables the check.
	AllowedExtensions []string `yaml:"allowed_extensions"`
	// CaseInsensitive applies to every entry in AllowedExtensions.
	CaseInsensitive bool   `yaml:"case_insensitive"`
	Version         string `yaml:"version"`   // Track config version
	InitTime        int64  `yaml:"init_time"` // Unix timestamp of first save
}

// ConfigPath returns the standard config file path for the current platform
func ConfigPath() (string, error) {
	configDir := filepath.Join(xdg.ConfigHome, APP_NAME)
	configPath := filepath.Join(configDir, "config.yaml")

	logging.Debug("Determined config path", "path", configPath)
	return configPath, nil
}

// Load loads the config from the standard location. A missing config file is
// not an error; defaults apply.
func Load() (*Config, error) {
	configPath, exists := FindConfigFile()
	logging.Debug("Loading config from", "path", configPath)
	if !exists {
		cfg := DefaultConfig()
		return &cfg, nil
	}

	return LoadFrom(configPath)
}

// LoadFrom loads config from a specific path
func LoadFrom(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	var cfg Config
	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// FindConfigFile returns the path to an existing config file, and whether it exists.
func FindConfigFile() (string, bool) {
	primary, err := ConfigPath()
	if err != nil {
		logging.Error("Failed to get config path", "error", err)
		return "", false
	}

	if _, err := os.Stat(primary); err == nil {
		logging.Debug("Config found at primary path", "path", primary)
		return primary, true
	}

	// Return primary path for new config
	return primary, false
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		AllowedExtensions: nil, // no extension restriction by default
		CaseInsensitive:   false,
		Version:           "1.0",
		InitTime:          0, // Will be set during first save
	}
}

// Filter builds the securefile extension allow-list from the configured
// extensions. Returns nil (check disabled) when no extensions are configured.
func (c *Config) Filter() securefile.ExtensionFilter {
	if len(c.AllowedExtensions) == 0 {
		return nil
	}
	filter := make(securefile.ExtensionFilter, 0, len(c.AllowedExtensions))
	for _, ext := range c.AllowedExtensions {
		filter = append(filter, securefile.ExtensionRule{
			Ext:             ext,
			CaseInsensitive: c.CaseInsensitive,
		})
	}
	return filter
}

// Save writes the config to the standard location
func (c *Config) Save() error {
	configPath, _ := FindConfigFile()
	return c.SaveTo(configPath)
}

// SaveTo writes the config to a specific path
func (c *Config) SaveTo(path string) error {
	// Set init time if this is the first save
	if c.InitTime == 0 {
		c.InitTime = time.Now().Unix()
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Create file with restrictive permissions (600) for security
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	enc := yaml.NewEncoder(f)
	defer enc.Close()

	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
