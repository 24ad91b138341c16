package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfigSaveLoad(t *testing.T) {
	t.Log("Testing Config Saving and Loading")

	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.yaml")

	// Create test config
	originalConfig := Config{
		AllowedExtensions: []string{".log", ".txt"},
		CaseInsensitive:   true,
		Version:           "1.0",
		InitTime:          time.Now().Unix(),
	}

	// Test Save
	if err := originalConfig.SaveTo(configPath); err != nil {
		t.Fatalf("Failed to save config: %s", err)
	}

	// Test Load
	loadedConfig, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %s", err)
	}

	// Verify content
	if len(loadedConfig.AllowedExtensions) != 2 {
		t.Errorf("AllowedExtensions mismatch: expected 2 entries, got %d", len(loadedConfig.AllowedExtensions))
	}

	if !loadedConfig.CaseInsensitive {
		t.Error("CaseInsensitive should survive a save/load round trip")
	}

	if loadedConfig.Version != originalConfig.Version {
		t.Errorf("Version mismatch: expected %s, got %s", originalConfig.Version, loadedConfig.Version)
	}

	if loadedConfig.InitTime != originalConfig.InitTime {
		t.Errorf("InitTime mismatch: expected %d, got %d", originalConfig.InitTime, loadedConfig.InitTime)
	}
}

func TestConfigInitTime(t *testing.T) {
	t.Log("Testing Config InitTime on Save")

	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.yaml")

	config := Config{
		Version: "1.0",
		// InitTime not set (0)
	}

	before := time.Now().Unix()
	if err := config.SaveTo(configPath); err != nil {
		t.Fatalf("Failed to save config: %s", err)
	}
	after := time.Now().Unix()

	// InitTime should be set during save
	if config.InitTime < before || config.InitTime > after {
		t.Errorf("InitTime %d should be between %d and %d", config.InitTime, before, after)
	}
}

func TestConfigFilePermissions(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.yaml")

	config := DefaultConfig()
	if err := config.SaveTo(configPath); err != nil {
		t.Fatalf("Failed to save config: %s", err)
	}

	// Check file permissions
	fileInfo, err := os.Stat(configPath)
	if err != nil {
		t.Fatalf("Failed to stat config file: %s", err)
	}

	mode := fileInfo.Mode()
	if mode&0077 != 0 {
		t.Errorf("Config file should not be readable by group/others, got mode %o", mode)
	}
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.Version == "" {
		t.Error("Default config should have a version")
	}

	if len(config.AllowedExtensions) != 0 {
		t.Error("Default config should not restrict extensions")
	}

	if config.InitTime != 0 {
		t.Error("Default config InitTime should be 0 (will be set on save)")
	}
}

func TestConfigFilter(t *testing.T) {
	t.Run("no extensions disables the filter", func(t *testing.T) {
		cfg := DefaultConfig()
		if cfg.Filter() != nil {
			t.Error("Expected nil filter when no extensions are configured")
		}
	})

	t.Run("configured extensions become rules", func(t *testing.T) {
		cfg := Config{
			AllowedExtensions: []string{".log", ".txt"},
			CaseInsensitive:   true,
		}

		filter := cfg.Filter()
		if len(filter) != 2 {
			t.Fatalf("Expected 2 rules, got %d", len(filter))
		}

		if !filter.Match("/var/log/app.LOG") {
			t.Error("Case-insensitive filter should match .LOG")
		}
		if filter.Match("/etc/passwd") {
			t.Error("Filter should not match an extensionless path")
		}
	})
}

// Error handling tests
func TestConfigErrorHandling(t *testing.T) {
	t.Run("load non-existent file", func(t *testing.T) {
		_, err := LoadFrom("/non/existent/file.yaml")
		if err == nil {
			t.Error("Should error when loading non-existent file")
		}
	})

	t.Run("load invalid YAML", func(t *testing.T) {
		tempDir := t.TempDir()
		invalidFile := filepath.Join(tempDir, "invalid.yaml")
		os.WriteFile(invalidFile, []byte("invalid: yaml: content: ["), 0644)

		_, err := LoadFrom(invalidFile)
		if err == nil {
			t.Error("Should error when loading invalid YAML")
		}
	})

	t.Run("save to read-only directory", func(t *testing.T) {
		if os.Getuid() == 0 {
			t.Skip("Skipping test as root user")
		}

		config := DefaultConfig()
		err := config.SaveTo("/root/config.yaml")
		if err == nil {
			t.Error("Should error when saving to read-only directory")
		}
	})
}
