// Package config holds the platform description: the string- and
// integer-valued lookups the assembly routines pull identity data from,
// plus store and logging settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the full smbtab configuration.
type Config struct {
	Platform Platform `yaml:"platform"`
	Store    Store    `yaml:"store"`
	Logging  Logging  `yaml:"logging"`
}

// Platform carries the vendor-programmed identity values that end up in
// the table's string packs and address fields.
type Platform struct {
	Vendor          string `yaml:"vendor"`
	PlatformName    string `yaml:"platform_name"`
	FamilyName      string `yaml:"family_name"`
	ProductURL      string `yaml:"product_url"`
	CPUName         string `yaml:"cpu_name"`
	CPUCores        int    `yaml:"cpu_cores"`
	MemoryVendor    string `yaml:"memory_vendor"`
	FirmwareVersion string `yaml:"firmware_version"`
	FirmwareBase    uint32 `yaml:"firmware_base"`
	FirmwareSize    uint32 `yaml:"firmware_size"`
	MemoryBase      uint64 `yaml:"memory_base"`
}

// Store selects and parameterizes the table store backend.
type Store struct {
	Backend string `yaml:"backend"` // memory, file or pebble
	DataDir string `yaml:"data_dir"`
}

// Logging contains logging configuration.
type Logging struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns a configuration with development-friendly values.
func DefaultConfig() *Config {
	return &Config{
		Platform: Platform{
			Vendor:          "smbtab",
			PlatformName:    "smbtab reference platform",
			FamilyName:      "smbtab",
			ProductURL:      "https://github.com/smbtab/smbtab",
			CPUName:         "Unknown ARM CPU",
			CPUCores:        4,
			MemoryVendor:    "Unknown",
			FirmwareVersion: "smbtab-dev",
			FirmwareBase:    0x0,
			FirmwareSize:    0x400000,
			MemoryBase:      0x0,
		},
		Store: Store{
			Backend: "file",
			DataDir: "./data",
		},
		Logging: Logging{
			Level: "info",
		},
	}
}

// LoadConfig loads configuration from the specified path.
func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}

// SaveConfig saves the configuration to the specified path.
func SaveConfig(config *Config, configPath string) error {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfigPath returns the default configuration path.
func DefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./smbtab.yaml"
	}
	return filepath.Join(homeDir, ".config", "smbtab", "config.yaml")
}
