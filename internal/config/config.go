package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const appName = "cardsmith"

// Defaults written to a fresh config file
const (
	DefaultImageBaseURL = "https://jackyeoh-ls.github.io/tcg-arena-ccg/img"
	DefaultSearchDepth  = 3
	DefaultOutputDir    = "export"
	DefaultLogLevel     = "info"
)

// Config represents the application configuration
type Config struct {
	ImageBaseURL    string `toml:"image_base_url"`
	SearchDepth     int    `toml:"search_depth"`
	OutputDir       string `toml:"output_dir"`
	LogLevel        string `toml:"log_level"`
	PoolDescription string `toml:"pool_description"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		ImageBaseURL: DefaultImageBaseURL,
		SearchDepth:  DefaultSearchDepth,
		OutputDir:    DefaultOutputDir,
		LogLevel:     DefaultLogLevel,
	}
}

// GetXDGConfigHome returns XDG_CONFIG_HOME or default path
func GetXDGConfigHome() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return xdgConfig
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config")
}

// GetXDGCacheHome returns XDG_CACHE_HOME or default path
func GetXDGCacheHome() string {
	if xdgCache := os.Getenv("XDG_CACHE_HOME"); xdgCache != "" {
		return xdgCache
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".cache")
}

// GetCacheDir returns the application's cache directory
func GetCacheDir() string {
	return filepath.Join(GetXDGCacheHome(), appName)
}

// GetConfigFilePath returns the path to the config file
func GetConfigFilePath() string {
	return filepath.Join(GetXDGConfigHome(), appName, "config.toml")
}

// LoadConfig loads the config file, creating it with defaults if missing.
// Unset keys fall back to the defaults.
func LoadConfig() (*Config, error) {
	configPath := GetConfigFilePath()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return createDefaultConfig()
	}

	config := Default()
	if _, err := toml.DecodeFile(configPath, config); err != nil {
		return nil, fmt.Errorf("error decoding config file: %v", err)
	}
	if config.SearchDepth <= 0 {
		config.SearchDepth = DefaultSearchDepth
	}

	return config, nil
}

// createDefaultConfig creates a default config file
func createDefaultConfig() (*Config, error) {
	config := Default()
	if err := SaveConfig(config); err != nil {
		return nil, err
	}
	return config, nil
}

// SaveConfig writes the config file
func SaveConfig(config *Config) error {
	configPath := GetConfigFilePath()

	// Ensure the config directory exists
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("error creating config directory: %v", err)
	}

	file, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("error creating config file: %v", err)
	}
	defer file.Close()

	encoder := toml.NewEncoder(file)
	if err := encoder.Encode(config); err != nil {
		return fmt.Errorf("error encoding config: %v", err)
	}

	return nil
}

// SetImageBaseURL sets the image base URL in the config
func SetImageBaseURL(url string) error {
	config, err := LoadConfig()
	if err != nil {
		return err
	}

	config.ImageBaseURL = url

	return SaveConfig(config)
}
