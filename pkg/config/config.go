// SPDX-License-Identifier: Apache-2.0
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	AppName = "zypher"

	// Configuration
	EnvPrefix        = "ZYPHER" // Environment variable prefix for Viper
	ConfigFileName   = "config" // Config file name for XDG config dir (without extension)
	ConfigType       = "yaml"   // Config file type
	DefaultConfigExt = ".yaml"  // Default config file extension
	LogFileName      = "debug.log"
)

// Paths holds all XDG-compliant directory paths
type Paths struct {
	DataDir   string
	ConfigDir string
	LogFile   string
}

var (
	// GlobalPaths is the global paths instance
	GlobalPaths *Paths
)

func init() {
	GlobalPaths = GetPaths()
}

// GetPaths returns XDG-compliant directory paths. When the home directory
// cannot be determined the paths fall back to the system temp directory.
func GetPaths() *Paths {
	dataHome := xdgDir("XDG_DATA_HOME", ".local", "share")
	configHome := xdgDir("XDG_CONFIG_HOME", ".config")

	dataDir := filepath.Join(dataHome, AppName)
	return &Paths{
		DataDir:   dataDir,
		ConfigDir: filepath.Join(configHome, AppName),
		LogFile:   filepath.Join(dataDir, LogFileName),
	}
}

func xdgDir(env string, fallback ...string) string {
	if dir := os.Getenv(env); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.TempDir()
	}
	return filepath.Join(append([]string{home}, fallback...)...)
}

// ConfigFilePath returns the user config file location
func ConfigFilePath() string {
	return filepath.Join(GlobalPaths.ConfigDir, ConfigFileName+DefaultConfigExt)
}

// InitDirs creates all necessary directories
func InitDirs() error {
	dirs := []string{
		GlobalPaths.ConfigDir,
		GlobalPaths.DataDir,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}
