// SPDX-License-Identifier: Apache-2.0
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/Work-Fort/Zypher/pkg/project"
)

// InitViper initializes Viper configuration with defaults and search paths
// Precedence order: flags > ENV > user-conf > defaults
func InitViper() {
	// Set config type
	viper.SetConfigType(ConfigType)

	// Set defaults (lowest precedence)
	for _, key := range RegisteredKeys() {
		viper.SetDefault(key, ConfigRegistry[key].Default)
	}

	// Enable environment variable support
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()
}

// LoadConfig reads the user config file
// Precedence: ENV > ~/.config/zypher/config.yaml > defaults
func LoadConfig() error {
	viper.SetConfigName(ConfigFileName)
	viper.AddConfigPath(GlobalPaths.ConfigDir)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read user config file: %w", err)
		}
		// Config file not found is OK
		return nil
	}

	return validateConfigFile(ConfigFilePath())
}

// GetUseTUI returns the use-tui configuration value
func GetUseTUI() bool {
	return viper.GetBool("use-tui")
}

// GetLogLevel returns the log-level configuration value
func GetLogLevel() string {
	return viper.GetString("log-level")
}

// GetPython returns the tools.python configuration value
func GetPython() string {
	return viper.GetString("tools.python")
}

// GetFlet returns the tools.flet configuration value
func GetFlet() string {
	return viper.GetString("tools.flet")
}

// GetSphinx returns the tools.sphinx configuration value
func GetSphinx() string {
	return viper.GetString("tools.sphinx")
}

// GetCacheDir returns the clean.cache-dir configuration value
func GetCacheDir() string {
	return viper.GetString("clean.cache-dir")
}

// ProjectDefaults returns the answers create starts from. The name is
// always left empty.
func ProjectDefaults() project.Config {
	return project.Config{
		Template:    project.Template(viper.GetString("defaults.template")),
		Environment: project.Environment(viper.GetString("defaults.environment")),
		AppBar:      viper.GetBool("defaults.appbar"),
		NavBar:      viper.GetBool("defaults.navbar"),
		Auth:        viper.GetBool("defaults.auth"),
	}
}

// validateConfigFile checks every key and value in the config file at
// configPath. Unknown keys are logged and skipped.
func validateConfigFile(configPath string) error {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil
	}

	// Read just this file, without defaults or ENV
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType(ConfigType)

	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file for validation: %w", err)
	}

	for _, key := range flattenKeys(v.AllSettings(), "") {
		if err := ValidateKey(key); err != nil {
			log.Debugf("Ignoring unknown key '%s' in %s", key, configPath)
			continue
		}
		if err := ValidateValue(key, v.Get(key)); err != nil {
			return fmt.Errorf("invalid value in config file %s: %w", configPath, err)
		}
	}

	return nil
}

// BindFlags binds all relevant cobra flags to Viper
func BindFlags(flags *pflag.FlagSet) error {
	flagsToBind := []string{
		"use-tui",
		"log-level",
	}

	for _, flagName := range flagsToBind {
		if err := viper.BindPFlag(flagName, flags.Lookup(flagName)); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", flagName, err)
		}
	}

	return nil
}
