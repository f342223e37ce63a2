// SPDX-License-Identifier: Apache-2.0
package config

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/Work-Fort/Zypher/pkg/project"
)

// ConfigKeyDefinition defines metadata for a configuration key
type ConfigKeyDefinition struct {
	Key         string      // Configuration key (dot notation)
	Type        string      // "string", "bool", "enum", "int"
	Default     interface{} // Default value
	Description string      // Help text

	EnumValues []string // Valid values for enum type (if Type="enum")
	Pattern    string   // Regex pattern for validation (if Type="string")
}

// toolPattern accepts a command name or path without whitespace
const toolPattern = `^\S+$`

// ConfigRegistry holds all known configuration keys
var ConfigRegistry = map[string]ConfigKeyDefinition{
	"use-tui": {
		Key:         "use-tui",
		Type:        "bool",
		Default:     true,
		Description: "Use TUI for interactive prompts",
	},

	"log-level": {
		Key:         "log-level",
		Type:        "enum",
		Default:     "debug",
		Description: "Log verbosity level",
		EnumValues:  []string{"disabled", "debug", "info", "warn", "error"},
	},

	"tools.python": {
		Key:         "tools.python",
		Type:        "string",
		Default:     "python3",
		Description: "Python interpreter used by serve, build and doctor",
		Pattern:     toolPattern,
	},

	"tools.flet": {
		Key:         "tools.flet",
		Type:        "string",
		Default:     "flet",
		Description: "Flet CLI used by serve --auto-reload",
		Pattern:     toolPattern,
	},

	"tools.sphinx": {
		Key:         "tools.sphinx",
		Type:        "string",
		Default:     "sphinx-build",
		Description: "Sphinx builder used by docs",
		Pattern:     toolPattern,
	},

	"clean.cache-dir": {
		Key:         "clean.cache-dir",
		Type:        "string",
		Default:     "__pycache__",
		Description: "Name of the bytecode cache directories removed by clean",
		Pattern:     `^[^/\\]+$`,
	},

	"defaults.template": {
		Key:         "defaults.template",
		Type:        "enum",
		Default:     string(project.TemplateBasic),
		Description: "Template preselected by create",
		EnumValues:  choices(project.Templates),
	},

	"defaults.environment": {
		Key:         "defaults.environment",
		Type:        "enum",
		Default:     string(project.EnvironmentDevelopment),
		Description: "Environment preselected by create",
		EnumValues:  choices(project.Environments),
	},

	"defaults.appbar": {
		Key:         "defaults.appbar",
		Type:        "bool",
		Default:     true,
		Description: "Include an AppBar unless told otherwise",
	},

	"defaults.navbar": {
		Key:         "defaults.navbar",
		Type:        "bool",
		Default:     true,
		Description: "Include a NavigationBar unless told otherwise",
	},

	"defaults.auth": {
		Key:         "defaults.auth",
		Type:        "bool",
		Default:     false,
		Description: "Include Supabase authentication unless told otherwise",
	},
}

func choices[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

// GetKeyDefinition returns the definition for a key, or nil if not found
func GetKeyDefinition(key string) *ConfigKeyDefinition {
	if def, ok := ConfigRegistry[key]; ok {
		return &def
	}
	return nil
}

// RegisteredKeys returns every registry key in sorted order
func RegisteredKeys() []string {
	keys := make([]string, 0, len(ConfigRegistry))
	for k := range ConfigRegistry {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ValidateKey checks that key is known
func ValidateKey(key string) error {
	if GetKeyDefinition(key) == nil {
		return fmt.Errorf("unknown configuration key: %s", key)
	}
	return nil
}

// ValidateValue checks if a value is valid for the given key
func ValidateValue(key string, value interface{}) error {
	def := GetKeyDefinition(key)
	if def == nil {
		return fmt.Errorf("unknown configuration key: %s", key)
	}

	// Type validation
	switch def.Type {
	case "bool":
		if _, ok := value.(bool); !ok {
			return fmt.Errorf("key '%s' must be a boolean", key)
		}

	case "int":
		if _, ok := value.(int); !ok {
			return fmt.Errorf("key '%s' must be an integer", key)
		}

	case "string":
		str, ok := value.(string)
		if !ok {
			return fmt.Errorf("key '%s' must be a string", key)
		}

		if def.Pattern != "" {
			matched, err := regexp.MatchString(def.Pattern, str)
			if err != nil {
				return fmt.Errorf("pattern validation error: %w", err)
			}
			if !matched {
				return fmt.Errorf("key '%s' value '%s' does not match required format", key, str)
			}
		}

	case "enum":
		str, ok := value.(string)
		if !ok {
			return fmt.Errorf("key '%s' must be a string", key)
		}

		valid := false
		for _, enumVal := range def.EnumValues {
			if str == enumVal {
				valid = true
				break
			}
		}
		if !valid {
			return fmt.Errorf("key '%s' must be one of %v (got '%s')", key, def.EnumValues, str)
		}
	}

	return nil
}
