// SPDX-License-Identifier: Apache-2.0
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	zerrors "github.com/Work-Fort/Zypher/pkg/errors"
)

// Setting is one effective configuration value and where it came from
type Setting struct {
	Key    string
	Value  any
	Source string
}

// Source labels reported by LookupValue and ListValues
const (
	SourceDefault = "default"
	sourceEnv     = "env "
	sourceFile    = "file "
)

var (
	trueWords  = []string{"true", "yes", "on", "enable", "enabled"}
	falseWords = []string{"false", "no", "off", "disable", "disabled"}

	envKeyReplacer = strings.NewReplacer("-", "_", ".", "_")
)

// userConfig loads the user config file into a private viper instance.
// A missing file yields an empty instance and exists=false.
func userConfig() (v *viper.Viper, exists bool, err error) {
	path := ConfigFilePath()
	v = viper.New()
	v.SetConfigType(ConfigType)
	v.SetConfigFile(path)

	if _, statErr := os.Stat(path); errors.Is(statErr, fs.ErrNotExist) {
		return v, false, nil
	}
	if err := v.ReadInConfig(); err != nil {
		return nil, true, zerrors.WithPath(zerrors.EInput, path, "cannot read config file", err)
	}
	return v, true, nil
}

func writeUserConfig(v *viper.Viper) error {
	path := ConfigFilePath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return zerrors.WithPath(zerrors.EWriteFailed, filepath.Dir(path), "cannot create config directory", err)
	}
	if err := v.WriteConfigAs(path); err != nil {
		return zerrors.WithPath(zerrors.EWriteFailed, path, "cannot write config file", err)
	}
	return nil
}

// SetValue validates raw against the key's definition and stores it in
// the user config file, keeping every other key.
func SetValue(key, raw string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	value := parseValue(raw)
	if err := ValidateValue(key, value); err != nil {
		return err
	}

	v, _, err := userConfig()
	if err != nil {
		return err
	}
	v.Set(key, value)
	return writeUserConfig(v)
}

// LookupValue returns the effective value of key
func LookupValue(key string) (*Setting, error) {
	if !viper.IsSet(key) {
		return nil, zerrors.Newf(zerrors.EInput, "configuration key not found: %s", key)
	}
	return &Setting{Key: key, Value: viper.Get(key), Source: sourceOf(key)}, nil
}

// UnsetValue removes key from the user config file
func UnsetValue(key string) error {
	v, exists, err := userConfig()
	if err != nil {
		return err
	}
	if !exists {
		return zerrors.WithPath(zerrors.EInput, ConfigFilePath(), "config file does not exist", nil)
	}
	if !v.InConfig(key) {
		return zerrors.Newf(zerrors.EInput, "%s is not set in %s", key, ConfigFilePath())
	}

	settings := v.AllSettings()
	if err := deleteNestedKey(settings, key); err != nil {
		return err
	}

	// viper cannot drop a key, so the remaining tree goes into a new instance
	out := viper.New()
	out.SetConfigType(ConfigType)
	if err := out.MergeConfigMap(settings); err != nil {
		return zerrors.Wrap(zerrors.EInternal, "cannot rebuild config", err)
	}
	return writeUserConfig(out)
}

// ListValues returns every effective setting, sorted by key
func ListValues() []Setting {
	keys := flattenKeys(viper.AllSettings(), "")
	slices.Sort(keys)

	out := make([]Setting, 0, len(keys))
	for _, k := range keys {
		out = append(out, Setting{Key: k, Value: viper.Get(k), Source: sourceOf(k)})
	}
	return out
}

// parseValue turns command line text into a bool, int, float or string
func parseValue(raw string) any {
	lower := strings.ToLower(raw)
	switch {
	case slices.Contains(trueWords, lower):
		return true
	case slices.Contains(falseWords, lower):
		return false
	}
	if i, err := strconv.Atoi(raw); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	return raw
}

// keyToEnvVar maps "clean.cache-dir" to "ZYPHER_CLEAN_CACHE_DIR"
func keyToEnvVar(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(envKeyReplacer.Replace(key))
}

func sourceOf(key string) string {
	env := keyToEnvVar(key)
	if os.Getenv(env) != "" {
		return sourceEnv + env
	}
	if used := viper.ConfigFileUsed(); used != "" && viper.InConfig(key) {
		return sourceFile + used
	}
	return SourceDefault
}

func splitKey(key string) []string {
	return strings.FieldsFunc(key, func(r rune) bool { return r == '.' })
}

// deleteNestedKey removes a dotted key from a nested settings map
func deleteNestedKey(m map[string]any, key string) error {
	parts := splitKey(key)
	if len(parts) == 0 {
		return zerrors.Newf(zerrors.EInput, "key not found: %s", key)
	}

	node := m
	for _, p := range parts[:len(parts)-1] {
		child, ok := node[p].(map[string]any)
		if !ok {
			return zerrors.Newf(zerrors.EInput, "key not found: %s", key)
		}
		node = child
	}

	last := parts[len(parts)-1]
	if _, ok := node[last]; !ok {
		return zerrors.Newf(zerrors.EInput, "key not found: %s", key)
	}
	delete(node, last)
	return nil
}

// flattenKeys lists the leaf keys of a nested settings map in dot form
func flattenKeys(m map[string]any, prefix string) []string {
	var keys []string
	for k, v := range m {
		if prefix != "" {
			k = prefix + "." + k
		}
		if child, ok := v.(map[string]any); ok {
			keys = append(keys, flattenKeys(child, k)...)
			continue
		}
		keys = append(keys, k)
	}
	return keys
}
