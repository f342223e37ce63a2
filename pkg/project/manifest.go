// SPDX-License-Identifier: Apache-2.0
package project

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

const (
	// ManifestFile is written at the root of every generated project
	ManifestFile = "zypher.yaml"

	// DefaultEntry is the entry point used when no manifest names one
	DefaultEntry = "main.py"
)

// Manifest records how a project was generated
type Manifest struct {
	Name        string      `yaml:"name"`
	Template    Template    `yaml:"template"`
	Environment Environment `yaml:"environment"`
	Entry       string      `yaml:"entry"`
	Components  Components  `yaml:"components"`
	Generator   Generator   `yaml:"generator"`
}

// Components mirrors the optional component answers
type Components struct {
	AppBar bool `yaml:"appbar"`
	NavBar bool `yaml:"navbar"`
	Auth   bool `yaml:"auth"`
}

// Generator identifies the tool that produced the project
type Generator struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

// NewManifest builds the manifest for cfg
func NewManifest(cfg Config, version string) Manifest {
	if version == "" {
		version = "dev"
	}
	return Manifest{
		Name:        cfg.Name,
		Template:    cfg.Template,
		Environment: cfg.Environment,
		Entry:       DefaultEntry,
		Components: Components{
			AppBar: cfg.AppBar,
			NavBar: cfg.NavBar,
			Auth:   cfg.Auth,
		},
		Generator: Generator{Name: "zypher", Version: version},
	}
}

// Marshal encodes the manifest as YAML
func (m Manifest) Marshal() ([]byte, error) {
	out, err := yaml.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("failed to encode manifest: %w", err)
	}
	return out, nil
}

// LoadManifest reads dir/zypher.yaml. It returns (nil, nil) when the project
// has no manifest, for projects created by hand or by older tools.
func LoadManifest(fsys afero.Fs, dir string) (*Manifest, error) {
	path := filepath.Join(dir, ManifestFile)
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if m.Entry == "" {
		m.Entry = DefaultEntry
	}
	return &m, nil
}

// EntryPoint returns the entry file name, relative to the project root
func (m *Manifest) EntryPoint() string {
	if m == nil || m.Entry == "" {
		return DefaultEntry
	}
	return m.Entry
}

// ProjectName returns the recorded name, falling back to the directory name
func (m *Manifest) ProjectName(dir string) string {
	if m != nil && m.Name != "" {
		return m.Name
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return filepath.Base(dir)
	}
	return filepath.Base(abs)
}
