// SPDX-License-Identifier: Apache-2.0

// Package scaffold turns a project configuration into the files of a new
// Flet project and writes them to disk.
package scaffold

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/Work-Fort/Zypher/pkg/project"
)

// Emitter maps a project.Config to a Tree. It does no I/O.
type Emitter struct {
	// Version is recorded in the generated manifest
	Version string

	files []FileSpec
	docs  []FileSpec
}

// NewEmitter returns an emitter for the built-in project layout
func NewEmitter(version string) *Emitter {
	return &Emitter{
		Version: version,
		files:   projectFiles(),
		docs:    docsFiles(),
	}
}

// Emit renders every file of a new project for cfg
func (e *Emitter) Emit(cfg project.Config) (*Tree, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	tree := NewTree(ProjectDirs...)
	if err := e.render(tree, e.files, cfg); err != nil {
		return nil, err
	}

	manifest, err := project.NewManifest(cfg, e.Version).Marshal()
	if err != nil {
		return nil, err
	}
	if err := tree.Add(project.ManifestFile, manifest); err != nil {
		return nil, err
	}

	log.Debugf("emit: %s template=%s env=%s files=%d", cfg.Name, cfg.Template, cfg.Environment, len(tree.Paths()))
	return tree, nil
}

// EmitDocs renders the documentation skeleton for the project called name
func (e *Emitter) EmitDocs(name string) (*Tree, error) {
	tree := NewTree()
	if err := e.render(tree, e.docs, project.Config{Name: name}); err != nil {
		return nil, err
	}
	return tree, nil
}

func (e *Emitter) render(tree *Tree, files []FileSpec, cfg project.Config) error {
	data := newView(cfg, e.Version)
	for _, f := range files {
		if !f.Enabled(cfg) {
			continue
		}
		content, err := f.Render(data)
		if err != nil {
			return fmt.Errorf("failed to emit %s: %w", f.Path, err)
		}
		if err := tree.Add(f.Path, content); err != nil {
			return err
		}
	}
	return nil
}
