// SPDX-License-Identifier: Apache-2.0
package scaffold

import (
	"path"
	"strings"

	zerrors "github.com/Work-Fort/Zypher/pkg/errors"
)

// ProjectDirs are created in every generated project, even when empty
var ProjectDirs = []string{
	"src",
	"src/components",
	"src/pages",
	"src/state",
	"src/utils",
	"tests",
}

// Artifact is one generated file. Path is relative and slash separated.
type Artifact struct {
	Path    string
	Content []byte
}

// Tree is an ordered set of artifacts plus the directories they live in.
// Paths are unique; Add rejects duplicates instead of overwriting.
type Tree struct {
	dirs      []string
	artifacts []Artifact
	index     map[string]int
}

// NewTree creates an empty tree that will also create dirs
func NewTree(dirs ...string) *Tree {
	t := &Tree{index: make(map[string]int)}
	for _, d := range dirs {
		t.addDir(d)
	}
	return t
}

// Add appends an artifact. It fails with ECollision when p is already present
// and with EInput when p is not a clean relative path.
func (t *Tree) Add(p string, content []byte) error {
	clean, err := cleanRelative(p)
	if err != nil {
		return err
	}
	if _, exists := t.index[clean]; exists {
		return zerrors.WithPath(zerrors.ECollision, clean, "duplicate artifact "+clean, nil)
	}
	t.index[clean] = len(t.artifacts)
	t.artifacts = append(t.artifacts, Artifact{Path: clean, Content: content})
	return nil
}

// Artifacts returns the artifacts in insertion order
func (t *Tree) Artifacts() []Artifact {
	out := make([]Artifact, len(t.artifacts))
	copy(out, t.artifacts)
	return out
}

// Paths returns artifact paths in insertion order
func (t *Tree) Paths() []string {
	out := make([]string, len(t.artifacts))
	for i, a := range t.artifacts {
		out[i] = a.Path
	}
	return out
}

// Lookup finds an artifact by path
func (t *Tree) Lookup(p string) (Artifact, bool) {
	i, ok := t.index[p]
	if !ok {
		return Artifact{}, false
	}
	return t.artifacts[i], true
}

// Has reports whether p is part of the tree
func (t *Tree) Has(p string) bool {
	_, ok := t.index[p]
	return ok
}

// Dirs returns every directory the tree needs, parents before children:
// the declared directories first, then any artifact parent not yet listed.
func (t *Tree) Dirs() []string {
	seen := make(map[string]bool)
	var out []string
	var visit func(d string)
	visit = func(d string) {
		if d == "." || d == "" || seen[d] {
			return
		}
		visit(path.Dir(d))
		seen[d] = true
		out = append(out, d)
	}
	for _, d := range t.dirs {
		visit(d)
	}
	for _, a := range t.artifacts {
		visit(path.Dir(a.Path))
	}
	return out
}

func (t *Tree) addDir(d string) {
	if clean, err := cleanRelative(d); err == nil {
		t.dirs = append(t.dirs, clean)
	}
}

func cleanRelative(p string) (string, error) {
	clean := path.Clean(strings.ReplaceAll(p, `\`, "/"))
	if p == "" || clean == "." || path.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, "../") {
		return "", zerrors.Newf(zerrors.EInput, "artifact path %q must be relative to the project root", p)
	}
	return clean, nil
}
