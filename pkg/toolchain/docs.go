// SPDX-License-Identifier: Apache-2.0
package toolchain

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"

	zerrors "github.com/Work-Fort/Zypher/pkg/errors"
	"github.com/Work-Fort/Zypher/pkg/runner"
	"github.com/Work-Fort/Zypher/pkg/scaffold"
)

const (
	// DocsDir holds the Sphinx sources, relative to the project root
	DocsDir = "docs"

	// DefaultBuilder is the Sphinx builder used when none is given
	DefaultBuilder = "html"
)

// HasDocs reports whether dir has a docs directory
func (t *Toolchain) HasDocs(dir string) bool {
	ok, _ := afero.DirExists(t.Fs, filepath.Join(dir, DocsDir))
	return ok
}

// InitDocs writes the Sphinx skeleton into dir/docs. Existing files are
// never overwritten.
func (t *Toolchain) InitDocs(dir, version string) ([]string, error) {
	if err := t.projectDir(dir); err != nil {
		return nil, err
	}
	m, err := t.manifest(dir)
	if err != nil {
		return nil, err
	}

	tree, err := scaffold.NewEmitter(version).EmitDocs(m.ProjectName(dir))
	if err != nil {
		return nil, err
	}
	return scaffold.NewWriter(t.Fs).AddFiles(dir, tree)
}

// DocsCommand returns "sphinx-build -b <builder> <dir>/docs <dir>/docs/_build"
func (t *Toolchain) DocsCommand(sphinx, dir, builder string) runner.Command {
	src := filepath.Join(dir, DocsDir)
	return runner.Command{
		Name:   sphinx,
		Args:   []string{"-b", builder, src, filepath.Join(src, "_build")},
		Stdout: t.Stdout,
		Stderr: t.Stderr,
	}
}

// SphinxPath resolves sphinx-build on PATH, failing with EDocsToolMissing
func (t *Toolchain) SphinxPath() (string, error) {
	sphinx, err := t.Runner.LookPath(t.Sphinx)
	if err != nil {
		return "", zerrors.Wrap(zerrors.EDocsToolMissing,
			fmt.Sprintf("%s not found on PATH (install it with: pip install sphinx)", t.Sphinx), err)
	}
	return sphinx, nil
}

// Docs builds the project documentation with Sphinx. It fails with
// EDocsToolMissing when sphinx-build is not on PATH.
func (t *Toolchain) Docs(ctx context.Context, dir, builder string) error {
	sphinx, err := t.SphinxPath()
	if err != nil {
		return err
	}
	if err := t.projectDir(dir); err != nil {
		return err
	}
	if !t.HasDocs(dir) {
		return zerrors.WithPath(zerrors.EInput, filepath.Join(dir, DocsDir),
			fmt.Sprintf("%s has no %s directory (run zypher docs --init)", dir, DocsDir), nil)
	}
	if builder == "" {
		builder = DefaultBuilder
	}

	log.Info("docs: building", "dir", dir, "builder", builder, "sphinx", sphinx)
	return t.run(ctx, t.DocsCommand(sphinx, dir, builder))
}
