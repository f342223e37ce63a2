// SPDX-License-Identifier: Apache-2.0

// Package toolchain implements the commands that operate on an existing
// project by delegating to Python, Flet and Sphinx.
package toolchain

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/afero"

	zerrors "github.com/Work-Fort/Zypher/pkg/errors"
	"github.com/Work-Fort/Zypher/pkg/project"
	"github.com/Work-Fort/Zypher/pkg/runner"
)

// Default tool names, looked up on PATH
const (
	DefaultPython   = "python3"
	DefaultFlet     = "flet"
	DefaultSphinx   = "sphinx-build"
	DefaultCacheDir = "__pycache__"
)

// Toolchain holds the tools and filesystem the project commands run against
type Toolchain struct {
	Runner runner.Runner
	Fs     afero.Fs

	Python   string
	Flet     string
	Sphinx   string
	CacheDir string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// New returns a Toolchain on the OS filesystem with the default tool names
// and the process's standard streams.
func New(r runner.Runner) *Toolchain {
	return &Toolchain{
		Runner:   r,
		Fs:       afero.NewOsFs(),
		Python:   DefaultPython,
		Flet:     DefaultFlet,
		Sphinx:   DefaultSphinx,
		CacheDir: DefaultCacheDir,
		Stdin:    os.Stdin,
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
	}
}

// run executes c and maps every non-success outcome to a ZypherError
func (t *Toolchain) run(ctx context.Context, c runner.Command) error {
	status, err := t.Runner.Run(ctx, c)
	if ctx.Err() != nil {
		return zerrors.Wrap(zerrors.ECancelled, fmt.Sprintf("%s interrupted", c.Name), ctx.Err())
	}
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
			return zerrors.Wrap(zerrors.EToolMissing, fmt.Sprintf("%s not found on PATH", c.Name), err)
		}
		return zerrors.Wrap(zerrors.EExternalProcess, fmt.Sprintf("failed to start %s", c.Name), err)
	}
	if !status.Success() {
		log.Debug("toolchain: child failed", "name", c.Name, "code", status.Code)
		return zerrors.ProcessFailed(c.Name, status.Code)
	}
	return nil
}

// projectDir checks that dir is an existing directory
func (t *Toolchain) projectDir(dir string) error {
	info, err := t.Fs.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return zerrors.WithPath(zerrors.EInput, dir, fmt.Sprintf("project directory %s does not exist", dir), nil)
		}
		return zerrors.WithPath(zerrors.EInput, dir, "cannot access project directory", err)
	}
	if !info.IsDir() {
		return zerrors.WithPath(zerrors.EInput, dir, fmt.Sprintf("%s is not a directory", dir), nil)
	}
	return nil
}

func (t *Toolchain) manifest(dir string) (*project.Manifest, error) {
	m, err := project.LoadManifest(t.Fs, dir)
	if err != nil {
		return nil, zerrors.WithPath(zerrors.EInput, filepath.Join(dir, project.ManifestFile), "invalid project manifest", err)
	}
	return m, nil
}

// dotEnv parses dir/.env. A missing file yields an empty map.
func (t *Toolchain) dotEnv(dir string) (map[string]string, error) {
	path := filepath.Join(dir, ".env")
	f, err := t.Fs.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, zerrors.WithPath(zerrors.EInput, path, "cannot read .env", err)
	}
	defer f.Close()

	vars, err := godotenv.Parse(f)
	if err != nil {
		return nil, zerrors.WithPath(zerrors.EInput, path, "invalid .env", err)
	}
	return vars, nil
}
