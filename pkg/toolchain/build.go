// SPDX-License-Identifier: Apache-2.0
package toolchain

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"

	"github.com/charmbracelet/log"

	zerrors "github.com/Work-Fort/Zypher/pkg/errors"
	"github.com/Work-Fort/Zypher/pkg/runner"
	"github.com/Work-Fort/Zypher/pkg/util"
)

// DistDir holds build archives, relative to the project root
const DistDir = "dist"

// BuildOptions configures Build
type BuildOptions struct {
	// Archive packages the project into dist/ after compiling
	Archive bool

	// Output receives the compiler's stdout and stderr. Nil means the
	// toolchain's own streams.
	Output io.Writer
}

// BuildResult describes what Build produced
type BuildResult struct {
	Archive  string
	SumFile  string
	Checksum string
	Files    int
}

// BuildCommand returns "python -m compileall <dir>"
func (t *Toolchain) BuildCommand(dir string, out io.Writer) runner.Command {
	c := runner.Command{
		Name:   t.Python,
		Args:   []string{"-m", "compileall", dir},
		Stdout: t.Stdout,
		Stderr: t.Stderr,
	}
	if out != nil {
		c.Stdout = out
		c.Stderr = out
	}
	return c
}

// Build byte-compiles the project in dir and optionally archives it
func (t *Toolchain) Build(ctx context.Context, dir string, opts BuildOptions) (*BuildResult, error) {
	if err := t.projectDir(dir); err != nil {
		return nil, err
	}

	log.Info("build: compiling", "dir", dir)
	if err := t.run(ctx, t.BuildCommand(dir, opts.Output)); err != nil {
		return nil, err
	}

	result := &BuildResult{}
	if !opts.Archive {
		return result, nil
	}
	if err := t.archive(dir, result); err != nil {
		return nil, err
	}
	return result, nil
}

func (t *Toolchain) archive(dir string, result *BuildResult) error {
	m, err := t.manifest(dir)
	if err != nil {
		return err
	}

	name := m.ProjectName(dir)
	if m != nil && m.Environment != "" {
		name = fmt.Sprintf("%s-%s", name, m.Environment)
	}

	distDir := filepath.Join(dir, DistDir)
	if err := t.Fs.MkdirAll(distDir, 0755); err != nil {
		return zerrors.WithPath(zerrors.EWriteFailed, distDir, "failed to create dist directory", err)
	}
	archivePath := filepath.Join(distDir, name+".tar.xz")

	files, err := util.CreateTarXz(t.Fs, dir, archivePath, t.skipArchive)
	if err != nil {
		_ = t.Fs.Remove(archivePath)
		return zerrors.WithPath(zerrors.EWriteFailed, archivePath, "failed to create archive", err)
	}

	names, err := util.ListTarXz(t.Fs, archivePath)
	if err != nil || len(names) != files {
		_ = t.Fs.Remove(archivePath)
		return zerrors.WithPath(zerrors.EWriteFailed, archivePath, "archive verification failed", err)
	}

	sumPath, hash, err := util.WriteSHA256File(t.Fs, archivePath)
	if err != nil {
		return zerrors.WithPath(zerrors.EWriteFailed, archivePath+".sha256", "failed to write checksum", err)
	}

	result.Archive = archivePath
	result.SumFile = sumPath
	result.Checksum = hash
	result.Files = files
	log.Info("build: archived", "archive", archivePath, "files", files, "sha256", hash)
	return nil
}

// skipArchive leaves out build output, secrets and caches
func (t *Toolchain) skipArchive(rel string, info fs.FileInfo) bool {
	switch rel {
	case DistDir, ".env", ".git", "docs/_build":
		return true
	}
	return info.IsDir() && info.Name() == t.cacheDir()
}

func (t *Toolchain) cacheDir() string {
	if t.CacheDir == "" {
		return DefaultCacheDir
	}
	return t.CacheDir
}
