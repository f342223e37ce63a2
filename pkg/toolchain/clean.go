// SPDX-License-Identifier: Apache-2.0
package toolchain

import (
	"errors"
	"io/fs"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"

	zerrors "github.com/Work-Fort/Zypher/pkg/errors"
)

// Clean removes every bytecode cache directory under dir, and dist/ when
// dist is set. It returns the removed paths. Nothing to remove, including
// a missing dir, is not an error.
func (t *Toolchain) Clean(dir string, dist bool) ([]string, error) {
	if _, err := t.Fs.Stat(dir); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Debugf("clean: %s does not exist, nothing to do", dir)
			return nil, nil
		}
		return nil, zerrors.WithPath(zerrors.EInput, dir, "cannot access project directory", err)
	}

	cacheDir := t.cacheDir()
	var targets []string
	err := afero.Walk(t.Fs, dir, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() && info.Name() == cacheDir {
			targets = append(targets, path)
			return filepath.SkipDir
		}
		return nil
	})
	if err != nil {
		return nil, zerrors.WithPath(zerrors.EInput, dir, "failed to scan project", err)
	}

	if dist {
		distDir := filepath.Join(dir, DistDir)
		if ok, _ := afero.DirExists(t.Fs, distDir); ok {
			targets = append(targets, distDir)
		}
	}

	var removed []string
	for _, p := range targets {
		if err := t.Fs.RemoveAll(p); err != nil {
			return removed, zerrors.WithPath(zerrors.EWriteFailed, p, "failed to remove "+p, err)
		}
		log.Debugf("clean: removed %s", p)
		removed = append(removed, p)
	}
	return removed, nil
}
