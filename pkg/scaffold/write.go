// SPDX-License-Identifier: Apache-2.0
package scaffold

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"

	zerrors "github.com/Work-Fort/Zypher/pkg/errors"
	"github.com/Work-Fort/Zypher/pkg/project"
)

const (
	dirMode  = 0755
	fileMode = 0644
)

// Writer materializes trees on a filesystem
type Writer struct {
	Fs afero.Fs
}

// NewWriter returns a Writer on fsys, or on the OS filesystem when fsys is nil
func NewWriter(fsys afero.Fs) *Writer {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	return &Writer{Fs: fsys}
}

// Materialize creates target and writes tree into it atomically.
// It returns the created file paths, relative to target, on success.
// If target already exists nothing is touched and EDirectoryExists is
// returned. Any later failure removes target again and reports the path
// that failed as EWriteFailed.
func (w *Writer) Materialize(target string, tree *Tree) ([]string, error) {
	if err := project.CheckTarget(w.Fs, target); err != nil {
		return nil, err
	}

	if err := w.Fs.Mkdir(target, dirMode); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return nil, zerrors.WithPath(zerrors.EDirectoryExists, target,
				fmt.Sprintf("project directory %q already exists", target), nil)
		}
		return nil, zerrors.WithPath(zerrors.EWriteFailed, target, "failed to create project directory", err)
	}

	// target was created by us, so removing it whole is safe
	rollback := func() error {
		return w.Fs.RemoveAll(target)
	}

	files, err := w.write(target, tree, func(string) {})
	if err != nil {
		return nil, withRollback(err, rollback())
	}
	return files, nil
}

// AddFiles writes tree into the existing directory root without overwriting
// anything. Existing files fail with ECollision. On failure every file and
// directory created by this call is removed again.
func (w *Writer) AddFiles(root string, tree *Tree) ([]string, error) {
	info, err := w.Fs.Stat(root)
	if err != nil {
		return nil, zerrors.WithPath(zerrors.EInput, root, "project directory is not accessible", err)
	}
	if !info.IsDir() {
		return nil, zerrors.WithPath(zerrors.EInput, root, fmt.Sprintf("%s is not a directory", root), nil)
	}

	for _, a := range tree.Artifacts() {
		p := filepath.Join(root, filepath.FromSlash(a.Path))
		if _, err := w.Fs.Stat(p); err == nil {
			return nil, zerrors.WithPath(zerrors.ECollision, p, fmt.Sprintf("refusing to overwrite %s", p), nil)
		}
	}

	var createdItems []string
	rollback := func() error {
		var errs []error
		for i := len(createdItems) - 1; i >= 0; i-- {
			if err := w.Fs.RemoveAll(createdItems[i]); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	}

	files, err := w.write(root, tree, func(p string) {
		createdItems = append(createdItems, p)
	})
	if err != nil {
		return nil, withRollback(err, rollback())
	}
	return files, nil
}

// write creates every directory of tree under root, then every file.
// track is called for each path created.
func (w *Writer) write(root string, tree *Tree, track func(string)) ([]string, error) {
	for _, dir := range tree.Dirs() {
		p := filepath.Join(root, filepath.FromSlash(dir))
		if info, err := w.Fs.Stat(p); err == nil && info.IsDir() {
			continue
		}
		if err := w.Fs.Mkdir(p, dirMode); err != nil {
			return nil, zerrors.WithPath(zerrors.EWriteFailed, p, fmt.Sprintf("failed to create directory %s", dir), err)
		}
		track(p)
	}

	var files []string
	for _, a := range tree.Artifacts() {
		p := filepath.Join(root, filepath.FromSlash(a.Path))
		if err := w.writeFile(p, a.Content); err != nil {
			return nil, zerrors.WithPath(zerrors.EWriteFailed, p, fmt.Sprintf("failed to write %s", a.Path), err)
		}
		track(p)
		files = append(files, a.Path)
		log.Debugf("materialize: wrote %s (%d bytes)", p, len(a.Content))
	}
	return files, nil
}

func (w *Writer) writeFile(p string, content []byte) error {
	f, err := w.Fs.OpenFile(p, os.O_WRONLY|os.O_CREATE|os.O_EXCL, fileMode)
	if err != nil {
		return err
	}
	if _, err := f.Write(content); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func withRollback(err, rollbackErr error) error {
	var ze *zerrors.ZypherError
	if !errors.As(err, &ze) {
		return err
	}
	msg := ze.Msg + " (rolled back)"
	if rollbackErr != nil {
		msg = ze.Msg + " (rollback incomplete: " + rollbackErr.Error() + ")"
	}
	return zerrors.WithPath(ze.Code, ze.Path, msg, ze.Cause)
}
