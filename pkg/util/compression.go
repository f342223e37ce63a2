// SPDX-License-Identifier: Apache-2.0
package util

import (
	"archive/tar"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
	"github.com/ulikunitz/xz"
)

// SkipFunc reports whether the entry at rel (slash separated, relative to
// the archive root) is left out. Skipping a directory skips its contents.
type SkipFunc func(rel string, info fs.FileInfo) bool

// CreateTarXz packs the regular files and directories under srcDir into an
// xz-compressed tarball at dst. It returns the number of files written.
func CreateTarXz(fsys afero.Fs, srcDir, dst string, skip SkipFunc) (int, error) {
	log.Debugf("Archiving %s to %s", srcDir, dst)

	dstFile, err := fsys.Create(dst)
	if err != nil {
		return 0, fmt.Errorf("failed to create archive: %w", err)
	}
	defer dstFile.Close()

	xzWriter, err := xz.NewWriter(dstFile)
	if err != nil {
		return 0, fmt.Errorf("failed to create xz writer: %w", err)
	}
	tarWriter := tar.NewWriter(xzWriter)

	files := 0
	walkErr := afero.Walk(fsys, srcDir, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(srcDir, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if skip != nil && skip(rel, info) {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		switch {
		case info.IsDir():
			return tarWriter.WriteHeader(&tar.Header{
				Typeflag: tar.TypeDir,
				Name:     rel + "/",
				Mode:     int64(info.Mode().Perm()),
				ModTime:  info.ModTime(),
			})
		case info.Mode().IsRegular():
			if err := addFile(fsys, tarWriter, path, rel, info); err != nil {
				return err
			}
			files++
			return nil
		default:
			log.Debugf("Skipping unsupported file type: %s", rel)
			return nil
		}
	})
	if walkErr != nil {
		return 0, fmt.Errorf("failed to archive %s: %w", srcDir, walkErr)
	}

	if err := tarWriter.Close(); err != nil {
		return 0, fmt.Errorf("failed to finish tar stream: %w", err)
	}
	// Ensure all data is flushed
	if err := xzWriter.Close(); err != nil {
		return 0, fmt.Errorf("failed to flush compressed data: %w", err)
	}
	if err := dstFile.Close(); err != nil {
		return 0, fmt.Errorf("failed to close archive: %w", err)
	}

	log.Debugf("Successfully archived %d files to %s", files, dst)
	return files, nil
}

func addFile(fsys afero.Fs, tw *tar.Writer, path, rel string, info fs.FileInfo) error {
	f, err := fsys.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", rel, err)
	}
	defer f.Close()

	header := &tar.Header{
		Typeflag: tar.TypeReg,
		Name:     rel,
		Mode:     int64(info.Mode().Perm()),
		Size:     info.Size(),
		ModTime:  info.ModTime(),
	}
	if err := tw.WriteHeader(header); err != nil {
		return fmt.Errorf("failed to write header for %s: %w", rel, err)
	}
	if _, err := io.Copy(tw, f); err != nil {
		return fmt.Errorf("failed to archive %s: %w", rel, err)
	}
	return nil
}

// ListTarXz returns the names of the regular files in an xz-compressed tarball
func ListTarXz(fsys afero.Fs, src string) ([]string, error) {
	srcFile, err := fsys.Open(src)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}
	defer srcFile.Close()

	xzReader, err := xz.NewReader(srcFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create xz reader: %w", err)
	}
	tarReader := tar.NewReader(xzReader)

	var names []string
	for {
		header, err := tarReader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read tar header: %w", err)
		}
		if header.Typeflag == tar.TypeReg {
			names = append(names, header.Name)
		}
	}
	return names, nil
}
