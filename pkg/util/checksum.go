// SPDX-License-Identifier: Apache-2.0
package util

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
)

// CalculateSHA256 calculates the SHA256 hash of a file
func CalculateSHA256(fsys afero.Fs, filePath string) (string, error) {
	file, err := fsys.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	hash := sha256.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", fmt.Errorf("failed to calculate hash: %w", err)
	}

	return hex.EncodeToString(hash.Sum(nil)), nil
}

// WriteSHA256File writes "<hash>  <name>" next to filePath as filePath.sha256,
// the format read by sha256sum -c. It returns the path written and the hash.
func WriteSHA256File(fsys afero.Fs, filePath string) (string, string, error) {
	hash, err := CalculateSHA256(fsys, filePath)
	if err != nil {
		return "", "", err
	}

	sumPath := filePath + ".sha256"
	line := fmt.Sprintf("%s  %s\n", hash, filepath.Base(filePath))
	if err := afero.WriteFile(fsys, sumPath, []byte(line), 0644); err != nil {
		return "", "", fmt.Errorf("failed to write checksum file: %w", err)
	}

	log.Debugf("Wrote checksum %s for %s", hash, filePath)
	return sumPath, hash, nil
}
