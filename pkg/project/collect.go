// SPDX-License-Identifier: Apache-2.0
package project

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"

	zerrors "github.com/Work-Fort/Zypher/pkg/errors"
)

// Prompter asks the create questions. The name is asked on its own so the
// collector can reject it before asking anything else.
type Prompter interface {
	// AskName asks for the project name. validate is the same check the
	// collector applies afterwards; interactive prompters show its error inline.
	AskName(validate func(string) error) (string, error)

	// AskOptions asks the remaining questions. cfg arrives pre-filled with
	// defaults and must be updated in place.
	AskOptions(cfg *Config) error
}

// Collector gathers a Config through a Prompter
type Collector struct {
	Fs        afero.Fs
	ParentDir string
	Prompter  Prompter
	Defaults  Config
}

// Collect runs the question sequence and returns a validated Config
func (c *Collector) Collect() (Config, error) {
	name, err := c.Prompter.AskName(c.CheckName)
	if err != nil {
		return Config{}, err
	}
	if err := c.CheckName(name); err != nil {
		return Config{}, err
	}
	log.Debugf("collect: name=%s accepted", name)

	cfg := c.Defaults
	cfg.Name = name
	if err := c.Prompter.AskOptions(&cfg); err != nil {
		return Config{}, err
	}
	cfg.Name = name

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// CheckName validates name and fails if ParentDir already holds an entry of
// that name.
func (c *Collector) CheckName(name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	return CheckTarget(c.Fs, filepath.Join(c.ParentDir, name))
}

// CheckTarget fails with EDirectoryExists when target is already present
func CheckTarget(fsys afero.Fs, target string) error {
	_, err := fsys.Stat(target)
	if err == nil {
		return zerrors.WithPath(zerrors.EDirectoryExists, target,
			fmt.Sprintf("project directory %q already exists", target), nil)
	}
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return zerrors.WithPath(zerrors.EInput, target, "cannot access project directory", err)
}
