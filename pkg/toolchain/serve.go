// SPDX-License-Identifier: Apache-2.0
package toolchain

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	zerrors "github.com/Work-Fort/Zypher/pkg/errors"
	"github.com/Work-Fort/Zypher/pkg/project"
	"github.com/Work-Fort/Zypher/pkg/runner"
)

// ServeCommand returns the command that runs the project in dir.
// With reload it uses "flet run -r <entry>", otherwise "python <entry>".
func (t *Toolchain) ServeCommand(dir, entry string, reload bool, env map[string]string) runner.Command {
	c := runner.Command{
		Name:       t.Python,
		Args:       []string{entry},
		Dir:        dir,
		Env:        env,
		Stdin:      t.Stdin,
		Stdout:     t.Stdout,
		Stderr:     t.Stderr,
		Foreground: true,
	}
	if reload {
		c.Name = t.Flet
		c.Args = []string{"run", "-r", entry}
	}
	return c
}

// Serve runs the project's entry point and waits for it to exit.
// A missing entry point fails with EEntryPointMissing before anything is
// started; a failing child yields EExternalProcess carrying its exit code.
func (t *Toolchain) Serve(ctx context.Context, dir string, reload bool) error {
	if _, err := t.Fs.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		entryPath := filepath.Join(dir, project.DefaultEntry)
		return zerrors.WithPath(zerrors.EEntryPointMissing, entryPath,
			fmt.Sprintf("entry point %s not found: %s does not exist", project.DefaultEntry, dir), nil)
	}
	if err := t.projectDir(dir); err != nil {
		return err
	}
	m, err := t.manifest(dir)
	if err != nil {
		return err
	}

	entry := m.EntryPoint()
	entryPath := filepath.Join(dir, entry)
	if _, err := t.Fs.Stat(entryPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return zerrors.WithPath(zerrors.EEntryPointMissing, entryPath,
				fmt.Sprintf("entry point %s not found in %s", entry, dir), nil)
		}
		return zerrors.WithPath(zerrors.EInput, entryPath, "cannot access entry point", err)
	}

	env, err := t.dotEnv(dir)
	if err != nil {
		return err
	}

	// Variables already set in the environment win over .env
	skipped := 0
	for k := range env {
		if _, ok := os.LookupEnv(k); ok {
			delete(env, k)
			skipped++
		}
	}
	log.Info("serve: starting", "dir", dir, "entry", entry, "reload", reload,
		"env_vars", len(env), "env_overridden", skipped)
	return t.run(ctx, t.ServeCommand(dir, entry, reload, env))
}
