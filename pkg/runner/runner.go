// SPDX-License-Identifier: Apache-2.0

// Package runner starts the external tools zypher delegates to.
package runner

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultGracePeriod is how long a cancelled child gets to exit on SIGTERM
// before it is killed.
const DefaultGracePeriod = 3 * time.Second

// Command describes one child process
type Command struct {
	Name string
	Args []string
	// Dir is the working directory (optional)
	Dir string
	// Env is overlaid on the current environment
	Env map[string]string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Foreground keeps the child in zypher's process group so it shares
	// the terminal and receives keyboard signals directly. Otherwise the
	// child gets its own group, which is killed as a whole on cancellation.
	Foreground bool
}

// ExitStatus is the outcome of a child that ran to completion.
// Code is -1 when the child was terminated by a signal.
type ExitStatus struct {
	Code int
}

// Success reports a zero exit status
func (s ExitStatus) Success() bool {
	return s.Code == 0
}

// Runner runs external commands.
type Runner interface {
	// Run executes cmd and waits for it. A child that starts and exits, even
	// non-zero, yields a nil error. Errors are reserved for failures to start
	// and for cancellation of ctx.
	Run(ctx context.Context, cmd Command) (ExitStatus, error)

	// LookPath resolves name on PATH
	LookPath(name string) (string, error)
}

// ExecRunner is the os/exec implementation of Runner
type ExecRunner struct {
	GracePeriod time.Duration
}

// New returns an ExecRunner with the default grace period
func New() *ExecRunner {
	return &ExecRunner{GracePeriod: DefaultGracePeriod}
}

// LookPath resolves name using exec.LookPath
func (r *ExecRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

// Run starts cmd and waits for it, terminating it when ctx is cancelled
func (r *ExecRunner) Run(ctx context.Context, c Command) (ExitStatus, error) {
	if err := ctx.Err(); err != nil {
		return ExitStatus{}, err
	}

	cmd := exec.Command(c.Name, c.Args...)
	cmd.Dir = c.Dir
	cmd.Stdin = c.Stdin
	cmd.Stdout = c.Stdout
	cmd.Stderr = c.Stderr
	if len(c.Env) > 0 {
		cmd.Env = cmd.Environ()
		for k, v := range c.Env {
			cmd.Env = append(cmd.Env, k+"="+v)
		}
	}
	if !c.Foreground {
		cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	}

	log.Debug("runner: starting", "name", c.Name, "args", c.Args, "dir", c.Dir, "foreground", c.Foreground)
	if err := cmd.Start(); err != nil {
		return ExitStatus{}, err
	}

	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()

	select {
	case err := <-done:
		return exitStatus(err)
	case <-ctx.Done():
		r.terminate(cmd, c.Foreground, done)
		return ExitStatus{}, ctx.Err()
	}
}

// terminate sends SIGTERM, then SIGKILL once the grace period runs out.
// Background children are signalled as a whole process group.
func (r *ExecRunner) terminate(cmd *exec.Cmd, foreground bool, done <-chan error) {
	if cmd.Process == nil {
		return
	}
	pid := cmd.Process.Pid
	if !foreground {
		pid = -pid
	}

	log.Debug("runner: terminating", "pid", cmd.Process.Pid)
	_ = syscall.Kill(pid, syscall.SIGTERM)

	grace := r.GracePeriod
	if grace <= 0 {
		grace = DefaultGracePeriod
	}
	select {
	case <-done:
	case <-time.After(grace):
		_ = syscall.Kill(pid, syscall.SIGKILL)
		<-done
	}
}

func exitStatus(err error) (ExitStatus, error) {
	if err == nil {
		return ExitStatus{Code: 0}, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return ExitStatus{Code: exitErr.ExitCode()}, nil
	}
	return ExitStatus{}, err
}

// Stdio returns the command with the process's own standard streams attached
func Stdio(c Command) Command {
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	return c
}
