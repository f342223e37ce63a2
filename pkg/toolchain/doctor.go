// SPDX-License-Identifier: Apache-2.0
package toolchain

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"regexp"

	"github.com/hashicorp/go-version"

	"github.com/Work-Fort/Zypher/pkg/runner"
)

// MinPython is the oldest Python the generated projects support
const MinPython = ">= 3.8"

var pythonVersionRe = regexp.MustCompile(`Python (\d+\.\d+(?:\.\d+)?)`)

// Check is the outcome of one doctor check
type Check struct {
	Name     string
	Required bool
	OK       bool
	Detail   string
}

// Report collects doctor checks in the order they ran
type Report struct {
	Checks []Check
}

// Failed reports whether any required check failed
func (r Report) Failed() bool {
	for _, c := range r.Checks {
		if c.Required && !c.OK {
			return true
		}
	}
	return false
}

func (r *Report) add(name string, required, ok bool, format string, args ...any) {
	r.Checks = append(r.Checks, Check{
		Name:     name,
		Required: required,
		OK:       ok,
		Detail:   fmt.Sprintf(format, args...),
	})
}

// Doctor checks the toolchain and, when dir is not empty, the project in it
func (t *Toolchain) Doctor(ctx context.Context, dir string) (Report, error) {
	var report Report

	if err := t.checkPython(ctx, &report); err != nil {
		return report, err
	}
	t.checkTool(&report, "flet", t.Flet, true)
	t.checkTool(&report, "sphinx", t.Sphinx, false)

	if dir != "" {
		t.checkProject(&report, dir)
	}
	return report, ctx.Err()
}

func (t *Toolchain) checkTool(report *Report, name, bin string, required bool) {
	path, err := t.Runner.LookPath(bin)
	if err != nil {
		report.add(name, required, false, "%s not found on PATH", bin)
		return
	}
	report.add(name, required, true, "%s", path)
}

func (t *Toolchain) checkPython(ctx context.Context, report *Report) error {
	path, err := t.Runner.LookPath(t.Python)
	if err != nil {
		report.add("python", true, false, "%s not found on PATH", t.Python)
		return nil
	}

	// Python 2 prints its version on stderr
	var out bytes.Buffer
	status, err := t.Runner.Run(ctx, runner.Command{
		Name:   path,
		Args:   []string{"--version"},
		Stdout: &out,
		Stderr: &out,
	})
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil || !status.Success() {
		report.add("python", true, false, "%s --version failed", path)
		return nil
	}

	m := pythonVersionRe.FindStringSubmatch(out.String())
	if m == nil {
		report.add("python", true, false, "cannot parse version from %q", bytes.TrimSpace(out.Bytes()))
		return nil
	}
	v, err := version.NewVersion(m[1])
	if err != nil {
		report.add("python", true, false, "invalid version %s", m[1])
		return nil
	}
	constraint, err := version.NewConstraint(MinPython)
	if err != nil {
		return err
	}
	if !constraint.Check(v) {
		report.add("python", true, false, "%s is %s, need %s", path, v, MinPython)
		return nil
	}
	report.add("python", true, true, "%s (%s)", path, v)
	return nil
}

func (t *Toolchain) checkProject(report *Report, dir string) {
	if err := t.projectDir(dir); err != nil {
		report.add("project", true, false, "%v", err)
		return
	}
	m, err := t.manifest(dir)
	if err != nil {
		report.add("manifest", true, false, "%v", err)
		return
	}
	if m == nil {
		report.add("manifest", false, false, "no zypher.yaml, using defaults")
	} else {
		report.add("manifest", false, true, "%s (%s, %s)", m.Name, m.Template, m.Environment)
	}

	entry := filepath.Join(dir, m.EntryPoint())
	if _, err := t.Fs.Stat(entry); err != nil {
		report.add("entry point", true, false, "%s not found", entry)
	} else {
		report.add("entry point", true, true, "%s", entry)
	}

	if m == nil || !m.Components.Auth {
		return
	}
	vars, err := t.dotEnv(dir)
	if err != nil {
		report.add("supabase", false, false, "%v", err)
		return
	}
	var missing []string
	for _, key := range []string{"SUPABASE_URL", "SUPABASE_ANON_KEY"} {
		if vars[key] == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		report.add("supabase", false, false, "%v unset in .env, auth runs without a backend", missing)
		return
	}
	report.add("supabase", false, true, "credentials present in .env")
}
