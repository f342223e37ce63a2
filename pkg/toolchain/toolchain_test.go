// SPDX-License-Identifier: Apache-2.0
package toolchain

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	zerrors "github.com/Work-Fort/Zypher/pkg/errors"
	"github.com/Work-Fort/Zypher/pkg/project"
	"github.com/Work-Fort/Zypher/pkg/runner"
)

// mockRunner implements runner.Runner for testing
type mockRunner struct {
	calls  []runner.Command
	codes  map[string]int
	output map[string]string
	errs   map[string]error
	paths  map[string]string
}

func newMockRunner() *mockRunner {
	return &mockRunner{
		codes:  make(map[string]int),
		output: make(map[string]string),
		errs:   make(map[string]error),
		paths: map[string]string{
			DefaultPython: "/usr/bin/python3",
			DefaultFlet:   "/usr/bin/flet",
			DefaultSphinx: "/usr/bin/sphinx-build",
		},
	}
}

func (m *mockRunner) Run(_ context.Context, c runner.Command) (runner.ExitStatus, error) {
	m.calls = append(m.calls, c)
	if err, ok := m.errs[c.Name]; ok {
		return runner.ExitStatus{}, err
	}
	if out, ok := m.output[c.Name]; ok && c.Stdout != nil {
		io.WriteString(c.Stdout, out)
	}
	return runner.ExitStatus{Code: m.codes[c.Name]}, nil
}

func (m *mockRunner) LookPath(name string) (string, error) {
	if p, ok := m.paths[name]; ok {
		return p, nil
	}
	return "", fmt.Errorf("exec: %q: %w", name, exec.ErrNotFound)
}

func newToolchain(r runner.Runner, fsys afero.Fs) *Toolchain {
	tc := New(r)
	tc.Fs = fsys
	tc.Stdout = &bytes.Buffer{}
	tc.Stderr = &bytes.Buffer{}
	tc.Stdin = strings.NewReader("")
	return tc
}

func writeProject(t *testing.T, fsys afero.Fs, dir string, cfg project.Config) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fsys, dir+"/main.py", []byte("print('hi')\n"), 0644))
	require.NoError(t, afero.WriteFile(fsys, dir+"/src/app.py", []byte("class App: pass\n"), 0644))
	data, err := project.NewManifest(cfg, "test").Marshal()
	require.NoError(t, err)
	require.NoError(t, afero.WriteFile(fsys, dir+"/"+project.ManifestFile, data, 0644))
}

func demoConfig() project.Config {
	return project.Config{
		Name:        "demo",
		Template:    project.TemplateBasic,
		Environment: project.EnvironmentDevelopment,
	}
}

func TestServe_MissingEntryPoint(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, fsys.MkdirAll("/p", 0755))
	r := newMockRunner()

	err := newToolchain(r, fsys).Serve(context.Background(), "/p", true)
	assert.True(t, zerrors.HasCode(err, zerrors.EEntryPointMissing), "got %v", err)
	assert.Empty(t, r.calls, "runner never invoked")
}

func TestServe_MissingProjectDir(t *testing.T) {
	r := newMockRunner()

	err := newToolchain(r, afero.NewMemMapFs()).Serve(context.Background(), "/nope", false)
	assert.True(t, zerrors.HasCode(err, zerrors.EEntryPointMissing), "got %v", err)
	assert.Contains(t, err.Error(), "main.py")
	assert.Empty(t, r.calls, "runner never invoked")
}

func TestServe_EnvironmentWinsOverDotEnv(t *testing.T) {
	t.Setenv("ZYPHER_TEST_SET", "from-env")
	fsys := afero.NewMemMapFs()
	writeProject(t, fsys, "/p", demoConfig())
	require.NoError(t, afero.WriteFile(fsys, "/p/.env", []byte("ZYPHER_TEST_SET=\nZYPHER_TEST_UNSET_42=dotenv\n"), 0644))
	r := newMockRunner()

	require.NoError(t, newToolchain(r, fsys).Serve(context.Background(), "/p", false))
	require.Len(t, r.calls, 1)
	assert.NotContains(t, r.calls[0].Env, "ZYPHER_TEST_SET")
	assert.Equal(t, "dotenv", r.calls[0].Env["ZYPHER_TEST_UNSET_42"])
}

func TestServe_Commands(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeProject(t, fsys, "/p", demoConfig())

	tests := []struct {
		name     string
		reload   bool
		wantName string
		wantArgs []string
	}{
		{"reload", true, DefaultFlet, []string{"run", "-r", "main.py"}},
		{"plain", false, DefaultPython, []string{"main.py"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newMockRunner()
			require.NoError(t, newToolchain(r, fsys).Serve(context.Background(), "/p", tt.reload))
			require.Len(t, r.calls, 1)
			assert.Equal(t, tt.wantName, r.calls[0].Name)
			assert.Equal(t, tt.wantArgs, r.calls[0].Args)
			assert.Equal(t, "/p", r.calls[0].Dir)
			assert.True(t, r.calls[0].Foreground)
		})
	}
}

func TestServe_UsesManifestEntry(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/p/app_main.py", []byte(""), 0644))
	require.NoError(t, afero.WriteFile(fsys, "/p/"+project.ManifestFile, []byte("name: demo\nentry: app_main.py\n"), 0644))
	r := newMockRunner()

	require.NoError(t, newToolchain(r, fsys).Serve(context.Background(), "/p", false))
	assert.Equal(t, []string{"app_main.py"}, r.calls[0].Args)
}

func TestServe_MirrorsChildExitCode(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeProject(t, fsys, "/p", demoConfig())
	r := newMockRunner()
	r.codes[DefaultFlet] = 7

	err := newToolchain(r, fsys).Serve(context.Background(), "/p", true)
	assert.True(t, zerrors.HasCode(err, zerrors.EExternalProcess), "got %v", err)
	assert.Equal(t, 7, zerrors.ExitCode(err))
}

func TestServe_OverlaysDotEnv(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeProject(t, fsys, "/p", demoConfig())
	require.NoError(t, afero.WriteFile(fsys, "/p/.env", []byte("SUPABASE_URL=https://x.supabase.co\nSUPABASE_ANON_KEY=\n"), 0644))
	r := newMockRunner()

	require.NoError(t, newToolchain(r, fsys).Serve(context.Background(), "/p", false))
	assert.Equal(t, "https://x.supabase.co", r.calls[0].Env["SUPABASE_URL"])
	assert.Contains(t, r.calls[0].Env, "SUPABASE_ANON_KEY")
}

func TestServe_ToolMissing(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeProject(t, fsys, "/p", demoConfig())
	r := newMockRunner()
	r.errs[DefaultFlet] = &exec.Error{Name: "flet", Err: exec.ErrNotFound}

	err := newToolchain(r, fsys).Serve(context.Background(), "/p", true)
	assert.True(t, zerrors.HasCode(err, zerrors.EToolMissing), "got %v", err)
}

func TestServe_Cancelled(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeProject(t, fsys, "/p", demoConfig())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := newToolchain(newMockRunner(), fsys).Serve(ctx, "/p", true)
	assert.True(t, zerrors.HasCode(err, zerrors.ECancelled), "got %v", err)
	assert.Equal(t, zerrors.ExitCodeInterrupted, zerrors.ExitCode(err))
}

func TestBuild(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeProject(t, fsys, "/p", demoConfig())
	r := newMockRunner()
	r.output[DefaultPython] = "Listing '/p'...\n"

	var out bytes.Buffer
	result, err := newToolchain(r, fsys).Build(context.Background(), "/p", BuildOptions{Output: &out})
	require.NoError(t, err)
	assert.Empty(t, result.Archive)

	require.Len(t, r.calls, 1)
	assert.Equal(t, []string{"-m", "compileall", "/p"}, r.calls[0].Args)
	assert.False(t, r.calls[0].Foreground)
	assert.Equal(t, "Listing '/p'...\n", out.String())
}

func TestBuild_Failure(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeProject(t, fsys, "/p", demoConfig())
	r := newMockRunner()
	r.codes[DefaultPython] = 1

	_, err := newToolchain(r, fsys).Build(context.Background(), "/p", BuildOptions{Archive: true})
	assert.True(t, zerrors.HasCode(err, zerrors.EExternalProcess), "got %v", err)

	exists, _ := afero.DirExists(fsys, "/p/dist")
	assert.False(t, exists, "no archive after a failed compile")
}

func TestBuild_MissingDir(t *testing.T) {
	r := newMockRunner()
	_, err := newToolchain(r, afero.NewMemMapFs()).Build(context.Background(), "/nowhere", BuildOptions{})
	assert.True(t, zerrors.HasCode(err, zerrors.EInput), "got %v", err)
	assert.Empty(t, r.calls)
}

func TestBuild_Archive(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeProject(t, fsys, "/p", demoConfig())
	require.NoError(t, afero.WriteFile(fsys, "/p/.env", []byte("SUPABASE_URL=secret\n"), 0644))
	require.NoError(t, afero.WriteFile(fsys, "/p/src/__pycache__/app.cpython-312.pyc", []byte("pyc"), 0644))
	require.NoError(t, afero.WriteFile(fsys, "/p/docs/_build/index.html", []byte("<html>"), 0644))

	result, err := newToolchain(newMockRunner(), fsys).Build(context.Background(), "/p", BuildOptions{Archive: true})
	require.NoError(t, err)

	assert.Equal(t, "/p/dist/demo-development.tar.xz", result.Archive)
	assert.Equal(t, "/p/dist/demo-development.tar.xz.sha256", result.SumFile)
	assert.Len(t, result.Checksum, 64)
	assert.Equal(t, 3, result.Files, "main.py, src/app.py and the manifest")

	sums, err := afero.ReadFile(fsys, result.SumFile)
	require.NoError(t, err)
	assert.Equal(t, result.Checksum+"  demo-development.tar.xz\n", string(sums))
}

func TestClean(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeProject(t, fsys, "/p", demoConfig())
	require.NoError(t, afero.WriteFile(fsys, "/p/__pycache__/main.pyc", []byte("x"), 0644))
	require.NoError(t, afero.WriteFile(fsys, "/p/src/pages/__pycache__/home.pyc", []byte("x"), 0644))
	require.NoError(t, afero.WriteFile(fsys, "/p/dist/demo.tar.xz", []byte("x"), 0644))
	tc := newToolchain(newMockRunner(), fsys)

	removed, err := tc.Clean("/p", false)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"/p/__pycache__", "/p/src/pages/__pycache__"}, removed)

	exists, _ := afero.Exists(fsys, "/p/src/app.py")
	assert.True(t, exists, "sources are kept")
	exists, _ = afero.DirExists(fsys, "/p/dist")
	assert.True(t, exists, "dist survives without --dist")

	removed, err = tc.Clean("/p", true)
	require.NoError(t, err, "second clean succeeds")
	assert.Equal(t, []string{"/p/dist"}, removed)

	removed, err = tc.Clean("/p", true)
	require.NoError(t, err)
	assert.Empty(t, removed)
}

func TestClean_MissingDir(t *testing.T) {
	removed, err := newToolchain(newMockRunner(), afero.NewMemMapFs()).Clean("/nowhere", true)
	assert.NoError(t, err)
	assert.Empty(t, removed)
}

func TestClean_CustomCacheDir(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/p/.cache/x", []byte("x"), 0644))
	require.NoError(t, afero.WriteFile(fsys, "/p/__pycache__/y", []byte("y"), 0644))
	tc := newToolchain(newMockRunner(), fsys)
	tc.CacheDir = ".cache"

	removed, err := tc.Clean("/p", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"/p/.cache"}, removed)
}

func TestDocs_ToolMissing(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, fsys.MkdirAll("/p/docs", 0755))
	r := newMockRunner()
	delete(r.paths, DefaultSphinx)

	err := newToolchain(r, fsys).Docs(context.Background(), "/p", "")
	assert.True(t, zerrors.HasCode(err, zerrors.EDocsToolMissing), "got %v", err)
	assert.Empty(t, r.calls)
}

func TestDocs_Build(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, fsys.MkdirAll("/p/docs", 0755))
	r := newMockRunner()

	require.NoError(t, newToolchain(r, fsys).Docs(context.Background(), "/p", ""))
	require.Len(t, r.calls, 1)
	assert.Equal(t, "/usr/bin/sphinx-build", r.calls[0].Name)
	assert.Equal(t, []string{"-b", "html", "/p/docs", "/p/docs/_build"}, r.calls[0].Args)
}

func TestDocs_MissingDocsDir(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, fsys.MkdirAll("/p", 0755))

	err := newToolchain(newMockRunner(), fsys).Docs(context.Background(), "/p", "html")
	assert.True(t, zerrors.HasCode(err, zerrors.EInput), "got %v", err)
}

func TestInitDocs(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeProject(t, fsys, "/p", demoConfig())
	tc := newToolchain(newMockRunner(), fsys)

	files, err := tc.InitDocs("/p", "test")
	require.NoError(t, err)
	assert.Equal(t, []string{"docs/conf.py", "docs/index.rst"}, files)
	assert.True(t, tc.HasDocs("/p"))

	_, err = tc.InitDocs("/p", "test")
	assert.True(t, zerrors.HasCode(err, zerrors.ECollision), "got %v", err)
}

func checkByName(r Report, name string) (Check, bool) {
	for _, c := range r.Checks {
		if c.Name == name {
			return c, true
		}
	}
	return Check{}, false
}

func TestDoctor(t *testing.T) {
	tests := []struct {
		name       string
		version    string
		dropFlet   bool
		wantFailed bool
	}{
		{"healthy", "Python 3.12.1\n", false, false},
		{"old python", "Python 3.6.9\n", false, true},
		{"python 2 banner", "Python 2.7.18\n", false, true},
		{"garbage", "not python\n", false, true},
		{"missing flet", "Python 3.11.4\n", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newMockRunner()
			r.output["/usr/bin/python3"] = tt.version
			if tt.dropFlet {
				delete(r.paths, DefaultFlet)
			}

			report, err := newToolchain(r, afero.NewMemMapFs()).Doctor(context.Background(), "")
			require.NoError(t, err)
			assert.Equal(t, tt.wantFailed, report.Failed())
		})
	}
}

func TestDoctor_SphinxIsOptional(t *testing.T) {
	r := newMockRunner()
	r.output["/usr/bin/python3"] = "Python 3.10.0"
	delete(r.paths, DefaultSphinx)

	report, err := newToolchain(r, afero.NewMemMapFs()).Doctor(context.Background(), "")
	require.NoError(t, err)
	assert.False(t, report.Failed())

	c, ok := checkByName(report, "sphinx")
	require.True(t, ok)
	assert.False(t, c.OK)
	assert.False(t, c.Required)
}

func TestDoctor_Project(t *testing.T) {
	fsys := afero.NewMemMapFs()
	cfg := demoConfig()
	cfg.Auth = true
	writeProject(t, fsys, "/p", cfg)
	require.NoError(t, afero.WriteFile(fsys, "/p/.env", []byte("SUPABASE_URL=https://x\nSUPABASE_ANON_KEY=\n"), 0644))
	r := newMockRunner()
	r.output["/usr/bin/python3"] = "Python 3.12.1"

	report, err := newToolchain(r, fsys).Doctor(context.Background(), "/p")
	require.NoError(t, err)
	assert.False(t, report.Failed(), "missing credentials only warn")

	entry, ok := checkByName(report, "entry point")
	require.True(t, ok)
	assert.True(t, entry.OK)

	supa, ok := checkByName(report, "supabase")
	require.True(t, ok)
	assert.False(t, supa.OK)
	assert.Contains(t, supa.Detail, "SUPABASE_ANON_KEY")

	require.NoError(t, fsys.Remove("/p/main.py"))
	report, err = newToolchain(r, fsys).Doctor(context.Background(), "/p")
	require.NoError(t, err)
	assert.True(t, report.Failed())
}

func TestRun_StartFailure(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeProject(t, fsys, "/p", demoConfig())
	r := newMockRunner()
	r.errs[DefaultPython] = errors.New("permission denied")

	_, err := newToolchain(r, fsys).Build(context.Background(), "/p", BuildOptions{})
	assert.True(t, zerrors.HasCode(err, zerrors.EExternalProcess), "got %v", err)
	assert.Equal(t, 1, zerrors.ExitCode(err))
}
