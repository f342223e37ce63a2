// SPDX-License-Identifier: Apache-2.0
package project

import (
	"errors"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	zerrors "github.com/Work-Fort/Zypher/pkg/errors"
)

func TestParseTemplate(t *testing.T) {
	for _, tmpl := range Templates {
		got, err := ParseTemplate(string(tmpl))
		require.NoError(t, err)
		assert.Equal(t, tmpl, got)
	}

	_, err := ParseTemplate("fancy")
	assert.True(t, zerrors.HasCode(err, zerrors.EInvalidChoice), "got %v", err)
}

func TestParseEnvironment(t *testing.T) {
	got, err := ParseEnvironment("production")
	require.NoError(t, err)
	assert.Equal(t, EnvironmentProduction, got)

	_, err = ParseEnvironment("staging")
	assert.True(t, zerrors.HasCode(err, zerrors.EInvalidChoice), "got %v", err)

	_, err = ParseEnvironment("")
	assert.True(t, zerrors.HasCode(err, zerrors.EInvalidChoice), "empty value must not default")
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "demo", false},
		{"dashes", "my-app", false},
		{"empty", "", true},
		{"blank", "   ", true},
		{"padded", " demo ", true},
		{"dot", ".", true},
		{"dotdot", "..", true},
		{"separator", "a/b", true},
		{"backslash", `a\b`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.input)
			if tt.wantErr {
				assert.True(t, zerrors.HasCode(err, zerrors.EInput), "got %v", err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_Title(t *testing.T) {
	assert.Equal(t, "My Demo App", Config{Name: "my-demo_app"}.Title())
	assert.Equal(t, "Demo", Config{Name: "demo"}.Title())
}

func TestConfig_Debug(t *testing.T) {
	assert.True(t, Config{Environment: EnvironmentDevelopment}.Debug())
	assert.False(t, Config{Environment: EnvironmentProduction}.Debug())
}

// fakePrompter answers from fixed values and records what was asked
type fakePrompter struct {
	name       string
	nameErr    error
	options    func(*Config)
	askedOpts  bool
	validateOK error
}

func (f *fakePrompter) AskName(validate func(string) error) (string, error) {
	if f.nameErr != nil {
		return "", f.nameErr
	}
	f.validateOK = validate(f.name)
	return f.name, nil
}

func (f *fakePrompter) AskOptions(cfg *Config) error {
	f.askedOpts = true
	if f.options != nil {
		f.options(cfg)
	}
	return nil
}

func newCollector(fsys afero.Fs, p Prompter) *Collector {
	return &Collector{
		Fs:        fsys,
		ParentDir: "/work",
		Prompter:  p,
		Defaults: Config{
			Template:    TemplateBasic,
			Environment: EnvironmentDevelopment,
			AppBar:      true,
			NavBar:      true,
		},
	}
}

func TestCollect_Success(t *testing.T) {
	fsys := afero.NewMemMapFs()
	p := &fakePrompter{
		name: "demo",
		options: func(c *Config) {
			c.Template = TemplateAdvanced
			c.Auth = true
		},
	}

	cfg, err := newCollector(fsys, p).Collect()
	require.NoError(t, err)

	assert.Equal(t, "demo", cfg.Name)
	assert.Equal(t, TemplateAdvanced, cfg.Template)
	assert.Equal(t, EnvironmentDevelopment, cfg.Environment)
	assert.True(t, cfg.AppBar)
	assert.True(t, cfg.Auth)
}

func TestCollect_EmptyNameFailsBeforeOptions(t *testing.T) {
	p := &fakePrompter{name: ""}

	_, err := newCollector(afero.NewMemMapFs(), p).Collect()
	assert.True(t, zerrors.HasCode(err, zerrors.EInput), "got %v", err)
	assert.False(t, p.askedOpts, "options must not be asked after an invalid name")
}

func TestCollect_ExistingDirectoryFailsFast(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, fsys.MkdirAll("/work/demo", 0755))
	p := &fakePrompter{name: "demo"}

	_, err := newCollector(fsys, p).Collect()
	assert.True(t, zerrors.HasCode(err, zerrors.EDirectoryExists), "got %v", err)
	assert.Equal(t, 1, zerrors.ExitCode(err), "exits like any input error")
	assert.Contains(t, err.Error(), "/work/demo")
	assert.False(t, p.askedOpts)
	assert.Error(t, p.validateOK, "interactive validation sees the same failure")
}

func TestCollect_InvalidChoiceFromPrompter(t *testing.T) {
	p := &fakePrompter{
		name:    "demo",
		options: func(c *Config) { c.Template = "unknown" },
	}

	_, err := newCollector(afero.NewMemMapFs(), p).Collect()
	assert.True(t, zerrors.HasCode(err, zerrors.EInvalidChoice), "got %v", err)
}

func TestCollect_PrompterError(t *testing.T) {
	abort := zerrors.New(zerrors.ECancelled, "aborted")
	p := &fakePrompter{nameErr: abort}

	_, err := newCollector(afero.NewMemMapFs(), p).Collect()
	assert.True(t, errors.Is(err, abort))
}

func TestManifest_RoundTrip(t *testing.T) {
	fsys := afero.NewMemMapFs()
	cfg := Config{
		Name:        "demo",
		Template:    TemplateStateManagement,
		Environment: EnvironmentProduction,
		NavBar:      true,
		Auth:        true,
	}

	data, err := NewManifest(cfg, "1.2.3").Marshal()
	require.NoError(t, err)
	require.NoError(t, afero.WriteFile(fsys, "/work/demo/"+ManifestFile, data, 0644))

	m, err := LoadManifest(fsys, "/work/demo")
	require.NoError(t, err)
	require.NotNil(t, m)

	assert.Equal(t, "demo", m.Name)
	assert.Equal(t, TemplateStateManagement, m.Template)
	assert.Equal(t, EnvironmentProduction, m.Environment)
	assert.Equal(t, DefaultEntry, m.EntryPoint())
	assert.True(t, m.Components.Auth)
	assert.False(t, m.Components.AppBar)
	assert.Equal(t, "1.2.3", m.Generator.Version)
}

func TestLoadManifest_Missing(t *testing.T) {
	m, err := LoadManifest(afero.NewMemMapFs(), "/nowhere")
	require.NoError(t, err)
	assert.Nil(t, m)
	assert.Equal(t, DefaultEntry, m.EntryPoint())
	assert.Equal(t, "nowhere", m.ProjectName("/nowhere"))
}

func TestLoadManifest_Invalid(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/p/"+ManifestFile, []byte("name: [unclosed"), 0644))

	_, err := LoadManifest(fsys, "/p")
	assert.Error(t, err)
}
