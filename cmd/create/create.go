// SPDX-License-Identifier: Apache-2.0
package create

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/Work-Fort/Zypher/cmd/cmdutil"
	"github.com/Work-Fort/Zypher/pkg/config"
	zerrors "github.com/Work-Fort/Zypher/pkg/errors"
	"github.com/Work-Fort/Zypher/pkg/project"
	"github.com/Work-Fort/Zypher/pkg/scaffold"
	"github.com/Work-Fort/Zypher/pkg/ui"
)

type options struct {
	name        string
	template    string
	environment string
	dir         string
	appBar      bool
	navBar      bool
	auth        bool
}

// result describes a created project
type result struct {
	Config project.Config
	Target string
	Files  []string
}

// NewCreateCmd creates the create command
func NewCreateCmd(version string) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new Flet + Supabase project",
		Long: `Create a new Flet application with optional AppBar, NavigationBar and
Supabase authentication.

In a terminal the questions are asked interactively. Passing --name (or
running without a terminal) skips the prompts; unset flags take their
values from the defaults.* configuration keys.`,
		Example: `  # Ask every question
  zypher create

  # Non-interactive
  zypher create --name demo --template advanced --env production --auth`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			defaults, err := opts.projectDefaults(cmd.Flags())
			if err != nil {
				return err
			}

			var prompter project.Prompter = flagPrompter{name: opts.name}
			if cmdutil.IsInteractive() && !cmd.Flags().Changed("name") {
				prompter = ui.NewProjectForm()
			}

			res, err := run(afero.NewOsFs(), prompter, opts.dir, defaults, version)
			if err != nil {
				return err
			}

			cmdutil.RenderMarkdown(summary(res))
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.name, "name", "n", "", "Project name (skips the prompts)")
	cmd.Flags().StringVarP(&opts.template, "template", "t", string(project.TemplateBasic),
		fmt.Sprintf("Template: %s", joinNames(project.Templates)))
	cmd.Flags().StringVarP(&opts.environment, "env", "e", string(project.EnvironmentDevelopment),
		fmt.Sprintf("Environment: %s", joinNames(project.Environments)))
	cmd.Flags().StringVarP(&opts.dir, "dir", "d", ".", "Parent directory for the project")
	cmd.Flags().BoolVar(&opts.appBar, "appbar", true, "Include an AppBar")
	cmd.Flags().BoolVar(&opts.navBar, "navbar", true, "Include a NavigationBar")
	cmd.Flags().BoolVar(&opts.auth, "auth", false, "Include Supabase authentication")

	return cmd
}

// projectDefaults starts from the configured defaults and applies every
// flag the user set explicitly.
func (o *options) projectDefaults(flags *pflag.FlagSet) (project.Config, error) {
	cfg := config.ProjectDefaults()

	if flags.Changed("template") {
		t, err := project.ParseTemplate(o.template)
		if err != nil {
			return project.Config{}, err
		}
		cfg.Template = t
	}
	if flags.Changed("env") {
		e, err := project.ParseEnvironment(o.environment)
		if err != nil {
			return project.Config{}, err
		}
		cfg.Environment = e
	}
	if flags.Changed("appbar") {
		cfg.AppBar = o.appBar
	}
	if flags.Changed("navbar") {
		cfg.NavBar = o.navBar
	}
	if flags.Changed("auth") {
		cfg.Auth = o.auth
	}

	return cfg, nil
}

// run collects the answers, renders the tree and writes it under parentDir
func run(fsys afero.Fs, prompter project.Prompter, parentDir string, defaults project.Config, version string) (*result, error) {
	collector := &project.Collector{
		Fs:        fsys,
		ParentDir: parentDir,
		Prompter:  prompter,
		Defaults:  defaults,
	}

	cfg, err := collector.Collect()
	if err != nil {
		return nil, err
	}

	tree, err := scaffold.NewEmitter(version).Emit(cfg)
	if err != nil {
		return nil, err
	}

	target := filepath.Join(parentDir, cfg.Name)
	files, err := scaffold.NewWriter(fsys).Materialize(target, tree)
	if err != nil {
		return nil, err
	}

	log.Info("create: project written", "target", target, "template", cfg.Template,
		"environment", cfg.Environment, "files", len(files))

	return &result{Config: cfg, Target: target, Files: files}, nil
}

// flagPrompter answers from command-line flags
type flagPrompter struct {
	name string
}

func (p flagPrompter) AskName(func(string) error) (string, error) {
	if p.name == "" {
		return "", zerrors.New(zerrors.EInput, "project name is required (pass --name when not running in a terminal)")
	}
	return p.name, nil
}

func (p flagPrompter) AskOptions(*project.Config) error {
	return nil
}

func summary(res *result) string {
	cfg := res.Config

	var components []string
	if cfg.AppBar {
		components = append(components, "AppBar")
	}
	if cfg.NavBar {
		components = append(components, "NavigationBar")
	}
	if cfg.Auth {
		components = append(components, "Supabase auth")
	}
	if len(components) == 0 {
		components = append(components, "none")
	}

	var md strings.Builder
	md.WriteString(fmt.Sprintf("# Created %s\n\n", cfg.Name))
	md.WriteString(fmt.Sprintf("- **Template:** %s\n", cfg.Template))
	md.WriteString(fmt.Sprintf("- **Environment:** %s\n", cfg.Environment))
	md.WriteString(fmt.Sprintf("- **Components:** %s\n", strings.Join(components, ", ")))
	md.WriteString(fmt.Sprintf("- **Files:** %d in `%s`\n\n", len(res.Files), res.Target))

	md.WriteString("## Next steps\n\n```\n")
	md.WriteString(fmt.Sprintf("cd %s\n", res.Target))
	if cfg.Auth {
		md.WriteString("# fill in SUPABASE_URL and SUPABASE_ANON_KEY in .env\n")
	}
	md.WriteString("zypher serve . --auto-reload\n```\n")

	return md.String()
}

func joinNames[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}
