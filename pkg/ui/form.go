// SPDX-License-Identifier: Apache-2.0
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/Work-Fort/Zypher/pkg/project"
)

// ProjectForm asks the create questions with huh forms.
// It implements project.Prompter.
type ProjectForm struct{}

// NewProjectForm returns an interactive prompter
func NewProjectForm() *ProjectForm {
	return &ProjectForm{}
}

// AskName asks for the project name, showing validation errors inline
func (f *ProjectForm) AskName(validate func(string) error) (string, error) {
	var name string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Enter the project name").
				Placeholder("my-app").
				Value(&name).
				Validate(func(s string) error {
					return validate(strings.TrimSpace(s))
				}),
		),
	)

	if err := form.Run(); err != nil {
		return "", formError(err)
	}
	return strings.TrimSpace(name), nil
}

// AskOptions asks for the template, the environment and the components
func (f *ProjectForm) AskOptions(cfg *project.Config) error {
	templates := make([]huh.Option[project.Template], len(project.Templates))
	for i, t := range project.Templates {
		templates[i] = huh.NewOption(fmt.Sprintf("%s - %s", t, t.Description()), t)
	}
	environments := make([]huh.Option[project.Environment], len(project.Environments))
	for i, e := range project.Environments {
		environments[i] = huh.NewOption(fmt.Sprintf("%s - %s", e, e.Description()), e)
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[project.Template]().
				Title("Choose a template").
				Options(templates...).
				Value(&cfg.Template),
			huh.NewSelect[project.Environment]().
				Title("Choose an environment").
				Options(environments...).
				Value(&cfg.Environment),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Do you want to include an AppBar?").
				Value(&cfg.AppBar),
			huh.NewConfirm().
				Title("Do you want to include a NavigationBar?").
				Value(&cfg.NavBar),
			huh.NewConfirm().
				Title("Do you want to include authentication?").
				Description("Adds login and signup pages backed by Supabase.").
				Value(&cfg.Auth),
		),
	)

	if err := form.Run(); err != nil {
		return formError(err)
	}
	return nil
}
