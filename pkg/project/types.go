// SPDX-License-Identifier: Apache-2.0
package project

import (
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	zerrors "github.com/Work-Fort/Zypher/pkg/errors"
)

// Template selects the flavour of the generated project
type Template string

const (
	TemplateBasic           Template = "basic"
	TemplateAdvanced        Template = "advanced"
	TemplateStateManagement Template = "state-management"
)

// Templates lists every template in prompt order
var Templates = []Template{TemplateBasic, TemplateAdvanced, TemplateStateManagement}

// Environment records the target environment of the generated project
type Environment string

const (
	EnvironmentDevelopment Environment = "development"
	EnvironmentProduction  Environment = "production"
)

// Environments lists every environment in prompt order
var Environments = []Environment{EnvironmentDevelopment, EnvironmentProduction}

// Description returns the one-line summary shown in prompts and the README
func (t Template) Description() string {
	switch t {
	case TemplateBasic:
		return "Basic template with home and page1."
	case TemplateAdvanced:
		return "Advanced template with light and dark themes."
	case TemplateStateManagement:
		return "Template with a store-backed counter on page1."
	default:
		return ""
	}
}

// Description returns the one-line summary shown in prompts and the README
func (e Environment) Description() string {
	switch e {
	case EnvironmentDevelopment:
		return "Development environment (route changes are logged)."
	case EnvironmentProduction:
		return "Production environment."
	default:
		return ""
	}
}

// ParseTemplate converts s into a Template, rejecting unknown values
func ParseTemplate(s string) (Template, error) {
	for _, t := range Templates {
		if string(t) == s {
			return t, nil
		}
	}
	return "", zerrors.Newf(zerrors.EInvalidChoice,
		"invalid template %q (must be one of %s)", s, joinChoices(Templates))
}

// ParseEnvironment converts s into an Environment, rejecting unknown values
func ParseEnvironment(s string) (Environment, error) {
	for _, e := range Environments {
		if string(e) == s {
			return e, nil
		}
	}
	return "", zerrors.Newf(zerrors.EInvalidChoice,
		"invalid environment %q (must be one of %s)", s, joinChoices(Environments))
}

// Config holds every answer collected for a new project.
// It is treated as immutable once collection finishes.
type Config struct {
	Name        string
	Template    Template
	Environment Environment

	AppBar bool
	NavBar bool
	Auth   bool
}

// Validate checks the name and both enumerations
func (c Config) Validate() error {
	if err := ValidateName(c.Name); err != nil {
		return err
	}
	if _, err := ParseTemplate(string(c.Template)); err != nil {
		return err
	}
	if _, err := ParseEnvironment(string(c.Environment)); err != nil {
		return err
	}
	return nil
}

// Debug reports whether the generated app runs with route logging enabled
func (c Config) Debug() bool {
	return c.Environment == EnvironmentDevelopment
}

// Title derives a human-readable application title from the project name,
// e.g. "my-demo_app" becomes "My Demo App".
func (c Config) Title() string {
	words := strings.FieldsFunc(c.Name, func(r rune) bool {
		return r == '-' || r == '_' || r == ' ' || r == '.'
	})
	if len(words) == 0 {
		return c.Name
	}
	caser := cases.Title(language.Und, cases.NoLower)
	return caser.String(strings.Join(words, " "))
}

// ValidateName checks that name can be used as a directory name in the
// current parent directory.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return zerrors.New(zerrors.EInput, "project name is required")
	}
	if name != strings.TrimSpace(name) {
		return zerrors.Newf(zerrors.EInput, "project name %q must not start or end with whitespace", name)
	}
	if name == "." || name == ".." {
		return zerrors.Newf(zerrors.EInput, "project name %q is not a valid directory name", name)
	}
	if strings.ContainsAny(name, `/\`) || filepath.Base(name) != name {
		return zerrors.Newf(zerrors.EInput, "project name %q must not contain path separators", name)
	}
	return nil
}

func joinChoices[T ~string](choices []T) string {
	parts := make([]string, len(choices))
	for i, c := range choices {
		parts[i] = string(c)
	}
	return fmt.Sprintf("[%s]", strings.Join(parts, ", "))
}
