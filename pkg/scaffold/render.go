// SPDX-License-Identifier: Apache-2.0
package scaffold

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"text/template"

	"github.com/Work-Fort/Zypher/pkg/project"
)

// Predicate decides whether a file or fragment is part of the output
type Predicate func(project.Config) bool

func always(project.Config) bool { return true }

func withAppBar(c project.Config) bool { return c.AppBar }
func withNavBar(c project.Config) bool { return c.NavBar }
func withAuth(c project.Config) bool   { return c.Auth }

func withTemplate(t project.Template) Predicate {
	return func(c project.Config) bool { return c.Template == t }
}

// Fragment is a named piece of a file, rendered only when When holds.
// A disabled fragment renders as nothing at all, newline included, so
// fragment bodies own their trailing newline.
type Fragment struct {
	Name string
	When Predicate
	Body string
}

// FileSpec describes one generated file
type FileSpec struct {
	Path      string
	When      Predicate
	Body      string
	Fragments []Fragment
}

// Route is one entry of the generated route table
type Route struct {
	Path   string
	Module string
	View   string
}

// NavItem is one entry of the generated navigation list
type NavItem struct {
	Icon  string
	Label string
	Route string
}

// Routes returns the route table for cfg. The template choice never changes
// the routes; only authentication adds to them.
func Routes(cfg project.Config) []Route {
	routes := []Route{
		{Path: "/", Module: "home", View: "home"},
		{Path: "/page1", Module: "page1", View: "page1"},
	}
	if cfg.Auth {
		routes = append(routes,
			Route{Path: "/login", Module: "login", View: "login"},
			Route{Path: "/signup", Module: "signup", View: "signup"},
		)
	}
	return routes
}

// NavigationItems returns the navigation bar entries, in display order
func NavigationItems() []NavItem {
	return []NavItem{
		{Icon: "HOME", Label: "Home", Route: "/"},
		{Icon: "EXPLORE", Label: "Page 1", Route: "/page1"},
	}
}

// view is the data every template is executed against
type view struct {
	Config       project.Config
	Title        string
	Routes       []Route
	NavItems     []NavItem
	Templates    []project.Template
	Environments []project.Environment
	Version      string
}

func newView(cfg project.Config, version string) view {
	return view{
		Config:       cfg,
		Title:        cfg.Title(),
		Routes:       Routes(cfg),
		NavItems:     NavigationItems(),
		Templates:    project.Templates,
		Environments: project.Environments,
		Version:      version,
	}
}

// Enabled reports whether s produces a file for cfg
func (s FileSpec) Enabled(cfg project.Config) bool {
	return s.When == nil || s.When(cfg)
}

// Render executes the file body. Fragments are pulled in with
// {{ include "name" }}; naming an unknown fragment is an error.
func (s FileSpec) Render(data view) ([]byte, error) {
	fragments := make(map[string]Fragment, len(s.Fragments))
	for _, f := range s.Fragments {
		if _, dup := fragments[f.Name]; dup {
			return nil, fmt.Errorf("%s: fragment %q declared twice", s.Path, f.Name)
		}
		fragments[f.Name] = f
	}

	funcs := templateFuncs()
	funcs["include"] = func(name string) (string, error) {
		f, ok := fragments[name]
		if !ok {
			return "", fmt.Errorf("unknown fragment %q", name)
		}
		if f.When != nil && !f.When(data.Config) {
			return "", nil
		}
		out, err := execute(s.Path+"#"+f.Name, f.Body, funcs, data)
		return string(out), err
	}

	return execute(s.Path, s.Body, funcs, data)
}

func execute(name, body string, funcs template.FuncMap, data view) ([]byte, error) {
	tmpl, err := template.New(name).Funcs(funcs).Option("missingkey=error").Parse(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		// py renders a Go bool as a Python literal
		"py": func(b bool) string {
			if b {
				return "True"
			}
			return "False"
		},
		// pystr renders a quoted Python string literal
		"pystr": func(s string) string {
			return strconv.Quote(s)
		},
		"underline": func(s string, ch string) string {
			return strings.Repeat(ch, len([]rune(s)))
		},
	}
}
