// SPDX-License-Identifier: Apache-2.0
package scaffold

import (
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	zerrors "github.com/Work-Fort/Zypher/pkg/errors"
	"github.com/Work-Fort/Zypher/pkg/project"
)

var authPaths = []string{
	"src/pages/login.py",
	"src/pages/signup.py",
	"src/utils/supabase_client.py",
	".env",
}

var routeEntry = regexp.MustCompile(`^\s+"(/[^"]*)": \w+,$`)

// tableEntries returns the paths listed between "<name> = {" and "}"
func tableEntries(src, name string) []string {
	var out []string
	inside := false
	for _, line := range strings.Split(src, "\n") {
		switch {
		case strings.HasPrefix(line, name+" = {"):
			inside = true
		case inside && line == "}":
			return out
		case inside:
			if m := routeEntry.FindStringSubmatch(line); m != nil {
				out = append(out, m[1])
			}
		}
	}
	return out
}

// blankInsideImports reports a blank line sandwiched between two from-imports
func blankInsideImports(src string) bool {
	lines := strings.Split(src, "\n")
	for i := 1; i < len(lines)-1; i++ {
		if lines[i] == "" && strings.HasPrefix(lines[i-1], "from ") && strings.HasPrefix(lines[i+1], "from ") {
			return true
		}
	}
	return false
}

func content(t *testing.T, tree *Tree, p string) string {
	t.Helper()
	a, ok := tree.Lookup(p)
	require.True(t, ok, "missing %s", p)
	return string(a.Content)
}

func emit(t *testing.T, cfg project.Config) *Tree {
	t.Helper()
	tree, err := NewEmitter("test").Emit(cfg)
	require.NoError(t, err)
	return tree
}

func baseConfig() project.Config {
	return project.Config{
		Name:        "demo",
		Template:    project.TemplateBasic,
		Environment: project.EnvironmentDevelopment,
	}
}

func TestEmitProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	configGen := func(name, tmpl, env string, appbar, navbar, auth bool) project.Config {
		return project.Config{
			Name:        name,
			Template:    project.Template(tmpl),
			Environment: project.Environment(env),
			AppBar:      appbar,
			NavBar:      navbar,
			Auth:        auth,
		}
	}

	gens := []gopter.Gen{
		gen.RegexMatch(`^[a-z][a-z0-9_-]{0,15}$`),
		gen.OneConstOf("basic", "advanced", "state-management"),
		gen.OneConstOf("development", "production"),
		gen.Bool(),
		gen.Bool(),
		gen.Bool(),
	}

	properties.Property("auth files present exactly when auth is enabled", prop.ForAll(
		func(name, tmpl, env string, appbar, navbar, auth bool) bool {
			tree, err := NewEmitter("test").Emit(configGen(name, tmpl, env, appbar, navbar, auth))
			if err != nil {
				return false
			}
			for _, p := range authPaths {
				if tree.Has(p) != auth {
					return false
				}
			}
			return true
		},
		gens...,
	))

	properties.Property("route table has two entries, four with auth", prop.ForAll(
		func(name, tmpl, env string, appbar, navbar, auth bool) bool {
			tree, err := NewEmitter("test").Emit(configGen(name, tmpl, env, appbar, navbar, auth))
			if err != nil {
				return false
			}
			a, _ := tree.Lookup("src/utils/routes.py")
			src := string(a.Content)
			routes := tableEntries(src, "ROUTES")
			if auth {
				return len(routes) == 4 && strings.Contains(src, `"/login": login`)
			}
			return len(routes) == 2 && !strings.Contains(src, "login") && !strings.Contains(src, "signup")
		},
		gens...,
	))

	properties.Property("navigation items ignore auth", prop.ForAll(
		func(name, tmpl, env string, appbar, navbar, auth bool) bool {
			tree, err := NewEmitter("test").Emit(configGen(name, tmpl, env, appbar, navbar, auth))
			if err != nil {
				return false
			}
			a, _ := tree.Lookup("src/utils/routes.py")
			return strings.Count(string(a.Content), `"route": "/`) == 2
		},
		gens...,
	))

	properties.Property("views never contain blank import lines", prop.ForAll(
		func(name, tmpl, env string, appbar, navbar, auth bool) bool {
			tree, err := NewEmitter("test").Emit(configGen(name, tmpl, env, appbar, navbar, auth))
			if err != nil {
				return false
			}
			for _, a := range tree.Artifacts() {
				if strings.HasSuffix(a.Path, ".py") && blankInsideImports(string(a.Content)) {
					return false
				}
			}
			return true
		},
		gens...,
	))

	properties.Property("readme echoes template and environment", prop.ForAll(
		func(name, tmpl, env string, appbar, navbar, auth bool) bool {
			tree, err := NewEmitter("test").Emit(configGen(name, tmpl, env, appbar, navbar, auth))
			if err != nil {
				return false
			}
			a, _ := tree.Lookup("README.md")
			// the heading carries the project title, skip it
			_, readme, _ := strings.Cut(string(a.Content), "\n")
			if !strings.Contains(readme, tmpl) || !strings.Contains(readme, env) {
				return false
			}
			mentionsAuth := strings.Contains(readme, "login") || strings.Contains(strings.ToLower(readme), "supabase")
			return mentionsAuth == auth
		},
		gens...,
	))

	properties.TestingRun(t)
}

func TestEmit_Layout(t *testing.T) {
	cfg := baseConfig()
	cfg.AppBar = true
	cfg.NavBar = true
	tree := emit(t, cfg)

	assert.Equal(t, []string{
		"main.py",
		"src/app.py",
		"src/utils/routes.py",
		"src/components/navbar.py",
		"src/components/appbar.py",
		"src/pages/home.py",
		"src/pages/page1.py",
		"src/state/store.py",
		"README.md",
		project.ManifestFile,
	}, tree.Paths())

	dirs := tree.Dirs()
	for _, d := range ProjectDirs {
		assert.Contains(t, dirs, d)
	}
	assert.Less(t, indexOf(dirs, "src"), indexOf(dirs, "src/pages"), "parents come first")
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}

func TestEmit_EntryPointFlags(t *testing.T) {
	cfg := baseConfig()
	cfg.Auth = true
	main := content(t, emit(t, cfg), "main.py")
	assert.Contains(t, main, "App(page, auth=True, debug=True)")

	cfg.Auth = false
	cfg.Environment = project.EnvironmentProduction
	main = content(t, emit(t, cfg), "main.py")
	assert.Contains(t, main, "App(page, auth=False, debug=False)")
}

func TestEmit_ReadmeCommands(t *testing.T) {
	readme := content(t, emit(t, baseConfig()), "README.md")
	assert.Contains(t, readme, "`zypher serve .`: run the app\n")
	assert.Contains(t, readme, "`zypher serve . -r`: run the app with hot reload")
	assert.NotContains(t, readme, "`zypher serve .`: run the app with hot reload")
}

func TestEmit_StoreIsOwnedByApp(t *testing.T) {
	tree := emit(t, baseConfig())

	store := content(t, tree, "src/state/store.py")
	assert.Contains(t, store, "class Store:")
	assert.NotRegexp(t, `(?m)^\w+\s*=\s*Store\(`, store, "no module-level instance")

	app := content(t, tree, "src/app.py")
	assert.Contains(t, app, "self.store = Store()")
	assert.Contains(t, app, "build(page=self.page, store=self.store)")
	assert.Contains(t, app, "routes.ROUTES.get(route, routes.not_found)")
}

func TestEmit_Components(t *testing.T) {
	cfg := baseConfig()
	home := content(t, emit(t, cfg), "src/pages/home.py")
	assert.NotContains(t, home, "create_appbar")
	assert.NotContains(t, home, "create_navbar")
	assert.Contains(t, home, `page.go("/page1")`)

	cfg.AppBar = true
	home = content(t, emit(t, cfg), "src/pages/home.py")
	assert.Contains(t, home, "from src.components.appbar import create_appbar\n")
	assert.Contains(t, home, "appbar=create_appbar(page),")
	assert.NotContains(t, home, "create_navbar")

	cfg.NavBar = true
	page1 := content(t, emit(t, cfg), "src/pages/page1.py")
	assert.Contains(t, page1, "navigation_bar=create_navbar(page),")
	assert.Contains(t, page1, `page.go("/")`)
}

func TestEmit_NavbarIgnoresOutOfRangeIndex(t *testing.T) {
	navbar := content(t, emit(t, baseConfig()), "src/components/navbar.py")
	assert.Contains(t, navbar, "if index is None or not 0 <= index < len(navigation_items):\n        return")
}

func TestEmit_AuthPages(t *testing.T) {
	cfg := baseConfig()
	cfg.Auth = true
	tree := emit(t, cfg)

	login := content(t, tree, "src/pages/login.py")
	validate := strings.Index(login, "if not email.value or not password.value:")
	call := strings.Index(login, "sign_in_with_password")
	require.NotEqual(t, -1, validate)
	require.NotEqual(t, -1, call)
	assert.Less(t, validate, call, "fields are checked before the backend call")
	assert.NotContains(t, login, "forgot", "no link to a missing route")

	signup := content(t, tree, "src/pages/signup.py")
	assert.Contains(t, signup, `page.go("/login")`)

	client := content(t, tree, "src/utils/supabase_client.py")
	assert.Contains(t, client, "supabase_client = None\nif SUPABASE_URL and SUPABASE_ANON_KEY:")

	assert.Equal(t, "SUPABASE_URL=\nSUPABASE_ANON_KEY=\n", content(t, tree, ".env"))
	assert.Contains(t, content(t, tree, "src/app.py"), `return "/login"`)
}

func TestEmit_TemplateVariants(t *testing.T) {
	cfg := baseConfig()
	cfg.Template = project.TemplateAdvanced
	tree := emit(t, cfg)
	assert.True(t, tree.Has("src/utils/theme.py"))
	assert.Contains(t, content(t, tree, "src/app.py"), "apply_theme(self.page)")

	cfg.Template = project.TemplateStateManagement
	tree = emit(t, cfg)
	assert.False(t, tree.Has("src/utils/theme.py"))
	page1 := content(t, tree, "src/pages/page1.py")
	assert.Contains(t, page1, `store.set_state("counter"`)
	assert.Contains(t, page1, "on_click=increment")

	cfg.Template = project.TemplateBasic
	tree = emit(t, cfg)
	assert.NotContains(t, content(t, tree, "src/pages/page1.py"), "increment")
	assert.NotContains(t, content(t, tree, "src/app.py"), "apply_theme")
}

func TestEmit_TitleIsQuoted(t *testing.T) {
	cfg := baseConfig()
	cfg.Name = `say-"hi"`
	app := content(t, emit(t, cfg), "src/app.py")
	assert.Contains(t, app, "self.page.title = "+strconv.Quote(cfg.Title()))
	assert.NotContains(t, app, "title = Say")
}

func TestEmit_Manifest(t *testing.T) {
	cfg := baseConfig()
	cfg.NavBar = true
	manifest := content(t, emit(t, cfg), project.ManifestFile)
	assert.Contains(t, manifest, "name: demo")
	assert.Contains(t, manifest, "template: basic")
	assert.Contains(t, manifest, "navbar: true")
	assert.Contains(t, manifest, "version: test")
}

func TestEmit_InvalidChoice(t *testing.T) {
	cfg := baseConfig()
	cfg.Environment = "staging"
	_, err := NewEmitter("test").Emit(cfg)
	assert.True(t, zerrors.HasCode(err, zerrors.EInvalidChoice), "got %v", err)
}

func TestEmitDocs(t *testing.T) {
	tree, err := NewEmitter("test").EmitDocs("my-app")
	require.NoError(t, err)

	assert.Equal(t, []string{"docs/conf.py", "docs/index.rst"}, tree.Paths())
	assert.Contains(t, content(t, tree, "docs/conf.py"), `project = "my-app"`)
	assert.True(t, strings.HasPrefix(content(t, tree, "docs/index.rst"), "My App\n======\n"))
}

func TestTree_RejectsCollisions(t *testing.T) {
	tree := NewTree()
	require.NoError(t, tree.Add("a/b.py", []byte("x")))

	err := tree.Add("a/./b.py", []byte("y"))
	assert.True(t, zerrors.HasCode(err, zerrors.ECollision), "got %v", err)

	a, _ := tree.Lookup("a/b.py")
	assert.Equal(t, "x", string(a.Content), "first artifact wins")

	for _, bad := range []string{"", "/abs.py", "../escape.py", "."} {
		assert.True(t, zerrors.HasCode(tree.Add(bad, nil), zerrors.EInput), "path %q", bad)
	}
}

func TestFileSpec_UnknownFragment(t *testing.T) {
	f := FileSpec{Path: "x.py", Body: `{{ include "missing" }}`}
	_, err := f.Render(newView(baseConfig(), "test"))
	assert.ErrorContains(t, err, `unknown fragment "missing"`)
}

func TestFileSpec_DuplicateFragment(t *testing.T) {
	f := FileSpec{
		Path: "x.py",
		Body: "",
		Fragments: []Fragment{
			{Name: "a", Body: "1"},
			{Name: "a", Body: "2"},
		},
	}
	_, err := f.Render(newView(baseConfig(), "test"))
	assert.Error(t, err)
}
