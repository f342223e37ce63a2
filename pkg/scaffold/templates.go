// SPDX-License-Identifier: Apache-2.0
package scaffold

import "github.com/Work-Fort/Zypher/pkg/project"

// projectFiles returns the files of a new project, in write order
func projectFiles() []FileSpec {
	return []FileSpec{
		{Path: "main.py", Body: mainPy},
		{
			Path: "src/app.py",
			Body: appPy,
			Fragments: []Fragment{
				{Name: "theme.import", When: withTemplate(project.TemplateAdvanced), Body: "from src.utils.theme import apply_theme\n"},
				{Name: "theme.apply", When: withTemplate(project.TemplateAdvanced), Body: "        apply_theme(self.page)\n"},
				{Name: "auth.initial_route", When: withAuth, Body: appAuthInitialRoute},
			},
		},
		{Path: "src/utils/routes.py", Body: routesPy},
		{Path: "src/components/navbar.py", Body: navbarPy},
		{Path: "src/components/appbar.py", Body: appbarPy},
		{
			Path:      "src/pages/home.py",
			Body:      homePy,
			Fragments: componentFragments(),
		},
		{
			Path: "src/pages/page1.py",
			Body: page1Py,
			Fragments: append(componentFragments(),
				Fragment{Name: "counter.define", When: withTemplate(project.TemplateStateManagement), Body: page1CounterDefine},
				Fragment{Name: "counter.controls", When: withTemplate(project.TemplateStateManagement), Body: page1CounterControls},
			),
		},
		{Path: "src/pages/login.py", When: withAuth, Body: loginPy},
		{Path: "src/pages/signup.py", When: withAuth, Body: signupPy},
		{Path: "src/utils/supabase_client.py", When: withAuth, Body: supabaseClientPy},
		{Path: ".env", When: withAuth, Body: dotEnv},
		{Path: "src/state/store.py", Body: storePy},
		{Path: "src/utils/theme.py", When: withTemplate(project.TemplateAdvanced), Body: themePy},
		{
			Path: "README.md",
			Body: readmeMd,
			Fragments: []Fragment{
				{Name: "setup.auth", When: withAuth, Body: "1. Install the Supabase client: `pip install supabase python-dotenv`\n1. Fill in `SUPABASE_URL` and `SUPABASE_ANON_KEY` in `.env`\n"},
				{Name: "components.appbar", When: withAppBar, Body: "- **AppBar**: title bar with search and notification actions\n"},
				{Name: "components.navbar", When: withNavBar, Body: "- **NavigationBar**: bottom navigation between the main pages\n"},
				{Name: "components.auth", When: withAuth, Body: readmeAuth},
				{Name: "theme", When: withTemplate(project.TemplateAdvanced), Body: "\n`src/utils/theme.py` sets the light and dark themes applied at startup.\n"},
				{Name: "counter", When: withTemplate(project.TemplateStateManagement), Body: "\n`src/pages/page1.py` keeps a counter in the shared `Store`.\n"},
			},
		},
	}
}

func componentFragments() []Fragment {
	return []Fragment{
		{Name: "appbar.import", When: withAppBar, Body: "from src.components.appbar import create_appbar\n"},
		{Name: "navbar.import", When: withNavBar, Body: "from src.components.navbar import create_navbar\n"},
		{Name: "appbar.use", When: withAppBar, Body: "        appbar=create_appbar(page),\n"},
		{Name: "navbar.use", When: withNavBar, Body: "        navigation_bar=create_navbar(page),\n"},
	}
}

// docsFiles returns the Sphinx skeleton written by docs --init
func docsFiles() []FileSpec {
	return []FileSpec{
		{Path: "docs/conf.py", Body: docsConfPy},
		{Path: "docs/index.rst", Body: docsIndexRst},
	}
}

const mainPy = `import flet as ft

from src.app import App


def main(page: ft.Page):
    app = App(page, auth={{ py .Config.Auth }}, debug={{ py .Config.Debug }})
    app.run()


if __name__ == "__main__":
    ft.app(target=main)
`

const appPy = `import flet as ft

from src.state.store import Store
from src.utils import routes
{{ include "theme.import" }}

class App:
    def __init__(self, page: ft.Page, auth: bool = False, debug: bool = False):
        self.page = page
        self.auth = auth
        self.debug = debug
        self.store = Store()
        self.page.title = {{ pystr .Title }}
        self.page.vertical_alignment = ft.MainAxisAlignment.CENTER
{{ include "theme.apply" }}        self.page.on_route_change = self.route_change

    def initial_route(self) -> str:
{{ include "auth.initial_route" }}        return "/"

    def route_change(self, event):
        route = self.page.route
        if self.debug:
            print(f"route change: {route}")
        build = routes.ROUTES.get(route, routes.not_found)
        self.page.views.clear()
        self.page.views.append(build(page=self.page, store=self.store))
        self.page.update()

    def run(self):
        self.page.go(self.initial_route())
`

const appAuthInitialRoute = `        if self.auth:
            from src.utils.supabase_client import supabase_client

            if supabase_client is not None:
                return "/login"
`

const routesPy = `import flet as ft

{{ range .Routes }}from src.pages.{{ .Module }} import {{ .View }}
{{ end }}

ROUTES = {
{{- range .Routes }}
    "{{ .Path }}": {{ .View }},
{{- end }}
}

NAVIGATION_ITEMS = [
{{- range .NavItems }}
    {"icon": ft.icons.{{ .Icon }}, "label": "{{ .Label }}", "route": "{{ .Route }}"},
{{- end }}
]


def not_found(page: ft.Page, store=None):
    return ft.View(
        "/404",
        [
            ft.Text("404: Not Found", size=24),
            ft.ElevatedButton("Go to Home", on_click=lambda _: page.go("/")),
        ],
    )
`

const navbarPy = `import flet as ft

from src.utils import routes


def create_navbar(page: ft.Page):
    return ft.NavigationBar(
        destinations=[
            ft.NavigationDestination(icon=item["icon"], label=item["label"])
            for item in routes.NAVIGATION_ITEMS
        ],
        selected_index=selected_index(page.route, routes.NAVIGATION_ITEMS),
        on_change=lambda e: handle_navigation_change(
            e.control.selected_index, page, routes.NAVIGATION_ITEMS
        ),
    )


def selected_index(route, navigation_items):
    for index, item in enumerate(navigation_items):
        if item["route"] == route:
            return index
    return 0


def handle_navigation_change(index, page, navigation_items):
    if index is None or not 0 <= index < len(navigation_items):
        return
    page.go(navigation_items[index]["route"])
`

const appbarPy = `import flet as ft


def create_appbar(page: ft.Page):
    return ft.AppBar(
        title=ft.Text({{ pystr .Title }}),
        actions=[
            ft.IconButton(ft.icons.SEARCH, on_click=on_search),
            ft.IconButton(ft.icons.NOTIFICATIONS, on_click=on_notifications),
        ],
    )


def on_search(event):
    print("Search clicked")


def on_notifications(event):
    print("Notifications clicked")
`

const homePy = `import flet as ft

from src.state.store import Store
{{ include "appbar.import" }}{{ include "navbar.import" }}

def home(page: ft.Page, store: Store):
    return ft.View(
        "/",
        [
            ft.Text("Home", size=24),
            ft.ElevatedButton("Go to Page 1", on_click=lambda _: page.go("/page1")),
        ],
{{ include "appbar.use" }}{{ include "navbar.use" }}    )
`

const page1Py = `import flet as ft

from src.state.store import Store
{{ include "appbar.import" }}{{ include "navbar.import" }}

def page1(page: ft.Page, store: Store):
{{ include "counter.define" }}    return ft.View(
        "/page1",
        [
            ft.Text("Page 1", size=24),
            ft.ElevatedButton("Go to Home", on_click=lambda _: page.go("/")),
{{ include "counter.controls" }}        ],
{{ include "appbar.use" }}{{ include "navbar.use" }}    )
`

const page1CounterDefine = `    count = ft.Text(str(store.get_state("counter", 0)), size=20)

    def increment(event):
        store.set_state("counter", store.get_state("counter", 0) + 1)
        count.value = str(store.get_state("counter"))
        page.update()

`

const page1CounterControls = `            count,
            ft.IconButton(ft.icons.ADD, on_click=increment),
`

const loginPy = `import flet as ft

from src.state.store import Store
from src.utils.supabase_client import supabase_client


def login(page: ft.Page, store: Store):
    email = ft.TextField(label="Email", width=300)
    password = ft.TextField(label="Password", password=True, can_reveal_password=True, width=300)
    error_message = ft.Text(value="", color="red", visible=False)

    def show_error(message):
        error_message.value = message
        error_message.visible = True
        page.update()

    def handle_login(event):
        if not email.value or not password.value:
            show_error("Email and password are required.")
            return

        if supabase_client is None:
            page.go("/")
            return

        try:
            response = supabase_client.auth.sign_in_with_password(
                {"email": email.value, "password": password.value}
            )
        except Exception as exc:
            show_error(f"An error occurred: {exc}")
            return

        store.set_state("user", response.user)
        error_message.visible = False
        page.go("/")

    return ft.View(
        "/login",
        [
            ft.Text("Login", size=24),
            email,
            password,
            ft.ElevatedButton("Login", on_click=handle_login),
            ft.TextButton("Create an account", on_click=lambda _: page.go("/signup")),
            error_message,
        ],
    )
`

const signupPy = `import flet as ft

from src.state.store import Store
from src.utils.supabase_client import supabase_client


def signup(page: ft.Page, store: Store):
    email = ft.TextField(label="Email", width=300)
    password = ft.TextField(label="Password", password=True, can_reveal_password=True, width=300)
    error_message = ft.Text(value="", color="red", visible=False)

    def show_error(message):
        error_message.value = message
        error_message.visible = True
        page.update()

    def handle_signup(event):
        if not email.value or not password.value:
            show_error("Email and password are required.")
            return

        if supabase_client is None:
            page.go("/login")
            return

        try:
            supabase_client.auth.sign_up({"email": email.value, "password": password.value})
        except Exception as exc:
            show_error(f"An error occurred: {exc}")
            return

        error_message.visible = False
        page.go("/login")

    return ft.View(
        "/signup",
        [
            ft.Text("Sign Up", size=24),
            email,
            password,
            ft.ElevatedButton("Sign Up", on_click=handle_signup),
            ft.TextButton("Already have an account? Log in", on_click=lambda _: page.go("/login")),
            error_message,
        ],
    )
`

const supabaseClientPy = `import os

from dotenv import load_dotenv

load_dotenv()

SUPABASE_URL = os.getenv("SUPABASE_URL", "")
SUPABASE_ANON_KEY = os.getenv("SUPABASE_ANON_KEY", "")

supabase_client = None
if SUPABASE_URL and SUPABASE_ANON_KEY:
    from supabase import create_client

    supabase_client = create_client(SUPABASE_URL, SUPABASE_ANON_KEY)
`

const dotEnv = `SUPABASE_URL=
SUPABASE_ANON_KEY=
`

const storePy = `class Store:
    """Key-value state shared by the views of one App."""

    def __init__(self):
        self._state = {}

    def get_state(self, key, default=None):
        return self._state.get(key, default)

    def set_state(self, key, value):
        self._state[key] = value
`

const themePy = `import flet as ft

LIGHT_THEME = ft.Theme(color_scheme_seed=ft.colors.INDIGO)
DARK_THEME = ft.Theme(color_scheme_seed=ft.colors.DEEP_PURPLE)


def apply_theme(page: ft.Page, mode: ft.ThemeMode = ft.ThemeMode.SYSTEM):
    page.theme = LIGHT_THEME
    page.dark_theme = DARK_THEME
    page.theme_mode = mode
`

const readmeMd = `# {{ .Title }}

A Flet application generated by zypher.

- **Template**: {{ .Config.Template }} ({{ .Config.Template.Description }})
- **Environment**: {{ .Config.Environment }} ({{ .Config.Environment.Description }})

## Setup

1. Install Flet: ` + "`pip install flet`" + `
{{ include "setup.auth" }}1. Run the app: ` + "`zypher serve .`" + ` or ` + "`flet run main.py`" + `

## Layout

- ` + "`main.py`" + `: entry point
- ` + "`src/app.py`" + `: application object and routing
- ` + "`src/pages/`" + `: one module per view
- ` + "`src/components/`" + `: app bar and navigation bar
- ` + "`src/state/store.py`" + `: key-value store shared by all views
- ` + "`src/utils/routes.py`" + `: route table and navigation items
{{ include "theme" }}{{ include "counter" }}
## Routes
{{ range .Routes }}
- ` + "`{{ .Path }}`" + `: ` + "`src/pages/{{ .Module }}.py`" + `
{{- end }}

## Components

{{ include "components.appbar" }}{{ include "components.navbar" }}{{ include "components.auth" }}- **Store**: ` + "`get_state`" + ` and ` + "`set_state`" + ` on the instance owned by the app

## Commands

- ` + "`zypher serve .`" + `: run the app
- ` + "`zypher serve . -r`" + `: run the app with hot reload
- ` + "`zypher build .`" + `: byte-compile the sources, ` + "`--archive`" + ` to package them
- ` + "`zypher clean .`" + `: remove compiled caches
- ` + "`zypher docs .`" + `: build the Sphinx documentation
`

const readmeAuth = "- **Authentication**: login and signup pages backed by Supabase. " +
	"Without credentials in `.env` both pages skip the backend and navigate on.\n"

const docsConfPy = `import os
import sys

sys.path.insert(0, os.path.abspath(".."))

project = {{ pystr .Config.Name }}
extensions = ["sphinx.ext.autodoc"]
exclude_patterns = ["_build"]
html_theme = "alabaster"
`

const docsIndexRst = `{{ .Title }}
{{ underline .Title "=" }}

.. toctree::
   :maxdepth: 2
   :caption: Contents:
`
