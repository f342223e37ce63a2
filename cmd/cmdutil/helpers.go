// SPDX-License-Identifier: Apache-2.0
package cmdutil

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"

	"github.com/Work-Fort/Zypher/pkg/config"
	"github.com/Work-Fort/Zypher/pkg/runner"
	"github.com/Work-Fort/Zypher/pkg/toolchain"
)

// IsInteractive checks if stdin is connected to a terminal AND the user wants TUI mode
func IsInteractive() bool {
	// Check both terminal capability and user preference
	return term.IsTerminal(int(os.Stdin.Fd())) && config.GetUseTUI()
}

// NewToolchain returns a Toolchain on the real runner, with tool names
// taken from configuration.
func NewToolchain() *toolchain.Toolchain {
	tc := toolchain.New(runner.New())
	tc.Python = config.GetPython()
	tc.Flet = config.GetFlet()
	tc.Sphinx = config.GetSphinx()
	tc.CacheDir = config.GetCacheDir()
	return tc
}

// ProjectDir returns the project directory argument, defaulting to "."
func ProjectDir(args []string) string {
	if len(args) == 0 || args[0] == "" {
		return "."
	}
	return args[0]
}

// PrintList prints a success heading followed by one bullet per item
func PrintList(heading string, items []string) {
	theme := config.CurrentTheme
	subtleStyle := theme.SubtleStyle()
	itemStyle := theme.InfoStyle()

	fmt.Println()
	fmt.Println(theme.SuccessMessage(heading))
	if len(items) == 0 {
		return
	}
	fmt.Println()
	for _, item := range items {
		fmt.Println(subtleStyle.Render("  • ") + itemStyle.Render(item))
	}
	fmt.Println()
}

// RenderMarkdown renders markdown through glamour at the terminal width.
// Plain markdown is printed when rendering fails.
func RenderMarkdown(markdown string) {
	// Get terminal width if stdout is a terminal
	width := 100 // Default fallback
	if term.IsTerminal(int(os.Stdout.Fd())) {
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
			width = w
		}
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		fmt.Println(markdown)
		return
	}

	rendered, err := r.Render(markdown)
	if err != nil {
		fmt.Println(markdown)
		return
	}

	// Trim trailing whitespace and print
	fmt.Print(strings.TrimRight(rendered, " \n"))
	fmt.Println()
}
