// SPDX-License-Identifier: Apache-2.0
package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Work-Fort/Zypher/cmd/cmdutil"
)

func styledHelpFunc(cmd *cobra.Command, _ []string) {
	cmdutil.RenderMarkdown(generateHelpMarkdown(cmd))
}

func styledUsageFunc(cmd *cobra.Command) error {
	cmdutil.RenderMarkdown(generateUsageMarkdown(cmd))
	return nil
}

// generateHelpMarkdown renders the full help page: title, description,
// then the usage sections as level-2 headings.
func generateHelpMarkdown(cmd *cobra.Command) string {
	var md strings.Builder

	fmt.Fprintf(&md, "# %s\n\n", cmd.Name())
	if desc := firstNonEmpty(cmd.Long, cmd.Short); desc != "" {
		fmt.Fprintf(&md, "%s\n\n", desc)
	}
	if cmd.Runnable() {
		md.WriteString("## Usage\n\n")
		codeBlock(&md, cmd.UseLine())
	}
	writeSections(&md, cmd, "##")
	fmt.Fprintf(&md, "Use `%s [command] --help` for more information about a command.\n", cmd.CommandPath())

	return md.String()
}

// generateUsageMarkdown renders the short form shown on usage errors
func generateUsageMarkdown(cmd *cobra.Command) string {
	var md strings.Builder

	md.WriteString("## Usage\n\n")
	if cmd.Runnable() {
		codeBlock(&md, cmd.UseLine())
	}
	writeSections(&md, cmd, "###")

	return md.String()
}

// writeSections appends the subcommand list and both flag sets under
// headings of the given level.
func writeSections(md *strings.Builder, cmd *cobra.Command, heading string) {
	if subs := visibleCommands(cmd); len(subs) > 0 {
		fmt.Fprintf(md, "%s Available Commands\n\n", heading)
		for _, sub := range subs {
			fmt.Fprintf(md, "- **%s** - %s\n", sub.Name(), sub.Short)
		}
		md.WriteString("\n")
	}
	if cmd.HasAvailableLocalFlags() {
		fmt.Fprintf(md, "%s Flags\n\n", heading)
		codeBlock(md, cmd.LocalFlags().FlagUsages())
	}
	if cmd.HasAvailableInheritedFlags() {
		fmt.Fprintf(md, "%s Global Flags\n\n", heading)
		codeBlock(md, cmd.InheritedFlags().FlagUsages())
	}
}

func visibleCommands(cmd *cobra.Command) []*cobra.Command {
	var subs []*cobra.Command
	for _, sub := range cmd.Commands() {
		if sub.IsAvailableCommand() && !sub.IsAdditionalHelpTopicCommand() {
			subs = append(subs, sub)
		}
	}
	return subs
}

func codeBlock(md *strings.Builder, body string) {
	fmt.Fprintf(md, "```\n%s\n```\n\n", strings.TrimRight(body, "\n"))
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
