// SPDX-License-Identifier: Apache-2.0
package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// completionShell describes one supported shell
type completionShell struct {
	name    string
	install string
	gen     func(root *cobra.Command, w io.Writer, desc bool) error
}

var completionShells = []completionShell{
	{
		name:    "bash",
		install: "source <(%[1]s completion bash)\n\nor, for every session:\n\n\t%[1]s completion bash > /etc/bash_completion.d/%[1]s",
		gen: func(root *cobra.Command, w io.Writer, desc bool) error {
			return root.GenBashCompletionV2(w, desc)
		},
	},
	{
		name:    "zsh",
		install: "source <(%[1]s completion zsh)\n\nor, for every session:\n\n\t%[1]s completion zsh > \"${fpath[1]}/_%[1]s\"",
		gen: func(root *cobra.Command, w io.Writer, desc bool) error {
			if !desc {
				return root.GenZshCompletionNoDesc(w)
			}
			return root.GenZshCompletion(w)
		},
	},
	{
		name:    "fish",
		install: "%[1]s completion fish | source\n\nor, for every session:\n\n\t%[1]s completion fish > ~/.config/fish/completions/%[1]s.fish",
		gen: func(root *cobra.Command, w io.Writer, desc bool) error {
			return root.GenFishCompletion(w, desc)
		},
	},
}

// newCompletionCmd returns "completion" with one subcommand per shell
func newCompletionCmd() *cobra.Command {
	c := &cobra.Command{
		Use:               "completion",
		Short:             "Generate shell completion scripts",
		Args:              cobra.NoArgs,
		ValidArgsFunction: cobra.NoFileCompletions,
	}

	for _, sh := range completionShells {
		var noDesc bool
		sub := &cobra.Command{
			Use:   sh.name,
			Short: fmt.Sprintf("Generate the %s completion script", sh.name),
			Long: fmt.Sprintf("Print the %s completion script for %s. Load it with:\n\n\t",
				sh.name, rootCmd.Name()) + fmt.Sprintf(sh.install, rootCmd.Name()) + "\n",
			Args:                  cobra.NoArgs,
			DisableFlagsInUseLine: true,
			ValidArgsFunction:     cobra.NoFileCompletions,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return sh.gen(cmd.Root(), cmd.OutOrStdout(), !noDesc)
			},
		}
		sub.Flags().BoolVar(&noDesc, "no-descriptions", false, "Disable completion descriptions")
		c.AddCommand(sub)
	}
	return c
}
