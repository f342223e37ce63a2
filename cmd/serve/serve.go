// SPDX-License-Identifier: Apache-2.0
package serve

import (
	"github.com/spf13/cobra"

	"github.com/Work-Fort/Zypher/cmd/cmdutil"
)

// NewServeCmd creates the serve command
func NewServeCmd() *cobra.Command {
	var autoReload bool

	cmd := &cobra.Command{
		Use:   "serve [project_dir]",
		Short: "Run a project",
		Long: `Run the project's entry point.

Without --auto-reload the entry point is run with Python. With it, the
project is started through "flet run -r" and restarts on file changes.
Variables from the project's .env file are added to the environment.
The exit code is the application's exit code.`,
		Example: `  zypher serve demo
  zypher serve demo -r`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tc := cmdutil.NewToolchain()
			return tc.Serve(cmd.Context(), cmdutil.ProjectDir(args), autoReload)
		},
	}

	cmd.Flags().BoolVarP(&autoReload, "auto-reload", "r", false, "Restart the app when files change (flet run -r)")

	return cmd
}
