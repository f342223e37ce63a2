// SPDX-License-Identifier: Apache-2.0
package clean

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Work-Fort/Zypher/cmd/cmdutil"
	"github.com/Work-Fort/Zypher/pkg/config"
)

// NewCleanCmd creates the clean command
func NewCleanCmd() *cobra.Command {
	var dist bool

	cmd := &cobra.Command{
		Use:   "clean [project_dir]",
		Short: "Remove bytecode caches",
		Long: `Remove every __pycache__ directory under the project.

The cache directory name comes from the clean.cache-dir setting. With
--dist the build archives in dist/ are removed as well. Cleaning an
already clean project (or a missing directory) succeeds.`,
		Example: `  zypher clean demo
  zypher clean demo --dist`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := cmdutil.ProjectDir(args)
			tc := cmdutil.NewToolchain()

			removed, err := tc.Clean(dir, dist)
			if err != nil {
				return err
			}

			if len(removed) == 0 {
				fmt.Println()
				fmt.Println(config.CurrentTheme.InfoMessage("Nothing to clean"))
				return nil
			}

			cmdutil.PrintList(fmt.Sprintf("Cleaned %s", dir), removed)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dist, "dist", false, "Also remove build archives in dist/")

	return cmd
}
