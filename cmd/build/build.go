// SPDX-License-Identifier: Apache-2.0
package build

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Work-Fort/Zypher/cmd/cmdutil"
	"github.com/Work-Fort/Zypher/pkg/config"
	"github.com/Work-Fort/Zypher/pkg/toolchain"
	"github.com/Work-Fort/Zypher/pkg/ui"
)

// NewBuildCmd creates the build command
func NewBuildCmd() *cobra.Command {
	var archive bool

	cmd := &cobra.Command{
		Use:   "build [project_dir]",
		Short: "Byte-compile a project",
		Long: `Byte-compile every Python file in the project with "python -m compileall".

With --archive the project is also packaged as dist/<name>-<env>.tar.xz,
next to a .sha256 checksum file.`,
		Example: `  zypher build demo
  zypher build demo --archive`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := cmdutil.ProjectDir(args)
			tc := cmdutil.NewToolchain()
			opts := toolchain.BuildOptions{Archive: archive}

			var result *toolchain.BuildResult
			var err error
			if cmdutil.IsInteractive() {
				var out bytes.Buffer
				opts.Output = &out
				err = ui.RunWithSpinner(cmd.Context(), fmt.Sprintf("Compiling %s", dir), func(ctx context.Context) error {
					var buildErr error
					result, buildErr = tc.Build(ctx, dir, opts)
					return buildErr
				})
				// The spinner owns the terminal while compiling
				os.Stdout.Write(out.Bytes())
			} else {
				result, err = tc.Build(cmd.Context(), dir, opts)
			}
			if err != nil {
				return err
			}

			printResult(dir, result)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&archive, "archive", "a", false, "Package the project into dist/ after compiling")

	return cmd
}

func printResult(dir string, result *toolchain.BuildResult) {
	theme := config.CurrentTheme

	if result.Archive == "" {
		fmt.Println()
		fmt.Println(theme.SuccessMessage(fmt.Sprintf("Build complete for %s", dir)))
		return
	}

	cmdutil.PrintList(fmt.Sprintf("Build complete for %s", dir), []string{
		fmt.Sprintf("%s (%d files)", result.Archive, result.Files),
		result.SumFile,
		"sha256 " + result.Checksum,
	})
}
