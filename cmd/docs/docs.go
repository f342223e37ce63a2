// SPDX-License-Identifier: Apache-2.0
package docs

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/Work-Fort/Zypher/cmd/cmdutil"
	"github.com/Work-Fort/Zypher/pkg/config"
	"github.com/Work-Fort/Zypher/pkg/toolchain"
	"github.com/Work-Fort/Zypher/pkg/ui"
)

// confirmFunc asks whether a missing docs directory should be created
type confirmFunc func(dir string) (bool, error)

// NewDocsCmd creates the docs command
func NewDocsCmd(version string) *cobra.Command {
	var (
		initDocs bool
		builder  string
	)

	cmd := &cobra.Command{
		Use:   "docs [project_dir]",
		Short: "Build project documentation with Sphinx",
		Long: `Build the Sphinx sources in <project_dir>/docs into docs/_build.

When the project has no docs directory, --init writes a minimal Sphinx
skeleton first. In a terminal you are asked instead.`,
		Example: `  zypher docs demo
  zypher docs demo --init
  zypher docs demo --builder dirhtml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := cmdutil.ProjectDir(args)

			var confirm confirmFunc
			if cmdutil.IsInteractive() {
				confirm = func(dir string) (bool, error) {
					return ui.Confirm(
						fmt.Sprintf("%s has no docs directory. Create a Sphinx skeleton?", dir),
						"Writes docs/conf.py and docs/index.rst")
				}
			}

			if err := runDocs(cmd.Context(), cmdutil.NewToolchain(), dir, version, builder, initDocs, confirm); err != nil {
				return err
			}

			fmt.Println()
			fmt.Println(config.CurrentTheme.SuccessMessage(fmt.Sprintf("Documentation built in %s",
				filepath.Join(dir, toolchain.DocsDir, "_build"))))
			return nil
		},
	}

	cmd.Flags().BoolVar(&initDocs, "init", false, "Create a Sphinx skeleton when docs/ is missing")
	cmd.Flags().StringVarP(&builder, "builder", "b", toolchain.DefaultBuilder, "Sphinx builder")

	return cmd
}

// runDocs builds the docs in dir, creating the skeleton first when
// create is set or confirm agrees. Sphinx is resolved before anything
// is asked or written.
func runDocs(ctx context.Context, tc *toolchain.Toolchain, dir, version, builder string, create bool, confirm confirmFunc) error {
	if _, err := tc.SphinxPath(); err != nil {
		return err
	}

	isDir, _ := afero.DirExists(tc.Fs, dir)
	if isDir && !tc.HasDocs(dir) {
		if !create && confirm != nil {
			ok, err := confirm(dir)
			if err != nil {
				return err
			}
			create = ok
		}
		if create {
			files, err := tc.InitDocs(dir, version)
			if err != nil {
				return err
			}
			cmdutil.PrintList("Created Sphinx skeleton", files)
		}
	}

	return tc.Docs(ctx, dir, builder)
}
