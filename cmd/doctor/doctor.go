// SPDX-License-Identifier: Apache-2.0
package doctor

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Work-Fort/Zypher/cmd/cmdutil"
	"github.com/Work-Fort/Zypher/pkg/config"
	zerrors "github.com/Work-Fort/Zypher/pkg/errors"
	"github.com/Work-Fort/Zypher/pkg/toolchain"
)

// NewDoctorCmd creates the doctor command
func NewDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor [project_dir]",
		Short: "Check the Python toolchain",
		Long: `Check that Python ` + toolchain.MinPython + `, the Flet CLI and (optionally)
Sphinx are installed.

With a project directory the entry point and, for projects with
authentication, the Supabase variables in .env are checked too.
Only failed required checks make the command fail.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := ""
			if len(args) > 0 {
				dir = args[0]
			}

			tc := cmdutil.NewToolchain()
			report, err := tc.Doctor(cmd.Context(), dir)
			if err != nil {
				return err
			}

			fmt.Print(formatReport(report, dir))

			if report.Failed() {
				return zerrors.Newf(zerrors.EToolMissing, "required checks failed: %s",
					strings.Join(failedRequired(report), ", "))
			}
			return nil
		},
	}
}

func formatReport(report toolchain.Report, dir string) string {
	theme := config.CurrentTheme

	context := "toolchain"
	if dir != "" {
		context = dir
	}

	var b strings.Builder
	b.WriteString(theme.RenderHeader("DOCTOR", context))
	b.WriteString("\n\n")

	width := 0
	for _, c := range report.Checks {
		width = max(width, len(c.Name))
	}

	for _, c := range report.Checks {
		indicator := theme.CompleteIndicator()
		switch {
		case !c.OK && c.Required:
			indicator = theme.ErrorIndicator()
		case !c.OK:
			indicator = theme.WarningIndicator()
		}
		fmt.Fprintf(&b, "  %s %-*s  %s\n", indicator, width, c.Name, theme.SubtleStyle().Render(c.Detail))
	}
	b.WriteString("\n")

	return b.String()
}

func failedRequired(report toolchain.Report) []string {
	var failed []string
	for _, c := range report.Checks {
		if c.Required && !c.OK {
			failed = append(failed, c.Name)
		}
	}
	return failed
}
