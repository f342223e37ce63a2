// SPDX-License-Identifier: Apache-2.0
package config

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Work-Fort/Zypher/pkg/config"
)

// NewConfigCmd creates the config command and its subcommands
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage zypher configuration",
		Long: `Read and change settings in ~/.config/zypher/config.yaml.

Flags win over ZYPHER_* environment variables, which win over the
config file, which wins over built-in defaults.`,
		Example: `  zypher config set tools.python python3.12
  zypher config set defaults.auth yes
  zypher config get defaults.template
  zypher config unset tools.python
  zypher config list`,
	}

	cmd.AddCommand(newSetCmd(), newGetCmd(), newUnsetCmd(), newListCmd(), newSchemaCmd())
	return cmd
}

func newSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Store a value in the config file",
		Long: `Store a value for a dotted key such as tools.python.

Booleans accept yes/no, on/off and enable(d)/disable(d) besides true/false.
Values are checked against the key's type before anything is written.`,
		Args: cobra.ExactArgs(2),
		Example: `  zypher config set use-tui off
  zypher config set defaults.template advanced
  zypher config set tools.flet /opt/flet/bin/flet`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.SetValue(args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s (%s)\n", args[0], args[1], config.ConfigFilePath())
			return nil
		},
	}
}

func newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Show a value and where it comes from",
		Args:  cobra.ExactArgs(1),
		Example: `  zypher config get tools.python
  # tools.python = python3.12 (file /home/me/.config/zypher/config.yaml)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := config.LookupValue(args[0])
			if err != nil {
				return err
			}
			printSetting(cmd.OutOrStdout(), *s)
			return nil
		},
	}
}

func newUnsetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unset <key>",
		Short: "Remove a value from the config file",
		Long: `Remove a key from the config file. Unsetting a parent such as "defaults"
removes all of its children. Environment variables and defaults still apply.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.UnsetValue(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s (%s)\n", args[0], config.ConfigFilePath())
			return nil
		},
	}
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List every effective setting",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings := config.ListValues()
			if len(settings) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No configuration set")
				return nil
			}
			for _, s := range settings {
				printSetting(cmd.OutOrStdout(), s)
			}
			return nil
		},
	}
}

func printSetting(w io.Writer, s config.Setting) {
	fmt.Fprintf(w, "%s = %v (%s)\n", s.Key, s.Value, s.Source)
}
