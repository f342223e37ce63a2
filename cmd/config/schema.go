// SPDX-License-Identifier: Apache-2.0
package config

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Work-Fort/Zypher/pkg/config"
	zerrors "github.com/Work-Fort/Zypher/pkg/errors"
)

func newSchemaCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of the config file",
		Long: `Print a JSON Schema (draft 2020-12) describing config.yaml, for editors
that validate YAML against a schema.`,
		Args: cobra.NoArgs,
		Example: `  zypher config schema -o zypher.schema.json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			schema, err := config.GenerateJSONSchema()
			if err != nil {
				return zerrors.Wrap(zerrors.EInternal, "cannot generate schema", err)
			}

			if output == "" {
				fmt.Fprintln(cmd.OutOrStdout(), string(schema))
				return nil
			}
			if err := os.WriteFile(output, schema, 0644); err != nil {
				return zerrors.WithPath(zerrors.EWriteFailed, output, "cannot write schema", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Schema written to %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the schema to a file")
	return cmd
}
