package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/typeguard/internal/presentation/tui"
	"github.com/aretw0/typeguard/pkg/schema"
)

func newDescribeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Render a contract as a table of fields",
		RunE: func(cmd *cobra.Command, args []string) error {
			schemaPath, _ := cmd.Flags().GetString("schema")
			def, err := schema.LoadFile(schemaPath)
			if err != nil {
				return err
			}

			md := fmt.Sprintf("# %s\n\n%s", schemaPath, schema.Describe(def))
			if plain, _ := cmd.Flags().GetBool("plain"); plain {
				fmt.Fprint(cmd.OutOrStdout(), md)
				return nil
			}

			width, _ := cmd.Flags().GetInt("width")
			out, err := tui.NewRenderer(width)(md)
			if err != nil {
				return fmt.Errorf("failed to render: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringP("schema", "s", "", "Contract file (YAML or JSON)")
	cmd.Flags().Bool("plain", false, "Print markdown without terminal styling")
	cmd.Flags().Int("width", 100, "Word wrap width")
	_ = cmd.MarkFlagRequired("schema")
	return cmd
}
