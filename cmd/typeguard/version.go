package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/typeguard"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of typeguard",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "typeguard version %s\n", typeguard.Version)
		},
	}
}
