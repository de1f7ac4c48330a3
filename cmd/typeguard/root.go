package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/typeguard/internal/logging"
)

// errValidationFailed signals that issues were already reported; the process exits 1.
var errValidationFailed = errors.New("validation failed")

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "typeguard",
		Short: "Typeguard enforces type contracts on untyped data",
		Long: `Typeguard checks JSON and YAML values against declarative contracts,
optionally coercing them into the declared types and reporting every failure at once.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Persistent flags (available to all commands)
	root.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn or error")

	root.AddCommand(
		newValidateCmd(),
		newDescribeCmd(),
		newServeCmd(),
		newMCPCmd(),
		newVersionCmd(),
	)
	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errValidationFailed) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func newLogger(cmd *cobra.Command) (*slog.Logger, error) {
	raw, _ := cmd.Flags().GetString("log-level")
	level, err := logging.ParseLevel(raw)
	if err != nil {
		return nil, err
	}
	return logging.NewWithWriter(cmd.ErrOrStderr(), level), nil
}
