package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/aretw0/typeguard"
	"github.com/aretw0/typeguard/internal/changes"
	"github.com/aretw0/typeguard/internal/presentation/tui"
	"github.com/aretw0/typeguard/pkg/observability"
	"github.com/aretw0/typeguard/pkg/schema"
	"github.com/aretw0/typeguard/pkg/validate"
)

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [VALUE_FILE|-]",
		Short: "Validate a JSON or YAML value against a contract",
		Long: `Validates a value against the contract in --schema and prints the validated value as JSON.

The value is read from VALUE_FILE (.yaml/.yml files are read as YAML, anything else as JSON)
or from standard input when VALUE_FILE is "-" or omitted.
Every failing field is reported on standard error and the command exits with status 1.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runValidate,
	}

	cmd.Flags().StringP("schema", "s", "", "Contract file (YAML or JSON)")
	cmd.Flags().BoolP("coerce", "c", false, "Convert values into the declared types when possible")
	cmd.Flags().BoolP("base", "b", false, "Replace values that cannot be converted with the type's default")
	cmd.Flags().Bool("diff", false, "Print the JSON merge patch of the changes instead of the value")
	cmd.Flags().String("format", "text", "Error report format: text or json")
	cmd.Flags().Int("max-depth", schema.DefaultMaxDepth, "Maximum nesting depth of the contract")
	_ = cmd.MarkFlagRequired("schema")
	return cmd
}

func runValidate(cmd *cobra.Command, args []string) error {
	logger, err := newLogger(cmd)
	if err != nil {
		return err
	}

	schemaPath, _ := cmd.Flags().GetString("schema")
	def, err := schema.LoadFile(schemaPath)
	if err != nil {
		return err
	}

	value, err := readValue(cmd, args)
	if err != nil {
		return err
	}

	maxDepth, _ := cmd.Flags().GetInt("max-depth")
	opts := []validate.Option{
		validate.WithLogger(logger),
		validate.WithMaxDepth(maxDepth),
		validate.WithHooks(observability.LogHooks(logger.With("component", "validate"))),
	}
	if coerce, _ := cmd.Flags().GetBool("coerce"); coerce {
		opts = append(opts, validate.WithCoercion())
	}
	if base, _ := cmd.Flags().GetBool("base"); base {
		opts = append(opts, validate.WithBase())
	}

	out, err := validate.Validate(def, value, opts...)
	if err != nil {
		issues := validate.Issues(err)
		if issues == nil {
			return err
		}
		return reportIssues(cmd, issues)
	}

	result := any(out)
	if diff, _ := cmd.Flags().GetBool("diff"); diff {
		patch, err := changes.Diff(value, out)
		if err != nil {
			return err
		}
		if patch == nil {
			patch = json.RawMessage("{}")
		}
		result = patch
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func reportIssues(cmd *cobra.Command, issues []validate.Issue) error {
	format, _ := cmd.Flags().GetString("format")
	switch format {
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(map[string]any{"errors": issues}); err != nil {
			return err
		}
	case "text":
		w := cmd.ErrOrStderr()
		tui.PrintIssues(w, profileFor(w), issues)
	default:
		return fmt.Errorf("unknown format: %s. Supported: text, json", format)
	}
	return errValidationFailed
}

// readValue reads the value from the file argument or standard input.
func readValue(cmd *cobra.Command, args []string) (any, error) {
	var (
		data []byte
		err  error
		path string
	)
	if len(args) == 1 && args[0] != "-" {
		path = args[0]
		data, err = os.ReadFile(path)
	} else {
		in := cmd.InOrStdin()
		if f, ok := in.(*os.File); ok && len(args) == 0 && term.IsTerminal(int(f.Fd())) {
			return nil, errors.New("no value given: pass VALUE_FILE or pipe the value on standard input")
		}
		data, err = io.ReadAll(in)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read value: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return typeguard.DecodeYAMLValue(data)
	default:
		return typeguard.DecodeValue(data)
	}
}

// profileFor picks the color profile of w; anything but a terminal gets plain text.
func profileFor(w io.Writer) termenv.Profile {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return termenv.NewOutput(f).Profile
	}
	return termenv.Ascii
}
