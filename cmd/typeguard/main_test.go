package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/typeguard"
)

const contract = `
name:
  type: string
  required: true
port:
  type: number
owner:
  type:
    email: string
`

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestValidate_Stdin(t *testing.T) {
	schemaPath := writeFile(t, "contract.yaml", contract)

	out, _, err := execute(t, `{"name": "api", "port": "8080", "owner": {"email": "a@b", "x": 1}}`,
		"validate", "--schema", schemaPath, "--coerce")
	require.NoError(t, err)
	assert.JSONEq(t, `{"name": "api", "port": 8080, "owner": {"email": "a@b"}}`, out)
}

func TestValidate_YAMLValueFile(t *testing.T) {
	schemaPath := writeFile(t, "contract.yaml", contract)
	valuePath := writeFile(t, "value.yml", "name: api\nport: 80\n")

	out, _, err := execute(t, "", "validate", "-s", schemaPath, valuePath)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name": "api", "port": 80}`, out)
}

func TestValidate_Diff(t *testing.T) {
	schemaPath := writeFile(t, "contract.yaml", contract)

	out, _, err := execute(t, `{"name": "api", "port": "x"}`, "validate", "-s", schemaPath, "-c", "-b", "--diff")
	require.NoError(t, err)
	assert.JSONEq(t, `{"port": 0}`, out)

	out, _, err = execute(t, `{"name": "api"}`, "validate", "-s", schemaPath, "--diff", "-")
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, out)
}

func TestValidate_Failures(t *testing.T) {
	schemaPath := writeFile(t, "contract.yaml", contract)

	out, errOut, err := execute(t, `{"port": "x", "owner": {"email": 1}}`, "validate", "-s", schemaPath)
	assert.ErrorIs(t, err, errValidationFailed)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "✗ 3 validation errors")
	assert.Contains(t, errOut, `required_missing  field "name": required`)
	assert.Contains(t, errOut, `field "port": expected number`)
	assert.Contains(t, errOut, `field "owner"`)
}

func TestValidate_JSONReport(t *testing.T) {
	schemaPath := writeFile(t, "contract.json", `{"n": {"type": "number", "required": true}}`)

	out, _, err := execute(t, `{}`, "validate", "-s", schemaPath, "--format", "json")
	assert.ErrorIs(t, err, errValidationFailed)
	assert.JSONEq(t, `{"errors": [{"kind": "required_missing", "field": "n", "path": "n", "expected": "number", "message": "field \"n\": required"}]}`, out)
}

func TestValidate_Errors(t *testing.T) {
	schemaPath := writeFile(t, "contract.yaml", contract)

	_, _, err := execute(t, `{}`, "validate")
	assert.Error(t, err, "missing --schema")

	_, _, err = execute(t, `{}`, "validate", "-s", filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)

	_, _, err = execute(t, `{`, "validate", "-s", schemaPath)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, errValidationFailed)

	_, _, err = execute(t, `{}`, "validate", "-s", schemaPath, "--log-level", "loud")
	assert.Error(t, err)
}

func TestValidate_DebugLogs(t *testing.T) {
	schemaPath := writeFile(t, "contract.yaml", contract)

	_, errOut, err := execute(t, `{"name": "a", "owner": {"email": "e", "x": 1}}`,
		"validate", "-s", schemaPath, "--log-level", "debug")
	require.NoError(t, err)
	assert.Contains(t, errOut, "msg=validation")
	assert.Contains(t, errOut, "stripped=1")
}

func TestDescribe(t *testing.T) {
	schemaPath := writeFile(t, "contract.yaml", contract)

	out, _, err := execute(t, "", "describe", "-s", schemaPath, "--plain")
	require.NoError(t, err)
	assert.Contains(t, out, "| `name` | string | yes |")
	assert.Contains(t, out, "| `owner.email` | string | yes |")

	out, _, err = execute(t, "", "describe", "-s", schemaPath)
	require.NoError(t, err)
	assert.Contains(t, out, "owner.email")
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "typeguard version "+typeguard.Version+"\n", out)
}

func TestOpenStore(t *testing.T) {
	cmd := newServeCmd()
	require.NoError(t, cmd.Flags().Set("store", "file"))
	require.NoError(t, cmd.Flags().Set("store-dir", t.TempDir()))
	store, closeStore, err := openStore(cmd)
	require.NoError(t, err)
	assert.NotNil(t, store)
	assert.NoError(t, closeStore())

	require.NoError(t, cmd.Flags().Set("store", "etcd"))
	_, _, err = openStore(cmd)
	assert.Error(t, err)
}
