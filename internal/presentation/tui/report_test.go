package tui

import (
	"bytes"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"

	"github.com/aretw0/typeguard/pkg/validate"
)

func TestPrintIssues_Plain(t *testing.T) {
	var buf bytes.Buffer
	PrintIssues(&buf, termenv.Ascii, []validate.Issue{
		{Kind: validate.ErrRequiredMissing, Path: "name", Message: `field "name": required`},
		{Kind: validate.ErrInvalidType, Path: "port", Message: `field "port": expected number (got string)`},
	})

	assert.Equal(t, "✗ 2 validation errors\n"+
		"  required_missing  field \"name\": required\n"+
		"  invalid_type      field \"port\": expected number (got string)\n", buf.String())
}

func TestPrintIssues_Single(t *testing.T) {
	var buf bytes.Buffer
	PrintIssues(&buf, termenv.Ascii, []validate.Issue{{Kind: validate.ErrInvalidType, Message: "value: expected number"}})
	assert.Contains(t, buf.String(), "✗ 1 validation error\n")
}

func TestPrintIssues_Colored(t *testing.T) {
	var buf bytes.Buffer
	PrintIssues(&buf, termenv.TrueColor, []validate.Issue{{Kind: validate.ErrInvalidType, Message: "m"}})
	assert.Contains(t, buf.String(), "\x1b[")
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf, termenv.Ascii)
	assert.Contains(t, buf.String(), "|___/|_|")
}

func TestNewRenderer(t *testing.T) {
	out, err := NewRenderer(80)("# Title\n\nbody")
	assert.NoError(t, err)
	assert.Contains(t, out, "Title")
}
