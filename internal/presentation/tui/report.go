package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"

	"github.com/aretw0/typeguard/pkg/validate"
)

// kindColors maps failure kinds to ANSI colors.
var kindColors = map[validate.ErrorKind]string{
	validate.ErrRequiredMissing: "#f59e0b",
	validate.ErrInvalidType:     "#ef4444",
	validate.ErrCoercionFailure: "#d946ef",
}

// PrintIssues writes one line per issue to w, colored for profile.
func PrintIssues(w io.Writer, profile termenv.Profile, issues []validate.Issue) {
	header := fmt.Sprintf("✗ %d validation error", len(issues))
	if len(issues) != 1 {
		header += "s"
	}
	fmt.Fprintln(w, profile.String(header).Foreground(profile.Color("#ef4444")).Bold())

	width := 0
	for _, is := range issues {
		if n := len(is.Kind.String()); n > width {
			width = n
		}
	}
	for _, is := range issues {
		kind := is.Kind.String()
		label := profile.String(kind).Foreground(profile.Color(kindColors[is.Kind]))
		pad := strings.Repeat(" ", width-len(kind))
		fmt.Fprintf(w, "  %s%s  %s\n", label, pad, is.Message)
	}
}

// PrintSuccess writes the success line to w.
func PrintSuccess(w io.Writer, profile termenv.Profile, msg string) {
	fmt.Fprintln(w, profile.String("✓ "+msg).Foreground(profile.Color("#22c55e")))
}
