package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the typeguard banner to w.
func PrintBanner(w io.Writer, profile termenv.Profile) {
	lines := []struct {
		text  string
		color string
	}{
		{" _                                              _", "#818cf8"},
		{"| |_ _   _ _ __   ___  __ _ _   _  __ _ _ __ __| |", "#a78bfa"},
		{"| __| | | | '_ \\ / _ \\/ _` | | | |/ _` | '__/ _` |", "#c084fc"},
		{"| |_| |_| | |_) |  __/ (_| | |_| | (_| | | | (_| |", "#e879f9"},
		{" \\__|\\__, | .__/ \\___|\\__, |\\__,_|\\__,_|_|  \\__,_|", "#f472b6"},
		{"     |___/|_|         |___/", "#fb7185"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, profile.String(l.text).Foreground(profile.Color(l.color)))
	}
	fmt.Fprintln(w)
}
