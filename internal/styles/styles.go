package styles

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	stderr = termenv.NewOutput(os.Stderr)

	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)

	ERROR = func(s string) string {
		return stderr.String(s).
			Foreground(stderr.Color("9")).
			String()
	}
	SUCCESS = func(s string) string {
		return stderr.String(s).
			Foreground(stderr.Color("10")).
			String()
	}
	// HINT styles secondary text with dimmed appearance (e.g. output paths)
	HINT = func(s string) string {
		return stderr.String(s).
			Foreground(stderr.Color("244")).
			String()
	}
	// HEADER styles section titles in usage and summary output
	HEADER = func(s string) string {
		return headerStyle.Render(s)
	}
)
