package cmd

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/npillmayer/mathexpr"
)

var (
	colorError   = lipgloss.Color("#EF4444") // Red
	colorWarning = lipgloss.Color("#F59E0B") // Amber
	colorSuccess = lipgloss.Color("#10B981") // Emerald
	colorMuted   = lipgloss.Color("#6B7280") // Gray
)

var (
	errorStyle   = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(colorWarning).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(colorSuccess)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
)

// printDiagnostics prints diagnostics, one per line, with the severity
// highlighted.
func printDiagnostics(w io.Writer, diags mathexpr.Diagnostics) {
	for _, d := range diags {
		style := errorStyle
		if d.Severity == mathexpr.Warning {
			style = warningStyle
		}
		where := ""
		if d.Index >= 0 {
			where = mutedStyle.Render(fmt.Sprintf("at %d ", d.Index))
		}
		fmt.Fprintf(w, "%s %s%s %s\n", style.Render(d.Severity.String()+":"), where,
			mutedStyle.Render("["+d.Code.String()+"]"), d.Message)
	}
}
