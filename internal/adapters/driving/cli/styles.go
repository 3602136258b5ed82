package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Colour palette for terminal output.
var (
	colourPrimary = lipgloss.Color("#7C3AED") // Purple
	colourMuted   = lipgloss.Color("#6C7086") // Medium gray
	colourSuccess = lipgloss.Color("#A6E3A1") // Green
	colourWarning = lipgloss.Color("#F9E2AF") // Yellow
	colourError   = lipgloss.Color("#F38BA8") // Red
	colourBorder  = lipgloss.Color("#45475A") // Border gray
)

// styles holds the lipgloss styles used for human-readable output.
type styles struct {
	Title   lipgloss.Style
	Label   lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Box     lipgloss.Style
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// newStyles returns coloured styles for a terminal and plain ones otherwise,
// so piped output carries no escape codes.
func newStyles(w io.Writer) *styles {
	if !isTerminal(w) {
		plain := lipgloss.NewStyle()
		return &styles{
			Title:   plain,
			Label:   plain,
			Muted:   plain,
			Success: plain,
			Warning: plain,
			Error:   plain,
			Box:     plain,
		}
	}

	return &styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(colourPrimary),
		Label: lipgloss.NewStyle().
			Bold(true),
		Muted: lipgloss.NewStyle().
			Foreground(colourMuted),
		Success: lipgloss.NewStyle().
			Foreground(colourSuccess),
		Warning: lipgloss.NewStyle().
			Foreground(colourWarning),
		Error: lipgloss.NewStyle().
			Foreground(colourError),
		Box: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(colourBorder).
			Padding(0, 1),
	}
}

// terminalWidth returns the width of w, or fallback if w is not a terminal.
func terminalWidth(w io.Writer, fallback int) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return fallback
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return fallback
	}
	return width
}
