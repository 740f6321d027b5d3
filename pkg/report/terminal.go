package report

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// TerminalName selects lipgloss rendering instead of delimiters.
const TerminalName = "terminal"

// DefaultTerminalStyle highlights matches in bold red.
func DefaultTerminalStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("196"))
}

// Terminal returns a wrap function for AnnotateFunc that renders each match
// with style. Spans containing newlines are rendered line by line so
// lipgloss does not pad them into a block.
func Terminal(style lipgloss.Style) func(string) string {
	style = style.TabWidth(lipgloss.NoTabConversion)
	return func(s string) string {
		lines := strings.Split(s, "\n")
		for i, line := range lines {
			if line != "" {
				lines[i] = style.Render(line)
			}
		}
		return strings.Join(lines, "\n")
	}
}
