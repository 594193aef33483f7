// Package repl implements the interactive submit loop TUI. Each entered line
// is sent to the run endpoint as an independent one-shot submission.
package repl

import "github.com/charmbracelet/lipgloss"

// Theme centralizes all styling for the repl TUI.
type Theme struct {
	Title  lipgloss.Style
	Prompt lipgloss.Style
	Code   lipgloss.Style
	Output lipgloss.Style
	Error  lipgloss.Style
	Dim    lipgloss.Style
}

func NewDefaultTheme() Theme {
	purple := lipgloss.Color("#874BFD")

	return Theme{
		Title:  lipgloss.NewStyle().Foreground(purple).Bold(true),
		Prompt: lipgloss.NewStyle().Foreground(purple),
		Code:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")),
		Output: lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00")),
		Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000")),
		Dim:    lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")),
	}
}
