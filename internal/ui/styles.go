package ui

import "github.com/charmbracelet/lipgloss"

// Color palette.
var (
	PrimaryColor   = lipgloss.Color("205") // Pink
	SecondaryColor = lipgloss.Color("241") // Gray
	SuccessColor   = lipgloss.Color("82")  // Green
	ErrorColor     = lipgloss.Color("196") // Red
	MutedColor     = lipgloss.Color("245") // Dimmed text
)

// Text styles.
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			MarginBottom(1)

	StatusStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true)

	HelpStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor).
			MarginTop(1)

	MutedStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	DetailLabelStyle = lipgloss.NewStyle().
				Foreground(SecondaryColor).
				Bold(true)
)

// SpinnerStyle returns the style for the spinner.
func SpinnerStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(PrimaryColor)
}

// extensionBadge is shared by all extension badges.
var extensionBadge = lipgloss.NewStyle().
	Foreground(lipgloss.Color("0")).
	Background(SuccessColor).
	Padding(0, 1)

// ExtensionBadge returns a styled badge for the given extension.
func ExtensionBadge(ext string) string {
	if ext == "" {
		return extensionBadge.Render("none")
	}
	return extensionBadge.Render(ext)
}
