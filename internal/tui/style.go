package tui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	PrimaryColor   = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	SecondaryColor = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#383838"}
	SuccessColor   = lipgloss.Color("42")
	ErrorColor     = lipgloss.AdaptiveColor{Light: "196", Dark: "196"}
	WarningColor   = lipgloss.AdaptiveColor{Light: "214", Dark: "220"}
	MutedColor     = lipgloss.AdaptiveColor{Light: "241", Dark: "241"}
	SeparatorColor = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#383838"}
	BorderColor    = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#444444"}
	TextColor      = lipgloss.Color("252")

	// Text hierarchy used by the detail/confirmation views, distinct from
	// the list-item TextColor above: primary for headings/values, secondary
	// for body copy, muted for de-emphasized annotations.
	TextPrimary   = lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: "#FAFAFA"}
	TextSecondary = lipgloss.AdaptiveColor{Light: "#4A4A4A", Dark: "#C1C6B2"}
	TextMuted     = lipgloss.AdaptiveColor{Light: "#8A8A8A", Dark: "#626262"}
)

// Styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true).
			Padding(0, 0, 1, 0)

	SelectedItemStyle = lipgloss.NewStyle().
				Foreground(PrimaryColor).
				Bold(true).
				PaddingLeft(1)

	NormalItemStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			PaddingLeft(1)

	DescriptionStyle = lipgloss.NewStyle().
				Foreground(MutedColor).
				PaddingLeft(3)

	// DocDescriptionStyle is used for ## documented comments (industry standard)
	DocDescriptionStyle = lipgloss.NewStyle().
				Foreground(SecondaryColor).
				PaddingLeft(3)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ErrorColor).
			Padding(1, 2)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor).
			Bold(true)

	// SectionHeaderStyle is used for "RECENT" and "ALL TARGETS" headers
	SectionHeaderStyle = lipgloss.NewStyle().
				Foreground(MutedColor).
				Bold(true).
				PaddingTop(1).
				PaddingLeft(1)

	// SeparatorStyle is used for the line between sections
	SeparatorStyle = lipgloss.NewStyle().
			Foreground(SeparatorColor).
			PaddingLeft(1)

	// StatusBarStyle is used for the status bars in different views
	StatusBarStyle = lipgloss.NewStyle().
		// Border(lipgloss.RoundedBorder()).
		// BorderForeground(SecondaryColor).
		// Foreground(MutedColor).
		Foreground(lipgloss.AdaptiveColor{Light: "#343433", Dark: "#C1C6B2"}).
		Background(lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#353533"}).
		Padding(0, 1)
)
