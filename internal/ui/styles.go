package ui

import "github.com/charmbracelet/lipgloss"

// Colors used throughout the TUI. The two speaker colors are the
// conversation classes shown on the session page.
var (
	ColorRed     = lipgloss.Color("#FF0000")
	ColorGreen   = lipgloss.Color("#00CC66")
	ColorBlue    = lipgloss.Color("#3399FF")
	ColorYellow  = lipgloss.Color("#FFD400")
	ColorCyan    = lipgloss.Color("#00FFFF")
	ColorGray    = lipgloss.Color("#666666")
	ColorDimGray = lipgloss.Color("#444444")
	ColorWhite   = lipgloss.Color("#FFFFFF")
)

// Base styles reused by UI components.
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorYellow)

	StatusStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorRed).
			Bold(true)

	ErrorTextStyle = lipgloss.NewStyle().
			Foreground(ColorRed)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorGreen)

	PanelTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorWhite)

	PanelTitleActiveStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorCyan)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(ColorCyan).
			Bold(true)

	DimStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	FooterKeyStyle = lipgloss.NewStyle().
			Foreground(ColorYellow).
			Bold(true)

	FooterDescStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	DividerStyle = lipgloss.NewStyle().
			Foreground(ColorDimGray)

	InputLabelStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	InputActiveStyle = lipgloss.NewStyle().
				Foreground(ColorWhite).
				Bold(true)

	SparklineStyle = lipgloss.NewStyle().
			Foreground(ColorYellow)

	// PrimarySpeakerStyle renders therapist speech.
	PrimarySpeakerStyle = lipgloss.NewStyle().
				Foreground(ColorBlue)

	// SecondarySpeakerStyle renders everyone else.
	SecondarySpeakerStyle = lipgloss.NewStyle().
				Foreground(ColorGreen)
)
