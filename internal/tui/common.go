package tui

import "github.com/charmbracelet/lipgloss"

// Color palette matching the fatih/color usage in the CLI commands.
var (
	// ColorGreen for success indicators and "available" badges
	ColorGreen = lipgloss.AdaptiveColor{Light: "#00AF00", Dark: "#00D700"}

	// ColorCyan for keywords and metadata
	ColorCyan = lipgloss.AdaptiveColor{Light: "#00AFAF", Dark: "#00D7D7"}

	// ColorWhite for primary text
	ColorWhite = lipgloss.AdaptiveColor{Light: "#262626", Dark: "#FFFFFF"}

	// ColorGray for secondary text and help
	ColorGray = lipgloss.AdaptiveColor{Light: "#767676", Dark: "#808080"}

	// ColorYellow for the selected row and highlights
	ColorYellow = lipgloss.AdaptiveColor{Light: "#D7AF00", Dark: "#FFD700"}

	// ColorRed for errors
	ColorRed = lipgloss.AdaptiveColor{Light: "#D70000", Dark: "#FF5F5F"}
)

// Reusable styles
var (
	// StyleNormal is the base style for regular text
	StyleNormal = lipgloss.NewStyle().Foreground(ColorWhite)

	// StyleHighlight is for the selected result row
	StyleHighlight = lipgloss.NewStyle().
			Foreground(ColorYellow).
			Bold(true)

	// StyleKeyword is for book keywords
	StyleKeyword = lipgloss.NewStyle().Foreground(ColorCyan)

	// StyleAvailable is for the availability badge
	StyleAvailable = lipgloss.NewStyle().Foreground(ColorGreen)

	// StyleHelp is for help text and hints
	StyleHelp = lipgloss.NewStyle().Foreground(ColorGray)

	// StyleHeader is for section headers
	StyleHeader = lipgloss.NewStyle().
			Foreground(ColorWhite).
			Bold(true)

	// StyleError is for inline failure messages
	StyleError = lipgloss.NewStyle().Foreground(ColorRed)

	// StylePageActive marks the current page number in the pagination bar
	StylePageActive = lipgloss.NewStyle().
			Foreground(ColorYellow).
			Bold(true)
)
