package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary = lipgloss.AdaptiveColor{Light: "#1B5E20", Dark: "#81C784"}
	colorAccent  = lipgloss.AdaptiveColor{Light: "#F25D94", Dark: "#F25D94"}
	colorDim     = lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#626262"}
	colorGreen   = lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#25D366"}
	colorStatus  = lipgloss.AdaptiveColor{Light: "#E8E8E8", Dark: "#16213E"}

	itemTitleStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	itemSelectedStyle = lipgloss.NewStyle().
				Foreground(colorAccent).
				Bold(true)

	itemSourceStyle = lipgloss.NewStyle().
			Foreground(colorGreen)

	itemTimeStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	tagStyle = lipgloss.NewStyle().
			Foreground(colorGreen).
			Italic(true)

	messageStyle = lipgloss.NewStyle().
			Foreground(colorDim).
			Padding(1, 2)

	failureStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5F56")).
			Padding(1, 2)

	briefingTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorPrimary)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorGreen)

	spinnerStyle = lipgloss.NewStyle().
			Foreground(colorAccent)

	statusBarStyle = lipgloss.NewStyle().
			Background(colorStatus).
			Foreground(colorDim)
)
