// Package tui provides the interactive terminal UI for morty.
package tui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	ColorPrimary = lipgloss.Color("#66fcf1") // Cyan - titles, active items
	ColorAccent  = lipgloss.Color("#45a29e") // Teal - borders, buttons
	ColorText    = lipgloss.Color("#c5c6c7") // Light text
	ColorMuted   = lipgloss.Color("#4d565f") // Disabled controls, help
	ColorError   = lipgloss.Color("#ff4c4c") // Error messages
	ColorRemove  = lipgloss.Color("#ff5555") // Remove-from-favorites control
	ColorBg      = lipgloss.Color("#0b0c10") // Dark background
	ColorBgAlt   = lipgloss.Color("#1f2833") // Panels, inputs
	ColorRowAlt  = lipgloss.Color("#16232f") // Highlighted row
)

// Title styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Padding(0, 1)

	SubtitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)
)

// Filter bar styles
var (
	SearchBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorAccent).
			Padding(0, 1)

	SearchBoxActiveStyle = SearchBoxStyle.
				BorderForeground(ColorPrimary)

	FilterLabelStyle = lipgloss.NewStyle().
				Foreground(ColorMuted)

	FilterValueStyle = lipgloss.NewStyle().
				Foreground(ColorText).
				Background(ColorBgAlt).
				Padding(0, 1)
)

// Table styles
var (
	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorPrimary).
				BorderStyle(lipgloss.NormalBorder()).
				BorderBottom(true).
				BorderForeground(ColorAccent)

	TableRowStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	TableRowSelectedStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorBg).
				Background(ColorPrimary)

	StarStyle = lipgloss.NewStyle().
			Foreground(ColorAccent)

	StarActiveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)
)

// Pagination styles
var (
	ButtonStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorBg).
			Background(ColorAccent).
			Padding(0, 2)

	ButtonDisabledStyle = lipgloss.NewStyle().
				Foreground(ColorMuted).
				Background(ColorBgAlt).
				Padding(0, 2)

	PageIndicatorStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorText).
				Padding(0, 2)
)

// Favorites panel styles
var (
	FavoriteItemStyle = lipgloss.NewStyle().
				Foreground(ColorText).
				Background(ColorBgAlt).
				Padding(0, 1)

	FavoriteItemActiveStyle = FavoriteItemStyle.
				Bold(true).
				Foreground(ColorPrimary).
				Background(ColorRowAlt)

	RemoveStyle = lipgloss.NewStyle().
			Foreground(ColorRemove)
)

// Modal styles
var (
	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorAccent).
			Background(ColorBgAlt).
			Foreground(ColorText).
			Padding(1, 2)

	ModalCloseStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	ModalNameStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			MarginBottom(1)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true).
			Width(15)

	ValueStyle = lipgloss.NewStyle().
			Foreground(ColorText)
)

// Status styles
var (
	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true).
			Align(lipgloss.Center)

	LoadingStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Italic(true)

	StatusStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)
)

// Content area style
var ContentStyle = lipgloss.NewStyle().
	Padding(1, 2)
