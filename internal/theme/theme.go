package theme

import "github.com/charmbracelet/lipgloss"

// Ayu color palette with AdaptiveColor for light/dark terminal support.
var (
	ColorPass   = lipgloss.AdaptiveColor{Light: "#86b300", Dark: "#c2d94c"}
	ColorWarn   = lipgloss.AdaptiveColor{Light: "#f2ae49", Dark: "#ffb454"}
	ColorFail   = lipgloss.AdaptiveColor{Light: "#f07171", Dark: "#f07178"}
	ColorMuted  = lipgloss.AdaptiveColor{Light: "#828c99", Dark: "#6c7680"}
	ColorAccent = lipgloss.AdaptiveColor{Light: "#399ee6", Dark: "#59c2ff"}
	ColorBar    = lipgloss.AdaptiveColor{Light: "#e7e8e9", Dark: "#1f2430"}
)

// Semantic text styles.
var (
	PassStyle   = lipgloss.NewStyle().Foreground(ColorPass)
	WarnStyle   = lipgloss.NewStyle().Foreground(ColorWarn)
	FailStyle   = lipgloss.NewStyle().Foreground(ColorFail)
	MutedStyle  = lipgloss.NewStyle().Foreground(ColorMuted)
	AccentStyle = lipgloss.NewStyle().Foreground(ColorAccent)
)

// Tab bar styles.
var (
	TabActiveStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true).
			Padding(0, 1)

	TabInactiveStyle = lipgloss.NewStyle().
				Foreground(ColorMuted).
				Padding(0, 1)
)

// StatusBarStyle for the bottom status bar.
var StatusBarStyle = lipgloss.NewStyle().
	Background(ColorBar).
	Foreground(ColorMuted).
	Padding(0, 1)

// Scene list styles.
var (
	SceneRowStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1)

	SceneActiveRowStyle = lipgloss.NewStyle().
				Foreground(ColorAccent).
				Bold(true).
				Padding(0, 1)
)

// Editor styles. Judge buttons carry one cell of padding on each side, so a
// judge column is two cells wider than its longest label.
var (
	SelectorStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	JudgeStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1)

	JudgeSelectedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#0f1419")).
				Background(ColorAccent).
				Bold(true).
				Padding(0, 1)

	IconStyle = lipgloss.NewStyle().
			Foreground(ColorWarn).
			PaddingRight(1)

	SlotTextStyle = lipgloss.NewStyle().
			PaddingLeft(1).
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(ColorMuted)

	SlotFocusedTextStyle = SlotTextStyle.
				BorderForeground(ColorAccent)
)

// Dialog styles for rename and delete prompts.
var (
	DialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorAccent).
			Padding(0, 1)

	DialogDangerStyle = DialogStyle.
				BorderForeground(ColorFail)
)

// Pane styles.
var PaneHeaderStyle = lipgloss.NewStyle().
	Foreground(ColorAccent).
	Bold(true)
