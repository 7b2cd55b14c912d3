package formatter

import (
	"fmt"
	"strings"

	"github.com/96-neko-96/ploterAI/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// StageStyle returns the style a drafting stage is shown in.
func StageStyle(stage domain.Stage) lipgloss.Style {
	switch stage {
	case domain.StagePlot:
		return StyleBlue
	case domain.StageMedium:
		return StyleYellow
	case domain.StageLong:
		return StyleGreen
	default:
		return StyleDim
	}
}

// StageBadge renders a stage as a colored label such as "● MEDIUM".
func StageBadge(stage domain.Stage) string {
	label := strings.ToUpper(string(stage))
	if label == "" {
		label = "UNKNOWN"
	}
	return StageStyle(stage).Render("● " + label)
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}

// Success renders a confirmation line.
func Success(text string) string {
	return StyleGreen.Render("✔ ") + text
}

// Warning renders a warning line.
func Warning(text string) string {
	return StyleYellow.Render("! " + text)
}
