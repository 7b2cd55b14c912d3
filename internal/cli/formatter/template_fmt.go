package formatter

import (
	"fmt"

	"github.com/96-neko-96/ploterAI/internal/domain"
)

// FormatTemplateList renders the style presets with a numeric selector.
func FormatTemplateList(templates []domain.Template) string {
	headers := []string{"#", "NAME", "PERSPECTIVE", "TONE", "DIALOGUE"}
	rows := make([][]string, 0, len(templates))
	for i, t := range templates {
		rows = append(rows, []string{
			Dim(fmt.Sprint(i + 1)),
			Bold(t.Name),
			t.Style.Perspective,
			StylePurple.Render(t.Style.Tone),
			Dim(t.Style.DialogueStyle),
		})
	}
	return RenderBox("Templates", RenderTable(headers, rows))
}

// FormatTemplateShow renders one preset.
func FormatTemplateShow(t domain.Template) string {
	return FormatStyle("Template: "+t.Name, t.Style)
}
