package formatter

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/96-neko-96/ploterAI/internal/domain"
)

const (
	characterLabelWidth = 13
	worldLabelWidth     = 13
	styleLabelWidth     = 11
)

// FormatProjectInfo renders the header card for the open project.
func FormatProjectInfo(p *domain.Project, path string, now time.Time) string {
	var b strings.Builder
	b.WriteString(StyleBold.Render(domain.CoalesceStr(p.Name, domain.UntitledProject)) + "\n\n")
	b.WriteString(Field("path", 10, path))
	b.WriteString(Field("characters", 10, fmt.Sprint(len(p.Characters))))
	b.WriteString(Field("scenes", 10, fmt.Sprint(len(p.Scenes))))
	b.WriteString(Field("world", 10, p.WorldSettings.Name))
	b.WriteString(Field("created", 10, HumanTimestamp(p.CreatedAt.Time, now)))
	b.WriteString(Field("updated", 10, HumanTimestamp(p.UpdatedAt.Time, now)))
	return RenderBox("", b.String())
}

// FormatCharacterList renders the cast as a table.
func FormatCharacterList(chars []domain.Character) string {
	headers := []string{"ID", "NAME", "PERSONALITY", "GOALS"}
	rows := make([][]string, 0, len(chars))
	for _, c := range chars {
		rows = append(rows, []string{
			TruncID(c.ID),
			Bold(c.Name),
			Excerpt(c.Personality, 32),
			Dim(Excerpt(c.Goals, 32)),
		})
	}
	return RenderBox("Characters", RenderTable(headers, rows))
}

// FormatCharacter renders one character as a detail card.
func FormatCharacter(c domain.Character) string {
	var b strings.Builder
	b.WriteString(StyleBold.Render(c.Name) + "  " + TruncID(c.ID) + "\n\n")
	b.WriteString(Field("personality", characterLabelWidth, c.Personality))
	b.WriteString(Field("appearance", characterLabelWidth, c.Appearance))
	b.WriteString(Field("background", characterLabelWidth, c.Background))
	b.WriteString(Field("skills", characterLabelWidth, c.Skills))
	b.WriteString(Field("speech", characterLabelWidth, c.Speech))
	b.WriteString(Field("relationships", characterLabelWidth, c.Relationships))
	b.WriteString(Field("goals", characterLabelWidth, c.Goals))
	return RenderBox("", b.String())
}

// FormatSceneList renders the scenes in narrative order.
func FormatSceneList(scenes []domain.Scene) string {
	headers := []string{"#", "ID", "TITLE", "OVERVIEW", "CHARS"}
	rows := make([][]string, 0, len(scenes))
	for i, sc := range scenes {
		rows = append(rows, []string{
			Dim(fmt.Sprint(i + 1)),
			TruncID(sc.ID),
			Bold(sc.Title),
			Excerpt(sc.Synopsis(), 40),
			FormatCount(utf8.RuneCountInString(sc.Content)),
		})
	}
	return RenderBox("Scenes", RenderTable(headers, rows))
}

// FormatScene renders a scene with its cast names and full content.
func FormatScene(sc domain.Scene, cast []domain.Character, now time.Time) string {
	var b strings.Builder
	b.WriteString(StyleBold.Render(domain.CoalesceStr(sc.Title, "Untitled")) + "  " + TruncID(sc.ID) + "\n\n")

	names := make([]string, 0, len(cast))
	for _, c := range cast {
		names = append(names, c.Name)
	}
	b.WriteString(Field("overview", 10, sc.Synopsis()))
	b.WriteString(Field("cast", 10, strings.Join(names, ", ")))
	b.WriteString(Field("created", 10, HumanTimestamp(sc.CreatedAt.Time, now)))
	if sc.UpdatedAt != nil {
		b.WriteString(Field("updated", 10, HumanTimestamp(sc.UpdatedAt.Time, now)))
	}

	b.WriteString("\n" + Header("Content") + "\n")
	if strings.TrimSpace(sc.Content) == "" {
		b.WriteString(Dim("(empty)") + "\n")
	} else {
		b.WriteString(sc.Content + "\n")
	}
	return RenderBox("", b.String())
}

// FormatWorld renders the world settings.
func FormatWorld(w domain.WorldSettings) string {
	if w.IsZero() {
		return Dim("No world settings.")
	}
	var b strings.Builder
	b.WriteString(Field("name", worldLabelWidth, w.Name))
	b.WriteString(Field("era", worldLabelWidth, w.Era))
	b.WriteString(Field("overview", worldLabelWidth, w.Overview))
	b.WriteString(Field("geography", worldLabelWidth, w.Geography))
	b.WriteString(Field("society", worldLabelWidth, w.Society))
	b.WriteString(Field("special rules", worldLabelWidth, w.SpecialRules))
	b.WriteString(Field("culture", worldLabelWidth, w.Culture))
	b.WriteString(Field("history", worldLabelWidth, w.History))
	return RenderBox("World", b.String())
}

// FormatStyle renders a writing style.
func FormatStyle(title string, s domain.Style) string {
	var b strings.Builder
	b.WriteString(Field("perspective", styleLabelWidth, s.Perspective))
	b.WriteString(Field("tense", styleLabelWidth, s.Tense))
	b.WriteString(Field("tone", styleLabelWidth, s.Tone))
	b.WriteString(Field("description", styleLabelWidth, s.DescriptionLevel))
	b.WriteString(Field("dialogue", styleLabelWidth, s.DialogueStyle))
	return RenderBox(title, b.String())
}
