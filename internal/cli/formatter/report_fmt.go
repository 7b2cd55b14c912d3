package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/96-neko-96/ploterAI/internal/config"
	"github.com/96-neko-96/ploterAI/internal/domain"
	"github.com/96-neko-96/ploterAI/internal/intelligence"
	"github.com/96-neko-96/ploterAI/internal/service"
)

// FormatSearchResult renders matches grouped by record kind.
func FormatSearchResult(res service.SearchResult) string {
	if res.Total() == 0 {
		return Dim(fmt.Sprintf("No matches for %q.", res.Keyword))
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s %s\n", Bold(fmt.Sprint(res.Total())), Dim(fmt.Sprintf("matches for %q", res.Keyword))))
	if len(res.Characters) > 0 {
		b.WriteString("\n" + Header("Characters") + "\n")
		for _, c := range res.Characters {
			b.WriteString(fmt.Sprintf("  %s  %s  %s\n", TruncID(c.ID), Bold(c.Name), Dim(Excerpt(c.Personality, 48))))
		}
	}
	if len(res.Scenes) > 0 {
		b.WriteString("\n" + Header("Scenes") + "\n")
		for _, sc := range res.Scenes {
			b.WriteString(fmt.Sprintf("  %s  %s  %s\n", TruncID(sc.ID), Bold(sc.Title), Dim(Excerpt(sc.Synopsis(), 48))))
		}
	}
	return RenderBox("Search", b.String())
}

// FormatStats renders project statistics with a per-scene breakdown.
func FormatStats(st service.ProjectStats) string {
	var b strings.Builder
	b.WriteString(StyleBold.Render(st.Name) + "\n\n")
	b.WriteString(Field("characters", 11, fmt.Sprint(st.CharacterCount)))
	if len(st.CharacterNames) > 0 {
		b.WriteString(Field("", 11, strings.Join(st.CharacterNames, ", ")))
	}
	world := st.WorldName
	if st.WorldEra != "" {
		world = strings.TrimSpace(world + " (" + st.WorldEra + ")")
	}
	b.WriteString(Field("world", 11, world))
	b.WriteString(Field("scenes", 11, fmt.Sprint(st.SceneCount)))
	b.WriteString(Field("total chars", 11, FormatCount(st.TotalChars)))
	b.WriteString(Field("total words", 11, FormatCount(st.TotalWords)))
	b.WriteString(Field("avg chars", 11, FormatCount(st.AvgChars)))
	b.WriteString(Field("style", 11, fmt.Sprintf("%s, %s, %s", st.Style.Perspective, st.Style.Tense, st.Style.Tone)))

	if len(st.Scenes) > 0 {
		rows := make([][]string, 0, len(st.Scenes))
		for i, sc := range st.Scenes {
			rows = append(rows, []string{
				Dim(fmt.Sprint(i + 1)),
				Bold(domain.CoalesceStr(sc.Title, "Untitled")),
				FormatCount(sc.Chars),
				FormatCount(sc.Words),
			})
		}
		b.WriteString("\n" + RenderTable([]string{"#", "SCENE", "CHARS", "WORDS"}, rows))
	}
	return RenderBox("Stats", b.String())
}

// FormatHistory renders recorded generation runs, newest first.
func FormatHistory(runs []*domain.GenerationRun, now time.Time) string {
	if len(runs) == 0 {
		return Dim("No generation history.")
	}
	headers := []string{"WHEN", "STAGE", "SCENE", "MODEL", "IN", "OUT", "LATENCY"}
	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		rows = append(rows, []string{
			Dim(HumanTimestamp(r.CreatedAt, now)),
			StageBadge(r.Stage),
			TruncID(r.SceneID),
			strings.TrimPrefix(r.Provider+"/"+r.Model, "/"),
			FormatCount(r.InputChars),
			FormatCount(r.OutputChars),
			FormatLatency(r.LatencyMs),
		})
	}
	return RenderBox("History", RenderTable(headers, rows))
}

// FormatDraft renders generated prose with a one-line footer.
func FormatDraft(stage domain.Stage, sceneTitle string, d *intelligence.StoryDraft) string {
	var b strings.Builder
	b.WriteString(StageBadge(stage) + "  " + Bold(sceneTitle) + "\n\n")
	b.WriteString(d.Text + "\n\n")
	b.WriteString(Dim(fmt.Sprintf("%s · %s · %s chars", d.Model, FormatLatency(d.LatencyMs), FormatCount(len([]rune(d.Text))))))
	return b.String()
}

// FormatConfig renders the settings document. The API key is never shown.
func FormatConfig(st config.Settings, hasKey bool, paths config.Paths) string {
	key := StyleRed.Render("not set")
	if hasKey {
		key = StyleGreen.Render("stored (encrypted)")
	}
	var b strings.Builder
	b.WriteString(Header("API") + "\n")
	b.WriteString(Field("provider", 12, st.API.Provider))
	b.WriteString(Field("endpoint", 12, st.API.Endpoint))
	b.WriteString(Field("model", 12, st.API.Model))
	b.WriteString(Field("temperature", 12, fmt.Sprintf("%.2f", st.API.Temperature)))
	b.WriteString(Field("top p", 12, fmt.Sprintf("%.2f", st.API.TopP)))
	b.WriteString(Field("max tokens", 12, fmt.Sprint(st.API.MaxTokens)))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("API KEY     "), key))

	b.WriteString("\n" + Header("UI") + "\n")
	b.WriteString(Field("theme mode", 12, st.UI.ThemeMode))
	b.WriteString(Field("color theme", 12, st.UI.ColorTheme))

	last := ""
	if st.LastProject != nil {
		last = *st.LastProject
	}
	b.WriteString("\n" + Header("Paths") + "\n")
	b.WriteString(Field("settings", 12, paths.Settings))
	b.WriteString(Field("templates", 12, paths.Templates))
	b.WriteString(Field("history", 12, paths.DB))
	b.WriteString(Field("log", 12, paths.LogFile))
	b.WriteString(Field("last project", 12, last))
	return RenderBox("Config", b.String())
}
