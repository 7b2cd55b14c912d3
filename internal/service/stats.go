package service

import (
	"strings"
	"unicode/utf8"

	"github.com/96-neko-96/ploterAI/internal/domain"
)

// SceneLength is the size of one scene's content.
type SceneLength struct {
	ID    string
	Title string
	Chars int
	Words int
}

// ProjectStats summarises a project for display.
type ProjectStats struct {
	Name           string
	CharacterCount int
	CharacterNames []string
	WorldName      string
	WorldEra       string
	SceneCount     int
	TotalChars     int
	TotalWords     int
	AvgChars       int
	Scenes         []SceneLength
	Style          domain.Style
	CreatedAt      domain.Timestamp
	UpdatedAt      domain.Timestamp
}

// ComputeStats measures content length in runes; words are
// whitespace-separated runs.
func ComputeStats(p *domain.Project) ProjectStats {
	if p == nil {
		return ProjectStats{Name: domain.UntitledProject, Style: domain.DefaultStyle()}
	}
	st := ProjectStats{
		Name:           p.Name,
		CharacterCount: len(p.Characters),
		WorldName:      p.WorldSettings.Name,
		WorldEra:       p.WorldSettings.Era,
		SceneCount:     len(p.Scenes),
		Style:          p.WritingStyle,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
	for _, c := range p.Characters {
		st.CharacterNames = append(st.CharacterNames, c.Name)
	}
	for _, sc := range p.Scenes {
		l := SceneLength{
			ID:    sc.ID,
			Title: sc.Title,
			Chars: utf8.RuneCountInString(sc.Content),
			Words: len(strings.Fields(sc.Content)),
		}
		st.TotalChars += l.Chars
		st.TotalWords += l.Words
		st.Scenes = append(st.Scenes, l)
	}
	if st.SceneCount > 0 {
		st.AvgChars = st.TotalChars / st.SceneCount
	}
	return st
}
