package service

import (
	"testing"
	"time"

	"github.com/96-neko-96/ploterAI/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleProject() *domain.Project {
	p := domain.NewProject("Demo", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	p.Characters = []domain.Character{
		{ID: "c1", Name: "Aria", Skills: "Archery"},
		{ID: "c2", Name: "Bram", Goals: "find the LIGHTHOUSE"},
	}
	p.Scenes = []domain.Scene{
		{ID: "s1", Title: "Arrival", Content: "The ship docks at dawn."},
		{ID: "s2", Title: "Storm", Summary: "lighthouse goes dark", Content: "雨が降る 夜"},
	}
	p.WorldSettings = domain.WorldSettings{Name: "Eld", Era: "bronze"}
	return p
}

func TestSearchCharacters_CaseInsensitive(t *testing.T) {
	p := sampleProject()

	got := SearchCharacters(p.Characters, "archery")
	require.Len(t, got, 1)
	assert.Equal(t, "c1", got[0].ID)

	got = SearchCharacters(p.Characters, "  Lighthouse ")
	require.Len(t, got, 1)
	assert.Equal(t, "c2", got[0].ID)
}

func TestSearchCharacters_EmptyKeywordMatchesAll(t *testing.T) {
	p := sampleProject()
	assert.Len(t, SearchCharacters(p.Characters, ""), 2)
	assert.Empty(t, SearchCharacters(p.Characters, "zeppelin"))
}

func TestSearchScenes_CoversSummaryAndContent(t *testing.T) {
	p := sampleProject()

	got := SearchScenes(p.Scenes, "LIGHTHOUSE")
	require.Len(t, got, 1)
	assert.Equal(t, "s2", got[0].ID)

	got = SearchScenes(p.Scenes, "dawn")
	require.Len(t, got, 1)
	assert.Equal(t, "s1", got[0].ID)

	got = SearchScenes(p.Scenes, "雨")
	require.Len(t, got, 1)
}

func TestSearch_Scope(t *testing.T) {
	p := sampleProject()

	all := Search(p, "lighthouse", ScopeAll)
	assert.Equal(t, 2, all.Total())

	chars := Search(p, "lighthouse", ScopeCharacters)
	assert.Len(t, chars.Characters, 1)
	assert.Empty(t, chars.Scenes)

	scenes := Search(p, "lighthouse", ScopeScenes)
	assert.Empty(t, scenes.Characters)
	assert.Len(t, scenes.Scenes, 1)

	assert.Equal(t, 0, Search(nil, "x", ScopeAll).Total())
}

func TestComputeStats(t *testing.T) {
	st := ComputeStats(sampleProject())

	assert.Equal(t, 2, st.CharacterCount)
	assert.Equal(t, []string{"Aria", "Bram"}, st.CharacterNames)
	assert.Equal(t, "Eld", st.WorldName)
	assert.Equal(t, "bronze", st.WorldEra)
	assert.Equal(t, 2, st.SceneCount)
	require.Len(t, st.Scenes, 2)
	assert.Equal(t, 23, st.Scenes[0].Chars)
	assert.Equal(t, 5, st.Scenes[0].Words)
	assert.Equal(t, 6, st.Scenes[1].Chars)
	assert.Equal(t, 2, st.Scenes[1].Words)
	assert.Equal(t, 29, st.TotalChars)
	assert.Equal(t, 7, st.TotalWords)
	assert.Equal(t, 14, st.AvgChars)
}

func TestComputeStats_EmptyProject(t *testing.T) {
	st := ComputeStats(domain.NewProject("Empty", time.Now()))
	assert.Zero(t, st.SceneCount)
	assert.Zero(t, st.AvgChars)

	none := ComputeStats(nil)
	assert.Equal(t, domain.UntitledProject, none.Name)
}
