package service

import (
	"strings"

	"github.com/96-neko-96/ploterAI/internal/domain"
)

// SearchScope selects which record kinds a search covers.
type SearchScope string

const (
	ScopeAll        SearchScope = "all"
	ScopeCharacters SearchScope = "characters"
	ScopeScenes     SearchScope = "scenes"
)

// SearchResult groups matches by record kind.
type SearchResult struct {
	Keyword    string
	Characters []domain.Character
	Scenes     []domain.Scene
}

// Total returns the number of matched records.
func (r SearchResult) Total() int {
	return len(r.Characters) + len(r.Scenes)
}

// Search matches keyword against the project's characters and scenes.
func Search(p *domain.Project, keyword string, scope SearchScope) SearchResult {
	res := SearchResult{Keyword: keyword}
	if p == nil {
		return res
	}
	if scope == "" || scope == ScopeAll || scope == ScopeCharacters {
		res.Characters = SearchCharacters(p.Characters, keyword)
	}
	if scope == "" || scope == ScopeAll || scope == ScopeScenes {
		res.Scenes = SearchScenes(p.Scenes, keyword)
	}
	return res
}

// SearchCharacters returns the characters whose descriptive text contains
// keyword, ignoring case. An empty keyword matches everything.
func SearchCharacters(chars []domain.Character, keyword string) []domain.Character {
	needle := normalizeKeyword(keyword)
	out := []domain.Character{}
	for _, c := range chars {
		text := strings.Join([]string{
			c.Name, c.Personality, c.Appearance, c.Background,
			c.Skills, c.Speech, c.Relationships, c.Goals,
		}, " ")
		if containsFold(text, needle) {
			out = append(out, c)
		}
	}
	return out
}

// SearchScenes returns the scenes whose title, synopsis or content contains
// keyword, ignoring case. An empty keyword matches everything.
func SearchScenes(scenes []domain.Scene, keyword string) []domain.Scene {
	needle := normalizeKeyword(keyword)
	out := []domain.Scene{}
	for _, sc := range scenes {
		text := strings.Join([]string{sc.Title, sc.Overview, sc.Summary, sc.Content}, " ")
		if containsFold(text, needle) {
			out = append(out, sc.Clone())
		}
	}
	return out
}

func normalizeKeyword(keyword string) string {
	return strings.ToLower(strings.TrimSpace(keyword))
}

func containsFold(text, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(text), needle)
}
