package domain

import "time"

// UntitledProject is the display name used when no project is open.
const UntitledProject = "Untitled"

// Project is one writing project: its cast, its world, its scenes in
// narrative order and the prose style used for generation.
type Project struct {
	Name          string        `json:"name"`
	Characters    []Character   `json:"characters"`
	WorldSettings WorldSettings `json:"world_settings"`
	Scenes        []Scene       `json:"scenes"`
	WritingStyle  Style         `json:"writing_style"`
	CreatedAt     Timestamp     `json:"created_at"`
	UpdatedAt     Timestamp     `json:"updated_at"`
}

// NewProject returns an empty project with the default style, stamped at now.
func NewProject(name string, now time.Time) *Project {
	ts := NewTimestamp(now)
	return &Project{
		Name:         name,
		Characters:   []Character{},
		Scenes:       []Scene{},
		WritingStyle: DefaultStyle(),
		CreatedAt:    ts,
		UpdatedAt:    ts,
	}
}

// Clone returns a deep copy so callers cannot mutate the active document.
func (p *Project) Clone() *Project {
	if p == nil {
		return nil
	}
	out := *p
	out.Characters = append([]Character{}, p.Characters...)
	out.Scenes = make([]Scene, len(p.Scenes))
	for i, s := range p.Scenes {
		out.Scenes[i] = s.Clone()
	}
	return &out
}

// CharacterIndex returns the position of the character with id, or -1.
func (p *Project) CharacterIndex(id string) int {
	for i, c := range p.Characters {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// SceneIndex returns the position of the scene with id, or -1.
func (p *Project) SceneIndex(id string) int {
	for i, s := range p.Scenes {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// CharactersByID returns the characters whose ids appear in ids, in project
// order. An empty ids slice selects every character.
func (p *Project) CharactersByID(ids []string) []Character {
	if len(ids) == 0 {
		return append([]Character{}, p.Characters...)
	}
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	var out []Character
	for _, c := range p.Characters {
		if want[c.ID] {
			out = append(out, c)
		}
	}
	return out
}
