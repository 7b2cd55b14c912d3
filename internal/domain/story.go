package domain

// Character is a member of the project's cast. Only Name is required.
type Character struct {
	ID            string `json:"id"`
	Name          string `json:"name" validate:"notblank"`
	Personality   string `json:"personality"`
	Appearance    string `json:"appearance"`
	Background    string `json:"background"`
	Skills        string `json:"skills"`
	Speech        string `json:"speech"`
	Relationships string `json:"relationships"`
	Goals         string `json:"goals"`
}

// Scene is one unit of narrative. Overview and Summary are the same field
// under two names; documents in the wild carry either.
type Scene struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Overview     string     `json:"overview"`
	Summary      string     `json:"summary,omitempty"`
	Content      string     `json:"content"`
	CharacterIDs []string   `json:"character_ids,omitempty"`
	CreatedAt    Timestamp  `json:"created_at"`
	UpdatedAt    *Timestamp `json:"updated_at,omitempty"`
}

// Synopsis returns the overview, falling back to the legacy summary field.
func (s Scene) Synopsis() string {
	return CoalesceStr(s.Overview, s.Summary)
}

// Clone copies the scene including its slice and pointer fields.
func (s Scene) Clone() Scene {
	out := s
	if s.CharacterIDs != nil {
		out.CharacterIDs = append([]string{}, s.CharacterIDs...)
	}
	if s.UpdatedAt != nil {
		ts := *s.UpdatedAt
		out.UpdatedAt = &ts
	}
	return out
}

// WorldSettings describes the setting. The zero value means "unset" and is
// persisted as an empty object.
type WorldSettings struct {
	Name         string `json:"name,omitempty"`
	Era          string `json:"era,omitempty"`
	Overview     string `json:"overview,omitempty"`
	Geography    string `json:"geography,omitempty"`
	Society      string `json:"society,omitempty"`
	SpecialRules string `json:"special_rules,omitempty"`
	Culture      string `json:"culture,omitempty"`
	History      string `json:"history,omitempty"`
}

// IsZero reports whether no field is set.
func (w WorldSettings) IsZero() bool {
	return w == WorldSettings{}
}

// Style controls the prose the generator produces. Values are free-form.
type Style struct {
	Perspective      string `json:"perspective"`
	Tense            string `json:"tense"`
	Tone             string `json:"tone"`
	DescriptionLevel string `json:"description_level"`
	DialogueStyle    string `json:"dialogue_style"`
}

// DefaultStyle is the style of a freshly created project.
func DefaultStyle() Style {
	return Style{
		Perspective:      "third person",
		Tense:            "past",
		Tone:             "neutral",
		DescriptionLevel: "medium",
		DialogueStyle:    "neutral",
	}
}

// WithDefaults fills empty fields from DefaultStyle.
func (s Style) WithDefaults() Style {
	d := DefaultStyle()
	return Style{
		Perspective:      CoalesceStr(s.Perspective, d.Perspective),
		Tense:            CoalesceStr(s.Tense, d.Tense),
		Tone:             CoalesceStr(s.Tone, d.Tone),
		DescriptionLevel: CoalesceStr(s.DescriptionLevel, d.DescriptionLevel),
		DialogueStyle:    CoalesceStr(s.DialogueStyle, d.DialogueStyle),
	}
}

// Template is a named, reusable Style preset.
type Template struct {
	Name  string `json:"name" validate:"notblank"`
	Style Style  `json:"style"`
}
