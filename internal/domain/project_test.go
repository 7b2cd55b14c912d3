package domain

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProject_Defaults(t *testing.T) {
	now := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	p := NewProject("Demo", now)

	assert.Equal(t, "Demo", p.Name)
	assert.Empty(t, p.Characters)
	assert.Empty(t, p.Scenes)
	assert.True(t, p.WorldSettings.IsZero())
	assert.Equal(t, DefaultStyle(), p.WritingStyle)
	assert.Equal(t, now, p.CreatedAt.Time)
	assert.Equal(t, p.CreatedAt, p.UpdatedAt)
}

func TestNewProject_SerializesEmptyCollections(t *testing.T) {
	p := NewProject("Demo", time.Now())
	data, err := json.Marshal(p)
	require.NoError(t, err)

	var top map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &top))
	assert.JSONEq(t, `[]`, string(top["characters"]))
	assert.JSONEq(t, `[]`, string(top["scenes"]))
	assert.JSONEq(t, `{}`, string(top["world_settings"]))
	assert.NoError(t, ValidateDocument(data))
}

func TestProject_CloneIsIndependent(t *testing.T) {
	p := NewProject("Demo", time.Now())
	p.Characters = append(p.Characters, Character{ID: "c1", Name: "Aria"})
	p.Scenes = append(p.Scenes, Scene{ID: "s1", Title: "Ch1", CharacterIDs: []string{"c1"}})

	c := p.Clone()
	c.Characters[0].Name = "Changed"
	c.Scenes[0].CharacterIDs[0] = "other"

	assert.Equal(t, "Aria", p.Characters[0].Name)
	assert.Equal(t, "c1", p.Scenes[0].CharacterIDs[0])
}

func TestProject_Lookup(t *testing.T) {
	p := NewProject("Demo", time.Now())
	p.Characters = []Character{{ID: "a", Name: "A"}, {ID: "b", Name: "B"}, {ID: "c", Name: "C"}}
	p.Scenes = []Scene{{ID: "s1"}, {ID: "s2"}}

	assert.Equal(t, 1, p.CharacterIndex("b"))
	assert.Equal(t, -1, p.CharacterIndex("zzz"))
	assert.Equal(t, 1, p.SceneIndex("s2"))
	assert.Equal(t, -1, p.SceneIndex("nope"))

	picked := p.CharactersByID([]string{"c", "a"})
	require.Len(t, picked, 2)
	assert.Equal(t, "A", picked[0].Name, "project order wins over request order")
	assert.Len(t, p.CharactersByID(nil), 3)
}

func TestScene_Synopsis(t *testing.T) {
	assert.Equal(t, "ov", Scene{Overview: "ov", Summary: "sum"}.Synopsis())
	assert.Equal(t, "sum", Scene{Summary: "sum"}.Synopsis())
}

func TestStyle_WithDefaults(t *testing.T) {
	s := Style{Tone: "dark"}.WithDefaults()
	assert.Equal(t, "dark", s.Tone)
	assert.Equal(t, "third person", s.Perspective)
	assert.Equal(t, "medium", s.DescriptionLevel)
}

func TestValidate_CharacterNameRequired(t *testing.T) {
	assert.NoError(t, Validate(Character{Name: "Aria"}))

	for _, name := range []string{"", "   "} {
		err := Validate(Character{Name: name})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrValidation))
		assert.Contains(t, err.Error(), "name")
	}
}

func TestValidateDocument(t *testing.T) {
	valid := `{"name":"x","characters":[],"world_settings":{},"scenes":[],"writing_style":{}}`
	require.NoError(t, ValidateDocument([]byte(valid)))

	cases := map[string]string{
		"not an object":        `[1,2]`,
		"null":                 `null`,
		"missing name":         `{"characters":[],"world_settings":{},"scenes":[],"writing_style":{}}`,
		"missing characters":   `{"name":"x","world_settings":{},"scenes":[],"writing_style":{}}`,
		"missing world":        `{"name":"x","characters":[],"scenes":[],"writing_style":{}}`,
		"missing scenes":       `{"name":"x","characters":[],"world_settings":{},"writing_style":{}}`,
		"missing style":        `{"name":"x","characters":[],"world_settings":{},"scenes":[]}`,
		"characters object":    `{"name":"x","characters":{},"world_settings":{},"scenes":[],"writing_style":{}}`,
		"world array":          `{"name":"x","characters":[],"world_settings":[],"scenes":[],"writing_style":{}}`,
		"scenes string":        `{"name":"x","characters":[],"world_settings":{},"scenes":"s","writing_style":{}}`,
		"style null":           `{"name":"x","characters":[],"world_settings":{},"scenes":[],"writing_style":null}`,
		"name number":          `{"name":3,"characters":[],"world_settings":{},"scenes":[],"writing_style":{}}`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			err := ValidateDocument([]byte(doc))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidFormat))
		})
	}
}
