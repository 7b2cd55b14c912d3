package cli

import (
	"github.com/96-neko-96/ploterAI/internal/domain"
	"github.com/spf13/pflag"
)

// fieldFlag is a string flag that sets one record field.
type fieldFlag struct {
	name  string
	usage string
}

var characterFlags = []fieldFlag{
	{"name", "Character name"},
	{"personality", "Personality"},
	{"appearance", "Appearance"},
	{"background", "Background"},
	{"skills", "Skills and abilities"},
	{"speech", "Way of speaking"},
	{"relationships", "Relationships"},
	{"goals", "Goals and motivation"},
}

func characterFields(c *domain.Character) map[string]*string {
	return map[string]*string{
		"name":          &c.Name,
		"personality":   &c.Personality,
		"appearance":    &c.Appearance,
		"background":    &c.Background,
		"skills":        &c.Skills,
		"speech":        &c.Speech,
		"relationships": &c.Relationships,
		"goals":         &c.Goals,
	}
}

var sceneFlags = []fieldFlag{
	{"title", "Scene title"},
	{"overview", "What happens in the scene"},
	{"content", "Scene prose"},
}

func sceneFields(sc *domain.Scene) map[string]*string {
	return map[string]*string{
		"title":    &sc.Title,
		"overview": &sc.Overview,
		"content":  &sc.Content,
	}
}

var worldFlags = []fieldFlag{
	{"name", "World name"},
	{"era", "Era"},
	{"overview", "Overview"},
	{"geography", "Geography"},
	{"society", "Society and politics"},
	{"special-rules", "Special rules such as magic or technology"},
	{"culture", "Culture"},
	{"history", "History"},
}

func worldFields(w *domain.WorldSettings) map[string]*string {
	return map[string]*string{
		"name":          &w.Name,
		"era":           &w.Era,
		"overview":      &w.Overview,
		"geography":     &w.Geography,
		"society":       &w.Society,
		"special-rules": &w.SpecialRules,
		"culture":       &w.Culture,
		"history":       &w.History,
	}
}

var styleFlags = []fieldFlag{
	{"perspective", "Narrative perspective, e.g. \"first person\""},
	{"tense", "Tense, e.g. past"},
	{"tone", "Tone, e.g. serious"},
	{"description", "Description level, e.g. detailed"},
	{"dialogue", "Dialogue style, e.g. casual"},
}

func styleFields(s *domain.Style) map[string]*string {
	return map[string]*string{
		"perspective": &s.Perspective,
		"tense":       &s.Tense,
		"tone":        &s.Tone,
		"description": &s.DescriptionLevel,
		"dialogue":    &s.DialogueStyle,
	}
}

func registerFieldFlags(fs *pflag.FlagSet, flags []fieldFlag) {
	for _, f := range flags {
		fs.String(f.name, "", f.usage)
	}
}

// applyChangedFields copies every flag the user set into its field and
// returns how many were set.
func applyChangedFields(fs *pflag.FlagSet, fields map[string]*string) int {
	n := 0
	fs.Visit(func(f *pflag.Flag) {
		if dst, ok := fields[f.Name]; ok {
			*dst = f.Value.String()
			n++
		}
	})
	return n
}
