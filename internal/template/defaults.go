package template

import "github.com/96-neko-96/ploterAI/internal/domain"

// DefaultTemplates returns the built-in presets.
func DefaultTemplates() []domain.Template {
	return []domain.Template{
		{Name: "Light Novel", Style: domain.Style{
			Perspective: "first person", Tense: "past", Tone: "standard",
			DescriptionLevel: "medium", DialogueStyle: "casual",
		}},
		{Name: "High Fantasy", Style: domain.Style{
			Perspective: "third person", Tense: "past", Tone: "serious",
			DescriptionLevel: "detailed", DialogueStyle: "formal",
		}},
		{Name: "Mystery & Suspense", Style: domain.Style{
			Perspective: "third person", Tense: "past", Tone: "dark",
			DescriptionLevel: "detailed", DialogueStyle: "standard",
		}},
		{Name: "Comedy", Style: domain.Style{
			Perspective: "first person", Tense: "present", Tone: "comedic",
			DescriptionLevel: "concise", DialogueStyle: "casual",
		}},
		{Name: "Simple", Style: domain.Style{
			Perspective: "third person", Tense: "past", Tone: "standard",
			DescriptionLevel: "concise", DialogueStyle: "standard",
		}},
	}
}
