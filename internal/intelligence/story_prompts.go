package intelligence

import (
	"fmt"
	"strings"

	"github.com/96-neko-96/ploterAI/internal/domain"
)

const storySystemPrompt = `You are a collaborative fiction writer helping an author draft a story scene by scene.
Write in the requested style and respect the cast and the world exactly as described.
Output only the story text. Do not add headings, commentary, or markdown fences.`

const plotInstructions = `Write a plot outline for this scene in roughly 500 to 1000 characters.
Cover the opening of the scene, the main events and turning points,
the relationships and conflicts between the characters,
and how the scene ends or leads into the next one.`

const mediumInstructions = `Expand the plot above into a fuller draft of roughly 2000 to 3000 characters.
Add concrete description of place, time and atmosphere, the characters' feelings and gestures,
natural dialogue that shows each character's voice, and sensory detail.`

const longInstructions = `Expand the draft above into a complete scene of at least 5000 characters.
Deepen the characters' inner lives and memories, let conversations breathe,
handle transitions of time and place carefully, and weave in sub-plots and foreshadowing.
Aim for finished, literary prose.`

const characterDraftSystemPrompt = `You design characters for fiction writers.
Respond with ONLY a JSON object, no prose and no markdown fences, with exactly these string fields:
{
  "name": "full name",
  "personality": "core traits, values and habits",
  "appearance": "height, build, hair, clothing, distinguishing features",
  "background": "upbringing, past events, present situation",
  "skills": "strengths and special abilities",
  "speech": "way of speaking, verbal tics, favourite phrases",
  "relationships": "family, friends, rivals, love interests",
  "goals": "what they want and why"
}
Be specific and vivid in every field.`

const worldDraftSystemPrompt = `You design settings for fiction writers.
Respond with ONLY a JSON object, no prose and no markdown fences, with exactly these string fields:
{
  "name": "name of the world",
  "era": "time period",
  "overview": "summary of the world and what makes it distinct",
  "geography": "terrain, climate, important places",
  "society": "politics, economy, class structure",
  "special_rules": "magic, technology or supernatural rules",
  "culture": "religion, festivals, customs, values",
  "history": "key historical events and legends"
}
Make the setting feel real and internally consistent.`

func buildPlotPrompt(sc StoryContext) string {
	var b strings.Builder
	b.WriteString("## Scene\n")
	fmt.Fprintf(&b, "Title: %s\n", sc.Title)
	fmt.Fprintf(&b, "Overview: %s\n\n", sc.Overview)
	writeStoryContext(&b, sc)
	b.WriteString(plotInstructions)
	return b.String()
}

func buildExpandPrompt(source, heading, instructions string, sc StoryContext) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n%s\n\n", heading, source)
	fmt.Fprintf(&b, "## Scene title\n%s\n\n", sc.Title)
	writeStoryContext(&b, sc)
	b.WriteString(instructions)
	return b.String()
}

func writeStoryContext(b *strings.Builder, sc StoryContext) {
	b.WriteString("## Characters\n")
	b.WriteString(formatCharacters(sc.Characters))
	b.WriteString("\n\n## World\n")
	b.WriteString(formatWorld(sc.World))
	b.WriteString("\n\n## Style\n")
	b.WriteString(formatStyle(sc.Style))
	b.WriteString("\n\n")
}

func formatCharacters(chars []domain.Character) string {
	if len(chars) == 0 {
		return "None"
	}
	parts := make([]string, 0, len(chars))
	for _, c := range chars {
		parts = append(parts, fmt.Sprintf("Name: %s\nPersonality: %s\nAppearance: %s\nSpeech: %s",
			orUnknown(c.Name), orUnknown(c.Personality), orUnknown(c.Appearance), orUnknown(c.Speech)))
	}
	return strings.Join(parts, "\n\n")
}

func formatWorld(w domain.WorldSettings) string {
	if w.IsZero() {
		return "Not specified"
	}
	return fmt.Sprintf("World: %s\nEra: %s\nOverview: %s\nSpecial rules: %s",
		orUnknown(w.Name), orUnknown(w.Era), orUnknown(w.Overview), orUnknown(w.SpecialRules))
}

func formatStyle(s domain.Style) string {
	s = s.WithDefaults()
	return fmt.Sprintf("Perspective: %s\nTense: %s\nTone: %s\nDescription level: %s\nDialogue style: %s",
		s.Perspective, s.Tense, s.Tone, s.DescriptionLevel, s.DialogueStyle)
}

func orUnknown(s string) string {
	return domain.CoalesceStr(strings.TrimSpace(s), "unknown")
}

func buildCharacterPrompt(concept, notes string) string {
	return fmt.Sprintf("Concept: %s\nAdditional notes: %s", concept, domain.CoalesceStr(notes, "none"))
}

func buildWorldPrompt(genre, keywords string) string {
	return fmt.Sprintf("Genre: %s\nKeywords: %s", genre, domain.CoalesceStr(keywords, "none"))
}
