package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/96-neko-96/ploterAI/internal/domain"
)

// ref is the part of a character or scene an identifier can match.
type ref struct {
	ID   string
	Name string
}

// resolveRef resolves input against refs, trying in order:
//  1. a 1-based position as shown by the list commands
//  2. an exact id
//  3. a case-insensitive name or title
//  4. a unique id prefix
func resolveRef(kind string, refs []ref, input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("%s id is required", kind)
	}

	if n, err := strconv.Atoi(input); err == nil && n > 0 && n <= len(refs) {
		return refs[n-1].ID, nil
	}
	for _, r := range refs {
		if r.ID == input {
			return r.ID, nil
		}
	}
	for _, r := range refs {
		if r.Name != "" && strings.EqualFold(r.Name, input) {
			return r.ID, nil
		}
	}

	var matches []string
	for _, r := range refs {
		if strings.HasPrefix(r.ID, input) {
			matches = append(matches, r.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%s %q: %w", kind, input, domain.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%s id prefix %q is ambiguous (%d matches)", kind, input, len(matches))
	}
}

func resolveCharacterID(app *App, input string) (string, error) {
	chars := app.Projects.Characters()
	refs := make([]ref, 0, len(chars))
	for _, c := range chars {
		refs = append(refs, ref{ID: c.ID, Name: c.Name})
	}
	return resolveRef("character", refs, input)
}

func resolveSceneID(app *App, input string) (string, error) {
	scenes := app.Projects.Scenes()
	refs := make([]ref, 0, len(scenes))
	for _, sc := range scenes {
		refs = append(refs, ref{ID: sc.ID, Name: sc.Title})
	}
	return resolveRef("scene", refs, input)
}

// resolveCharacterIDs resolves every input, failing on the first miss.
func resolveCharacterIDs(app *App, inputs []string) ([]string, error) {
	ids := make([]string, 0, len(inputs))
	for _, in := range inputs {
		id, err := resolveCharacterID(app, in)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func resolveSceneIDs(app *App, inputs []string) ([]string, error) {
	ids := make([]string, 0, len(inputs))
	for _, in := range inputs {
		id, err := resolveSceneID(app, in)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
