package cli

import (
	"errors"
	"io"
	"strings"

	"github.com/96-neko-96/ploterAI/internal/cli/formatter"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

var errPromptCanceled = errors.New("canceled")

// ploterHuhTheme returns a huh theme using the formatter palette.
func ploterHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func validateNotBlank(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("required")
	}
	return nil
}

// newSecretForm builds a single masked input bound to value. Esc and
// ctrl+c abort it.
func newSecretForm(title string, value *string) *huh.Form {
	km := huh.NewDefaultKeyMap()
	km.Quit = key.NewBinding(key.WithKeys("ctrl+c", "esc"))

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				EchoMode(huh.EchoModePassword).
				Value(value).
				Validate(validateNotBlank),
		),
	).WithTheme(ploterHuhTheme()).
		WithShowHelp(false).
		WithKeyMap(km)
}

// promptSecret asks for one masked value on in/out.
func promptSecret(in io.Reader, out io.Writer, title string) (string, error) {
	var value string
	form := newSecretForm(title, &value).
		WithProgramOptions(tea.WithInput(in), tea.WithOutput(out))

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", errPromptCanceled
		}
		return "", err
	}
	return strings.TrimSpace(value), nil
}
