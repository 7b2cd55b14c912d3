package cli

import (
	"testing"

	"github.com/96-neko-96/ploterAI/internal/teatest"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/stretchr/testify/assert"
)

func driveSecretForm(t *testing.T) (*teatest.Driver, *string) {
	t.Helper()
	value := new(string)
	return teatest.New(t, newSecretForm("API key", value), teatest.WithSize(80, 24)), value
}

func TestSecretForm_SubmitsTypedValue(t *testing.T) {
	d, value := driveSecretForm(t)

	d.Type("sk-123")
	assert.NotContains(t, d.View(), "sk-123", "input is masked")
	d.Press(tea.KeyEnter)

	assert.Equal(t, huh.StateCompleted, d.FormState())
	assert.Equal(t, "sk-123", *value)
}

func TestSecretForm_BlankIsRejected(t *testing.T) {
	d, _ := driveSecretForm(t)

	d.Submit("   ")

	assert.Equal(t, huh.StateNormal, d.FormState())
}

func TestSecretForm_EscAborts(t *testing.T) {
	d, _ := driveSecretForm(t)

	d.Type("sk-partial")
	d.Press(tea.KeyEsc)

	assert.Equal(t, huh.StateAborted, d.FormState())
}

func TestValidateNotBlank(t *testing.T) {
	assert.Error(t, validateNotBlank(""))
	assert.Error(t, validateNotBlank(" \t"))
	assert.NoError(t, validateNotBlank("x"))
}
