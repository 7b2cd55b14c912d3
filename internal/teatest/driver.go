// Package teatest steps huh prompts without a terminal.
//
// The masked API-key input is a *huh.Form. A Driver hands it key
// messages through Update and resolves the returned Cmds on the calling
// goroutine, so tests can fill a prompt in and read back its state.
package teatest

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// maxPending caps the messages one keypress may cascade into.
const maxPending = 100

// cmdTimeout skips Cmds that sleep, such as cursor blink timers.
const cmdTimeout = 10 * time.Millisecond

// Driver owns a prompt model under test.
type Driver struct {
	T     *testing.T
	Model tea.Model

	// Quitting is set once the prompt asks the program to exit.
	Quitting bool
}

// Option configures a Driver.
type Option func(*Driver)

// WithSize delivers a WindowSizeMsg before anything else.
func WithSize(w, h int) Option {
	return func(d *Driver) {
		d.Model, _ = d.Model.Update(tea.WindowSizeMsg{Width: w, Height: h})
	}
}

// New returns a Driver whose Init Cmds have already run.
func New(t *testing.T, model tea.Model, opts ...Option) *Driver {
	t.Helper()
	d := &Driver{T: t, Model: model}
	for _, opt := range opts {
		opt(d)
	}
	d.settle(d.Model.Init())
	return d
}

// Send dispatches msg and settles whatever it triggers.
func (d *Driver) Send(msg tea.Msg) {
	d.T.Helper()
	if d.Quitting {
		return
	}
	var cmd tea.Cmd
	d.Model, cmd = d.Model.Update(msg)
	d.settle(cmd)
}

// Type sends s one rune at a time.
func (d *Driver) Type(s string) {
	d.T.Helper()
	for _, r := range s {
		d.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

// Press sends each key in turn, e.g. Press(tea.KeyEsc).
func (d *Driver) Press(keys ...tea.KeyType) {
	d.T.Helper()
	for _, k := range keys {
		d.Send(tea.KeyMsg{Type: k})
	}
}

// Submit types answer and confirms it with enter.
func (d *Driver) Submit(answer string) {
	d.T.Helper()
	d.Type(answer)
	d.Press(tea.KeyEnter)
}

// FormState reports the state of the driven huh form. It fails the test
// when the model is not a form.
func (d *Driver) FormState() huh.FormState {
	d.T.Helper()
	form, ok := d.Model.(*huh.Form)
	if !ok {
		d.T.Fatalf("teatest: model is %T, not *huh.Form", d.Model)
	}
	return form.State
}

// View renders the current model.
func (d *Driver) View() string {
	return d.Model.View()
}

// settle resolves cmd breadth-first, feeding each message back into the
// model until nothing is pending.
func (d *Driver) settle(cmd tea.Cmd) {
	d.T.Helper()
	pending := []tea.Cmd{cmd}
	for handled := 0; len(pending) > 0; handled++ {
		if handled == maxPending {
			d.T.Logf("teatest: gave up after %d cascaded messages", maxPending)
			return
		}
		next := pending[0]
		pending = pending[1:]
		if next == nil {
			continue
		}

		switch msg := resolve(next).(type) {
		case nil:
		case tea.BatchMsg:
			pending = append(pending, msg...)
		case tea.QuitMsg:
			d.Quitting = true
			d.Model, _ = d.Model.Update(msg)
			return
		default:
			if isBlink(msg) {
				continue
			}
			var follow tea.Cmd
			d.Model, follow = d.Model.Update(msg)
			pending = append(pending, follow)
		}
	}
}

// resolve runs cmd, returning nil when it does not answer within cmdTimeout.
func resolve(cmd tea.Cmd) tea.Msg {
	out := make(chan tea.Msg, 1)
	go func() { out <- cmd() }()
	select {
	case msg := <-out:
		return msg
	case <-time.After(cmdTimeout):
		return nil
	}
}

// isBlink matches the unexported blink messages of bubbles/cursor.
func isBlink(msg tea.Msg) bool {
	return strings.Contains(strings.ToLower(fmt.Sprintf("%T", msg)), "blink")
}
