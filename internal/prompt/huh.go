package prompt

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/wslarc/wslarc/internal/messages"
	"github.com/wslarc/wslarc/internal/terminal"
)

// HuhPrompter renders prompts as charmbracelet/huh forms on stderr.
type HuhPrompter struct {
	isTerminal func() bool
}

var runFormFunc = func(form *huh.Form) error { return form.Run() }

// NewHuhPrompter creates a HuhPrompter using terminal.IsInteractive.
func NewHuhPrompter() *HuhPrompter {
	return &HuhPrompter{isTerminal: terminal.IsInteractive}
}

func (p *HuhPrompter) ensureInteractive() error {
	checker := p.isTerminal
	if checker == nil {
		checker = terminal.IsInteractive
	}
	if checker() {
		return nil
	}
	return fmt.Errorf(messages.PromptRequiresTerminal)
}

// promptKeyMap makes both Esc and Ctrl+C abort the form and disables list filtering.
func promptKeyMap() *huh.KeyMap {
	km := huh.NewDefaultKeyMap()
	km.Quit = key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "cancel"))
	km.Select.Filter.SetEnabled(false)
	km.Select.SetFilter.SetEnabled(false)
	km.Select.ClearFilter.SetEnabled(false)
	return km
}

// formFilter converts InterruptMsg to QuitMsg so bubbletea shuts down
// gracefully and clears the form before wslarc continues printing.
func formFilter(_ tea.Model, msg tea.Msg) tea.Msg {
	if _, ok := msg.(tea.InterruptMsg); ok {
		return tea.QuitMsg{}
	}
	return msg
}

func (p *HuhPrompter) runForm(form *huh.Form) error {
	if err := p.ensureInteractive(); err != nil {
		return err
	}
	form.WithKeyMap(promptKeyMap())
	form.WithProgramOptions(
		tea.WithOutput(os.Stderr),
		tea.WithReportFocus(),
		tea.WithFilter(formFilter),
	)
	err := runFormFunc(form)
	if errors.Is(err, huh.ErrUserAborted) {
		return ErrCancelled
	}
	return err
}

// Confirm renders a yes/no prompt.
func (p *HuhPrompter) Confirm(title string, defaultYes bool) (bool, error) {
	value := defaultYes
	err := p.runForm(huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Value(&value),
		),
	))
	if err != nil {
		return false, err
	}
	return value, nil
}

// Select renders a single-choice prompt. The first option is preselected.
func (p *HuhPrompter) Select(title string, options []string) (string, error) {
	if len(options) == 0 {
		return "", errors.New(messages.PromptNoOptions)
	}
	opts := make([]huh.Option[string], len(options))
	for i, o := range options {
		opts[i] = huh.NewOption(o, o)
	}
	choice := options[0]
	err := p.runForm(huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(title).
				Options(opts...).
				Value(&choice),
		),
	))
	if err != nil {
		return "", err
	}
	return choice, nil
}

// Input renders a text input prefilled with *value.
func (p *HuhPrompter) Input(title string, value *string) error {
	return p.runForm(huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Value(value),
		),
	))
}
