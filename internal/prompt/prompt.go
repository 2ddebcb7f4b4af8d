// Package prompt asks the operator for confirmations, choices, and values.
package prompt

import (
	"errors"
	"io"

	"github.com/wslarc/wslarc/internal/terminal"
)

// ErrCancelled is returned when the operator aborts a prompt (Ctrl+C, Esc, or EOF).
var ErrCancelled = errors.New("prompt cancelled")

// Confirmer asks yes/no questions.
type Confirmer interface {
	Confirm(title string, defaultYes bool) (bool, error)
}

// Selector asks the operator to pick one option.
type Selector interface {
	Select(title string, options []string) (string, error)
}

// Inputter asks for a line of text. value holds the default and receives the answer.
type Inputter interface {
	Input(title string, value *string) error
}

// Prompter combines every prompt kind.
type Prompter interface {
	Confirmer
	Selector
	Inputter
}

var isInteractive = terminal.IsInteractive

// New picks a prompter: auto-yes when yes is set, huh forms on a terminal,
// and line-based prompts on in/out otherwise.
func New(yes bool, in io.Reader, out io.Writer) Prompter {
	if yes {
		return AutoYes{}
	}
	if isInteractive() {
		return NewHuhPrompter()
	}
	return NewLinePrompter(in, out)
}
